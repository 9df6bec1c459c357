package uow

import (
	"context"
	"errors"
	"sync"
)

// Hook is a commit-success callback.
type Hook func(ctx context.Context) error

// UnitOfWork collects callbacks that must run if and only if the unit
// completes successfully. Hooks run in registration order, at most once.
type UnitOfWork struct {
	mu       sync.Mutex
	hooks    []Hook
	finished bool
}

// New creates an open unit of work.
func New() *UnitOfWork {
	return &UnitOfWork{}
}

// OnCommit registers a callback to run when the unit commits.
// Returns ErrFinished if the unit has already been committed or rolled back.
func (u *UnitOfWork) OnCommit(h Hook) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.finished {
		return ErrFinished
	}
	u.hooks = append(u.hooks, h)
	return nil
}

// Commit marks the unit successful and runs the registered hooks in order.
// A hook failure does not stop the remaining hooks; all failures are joined
// into the returned error. Committing a finished unit returns ErrFinished.
func (u *UnitOfWork) Commit(ctx context.Context) error {
	u.mu.Lock()
	if u.finished {
		u.mu.Unlock()
		return ErrFinished
	}
	u.finished = true
	hooks := u.hooks
	u.hooks = nil
	u.mu.Unlock()

	var errs []error
	for _, h := range hooks {
		if err := h(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Rollback discards the registered hooks and closes the unit.
// Safe to call on an already finished unit.
func (u *UnitOfWork) Rollback() {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.finished = true
	u.hooks = nil
}

// Finished reports whether the unit has been committed or rolled back.
func (u *UnitOfWork) Finished() bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.finished
}
