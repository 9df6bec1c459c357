package uow

import "errors"

var (
	// ErrFinished is returned when registering on or committing a unit of work
	// that has already been committed or rolled back.
	ErrFinished = errors.New("uow: unit of work already finished")
)
