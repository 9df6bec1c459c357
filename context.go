package postmarktx

import (
	"context"
	"sync"
)

// requestState carries the lazily-initialized per-request batch client.
// Get-or-create is explicit here rather than hidden behind property caching:
// the first Batch access creates the instance, later accesses return it.
type requestState struct {
	client *Client

	mu    sync.Mutex
	batch *Batch
}

func (s *requestState) getBatch() *Batch {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.batch == nil {
		s.batch = NewBatch(s.client.sender)
	}
	return s.batch
}

// stateKey prevents collisions with other packages using context values
type stateKey struct{}

func withState(ctx context.Context, st *requestState) context.Context {
	return context.WithValue(ctx, stateKey{}, st)
}

func stateFromContext(ctx context.Context) (*requestState, bool) {
	st, ok := ctx.Value(stateKey{}).(*requestState)
	return st, ok
}

// FromContext returns the Client wired into the request by Middleware.
func FromContext(ctx context.Context) (*Client, bool) {
	st, ok := stateFromContext(ctx)
	if !ok || st == nil {
		return nil, false
	}
	return st.client, true
}
