package postmarktx

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/postmarktx/pkg/uow"
)

// sendOptions is the per-call dispatch decision input.
type sendOptions struct {
	joinTx       *bool
	inBackground bool
}

// SendOption overrides dispatch behavior for a single Send call.
type SendOption func(*sendOptions)

// WithJoinTx explicitly sets whether the send joins the ambient unit of work,
// overriding the configuration default.
func WithJoinTx(join bool) SendOption {
	return func(o *sendOptions) {
		o.joinTx = &join
	}
}

// InBackground runs the provider call on a detached goroutine. The caller
// gets no result: a failed background send is logged and otherwise lost.
// This is a deliberate reliability trade-off, not an oversight; use the
// synchronous path when delivery must be confirmed.
func InBackground() SendOption {
	return func(o *sendOptions) {
		o.inBackground = true
	}
}

// SendOne dispatches a single message, wrapping it as a one-element batch.
func (c *Client) SendOne(ctx context.Context, msg Message, opts ...SendOption) error {
	return c.Send(ctx, []Message{msg}, opts...)
}

// Send dispatches the messages as one batch according to the effective
// policy:
//
//   - join-transaction resolves from the explicit WithJoinTx override, else
//     the configuration default. When true, the send is registered as a
//     commit hook on the ambient unit of work and fires only if that unit
//     commits; an aborted unit never sends. Without a unit of work in ctx,
//     Send fails with ErrNoUnitOfWork rather than silently sending early.
//   - InBackground replaces the provider call with a fire-and-forget
//     goroutine; Send (or the commit hook) returns immediately.
//
// Each Send call is resolved and registered independently: two calls in one
// request produce two batches and, when deferred, two commit hooks.
// Synchronous failures propagate unchanged; there are no retries.
func (c *Client) Send(ctx context.Context, msgs []Message, opts ...SendOption) error {
	var o sendOptions
	for _, opt := range opts {
		opt(&o)
	}
	joinTx := c.cfg.ShouldJoinTx
	if o.joinTx != nil {
		joinTx = *o.joinTx
	}

	if len(msgs) == 0 {
		return nil
	}

	batch := NewBatch(c.sender)
	batch.Append(msgs...)

	send := batch.Send
	if o.inBackground {
		send = func(ctx context.Context) error {
			// Detach from request cancellation: the request routinely ends
			// before the background send completes.
			bgCtx := context.WithoutCancel(ctx)
			go func() {
				if err := batch.Send(bgCtx); err != nil {
					c.log.ErrorContext(bgCtx, "background email send failed",
						slog.String("batch_id", batch.ID().String()),
						slog.Int("messages", len(msgs)),
						slog.Any("error", err),
					)
				}
			}()
			return nil
		}
	}

	if !joinTx {
		return send(ctx)
	}

	u, ok := uow.FromContext(ctx)
	if !ok {
		return ErrNoUnitOfWork
	}
	return u.OnCommit(send)
}
