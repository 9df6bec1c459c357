package postmarktx

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Batch is a request-scoped batch client: it accumulates messages and sends
// them together in one outbound call. A Send call takes the pending list
// exactly once; messages appended afterwards belong to the next Send.
type Batch struct {
	id     uuid.UUID
	sender Sender

	mu   sync.Mutex
	msgs []Message
}

// NewBatch creates an empty batch backed by the given sender.
func NewBatch(sender Sender) *Batch {
	return &Batch{
		id:     uuid.New(),
		sender: sender,
	}
}

// ID identifies the batch in logs.
func (b *Batch) ID() uuid.UUID {
	return b.id
}

// Append adds messages to the pending list, preserving order.
func (b *Batch) Append(msgs ...Message) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.msgs = append(b.msgs, msgs...)
}

// Messages returns a copy of the pending list.
func (b *Batch) Messages() []Message {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Message, len(b.msgs))
	copy(out, b.msgs)
	return out
}

// Len reports the number of pending messages.
func (b *Batch) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.msgs)
}

// Send delivers the pending messages as a single batch and clears the list.
// The list is consumed even when delivery fails: this layer does not retry,
// so a failed batch is not silently re-sent by a later call.
// Sending an empty batch is a no-op.
func (b *Batch) Send(ctx context.Context) error {
	b.mu.Lock()
	msgs := b.msgs
	b.msgs = nil
	b.mu.Unlock()

	if len(msgs) == 0 {
		return nil
	}
	return b.sender.Send(ctx, msgs...)
}
