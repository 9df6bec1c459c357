package postmarktx_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/postmarktx"
)

// recordingSender collects every batch it is asked to deliver.
type recordingSender struct {
	mu    sync.Mutex
	calls [][]postmarktx.Message
	err   error
}

func (s *recordingSender) Send(ctx context.Context, msgs ...postmarktx.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	batch := make([]postmarktx.Message, len(msgs))
	copy(batch, msgs)
	s.calls = append(s.calls, batch)
	return s.err
}

func (s *recordingSender) Calls() [][]postmarktx.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([][]postmarktx.Message, len(s.calls))
	copy(out, s.calls)
	return out
}

func testMessage(subject string) postmarktx.Message {
	return postmarktx.NewMessage(
		"a@b.com", []string{"b@c.com"}, subject, "<p>Hi</p>", "Hi",
	)
}

func TestBatch(t *testing.T) {
	t.Parallel()

	t.Run("append preserves order", func(t *testing.T) {
		t.Parallel()

		sender := &recordingSender{}
		batch := postmarktx.NewBatch(sender)
		batch.Append(testMessage("first"))
		batch.Append(testMessage("second"), testMessage("third"))

		require.Equal(t, 3, batch.Len())

		require.NoError(t, batch.Send(context.Background()))

		calls := sender.Calls()
		require.Len(t, calls, 1)
		require.Len(t, calls[0], 3)
		assert.Equal(t, "first", calls[0][0].Subject)
		assert.Equal(t, "second", calls[0][1].Subject)
		assert.Equal(t, "third", calls[0][2].Subject)
	})

	t.Run("send clears pending list", func(t *testing.T) {
		t.Parallel()

		sender := &recordingSender{}
		batch := postmarktx.NewBatch(sender)
		batch.Append(testMessage("one"))

		require.NoError(t, batch.Send(context.Background()))
		assert.Equal(t, 0, batch.Len())

		// A second send has nothing to deliver.
		require.NoError(t, batch.Send(context.Background()))
		assert.Len(t, sender.Calls(), 1)
	})

	t.Run("empty batch is a no-op", func(t *testing.T) {
		t.Parallel()

		sender := &recordingSender{}
		batch := postmarktx.NewBatch(sender)

		require.NoError(t, batch.Send(context.Background()))
		assert.Empty(t, sender.Calls())
	})

	t.Run("failed send is not retried by a later call", func(t *testing.T) {
		t.Parallel()

		sender := &recordingSender{err: errors.New("provider down")}
		batch := postmarktx.NewBatch(sender)
		batch.Append(testMessage("one"))

		require.Error(t, batch.Send(context.Background()))
		assert.Equal(t, 0, batch.Len())

		sender.err = nil
		require.NoError(t, batch.Send(context.Background()))
		assert.Len(t, sender.Calls(), 1)
	})

	t.Run("messages returns a copy", func(t *testing.T) {
		t.Parallel()

		batch := postmarktx.NewBatch(&recordingSender{})
		batch.Append(testMessage("one"))

		msgs := batch.Messages()
		require.Len(t, msgs, 1)
		msgs[0].Subject = "mutated"

		assert.Equal(t, "one", batch.Messages()[0].Subject)
	})

	t.Run("batches have distinct ids", func(t *testing.T) {
		t.Parallel()

		sender := &recordingSender{}
		a := postmarktx.NewBatch(sender)
		b := postmarktx.NewBatch(sender)
		assert.NotEqual(t, a.ID(), b.ID())
	})
}
