package postmarktx

import "context"

// Sender delivers one or more messages as a single outbound batch,
// preserving the caller-supplied order inside the batch.
type Sender interface {
	Send(ctx context.Context, msgs ...Message) error
}
