package postmarktx

import (
	"context"
	"log/slog"
)

// Client is the integration facade: it owns the resolved configuration, the
// provider sender and the optional template renderer, and decides how each
// send is dispatched.
type Client struct {
	cfg      Config
	sender   Sender
	renderer *Renderer
	log      *slog.Logger
}

// Option configures Client construction.
type Option func(*Client)

// WithSender overrides the provider sender. Useful for DevSender in local
// environments and fakes in tests.
func WithSender(s Sender) Option {
	return func(c *Client) {
		if s != nil {
			c.sender = s
		}
	}
}

// WithRenderer attaches a template renderer, enabling RenderEmail.
func WithRenderer(r *Renderer) Option {
	return func(c *Client) {
		c.renderer = r
	}
}

// WithLogger sets the logger used for background-send failures.
// Nil loggers are ignored.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// New creates a Client from the resolved configuration. Unless WithSender is
// given, a Postmark sender is constructed, which requires a server token.
// No network call happens at construction time.
func New(cfg Config, opts ...Option) (*Client, error) {
	c := &Client{
		cfg: cfg,
		log: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.sender == nil {
		sender, err := NewPostmarkSender(cfg)
		if err != nil {
			return nil, err
		}
		c.sender = sender
	}
	return c, nil
}

// MustNew works like New but panics on invalid configuration.
func MustNew(cfg Config, opts ...Option) *Client {
	c, err := New(cfg, opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// Config returns the client's resolved configuration.
func (c *Client) Config() Config {
	return c.cfg
}

// Sender returns the underlying provider sender.
func (c *Client) Sender() Sender {
	return c.sender
}

// Batch returns the per-request batch client. Within a request wrapped by
// Middleware the same instance is returned on every call; outside of one, a
// fresh unattached batch is created.
func (c *Client) Batch(ctx context.Context) *Batch {
	if st, ok := stateFromContext(ctx); ok && st.client == c {
		return st.getBatch()
	}
	return NewBatch(c.sender)
}

// RenderEmail renders the named template with data and builds a Message from
// the result. When subject is empty, the template's frontmatter subject is
// used. Rendering failures propagate unchanged; nothing is sent here.
func (c *Client) RenderEmail(from string, to []string, subject, templateName string, data any, opts ...MessageOption) (Message, error) {
	if c.renderer == nil {
		return Message{}, ErrNoRenderer
	}
	res, err := c.renderer.Render(templateName, data)
	if err != nil {
		return Message{}, err
	}
	if subject == "" {
		subject = res.Subject
	}
	return NewMessage(from, to, subject, res.HTML, res.Text, opts...), nil
}
