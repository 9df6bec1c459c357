package postmarktx

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mrz1836/postmark"
)

type postmarkSender struct {
	client *postmark.Client
	cfg    Config
}

// NewPostmarkSender creates a Postmark-backed batch sender.
// The server token is required here even though Config tolerates its absence,
// so misconfiguration fails at construction rather than on the first send.
func NewPostmarkSender(cfg Config) (Sender, error) {
	if cfg.ServerToken == "" {
		return nil, fmt.Errorf("%w: ServerToken is required", ErrInvalidConfig)
	}
	if cfg.DefaultFrom != "" && !emailRegex.MatchString(cfg.DefaultFrom) {
		return nil, fmt.Errorf("%w: DefaultFrom must be a valid email address", ErrInvalidConfig)
	}
	if cfg.ReplyTo != "" && !emailRegex.MatchString(cfg.ReplyTo) {
		return nil, fmt.Errorf("%w: ReplyTo must be a valid email address", ErrInvalidConfig)
	}

	return &postmarkSender{
		client: postmark.NewClient(cfg.ServerToken, cfg.AccountToken),
		cfg:    cfg,
	}, nil
}

// MustNewPostmarkSender creates a Postmark sender that panics on invalid
// config, failing fast during initialization.
func MustNewPostmarkSender(cfg Config) Sender {
	sender, err := NewPostmarkSender(cfg)
	if err != nil {
		panic(err)
	}
	return sender
}

// Send delivers the messages through Postmark's batch endpoint in one call.
// Tracking is enabled for opens and HTML link clicks only to avoid mangling
// plain-text links. Per-message provider rejections are folded into a single
// returned error; there are no retries at this layer.
func (s *postmarkSender) Send(ctx context.Context, msgs ...Message) error {
	if len(msgs) == 0 {
		return nil
	}

	emails := make([]postmark.Email, 0, len(msgs))
	for _, msg := range msgs {
		msg = s.applyDefaults(msg)
		if err := msg.Validate(); err != nil {
			return err
		}
		emails = append(emails, toPostmarkEmail(msg))
	}

	resps, err := s.client.SendEmailBatch(ctx, emails)
	if err != nil {
		return errors.Join(ErrSendFailed, err)
	}

	var rejected []error
	for i, resp := range resps {
		if resp.ErrorCode > 0 {
			rejected = append(rejected,
				fmt.Errorf("message %d to %s: postmark error %d: %s", i, emails[i].To, resp.ErrorCode, resp.Message))
		}
	}
	if len(rejected) > 0 {
		return errors.Join(append([]error{ErrSendFailed}, rejected...)...)
	}
	return nil
}

func (s *postmarkSender) applyDefaults(msg Message) Message {
	if msg.From == "" {
		msg.From = s.cfg.DefaultFrom
	}
	if msg.ReplyTo == "" {
		msg.ReplyTo = s.cfg.ReplyTo
	}
	return msg
}

func toPostmarkEmail(msg Message) postmark.Email {
	email := postmark.Email{
		From:       msg.From,
		To:         strings.Join(msg.To, ","),
		Cc:         strings.Join(msg.Cc, ","),
		Bcc:        strings.Join(msg.Bcc, ","),
		ReplyTo:    msg.ReplyTo,
		Subject:    msg.Subject,
		Tag:        msg.Tag,
		HTMLBody:   msg.HTMLBody,
		TextBody:   msg.TextBody,
		TrackOpens: true,
		TrackLinks: "HtmlOnly",
	}
	for name, value := range msg.Headers {
		email.Headers = append(email.Headers, postmark.Header{Name: name, Value: value})
	}
	return email
}
