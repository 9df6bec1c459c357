package postmarktx

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/k3a/html2text"
)

// Message is an immutable email value object. Construct it with NewMessage
// and treat it as read-only afterwards; it has no identity beyond its fields.
type Message struct {
	From     string
	To       []string
	Cc       []string
	Bcc      []string
	ReplyTo  string
	Subject  string
	HTMLBody string
	TextBody string
	Tag      string
	Headers  map[string]string
}

// MessageOption customizes optional Message fields during construction.
type MessageOption func(*Message)

// WithCc adds carbon-copy recipients.
func WithCc(addrs ...string) MessageOption {
	return func(m *Message) {
		m.Cc = append(m.Cc, addrs...)
	}
}

// WithBcc adds blind carbon-copy recipients.
func WithBcc(addrs ...string) MessageOption {
	return func(m *Message) {
		m.Bcc = append(m.Bcc, addrs...)
	}
}

// WithReplyTo sets the reply-to address.
func WithReplyTo(addr string) MessageOption {
	return func(m *Message) {
		m.ReplyTo = addr
	}
}

// WithTag sets the Postmark tag used for delivery analytics.
func WithTag(tag string) MessageOption {
	return func(m *Message) {
		m.Tag = tag
	}
}

// WithHeader adds a custom SMTP header.
func WithHeader(name, value string) MessageOption {
	return func(m *Message) {
		if m.Headers == nil {
			m.Headers = make(map[string]string)
		}
		m.Headers[name] = value
	}
}

// NewMessage builds a Message ready for dispatch. Subject and bodies are
// trimmed. When textBody is empty, a plain-text alternative is derived from
// the HTML body so every outbound email carries both parts.
// No validation or network call happens here; senders validate before
// delivery.
func NewMessage(from string, to []string, subject, htmlBody, textBody string, opts ...MessageOption) Message {
	msg := Message{
		From:     strings.TrimSpace(from),
		To:       trimAll(to),
		Subject:  strings.TrimSpace(subject),
		HTMLBody: strings.TrimSpace(htmlBody),
		TextBody: strings.TrimSpace(textBody),
	}
	if msg.TextBody == "" && msg.HTMLBody != "" {
		msg.TextBody = strings.TrimSpace(html2text.HTML2Text(msg.HTMLBody))
	}
	for _, opt := range opts {
		opt(&msg)
	}
	return msg
}

func trimAll(addrs []string) []string {
	if len(addrs) == 0 {
		return nil
	}
	out := make([]string, 0, len(addrs))
	for _, a := range addrs {
		if a = strings.TrimSpace(a); a != "" {
			out = append(out, a)
		}
	}
	return out
}

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Validate checks the message is deliverable. Senders call it before talking
// to the provider so a bad message fails the whole batch locally.
func (m Message) Validate() error {
	if m.From == "" {
		return fmt.Errorf("%w: From is required", ErrInvalidMessage)
	}
	if !emailRegex.MatchString(m.From) {
		return fmt.Errorf("%w: From must be a valid email address", ErrInvalidMessage)
	}
	if len(m.To) == 0 {
		return fmt.Errorf("%w: at least one recipient is required", ErrInvalidMessage)
	}
	for _, addr := range append(append(append([]string{}, m.To...), m.Cc...), m.Bcc...) {
		if !emailRegex.MatchString(addr) {
			return fmt.Errorf("%w: %q is not a valid email address", ErrInvalidMessage, addr)
		}
	}
	if m.Subject == "" {
		return fmt.Errorf("%w: Subject is required", ErrInvalidMessage)
	}
	if m.HTMLBody == "" && m.TextBody == "" {
		return fmt.Errorf("%w: a HTML or text body is required", ErrInvalidMessage)
	}
	return nil
}
