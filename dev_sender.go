package postmarktx

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DevSender implements Sender for local development.
// It saves every message of a batch as an HTML and a JSON file in a directory
// instead of talking to Postmark.
type DevSender struct {
	dir string
}

// NewDevSender creates a development sender that saves emails to disk.
// The directory is created on first send if it doesn't exist.
func NewDevSender(dir string) *DevSender {
	return &DevSender{dir: dir}
}

// devMetadata is the message envelope saved to JSON (excluding HTML content).
type devMetadata struct {
	Timestamp string   `json:"timestamp"`
	From      string   `json:"from"`
	To        []string `json:"to"`
	Subject   string   `json:"subject"`
	TextBody  string   `json:"text_body,omitempty"`
	Tag       string   `json:"tag,omitempty"`
}

// Send writes each message of the batch to the configured directory.
func (d *DevSender) Send(ctx context.Context, msgs ...Message) error {
	if len(msgs) == 0 {
		return nil
	}

	if err := os.MkdirAll(d.dir, 0755); err != nil {
		return fmt.Errorf("%w: failed to create directory: %v", ErrSendFailed, err)
	}

	now := time.Now()
	for _, msg := range msgs {
		if err := msg.Validate(); err != nil {
			return err
		}

		// Tag beats subject as the filename hint; the uuid suffix keeps
		// messages of one batch from clobbering each other.
		identifier := msg.Tag
		if identifier == "" {
			identifier = msg.Subject
		}
		base := fmt.Sprintf("%s_%s_%s",
			now.Format("2006_01_02_150405"),
			uuid.NewString()[:8],
			sanitizeFilename(identifier))

		htmlPath := filepath.Join(d.dir, base+".html")
		if err := os.WriteFile(htmlPath, []byte(msg.HTMLBody), 0644); err != nil {
			return fmt.Errorf("%w: failed to write HTML file: %v", ErrSendFailed, err)
		}

		meta := devMetadata{
			Timestamp: now.Format(time.RFC3339),
			From:      msg.From,
			To:        msg.To,
			Subject:   msg.Subject,
			TextBody:  msg.TextBody,
			Tag:       msg.Tag,
		}
		data, err := json.MarshalIndent(meta, "", "  ")
		if err != nil {
			return fmt.Errorf("%w: failed to marshal metadata: %v", ErrSendFailed, err)
		}
		jsonPath := filepath.Join(d.dir, base+".json")
		if err := os.WriteFile(jsonPath, data, 0644); err != nil {
			return fmt.Errorf("%w: failed to write JSON file: %v", ErrSendFailed, err)
		}
	}

	return nil
}

// sanitizeRegex matches characters that are not alphanumeric, dash, underscore, or dot
var sanitizeRegex = regexp.MustCompile(`[^a-zA-Z0-9\-_.]`)

// sanitizeFilename converts a string into a safe lowercase filename fragment.
func sanitizeFilename(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = sanitizeRegex.ReplaceAllString(s, "")

	const maxLength = 100
	if len(s) > maxLength {
		s = s[:maxLength]
	}
	if s == "" {
		s = "email"
	}
	return strings.ToLower(s)
}
