package postmarktx

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// emailTemplate is a parsed template file: optional YAML frontmatter plus a
// markdown body.
type emailTemplate struct {
	Metadata map[string]any
	Body     string
}

// Subject returns the frontmatter subject, if any.
func (t *emailTemplate) Subject() string {
	if s, ok := t.Metadata["subject"].(string); ok {
		return s
	}
	return ""
}

var frontmatterDelim = []byte("---")

// parseEmailTemplate splits template content into frontmatter metadata and
// body. Content without a leading "---" is treated as body-only.
func parseEmailTemplate(content []byte) (*emailTemplate, error) {
	if !bytes.HasPrefix(content, frontmatterDelim) {
		return &emailTemplate{
			Metadata: make(map[string]any),
			Body:     string(content),
		}, nil
	}

	rest := bytes.TrimPrefix(content, frontmatterDelim)
	rest = bytes.TrimLeft(rest, "\r\n")
	if len(rest) == 0 {
		return nil, fmt.Errorf("%w: no content after opening delimiter", ErrInvalidFrontmatter)
	}

	end := bytes.Index(rest, frontmatterDelim)
	if end == -1 {
		return nil, fmt.Errorf("%w: closing delimiter not found", ErrInvalidFrontmatter)
	}

	meta := make(map[string]any)
	if raw := bytes.TrimSpace(rest[:end]); len(raw) > 0 {
		if err := yaml.Unmarshal(raw, &meta); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidFrontmatter, err)
		}
	}

	body := rest[end+len(frontmatterDelim):]
	// Drop the single newline following the closing delimiter.
	if bytes.HasPrefix(body, []byte("\r\n")) {
		body = body[2:]
	} else if bytes.HasPrefix(body, []byte("\n")) {
		body = body[1:]
	}

	return &emailTemplate{
		Metadata: meta,
		Body:     string(body),
	}, nil
}
