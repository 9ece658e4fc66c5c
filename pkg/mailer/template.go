package mailer

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

var fence = []byte("---")

// Template is a parsed template file.
type Template struct {
	Meta map[string]any
	Body string
}

// ParseTemplate splits YAML frontmatter from the markdown body. Content
// without a leading fence is all body.
func ParseTemplate(content []byte) (*Template, error) {
	content = bytes.TrimPrefix(content, []byte("\ufeff"))
	if !bytes.HasPrefix(content, fence) {
		return &Template{Meta: map[string]any{}, Body: string(content)}, nil
	}

	rest := bytes.TrimLeft(bytes.TrimPrefix(content, fence), "\r\n")
	end := bytes.Index(rest, append([]byte("\n"), fence...))
	if !bytes.HasPrefix(rest, fence) && end == -1 {
		return nil, fmt.Errorf("%w: closing fence not found", ErrInvalidFrontmatter)
	}

	var head, body []byte
	if bytes.HasPrefix(rest, fence) {
		body = rest[len(fence):]
	} else {
		head, body = rest[:end], rest[end+1+len(fence):]
	}
	body = bytes.TrimPrefix(bytes.TrimPrefix(body, []byte("\r")), []byte("\n"))

	meta := map[string]any{}
	if len(bytes.TrimSpace(head)) > 0 {
		if err := yaml.Unmarshal(head, &meta); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidFrontmatter, err)
		}
	}
	return &Template{Meta: meta, Body: string(body)}, nil
}

// Subject returns the frontmatter subject, if any.
func (t *Template) Subject() string {
	s, _ := t.Meta["subject"].(string)
	return s
}
