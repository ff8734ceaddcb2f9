package engine

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

var fence = []byte("---")

// Document is a markdown view split into frontmatter metadata and body.
type Document struct {
	Metadata map[string]any
	Body     string
}

// ParseDocument splits content into YAML frontmatter and body.
// Content without a leading "---" fence is returned as the body with empty metadata.
func ParseDocument(content []byte) (*Document, error) {
	if !bytes.HasPrefix(content, fence) {
		return &Document{Metadata: map[string]any{}, Body: string(content)}, nil
	}

	rest := bytes.TrimLeft(content[len(fence):], "\r\n")
	if len(rest) == 0 {
		return nil, fmt.Errorf("%w: no content after opening fence", ErrInvalidFrontmatter)
	}

	end := bytes.Index(rest, fence)
	if end == -1 {
		return nil, fmt.Errorf("%w: closing fence not found", ErrInvalidFrontmatter)
	}

	header := rest[:end]
	body := rest[end+len(fence):]
	// a single line break after the closing fence belongs to the fence
	switch {
	case bytes.HasPrefix(body, []byte("\r\n")):
		body = body[2:]
	case bytes.HasPrefix(body, []byte("\n")):
		body = body[1:]
	}

	meta := map[string]any{}
	if len(bytes.TrimSpace(header)) > 0 {
		if err := yaml.Unmarshal(header, &meta); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidFrontmatter, err)
		}
	}

	return &Document{Metadata: meta, Body: string(body)}, nil
}
