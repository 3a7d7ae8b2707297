package pipeline

import (
	"html"
	"regexp"
	"strings"

	"github.com/winzyu/beauty-product-analysis/internal/types"
)

// HTMLSanitizeMiddleware strips HTML tags from string fields. Listing
// pages sometimes leave markup inside titles and brand names.
type HTMLSanitizeMiddleware struct {
	stripRe *regexp.Regexp
}

func NewHTMLSanitizeMiddleware() *HTMLSanitizeMiddleware {
	return &HTMLSanitizeMiddleware{
		stripRe: regexp.MustCompile(`<[^>]*>`),
	}
}

func (m *HTMLSanitizeMiddleware) Name() string { return "html_sanitize" }

func (m *HTMLSanitizeMiddleware) Process(item *types.RawItem) (*types.RawItem, error) {
	for _, key := range item.Keys() {
		if s := item.GetString(key); s != "" {
			// Strip HTML tags
			cleaned := m.stripRe.ReplaceAllString(s, "")
			// Decode HTML entities
			cleaned = html.UnescapeString(cleaned)
			// Normalize whitespace
			cleaned = strings.Join(strings.Fields(cleaned), " ")
			item.Set(key, cleaned)
		}
	}
	return item, nil
}

// MojibakeMiddleware removes the UTF-8/Latin-1 double-encoding artifacts
// that show up in notebook-extracted brand names (e.g. "Ã‚").
type MojibakeMiddleware struct {
	artifacts []string
}

func NewMojibakeMiddleware() *MojibakeMiddleware {
	return &MojibakeMiddleware{
		artifacts: []string{"Ã‚", "Â", " "},
	}
}

func (m *MojibakeMiddleware) Name() string { return "mojibake" }

func (m *MojibakeMiddleware) Process(item *types.RawItem) (*types.RawItem, error) {
	for _, key := range item.Keys() {
		s := item.GetString(key)
		if s == "" {
			continue
		}
		for _, artifact := range m.artifacts {
			s = strings.ReplaceAll(s, artifact, " ")
		}
		item.Set(key, strings.Join(strings.Fields(s), " "))
	}
	return item, nil
}

// Default returns the cleanup chain used by the run command: trim,
// HTML strip, mojibake removal.
func Default(p *Pipeline) *Pipeline {
	p.Use(&TrimMiddleware{})
	p.Use(NewHTMLSanitizeMiddleware())
	p.Use(NewMojibakeMiddleware())
	return p
}
