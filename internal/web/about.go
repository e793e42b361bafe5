package web

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"

	"github.com/yuin/goldmark"
)

//go:embed templates/about.md
var aboutMarkdown []byte

// renderAbout converts the embedded project description to HTML.
func renderAbout() (template.HTML, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert(aboutMarkdown, &buf); err != nil {
		return "", fmt.Errorf("render about.md: %w", err)
	}
	return template.HTML(buf.String()), nil
}
