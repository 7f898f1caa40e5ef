package renderer

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// markdown converts GitHub flavored markdown, tables included.
var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// HTML converts a markdown report into an HTML fragment.
func HTML(md string) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(md), &buf); err != nil {
		return "", fmt.Errorf("cannot convert report to html: %w", err)
	}
	return buf.String(), nil
}
