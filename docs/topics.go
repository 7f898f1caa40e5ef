// Package docs embeds the btcb user documentation, one markdown file per topic.
package docs

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

//go:embed *.md
var docs embed.FS

// readme is the overview topic, shown by default and left out of listings.
const readme = "readme"

// Topic is a documentation topic.
type Topic struct {
	Name  string // file name without extension
	Title string // first level one heading
}

// GetTopic returns the content of a documentation topic. "*" returns every
// topic.
func GetTopic(topic string) (string, error) {
	if topic == "*" {
		return GetTopics(topic)
	}
	content, err := docs.ReadFile(topic + ".md")
	if err != nil {
		return "", fmt.Errorf("topic %q not found: %w", topic, err)
	}
	return string(content), nil
}

// GetTopics returns the content of topics, concatenated. "*" expands to every
// topic but the readme.
func GetTopics(names ...string) (string, error) {
	var b strings.Builder
	for _, name := range names {
		expanded := []string{name}
		if name == "*" {
			topics, err := Topics()
			if err != nil {
				return "", err
			}
			expanded = expanded[:0]
			for _, t := range topics {
				expanded = append(expanded, t.Name)
			}
		}
		for _, n := range expanded {
			content, err := GetTopic(n)
			if err != nil {
				return "", err
			}
			b.WriteString(content)
			b.WriteString("\n")
		}
	}
	return b.String(), nil
}

// Topics lists the topics but the readme, sorted by name.
func Topics() ([]Topic, error) {
	files, err := fs.Glob(docs, "*.md")
	if err != nil {
		return nil, err
	}
	var topics []Topic
	for _, file := range files {
		name := strings.TrimSuffix(path.Base(file), ".md")
		if name == readme {
			continue
		}
		content, err := docs.ReadFile(file)
		if err != nil {
			return nil, err
		}
		topics = append(topics, Topic{Name: name, Title: title(content)})
	}
	sort.Slice(topics, func(i, j int) bool { return topics[i].Name < topics[j].Name })
	return topics, nil
}

// title returns the text of the first level one heading of a markdown
// document, or "" if it has none.
func title(source []byte) string {
	doc := goldmark.DefaultParser().Parse(text.NewReader(source))
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		h, ok := n.(*ast.Heading)
		if !ok || h.Level != 1 {
			continue
		}
		var b strings.Builder
		for c := h.FirstChild(); c != nil; c = c.NextSibling() {
			if t, ok := c.(*ast.Text); ok {
				b.Write(t.Segment.Value(source))
			}
		}
		return b.String()
	}
	return ""
}
