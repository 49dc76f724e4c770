// Package render provides companion export renderers for docspipe pages.
// This file implements the Markdown renderer, which prepends YAML front
// matter to the normalized Markdown.
package render

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/gaurav-prasanna/docspipe/core"
)

// MarkdownRenderer writes Markdown with a front matter block describing
// the page. Markdown is already the canonical export format.
type MarkdownRenderer struct{}

// NewMarkdownRenderer creates a MarkdownRenderer.
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{}
}

type frontMatter struct {
	Title  string `yaml:"title,omitempty"`
	Name   string `yaml:"name"`
	Source string `yaml:"source,omitempty"`
}

// Render returns the Markdown preceded by "---" delimited YAML front matter.
func (r *MarkdownRenderer) Render(markdown string, meta core.DocMetadata) ([]byte, error) {
	fm, err := yaml.Marshal(frontMatter{Title: meta.Title, Name: meta.Name, Source: meta.Source})
	if err != nil {
		return nil, fmt.Errorf("marshaling front matter: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString("---\n")
	buf.Write(fm)
	buf.WriteString("---\n\n")
	buf.WriteString(markdown)
	return buf.Bytes(), nil
}

// Extension returns the file extension for Markdown output.
func (r *MarkdownRenderer) Extension() string {
	return ".md"
}
