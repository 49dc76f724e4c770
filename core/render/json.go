// Package render — JSON renderer.
// Builds a structured JSON export from Markdown and page metadata.
// The Markdown is parsed once; headings, links, code blocks, tables and list
// items are read off the syntax tree.
package render

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"

	"github.com/gaurav-prasanna/docspipe/core"
)

// JSONRenderer produces structured JSON output from Markdown.
type JSONRenderer struct{}

// NewJSONRenderer creates a JSONRenderer.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

// Render converts Markdown and metadata into the DocJSON structure.
func (r *JSONRenderer) Render(markdown string, meta core.DocMetadata) ([]byte, error) {
	content, structure := analyze(markdown)

	page := core.DocJSON{
		Metadata:  meta,
		Content:   content,
		Structure: structure,
	}

	data, err := json.MarshalIndent(page, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling JSON: %w", err)
	}
	return data, nil
}

// Extension returns the file extension for JSON output.
func (r *JSONRenderer) Extension() string {
	return ".json"
}

// analyze walks the Markdown syntax tree once for content and structure.
func analyze(markdown string) (core.DocContent, core.DocStructure) {
	doc, src := parseMarkdown(markdown)

	content := core.DocContent{Markdown: markdown}
	structure := core.DocStructure{
		Headings: []core.Heading{},
		Links:    []core.Link{},
	}

	// Top-level blocks give plain text and heading-delimited sections.
	var (
		paragraphs   []string
		current      *core.Section
		sectionParts []string
	)
	flush := func() {
		if current != nil {
			current.Text = strings.TrimSpace(strings.Join(sectionParts, "\n\n"))
			content.Sections = append(content.Sections, *current)
		}
		sectionParts = nil
	}
	for block := doc.FirstChild(); block != nil; block = block.NextSibling() {
		text := strings.TrimSpace(plainText(block, src))
		if h, ok := block.(*ast.Heading); ok {
			flush()
			structure.Headings = append(structure.Headings, core.Heading{Level: h.Level, Text: text})
			current = &core.Section{Heading: text, Level: h.Level}
		} else if text != "" {
			sectionParts = append(sectionParts, text)
		}
		if text != "" {
			paragraphs = append(paragraphs, text)
		}
	}
	flush()
	content.Text = strings.Join(paragraphs, "\n\n")

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Link:
			structure.Links = append(structure.Links, core.Link{
				Text: strings.TrimSpace(plainText(node, src)),
				Href: string(node.Destination),
			})
		case *ast.AutoLink:
			structure.Links = append(structure.Links, core.Link{
				Text: string(node.Label(src)),
				Href: string(node.URL(src)),
			})
		case *ast.FencedCodeBlock, *ast.CodeBlock:
			structure.CodeBlocks++
		case *east.Table:
			structure.Tables++
		case *ast.ListItem:
			structure.Lists++
		}
		return ast.WalkContinue, nil
	})

	return content, structure
}
