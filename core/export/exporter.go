// Package export converts rendered pages into companion formats.
// Each page runs through extract → normalize → render once per enabled
// renderer; the HTML page itself is never modified.
package export

import (
	"fmt"

	"github.com/gaurav-prasanna/docspipe/core"
)

// Artifact is one companion file produced for a page.
type Artifact struct {
	Ext  string
	Data []byte
}

// Exporter runs rendered pages through the companion pipeline.
type Exporter struct {
	extractor  core.Extractor
	normalizer core.Normalizer
	renderers  []core.Renderer
	source     string
}

// New creates an Exporter. source names the docs-description file and is
// recorded in each export's metadata.
func New(extractor core.Extractor, normalizer core.Normalizer, source string, renderers ...core.Renderer) *Exporter {
	return &Exporter{
		extractor:  extractor,
		normalizer: normalizer,
		renderers:  renderers,
		source:     source,
	}
}

// Enabled reports whether any companion format is configured.
func (e *Exporter) Enabled() bool {
	return e != nil && len(e.renderers) > 0
}

// Export converts the page named name into every configured format.
func (e *Exporter) Export(name, page string) ([]Artifact, error) {
	if !e.Enabled() {
		return nil, nil
	}

	content, err := e.extractor.Extract(page)
	if err != nil {
		return nil, core.Wrap(core.ErrRender, "extract", name, err)
	}
	markdown, err := e.normalizer.Normalize(content)
	if err != nil {
		return nil, core.Wrap(core.ErrRender, "normalize", name, err)
	}
	title, err := e.extractor.Title(page)
	if err != nil {
		return nil, core.Wrap(core.ErrRender, "extract", name, err)
	}

	meta := core.DocMetadata{Name: name, Title: title, Source: e.source}
	artifacts := make([]Artifact, 0, len(e.renderers))
	for _, r := range e.renderers {
		data, err := r.Render(markdown, meta)
		if err != nil {
			return nil, core.Wrap(core.ErrRender, "export", name+r.Extension(), fmt.Errorf("render: %w", err))
		}
		artifacts = append(artifacts, Artifact{Ext: r.Extension(), Data: data})
	}
	return artifacts, nil
}
