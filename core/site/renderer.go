// Package site implements the default DocsRenderer. It turns an Elm
// docs.json description into one HTML page per module, rendering doc
// comments as Markdown with syntax-highlighted code blocks.
package site

import (
	"bytes"
	"fmt"
	"html/template"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"

	"github.com/gaurav-prasanna/docspipe/core"
	"github.com/gaurav-prasanna/docspipe/core/docs"
)

const (
	// DefaultTitle names the documentation set when no title is configured.
	DefaultTitle = "Documentation"
	// DefaultHighlightStyle is the chroma style used for code blocks.
	DefaultHighlightStyle = "github"
	// IndexPage is the key of the optional module listing page.
	IndexPage = "index"
)

// Option configures an HTMLRenderer.
type Option func(*HTMLRenderer)

// WithTitle sets the documentation set title shown on every page.
func WithTitle(title string) Option {
	return func(r *HTMLRenderer) {
		r.title = title
	}
}

// WithIndex enables the index page listing every module.
func WithIndex(enabled bool) Option {
	return func(r *HTMLRenderer) {
		r.index = enabled
	}
}

// WithHighlightStyle selects the chroma style for code blocks.
func WithHighlightStyle(style string) Option {
	return func(r *HTMLRenderer) {
		r.style = style
	}
}

// HTMLRenderer renders docs.json modules into standalone HTML pages.
type HTMLRenderer struct {
	title string
	index bool
	style string

	md  goldmark.Markdown
	css template.CSS
}

// New creates an HTMLRenderer.
func New(opts ...Option) (*HTMLRenderer, error) {
	r := &HTMLRenderer{
		title: DefaultTitle,
		style: DefaultHighlightStyle,
	}
	for _, opt := range opts {
		opt(r)
	}

	style, ok := styles.Registry[r.style]
	if !ok {
		return nil, fmt.Errorf("unknown highlight style %q", r.style)
	}

	r.md = goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle(r.style),
				highlighting.WithFormatOptions(chromahtml.WithClasses(true)),
			),
		),
	)

	var css bytes.Buffer
	css.WriteString(baseCSS)
	if err := chromahtml.New(chromahtml.WithClasses(true)).WriteCSS(&css, style); err != nil {
		return nil, fmt.Errorf("writing highlight stylesheet: %w", err)
	}
	r.css = template.CSS(css.String())

	return r, nil
}

// Render implements core.DocsRenderer.
func (r *HTMLRenderer) Render(input any) (map[string]string, error) {
	modules, err := docs.Decode(input)
	if err != nil {
		return nil, core.Wrap(core.ErrRender, "render", "", err)
	}

	nav := make([]navLink, len(modules))
	for i, m := range modules {
		nav[i] = navLink{Name: m.Name, Href: m.PageName() + ".html"}
	}

	files := make(map[string]string, len(modules)+1)
	for i, m := range modules {
		page, err := r.renderModule(m, withCurrent(nav, i))
		if err != nil {
			return nil, core.Wrap(core.ErrRender, "render", m.Name, err)
		}
		files[m.PageName()] = page
	}

	if r.index {
		if _, taken := files[IndexPage]; taken {
			return nil, core.Errorf(core.ErrRender, "render", IndexPage, "a module page already uses the index name")
		}
		var buf bytes.Buffer
		if err := indexTemplate.Execute(&buf, indexView{Site: r.title, Style: r.css, Modules: nav}); err != nil {
			return nil, core.Wrap(core.ErrRender, "render", IndexPage, err)
		}
		files[IndexPage] = buf.String()
	}

	return files, nil
}

func (r *HTMLRenderer) renderModule(m docs.Module, nav []navLink) (string, error) {
	members, order, err := r.memberViews(m)
	if err != nil {
		return "", err
	}

	var sections []sectionView
	placed := make(map[string]bool, len(members))
	for _, seg := range splitComment(m.Comment) {
		if seg.markdown != "" {
			prose, err := r.markdown(seg.markdown)
			if err != nil {
				return "", err
			}
			sections = append(sections, sectionView{Prose: prose})
			continue
		}
		var views []memberView
		for _, name := range seg.members {
			v, ok := members[name]
			if !ok || placed[name] {
				continue
			}
			placed[name] = true
			views = append(views, v)
		}
		if len(views) > 0 {
			sections = append(sections, sectionView{Members: views})
		}
	}

	// Members no @docs line mentions still get documented, after the prose.
	var rest []memberView
	for _, name := range order {
		if !placed[name] {
			rest = append(rest, members[name])
		}
	}
	if len(rest) > 0 {
		sections = append(sections, sectionView{Members: rest})
	}

	var buf bytes.Buffer
	err = pageTemplate.Execute(&buf, pageView{
		Site:     r.title,
		Title:    m.Name,
		Style:    r.css,
		Nav:      nav,
		Sections: sections,
	})
	if err != nil {
		return "", fmt.Errorf("executing page template: %w", err)
	}
	return buf.String(), nil
}

// memberViews renders every documented member of m, returning them by name
// together with their declaration order.
func (r *HTMLRenderer) memberViews(m docs.Module) (map[string]memberView, []string, error) {
	members := make(map[string]memberView)
	var order []string
	add := func(name, kind, signature, comment string) error {
		html, err := r.markdown(comment)
		if err != nil {
			return fmt.Errorf("member %s: %w", name, err)
		}
		if _, dup := members[name]; !dup {
			order = append(order, name)
		}
		members[name] = memberView{Name: name, Kind: kind, Signature: signature, Comment: html}
		return nil
	}

	for _, u := range m.Unions {
		if err := add(u.Name, "union", u.Signature(), u.Comment); err != nil {
			return nil, nil, err
		}
	}
	for _, a := range m.Aliases {
		if err := add(a.Name, "alias", a.Signature(), a.Comment); err != nil {
			return nil, nil, err
		}
	}
	for _, v := range m.Values {
		if err := add(v.Name, "value", v.Signature(), v.Comment); err != nil {
			return nil, nil, err
		}
	}
	for _, o := range m.Binops {
		if err := add(o.Name, "binop", o.Signature(), o.Comment); err != nil {
			return nil, nil, err
		}
	}
	return members, order, nil
}

func (r *HTMLRenderer) markdown(src string) (template.HTML, error) {
	src = trimBlankLines(src)
	if src == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("converting markdown: %w", err)
	}
	return template.HTML(buf.String()), nil
}

func withCurrent(nav []navLink, current int) []navLink {
	out := make([]navLink, len(nav))
	copy(out, nav)
	out[current].Current = true
	return out
}
