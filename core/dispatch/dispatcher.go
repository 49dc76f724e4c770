// Package dispatch sequences a docs build.
//
// A build is driven by two requests: ReadDocs loads and renders the docs
// description, then hands the rendered pages on as CreateDocsFiles, which
// writes them. The handoff is a direct call; nothing is queued or retried.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"slices"

	"github.com/gaurav-prasanna/docspipe/core"
	"github.com/gaurav-prasanna/docspipe/core/export"
	"github.com/gaurav-prasanna/docspipe/crawl"
)

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the logger used for build diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}

// WithOutput sets where progress lines ("✓ Written: ...") are printed.
func WithOutput(w io.Writer) Option {
	return func(d *Dispatcher) {
		d.out = w
	}
}

// WithExporter enables companion exports after the pages are written.
func WithExporter(e *export.Exporter) Option {
	return func(d *Dispatcher) {
		d.exporter = e
	}
}

// WithLinkCheck enables a check of the links between rendered pages.
// Broken links are logged as warnings and do not fail the build.
func WithLinkCheck(enabled bool) Option {
	return func(d *Dispatcher) {
		d.checkLinks = enabled
	}
}

// Dispatcher routes build requests to the loader, renderer and writer.
type Dispatcher struct {
	loader   core.Loader
	renderer core.DocsRenderer
	writer   core.Writer
	exporter *export.Exporter
	logger   *slog.Logger
	out      io.Writer

	checkLinks bool
}

// New creates a Dispatcher.
func New(loader core.Loader, renderer core.DocsRenderer, writer core.Writer, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		loader:   loader,
		renderer: renderer,
		writer:   writer,
		logger:   slog.Default(),
		out:      io.Discard,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Run performs a full build from the docs description at path.
func (d *Dispatcher) Run(ctx context.Context, path string) error {
	return d.Dispatch(ctx, core.ReadDocs{Path: path})
}

// Dispatch handles a single request. Handling ReadDocs dispatches the
// resulting CreateDocsFiles before returning.
func (d *Dispatcher) Dispatch(ctx context.Context, req core.Request) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	switch r := req.(type) {
	case core.ReadDocs:
		return d.readDocs(ctx, r)
	case core.CreateDocsFiles:
		return d.createDocsFiles(ctx, r)
	default:
		return &core.OpError{Op: "dispatch", Kind: core.ErrUnknownRequest, Err: fmt.Errorf("%T", req)}
	}
}

func (d *Dispatcher) readDocs(ctx context.Context, req core.ReadDocs) error {
	d.logger.Debug("reading docs", slog.String("path", req.Path))

	input, err := d.loader.Load(req.Path)
	if err != nil {
		return err
	}

	files, err := d.renderer.Render(input)
	if err != nil {
		var opErr *core.OpError
		if !errors.As(err, &opErr) {
			err = core.Wrap(core.ErrRender, "render", req.Path, err)
		}
		return err
	}
	if files == nil {
		files = map[string]string{}
	}

	d.logger.Debug("rendered docs", slog.String("path", req.Path), slog.Int("pages", len(files)))
	return d.Dispatch(ctx, core.CreateDocsFiles{Files: files})
}

func (d *Dispatcher) createDocsFiles(ctx context.Context, req core.CreateDocsFiles) error {
	paths, err := d.writer.WriteAll(req.Files)
	for _, p := range paths {
		fmt.Fprintf(d.out, "✓ Written: %s\n", p)
	}
	if err != nil {
		return err
	}
	d.logger.Info("docs written", slog.Int("pages", len(paths)))

	if d.checkLinks {
		if err := d.checkPageLinks(req.Files); err != nil {
			return err
		}
	}

	if !d.exporter.Enabled() {
		return nil
	}
	for _, key := range slices.Sorted(maps.Keys(req.Files)) {
		if err := ctx.Err(); err != nil {
			return err
		}
		artifacts, err := d.exporter.Export(key, req.Files[key])
		if err != nil {
			return err
		}
		for _, a := range artifacts {
			path, err := d.writer.WriteFile(key, a.Ext, a.Data)
			if err != nil {
				return err
			}
			fmt.Fprintf(d.out, "✓ Written: %s\n", path)
		}
	}
	return nil
}

func (d *Dispatcher) checkPageLinks(files map[string]string) error {
	report, err := crawl.Check(files)
	if err != nil {
		return core.Wrap(core.ErrRender, "check links", "", err)
	}
	for _, key := range report.Orphans {
		d.logger.Warn("page not linked", slog.String("page", key), slog.String("from", report.Start))
	}
	for _, b := range report.Broken {
		d.logger.Warn("broken link",
			slog.String("page", b.Page),
			slog.String("href", b.Href),
			slog.String("reason", b.Reason))
	}
	d.logger.Debug("links checked",
		slog.Int("pages", len(report.Visited)),
		slog.Int("orphans", len(report.Orphans)),
		slog.Int("broken", len(report.Broken)))
	return nil
}
