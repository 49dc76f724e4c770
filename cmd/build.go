// Package cmd — build command.
// This is the command that wires the build together:
// load → render → write, plus optional companion exports.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/docspipe/config"
	"github.com/gaurav-prasanna/docspipe/core"
	"github.com/gaurav-prasanna/docspipe/core/dispatch"
	"github.com/gaurav-prasanna/docspipe/core/export"
	"github.com/gaurav-prasanna/docspipe/core/extract"
	"github.com/gaurav-prasanna/docspipe/core/load"
	"github.com/gaurav-prasanna/docspipe/core/normalize"
	"github.com/gaurav-prasanna/docspipe/core/output"
	"github.com/gaurav-prasanna/docspipe/core/render"
	"github.com/gaurav-prasanna/docspipe/core/site"
)

const (
	// defaultConfigFile is read when present and no config path is given.
	defaultConfigFile = "docspipe.yaml"
	// configEnvVar names the config file when --config is not set.
	configEnvVar = "DOCSPIPE_CONFIG"
)

// buildOptions holds the flag values of the build command.
type buildOptions struct {
	configPath string
	input      string
	outputDir  string
	markdown   bool
	pdf        bool
	json       bool
	index      bool
	checkLinks bool
	logLevel   string
}

func (o *buildOptions) register(cmd *cobra.Command) {
	flags := cmd.Flags()

	flags.StringVarP(&o.configPath, "config", "c", "", "Path to a YAML config file (default: docspipe.yaml if present)")

	// Input and output.
	flags.StringVar(&o.input, "input", core.DefaultDocsFile, "Docs description file, relative to the working directory")
	flags.StringVar(&o.outputDir, "output_dir", output.DefaultDir, "Output directory")

	// Companion export flags.
	flags.BoolVar(&o.markdown, "markdown", false, "Also export each page as Markdown")
	flags.BoolVar(&o.pdf, "pdf", false, "Also export each page as PDF")
	flags.BoolVar(&o.json, "json", false, "Also export each page as structured JSON")

	flags.BoolVar(&o.index, "index", false, "Add an index page listing every module")
	flags.BoolVar(&o.checkLinks, "check_links", false, "Warn about links to missing pages or anchors")
	flags.StringVar(&o.logLevel, "log_level", "info", "Log level (debug, info, warn, error)")
}

func runBuild(cmd *cobra.Command, opts *buildOptions) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: cfg.Log.Level,
	}))
	slog.SetDefault(logger)

	logger.Debug("configuration loaded",
		slog.String("input", cfg.Input),
		slog.String("output_dir", cfg.Output.Dir),
		slog.Bool("markdown", cfg.Output.Markdown),
		slog.Bool("pdf", cfg.Output.PDF),
		slog.Bool("json", cfg.Output.JSON))

	renderer, err := site.New(
		site.WithTitle(cfg.Site.Title),
		site.WithIndex(cfg.Site.Index),
		site.WithHighlightStyle(cfg.Site.HighlightStyle),
	)
	if err != nil {
		return fmt.Errorf("initializing renderer: %w", err)
	}

	writer, err := output.New(cfg.Output.Dir)
	if err != nil {
		return fmt.Errorf("initializing output writer: %w", err)
	}

	dispatchOpts := []dispatch.Option{
		dispatch.WithLogger(logger),
		dispatch.WithOutput(cmd.OutOrStdout()),
		dispatch.WithLinkCheck(cfg.Site.CheckLinks),
	}
	if renderers := selectRenderers(cfg.Output); len(renderers) > 0 {
		exporter := export.New(extract.New(), normalize.New(), cfg.Input, renderers...)
		dispatchOpts = append(dispatchOpts, dispatch.WithExporter(exporter))
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return dispatch.New(load.New(), renderer, writer, dispatchOpts...).Run(ctx, cfg.Input)
}

// loadConfig layers defaults, the config file and explicitly set flags.
func loadConfig(cmd *cobra.Command, opts *buildOptions) (*config.Config, error) {
	cfg := config.NewDefaultConfig()

	path := opts.configPath
	if path == "" {
		path = os.Getenv(configEnvVar)
	}
	if path != "" {
		if err := config.Load(path, cfg); err != nil {
			return nil, err
		}
	} else if _, err := config.LoadOptional(defaultConfigFile, cfg); err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("input") {
		cfg.Input = opts.input
	}
	if flags.Changed("output_dir") {
		cfg.Output.Dir = opts.outputDir
	}
	if flags.Changed("markdown") {
		cfg.Output.Markdown = opts.markdown
	}
	if flags.Changed("pdf") {
		cfg.Output.PDF = opts.pdf
	}
	if flags.Changed("json") {
		cfg.Output.JSON = opts.json
	}
	if flags.Changed("index") {
		cfg.Site.Index = opts.index
	}
	if flags.Changed("check_links") {
		cfg.Site.CheckLinks = opts.checkLinks
	}
	if flags.Changed("log_level") {
		if err := cfg.Log.Level.UnmarshalText([]byte(opts.logLevel)); err != nil {
			return nil, fmt.Errorf("invalid --log_level %q: %w", opts.logLevel, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// selectRenderers returns the companion renderers enabled in cfg, in a
// fixed order.
func selectRenderers(cfg config.OutputConfig) []core.Renderer {
	var renderers []core.Renderer
	if cfg.Markdown {
		renderers = append(renderers, render.NewMarkdownRenderer())
	}
	if cfg.JSON {
		renderers = append(renderers, render.NewJSONRenderer())
	}
	if cfg.PDF {
		renderers = append(renderers, render.NewPDFRenderer())
	}
	return renderers
}
