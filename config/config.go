// Package config holds docspipe's build configuration and its YAML loader.
package config

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/alecthomas/chroma/v2/styles"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/gaurav-prasanna/docspipe/core"
	"github.com/gaurav-prasanna/docspipe/core/output"
	"github.com/gaurav-prasanna/docspipe/core/site"
)

// Config represents the build configuration.
type Config struct {
	Input  string       `yaml:"input"`
	Output OutputConfig `yaml:"output"`
	Site   SiteConfig   `yaml:"site"`
	Log    LogConfig    `yaml:"log"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Input, validation.Required),
	); err != nil {
		return err
	}
	if err := c.Output.Validate(); err != nil {
		return fmt.Errorf("output: %w", err)
	}
	if err := c.Site.Validate(); err != nil {
		return fmt.Errorf("site: %w", err)
	}
	return nil
}

// OutputConfig controls where pages go and which companion formats are
// exported next to them.
type OutputConfig struct {
	Dir      string `yaml:"dir"`
	Markdown bool   `yaml:"markdown"`
	PDF      bool   `yaml:"pdf"`
	JSON     bool   `yaml:"json"`
}

// Validate validates the output configuration.
func (c *OutputConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Dir, validation.Required),
	)
}

// SiteConfig controls the default HTML renderer.
type SiteConfig struct {
	Title          string `yaml:"title"`
	Index          bool   `yaml:"index"`
	HighlightStyle string `yaml:"highlight_style"`
	CheckLinks     bool   `yaml:"check_links"`
}

// Validate validates the site configuration.
func (c *SiteConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Title, validation.Required),
		validation.Field(&c.HighlightStyle, validation.Required, validation.By(knownStyle)),
	)
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level slog.Level `yaml:"level"`
}

func knownStyle(value any) error {
	name, _ := value.(string)
	if _, ok := styles.Registry[name]; !ok {
		return errors.New("unknown highlight style")
	}
	return nil
}

// NewDefaultConfig returns a Config reproducing the plain build:
// docs.json in, docs/ out, no companion exports.
func NewDefaultConfig() *Config {
	return &Config{
		Input: core.DefaultDocsFile,
		Output: OutputConfig{
			Dir: output.DefaultDir,
		},
		Site: SiteConfig{
			Title:          site.DefaultTitle,
			HighlightStyle: site.DefaultHighlightStyle,
		},
		Log: LogConfig{
			Level: slog.LevelInfo,
		},
	}
}
