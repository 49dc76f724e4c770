// Package output handles file naming and writing for docspipe outputs.
// Every page is written as <dir>/<key>.html; companion exports share the
// same stem with their own extension.
package output

import (
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gaurav-prasanna/docspipe/core"
)

// DefaultDir is the output directory used when none is configured.
const DefaultDir = "docs"

// HTMLExt is the extension of rendered pages.
const HTMLExt = ".html"

// Writer writes rendered output to disk.
type Writer struct {
	OutputDir string
}

// New creates a Writer targeting the given output directory, resolved
// against the current working directory. If outputDir is empty it defaults
// to DefaultDir. The directory itself is only created on the first write.
func New(outputDir string) (*Writer, error) {
	if outputDir == "" {
		outputDir = DefaultDir
	}
	if !filepath.IsAbs(outputDir) {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
		outputDir = filepath.Join(wd, outputDir)
	}
	return &Writer{OutputDir: outputDir}, nil
}

// EnsureDir creates the output directory if it does not exist yet.
// An existing directory is left untouched.
func (w *Writer) EnsureDir() error {
	info, err := os.Stat(w.OutputDir)
	switch {
	case err == nil && info.IsDir():
		return nil
	case err == nil:
		return core.Errorf(core.ErrDirectoryCreate, "mkdir", w.OutputDir, "path exists and is not a directory")
	case !errors.Is(err, fs.ErrNotExist):
		return core.Wrap(core.ErrDirectoryCreate, "mkdir", w.OutputDir, err)
	}

	if err := os.MkdirAll(w.OutputDir, 0755); err != nil {
		return core.Wrap(core.ErrDirectoryCreate, "mkdir", w.OutputDir, err)
	}
	return nil
}

// WriteAll writes every entry of files as <key>.html, stopping at the first
// failure. Keys are written in sorted order.
func (w *Writer) WriteAll(files map[string]string) ([]string, error) {
	if err := w.EnsureDir(); err != nil {
		return nil, err
	}

	paths := make([]string, 0, len(files))
	for _, key := range slices.Sorted(maps.Keys(files)) {
		path, err := w.write(key, HTMLExt, []byte(files[key]))
		if err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// WriteFile writes data as <key><ext>, replacing any existing file.
func (w *Writer) WriteFile(key, ext string, data []byte) (string, error) {
	if err := w.EnsureDir(); err != nil {
		return "", err
	}
	return w.write(key, ext, data)
}

func (w *Writer) write(key, ext string, data []byte) (string, error) {
	if err := checkKey(key); err != nil {
		return "", core.Wrap(core.ErrWrite, "write", key+ext, err)
	}

	path := filepath.Join(w.OutputDir, key+ext)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", core.Wrap(core.ErrWrite, "write", path, err)
	}
	return path, nil
}

// checkKey rejects keys that would not name a single file inside the
// output directory.
func checkKey(key string) error {
	switch {
	case key == "":
		return errors.New("empty document name")
	case key == "." || key == "..":
		return fmt.Errorf("invalid document name %q", key)
	case strings.ContainsAny(key, `/\`) || strings.ContainsRune(key, 0):
		return fmt.Errorf("document name %q contains a path separator", key)
	}
	return nil
}
