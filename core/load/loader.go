// Package load implements the Loader interface.
// It reads the docs-description file and parses it as JSON. The parsed value
// is handed to the DocsRenderer untouched; its shape is the renderer's concern.
package load

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gaurav-prasanna/docspipe/core"
)

// JSONLoader reads JSON docs descriptions from the local file system.
type JSONLoader struct {
	// WorkDir is the directory relative paths are resolved against.
	// Empty means the process working directory at load time.
	WorkDir string
}

// New creates a JSONLoader resolving paths against the working directory.
func New() *JSONLoader {
	return &JSONLoader{}
}

// Load reads path and returns the decoded JSON value.
func (l *JSONLoader) Load(path string) (any, error) {
	abs, err := l.resolve(path)
	if err != nil {
		return nil, core.Wrap(core.ErrFileNotFound, "read", path, err)
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, core.Wrap(core.ErrFileNotFound, "read", abs, err)
	}

	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, core.Wrap(core.ErrParse, "parse", abs, err)
	}
	return v, nil
}

func (l *JSONLoader) resolve(path string) (string, error) {
	if filepath.IsAbs(path) {
		return filepath.Clean(path), nil
	}
	dir := l.WorkDir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("getting working directory: %w", err)
		}
		dir = wd
	}
	return filepath.Join(dir, path), nil
}
