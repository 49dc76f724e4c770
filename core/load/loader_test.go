package load

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gaurav-prasanna/docspipe/core"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestLoad_RelativeToWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "docs.json"), `{"modules":[{"name":"Foo"}]}`)
	t.Chdir(dir)

	v, err := New().Load("docs.json")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	obj, ok := v.(map[string]any)
	if !ok {
		t.Fatalf("value = %T, want map[string]any", v)
	}
	modules, ok := obj["modules"].([]any)
	if !ok || len(modules) != 1 {
		t.Fatalf("modules = %v", obj["modules"])
	}
}

func TestLoad_WorkDirOverride(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "in.json"), `[1, 2, 3]`)

	v, err := (&JSONLoader{WorkDir: dir}).Load("in.json")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if arr, ok := v.([]any); !ok || len(arr) != 3 {
		t.Errorf("value = %v, want 3-element array", v)
	}
}

func TestLoad_AbsolutePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "abs.json")
	writeFile(t, path, `"hello"`)

	v, err := (&JSONLoader{WorkDir: "/nonexistent"}).Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if v != "hello" {
		t.Errorf("value = %v, want hello", v)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	dir := t.TempDir()
	_, err := (&JSONLoader{WorkDir: dir}).Load("docs.json")
	if !errors.Is(err, core.ErrFileNotFound) {
		t.Fatalf("err = %v, want ErrFileNotFound", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected underlying os.ErrNotExist, got %v", err)
	}
	if !strings.Contains(err.Error(), filepath.Join(dir, "docs.json")) {
		t.Errorf("error should name the path: %v", err)
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	cases := map[string]string{
		"malformed": `{not valid json`,
		"empty":     ``,
		"trailing":  `{} {}`,
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, filepath.Join(dir, "docs.json"), content)
			_, err := (&JSONLoader{WorkDir: dir}).Load("docs.json")
			if !errors.Is(err, core.ErrParse) {
				t.Errorf("err = %v, want ErrParse", err)
			}
		})
	}
}
