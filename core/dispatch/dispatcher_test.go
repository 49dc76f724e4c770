package dispatch

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gaurav-prasanna/docspipe/core"
	"github.com/gaurav-prasanna/docspipe/core/export"
	"github.com/gaurav-prasanna/docspipe/core/extract"
	"github.com/gaurav-prasanna/docspipe/core/load"
	"github.com/gaurav-prasanna/docspipe/core/normalize"
	"github.com/gaurav-prasanna/docspipe/core/output"
	"github.com/gaurav-prasanna/docspipe/core/render"
)

// stubRenderer maps every module name in {"modules":[{"name":...}]} to a
// fixed page.
type stubRenderer struct {
	calls int
}

func (s *stubRenderer) Render(input any) (map[string]string, error) {
	s.calls++
	files := map[string]string{}
	obj, _ := input.(map[string]any)
	modules, _ := obj["modules"].([]any)
	for _, m := range modules {
		name, _ := m.(map[string]any)["name"].(string)
		files[name] = "<html>" + name + " docs</html>"
	}
	return files, nil
}

type funcRenderer func(any) (map[string]string, error)

func (f funcRenderer) Render(input any) (map[string]string, error) { return f(input) }

// workspace creates a temporary working directory holding docs.json with
// the given content (or no docs.json when content is empty).
func workspace(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	if content != "" {
		if err := os.WriteFile(filepath.Join(dir, core.DefaultDocsFile), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func newDispatcher(t *testing.T, renderer core.DocsRenderer, opts ...Option) *Dispatcher {
	t.Helper()
	w, err := output.New("")
	if err != nil {
		t.Fatalf("output.New: %v", err)
	}
	return New(load.New(), renderer, w, opts...)
}

func listDocs(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(filepath.Join(dir, output.DefaultDir))
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name()
	}
	return names
}

func assertNoDocsDir(t *testing.T, dir string) {
	t.Helper()
	if _, err := os.Stat(filepath.Join(dir, output.DefaultDir)); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("docs dir should not exist, stat err = %v", err)
	}
}

func TestRun_EndToEnd(t *testing.T) {
	dir := workspace(t, `{"modules":[{"name":"Foo"}]}`)
	var out bytes.Buffer
	d := newDispatcher(t, &stubRenderer{}, WithOutput(&out))

	if err := d.Run(context.Background(), core.DefaultDocsFile); err != nil {
		t.Fatalf("Run: %v", err)
	}

	names := listDocs(t, dir)
	if len(names) != 1 || names[0] != "Foo.html" {
		t.Fatalf("docs = %v, want [Foo.html]", names)
	}
	got, err := os.ReadFile(filepath.Join(dir, "docs", "Foo.html"))
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "<html>Foo docs</html>" {
		t.Errorf("Foo.html = %q", got)
	}
	if !strings.Contains(out.String(), "✓ Written: ") || !strings.Contains(out.String(), "Foo.html") {
		t.Errorf("progress output = %q", out.String())
	}
}

func TestRun_Idempotent(t *testing.T) {
	dir := workspace(t, `{"modules":[{"name":"Foo"},{"name":"Bar"}]}`)
	d := newDispatcher(t, &stubRenderer{})

	snapshot := func() map[string]string {
		m := map[string]string{}
		for _, name := range listDocs(t, dir) {
			b, err := os.ReadFile(filepath.Join(dir, "docs", name))
			if err != nil {
				t.Fatal(err)
			}
			m[name] = string(b)
		}
		return m
	}

	if err := d.Run(context.Background(), core.DefaultDocsFile); err != nil {
		t.Fatalf("first Run: %v", err)
	}
	first := snapshot()
	if err := d.Run(context.Background(), core.DefaultDocsFile); err != nil {
		t.Fatalf("second Run: %v", err)
	}
	second := snapshot()

	if len(first) != 2 || len(first) != len(second) {
		t.Fatalf("first = %v, second = %v", first, second)
	}
	for name, content := range first {
		if second[name] != content {
			t.Errorf("%s changed between runs", name)
		}
	}
}

func TestRun_ExistingDocsDirKeepsUnrelatedFiles(t *testing.T) {
	dir := workspace(t, `{"modules":[{"name":"Foo"}]}`)
	if err := os.Mkdir(filepath.Join(dir, "docs"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "docs", "README.txt"), []byte("hi"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := newDispatcher(t, &stubRenderer{}).Run(context.Background(), core.DefaultDocsFile); err != nil {
		t.Fatalf("Run: %v", err)
	}
	names := listDocs(t, dir)
	if len(names) != 2 {
		t.Errorf("docs = %v, want Foo.html and README.txt", names)
	}
}

func TestRun_MissingInput(t *testing.T) {
	dir := workspace(t, "")
	r := &stubRenderer{}
	err := newDispatcher(t, r).Run(context.Background(), core.DefaultDocsFile)
	if !errors.Is(err, core.ErrFileNotFound) {
		t.Fatalf("err = %v, want ErrFileNotFound", err)
	}
	if r.calls != 0 {
		t.Errorf("renderer called %d times after a failed load", r.calls)
	}
	assertNoDocsDir(t, dir)
}

func TestRun_MalformedInput(t *testing.T) {
	dir := workspace(t, `{not valid json`)
	err := newDispatcher(t, &stubRenderer{}).Run(context.Background(), core.DefaultDocsFile)
	if !errors.Is(err, core.ErrParse) {
		t.Fatalf("err = %v, want ErrParse", err)
	}
	assertNoDocsDir(t, dir)
}

func TestRun_EmptyMapping(t *testing.T) {
	dir := workspace(t, `{}`)
	empty := funcRenderer(func(any) (map[string]string, error) { return nil, nil })

	if err := newDispatcher(t, empty).Run(context.Background(), core.DefaultDocsFile); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if names := listDocs(t, dir); len(names) != 0 {
		t.Errorf("docs = %v, want empty", names)
	}
}

func TestRun_RendererErrorIsClassified(t *testing.T) {
	dir := workspace(t, `{}`)
	failing := funcRenderer(func(any) (map[string]string, error) { return nil, errors.New("bad schema") })

	err := newDispatcher(t, failing).Run(context.Background(), core.DefaultDocsFile)
	if !errors.Is(err, core.ErrRender) {
		t.Fatalf("err = %v, want ErrRender", err)
	}
	if !strings.Contains(err.Error(), "bad schema") {
		t.Errorf("cause lost: %v", err)
	}
	assertNoDocsDir(t, dir)
}

func TestRun_WriteErrorStopsBuild(t *testing.T) {
	workspace(t, `{}`)
	bad := funcRenderer(func(any) (map[string]string, error) {
		return map[string]string{"../escape": "x"}, nil
	})
	err := newDispatcher(t, bad).Run(context.Background(), core.DefaultDocsFile)
	if !errors.Is(err, core.ErrWrite) {
		t.Errorf("err = %v, want ErrWrite", err)
	}
}

func TestDispatch_CreateDocsFilesDirectly(t *testing.T) {
	dir := workspace(t, "")
	d := newDispatcher(t, &stubRenderer{})
	req := core.CreateDocsFiles{Files: map[string]string{"Direct": "<p>direct</p>"}}
	if err := d.Dispatch(context.Background(), req); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if names := listDocs(t, dir); len(names) != 1 || names[0] != "Direct.html" {
		t.Errorf("docs = %v", names)
	}
}

func TestDispatch_UnknownRequest(t *testing.T) {
	workspace(t, "")
	err := newDispatcher(t, &stubRenderer{}).Dispatch(context.Background(), nil)
	if !errors.Is(err, core.ErrUnknownRequest) {
		t.Errorf("err = %v, want ErrUnknownRequest", err)
	}
}

func TestDispatch_CancelledContext(t *testing.T) {
	dir := workspace(t, `{"modules":[{"name":"Foo"}]}`)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := newDispatcher(t, &stubRenderer{}).Run(ctx, core.DefaultDocsFile)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	assertNoDocsDir(t, dir)
}

func TestRun_CompanionExports(t *testing.T) {
	dir := workspace(t, `{"modules":[{"name":"Foo"}]}`)
	page := funcRenderer(func(any) (map[string]string, error) {
		return map[string]string{"Foo": "<html><head><title>Foo</title></head><body><main><h1>Foo</h1><p>Body.</p></main></body></html>"}, nil
	})
	exp := export.New(extract.New(), normalize.New(), core.DefaultDocsFile,
		render.NewMarkdownRenderer(), render.NewJSONRenderer(), render.NewPDFRenderer())

	if err := newDispatcher(t, page, WithExporter(exp)).Run(context.Background(), core.DefaultDocsFile); err != nil {
		t.Fatalf("Run: %v", err)
	}
	names := strings.Join(listDocs(t, dir), ",")
	if names != "Foo.html,Foo.json,Foo.md,Foo.pdf" {
		t.Errorf("docs = %s", names)
	}
}

func TestRun_LinkCheckWarns(t *testing.T) {
	workspace(t, `{"modules":[{"name":"Foo"}]}`)
	page := funcRenderer(func(any) (map[string]string, error) {
		return map[string]string{
			"Foo": `<html><body><a href="Bar.html">Bar</a><a href="Foo.html#top">top</a><h1 id="top">Foo</h1></body></html>`,
		}, nil
	})
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	err := newDispatcher(t, page, WithLogger(logger), WithLinkCheck(true)).Run(context.Background(), core.DefaultDocsFile)
	if err != nil {
		t.Fatalf("broken links must not fail the build: %v", err)
	}
	out := logs.String()
	if !strings.Contains(out, "broken link") || !strings.Contains(out, "href=Bar.html") {
		t.Errorf("missing broken link warning:\n%s", out)
	}
	if strings.Contains(out, "Foo.html#top") {
		t.Errorf("valid anchor reported as broken:\n%s", out)
	}
}

func TestRun_LinkCheckReportsOrphans(t *testing.T) {
	workspace(t, `{"modules":[{"name":"Foo"}]}`)
	page := funcRenderer(func(any) (map[string]string, error) {
		return map[string]string{
			"index": `<a href="Foo.html">Foo</a>`,
			"Foo":   `<p>Foo</p>`,
			"Lost":  `<p>Lost</p>`,
		}, nil
	})
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	if err := newDispatcher(t, page, WithLogger(logger), WithLinkCheck(true)).Run(context.Background(), core.DefaultDocsFile); err != nil {
		t.Fatalf("Run: %v", err)
	}
	out := logs.String()
	if !strings.Contains(out, "page not linked") || !strings.Contains(out, "page=Lost") {
		t.Errorf("missing orphan warning:\n%s", out)
	}
	if strings.Contains(out, "page=Foo from") {
		t.Errorf("linked page reported as orphan:\n%s", out)
	}
}
