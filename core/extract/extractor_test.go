package extract

import (
	"strings"
	"testing"
)

const page = `<!DOCTYPE html>
<html><head><title>Foo - Docs</title><style>body{}</style></head>
<body><nav><a href="Bar.html">Bar</a></nav>
<main><h1>Foo</h1><p>Foo does things.</p><script>alert(1)</script></main>
</body></html>`

func TestExtract_MainWithoutChrome(t *testing.T) {
	got, err := New().Extract(page)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if !strings.HasPrefix(got, "<main>") {
		t.Errorf("expected <main> container, got %q", got)
	}
	for _, unwanted := range []string{"<nav", "<script", "Bar.html", "body{}"} {
		if strings.Contains(got, unwanted) {
			t.Errorf("extracted content still contains %q: %q", unwanted, got)
		}
	}
	if !strings.Contains(got, "Foo does things.") {
		t.Errorf("content lost: %q", got)
	}
}

func TestExtract_FallsBackToBody(t *testing.T) {
	got, err := New().Extract(`<html><body><p>plain</p></body></html>`)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if !strings.HasPrefix(got, "<body>") || !strings.Contains(got, "plain") {
		t.Errorf("got %q", got)
	}
}

func TestTitle(t *testing.T) {
	title, err := New().Title(page)
	if err != nil {
		t.Fatalf("Title: %v", err)
	}
	if title != "Foo - Docs" {
		t.Errorf("title = %q, want %q", title, "Foo - Docs")
	}

	title, err = New().Title(`<html><body><h1> Heading </h1></body></html>`)
	if err != nil {
		t.Fatalf("Title: %v", err)
	}
	if title != "Heading" {
		t.Errorf("fallback title = %q, want %q", title, "Heading")
	}
}
