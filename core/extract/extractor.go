// Package extract implements the Extractor interface.
// It isolates the documentation body of a rendered page by:
//  1. Removing page chrome (navigation, styles, scripts, forms)
//  2. Selecting the best content container (<main>, <article>, or <body>)
package extract

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// chromeSelectors are elements removed before extraction. They carry
// presentation or navigation, not documentation.
var chromeSelectors = []string{
	"script", "style", "noscript", "link", "meta",
	"nav", "footer", "header",
	"img", "picture", "iframe", "video", "audio",
	"svg", "canvas",
	"form", "button", "input", "select", "textarea",
}

// HTMLExtractor strips chrome from a page and returns its main content fragment.
type HTMLExtractor struct{}

// New creates an HTMLExtractor.
func New() *HTMLExtractor {
	return &HTMLExtractor{}
}

// Extract takes a full HTML page and returns a cleaned fragment holding
// only the main content.
func (e *HTMLExtractor) Extract(html string) (string, error) {
	doc, err := parse(html)
	if err != nil {
		return "", err
	}

	for _, sel := range chromeSelectors {
		doc.Find(sel).Remove()
	}

	var content *goquery.Selection
	for _, tag := range []string{"main", "article", "body"} {
		sel := doc.Find(tag)
		if sel.Length() > 0 {
			content = sel.First()
			break
		}
	}

	if content == nil {
		return "", fmt.Errorf("no content container found in HTML")
	}

	result, err := goquery.OuterHtml(content)
	if err != nil {
		return "", fmt.Errorf("serializing content: %w", err)
	}

	return result, nil
}

// Title returns the page title: the <title> element, falling back to the
// first <h1>.
func (e *HTMLExtractor) Title(html string) (string, error) {
	doc, err := parse(html)
	if err != nil {
		return "", err
	}
	if t := strings.TrimSpace(doc.Find("head title").First().Text()); t != "" {
		return t, nil
	}
	return strings.TrimSpace(doc.Find("h1").First().Text()), nil
}

func parse(html string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	return doc, nil
}
