// Package render — PDF renderer.
// Lays out Markdown as a PDF with gofpdf, walking the Markdown syntax tree:
// headings get sized bold fonts, code blocks a shaded monospace block, list
// items a bullet. Images are not rendered.
package render

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/yuin/goldmark/ast"

	"github.com/gaurav-prasanna/docspipe/core"
)

// pdfCreationDate is stamped into every document. Together with a sorted
// catalog it makes re-runs produce identical bytes.
var pdfCreationDate = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// headingSizes maps heading levels to font sizes in points.
var headingSizes = map[int]float64{1: 18, 2: 15, 3: 13, 4: 12, 5: 11, 6: 10}

// PDFRenderer renders Markdown content as a PDF document.
type PDFRenderer struct{}

// NewPDFRenderer creates a PDFRenderer.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

// Render converts Markdown into PDF bytes.
func (r *PDFRenderer) Render(markdown string, meta core.DocMetadata) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetCreationDate(pdfCreationDate)
	pdf.SetCatalogSort(true)
	pdf.SetTitle(meta.Title, true)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	if meta.Source != "" {
		pdf.SetFont("Helvetica", "I", 9)
		pdf.SetTextColor(100, 100, 100)
		pdf.MultiCell(0, 5, tr("Source: "+meta.Source), "", "L", false)
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(4)
	}

	doc, src := parseMarkdown(markdown)
	for block := doc.FirstChild(); block != nil; block = block.NextSibling() {
		renderBlock(pdf, tr, block, src, 0)
	}

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("laying out PDF: %w", err)
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for PDF output.
func (r *PDFRenderer) Extension() string {
	return ".pdf"
}

func renderBlock(pdf *gofpdf.Fpdf, tr func(string) string, n ast.Node, src []byte, depth int) {
	indent := float64(depth) * 5

	switch node := n.(type) {
	case *ast.Heading:
		size, ok := headingSizes[node.Level]
		if !ok {
			size = 10
		}
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", size)
		pdf.MultiCell(0, size*0.6, tr(strings.TrimSpace(plainText(node, src))), "", "L", false)
		pdf.Ln(2)

	case *ast.FencedCodeBlock, *ast.CodeBlock:
		pdf.Ln(2)
		pdf.SetFont("Courier", "", 9)
		pdf.SetFillColor(245, 245, 245)
		for _, line := range strings.Split(codeLines(node, src), "\n") {
			pdf.SetX(pdf.GetX() + indent)
			pdf.MultiCell(0, 4.5, tr(line), "", "L", true)
		}
		pdf.Ln(2)

	case *ast.List:
		i := node.Start
		for item := node.FirstChild(); item != nil; item = item.NextSibling() {
			marker := "• "
			if node.IsOrdered() {
				marker = fmt.Sprintf("%d. ", i)
				i++
			}
			renderListItem(pdf, tr, item, src, depth, marker)
		}
		pdf.Ln(2)

	default:
		text := strings.TrimSpace(plainText(node, src))
		if text == "" {
			return
		}
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetX(pdf.GetX() + indent)
		pdf.MultiCell(0, 5, tr(text), "", "L", false)
		pdf.Ln(3)
	}
}

func renderListItem(pdf *gofpdf.Fpdf, tr func(string) string, item ast.Node, src []byte, depth int, marker string) {
	indent := float64(depth) * 5
	first := true
	for child := item.FirstChild(); child != nil; child = child.NextSibling() {
		if _, nested := child.(*ast.List); nested {
			renderBlock(pdf, tr, child, src, depth+1)
			continue
		}
		text := strings.TrimSpace(plainText(child, src))
		if first {
			text = marker + text
			first = false
		}
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetX(pdf.GetX() + indent)
		pdf.MultiCell(0, 5, tr(text), "", "L", false)
	}
}
