// Package core defines the requests and stage interfaces for docspipe.
// Each stage of the build is a clean, testable interface.
package core

// DocMetadata holds metadata describing a single rendered page.
type DocMetadata struct {
	Name   string `json:"name"`
	Title  string `json:"title"`
	Source string `json:"source"`
}

// Section represents a heading-delimited section of content.
type Section struct {
	Heading string `json:"heading"`
	Level   int    `json:"level"`
	Text    string `json:"text"`
}

// Heading represents a single heading found in the content.
type Heading struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
}

// Link represents a hyperlink found in the content.
type Link struct {
	Text string `json:"text"`
	Href string `json:"href"`
}

// DocContent holds the text and structured content of a page.
type DocContent struct {
	Text     string    `json:"text"`
	Markdown string    `json:"markdown"`
	Sections []Section `json:"sections"`
}

// DocStructure holds structural metadata parsed from the content.
type DocStructure struct {
	Headings   []Heading `json:"headings"`
	Links      []Link    `json:"links"`
	CodeBlocks int       `json:"code_blocks"`
	Tables     int       `json:"tables"`
	Lists      int       `json:"lists"`
}

// DocJSON is the complete JSON export for a single page.
type DocJSON struct {
	Metadata  DocMetadata  `json:"metadata"`
	Content   DocContent   `json:"content"`
	Structure DocStructure `json:"structure"`
}

// Loader reads and parses the docs-description file.
type Loader interface {
	Load(path string) (any, error)
}

// DocsRenderer turns a parsed docs description into HTML pages keyed by
// file stem.
type DocsRenderer interface {
	Render(input any) (map[string]string, error)
}

// Writer materializes rendered pages on disk.
type Writer interface {
	// WriteAll writes every page as <key>.html and returns the written paths.
	WriteAll(files map[string]string) ([]string, error)
	// WriteFile writes a single <key><ext> file.
	WriteFile(key, ext string, data []byte) (string, error)
}

// Extractor pulls the main content from a rendered page, stripping chrome.
type Extractor interface {
	Extract(html string) (string, error)
	// Title returns the page's title.
	Title(html string) (string, error)
}

// Normalizer converts cleaned HTML into Markdown (the canonical export format).
type Normalizer interface {
	Normalize(html string) (string, error)
}

// Renderer converts Markdown (and metadata) into a companion export format.
type Renderer interface {
	Render(markdown string, meta DocMetadata) ([]byte, error)
	// Extension returns the file extension for this renderer (e.g. ".md", ".pdf").
	Extension() string
}
