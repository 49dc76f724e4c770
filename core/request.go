package core

// DefaultDocsFile is the docs-description file read when no other path is given.
const DefaultDocsFile = "docs.json"

// Request is one of the two messages that drive a build: ReadDocs or
// CreateDocsFiles. The set is closed; no other package can add a variant.
type Request interface {
	isRequest()
}

// ReadDocs asks for the docs-description file at Path (relative to the
// working directory) to be loaded and rendered.
type ReadDocs struct {
	Path string
}

// CreateDocsFiles carries rendered pages, keyed by file stem, to be written.
type CreateDocsFiles struct {
	Files map[string]string
}

func (ReadDocs) isRequest()        {}
func (CreateDocsFiles) isRequest() {}
