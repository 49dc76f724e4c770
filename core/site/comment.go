package site

import (
	"strings"
)

// segment is a run of a module comment: either Markdown prose or the
// member names listed on one or more consecutive @docs lines.
type segment struct {
	markdown string
	members  []string
}

// splitComment breaks a module comment on its @docs directives.
func splitComment(comment string) []segment {
	var (
		out   []segment
		prose []string
	)
	flush := func() {
		text := trimBlankLines(strings.Join(prose, "\n"))
		if text != "" {
			out = append(out, segment{markdown: text})
		}
		prose = nil
	}

	for _, line := range strings.Split(comment, "\n") {
		rest, ok := strings.CutPrefix(strings.TrimSpace(line), "@docs")
		if !ok || (rest != "" && rest[0] != ' ' && rest[0] != '\t') {
			prose = append(prose, line)
			continue
		}
		flush()
		names := parseDocsLine(rest)
		if n := len(out); n > 0 && out[n-1].markdown == "" {
			out[n-1].members = append(out[n-1].members, names...)
		} else {
			out = append(out, segment{members: names})
		}
	}
	flush()
	return out
}

// parseDocsLine splits "a, b, (+)" into member names, dropping operator
// parentheses.
func parseDocsLine(s string) []string {
	var names []string
	for _, part := range strings.Split(s, ",") {
		name := strings.TrimSpace(part)
		name = strings.TrimSuffix(strings.TrimPrefix(name, "("), ")")
		if name != "" {
			names = append(names, name)
		}
	}
	return names
}

// trimBlankLines drops leading and trailing blank lines. The indentation of
// the first non-blank line is kept, since four leading spaces start a code
// block.
func trimBlankLines(s string) string {
	s = strings.TrimRight(s, " \t\r\n")
	for {
		line, rest, ok := strings.Cut(s, "\n")
		if !ok || strings.TrimSpace(line) != "" {
			return s
		}
		s = rest
	}
}
