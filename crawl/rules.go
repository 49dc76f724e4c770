// Package crawl — link classification rules.
// Decides which hrefs point at other rendered pages and which page and
// anchor they name.
package crawl

import (
	"net/url"
	"path"
	"strings"
)

// staticExtensions are file extensions that never name a rendered page.
var staticExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true,
	".svg": true, ".webp": true, ".ico": true, ".bmp": true,
	".css": true, ".js": true, ".mjs": true,
	".woff": true, ".woff2": true, ".ttf": true, ".eot": true,
	".mp4": true, ".webm": true, ".mp3": true, ".wav": true,
	".zip": true, ".tar": true, ".gz": true,
	".pdf": true, ".md": true, ".json": true,
}

// IsExternal reports whether href leaves the generated docs (has a scheme
// or host, or is a mailto/javascript/tel link).
func IsExternal(href string) bool {
	parsed, err := url.Parse(href)
	if err != nil {
		return true
	}
	return parsed.Scheme != "" || parsed.Host != ""
}

// IsStaticAsset checks if an href points to a static asset rather than a page.
func IsStaticAsset(href string) bool {
	parsed, err := url.Parse(href)
	if err != nil {
		return false
	}
	ext := strings.ToLower(path.Ext(parsed.Path))
	return staticExtensions[ext]
}

// Target resolves a relative href found on page from into the page key and
// anchor it points at. ok is false for hrefs that do not name a page, such
// as external links, assets or links that climb out of the docs directory.
func Target(from, href string) (key, anchor string, ok bool) {
	if href == "" || IsExternal(href) || IsStaticAsset(href) {
		return "", "", false
	}
	parsed, err := url.Parse(href)
	if err != nil {
		return "", "", false
	}
	anchor = parsed.Fragment

	// A bare "#anchor" stays on the current page.
	if parsed.Path == "" {
		return from, anchor, true
	}

	p := path.Clean(parsed.Path)
	if strings.HasPrefix(p, "../") || p == ".." || strings.HasPrefix(p, "/") || strings.Contains(p, "/") {
		return "", "", false
	}
	return strings.TrimSuffix(p, ".html"), anchor, true
}
