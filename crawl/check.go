// Package crawl checks the links between rendered pages.
// It crawls breadth-first from a start page (the index page when there is
// one), following internal hrefs, and reports links whose target page or
// anchor was not rendered. Pages the crawl never reaches are reported as
// orphans and then checked too. Nothing is fetched; the pages are checked
// in memory.
package crawl

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// StartPage is where the crawl begins when the pages include it.
const StartPage = "index"

// BrokenLink is an internal link whose target does not exist.
type BrokenLink struct {
	Page   string
	Href   string
	Reason string
}

// Report is the result of a link check.
type Report struct {
	Start   string
	Visited []string // pages in crawl order, orphans last
	Orphans []string // pages no link leads to from Start
	Broken  []BrokenLink
}

// frontier is a breadth-first queue of page keys that yields each key once.
type frontier struct {
	keys []string
	seen map[string]bool
}

func newFrontier() *frontier {
	return &frontier{seen: make(map[string]bool)}
}

// push enqueues key unless it was queued before. It reports whether key
// was new.
func (f *frontier) push(key string) bool {
	if f.seen[key] {
		return false
	}
	f.seen[key] = true
	f.keys = append(f.keys, key)
	return true
}

func (f *frontier) pop() (string, bool) {
	if len(f.keys) == 0 {
		return "", false
	}
	key := f.keys[0]
	f.keys = f.keys[1:]
	return key, true
}

// page is the parsed form of a rendered page.
type page struct {
	links []string
	ids   map[string]bool
}

// checker holds the state of one link check.
type checker struct {
	files  map[string]string
	pages  map[string]*page
	queue  *frontier
	report *Report
}

// Check crawls files (keyed like the writer's input) and reports broken
// internal links and orphaned pages.
func Check(files map[string]string) (*Report, error) {
	keys := slices.Sorted(maps.Keys(files))
	report := &Report{}
	if len(keys) == 0 {
		return report, nil
	}

	report.Start = keys[0]
	if _, ok := files[StartPage]; ok {
		report.Start = StartPage
	}

	c := &checker{
		files:  files,
		pages:  make(map[string]*page, len(files)),
		queue:  newFrontier(),
		report: report,
	}

	c.queue.push(report.Start)
	if err := c.drain(); err != nil {
		return nil, err
	}

	for _, key := range keys {
		if c.queue.push(key) {
			report.Orphans = append(report.Orphans, key)
			if err := c.drain(); err != nil {
				return nil, err
			}
		}
	}
	return report, nil
}

// drain visits queued pages until the queue is empty, enqueueing every
// page they link to.
func (c *checker) drain() error {
	for {
		current, ok := c.queue.pop()
		if !ok {
			return nil
		}
		c.report.Visited = append(c.report.Visited, current)

		p, err := c.parse(current)
		if err != nil {
			return err
		}
		for _, href := range p.links {
			if err := c.follow(current, href); err != nil {
				return err
			}
		}
	}
}

func (c *checker) follow(from, href string) error {
	key, anchor, ok := Target(from, href)
	if !ok {
		return nil
	}
	if _, exists := c.files[key]; !exists {
		c.report.Broken = append(c.report.Broken, BrokenLink{Page: from, Href: href, Reason: "no such page"})
		return nil
	}
	c.queue.push(key)
	if anchor == "" {
		return nil
	}

	target, err := c.parse(key)
	if err != nil {
		return err
	}
	if !target.ids[anchor] {
		c.report.Broken = append(c.report.Broken, BrokenLink{Page: from, Href: href, Reason: "no such anchor"})
	}
	return nil
}

func (c *checker) parse(key string) (*page, error) {
	if p, ok := c.pages[key]; ok {
		return p, nil
	}
	p, err := parsePage(c.files[key])
	if err != nil {
		return nil, fmt.Errorf("parsing page %s: %w", key, err)
	}
	c.pages[key] = p
	return p, nil
}

// parsePage extracts the hrefs and element ids of a page.
func parsePage(html string) (*page, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	p := &page{ids: make(map[string]bool)}
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		if href, ok := s.Attr("href"); ok && href != "" {
			p.links = append(p.links, href)
		}
	})
	doc.Find("[id]").Each(func(_ int, s *goquery.Selection) {
		if id, ok := s.Attr("id"); ok {
			p.ids[id] = true
		}
	})
	return p, nil
}
