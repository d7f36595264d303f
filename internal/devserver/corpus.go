package devserver

import (
	"encoding/json"
	"fmt"
	"os"
	"unicode"
	"unicode/utf16"
)

// Document is one searchable entry of the fixture corpus
type Document struct {
	Title    string `json:"title"`
	Path     string `json:"path"`
	Subtitle string `json:"article_subtitle,omitempty"`
}

// LoadCorpus reads a JSON array of documents
func LoadCorpus(path string) ([]Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading corpus: %w", err)
	}
	var docs []Document
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("parsing corpus %s: %w", path, err)
	}
	return docs, nil
}

// SampleCorpus is served when no corpus file is given
func SampleCorpus() []Document {
	return []Document{
		{Title: "Category Pages", Path: "/docs/category-pages", Subtitle: "Group articles under a shared landing page"},
		{Title: "Caching Strategies", Path: "/docs/caching", Subtitle: "CDN and browser cache configuration"},
		{Title: "Catalog Import", Path: "/docs/catalog-import", Subtitle: "Bulk import of product data"},
		{Title: "Dogs and Cats", Path: "/blog/dogs-and-cats", Subtitle: "A guide to pet friendly offices"},
		{Title: "Deploying Previews", Path: "/docs/previews", Subtitle: "Preview every branch before publishing"},
		{Title: "Indexing Content", Path: "/docs/indexing", Subtitle: "How query indexes are built"},
		{Title: "Search Block", Path: "/docs/blocks/search", Subtitle: "Autocomplete and paged results"},
		{Title: "Sheets as Data", Path: "/docs/sheets", Subtitle: "Serving spreadsheets as JSON"},
		{Title: "Redirects", Path: "/docs/redirects", Subtitle: "Managing moved pages"},
		{Title: "Sitemaps", Path: "/docs/sitemaps", Subtitle: "Generating sitemap indexes"},
		{Title: "Publishing Workflow", Path: "/docs/publishing", Subtitle: "From draft to live"},
		{Title: "Metadata", Path: "/docs/metadata", Subtitle: "Page level metadata and SEO"},
	}
}

// matchRanges returns the non-overlapping, ascending, inclusive rune ranges
// where needle occurs in haystack, compared case-insensitively
func matchRanges(haystack, needle string) [][2]int {
	h := []rune(haystack)
	n := []rune(needle)
	if len(n) == 0 || len(n) > len(h) {
		return nil
	}

	var ranges [][2]int
	for i := 0; i+len(n) <= len(h); {
		if equalFold(h[i:i+len(n)], n) {
			ranges = append(ranges, [2]int{i, i + len(n) - 1})
			i += len(n)
			continue
		}
		i++
	}
	return ranges
}

func equalFold(a, b []rune) bool {
	for i := range a {
		if unicode.ToLower(a[i]) != unicode.ToLower(b[i]) {
			return false
		}
	}
	return true
}

// unitRanges converts rune ranges of s into UTF-16 code unit ranges, the
// offsets the wire contract uses
func unitRanges(s string, ranges [][2]int) [][2]int {
	if len(ranges) == 0 {
		return nil
	}
	runes := []rune(s)
	starts := make([]int, len(runes)+1)
	for i, r := range runes {
		w := utf16.RuneLen(r)
		if w < 1 {
			w = 1
		}
		starts[i+1] = starts[i] + w
	}
	out := make([][2]int, len(ranges))
	for i, rg := range ranges {
		out[i] = [2]int{starts[rg[0]], starts[rg[1]+1] - 1}
	}
	return out
}
