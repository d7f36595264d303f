// Package highlight turns a title and the service's highlight ranges into
// marked-up text. Ranges are inclusive at both ends and count UTF-16 code
// units, the way the search service measures titles.
package highlight

import (
	"html"
	"sort"
	"strings"
	"unicode/utf16"

	"searchbox/internal/domain"
)

const (
	DefaultOpen  = "<mark>"
	DefaultClose = "</mark>"
)

// Segment is a run of title text that is either highlighted or not
type Segment struct {
	Text        string
	Highlighted bool
}

// Renderer wraps highlighted spans in Open/Close markers
type Renderer struct {
	Open   string
	Close  string
	Escape bool // HTML-escape title text before it is embedded in markup
}

// NewRenderer returns a renderer using <mark> markers
func NewRenderer(escape bool) *Renderer {
	return &Renderer{Open: DefaultOpen, Close: DefaultClose, Escape: escape}
}

// Render marks up a suggestion using its display title
func (r *Renderer) Render(s domain.Suggestion) string {
	return r.Markup(s.DisplayTitle(), s.Highlights)
}

// Markup wraps each range of title in the markers and copies the rest verbatim
func (r *Renderer) Markup(title string, ranges []domain.HighlightRange) string {
	if len(ranges) == 0 && !r.Escape {
		return title
	}

	var b strings.Builder
	for _, seg := range Segments(title, ranges) {
		text := seg.Text
		if r.Escape {
			text = html.EscapeString(text)
		}
		if seg.Highlighted {
			b.WriteString(r.Open)
			b.WriteString(text)
			b.WriteString(r.Close)
		} else {
			b.WriteString(text)
		}
	}
	return b.String()
}

// Segments splits title at the range boundaries. Ranges are expected in
// ascending, non-overlapping order; out-of-bounds or backwards ranges are
// clipped rather than trusted. A boundary inside a surrogate pair snaps to
// the whole character.
func Segments(title string, ranges []domain.HighlightRange) []Segment {
	runes := []rune(title)
	if len(ranges) == 0 {
		if len(runes) == 0 {
			return nil
		}
		return []Segment{{Text: title}}
	}

	offsets := unitOffsets(runes)
	var segs []Segment
	last := 0
	for _, rg := range ranges {
		if rg.End < 0 || rg.Start > rg.End {
			continue
		}
		start, end := runeIndex(offsets, rg.Start), runeIndex(offsets, rg.End)
		if start < last {
			start = last
		}
		if end >= len(runes) {
			end = len(runes) - 1
		}
		if start > end {
			continue
		}
		if start > last {
			segs = append(segs, Segment{Text: string(runes[last:start])})
		}
		segs = append(segs, Segment{Text: string(runes[start : end+1]), Highlighted: true})
		last = end + 1
	}
	if last < len(runes) {
		segs = append(segs, Segment{Text: string(runes[last:])})
	}
	return segs
}

// unitOffsets returns the UTF-16 offset at which each rune starts, followed
// by the total length in units
func unitOffsets(runes []rune) []int {
	offsets := make([]int, len(runes)+1)
	n := 0
	for i, r := range runes {
		offsets[i] = n
		if w := utf16.RuneLen(r); w > 0 {
			n += w
		} else {
			n++
		}
	}
	offsets[len(runes)] = n
	return offsets
}

// runeIndex maps a UTF-16 offset to the rune that contains it.
// Offsets past the end map to the rune count.
func runeIndex(offsets []int, unit int) int {
	n := len(offsets) - 1
	if unit <= 0 {
		return 0
	}
	if unit >= offsets[n] {
		return n
	}
	return sort.Search(n, func(i int) bool { return offsets[i+1] > unit })
}
