package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	mainPadTop  = 1
	mainPadLeft = 2

	promptText   = "› "
	searchButton = "[ Search ]"
	prevLabel    = "‹ "
	nextLabel    = " ›"
)

// Span is a piece of a suggestion title, marked when the service highlighted it
type Span struct {
	Text   string
	Marked bool
}

// SuggestionItem is one row of the suggestion panel
type SuggestionItem struct {
	Markup string // title with <mark> wrappers
	Spans  []Span
	Active bool
}

// SuggestionPanel is the list shown under the input
type SuggestionPanel struct {
	Visible bool
	Items   []SuggestionItem
}

// ResultItem is one search hit
type ResultItem struct {
	Title    string
	Link     string
	Subtitle string
}

// ResultsPanel is the committed search. Message replaces Items when set.
type ResultsPanel struct {
	Shown     bool
	Term      string
	Page      int
	PageCount int
	Total     int
	Items     []ResultItem
	Message   string
	IsError   bool
}

// PageControl is one button of the pagination strip
type PageControl struct {
	Kind       string // "prev" or "next"
	Label      string
	TargetPage int
}

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width         int
	Height        int
	Input         string // rendered input field
	Mode          string
	Loading       bool
	Spinner       string
	Suggestions   SuggestionPanel
	Results       ResultsPanel
	Pagination    []PageControl
	StatusMessage string
	ShowHelp      bool
	HelpView      string
}

// Renderer handles all view rendering
type Renderer struct {
	styles *Styles
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	return &Renderer{styles: NewStyles()}
}

// frame collects output lines and the clickable zones on them
type frame struct {
	lines  []string
	layout Layout
}

func (f *frame) add(lines ...string) {
	f.lines = append(f.lines, lines...)
}

// screenLine is the terminal row the next added line will land on
func (f *frame) screenLine() int {
	return len(f.lines) + mainPadTop
}

// Render produces the complete view and the click layout that goes with it
func (r *Renderer) Render(state ViewState) (string, Layout) {
	f := &frame{}

	f.add(r.renderTitle(state), "")
	r.renderInput(f, state)
	r.renderSuggestions(f, state.Suggestions)

	if state.Results.Shown {
		f.add("")
		r.renderResults(f, state.Results)
		r.renderPagination(f, state.Pagination)
	}

	if state.StatusMessage != "" {
		f.add("", r.styles.Dim.Render(state.StatusMessage))
	}

	helpText := r.renderHelp(state)
	helpLines := strings.Count(helpText, "\n") + 1

	// Push help to the bottom
	available := state.Height - 2*mainPadTop
	if padding := available - len(f.lines) - helpLines; padding > 0 {
		f.add(make([]string, padding)...)
	}
	f.add(helpText)

	mainStyle := r.styles.Main
	if state.Height > 0 {
		mainStyle = mainStyle.MaxHeight(state.Height)
	}
	return mainStyle.Render(strings.Join(f.lines, "\n")), f.layout
}

func (r *Renderer) renderTitle(state ViewState) string {
	logo := r.styles.Title.Render("searchbox")
	if !state.Loading {
		return logo
	}

	indicator := r.styles.StatusLoading.Render(strings.TrimSpace(state.Spinner + " Loading..."))
	termWidth := state.Width
	if termWidth <= 0 {
		termWidth = 80
	}
	padding := termWidth - 2*mainPadLeft - lipgloss.Width(logo) - lipgloss.Width(indicator)
	if padding < 2 {
		padding = 2
	}
	return logo + strings.Repeat(" ", padding) + indicator
}

func (r *Renderer) renderInput(f *frame, state ViewState) {
	line := r.styles.Prompt.Render(promptText) + state.Input
	col := mainPadLeft + lipgloss.Width(line) + 2

	f.layout.add(Zone{
		Target:   HitSearchButton,
		Line:     f.screenLine(),
		StartCol: col,
		EndCol:   col + lipgloss.Width(searchButton),
	})
	f.add(line + "  " + r.styles.Button.Render(searchButton))
}

func (r *Renderer) renderSuggestions(f *frame, panel SuggestionPanel) {
	if !panel.Visible {
		return
	}

	width := 0
	rows := make([]string, len(panel.Items))
	for i, item := range panel.Items {
		rows[i] = r.renderSuggestion(item)
		if w := lipgloss.Width(rows[i]); w > width {
			width = w
		}
	}

	for i, row := range rows {
		f.layout.add(Zone{
			Target:   HitSuggestion,
			Line:     f.screenLine(),
			StartCol: mainPadLeft,
			EndCol:   mainPadLeft + width,
			Index:    i,
		})
		f.add(row)
	}
}

func (r *Renderer) renderSuggestion(item SuggestionItem) string {
	base, mark, marker := r.styles.Suggestion, r.styles.Mark, "  "
	if item.Active {
		base, mark, marker = r.styles.ActiveRow, r.styles.ActiveMark, "▸ "
	}

	var b strings.Builder
	b.WriteString(base.Render(marker))
	for _, span := range item.Spans {
		if span.Marked {
			b.WriteString(mark.Render(span.Text))
		} else {
			b.WriteString(base.Render(span.Text))
		}
	}
	return b.String()
}

func (r *Renderer) renderResults(f *frame, panel ResultsPanel) {
	if panel.IsError {
		f.add(r.styles.StatusError.Render(panel.Message))
		return
	}

	header := fmt.Sprintf("Results for %q", panel.Term)
	if panel.PageCount > 1 {
		header += fmt.Sprintf(" · page %d of %d", panel.Page, panel.PageCount)
	}
	f.add(r.styles.ResultsHeader.Render(header))

	if panel.Message != "" {
		f.add(r.styles.Dim.Render(panel.Message))
		return
	}

	for _, item := range panel.Items {
		f.add(
			"  "+r.styles.ResultTitle.Render(item.Title),
			"    "+r.styles.ResultLink.Render(item.Link),
		)
		if item.Subtitle != "" {
			f.add("    " + r.styles.Dim.Render(item.Subtitle))
		}
	}
}

func (r *Renderer) renderPagination(f *frame, controls []PageControl) {
	if len(controls) == 0 {
		return
	}
	f.add("")

	line := f.screenLine()
	col := mainPadLeft
	parts := make([]string, 0, len(controls))
	for _, c := range controls {
		label := c.Label
		if c.Kind == "prev" {
			label = prevLabel + label
		} else {
			label = label + nextLabel
		}
		f.layout.add(Zone{
			Target:   HitPage,
			Line:     line,
			StartCol: col,
			EndCol:   col + lipgloss.Width(label),
			Kind:     c.Kind,
		})
		parts = append(parts, r.styles.PageButton.Render(label))
		col += lipgloss.Width(label) + 3
	}
	f.add(strings.Join(parts, "   "))
}

func (r *Renderer) renderHelp(state ViewState) string {
	if state.ShowHelp {
		return r.styles.HelpBox.Render(state.HelpView)
	}
	return r.styles.Help.Render(state.HelpView)
}

// RenderResultsPlain formats the results panel as plain text for a pager
func RenderResultsPlain(panel ResultsPanel) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Results for %q", panel.Term)
	if panel.PageCount > 0 {
		fmt.Fprintf(&b, " (page %d of %d, %d total)", panel.Page, panel.PageCount, panel.Total)
	}
	b.WriteString("\n\n")

	if panel.Message != "" {
		b.WriteString(panel.Message)
		b.WriteString("\n")
		return b.String()
	}
	for _, item := range panel.Items {
		b.WriteString(item.Title)
		b.WriteString("\n  ")
		b.WriteString(item.Link)
		b.WriteString("\n")
		if item.Subtitle != "" {
			b.WriteString("  ")
			b.WriteString(item.Subtitle)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}
