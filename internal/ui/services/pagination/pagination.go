// Package pagination derives prev/next controls from a result page.
// It holds no page state of its own; the displayed query is the source of truth.
package pagination

import tea "github.com/charmbracelet/bubbletea"

// Kind of a pagination control
type Kind string

const (
	KindPrev Kind = "prev"
	KindNext Kind = "next"
)

// Control is one button of the pagination strip
type Control struct {
	Kind       Kind
	TargetPage int
	Label      string
}

// PageChangeMsg asks for the displayed query to be re-run at Page
type PageChangeMsg struct {
	Page int
}

// PageCount returns ceil(total/limit), never negative
func PageCount(total, limit int) int {
	if total <= 0 || limit <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}

// VisibleControls returns prev iff current > 1 and next iff current < pageCount
func VisibleControls(current, pageCount int) []Control {
	if pageCount <= 1 {
		return nil
	}

	var controls []Control
	if current > 1 {
		controls = append(controls, Control{Kind: KindPrev, TargetPage: current - 1, Label: "Prev"})
	}
	if current < pageCount {
		controls = append(controls, Control{Kind: KindNext, TargetPage: current + 1, Label: "Next"})
	}
	return controls
}

// Service produces page-change messages for the update loop
type Service struct{}

func NewService() *Service {
	return &Service{}
}

// Controls returns the strip for a page of results
func (s *Service) Controls(page, total, limit int) []Control {
	return VisibleControls(page, PageCount(total, limit))
}

// Find returns the control of the given kind, if it is visible
func (s *Service) Find(controls []Control, kind Kind) (Control, bool) {
	for _, c := range controls {
		if c.Kind == kind {
			return c, true
		}
	}
	return Control{}, false
}

// Click emits a page change to the control's target page
func (s *Service) Click(c Control) tea.Cmd {
	page := c.TargetPage
	return func() tea.Msg {
		return PageChangeMsg{Page: page}
	}
}
