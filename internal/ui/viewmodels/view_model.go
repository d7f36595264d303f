package viewmodels

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/x/ansi"

	"searchbox/internal/config"
	"searchbox/internal/domain"
	"searchbox/internal/searchapi"
	"searchbox/internal/ui/services/highlight"
	"searchbox/internal/ui/services/pagination"
	"searchbox/internal/ui/services/requests"
	"searchbox/internal/ui/services/suggestions"
	"searchbox/internal/ui/state"
	"searchbox/internal/ui/views"
)

const NoResultsMessage = "No results found."

// ViewModel transforms application state into view-ready data
type ViewModel struct {
	state       *state.AppState
	config      *config.Config
	store       *suggestions.Service
	requests    *requests.Controller
	highlighter *highlight.Renderer
	pagination  *pagination.Service
	help        help.Model
	keys        help.KeyMap
	input       string
	mode        string
	spinner     string
}

// NewViewModel creates a new view model
func NewViewModel(appState *state.AppState, cfg *config.Config, store *suggestions.Service,
	reqs *requests.Controller, highlighter *highlight.Renderer, pager *pagination.Service) *ViewModel {
	return &ViewModel{
		state:       appState,
		config:      cfg,
		store:       store,
		requests:    reqs,
		highlighter: highlighter,
		pagination:  pager,
	}
}

// SetHelp sets the help model and the key map it describes
func (vm *ViewModel) SetHelp(helpModel help.Model, keys help.KeyMap) {
	vm.help = helpModel
	vm.keys = keys
}

// SetInput sets the rendered input field and the input state name
func (vm *ViewModel) SetInput(view, mode string) {
	vm.input = view
	vm.mode = mode
}

// SetSpinner sets the current spinner frame
func (vm *ViewModel) SetSpinner(frame string) {
	vm.spinner = frame
}

// BuildViewState creates a ViewState for rendering
func (vm *ViewModel) BuildViewState() views.ViewState {
	results := vm.ResultsPanel()

	var controls []views.PageControl
	if results.Shown && !results.IsError {
		controls = vm.PageControls()
	}

	helpView := ""
	if vm.keys != nil {
		helpView = vm.help.View(vm.keys)
	}

	return views.ViewState{
		Width:         vm.state.Width,
		Height:        vm.state.Height,
		Input:         vm.input,
		Mode:          vm.mode,
		Loading:       vm.requests.Loading(),
		Spinner:       vm.spinner,
		Suggestions:   vm.SuggestionPanel(),
		Results:       results,
		Pagination:    controls,
		StatusMessage: vm.state.StatusMessage,
		ShowHelp:      vm.help.ShowAll,
		HelpView:      helpView,
	}
}

// SuggestionPanel renders the suggestion list with the active marker
func (vm *ViewModel) SuggestionPanel() views.SuggestionPanel {
	panel := views.SuggestionPanel{Visible: vm.store.Visible()}
	selected := vm.store.SelectedIndex()

	for i, s := range vm.store.Items() {
		title := s.DisplayTitle()
		segments := highlight.Segments(title, s.Highlights)
		spans := make([]views.Span, len(segments))
		for j, seg := range segments {
			spans[j] = views.Span{Text: printable(seg.Text), Marked: seg.Highlighted}
		}
		panel.Items = append(panel.Items, views.SuggestionItem{
			Markup: vm.highlighter.Markup(title, s.Highlights),
			Spans:  spans,
			Active: i == selected,
		})
	}
	return panel
}

// ResultsPanel renders the committed search, its empty state or its error
func (vm *ViewModel) ResultsPanel() views.ResultsPanel {
	query := vm.requests.Query()
	page := vm.requests.Results()

	if err := vm.requests.ResultsErr(); err != nil {
		return views.ResultsPanel{
			Shown:   true,
			Term:    printable(query.Term),
			Message: "Search failed: " + describeError(err),
			IsError: true,
		}
	}
	if page == nil {
		return views.ResultsPanel{}
	}

	panel := views.ResultsPanel{
		Shown:     true,
		Term:      printable(query.Term),
		Page:      query.ActivePage,
		PageCount: pagination.PageCount(page.Total, vm.limit(page)),
		Total:     page.Total,
	}
	if len(page.Results) == 0 {
		panel.Message = NoResultsMessage
		return panel
	}
	for _, r := range page.Results {
		panel.Items = append(panel.Items, views.ResultItem{
			Title:    printable(r.DisplayTitle()),
			Link:     printable(r.Link()),
			Subtitle: printable(r.Subtitle),
		})
	}
	return panel
}

// Controls returns the pagination controls of the displayed page
func (vm *ViewModel) Controls() []pagination.Control {
	page := vm.requests.Results()
	if page == nil || vm.requests.ResultsErr() != nil {
		return nil
	}
	return vm.pagination.Controls(vm.requests.Query().ActivePage, page.Total, vm.limit(page))
}

// PageControls renders the pagination strip
func (vm *ViewModel) PageControls() []views.PageControl {
	var out []views.PageControl
	for _, c := range vm.Controls() {
		out = append(out, views.PageControl{Kind: string(c.Kind), Label: c.Label, TargetPage: c.TargetPage})
	}
	return out
}

func (vm *ViewModel) limit(page *domain.ResultPage) int {
	if page.Limit > 0 {
		return page.Limit
	}
	return vm.config.Limit
}

// describeError turns a request error into a short message for the results panel
func describeError(err error) string {
	var netErr *searchapi.NetworkError
	var malformed *searchapi.MalformedResponseError
	switch {
	case errors.As(err, &netErr) && netErr.Timeout():
		return "request timed out"
	case errors.As(err, &netErr) && netErr.StatusCode != 0:
		return fmt.Sprintf("service returned status %d", netErr.StatusCode)
	case errors.As(err, &netErr):
		return "service unreachable"
	case errors.As(err, &malformed):
		return "unexpected response from service"
	default:
		return printable(err.Error())
	}
}

// printable strips escape sequences and control characters from service
// text so it cannot drive the terminal. Tabs and newlines become spaces.
func printable(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\t', r == '\n', r == '\r':
			return ' '
		case unicode.IsControl(r):
			return -1
		}
		return r
	}, ansi.Strip(s))
}
