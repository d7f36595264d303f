package adapters

import (
	"strings"

	"searchbox/internal/domain"
	inputtypes "searchbox/internal/ui/input/types"
	"searchbox/internal/ui/services/requests"
	"searchbox/internal/ui/services/suggestions"
)

// InputContextAdapter adapts the suggestion store and request controller
// to the read-only view the input handler needs
type InputContextAdapter struct {
	store    *suggestions.Service
	requests *requests.Controller
}

// NewInputContextAdapter creates a new adapter
func NewInputContextAdapter(store *suggestions.Service, controller *requests.Controller) *InputContextAdapter {
	return &InputContextAdapter{store: store, requests: controller}
}

var _ inputtypes.Context = (*InputContextAdapter)(nil)

func (a *InputContextAdapter) SelectedTitle() (string, bool) {
	s, ok := a.store.CurrentSelection()
	if !ok {
		return "", false
	}
	term := CommitTerm(s)
	return term, term != ""
}

func (a *InputContextAdapter) PanelVisible() bool {
	return a.store.Visible()
}

// HasResults reports whether a result page is displayed without error
func (a *InputContextAdapter) HasResults() bool {
	return a.requests.Results() != nil && a.requests.ResultsErr() == nil
}

// CommitTerm is the text a suggestion searches for when chosen
func CommitTerm(s domain.Suggestion) string {
	if strings.TrimSpace(s.Title) != "" {
		return s.Title
	}
	return s.Name
}
