package suggestions

import (
	"searchbox/internal/domain"
	"searchbox/internal/ui/services/events"
)

// Service owns the suggestion list of one search box
type Service struct {
	state *State
	bus   events.EventBus
}

// NewService creates an empty, hidden suggestion store
func NewService(bus events.EventBus) *Service {
	if bus == nil {
		bus = &events.NullBus{}
	}
	return &Service{
		state: &State{SelectedIndex: -1},
		bus:   bus,
	}
}

// SetSuggestions replaces the list and resets the selection.
// The panel is shown only when there is something to show.
func (s *Service) SetSuggestions(items []domain.Suggestion) {
	s.state.Items = append([]domain.Suggestion(nil), items...)
	s.state.SelectedIndex = -1
	s.bus.Publish(SuggestionsChangedEvent{Count: len(items)})
	s.setVisible(len(items) > 0)
}

// Clear empties the list, resets the selection and hides the panel
func (s *Service) Clear() {
	s.state.Items = nil
	s.state.SelectedIndex = -1
	s.bus.Publish(SuggestionsClearedEvent{})
	s.setVisible(false)
}

// Hide hides the panel but keeps the list and selection
func (s *Service) Hide() {
	s.setVisible(false)
}

// Show reveals the panel again if there is anything in it
func (s *Service) Show() {
	s.setVisible(len(s.state.Items) > 0)
}

// MoveSelection moves the cursor one step with wraparound in both directions.
// From no selection, next lands on the first item and prev on the last.
func (s *Service) MoveSelection(direction Direction) {
	n := len(s.state.Items)
	if n == 0 {
		return
	}

	old := s.state.SelectedIndex
	switch {
	case old < 0 && direction == DirectionPrev:
		s.state.SelectedIndex = n - 1
	case old < 0:
		s.state.SelectedIndex = 0
	default:
		s.state.SelectedIndex = (old + direction.delta() + n) % n
	}

	s.bus.Publish(SelectionMovedEvent{OldIndex: old, NewIndex: s.state.SelectedIndex})
}

// CurrentSelection returns the selected suggestion, if any
func (s *Service) CurrentSelection() (domain.Suggestion, bool) {
	i := s.state.SelectedIndex
	if i < 0 || i >= len(s.state.Items) {
		return domain.Suggestion{}, false
	}
	return s.state.Items[i], true
}

// At returns the suggestion at index, if it exists
func (s *Service) At(index int) (domain.Suggestion, bool) {
	if index < 0 || index >= len(s.state.Items) {
		return domain.Suggestion{}, false
	}
	return s.state.Items[index], true
}

// Items returns the current list
func (s *Service) Items() []domain.Suggestion {
	return s.state.Items
}

// Len returns the number of suggestions
func (s *Service) Len() int {
	return len(s.state.Items)
}

// SelectedIndex returns the cursor, -1 when unset
func (s *Service) SelectedIndex() int {
	return s.state.SelectedIndex
}

// Visible reports whether the panel is shown
func (s *Service) Visible() bool {
	return s.state.Visible
}

func (s *Service) setVisible(visible bool) {
	if s.state.Visible == visible {
		return
	}
	s.state.Visible = visible
	s.bus.Publish(PanelVisibilityChangedEvent{Visible: visible})
}
