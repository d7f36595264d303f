package suggestions

import "searchbox/internal/domain"

// State holds the suggestion list and its selection cursor
type State struct {
	Items         []domain.Suggestion
	SelectedIndex int  // -1 when nothing is selected
	Visible       bool // whether the suggestion panel is shown
}

// Direction of a selection move
type Direction string

const (
	DirectionNext Direction = "next"
	DirectionPrev Direction = "prev"
)

func (d Direction) delta() int {
	if d == DirectionPrev {
		return -1
	}
	return 1
}

// Event types
type SuggestionsChangedEvent struct {
	Count int
}

type SuggestionsClearedEvent struct{}

type SelectionMovedEvent struct {
	OldIndex int
	NewIndex int
}

type PanelVisibilityChangedEvent struct {
	Visible bool
}
