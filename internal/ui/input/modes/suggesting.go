package modes

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"searchbox/internal/ui/input/types"
)

// SuggestingMode is active while the suggestion panel is visible.
// Arrows move the selection.
type SuggestingMode struct {
	TextInputMode
}

func NewSuggestingMode(keys types.KeyMap, ti *textinput.Model) *SuggestingMode {
	return &SuggestingMode{TextInputMode: NewTextInputMode(types.ModeSuggesting, "suggesting", keys, ti)}
}

func (m *SuggestingMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch {
	case key.Matches(msg, m.keys.Down):
		return []types.Action{types.MoveSelectionAction{Direction: "next"}}, true

	case key.Matches(msg, m.keys.Up):
		return []types.Action{types.MoveSelectionAction{Direction: "prev"}}, true

	}

	return m.TextInputMode.HandleKey(msg, ctx)
}
