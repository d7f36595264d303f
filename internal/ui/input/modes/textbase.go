package modes

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"searchbox/internal/ui/input/types"
)

// TextInputMode holds the key handling every search box state shares.
// Keys it does not consume are typed into the input field.
type TextInputMode struct {
	mode      types.Mode
	name      string
	keys      types.KeyMap
	textInput *textinput.Model
}

func NewTextInputMode(mode types.Mode, name string, keys types.KeyMap, ti *textinput.Model) TextInputMode {
	return TextInputMode{
		mode:      mode,
		name:      name,
		keys:      keys,
		textInput: ti,
	}
}

func (m TextInputMode) Name() string {
	return m.name
}

func (m TextInputMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m TextInputMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m TextInputMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return []types.Action{types.QuitAction{}}, true

	case key.Matches(msg, m.keys.Help):
		return []types.Action{types.ToggleHelpAction{}}, true

	case key.Matches(msg, m.keys.Pager):
		return []types.Action{types.OpenPagerAction{}}, true

	case key.Matches(msg, m.keys.SearchButton):
		return SearchButton(m.value()), true

	case key.Matches(msg, m.keys.Commit):
		// A selection kept behind a hidden panel still wins over the raw input
		if title, ok := ctx.SelectedTitle(); ok {
			return Commit(title), true
		}
		return Commit(m.value()), true

	case key.Matches(msg, m.keys.Hide):
		return []types.Action{
			types.HidePanelAction{},
			types.ChangeModeAction{Mode: types.ModeIdle},
		}, true

	case key.Matches(msg, m.keys.NextPage):
		return ChangePage(ctx, "next"), true

	case key.Matches(msg, m.keys.PrevPage):
		return ChangePage(ctx, "prev"), true

	case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
		// No panel to move through
		return nil, true
	}

	return nil, false
}

func (m TextInputMode) value() string {
	if m.textInput == nil {
		return ""
	}
	return m.textInput.Value()
}

// Commit searches term at page 1 and closes the panel. Blank terms are ignored.
func Commit(term string) []types.Action {
	if strings.TrimSpace(term) == "" {
		return nil
	}
	return []types.Action{
		types.CommitAction{Term: term, Page: 1},
		types.HidePanelAction{},
		types.ChangeModeAction{Mode: types.ModeCommitted},
	}
}

// SearchButton commits the trimmed input and always returns focus to it
func SearchButton(value string) []types.Action {
	actions := Commit(strings.TrimSpace(value))
	return append(actions, types.FocusInputAction{})
}

// ChangePage moves through the displayed results, if there are any
func ChangePage(ctx types.Context, direction string) []types.Action {
	if !ctx.HasResults() {
		return nil
	}
	return []types.Action{types.ChangePageAction{Direction: direction}}
}

// TextChanged reacts to an edit of the input field
func TextChanged(value string) []types.Action {
	term := strings.TrimSpace(value)
	if term == "" {
		return []types.Action{
			types.ClearSuggestionsAction{},
			types.ChangeModeAction{Mode: types.ModeIdle},
		}
	}
	return []types.Action{types.ScheduleSuggestAction{Term: term}}
}
