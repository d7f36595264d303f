package input

import (
	"log"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"searchbox/internal/ui/input/modes"
	"searchbox/internal/ui/input/types"
)

// Handler is the search box state machine. It owns the input field and
// turns keys and clicks into actions for the model to execute.
type Handler struct {
	currentMode types.Mode
	modes       map[types.Mode]types.ModeHandler
	textInput   *textinput.Model
	keys        types.KeyMap
}

func New(placeholder string) *Handler {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = ""
	ti.Focus()

	keys := types.DefaultKeyMap()
	h := &Handler{
		currentMode: types.ModeIdle,
		textInput:   &ti,
		keys:        keys,
		modes:       make(map[types.Mode]types.ModeHandler),
	}

	h.modes[types.ModeIdle] = modes.NewIdleMode(keys, h.textInput)
	h.modes[types.ModeSuggesting] = modes.NewSuggestingMode(keys, h.textInput)
	h.modes[types.ModeCommitted] = modes.NewCommittedMode(keys, h.textInput)

	return h
}

// HandleKey runs the key through the current mode. Keys the mode does not
// consume edit the input field; an edit schedules or clears suggestions.
func (h *Handler) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, tea.Cmd) {
	handler := h.modes[h.currentMode]
	if handler == nil {
		return nil, nil
	}

	actions, consumed := handler.HandleKey(msg, ctx)

	var cmd tea.Cmd
	if !consumed {
		before := h.textInput.Value()
		*h.textInput, cmd = h.textInput.Update(msg)
		if after := h.textInput.Value(); after != before {
			actions = append(actions, modes.TextChanged(after)...)
		}
	}

	return h.applyModeChanges(actions, ctx), cmd
}

// HandlePointer turns a resolved click into the same actions the keyboard produces
func (h *Handler) HandlePointer(ev types.PointerEvent, ctx types.Context) []types.Action {
	var actions []types.Action
	switch ev.Target {
	case types.PointerSuggestion:
		actions = modes.Commit(ev.Term)
	case types.PointerSearchButton:
		actions = modes.SearchButton(h.textInput.Value())
	case types.PointerPage:
		actions = modes.ChangePage(ctx, ev.Direction)
	}
	return h.applyModeChanges(actions, ctx)
}

// SyncPanel follows the suggestion panel after a suggestion response:
// a visible panel means Suggesting, a panel that closed returns to Idle.
func (h *Handler) SyncPanel(visible bool, ctx types.Context) []types.Action {
	switch {
	case visible && h.currentMode != types.ModeSuggesting:
		return h.setMode(types.ModeSuggesting, ctx)
	case !visible && h.currentMode == types.ModeSuggesting:
		return h.setMode(types.ModeIdle, ctx)
	}
	return nil
}

// applyModeChanges performs ChangeModeActions and passes the rest through
func (h *Handler) applyModeChanges(actions []types.Action, ctx types.Context) []types.Action {
	var allActions []types.Action
	for _, action := range actions {
		if changeMode, ok := action.(types.ChangeModeAction); ok {
			allActions = append(allActions, h.setMode(changeMode.Mode, ctx)...)
			continue
		}
		allActions = append(allActions, action)
	}
	return allActions
}

func (h *Handler) setMode(mode types.Mode, ctx types.Context) []types.Action {
	if mode == h.currentMode {
		return nil
	}

	var actions []types.Action
	if current := h.modes[h.currentMode]; current != nil {
		actions = append(actions, current.Exit(ctx)...)
	}

	log.Printf("input: %s -> %s", h.currentMode, mode)
	h.currentMode = mode

	if next := h.modes[h.currentMode]; next != nil {
		actions = append(actions, next.Enter(ctx)...)
	}
	return actions
}

func (h *Handler) CurrentMode() types.Mode {
	return h.currentMode
}

func (h *Handler) Keys() types.KeyMap {
	return h.keys
}

func (h *Handler) TextInput() *textinput.Model {
	return h.textInput
}

func (h *Handler) Value() string {
	return h.textInput.Value()
}

// Focus gives the input field the cursor back
func (h *Handler) Focus() tea.Cmd {
	return h.textInput.Focus()
}

// Update handles non-keyboard messages for the input field (cursor blink)
func (h *Handler) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	*h.textInput, cmd = h.textInput.Update(msg)
	return cmd
}

// Init returns the initial command for the handler
func (h *Handler) Init() tea.Cmd {
	return textinput.Blink
}

// SetWidth sizes the input field
func (h *Handler) SetWidth(width int) {
	if width > 0 {
		h.textInput.Width = width
	}
}
