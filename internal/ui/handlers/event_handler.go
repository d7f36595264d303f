package handlers

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"searchbox/internal/eventbus"
	"searchbox/internal/ui/state"
)

// StatusTTL is how long a status message stays on screen
const StatusTTL = 3 * time.Second

// ClearStatusMsg clears the status line if it still shows the message it was scheduled for
type ClearStatusMsg struct {
	Message string
}

// EventHandler handles domain events and updates state
type EventHandler struct {
	state *state.AppState
}

// NewEventHandler creates a new event handler
func NewEventHandler(appState *state.AppState) *EventHandler {
	return &EventHandler{state: appState}
}

// HandleEvent processes domain events and returns any necessary commands
func (h *EventHandler) HandleEvent(event eventbus.DomainEvent) tea.Cmd {
	switch e := event.(type) {
	case eventbus.ErrorEvent:
		// Result errors are shown in the results panel
		if e.Lane == eventbus.LaneSuggestions {
			return h.Status("Suggestions unavailable")
		}

	case eventbus.ConfigLoadedEvent:
		return h.Status(fmt.Sprintf("Loaded config from %s", e.Path))

	case eventbus.ConfigSavedEvent:
		return h.Status(fmt.Sprintf("Config saved to %s", e.Path))
	}

	return nil
}

// Status shows msg for StatusTTL
func (h *EventHandler) Status(msg string) tea.Cmd {
	h.state.SetStatus(msg)
	return tea.Tick(StatusTTL, func(time.Time) tea.Msg {
		return ClearStatusMsg{Message: msg}
	})
}

// ClearStatus handles a ClearStatusMsg
func (h *EventHandler) ClearStatus(msg ClearStatusMsg) {
	if h.state.StatusMessage == msg.Message {
		h.state.ClearStatus()
	}
}
