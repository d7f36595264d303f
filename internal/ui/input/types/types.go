package types

import tea "github.com/charmbracelet/bubbletea"

// Mode is a state of the search box input machine
type Mode int

const (
	ModeIdle Mode = iota
	ModeSuggesting
	ModeCommitted
)

func (m Mode) String() string {
	switch m {
	case ModeSuggesting:
		return "suggesting"
	case ModeCommitted:
		return "committed"
	default:
		return "idle"
	}
}

// Action represents a command the model should execute
type Action interface {
	Type() string
}

// Context provides read-only access to model state needed for input handling
type Context interface {
	// SelectedTitle returns the title of the highlighted suggestion, if any
	SelectedTitle() (string, bool)
	PanelVisible() bool
	HasResults() bool
}

// ModeHandler handles input for a specific mode
type ModeHandler interface {
	// HandleKey processes a key message and returns actions and whether to consume the event
	HandleKey(msg tea.KeyMsg, ctx Context) ([]Action, bool)

	// Enter is called when entering this mode
	Enter(ctx Context) []Action

	// Exit is called when leaving this mode
	Exit(ctx Context) []Action

	// Name returns the mode name for display
	Name() string
}
