package state

// AppState contains the UI state that no service owns.
// Suggestions live in the suggestion store and the displayed query in the
// request controller.
type AppState struct {
	// Terminal size
	Width  int
	Height int

	// UI state
	StatusMessage string // transient status line message
	InPagerMode   bool   // the terminal is handed to the pager
}

// NewAppState creates a new application state
func NewAppState() *AppState {
	return &AppState{}
}

// SetDimensions records the terminal size
func (s *AppState) SetDimensions(width, height int) {
	s.Width = width
	s.Height = height
}

// SetStatus sets the status line message
func (s *AppState) SetStatus(msg string) {
	s.StatusMessage = msg
}

// ClearStatus clears the status line message
func (s *AppState) ClearStatus() {
	s.StatusMessage = ""
}
