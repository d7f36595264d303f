package types

// Mode transition actions
type ChangeModeAction struct {
	Mode Mode
}

func (a ChangeModeAction) Type() string { return "change_mode" }

// Text input actions

// ScheduleSuggestAction debounces a suggestion fetch for a non-blank term
type ScheduleSuggestAction struct {
	Term string
}

func (a ScheduleSuggestAction) Type() string { return "schedule_suggest" }

// ClearSuggestionsAction empties the list right away
type ClearSuggestionsAction struct{}

func (a ClearSuggestionsAction) Type() string { return "clear_suggestions" }

// Suggestion panel actions
type MoveSelectionAction struct {
	Direction string // "next" or "prev"
}

func (a MoveSelectionAction) Type() string { return "move_selection" }

type HidePanelAction struct{}

func (a HidePanelAction) Type() string { return "hide_panel" }

// CommitAction runs a search. Enter, the search button and suggestion
// clicks all end up here.
type CommitAction struct {
	Term string
	Page int
}

func (a CommitAction) Type() string { return "commit" }

// ChangePageAction re-runs the displayed query one page forward or back
type ChangePageAction struct {
	Direction string // "next" or "prev"
}

func (a ChangePageAction) Type() string { return "change_page" }

type FocusInputAction struct{}

func (a FocusInputAction) Type() string { return "focus_input" }

// Command actions
type OpenPagerAction struct{}

func (a OpenPagerAction) Type() string { return "open_pager" }

type ToggleHelpAction struct{}

func (a ToggleHelpAction) Type() string { return "toggle_help" }

type QuitAction struct{}

func (a QuitAction) Type() string { return "quit" }
