package modes

import (
	"github.com/charmbracelet/bubbles/textinput"

	"searchbox/internal/ui/input/types"
)

// CommittedMode shows results for the committed term and page
type CommittedMode struct {
	TextInputMode
}

func NewCommittedMode(keys types.KeyMap, ti *textinput.Model) *CommittedMode {
	return &CommittedMode{TextInputMode: NewTextInputMode(types.ModeCommitted, "committed", keys, ti)}
}
