package modes

import (
	"github.com/charmbracelet/bubbles/textinput"

	"searchbox/internal/ui/input/types"
)

// IdleMode is the resting state: no panel, no committed search yet or the
// user dismissed the panel.
type IdleMode struct {
	TextInputMode
}

func NewIdleMode(keys types.KeyMap, ti *textinput.Model) *IdleMode {
	return &IdleMode{TextInputMode: NewTextInputMode(types.ModeIdle, "idle", keys, ti)}
}
