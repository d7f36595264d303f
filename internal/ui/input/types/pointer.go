package types

// PointerTarget is the part of the screen a click landed on
type PointerTarget int

const (
	PointerNone PointerTarget = iota
	PointerSuggestion
	PointerSearchButton
	PointerPage
)

// PointerEvent is a click already resolved against the rendered layout
type PointerEvent struct {
	Target    PointerTarget
	Term      string // suggestion title for PointerSuggestion
	Direction string // "next" or "prev" for PointerPage
}
