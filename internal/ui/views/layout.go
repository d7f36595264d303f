package views

// HitTarget is what a clickable zone of the screen stands for
type HitTarget int

const (
	HitNone HitTarget = iota
	HitSuggestion
	HitSearchButton
	HitPage
)

// Zone is a clickable rectangle one line high, in screen coordinates.
// StartCol is inclusive and EndCol exclusive.
type Zone struct {
	Target   HitTarget
	Line     int
	StartCol int
	EndCol   int
	Index    int    // suggestion index for HitSuggestion
	Kind     string // "prev" or "next" for HitPage
}

// Layout records where the last render put its clickable parts
type Layout struct {
	Zones []Zone
}

// Hit returns the zone under (x, y), if any
func (l Layout) Hit(x, y int) (Zone, bool) {
	for _, z := range l.Zones {
		if y == z.Line && x >= z.StartCol && x < z.EndCol {
			return z, true
		}
	}
	return Zone{}, false
}

func (l *Layout) add(z Zone) {
	l.Zones = append(l.Zones, z)
}
