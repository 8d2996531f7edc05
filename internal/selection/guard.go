// Package selection keeps scalar selection fields (value, text, selected) or
// list selection fields (values, selected items) consistent with an item
// store without update cycles.
package selection

// Phase is the state of a Guard.
type Phase int

const (
	Idle        Phase = iota
	Reconciling       // a pass is writing the paired fields
)

// String returns the display name for a phase.
func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Reconciling:
		return "reconciling"
	default:
		return "unknown"
	}
}

// Guard serializes reconciliation passes over one field group. Writes to the
// group are only permitted from Idle; anything that re-enters while a pass
// is running is dropped.
type Guard struct {
	phase  Phase
	passes int
}

// Do runs fn as one reconciliation pass. It reports false without calling fn
// when a pass is already running. The guard is released on every exit path
// of fn, including a panic.
func (g *Guard) Do(fn func()) bool {
	if g.phase != Idle {
		return false
	}
	g.phase = Reconciling
	defer func() { g.phase = Idle }()
	g.passes++
	fn()
	return true
}

// Phase returns the current phase.
func (g *Guard) Phase() Phase {
	return g.phase
}

// Busy reports whether a pass is running.
func (g *Guard) Busy() bool {
	return g.phase == Reconciling
}

// Passes returns the number of passes started since creation.
func (g *Guard) Passes() int {
	return g.passes
}
