package effect

import "github.com/xtding233/towerclimb-backend/internal/content"

// TablesSource yields the current content snapshot. *content.Store implements it.
type TablesSource interface {
	Tables() *content.Tables
}

// Applier resolves scroll ids against live content and stamps effects with its clock.
type Applier struct {
	tables TablesSource
	clock  Clock
}

func NewApplier(tables TablesSource, clock Clock) *Applier {
	if clock == nil {
		clock = RealClock{}
	}
	return &Applier{tables: tables, clock: clock}
}

func (a *Applier) Clock() Clock { return a.clock }

// ApplyScroll consumes scrollID against st. Unknown scrolls are a silent
// no-op: ok is false and st comes back untouched.
func (a *Applier) ApplyScroll(scrollID string, st State) (out Outcome, ok bool) {
	scroll, found := a.tables.Tables().Scroll(scrollID)
	if !found {
		return Outcome{State: st}, false
	}
	return Apply(scrollID, scroll, st, a.clock.Now()), true
}

// CleanupExpired removes effects expired as of the applier's clock.
func (a *Applier) CleanupExpired(st State) (State, int) {
	kept, n := Cleanup(st.Effects, a.clock.Now())
	st.Effects = kept
	return st, n
}
