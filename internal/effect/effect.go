// Package effect applies scroll bonuses to a player's active effect list and
// expires them. Functions here never mutate their inputs; callers commit the
// returned state.
package effect

import (
	"time"

	"github.com/xtding233/towerclimb-backend/internal/content"
)

// Type is an effect category. A player holds at most one effect per Type.
type Type string

const (
	ExpBoost             Type = "expBoost"
	GoldBoost            Type = "goldBoost"
	DropBoost            Type = "dropBoost"
	EnhancementGuarantee Type = "enhancementGuarantee"
)

// ActiveEffect is a timed bonus in force until ExpiresAt.
type ActiveEffect struct {
	Type       Type      `json:"type"`
	Multiplier float64   `json:"multiplier,omitempty"`
	Guaranteed bool      `json:"guaranteed,omitempty"`
	ExpiresAt  time.Time `json:"expiresAt"`
	Source     string    `json:"source,omitempty"` // scroll id
}

// Live reports whether the effect is still in force at now.
func (e ActiveEffect) Live(now time.Time) bool { return e.ExpiresAt.After(now) }

// State is the effect-related slice of a player record.
type State struct {
	Effects       []ActiveEffect
	RebirthPoints int
}

// Outcome is the result of consuming one scroll.
type Outcome struct {
	State        State
	Applied      []Type // timed categories replaced or added, in application order
	RebirthBonus int    // permanent points granted
}

// timed lists scroll effect slots in application order.
func timed(e content.ScrollEffects) []struct {
	t Type
	b *content.TimedBonus
} {
	return []struct {
		t Type
		b *content.TimedBonus
	}{
		{ExpBoost, e.ExpBoost},
		{GoldBoost, e.GoldBoost},
		{DropBoost, e.DropBoost},
		{EnhancementGuarantee, e.EnhancementGuarantee},
	}
}

// Apply consumes scroll against st at now. Each timed bonus replaces any
// existing effect of the same Type with one expiring at now+duration.
// A rebirth bonus is added to RebirthPoints and creates no effect.
func Apply(scrollID string, scroll content.Scroll, st State, now time.Time) Outcome {
	effects := append([]ActiveEffect(nil), st.Effects...)
	var applied []Type

	for _, slot := range timed(scroll.Effects) {
		if slot.b == nil {
			continue
		}
		effects = without(effects, slot.t)
		effects = append(effects, ActiveEffect{
			Type:       slot.t,
			Multiplier: slot.b.Multiplier,
			Guaranteed: slot.b.Guaranteed,
			ExpiresAt:  now.Add(slot.b.Duration.Std()),
			Source:     scrollID,
		})
		applied = append(applied, slot.t)
	}

	out := Outcome{
		State:   State{Effects: effects, RebirthPoints: st.RebirthPoints},
		Applied: applied,
	}
	if rb := scroll.Effects.RebirthBonus; rb != nil {
		out.RebirthBonus = rb.APBonus
		out.State.RebirthPoints += rb.APBonus
	}
	return out
}

// Cleanup drops every effect with ExpiresAt <= now and reports how many went.
// A nil list stays nil.
func Cleanup(effects []ActiveEffect, now time.Time) ([]ActiveEffect, int) {
	if effects == nil {
		return nil, 0
	}
	kept := make([]ActiveEffect, 0, len(effects))
	for _, e := range effects {
		if e.Live(now) {
			kept = append(kept, e)
		}
	}
	return kept, len(effects) - len(kept)
}

// Find returns the live effect of type t, if any.
func Find(effects []ActiveEffect, t Type, now time.Time) (ActiveEffect, bool) {
	for _, e := range effects {
		if e.Type == t && e.Live(now) {
			return e, true
		}
	}
	return ActiveEffect{}, false
}

// Multiplier returns the live multiplier for t, or 1 when none is active.
func Multiplier(effects []ActiveEffect, t Type, now time.Time) float64 {
	if e, ok := Find(effects, t, now); ok && e.Multiplier > 0 {
		return e.Multiplier
	}
	return 1
}

// Guaranteed reports whether the next enhancement is guaranteed to succeed.
func Guaranteed(effects []ActiveEffect, now time.Time) bool {
	e, ok := Find(effects, EnhancementGuarantee, now)
	return ok && e.Guaranteed
}

func without(effects []ActiveEffect, t Type) []ActiveEffect {
	out := effects[:0]
	for _, e := range effects {
		if e.Type != t {
			out = append(out, e)
		}
	}
	return out
}
