package effect

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xtding233/towerclimb-backend/internal/content"
)

var t0 = time.Date(2024, 11, 1, 12, 0, 0, 0, time.UTC)

func bonus(mult float64, d time.Duration) *content.TimedBonus {
	return &content.TimedBonus{Multiplier: mult, Duration: content.Duration(d)}
}

func testTables() *content.Tables {
	return content.Build("test", nil, map[string]content.Scroll{
		"insight_small": {Effects: content.ScrollEffects{ExpBoost: bonus(1.5, 30*time.Minute)}},
		"insight_large": {Effects: content.ScrollEffects{ExpBoost: bonus(2, time.Hour)}},
		"fortune": {Effects: content.ScrollEffects{
			GoldBoost: bonus(1.2, time.Hour),
			DropBoost: bonus(1.3, time.Hour),
		}},
		"blessing": {Effects: content.ScrollEffects{
			EnhancementGuarantee: &content.TimedBonus{Guaranteed: true, Duration: content.Duration(10 * time.Minute)},
		}},
		"rebirth": {Effects: content.ScrollEffects{RebirthBonus: &content.RebirthBonus{APBonus: 5}}},
	}, content.CatalogFile{})
}

func newApplier() (*Applier, *FakeClock) {
	clock := NewFakeClock(t0)
	return NewApplier(content.NewStaticStore(testTables()), clock), clock
}

func countType(effects []ActiveEffect, t Type) int {
	n := 0
	for _, e := range effects {
		if e.Type == t {
			n++
		}
	}
	return n
}

func TestApplyScrollAddsTimedEffect(t *testing.T) {
	a, _ := newApplier()

	out, ok := a.ApplyScroll("insight_small", State{})
	require.True(t, ok)
	require.Len(t, out.State.Effects, 1)

	e := out.State.Effects[0]
	assert.Equal(t, ExpBoost, e.Type)
	assert.Equal(t, 1.5, e.Multiplier)
	assert.Equal(t, t0.Add(30*time.Minute), e.ExpiresAt)
	assert.Equal(t, "insight_small", e.Source)
	assert.Equal(t, []Type{ExpBoost}, out.Applied)
}

func TestApplyScrollReplacesSameType(t *testing.T) {
	a, clock := newApplier()

	first, _ := a.ApplyScroll("insight_small", State{})
	clock.Advance(5 * time.Minute)
	second, _ := a.ApplyScroll("insight_large", first.State)

	assert.Equal(t, 1, countType(second.State.Effects, ExpBoost))
	e, ok := Find(second.State.Effects, ExpBoost, clock.Now())
	require.True(t, ok)
	assert.Equal(t, 2.0, e.Multiplier)
	assert.Equal(t, t0.Add(5*time.Minute+time.Hour), e.ExpiresAt)
}

func TestApplyScrollKeepsOtherTypes(t *testing.T) {
	a, _ := newApplier()

	st, _ := a.ApplyScroll("insight_small", State{})
	st, _ = a.ApplyScroll("fortune", st.State)
	st, _ = a.ApplyScroll("blessing", st.State)

	effects := st.State.Effects
	assert.Len(t, effects, 4)
	for _, typ := range []Type{ExpBoost, GoldBoost, DropBoost, EnhancementGuarantee} {
		assert.Equal(t, 1, countType(effects, typ), "type %s", typ)
	}
	assert.True(t, Guaranteed(effects, t0))
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	a, _ := newApplier()
	orig := []ActiveEffect{{Type: ExpBoost, Multiplier: 1.1, ExpiresAt: t0.Add(time.Minute)}}
	snapshot := append([]ActiveEffect(nil), orig...)

	out, _ := a.ApplyScroll("insight_large", State{Effects: orig})

	assert.Equal(t, snapshot, orig)
	assert.Equal(t, 2.0, out.State.Effects[0].Multiplier)
}

func TestApplyScrollUnknownIsNoop(t *testing.T) {
	a, _ := newApplier()
	st := State{Effects: []ActiveEffect{{Type: GoldBoost, ExpiresAt: t0.Add(time.Hour)}}, RebirthPoints: 2}

	out, ok := a.ApplyScroll("does_not_exist", st)
	assert.False(t, ok)
	assert.Equal(t, st, out.State)
	assert.Empty(t, out.Applied)
}

func TestRebirthBonusIsPermanent(t *testing.T) {
	a, _ := newApplier()

	out, ok := a.ApplyScroll("rebirth", State{RebirthPoints: 3})
	require.True(t, ok)
	assert.Equal(t, 8, out.State.RebirthPoints)
	assert.Equal(t, 5, out.RebirthBonus)
	assert.Empty(t, out.State.Effects)
	assert.Empty(t, out.Applied)
}

func TestCleanupBoundary(t *testing.T) {
	effects := []ActiveEffect{
		{Type: ExpBoost, ExpiresAt: t0},
		{Type: GoldBoost, ExpiresAt: t0.Add(time.Nanosecond)},
		{Type: DropBoost, ExpiresAt: t0.Add(-time.Hour)},
	}

	kept, expired := Cleanup(effects, t0)
	require.Len(t, kept, 1)
	assert.Equal(t, GoldBoost, kept[0].Type)
	assert.Equal(t, 2, expired)
	assert.Len(t, effects, 3, "input untouched")
}

func TestCleanupNil(t *testing.T) {
	kept, n := Cleanup(nil, t0)
	assert.Nil(t, kept)
	assert.Zero(t, n)
}

func TestApplierCleanupUsesClock(t *testing.T) {
	a, clock := newApplier()
	out, _ := a.ApplyScroll("blessing", State{})

	clock.Advance(10*time.Minute - time.Nanosecond)
	st, n := a.CleanupExpired(out.State)
	assert.Zero(t, n)
	assert.Len(t, st.Effects, 1)

	clock.Advance(time.Nanosecond)
	st, n = a.CleanupExpired(st)
	assert.Equal(t, 1, n)
	assert.Empty(t, st.Effects)
}

func TestMultiplier(t *testing.T) {
	effects := []ActiveEffect{
		{Type: GoldBoost, Multiplier: 1.5, ExpiresAt: t0.Add(time.Minute)},
		{Type: DropBoost, Multiplier: 2, ExpiresAt: t0},
	}

	assert.Equal(t, 1.5, Multiplier(effects, GoldBoost, t0))
	assert.Equal(t, 1.0, Multiplier(effects, DropBoost, t0), "expired effects do not count")
	assert.Equal(t, 1.0, Multiplier(effects, ExpBoost, t0))
	assert.False(t, Guaranteed(effects, t0))
}
