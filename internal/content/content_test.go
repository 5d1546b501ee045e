package content

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/xtding233/towerclimb-backend/internal/catalog"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

const basePackages = `
version: "1"
packages:
  bread_bundle:
    name: Bread Bundle
    price: {gold: 20}
    contents:
      guaranteed:
        - itemId: bread
          count: 2
  crate:
    name: Crate
    contents:
      random:
        - materialId: iron_ore
          weight: 3
          count: {min: 1, max: 4}
        - skillId: fireball
          weight: 1
      randomCount: {min: 2, max: 3}
`

const baseScrolls = `
scrolls:
  insight:
    name: Insight
    effects:
      expBoost: {multiplier: 1.5, duration: 30m}
  blessing:
    effects:
      enhancementGuarantee: {guaranteed: true, duration: 60000}
      rebirthBonus: {apBonus: 3}
`

const baseCatalog = `
items:
  bread: {name: Bread, icon: "🍞"}
materials:
  iron_ore: {name: Iron Ore, rarity: fine}
`

func TestLoadBaseContent(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "packages.yaml", basePackages)
	writeFile(t, dir, "scrolls.yaml", baseScrolls)
	writeFile(t, dir, "catalog.yaml", baseCatalog)

	tables, err := NewLoader(dir).Load()
	require.NoError(t, err)

	assert.Equal(t, "1", tables.Version)
	require.Len(t, tables.Packages, 2)

	bread, ok := tables.Package("bread_bundle")
	require.True(t, ok)
	require.Len(t, bread.Contents.Guaranteed, 1)
	assert.Equal(t, catalog.Item("bread"), bread.Contents.Guaranteed[0].Ref)
	assert.Equal(t, Fixed(2), bread.Contents.Guaranteed[0].Count)
	assert.Nil(t, bread.Contents.Random)

	crate, _ := tables.Package("crate")
	require.Len(t, crate.Contents.Random, 2)
	assert.Equal(t, catalog.Material("iron_ore"), crate.Contents.Random[0].Ref)
	assert.Equal(t, Between(1, 4), crate.Contents.Random[0].Count)
	assert.Equal(t, catalog.Skill("fireball"), crate.Contents.Random[1].Ref)
	assert.Nil(t, crate.Contents.Random[1].Count)
	assert.Equal(t, Between(2, 3), crate.Contents.RandomCount)

	insight, ok := tables.Scroll("insight")
	require.True(t, ok)
	require.NotNil(t, insight.Effects.ExpBoost)
	assert.Equal(t, 30*time.Minute, insight.Effects.ExpBoost.Duration.Std())

	blessing, _ := tables.Scroll("blessing")
	require.NotNil(t, blessing.Effects.EnhancementGuarantee)
	assert.Equal(t, time.Minute, blessing.Effects.EnhancementGuarantee.Duration.Std(), "integer durations are milliseconds")
	assert.Equal(t, 3, blessing.Effects.RebirthBonus.APBonus)

	assert.Equal(t, "Iron Ore", tables.Catalog.Name(catalog.Material("iron_ore")))
	assert.Equal(t, catalog.Fine, tables.Catalog.Rarity(catalog.Material("iron_ore")))
	assert.Equal(t, "🍞", tables.Catalog.Icon(catalog.Item("bread")))

	prices := tables.Prices()
	assert.Len(t, prices, 1)
	assert.Equal(t, int64(20), prices["bread_bundle"].Gold)
}

func TestLoadAppliesOverrides(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "packages.yaml", basePackages)
	writeFile(t, dir, "overrides/packages.yaml", `
version: "1-event"
packages:
  bread_bundle:
    name: Festival Bread
    contents:
      guaranteed:
        - itemId: bread
          count: 10
`)
	writeFile(t, dir, "catalog.yaml", baseCatalog)
	writeFile(t, dir, "overrides/catalog.yaml", `
items:
  bread: {name: Festival Bread, rarity: epic}
`)

	tables, err := NewLoader(dir).Load()
	require.NoError(t, err)

	assert.Equal(t, "1-event", tables.Version)
	bread, _ := tables.Package("bread_bundle")
	assert.Equal(t, "Festival Bread", bread.Name)
	assert.Equal(t, Fixed(10), bread.Contents.Guaranteed[0].Count)
	_, ok := tables.Package("crate")
	assert.True(t, ok, "keys absent from the override survive")

	assert.Equal(t, catalog.Epic, tables.Catalog.Rarity(catalog.Item("bread")))
	assert.Empty(t, tables.Scrolls, "scrolls file is optional")
}

func TestLoadRequiresPackages(t *testing.T) {
	_, err := NewLoader(t.TempDir()).Load()
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestEntryRejectsAmbiguousIdentifiers(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"two identifiers", "itemId: bread\nmaterialId: iron_ore\n"},
		{"no identifier", "weight: 3\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var e Entry
			err := yaml.Unmarshal([]byte(tt.body), &e)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "exactly one of")
		})
	}
}

func TestQuantityDecoding(t *testing.T) {
	var q Quantity
	require.NoError(t, yaml.Unmarshal([]byte("4"), &q))
	assert.Equal(t, Quantity{Min: 4, Max: 4}, q)
	assert.False(t, q.IsRange())

	require.NoError(t, yaml.Unmarshal([]byte("{min: 1, max: 6}"), &q))
	assert.Equal(t, Quantity{Min: 1, Max: 6}, q)
	assert.True(t, q.IsRange())

	assert.Error(t, yaml.Unmarshal([]byte("{min: 1}"), &q))
	assert.Error(t, yaml.Unmarshal([]byte("[1, 2]"), &q))
	assert.Error(t, yaml.Unmarshal([]byte("many"), &q))
}

func TestDurationDecoding(t *testing.T) {
	var d Duration
	require.NoError(t, yaml.Unmarshal([]byte("1500"), &d))
	assert.Equal(t, 1500*time.Millisecond, d.Std())

	require.NoError(t, yaml.Unmarshal([]byte("2h"), &d))
	assert.Equal(t, 2*time.Hour, d.Std())

	assert.Error(t, yaml.Unmarshal([]byte("soon"), &d))
}

func TestValidateRejectsBadContent(t *testing.T) {
	tables := Build("x",
		map[string]Package{
			"empty": {Name: "Empty"},
			"bad": {
				Contents: Contents{
					Guaranteed:  []Entry{{Ref: catalog.Item("a"), Count: Between(1, 2)}},
					Random:      []Entry{{Ref: catalog.Item("b"), Weight: 0}, {Ref: catalog.Item(""), Weight: 1, Count: Between(5, 1)}},
					RandomCount: &Quantity{Min: -1, Max: 2},
				},
			},
		},
		map[string]Scroll{
			"nothing": {},
			"weak":    {Effects: ScrollEffects{GoldBoost: &TimedBonus{Duration: Duration(time.Minute)}}},
			"instant": {Effects: ScrollEffects{ExpBoost: &TimedBonus{Multiplier: 2}}},
		},
		CatalogFile{},
	)

	err := Validate(tables)
	require.Error(t, err)
	msg := err.Error()

	for _, want := range []string{
		"packages.empty has no guaranteed or random contents",
		"packages.bad.Name failed required",
		"packages.bad.guaranteed[0].count must be a fixed number",
		"packages.bad.random[0].weight must be > 0",
		"packages.bad.random[1] identifier must not be empty",
		"packages.bad.random[1].count must satisfy min <= max",
		"packages.bad.randomCount must be >= 0",
		"scrolls.nothing grants no effects",
		"scrolls.weak.effects.goldBoost.multiplier must be > 0",
		"scrolls.instant.Effects.ExpBoost.Duration failed gt",
	} {
		assert.Contains(t, msg, want)
	}
}

func TestShippedContentIsValid(t *testing.T) {
	tables, err := NewLoader(filepath.Join("..", "..", "configs", "content")).Load()
	require.NoError(t, err)

	p, ok := tables.Package("bread_bundle")
	require.True(t, ok)
	assert.Len(t, p.Contents.Guaranteed, 1)
	assert.NotEmpty(t, tables.Scrolls)
	assert.Positive(t, tables.Catalog.Len())
}

func TestStoreReloadKeepsPreviousOnFailure(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "packages.yaml", basePackages)

	store, err := NewStore(NewLoader(dir), nil)
	require.NoError(t, err)
	first := store.Tables()
	assert.Len(t, first.Packages, 2)

	require.NoError(t, os.WriteFile(path, []byte("packages:\n  broken:\n    name: Broken\n"), 0o644))
	assert.Error(t, store.Reload())
	assert.Same(t, first, store.Tables())

	require.NoError(t, os.WriteFile(path, []byte(`
packages:
  solo:
    name: Solo
    contents:
      guaranteed: [{itemId: bread}]
`), 0o644))
	require.NoError(t, store.Reload())
	_, ok := store.Tables().Package("solo")
	assert.True(t, ok)
}

func TestFileWatcherDetectsChanges(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.yaml", "x: 1")
	b := filepath.Join(dir, "b.yaml")

	var changed []string
	w := NewFileWatcher([]string{a, b}, time.Hour, func(p string) { changed = append(changed, p) })
	w.scanAll(true)
	assert.Empty(t, changed)

	future := time.Now().Add(time.Minute)
	require.NoError(t, os.Chtimes(a, future, future))
	w.scanAll(false)
	assert.Equal(t, []string{a}, changed)

	writeFile(t, dir, "b.yaml", "y: 2")
	w.scanAll(false)
	assert.Equal(t, []string{a, b}, changed, "a file created after priming counts as a change")

	require.NoError(t, os.Remove(a))
	w.scanAll(false)
	assert.Equal(t, []string{a, b, a}, changed)

	w.scanAll(false)
	assert.Len(t, changed, 3)

	w.Stop()
	w.Stop()
}
