// types.go
package content

import (
	"github.com/xtding233/towerclimb-backend/internal/catalog"
	"github.com/xtding233/towerclimb-backend/internal/pricing"
)

// Entry is one reward candidate of a package. Weight only matters for random entries.
type Entry struct {
	Ref    catalog.Ref
	Weight float64
	Count  *Quantity // nil means 1
}

// Package is a purchasable bundle of guaranteed and randomly drawn entries.
type Package struct {
	Name     string         `yaml:"name" validate:"required"`
	Price    *pricing.Price `yaml:"price,omitempty"`
	Contents Contents       `yaml:"contents"`
}

type Contents struct {
	Guaranteed  []Entry   `yaml:"guaranteed,omitempty"`
	Random      []Entry   `yaml:"random,omitempty"`
	RandomCount *Quantity `yaml:"randomCount,omitempty"` // nil means one draw
}

// Scroll is a consumable granting timed and/or permanent bonuses.
type Scroll struct {
	Name    string        `yaml:"name"`
	Effects ScrollEffects `yaml:"effects"`
}

type ScrollEffects struct {
	ExpBoost             *TimedBonus   `yaml:"expBoost,omitempty"`
	GoldBoost            *TimedBonus   `yaml:"goldBoost,omitempty"`
	DropBoost            *TimedBonus   `yaml:"dropBoost,omitempty"`
	EnhancementGuarantee *TimedBonus   `yaml:"enhancementGuarantee,omitempty"`
	RebirthBonus         *RebirthBonus `yaml:"rebirthBonus,omitempty"`
}

// Empty reports whether the scroll grants nothing at all.
func (e ScrollEffects) Empty() bool {
	return e.ExpBoost == nil && e.GoldBoost == nil && e.DropBoost == nil &&
		e.EnhancementGuarantee == nil && e.RebirthBonus == nil
}

type TimedBonus struct {
	Multiplier float64  `yaml:"multiplier,omitempty" validate:"gte=0"`
	Guaranteed bool     `yaml:"guaranteed,omitempty"`
	Duration   Duration `yaml:"duration" validate:"gt=0"`
}

type RebirthBonus struct {
	APBonus int `yaml:"apBonus" validate:"gte=0"`
}

// CatalogEntry is the YAML form of catalog.Entry.
type CatalogEntry struct {
	Name   string         `yaml:"name"`
	Icon   string         `yaml:"icon,omitempty"`
	Rarity catalog.Rarity `yaml:"rarity,omitempty"`
}

// File layouts as they appear on disk.
type PackagesFile struct {
	Version  string             `yaml:"version"`
	Packages map[string]Package `yaml:"packages"`
}

type ScrollsFile struct {
	Version string            `yaml:"version"`
	Scrolls map[string]Scroll `yaml:"scrolls"`
}

type CatalogFile struct {
	Version   string                  `yaml:"version"`
	Items     map[string]CatalogEntry `yaml:"items,omitempty"`
	Materials map[string]CatalogEntry `yaml:"materials,omitempty"`
	Skills    map[string]CatalogEntry `yaml:"skills,omitempty"`
}

// Tables is an immutable snapshot of all content. Never mutate after Build.
type Tables struct {
	Version  string
	Packages map[string]Package
	Scrolls  map[string]Scroll
	Catalog  *catalog.Catalog
}

// Package returns the definition for id.
func (t *Tables) Package(id string) (Package, bool) {
	if t == nil {
		return Package{}, false
	}
	p, ok := t.Packages[id]
	return p, ok
}

// Scroll returns the definition for id.
func (t *Tables) Scroll(id string) (Scroll, bool) {
	if t == nil {
		return Scroll{}, false
	}
	s, ok := t.Scrolls[id]
	return s, ok
}

// Prices collects the price of every package that declares one.
func (t *Tables) Prices() pricing.Catalog {
	cat := pricing.Catalog{}
	if t == nil {
		return cat
	}
	for id, p := range t.Packages {
		if p.Price != nil {
			cat[id] = *p.Price
		}
	}
	return cat
}
