package reward

import (
	"errors"
	"fmt"

	"github.com/xtding233/towerclimb-backend/internal/catalog"
	"github.com/xtding233/towerclimb-backend/internal/content"
	"github.com/xtding233/towerclimb-backend/internal/gacha"
)

var ErrPackageNotFound = errors.New("package not found")

// Entry is one resolved, display-ready reward.
type Entry struct {
	ID     string         `json:"id"`
	Name   string         `json:"name"`
	Count  int            `json:"count"`
	Type   catalog.Kind   `json:"type"`
	Rarity catalog.Rarity `json:"rarity"`
	Icon   string         `json:"icon"`
}

func (e Entry) Ref() catalog.Ref { return catalog.Ref{Kind: e.Type, ID: e.ID} }

// Result is what opening one package yields.
type Result struct {
	PackageID   string  `json:"packageId"`
	PackageName string  `json:"packageName"`
	Items       []Entry `json:"items"`
}

// TablesSource yields the current content snapshot. *content.Store implements it.
type TablesSource interface {
	Tables() *content.Tables
}

// Resolver turns package definitions into concrete reward lists.
type Resolver struct {
	tables TablesSource
	rng    gacha.RandomSource
}

// NewResolver creates a resolver. A nil rng uses the crypto default.
func NewResolver(tables TablesSource, rng gacha.RandomSource) *Resolver {
	if rng == nil {
		rng = gacha.DefaultRNG()
	}
	return &Resolver{tables: tables, rng: rng}
}

// OpenPackage resolves packageID: guaranteed entries first, then random draws
// in draw order. Repeated identifiers are not merged.
func (r *Resolver) OpenPackage(packageID string) (Result, error) {
	t := r.tables.Tables()
	def, ok := t.Package(packageID)
	if !ok {
		return Result{}, fmt.Errorf("%w: %s", ErrPackageNotFound, packageID)
	}
	return resolve(packageID, def, t.Catalog, r.rng)
}

func resolve(id string, def content.Package, cat *catalog.Catalog, rng gacha.RandomSource) (Result, error) {
	c := def.Contents
	items := make([]Entry, 0, len(c.Guaranteed)+drawsHint(c.RandomCount))

	for _, e := range c.Guaranteed {
		n := 1
		if e.Count != nil {
			n = e.Count.Min
		}
		items = append(items, enrich(e.Ref, n, cat))
	}

	if len(c.Random) > 0 {
		draws := 1
		if c.RandomCount != nil {
			draws = gacha.RandomCount(c.RandomCount.Range(), rng)
		}
		for i := 0; i < draws; i++ {
			e, err := gacha.WeightedRandom(c.Random, func(e content.Entry) float64 { return e.Weight }, rng)
			if err != nil {
				return Result{}, fmt.Errorf("package %s: %w", id, err)
			}
			items = append(items, enrich(e.Ref, drawCount(e.Count, rng), cat))
		}
	}

	return Result{PackageID: id, PackageName: def.Name, Items: items}, nil
}

func drawCount(q *content.Quantity, rng gacha.RandomSource) int {
	switch {
	case q == nil:
		return 1
	case q.IsRange():
		return gacha.RandomCount(q.Range(), rng)
	default:
		return q.Min
	}
}

func drawsHint(q *content.Quantity) int {
	switch {
	case q == nil:
		return 1
	case q.Max > 64:
		return 64
	default:
		return q.Max
	}
}

func enrich(ref catalog.Ref, count int, cat *catalog.Catalog) Entry {
	return Entry{
		ID:     ref.ID,
		Name:   cat.Name(ref),
		Count:  count,
		Type:   ref.Kind,
		Rarity: cat.Rarity(ref),
		Icon:   cat.Icon(ref),
	}
}
