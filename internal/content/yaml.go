package content

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/xtding233/towerclimb-backend/internal/catalog"
	"github.com/xtding233/towerclimb-backend/internal/gacha"
)

// Quantity is a fixed count (Min == Max) or an inclusive range.
// YAML accepts `count: 2` or `count: {min: 1, max: 3}`.
type Quantity struct {
	Min int
	Max int
}

func Fixed(n int) *Quantity { return &Quantity{Min: n, Max: n} }

func Between(min, max int) *Quantity { return &Quantity{Min: min, Max: max} }

func (q Quantity) IsRange() bool { return q.Min != q.Max }

func (q Quantity) Range() gacha.CountRange { return gacha.CountRange{Min: q.Min, Max: q.Max} }

func (q *Quantity) UnmarshalYAML(n *yaml.Node) error {
	switch n.Kind {
	case yaml.ScalarNode:
		var v int
		if err := n.Decode(&v); err != nil {
			return fmt.Errorf("line %d: count must be an integer: %w", n.Line, err)
		}
		*q = Quantity{Min: v, Max: v}
		return nil
	case yaml.MappingNode:
		var r struct {
			Min *int `yaml:"min"`
			Max *int `yaml:"max"`
		}
		if err := n.Decode(&r); err != nil {
			return err
		}
		if r.Min == nil || r.Max == nil {
			return fmt.Errorf("line %d: count range needs both min and max", n.Line)
		}
		*q = Quantity{Min: *r.Min, Max: *r.Max}
		return nil
	}
	return fmt.Errorf("line %d: count must be an integer or {min, max}", n.Line)
}

func (q Quantity) MarshalYAML() (any, error) {
	if !q.IsRange() {
		return q.Min, nil
	}
	return map[string]int{"min": q.Min, "max": q.Max}, nil
}

// Duration decodes Go duration strings ("30m") or integer milliseconds.
type Duration time.Duration

func (d Duration) Std() time.Duration { return time.Duration(d) }

func (d *Duration) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: duration must be a scalar", n.Line)
	}
	if n.ShortTag() == "!!int" {
		var ms int64
		if err := n.Decode(&ms); err != nil {
			return err
		}
		*d = Duration(time.Duration(ms) * time.Millisecond)
		return nil
	}
	v, err := time.ParseDuration(n.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", n.Line, err)
	}
	*d = Duration(v)
	return nil
}

func (d Duration) MarshalYAML() (any, error) { return time.Duration(d).String(), nil }

// rawEntry is the on-disk entry: exactly one identifier field must be set.
type rawEntry struct {
	ItemID     string    `yaml:"itemId,omitempty"`
	MaterialID string    `yaml:"materialId,omitempty"`
	SkillID    string    `yaml:"skillId,omitempty"`
	Weight     float64   `yaml:"weight,omitempty"`
	Count      *Quantity `yaml:"count,omitempty"`
}

func (e *Entry) UnmarshalYAML(n *yaml.Node) error {
	var raw rawEntry
	if err := n.Decode(&raw); err != nil {
		return err
	}
	var refs []catalog.Ref
	if raw.ItemID != "" {
		refs = append(refs, catalog.Item(raw.ItemID))
	}
	if raw.MaterialID != "" {
		refs = append(refs, catalog.Material(raw.MaterialID))
	}
	if raw.SkillID != "" {
		refs = append(refs, catalog.Skill(raw.SkillID))
	}
	if len(refs) != 1 {
		return fmt.Errorf("line %d: entry must set exactly one of itemId, materialId, skillId (got %d)", n.Line, len(refs))
	}
	*e = Entry{Ref: refs[0], Weight: raw.Weight, Count: raw.Count}
	return nil
}

func (e Entry) MarshalYAML() (any, error) {
	raw := rawEntry{Weight: e.Weight, Count: e.Count}
	switch e.Ref.Kind {
	case catalog.KindMaterial:
		raw.MaterialID = e.Ref.ID
	case catalog.KindSkill:
		raw.SkillID = e.Ref.ID
	default:
		raw.ItemID = e.Ref.ID
	}
	return raw, nil
}
