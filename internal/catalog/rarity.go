package catalog

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Rarity is an ordered quality tier. The zero value is Common.
type Rarity int

const (
	Common Rarity = iota
	Fine
	Superior
	Epic
	Legendary
)

var rarityNames = [...]string{"common", "fine", "superior", "epic", "legendary"}

func (r Rarity) String() string {
	if r < Common || r > Legendary {
		return rarityNames[Common]
	}
	return rarityNames[r]
}

// ParseRarity accepts a tier name in any case.
func ParseRarity(s string) (Rarity, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, n := range rarityNames {
		if n == s {
			return Rarity(i), nil
		}
	}
	return Common, fmt.Errorf("unknown rarity %q", s)
}

func (r Rarity) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

func (r *Rarity) UnmarshalText(b []byte) error {
	v, err := ParseRarity(string(b))
	if err != nil {
		return err
	}
	*r = v
	return nil
}

func (r *Rarity) UnmarshalYAML(n *yaml.Node) error {
	var s string
	if err := n.Decode(&s); err != nil {
		return err
	}
	return r.UnmarshalText([]byte(s))
}
