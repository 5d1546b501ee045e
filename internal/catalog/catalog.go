package catalog

import "strings"

// Kind tags which content table a reward identifier belongs to.
type Kind string

const (
	KindItem     Kind = "item"
	KindMaterial Kind = "material"
	KindSkill    Kind = "skill"
)

// Default glyphs used when an identifier has no registered icon.
const (
	DefaultItemIcon     = "📦"
	DefaultMaterialIcon = "🪨"
	DefaultSkillIcon    = "📜"
)

// ParseKind maps "item" / "material" / "skill" (case-insensitive) to a Kind.
func ParseKind(s string) (Kind, bool) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case KindItem:
		return KindItem, true
	case KindMaterial:
		return KindMaterial, true
	case KindSkill:
		return KindSkill, true
	}
	return "", false
}

// Ref identifies exactly one item, material or skill.
type Ref struct {
	Kind Kind
	ID   string
}

func Item(id string) Ref     { return Ref{Kind: KindItem, ID: id} }
func Material(id string) Ref { return Ref{Kind: KindMaterial, ID: id} }
func Skill(id string) Ref    { return Ref{Kind: KindSkill, ID: id} }

// RefOf builds a Ref from a raw kind string. Unknown kinds are treated as items.
func RefOf(id, kind string) Ref {
	k, ok := ParseKind(kind)
	if !ok {
		k = KindItem
	}
	return Ref{Kind: k, ID: id}
}

func (r Ref) String() string { return string(r.Kind) + ":" + r.ID }

// DefaultIcon returns the fallback glyph for a kind.
func DefaultIcon(k Kind) string {
	switch k {
	case KindMaterial:
		return DefaultMaterialIcon
	case KindSkill:
		return DefaultSkillIcon
	default:
		return DefaultItemIcon
	}
}

// Entry is the display metadata registered for one identifier.
// Empty Name/Icon fields fall back the same way as a missing entry.
type Entry struct {
	Name   string
	Icon   string
	Rarity Rarity
}

// Catalog is an immutable lookup table of display metadata.
// A nil *Catalog answers every lookup with fallbacks.
type Catalog struct {
	entries map[Ref]Entry
}

// New copies entries into a new Catalog.
func New(entries map[Ref]Entry) *Catalog {
	c := &Catalog{entries: make(map[Ref]Entry, len(entries))}
	for r, e := range entries {
		c.entries[r] = e
	}
	return c
}

// Lookup returns the registered entry for r, if any.
func (c *Catalog) Lookup(r Ref) (Entry, bool) {
	if c == nil {
		return Entry{}, false
	}
	e, ok := c.entries[r]
	return e, ok
}

// Len reports the number of registered identifiers.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.entries)
}

// Name returns the display name, or the raw identifier when unregistered.
func (c *Catalog) Name(r Ref) string {
	if e, ok := c.Lookup(r); ok && e.Name != "" {
		return e.Name
	}
	return r.ID
}

// Icon returns the display icon, or the kind's default glyph when unregistered.
func (c *Catalog) Icon(r Ref) string {
	if e, ok := c.Lookup(r); ok && e.Icon != "" {
		return e.Icon
	}
	return DefaultIcon(r.Kind)
}

// Rarity returns the rarity tier, or Common when unregistered.
func (c *Catalog) Rarity(r Ref) Rarity {
	if e, ok := c.Lookup(r); ok {
		return e.Rarity
	}
	return Common
}

// MarshalText encodes r as "kind:id" so Refs can key JSON objects.
func (r Ref) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

func (r *Ref) UnmarshalText(b []byte) error {
	s := string(b)
	kind, id, ok := strings.Cut(s, ":")
	if !ok {
		*r = Item(s)
		return nil
	}
	*r = RefOf(id, kind)
	return nil
}

// NameOf, IconOf and RarityOf look up a raw (identifier, type) pair.
// Unknown type strings use the item fallbacks.
func (c *Catalog) NameOf(id, kind string) string { return c.Name(RefOf(id, kind)) }

func (c *Catalog) IconOf(id, kind string) string { return c.Icon(RefOf(id, kind)) }

func (c *Catalog) RarityOf(id, kind string) Rarity { return c.Rarity(RefOf(id, kind)) }
