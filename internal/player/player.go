package player

import (
	"time"

	"github.com/xtding233/towerclimb-backend/internal/catalog"
	"github.com/xtding233/towerclimb-backend/internal/effect"
)

// Inventory counts owned items, materials and skills.
type Inventory map[catalog.Ref]int

// Player is the server-side save record the core operates on.
type Player struct {
	ID            string                `json:"id"`
	Gold          int64                 `json:"gold"`
	RebirthPoints int                   `json:"rebirthPoints"`
	Floor         int                   `json:"floor"`
	ActiveEffects []effect.ActiveEffect `json:"activeEffects"`
	Inventory     Inventory             `json:"inventory"`
	UpdatedAt     time.Time             `json:"updatedAt"`
}

// New returns a fresh record on floor 1.
func New(id string, gold int64) *Player {
	return &Player{ID: id, Gold: gold, Floor: 1, Inventory: Inventory{}}
}

// Clone deep-copies p.
func (p *Player) Clone() *Player {
	c := *p
	c.ActiveEffects = append([]effect.ActiveEffect(nil), p.ActiveEffects...)
	c.Inventory = make(Inventory, len(p.Inventory))
	for k, v := range p.Inventory {
		c.Inventory[k] = v
	}
	return &c
}

// EffectState extracts the part of the record scroll effects work on.
func (p *Player) EffectState() effect.State {
	return effect.State{Effects: p.ActiveEffects, RebirthPoints: p.RebirthPoints}
}

// Commit writes an effect state back onto the record.
func (p *Player) Commit(st effect.State) {
	p.ActiveEffects = st.Effects
	p.RebirthPoints = st.RebirthPoints
}

// Grant adds n of ref to the inventory.
func (p *Player) Grant(ref catalog.Ref, n int) {
	if n <= 0 {
		return
	}
	if p.Inventory == nil {
		p.Inventory = Inventory{}
	}
	p.Inventory[ref] += n
}

// Take removes one ref from the inventory, reporting whether one was owned.
func (p *Player) Take(ref catalog.Ref) bool {
	n := p.Inventory[ref]
	if n <= 0 {
		return false
	}
	if n == 1 {
		delete(p.Inventory, ref)
	} else {
		p.Inventory[ref] = n - 1
	}
	return true
}
