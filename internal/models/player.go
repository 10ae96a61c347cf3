// Package models holds the mutable game entities and their invariants.
package models

import (
	"github.com/google/uuid"

	"github.com/Barisylp/Bigbang/internal/catalog"
	"github.com/Barisylp/Bigbang/internal/deck"
)

// Level bounds. MaxLevel is reachable only through combat victory; purchased
// levels stop at MaxBuyLevel.
const (
	MinLevel    = 1
	MaxLevel    = 10
	MaxBuyLevel = 9
)

// HandSlotCapacity is how many hand-slot items can be equipped at once.
const HandSlotCapacity = 2

// Modifier is a temporary strength adjustment, aged once per owner turn.
type Modifier struct {
	Source    string `json:"source"`
	Value     int    `json:"value"`
	TurnsLeft int    `json:"turnsLeft"`
}

// Player is the per-seat mutable record. All mutation happens under the
// owning room's lock.
type Player struct {
	ID        uuid.UUID        `json:"id"`
	Name      string           `json:"name"`
	Level     int              `json:"level"`
	Gold      int              `json:"gold"`
	Hand      []*deck.Instance `json:"hand"`
	Equipment []*deck.Instance `json:"equipment"`
	Backpack  []*deck.Instance `json:"backpack"`
	Race      *deck.Instance   `json:"race,omitempty"`
	Class     *deck.Instance   `json:"class,omitempty"`
	Modifiers []Modifier       `json:"modifiers,omitempty"`

	ItemsSoldThisTurn int `json:"-"`
}

// NewPlayer creates a level-1 player with empty containers.
func NewPlayer(id uuid.UUID, name string) *Player {
	return &Player{
		ID:    id,
		Name:  name,
		Level: MinLevel,
	}
}

// Strength is the combat total: level plus equipped item bonuses plus active
// modifier values. Pure sum, so ordering of equipment never matters.
func (p *Player) Strength() int {
	total := p.Level
	for _, it := range p.Equipment {
		total += it.Bonus()
	}
	for _, m := range p.Modifiers {
		total += m.Value
	}
	return total
}

// HasAbility reports whether the player's race or class grants the ability.
func (p *Player) HasAbility(a catalog.Ability) bool {
	if p.Race != nil && p.Race.HasAbility(a) {
		return true
	}
	return p.Class != nil && p.Class.HasAbility(a)
}

// GainLevel raises the player's level by n, capped at max. Combat wins pass
// MaxLevel; gold purchases and blessings pass MaxBuyLevel.
func (p *Player) GainLevel(n, max int) {
	p.Level += n
	if p.Level > max {
		p.Level = max
	}
}

// LoseLevel lowers the player's level by n, floored at 1.
func (p *Player) LoseLevel(n int) {
	p.Level -= n
	if p.Level < MinLevel {
		p.Level = MinLevel
	}
}

// Equip moves an item out of the given source container onto the player.
// Slot rules: a full hand slot evicts its oldest occupant to the hand; an
// occupied single slot evicts its occupant to the hand; slotless items stack
// without limit. Returns false if the instance is not an item.
func (p *Player) Equip(inst *deck.Instance) bool {
	if inst.Sub != catalog.SubItem || inst.Item == nil {
		return false
	}
	slot := inst.Item.Slot
	switch slot {
	case catalog.SlotNone:
	case catalog.SlotHand:
		if held := p.equippedInSlot(slot); len(held) >= HandSlotCapacity {
			p.unequipToHand(held[0])
		}
	default:
		if held := p.equippedInSlot(slot); len(held) > 0 {
			p.unequipToHand(held[0])
		}
	}
	p.Equipment = append(p.Equipment, inst)
	return true
}

// SetHeritage assigns a class or race card, returning the replaced card if
// one was already worn.
func (p *Player) SetHeritage(inst *deck.Instance) (replaced *deck.Instance, ok bool) {
	switch inst.Sub {
	case catalog.SubClass:
		replaced = p.Class
		p.Class = inst
	case catalog.SubRace:
		replaced = p.Race
		p.Race = inst
	default:
		return nil, false
	}
	return replaced, true
}

// AgeModifiers decrements every modifier's remaining turns and drops the
// expired ones. Called at the end of the owner's turn.
func (p *Player) AgeModifiers() {
	kept := p.Modifiers[:0]
	for _, m := range p.Modifiers {
		m.TurnsLeft--
		if m.TurnsLeft > 0 {
			kept = append(kept, m)
		}
	}
	p.Modifiers = kept
}

// Container identifies one of the player's card containers.
type Container int

const (
	InHand Container = iota
	InEquipment
	InBackpack
)

// Find locates a card instance by id across hand, equipment and backpack.
func (p *Player) Find(instanceID string) (*deck.Instance, Container, bool) {
	if inst := findIn(p.Hand, instanceID); inst != nil {
		return inst, InHand, true
	}
	if inst := findIn(p.Equipment, instanceID); inst != nil {
		return inst, InEquipment, true
	}
	if inst := findIn(p.Backpack, instanceID); inst != nil {
		return inst, InBackpack, true
	}
	return nil, 0, false
}

// RemoveFromHand removes and returns the card with the given instance id.
func (p *Player) RemoveFromHand(instanceID string) *deck.Instance {
	var inst *deck.Instance
	p.Hand, inst = removeFrom(p.Hand, instanceID)
	return inst
}

// RemoveFromBackpack removes and returns the card with the given instance id.
func (p *Player) RemoveFromBackpack(instanceID string) *deck.Instance {
	var inst *deck.Instance
	p.Backpack, inst = removeFrom(p.Backpack, instanceID)
	return inst
}

// RemoveFromEquipment removes and returns the card with the given instance id.
func (p *Player) RemoveFromEquipment(instanceID string) *deck.Instance {
	var inst *deck.Instance
	p.Equipment, inst = removeFrom(p.Equipment, instanceID)
	return inst
}

// Remove drops the instance from whichever container holds it, including the
// race/class slots.
func (p *Player) Remove(instanceID string) *deck.Instance {
	if inst := p.RemoveFromHand(instanceID); inst != nil {
		return inst
	}
	if inst := p.RemoveFromEquipment(instanceID); inst != nil {
		return inst
	}
	if inst := p.RemoveFromBackpack(instanceID); inst != nil {
		return inst
	}
	if p.Race != nil && p.Race.Card.ID == instanceID {
		inst := p.Race
		p.Race = nil
		return inst
	}
	if p.Class != nil && p.Class.Card.ID == instanceID {
		inst := p.Class
		p.Class = nil
		return inst
	}
	return nil
}

func (p *Player) equippedInSlot(slot catalog.Slot) []*deck.Instance {
	var held []*deck.Instance
	for _, it := range p.Equipment {
		if it.Item != nil && it.Item.Slot == slot {
			held = append(held, it)
		}
	}
	return held
}

func (p *Player) unequipToHand(inst *deck.Instance) {
	p.Equipment, _ = removeFrom(p.Equipment, inst.Card.ID)
	p.Hand = append(p.Hand, inst)
}

func findIn(cards []*deck.Instance, instanceID string) *deck.Instance {
	for _, c := range cards {
		if c.Card.ID == instanceID {
			return c
		}
	}
	return nil
}

func removeFrom(cards []*deck.Instance, instanceID string) ([]*deck.Instance, *deck.Instance) {
	for i, c := range cards {
		if c.Card.ID == instanceID {
			return append(cards[:i], cards[i+1:]...), c
		}
	}
	return cards, nil
}
