// Package catalog defines the immutable base card set for the game.
//
// A Card is a tagged union: Sub selects which of the typed payload pointers
// is populated. Consumers must switch on Sub; a card whose payload pointer is
// nil for its own subtype is malformed catalog data.
package catalog

// CardType separates the two draw piles.
type CardType string

const (
	TypeDoor     CardType = "door"
	TypeTreasure CardType = "treasure"
)

// SubType is the union tag for a Card.
type SubType string

const (
	SubMonster    SubType = "monster"
	SubItem       SubType = "item"
	SubCurse      SubType = "curse"
	SubClass      SubType = "class"
	SubRace       SubType = "race"
	SubBlessing   SubType = "blessing"
	SubFightSpell SubType = "fightspell"
	SubOther      SubType = "other"
)

// Slot is an equipment location. SlotNone items stack without limit.
type Slot string

const (
	SlotNone Slot = ""
	SlotHead Slot = "head"
	SlotBody Slot = "body"
	SlotHand Slot = "hand"
	SlotFoot Slot = "foot"
	SlotBig  Slot = "big"
)

// Effect identifies a catalog-coded behavior for curses, blessings and
// fight spells. These are matched as constants, never re-parsed from text.
type Effect string

const (
	EffectNone Effect = ""
	// EffectLevelUp grants one level, capped below 10 (blessings).
	EffectLevelUp Effect = "level_up"
	// EffectWeaken applies a timed strength penalty to the target (curses).
	EffectWeaken Effect = "weaken"
	// EffectDiscardRandom destroys one random card across the target's
	// hand, equipment and backpack (curses).
	EffectDiscardRandom Effect = "discard_random"
	// EffectInstantTruce ends the combat as a win with no treasure and a
	// guaranteed one-level loss for the combatant (fight spells).
	EffectInstantTruce Effect = "instant_truce"
	// EffectMonsterAlly discards a monster from the caster's hand and adds
	// its level to the chosen side of the combat (fight spells).
	EffectMonsterAlly Effect = "monster_ally"
)

// Ability is a class/race ability tag.
type Ability string

const (
	// AbilityHaggle doubles the gold of the first item sold each turn.
	AbilityHaggle Ability = "pazarlik"
	// AbilityEscape lets the player flee one combat. Carried on the card
	// for clients; no server mechanic is attached to it yet.
	AbilityEscape Ability = "kacis"
)

// Monster is the payload for SubMonster cards.
type Monster struct {
	Level       int    `json:"level"`
	Treasure    int    `json:"treasure"`
	LevelReward int    `json:"levelReward"`
	BadStuff    string `json:"badStuff,omitempty"`
}

// Item is the payload for SubItem cards.
type Item struct {
	Bonus     int  `json:"bonus"`
	GoldValue int  `json:"goldValue"`
	Slot      Slot `json:"slot,omitempty"`
}

// FightSpell is the payload for SubFightSpell cards.
type FightSpell struct {
	Bonus  int    `json:"bonus"`
	Effect Effect `json:"effect,omitempty"`
}

// Curse is the payload for SubCurse cards. Value and Duration only apply to
// EffectWeaken; Duration is counted in the target's turns.
type Curse struct {
	Effect   Effect `json:"effect"`
	Value    int    `json:"value,omitempty"`
	Duration int    `json:"duration,omitempty"`
}

// Blessing is the payload for SubBlessing cards.
type Blessing struct {
	Effect Effect `json:"effect"`
}

// Heritage is the payload for SubClass and SubRace cards.
type Heritage struct {
	Abilities []Ability `json:"abilities"`
}

// Card is one immutable catalog entry.
type Card struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Type        CardType `json:"type"`
	Sub         SubType  `json:"subType"`
	Description string   `json:"description,omitempty"`
	Image       string   `json:"image,omitempty"`

	Monster    *Monster    `json:"monster,omitempty"`
	Item       *Item       `json:"item,omitempty"`
	Spell      *FightSpell `json:"spell,omitempty"`
	Curse      *Curse      `json:"curse,omitempty"`
	Blessing   *Blessing   `json:"blessing,omitempty"`
	Heritage   *Heritage   `json:"heritage,omitempty"`
}

// Bonus returns the strength bonus a card contributes when equipped.
// Only items carry an equip bonus.
func (c Card) Bonus() int {
	if c.Sub == SubItem && c.Item != nil {
		return c.Item.Bonus
	}
	return 0
}

// GoldValue returns the sale value of the card, or 0 if it cannot be sold.
func (c Card) GoldValue() int {
	if c.Sub == SubItem && c.Item != nil {
		return c.Item.GoldValue
	}
	return 0
}

// HasAbility reports whether a class/race card grants the given ability.
func (c Card) HasAbility(a Ability) bool {
	if c.Heritage == nil {
		return false
	}
	for _, ab := range c.Heritage.Abilities {
		if ab == a {
			return true
		}
	}
	return false
}
