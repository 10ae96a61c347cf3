package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Barisylp/Bigbang/internal/catalog"
	"github.com/Barisylp/Bigbang/internal/deck"
)

func item(id string, bonus int, slot catalog.Slot) *deck.Instance {
	return &deck.Instance{
		Card: catalog.Card{
			ID:   id,
			Type: catalog.TypeTreasure,
			Sub:  catalog.SubItem,
			Item: &catalog.Item{Bonus: bonus, GoldValue: 100, Slot: slot},
		},
		BaseID: id,
	}
}

func TestStrengthSumsLevelEquipmentModifiers(t *testing.T) {
	p := NewPlayer(uuid.New(), "ayse")
	p.Level = 3
	require.True(t, p.Equip(item("a", 2, catalog.SlotHead)))
	require.True(t, p.Equip(item("b", 5, catalog.SlotHand)))
	p.Modifiers = append(p.Modifiers, Modifier{Source: "curse", Value: -3, TurnsLeft: 1})

	assert.Equal(t, 7, p.Strength())
}

func TestEquipHandSlotEvictsOldest(t *testing.T) {
	p := NewPlayer(uuid.New(), "ali")
	require.True(t, p.Equip(item("h1", 1, catalog.SlotHand)))
	require.True(t, p.Equip(item("h2", 2, catalog.SlotHand)))
	require.True(t, p.Equip(item("h3", 3, catalog.SlotHand)))

	assert.Len(t, p.Equipment, 2)
	require.Len(t, p.Hand, 1)
	assert.Equal(t, "h1", p.Hand[0].Card.ID)
}

func TestEquipSingleSlotEvictsOccupant(t *testing.T) {
	p := NewPlayer(uuid.New(), "ali")
	require.True(t, p.Equip(item("head1", 1, catalog.SlotHead)))
	require.True(t, p.Equip(item("head2", 2, catalog.SlotHead)))

	require.Len(t, p.Equipment, 1)
	assert.Equal(t, "head2", p.Equipment[0].Card.ID)
	require.Len(t, p.Hand, 1)
	assert.Equal(t, "head1", p.Hand[0].Card.ID)
}

func TestEquipSlotlessStacks(t *testing.T) {
	p := NewPlayer(uuid.New(), "ali")
	for i := 0; i < 4; i++ {
		require.True(t, p.Equip(item(string(rune('a'+i)), 0, catalog.SlotNone)))
	}
	assert.Len(t, p.Equipment, 4)
	assert.Empty(t, p.Hand)
}

func TestEquipRejectsNonItem(t *testing.T) {
	p := NewPlayer(uuid.New(), "ali")
	monster := &deck.Instance{Card: catalog.Card{ID: "m", Sub: catalog.SubMonster}}
	assert.False(t, p.Equip(monster))
	assert.Empty(t, p.Equipment)
}

func TestSetHeritageReplacesWholesale(t *testing.T) {
	p := NewPlayer(uuid.New(), "ali")
	cl1 := &deck.Instance{Card: catalog.Card{ID: "cl1", Sub: catalog.SubClass,
		Heritage: &catalog.Heritage{Abilities: []catalog.Ability{catalog.AbilityHaggle}}}}
	cl2 := &deck.Instance{Card: catalog.Card{ID: "cl2", Sub: catalog.SubClass}}

	replaced, ok := p.SetHeritage(cl1)
	require.True(t, ok)
	assert.Nil(t, replaced)
	assert.True(t, p.HasAbility(catalog.AbilityHaggle))

	replaced, ok = p.SetHeritage(cl2)
	require.True(t, ok)
	require.NotNil(t, replaced)
	assert.Equal(t, "cl1", replaced.Card.ID)
	assert.False(t, p.HasAbility(catalog.AbilityHaggle))
}

func TestLevelBounds(t *testing.T) {
	p := NewPlayer(uuid.New(), "ali")
	p.LoseLevel(5)
	assert.Equal(t, MinLevel, p.Level)

	p.Level = 9
	p.GainLevel(3, MaxLevel)
	assert.Equal(t, MaxLevel, p.Level)

	p.Level = 8
	p.GainLevel(4, MaxBuyLevel)
	assert.Equal(t, MaxBuyLevel, p.Level)
}

func TestAgeModifiersExpiry(t *testing.T) {
	p := NewPlayer(uuid.New(), "ali")
	p.Modifiers = []Modifier{
		{Source: "a", Value: -3, TurnsLeft: 1},
		{Source: "b", Value: -1, TurnsLeft: 2},
	}

	p.AgeModifiers()
	require.Len(t, p.Modifiers, 1)
	assert.Equal(t, "b", p.Modifiers[0].Source)

	p.AgeModifiers()
	assert.Empty(t, p.Modifiers)
}

func TestFindAndRemoveAcrossContainers(t *testing.T) {
	p := NewPlayer(uuid.New(), "ali")
	p.Hand = append(p.Hand, item("h", 1, catalog.SlotNone))
	p.Backpack = append(p.Backpack, item("bp", 1, catalog.SlotNone))
	require.True(t, p.Equip(item("eq", 1, catalog.SlotHead)))

	_, loc, ok := p.Find("bp")
	require.True(t, ok)
	assert.Equal(t, InBackpack, loc)

	removed := p.Remove("eq")
	require.NotNil(t, removed)
	assert.Empty(t, p.Equipment)

	_, _, ok = p.Find("missing")
	assert.False(t, ok)
}
