// Package deck implements the play-deck engine: quantity expansion from the
// catalog, unique per-copy identities, uniform shuffling and draws that
// transparently rebuild an exhausted deck.
package deck

import (
	"fmt"
	"math/rand"

	"github.com/Barisylp/Bigbang/internal/catalog"
)

// DefaultCopies is the number of copies emitted for a card with no
// configuration override.
const DefaultCopies = 2

// MaxCopies caps a per-card configuration value.
const MaxCopies = 10

// Configuration maps a base card id to the number of copies to include.
// Missing ids default to DefaultCopies; zero excludes the card.
type Configuration map[string]int

// Copies returns the effective copy count for a base card id.
func (c Configuration) Copies(id string) int {
	if c == nil {
		return DefaultCopies
	}
	n, ok := c[id]
	if !ok {
		return DefaultCopies
	}
	if n < 0 {
		return 0
	}
	if n > MaxCopies {
		return MaxCopies
	}
	return n
}

// Instance is one physical copy of a catalog card. The embedded Card carries
// the per-copy id; BaseID preserves the catalog identity so duplicates can
// coexist in hands and piles without colliding.
type Instance struct {
	catalog.Card
	BaseID string `json:"baseId"`
}

// Deck is an ordered stack of card instances. The tail is the top: Draw pops
// the last element. A Deck rebuilds itself from its source catalog whenever
// it runs dry, so Draw never fails.
type Deck struct {
	source []catalog.Card
	config Configuration
	rng    *rand.Rand
	cards  []*Instance
	serial map[string]int // per-base copy counter; survives rebuilds
}

// New builds a shuffled deck from the given catalog cards under config.
// The rng drives both the initial shuffle and every rebuild; pass a seeded
// source for deterministic tests.
func New(source []catalog.Card, config Configuration, rng *rand.Rand) *Deck {
	d := &Deck{
		source: source,
		config: config,
		rng:    rng,
		serial: make(map[string]int, len(source)),
	}
	d.rebuild()
	return d
}

// Len returns the number of cards currently in the deck.
func (d *Deck) Len() int {
	return len(d.cards)
}

// Draw ensures the deck is non-empty, rebuilding and reshuffling from the
// source catalog if needed, then pops the top card. The result is never nil
// as long as the source catalog is non-empty.
func (d *Deck) Draw() *Instance {
	if len(d.cards) == 0 {
		d.rebuild()
	}
	if len(d.cards) == 0 {
		return nil
	}
	top := d.cards[len(d.cards)-1]
	d.cards = d.cards[:len(d.cards)-1]
	return top
}

// rebuild expands the source catalog under the configuration and shuffles.
// Copy serials keep increasing across rebuilds so instance ids stay unique
// even when earlier copies are still held in hands or piles.
// A configuration that zeroes out every card falls back to default copies;
// a deck that can never produce a card would live-lock every draw site.
func (d *Deck) rebuild() {
	d.cards = d.expand(d.config)
	if len(d.cards) == 0 && len(d.source) > 0 {
		d.cards = d.expand(nil)
	}
	d.shuffle()
}

func (d *Deck) expand(config Configuration) []*Instance {
	var out []*Instance
	for _, c := range d.source {
		for i := 0; i < config.Copies(c.ID); i++ {
			d.serial[c.ID]++
			inst := &Instance{Card: c, BaseID: c.ID}
			inst.Card.ID = fmt.Sprintf("%s_%d", c.ID, d.serial[c.ID])
			out = append(out, inst)
		}
	}
	return out
}

// shuffle applies a Fisher–Yates permutation so every ordering is equally
// likely.
func (d *Deck) shuffle() {
	for i := len(d.cards) - 1; i >= 1; i-- {
		j := d.rng.Intn(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}
