package game

import (
	"github.com/google/uuid"

	"github.com/Barisylp/Bigbang/internal/deck"
	"github.com/Barisylp/Bigbang/internal/models"
)

// CardView is one card as one recipient sees it: either the full instance or
// a hidden placeholder. Placeholders preserve count and nothing else.
type CardView struct {
	Card   *deck.Instance `json:"card,omitempty"`
	Hidden bool           `json:"hidden,omitempty"`
}

// PlayerView is one seat as one recipient sees it. Equipment, heritage,
// level and gold are public; hand and backpack are masked for everyone but
// their owner.
type PlayerView struct {
	ID        uuid.UUID         `json:"id"`
	Name      string            `json:"name"`
	Level     int               `json:"level"`
	Gold      int               `json:"gold"`
	Strength  int               `json:"strength"`
	Equipment []*deck.Instance  `json:"equipment"`
	Race      *deck.Instance    `json:"race,omitempty"`
	Class     *deck.Instance    `json:"class,omitempty"`
	Modifiers []models.Modifier `json:"modifiers,omitempty"`
	Hand      []CardView        `json:"hand"`
	Backpack  []CardView        `json:"backpack"`
}

// PendingDrawView mirrors PendingDraw with the card masked for everyone but
// the drawer when the draw was private.
type PendingDrawView struct {
	Card     *deck.Instance `json:"card,omitempty"`
	Hidden   bool           `json:"hidden,omitempty"`
	PlayerID uuid.UUID      `json:"playerId"`
	IsPublic bool           `json:"isPublic"`
}

// RoomState is the full per-recipient snapshot sent on every mutation.
type RoomState struct {
	Code            string           `json:"code"`
	HostID          uuid.UUID        `json:"hostId"`
	Started         bool             `json:"started"`
	Phase           Phase            `json:"phase,omitempty"`
	TurnPlayerID    uuid.UUID        `json:"turnPlayerId,omitempty"`
	Players         []PlayerView     `json:"players"`
	DoorDeckCount   int              `json:"doorDeckCount"`
	TreasureCount   int              `json:"treasureDeckCount"`
	DiscardCount    int              `json:"discardCount"`
	DiscardTop      *deck.Instance   `json:"discardTop,omitempty"`
	Combat          *Combat          `json:"combat,omitempty"`
	PendingDraw     *PendingDrawView `json:"pendingDraw,omitempty"`
	DeckConfig      map[string]int   `json:"deckConfig,omitempty"`
}

// snapshot serializes the room for one recipient, masking every other
// player's hand and backpack. Assumes lock is held by caller.
func (r *Room) snapshot(forPlayer uuid.UUID) RoomState {
	st := RoomState{
		Code:       r.Code,
		HostID:     r.HostID,
		Started:    r.Started,
		Phase:      r.Phase,
		Combat:     r.Combat,
		DeckConfig: r.DeckConfig,
	}
	if cur := r.currentPlayer(); cur != nil && r.Started {
		st.TurnPlayerID = cur.ID
	}
	if r.DoorDeck != nil {
		st.DoorDeckCount = r.DoorDeck.Len()
	}
	if r.TreasureDeck != nil {
		st.TreasureCount = r.TreasureDeck.Len()
	}
	// The discard pile is face up: the top card is public.
	st.DiscardCount = len(r.DiscardPile)
	if st.DiscardCount > 0 {
		st.DiscardTop = r.DiscardPile[st.DiscardCount-1]
	}
	if pd := r.PendingDraw; pd != nil {
		view := &PendingDrawView{PlayerID: pd.PlayerID, IsPublic: pd.IsPublic}
		if pd.IsPublic || pd.PlayerID == forPlayer {
			view.Card = pd.Card
		} else {
			view.Hidden = true
		}
		st.PendingDraw = view
	}

	st.Players = make([]PlayerView, 0, len(r.Players))
	for _, p := range r.Players {
		mine := p.ID == forPlayer
		st.Players = append(st.Players, PlayerView{
			ID:        p.ID,
			Name:      p.Name,
			Level:     p.Level,
			Gold:      p.Gold,
			Strength:  p.Strength(),
			Equipment: p.Equipment,
			Race:      p.Race,
			Class:     p.Class,
			Modifiers: p.Modifiers,
			Hand:     maskCards(p.Hand, mine),
			Backpack: maskCards(p.Backpack, mine),
		})
	}
	return st
}

func maskCards(cards []*deck.Instance, visible bool) []CardView {
	out := make([]CardView, 0, len(cards))
	for _, c := range cards {
		if visible {
			out = append(out, CardView{Card: c})
		} else {
			out = append(out, CardView{Hidden: true})
		}
	}
	return out
}
