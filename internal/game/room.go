// Package game implements the authoritative room state machine: turn phases,
// the combat resolver, per-player masked snapshots and the room store.
package game

import (
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Barisylp/Bigbang/internal/cache"
	"github.com/Barisylp/Bigbang/internal/catalog"
	"github.com/Barisylp/Bigbang/internal/database"
	"github.com/Barisylp/Bigbang/internal/deck"
	"github.com/Barisylp/Bigbang/internal/models"
)

// Phase is the current player's position in their turn.
type Phase string

const (
	PhaseKickOpen Phase = "kick_open"
	PhaseAction   Phase = "action_selection"
	PhaseEnd      Phase = "end"
)

// Cards dealt to each player when the game starts.
const (
	startingDoorCards     = 4
	startingTreasureCards = 4
)

// PendingDraw is a drawn card awaiting the drawer's takeCard. Public draws
// (kick open) are revealed room-wide; private draws (loot) are masked for
// everyone but the drawer.
type PendingDraw struct {
	Card     *deck.Instance
	PlayerID uuid.UUID
	IsPublic bool
}

// Room is one game instance. All state behind Mu; exported methods lock,
// lowercase helpers assume the lock is held by the caller.
type Room struct {
	Mu sync.Mutex

	Code    string
	HostID  uuid.UUID
	Players []*models.Player

	Started   bool
	Phase     Phase
	TurnIndex int

	DoorDeck     *deck.Deck
	TreasureDeck *deck.Deck
	DeckConfig   deck.Configuration

	Combat      *Combat
	PendingDraw *PendingDraw
	DiscardPile []*deck.Instance

	CombatTimerSec int

	// BroadcastToPlayerFn is injected by the transport before play begins.
	BroadcastToPlayerFn BroadcastToPlayerFn

	combatSeq   int
	actionIndex int
	rng         *rand.Rand
	log         *logrus.Entry
}

// NewRoom creates an empty room. The rng drives every shuffle in the room;
// tests pass a seeded source.
func NewRoom(code string, combatTimerSec int, rng *rand.Rand) *Room {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Room{
		Code:           code,
		CombatTimerSec: combatTimerSec,
		rng:            rng,
		log:            logrus.WithField("room", code),
	}
}

// Join adds a player to the room. The first player becomes host. Joining an
// already started game is rejected.
func (r *Room) Join(playerID uuid.UUID, name string) error {
	r.Mu.Lock()
	defer r.Mu.Unlock()

	if r.Started {
		return ErrGameStarted
	}
	for _, p := range r.Players {
		if p.ID == playerID {
			return ErrAlreadyJoined
		}
	}
	p := models.NewPlayer(playerID, name)
	if len(r.Players) == 0 {
		r.HostID = playerID
	}
	r.Players = append(r.Players, p)
	r.log.WithFields(logrus.Fields{"player": playerID, "name": name}).Info("player joined")
	r.fireState()
	return nil
}

// Leave removes a player. Returns true when the room is now empty and should
// be torn down by the store.
func (r *Room) Leave(playerID uuid.UUID) bool {
	r.Mu.Lock()
	defer r.Mu.Unlock()

	idx := -1
	for i, p := range r.Players {
		if p.ID == playerID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return len(r.Players) == 0
	}

	if r.Combat != nil && (r.Combat.PlayerID == playerID || r.Combat.AllyID == playerID) {
		r.clearCombat()
	}
	if r.PendingDraw != nil && r.PendingDraw.PlayerID == playerID {
		r.PendingDraw = nil
	}

	wasTurn := r.Started && idx == r.TurnIndex
	r.Players = append(r.Players[:idx], r.Players[idx+1:]...)
	if idx < r.TurnIndex {
		r.TurnIndex--
	}
	if len(r.Players) == 0 {
		r.stopCombatTimer()
		return true
	}
	if r.TurnIndex >= len(r.Players) {
		r.TurnIndex = 0
	}
	if r.HostID == playerID {
		r.HostID = r.Players[0].ID
	}
	if wasTurn {
		r.Phase = PhaseKickOpen
	}

	r.log.WithField("player", playerID).Info("player left")
	r.fireState()
	return false
}

// start deals opening hands and moves into the first turn.
// Assumes lock is held by caller.
func (r *Room) start() {
	r.DoorDeck = deck.New(catalog.DoorDeck(), r.DeckConfig, r.rng)
	r.TreasureDeck = deck.New(catalog.TreasureDeck(), r.DeckConfig, r.rng)

	for _, p := range r.Players {
		for i := 0; i < startingDoorCards; i++ {
			p.Hand = append(p.Hand, r.DoorDeck.Draw())
		}
		for i := 0; i < startingTreasureCards; i++ {
			p.Hand = append(p.Hand, r.TreasureDeck.Draw())
		}
	}

	r.Started = true
	r.TurnIndex = 0
	r.Phase = PhaseKickOpen
	r.log.WithField("players", len(r.Players)).Info("game started")
	r.fireAll(Event{Type: EventGameStarted})
	r.fireState()
}

// endTurn resets per-turn state and passes the turn to the next seat.
// Assumes lock is held by caller.
func (r *Room) endTurn() {
	p := r.currentPlayer()
	if p != nil {
		p.ItemsSoldThisTurn = 0
		p.AgeModifiers()
	}
	r.PendingDraw = nil
	r.TurnIndex = (r.TurnIndex + 1) % len(r.Players)
	r.Phase = PhaseKickOpen
	r.fireState()
}

// endGame broadcasts the final standings and archives them. Assumes lock is
// held by caller.
func (r *Room) endGame(winner *models.Player) {
	r.stopCombatTimer()
	r.Phase = PhaseEnd
	r.log.WithField("winner", winner.ID).Info("game over")

	standings := make([]map[string]interface{}, 0, len(r.Players))
	for _, p := range r.Players {
		standings = append(standings, map[string]interface{}{
			"id":    p.ID,
			"name":  p.Name,
			"level": p.Level,
			"gold":  p.Gold,
		})
	}
	r.fireAll(Event{Type: EventGameOver, Payload: map[string]interface{}{
		"winnerId":   winner.ID,
		"winnerName": winner.Name,
		"standings":  standings,
	}})

	if database.DB != nil {
		results := make([]database.PlayerResult, 0, len(r.Players))
		for _, p := range r.Players {
			results = append(results, database.PlayerResult{
				PlayerID: p.ID,
				Name:     p.Name,
				Level:    p.Level,
				Gold:     p.Gold,
				Won:      p.ID == winner.ID,
			})
		}
		go database.StoreMatchResult(r.Code, results)
	}
}

// discard moves spent cards onto the open discard pile. Assumes lock is held
// by caller.
func (r *Room) discard(insts ...*deck.Instance) {
	for _, inst := range insts {
		if inst != nil {
			r.DiscardPile = append(r.DiscardPile, inst)
		}
	}
}

func (r *Room) currentPlayer() *models.Player {
	if len(r.Players) == 0 || r.TurnIndex >= len(r.Players) {
		return nil
	}
	return r.Players[r.TurnIndex]
}

func (r *Room) playerByID(id uuid.UUID) *models.Player {
	for _, p := range r.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// fireAll sends an event to every player in the room. Assumes lock is held by
// caller.
func (r *Room) fireAll(ev Event) {
	if r.BroadcastToPlayerFn == nil {
		return
	}
	for _, p := range r.Players {
		r.BroadcastToPlayerFn(p.ID, ev)
	}
}

// fireState rebroadcasts the room, masked per recipient. Assumes lock is held
// by caller.
func (r *Room) fireState() {
	if r.BroadcastToPlayerFn == nil {
		return
	}
	for _, p := range r.Players {
		r.BroadcastToPlayerFn(p.ID, Event{
			Type:    EventRoomUpdate,
			Payload: map[string]interface{}{"room": r.snapshot(p.ID)},
		})
	}
}

// fireErr sends a private failure notice to one player. Assumes lock is held
// by caller.
func (r *Room) fireErr(playerID uuid.UUID, msg string) {
	if r.BroadcastToPlayerFn == nil {
		return
	}
	r.BroadcastToPlayerFn(playerID, Event{
		Type:    EventError,
		Payload: map[string]interface{}{"message": msg},
	})
}

// fireToast sends an informational notice to the whole room. Assumes lock is
// held by caller.
func (r *Room) fireToast(msg string) {
	r.fireAll(Event{Type: EventToast, Payload: map[string]interface{}{"message": msg}})
}

// logAction records a mutating action to the historian, fire-and-forget.
// Assumes lock is held by caller.
func (r *Room) logAction(actorID uuid.UUID, action Action) {
	r.actionIndex++
	if cache.Rdb == nil {
		return
	}
	cache.PublishGameAction(cache.GameActionRecord{
		RoomCode:    r.Code,
		ActionIndex: r.actionIndex,
		ActorID:     actorID.String(),
		ActionType:  string(action.Type),
		CardID:      action.CardID,
		Timestamp:   time.Now().UnixMilli(),
	})
}
