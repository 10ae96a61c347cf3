package game

import (
	"math/rand"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Barisylp/Bigbang/internal/catalog"
	"github.com/Barisylp/Bigbang/internal/deck"
	"github.com/Barisylp/Bigbang/internal/models"
)

// mockBroadcaster captures every event per recipient so tests can assert on
// exactly what each player was told.
type mockBroadcaster struct {
	mu           sync.Mutex
	playerEvents map[uuid.UUID][]Event
}

func newMockBroadcaster() *mockBroadcaster {
	return &mockBroadcaster{playerEvents: make(map[uuid.UUID][]Event)}
}

func (m *mockBroadcaster) fn(playerID uuid.UUID, ev Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.playerEvents[playerID] = append(m.playerEvents[playerID], ev)
}

func (m *mockBroadcaster) lastOfType(playerID uuid.UUID, t EventType) (Event, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	evs := m.playerEvents[playerID]
	for i := len(evs) - 1; i >= 0; i-- {
		if evs[i].Type == t {
			return evs[i], true
		}
	}
	return Event{}, false
}

func (m *mockBroadcaster) countOfType(playerID uuid.UUID, t EventType) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, ev := range m.playerEvents[playerID] {
		if ev.Type == t {
			n++
		}
	}
	return n
}

// setupRoom builds a started two-player room with a seeded rng, full decks
// and empty hands, sitting at the start of player 0's turn.
func setupRoom(t *testing.T, numPlayers int) (*Room, *mockBroadcaster, []uuid.UUID) {
	t.Helper()
	rng := rand.New(rand.NewSource(1))
	r := NewRoom("TEST", DefaultCombatTimerSec, rng)
	mb := newMockBroadcaster()
	r.BroadcastToPlayerFn = mb.fn

	ids := make([]uuid.UUID, numPlayers)
	for i := 0; i < numPlayers; i++ {
		ids[i] = uuid.New()
		require.NoError(t, r.Join(ids[i], "player"))
	}

	r.Mu.Lock()
	r.DoorDeck = deck.New(catalog.DoorDeck(), nil, rng)
	r.TreasureDeck = deck.New(catalog.TreasureDeck(), nil, rng)
	r.Started = true
	r.TurnIndex = 0
	r.Phase = PhaseKickOpen
	r.Mu.Unlock()
	return r, mb, ids
}

func instanceOf(t *testing.T, baseID string, n int) *deck.Instance {
	t.Helper()
	card, ok := catalog.ByID()[baseID]
	require.True(t, ok, "unknown catalog id %s", baseID)
	inst := &deck.Instance{Card: card, BaseID: baseID}
	inst.Card.ID = baseID + "_t" + string(rune('0'+n))
	return inst
}

func TestStartGameDealsOpeningHands(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	r := NewRoom("TEST", DefaultCombatTimerSec, rng)
	mb := newMockBroadcaster()
	r.BroadcastToPlayerFn = mb.fn

	host := uuid.New()
	guest := uuid.New()
	require.NoError(t, r.Join(host, "host"))
	require.NoError(t, r.Join(guest, "guest"))

	r.HandleAction(host, Action{Type: ActionStartGame})

	r.Mu.Lock()
	defer r.Mu.Unlock()
	require.True(t, r.Started)
	assert.Equal(t, PhaseKickOpen, r.Phase)
	for _, p := range r.Players {
		doors, treasures := 0, 0
		for _, c := range p.Hand {
			if c.Type == catalog.TypeDoor {
				doors++
			} else {
				treasures++
			}
		}
		assert.Equal(t, startingDoorCards, doors)
		assert.Equal(t, startingTreasureCards, treasures)
	}
	_, got := mb.lastOfType(guest, EventGameStarted)
	assert.True(t, got)
}

func TestStartGameGuards(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	r := NewRoom("TEST", DefaultCombatTimerSec, rng)
	mb := newMockBroadcaster()
	r.BroadcastToPlayerFn = mb.fn

	host := uuid.New()
	guest := uuid.New()
	require.NoError(t, r.Join(host, "host"))

	// Solo start is rejected.
	r.HandleAction(host, Action{Type: ActionStartGame})
	assert.False(t, r.Started)

	require.NoError(t, r.Join(guest, "guest"))

	// Non-host start is rejected with a private error.
	r.HandleAction(guest, Action{Type: ActionStartGame})
	assert.False(t, r.Started)
	_, got := mb.lastOfType(guest, EventError)
	assert.True(t, got)
	assert.Zero(t, mb.countOfType(host, EventError))
}

func TestActionRejectedOutOfTurn(t *testing.T) {
	r, mb, ids := setupRoom(t, 2)

	r.HandleAction(ids[1], Action{Type: ActionDrawDoorCard})

	r.Mu.Lock()
	assert.Equal(t, PhaseKickOpen, r.Phase)
	assert.Nil(t, r.PendingDraw)
	assert.Nil(t, r.Combat)
	r.Mu.Unlock()
	_, got := mb.lastOfType(ids[1], EventError)
	assert.True(t, got)
}

func TestActionRejectedWrongPhase(t *testing.T) {
	r, mb, ids := setupRoom(t, 2)

	// Looting is an action-phase move; the turn is still at kick open.
	r.HandleAction(ids[0], Action{Type: ActionLootTheRoom})

	r.Mu.Lock()
	assert.Nil(t, r.PendingDraw)
	r.Mu.Unlock()
	_, got := mb.lastOfType(ids[0], EventError)
	assert.True(t, got)
}

func TestDrawDoorCardMonsterOpensCombat(t *testing.T) {
	r, _, ids := setupRoom(t, 2)

	// Pin the top of the door deck to a monster.
	r.Mu.Lock()
	monster := instanceOf(t, "m3", 1)
	r.DoorDeck = deck.New([]catalog.Card{monster.Card}, deck.Configuration{monster.Card.ID: 1}, rand.New(rand.NewSource(1)))
	r.Mu.Unlock()

	r.HandleAction(ids[0], Action{Type: ActionDrawDoorCard})

	r.Mu.Lock()
	defer r.Mu.Unlock()
	require.NotNil(t, r.Combat)
	assert.Equal(t, ids[0], r.Combat.PlayerID)
	assert.Equal(t, CombatActive, r.Combat.Status)
	assert.Equal(t, DefaultCombatTimerSec, r.Combat.Timer)
	assert.Equal(t, PhaseEnd, r.Phase)
	r.stopCombatTimer()
}

func TestDrawDoorCardRevealsPendingDraw(t *testing.T) {
	r, mb, ids := setupRoom(t, 2)

	item := instanceOf(t, "i1", 1)
	r.Mu.Lock()
	r.DoorDeck = deck.New([]catalog.Card{item.Card}, deck.Configuration{item.Card.ID: 1}, rand.New(rand.NewSource(1)))
	r.Mu.Unlock()

	r.HandleAction(ids[0], Action{Type: ActionDrawDoorCard})

	r.Mu.Lock()
	require.NotNil(t, r.PendingDraw)
	assert.True(t, r.PendingDraw.IsPublic)
	assert.Equal(t, ids[0], r.PendingDraw.PlayerID)
	assert.Equal(t, PhaseAction, r.Phase)
	r.Mu.Unlock()

	// The reveal is public: the other player sees the card too.
	ev, got := mb.lastOfType(ids[1], EventRoomUpdate)
	require.True(t, got)
	st := ev.Payload["room"].(RoomState)
	require.NotNil(t, st.PendingDraw)
	assert.NotNil(t, st.PendingDraw.Card)

	// Only the drawer can take it.
	r.HandleAction(ids[1], Action{Type: ActionTakeCard})
	r.Mu.Lock()
	assert.NotNil(t, r.PendingDraw)
	r.Mu.Unlock()

	r.HandleAction(ids[0], Action{Type: ActionTakeCard})
	r.Mu.Lock()
	defer r.Mu.Unlock()
	assert.Nil(t, r.PendingDraw)
	assert.Len(t, r.Players[0].Hand, 1)
}

func TestDrawnCurseSelfTargets(t *testing.T) {
	r, _, ids := setupRoom(t, 2)

	curse := instanceOf(t, "c_cigkofte", 1)
	r.Mu.Lock()
	r.DoorDeck = deck.New([]catalog.Card{curse.Card}, deck.Configuration{curse.Card.ID: 1}, rand.New(rand.NewSource(1)))
	r.Mu.Unlock()

	r.HandleAction(ids[0], Action{Type: ActionDrawDoorCard})

	r.Mu.Lock()
	defer r.Mu.Unlock()
	require.Len(t, r.Players[0].Modifiers, 1)
	assert.Equal(t, -3, r.Players[0].Modifiers[0].Value)
	assert.Equal(t, PhaseAction, r.Phase)
	assert.Nil(t, r.PendingDraw)
}

func TestLootTheRoomDrawsFaceDown(t *testing.T) {
	r, mb, ids := setupRoom(t, 2)

	r.Mu.Lock()
	r.Phase = PhaseAction
	r.Mu.Unlock()

	r.HandleAction(ids[0], Action{Type: ActionLootTheRoom})

	r.Mu.Lock()
	require.NotNil(t, r.PendingDraw)
	assert.False(t, r.PendingDraw.IsPublic)
	r.Mu.Unlock()

	// The other player sees only a hidden placeholder.
	ev, got := mb.lastOfType(ids[1], EventRoomUpdate)
	require.True(t, got)
	st := ev.Payload["room"].(RoomState)
	require.NotNil(t, st.PendingDraw)
	assert.True(t, st.PendingDraw.Hidden)
	assert.Nil(t, st.PendingDraw.Card)

	// The drawer sees the card.
	ev, got = mb.lastOfType(ids[0], EventRoomUpdate)
	require.True(t, got)
	st = ev.Payload["room"].(RoomState)
	require.NotNil(t, st.PendingDraw)
	assert.NotNil(t, st.PendingDraw.Card)
}

func TestEndTurnResetsAndAdvances(t *testing.T) {
	r, _, ids := setupRoom(t, 3)

	r.Mu.Lock()
	r.Phase = PhaseEnd
	p := r.Players[0]
	p.ItemsSoldThisTurn = 2
	p.Modifiers = []models.Modifier{{Source: "x", Value: -3, TurnsLeft: 1}}
	r.Mu.Unlock()

	r.HandleAction(ids[0], Action{Type: ActionEndTurn})

	r.Mu.Lock()
	defer r.Mu.Unlock()
	assert.Equal(t, 1, r.TurnIndex)
	assert.Equal(t, PhaseKickOpen, r.Phase)
	assert.Zero(t, p.ItemsSoldThisTurn)
	assert.Empty(t, p.Modifiers, "one-turn modifier should expire")
}

func TestTurnWrapsCyclically(t *testing.T) {
	r, _, ids := setupRoom(t, 2)

	r.Mu.Lock()
	r.TurnIndex = 1
	r.Phase = PhaseEnd
	r.Mu.Unlock()

	r.HandleAction(ids[1], Action{Type: ActionEndTurn})

	r.Mu.Lock()
	defer r.Mu.Unlock()
	assert.Equal(t, 0, r.TurnIndex)
}

func TestPlayItemEquips(t *testing.T) {
	r, _, ids := setupRoom(t, 2)

	item := instanceOf(t, "i2", 1)
	r.Mu.Lock()
	r.Players[0].Hand = append(r.Players[0].Hand, item)
	r.Phase = PhaseAction
	r.Mu.Unlock()

	r.HandleAction(ids[0], Action{Type: ActionPlayCard, CardID: item.Card.ID})

	r.Mu.Lock()
	defer r.Mu.Unlock()
	p := r.Players[0]
	assert.Empty(t, p.Hand)
	require.Len(t, p.Equipment, 1)
	assert.Equal(t, 6, p.Strength(), "level 1 + terlik 5")
}

func TestBackpackRoundTrip(t *testing.T) {
	r, _, ids := setupRoom(t, 2)

	item := instanceOf(t, "i1", 1)
	r.Mu.Lock()
	r.Players[1].Hand = append(r.Players[1].Hand, item)
	r.Mu.Unlock()

	// Backpack moves are exempt from the turn guard.
	r.HandleAction(ids[1], Action{Type: ActionMoveToBackpack, CardID: item.Card.ID})
	r.Mu.Lock()
	assert.Empty(t, r.Players[1].Hand)
	assert.Len(t, r.Players[1].Backpack, 1)
	r.Mu.Unlock()

	r.HandleAction(ids[1], Action{Type: ActionRemoveFromBackpack, CardID: item.Card.ID})
	r.Mu.Lock()
	defer r.Mu.Unlock()
	assert.Len(t, r.Players[1].Hand, 1)
	assert.Empty(t, r.Players[1].Backpack)
}

func TestDiscardCardSellsWithHaggleDoubling(t *testing.T) {
	r, _, ids := setupRoom(t, 2)

	esnaf := instanceOf(t, "cl1", 1)
	first := instanceOf(t, "i1", 1)  // 400 gold
	second := instanceOf(t, "i1", 2) // 400 gold
	r.Mu.Lock()
	p := r.Players[0]
	p.Class = esnaf
	p.Hand = append(p.Hand, first, second)
	r.Phase = PhaseAction
	r.Mu.Unlock()

	r.HandleAction(ids[0], Action{Type: ActionDiscardCard, CardID: first.Card.ID})
	r.Mu.Lock()
	assert.Equal(t, 800, p.Gold, "first sale of the turn is doubled")
	r.Mu.Unlock()

	r.HandleAction(ids[0], Action{Type: ActionDiscardCard, CardID: second.Card.ID})
	r.Mu.Lock()
	defer r.Mu.Unlock()
	assert.Equal(t, 1200, p.Gold, "second sale is face value")
	assert.Empty(t, p.Hand)
}

func TestDiscardCardMovesToPile(t *testing.T) {
	r, _, ids := setupRoom(t, 2)

	item := instanceOf(t, "i1", 1)
	r.Mu.Lock()
	r.Players[0].Hand = append(r.Players[0].Hand, item)
	r.Phase = PhaseAction
	r.Mu.Unlock()

	r.HandleAction(ids[0], Action{Type: ActionDiscardCard, CardID: item.Card.ID})

	r.Mu.Lock()
	require.Len(t, r.DiscardPile, 1)
	assert.Equal(t, item.Card.ID, r.DiscardPile[0].Card.ID)
	assert.Empty(t, r.Players[0].Hand)

	// The pile is face up in every snapshot.
	st := r.snapshot(ids[1])
	r.Mu.Unlock()
	assert.Equal(t, 1, st.DiscardCount)
	require.NotNil(t, st.DiscardTop)
	assert.Equal(t, item.Card.ID, st.DiscardTop.Card.ID)
}

func TestDiscardCardOnlyFromHand(t *testing.T) {
	r, mb, ids := setupRoom(t, 2)

	equipped := instanceOf(t, "i1", 1)
	r.Mu.Lock()
	require.True(t, r.Players[0].Equip(equipped))
	r.Phase = PhaseAction
	r.Mu.Unlock()

	r.HandleAction(ids[0], Action{Type: ActionDiscardCard, CardID: equipped.Card.ID})

	r.Mu.Lock()
	defer r.Mu.Unlock()
	assert.Len(t, r.Players[0].Equipment, 1, "equipped items cannot be sold directly")
	assert.Zero(t, r.Players[0].Gold)
	assert.Empty(t, r.DiscardPile)
	_, got := mb.lastOfType(ids[0], EventError)
	assert.True(t, got)
}

func TestBuyLevel(t *testing.T) {
	r, mb, ids := setupRoom(t, 2)

	r.Mu.Lock()
	p := r.Players[0]
	p.Level = 8
	p.Gold = 2500
	r.Phase = PhaseAction
	r.Mu.Unlock()

	r.HandleAction(ids[0], Action{Type: ActionBuyLevel})
	r.Mu.Lock()
	assert.Equal(t, 9, p.Level)
	assert.Equal(t, 1500, p.Gold)
	r.Mu.Unlock()

	// Level 9 is the purchase ceiling.
	r.HandleAction(ids[0], Action{Type: ActionBuyLevel})
	r.Mu.Lock()
	defer r.Mu.Unlock()
	assert.Equal(t, 9, p.Level)
	assert.Equal(t, 1500, p.Gold)
	_, got := mb.lastOfType(ids[0], EventError)
	assert.True(t, got)
}

func TestBuyLevelInsufficientGold(t *testing.T) {
	r, mb, ids := setupRoom(t, 2)

	r.Mu.Lock()
	r.Players[0].Gold = 999
	r.Phase = PhaseAction
	r.Mu.Unlock()

	r.HandleAction(ids[0], Action{Type: ActionBuyLevel})

	r.Mu.Lock()
	defer r.Mu.Unlock()
	assert.Equal(t, 1, r.Players[0].Level)
	assert.Equal(t, 999, r.Players[0].Gold)
	_, got := mb.lastOfType(ids[0], EventError)
	assert.True(t, got)
}

func TestPlayCurseWeaken(t *testing.T) {
	r, _, ids := setupRoom(t, 2)

	curse := instanceOf(t, "c_cigkofte", 1)
	r.Mu.Lock()
	r.Players[1].Hand = append(r.Players[1].Hand, curse)
	r.Mu.Unlock()

	// Curses may be cast out of turn.
	r.HandleAction(ids[1], Action{Type: ActionPlayCurse, CardID: curse.Card.ID, TargetPlayer: ids[0]})

	r.Mu.Lock()
	defer r.Mu.Unlock()
	target := r.Players[0]
	require.Len(t, target.Modifiers, 1)
	assert.Equal(t, -3, target.Modifiers[0].Value)
	assert.Equal(t, target.Level-3, target.Strength(), "strength drops by 3")
	assert.Empty(t, r.Players[1].Hand, "curse is consumed")
	require.Len(t, r.DiscardPile, 1)
	assert.Equal(t, "c_cigkofte", r.DiscardPile[0].BaseID)
}

func TestPlayCurseDiscardRandomFizzles(t *testing.T) {
	r, mb, ids := setupRoom(t, 2)

	curse := instanceOf(t, "c1", 1)
	r.Mu.Lock()
	r.Players[1].Hand = append(r.Players[1].Hand, curse)
	// Target owns nothing.
	r.Players[0].Hand = nil
	r.Mu.Unlock()

	r.HandleAction(ids[1], Action{Type: ActionPlayCurse, CardID: curse.Card.ID, TargetPlayer: ids[0]})

	r.Mu.Lock()
	defer r.Mu.Unlock()
	assert.Empty(t, r.Players[1].Hand, "curse is spent even when it fizzles")
	n := mb.countOfType(ids[0], EventToast)
	assert.GreaterOrEqual(t, n, 1)
}

func TestPlayCurseDiscardRandomRemovesOne(t *testing.T) {
	r, _, ids := setupRoom(t, 2)

	curse := instanceOf(t, "c1", 1)
	r.Mu.Lock()
	r.Players[1].Hand = append(r.Players[1].Hand, curse)
	target := r.Players[0]
	target.Hand = append(target.Hand, instanceOf(t, "i1", 1))
	target.Backpack = append(target.Backpack, instanceOf(t, "i3", 2))
	r.Mu.Unlock()

	r.HandleAction(ids[1], Action{Type: ActionPlayCurse, CardID: curse.Card.ID, TargetPlayer: ids[0]})

	r.Mu.Lock()
	defer r.Mu.Unlock()
	assert.Equal(t, 1, len(target.Hand)+len(target.Backpack), "exactly one card destroyed")
	assert.Len(t, r.DiscardPile, 2, "curse and its victim both land on the pile")
}

func TestMaskingHidesOtherHands(t *testing.T) {
	r, _, ids := setupRoom(t, 2)

	r.Mu.Lock()
	r.Players[0].Hand = append(r.Players[0].Hand, instanceOf(t, "i1", 1), instanceOf(t, "i2", 2))
	r.Players[0].Backpack = append(r.Players[0].Backpack, instanceOf(t, "i3", 3))
	require.True(t, r.Players[0].Equip(instanceOf(t, "i4", 4)))

	st := r.snapshot(ids[1])
	r.Mu.Unlock()

	var other PlayerView
	for _, pv := range st.Players {
		if pv.ID == ids[0] {
			other = pv
		}
	}
	require.Len(t, other.Hand, 2, "masking preserves count")
	for _, cv := range other.Hand {
		assert.True(t, cv.Hidden)
		assert.Nil(t, cv.Card)
	}
	require.Len(t, other.Backpack, 1)
	assert.True(t, other.Backpack[0].Hidden)
	// Equipment stays public.
	require.Len(t, other.Equipment, 1)
	assert.Equal(t, "i4", other.Equipment[0].BaseID)
}

func TestMaskingShowsOwnCards(t *testing.T) {
	r, _, ids := setupRoom(t, 2)

	r.Mu.Lock()
	r.Players[0].Hand = append(r.Players[0].Hand, instanceOf(t, "i1", 1))
	st := r.snapshot(ids[0])
	r.Mu.Unlock()

	var mine PlayerView
	for _, pv := range st.Players {
		if pv.ID == ids[0] {
			mine = pv
		}
	}
	require.Len(t, mine.Hand, 1)
	assert.False(t, mine.Hand[0].Hidden)
	require.NotNil(t, mine.Hand[0].Card)
	assert.Equal(t, "i1", mine.Hand[0].Card.BaseID)
}

func TestLeaveRepairsTurnIndex(t *testing.T) {
	r, _, ids := setupRoom(t, 3)

	r.Mu.Lock()
	r.TurnIndex = 2
	r.Mu.Unlock()

	// A seat before the current turn leaves; the index shifts down.
	empty := r.Leave(ids[0])
	assert.False(t, empty)

	r.Mu.Lock()
	defer r.Mu.Unlock()
	assert.Equal(t, 1, r.TurnIndex)
	assert.Equal(t, ids[2], r.currentPlayer().ID)
	assert.Equal(t, ids[1], r.HostID, "host role passes on")
}

func TestLeaveCurrentTurnResetsPhase(t *testing.T) {
	r, _, ids := setupRoom(t, 2)

	r.Mu.Lock()
	r.Phase = PhaseAction
	r.Mu.Unlock()

	empty := r.Leave(ids[0])
	assert.False(t, empty)

	r.Mu.Lock()
	defer r.Mu.Unlock()
	assert.Equal(t, PhaseKickOpen, r.Phase)
	assert.Equal(t, ids[1], r.currentPlayer().ID)
}

func TestConfigureDeckClampsAndStores(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	r := NewRoom("TEST", DefaultCombatTimerSec, rng)
	mb := newMockBroadcaster()
	r.BroadcastToPlayerFn = mb.fn

	host := uuid.New()
	guest := uuid.New()
	require.NoError(t, r.Join(host, "host"))
	require.NoError(t, r.Join(guest, "guest"))

	r.HandleAction(host, Action{Type: ActionConfigureDeck, DeckConfig: map[string]int{
		"m1": 99, "i1": -5, "i2": 3,
	}})

	r.Mu.Lock()
	assert.Equal(t, 10, r.DeckConfig["m1"])
	assert.Equal(t, 0, r.DeckConfig["i1"])
	assert.Equal(t, 3, r.DeckConfig["i2"])
	r.Mu.Unlock()

	// Guests cannot reconfigure.
	r.HandleAction(guest, Action{Type: ActionConfigureDeck, DeckConfig: map[string]int{"m1": 1}})
	r.Mu.Lock()
	defer r.Mu.Unlock()
	assert.Equal(t, 10, r.DeckConfig["m1"])
}
