package game

import "github.com/google/uuid"

// EventType tags an outbound message.
type EventType string

const (
	EventRoomCreated EventType = "roomCreated"
	EventRoomUpdate  EventType = "roomUpdate"
	EventGameStarted EventType = "gameStarted"
	EventGameOver    EventType = "gameOver"
	EventToast       EventType = "toast"
	EventError       EventType = "error"
)

// Event is one outbound message. Payload carries the type-specific body.
type Event struct {
	Type    EventType              `json:"type"`
	Payload map[string]interface{} `json:"payload,omitempty"`
}

// BroadcastToPlayerFn delivers an event to one player's connection. The
// transport layer injects it; the game layer never touches sockets.
type BroadcastToPlayerFn func(playerID uuid.UUID, ev Event)

// ActionType tags an inbound player action.
type ActionType string

const (
	ActionStartGame          ActionType = "startGame"
	ActionConfigureDeck      ActionType = "configureDeck"
	ActionDrawDoorCard       ActionType = "drawDoorCard"
	ActionLootTheRoom        ActionType = "lootTheRoom"
	ActionLookForTrouble     ActionType = "lookForTrouble"
	ActionTakeCard           ActionType = "takeCard"
	ActionPassActionPhase    ActionType = "passActionPhase"
	ActionEndTurn            ActionType = "endTurn"
	ActionPlayCard           ActionType = "playCard"
	ActionPlayFightSpell     ActionType = "playFightSpell"
	ActionPlayFromBackpack   ActionType = "playFromBackpack"
	ActionMoveToBackpack     ActionType = "moveToBackpack"
	ActionRemoveFromBackpack ActionType = "removeFromBackpack"
	ActionDiscardCard        ActionType = "discardCard"
	ActionBuyLevel           ActionType = "buyLevel"
	ActionPlayCurse          ActionType = "playCurse"
	ActionJoinCombat         ActionType = "joinCombat"
	ActionResolveCombat      ActionType = "resolveCombat"
)

// Action is one inbound player command, already parsed from the wire.
type Action struct {
	Type ActionType `json:"type"`
	// CardID is the instance id of the card being played, moved or sold.
	CardID string `json:"cardId,omitempty"`
	// TargetPlayer addresses curses and similar targeted plays.
	TargetPlayer uuid.UUID `json:"targetPlayer,omitempty"`
	// Target picks a combat side for side-choosing fight spells:
	// "player" or "monster".
	Target string `json:"target,omitempty"`
	// MonsterCardID names the hand monster consumed by a transplant spell.
	MonsterCardID string `json:"monsterCardId,omitempty"`
	// DeckConfig carries per-card quantities for configureDeck.
	DeckConfig map[string]int `json:"deckConfig,omitempty"`
}
