package game

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/Barisylp/Bigbang/internal/catalog"
	"github.com/Barisylp/Bigbang/internal/deck"
	"github.com/Barisylp/Bigbang/internal/models"
)

// LevelCost is the gold price of one purchased level.
const LevelCost = 1000

// Timer extensions granted by plays during an active combat, in seconds.
const (
	ordinaryPlayExtension = 2
	spellPlayExtension    = 4
)

// HandleAction validates and applies one player action. Invalid actions are
// no-ops answered with a private error notice; valid ones mutate state, log
// to the historian and rebroadcast.
func (r *Room) HandleAction(playerID uuid.UUID, action Action) {
	r.Mu.Lock()
	defer r.Mu.Unlock()

	actor := r.playerByID(playerID)
	if actor == nil {
		return
	}

	var ok bool
	switch action.Type {
	case ActionStartGame:
		ok = r.handleStartGame(actor)
	case ActionConfigureDeck:
		ok = r.handleConfigureDeck(actor, action)
	case ActionDrawDoorCard:
		ok = r.handleDrawDoorCard(actor)
	case ActionLootTheRoom:
		ok = r.handleLootTheRoom(actor)
	case ActionLookForTrouble:
		ok = r.handleLookForTrouble(actor, action)
	case ActionTakeCard:
		ok = r.handleTakeCard(actor)
	case ActionPassActionPhase:
		ok = r.handlePassActionPhase(actor)
	case ActionEndTurn:
		ok = r.handleEndTurn(actor)
	case ActionPlayCard, ActionPlayFightSpell:
		ok = r.handlePlay(actor, action, InHandSource)
	case ActionPlayFromBackpack:
		ok = r.handlePlay(actor, action, InBackpackSource)
	case ActionMoveToBackpack:
		ok = r.handleMoveToBackpack(actor, action)
	case ActionRemoveFromBackpack:
		ok = r.handleRemoveFromBackpack(actor, action)
	case ActionDiscardCard:
		ok = r.handleDiscardCard(actor, action)
	case ActionBuyLevel:
		ok = r.handleBuyLevel(actor)
	case ActionPlayCurse:
		ok = r.handlePlayCurse(actor, action)
	case ActionJoinCombat:
		ok = r.handleJoinCombat(actor)
	case ActionResolveCombat:
		ok = r.handleResolveCombat(actor)
	default:
		r.fireErr(playerID, "unknown action")
		return
	}
	if ok {
		r.logAction(playerID, action)
	}
}

// requireTurn checks the actor owns the current turn in one of the given
// phases. Assumes lock is held by caller.
func (r *Room) requireTurn(actor *models.Player, phases ...Phase) bool {
	if !r.Started {
		r.fireErr(actor.ID, "game has not started")
		return false
	}
	cur := r.currentPlayer()
	if cur == nil || cur.ID != actor.ID {
		r.fireErr(actor.ID, "not your turn")
		return false
	}
	for _, ph := range phases {
		if r.Phase == ph {
			return true
		}
	}
	r.fireErr(actor.ID, "not allowed in this phase")
	return false
}

func (r *Room) handleStartGame(actor *models.Player) bool {
	if r.Started {
		r.fireErr(actor.ID, "game already started")
		return false
	}
	if actor.ID != r.HostID {
		r.fireErr(actor.ID, "only the host can start the game")
		return false
	}
	if len(r.Players) < 2 {
		r.fireErr(actor.ID, "need at least 2 players")
		return false
	}
	r.start()
	return true
}

func (r *Room) handleConfigureDeck(actor *models.Player, action Action) bool {
	if r.Started {
		r.fireErr(actor.ID, "cannot change the deck after start")
		return false
	}
	if actor.ID != r.HostID {
		r.fireErr(actor.ID, "only the host can configure the deck")
		return false
	}
	cfg := make(deck.Configuration, len(action.DeckConfig))
	for id, n := range action.DeckConfig {
		if n < 0 {
			n = 0
		}
		if n > deck.MaxCopies {
			n = deck.MaxCopies
		}
		cfg[id] = n
	}
	r.DeckConfig = cfg
	r.fireState()
	return true
}

func (r *Room) handleDrawDoorCard(actor *models.Player) bool {
	if !r.requireTurn(actor, PhaseKickOpen) {
		return false
	}
	drawn := r.DoorDeck.Draw()
	if drawn == nil {
		return false
	}

	switch drawn.Sub {
	case catalog.SubMonster:
		r.Phase = PhaseEnd
		r.openCombat(actor, drawn)
	case catalog.SubCurse:
		r.fireToast(fmt.Sprintf("%s kapıyı açtı: %s!", actor.Name, drawn.Name))
		r.applyCurse(drawn, actor)
		r.discard(drawn)
		r.Phase = PhaseAction
		r.fireState()
	default:
		r.PendingDraw = &PendingDraw{Card: drawn, PlayerID: actor.ID, IsPublic: true}
		r.Phase = PhaseAction
		r.fireState()
	}
	return true
}

func (r *Room) handleLootTheRoom(actor *models.Player) bool {
	if !r.requireTurn(actor, PhaseAction) {
		return false
	}
	if r.PendingDraw != nil {
		r.fireErr(actor.ID, "take your drawn card first")
		return false
	}
	if r.Combat != nil {
		r.fireErr(actor.ID, "cannot loot during combat")
		return false
	}
	drawn := r.DoorDeck.Draw()
	if drawn == nil {
		return false
	}
	r.PendingDraw = &PendingDraw{Card: drawn, PlayerID: actor.ID, IsPublic: false}
	r.Phase = PhaseEnd
	r.fireState()
	return true
}

func (r *Room) handleLookForTrouble(actor *models.Player, action Action) bool {
	if !r.requireTurn(actor, PhaseAction) {
		return false
	}
	if r.Combat != nil {
		r.fireErr(actor.ID, "a combat is already running")
		return false
	}
	inst := findInstance(actor.Hand, action.CardID)
	if inst == nil || inst.Sub != catalog.SubMonster || inst.Monster == nil {
		r.fireErr(actor.ID, "pick a monster from your hand")
		return false
	}
	actor.RemoveFromHand(inst.Card.ID)
	r.Phase = PhaseEnd
	r.openCombat(actor, inst)
	return true
}

func (r *Room) handleTakeCard(actor *models.Player) bool {
	if r.PendingDraw == nil || r.PendingDraw.PlayerID != actor.ID {
		r.fireErr(actor.ID, "no card waiting for you")
		return false
	}
	actor.Hand = append(actor.Hand, r.PendingDraw.Card)
	r.PendingDraw = nil
	r.fireState()
	return true
}

func (r *Room) handlePassActionPhase(actor *models.Player) bool {
	if !r.requireTurn(actor, PhaseAction) {
		return false
	}
	if r.PendingDraw != nil {
		r.fireErr(actor.ID, "take your drawn card first")
		return false
	}
	r.Phase = PhaseEnd
	r.fireState()
	return true
}

func (r *Room) handleEndTurn(actor *models.Player) bool {
	if !r.requireTurn(actor, PhaseAction, PhaseEnd) {
		return false
	}
	if r.Combat != nil {
		r.fireErr(actor.ID, "resolve the combat first")
		return false
	}
	if r.PendingDraw != nil {
		r.fireErr(actor.ID, "take your drawn card first")
		return false
	}
	r.endTurn()
	return true
}

// PlaySource says which container a played card leaves.
type PlaySource int

const (
	InHandSource PlaySource = iota
	InBackpackSource
)

// handlePlay covers playCard and playFromBackpack; the two share all logic
// except the source container.
func (r *Room) handlePlay(actor *models.Player, action Action, src PlaySource) bool {
	if !r.Started {
		r.fireErr(actor.ID, "game has not started")
		return false
	}
	source := actor.Hand
	if src == InBackpackSource {
		source = actor.Backpack
	}
	inst := findInstance(source, action.CardID)
	if inst == nil {
		r.fireErr(actor.ID, "card not found")
		return false
	}

	switch inst.Sub {
	case catalog.SubFightSpell:
		return r.playFightSpell(actor, inst, action, src)
	case catalog.SubCurse:
		return r.playCurseCard(actor, inst, action, src)
	}

	// Everything below is an ordinary play: own turn only, and during the
	// owner's combat it buys 2 extra seconds on the clock.
	cur := r.currentPlayer()
	if cur == nil || cur.ID != actor.ID {
		r.fireErr(actor.ID, "not your turn")
		return false
	}

	switch inst.Sub {
	case catalog.SubItem:
		r.takeFrom(actor, src, inst.Card.ID)
		actor.Equip(inst)
	case catalog.SubClass, catalog.SubRace:
		r.takeFrom(actor, src, inst.Card.ID)
		replaced, _ := actor.SetHeritage(inst)
		r.discard(replaced)
	case catalog.SubBlessing:
		if inst.Blessing == nil || inst.Blessing.Effect != catalog.EffectLevelUp {
			r.fireErr(actor.ID, "this card cannot be played")
			return false
		}
		r.takeFrom(actor, src, inst.Card.ID)
		r.discard(inst)
		actor.GainLevel(1, models.MaxBuyLevel)
		r.fireToast(fmt.Sprintf("%s seviye atladı! (%d)", actor.Name, actor.Level))
	case catalog.SubMonster:
		r.fireErr(actor.ID, "use look for trouble to fight a monster")
		return false
	default:
		r.fireErr(actor.ID, "this card cannot be played")
		return false
	}

	if r.Combat != nil && r.Combat.PlayerID == actor.ID {
		r.extendCombatTimer(ordinaryPlayExtension)
	}
	r.fireState()
	return true
}

func (r *Room) handleMoveToBackpack(actor *models.Player, action Action) bool {
	if !r.Started {
		r.fireErr(actor.ID, "game has not started")
		return false
	}
	inst := actor.RemoveFromHand(action.CardID)
	if inst == nil {
		r.fireErr(actor.ID, "card not in your hand")
		return false
	}
	actor.Backpack = append(actor.Backpack, inst)
	r.fireState()
	return true
}

func (r *Room) handleRemoveFromBackpack(actor *models.Player, action Action) bool {
	if !r.Started {
		r.fireErr(actor.ID, "game has not started")
		return false
	}
	inst := actor.RemoveFromBackpack(action.CardID)
	if inst == nil {
		r.fireErr(actor.ID, "card not in your backpack")
		return false
	}
	actor.Hand = append(actor.Hand, inst)
	r.fireState()
	return true
}

// handleDiscardCard sells a hand card for its gold value and moves it to the
// discard pile. The first sale each turn is doubled for players with the
// haggle ability.
func (r *Room) handleDiscardCard(actor *models.Player, action Action) bool {
	if !r.requireTurn(actor, PhaseKickOpen, PhaseAction, PhaseEnd) {
		return false
	}
	inst := findInstance(actor.Hand, action.CardID)
	if inst == nil {
		r.fireErr(actor.ID, "card not in your hand")
		return false
	}
	value := inst.GoldValue()
	if value > 0 && actor.ItemsSoldThisTurn == 0 && actor.HasAbility(catalog.AbilityHaggle) {
		value *= 2
		r.fireToast(fmt.Sprintf("%s esnaf pazarlığıyla sattı: %s (%d altın)", actor.Name, inst.Name, value))
	}
	actor.RemoveFromHand(inst.Card.ID)
	r.discard(inst)
	if value > 0 {
		actor.Gold += value
		actor.ItemsSoldThisTurn++
	}
	r.fireState()
	return true
}

func (r *Room) handleBuyLevel(actor *models.Player) bool {
	if !r.requireTurn(actor, PhaseKickOpen, PhaseAction, PhaseEnd) {
		return false
	}
	if actor.Level >= models.MaxBuyLevel {
		r.fireErr(actor.ID, "levels beyond 9 must be won in combat")
		return false
	}
	if actor.Gold < LevelCost {
		r.fireErr(actor.ID, "not enough gold")
		return false
	}
	actor.Gold -= LevelCost
	actor.GainLevel(1, models.MaxBuyLevel)
	r.fireToast(fmt.Sprintf("%s altınla seviye satın aldı! (%d)", actor.Name, actor.Level))
	r.fireState()
	return true
}

// handlePlayCurse casts a curse from the actor's hand at a target player.
// Allowed out of turn; during combat it extends the clock.
func (r *Room) handlePlayCurse(actor *models.Player, action Action) bool {
	if !r.Started {
		r.fireErr(actor.ID, "game has not started")
		return false
	}
	inst := findInstance(actor.Hand, action.CardID)
	if inst == nil || inst.Sub != catalog.SubCurse {
		r.fireErr(actor.ID, "pick a curse from your hand")
		return false
	}
	return r.playCurseCard(actor, inst, action, InHandSource)
}

func (r *Room) playCurseCard(actor *models.Player, inst *deck.Instance, action Action, src PlaySource) bool {
	target := r.playerByID(action.TargetPlayer)
	if target == nil {
		r.fireErr(actor.ID, "target player not found")
		return false
	}
	r.takeFrom(actor, src, inst.Card.ID)
	r.fireToast(fmt.Sprintf("%s, %s üzerine lanet okudu: %s", actor.Name, target.Name, inst.Name))
	r.applyCurse(inst, target)
	r.discard(inst)
	if r.Combat != nil {
		r.extendCombatTimer(spellPlayExtension)
	}
	r.fireState()
	return true
}

// applyCurse runs a curse against its target and discards the card. The
// destructive curse fizzles with a toast when the target owns nothing.
// Assumes lock is held by caller.
func (r *Room) applyCurse(inst *deck.Instance, target *models.Player) {
	if inst.Curse == nil {
		return
	}
	switch inst.Curse.Effect {
	case catalog.EffectWeaken:
		target.Modifiers = append(target.Modifiers, models.Modifier{
			Source:    inst.Name,
			Value:     inst.Curse.Value,
			TurnsLeft: inst.Curse.Duration,
		})
	case catalog.EffectDiscardRandom:
		pool := make([]*deck.Instance, 0, len(target.Hand)+len(target.Equipment)+len(target.Backpack))
		pool = append(pool, target.Hand...)
		pool = append(pool, target.Equipment...)
		pool = append(pool, target.Backpack...)
		if len(pool) == 0 {
			r.fireToast(fmt.Sprintf("%s lanetten etkilenmedi, kaybedecek bir şeyi yok", target.Name))
			return
		}
		victim := pool[r.rng.Intn(len(pool))]
		target.Remove(victim.Card.ID)
		r.discard(victim)
		r.fireToast(fmt.Sprintf("%s bir kart kaybetti: %s", target.Name, victim.Name))
	}
}

func (r *Room) takeFrom(actor *models.Player, src PlaySource, instanceID string) {
	if src == InBackpackSource {
		actor.RemoveFromBackpack(instanceID)
		return
	}
	actor.RemoveFromHand(instanceID)
}

func findInstance(cards []*deck.Instance, instanceID string) *deck.Instance {
	for _, c := range cards {
		if c.Card.ID == instanceID {
			return c
		}
	}
	return nil
}
