package game

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Barisylp/Bigbang/internal/catalog"
	"github.com/Barisylp/Bigbang/internal/deck"
	"github.com/Barisylp/Bigbang/internal/models"
)

// DefaultCombatTimerSec is the countdown length when the room has no
// configured value.
const DefaultCombatTimerSec = 7

// CombatStatus is the lifecycle of a combat.
type CombatStatus string

const (
	CombatActive CombatStatus = "active"
	CombatWon    CombatStatus = "won"
	CombatLost   CombatStatus = "lost"
)

// Combat is the single active fight in a room. Timer counts down in whole
// seconds; PlayerBonus and MonsterBonus accumulate spell contributions.
type Combat struct {
	Monster      *deck.Instance `json:"monster"`
	PlayerID     uuid.UUID      `json:"playerId"`
	AllyID       uuid.UUID      `json:"allyId,omitempty"`
	Status       CombatStatus   `json:"status"`
	Timer        int            `json:"timer"`
	PlayerBonus  int            `json:"playerBonus"`
	MonsterBonus int            `json:"monsterBonus"`

	timer *time.Timer
}

// openCombat starts a fight between the player and the monster, replacing any
// previous combat and its timer. Assumes lock is held by caller.
func (r *Room) openCombat(p *models.Player, monster *deck.Instance) {
	r.stopCombatTimer()
	secs := r.CombatTimerSec
	if secs <= 0 {
		secs = DefaultCombatTimerSec
	}
	r.Combat = &Combat{
		Monster:  monster,
		PlayerID: p.ID,
		Status:   CombatActive,
		Timer:    secs,
	}
	r.combatSeq++
	r.fireToast(fmt.Sprintf("%s ile %s savaşıyor!", p.Name, monster.Name))
	r.armCombatTick(r.combatSeq)
	r.fireState()
}

// armCombatTick schedules the next one-second tick. The sequence number
// orphans ticks belonging to a combat that has since been cleared or
// replaced. Assumes lock is held by caller.
func (r *Room) armCombatTick(seq int) {
	if r.Combat == nil {
		return
	}
	r.Combat.timer = time.AfterFunc(time.Second, func() {
		r.Mu.Lock()
		defer r.Mu.Unlock()
		if r.Combat == nil || r.combatSeq != seq || r.Combat.Status != CombatActive {
			return
		}
		r.Combat.Timer--
		if r.Combat.Timer <= 0 {
			r.resolveCombat()
			return
		}
		r.fireState()
		r.armCombatTick(seq)
	})
}

// extendCombatTimer adds seconds to the running countdown. Assumes lock is
// held by caller.
func (r *Room) extendCombatTimer(secs int) {
	if r.Combat == nil || r.Combat.Status != CombatActive {
		return
	}
	r.Combat.Timer += secs
}

// stopCombatTimer cancels the pending tick, if any. Assumes lock is held by
// caller.
func (r *Room) stopCombatTimer() {
	if r.Combat != nil && r.Combat.timer != nil {
		r.Combat.timer.Stop()
		r.Combat.timer = nil
	}
}

// clearCombat drops the combat and its timer. Assumes lock is held by caller.
func (r *Room) clearCombat() {
	r.stopCombatTimer()
	r.Combat = nil
	r.combatSeq++
}

func (r *Room) handleJoinCombat(actor *models.Player) bool {
	if r.Combat == nil || r.Combat.Status != CombatActive {
		r.fireErr(actor.ID, "no combat to join")
		return false
	}
	if r.Combat.PlayerID == actor.ID {
		r.fireErr(actor.ID, "you are already fighting")
		return false
	}
	if r.Combat.AllyID != uuid.Nil {
		r.fireErr(actor.ID, "the fight already has a helper")
		return false
	}
	r.Combat.AllyID = actor.ID
	r.fireToast(fmt.Sprintf("%s savaşa katıldı!", actor.Name))
	r.fireState()
	return true
}

func (r *Room) handleResolveCombat(actor *models.Player) bool {
	if r.Combat == nil || r.Combat.Status != CombatActive {
		r.fireErr(actor.ID, "no combat to resolve")
		return false
	}
	if r.Combat.PlayerID != actor.ID {
		r.fireErr(actor.ID, "only the fighter can resolve the combat")
		return false
	}
	r.resolveCombat()
	return true
}

// playFightSpell resolves a fight-spell play. Anyone may cast during an
// active combat; each cast buys the fight 4 extra seconds.
func (r *Room) playFightSpell(actor *models.Player, inst *deck.Instance, action Action, src PlaySource) bool {
	if r.Combat == nil || r.Combat.Status != CombatActive {
		r.fireErr(actor.ID, "no combat to cast into")
		return false
	}
	if inst.Spell == nil {
		r.fireErr(actor.ID, "this card cannot be played")
		return false
	}

	switch inst.Spell.Effect {
	case catalog.EffectInstantTruce:
		r.takeFrom(actor, src, inst.Card.ID)
		r.discard(inst, r.Combat.Monster)
		fighter := r.playerByID(r.Combat.PlayerID)
		r.fireToast(fmt.Sprintf("%s araya girdi: savaş tatlıya bağlandı", actor.Name))
		if fighter != nil {
			fighter.LoseLevel(1)
		}
		r.Combat.Status = CombatWon
		r.clearCombat()
		r.Phase = PhaseEnd
		r.fireState()
		return true

	case catalog.EffectMonsterAlly:
		monster := findInstance(actor.Hand, action.MonsterCardID)
		if monster == nil || monster.Sub != catalog.SubMonster || monster.Monster == nil {
			r.fireErr(actor.ID, "pick a monster from your hand to send in")
			return false
		}
		r.takeFrom(actor, src, inst.Card.ID)
		actor.RemoveFromHand(monster.Card.ID)
		r.discard(inst, monster)
		if action.Target == "player" {
			r.Combat.PlayerBonus += monster.Monster.Level
		} else {
			r.Combat.MonsterBonus += monster.Monster.Level
		}
		r.fireToast(fmt.Sprintf("%s savaşa %s gönderdi!", actor.Name, monster.Name))

	default:
		r.takeFrom(actor, src, inst.Card.ID)
		r.discard(inst)
		if action.Target == "monster" {
			r.Combat.MonsterBonus += inst.Spell.Bonus
		} else {
			r.Combat.PlayerBonus += inst.Spell.Bonus
		}
		r.fireToast(fmt.Sprintf("%s savaş büyüsü oynadı: %s", actor.Name, inst.Name))
	}

	r.extendCombatTimer(spellPlayExtension)
	r.fireState()
	return true
}

// resolveCombat settles the fight. Win iff the player side total is strictly
// greater than the monster side. Both timer expiry and the fighter's explicit
// request funnel here. Assumes lock is held by caller.
func (r *Room) resolveCombat() {
	c := r.Combat
	if c == nil || c.Status != CombatActive {
		return
	}
	fighter := r.playerByID(c.PlayerID)
	if fighter == nil {
		r.discard(c.Monster)
		r.clearCombat()
		r.fireState()
		return
	}

	playerTotal := fighter.Strength() + c.PlayerBonus
	var ally *models.Player
	if c.AllyID != uuid.Nil {
		if ally = r.playerByID(c.AllyID); ally != nil {
			playerTotal += ally.Strength()
		}
	}
	monsterTotal := c.Monster.Monster.Level + c.MonsterBonus

	if playerTotal > monsterTotal {
		c.Status = CombatWon
		reward := c.Monster.Monster.LevelReward
		if reward <= 0 {
			reward = 1
		}
		fighter.GainLevel(reward, models.MaxLevel)
		for i := 0; i < c.Monster.Monster.Treasure; i++ {
			fighter.Hand = append(fighter.Hand, r.TreasureDeck.Draw())
		}
		if ally != nil {
			ally.Hand = append(ally.Hand, r.TreasureDeck.Draw())
		}
		r.fireToast(fmt.Sprintf("%s savaşı kazandı! (%d - %d)", fighter.Name, playerTotal, monsterTotal))
		r.discard(c.Monster)
		r.clearCombat()
		r.Phase = PhaseEnd
		if fighter.Level >= models.MaxLevel {
			r.endGame(fighter)
			return
		}
	} else {
		c.Status = CombatLost
		fighter.LoseLevel(1)
		r.fireToast(fmt.Sprintf("%s savaşı kaybetti: %s", fighter.Name, c.Monster.Monster.BadStuff))
		r.discard(c.Monster)
		r.clearCombat()
		r.Phase = PhaseEnd
	}
	r.fireState()
}
