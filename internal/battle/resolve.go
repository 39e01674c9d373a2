package battle

import (
	"context"
	"fmt"

	"github.com/MoJuiceX/clawcombat-sub000/internal/catalog"
	"github.com/MoJuiceX/clawcombat-sub000/internal/clawerr"
	"github.com/MoJuiceX/clawcombat-sub000/internal/dice"
)

// Status balance constants fixed by §4.2.
const (
	burnDamageFraction   = 0.0625
	poisonDamageFraction = 1.0 / 12.0 // ~8.3%
	endTurnHealFraction  = 0.0625
	confusionSelfFraction = 0.10
	curseSelfFraction     = 0.25

	paralysisSkipChance = 15.0
	confusionMaxTurns   = 3
	sleepMaxTurns        = 2

	dodgeChance       = 10.0
	voltAbsorbHeal    = 0.25
	inflictChanceAbility = 15.0 // Inferno's burn chance; Permafrost uses its own 10%
	staticChance      = 20.0
	poisonTouchChance = 15.0
	cursedBodyChance  = 20.0

	maxConsecutiveTimeouts = 3
)

// turnCtx threads the per-resolveTurn working state through the staged
// steps below — the stage-sequence idea the teacher's executor package
// modeled, re-derived directly here since that package's own snapshot did
// not type-check (see DESIGN.md).
type turnCtx struct {
	ctx    context.Context
	roller dice.Roller
	state  *State
	events []Event
}

func (t *turnCtx) emit(e Event) {
	t.events = append(t.events, e)
}

// ResolveTurn implements §4.3's resolveTurn for the common case where both
// sides submitted a move this tick.
func ResolveTurn(ctx context.Context, roller dice.Roller, state *State, moveA, moveB catalog.MoveID) (*TurnLog, error) {
	t := &turnCtx{ctx: ctx, roller: roller, state: state}

	state.TurnNumber++
	state.A.Flinched, state.A.TookDamageThisTurn = false, false
	state.B.Flinched, state.B.TookDamageThisTurn = false, false

	slotA, ok := state.A.MoveByID(moveA)
	if !ok {
		return nil, clawerr.InvalidArgumentf("move %s is not on side A's roster", moveA)
	}
	slotB, ok := state.B.MoveByID(moveB)
	if !ok {
		return nil, clawerr.InvalidArgumentf("move %s is not on side B's roster", moveB)
	}

	first, err := determineOrder(t, *slotA, *slotB)
	if err != nil {
		return nil, err
	}
	state.FirstSide = first
	second := first.Other()

	moveIDs := map[Side]catalog.MoveID{SideA: moveA, SideB: moveB}

	if err := t.applyMove(first, moveIDs[first]); err != nil {
		return nil, err
	}
	ended := t.checkBattleEnd()

	if !ended {
		if err := t.applyMove(second, moveIDs[second]); err != nil {
			return nil, err
		}
		ended = t.checkBattleEnd()
	}

	if !ended {
		t.applyEndOfTurn()
		t.checkBattleEnd()
	}

	return t.buildLog(&moveA, &moveB), nil
}

// ResolveTimeoutTick implements the scheduler's per-tick resolution (§4.7
// step 2's "resolve the tick" branch). present is nil when both sides
// skipped; otherwise it names the side whose move still applies normally.
func ResolveTimeoutTick(ctx context.Context, roller dice.Roller, state *State, present *Side, moveID catalog.MoveID) (*TurnLog, error) {
	t := &turnCtx{ctx: ctx, roller: roller, state: state}

	state.TurnNumber++
	state.A.Flinched, state.A.TookDamageThisTurn = false, false
	state.B.Flinched, state.B.TookDamageThisTurn = false, false

	var moveAPtr, moveBPtr *string

	if present == nil {
		t.emit(Event{Kind: EventTimeout})
	} else {
		t.emit(Event{Kind: EventTimeout, Side: present.Other()})
		if err := t.applyMove(*present, moveID); err != nil {
			return nil, err
		}
		s := string(moveID)
		if *present == SideA {
			moveAPtr = &s
		} else {
			moveBPtr = &s
		}
	}

	ended := t.checkBattleEnd()
	if !ended {
		t.applyEndOfTurn()
		t.checkBattleEnd()
	}

	return t.buildLog(moveAPtr, moveBPtr), nil
}

func (t *turnCtx) buildLog(moveA, moveB *string) *TurnLog {
	return &TurnLog{
		TurnNumber: t.state.TurnNumber,
		MoveA:      moveA,
		MoveB:      moveB,
		Events:     t.events,
		HPAfterA:   t.state.A.CurrentHP,
		HPAfterB:   t.state.B.CurrentHP,
	}
}

// determineOrder implements §4.3 step 2's ordering cascade.
func determineOrder(t *turnCtx, moveA, moveB MoveSlot) (Side, error) {
	prioA := moveA.Priority + GaleWingsPriorityBonus(&t.state.A)
	prioB := moveB.Priority + GaleWingsPriorityBonus(&t.state.B)
	if prioA != prioB {
		if prioA > prioB {
			return SideA, nil
		}
		return SideB, nil
	}

	speedA, speedB := t.state.A.StagedSpeed(), t.state.B.StagedSpeed()
	if speedA != speedB {
		if speedA > speedB {
			return SideA, nil
		}
		return SideB, nil
	}

	if t.state.A.Level != t.state.B.Level {
		if t.state.A.Level > t.state.B.Level {
			return SideA, nil
		}
		return SideB, nil
	}

	if t.state.A.BaseStats.Speed != t.state.B.BaseStats.Speed {
		if t.state.A.BaseStats.Speed > t.state.B.BaseStats.Speed {
			return SideA, nil
		}
		return SideB, nil
	}

	coin, err := t.roller.Roll(t.ctx, 2)
	if err != nil {
		return "", err
	}
	if coin == 1 {
		return SideA, nil
	}
	return SideB, nil
}

// checkBattleEnd implements §4.3 step 4/6: returns true if the battle just
// ended. Mutual KO is broken by FirstSide (§4.3.3/§8 property 3).
func (t *turnCtx) checkBattleEnd() bool {
	aDown, bDown := t.state.A.Fainted(), t.state.B.Fainted()
	if !aDown && !bDown {
		return false
	}

	var winner Side
	switch {
	case aDown && bDown:
		winner = t.state.FirstSide
	case aDown:
		winner = SideB
	default:
		winner = SideA
	}

	t.emit(Event{Kind: EventBattleEnd, Winner: winner})
	return true
}

// applyMove implements §4.3 step 3 (a-h) for one side's move.
func (t *turnCtx) applyMove(side Side, moveID catalog.MoveID) error {
	mover := t.state.Get(side)
	opponent := t.state.Get(side.Other())

	if mover.Flinched {
		t.emit(Event{Kind: EventFlinch, Side: side})
		return nil
	}

	act, err := t.resolveStatusPreChecks(side, mover)
	if err != nil {
		return err
	}
	if !act {
		return nil
	}

	slot, ok := mover.MoveByID(moveID)
	if !ok {
		return clawerr.InvalidArgumentf("move %s not found on side %s", moveID, side)
	}
	if slot.CurrentPP <= 0 {
		return clawerr.Internal(fmt.Sprintf("move %s has no PP remaining for side %s", moveID, side))
	}

	t.emit(Event{Kind: EventUseMove, Side: side, MoveID: string(moveID)})

	// c. opponent ability immunities
	dodged, err := t.checkOpponentImmunity(side, mover, opponent, *slot)
	if err != nil {
		return err
	}
	if dodged {
		slot.CurrentPP--
		return nil
	}

	// d. accuracy roll (skip for status moves with no target accuracy requirement)
	if slot.Accuracy > 0 {
		acc := AccuracyMultiplier(mover, slot.Accuracy)
		hit, err := dice.Chance(t.ctx, t.roller, float64(acc))
		if err != nil {
			return err
		}
		if !hit {
			t.emit(Event{Kind: EventMiss, Side: side, MoveID: string(moveID)})
			slot.CurrentPP--
			return nil
		}
	}

	if _, ok := hasEffect(slot.Effects, catalog.EffectOHKO); ok {
		if err := t.applyOHKO(side, opponent); err != nil {
			return err
		}
		slot.CurrentPP--
		return nil
	}

	if slot.Power > 0 {
		if err := t.applyDamagingMove(side, mover, opponent, *slot); err != nil {
			return err
		}
	} else {
		t.applyStatusMove(side, mover, opponent, *slot)
	}

	slot.CurrentPP--
	return nil
}

// resolveStatusPreChecks implements §4.3.3.b: the mover's own status
// checks, in the fixed order freeze, sleep, paralysis, confusion. Returns
// act=false if the status consumes the mover's turn.
func (t *turnCtx) resolveStatusPreChecks(side Side, mover *SideState) (bool, error) {
	switch mover.Status {
	case catalog.StatusFreeze:
		mover.Status = catalog.StatusNone
		mover.FreezeTurns = 0
		t.emit(Event{Kind: EventStatus, Side: side, Reason: "thaw"})
		return false, nil

	case catalog.StatusSleep:
		mover.SleepTurns++
		if mover.SleepTurns >= sleepMaxTurns || mover.WokeFromDamage {
			mover.Status = catalog.StatusNone
			mover.SleepTurns = 0
			mover.WokeFromDamage = false
			t.emit(Event{Kind: EventStatus, Side: side, Reason: "wake"})
			return true, nil
		}
		t.emit(Event{Kind: EventStatus, Side: side, Reason: "asleep"})
		return false, nil

	case catalog.StatusParalysis:
		skip, err := dice.Chance(t.ctx, t.roller, paralysisSkipChance)
		if err != nil {
			return false, err
		}
		if skip {
			t.emit(Event{Kind: EventStatus, Side: side, Reason: "paralyzed"})
			return false, nil
		}
		return true, nil

	case catalog.StatusConfusion:
		mover.ConfusionTurns++
		if mover.ConfusionTurns >= confusionMaxTurns {
			mover.Status = catalog.StatusNone
			mover.ConfusionTurns = 0
			t.emit(Event{Kind: EventStatus, Side: side, Reason: "snap_out"})
			return true, nil
		}
		selfHit, err := dice.Chance(t.ctx, t.roller, 25)
		if err != nil {
			return false, err
		}
		if selfHit {
			dmg := int(float64(mover.MaxHP) * confusionSelfFraction)
			if dmg < 1 {
				dmg = 1
			}
			actual := mover.Damage(dmg)
			t.emit(Event{Kind: EventConfusionSelfHit, Side: side, Amount: actual})
			return false, nil
		}
		return true, nil

	default:
		return true, nil
	}
}

// checkOpponentImmunity implements §4.3.3.c.
func (t *turnCtx) checkOpponentImmunity(side Side, mover, opponent *SideState, slot MoveSlot) (bool, error) {
	if opponent.AbilityID == "telepathy" || opponent.AbilityID == "sand_veil" {
		dodge, err := dice.Chance(t.ctx, t.roller, dodgeChance)
		if err != nil {
			return false, err
		}
		if dodge {
			t.emit(Event{Kind: EventDodge, Side: side.Other(), Ability: string(opponent.AbilityID)})
			return true, nil
		}
	}

	if opponent.AbilityID == "volt_absorb" && slot.Type == catalog.TypeElectric {
		healed := opponent.Heal(int(float64(opponent.MaxHP) * voltAbsorbHeal))
		t.emit(Event{Kind: EventHeal, Side: side.Other(), Amount: healed, Ability: "volt_absorb"})
		t.emit(Event{Kind: EventImmune, Side: side.Other()})
		return true, nil
	}

	if opponent.AbilityID == "levitate" && slot.Type == catalog.TypeEarth {
		t.emit(Event{Kind: EventImmune, Side: side.Other(), Ability: "levitate"})
		return true, nil
	}

	eff := catalog.Effectiveness(slot.Type, opponent.Type)
	if eff == 0 {
		t.emit(Event{Kind: EventImmune, Side: side.Other()})
		return true, nil
	}

	return false, nil
}

// applyOHKO implements §4.3.3.e.
func (t *turnCtx) applyOHKO(side Side, opponent *SideState) error {
	if opponent.CurrentHP == opponent.MaxHP && opponent.AbilityID == "sturdy" && !opponent.SturdyUsed {
		opponent.SturdyUsed = true
		opponent.CurrentHP = 1
		t.emit(Event{Kind: EventOHKO, Side: side, Ability: "sturdy"})
		return nil
	}
	opponent.Damage(opponent.CurrentHP)
	t.emit(Event{Kind: EventOHKO, Side: side, Amount: opponent.MaxHP})
	return nil
}

// applyDamagingMove implements §4.3.3.f.
func (t *turnCtx) applyDamagingMove(side Side, mover, opponent *SideState, slot MoveSlot) error {
	abilityMult := DamageAbilityMultiplier(mover, opponent, slot)
	result, err := Damage(t.ctx, t.roller, mover, opponent, slot, abilityMult)
	if err != nil {
		return err
	}

	dmg := result.Damage
	sturdyTriggered := false
	if opponent.CurrentHP == opponent.MaxHP && opponent.AbilityID == "sturdy" && !opponent.SturdyUsed && dmg >= opponent.CurrentHP {
		opponent.SturdyUsed = true
		dmg = opponent.CurrentHP - 1
		sturdyTriggered = true
	}

	actual := opponent.Damage(dmg)
	t.emit(Event{Kind: EventDamage, Side: side, MoveID: string(slot.ID), Amount: actual, Crit: result.Crit, Effectiveness: result.TypeEffectiveness})
	if sturdyTriggered {
		t.emit(Event{Kind: EventOHKO, Side: side.Other(), Ability: "sturdy"})
	}

	if recoil, ok := hasEffect(slot.Effects, catalog.EffectRecoil); ok {
		amount := int(float64(actual) * recoil.Fraction)
		if amount > 0 {
			mover.Damage(amount)
			t.emit(Event{Kind: EventRecoil, Side: side, Amount: amount})
		}
	}
	if drain, ok := hasEffect(slot.Effects, catalog.EffectDrain); ok {
		amount := mover.Heal(int(float64(actual) * drain.Fraction))
		if amount > 0 {
			t.emit(Event{Kind: EventDrain, Side: side, Amount: amount})
		}
	}

	if err := t.applyPostHitAbilities(side, mover, opponent); err != nil {
		return err
	}

	for _, eff := range slot.Effects {
		switch eff.Kind {
		case catalog.EffectFlinch:
			hit, err := dice.Chance(t.ctx, t.roller, eff.Chance)
			if err != nil {
				return err
			}
			if hit && !opponent.Fainted() {
				opponent.Flinched = true
			}
		case catalog.EffectStatusInflict:
			if opponent.Status != catalog.StatusNone || opponent.Fainted() {
				continue
			}
			hit, err := dice.Chance(t.ctx, t.roller, eff.Chance)
			if err != nil {
				return err
			}
			if hit {
				opponent.Status = eff.Status
				t.emit(Event{Kind: EventStatusInflict, Side: side.Other(), Status: eff.Status})
			}
		}
	}

	return nil
}

// applyPostHitAbilities implements the Inferno/Permafrost/Static/Poison
// Touch/Cursed Body on-hit ability triggers from §4.3.3.f.
func (t *turnCtx) applyPostHitAbilities(side Side, mover, opponent *SideState) error {
	if opponent.Fainted() || opponent.Status != catalog.StatusNone {
		return nil
	}

	var status catalog.Status
	var chance float64
	switch mover.AbilityID {
	case "inferno":
		status, chance = catalog.StatusBurned, inflictChanceAbility
	case "permafrost":
		status, chance = catalog.StatusFreeze, 10.0
	case "static":
		status, chance = catalog.StatusParalysis, staticChance
	case "poison_touch":
		status, chance = catalog.StatusPoison, poisonTouchChance
	default:
		if mover.AbilityID == "cursed_body" {
			hit, err := dice.Chance(t.ctx, t.roller, cursedBodyChance)
			if err != nil {
				return err
			}
			if hit {
				best := bestPositiveStage(opponent)
				if best != "" {
					opponent.AddStage(best, -1)
					t.emit(Event{Kind: EventStatDrop, Side: side.Other(), Stat: best, Stages: -1, Ability: "cursed_body"})
				}
			}
		}
		return nil
	}

	hit, err := dice.Chance(t.ctx, t.roller, chance)
	if err != nil {
		return err
	}
	if hit {
		opponent.Status = status
		t.emit(Event{Kind: EventStatusInflict, Side: side.Other(), Status: status, Ability: string(mover.AbilityID)})
	}
	return nil
}

func bestPositiveStage(s *SideState) catalog.StatName {
	best := catalog.StatName("")
	bestVal := 0
	for _, stat := range catalog.StageableStats {
		if v := s.Stage(stat); v > bestVal {
			bestVal = v
			best = stat
		}
	}
	return best
}

// applyStatusMove implements §4.3.3.g.
func (t *turnCtx) applyStatusMove(side Side, mover, opponent *SideState, slot MoveSlot) {
	for _, eff := range slot.Effects {
		switch eff.Kind {
		case catalog.EffectStatBoost:
			target := mover
			if eff.Target == catalog.TargetOpponent {
				target = opponent
			}
			target.AddStage(eff.Stat, eff.Stages)
			t.emit(Event{Kind: EventStatBoost, Side: side, Stat: eff.Stat, Stages: eff.Stages})

		case catalog.EffectStatDrop:
			target := opponent
			if eff.Target == catalog.TargetSelf {
				target = mover
			}
			target.AddStage(eff.Stat, -absInt(eff.Stages))
			t.emit(Event{Kind: EventStatDrop, Side: side.Other(), Stat: eff.Stat, Stages: eff.Stages})

		case catalog.EffectStatusInflict:
			if opponent.Status == catalog.StatusNone {
				opponent.Status = eff.Status
				t.emit(Event{Kind: EventStatusInflict, Side: side.Other(), Status: eff.Status})
			}

		case catalog.EffectHeal:
			if eff.Delayed {
				mover.WishPending = true
				mover.WishTurn = t.state.TurnNumber + 1
				mover.WishAmount = int(float64(mover.MaxHP) * eff.Fraction)
				t.emit(Event{Kind: EventWish, Side: side})
			} else {
				healed := mover.Heal(int(float64(mover.MaxHP) * eff.Fraction))
				t.emit(Event{Kind: EventHeal, Side: side, Amount: healed})
			}

		case catalog.EffectLeechSeed:
			if !opponent.LeechSeeded {
				opponent.LeechSeeded = true
				t.emit(Event{Kind: EventLeechSeed, Side: side.Other()})
			}

		case catalog.EffectCurse:
			self := int(float64(mover.MaxHP) * curseSelfFraction)
			mover.Damage(self)
			opponent.Cursed = true
			t.emit(Event{Kind: EventCurseDamage, Side: side, Amount: self})

		case catalog.EffectResetStats:
			mover.ResetStages()
			opponent.ResetStages()
		}
	}
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// applyEndOfTurn implements §4.3 step 5: burn, poison, leech seed, curse,
// delayed Wish heal, then end_turn ability heals, in side order A then B.
func (t *turnCtx) applyEndOfTurn() {
	for _, side := range []Side{SideA, SideB} {
		s := t.state.Get(side)
		o := t.state.Get(side.Other())
		if s.Fainted() {
			continue
		}

		switch s.Status {
		case catalog.StatusBurned:
			dmg := int(float64(s.MaxHP) * burnDamageFraction)
			if dmg < 1 {
				dmg = 1
			}
			actual := s.Damage(dmg)
			t.emit(Event{Kind: EventBurnDamage, Side: side, Amount: actual})
		case catalog.StatusPoison:
			dmg := int(float64(s.MaxHP) * poisonDamageFraction)
			if dmg < 1 {
				dmg = 1
			}
			actual := s.Damage(dmg)
			t.emit(Event{Kind: EventPoisonDamage, Side: side, Amount: actual})
		}

		if s.LeechSeeded && !s.Fainted() {
			dmg := int(float64(s.MaxHP) * poisonDamageFraction)
			if dmg < 1 {
				dmg = 1
			}
			actual := s.Damage(dmg)
			healed := o.Heal(actual)
			t.emit(Event{Kind: EventLeechSeed, Side: side, Amount: actual})
			if healed > 0 {
				t.emit(Event{Kind: EventHeal, Side: side.Other(), Amount: healed})
			}
		}

		if s.Cursed && !s.Fainted() {
			dmg := int(float64(s.MaxHP) * curseSelfFraction)
			actual := s.Damage(dmg)
			t.emit(Event{Kind: EventCurseDamage, Side: side, Amount: actual})
		}

		if s.WishPending && t.state.TurnNumber >= s.WishTurn && !s.Fainted() {
			healed := s.Heal(s.WishAmount)
			s.WishPending = false
			s.WishAmount = 0
			t.emit(Event{Kind: EventWishHeal, Side: side, Amount: healed})
		}

		if !s.Fainted() {
			switch s.AbilityID {
			case "hydration", "photosynthesis", "ice_body":
				healed := s.Heal(int(float64(s.MaxHP) * endTurnHealFraction))
				if healed > 0 {
					t.emit(Event{Kind: EventAbility, Side: side, Amount: healed, Ability: string(s.AbilityID)})
				}
			}
		}
	}
}

// MaxConsecutiveTimeouts exposes the §4.7 forfeit threshold for the
// scheduler.
func MaxConsecutiveTimeouts() int {
	return maxConsecutiveTimeouts
}
