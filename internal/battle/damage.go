package battle

import (
	"context"
	"math"

	"github.com/MoJuiceX/clawcombat-sub000/internal/catalog"
	"github.com/MoJuiceX/clawcombat-sub000/internal/dice"
)

// critChance and highCritChance are the default and high_crit critical-hit
// probabilities from §4.2.
const (
	critChance     = 6.25
	highCritChance = 12.5
	critMultiplier = 1.25
)

// DamageResult is the triple §4.2 requires damage() to return.
type DamageResult struct {
	Damage            int
	Crit              bool
	TypeEffectiveness float64
}

// pickStat selects the stat a move's category reads for attacker/defender,
// honoring the use_physical_def effect override (§4.2's "re-selects
// defender defense").
func pickStat(side *SideState, category catalog.Category, isAttacker bool, usePhysicalDef bool) int {
	var stat catalog.StatName
	switch {
	case usePhysicalDef && !isAttacker:
		stat = catalog.StatDefense
	case category == catalog.CategoryPhysical:
		if isAttacker {
			stat = catalog.StatAttack
		} else {
			stat = catalog.StatDefense
		}
	default:
		if isAttacker {
			stat = catalog.StatSpAtk
		} else {
			stat = catalog.StatSpDef
		}
	}

	base := side.EffectiveStats.Get(stat)
	return StagedStat(base, side.Stage(stat))
}

// scaledPower scales a move's base power by attacker level per §4.2's
// pseudo-formula (the classic (2*level/5 + 2) ramp keeps high-power moves
// from trivializing low-level duels).
func scaledPower(power, level int) float64 {
	return float64(power) * (float64(2*level)/5.0 + 2.0) / 50.0
}

// hasEffect reports whether move carries an effect of the given kind and
// returns the first match.
func hasEffect(effects []catalog.Effect, kind catalog.EffectKind) (catalog.Effect, bool) {
	for _, e := range effects {
		if e.Kind == kind {
			return e, true
		}
	}
	return catalog.Effect{}, false
}

// Damage implements the §4.2 damage formula. ctx/roller supply the crit and
// variance rolls; abilityMultiplier lets the caller fold in the ability
// deltas (Blaze, Guts, Multiscale, ...) computed by abilities.go, since
// those depend on both sides' full state rather than just the move.
func Damage(ctx context.Context, roller dice.Roller, attacker, defender *SideState, move MoveSlot, abilityMultiplier float64) (DamageResult, error) {
	usePhysicalDef := false
	if _, ok := hasEffect(move.Effects, catalog.EffectUsePhysicalDef); ok {
		usePhysicalDef = true
	}

	atk := float64(pickStat(attacker, move.Category, true, usePhysicalDef))
	def := float64(pickStat(defender, move.Category, false, usePhysicalDef))
	if def < 1 {
		def = 1
	}

	base := (atk / def) * scaledPower(move.Power, attacker.Level) * 0.25

	if _, ok := hasEffect(move.Effects, catalog.EffectHPScaling); ok {
		frac := float64(attacker.CurrentHP) / float64(attacker.MaxHP)
		if frac < 0.2 {
			frac = 0.2
		}
		base *= frac
	}
	if _, ok := hasEffect(move.Effects, catalog.EffectDoubleIfPoisoned); ok && defender.Status == catalog.StatusPoison {
		base *= 2
	}

	stab := 1.0
	if move.Type == attacker.Type {
		stab = 1.5
		if attacker.AbilityID == "adaptability" {
			stab = 2.0
		}
	}

	eff := catalog.Effectiveness(move.Type, defender.Type)
	if eff > 1.5 {
		eff = 1.5
	}

	chancePct := critChance
	if _, ok := hasEffect(move.Effects, catalog.EffectHighCrit); ok {
		chancePct = highCritChance
	}
	isCrit, err := dice.Chance(ctx, roller, chancePct)
	if err != nil {
		return DamageResult{}, err
	}
	crit := 1.0
	if isCrit {
		crit = critMultiplier
	}

	variance, err := dice.Float01(ctx, roller)
	if err != nil {
		return DamageResult{}, err
	}
	rand := 0.85 + variance*0.15

	burn := 1.0
	if attacker.Status == catalog.StatusBurned && move.Category == catalog.CategoryPhysical {
		burn = 0.5
	}

	raw := base * stab * eff * crit * rand * burn * abilityMultiplier
	dmg := int(math.Floor(raw))
	if move.Power > 0 && eff > 0 && dmg < 1 {
		dmg = 1
	}

	return DamageResult{Damage: dmg, Crit: isCrit, TypeEffectiveness: eff}, nil
}
