// Package battle implements the stat and damage formulas (§4.2) and the
// turn-resolution state machine (§4.3) for one battle. Every function here
// takes its randomness as an explicit internal/dice.Roller so the engine is
// deterministic given a fixed roll sequence, per §8's round-trip law.
package battle

import "github.com/MoJuiceX/clawcombat-sub000/internal/catalog"

// Stats is the six base/effective stat block shared by base stats, EVs, and
// the per-battle effective-stat snapshot.
type Stats struct {
	HP     int
	Attack int
	Defense int
	SpAtk  int
	SpDef  int
	Speed  int
}

// Get returns the named non-HP stat, used by damage pickStat/speed lookups.
func (s Stats) Get(stat catalog.StatName) int {
	switch stat {
	case catalog.StatAttack:
		return s.Attack
	case catalog.StatDefense:
		return s.Defense
	case catalog.StatSpAtk:
		return s.SpAtk
	case catalog.StatSpDef:
		return s.SpDef
	case catalog.StatSpeed:
		return s.Speed
	case catalog.StatHP:
		return s.HP
	default:
		return 0
	}
}

// MaxHP computes a monotone function of base HP and level (§4.2). The
// classic formula floor((2*base*level)/100) + level + 10 keeps HP scaling
// linear in level while giving every base stat a meaningful floor.
func MaxHP(base, level int) int {
	if level < 1 {
		level = 1
	}
	return (2*base*level)/100 + level + 10
}

// EffectiveStat computes a non-HP stat from base, level, and nature
// multiplier, before stat stages are applied (§4.2). floor((2*base*level)/100 + 5) * natureMult.
func EffectiveStat(base, level int, natureMult float64) int {
	if level < 1 {
		level = 1
	}
	raw := (2*base*level)/100 + 5
	return int(float64(raw) * natureMult)
}

// EffectiveStats snapshots all six stats for an agent at battle start,
// applying the nature multiplier to each non-HP stat.
func EffectiveStats(base Stats, level int, nature catalog.Nature) Stats {
	return Stats{
		HP:      MaxHP(base.HP, level),
		Attack:  EffectiveStat(base.Attack, level, nature.NatureMultiplier(catalog.StatAttack)),
		Defense: EffectiveStat(base.Defense, level, nature.NatureMultiplier(catalog.StatDefense)),
		SpAtk:   EffectiveStat(base.SpAtk, level, nature.NatureMultiplier(catalog.StatSpAtk)),
		SpDef:   EffectiveStat(base.SpDef, level, nature.NatureMultiplier(catalog.StatSpDef)),
		Speed:   EffectiveStat(base.Speed, level, nature.NatureMultiplier(catalog.StatSpeed)),
	}
}

// StagedStat applies a side's current stat stage to one of its effective
// stats. Paralysis's additional x0.5 speed penalty is applied by the
// caller, on top of this stage multiplier, per §4.2.
func StagedStat(effective int, stage int) int {
	return int(float64(effective) * catalog.StageMultiplier(stage))
}
