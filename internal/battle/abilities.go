package battle

import "github.com/MoJuiceX/clawcombat-sub000/internal/catalog"

// lowHPThreshold is the <33% HP gate for the elemental "pinch" abilities
// (Blaze/Torrent/Overgrow/Swarm).
const lowHPThreshold = 1.0 / 3.0

func hpFraction(s *SideState) float64 {
	if s.MaxHP == 0 {
		return 0
	}
	return float64(s.CurrentHP) / float64(s.MaxHP)
}

// DamageAbilityMultiplier folds every ability-driven damage delta from
// §4.2's pseudo-formula into one combined multiplier, evaluated once per
// applyMove call before Damage() is invoked.
func DamageAbilityMultiplier(attacker, defender *SideState, move MoveSlot) float64 {
	mult := 1.0

	if hpFraction(attacker) < lowHPThreshold {
		switch {
		case attacker.AbilityID == "blaze" && attacker.Type == catalog.TypeFire && move.Type == catalog.TypeFire:
			mult *= 1.5
		case attacker.AbilityID == "torrent" && attacker.Type == catalog.TypeWater && move.Type == catalog.TypeWater:
			mult *= 1.5
		case attacker.AbilityID == "overgrow" && attacker.Type == catalog.TypeGrass && move.Type == catalog.TypeGrass:
			mult *= 1.5
		case attacker.AbilityID == "swarm" && attacker.Type == catalog.TypeBug && move.Type == catalog.TypeBug:
			mult *= 1.5
		}
	}

	if attacker.AbilityID == "guts" && attacker.Status != catalog.StatusNone {
		mult *= 1.5
	}
	if attacker.AbilityID == "iron_fist" && move.Category == catalog.CategoryPhysical {
		mult *= 1.1
	}
	if attacker.AbilityID == "dark_aura" || attacker.AbilityID == "pixilate" {
		mult *= 1.15
	}
	if attacker.AbilityID == "corrosion" {
		mult *= 1.15
	}

	if defender.AbilityID == "multiscale" && defender.CurrentHP == defender.MaxHP {
		mult *= 0.75
	}
	if defender.AbilityID == "resilience" || defender.AbilityID == "solid_rock" || defender.AbilityID == "filter" {
		mult *= 0.75
	}

	return mult
}

// AccuracyMultiplier applies Compound Eyes (§4.3.d), capped at 100.
func AccuracyMultiplier(attacker *SideState, baseAccuracy int) int {
	acc := baseAccuracy
	if attacker.AbilityID == "compound_eyes" {
		acc = int(float64(acc) * 1.3)
	}
	if acc > 100 {
		acc = 100
	}
	return acc
}

// GaleWingsPriorityBonus returns the +1 priority Gale Wings grants at full
// HP (§4.3.2a).
func GaleWingsPriorityBonus(s *SideState) int {
	if s.AbilityID == "gale_wings" && s.CurrentHP == s.MaxHP {
		return 1
	}
	return 0
}
