// Package dice provides cryptographically secure random number generation
// for the arena's combat formulas, without implementing any combat rule
// itself.
//
// Purpose:
// Every probabilistic step in battle resolution (accuracy checks, crit
// chance, secondary-effect procs, damage variance) rolls through a single
// Roller interface, so the engine is deterministic under test and
// unpredictable in production.
//
// Scope:
//   - A minimal Roller interface: Roll(ctx, size) and RollN(ctx, count, size)
//   - CryptoRoller, backed by crypto/rand
//   - MockRoller, a fixed/cycling result sequence for tests
//   - Chance and Float01, the two helpers internal/battle actually calls
//
// Non-Goals:
//   - Dice notation parsing ("3d6+2"): the arena's formulas take ints and
//     percentages directly, never a notation string
//   - Modifier stacking, roll history, or result interpretation: those are
//     internal/battle's job, not this package's
//
// Integration:
// internal/battle's damage and effect resolution, internal/coordinator,
// and internal/scheduler all hold a dice.Roller and call Chance/Float01
// through it; tests substitute a MockRoller for deterministic outcomes.
package dice
