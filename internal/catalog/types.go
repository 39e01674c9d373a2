// Package catalog holds the arena's static, load-once game data: elemental
// types and their effectiveness matrix, moves, abilities, natures, and the
// stat-stage multiplier table. Everything here is immutable process-wide
// state initialised at package load.
package catalog

import "strings"

// TypeName is one of the eighteen canonical elemental types.
type TypeName string

const (
	TypeNormal   TypeName = "NORMAL"
	TypeFire     TypeName = "FIRE"
	TypeWater    TypeName = "WATER"
	TypeElectric TypeName = "ELECTRIC"
	TypeGrass    TypeName = "GRASS"
	TypeIce      TypeName = "ICE"
	TypeFighting TypeName = "FIGHTING"
	TypePoison   TypeName = "POISON"
	TypeEarth    TypeName = "EARTH"
	TypeFlying   TypeName = "FLYING"
	TypePsychic  TypeName = "PSYCHIC"
	TypeBug      TypeName = "BUG"
	TypeRock     TypeName = "ROCK"
	TypeGhost    TypeName = "GHOST"
	TypeDragon   TypeName = "DRAGON"
	TypeDark     TypeName = "DARK"
	TypeSteel    TypeName = "STEEL"
	TypeFairy    TypeName = "FAIRY"
)

// AllTypes lists the eighteen types in catalog-canonical order.
var AllTypes = []TypeName{
	TypeNormal, TypeFire, TypeWater, TypeElectric, TypeGrass, TypeIce,
	TypeFighting, TypePoison, TypeEarth, TypeFlying, TypePsychic, TypeBug,
	TypeRock, TypeGhost, TypeDragon, TypeDark, TypeSteel, TypeFairy,
}

// IsValidType reports whether name is one of the eighteen canonical types.
func IsValidType(name TypeName) bool {
	_, ok := typeIndex[name]
	return ok
}

// ParseTypeName normalises free-form input (case-insensitive) to a
// canonical TypeName, returning false if it isn't one of the eighteen.
func ParseTypeName(s string) (TypeName, bool) {
	t := TypeName(strings.ToUpper(strings.TrimSpace(s)))
	if IsValidType(t) {
		return t, true
	}
	return "", false
}

var typeIndex = func() map[TypeName]int {
	idx := make(map[TypeName]int, len(AllTypes))
	for i, t := range AllTypes {
		idx[t] = i
	}
	return idx
}()

// effectivenessOverrides maps non-neutral (attacking, defending) pairs to
// their multiplier. Pairs absent from this table default to 1.0 per §4.1.
var effectivenessOverrides = map[[2]TypeName]float64{
	{TypeFire, TypeWater}: 0.5, {TypeFire, TypeGrass}: 2.0, {TypeFire, TypeIce}: 2.0,
	{TypeFire, TypeBug}: 2.0, {TypeFire, TypeRock}: 0.5, {TypeFire, TypeDragon}: 0.5,
	{TypeFire, TypeSteel}: 2.0, {TypeFire, TypeFire}: 0.5,

	{TypeWater, TypeFire}: 2.0, {TypeWater, TypeWater}: 0.5, {TypeWater, TypeGrass}: 0.5,
	{TypeWater, TypeEarth}: 2.0, {TypeWater, TypeRock}: 2.0, {TypeWater, TypeDragon}: 0.5,

	{TypeElectric, TypeWater}: 2.0, {TypeElectric, TypeElectric}: 0.5, {TypeElectric, TypeGrass}: 0.5,
	{TypeElectric, TypeEarth}: 0.0, {TypeElectric, TypeFlying}: 2.0, {TypeElectric, TypeDragon}: 0.5,

	{TypeGrass, TypeFire}: 0.5, {TypeGrass, TypeWater}: 2.0, {TypeGrass, TypeGrass}: 0.5,
	{TypeGrass, TypePoison}: 0.5, {TypeGrass, TypeEarth}: 2.0, {TypeGrass, TypeFlying}: 0.5,
	{TypeGrass, TypeBug}: 0.5, {TypeGrass, TypeRock}: 2.0, {TypeGrass, TypeDragon}: 0.5,
	{TypeGrass, TypeSteel}: 0.5,

	{TypeIce, TypeFire}: 0.5, {TypeIce, TypeWater}: 0.5, {TypeIce, TypeGrass}: 2.0,
	{TypeIce, TypeIce}: 0.5, {TypeIce, TypeEarth}: 2.0, {TypeIce, TypeFlying}: 2.0,
	{TypeIce, TypeDragon}: 2.0, {TypeIce, TypeSteel}: 0.5,

	{TypeFighting, TypeNormal}: 2.0, {TypeFighting, TypeIce}: 2.0, {TypeFighting, TypePoison}: 0.5,
	{TypeFighting, TypeFlying}: 0.5, {TypeFighting, TypePsychic}: 0.5, {TypeFighting, TypeBug}: 0.5,
	{TypeFighting, TypeRock}: 2.0, {TypeFighting, TypeGhost}: 0.0, {TypeFighting, TypeDark}: 2.0,
	{TypeFighting, TypeSteel}: 2.0, {TypeFighting, TypeFairy}: 0.5,

	{TypePoison, TypeGrass}: 2.0, {TypePoison, TypePoison}: 0.5, {TypePoison, TypeEarth}: 0.5,
	{TypePoison, TypeRock}: 0.5, {TypePoison, TypeGhost}: 0.5, {TypePoison, TypeSteel}: 0.0,
	{TypePoison, TypeFairy}: 2.0,

	{TypeEarth, TypeFire}: 2.0, {TypeEarth, TypeElectric}: 2.0, {TypeEarth, TypeGrass}: 0.5,
	{TypeEarth, TypePoison}: 2.0, {TypeEarth, TypeFlying}: 0.0, {TypeEarth, TypeBug}: 0.5,
	{TypeEarth, TypeRock}: 2.0, {TypeEarth, TypeSteel}: 2.0,

	{TypeFlying, TypeElectric}: 0.5, {TypeFlying, TypeGrass}: 2.0, {TypeFlying, TypeFighting}: 2.0,
	{TypeFlying, TypeBug}: 2.0, {TypeFlying, TypeRock}: 0.5, {TypeFlying, TypeSteel}: 0.5,

	{TypePsychic, TypeFighting}: 2.0, {TypePsychic, TypePoison}: 2.0, {TypePsychic, TypePsychic}: 0.5,
	{TypePsychic, TypeDark}: 0.0, {TypePsychic, TypeSteel}: 0.5,

	{TypeBug, TypeFire}: 0.5, {TypeBug, TypeGrass}: 2.0, {TypeBug, TypeFighting}: 0.5,
	{TypeBug, TypePoison}: 0.5, {TypeBug, TypeFlying}: 0.5, {TypeBug, TypePsychic}: 2.0,
	{TypeBug, TypeGhost}: 0.5, {TypeBug, TypeDark}: 2.0, {TypeBug, TypeSteel}: 0.5,
	{TypeBug, TypeFairy}: 0.5,

	{TypeRock, TypeFire}: 2.0, {TypeRock, TypeIce}: 2.0, {TypeRock, TypeFighting}: 0.5,
	{TypeRock, TypeEarth}: 0.5, {TypeRock, TypeFlying}: 2.0, {TypeRock, TypeBug}: 2.0,
	{TypeRock, TypeSteel}: 0.5,

	{TypeGhost, TypeNormal}: 0.0, {TypeGhost, TypePsychic}: 2.0, {TypeGhost, TypeGhost}: 2.0,
	{TypeGhost, TypeDark}: 0.5,

	{TypeDragon, TypeDragon}: 2.0, {TypeDragon, TypeSteel}: 0.5, {TypeDragon, TypeFairy}: 0.0,

	{TypeDark, TypeFighting}: 0.5, {TypeDark, TypePsychic}: 2.0, {TypeDark, TypeGhost}: 2.0,
	{TypeDark, TypeDark}: 0.5, {TypeDark, TypeFairy}: 0.5,

	{TypeSteel, TypeFire}: 0.5, {TypeSteel, TypeWater}: 0.5, {TypeSteel, TypeElectric}: 0.5,
	{TypeSteel, TypeIce}: 2.0, {TypeSteel, TypeRock}: 2.0, {TypeSteel, TypeSteel}: 0.5,
	{TypeSteel, TypeFairy}: 2.0,

	{TypeFairy, TypeFighting}: 2.0, {TypeFairy, TypePoison}: 0.5, {TypeFairy, TypeDragon}: 2.0,
	{TypeFairy, TypeDark}: 2.0, {TypeFairy, TypeSteel}: 0.5,
}

// Effectiveness returns the raw multiplier for attacking type atk hitting
// defending type def, before the damage formula's 1.5x cap is applied.
func Effectiveness(atk, def TypeName) float64 {
	if m, ok := effectivenessOverrides[[2]TypeName{atk, def}]; ok {
		return m
	}
	return 1.0
}
