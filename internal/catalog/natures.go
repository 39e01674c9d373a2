package catalog

// NatureID is an opaque nature identifier.
type NatureID string

// Nature is a (+10%, -10%) stat modifier pair assigned to an agent at
// creation. Boost and Reduce both empty means a balanced nature with no
// net effect, per §4.1.
type Nature struct {
	ID     NatureID
	Boost  StatName
	Reduce StatName
}

// natureTable is the fixed 25-entry list from §3: every ordered pair of
// two different stats among attack/defense/sp_atk/sp_def/speed (5x4 = 20
// natures), plus five balanced natures with neither a boost nor a reduce.
var natureTable = map[NatureID]Nature{
	"brave":    {ID: "brave", Boost: StatAttack, Reduce: StatSpeed},
	"adamant":  {ID: "adamant", Boost: StatAttack, Reduce: StatSpAtk},
	"lonely":   {ID: "lonely", Boost: StatAttack, Reduce: StatDefense},
	"naughty":  {ID: "naughty", Boost: StatAttack, Reduce: StatSpDef},

	"bold":     {ID: "bold", Boost: StatDefense, Reduce: StatAttack},
	"relaxed":  {ID: "relaxed", Boost: StatDefense, Reduce: StatSpeed},
	"impish":   {ID: "impish", Boost: StatDefense, Reduce: StatSpAtk},
	"lax":      {ID: "lax", Boost: StatDefense, Reduce: StatSpDef},

	"modest":   {ID: "modest", Boost: StatSpAtk, Reduce: StatAttack},
	"mild":     {ID: "mild", Boost: StatSpAtk, Reduce: StatDefense},
	"quiet":    {ID: "quiet", Boost: StatSpAtk, Reduce: StatSpeed},
	"rash":     {ID: "rash", Boost: StatSpAtk, Reduce: StatSpDef},

	"calm":     {ID: "calm", Boost: StatSpDef, Reduce: StatAttack},
	"gentle":   {ID: "gentle", Boost: StatSpDef, Reduce: StatDefense},
	"careful":  {ID: "careful", Boost: StatSpDef, Reduce: StatSpAtk},
	"sassy":    {ID: "sassy", Boost: StatSpDef, Reduce: StatSpeed},

	"timid":    {ID: "timid", Boost: StatSpeed, Reduce: StatAttack},
	"hasty":    {ID: "hasty", Boost: StatSpeed, Reduce: StatDefense},
	"jolly":    {ID: "jolly", Boost: StatSpeed, Reduce: StatSpAtk},
	"naive":    {ID: "naive", Boost: StatSpeed, Reduce: StatSpDef},

	"hardy":    {ID: "hardy"},
	"docile":   {ID: "docile"},
	"serious":  {ID: "serious"},
	"bashful":  {ID: "bashful"},
	"quirky":   {ID: "quirky"},
}

// NatureByID looks up a nature by id.
func NatureByID(id NatureID) (Nature, bool) {
	n, ok := natureTable[id]
	return n, ok
}

// IsValidNature reports whether id names one of the 25 natures.
func IsValidNature(id NatureID) bool {
	_, ok := natureTable[id]
	return ok
}

// NatureMultiplier returns the nature's multiplier for the named stat:
// 1.1 if it boosts that stat, 0.9 if it reduces it, 1.0 otherwise.
func (n Nature) NatureMultiplier(stat StatName) float64 {
	switch {
	case n.Boost == stat && n.Boost != "":
		return 1.1
	case n.Reduce == stat && n.Reduce != "":
		return 0.9
	default:
		return 1.0
	}
}
