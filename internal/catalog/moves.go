package catalog

// Category is a move's damage class.
type Category string

const (
	CategoryPhysical Category = "physical"
	CategorySpecial  Category = "special"
	CategoryStatus   Category = "status"
)

// MoveID is an opaque move identifier, unique within the catalog.
type MoveID string

// Move is a single static move definition. Power is 0 for status moves.
// Accuracy is 0-100; utility moves such as recover carry 100. The accuracy
// roll in internal/battle runs for every move whose accuracy is above 0,
// and an accuracy of 100 always hits.
type Move struct {
	ID       MoveID
	Name     string
	Type     TypeName
	Category Category
	Power    int
	Accuracy int
	PP       int
	Priority int
	Effects  []Effect
}

// moveTable is the full static pool, four moves per type following the
// spec's own example roster (signature nuke, reliable STAB, priority/status
// secondary, shared recovery move).
var moveTable = map[MoveID]Move{
	// NORMAL
	"hyper_beam":   {ID: "hyper_beam", Name: "Hyper Beam", Type: TypeNormal, Category: CategorySpecial, Power: 150, Accuracy: 90, PP: 5},
	"tackle":       {ID: "tackle", Name: "Tackle", Type: TypeNormal, Category: CategoryPhysical, Power: 40, Accuracy: 100, PP: 35},
	"quick_attack": {ID: "quick_attack", Name: "Quick Attack", Type: TypeNormal, Category: CategoryPhysical, Power: 40, Accuracy: 100, PP: 30, Priority: 1},
	"recover":      {ID: "recover", Name: "Recover", Type: TypeNormal, Category: CategoryStatus, Accuracy: 100, PP: 10, Effects: []Effect{{Kind: EffectHeal, Fraction: 0.5, Target: TargetSelf}}},

	// FIRE
	"fire_blast":  {ID: "fire_blast", Name: "Fire Blast", Type: TypeFire, Category: CategorySpecial, Power: 110, Accuracy: 85, PP: 5, Effects: []Effect{{Kind: EffectStatusInflict, Chance: 10, Status: StatusBurned, Target: TargetOpponent}}},
	"flamethrower": {ID: "flamethrower", Name: "Flamethrower", Type: TypeFire, Category: CategorySpecial, Power: 90, Accuracy: 100, PP: 15, Effects: []Effect{{Kind: EffectStatusInflict, Chance: 10, Status: StatusBurned, Target: TargetOpponent}}},
	"fire_punch":  {ID: "fire_punch", Name: "Fire Punch", Type: TypeFire, Category: CategoryPhysical, Power: 75, Accuracy: 100, PP: 15, Effects: []Effect{{Kind: EffectStatusInflict, Chance: 10, Status: StatusBurned, Target: TargetOpponent}}},
	"fire_recover": {ID: "fire_recover", Name: "Recover", Type: TypeFire, Category: CategoryStatus, Accuracy: 100, PP: 10, Effects: []Effect{{Kind: EffectHeal, Fraction: 0.5, Target: TargetSelf}}},

	// WATER
	"hydro_pump": {ID: "hydro_pump", Name: "Hydro Pump", Type: TypeWater, Category: CategorySpecial, Power: 110, Accuracy: 80, PP: 5},
	"surf":       {ID: "surf", Name: "Surf", Type: TypeWater, Category: CategorySpecial, Power: 90, Accuracy: 100, PP: 15},
	"aqua_jet":   {ID: "aqua_jet", Name: "Aqua Jet", Type: TypeWater, Category: CategoryPhysical, Power: 40, Accuracy: 100, PP: 20, Priority: 1},
	"water_recover": {ID: "water_recover", Name: "Recover", Type: TypeWater, Category: CategoryStatus, Accuracy: 100, PP: 10, Effects: []Effect{{Kind: EffectHeal, Fraction: 0.5, Target: TargetSelf}}},

	// ELECTRIC
	"thunder":     {ID: "thunder", Name: "Thunder", Type: TypeElectric, Category: CategorySpecial, Power: 110, Accuracy: 70, PP: 10, Effects: []Effect{{Kind: EffectStatusInflict, Chance: 30, Status: StatusParalysis, Target: TargetOpponent}}},
	"thunderbolt": {ID: "thunderbolt", Name: "Thunderbolt", Type: TypeElectric, Category: CategorySpecial, Power: 90, Accuracy: 100, PP: 15, Effects: []Effect{{Kind: EffectStatusInflict, Chance: 10, Status: StatusParalysis, Target: TargetOpponent}}},
	"volt_tackle": {ID: "volt_tackle", Name: "Volt Tackle", Type: TypeElectric, Category: CategoryPhysical, Power: 120, Accuracy: 100, PP: 15, Effects: []Effect{{Kind: EffectRecoil, Fraction: 0.33, Target: TargetSelf}, {Kind: EffectStatusInflict, Chance: 10, Status: StatusParalysis, Target: TargetOpponent}}},
	"electric_recover": {ID: "electric_recover", Name: "Recover", Type: TypeElectric, Category: CategoryStatus, Accuracy: 100, PP: 10, Effects: []Effect{{Kind: EffectHeal, Fraction: 0.5, Target: TargetSelf}}},

	// GRASS
	"solar_beam":  {ID: "solar_beam", Name: "Solar Beam", Type: TypeGrass, Category: CategorySpecial, Power: 120, Accuracy: 100, PP: 10},
	"energy_ball": {ID: "energy_ball", Name: "Energy Ball", Type: TypeGrass, Category: CategorySpecial, Power: 90, Accuracy: 100, PP: 10, Effects: []Effect{{Kind: EffectStatDrop, Chance: 10, Stat: StatSpDef, Stages: -1, Target: TargetOpponent}}},
	"leaf_blade":  {ID: "leaf_blade", Name: "Leaf Blade", Type: TypeGrass, Category: CategoryPhysical, Power: 90, Accuracy: 100, PP: 15, Effects: []Effect{{Kind: EffectHighCrit}}},
	"synthesis":   {ID: "synthesis", Name: "Synthesis", Type: TypeGrass, Category: CategoryStatus, Accuracy: 100, PP: 10, Effects: []Effect{{Kind: EffectHeal, Fraction: 0.5, Target: TargetSelf}}},

	// ICE
	"blizzard":  {ID: "blizzard", Name: "Blizzard", Type: TypeIce, Category: CategorySpecial, Power: 110, Accuracy: 70, PP: 5, Effects: []Effect{{Kind: EffectStatusInflict, Chance: 10, Status: StatusFreeze, Target: TargetOpponent}}},
	"ice_beam":  {ID: "ice_beam", Name: "Ice Beam", Type: TypeIce, Category: CategorySpecial, Power: 90, Accuracy: 100, PP: 10, Effects: []Effect{{Kind: EffectStatusInflict, Chance: 10, Status: StatusFreeze, Target: TargetOpponent}}},
	"ice_punch": {ID: "ice_punch", Name: "Ice Punch", Type: TypeIce, Category: CategoryPhysical, Power: 75, Accuracy: 100, PP: 15, Effects: []Effect{{Kind: EffectStatusInflict, Chance: 10, Status: StatusFreeze, Target: TargetOpponent}}},
	"ice_recover": {ID: "ice_recover", Name: "Recover", Type: TypeIce, Category: CategoryStatus, Accuracy: 100, PP: 10, Effects: []Effect{{Kind: EffectHeal, Fraction: 0.5, Target: TargetSelf}}},

	// FIGHTING
	"close_combat": {ID: "close_combat", Name: "Close Combat", Type: TypeFighting, Category: CategoryPhysical, Power: 120, Accuracy: 100, PP: 5, Effects: []Effect{{Kind: EffectStatDrop, Chance: 100, Stat: StatDefense, Stages: -1, Target: TargetSelf}, {Kind: EffectStatDrop, Chance: 100, Stat: StatSpDef, Stages: -1, Target: TargetSelf}}},
	"focus_blast": {ID: "focus_blast", Name: "Focus Blast", Type: TypeFighting, Category: CategorySpecial, Power: 120, Accuracy: 70, PP: 5},
	"mach_punch":  {ID: "mach_punch", Name: "Mach Punch", Type: TypeFighting, Category: CategoryPhysical, Power: 40, Accuracy: 100, PP: 30, Priority: 1},
	"fighting_recover": {ID: "fighting_recover", Name: "Recover", Type: TypeFighting, Category: CategoryStatus, Accuracy: 100, PP: 10, Effects: []Effect{{Kind: EffectHeal, Fraction: 0.5, Target: TargetSelf}}},

	// POISON
	"sludge_bomb": {ID: "sludge_bomb", Name: "Sludge Bomb", Type: TypePoison, Category: CategorySpecial, Power: 90, Accuracy: 100, PP: 10, Effects: []Effect{{Kind: EffectStatusInflict, Chance: 30, Status: StatusPoison, Target: TargetOpponent}}},
	"toxic":       {ID: "toxic", Name: "Toxic", Type: TypePoison, Category: CategoryStatus, Accuracy: 90, PP: 10, Effects: []Effect{{Kind: EffectStatusInflict, Chance: 100, Status: StatusPoison, Target: TargetOpponent}}},
	"poison_jab":  {ID: "poison_jab", Name: "Poison Jab", Type: TypePoison, Category: CategoryPhysical, Power: 80, Accuracy: 100, PP: 20, Effects: []Effect{{Kind: EffectStatusInflict, Chance: 30, Status: StatusPoison, Target: TargetOpponent}}},
	"poison_recover": {ID: "poison_recover", Name: "Recover", Type: TypePoison, Category: CategoryStatus, Accuracy: 100, PP: 10, Effects: []Effect{{Kind: EffectHeal, Fraction: 0.5, Target: TargetSelf}}},

	// EARTH
	"earthquake": {ID: "earthquake", Name: "Earthquake", Type: TypeEarth, Category: CategoryPhysical, Power: 100, Accuracy: 100, PP: 10},
	"earth_power": {ID: "earth_power", Name: "Earth Power", Type: TypeEarth, Category: CategorySpecial, Power: 90, Accuracy: 100, PP: 10, Effects: []Effect{{Kind: EffectStatDrop, Chance: 10, Stat: StatSpDef, Stages: -1, Target: TargetOpponent}}},
	"bulldoze":   {ID: "bulldoze", Name: "Bulldoze", Type: TypeEarth, Category: CategoryPhysical, Power: 60, Accuracy: 100, PP: 20, Effects: []Effect{{Kind: EffectStatDrop, Chance: 100, Stat: StatSpeed, Stages: -1, Target: TargetOpponent}}},
	"earth_recover": {ID: "earth_recover", Name: "Recover", Type: TypeEarth, Category: CategoryStatus, Accuracy: 100, PP: 10, Effects: []Effect{{Kind: EffectHeal, Fraction: 0.5, Target: TargetSelf}}},

	// FLYING
	"hurricane": {ID: "hurricane", Name: "Hurricane", Type: TypeFlying, Category: CategorySpecial, Power: 110, Accuracy: 70, PP: 10},
	"air_slash": {ID: "air_slash", Name: "Air Slash", Type: TypeFlying, Category: CategorySpecial, Power: 75, Accuracy: 95, PP: 15, Effects: []Effect{{Kind: EffectFlinch, Chance: 30, Target: TargetOpponent}}},
	"brave_bird": {ID: "brave_bird", Name: "Brave Bird", Type: TypeFlying, Category: CategoryPhysical, Power: 120, Accuracy: 100, PP: 15, Effects: []Effect{{Kind: EffectRecoil, Fraction: 0.33, Target: TargetSelf}}},
	"roost":      {ID: "roost", Name: "Roost", Type: TypeFlying, Category: CategoryStatus, Accuracy: 100, PP: 10, Effects: []Effect{{Kind: EffectHeal, Fraction: 0.5, Target: TargetSelf}}},

	// PSYCHIC
	"psychic":      {ID: "psychic", Name: "Psychic", Type: TypePsychic, Category: CategorySpecial, Power: 90, Accuracy: 100, PP: 10, Effects: []Effect{{Kind: EffectStatDrop, Chance: 10, Stat: StatSpDef, Stages: -1, Target: TargetOpponent}}},
	"psyshock":     {ID: "psyshock", Name: "Psyshock", Type: TypePsychic, Category: CategorySpecial, Power: 80, Accuracy: 100, PP: 10, Effects: []Effect{{Kind: EffectUsePhysicalDef}}},
	"zen_headbutt": {ID: "zen_headbutt", Name: "Zen Headbutt", Type: TypePsychic, Category: CategoryPhysical, Power: 80, Accuracy: 90, PP: 15, Effects: []Effect{{Kind: EffectFlinch, Chance: 20, Target: TargetOpponent}}},
	"psychic_recover": {ID: "psychic_recover", Name: "Recover", Type: TypePsychic, Category: CategoryStatus, Accuracy: 100, PP: 10, Effects: []Effect{{Kind: EffectHeal, Fraction: 0.5, Target: TargetSelf}}},

	// BUG
	"megahorn": {ID: "megahorn", Name: "Megahorn", Type: TypeBug, Category: CategoryPhysical, Power: 120, Accuracy: 85, PP: 10},
	"bug_buzz": {ID: "bug_buzz", Name: "Bug Buzz", Type: TypeBug, Category: CategorySpecial, Power: 90, Accuracy: 100, PP: 10, Effects: []Effect{{Kind: EffectStatDrop, Chance: 10, Stat: StatSpDef, Stages: -1, Target: TargetOpponent}}},
	"u_turn":   {ID: "u_turn", Name: "U-turn", Type: TypeBug, Category: CategoryPhysical, Power: 70, Accuracy: 100, PP: 20},
	"bug_recover": {ID: "bug_recover", Name: "Recover", Type: TypeBug, Category: CategoryStatus, Accuracy: 100, PP: 10, Effects: []Effect{{Kind: EffectHeal, Fraction: 0.5, Target: TargetSelf}}},

	// ROCK
	"stone_edge": {ID: "stone_edge", Name: "Stone Edge", Type: TypeRock, Category: CategoryPhysical, Power: 100, Accuracy: 80, PP: 5, Effects: []Effect{{Kind: EffectHighCrit}}},
	"rock_slide": {ID: "rock_slide", Name: "Rock Slide", Type: TypeRock, Category: CategoryPhysical, Power: 75, Accuracy: 90, PP: 10, Effects: []Effect{{Kind: EffectFlinch, Chance: 30, Target: TargetOpponent}}},
	"rock_tomb":  {ID: "rock_tomb", Name: "Rock Tomb", Type: TypeRock, Category: CategoryPhysical, Power: 60, Accuracy: 95, PP: 15, Effects: []Effect{{Kind: EffectStatDrop, Chance: 100, Stat: StatSpeed, Stages: -1, Target: TargetOpponent}}},
	"rock_recover": {ID: "rock_recover", Name: "Recover", Type: TypeRock, Category: CategoryStatus, Accuracy: 100, PP: 10, Effects: []Effect{{Kind: EffectHeal, Fraction: 0.5, Target: TargetSelf}}},

	// GHOST
	"shadow_ball":  {ID: "shadow_ball", Name: "Shadow Ball", Type: TypeGhost, Category: CategorySpecial, Power: 90, Accuracy: 100, PP: 15, Effects: []Effect{{Kind: EffectStatDrop, Chance: 20, Stat: StatSpDef, Stages: -1, Target: TargetOpponent}}},
	"shadow_claw":  {ID: "shadow_claw", Name: "Shadow Claw", Type: TypeGhost, Category: CategoryPhysical, Power: 70, Accuracy: 100, PP: 15, Effects: []Effect{{Kind: EffectHighCrit}}},
	"hex":          {ID: "hex", Name: "Hex", Type: TypeGhost, Category: CategorySpecial, Power: 65, Accuracy: 100, PP: 10},
	"ghost_recover": {ID: "ghost_recover", Name: "Recover", Type: TypeGhost, Category: CategoryStatus, Accuracy: 100, PP: 10, Effects: []Effect{{Kind: EffectHeal, Fraction: 0.5, Target: TargetSelf}}},

	// DRAGON
	"draco_meteor": {ID: "draco_meteor", Name: "Draco Meteor", Type: TypeDragon, Category: CategorySpecial, Power: 130, Accuracy: 90, PP: 5, Effects: []Effect{{Kind: EffectStatDrop, Chance: 100, Stat: StatSpAtk, Stages: -2, Target: TargetSelf}}},
	"dragon_pulse": {ID: "dragon_pulse", Name: "Dragon Pulse", Type: TypeDragon, Category: CategorySpecial, Power: 85, Accuracy: 100, PP: 10},
	"outrage":      {ID: "outrage", Name: "Outrage", Type: TypeDragon, Category: CategoryPhysical, Power: 120, Accuracy: 100, PP: 10},
	"dragon_recover": {ID: "dragon_recover", Name: "Recover", Type: TypeDragon, Category: CategoryStatus, Accuracy: 100, PP: 10, Effects: []Effect{{Kind: EffectHeal, Fraction: 0.5, Target: TargetSelf}}},

	// DARK
	"dark_pulse":    {ID: "dark_pulse", Name: "Dark Pulse", Type: TypeDark, Category: CategorySpecial, Power: 80, Accuracy: 100, PP: 15, Effects: []Effect{{Kind: EffectFlinch, Chance: 20, Target: TargetOpponent}}},
	"crunch":        {ID: "crunch", Name: "Crunch", Type: TypeDark, Category: CategoryPhysical, Power: 80, Accuracy: 100, PP: 15, Effects: []Effect{{Kind: EffectStatDrop, Chance: 20, Stat: StatDefense, Stages: -1, Target: TargetOpponent}}},
	"sucker_punch":  {ID: "sucker_punch", Name: "Sucker Punch", Type: TypeDark, Category: CategoryPhysical, Power: 70, Accuracy: 100, PP: 5, Priority: 1},
	"dark_recover":  {ID: "dark_recover", Name: "Recover", Type: TypeDark, Category: CategoryStatus, Accuracy: 100, PP: 10, Effects: []Effect{{Kind: EffectHeal, Fraction: 0.5, Target: TargetSelf}}},

	// STEEL
	"flash_cannon": {ID: "flash_cannon", Name: "Flash Cannon", Type: TypeSteel, Category: CategorySpecial, Power: 90, Accuracy: 100, PP: 10, Effects: []Effect{{Kind: EffectStatDrop, Chance: 10, Stat: StatSpDef, Stages: -1, Target: TargetOpponent}}},
	"iron_head":    {ID: "iron_head", Name: "Iron Head", Type: TypeSteel, Category: CategoryPhysical, Power: 80, Accuracy: 100, PP: 15, Effects: []Effect{{Kind: EffectFlinch, Chance: 30, Target: TargetOpponent}}},
	"meteor_mash":  {ID: "meteor_mash", Name: "Meteor Mash", Type: TypeSteel, Category: CategoryPhysical, Power: 90, Accuracy: 90, PP: 10, Effects: []Effect{{Kind: EffectStatBoost, Chance: 20, Stat: StatAttack, Stages: 1, Target: TargetSelf}}},
	"steel_recover": {ID: "steel_recover", Name: "Recover", Type: TypeSteel, Category: CategoryStatus, Accuracy: 100, PP: 10, Effects: []Effect{{Kind: EffectHeal, Fraction: 0.5, Target: TargetSelf}}},

	// FAIRY
	"moonblast":     {ID: "moonblast", Name: "Moonblast", Type: TypeFairy, Category: CategorySpecial, Power: 95, Accuracy: 100, PP: 15, Effects: []Effect{{Kind: EffectStatDrop, Chance: 30, Stat: StatSpAtk, Stages: -1, Target: TargetOpponent}}},
	"dazzling_gleam": {ID: "dazzling_gleam", Name: "Dazzling Gleam", Type: TypeFairy, Category: CategorySpecial, Power: 80, Accuracy: 100, PP: 10},
	"play_rough":    {ID: "play_rough", Name: "Play Rough", Type: TypeFairy, Category: CategoryPhysical, Power: 90, Accuracy: 90, PP: 10, Effects: []Effect{{Kind: EffectStatDrop, Chance: 10, Stat: StatAttack, Stages: -1, Target: TargetOpponent}}},
	"fairy_recover": {ID: "fairy_recover", Name: "Recover", Type: TypeFairy, Category: CategoryStatus, Accuracy: 100, PP: 10, Effects: []Effect{{Kind: EffectHeal, Fraction: 0.5, Target: TargetSelf}}},
}

// movesByType groups every move id legal for a given type, built once from
// moveTable at package init.
var movesByType = func() map[TypeName][]MoveID {
	grouped := make(map[TypeName][]MoveID, len(AllTypes))
	for id, mv := range moveTable {
		grouped[mv.Type] = append(grouped[mv.Type], id)
	}
	return grouped
}()

// MoveByID looks up a move by id.
func MoveByID(id MoveID) (Move, bool) {
	mv, ok := moveTable[id]
	return mv, ok
}

// MovesForType returns the pool of move ids legal for a type.
func MovesForType(t TypeName) []MoveID {
	return movesByType[t]
}

// IsMoveInTypePool reports whether id is a legal move for type t, used to
// validate an agent's four-move roster at creation (§3 invariant).
func IsMoveInTypePool(t TypeName, id MoveID) bool {
	for _, candidate := range movesByType[t] {
		if candidate == id {
			return true
		}
	}
	return false
}
