package catalog

// AbilityTrigger names the lifecycle point at which an ability's effect is
// considered by internal/battle.
type AbilityTrigger string

const (
	TriggerBattleStart  AbilityTrigger = "battle_start"
	TriggerEndTurn      AbilityTrigger = "end_turn"
	TriggerDamageCalc   AbilityTrigger = "damage_calc"
	TriggerDamageTaken  AbilityTrigger = "damage_taken"
	TriggerBeforeHit    AbilityTrigger = "before_hit"
	TriggerAfterHit     AbilityTrigger = "after_hit"
	TriggerSpeedCalc    AbilityTrigger = "speed_calc"
	TriggerAccuracyCalc AbilityTrigger = "accuracy_calc"
	TriggerStatusDamage AbilityTrigger = "status_damage"
	TriggerBeforeFaint  AbilityTrigger = "before_faint"
)

// AbilityID is an opaque ability identifier.
type AbilityID string

// Ability is a static passive-effect declaration. internal/battle owns the
// numeric payload for each named ability (e.g. Blaze's 1.5x multiplier);
// this table only records which trigger point an ability participates in
// and which types may roll it, per §4.1.
type Ability struct {
	ID      AbilityID
	Name    string
	Trigger AbilityTrigger
}

var abilityTable = map[AbilityID]Ability{
	"blaze":         {ID: "blaze", Name: "Blaze", Trigger: TriggerDamageCalc},
	"torrent":       {ID: "torrent", Name: "Torrent", Trigger: TriggerDamageCalc},
	"overgrow":      {ID: "overgrow", Name: "Overgrow", Trigger: TriggerDamageCalc},
	"swarm":         {ID: "swarm", Name: "Swarm", Trigger: TriggerDamageCalc},
	"guts":          {ID: "guts", Name: "Guts", Trigger: TriggerDamageCalc},
	"iron_fist":     {ID: "iron_fist", Name: "Iron Fist", Trigger: TriggerDamageCalc},
	"multiscale":    {ID: "multiscale", Name: "Multiscale", Trigger: TriggerDamageTaken},
	"dark_aura":     {ID: "dark_aura", Name: "Dark Aura", Trigger: TriggerDamageCalc},
	"pixilate":      {ID: "pixilate", Name: "Pixilate", Trigger: TriggerDamageCalc},
	"corrosion":     {ID: "corrosion", Name: "Corrosion", Trigger: TriggerDamageCalc},
	"adaptability":  {ID: "adaptability", Name: "Adaptability", Trigger: TriggerDamageCalc},
	"resilience":    {ID: "resilience", Name: "Resilience", Trigger: TriggerDamageTaken},
	"solid_rock":    {ID: "solid_rock", Name: "Solid Rock", Trigger: TriggerDamageTaken},
	"filter":        {ID: "filter", Name: "Filter", Trigger: TriggerDamageTaken},
	"gale_wings":    {ID: "gale_wings", Name: "Gale Wings", Trigger: TriggerSpeedCalc},
	"compound_eyes": {ID: "compound_eyes", Name: "Compound Eyes", Trigger: TriggerAccuracyCalc},
	"telepathy":     {ID: "telepathy", Name: "Telepathy", Trigger: TriggerBeforeHit},
	"sand_veil":     {ID: "sand_veil", Name: "Sand Veil", Trigger: TriggerBeforeHit},
	"volt_absorb":   {ID: "volt_absorb", Name: "Volt Absorb", Trigger: TriggerBeforeHit},
	"levitate":      {ID: "levitate", Name: "Levitate", Trigger: TriggerBeforeHit},
	"inferno":       {ID: "inferno", Name: "Inferno", Trigger: TriggerAfterHit},
	"permafrost":    {ID: "permafrost", Name: "Permafrost", Trigger: TriggerAfterHit},
	"static":        {ID: "static", Name: "Static", Trigger: TriggerAfterHit},
	"poison_touch":  {ID: "poison_touch", Name: "Poison Touch", Trigger: TriggerAfterHit},
	"cursed_body":   {ID: "cursed_body", Name: "Cursed Body", Trigger: TriggerAfterHit},
	"hydration":     {ID: "hydration", Name: "Hydration", Trigger: TriggerEndTurn},
	"photosynthesis": {ID: "photosynthesis", Name: "Photosynthesis", Trigger: TriggerEndTurn},
	"ice_body":      {ID: "ice_body", Name: "Ice Body", Trigger: TriggerEndTurn},
	"sturdy":        {ID: "sturdy", Name: "Sturdy", Trigger: TriggerBeforeFaint},
}

// AbilityByID looks up an ability by id.
func AbilityByID(id AbilityID) (Ability, bool) {
	a, ok := abilityTable[id]
	return a, ok
}

// abilitiesByType declares which abilities an agent of a given type may
// choose at creation (§3: "one ability chosen from that type's allowed
// set"). Types not listed fall back to a neutral default pool.
var abilitiesByType = map[TypeName][]AbilityID{
	TypeFire:     {"blaze", "inferno", "iron_fist"},
	TypeWater:    {"torrent", "multiscale", "hydration"},
	TypeGrass:    {"overgrow", "photosynthesis"},
	TypeBug:      {"swarm", "poison_touch"},
	TypeFighting: {"guts", "iron_fist"},
	TypeFlying:   {"gale_wings", "multiscale"},
}

// defaultAbilityPool is used by types with no bespoke entry above.
var defaultAbilityPool = []AbilityID{"compound_eyes", "telepathy", "sand_veil", "sturdy", "corrosion", "adaptability", "resilience", "solid_rock", "filter", "volt_absorb", "levitate", "static", "cursed_body", "dark_aura", "pixilate", "permafrost", "ice_body"}

// AllowedAbilities returns the abilities an agent of type t may choose.
func AllowedAbilities(t TypeName) []AbilityID {
	if pool, ok := abilitiesByType[t]; ok && len(pool) > 0 {
		return pool
	}
	return defaultAbilityPool
}

// IsAbilityAllowed reports whether id is in type t's allowed ability set.
func IsAbilityAllowed(t TypeName, id AbilityID) bool {
	for _, candidate := range AllowedAbilities(t) {
		if candidate == id {
			return true
		}
	}
	return false
}
