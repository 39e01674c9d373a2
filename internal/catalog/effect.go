package catalog

// EffectKind tags the variant of a move's secondary effect. A move carries
// zero or more Effects; each is a discriminated struct rather than an open
// map so resolveTurn can switch exhaustively over Kind.
type EffectKind string

const (
	EffectRecoil            EffectKind = "recoil"
	EffectDrain             EffectKind = "drain"
	EffectFlinch            EffectKind = "flinch"
	EffectStatusInflict     EffectKind = "status_inflict"
	EffectStatBoost         EffectKind = "stat_boost"
	EffectStatDrop          EffectKind = "stat_drop"
	EffectHeal              EffectKind = "heal"
	EffectLeechSeed         EffectKind = "leech_seed"
	EffectCurse             EffectKind = "curse"
	EffectResetStats        EffectKind = "reset_stats"
	EffectHPScaling         EffectKind = "hp_scaling"
	EffectDoubleIfPoisoned  EffectKind = "double_if_poisoned"
	EffectUsePhysicalDef    EffectKind = "use_physical_def"
	EffectHighCrit          EffectKind = "high_crit"
	EffectOHKO              EffectKind = "ohko"
	EffectFocus             EffectKind = "focus"
)

// EffectTarget says whether an effect applies to the mover or the opponent.
type EffectTarget string

const (
	TargetSelf     EffectTarget = "self"
	TargetOpponent EffectTarget = "opponent"
)

// Effect is one tagged-variant payload attached to a move. Only the fields
// relevant to Kind are meaningful; zero values elsewhere.
type Effect struct {
	Kind EffectKind

	// Chance is a percent (0-100) used by flinch and status_inflict.
	Chance float64

	// Fraction is a 0-1 fraction used by recoil and drain (of the damage
	// dealt) and by heal (of max HP).
	Fraction float64

	// Status is the condition applied by status_inflict.
	Status Status

	// Stat and Stages parameterise stat_boost/stat_drop.
	Stat   StatName
	Stages int

	// Target says who the stat_boost/stat_drop effect applies to. A heal
	// always applies to the mover.
	Target EffectTarget

	// Delayed marks a heal effect that resolves during end-of-turn
	// processing of the mover's next turn instead of immediately (Wish).
	Delayed bool
}
