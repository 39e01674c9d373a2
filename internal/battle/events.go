package battle

import "github.com/MoJuiceX/clawcombat-sub000/internal/catalog"

// EventKind is one entry of the stable, verbatim event taxonomy from §4.3.
type EventKind string

const (
	EventUseMove         EventKind = "use_move"
	EventFlinch          EventKind = "flinch"
	EventStatus          EventKind = "status"
	EventDodge           EventKind = "dodge"
	EventImmune          EventKind = "immune"
	EventMiss            EventKind = "miss"
	EventOHKO            EventKind = "ohko"
	EventDamage          EventKind = "damage"
	EventRecoil          EventKind = "recoil"
	EventDrain           EventKind = "drain"
	EventHeal            EventKind = "heal"
	EventWish            EventKind = "wish"
	EventLeechSeed       EventKind = "leech_seed"
	EventStatBoost       EventKind = "stat_boost"
	EventStatDrop        EventKind = "stat_drop"
	EventStatusInflict   EventKind = "status_inflict"
	EventBurnDamage      EventKind = "burn_damage"
	EventPoisonDamage    EventKind = "poison_damage"
	EventCurseDamage     EventKind = "curse_damage"
	EventWishHeal        EventKind = "wish_heal"
	EventAbility         EventKind = "ability"
	EventConfusionSelfHit EventKind = "confusion_self_hit"
	EventBattleEnd       EventKind = "battle_end"
	EventTimeout         EventKind = "timeout"
	EventFocusFail       EventKind = "focus_fail"
)

// Event is one ordered entry in a turn's event log. Fields beyond Kind and
// Side are populated selectively per kind, matching the loosely-typed
// per-event payload shape implied by §4.3 (an interpreter replaying the log
// only needs Kind plus the handful of fields that kind defines).
type Event struct {
	Kind   EventKind `json:"kind"`
	Side   Side      `json:"side,omitempty"`
	MoveID string    `json:"moveId,omitempty"`

	Amount       int     `json:"amount,omitempty"`
	Effectiveness float64 `json:"effectiveness,omitempty"`
	Crit         bool    `json:"crit,omitempty"`

	Status catalog.Status `json:"status,omitempty"`
	Stat   catalog.StatName `json:"stat,omitempty"`
	Stages int              `json:"stages,omitempty"`

	Ability string `json:"ability,omitempty"`
	Winner  Side   `json:"winner,omitempty"`
	Reason  string `json:"reason,omitempty"`
}

// TurnLog is the append-only per-turn record from §3.
type TurnLog struct {
	TurnNumber int     `json:"turnNumber"`
	MoveA      *string `json:"moveA"`
	MoveB      *string `json:"moveB"`
	Events     []Event `json:"events"`
	HPAfterA   int     `json:"hpAfterA"`
	HPAfterB   int     `json:"hpAfterB"`
}
