package store

import "github.com/MoJuiceX/clawcombat-sub000/internal/catalog"

// AgentStatus is an agent's lifecycle state (§3).
type AgentStatus string

const (
	AgentActive   AgentStatus = "active"
	AgentInactive AgentStatus = "inactive"
	AgentBanned   AgentStatus = "banned"
	AgentSystem   AgentStatus = "system"
)

// PlayMode says whether an agent's moves are submitted by a human/bot
// caller (manual) or a built-in default strategy (auto).
type PlayMode string

const (
	PlayModeAuto   PlayMode = "auto"
	PlayModeManual PlayMode = "manual"
)

// Agent is the persistent row backing §3's Agent record.
type Agent struct {
	ID                string
	Name              string
	CredentialDigest  string
	OwnerID           string
	WebhookURL        string
	WebhookSecret     string
	Type              catalog.TypeName
	BaseStats         [6]int // HP, Attack, Defense, SpAtk, SpDef, Speed
	Nature            catalog.NatureID
	AbilityID         catalog.AbilityID
	Moves             [4]catalog.MoveID
	Level             int
	XP                int
	ELO               int
	Wins              int
	Fights            int
	WinStreak         int
	Status            AgentStatus
	PlayMode          PlayMode
	CreatedAt         int64
}

// BattleStatus is a battle's top-level lifecycle state (§3).
type BattleStatus string

const (
	BattlePending    BattleStatus = "pending"
	BattleActive     BattleStatus = "active"
	BattleFinished   BattleStatus = "finished"
	BattleForfeited  BattleStatus = "forfeited"
	BattleTimeout    BattleStatus = "timeout"
	BattleCancelled  BattleStatus = "cancelled"
)

// BattlePhase is a battle's sub-state while non-terminal (§3).
type BattlePhase string

const (
	PhaseChallenge BattlePhase = "challenge"
	PhaseWaiting   BattlePhase = "waiting"
	PhaseResolving BattlePhase = "resolving"
	PhaseFinished  BattlePhase = "finished"
)

// Battle is the persistent row backing §3's Battle record.
type Battle struct {
	ID             string
	DisplayNumber  int64
	AgentAID       string
	AgentBID       string
	Status         BattleStatus
	Phase          BattlePhase
	TurnNumber     int
	PendingMoveA   *string
	PendingMoveB   *string
	StateBlob      []byte
	WinnerID       *string
	TimeoutsA      int
	TimeoutsB      int
	CreatedAt      int64
	StartedAt      *int64
	LastTurnAt     *int64
	EndedAt        *int64
}

// IsTerminal reports whether Status is one of the four terminal states
// (§3 invariant 5).
func (b Battle) IsTerminal() bool {
	switch b.Status {
	case BattleFinished, BattleForfeited, BattleTimeout, BattleCancelled:
		return true
	default:
		return false
	}
}

// BattleTurn is one append-only row of §3's Battle turn log.
type BattleTurn struct {
	BattleID   string
	TurnNumber int
	MoveA      *string
	MoveB      *string
	EventsJSON string
	HPAfterA   int
	HPAfterB   int
	CreatedAt  int64
}

// QueueEntry is one row of §3's Queue entry.
type QueueEntry struct {
	AgentID  string
	JoinedAt int64
	ELO      int
	Level    int
}

// SocialToken is one row of §3's Social token.
type SocialToken struct {
	Token     string
	AgentID   string
	BattleID  string
	ExpiresAt int64
	Consumed  bool
}
