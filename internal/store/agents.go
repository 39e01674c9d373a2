package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/MoJuiceX/clawcombat-sub000/internal/catalog"
	"github.com/MoJuiceX/clawcombat-sub000/internal/clawerr"
)

// InsertAgent writes a new agent row. Callers run this inside WithTx when
// the creation also writes related rows (none today, but §4.4 names
// "agent creation + moves" as one of the atomic write groups future
// per-move rows would join).
func InsertAgent(ctx context.Context, tx *sql.Tx, a *Agent) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO agents (
			id, name, credential_digest, owner_id, webhook_url, webhook_secret,
			type, base_hp, base_attack, base_defense, base_sp_atk, base_sp_def, base_speed,
			nature, ability_id, move_1, move_2, move_3, move_4,
			level, xp, elo, wins, fights, win_streak, status, play_mode, created_at
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		a.ID, a.Name, a.CredentialDigest, a.OwnerID, a.WebhookURL, a.WebhookSecret,
		string(a.Type), a.BaseStats[0], a.BaseStats[1], a.BaseStats[2], a.BaseStats[3], a.BaseStats[4], a.BaseStats[5],
		string(a.Nature), string(a.AbilityID), string(a.Moves[0]), string(a.Moves[1]), string(a.Moves[2]), string(a.Moves[3]),
		a.Level, a.XP, a.ELO, a.Wins, a.Fights, a.WinStreak, string(a.Status), string(a.PlayMode), a.CreatedAt,
	)
	if err != nil {
		if isUniqueConstraintErr(err) {
			return clawerr.Conflict("agent name already taken")
		}
		return clawerr.Internal(fmt.Sprintf("insert agent: %v", err))
	}
	return nil
}

const agentColumns = `
	id, name, credential_digest, owner_id, webhook_url, webhook_secret,
	type, base_hp, base_attack, base_defense, base_sp_atk, base_sp_def, base_speed,
	nature, ability_id, move_1, move_2, move_3, move_4,
	level, xp, elo, wins, fights, win_streak, status, play_mode, created_at
`

func scanAgent(row interface{ Scan(...any) error }) (*Agent, error) {
	var a Agent
	var typ, nature, ability, m1, m2, m3, m4, status, mode string
	err := row.Scan(
		&a.ID, &a.Name, &a.CredentialDigest, &a.OwnerID, &a.WebhookURL, &a.WebhookSecret,
		&typ, &a.BaseStats[0], &a.BaseStats[1], &a.BaseStats[2], &a.BaseStats[3], &a.BaseStats[4], &a.BaseStats[5],
		&nature, &ability, &m1, &m2, &m3, &m4,
		&a.Level, &a.XP, &a.ELO, &a.Wins, &a.Fights, &a.WinStreak, &status, &mode, &a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	a.Type = catalog.TypeName(typ)
	a.Nature = catalog.NatureID(nature)
	a.AbilityID = catalog.AbilityID(ability)
	a.Moves = [4]catalog.MoveID{catalog.MoveID(m1), catalog.MoveID(m2), catalog.MoveID(m3), catalog.MoveID(m4)}
	a.Status = AgentStatus(status)
	a.PlayMode = PlayMode(mode)
	return &a, nil
}

// GetAgentByID reads one agent by id through the queryer interface: a
// *sql.Tx inside a write transaction (*DB does not satisfy queryer).
func GetAgentByID(ctx context.Context, q queryer, id string) (*Agent, error) {
	row := q.QueryRowContext(ctx, `SELECT `+agentColumns+` FROM agents WHERE id = ?`, id)
	a, err := scanAgent(row)
	if err == sql.ErrNoRows {
		return nil, clawerr.NotFound("agent")
	}
	if err != nil {
		return nil, clawerr.Internal(fmt.Sprintf("get agent: %v", err))
	}
	return a, nil
}

// GetAgentByCredentialDigest looks up the agent owning a hashed bearer
// credential, for request authentication.
func GetAgentByCredentialDigest(ctx context.Context, db *DB, digest string) (*Agent, error) {
	row := db.sql.QueryRowContext(ctx, `SELECT `+agentColumns+` FROM agents WHERE credential_digest = ?`, digest)
	a, err := scanAgent(row)
	if err == sql.ErrNoRows {
		return nil, clawerr.Unauthenticated("unknown credential")
	}
	if err != nil {
		return nil, clawerr.Internal(fmt.Sprintf("get agent by credential: %v", err))
	}
	return a, nil
}

// IsAgentInNonTerminalBattle reports whether an agent currently has a
// pending or active battle (§3 invariant 1, §8 property 5).
func IsAgentInNonTerminalBattle(ctx context.Context, tx *sql.Tx, agentID string) (bool, error) {
	var n int
	err := tx.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM battles
		WHERE (agent_a_id = ? OR agent_b_id = ?) AND status IN ('pending', 'active')`,
		agentID, agentID,
	).Scan(&n)
	if err != nil {
		return false, clawerr.Internal(fmt.Sprintf("check active battle: %v", err))
	}
	return n > 0, nil
}

// ApplyBattleResult updates ratings and streak for one agent after a
// terminal battle transition (§4.6 step 6). eloDelta may be negative.
func ApplyBattleResult(ctx context.Context, tx *sql.Tx, agentID string, eloDelta, xpGain int, won bool) error {
	var streakExpr string
	if won {
		streakExpr = "win_streak + 1"
	} else {
		streakExpr = "0"
	}
	_, err := tx.ExecContext(ctx, fmt.Sprintf(`
		UPDATE agents SET
			elo = elo + ?,
			xp = xp + ?,
			fights = fights + 1,
			wins = wins + ?,
			win_streak = %s
		WHERE id = ?`, streakExpr),
		eloDelta, xpGain, boolToInt(won), agentID,
	)
	if err != nil {
		return clawerr.Internal(fmt.Sprintf("apply battle result: %v", err))
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func isUniqueConstraintErr(err error) bool {
	return err != nil && (strings.Contains(err.Error(), "UNIQUE constraint failed") ||
		strings.Contains(err.Error(), "constraint failed: UNIQUE"))
}
