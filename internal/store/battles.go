package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/MoJuiceX/clawcombat-sub000/internal/clawerr"
)

const battleColumns = `
	id, display_number, agent_a_id, agent_b_id, status, current_phase, turn_number,
	pending_move_a, pending_move_b, state_blob, winner_id, timeouts_a, timeouts_b,
	created_at, started_at, last_turn_at, ended_at
`

func scanBattle(row interface{ Scan(...any) error }) (*Battle, error) {
	var b Battle
	var status, phase string
	err := row.Scan(
		&b.ID, &b.DisplayNumber, &b.AgentAID, &b.AgentBID, &status, &phase, &b.TurnNumber,
		&b.PendingMoveA, &b.PendingMoveB, &b.StateBlob, &b.WinnerID, &b.TimeoutsA, &b.TimeoutsB,
		&b.CreatedAt, &b.StartedAt, &b.LastTurnAt, &b.EndedAt,
	)
	if err != nil {
		return nil, err
	}
	b.Status = BattleStatus(status)
	b.Phase = BattlePhase(phase)
	return &b, nil
}

// NextDisplayNumber returns the next monotonically increasing display
// number for a new battle, computed inside the caller's transaction so it
// is consistent with whatever else that transaction is about to commit.
func NextDisplayNumber(ctx context.Context, tx *sql.Tx) (int64, error) {
	var max sql.NullInt64
	if err := tx.QueryRowContext(ctx, `SELECT MAX(display_number) FROM battles`).Scan(&max); err != nil {
		return 0, clawerr.Internal(fmt.Sprintf("next display number: %v", err))
	}
	return max.Int64 + 1, nil
}

// InsertBattle writes a new battle row (matchmaker pairing or
// accept-challenge), inside the caller's transaction.
func InsertBattle(ctx context.Context, tx *sql.Tx, b *Battle) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO battles (
			id, display_number, agent_a_id, agent_b_id, status, current_phase, turn_number,
			pending_move_a, pending_move_b, state_blob, winner_id, timeouts_a, timeouts_b,
			created_at, started_at, last_turn_at, ended_at
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		b.ID, b.DisplayNumber, b.AgentAID, b.AgentBID, string(b.Status), string(b.Phase), b.TurnNumber,
		b.PendingMoveA, b.PendingMoveB, b.StateBlob, b.WinnerID, b.TimeoutsA, b.TimeoutsB,
		b.CreatedAt, b.StartedAt, b.LastTurnAt, b.EndedAt,
	)
	if err != nil {
		return clawerr.Internal(fmt.Sprintf("insert battle: %v", err))
	}
	return nil
}

// queryer abstracts over *sql.DB and *sql.Tx for read helpers usable from
// either a plain connection or an in-flight write transaction.
type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// GetBattle reads one battle by id through the queryer interface: a
// *sql.Tx inside a write transaction (*DB does not satisfy queryer).
func GetBattle(ctx context.Context, q queryer, id string) (*Battle, error) {
	row := q.QueryRowContext(ctx, `SELECT `+battleColumns+` FROM battles WHERE id = ?`, id)
	b, err := scanBattle(row)
	if err == sql.ErrNoRows {
		return nil, clawerr.NotFound("battle")
	}
	if err != nil {
		return nil, clawerr.Internal(fmt.Sprintf("get battle: %v", err))
	}
	return b, nil
}

// GetActiveBattleForAgent returns the caller's sole non-terminal battle,
// if any (§6 GET /battles/active).
func GetActiveBattleForAgent(ctx context.Context, db *DB, agentID string) (*Battle, error) {
	row := db.sql.QueryRowContext(ctx, `
		SELECT `+battleColumns+` FROM battles
		WHERE (agent_a_id = ? OR agent_b_id = ?) AND status IN ('pending', 'active')
		LIMIT 1`, agentID, agentID)
	b, err := scanBattle(row)
	if err == sql.ErrNoRows {
		return nil, clawerr.NotFound("active battle")
	}
	if err != nil {
		return nil, clawerr.Internal(fmt.Sprintf("get active battle: %v", err))
	}
	return b, nil
}

// ListStaleWaitingBattles returns battles the scheduler must sweep: phase
// waiting, at least one pending move slot empty, last turn older than the
// turn-timeout cutoff (§4.7 step 1).
func ListStaleWaitingBattles(ctx context.Context, db *DB, cutoff int64) ([]*Battle, error) {
	rows, err := db.sql.QueryContext(ctx, `
		SELECT `+battleColumns+` FROM battles
		WHERE current_phase = 'waiting' AND status = 'active'
		  AND last_turn_at < ? AND (pending_move_a IS NULL OR pending_move_b IS NULL)`,
		cutoff,
	)
	if err != nil {
		return nil, clawerr.Internal(fmt.Sprintf("list stale battles: %v", err))
	}
	defer rows.Close()

	var out []*Battle
	for rows.Next() {
		b, err := scanBattle(rows)
		if err != nil {
			return nil, clawerr.Internal(fmt.Sprintf("scan stale battle: %v", err))
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// UpdateBattle persists the full mutable row after a turn resolves, a
// challenge is accepted, or a battle terminates. Always called inside the
// same transaction as the related state-blob/turn-log write (§4.4).
func UpdateBattle(ctx context.Context, tx *sql.Tx, b *Battle) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE battles SET
			status = ?, current_phase = ?, turn_number = ?,
			pending_move_a = ?, pending_move_b = ?, state_blob = ?,
			winner_id = ?, timeouts_a = ?, timeouts_b = ?,
			started_at = ?, last_turn_at = ?, ended_at = ?
		WHERE id = ?`,
		string(b.Status), string(b.Phase), b.TurnNumber,
		b.PendingMoveA, b.PendingMoveB, b.StateBlob,
		b.WinnerID, b.TimeoutsA, b.TimeoutsB,
		b.StartedAt, b.LastTurnAt, b.EndedAt,
		b.ID,
	)
	if err != nil {
		return clawerr.Internal(fmt.Sprintf("update battle: %v", err))
	}
	return nil
}
