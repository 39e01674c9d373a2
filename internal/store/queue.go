package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/MoJuiceX/clawcombat-sub000/internal/clawerr"
)

// JoinQueue inserts a queue entry for an agent, or is a no-op if the agent
// is already queued (§6 POST /battles/queue is idempotent per invariant 2).
func JoinQueue(ctx context.Context, tx *sql.Tx, agentID string, joinedAt int64) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO queue (agent_id, joined_at) VALUES (?, ?)
		ON CONFLICT(agent_id) DO NOTHING`, agentID, joinedAt)
	if err != nil {
		return clawerr.Internal(fmt.Sprintf("join queue: %v", err))
	}
	return nil
}

// LeaveQueue removes an agent's queue entry, if present.
func LeaveQueue(ctx context.Context, tx *sql.Tx, agentID string) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM queue WHERE agent_id = ?`, agentID); err != nil {
		return clawerr.Internal(fmt.Sprintf("leave queue: %v", err))
	}
	return nil
}

// ListQueue returns every queued agent joined with its current rating and
// level, ordered by join time, for the matchmaker's pairing scan (§4.5).
func ListQueue(ctx context.Context, tx *sql.Tx) ([]*QueueEntry, error) {
	rows, err := tx.QueryContext(ctx, `
		SELECT q.agent_id, q.joined_at, a.elo, a.level
		FROM queue q JOIN agents a ON a.id = q.agent_id
		ORDER BY q.joined_at ASC`)
	if err != nil {
		return nil, clawerr.Internal(fmt.Sprintf("list queue: %v", err))
	}
	defer rows.Close()

	var out []*QueueEntry
	for rows.Next() {
		var e QueueEntry
		if err := rows.Scan(&e.AgentID, &e.JoinedAt, &e.ELO, &e.Level); err != nil {
			return nil, clawerr.Internal(fmt.Sprintf("scan queue entry: %v", err))
		}
		out = append(out, &e)
	}
	return out, rows.Err()
}

// DeleteQueueEntries removes a batch of agents from the queue at once,
// used by the matchmaker to retire both sides of a just-formed pair in
// the same transaction that inserts the new battle.
func DeleteQueueEntries(ctx context.Context, tx *sql.Tx, agentIDs ...string) error {
	for _, id := range agentIDs {
		if err := LeaveQueue(ctx, tx, id); err != nil {
			return err
		}
	}
	return nil
}

// IsQueued reports whether an agent currently has a queue entry.
func IsQueued(ctx context.Context, db *DB, agentID string) (bool, error) {
	var n int
	err := db.sql.QueryRowContext(ctx, `SELECT COUNT(*) FROM queue WHERE agent_id = ?`, agentID).Scan(&n)
	if err != nil {
		return false, clawerr.Internal(fmt.Sprintf("check queue membership: %v", err))
	}
	return n > 0, nil
}
