package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/MoJuiceX/clawcombat-sub000/internal/clawerr"
)

// AppendTurnLog writes one append-only turn row (§3 Battle turn log),
// inside the same transaction as the battle's UpdateBattle call.
func AppendTurnLog(ctx context.Context, tx *sql.Tx, t *BattleTurn) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO battle_turns (
			battle_id, turn_number, move_a, move_b, events_json, hp_after_a, hp_after_b, created_at
		) VALUES (?,?,?,?,?,?,?,?)`,
		t.BattleID, t.TurnNumber, t.MoveA, t.MoveB, t.EventsJSON, t.HPAfterA, t.HPAfterB, t.CreatedAt,
	)
	if err != nil {
		return clawerr.Internal(fmt.Sprintf("append turn log: %v", err))
	}
	return nil
}

// ListTurnLogs returns every turn row for a battle in order, for the
// §6 GET /battles/{id}/history endpoint.
func ListTurnLogs(ctx context.Context, db *DB, battleID string) ([]*BattleTurn, error) {
	rows, err := db.sql.QueryContext(ctx, `
		SELECT battle_id, turn_number, move_a, move_b, events_json, hp_after_a, hp_after_b, created_at
		FROM battle_turns WHERE battle_id = ? ORDER BY turn_number ASC`, battleID)
	if err != nil {
		return nil, clawerr.Internal(fmt.Sprintf("list turn logs: %v", err))
	}
	defer rows.Close()

	var out []*BattleTurn
	for rows.Next() {
		var t BattleTurn
		if err := rows.Scan(
			&t.BattleID, &t.TurnNumber, &t.MoveA, &t.MoveB, &t.EventsJSON, &t.HPAfterA, &t.HPAfterB, &t.CreatedAt,
		); err != nil {
			return nil, clawerr.Internal(fmt.Sprintf("scan turn log: %v", err))
		}
		out = append(out, &t)
	}
	return out, rows.Err()
}
