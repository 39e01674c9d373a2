package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/MoJuiceX/clawcombat-sub000/internal/clawerr"
)

// IssueSocialToken writes a new, unconsumed social token (§3 Social
// token), minted for each side when a battle ends. No HTTP route of this
// server reads or consumes it; GetSocialToken and ConsumeSocialToken are
// the store-level accessors.
func IssueSocialToken(ctx context.Context, tx *sql.Tx, t *SocialToken) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO social_tokens (token, agent_id, battle_id, expires_at, consumed)
		VALUES (?, ?, ?, ?, 0)`,
		t.Token, t.AgentID, t.BattleID, t.ExpiresAt,
	)
	if err != nil {
		return clawerr.Internal(fmt.Sprintf("issue social token: %v", err))
	}
	return nil
}

// GetSocialToken reads a token row without consuming it.
func GetSocialToken(ctx context.Context, db *DB, token string) (*SocialToken, error) {
	var t SocialToken
	var consumed int
	err := db.sql.QueryRowContext(ctx, `
		SELECT token, agent_id, battle_id, expires_at, consumed
		FROM social_tokens WHERE token = ?`, token,
	).Scan(&t.Token, &t.AgentID, &t.BattleID, &t.ExpiresAt, &consumed)
	if err == sql.ErrNoRows {
		return nil, clawerr.NotFound("social token")
	}
	if err != nil {
		return nil, clawerr.Internal(fmt.Sprintf("get social token: %v", err))
	}
	t.Consumed = consumed != 0
	return &t, nil
}

// ConsumeSocialToken marks a token consumed exactly once, returning
// clawerr.Conflict if it was already spent. Single-use tokens prevent a
// shared link from being replayed indefinitely past its first render.
func ConsumeSocialToken(ctx context.Context, tx *sql.Tx, token string) error {
	res, err := tx.ExecContext(ctx, `
		UPDATE social_tokens SET consumed = 1 WHERE token = ? AND consumed = 0`, token)
	if err != nil {
		return clawerr.Internal(fmt.Sprintf("consume social token: %v", err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return clawerr.Internal(fmt.Sprintf("consume social token rows affected: %v", err))
	}
	if n == 0 {
		return clawerr.Conflict("social token already consumed")
	}
	return nil
}
