package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/MoJuiceX/clawcombat-sub000/internal/clawerr"
)

// RankByELO returns an agent's 1-based rank among active agents ordered by
// ELO descending, for the battle_end webhook's enriched context block
// (§4.6).
func RankByELO(ctx context.Context, q queryer, agentID string) (int, error) {
	var rank int
	err := q.QueryRowContext(ctx, `
		SELECT COUNT(*) + 1 FROM agents
		WHERE status = 'active' AND elo > (SELECT elo FROM agents WHERE id = ?)`,
		agentID,
	).Scan(&rank)
	if err != nil {
		return 0, clawerr.Internal(fmt.Sprintf("rank by elo: %v", err))
	}
	return rank, nil
}

// HeadToHead reports, across every terminal battle between two agents
// (including the one just concluding), how many times agentID was the
// winner versus the total number played.
func HeadToHead(ctx context.Context, q queryer, agentID, opponentID string) (wins, played int, err error) {
	row := q.QueryRowContext(ctx, `
		SELECT
			COUNT(*) FILTER (WHERE winner_id = ?),
			COUNT(*)
		FROM battles
		WHERE ((agent_a_id = ? AND agent_b_id = ?) OR (agent_a_id = ? AND agent_b_id = ?))
		  AND status IN ('finished', 'forfeited', 'timeout')`,
		agentID, agentID, opponentID, opponentID, agentID,
	)
	if err := row.Scan(&wins, &played); err != nil {
		return 0, 0, clawerr.Internal(fmt.Sprintf("head to head: %v", err))
	}
	return wins, played, nil
}

// PreviousResultAgainst reports whether agentID's most recent terminal
// battle against opponentID, strictly before currentBattleID, was a loss —
// used to flag a `revenge_win` milestone when the current battle flips
// that result.
func PreviousResultAgainst(ctx context.Context, q queryer, agentID, opponentID, currentBattleID string) (lostLastTime bool, hadPrevious bool, err error) {
	var winnerID sql.NullString
	row := q.QueryRowContext(ctx, `
		SELECT winner_id FROM battles
		WHERE ((agent_a_id = ? AND agent_b_id = ?) OR (agent_a_id = ? AND agent_b_id = ?))
		  AND status IN ('finished', 'forfeited', 'timeout')
		  AND id != ?
		ORDER BY ended_at DESC
		LIMIT 1`,
		agentID, opponentID, opponentID, agentID, currentBattleID,
	)
	if err := row.Scan(&winnerID); err == sql.ErrNoRows {
		return false, false, nil
	} else if err != nil {
		return false, false, clawerr.Internal(fmt.Sprintf("previous result against: %v", err))
	}
	return winnerID.Valid && winnerID.String != agentID, true, nil
}
