package httpapi

import (
	"context"

	"github.com/MoJuiceX/clawcombat-sub000/internal/store"
)

type contextKey int

const agentContextKey contextKey = iota

func withAgent(ctx context.Context, a *store.Agent) context.Context {
	return context.WithValue(ctx, agentContextKey, a)
}

// callerAgent returns the authenticated agent set by requireAuth, or nil
// on routes that don't require it.
func callerAgent(ctx context.Context) *store.Agent {
	a, _ := ctx.Value(agentContextKey).(*store.Agent)
	return a
}
