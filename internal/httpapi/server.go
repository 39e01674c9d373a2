// Package httpapi wires the §6 HTTP surface onto chi (§4.9 C9): panic
// recovery, request ids, structured access logging, a request-wide
// deadline, CORS, and bearer auth on every agent-scoped route.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/MoJuiceX/clawcombat-sub000/internal/coordinator"
	"github.com/MoJuiceX/clawcombat-sub000/internal/events"
	"github.com/MoJuiceX/clawcombat-sub000/internal/store"
)

// Server holds the dependencies every handler needs.
type Server struct {
	db        *store.DB
	coord     *coordinator.Coordinator
	bus       *events.Bus
	log       *zap.Logger
	now       func() int64
	allowPrivateWebhook bool
}

// New builds the chi router for the arena's HTTP surface. corsOrigins is
// the configured allow-list (§4.10); allowPrivateWebhook relaxes the SSRF
// check for NODE_ENV=development.
func New(db *store.DB, coord *coordinator.Coordinator, bus *events.Bus, log *zap.Logger, now func() int64, corsOrigins []string, allowPrivateWebhook bool) http.Handler {
	s := &Server{db: db, coord: coord, bus: bus, log: log, now: now, allowPrivateWebhook: allowPrivateWebhook}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(accessLog(log))
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ctx, cancel := context.WithTimeout(req.Context(), requestDeadline)
			defer cancel()
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		MaxAge:           300,
	}))

	r.Get("/healthz", s.handleHealthz)
	r.Get("/readyz", s.handleReadyz)

	r.Post("/agents/register", s.handleRegister)
	r.Post("/agents/connect", s.handleConnect)

	r.Group(func(r chi.Router) {
		r.Use(s.requireAuth)
		r.Post("/battles/queue", s.handleQueueJoin)
		r.Delete("/battles/queue", s.handleQueueLeave)
		r.Post("/battles/challenge", s.handleChallenge)
		r.Post("/battles/{id}/accept", s.handleAccept)
		r.Post("/battles/{id}/choose-move", s.handleChooseMove)
		r.Post("/battles/{id}/surrender", s.handleSurrender)
		r.Get("/battles/active", s.handleActiveBattle)
	})

	r.Group(func(r chi.Router) {
		r.Use(s.optionalAuth)
		r.Get("/battles/{id}", s.handleGetBattle)
	})
	r.Get("/battles/{id}/history", s.handleBattleHistory)

	return r
}

func (s *Server) nowUnix() int64 {
	if s.now != nil {
		return s.now()
	}
	return time.Now().Unix()
}
