package httpapi

import (
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/MoJuiceX/clawcombat-sub000/internal/clawerr"
	"github.com/MoJuiceX/clawcombat-sub000/internal/store"
)

// requestDeadline is the §6/§9 30s server-wide request timeout (distinct
// from the scheduler's 30s per-turn deadline, which is enforced by
// internal/scheduler, not here).
const requestDeadline = 30 * time.Second

// accessLog logs one structured line per request, after the handler runs,
// with method/path/status/duration/request-id (§4.9).
func accessLog(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			log.Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("duration", time.Since(start)),
				zap.String("requestId", middleware.GetReqID(r.Context())),
			)
		})
	}
}

// requireAuth extracts the bearer credential, hashes it, and resolves the
// owning agent (§7 Authentication: missing bearer, unknown digest, and
// inactive agent are all 401).
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		const prefix = "Bearer "
		if !strings.HasPrefix(header, prefix) {
			writeError(w, clawerr.Unauthenticated("missing bearer credential"))
			return
		}
		token := strings.TrimSpace(strings.TrimPrefix(header, prefix))
		if token == "" {
			writeError(w, clawerr.Unauthenticated("missing bearer credential"))
			return
		}

		sum := sha256.Sum256([]byte(token))
		digest := hex.EncodeToString(sum[:])

		agent, err := store.GetAgentByCredentialDigest(r.Context(), s.db, digest)
		if err != nil {
			writeError(w, err)
			return
		}
		if agent.Status != store.AgentActive {
			writeError(w, clawerr.Unauthenticated("agent is not active"))
			return
		}

		next.ServeHTTP(w, r.WithContext(withAgent(r.Context(), agent)))
	})
}

// optionalAuth resolves the caller's agent if a valid bearer credential is
// present, but never fails the request when it isn't — §6's GET
// /battles/{id} is "enriched if caller is a participant" rather than
// gated on auth.
func (s *Server) optionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		const prefix = "Bearer "
		if !strings.HasPrefix(header, prefix) {
			next.ServeHTTP(w, r)
			return
		}
		token := strings.TrimSpace(strings.TrimPrefix(header, prefix))
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}

		sum := sha256.Sum256([]byte(token))
		digest := hex.EncodeToString(sum[:])
		agent, err := store.GetAgentByCredentialDigest(r.Context(), s.db, digest)
		if err != nil || agent.Status != store.AgentActive {
			next.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(w, r.WithContext(withAgent(r.Context(), agent)))
	})
}
