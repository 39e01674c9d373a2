// Package logging builds the process-wide zap logger (§4.11 C11): JSON
// encoding in production, a human-readable console encoder in
// development, with request- and component-scoped children carrying a
// request id, calling agent id, or background-loop name.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the root logger for the given NODE_ENV value. Anything other
// than "development" gets the production (JSON) encoder — the arena's
// deployment default.
func New(nodeEnv string) (*zap.Logger, error) {
	if nodeEnv == "development" {
		cfg := zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		return cfg.Build()
	}
	return zap.NewProduction()
}

// ForRequest returns a child logger carrying the request id, and the
// calling agent id once authentication has resolved one (empty string
// before then).
func ForRequest(base *zap.Logger, requestID, agentID string) *zap.Logger {
	fields := []zap.Field{zap.String("requestId", requestID)}
	if agentID != "" {
		fields = append(fields, zap.String("agentId", agentID))
	}
	return base.With(fields...)
}

// ForComponent returns a child logger named for a background loop
// (scheduler, webhook dispatcher) so a single log stream can be filtered
// per subsystem.
func ForComponent(base *zap.Logger, component string) *zap.Logger {
	return base.With(zap.String("component", component))
}

// WarnLogger adapts a *zap.Logger to the small Warn(msg, fields...) sink
// internal/webhook and internal/scheduler each declare independently.
// fields is a flat key/value sequence (zap's SugaredLogger convention),
// not zap.Field values.
type WarnLogger struct {
	Zap *zap.Logger
}

// Warn implements the webhook.Logger and scheduler.Logger interfaces.
func (w WarnLogger) Warn(msg string, fields ...any) {
	w.Zap.Sugar().Warnw(msg, fields...)
}
