// Package config reads the arena's environment-driven startup
// configuration (§4.10): listen port, store path, CORS origins, the
// development/production gate, and the two scheduler timing overrides.
// An unset value takes its default; a set but malformed value is a
// startup failure (§6: exit code 1), so Load returns an error rather than
// silently defaulting to something unsafe.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds every environment-derived setting the server needs at
// startup. Nothing here is mutated after Load returns.
type Config struct {
	Port          int
	DBPath        string
	CORSOrigins   []string
	NodeEnv       string
	TurnTimeout   time.Duration
	SchedulerTick time.Duration
}

// IsDevelopment reports whether NODE_ENV gates the SSRF private-host
// relaxation (§4.10).
func (c Config) IsDevelopment() bool {
	return c.NodeEnv == "development"
}

const (
	defaultPort          = 8080
	defaultDBPath        = "./clawcombat.db"
	defaultCORSOrigins   = "*"
	defaultNodeEnv       = "production"
	defaultTurnTimeout   = 30 * time.Second
	defaultSchedulerTick = 10 * time.Second
)

// Load reads the process environment into a Config, applying the §4.10
// defaults for anything unset and failing on anything set but malformed.
func Load() (Config, error) {
	cfg := Config{
		Port:          defaultPort,
		DBPath:        defaultDBPath,
		CORSOrigins:   []string{defaultCORSOrigins},
		NodeEnv:       defaultNodeEnv,
		TurnTimeout:   defaultTurnTimeout,
		SchedulerTick: defaultSchedulerTick,
	}

	if v, ok := os.LookupEnv("PORT"); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil || port <= 0 || port > 65535 {
			return Config{}, fmt.Errorf("config: PORT must be a port number, got %q", v)
		}
		cfg.Port = port
	}

	if v, ok := os.LookupEnv("CLAWCOMBAT_DB_PATH"); ok && v != "" {
		cfg.DBPath = v
	}

	if v, ok := os.LookupEnv("CLAWCOMBAT_CORS_ORIGINS"); ok && v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			o = strings.TrimSpace(o)
			if o == "" {
				return Config{}, fmt.Errorf("config: CLAWCOMBAT_CORS_ORIGINS contains an empty entry")
			}
			origins = append(origins, o)
		}
		cfg.CORSOrigins = origins
	}

	if v, ok := os.LookupEnv("NODE_ENV"); ok && v != "" {
		switch v {
		case "development", "production", "test":
			cfg.NodeEnv = v
		default:
			return Config{}, fmt.Errorf("config: NODE_ENV must be development, production, or test, got %q", v)
		}
	}

	if v, ok := os.LookupEnv("CLAWCOMBAT_TURN_TIMEOUT"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return Config{}, fmt.Errorf("config: CLAWCOMBAT_TURN_TIMEOUT must be a positive duration, got %q", v)
		}
		cfg.TurnTimeout = d
	}

	if v, ok := os.LookupEnv("CLAWCOMBAT_SCHEDULER_TICK"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return Config{}, fmt.Errorf("config: CLAWCOMBAT_SCHEDULER_TICK must be a positive duration, got %q", v)
		}
		cfg.SchedulerTick = d
	}

	return cfg, nil
}
