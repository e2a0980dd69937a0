package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

// Pinger is satisfied by *pgxpool.Pool and the in-memory store.
type Pinger interface {
	Ping(ctx context.Context) error
}

type AppInfo struct {
	Name    string
	Version string
	Started time.Time
}

func pingDB(ctx context.Context, db Pinger) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return db.Ping(ctx)
}

func Health(db Pinger, info AppInfo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body := map[string]any{
			"status":      "UP",
			"timestamp":   time.Now().UTC(),
			"application": info.Name,
			"version":     info.Version,
			"database":    "UP",
		}
		if err := pingDB(r.Context(), db); err != nil {
			log.Error().Err(err).Msg("Health check failed to reach the database")
			body["database"] = "DOWN"
			body["database_error"] = err.Error()
			writeJSON(w, http.StatusServiceUnavailable, body)
			return
		}
		writeJSON(w, http.StatusOK, body)
	}
}

func Ready(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body := map[string]any{
			"status":    "READY",
			"timestamp": time.Now().UTC(),
			"database":  "READY",
		}
		if err := pingDB(r.Context(), db); err != nil {
			log.Error().Err(err).Msg("Readiness check failed to reach the database")
			body["status"] = "NOT_READY"
			body["database"] = "NOT_READY"
			body["error"] = err.Error()
			writeJSON(w, http.StatusServiceUnavailable, body)
			return
		}
		writeJSON(w, http.StatusOK, body)
	}
}

func Live(info AppInfo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"status":         "ALIVE",
			"timestamp":      time.Now().UTC(),
			"uptime_seconds": int64(time.Since(info.Started).Seconds()),
		})
	}
}
