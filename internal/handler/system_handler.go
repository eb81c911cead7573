package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/unclebandit/vakinha-backend/internal/db"
)

// StatsProvider reports campaign counts for /stats.
type StatsProvider interface {
	Stats(ctx context.Context) (map[string]int, error)
}

// SystemHandler serves the endpoints that are not tied to a resource.
type SystemHandler struct {
	DB      db.Pinger
	Stats   StatsProvider
	Version string
	Logger  *slog.Logger
}

func (h *SystemHandler) Root(w http.ResponseWriter, r *http.Request) {
	RespondJSON(w, http.StatusOK, map[string]string{"message": "API is running"})
}

func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	RespondJSON(w, http.StatusOK, map[string]string{"status": "OK", "version": h.Version})
}

// TestDB pings the database and answers 503 when it is unreachable.
func (h *SystemHandler) TestDB(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if err := h.DB.PingContext(ctx); err != nil {
		if h.Logger != nil {
			h.Logger.Error("database ping failed", "error", err)
		}
		RespondJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status":  "error",
			"message": "database unavailable",
		})
		return
	}
	RespondJSON(w, http.StatusOK, map[string]string{
		"status":  "success",
		"message": "database connection OK",
	})
}

func (h *SystemHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Stats.Stats(r.Context())
	if err != nil {
		RespondError(w, h.Logger, err)
		return
	}
	RespondJSON(w, http.StatusOK, stats)
}
