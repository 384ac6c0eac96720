package handler

import (
	"net/http"
	"time"

	"github.com/marketdesk/marketdesk/internal/service"
)

// FeedStatus reports when a feed last applied an update. The pollers
// implement it.
type FeedStatus interface {
	LastSuccess() time.Time
}

// HealthHandler reports process liveness and per-feed staleness. A stale
// feed is not an error: the derived views keep showing the last known-good
// state, and the client renders a disconnected indicator.
type HealthHandler struct {
	md          *service.MarketData
	tradePoll   FeedStatus
	balancePoll FeedStatus
	staleAfter  time.Duration
	startedAt   time.Time
}

// NewHealthHandler creates a HealthHandler. staleAfter is how old a feed's
// last update may be before it is reported stale.
func NewHealthHandler(md *service.MarketData, tradePoll, balancePoll FeedStatus, staleAfter time.Duration) *HealthHandler {
	if staleAfter <= 0 {
		staleAfter = 10 * time.Second
	}
	return &HealthHandler{
		md:          md,
		tradePoll:   tradePoll,
		balancePoll: balancePoll,
		staleAfter:  staleAfter,
		startedAt:   time.Now().UTC(),
	}
}

type feedHealth struct {
	LastUpdate string `json:"last_update,omitempty"`
	Stale      bool   `json:"stale"`
}

// HealthCheck reports liveness and feed freshness.
// GET /api/health
func (h *HealthHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"uptime":  now.Sub(h.startedAt).Round(time.Second).String(),
		"book":    h.feedHealth(h.md.LastBookUpdate(), now),
		"trades":  h.feedHealth(h.tradePoll.LastSuccess(), now),
		"balance": h.feedHealth(h.balancePoll.LastSuccess(), now),
	})
}

func (h *HealthHandler) feedHealth(last time.Time, now time.Time) feedHealth {
	if last.IsZero() {
		return feedHealth{Stale: true}
	}
	return feedHealth{
		LastUpdate: last.UTC().Format(time.RFC3339Nano),
		Stale:      now.Sub(last) > h.staleAfter,
	}
}
