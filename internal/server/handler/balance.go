package handler

import (
	"net/http"

	"github.com/marketdesk/marketdesk/internal/service"
)

// BalanceHandler serves the latest polled balances.
type BalanceHandler struct {
	md *service.MarketData
}

// NewBalanceHandler creates a BalanceHandler.
func NewBalanceHandler(md *service.MarketData) *BalanceHandler {
	return &BalanceHandler{md: md}
}

// GetBalances returns the per-asset balances.
// GET /api/balance
func (h *BalanceHandler) GetBalances(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, service.BalancesPayloadFrom(h.md.Balances()))
}
