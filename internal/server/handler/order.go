package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/marketdesk/marketdesk/internal/domain"
	"github.com/marketdesk/marketdesk/internal/service"
)

// OrderHandler serves order placement, cancellation, and the my-orders view.
type OrderHandler struct {
	orders *service.OrderService
	md     *service.MarketData
}

// NewOrderHandler creates an OrderHandler.
func NewOrderHandler(orders *service.OrderService, md *service.MarketData) *OrderHandler {
	return &OrderHandler{orders: orders, md: md}
}

// placeOrderRequest is the order-placement body. Price is a decimal string.
type placeOrderRequest struct {
	Price    string `json:"price"`
	Quantity uint64 `json:"quantity"`
	Side     string `json:"side"`
	Type     string `json:"order_type"`
}

// outcomePayload is the classified submission outcome in wire form.
type outcomePayload struct {
	Status       domain.SubmissionStatus `json:"status"`
	Fills        []tradePayload          `json:"fills"`
	TotalFilled  uint64                  `json:"total_filled"`
	AveragePrice decimal.Decimal         `json:"average_price"`
	Message      string                  `json:"message"`
}

// PlaceOrder submits an order and returns the classified outcome. The HTTP
// status is always 200 for a completed classification; the outcome status
// tells the client what happened, including rejection and network error.
// POST /api/orders
func (h *OrderHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req placeOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	price := decimal.Zero
	if req.Price != "" {
		parsed, err := decimal.NewFromString(req.Price)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid price")
			return
		}
		price = parsed
	}

	typ := domain.OrderType(req.Type)
	if req.Type == "" {
		typ = domain.OrderTypeLimit
	}

	outcome := h.orders.Submit(r.Context(), domain.OrderRequest{
		Price:    price,
		Quantity: req.Quantity,
		Side:     domain.Side(req.Side),
		Type:     typ,
	})

	fills := make([]tradePayload, 0, len(outcome.Fills))
	for _, f := range outcome.Fills {
		fills = append(fills, tradePayloadFrom(f))
	}
	writeJSON(w, http.StatusOK, outcomePayload{
		Status:       outcome.Status,
		Fills:        fills,
		TotalFilled:  outcome.TotalFilled,
		AveragePrice: outcome.AveragePrice,
		Message:      outcome.Message,
	})
}

// CancelOrder cancels a resting order.
// DELETE /api/orders/{id}
func (h *OrderHandler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	if err := h.orders.Cancel(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			writeError(w, http.StatusNotFound, "order not found")
			return
		}
		writeError(w, http.StatusBadGateway, "cancel failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"cancelled": true})
}

// orderPayload is one resting order in wire form.
type orderPayload struct {
	ID       uint64           `json:"id"`
	Price    decimal.Decimal  `json:"price"`
	Quantity uint64           `json:"quantity"`
	Side     domain.Side      `json:"side"`
	Type     domain.OrderType `json:"order_type"`
}

// MyOrders returns the user's resting orders from the current snapshot.
// GET /api/orders/my
func (h *OrderHandler) MyOrders(w http.ResponseWriter, r *http.Request) {
	mine := h.md.MyOrders()
	out := make([]orderPayload, 0, len(mine))
	for _, o := range mine {
		out = append(out, orderPayload{
			ID:       o.ID,
			Price:    o.Price,
			Quantity: o.Quantity,
			Side:     o.Side,
			Type:     o.Type,
		})
	}
	writeJSON(w, http.StatusOK, out)
}
