package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/marketdesk/marketdesk/internal/domain"
)

// OrderClient is the slice of the exchange client the order service needs.
type OrderClient interface {
	PlaceOrder(ctx context.Context, req domain.OrderRequest) ([]domain.Trade, error)
	CancelOrder(ctx context.Context, orderID uint64) error
}

// OrderService submits and cancels orders and classifies submission
// outcomes for display. The classification is advisory only; the
// authoritative fill state is the book snapshot received independently over
// the push feed.
type OrderService struct {
	client OrderClient
	logger *slog.Logger
}

// NewOrderService creates an OrderService over the given client.
func NewOrderService(client OrderClient, logger *slog.Logger) *OrderService {
	return &OrderService{
		client: client,
		logger: logger.With(slog.String("component", "order_service")),
	}
}

// Submit validates and submits an order and classifies what happened to it.
// A validation or engine rejection yields a Rejected outcome with the form
// state preserved for retry; a request that never completed yields
// NetworkError so the user knows the order's fate is unknown.
func (s *OrderService) Submit(ctx context.Context, req domain.OrderRequest) domain.SubmissionOutcome {
	if err := validateRequest(req); err != nil {
		return domain.SubmissionOutcome{
			Status:  domain.SubmissionRejected,
			Message: err.Error(),
		}
	}

	fills, err := s.client.PlaceOrder(ctx, req)
	if err != nil {
		if errors.Is(err, domain.ErrSubmissionRejected) {
			s.logger.InfoContext(ctx, "order rejected",
				slog.String("side", string(req.Side)),
				slog.String("price", req.Price.String()),
				slog.Uint64("quantity", req.Quantity),
			)
			return domain.SubmissionOutcome{
				Status:  domain.SubmissionRejected,
				Message: "order rejected by the exchange",
			}
		}
		s.logger.WarnContext(ctx, "order submission failed in transit",
			slog.String("error", err.Error()),
		)
		return domain.SubmissionOutcome{
			Status:  domain.SubmissionNetworkError,
			Message: "request did not complete; the order's fate is unknown",
		}
	}

	outcome := Classify(req.Quantity, fills)
	s.logger.InfoContext(ctx, "order submitted",
		slog.String("status", string(outcome.Status)),
		slog.Uint64("requested", req.Quantity),
		slog.Uint64("filled", outcome.TotalFilled),
	)
	return outcome
}

// Cancel cancels a resting order by ID.
func (s *OrderService) Cancel(ctx context.Context, orderID uint64) error {
	if err := s.client.CancelOrder(ctx, orderID); err != nil {
		return fmt.Errorf("order_service: cancel %d: %w", orderID, err)
	}
	s.logger.InfoContext(ctx, "order cancelled", slog.Uint64("order_id", orderID))
	return nil
}

// Classify maps the fills produced by an accepted submission to an outcome.
// No fills means the order rests on the book; filling at least the requested
// quantity is a full fill; anything in between is partial. For fills, the
// average execution price is fill-weighted.
func Classify(requested uint64, fills []domain.Trade) domain.SubmissionOutcome {
	var total uint64
	notional := decimal.Zero
	for _, f := range fills {
		total += f.Quantity
		notional = notional.Add(f.Notional())
	}

	if len(fills) == 0 {
		return domain.SubmissionOutcome{
			Status:  domain.SubmissionResting,
			Message: "order accepted and resting on the book",
		}
	}

	avg := notional.Div(decimal.NewFromUint64(total))
	if total >= requested {
		return domain.SubmissionOutcome{
			Status:       domain.SubmissionFullFill,
			Fills:        fills,
			TotalFilled:  total,
			AveragePrice: avg,
			Message:      fmt.Sprintf("filled %d at average %s", total, avg),
		}
	}
	return domain.SubmissionOutcome{
		Status:       domain.SubmissionPartialFill,
		Fills:        fills,
		TotalFilled:  total,
		AveragePrice: avg,
		Message:      fmt.Sprintf("filled %d of %d at average %s, remainder resting", total, requested, avg),
	}
}

func validateRequest(req domain.OrderRequest) error {
	if !req.Side.Valid() {
		return fmt.Errorf("%w: side %q", domain.ErrInvalidOrderRequest, req.Side)
	}
	if req.Quantity == 0 {
		return fmt.Errorf("%w: quantity must be positive", domain.ErrInvalidOrderRequest)
	}
	if req.Type != domain.OrderTypeMarket && !req.Price.IsPositive() {
		return fmt.Errorf("%w: price must be positive", domain.ErrInvalidOrderRequest)
	}
	return nil
}
