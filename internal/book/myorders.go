package book

import (
	"sort"

	"github.com/google/uuid"

	"github.com/marketdesk/marketdesk/internal/domain"
)

// OwnerOrders filters a snapshot down to the orders carrying the given owner
// tag, sorted by order ID. It is re-derived from the current snapshot on
// every call rather than maintained as separate state, so it can never
// diverge from the book view.
func OwnerOrders(snap domain.OrderBookSnapshot, owner uuid.UUID) []domain.Order {
	var out []domain.Order
	for _, side := range [][]domain.PriceLevel{snap.Bids, snap.Asks} {
		for _, level := range side {
			for _, o := range level.Orders {
				if o.OwnedBy(owner) {
					out = append(out, o)
				}
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
