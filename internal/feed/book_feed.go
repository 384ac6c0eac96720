// Package feed drives the two recurring update sources: the pushed book
// feed over WebSocket and the fixed-interval pollers for trade history and
// balances.
package feed

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/marketdesk/marketdesk/internal/domain"
	"github.com/marketdesk/marketdesk/internal/platform/exchange"
)

// reconnectDelay is the pause between reconnection attempts.
const reconnectDelay = 2 * time.Second

// SnapshotSink receives each parsed book snapshot.
type SnapshotSink func(ctx context.Context, snap domain.OrderBookSnapshot)

// BookFeed maintains the WebSocket connection to the exchange's book feed
// and routes every snapshot into the sink. It reconnects on disconnect.
// Snapshots are total, so a fresh connection naturally supersedes anything
// received on the previous one; nothing is merged across connections.
type BookFeed struct {
	wsURL     string
	sink      SnapshotSink
	logger    *slog.Logger
	closeOnce sync.Once
	done      chan struct{}
}

// NewBookFeed creates a feed delivering snapshots to sink.
func NewBookFeed(wsURL string, sink SnapshotSink, logger *slog.Logger) *BookFeed {
	return &BookFeed{
		wsURL:  wsURL,
		sink:   sink,
		logger: logger.With(slog.String("component", "book_feed")),
		done:   make(chan struct{}),
	}
}

// Run connects and delivers snapshots until ctx is cancelled or Close is
// called. A snapshot arriving after cancellation is discarded, not applied.
func (f *BookFeed) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-f.done:
			return nil
		default:
		}

		err := f.runConnection(ctx)
		if err == nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		f.logger.Warn("book feed disconnected, reconnecting", slog.String("error", err.Error()))
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-f.done:
			return nil
		case <-time.After(reconnectDelay):
		}
	}
}

func (f *BookFeed) runConnection(ctx context.Context) error {
	client := exchange.NewWSClient(f.wsURL)
	defer client.Close()

	client.OnSnapshot(func(snap domain.OrderBookSnapshot) {
		if ctx.Err() != nil {
			return
		}
		f.sink(ctx, snap)
	})

	if err := client.Connect(ctx); err != nil {
		return err
	}
	f.logger.Info("book feed connected", slog.String("url", f.wsURL))

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-f.done:
		return nil
	case err := <-client.Wait():
		return err
	}
}

// Close stops the feed and closes the underlying connection.
func (f *BookFeed) Close() {
	f.closeOnce.Do(func() { close(f.done) })
}
