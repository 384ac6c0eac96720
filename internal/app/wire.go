package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/marketdesk/marketdesk/internal/account"
	"github.com/marketdesk/marketdesk/internal/book"
	"github.com/marketdesk/marketdesk/internal/cache/redis"
	"github.com/marketdesk/marketdesk/internal/config"
	"github.com/marketdesk/marketdesk/internal/domain"
	"github.com/marketdesk/marketdesk/internal/feed"
	"github.com/marketdesk/marketdesk/internal/platform/exchange"
	"github.com/marketdesk/marketdesk/internal/server"
	"github.com/marketdesk/marketdesk/internal/server/handler"
	"github.com/marketdesk/marketdesk/internal/server/ws"
	"github.com/marketdesk/marketdesk/internal/service"
	"github.com/marketdesk/marketdesk/internal/trades"
)

// Dependencies bundles the long-running components that Run supervises.
// It is constructed by Wire and torn down by the returned cleanup function.
type Dependencies struct {
	Hub           *ws.Hub
	BookFeed      *feed.BookFeed
	TradePoller   *feed.Poller
	BalancePoller *feed.Poller
	Server        *server.Server
}

// Wire constructs all concrete dependency implementations from the given
// configuration and returns them together with a cleanup function that should
// be called on shutdown to release resources.
func Wire(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Dependencies, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	// --- Upstream exchange client ---
	client := exchange.NewClient(cfg.Exchange.BaseURL, cfg.Exchange.RequestTimeout.Duration)

	// --- View stores ---
	books := book.NewStore()
	tradeFeed := trades.NewFeed()
	balances := account.NewStore()

	// --- Fan-out: in-process WebSocket hub, plus Redis when enabled ---
	hub := ws.NewHub(logger)
	publishers := []domain.Publisher{hub}

	if cfg.Redis.Enabled {
		redisClient, err := redis.New(ctx, redis.ClientConfig{
			Addr:       cfg.Redis.Addr,
			Password:   cfg.Redis.Password,
			DB:         cfg.Redis.DB,
			PoolSize:   cfg.Redis.PoolSize,
			MaxRetries: cfg.Redis.MaxRetries,
			TLSEnabled: cfg.Redis.TLSEnabled,
		})
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("wire: redis: %w", err)
		}
		closers = append(closers, func() { _ = redisClient.Close() })
		publishers = append(publishers, redis.NewSignalBus(redisClient))
	}

	// --- Services ---
	owner := uuid.Nil
	if cfg.User.ID != "" {
		parsed, err := cfg.User.UserID()
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("wire: user id: %w", err)
		}
		owner = parsed
	}

	md := service.NewMarketData(books, tradeFeed, balances, service.MarketDataConfig{
		Owner:          owner,
		DepthLevels:    cfg.Feed.DepthLevels,
		CandleInterval: cfg.Feed.CandleInterval.Duration,
	}, publishers, logger)

	orders := service.NewOrderService(client, logger)

	// --- Feed drivers ---
	bookFeed := feed.NewBookFeed(cfg.Exchange.WsURL, md.HandleSnapshot, logger)
	closers = append(closers, bookFeed.Close)

	tradePoller := feed.NewPoller("trades", cfg.Feed.TradePollInterval.Duration,
		func(ctx context.Context, seq uint64) error {
			list, err := client.Trades(ctx)
			if err != nil {
				return err
			}
			return md.ApplyTrades(ctx, seq, list)
		}, logger)

	balancePoller := feed.NewPoller("balance", cfg.Feed.BalancePollInterval.Duration,
		func(ctx context.Context, seq uint64) error {
			bals, err := client.Balances(ctx)
			if err != nil {
				return err
			}
			return md.ApplyBalances(ctx, seq, bals)
		}, logger)

	// --- HTTP server ---
	srv := server.NewServer(server.Config{
		Port:        cfg.Server.Port,
		CORSOrigins: cfg.Server.CORSOrigins,
	}, server.Handlers{
		Health:  handler.NewHealthHandler(md, tradePoller, balancePoller, 0),
		Market:  handler.NewMarketHandler(md),
		Orders:  handler.NewOrderHandler(orders, md),
		Balance: handler.NewBalanceHandler(md),
	}, hub, logger)

	return &Dependencies{
		Hub:           hub,
		BookFeed:      bookFeed,
		TradePoller:   tradePoller,
		BalancePoller: balancePoller,
		Server:        srv,
	}, cleanup, nil
}
