// Package server exposes the derived market-data views and the order
// operations over HTTP and WebSocket for the presentation layer.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/marketdesk/marketdesk/internal/server/handler"
	"github.com/marketdesk/marketdesk/internal/server/middleware"
	"github.com/marketdesk/marketdesk/internal/server/ws"
)

// Config holds the HTTP server configuration.
type Config struct {
	Port        int
	CORSOrigins []string
}

// Handlers aggregates all HTTP handlers the server registers.
type Handlers struct {
	Health  *handler.HealthHandler
	Market  *handler.MarketHandler
	Orders  *handler.OrderHandler
	Balance *handler.BalanceHandler
}

// Server is the HTTP + WebSocket API server for marketdesk.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

// NewServer creates a Server with all routes registered and the middleware
// chain (logging, CORS) applied.
func NewServer(cfg Config, handlers Handlers, wsHub *ws.Hub, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/health", handlers.Health.HealthCheck)

	mux.HandleFunc("GET /api/depth", handlers.Market.GetDepth)
	mux.HandleFunc("GET /api/stats", handlers.Market.GetStats)
	mux.HandleFunc("GET /api/candles", handlers.Market.GetCandles)
	mux.HandleFunc("GET /api/trades", handlers.Market.GetTrades)

	mux.HandleFunc("POST /api/orders", handlers.Orders.PlaceOrder)
	mux.HandleFunc("DELETE /api/orders/{id}", handlers.Orders.CancelOrder)
	mux.HandleFunc("GET /api/orders/my", handlers.Orders.MyOrders)

	mux.HandleFunc("GET /api/balance", handlers.Balance.GetBalances)

	if wsHub != nil {
		mux.HandleFunc("GET /ws", wsHub.HandleWS)
	}

	var h http.Handler = mux
	h = middleware.CORS(cfg.CORSOrigins)(h)
	h = middleware.Logging(logger)(h)

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           h,
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: logger.With(slog.String("component", "server")),
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", slog.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server: shutdown: %w", err)
		}
		return ctx.Err()
	case err := <-errCh:
		return fmt.Errorf("server: listen: %w", err)
	}
}
