package exchange

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/marketdesk/marketdesk/internal/domain"
)

const (
	// writeWait is the time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// pongWait is the time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// pingPeriod sends pings to the peer at this interval. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10
)

// SnapshotHandler is called for every full order-book snapshot pushed by the
// exchange.
type SnapshotHandler func(domain.OrderBookSnapshot)

// WSClient is a WebSocket client for the exchange's book feed. The feed is
// one-directional: every message is a complete snapshot. Messages that fail
// to parse are dropped silently and the previous snapshot stays in effect.
//
// A WSClient owns exactly one connection. When the connection dies the read
// loop terminates and the error is delivered on Wait; reconnection and
// snapshot-state handling across connections belong to the caller.
type WSClient struct {
	wsURL string

	mu     sync.RWMutex
	conn   *websocket.Conn
	closed bool

	handlerMu        sync.RWMutex
	snapshotHandlers []SnapshotHandler

	closeOnce sync.Once
	done      chan struct{}
	readErr   chan error
}

// NewWSClient creates a client for the given book-feed endpoint,
// e.g. "ws://localhost:8000/ws".
func NewWSClient(wsURL string) *WSClient {
	return &WSClient{
		wsURL:   wsURL,
		done:    make(chan struct{}),
		readErr: make(chan error, 1),
	}
}

// OnSnapshot registers a handler invoked for every parsed snapshot. Handlers
// must be registered before Connect.
func (w *WSClient) OnSnapshot(handler SnapshotHandler) {
	w.handlerMu.Lock()
	defer w.handlerMu.Unlock()
	w.snapshotHandlers = append(w.snapshotHandlers, handler)
}

// Connect dials the exchange and starts the read and ping loops.
func (w *WSClient) Connect(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return fmt.Errorf("exchange/ws: %w", domain.ErrWSDisconnect)
	}

	dialer := websocket.Dialer{
		HandshakeTimeout: 15 * time.Second,
	}

	conn, _, err := dialer.DialContext(ctx, w.wsURL, nil)
	if err != nil {
		return fmt.Errorf("exchange/ws: connect: %w", err)
	}

	w.conn = conn
	w.conn.SetReadDeadline(time.Now().Add(pongWait))
	w.conn.SetPongHandler(func(string) error {
		w.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	go w.readLoop(conn)
	go w.pingLoop(conn)

	return nil
}

// Wait returns a channel that receives the terminal read error once the
// connection is lost. Nothing is delivered on a clean Close.
func (w *WSClient) Wait() <-chan error {
	return w.readErr
}

// Close shuts down the connection and stops the loops. Safe to call more
// than once.
func (w *WSClient) Close() error {
	var err error
	w.closeOnce.Do(func() {
		w.mu.Lock()
		defer w.mu.Unlock()
		w.closed = true
		close(w.done)

		if w.conn != nil {
			_ = w.conn.WriteMessage(
				websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			)
			err = w.conn.Close()
		}
	})
	return err
}

// readLoop reads snapshots until the connection fails or the client closes.
func (w *WSClient) readLoop(conn *websocket.Conn) {
	for {
		select {
		case <-w.done:
			return
		default:
		}

		_, message, err := conn.ReadMessage()
		if err != nil {
			select {
			case <-w.done:
			case w.readErr <- fmt.Errorf("exchange/ws: read: %w", err):
			default:
			}
			return
		}

		w.handleMessage(message)
	}
}

// pingLoop keeps the connection alive.
func (w *WSClient) pingLoop(conn *websocket.Conn) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-w.done:
			return
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// handleMessage parses one pushed snapshot and dispatches it. Malformed
// payloads are dropped; the previous snapshot is retained upstream.
func (w *WSClient) handleMessage(raw []byte) {
	snap, err := ParseSnapshot(raw)
	if err != nil {
		return
	}

	w.handlerMu.RLock()
	handlers := w.snapshotHandlers
	w.handlerMu.RUnlock()

	for _, h := range handlers {
		h(snap)
	}
}
