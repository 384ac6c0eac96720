package feed

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/marketdesk/marketdesk/internal/domain"
)

// PollFunc fetches one polled payload and applies it. seq is stamped when
// the poll is issued; implementations must apply results through a
// sequence-guarded store so a late-completing older poll is discarded
// instead of clobbering fresher data, and must return domain.ErrStaleUpdate
// when that happens.
type PollFunc func(ctx context.Context, seq uint64) error

// Poller fires a PollFunc at a fixed interval. Overlapping fires are
// collapsed by a single-flight guard: if a poll is still in flight when the
// ticker fires again, the new fire joins the in-flight call instead of
// issuing a second request.
type Poller struct {
	name     string
	interval time.Duration
	poll     PollFunc
	logger   *slog.Logger

	group  singleflight.Group
	seq    atomic.Uint64
	lastOK atomic.Int64 // unix millis of the last applied poll
}

// NewPoller creates a poller named name firing every interval.
func NewPoller(name string, interval time.Duration, poll PollFunc, logger *slog.Logger) *Poller {
	return &Poller{
		name:     name,
		interval: interval,
		poll:     poll,
		logger:   logger.With(slog.String("component", "poller"), slog.String("poll", name)),
	}
}

// Run fires immediately, then on every tick, until ctx is cancelled. Poll
// failures keep the prior state and are surfaced only through LastSuccess.
func (p *Poller) Run(ctx context.Context) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.fire(ctx)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			go p.fire(ctx)
		}
	}
}

// fire runs one poll under the single-flight guard.
func (p *Poller) fire(ctx context.Context) {
	_, err, _ := p.group.Do(p.name, func() (any, error) {
		seq := p.seq.Add(1)
		if err := p.poll(ctx, seq); err != nil {
			return nil, err
		}
		p.lastOK.Store(time.Now().UnixMilli())
		return nil, nil
	})

	switch {
	case err == nil:
	case errors.Is(err, context.Canceled), ctx.Err() != nil:
	case errors.Is(err, domain.ErrStaleUpdate):
		p.logger.Debug("stale poll result discarded")
	default:
		p.logger.Warn("poll failed, keeping previous state", slog.String("error", err.Error()))
	}
}

// LastSuccess returns when the poller last applied a result, or the zero
// time if it never has. Consumers use it as the stale/disconnected signal.
func (p *Poller) LastSuccess() time.Time {
	ms := p.lastOK.Load()
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms)
}
