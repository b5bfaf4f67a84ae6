// Package feed subscribes to scan change notifications from Postgres and
// applies them to the reconciliation cache. A trigger on the scans table
// publishes the changed row as JSON over LISTEN/NOTIFY, so the cache
// converges on store state without polling.
package feed

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/mikeangelocasono/BitterScan-Dashboard-sub001/internal/cache"
	"github.com/mikeangelocasono/BitterScan-Dashboard-sub001/internal/scans"
	"github.com/mikeangelocasono/BitterScan-Dashboard-sub001/pkg/lifecycle"
)

// Listener maintains a dedicated Postgres connection subscribed to the
// scan change channel. Listen/notify requires a session-scoped
// connection, so the listener connects natively rather than borrowing
// from the pooled database handle.
type Listener struct {
	url       string
	channel   string
	reconnect time.Duration
	cache     *cache.Cache
	logger    *slog.Logger
}

// NewListener creates a Listener over the given connection URL and cache.
func NewListener(url string, cfg *Config, c *cache.Cache, logger *slog.Logger) *Listener {
	return &Listener{
		url:       url,
		channel:   cfg.Channel,
		reconnect: cfg.ReconnectDelayDuration(),
		cache:     c,
		logger:    logger.With("system", "feed"),
	}
}

// Start registers the listen loop with the lifecycle coordinator. The
// loop reconnects with a fixed delay whenever the connection drops and
// exits on shutdown.
func (l *Listener) Start(lc *lifecycle.Coordinator) {
	l.logger.Info("starting change feed", "channel", l.channel)

	lc.OnShutdown(func() {
		ctx := lc.Context()
		for {
			if err := l.listen(ctx); err != nil && ctx.Err() == nil {
				l.logger.Error("change feed disconnected", "error", err)
			}

			select {
			case <-ctx.Done():
				l.logger.Info("change feed stopped")
				return
			case <-time.After(l.reconnect):
			}
		}
	})
}

func (l *Listener) listen(ctx context.Context) error {
	conn, err := pgx.Connect(ctx, l.url)
	if err != nil {
		return err
	}
	defer conn.Close(context.WithoutCancel(ctx))

	if _, err := conn.Exec(ctx, "LISTEN "+pgx.Identifier{l.channel}.Sanitize()); err != nil {
		return err
	}

	l.logger.Info("change feed connected", "channel", l.channel)

	for {
		notification, err := conn.WaitForNotification(ctx)
		if err != nil {
			return err
		}
		l.handle(notification.Payload)
	}
}

func (l *Listener) handle(payload string) {
	var scan scans.Scan
	if err := json.Unmarshal([]byte(payload), &scan); err != nil {
		l.logger.Warn("unparseable change event", "error", err)
		return
	}

	if l.cache.Apply(scan) {
		l.logger.Debug("change event applied", "id", scan.ID, "status", scan.Status)
	}
}
