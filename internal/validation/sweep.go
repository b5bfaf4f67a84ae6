package validation

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mikeangelocasono/BitterScan-Dashboard-sub001/internal/cache"
	"github.com/mikeangelocasono/BitterScan-Dashboard-sub001/internal/ledger"
	"github.com/mikeangelocasono/BitterScan-Dashboard-sub001/internal/scans"
	"github.com/mikeangelocasono/BitterScan-Dashboard-sub001/pkg/lifecycle"
)

// Sweeper periodically repairs orphaned ledger rows. An orphan is a
// validation record whose scan row is still pending, left behind when
// the coordinator's scan update failed after the ledger append
// committed. The sweep replays the scan update from the record, so the
// ledger always wins.
type Sweeper struct {
	scans    scans.System
	ledger   ledger.System
	cache    *cache.Cache
	logger   *slog.Logger
	interval time.Duration
	limit    int
	workers  int
}

// NewSweeper creates a Sweeper over the given stores and cache.
func NewSweeper(
	scanSys scans.System,
	ledgerSys ledger.System,
	c *cache.Cache,
	cfg *Config,
	logger *slog.Logger,
) *Sweeper {
	return &Sweeper{
		scans:    scanSys,
		ledger:   ledgerSys,
		cache:    c,
		logger:   logger.With("system", "sweep"),
		interval: cfg.SweepIntervalDuration(),
		limit:    cfg.SweepLimit,
		workers:  cfg.SweepWorkers,
	}
}

// Start registers the sweep loop with the lifecycle coordinator. The
// loop runs one sweep immediately, then on every interval tick until
// shutdown.
func (s *Sweeper) Start(lc *lifecycle.Coordinator) {
	s.logger.Info("starting reconciliation sweep", "interval", s.interval)

	lc.OnShutdown(func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		s.runOnce(lc.Context())

		for {
			select {
			case <-lc.Context().Done():
				s.logger.Info("reconciliation sweep stopped")
				return
			case <-ticker.C:
				s.runOnce(lc.Context())
			}
		}
	})
}

// Sweep runs a single reconciliation pass and returns the number of
// scans repaired.
func (s *Sweeper) Sweep(ctx context.Context) (int, error) {
	orphans, err := s.ledger.Unreconciled(ctx, s.limit)
	if err != nil {
		return 0, err
	}
	if len(orphans) == 0 {
		return 0, nil
	}

	s.logger.Info("reconciling orphaned validations", "count", len(orphans))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	repaired := make(chan struct{}, len(orphans))
	for _, record := range orphans {
		g.Go(func() error {
			if err := s.repair(gctx, record); err != nil {
				s.logger.Warn("reconciliation failed",
					"scan_uuid", record.ScanUUID,
					"record_id", record.ID,
					"error", err,
				)
				return nil
			}
			repaired <- struct{}{}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return len(repaired), err
	}
	return len(repaired), nil
}

func (s *Sweeper) repair(ctx context.Context, record ledger.Record) error {
	err := s.scans.UpdateStatus(ctx, record.ScanUUID, scans.StatusValidated, record.Comment, record.ValidatedAt)
	if err != nil {
		return err
	}

	s.cache.Complete(record.ScanUUID, scans.StatusValidated, record.Comment, record.ValidatedAt)

	s.logger.Info("orphaned validation reconciled",
		"scan_uuid", record.ScanUUID,
		"record_id", record.ID,
	)
	return nil
}

func (s *Sweeper) runOnce(ctx context.Context) {
	if _, err := s.Sweep(ctx); err != nil {
		if ctx.Err() == nil {
			s.logger.Error("reconciliation sweep failed", "error", err)
		}
	}
}
