package api

import (
	"github.com/mikeangelocasono/BitterScan-Dashboard-sub001/internal/cache"
	"github.com/mikeangelocasono/BitterScan-Dashboard-sub001/internal/config"
	"github.com/mikeangelocasono/BitterScan-Dashboard-sub001/internal/feed"
	"github.com/mikeangelocasono/BitterScan-Dashboard-sub001/internal/ledger"
	"github.com/mikeangelocasono/BitterScan-Dashboard-sub001/internal/push"
	"github.com/mikeangelocasono/BitterScan-Dashboard-sub001/internal/scans"
	"github.com/mikeangelocasono/BitterScan-Dashboard-sub001/internal/validation"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Scans       scans.System
	Ledger      ledger.System
	Cache       *cache.Cache
	Coordinator *validation.Coordinator
	Sweeper     *validation.Sweeper
	Hub         *push.Hub
	Feed        *feed.Listener
}

// NewDomain creates all domain systems from the API runtime and wires
// the change pipeline: store notifications land in the cache, and cache
// changes fan out to connected clients through the push hub.
func NewDomain(cfg *config.Config, runtime *Runtime) *Domain {
	scansSystem := scans.New(
		runtime.Database.Connection(),
		runtime.Storage,
		runtime.Logger,
		runtime.Pagination,
	)

	ledgerSystem := ledger.New(
		runtime.Database.Connection(),
		runtime.Logger,
		runtime.Pagination,
	)

	scanCache := cache.New(runtime.Logger)
	hub := push.NewHub(runtime.Logger)
	scanCache.SetOnChange(hub.Broadcast)

	coordinator := validation.NewCoordinator(
		scansSystem,
		ledgerSystem,
		scanCache,
		&cfg.Validation,
		runtime.Logger,
	)

	sweeper := validation.NewSweeper(
		scansSystem,
		ledgerSystem,
		scanCache,
		&cfg.Validation,
		runtime.Logger,
	)

	listener := feed.NewListener(
		cfg.Database.URL(),
		&cfg.Feed,
		scanCache,
		runtime.Logger,
	)

	return &Domain{
		Scans:       scansSystem,
		Ledger:      ledgerSystem,
		Cache:       scanCache,
		Coordinator: coordinator,
		Sweeper:     sweeper,
		Hub:         hub,
		Feed:        listener,
	}
}

// Start registers the domain's background workers with the lifecycle
// coordinator and primes the cache from a store snapshot during startup.
func (d *Domain) Start(runtime *Runtime) {
	d.Hub.Start(runtime.Lifecycle)
	d.Feed.Start(runtime.Lifecycle)
	d.Sweeper.Start(runtime.Lifecycle)

	runtime.Lifecycle.OnStartup(func() {
		snapshot, err := d.Scans.Snapshot(runtime.Lifecycle.Context())
		if err != nil {
			runtime.Logger.Error("cache priming failed", "error", err)
			return
		}
		d.Cache.Replace(snapshot)
	})
}
