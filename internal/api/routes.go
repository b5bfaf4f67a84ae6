package api

import (
	"net/http"

	"github.com/mikeangelocasono/BitterScan-Dashboard-sub001/internal/cache"
	"github.com/mikeangelocasono/BitterScan-Dashboard-sub001/internal/config"
	"github.com/mikeangelocasono/BitterScan-Dashboard-sub001/internal/validation"
	"github.com/mikeangelocasono/BitterScan-Dashboard-sub001/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	cfg *config.Config,
	runtime *Runtime,
) {
	identity := runtime.Identity.Middleware()

	validationHandler := validation.NewHandler(
		domain.Coordinator,
		domain.Ledger,
		domain.Sweeper,
		runtime.Logger,
		runtime.Pagination,
	)

	queueHandler := cache.NewHandler(domain.Cache, domain.Scans, runtime.Logger)

	routes.Register(
		mux,
		domain.Scans.Handler(cfg.API.MaxUploadSizeBytes()).Routes(),
		queueHandler.Routes(),
		validationHandler.Routes().Wrap(identity),
	)

	mux.HandleFunc("GET /events", domain.Hub.Serve)
}
