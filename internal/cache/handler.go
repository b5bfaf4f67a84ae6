package cache

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/mikeangelocasono/BitterScan-Dashboard-sub001/internal/scans"
	"github.com/mikeangelocasono/BitterScan-Dashboard-sub001/pkg/handlers"
	"github.com/mikeangelocasono/BitterScan-Dashboard-sub001/pkg/routes"
)

// Handler provides HTTP endpoints backed by the reconciliation cache.
type Handler struct {
	cache  *Cache
	source scans.System
	logger *slog.Logger
}

// NewHandler creates a Handler over the cache and its backing scan store.
func NewHandler(cache *Cache, source scans.System, logger *slog.Logger) *Handler {
	return &Handler{
		cache:  cache,
		source: source,
		logger: logger.With("handler", "queue"),
	}
}

// Routes returns the route group definition for queue endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/queue",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.Pending},
			{Method: "GET", Pattern: "/scans/{uuid}", Handler: h.Scan},
			{Method: "POST", Pattern: "/refresh", Handler: h.Refresh},
		},
	}
}

// Pending returns the validation queue from the cache.
func (h *Handler) Pending(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, h.cache.PendingQueue())
}

// Scan returns a single cached scan by UUID.
func (h *Handler) Scan(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("uuid"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	scan, ok := h.cache.ScanByUUID(id)
	if !ok {
		handlers.RespondError(w, h.logger, http.StatusNotFound, scans.ErrNotFound)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, scan)
}

// Refresh discards the cache and reloads it from a full store snapshot.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.source.Snapshot(r.Context())
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadGateway, err)
		return
	}

	h.cache.Replace(snapshot)
	handlers.RespondJSON(w, http.StatusOK, map[string]int{"entries": h.cache.Len()})
}
