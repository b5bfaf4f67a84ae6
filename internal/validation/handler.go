package validation

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/mikeangelocasono/BitterScan-Dashboard-sub001/internal/experts"
	"github.com/mikeangelocasono/BitterScan-Dashboard-sub001/internal/ledger"
	"github.com/mikeangelocasono/BitterScan-Dashboard-sub001/pkg/handlers"
	"github.com/mikeangelocasono/BitterScan-Dashboard-sub001/pkg/pagination"
	"github.com/mikeangelocasono/BitterScan-Dashboard-sub001/pkg/routes"
)

// Handler provides HTTP endpoints for validation operations.
type Handler struct {
	coordinator *Coordinator
	ledger      ledger.System
	sweeper     *Sweeper
	logger      *slog.Logger
	pagination  pagination.Config
}

// SearchRequest combines pagination and filter criteria for the search endpoint.
type SearchRequest struct {
	pagination.PageRequest
	ledger.Filters
}

// NewHandler creates a Handler over the coordinator, ledger, and sweeper.
func NewHandler(
	coordinator *Coordinator,
	ledgerSys ledger.System,
	sweeper *Sweeper,
	logger *slog.Logger,
	pagination pagination.Config,
) *Handler {
	return &Handler{
		coordinator: coordinator,
		ledger:      ledgerSys,
		sweeper:     sweeper,
		logger:      logger.With("handler", "validations"),
		pagination:  pagination,
	}
}

// Routes returns the route group definition for validation endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/validations",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/scans/{uuid}", Handler: h.Validate},
			{Method: "DELETE", Pattern: "/{id}", Handler: h.Revert},
			{Method: "GET", Pattern: "", Handler: h.List},
			{Method: "POST", Pattern: "/search", Handler: h.Search},
			{Method: "GET", Pattern: "/scan/{uuid}", Handler: h.ListByScan},
			{Method: "POST", Pattern: "/sweep", Handler: h.Sweep},
		},
	}
}

// Validate records the authenticated expert's decision against a scan.
func (h *Handler) Validate(w http.ResponseWriter, r *http.Request) {
	expert, ok := experts.FromContext(r.Context())
	if !ok {
		handlers.RespondError(w, h.logger, http.StatusUnauthorized, experts.ErrUnauthenticated)
		return
	}

	scanUUID, err := uuid.Parse(r.PathValue("uuid"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidIdentifier)
		return
	}

	var cmd Command
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrMissingDecision)
		return
	}

	receipt, err := h.coordinator.Validate(r.Context(), scanUUID, expert, cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, receipt)
}

// Revert undoes a previous decision made by the authenticated expert.
func (h *Handler) Revert(w http.ResponseWriter, r *http.Request) {
	expert, ok := experts.FromContext(r.Context())
	if !ok {
		handlers.RespondError(w, h.logger, http.StatusUnauthorized, experts.ErrUnauthenticated)
		return
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidIdentifier)
		return
	}

	result, err := h.coordinator.Revert(r.Context(), id, expert)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// List returns a paginated list of validation records with optional
// query parameter filters.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)
	filters := ledger.FiltersFromQuery(r.URL.Query())

	result, err := h.ledger.List(r.Context(), page, filters)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Search accepts a JSON body with pagination and filter criteria and
// returns matching validation records.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidIdentifier)
		return
	}

	req.PageRequest.Normalize(h.pagination)

	result, err := h.ledger.List(r.Context(), req.PageRequest, req.Filters)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// ListByScan returns every validation record for one scan.
func (h *Handler) ListByScan(w http.ResponseWriter, r *http.Request) {
	scanUUID, err := uuid.Parse(r.PathValue("uuid"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidIdentifier)
		return
	}

	records, err := h.ledger.ListByScan(r.Context(), scanUUID)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, records)
}

// Sweep triggers an immediate reconciliation pass.
func (h *Handler) Sweep(w http.ResponseWriter, r *http.Request) {
	repaired, err := h.sweeper.Sweep(r.Context())
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadGateway, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, map[string]int{"repaired": repaired})
}
