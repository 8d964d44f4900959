package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/eugenenazirov/combo-solver/internal/catalog"
	"github.com/eugenenazirov/combo-solver/internal/solver"
)

type contextKey string

const requestIDContextKey contextKey = "requestID"

// Handler wires solver and catalog storage dependencies into HTTP handlers.
type Handler struct {
	solver  solver.Solver
	storage catalog.Storage

	clock func() time.Time

	mu               sync.RWMutex
	catalogUpdatedAt time.Time
}

// HandlerOption configures Handler behaviour.
type HandlerOption func(*Handler)

// WithClock overrides the time source, primarily for tests.
func WithClock(clock func() time.Time) HandlerOption {
	return func(h *Handler) {
		h.clock = clock
	}
}

// NewHandler constructs a Handler with the provided dependencies.
func NewHandler(s solver.Solver, store catalog.Storage, opts ...HandlerOption) *Handler {
	h := &Handler{
		solver:  s,
		storage: store,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	h.catalogUpdatedAt = h.clock()
	return h
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	_ = r
	resp := healthResponse{
		Status:    "ok",
		Timestamp: h.clock(),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleGetCatalog(w http.ResponseWriter, r *http.Request) {
	_ = r
	menus, err := h.storage.GetCatalog()
	if err != nil {
		writeInternalError(w, err)
		return
	}

	resp := catalogResponse{
		Catalog:   recordsFromMenus(menus),
		UpdatedAt: h.currentCatalogUpdatedAt(),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handlePutCatalog(w http.ResponseWriter, r *http.Request) {
	var req catalogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", "unable to parse JSON payload")
		return
	}

	if len(req.Catalog) == 0 {
		writeError(w, http.StatusBadRequest, "Invalid catalog", "catalog must contain at least one record")
		return
	}

	records := make([]catalog.Record, 0, len(req.Catalog))
	for _, entry := range req.Catalog {
		records = append(records, catalog.Record{
			Vendor: strings.TrimSpace(entry.Vendor),
			Price:  strings.TrimSpace(entry.Price),
			Items:  entry.Items,
		})
	}

	menus, err := catalog.GroupByVendor(records)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid catalog", err.Error())
		return
	}

	if err := h.storage.SetCatalog(menus); err != nil {
		if errors.Is(err, catalog.ErrInvalidCatalog) {
			writeError(w, http.StatusBadRequest, "Invalid catalog", err.Error())
			return
		}
		writeInternalError(w, err)
		return
	}

	h.markCatalogUpdated()

	stored, err := h.storage.GetCatalog()
	if err != nil {
		writeInternalError(w, err)
		return
	}

	resp := catalogResponse{
		Catalog:   recordsFromMenus(stored),
		UpdatedAt: h.currentCatalogUpdatedAt(),
		Message:   "Catalog updated successfully",
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleSolve(w http.ResponseWriter, r *http.Request) {
	var req solveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", "unable to parse JSON payload")
		return
	}

	items := make([]string, 0, len(req.Items))
	for _, item := range req.Items {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	if len(items) == 0 {
		writeError(w, http.StatusBadRequest, "Invalid request", "items must contain at least one item identifier")
		return
	}

	menus, err := h.storage.GetCatalog()
	if err != nil {
		writeInternalError(w, err)
		return
	}

	start := time.Now()
	result, solveErr := h.solver.CheapestVendor(menus, items)
	elapsed := time.Since(start)

	if solveErr != nil {
		switch {
		case errors.Is(solveErr, solver.ErrNoItemsRequested):
			writeError(w, http.StatusBadRequest, "Invalid request", solveErr.Error())
		case errors.Is(solveErr, solver.ErrNoVendor):
			suggestion := "Check the requested item names or extend the catalog with a vendor offering them"
			writeError(w, http.StatusUnprocessableEntity, "No vendor available", solveErr.Error(), suggestion)
		default:
			writeInternalError(w, solveErr)
		}
		return
	}

	resp := solveResponse{
		Items:             items,
		Vendor:            result.Vendor,
		Price:             result.Price.String(),
		CalculationTimeMs: elapsed.Milliseconds(),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) currentCatalogUpdatedAt() time.Time {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.catalogUpdatedAt
}

func (h *Handler) markCatalogUpdated() {
	h.mu.Lock()
	h.catalogUpdatedAt = h.clock()
	h.mu.Unlock()
}

func requestIDFromContext(ctx context.Context) string {
	if v := ctx.Value(requestIDContextKey); v != nil {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

func recordsFromMenus(menus []solver.VendorMenu) []catalogRecord {
	records := make([]catalogRecord, 0, len(menus))
	for _, menu := range menus {
		for _, bundle := range menu.Bundles {
			records = append(records, catalogRecord{
				Vendor: menu.Vendor,
				Price:  bundle.Price.String(),
				Items:  bundle.Items,
			})
		}
	}
	return records
}

type catalogRecord struct {
	Vendor string   `json:"vendor"`
	Price  string   `json:"price"`
	Items  []string `json:"items"`
}

type catalogRequest struct {
	Catalog []catalogRecord `json:"catalog"`
}

type catalogResponse struct {
	Catalog   []catalogRecord `json:"catalog"`
	UpdatedAt time.Time       `json:"updatedAt"`
	Message   string          `json:"message,omitempty"`
}

type solveRequest struct {
	Items []string `json:"items"`
}

type solveResponse struct {
	Items             []string `json:"items"`
	Vendor            string   `json:"vendor"`
	Price             string   `json:"price"`
	CalculationTimeMs int64    `json:"calculationTimeMs"`
}

type healthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

type errorResponse struct {
	Error      string `json:"error"`
	Details    string `json:"details,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if status != 0 {
		w.WriteHeader(status)
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message, details string, suggestion ...string) {
	resp := errorResponse{
		Error:   message,
		Details: details,
	}
	if len(suggestion) > 0 {
		resp.Suggestion = suggestion[0]
	}
	writeJSON(w, status, resp)
}

func writeInternalError(w http.ResponseWriter, err error) {
	writeError(w, http.StatusInternalServerError, "Internal error", err.Error())
}
