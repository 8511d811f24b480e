package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"clutchdemo/domain/clutch"
	pkgerrors "clutchdemo/pkg/errors"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ClutchQueries is the read side the clutch endpoints serve from
type ClutchQueries interface {
	ListClutches(ctx context.Context, limit int) ([]*clutch.Clutch, error)
	GetClutch(ctx context.Context, clutchID string) (*clutch.Details, error)
}

// ListClutchesResponse is the body of GET /clutches
type ListClutchesResponse struct {
	Clutches []*clutch.Clutch `json:"clutches"`
	Count    int              `json:"count"`
}

// ClutchHandler handles clutch-related HTTP requests
type ClutchHandler struct {
	queries ClutchQueries
	errors  *pkgerrors.ErrorHandler
	logger  *zap.Logger
}

// NewClutchHandler creates a new clutch handler
func NewClutchHandler(queries ClutchQueries, errorHandler *pkgerrors.ErrorHandler, logger *zap.Logger) *ClutchHandler {
	return &ClutchHandler{
		queries: queries,
		errors:  errorHandler,
		logger:  logger,
	}
}

// ListClutches handles GET /clutches
func (h *ClutchHandler) ListClutches(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			h.errors.Handle(w, r, pkgerrors.NewValidationError("limit must be an integer"))
			return
		}
		limit = n
	}

	clutches, err := h.queries.ListClutches(r.Context(), limit)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, ListClutchesResponse{
		Clutches: clutches,
		Count:    len(clutches),
	})
}

// GetClutch handles GET /clutches/{clutchID}
func (h *ClutchHandler) GetClutch(w http.ResponseWriter, r *http.Request) {
	clutchID := chi.URLParam(r, "clutchID")

	details, err := h.queries.GetClutch(r.Context(), clutchID)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, details)
}

func (h *ClutchHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("Failed to encode response", zap.Error(err))
	}
}
