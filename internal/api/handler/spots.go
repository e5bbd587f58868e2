package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/fishcast/fishcast/internal/api/models"
	"github.com/fishcast/fishcast/internal/api/response"
	"github.com/fishcast/fishcast/internal/spots"
)

// SpotsHandler handles saved-spot endpoints.
type SpotsHandler struct {
	spots *spots.Service
}

// NewSpotsHandler creates a new SpotsHandler.
func NewSpotsHandler(service *spots.Service) *SpotsHandler {
	return &SpotsHandler{spots: service}
}

// ListSpots handles GET /v1/spots - list saved spots.
func (h *SpotsHandler) ListSpots(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 200 {
			response.BadRequest(w, r, "limit must be between 1 and 200", nil)
			return
		}
		limit = parsed
	}

	page, err := h.spots.List(r.Context(), limit)
	if err != nil {
		response.InternalError(w, r, "failed to list spots")
		return
	}
	response.JSON(w, r, http.StatusOK, page)
}

// CreateSpot handles POST /v1/spots - create a saved spot.
func (h *SpotsHandler) CreateSpot(w http.ResponseWriter, r *http.Request) {
	var input models.SpotCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	spot, err := h.spots.Create(r.Context(), &input)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	location := fmt.Sprintf("/v1/spots/%s", spot.ID)
	response.Created(w, r, location, spot)
}

// GetSpot handles GET /v1/spots/{spotId} - get a saved spot.
func (h *SpotsHandler) GetSpot(w http.ResponseWriter, r *http.Request) {
	spotID := chi.URLParam(r, "spotId")
	if spotID == "" {
		response.BadRequest(w, r, "spotId is required", nil)
		return
	}

	spot, err := h.spots.Get(r.Context(), spotID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, spot)
}

// UpdateSpot handles PUT /v1/spots/{spotId} - update a saved spot.
func (h *SpotsHandler) UpdateSpot(w http.ResponseWriter, r *http.Request) {
	spotID := chi.URLParam(r, "spotId")
	if spotID == "" {
		response.BadRequest(w, r, "spotId is required", nil)
		return
	}

	var input models.SpotUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	spot, err := h.spots.Update(r.Context(), spotID, &input)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, spot)
}

// DeleteSpot handles DELETE /v1/spots/{spotId} - delete a saved spot.
func (h *SpotsHandler) DeleteSpot(w http.ResponseWriter, r *http.Request) {
	spotID := chi.URLParam(r, "spotId")
	if spotID == "" {
		response.BadRequest(w, r, "spotId is required", nil)
		return
	}

	if err := h.spots.Delete(r.Context(), spotID); err != nil {
		h.writeError(w, r, err)
		return
	}
	response.NoContent(w, r)
}

func (h *SpotsHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *spots.ValidationError
	switch {
	case errors.As(err, &verr):
		response.BadRequest(w, r, "validation failed", verr.Errors)
	case spots.IsNotFound(err):
		response.NotFound(w, r, "spot not found")
	default:
		response.InternalError(w, r, "spot operation failed")
	}
}
