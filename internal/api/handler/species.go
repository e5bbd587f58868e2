package handler

import (
	"net/http"

	"github.com/fishcast/fishcast/internal/api/models"
	"github.com/fishcast/fishcast/internal/api/response"
	"github.com/fishcast/fishcast/internal/scoring"
)

// SpeciesHandler handles the species catalog endpoint.
type SpeciesHandler struct {
	registry *scoring.Registry
}

// NewSpeciesHandler creates a new SpeciesHandler.
func NewSpeciesHandler(registry *scoring.Registry) *SpeciesHandler {
	return &SpeciesHandler{registry: registry}
}

// ListSpecies handles GET /v1/species - supported species catalog.
func (h *SpeciesHandler) ListSpecies(w http.ResponseWriter, r *http.Request) {
	items := make([]models.Species, 0, len(scoring.Catalog))
	for _, p := range scoring.Catalog {
		strategy := h.registry.StrategyFor(p)
		items = append(items, models.Species{
			ID:      p.ID,
			Name:    p.Name,
			Aliases: p.Aliases,
			OptimalWaterTempC: models.ValueRange{
				Min: p.OptimalWaterTempRange.Min,
				Max: p.OptimalWaterTempRange.Max,
			},
			HasDedicatedModel: strategy.Name() != "general/v2",
		})
	}

	response.JSON(w, r, http.StatusOK, models.SpeciesList{Items: items})
}
