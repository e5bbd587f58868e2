package spots

import (
	"context"
	"errors"
	"regexp"
	"time"

	"github.com/google/uuid"

	"github.com/fishcast/fishcast/internal/api/models"
	"github.com/fishcast/fishcast/internal/scoring"
)

// Validation constants.
const (
	MaxNameLength  = 80
	MaxNotesLength = 500
)

// stationIDRegex validates NOAA CO-OPS station identifiers.
var stationIDRegex = regexp.MustCompile(`^\d{7}$`)

// Service provides spot operations.
type Service struct {
	repo Repository
}

// NewService creates a new spot service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List retrieves saved spots.
func (s *Service) List(ctx context.Context, limit int) (*models.PagedSpots, error) {
	result, err := s.repo.List(ctx, ListOptions{Limit: limit})
	if err != nil {
		return nil, err
	}

	items := make([]models.Spot, 0, len(result.Items))
	for _, spot := range result.Items {
		items = append(items, toAPISpot(spot))
	}

	var nextCursor *string
	if result.NextCursor != "" {
		nextCursor = &result.NextCursor
	}

	return &models.PagedSpots{
		Items: items,
		Meta: models.PagedResponseMeta{
			Limit:      limit,
			NextCursor: nextCursor,
		},
	}, nil
}

// Get retrieves a spot by ID.
func (s *Service) Get(ctx context.Context, spotID string) (*models.Spot, error) {
	spot, err := s.repo.Get(ctx, spotID)
	if err != nil {
		return nil, err
	}

	result := toAPISpot(spot)
	return &result, nil
}

// GetDomain retrieves a spot by ID as a domain object, for callers that
// need the raw station and species fields rather than the API shape.
func (s *Service) GetDomain(ctx context.Context, spotID string) (*Spot, error) {
	return s.repo.Get(ctx, spotID)
}

// Create creates a new spot.
func (s *Service) Create(ctx context.Context, input *models.SpotCreateRequest) (*models.Spot, error) {
	if fieldErrors := validateCreateInput(input); len(fieldErrors) > 0 {
		return nil, &ValidationError{Errors: fieldErrors}
	}

	now := time.Now()
	spot := &Spot{
		ID:             "spt_" + uuid.New().String()[:22],
		Name:           input.Name,
		Location:       Point{Lat: input.Location.Lat, Lon: input.Location.Lon},
		StationID:      input.StationID,
		DefaultSpecies: canonicalSpecies(input.DefaultSpecies),
		Notes:          input.Notes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.Create(ctx, spot); err != nil {
		return nil, err
	}

	result := toAPISpot(spot)
	return &result, nil
}

// Update updates an existing spot.
func (s *Service) Update(ctx context.Context, spotID string, input *models.SpotUpdateRequest) (*models.Spot, error) {
	spot, err := s.repo.Get(ctx, spotID)
	if err != nil {
		return nil, err
	}

	if fieldErrors := validateUpdateInput(input); len(fieldErrors) > 0 {
		return nil, &ValidationError{Errors: fieldErrors}
	}

	if input.Name != nil {
		spot.Name = *input.Name
	}
	if input.Location != nil {
		spot.Location = Point{Lat: input.Location.Lat, Lon: input.Location.Lon}
	}
	if input.StationID != nil {
		spot.StationID = input.StationID
	}
	if input.DefaultSpecies != nil {
		spot.DefaultSpecies = canonicalSpecies(input.DefaultSpecies)
	}
	if input.Notes != nil {
		spot.Notes = input.Notes
	}
	spot.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, spot); err != nil {
		return nil, err
	}

	result := toAPISpot(spot)
	return &result, nil
}

// Delete deletes a spot.
func (s *Service) Delete(ctx context.Context, spotID string) error {
	if _, err := s.repo.Get(ctx, spotID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, spotID)
}

// validateCreateInput validates the create spot input.
func validateCreateInput(input *models.SpotCreateRequest) []models.FieldError {
	var errs []models.FieldError

	if input.Name == "" {
		errs = append(errs, models.FieldError{Field: "name", Message: "is required"})
	} else if len(input.Name) > MaxNameLength {
		errs = append(errs, models.FieldError{Field: "name", Message: "must be at most 80 characters"})
	}

	errs = append(errs, validateLocation(&input.Location)...)
	errs = append(errs, validateOptionalFields(input.StationID, input.DefaultSpecies, input.Notes)...)

	return errs
}

// validateUpdateInput validates the update spot input.
func validateUpdateInput(input *models.SpotUpdateRequest) []models.FieldError {
	var errs []models.FieldError

	if input.Name != nil {
		if *input.Name == "" {
			errs = append(errs, models.FieldError{Field: "name", Message: "cannot be empty"})
		} else if len(*input.Name) > MaxNameLength {
			errs = append(errs, models.FieldError{Field: "name", Message: "must be at most 80 characters"})
		}
	}

	if input.Location != nil {
		errs = append(errs, validateLocation(input.Location)...)
	}

	errs = append(errs, validateOptionalFields(input.StationID, input.DefaultSpecies, input.Notes)...)

	return errs
}

// validateOptionalFields validates the optional station, species and
// notes fields shared by create and update.
func validateOptionalFields(stationID, species, notes *string) []models.FieldError {
	var errs []models.FieldError

	if stationID != nil && !stationIDRegex.MatchString(*stationID) {
		errs = append(errs, models.FieldError{Field: "stationId", Message: "must be a 7-digit NOAA station id"})
	}

	if species != nil && *species != "" && scoring.ResolveSpecies(*species) == nil {
		errs = append(errs, models.FieldError{Field: "defaultSpecies", Message: "is not a supported species"})
	}

	if notes != nil && len(*notes) > MaxNotesLength {
		errs = append(errs, models.FieldError{Field: "notes", Message: "must be at most 500 characters"})
	}

	return errs
}

func validateLocation(loc *models.Point) []models.FieldError {
	var errs []models.FieldError

	if loc.Lat < -90 || loc.Lat > 90 {
		errs = append(errs, models.FieldError{
			Field:   "location.lat",
			Message: "must be between -90 and 90",
		})
	}

	if loc.Lon < -180 || loc.Lon > 180 {
		errs = append(errs, models.FieldError{
			Field:   "location.lon",
			Message: "must be between -180 and 180",
		})
	}

	return errs
}

// canonicalSpecies stores the resolved catalog id rather than whatever
// alias or fuzzy form the client sent.
func canonicalSpecies(species *string) *string {
	if species == nil || *species == "" {
		return nil
	}
	if p := scoring.ResolveSpecies(*species); p != nil {
		id := p.ID
		return &id
	}
	return species
}

// toAPISpot converts a domain Spot to an API Spot.
func toAPISpot(s *Spot) models.Spot {
	return models.Spot{
		ID:             s.ID,
		Name:           s.Name,
		Location:       models.Point{Lat: s.Location.Lat, Lon: s.Location.Lon},
		StationID:      s.StationID,
		DefaultSpecies: s.DefaultSpecies,
		Notes:          s.Notes,
		CreatedAt:      models.Timestamp(s.CreatedAt),
		UpdatedAt:      models.Timestamp(s.UpdatedAt),
	}
}

// ValidationError represents validation errors.
type ValidationError struct {
	Errors []models.FieldError
}

func (e *ValidationError) Error() string {
	return "validation failed"
}

// IsNotFound reports whether err is the spot-not-found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrSpotNotFound)
}
