package models

// Spot represents a saved fishing spot.
type Spot struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Location       Point     `json:"location"`
	StationID      *string   `json:"stationId,omitempty"`
	DefaultSpecies *string   `json:"defaultSpecies,omitempty"`
	Notes          *string   `json:"notes,omitempty"`
	CreatedAt      Timestamp `json:"createdAt"`
	UpdatedAt      Timestamp `json:"updatedAt"`
}

// SpotCreateRequest is the request body for creating a spot.
type SpotCreateRequest struct {
	Name           string  `json:"name" validate:"required,min=1,max=80"`
	Location       Point   `json:"location" validate:"required"`
	StationID      *string `json:"stationId,omitempty" validate:"omitempty,numeric,len=7"`
	DefaultSpecies *string `json:"defaultSpecies,omitempty"`
	Notes          *string `json:"notes,omitempty" validate:"omitempty,max=500"`
}

// SpotUpdateRequest is the request body for updating a spot.
type SpotUpdateRequest struct {
	Name           *string `json:"name,omitempty" validate:"omitempty,min=1,max=80"`
	Location       *Point  `json:"location,omitempty"`
	StationID      *string `json:"stationId,omitempty" validate:"omitempty,numeric,len=7"`
	DefaultSpecies *string `json:"defaultSpecies,omitempty"`
	Notes          *string `json:"notes,omitempty" validate:"omitempty,max=500"`
}

// PagedSpots represents a paginated list of spots.
type PagedSpots struct {
	Items []Spot            `json:"items"`
	Meta  PagedResponseMeta `json:"meta"`
}
