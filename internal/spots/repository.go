package spots

import "context"

// ListOptions contains options for listing spots.
type ListOptions struct {
	Limit  int
	Cursor string
}

// ListResult contains the results of listing spots.
type ListResult struct {
	Items      []*Spot
	NextCursor string
}

// Repository defines the interface for spot data persistence.
type Repository interface {
	// Get retrieves a spot by ID. Returns ErrSpotNotFound if the spot
	// doesn't exist.
	Get(ctx context.Context, id string) (*Spot, error)

	// List retrieves all spots with pagination.
	List(ctx context.Context, opts ListOptions) (*ListResult, error)

	// Create creates a new spot.
	Create(ctx context.Context, spot *Spot) error

	// Update updates an existing spot.
	Update(ctx context.Context, spot *Spot) error

	// Delete deletes a spot by ID.
	Delete(ctx context.Context, id string) error
}
