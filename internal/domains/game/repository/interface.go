package repository

import (
	"context"
	"math"

	"gamestore-backend/internal/domains/game/model"
)

// RepositoryInterface defines all data access operations for the game catalog
type RepositoryInterface interface {
	// Count returns the number of games matching filter
	Count(ctx context.Context, filter model.GameFilter) (int, error)

	// List returns one page of matching games ordered by id ascending.
	// pageNumber and pageSize are 1-based and >= 1; an offset past the end yields an empty slice.
	List(ctx context.Context, pageNumber, pageSize int, filter model.GameFilter) ([]model.Game, error)

	// Get retrieves a game by id
	// Returns nil, nil if not found
	Get(ctx context.Context, id int) (*model.Game, error)

	// Create assigns id = max(id)+1 (1 when empty), stores the game and returns it
	Create(ctx context.Context, game model.Game) (model.Game, error)

	// Update replaces the stored game with the same id.
	// Returns *model.NotFoundError if the id does not exist.
	Update(ctx context.Context, game model.Game) error

	// Delete removes the game; deleting a missing id is not an error
	Delete(ctx context.Context, id int) error

	// Ping checks the backing storage is reachable
	Ping(ctx context.Context) error
}

// pageOffset converts a 1-based page into a 0-based offset, saturating at math.MaxInt
func pageOffset(pageNumber, pageSize int) int {
	if pageNumber < 1 || pageSize < 1 {
		return 0
	}
	if pageNumber-1 > math.MaxInt/pageSize {
		return math.MaxInt
	}
	return (pageNumber - 1) * pageSize
}
