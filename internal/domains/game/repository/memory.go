package repository

import (
	"context"
	"sort"
	"sync"

	"gamestore-backend/internal/domains/game/model"
)

// memoryRepository keeps the catalog in process memory.
// games is indexed by id; ids stays sorted ascending so List never needs to sort.
// One RWMutex guards both: writers hold the write lock, readers the read lock.
type memoryRepository struct {
	mu    sync.RWMutex
	games map[int]model.Game
	ids   []int
}

// NewMemoryRepository creates an in-memory repository holding copies of seed
func NewMemoryRepository(seed ...model.Game) RepositoryInterface {
	r := &memoryRepository{
		games: make(map[int]model.Game, len(seed)),
		ids:   make([]int, 0, len(seed)),
	}
	for _, g := range seed {
		if _, exists := r.games[g.ID]; exists {
			continue
		}
		r.games[g.ID] = g
		r.ids = append(r.ids, g.ID)
	}
	sort.Ints(r.ids)
	return r
}

func (r *memoryRepository) Count(ctx context.Context, filter model.GameFilter) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if filter.Genre == nil {
		return len(r.ids), nil
	}

	n := 0
	for _, id := range r.ids {
		if filter.Matches(r.games[id]) {
			n++
		}
	}
	return n, nil
}

func (r *memoryRepository) List(ctx context.Context, pageNumber, pageSize int, filter model.GameFilter) ([]model.Game, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if pageSize < 1 {
		return []model.Game{}, nil
	}

	result := make([]model.Game, 0, min(pageSize, len(r.ids)))

	skip := pageOffset(pageNumber, pageSize)
	for _, id := range r.ids {
		g := r.games[id]
		if !filter.Matches(g) {
			continue
		}
		if skip > 0 {
			skip--
			continue
		}
		result = append(result, g)
		if len(result) == pageSize {
			break
		}
	}
	return result, nil
}

func (r *memoryRepository) Get(ctx context.Context, id int) (*model.Game, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	g, ok := r.games[id]
	if !ok {
		return nil, nil
	}
	return &g, nil
}

func (r *memoryRepository) Create(ctx context.Context, game model.Game) (model.Game, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	game.ID = r.nextID()
	r.games[game.ID] = game
	// nextID is always greater than every existing id, so appending keeps ids sorted
	r.ids = append(r.ids, game.ID)
	return game, nil
}

func (r *memoryRepository) Update(ctx context.Context, game model.Game) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.games[game.ID]; !ok {
		return &model.NotFoundError{ID: game.ID}
	}
	r.games[game.ID] = game
	return nil
}

func (r *memoryRepository) Delete(ctx context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.games[id]; !ok {
		return nil
	}
	delete(r.games, id)

	i := sort.SearchInts(r.ids, id)
	if i < len(r.ids) && r.ids[i] == id {
		r.ids = append(r.ids[:i], r.ids[i+1:]...)
	}
	return nil
}

func (r *memoryRepository) Ping(ctx context.Context) error {
	return nil
}

// nextID returns max(id)+1, or 1 when empty. Caller must hold the write lock.
func (r *memoryRepository) nextID() int {
	if len(r.ids) == 0 {
		return 1
	}
	return r.ids[len(r.ids)-1] + 1
}
