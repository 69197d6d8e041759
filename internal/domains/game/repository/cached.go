package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"gamestore-backend/internal/domains/game/model"
	"gamestore-backend/pkg/cache"

	"github.com/rs/zerolog/log"
)

// cachedRepository - cache-aside cho Get; mọi thao tác ghi đi thẳng xuống repository gốc
// rồi xoá key tương ứng. Count/List/Create không cache.
//
// generations[id] tăng trước mỗi lần ghi id đó. Get chỉ giữ lại entry nó vừa set khi
// generation không đổi trong suốt lúc đọc, nên một lần đọc cũ không thể ghi đè
// lên kết quả của một Update/Delete đã hoàn tất.
type cachedRepository struct {
	next  RepositoryInterface
	cache cache.Cache
	ttl   time.Duration

	mu          sync.Mutex
	generations map[int]uint64
}

// NewCachedRepository wraps next with a read-through cache for single-game lookups
func NewCachedRepository(next RepositoryInterface, c cache.Cache, ttl time.Duration) RepositoryInterface {
	return &cachedRepository{next: next, cache: c, ttl: ttl, generations: make(map[int]uint64)}
}

// GameCacheKey - key format "game:detail:<id>"
func GameCacheKey(id int) string {
	return fmt.Sprintf("game:detail:%d", id)
}

func (r *cachedRepository) Count(ctx context.Context, filter model.GameFilter) (int, error) {
	return r.next.Count(ctx, filter)
}

func (r *cachedRepository) List(ctx context.Context, pageNumber, pageSize int, filter model.GameFilter) ([]model.Game, error) {
	return r.next.List(ctx, pageNumber, pageSize, filter)
}

func (r *cachedRepository) Get(ctx context.Context, id int) (*model.Game, error) {
	key := GameCacheKey(id)

	var cached model.Game
	found, err := r.cache.Get(ctx, key, &cached)
	if err != nil {
		// Cache lỗi không critical, vẫn đọc từ DB
		log.Warn().Err(err).Str("key", key).Msg("game cache read failed")
	}
	if found {
		return &cached, nil
	}

	gen := r.generation(id)
	g, err := r.next.Get(ctx, id)
	if err != nil || g == nil {
		return g, err
	}

	// có thao tác ghi xen vào: trả kết quả nhưng không cache
	if r.generation(id) != gen {
		return g, nil
	}
	if err := r.cache.Set(ctx, key, g, r.ttl); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("game cache write failed")
		return g, nil
	}
	// ghi xen vào giữa lần kiểm tra trên và Set
	if r.generation(id) != gen {
		if err := r.cache.Delete(ctx, key); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("game cache rollback failed")
		}
	}
	return g, nil
}

func (r *cachedRepository) Create(ctx context.Context, game model.Game) (model.Game, error) {
	created, err := r.next.Create(ctx, game)
	if err != nil {
		return created, err
	}
	// id có thể được tái sử dụng (max+1 sau khi xoá id lớn nhất)
	r.bump(created.ID)
	if err := r.invalidate(ctx, created.ID); err != nil {
		return created, err
	}
	return created, nil
}

func (r *cachedRepository) Update(ctx context.Context, game model.Game) error {
	r.bump(game.ID)
	if err := r.next.Update(ctx, game); err != nil {
		return err
	}
	return r.invalidate(ctx, game.ID)
}

func (r *cachedRepository) Delete(ctx context.Context, id int) error {
	r.bump(id)
	if err := r.next.Delete(ctx, id); err != nil {
		return err
	}
	return r.invalidate(ctx, id)
}

func (r *cachedRepository) Ping(ctx context.Context) error {
	if err := r.next.Ping(ctx); err != nil {
		return err
	}
	return r.cache.Ping(ctx)
}

// invalidate fails the write when the entry cannot be removed; otherwise reads would
// keep serving the old record until the TTL expires
func (r *cachedRepository) invalidate(ctx context.Context, id int) error {
	key := GameCacheKey(id)
	if err := r.cache.Delete(ctx, key); err != nil {
		log.Error().Err(err).Str("key", key).Msg("game cache invalidation failed")
		return fmt.Errorf("invalidate %s: %w", key, err)
	}
	return nil
}

func (r *cachedRepository) generation(id int) uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.generations[id]
}

func (r *cachedRepository) bump(id int) {
	r.mu.Lock()
	r.generations[id]++
	r.mu.Unlock()
}
