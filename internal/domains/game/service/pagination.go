package service

import (
	"context"
	"fmt"

	"gamestore-backend/internal/domains/game/model"
	"gamestore-backend/internal/domains/game/repository"
)

// Page - một trang kết quả cùng tổng số bản ghi khớp filter
type Page struct {
	Games      []model.Game
	TotalCount int
	PageNumber int
	PageSize   int
}

// TotalPages rounds TotalCount / PageSize up
func (p Page) TotalPages() int {
	if p.PageSize < 1 {
		return 0
	}
	return (p.TotalCount + p.PageSize - 1) / p.PageSize
}

// Paginate counts and lists with the same filter value, so the total and the page
// always describe the same predicate. Query bounds are validated by the caller.
func Paginate(ctx context.Context, repo repository.RepositoryInterface, q model.ListGamesQuery) (Page, error) {
	filter := model.GameFilter{Genre: q.Filter}

	total, err := repo.Count(ctx, filter)
	if err != nil {
		return Page{}, fmt.Errorf("count games: %w", err)
	}

	games, err := repo.List(ctx, q.PageNumber, q.PageSize, filter)
	if err != nil {
		return Page{}, fmt.Errorf("list games: %w", err)
	}

	return Page{
		Games:      games,
		TotalCount: total,
		PageNumber: q.PageNumber,
		PageSize:   q.PageSize,
	}, nil
}
