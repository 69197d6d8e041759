package repository

import (
	"context"
	"errors"
	"fmt"

	"gamestore-backend/internal/domains/game/model"
	"gamestore-backend/pkg/database"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// postgresRepository - Raw SQL with pgxpool
type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository - Constructor
func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

const gameColumns = `id, name, genre, price, release_date, image_uri`

// genre = NULL nghĩa là không lọc
const genreFilterClause = `($1::text IS NULL OR genre = $1::text)`

func (r *postgresRepository) Count(ctx context.Context, filter model.GameFilter) (int, error) {
	query := `SELECT COUNT(*) FROM games WHERE ` + genreFilterClause

	var total int
	if err := r.pool.QueryRow(ctx, query, filter.Genre).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count games: %w", err)
	}
	return total, nil
}

func (r *postgresRepository) List(ctx context.Context, pageNumber, pageSize int, filter model.GameFilter) ([]model.Game, error) {
	games := []model.Game{}
	if pageSize < 1 {
		return games, nil
	}

	query := `SELECT ` + gameColumns + ` FROM games WHERE ` + genreFilterClause + `
		ORDER BY id ASC
		LIMIT $2 OFFSET $3`

	rows, err := r.pool.Query(ctx, query, filter.Genre, pageSize, pageOffset(pageNumber, pageSize))
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan game: %w", err)
		}
		games = append(games, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return games, nil
}

func (r *postgresRepository) Get(ctx context.Context, id int) (*model.Game, error) {
	query := `SELECT ` + gameColumns + ` FROM games WHERE id = $1`

	g, err := scanGame(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}
	return &g, nil
}

// Create assigns max(id)+1 under a table lock so concurrent creates never collide
func (r *postgresRepository) Create(ctx context.Context, game model.Game) (model.Game, error) {
	return database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (model.Game, error) {
		if _, err := tx.Exec(ctx, `LOCK TABLE games IN SHARE ROW EXCLUSIVE MODE`); err != nil {
			return model.Game{}, fmt.Errorf("failed to lock games table: %w", err)
		}

		query := `
			INSERT INTO games (` + gameColumns + `)
			SELECT COALESCE(MAX(id), 0) + 1, $1, $2, $3, $4, $5 FROM games
			RETURNING id`

		created := game
		err := tx.QueryRow(ctx, query,
			game.Name, game.Genre, game.Price, game.ReleaseDate, game.ImageURI,
		).Scan(&created.ID)
		if err != nil {
			return model.Game{}, fmt.Errorf("failed to create game: %w", err)
		}
		return created, nil
	})
}

func (r *postgresRepository) Update(ctx context.Context, game model.Game) error {
	query := `
		UPDATE games
		SET name = $2, genre = $3, price = $4, release_date = $5, image_uri = $6
		WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query,
		game.ID, game.Name, game.Genre, game.Price, game.ReleaseDate, game.ImageURI,
	)
	if err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return &model.NotFoundError{ID: game.ID}
	}
	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, id int) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM games WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}
	return nil
}

func (r *postgresRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

func scanGame(row pgx.Row) (model.Game, error) {
	var g model.Game
	err := row.Scan(&g.ID, &g.Name, &g.Genre, &g.Price, &g.ReleaseDate, &g.ImageURI)
	return g, err
}
