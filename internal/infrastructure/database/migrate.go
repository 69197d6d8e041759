package database

import (
	"context"
	"fmt"

	"gamestore-backend/internal/domains/game/model"
	pkgdb "gamestore-backend/pkg/database"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

const createGamesTable = `
CREATE TABLE IF NOT EXISTS games (
	id           INTEGER PRIMARY KEY,
	name         VARCHAR(100) NOT NULL CHECK (char_length(name) > 0),
	genre        VARCHAR(50)  NOT NULL CHECK (char_length(genre) > 0),
	price        NUMERIC      NOT NULL CHECK (price >= 0 AND price <= 150),
	release_date TIMESTAMPTZ  NOT NULL,
	image_uri    VARCHAR(100) NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_games_genre ON games (genre);
`

// Migrate tạo bảng games nếu chưa có; seed catalog mặc định khi bảng rỗng
func Migrate(ctx context.Context, pool *pgxpool.Pool, seed []model.Game) error {
	return pkgdb.WithTransaction(ctx, pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, createGamesTable); err != nil {
			return fmt.Errorf("create games table: %w", err)
		}

		if len(seed) == 0 {
			return nil
		}

		var count int
		if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM games`).Scan(&count); err != nil {
			return fmt.Errorf("count games: %w", err)
		}
		if count > 0 {
			return nil
		}

		batch := &pgx.Batch{}
		for _, g := range seed {
			batch.Queue(
				`INSERT INTO games (id, name, genre, price, release_date, image_uri) VALUES ($1, $2, $3, $4, $5, $6)`,
				g.ID, g.Name, g.Genre, g.Price, g.ReleaseDate, g.ImageURI,
			)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("seed games: %w", err)
		}

		log.Info().Int("games", len(seed)).Msg("[DATABASE] Seeded games catalog")
		return nil
	})
}
