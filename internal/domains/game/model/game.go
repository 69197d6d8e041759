package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Game - Domain Entity, the only record type the store manages
type Game struct {
	ID          int             `json:"id" db:"id"`
	Name        string          `json:"name" db:"name"`
	Genre       string          `json:"genre" db:"genre"`
	Price       decimal.Decimal `json:"price" db:"price"`
	ReleaseDate time.Time       `json:"release_date" db:"release_date"`
	ImageURI    string          `json:"image_uri" db:"image_uri"`
}

// Field limits shared by validation and the database schema
const (
	NameMaxLength     = 100
	GenreMaxLength    = 50
	ImageURIMaxLength = 100
)

var (
	PriceMin = decimal.Zero
	PriceMax = decimal.NewFromInt(150)
)

// Equal so sánh toàn bộ field (decimal và time không so sánh được bằng ==)
func (g Game) Equal(other Game) bool {
	return g.ID == other.ID &&
		g.Name == other.Name &&
		g.Genre == other.Genre &&
		g.Price.Equal(other.Price) &&
		g.ReleaseDate.Equal(other.ReleaseDate) &&
		g.ImageURI == other.ImageURI
}

// SeedGames - catalog mặc định khi store rỗng
func SeedGames() []Game {
	const placeholder = "https://placehold.co/100"
	return []Game{
		{
			ID:          1,
			Name:        "Yakuza 0",
			Genre:       "Action",
			Price:       decimal.RequireFromString("29.99"),
			ReleaseDate: time.Date(2015, 12, 25, 0, 0, 0, 0, time.UTC),
			ImageURI:    placeholder,
		},
		{
			ID:          2,
			Name:        "Final Fantasy XIV",
			Genre:       "Roleplaying",
			Price:       decimal.RequireFromString("59.99"),
			ReleaseDate: time.Date(2010, 9, 30, 0, 0, 0, 0, time.UTC),
			ImageURI:    placeholder,
		},
		{
			ID:          3,
			Name:        "FIFA 23",
			Genre:       "Sports",
			Price:       decimal.RequireFromString("69.99"),
			ReleaseDate: time.Date(2022, 9, 27, 0, 0, 0, 0, time.UTC),
			ImageURI:    placeholder,
		},
	}
}

// GameFilter - điều kiện lọc dùng chung cho Count và List
type GameFilter struct {
	Genre *string // nil: không lọc; khác nil: so khớp chính xác, phân biệt hoa thường
}

// GenreFilter is a convenience constructor for an exact genre filter
func GenreFilter(genre string) GameFilter {
	return GameFilter{Genre: &genre}
}

// Matches applies the filter predicate to g
func (f GameFilter) Matches(g Game) bool {
	return f.Genre == nil || g.Genre == *f.Genre
}
