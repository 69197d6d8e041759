package model

import (
	"errors"
	"strconv"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/shopspring/decimal"
)

// ========================================
// WRITE DTOs
// ========================================

// SaveGameRequest - payload cho create và update (update thay thế toàn bộ field)
type SaveGameRequest struct {
	Name        string          `json:"name"`
	Genre       string          `json:"genre"`
	Price       decimal.Decimal `json:"price"`
	ReleaseDate time.Time       `json:"releaseDate"`
	ImageURI    string          `json:"imageUri"`
}

// Validate checks every field and reports all violations at once
func (r SaveGameRequest) Validate() error {
	err := validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			validation.By(notBlank("name is required")),
			validation.RuneLength(1, NameMaxLength).Error("name must be 1-100 characters"),
		),
		validation.Field(&r.Genre,
			validation.Required.Error("genre is required"),
			validation.By(notBlank("genre is required")),
			validation.RuneLength(1, GenreMaxLength).Error("genre must be 1-50 characters"),
		),
		validation.Field(&r.Price, validation.By(priceInRange)),
		validation.Field(&r.ReleaseDate,
			validation.Required.Error("release date is required"),
		),
		validation.Field(&r.ImageURI,
			validation.Required.Error("image uri is required"),
			validation.RuneLength(1, ImageURIMaxLength).Error("image uri must be at most 100 characters"),
			is.RequestURL.Error("image uri must be an absolute URI"),
		),
	)
	return NewValidationError(err)
}

// ToGame maps the payload onto a record; id is assigned by the store (create) or the route (update)
func (r SaveGameRequest) ToGame(id int) Game {
	return Game{
		ID:          id,
		Name:        r.Name,
		Genre:       r.Genre,
		Price:       r.Price,
		ReleaseDate: r.ReleaseDate,
		ImageURI:    r.ImageURI,
	}
}

// notBlank rejects whitespace-only strings, which validation.Required lets through
func notBlank(message string) validation.RuleFunc {
	return func(value interface{}) error {
		s, _ := value.(string)
		if strings.TrimSpace(s) == "" {
			return errors.New(message)
		}
		return nil
	}
}

func priceInRange(value interface{}) error {
	price, ok := value.(decimal.Decimal)
	if !ok {
		return errors.New("price must be a decimal number")
	}
	if price.LessThan(PriceMin) || price.GreaterThan(PriceMax) {
		return errors.New("price must be between 0 and 150")
	}
	return nil
}

// ========================================
// QUERY DTOs
// ========================================

const (
	DefaultPageNumber = 1
	DefaultPageSize   = 5
	MaxPageSize       = 100
)

// ListGamesQuery - query params của GET /games
type ListGamesQuery struct {
	PageNumber int     `json:"pageNumber"`
	PageSize   int     `json:"pageSize"`
	Filter     *string `json:"filter,omitempty"` // genre, so khớp chính xác
}

// DefaultListGamesQuery returns page 1 with the default page size and no filter
func DefaultListGamesQuery() ListGamesQuery {
	return ListGamesQuery{PageNumber: DefaultPageNumber, PageSize: DefaultPageSize}
}

// ParseListGamesQuery builds a query from raw query-string values.
// Empty values fall back to defaults; non-integers are reported as validation failures.
func ParseListGamesQuery(pageNumber, pageSize, filter string) (ListGamesQuery, error) {
	q := DefaultListGamesQuery()
	errs := validation.Errors{}

	if s := strings.TrimSpace(pageNumber); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			errs["pageNumber"] = errors.New("page number must be an integer")
		} else {
			q.PageNumber = n
		}
	}

	if s := strings.TrimSpace(pageSize); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			errs["pageSize"] = errors.New("page size must be an integer")
		} else {
			q.PageSize = n
		}
	}

	if filter != "" {
		f := filter
		q.Filter = &f
	}

	if len(errs) > 0 {
		return q, NewValidationError(errs)
	}
	return q, nil
}

// Validate enforces pageNumber >= 1 and 1 <= pageSize <= 100
func (q ListGamesQuery) Validate() error {
	err := validation.ValidateStruct(&q,
		validation.Field(&q.PageNumber,
			validation.Required.Error("page number must be at least 1"),
			validation.Min(1).Error("page number must be at least 1"),
		),
		validation.Field(&q.PageSize,
			validation.Required.Error("page size must be at least 1"),
			validation.Min(1).Error("page size must be at least 1"),
			validation.Max(MaxPageSize).Error("page size must be at most 100"),
		),
	)
	return NewValidationError(err)
}
