package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Version - API version tag
type Version int

const (
	V1 Version = 1
	V2 Version = 2
)

func (v Version) String() string {
	return fmt.Sprintf("v%d", int(v))
}

// ParseVersion accepts "1", "v1", "1.0" and the same for 2
func ParseVersion(s string) (Version, bool) {
	switch s {
	case "1", "v1", "1.0":
		return V1, true
	case "2", "v2", "2.0":
		return V2, true
	default:
		return 0, false
	}
}

// ========================================
// OUTPUT SHAPES
// ========================================

// GameV1 - wire contract v1
type GameV1 struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Genre       string          `json:"genre"`
	Price       decimal.Decimal `json:"price"`
	ReleaseDate time.Time       `json:"releaseDate"`
	ImageURI    string          `json:"imageUri"`
}

// GameV2 - wire contract v2. Same fields today; kept as its own type so v2 can evolve alone.
type GameV2 struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Genre       string          `json:"genre"`
	Price       decimal.Decimal `json:"price"`
	ReleaseDate time.Time       `json:"releaseDate"`
	ImageURI    string          `json:"imageUri"`
}

// ========================================
// PROJECTORS
// ========================================

// Projector maps an internal record to a version-specific representation.
// Project must be total and side-effect free.
type Projector interface {
	Version() Version
	Project(g Game) any
}

// InputMapper decodes a version-specific write payload
type InputMapper interface {
	Decode(body []byte) (SaveGameRequest, error)
}

type V1Projector struct{}

func (V1Projector) Version() Version { return V1 }

func (V1Projector) Project(g Game) any {
	return GameV1{
		ID:          g.ID,
		Name:        g.Name,
		Genre:       g.Genre,
		Price:       g.Price,
		ReleaseDate: g.ReleaseDate,
		ImageURI:    g.ImageURI,
	}
}

type V2Projector struct{}

func (V2Projector) Version() Version { return V2 }

func (V2Projector) Project(g Game) any {
	return GameV2{
		ID:          g.ID,
		Name:        g.Name,
		Genre:       g.Genre,
		Price:       g.Price,
		ReleaseDate: g.ReleaseDate,
		ImageURI:    g.ImageURI,
	}
}

// V1Input decodes the v1 create/update JSON payload.
// Each field is decoded on its own so a type error is reported against that field
// instead of failing the whole body. Keys match case-insensitively; unknown keys are ignored.
type V1Input struct{}

func (V1Input) Decode(body []byte) (SaveGameRequest, error) {
	var req SaveGameRequest
	if len(bytes.TrimSpace(body)) == 0 {
		return req, NewFieldError("body", "request body is required")
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil || raw == nil {
		return req, NewFieldError("body", "request body must be a JSON object")
	}

	fields := make(map[string]json.RawMessage, len(raw))
	for k, v := range raw {
		fields[strings.ToLower(k)] = v
	}

	errs := map[string]string{}
	decodeField(fields, errs, "name", &req.Name, decodeString, "name must be a string")
	decodeField(fields, errs, "genre", &req.Genre, decodeString, "genre must be a string")
	decodeField(fields, errs, "price", &req.Price, decodeDecimal, "price must be a number")
	decodeField(fields, errs, "releaseDate", &req.ReleaseDate, decodeDate, "release date must be a date (YYYY-MM-DD) or an RFC 3339 timestamp")
	decodeField(fields, errs, "imageUri", &req.ImageURI, decodeString, "image uri must be a string")

	if len(errs) > 0 {
		return req, &ValidationError{Fields: errs}
	}
	return req, nil
}

// decodeField leaves dst at its zero value when the key is absent or null
func decodeField[T any](fields map[string]json.RawMessage, errs map[string]string, name string, dst *T, decode func(json.RawMessage) (T, bool), message string) {
	v, ok := fields[strings.ToLower(name)]
	if !ok || bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
		return
	}
	out, ok := decode(v)
	if !ok {
		errs[name] = message
		return
	}
	*dst = out
}

func decodeString(v json.RawMessage) (string, bool) {
	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		return "", false
	}
	return s, true
}

// decodeDecimal accepts a JSON number or a numeric string
func decodeDecimal(v json.RawMessage) (decimal.Decimal, bool) {
	text := string(bytes.TrimSpace(v))
	if s, ok := decodeString(v); ok {
		text = strings.TrimSpace(s)
	}
	d, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}

// releaseDateLayouts - date-only values are midnight UTC
var releaseDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	time.DateOnly,
}

func decodeDate(v json.RawMessage) (time.Time, bool) {
	s, ok := decodeString(v)
	if !ok {
		return time.Time{}, false
	}
	s = strings.TrimSpace(s)
	for _, layout := range releaseDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ProjectAll applies p to every game, preserving order
func ProjectAll(p Projector, games []Game) []any {
	out := make([]any, len(games))
	for i, g := range games {
		out[i] = p.Project(g)
	}
	return out
}

// ========================================
// STRATEGY TABLE
// ========================================

// Strategy pairs a version's output projection with its (optional) input mapping
type Strategy struct {
	Projector Projector
	Input     InputMapper // nil: version does not accept writes
}

// Strategies - bảng strategy theo version; thêm version mới chỉ cần thêm entry ở đây
var Strategies = map[Version]Strategy{
	V1: {Projector: V1Projector{}, Input: V1Input{}},
	V2: {Projector: V2Projector{}},
}

// StrategyFor looks up the strategy for v
func StrategyFor(v Version) (Strategy, bool) {
	s, ok := Strategies[v]
	return s, ok
}
