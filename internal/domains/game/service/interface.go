package service

import (
	"context"
	"fmt"

	"gamestore-backend/internal/domains/game/model"
)

// Operation - thao tác trên resource game
type Operation string

const (
	OpList   Operation = "list"
	OpGet    Operation = "get"
	OpCreate Operation = "create"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
)

// IsWrite reports whether op mutates the store
func (op Operation) IsWrite() bool {
	return op == OpCreate || op == OpUpdate || op == OpDelete
}

// Request - inbound operation, đã được transport layer chuẩn hoá
type Request struct {
	Operation Operation
	Version   model.Version
	Principal model.Principal
	ID        int                  // get, update, delete
	Query     model.ListGamesQuery // list
	Body      []byte               // create, update: raw versioned payload
}

// Status - kết quả ở mức contract, transport tự dịch sang HTTP
type Status int

const (
	StatusOK Status = iota
	StatusCreated
	StatusNoContent
	StatusNotFound
	StatusValidationFailed
	StatusUnauthorized
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusCreated:
		return "created"
	case StatusNoContent:
		return "noContent"
	case StatusNotFound:
		return "notFound"
	case StatusValidationFailed:
		return "validationFailed"
	case StatusUnauthorized:
		return "unauthorized"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// PaginationMeta travels out of band (X-Pagination header), never in the body
type PaginationMeta struct {
	TotalCount int `json:"totalCount"`
	PageSize   int `json:"pageSize"`
	TotalPages int `json:"totalPages"`
}

// Outcome - outbound result of a dispatched request
type Outcome struct {
	Status     Status
	Body       any
	Pagination *PaginationMeta
	LocationID int   // set on StatusCreated
	Err        error // domain error behind a failure status
}

// ServiceInterface - entry point cho transport layer
type ServiceInterface interface {
	// Dispatch runs the request through authorization, validation, execution and projection.
	// The error return is reserved for infrastructure failures.
	Dispatch(ctx context.Context, req Request) (Outcome, error)

	// Health checks the backing store
	Health(ctx context.Context) error
}
