package service

import (
	"context"
	"errors"
	"fmt"

	"gamestore-backend/internal/domains/game/model"
	"gamestore-backend/internal/domains/game/repository"
)

// dispatcher implements ServiceInterface.
// Every request goes Received -> Authorized? -> Validated? -> Executed -> Projected,
// leaving early with a failure outcome at either gate.
type dispatcher struct {
	repo repository.RepositoryInterface
}

// NewDispatcher creates the game service
// Dependency injection pattern - receives repository from container
func NewDispatcher(repo repository.RepositoryInterface) ServiceInterface {
	return &dispatcher{repo: repo}
}

// requiredCapability - list mở cho mọi người, get cần read, ghi cần write
func requiredCapability(op Operation) string {
	switch {
	case op.IsWrite():
		return model.CapabilityWrite
	case op == OpGet:
		return model.CapabilityRead
	default:
		return ""
	}
}

func (d *dispatcher) Dispatch(ctx context.Context, req Request) (Outcome, error) {
	strategy, ok := model.StrategyFor(req.Version)
	if !ok {
		return failed(model.NewFieldError("version", fmt.Sprintf("unsupported api version %d", int(req.Version)))), nil
	}

	// Gate 1: authorization, before any store access
	if capability := requiredCapability(req.Operation); capability != "" && !req.Principal.Has(capability) {
		return failed(&model.UnauthorizedError{
			Capability:    capability,
			Authenticated: req.Principal.Authenticated,
		}), nil
	}

	// Gate 2 (phần chung): id trên path
	if req.Operation != OpList && req.Operation != OpCreate && req.ID < 1 {
		return failed(model.NewFieldError("id", "id must be a positive integer")), nil
	}

	switch req.Operation {
	case OpList:
		return d.list(ctx, strategy, req)
	case OpGet:
		return d.get(ctx, strategy, req)
	case OpCreate:
		return d.create(ctx, strategy, req)
	case OpUpdate:
		return d.update(ctx, strategy, req)
	case OpDelete:
		return d.delete(ctx, req)
	default:
		return Outcome{}, fmt.Errorf("unknown operation %q", req.Operation)
	}
}

func (d *dispatcher) Health(ctx context.Context) error {
	return d.repo.Ping(ctx)
}

func (d *dispatcher) list(ctx context.Context, strategy model.Strategy, req Request) (Outcome, error) {
	if err := req.Query.Validate(); err != nil {
		return failed(err), nil
	}

	page, err := Paginate(ctx, d.repo, req.Query)
	if err != nil {
		return Outcome{}, err
	}

	return Outcome{
		Status: StatusOK,
		Body:   model.ProjectAll(strategy.Projector, page.Games),
		Pagination: &PaginationMeta{
			TotalCount: page.TotalCount,
			PageSize:   page.PageSize,
			TotalPages: page.TotalPages(),
		},
	}, nil
}

func (d *dispatcher) get(ctx context.Context, strategy model.Strategy, req Request) (Outcome, error) {
	g, err := d.repo.Get(ctx, req.ID)
	if err != nil {
		return Outcome{}, fmt.Errorf("get game %d: %w", req.ID, err)
	}
	if g == nil {
		return failed(&model.NotFoundError{ID: req.ID}), nil
	}

	return Outcome{Status: StatusOK, Body: strategy.Projector.Project(*g)}, nil
}

func (d *dispatcher) create(ctx context.Context, strategy model.Strategy, req Request) (Outcome, error) {
	payload, err := decodeWrite(strategy, req.Body)
	if err != nil {
		return failed(err), nil
	}

	created, err := d.repo.Create(ctx, payload.ToGame(0))
	if err != nil {
		return Outcome{}, fmt.Errorf("create game: %w", err)
	}

	// Response của thao tác ghi luôn dùng v1, bất kể version của request
	return Outcome{
		Status:     StatusCreated,
		Body:       writeProjector.Project(created),
		LocationID: created.ID,
	}, nil
}

func (d *dispatcher) update(ctx context.Context, strategy model.Strategy, req Request) (Outcome, error) {
	payload, err := decodeWrite(strategy, req.Body)
	if err != nil {
		return failed(err), nil
	}

	existing, err := d.repo.Get(ctx, req.ID)
	if err != nil {
		return Outcome{}, fmt.Errorf("get game %d: %w", req.ID, err)
	}
	if existing == nil {
		return failed(&model.NotFoundError{ID: req.ID}), nil
	}

	if err := d.repo.Update(ctx, payload.ToGame(req.ID)); err != nil {
		// bị xoá giữa Get và Update
		if model.IsNotFound(err) {
			return failed(err), nil
		}
		return Outcome{}, fmt.Errorf("update game %d: %w", req.ID, err)
	}

	return Outcome{Status: StatusNoContent}, nil
}

// delete trả về NoContent kể cả khi id không tồn tại, khác với update
func (d *dispatcher) delete(ctx context.Context, req Request) (Outcome, error) {
	if err := d.repo.Delete(ctx, req.ID); err != nil {
		return Outcome{}, fmt.Errorf("delete game %d: %w", req.ID, err)
	}
	return Outcome{Status: StatusNoContent}, nil
}

// writeProjector - writes are v1-only, so their responses are always v1
var writeProjector model.Projector = model.V1Projector{}

// decodeWrite decodes with the version's own input mapper (v1 when it has none) and validates.
// Type errors from decoding and rule violations are reported together, one entry per field.
func decodeWrite(strategy model.Strategy, body []byte) (model.SaveGameRequest, error) {
	input := strategy.Input
	if input == nil {
		input = model.Strategies[model.V1].Input
	}

	payload, decodeErr := input.Decode(body)
	if decodeErr != nil {
		var verr *model.ValidationError
		if !errors.As(decodeErr, &verr) || verr.Has("body") {
			return payload, decodeErr
		}
	}

	// lỗi decode của một field thay cho lỗi "required" sinh ra từ zero value
	if err := model.MergeValidationErrors(payload.Validate(), decodeErr); err != nil {
		return payload, err
	}
	return payload, nil
}

// failed maps a domain error onto its outcome status
func failed(err error) Outcome {
	status := StatusValidationFailed
	switch {
	case model.IsUnauthorized(err):
		status = StatusUnauthorized
	case model.IsNotFound(err):
		status = StatusNotFound
	}
	return Outcome{Status: status, Err: err}
}
