package action

import (
	"context"
	"errors"

	"treehouse/internal/app/keeper"
	"treehouse/internal/app/ports"
)

var (
	ErrInvalidRequest      = errors.New("invalid action request")
	ErrInvalidActionParams = errors.New("invalid action params")
)

// Writer is the single owner of the buddy state.
type Writer interface {
	Apply(ctx context.Context, op string, fn keeper.Mutation) keeper.Outcome
}

type UseCase struct {
	Keeper  Writer
	Metrics ports.ActionMetrics
}

// Execute dispatches req to its domain operation. Malformed requests are
// rejected; a well-formed request the buddy cannot act on (no stock, already
// unlocked) succeeds with Applied false.
func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	req = normalizeRequest(req)
	spec, ok := actionRegistry()[req.Type]
	if !ok {
		u.reject()
		return Response{}, ErrInvalidRequest
	}
	if spec.validate != nil && !spec.validate(req) {
		u.reject()
		return Response{}, ErrInvalidActionParams
	}
	return u.Keeper.Apply(ctx, string(req.Type), spec.mutation(req)), nil
}

// Tick applies one decay step. It satisfies tick.Target.
func (u UseCase) Tick(ctx context.Context) error {
	_, err := u.Execute(ctx, Request{Type: TypeTick})
	return err
}

func (u UseCase) reject() {
	if u.Metrics != nil {
		u.Metrics.RecordRejected()
	}
}
