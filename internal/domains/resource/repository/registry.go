package repository

import (
	"context"
	"fmt"
	"hotelier/internal/domains/resource/model"
	"hotelier/shared"
	gDto "hotelier/shared/dto"
	gRepo "hotelier/shared/repository"

	"github.com/jmoiron/sqlx"
)

// Resource is a kind-agnostic view over the rooms or halls table.
type Resource interface {
	Kind() model.Kind
	Table() model.Table
	InsertReturningID(ctx context.Context, resource model.Resource) (int64, error)
	Get(ctx context.Context, id int64) (model.Resource, bool, error)
	LockTx(ctx context.Context, sqltx *sqlx.Tx, id int64) (model.Resource, bool, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]model.Resource, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Exist(ctx context.Context, id int64) (bool, error)
	Update(ctx context.Context, fields map[string]any, id int64) error
	Delete(ctx context.Context, id int64) error
}

type Registry struct {
	rooms Resource
	halls Resource
}

func NewRegistry(rooms Room, halls Hall) *Registry {
	return &Registry{
		rooms: &storeAdapter[model.Room]{store: rooms, kind: model.KindRoom},
		halls: &storeAdapter[model.Hall]{store: halls, kind: model.KindHall},
	}
}

func (r *Registry) For(kind model.Kind) (Resource, error) {
	switch kind {
	case model.KindRoom:
		return r.rooms, nil
	case model.KindHall:
		return r.halls, nil
	}

	return nil, fmt.Errorf("unknown resource kind %q", kind)
}

type storeAdapter[T model.Resource] struct {
	store gRepo.Store[T]
	kind  model.Kind
}

func (a *storeAdapter[T]) Kind() model.Kind {
	return a.kind
}

func (a *storeAdapter[T]) Table() model.Table {
	return model.TableFor(a.kind)
}

func (a *storeAdapter[T]) byID(id int64) gDto.FilterGroup {
	return shared.FilterByID(id, model.FieldID, a.Table().Name)
}

func (a *storeAdapter[T]) InsertReturningID(ctx context.Context, resource model.Resource) (int64, error) {
	typed, ok := resource.(T)
	if !ok {
		return 0, fmt.Errorf("cannot store %s as %s", resource.ResourceKind(), a.kind)
	}

	return a.store.InsertReturningID(ctx, typed) //nolint:wrapcheck
}

func (a *storeAdapter[T]) Get(ctx context.Context, id int64) (model.Resource, bool, error) {
	res, err := a.store.Get(ctx, a.byID(id))
	if err != nil {
		return nil, false, err //nolint:wrapcheck
	}

	return res, res.ResourceID() != 0, nil
}

func (a *storeAdapter[T]) LockTx(ctx context.Context, sqltx *sqlx.Tx, id int64) (model.Resource, bool, error) {
	res, err := a.store.LockTx(ctx, sqltx, a.byID(id))
	if err != nil {
		return nil, false, err //nolint:wrapcheck
	}

	return res, res.ResourceID() != 0, nil
}

func (a *storeAdapter[T]) GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]model.Resource, error) {
	rows, err := a.store.GetAll(ctx, params, filter)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	resources := make([]model.Resource, len(rows))
	for i, row := range rows {
		resources[i] = row
	}

	return resources, nil
}

func (a *storeAdapter[T]) Count(ctx context.Context, filter gDto.FilterGroup) (int, error) {
	return a.store.Count(ctx, filter) //nolint:wrapcheck
}

func (a *storeAdapter[T]) Exist(ctx context.Context, id int64) (bool, error) {
	return a.store.Exist(ctx, a.byID(id)) //nolint:wrapcheck
}

func (a *storeAdapter[T]) Update(ctx context.Context, fields map[string]any, id int64) error {
	return a.store.Update(ctx, fields, a.byID(id)) //nolint:wrapcheck
}

func (a *storeAdapter[T]) Delete(ctx context.Context, id int64) error {
	return a.store.Delete(ctx, a.byID(id)) //nolint:wrapcheck
}
