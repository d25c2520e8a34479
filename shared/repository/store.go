package repository

//go:generate go run go.uber.org/mock/mockgen -source=./store.go -destination=./mocks/store_mock.go -package=mocks

import (
	"context"
	"hotelier/shared/dto"

	"github.com/jmoiron/sqlx"
)

// Store is the method set of Repository[T]. Domain repositories embed it in their own interfaces.
type Store[T any] interface {
	Insert(ctx context.Context, model T) error
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model T) error
	InsertReturningID(ctx context.Context, model T) (int64, error)
	InsertReturningIDTx(ctx context.Context, sqltx *sqlx.Tx, model T) (int64, error)
	Get(ctx context.Context, filter dto.FilterGroup, columns ...string) (T, error)
	GetTx(ctx context.Context, sqltx *sqlx.Tx, filter dto.FilterGroup, columns ...string) (T, error)
	LockTx(ctx context.Context, sqltx *sqlx.Tx, filter dto.FilterGroup) (T, error)
	GetAll(ctx context.Context, params dto.QueryParams, filter dto.FilterGroup, columns ...string) ([]T, error)
	GetAllTx(ctx context.Context, sqltx *sqlx.Tx, params dto.QueryParams, filter dto.FilterGroup, columns ...string) ([]T, error)
	Exist(ctx context.Context, filter dto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter dto.FilterGroup) (int, error)
	Update(ctx context.Context, mod map[string]any, filter dto.FilterGroup) error
	UpdateTx(ctx context.Context, sqltx *sqlx.Tx, mod map[string]any, filter dto.FilterGroup) error
	Delete(ctx context.Context, filter dto.FilterGroup) error
	DeleteTx(ctx context.Context, sqltx *sqlx.Tx, filter dto.FilterGroup) error
}

var _ Store[struct{}] = (*Repository[struct{}])(nil)
