package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"hotelier/infras/otel"
	"hotelier/infras/postgres"
	"hotelier/shared/constant"
	"hotelier/shared/dto"
	"hotelier/shared/logger"
	"maps"

	"github.com/jmoiron/sqlx"
)

type execer interface {
	NamedExecContext(ctx context.Context, query string, arg any) (sql.Result, error)
}

// queryer is satisfied by both *sqlx.DB and *sqlx.Tx.
type queryer interface {
	sqlx.QueryerContext
	Rebind(query string) string
}

// Repository is a generic sqlx store for one table. Reads go to the read pool,
// writes to the write pool, and every *Tx variant runs inside the caller's transaction.
type Repository[T any] struct {
	db     *postgres.Connection
	otel   otel.Otel
	entity string
	schema schema
}

func NewRepository[T any](entity, table, primary string, db *postgres.Connection, otl otel.Otel) Repository[T] {
	return Repository[T]{
		db:     db,
		otel:   otl,
		entity: entity,
		schema: newSchema[T](table, primary),
	}
}

func (repo *Repository[T]) span(ctx context.Context, op string) (context.Context, otel.Scope) {
	return repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName,
		fmt.Sprintf("%s.%s.%s", constant.OtelRepositoryScopeName, repo.entity, op))
}

// fail logs and records err on scope and wraps it with the action and entity name.
func (repo *Repository[T]) fail(scope otel.Scope, action string, err error) error {
	logger.ErrorWithStack(err)
	scope.TraceError(err)

	return fmt.Errorf("failed to %s (%s): %w", action, repo.entity, err)
}

func (repo *Repository[T]) Insert(ctx context.Context, model T) error {
	return repo.insert(ctx, repo.db.Write, model)
}

func (repo *Repository[T]) InsertTx(ctx context.Context, sqltx *sqlx.Tx, model T) error {
	return repo.insert(ctx, sqltx, model)
}

func (repo *Repository[T]) insert(ctx context.Context, exec execer, model T) error {
	ctx, scope := repo.span(ctx, "Insert")
	defer scope.End()

	query := repo.schema.insertQuery(false)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if _, err := exec.NamedExecContext(ctx, query, model); err != nil {
		return repo.fail(scope, "insert data", err)
	}

	return nil
}

// InsertReturningID inserts model and returns the generated primary key.
func (repo *Repository[T]) InsertReturningID(ctx context.Context, model T) (int64, error) {
	return repo.insertReturningID(ctx, repo.db.Write, model)
}

func (repo *Repository[T]) InsertReturningIDTx(ctx context.Context, sqltx *sqlx.Tx, model T) (int64, error) {
	return repo.insertReturningID(ctx, sqltx, model)
}

func (repo *Repository[T]) insertReturningID(ctx context.Context, exec sqlx.ExtContext, model T) (int64, error) {
	ctx, scope := repo.span(ctx, "InsertReturningID")
	defer scope.End()

	query := repo.schema.insertQuery(true)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	rows, err := sqlx.NamedQueryContext(ctx, exec, query, model)
	if err != nil {
		return 0, repo.fail(scope, "insert data", err)
	}
	defer rows.Close()

	var id int64

	if rows.Next() {
		if err = rows.Scan(&id); err != nil {
			return 0, repo.fail(scope, "scan inserted id", err)
		}
	}

	if err = rows.Err(); err != nil {
		return 0, repo.fail(scope, "insert data", err)
	}

	return id, nil
}

// Get returns the first row matching filter, or the zero value when nothing matches.
func (repo *Repository[T]) Get(ctx context.Context, filter dto.FilterGroup, columns ...string) (T, error) {
	return repo.get(ctx, repo.db.Read, filter, "", columns)
}

func (repo *Repository[T]) GetTx(ctx context.Context, sqltx *sqlx.Tx, filter dto.FilterGroup, columns ...string) (T, error) {
	return repo.get(ctx, sqltx, filter, "", columns)
}

// LockTx reads the matching row with SELECT ... FOR UPDATE inside sqltx.
func (repo *Repository[T]) LockTx(ctx context.Context, sqltx *sqlx.Tx, filter dto.FilterGroup) (T, error) {
	return repo.get(ctx, sqltx, filter, "FOR UPDATE", nil)
}

func (repo *Repository[T]) get(ctx context.Context, q queryer, filter dto.FilterGroup, lock string, columns []string) (T, error) {
	ctx, scope := repo.span(ctx, "Get")
	defer scope.End()

	var model T

	where, args := whereClause(filter)
	query := repo.schema.selectQuery(where, columns, lock)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	err := namedGet(ctx, q, &model, query, args)
	if errors.Is(err, sql.ErrNoRows) {
		return model, nil
	}

	if err != nil {
		return model, repo.fail(scope, "get data", err)
	}

	return model, nil
}

func (repo *Repository[T]) GetAll(ctx context.Context, params dto.QueryParams, filter dto.FilterGroup, columns ...string) ([]T, error) {
	return repo.getAll(ctx, repo.db.Read, params, filter, columns)
}

func (repo *Repository[T]) GetAllTx(ctx context.Context, sqltx *sqlx.Tx, params dto.QueryParams, filter dto.FilterGroup, columns ...string) ([]T, error) {
	return repo.getAll(ctx, sqltx, params, filter, columns)
}

func (repo *Repository[T]) getAll(ctx context.Context, q queryer, params dto.QueryParams, filter dto.FilterGroup, columns []string) ([]T, error) {
	ctx, scope := repo.span(ctx, "GetAll")
	defer scope.End()

	where, args := whereClause(filter)
	query := repo.schema.selectQuery(where, columns, pageClause(params, args))
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	models := []T{}

	bound, boundArgs, err := sqlx.Named(query, args)
	if err != nil {
		return models, repo.fail(scope, "bind query", err)
	}

	if err = sqlx.SelectContext(ctx, q, &models, q.Rebind(bound), boundArgs...); err != nil {
		return models, repo.fail(scope, "get all data", err)
	}

	return models, nil
}

func (repo *Repository[T]) Exist(ctx context.Context, filter dto.FilterGroup) (bool, error) {
	ctx, scope := repo.span(ctx, "Exist")
	defer scope.End()

	where, args := whereClause(filter)
	if where == "" {
		return false, errRequiredFilter
	}

	query := repo.schema.existQuery(where)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var exist bool

	if err := namedGet(ctx, repo.db.Read, &exist, query, args); err != nil {
		return false, repo.fail(scope, "check exist data", err)
	}

	return exist, nil
}

func (repo *Repository[T]) Count(ctx context.Context, filter dto.FilterGroup) (int, error) {
	ctx, scope := repo.span(ctx, "Count")
	defer scope.End()

	where, args := whereClause(filter)
	query := repo.schema.countQuery(where)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var count int

	if err := namedGet(ctx, repo.db.Read, &count, query, args); err != nil {
		return 0, repo.fail(scope, "count data", err)
	}

	return count, nil
}

func (repo *Repository[T]) Update(ctx context.Context, fields map[string]any, filter dto.FilterGroup) error {
	return repo.update(ctx, repo.db.Write, fields, filter)
}

func (repo *Repository[T]) UpdateTx(ctx context.Context, sqltx *sqlx.Tx, fields map[string]any, filter dto.FilterGroup) error {
	return repo.update(ctx, sqltx, fields, filter)
}

func (repo *Repository[T]) update(ctx context.Context, exec execer, fields map[string]any, filter dto.FilterGroup) error {
	ctx, scope := repo.span(ctx, "Update")
	defer scope.End()

	where, args := whereClause(filter)
	if where == "" {
		return errRequiredFilter
	}

	query := repo.schema.updateQuery(fields, where)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)
	maps.Copy(args, fields)

	if _, err := exec.NamedExecContext(ctx, query, args); err != nil {
		return repo.fail(scope, "update data", err)
	}

	return nil
}

func (repo *Repository[T]) Delete(ctx context.Context, filter dto.FilterGroup) error {
	return repo.delete(ctx, repo.db.Write, filter)
}

func (repo *Repository[T]) DeleteTx(ctx context.Context, sqltx *sqlx.Tx, filter dto.FilterGroup) error {
	return repo.delete(ctx, sqltx, filter)
}

func (repo *Repository[T]) delete(ctx context.Context, exec execer, filter dto.FilterGroup) error {
	ctx, scope := repo.span(ctx, "Delete")
	defer scope.End()

	where, args := whereClause(filter)
	if where == "" {
		return errRequiredFilter
	}

	query := repo.schema.deleteQuery(where)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if _, err := exec.NamedExecContext(ctx, query, args); err != nil {
		return repo.fail(scope, "delete data", err)
	}

	return nil
}

// namedGet binds a :name query against args and scans one row into dest.
func namedGet(ctx context.Context, q queryer, dest any, query string, args map[string]any) error {
	bound, boundArgs, err := sqlx.Named(query, args)
	if err != nil {
		return fmt.Errorf("bind query: %w", err)
	}

	return sqlx.GetContext(ctx, q, dest, q.Rebind(bound), boundArgs...) //nolint:wrapcheck
}
