package service

import (
	"context"
	"fmt"
	"hotelier/config"
	"hotelier/infras/otel"
	"hotelier/infras/postgres"
	"hotelier/internal/domains/catalog/model"
	"hotelier/internal/domains/catalog/model/dto"
	"hotelier/internal/domains/catalog/repository"
	"hotelier/shared"
	"hotelier/shared/cache"
	"hotelier/shared/constant"
	gDto "hotelier/shared/dto"
	"hotelier/shared/failure"
	gModel "hotelier/shared/model"
	"hotelier/shared/timezone"
	"maps"

	"github.com/rs/zerolog/log"
)

// Catalog is the list/add/edit/view/delete surface shared by every catalog kind.
type Catalog[T model.Entry[T]] interface {
	Kind() model.Kind
	Create(ctx context.Context, entry T) (int64, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (dto.Page[T], error)
	Get(ctx context.Context, id int64) (T, error)
	Update(ctx context.Context, id int64, entry T) error
	Delete(ctx context.Context, id int64) error
}

type serviceImpl[T model.Entry[T]] struct {
	kind  model.Kind
	repo  repository.Catalog[T]
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New[T model.Entry[T]](kind model.Kind, repo repository.Catalog[T], cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Catalog[T] {
	return &serviceImpl[T]{
		kind:  kind,
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl[T]) Kind() model.Kind {
	return s.kind
}

func (s *serviceImpl[T]) scope(ctx context.Context, op string) (context.Context, otel.Scope) {
	return s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+"."+s.kind.Table+"."+op)
}

func (s *serviceImpl[T]) cacheKey(parts ...any) string {
	return shared.BuildCacheKey("catalog:"+s.kind.Table, parts...)
}

func (s *serviceImpl[T]) byID(id int64) gDto.FilterGroup {
	return shared.FilterByID(id, model.FieldID, s.kind.Table)
}

func (s *serviceImpl[T]) invalidate(ctx context.Context) {
	go shared.InvalidateCaches(context.WithoutCancel(ctx), s.cache, s.cacheKey())
}

// storeError maps constraint violations. A foreign key failure on delete means the entry is in use;
// on insert or update it means a referenced entry does not exist.
func (s *serviceImpl[T]) storeError(err error, deleting bool) error {
	switch postgres.ErrorCode(err) {
	case constant.PqErrorCodeUniqueViolation:
		return failure.Conflict(s.kind.Name + " already exists")
	case constant.PqErrorCodeFkViolation:
		if deleting {
			return failure.Conflict(s.kind.Name + " is in use and cannot be deleted")
		}

		return failure.BadRequestFromString(s.kind.Name + " references a record that does not exist")
	}

	return err
}

func (s *serviceImpl[T]) Create(ctx context.Context, entry T) (id int64, err error) {
	ctx, scope := s.scope(ctx, "Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	id, err = s.repo.InsertReturningID(ctx, entry.Prepared(gModel.NewMetadata(shared.Actor(ctx), timezone.Now())))
	if err != nil {
		log.Error().Err(err).Str("catalog", s.kind.Table).Msg("failed to create catalog entry")

		return 0, s.storeError(fmt.Errorf("failed to create %s: %w", s.kind.Name, err), false)
	}

	s.invalidate(ctx)

	return id, nil
}

func (s *serviceImpl[T]) GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.Page[T], err error) {
	ctx, scope := s.scope(ctx, "GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	key := shared.BuildCacheKeyWithQuery(s.cacheKey("list"), params, filter)

	return cache.Remember(ctx, s.cache, key, s.cfg.Cache.TTL, func(ctx context.Context) (page dto.Page[T], err error) {
		total, err := s.repo.Count(ctx, filter)
		if err != nil {
			return page, fmt.Errorf("failed to count %s: %w", s.kind.Table, err)
		}

		entries, err := s.repo.GetAll(ctx, params, filter)
		if err != nil {
			return page, fmt.Errorf("failed to list %s: %w", s.kind.Table, err)
		}

		page.FromEntries(entries, total, params.Limit)

		return page, nil
	})
}

func (s *serviceImpl[T]) Get(ctx context.Context, id int64) (res T, err error) {
	ctx, scope := s.scope(ctx, "Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return cache.Remember(ctx, s.cache, s.cacheKey("get", id), s.cfg.Cache.TTL, func(ctx context.Context) (T, error) {
		entry, err := s.repo.Get(ctx, s.byID(id))
		if err != nil {
			return entry, fmt.Errorf("failed to get %s: %w", s.kind.Name, err)
		}

		if entry.EntryID() == 0 {
			return entry, failure.NotFound(s.kind.Name + " not found")
		}

		return entry, nil
	})
}

func (s *serviceImpl[T]) mustExist(ctx context.Context, id int64) error {
	exist, err := s.repo.Exist(ctx, s.byID(id))
	if err != nil {
		return fmt.Errorf("failed to check %s: %w", s.kind.Name, err)
	}

	if !exist {
		return failure.NotFound(s.kind.Name + " not found")
	}

	return nil
}

// Update replaces every editable column of the entry.
func (s *serviceImpl[T]) Update(ctx context.Context, id int64, entry T) (err error) {
	ctx, scope := s.scope(ctx, "Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = s.mustExist(ctx, id); err != nil {
		return err
	}

	fields := shared.TransformFields(struct{}{}, shared.Actor(ctx))
	maps.Copy(fields, model.Columns(entry))

	if err = s.repo.Update(ctx, fields, s.byID(id)); err != nil {
		log.Error().Err(err).Str("catalog", s.kind.Table).Int64("id", id).Msg("failed to update catalog entry")

		return s.storeError(fmt.Errorf("failed to update %s: %w", s.kind.Name, err), false)
	}

	s.invalidate(ctx)

	return nil
}

func (s *serviceImpl[T]) Delete(ctx context.Context, id int64) (err error) {
	ctx, scope := s.scope(ctx, "Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = s.mustExist(ctx, id); err != nil {
		return err
	}

	if err = s.repo.Delete(ctx, s.byID(id)); err != nil {
		log.Error().Err(err).Str("catalog", s.kind.Table).Int64("id", id).Msg("failed to delete catalog entry")

		return s.storeError(fmt.Errorf("failed to delete %s: %w", s.kind.Name, err), true)
	}

	s.invalidate(ctx)

	return nil
}
