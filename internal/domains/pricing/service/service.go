package service

import (
	"context"
	"fmt"
	"hotelier/config"
	"hotelier/infras/otel"
	"hotelier/internal/domains/pricing/model"
	"hotelier/internal/domains/pricing/model/dto"
	"hotelier/internal/domains/pricing/repository"
	"hotelier/shared"
	"hotelier/shared/cache"
	"hotelier/shared/constant"
	gDto "hotelier/shared/dto"
	"hotelier/shared/failure"
	"hotelier/shared/timezone"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetPriceEntry        = "price_entry:get"
	cacheGetAllPriceEntry     = "price_entry:gets"
	cacheCountPriceEntry      = "price_entry:count"
	cacheApplicablePriceEntry = "price_entry:applicable"
)

type PriceEntry interface {
	Create(ctx context.Context, req dto.CreatePriceEntryRequest) (int64, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetPriceEntriesResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id int64) (dto.PriceEntryResponse, error)
	Update(ctx context.Context, req dto.UpdatePriceEntryRequest, id int64) error
	Delete(ctx context.Context, id int64) error
	// ListApplicable returns every entry of the room type covering date. Overlaps are returned as is.
	ListApplicable(ctx context.Context, roomTypeID int64, date time.Time) ([]dto.PriceEntryResponse, error)
}

type serviceImpl struct {
	repo  repository.PriceEntry
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.PriceEntry, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) PriceEntry {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) invalidate(ctx context.Context, id int64) {
	go func() {
		c := context.WithoutCancel(ctx)

		if id != 0 {
			if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetPriceEntry, id)); err != nil {
				log.Error().Err(err).Msg("failed to delete price entry from cache")
			}
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllPriceEntry)
		shared.InvalidateCaches(c, s.cache, cacheCountPriceEntry)
		shared.InvalidateCaches(c, s.cache, cacheApplicablePriceEntry)
	}()
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreatePriceEntryRequest) (id int64, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreatePriceEntry")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	entry, err := req.ToModel(shared.Actor(ctx))
	if err != nil {
		return 0, failure.BadRequest(err)
	}

	id, err = s.repo.InsertReturningID(ctx, entry)
	if err != nil {
		log.Error().Err(err).Msg("failed to create price entry")

		return 0, fmt.Errorf("failed to create price entry: %w", err)
	}

	s.invalidate(ctx, 0)

	return id, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetPriceEntriesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAllPriceEntries")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllPriceEntry, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for price entries")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		return res, err
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get price entries")

		return res, fmt.Errorf("failed to get price entries: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save price entries to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CountPriceEntries")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountPriceEntry, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count price entries")

		return res, fmt.Errorf("failed to count price entries: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save price entry count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) get(ctx context.Context, id int64) (model.PriceEntry, error) {
	entry, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Int64("id", id).Msg("failed to get price entry")

		return entry, fmt.Errorf("failed to get price entry: %w", err)
	}

	if entry.ID == 0 {
		return entry, failure.NotFound("price entry not found")
	}

	return entry, nil
}

func (s *serviceImpl) Get(ctx context.Context, id int64) (res dto.PriceEntryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetPriceEntry")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetPriceEntry, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for price entry")

		return res, nil
	}

	entry, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(entry)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save price entry to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdatePriceEntryRequest, id int64) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdatePriceEntry")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.IsEmpty() {
		return failure.BadRequestFromString("update request cannot be empty")
	}

	current, err := s.get(ctx, id)
	if err != nil {
		return err
	}

	fields, err := req.ToFields(current, shared.Actor(ctx))
	if err != nil {
		return failure.BadRequest(err)
	}

	if err = s.repo.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Int64("id", id).Msg("failed to update price entry")

		return fmt.Errorf("failed to update price entry: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id int64) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".DeletePriceEntry")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if price entry exists")

		return fmt.Errorf("failed to check if price entry exists: %w", err)
	}

	if !exist {
		return failure.NotFound("price entry not found")
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Int64("id", id).Msg("failed to delete price entry")

		return fmt.Errorf("failed to delete price entry: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) ListApplicable(ctx context.Context, roomTypeID int64, date time.Time) (res []dto.PriceEntryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListApplicablePriceEntries")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	day := timezone.Format(date, constant.DayFormat)
	cacheKey := shared.BuildCacheKey(cacheApplicablePriceEntry, roomTypeID, day)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for applicable price entries")

		return res, nil
	}

	params := gDto.QueryParams{SortBy: model.FieldStartDate, SortDir: gDto.SortDirAsc}

	models, err := s.repo.GetAll(ctx, params, dto.ApplicableFilter(roomTypeID, date))
	if err != nil {
		log.Error().Err(err).Int64("roomTypeID", roomTypeID).Msg("failed to list applicable price entries")

		return nil, fmt.Errorf("failed to list applicable price entries: %w", err)
	}

	res = make([]dto.PriceEntryResponse, 0, len(models))

	for _, mod := range models {
		var entry dto.PriceEntryResponse
		entry.FromModel(mod)
		res = append(res, entry)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save applicable price entries to cache")
		}
	}()

	return res, nil
}
