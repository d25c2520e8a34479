package service

import (
	"context"
	"fmt"
	"hotelier/config"
	"hotelier/infras/otel"
	"hotelier/infras/postgres"
	"hotelier/internal/domains/coupon/model"
	"hotelier/internal/domains/coupon/model/dto"
	"hotelier/internal/domains/coupon/repository"
	"hotelier/shared"
	"hotelier/shared/cache"
	"hotelier/shared/constant"
	gDto "hotelier/shared/dto"
	"hotelier/shared/failure"
	"hotelier/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetCoupon    = "coupon:get"
	cacheGetAllCoupon = "coupon:gets"
	cacheCountCoupon  = "coupon:count"

	msgDuplicateCode = "coupon code already exists"
)

type Coupon interface {
	Create(ctx context.Context, req dto.CreateCouponRequest) (int64, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetCouponsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id int64) (dto.CouponResponse, error)
	Update(ctx context.Context, req dto.UpdateCouponRequest, id int64) error
	Delete(ctx context.Context, id int64) error
}

type serviceImpl struct {
	repo  repository.Coupon
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Coupon, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Coupon {
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
			if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetCoupon, id)); err != nil {
				log.Error().Err(err).Msg("failed to delete coupon from cache")
			}
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllCoupon)
		shared.InvalidateCaches(c, s.cache, cacheCountCoupon)
	}()
}

// codeTaken reports whether another coupon already uses code. exceptID is ignored when zero.
func (s *serviceImpl) codeTaken(ctx context.Context, code string, exceptID int64) (bool, error) {
	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldCode, Operator: gDto.FilterOperatorEq, Value: code, Table: model.TableName},
		},
	}

	if exceptID != 0 {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field: model.FieldID, Operator: gDto.FilterOperatorNotEq, Value: exceptID, Table: model.TableName,
		})
	}

	count, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Str("code", code).Msg("failed to check coupon code")

		return false, fmt.Errorf("failed to check coupon code: %w", err)
	}

	return count > 0, nil
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateCouponRequest) (id int64, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateCoupon")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	coupon, err := req.ToModel(shared.Actor(ctx))
	if err != nil {
		return 0, failure.BadRequest(err)
	}

	taken, err := s.codeTaken(ctx, coupon.Code, 0)
	if err != nil {
		return 0, err
	}

	if taken {
		return 0, failure.Conflict(msgDuplicateCode)
	}

	id, err = s.repo.InsertReturningID(ctx, coupon)
	if err != nil {
		log.Error().Err(err).Str("code", coupon.Code).Msg("failed to create coupon")

		if postgres.ErrorCode(err) == constant.PqErrorCodeUniqueViolation {
			return 0, failure.Conflict(msgDuplicateCode)
		}

		return 0, fmt.Errorf("failed to create coupon: %w", err)
	}

	s.invalidate(ctx, 0)

	return id, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetCouponsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAllCoupons")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		return res, err
	}

	// valid_today depends on the current day, so only the rows are cached.
	var models []model.Coupon

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllCoupon, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &models); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for coupons")
	} else {
		models, err = s.repo.GetAll(ctx, req, filter)
		if err != nil {
			log.Error().Err(err).Msg("failed to get coupons")

			return res, fmt.Errorf("failed to get coupons: %w", err)
		}

		go func() {
			c := context.WithoutCancel(ctx)

			if err := s.cache.Save(c, cacheKey, models, s.cfg.Cache.TTL); err != nil {
				log.Error().Err(err).Msg("failed to save coupons to cache")
			}
		}()
	}

	res.FromModels(models, total, req.Limit, timezone.Now())

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CountCoupons")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountCoupon, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count coupons")

		return res, fmt.Errorf("failed to count coupons: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save coupon count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) get(ctx context.Context, id int64) (model.Coupon, error) {
	cacheKey := shared.BuildCacheKey(cacheGetCoupon, id)

	var coupon model.Coupon

	if err := s.cache.Get(ctx, cacheKey, &coupon); err == nil {
		return coupon, nil
	}

	coupon, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Int64("id", id).Msg("failed to get coupon")

		return coupon, fmt.Errorf("failed to get coupon: %w", err)
	}

	if coupon.ID == 0 {
		return coupon, failure.NotFound("coupon not found")
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, coupon, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save coupon to cache")
		}
	}()

	return coupon, nil
}

func (s *serviceImpl) Get(ctx context.Context, id int64) (res dto.CouponResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetCoupon")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	coupon, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(coupon, timezone.Now())

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateCouponRequest, id int64) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateCoupon")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.IsEmpty() {
		return failure.BadRequestFromString("update request cannot be empty")
	}

	current, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Int64("id", id).Msg("failed to get coupon")

		return fmt.Errorf("failed to get coupon: %w", err)
	}

	if current.ID == 0 {
		return failure.NotFound("coupon not found")
	}

	fields, err := req.ToFields(current, shared.Actor(ctx))
	if err != nil {
		return failure.BadRequest(err)
	}

	if code, ok := fields[model.FieldCode].(string); ok && code != current.Code {
		taken, err := s.codeTaken(ctx, code, id)
		if err != nil {
			return err
		}

		if taken {
			return failure.Conflict(msgDuplicateCode)
		}
	}

	if err = s.repo.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Int64("id", id).Msg("failed to update coupon")

		if postgres.ErrorCode(err) == constant.PqErrorCodeUniqueViolation {
			return failure.Conflict(msgDuplicateCode)
		}

		return fmt.Errorf("failed to update coupon: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id int64) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".DeleteCoupon")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if coupon exists")

		return fmt.Errorf("failed to check if coupon exists: %w", err)
	}

	if !exist {
		return failure.NotFound("coupon not found")
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Int64("id", id).Msg("failed to delete coupon")

		return fmt.Errorf("failed to delete coupon: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}
