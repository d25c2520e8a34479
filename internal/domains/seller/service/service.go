package service

import (
	"context"
	"fmt"
	"hotelier/config"
	"hotelier/infras/kafka"
	"hotelier/infras/otel"
	"hotelier/infras/postgres"
	"hotelier/internal/domains/seller/model"
	"hotelier/internal/domains/seller/model/dto"
	"hotelier/internal/domains/seller/repository"
	"hotelier/shared"
	"hotelier/shared/cache"
	"hotelier/shared/constant"
	gDto "hotelier/shared/dto"
	"hotelier/shared/failure"
	"strconv"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const (
	EventApplicationSubmitted = "seller_application.submitted"
	EventApplicationReviewed  = "seller_application.reviewed"

	cacheGetAllApplication = "seller_application:gets"
	cacheCountApplication  = "seller_application:count"
)

type SellerApplication interface {
	Submit(ctx context.Context, req dto.SubmitApplicationRequest) (dto.SubmitApplicationResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetApplicationsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id int64) (dto.ApplicationResponse, error)
	// Review approves or rejects a pending application. Reviewed applications are final.
	Review(ctx context.Context, id int64, req dto.ReviewApplicationRequest) (dto.ApplicationResponse, error)
}

type serviceImpl struct {
	tx    postgres.Transactor
	repo  repository.SellerApplication
	kafka kafka.Client
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(
	tx postgres.Transactor,
	repo repository.SellerApplication,
	kafkaClient kafka.Client,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) SellerApplication {
	return &serviceImpl{
		tx:    tx,
		repo:  repo,
		kafka: kafkaClient,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) invalidate(ctx context.Context) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllApplication)
		shared.InvalidateCaches(c, s.cache, cacheCountApplication)
	}()
}

func (s *serviceImpl) Submit(ctx context.Context, req dto.SubmitApplicationRequest) (res dto.SubmitApplicationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SubmitSellerApplication")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	app := req.ToModel(shared.Actor(ctx))

	app.ID, err = s.repo.InsertReturningID(ctx, app)
	if err != nil {
		log.Error().Err(err).Str("email", app.Email).Msg("failed to submit seller application")

		return res, fmt.Errorf("failed to submit seller application: %w", err)
	}

	kafka.Publish(ctx, s.kafka, s.cfg.Kafka.Topics.Seller,
		kafka.NewEventMessage(strconv.FormatInt(app.ID, 10), EventApplicationSubmitted, app))

	s.invalidate(ctx)

	return dto.SubmitApplicationResponse{ID: app.ID, Status: app.Status}, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetApplicationsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAllSellerApplications")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllApplication, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for seller applications")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		return res, err
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get seller applications")

		return res, fmt.Errorf("failed to get seller applications: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save seller applications to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CountSellerApplications")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountApplication, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count seller applications")

		return res, fmt.Errorf("failed to count seller applications: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save seller application count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id int64) (res dto.ApplicationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetSellerApplication")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	app, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Int64("id", id).Msg("failed to get seller application")

		return res, fmt.Errorf("failed to get seller application: %w", err)
	}

	if app.ID == 0 {
		return res, failure.NotFound("seller application not found")
	}

	res.FromModel(app)

	return res, nil
}

func (s *serviceImpl) Review(ctx context.Context, id int64, req dto.ReviewApplicationRequest) (res dto.ApplicationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ReviewSellerApplication")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	username := shared.Actor(ctx)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	err = s.tx.WithTx(ctx, func(sqltx *sqlx.Tx) error {
		app, err := s.repo.LockTx(ctx, sqltx, filter)
		if err != nil {
			log.Error().Err(err).Int64("id", id).Msg("failed to lock seller application")

			return fmt.Errorf("failed to lock seller application: %w", err)
		}

		if app.ID == 0 {
			return failure.NotFound("seller application not found")
		}

		if app.Status != model.StatusPending {
			return failure.Conflict(fmt.Sprintf("seller application is already %s", app.Status))
		}

		if err = s.repo.UpdateTx(ctx, sqltx, req.ToFields(username), filter); err != nil {
			log.Error().Err(err).Int64("id", id).Msg("failed to review seller application")

			return fmt.Errorf("failed to review seller application: %w", err)
		}

		return nil
	})
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	s.invalidate(ctx)

	res, err = s.Get(ctx, id)
	if err != nil {
		return res, err
	}

	kafka.Publish(ctx, s.kafka, s.cfg.Kafka.Topics.Seller,
		kafka.NewEventMessage(strconv.FormatInt(id, 10), EventApplicationReviewed, res))

	return res, nil
}
