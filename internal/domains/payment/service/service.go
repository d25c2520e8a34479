package service

import (
	"context"
	"fmt"
	"hotelier/config"
	"hotelier/infras/otel"
	"hotelier/internal/domains/payment/model"
	"hotelier/internal/domains/payment/model/dto"
	"hotelier/internal/domains/payment/repository"
	"hotelier/shared"
	"hotelier/shared/cache"
	"hotelier/shared/constant"
	gDto "hotelier/shared/dto"
	"hotelier/shared/failure"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const cacheGetPayments = "payment:gets"

type Payment interface {
	RecordTx(ctx context.Context, sqltx *sqlx.Tx, payment model.Payment) (int64, error)
	ListByBooking(ctx context.Context, bookingID int64) (dto.GetPaymentsResponse, error)
	Invalidate(ctx context.Context, bookingID int64)
}

type serviceImpl struct {
	repo  repository.Payment
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Payment, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Payment {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

// RecordTx appends a payment inside sqltx. Amounts must be positive.
func (s *serviceImpl) RecordTx(ctx context.Context, sqltx *sqlx.Tx, payment model.Payment) (id int64, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RecordTx")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if !payment.Amount.IsPositive() {
		return 0, failure.BadRequestFromString("payment amount must be greater than 0")
	}

	id, err = s.repo.InsertReturningIDTx(ctx, sqltx, payment)
	if err != nil {
		log.Error().Err(err).Int64("bookingID", payment.BookingID).Msg("failed to record payment")

		return 0, fmt.Errorf("failed to record payment: %w", err)
	}

	return id, nil
}

func (s *serviceImpl) ListByBooking(ctx context.Context, bookingID int64) (res dto.GetPaymentsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListByBooking")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetPayments, bookingID)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for payments")

		return res, nil
	}

	params := gDto.QueryParams{SortBy: constant.FieldCreatedAt, SortDir: gDto.SortDirAsc}

	models, err := s.repo.GetAll(ctx, params, shared.FilterByID(bookingID, model.FieldBookingID, model.TableName))
	if err != nil {
		log.Error().Err(err).Int64("bookingID", bookingID).Msg("failed to list payments")

		return res, fmt.Errorf("failed to list payments: %w", err)
	}

	res.FromModels(models)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save payments to cache")
		}
	}()

	return res, nil
}

// Invalidate drops the cached payment list of a booking.
func (s *serviceImpl) Invalidate(ctx context.Context, bookingID int64) {
	if err := s.cache.Delete(ctx, shared.BuildCacheKey(cacheGetPayments, bookingID)); err != nil {
		log.Error().Err(err).Int64("bookingID", bookingID).Msg("failed to delete payments from cache")
	}
}
