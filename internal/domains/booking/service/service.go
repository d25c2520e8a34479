package service

import (
	"context"
	"fmt"
	"hotelier/config"
	"hotelier/infras/otel"
	"hotelier/infras/postgres"
	"hotelier/internal/domains/booking/model"
	"hotelier/internal/domains/booking/model/dto"
	"hotelier/internal/domains/booking/repository"
	guestModel "hotelier/internal/domains/guest/model"
	guestDto "hotelier/internal/domains/guest/model/dto"
	guestRepo "hotelier/internal/domains/guest/repository"
	"hotelier/internal/domains/occupancy/engine"
	occModel "hotelier/internal/domains/occupancy/model"
	occDto "hotelier/internal/domains/occupancy/model/dto"
	occRepo "hotelier/internal/domains/occupancy/repository"
	occService "hotelier/internal/domains/occupancy/service"
	paymentModel "hotelier/internal/domains/payment/model"
	paymentService "hotelier/internal/domains/payment/service"
	"hotelier/shared"
	"hotelier/shared/cache"
	"hotelier/shared/constant"
	gDto "hotelier/shared/dto"
	"hotelier/shared/failure"
	"hotelier/shared/timezone"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.CreateBookingResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id int64) (dto.BookingDetailResponse, error)
	Update(ctx context.Context, req dto.UpdateBookingRequest, id int64) error
	Cancel(ctx context.Context, id int64) error
	RecordDeposit(ctx context.Context, id int64, req dto.DepositRequest) (dto.DepositResponse, error)
}

type serviceImpl struct {
	tx         postgres.Transactor
	repo       repository.Booking
	guests     guestRepo.Guest
	occupancy  *occRepo.Registry
	assignment occService.Assignment
	payments   paymentService.Payment
	cfg        *config.Config
	cache      cache.RedisCache
	otel       otel.Otel
}

func New(
	tx postgres.Transactor,
	repo repository.Booking,
	guests guestRepo.Guest,
	occupancy *occRepo.Registry,
	assignment occService.Assignment,
	payments paymentService.Payment,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		tx:         tx,
		repo:       repo,
		guests:     guests,
		occupancy:  occupancy,
		assignment: assignment,
		payments:   payments,
		cfg:        cfg,
		cache:      cache,
		otel:       otel,
	}
}

func (s *serviceImpl) invalidate(ctx context.Context, id int64) {
	go func() {
		c := context.WithoutCancel(ctx)

		if id != 0 {
			if err := s.cache.Delete(c, shared.BuildCacheKey(model.CacheGetBooking, id)); err != nil {
				log.Error().Err(err).Int64("bookingID", id).Msg("failed to delete booking from cache")
			}
		}

		shared.InvalidateCaches(c, s.cache, model.CacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, model.CacheCountBooking)
	}()
}

func (s *serviceImpl) byID(id int64) gDto.FilterGroup {
	return shared.FilterByID(id, model.FieldID, model.TableName)
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.CreateBookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	booking, err := req.ToModel(shared.Actor(ctx))
	if err != nil {
		return res, failure.BadRequest(err)
	}

	guestExists, err := s.guests.Exist(ctx, shared.FilterByID(req.GuestID, guestModel.FieldID, guestModel.TableName))
	if err != nil {
		log.Error().Err(err).Int64("guestID", req.GuestID).Msg("failed to check if guest exists")

		return res, fmt.Errorf("failed to check if guest exists: %w", err)
	}

	if !guestExists {
		return res, failure.NotFound("guest not found")
	}

	if req.ResourceID == nil {
		res.ID, err = s.repo.InsertReturningID(ctx, booking)
		if err != nil {
			log.Error().Err(err).Msg("failed to create booking")

			return res, fmt.Errorf("failed to create booking: %w", err)
		}

		s.invalidate(ctx, 0)

		return res, nil
	}

	var rec occModel.Record

	err = s.tx.WithTx(ctx, func(sqltx *sqlx.Tx) error {
		id, err := s.repo.InsertReturningIDTx(ctx, sqltx, booking)
		if err != nil {
			log.Error().Err(err).Msg("failed to create booking")

			return fmt.Errorf("failed to create booking: %w", err)
		}

		booking.ID = id

		rec, err = s.assignment.AssignTx(ctx, sqltx, booking, occDto.AssignRequest{
			Kind:         req.BookingType,
			ResourceID:   *req.ResourceID,
			BookingBasis: req.BookingBasis,
		})

		return err
	})
	if err != nil {
		return res, err
	}

	s.assignment.NotifyAssigned(ctx, rec)
	s.invalidate(ctx, 0)

	var occupancy occDto.OccupancyResponse
	occupancy.FromRecord(rec)

	res.ID = booking.ID
	res.Occupancy = &occupancy

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(model.CacheGetAllBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		return res, err
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(model.CacheCountBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id int64) (res dto.BookingDetailResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(model.CacheGetBooking, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking")

		return res, nil
	}

	booking, err := s.repo.Get(ctx, s.byID(id))
	if err != nil {
		log.Error().Err(err).Int64("bookingID", id).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == 0 {
		return res, failure.NotFound("booking not found")
	}

	res.BookingResponse.FromModel(booking)

	guest, err := s.guests.Get(ctx, shared.FilterByID(booking.GuestID, guestModel.FieldID, guestModel.TableName))
	if err != nil {
		log.Error().Err(err).Int64("guestID", booking.GuestID).Msg("failed to get booking guest")

		return res, fmt.Errorf("failed to get booking guest: %w", err)
	}

	if guest.ID != 0 {
		res.Guest = &guestDto.GuestResponse{}
		res.Guest.FromModel(guest)
	}

	records, err := s.listOccupancy(ctx, booking.ID)
	if err != nil {
		return res, err
	}

	res.Occupancy = occDto.FromRecords(records)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) listOccupancy(ctx context.Context, bookingID int64) ([]occModel.Record, error) {
	var records []occModel.Record

	for _, occupancy := range s.occupancy.All() {
		recs, err := occupancy.ListByBooking(ctx, bookingID)
		if err != nil {
			log.Error().Err(err).Int64("bookingID", bookingID).Str("kind", string(occupancy.Kind())).
				Msg("failed to list booking occupancy")

			return nil, fmt.Errorf("failed to list %s occupancy: %w", occupancy.Kind(), err)
		}

		records = append(records, recs...)
	}

	return records, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateBookingRequest, id int64) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.IsEmpty() {
		return failure.BadRequestFromString("update request cannot be empty")
	}

	booking, err := s.repo.Get(ctx, s.byID(id))
	if err != nil {
		log.Error().Err(err).Int64("bookingID", id).Msg("failed to get booking")

		return fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == 0 {
		return failure.NotFound("booking not found")
	}

	if booking.Closed() {
		return failure.Conflict(fmt.Sprintf("booking is %s and cannot be changed", booking.BookingStatus))
	}

	fields, err := req.ToFields(booking, shared.Actor(ctx))
	if err != nil {
		return failure.BadRequest(err)
	}

	// Occupancy rows carry their own copy of the stay.
	if req.ChangesStay() {
		records, err := s.listOccupancy(ctx, id)
		if err != nil {
			return err
		}

		for _, rec := range records {
			if rec.Active() && rec.Status != engine.StatusCheckedOut {
				return failure.Conflict("booking has an assigned resource, its stay cannot be changed")
			}
		}
	}

	if err = s.repo.Update(ctx, fields, s.byID(id)); err != nil {
		log.Error().Err(err).Int64("bookingID", id).Msg("failed to update booking")

		return fmt.Errorf("failed to update booking: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

// Cancel marks the booking cancelled and releases every occupancy that has not been checked out.
func (s *serviceImpl) Cancel(ctx context.Context, id int64) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	username := shared.Actor(ctx)

	err = s.tx.WithTx(ctx, func(sqltx *sqlx.Tx) error {
		booking, err := s.repo.LockTx(ctx, sqltx, s.byID(id))
		if err != nil {
			log.Error().Err(err).Int64("bookingID", id).Msg("failed to lock booking")

			return fmt.Errorf("failed to lock booking: %w", err)
		}

		if booking.ID == 0 {
			return failure.NotFound("booking not found")
		}

		if booking.Closed() {
			return failure.Conflict(fmt.Sprintf("booking is already %s", booking.BookingStatus))
		}

		fields := shared.TransformFields(struct{}{}, username)
		fields[model.FieldBookingStatus] = model.StatusCancelled

		if err = s.repo.UpdateTx(ctx, sqltx, fields, s.byID(id)); err != nil {
			log.Error().Err(err).Int64("bookingID", id).Msg("failed to cancel booking")

			return fmt.Errorf("failed to cancel booking: %w", err)
		}

		for _, occupancy := range s.occupancy.All() {
			if err = occupancy.CancelByBookingTx(ctx, sqltx, id, username); err != nil {
				log.Error().Err(err).Int64("bookingID", id).Msg("failed to release occupancy")

				return fmt.Errorf("failed to release %s occupancy: %w", occupancy.Kind(), err)
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	s.invalidate(ctx, id)

	return nil
}

// RecordDeposit appends a security deposit and adds it to paid_amount.
func (s *serviceImpl) RecordDeposit(ctx context.Context, id int64, req dto.DepositRequest) (res dto.DepositResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RecordDeposit")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	username := shared.Actor(ctx)

	err = s.tx.WithTx(ctx, func(sqltx *sqlx.Tx) error {
		booking, err := s.repo.LockTx(ctx, sqltx, s.byID(id))
		if err != nil {
			log.Error().Err(err).Int64("bookingID", id).Msg("failed to lock booking")

			return fmt.Errorf("failed to lock booking: %w", err)
		}

		if booking.ID == 0 {
			return failure.NotFound("booking not found")
		}

		if booking.Closed() {
			return failure.Conflict(fmt.Sprintf("booking is %s and cannot take deposits", booking.BookingStatus))
		}

		guestID := booking.GuestID

		res.PaymentID, err = s.payments.RecordTx(ctx, sqltx, paymentModel.Payment{
			BookingID:         booking.ID,
			GuestID:           &guestID,
			Amount:            req.Amount,
			PaymentMethod:     req.PaymentMethod,
			PaymentStatus:     model.PaymentSuccess,
			IsSecurityDeposit: true,
			CreatedAt:         timezone.Now(),
			CreatedBy:         username,
		})
		if err != nil {
			return err
		}

		res.PaidAmount = booking.PaidAmount.Add(req.Amount)
		res.PaymentStatus = model.SettledStatus(booking.TotalAmount, res.PaidAmount)

		fields := shared.TransformFields(struct{}{}, username)
		fields[model.FieldPaidAmount] = res.PaidAmount
		fields[model.FieldPaymentStatus] = res.PaymentStatus

		if err = s.repo.UpdateTx(ctx, sqltx, fields, s.byID(id)); err != nil {
			log.Error().Err(err).Int64("bookingID", id).Msg("failed to update paid amount")

			return fmt.Errorf("failed to update paid amount: %w", err)
		}

		return nil
	})
	if err != nil {
		return dto.DepositResponse{}, err
	}

	s.payments.Invalidate(context.WithoutCancel(ctx), id)
	s.invalidate(ctx, id)

	return res, nil
}
