package service

import (
	"context"
	"errors"
	"fmt"
	"hotelier/config"
	"hotelier/infras/kafka"
	"hotelier/infras/otel"
	"hotelier/infras/postgres"
	archiveService "hotelier/internal/domains/archive/service"
	bookingModel "hotelier/internal/domains/booking/model"
	bookingRepo "hotelier/internal/domains/booking/repository"
	"hotelier/internal/domains/checkout/invoice"
	"hotelier/internal/domains/checkout/model"
	"hotelier/internal/domains/checkout/model/dto"
	guestModel "hotelier/internal/domains/guest/model"
	guestRepo "hotelier/internal/domains/guest/repository"
	"hotelier/internal/domains/occupancy/engine"
	occModel "hotelier/internal/domains/occupancy/model"
	occRepo "hotelier/internal/domains/occupancy/repository"
	paymentModel "hotelier/internal/domains/payment/model"
	paymentService "hotelier/internal/domains/payment/service"
	resModel "hotelier/internal/domains/resource/model"
	resRepo "hotelier/internal/domains/resource/repository"
	settingsService "hotelier/internal/domains/settings/service"
	"hotelier/shared"
	"hotelier/shared/cache"
	"hotelier/shared/constant"
	"hotelier/shared/failure"
	"hotelier/shared/metrics"
	"hotelier/shared/timezone"
	"strconv"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const (
	EventBookingCheckedOut = "booking.checked_out"

	outcomeCompleted = "completed"
	outcomeRejected  = "rejected"
	outcomeFailed    = "failed"
)

type Checkout interface {
	// Checkout settles the booking and checks out every occupancy of it still booked or checked in. Every write
	// happens in one transaction; a failure is returned as *model.StepError naming the step.
	Checkout(ctx context.Context, bookingID int64, req dto.CheckoutRequest) (model.Settlement, error)
	Invoice(ctx context.Context, bookingID int64) (string, error)
}

type serviceImpl struct {
	tx        postgres.Transactor
	bookings  bookingRepo.Booking
	guests    guestRepo.Guest
	occupancy *occRepo.Registry
	resources *resRepo.Registry
	payments  paymentService.Payment
	archive   archiveService.Archive
	settings  settingsService.Settings
	kafka     kafka.Client
	cfg       *config.Config
	cache     cache.RedisCache
	otel      otel.Otel
}

func New(
	tx postgres.Transactor,
	bookings bookingRepo.Booking,
	guests guestRepo.Guest,
	occupancy *occRepo.Registry,
	resources *resRepo.Registry,
	payments paymentService.Payment,
	archive archiveService.Archive,
	settings settingsService.Settings,
	kafkaClient kafka.Client,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Checkout {
	return &serviceImpl{
		tx:        tx,
		bookings:  bookings,
		guests:    guests,
		occupancy: occupancy,
		resources: resources,
		payments:  payments,
		archive:   archive,
		settings:  settings,
		kafka:     kafkaClient,
		cfg:       cfg,
		cache:     cache,
		otel:      otel,
	}
}

func (s *serviceImpl) updateBooking(ctx context.Context, sqltx *sqlx.Tx, bookingID int64, fields map[string]any) error {
	if err := s.bookings.UpdateTx(ctx, sqltx, fields, shared.FilterByID(bookingID, bookingModel.FieldID, bookingModel.TableName)); err != nil {
		log.Error().Err(err).Int64("bookingID", bookingID).Msg("failed to update booking during checkout")

		return fmt.Errorf("failed to update booking: %w", err)
	}

	return nil
}

func (s *serviceImpl) validate(
	ctx context.Context,
	sqltx *sqlx.Tx,
	occupancy occRepo.Occupancy,
	bookingID int64,
	req dto.CheckoutRequest,
) (bookingModel.Booking, occModel.Record, error) {
	if req.ExtraCharges.IsNegative() {
		return bookingModel.Booking{}, occModel.Record{}, failure.BadRequestFromString("extra_charges cannot be negative")
	}

	booking, err := s.bookings.LockTx(ctx, sqltx, shared.FilterByID(bookingID, bookingModel.FieldID, bookingModel.TableName))
	if err != nil {
		return booking, occModel.Record{}, fmt.Errorf("failed to lock booking: %w", err)
	}

	switch {
	case booking.ID == 0:
		return booking, occModel.Record{}, failure.NotFound("booking not found")
	case booking.BookingStatus == bookingModel.StatusCompleted:
		return booking, occModel.Record{}, failure.Conflict("booking is already checked out")
	case booking.BookingStatus == bookingModel.StatusCancelled:
		return booking, occModel.Record{}, failure.Conflict("booking is cancelled")
	}

	archived, err := s.archive.IsArchived(ctx, bookingID)
	if err != nil {
		return booking, occModel.Record{}, err //nolint:wrapcheck
	}

	if archived {
		return booking, occModel.Record{}, failure.Conflict("booking is already archived")
	}

	rec, found, err := occupancy.GetTx(ctx, sqltx, req.OccupancyID)
	if err != nil {
		return booking, rec, fmt.Errorf("failed to get occupancy: %w", err)
	}

	switch {
	case !found:
		return booking, rec, failure.NotFound("occupancy not found")
	case rec.BookingID != booking.ID:
		return booking, rec, failure.BadRequestFromString("occupancy does not belong to this booking")
	case rec.Status == engine.StatusCheckedOut:
		return booking, rec, failure.Conflict("occupancy is already checked out")
	case rec.Status == engine.StatusCancelled:
		return booking, rec, failure.Conflict("occupancy is cancelled")
	}

	return booking, rec, nil
}

func (s *serviceImpl) Checkout(ctx context.Context, bookingID int64, req dto.CheckoutRequest) (res model.Settlement, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Checkout")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	wf := newWorkflow()
	username := shared.Actor(ctx)

	err = s.tx.WithTx(ctx, func(sqltx *sqlx.Tx) error {
		var (
			booking bookingModel.Booking
			rec     occModel.Record
		)

		occupancy, kindErr := s.occupancy.For(req.Kind)

		err := wf.run(model.StepValidate, func() error {
			if kindErr != nil {
				return failure.BadRequest(kindErr)
			}

			var err error
			booking, rec, err = s.validate(ctx, sqltx, occupancy, bookingID, req)

			return err
		})
		if err != nil {
			return err
		}

		res = model.Settlement{
			BookingID:     booking.ID,
			PreviousTotal: booking.TotalAmount,
			ExtraCharges:  req.ExtraCharges,
			NewTotal:      booking.TotalAmount.Add(req.ExtraCharges),
			PreviousPaid:  booking.PaidAmount,
			AmountCharged: decimal.Zero,
		}
		res.GrandTotal = res.NewTotal

		err = wf.run(model.StepApplyExtraCharges, func() error {
			if !req.ExtraCharges.IsPositive() {
				return nil
			}

			fields := shared.TransformFields(struct{}{}, username)
			fields[bookingModel.FieldTotalAmount] = res.NewTotal
			fields[bookingModel.FieldExtraCharges] = booking.ExtraCharges.Add(req.ExtraCharges)

			return s.updateBooking(ctx, sqltx, booking.ID, fields)
		})
		if err != nil {
			return err
		}

		err = wf.run(model.StepRecordPayment, func() error {
			due := res.NewTotal.Sub(res.PreviousPaid)
			if !due.IsPositive() {
				return nil
			}

			guestID := booking.GuestID

			paymentID, err := s.payments.RecordTx(ctx, sqltx, paymentModel.Payment{
				BookingID:     booking.ID,
				GuestID:       &guestID,
				Amount:        due,
				PaymentMethod: req.PaymentMethod,
				PaymentStatus: bookingModel.PaymentSuccess,
				CreatedAt:     timezone.Now(),
				CreatedBy:     username,
			})
			if err != nil {
				return err //nolint:wrapcheck
			}

			res.PaymentID = paymentID
			res.AmountCharged = due

			return nil
		})
		if err != nil {
			return err
		}

		err = wf.run(model.StepUpdatePaidAmount, func() error {
			res.NewPaid = res.PreviousPaid.Add(res.AmountCharged)
			res.PaymentStatus = bookingModel.SettledStatus(res.NewTotal, res.NewPaid)

			fields := shared.TransformFields(struct{}{}, username)
			fields[bookingModel.FieldPaidAmount] = res.NewPaid
			fields[bookingModel.FieldPaymentStatus] = res.PaymentStatus

			return s.updateBooking(ctx, sqltx, booking.ID, fields)
		})
		if err != nil {
			return err
		}

		err = wf.run(model.StepMarkOccupancyCheckedOut, func() error {
			if err := occupancy.CheckOutByBookingTx(ctx, sqltx, booking.ID, username); err != nil {
				log.Error().Err(err).Int64("bookingID", booking.ID).Int64("occupancyID", rec.ID).Msg("failed to check out occupancy")

				return fmt.Errorf("failed to check out occupancy: %w", err)
			}

			return nil
		})
		if err != nil {
			return err
		}

		err = wf.run(model.StepMarkBookingCompleted, func() error {
			fields := shared.TransformFields(struct{}{}, username)
			fields[bookingModel.FieldBookingStatus] = bookingModel.StatusCompleted

			return s.updateBooking(ctx, sqltx, booking.ID, fields)
		})
		if err != nil {
			return err
		}

		return wf.run(model.StepArchive, func() error {
			res.CompletedAt = timezone.Now()

			err := s.archive.ArchiveTx(ctx, sqltx, booking.ID, res.CompletedAt)
			if postgres.ErrorCode(err) == constant.PqErrorCodeUniqueViolation {
				return failure.Conflict("booking is already archived")
			}

			return err //nolint:wrapcheck
		})
	})
	if err != nil {
		var stepErr *model.StepError
		if errors.As(err, &stepErr) {
			outcome := outcomeFailed
			if stepErr.Step == model.StepValidate {
				outcome = outcomeRejected
			}

			metrics.IncCheckout(outcome)
			metrics.IncCheckoutFailedStep(string(stepErr.Step))

			log.Warn().Err(stepErr.Err).Int64("bookingID", bookingID).Str("step", string(stepErr.Step)).Msg("checkout failed")

			return model.Settlement{}, err
		}

		metrics.IncCheckout(outcomeFailed)
		log.Error().Err(err).Int64("bookingID", bookingID).Msg("checkout transaction failed")

		return model.Settlement{}, fmt.Errorf("failed to check out booking: %w", err)
	}

	wf.done()
	res.Trail = wf.trail

	s.afterCheckout(ctx, res)

	return res, nil
}

// afterCheckout runs the best-effort side effects of a committed checkout.
func (s *serviceImpl) afterCheckout(ctx context.Context, res model.Settlement) {
	metrics.IncCheckout(outcomeCompleted)

	kafka.Publish(ctx, s.kafka, s.cfg.Kafka.Topics.Checkout,
		kafka.NewEventMessage(strconv.FormatInt(res.BookingID, 10), EventBookingCheckedOut, res))

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(bookingModel.CacheGetBooking, res.BookingID)); err != nil {
			log.Error().Err(err).Int64("bookingID", res.BookingID).Msg("failed to delete booking from cache")
		}

		shared.InvalidateCaches(c, s.cache, bookingModel.CacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, bookingModel.CacheCountBooking)

		s.payments.Invalidate(c, res.BookingID)
		s.archive.Invalidate(c)
	}()
}

// resourceLabel names a stay by room or hall number. A resource deleted since the stay keeps its id.
func (s *serviceImpl) resourceLabel(ctx context.Context, kind resModel.Kind, id int64) (string, error) {
	resources, err := s.resources.For(kind)
	if err != nil {
		return "", failure.InternalError(err)
	}

	resource, found, err := resources.Get(ctx, id)
	if err != nil {
		log.Error().Err(err).Str("kind", string(kind)).Int64("resourceID", id).Msg("failed to get resource for invoice")

		return "", fmt.Errorf("failed to get %s: %w", kind, err)
	}

	if !found {
		return fmt.Sprintf("%s #%d", kind, id), nil
	}

	return fmt.Sprintf("%s %s", kind, resource.Label()), nil
}

func (s *serviceImpl) Invoice(ctx context.Context, bookingID int64) (res string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Invoice")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	booking, err := s.bookings.Get(ctx, shared.FilterByID(bookingID, bookingModel.FieldID, bookingModel.TableName))
	if err != nil {
		log.Error().Err(err).Int64("bookingID", bookingID).Msg("failed to get booking")

		return "", fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == 0 {
		return "", failure.NotFound("booking not found")
	}

	guest, err := s.guests.Get(ctx, shared.FilterByID(booking.GuestID, guestModel.FieldID, guestModel.TableName))
	if err != nil {
		log.Error().Err(err).Int64("guestID", booking.GuestID).Msg("failed to get guest")

		return "", fmt.Errorf("failed to get guest: %w", err)
	}

	hotel, err := s.settings.Load(ctx)
	if err != nil {
		return "", err //nolint:wrapcheck
	}

	payments, err := s.payments.ListByBooking(ctx, bookingID)
	if err != nil {
		return "", err //nolint:wrapcheck
	}

	data := invoice.Data{
		Number:        invoice.Number(booking.ID),
		IssuedAt:      timezone.Format(timezone.Now(), constant.DateTimeFormat),
		GuestName:     guest.FullName,
		GuestPhone:    guest.Phone,
		BookingType:   string(booking.BookingType),
		CheckIn:       timezone.Format(booking.CheckIn, constant.DateTimeFormat),
		CheckOut:      timezone.Format(booking.CheckOut, constant.DateTimeFormat),
		Adults:        booking.Adults,
		Kids:          booking.Kids,
		Total:         invoice.Amount(booking.TotalAmount.Sub(booking.ExtraCharges)),
		Extra:         invoice.Amount(booking.ExtraCharges),
		GrandTotal:    invoice.Amount(booking.TotalAmount),
		Paid:          invoice.Amount(booking.PaidAmount),
		Balance:       invoice.Amount(booking.Pending()),
		PaymentStatus: string(booking.PaymentStatus),
	}

	for _, occupancy := range s.occupancy.All() {
		recs, err := occupancy.ListByBooking(ctx, bookingID)
		if err != nil {
			log.Error().Err(err).Int64("bookingID", bookingID).Msg("failed to list occupancy for invoice")

			return "", fmt.Errorf("failed to list %s occupancy: %w", occupancy.Kind(), err)
		}

		for _, rec := range recs {
			label, err := s.resourceLabel(ctx, rec.Kind, rec.ResourceID)
			if err != nil {
				return "", err
			}

			data.Stays = append(data.Stays, invoice.Stay{
				Resource: label,
				CheckIn:  timezone.Format(rec.Interval.Start, constant.DateTimeFormat),
				CheckOut: timezone.Format(rec.Interval.End, constant.DateTimeFormat),
				Status:   string(rec.Status),
			})
		}
	}

	for _, p := range payments.Payments {
		data.Payments = append(data.Payments, invoice.Payment{
			Method:  p.PaymentMethod,
			Date:    p.CreatedAt,
			Amount:  invoice.Amount(p.Amount),
			Deposit: p.IsSecurityDeposit,
		})
	}

	res, err = invoice.Render(hotel, data)
	if err != nil {
		log.Error().Err(err).Int64("bookingID", bookingID).Msg("failed to render invoice")

		return "", failure.InternalError(err)
	}

	return res, nil
}
