package service

import (
	"context"
	"errors"
	"fmt"
	"hotelier/config"
	"hotelier/infras/kafka"
	"hotelier/infras/otel"
	"hotelier/infras/postgres"
	bookingModel "hotelier/internal/domains/booking/model"
	bookingRepo "hotelier/internal/domains/booking/repository"
	"hotelier/internal/domains/occupancy/engine"
	"hotelier/internal/domains/occupancy/model"
	"hotelier/internal/domains/occupancy/model/dto"
	"hotelier/internal/domains/occupancy/repository"
	resModel "hotelier/internal/domains/resource/model"
	resRepo "hotelier/internal/domains/resource/repository"
	"hotelier/shared"
	"hotelier/shared/cache"
	"hotelier/shared/constant"
	"hotelier/shared/failure"
	"hotelier/shared/metrics"
	"strconv"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const (
	EventOccupancyAssigned  = "occupancy.assigned"
	EventOccupancyCheckedIn = "occupancy.checked_in"

	outcomeAssigned = "assigned"
	outcomeConflict = "conflict"
	outcomeRejected = "rejected"
)

// Assignment places bookings on resources. A resource never holds two active occupancies whose stays overlap.
type Assignment interface {
	Assign(ctx context.Context, bookingID int64, req dto.AssignRequest) (model.Record, error)
	// AssignTx runs the assignment inside a caller-owned transaction. The caller must call NotifyAssigned after commit.
	AssignTx(ctx context.Context, sqltx *sqlx.Tx, booking bookingModel.Booking, req dto.AssignRequest) (model.Record, error)
	NotifyAssigned(ctx context.Context, rec model.Record)
	CheckIn(ctx context.Context, kind resModel.Kind, occupancyID int64) error
}

type assignmentImpl struct {
	tx        postgres.Transactor
	bookings  bookingRepo.Booking
	resources *resRepo.Registry
	occupancy *repository.Registry
	kafka     kafka.Client
	cfg       *config.Config
	cache     cache.RedisCache
	otel      otel.Otel
}

func NewAssignment(
	tx postgres.Transactor,
	bookings bookingRepo.Booking,
	resources *resRepo.Registry,
	occupancy *repository.Registry,
	kafkaClient kafka.Client,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Assignment {
	return &assignmentImpl{
		tx:        tx,
		bookings:  bookings,
		resources: resources,
		occupancy: occupancy,
		kafka:     kafkaClient,
		cfg:       cfg,
		cache:     cache,
		otel:      otel,
	}
}

func conflictError(kind resModel.Kind, resourceID int64, holder int64) error {
	msg := fmt.Sprintf("%s %d is already booked for an overlapping stay", kind, resourceID)
	if holder != 0 {
		msg = fmt.Sprintf("%s %d is already booked by booking %d for an overlapping stay", kind, resourceID, holder)
	}

	return fmt.Errorf("%w: %w", model.ErrResourceConflict, failure.Conflict(msg))
}

func validateAssignment(booking bookingModel.Booking, req dto.AssignRequest) error {
	switch {
	case booking.Closed():
		return failure.BadRequestFromString(fmt.Sprintf("booking is %s and cannot be assigned", booking.BookingStatus))
	case !booking.Stay().Valid():
		return failure.BadRequestFromString("booking check_in must be before check_out")
	case booking.BookingType != req.Kind:
		return failure.BadRequestFromString(fmt.Sprintf("a %s booking cannot be assigned a %s", booking.BookingType, req.Kind))
	case req.Kind == resModel.KindHall && !req.BookingBasis.Valid():
		return failure.BadRequestFromString("booking_basis is required for halls")
	}

	return nil
}

func (s *assignmentImpl) Assign(ctx context.Context, bookingID int64, req dto.AssignRequest) (rec model.Record, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Assign")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	err = s.tx.WithTx(ctx, func(sqltx *sqlx.Tx) error {
		booking, err := s.bookings.GetTx(ctx, sqltx, shared.FilterByID(bookingID, bookingModel.FieldID, bookingModel.TableName))
		if err != nil {
			return fmt.Errorf("failed to get booking: %w", err)
		}

		if booking.ID == 0 {
			return failure.NotFound("booking not found")
		}

		rec, err = s.AssignTx(ctx, sqltx, booking, req)

		return err
	})
	if err != nil {
		outcome := outcomeRejected
		if errors.Is(err, model.ErrResourceConflict) {
			outcome = outcomeConflict
		}

		metrics.IncAssignment(string(req.Kind), outcome)

		return model.Record{}, err
	}

	s.NotifyAssigned(ctx, rec)

	return rec, nil
}

func (s *assignmentImpl) AssignTx(ctx context.Context, sqltx *sqlx.Tx, booking bookingModel.Booking, req dto.AssignRequest) (rec model.Record, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".AssignTx")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validateAssignment(booking, req); err != nil {
		return rec, err
	}

	resources, err := s.resources.For(req.Kind)
	if err != nil {
		return rec, failure.BadRequest(err)
	}

	occupancy, err := s.occupancy.For(req.Kind)
	if err != nil {
		return rec, failure.BadRequest(err)
	}

	// Serialises concurrent assignments of the same resource until commit.
	resource, found, err := resources.LockTx(ctx, sqltx, req.ResourceID)
	if err != nil {
		log.Error().Err(err).Int64("resourceID", req.ResourceID).Msg("failed to lock resource")

		return rec, fmt.Errorf("failed to lock %s: %w", req.Kind, err)
	}

	if !found {
		return rec, failure.NotFound(resources.Table().Entity + " not found")
	}

	if !resource.Active() {
		return rec, failure.BadRequestFromString(fmt.Sprintf("%s %s is not active", req.Kind, resource.Label()))
	}

	existing, err := occupancy.ListOverlappingTx(ctx, sqltx, booking.Stay(), req.ResourceID)
	if err != nil {
		log.Error().Err(err).Int64("resourceID", req.ResourceID).Msg("failed to read occupancy")

		return rec, fmt.Errorf("failed to read %s occupancy: %w", req.Kind, err)
	}

	if holder, taken := engine.FindBookingForResource(model.Occupancies(existing), req.ResourceID, booking.Stay()); taken {
		log.Warn().Int64("resourceID", req.ResourceID).Int64("bookingID", booking.ID).Int64("holder", holder.BookingID).
			Msg("assignment rejected, resource already occupied")

		return rec, conflictError(req.Kind, req.ResourceID, holder.BookingID)
	}

	rec = model.Record{
		Occupancy: engine.Occupancy{
			BookingID:  booking.ID,
			ResourceID: req.ResourceID,
			Interval:   booking.Stay(),
			Status:     engine.StatusBooked,
		},
		Kind: req.Kind,
	}

	if req.Kind == resModel.KindHall {
		rec.BookingBasis = req.BookingBasis
	}

	rec.ID, err = occupancy.InsertTx(ctx, sqltx, rec, shared.Actor(ctx))
	if err != nil {
		if postgres.ErrorCode(err) == constant.PqErrorCodeExclusionViolation {
			return model.Record{}, conflictError(req.Kind, req.ResourceID, 0)
		}

		log.Error().Err(err).Int64("resourceID", req.ResourceID).Msg("failed to insert occupancy")

		return model.Record{}, fmt.Errorf("failed to assign %s: %w", req.Kind, err)
	}

	return rec, nil
}

// NotifyAssigned runs the best-effort side effects of a committed assignment.
func (s *assignmentImpl) NotifyAssigned(ctx context.Context, rec model.Record) {
	metrics.IncAssignment(string(rec.Kind), outcomeAssigned)

	kafka.Publish(ctx, s.kafka, s.cfg.Kafka.Topics.Occupancy,
		kafka.NewEventMessage(strconv.FormatInt(rec.BookingID, 10), EventOccupancyAssigned, rec))

	s.invalidateBooking(ctx, rec.BookingID)
}

func (s *assignmentImpl) invalidateBooking(ctx context.Context, bookingID int64) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(bookingModel.CacheGetBooking, bookingID)); err != nil {
			log.Error().Err(err).Int64("bookingID", bookingID).Msg("failed to delete booking from cache")
		}
	}()
}

func (s *assignmentImpl) CheckIn(ctx context.Context, kind resModel.Kind, occupancyID int64) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CheckIn")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	occupancy, err := s.occupancy.For(kind)
	if err != nil {
		return failure.BadRequest(err)
	}

	rec, found, err := occupancy.Get(ctx, occupancyID)
	if err != nil {
		log.Error().Err(err).Int64("occupancyID", occupancyID).Msg("failed to get occupancy")

		return fmt.Errorf("failed to get %s occupancy: %w", kind, err)
	}

	if !found {
		return failure.NotFound("occupancy not found")
	}

	if rec.Status != engine.StatusBooked {
		return failure.Conflict(fmt.Sprintf("occupancy is %s, only booked stays can be checked in", rec.Status))
	}

	if err = occupancy.UpdateStatus(ctx, occupancyID, engine.StatusCheckedIn, shared.Actor(ctx)); err != nil {
		log.Error().Err(err).Int64("occupancyID", occupancyID).Msg("failed to check in")

		return fmt.Errorf("failed to check in: %w", err)
	}

	rec.Status = engine.StatusCheckedIn

	kafka.Publish(ctx, s.kafka, s.cfg.Kafka.Topics.Occupancy,
		kafka.NewEventMessage(strconv.FormatInt(rec.BookingID, 10), EventOccupancyCheckedIn, rec))

	s.invalidateBooking(ctx, rec.BookingID)

	return nil
}
