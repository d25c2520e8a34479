package service

import (
	"context"
	"fmt"
	"hotelier/infras/otel"
	"hotelier/internal/domains/occupancy/engine"
	"hotelier/internal/domains/occupancy/model"
	"hotelier/internal/domains/occupancy/repository"
	resModel "hotelier/internal/domains/resource/model"
	resService "hotelier/internal/domains/resource/service"
	"hotelier/shared/constant"
	"hotelier/shared/failure"
	"time"

	"github.com/rs/zerolog/log"
)

// Availability answers free/busy questions against the stored occupancy. Store failures are returned as
// errors and never reported as "available".
type Availability interface {
	FindBookingForResource(ctx context.Context, kind resModel.Kind, resourceID int64, window engine.Interval) (model.Record, bool, error)
	ListAvailable(ctx context.Context, kind resModel.Kind, window engine.Interval) ([]resModel.Resource, error)
	StatusAt(ctx context.Context, kind resModel.Kind, resourceID int64, at time.Time) (engine.Status, error)
}

type availabilityImpl struct {
	occupancy *repository.Registry
	resources resService.Resource
	otel      otel.Otel
}

func NewAvailability(occupancy *repository.Registry, resources resService.Resource, otel otel.Otel) Availability {
	return &availabilityImpl{
		occupancy: occupancy,
		resources: resources,
		otel:      otel,
	}
}

func (s *availabilityImpl) repo(kind resModel.Kind) (repository.Occupancy, error) {
	repo, err := s.occupancy.For(kind)
	if err != nil {
		return nil, failure.BadRequest(err)
	}

	return repo, nil
}

func (s *availabilityImpl) FindBookingForResource(ctx context.Context, kind resModel.Kind, resourceID int64, window engine.Interval) (rec model.Record, found bool, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".FindBookingForResource")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	repo, err := s.repo(kind)
	if err != nil {
		return rec, false, err
	}

	recs, err := repo.ListOverlapping(ctx, window, resourceID)
	if err != nil {
		log.Error().Err(err).Int64("resourceID", resourceID).Msg("failed to read occupancy")

		return rec, false, fmt.Errorf("failed to read %s occupancy: %w", kind, err)
	}

	match, found := engine.FindBookingForResource(model.Occupancies(recs), resourceID, window)
	if !found {
		return rec, false, nil
	}

	for _, candidate := range recs {
		if candidate.ID == match.ID {
			return candidate, true, nil
		}
	}

	return rec, false, nil
}

func (s *availabilityImpl) ListAvailable(ctx context.Context, kind resModel.Kind, window engine.Interval) (res []resModel.Resource, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListAvailable")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if !window.Valid() {
		return nil, failure.BadRequestFromString("start must be before end")
	}

	repo, err := s.repo(kind)
	if err != nil {
		return nil, err
	}

	resources, err := s.resources.ListActive(ctx, kind)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	recs, err := repo.ListOverlapping(ctx, window)
	if err != nil {
		log.Error().Err(err).Str("kind", string(kind)).Msg("failed to read occupancy")

		return nil, fmt.Errorf("failed to read %s occupancy: %w", kind, err)
	}

	return engine.ListAvailableResources(resources, window, model.Occupancies(recs)), nil
}

func (s *availabilityImpl) StatusAt(ctx context.Context, kind resModel.Kind, resourceID int64, at time.Time) (status engine.Status, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".StatusAt")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	repo, err := s.repo(kind)
	if err != nil {
		return status, err
	}

	recs, err := repo.ListOverlapping(ctx, engine.Interval{Start: at, End: at}, resourceID)
	if err != nil {
		log.Error().Err(err).Int64("resourceID", resourceID).Msg("failed to read occupancy")

		return status, fmt.Errorf("failed to read %s occupancy: %w", kind, err)
	}

	return engine.StatusAt(model.Occupancies(recs), resourceID, at), nil
}
