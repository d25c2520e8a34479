package service

import (
	"context"
	"fmt"
	"hotelier/infras/otel"
	"hotelier/internal/domains/calendar/model"
	"hotelier/internal/domains/calendar/model/dto"
	"hotelier/internal/domains/calendar/projection"
	occModel "hotelier/internal/domains/occupancy/model"
	occRepo "hotelier/internal/domains/occupancy/repository"
	resModel "hotelier/internal/domains/resource/model"
	resService "hotelier/internal/domains/resource/service"
	"hotelier/shared/constant"
	"hotelier/shared/failure"
	"hotelier/shared/metrics"
	"hotelier/shared/timezone"
	"time"

	"github.com/rs/zerolog/log"
)

type Calendar interface {
	Get(ctx context.Context, kind resModel.Kind, view model.Granularity, current time.Time) (dto.GridResponse, error)
}

type serviceImpl struct {
	occupancy *occRepo.Registry
	resources resService.Resource
	otel      otel.Otel
}

func New(occupancy *occRepo.Registry, resources resService.Resource, otel otel.Otel) Calendar {
	return &serviceImpl{
		occupancy: occupancy,
		resources: resources,
		otel:      otel,
	}
}

// Get projects the live occupancy of every active resource of kind onto the view containing current.
func (s *serviceImpl) Get(ctx context.Context, kind resModel.Kind, view model.Granularity, current time.Time) (res dto.GridResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Calendar")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	occupancy, err := s.occupancy.For(kind)
	if err != nil {
		return res, failure.BadRequest(err)
	}

	loc := timezone.GetLocation()

	buckets, err := projection.Buckets(current, loc, view)
	if err != nil {
		return res, failure.BadRequest(err)
	}

	resources, err := s.resources.ListActive(ctx, kind)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	ids := make([]int64, len(resources))
	for i, r := range resources {
		ids[i] = r.ResourceID()
	}

	var records []occModel.Record

	if len(ids) > 0 {
		records, err = occupancy.ListOverlapping(ctx, projection.Range(buckets), ids...)
		if err != nil {
			log.Error().Err(err).Str("kind", string(kind)).Msg("failed to load calendar occupancy")

			return res, fmt.Errorf("failed to load %s occupancy: %w", kind, err)
		}
	}

	grid, err := projection.Project(current, loc, view, resources, occModel.Occupancies(records))
	if err != nil {
		return res, failure.BadRequest(err)
	}

	if len(grid.Warnings) > 0 {
		log.Warn().Str("kind", string(kind)).Int("count", len(grid.Warnings)).Str("view", string(view)).
			Msg("overlapping occupancy found while projecting calendar")

		metrics.AddIntegrityWarnings(string(kind), len(grid.Warnings))
	}

	res.FromModel(grid)

	return res, nil
}
