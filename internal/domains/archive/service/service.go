package service

import (
	"bytes"
	"context"
	"fmt"
	"hotelier/config"
	"hotelier/infras/otel"
	"hotelier/internal/domains/archive/export"
	"hotelier/internal/domains/archive/model"
	"hotelier/internal/domains/archive/model/dto"
	"hotelier/internal/domains/archive/repository"
	occDto "hotelier/internal/domains/occupancy/model/dto"
	occRepo "hotelier/internal/domains/occupancy/repository"
	"hotelier/shared"
	"hotelier/shared/cache"
	"hotelier/shared/constant"
	gDto "hotelier/shared/dto"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetAllArchive = "archive:gets"
	cacheCountArchive  = "archive:count"

	exportLimit = 10000
)

type Archive interface {
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetArchivesResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Export(ctx context.Context, filter gDto.FilterGroup) ([]byte, error)
	IsArchived(ctx context.Context, bookingID int64) (bool, error)
	ArchiveTx(ctx context.Context, sqltx *sqlx.Tx, bookingID int64, completedAt time.Time) error
	Invalidate(ctx context.Context)
}

type serviceImpl struct {
	repo      repository.Archive
	entries   repository.Entry
	occupancy *occRepo.Registry
	cfg       *config.Config
	cache     cache.RedisCache
	otel      otel.Otel
}

func New(
	repo repository.Archive,
	entries repository.Entry,
	occupancy *occRepo.Registry,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Archive {
	return &serviceImpl{
		repo:      repo,
		entries:   entries,
		occupancy: occupancy,
		cfg:       cfg,
		cache:     cache,
		otel:      otel,
	}
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetArchivesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllArchive, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for archives")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		return res, err
	}

	entries, err := s.entries.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get archives")

		return res, fmt.Errorf("failed to get archives: %w", err)
	}

	res.FromModels(entries, total, req.Limit)

	if err = s.attachOccupancy(ctx, res.Archives); err != nil {
		return res, err
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save archives to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) attachOccupancy(ctx context.Context, archives []dto.ArchiveResponse) error {
	if len(archives) == 0 {
		return nil
	}

	ids := make([]int64, len(archives))
	index := make(map[int64]int, len(archives))

	for i, archive := range archives {
		ids[i] = archive.BookingID
		index[archive.BookingID] = i
	}

	for _, occupancy := range s.occupancy.All() {
		recs, err := occupancy.ListByBookings(ctx, ids...)
		if err != nil {
			log.Error().Err(err).Str("kind", string(occupancy.Kind())).Msg("failed to load archived occupancy")

			return fmt.Errorf("failed to load archived %s occupancy: %w", occupancy.Kind(), err)
		}

		for _, rec := range recs {
			i, ok := index[rec.BookingID]
			if !ok {
				continue
			}

			var occ occDto.OccupancyResponse
			occ.FromRecord(rec)

			archives[i].Occupancy = append(archives[i].Occupancy, occ)
		}
	}

	return nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountArchive, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for archive count")

		return res, nil
	}

	res, err = s.entries.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count archives")

		return res, fmt.Errorf("failed to count archives: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save archive count to cache")
		}
	}()

	return res, nil
}

// Export renders every archived booking matching filter, newest first.
func (s *serviceImpl) Export(ctx context.Context, filter gDto.FilterGroup) (res []byte, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Export")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	params := gDto.QueryParams{
		Limit:   exportLimit,
		SortBy:  model.TableName + "." + model.FieldCompletedAt,
		SortDir: gDto.SortDirDesc,
	}

	entries, err := s.entries.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get archives for export")

		return nil, fmt.Errorf("failed to get archives: %w", err)
	}

	var list dto.GetArchivesResponse
	list.FromModels(entries, len(entries), 0)

	if err = s.attachOccupancy(ctx, list.Archives); err != nil {
		return nil, err
	}

	var buf bytes.Buffer

	if err = export.Write(&buf, list.Archives); err != nil {
		log.Error().Err(err).Msg("failed to build archive workbook")

		return nil, fmt.Errorf("failed to build archive workbook: %w", err)
	}

	log.Info().Int("rows", len(entries)).Msg("archive exported")

	return buf.Bytes(), nil
}

func (s *serviceImpl) IsArchived(ctx context.Context, bookingID int64) (bool, error) {
	exist, err := s.repo.Exist(ctx, shared.FilterByID(bookingID, model.FieldBookingID, model.TableName))
	if err != nil {
		log.Error().Err(err).Int64("bookingID", bookingID).Msg("failed to check archive")

		return false, fmt.Errorf("failed to check archive: %w", err)
	}

	return exist, nil
}

func (s *serviceImpl) ArchiveTx(ctx context.Context, sqltx *sqlx.Tx, bookingID int64, completedAt time.Time) error {
	err := s.repo.InsertTx(ctx, sqltx, model.ArchivedBooking{BookingID: bookingID, CompletedAt: completedAt})
	if err != nil {
		log.Error().Err(err).Int64("bookingID", bookingID).Msg("failed to archive booking")

		return fmt.Errorf("failed to archive booking: %w", err)
	}

	return nil
}

func (s *serviceImpl) Invalidate(ctx context.Context) {
	shared.InvalidateCaches(ctx, s.cache, cacheGetAllArchive)
	shared.InvalidateCaches(ctx, s.cache, cacheCountArchive)
}
