package service

import (
	"context"
	"fmt"
	"hotelier/config"
	"hotelier/infras/otel"
	"hotelier/infras/postgres"
	"hotelier/infras/s3"
	"hotelier/internal/domains/resource/model"
	"hotelier/internal/domains/resource/model/dto"
	"hotelier/internal/domains/resource/repository"
	"hotelier/shared"
	"hotelier/shared/cache"
	"hotelier/shared/constant"
	gDto "hotelier/shared/dto"
	"hotelier/shared/failure"
	"mime/multipart"
	"path"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetResource    = "resource:get"
	cacheGetAllResource = "resource:gets"
	cacheCountResource  = "resource:count"
)

type Resource interface {
	Create(ctx context.Context, kind model.Kind, req dto.CreateResourceRequest) (int64, error)
	GetAll(ctx context.Context, kind model.Kind, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetResourcesResponse, error)
	Count(ctx context.Context, kind model.Kind, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, kind model.Kind, id int64) (dto.ResourceResponse, error)
	Update(ctx context.Context, kind model.Kind, id int64, req dto.UpdateResourceRequest) error
	Delete(ctx context.Context, kind model.Kind, id int64) error
	SetHousekeeping(ctx context.Context, kind model.Kind, id int64, req dto.HousekeepingRequest) error
	AssignHousekeeper(ctx context.Context, kind model.Kind, id int64, req dto.AssignHousekeeperRequest) error
	UploadImage(ctx context.Context, kind model.Kind, id int64, file multipart.File, header *multipart.FileHeader) (string, error)
	ListActive(ctx context.Context, kind model.Kind) ([]model.Resource, error)
}

type serviceImpl struct {
	registry *repository.Registry
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
	s3       s3.S3
}

func New(registry *repository.Registry, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, s3 s3.S3) Resource {
	return &serviceImpl{
		registry: registry,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
		s3:       s3,
	}
}

func (s *serviceImpl) repo(kind model.Kind) (repository.Resource, error) {
	repo, err := s.registry.For(kind)
	if err != nil {
		return nil, failure.BadRequest(err)
	}

	return repo, nil
}

func (s *serviceImpl) invalidate(ctx context.Context, kind model.Kind, id int64) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, shared.BuildCacheKey(cacheGetAllResource, kind))
		shared.InvalidateCaches(c, s.cache, shared.BuildCacheKey(cacheCountResource, kind))

		if id != 0 {
			if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetResource, kind, id)); err != nil {
				log.Error().Err(err).Int64("id", id).Msg("failed to delete resource cache")
			}
		}
	}()
}

// storeError maps constraint violations. A foreign key failure on delete means the resource is
// still booked; on insert or update it means the floor, type or housekeeper does not exist.
func storeError(err error, table model.Table, deleting bool) error {
	switch postgres.ErrorCode(err) {
	case constant.PqErrorCodeUniqueViolation:
		return failure.Conflict(table.Entity + " number already exists")
	case constant.PqErrorCodeFkViolation:
		if deleting {
			return failure.Conflict(table.Entity + " is referenced by existing bookings")
		}

		return failure.BadRequestFromString(table.Entity + " floor, type or housekeeper does not exist")
	}

	return err
}

func (s *serviceImpl) Create(ctx context.Context, kind model.Kind, req dto.CreateResourceRequest) (id int64, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	repo, err := s.repo(kind)
	if err != nil {
		return 0, err
	}

	table := repo.Table()

	numberFilter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    table.NumberField,
				Operator: gDto.FilterOperatorEq,
				Value:    req.Number,
				Table:    table.Name,
			},
		},
	}

	total, err := repo.Count(ctx, numberFilter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check resource number")

		return 0, fmt.Errorf("failed to check %s number: %w", table.Entity, err)
	}

	if total > 0 {
		return 0, failure.Conflict(table.Entity + " number already exists")
	}

	id, err = repo.InsertReturningID(ctx, req.ToModel(kind, shared.Actor(ctx)))
	if err != nil {
		log.Error().Err(err).Str("kind", string(kind)).Msg("failed to create resource")

		return 0, storeError(fmt.Errorf("failed to create %s: %w", table.Entity, err), table, false)
	}

	s.invalidate(ctx, kind, 0)

	return id, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, kind model.Kind, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetResourcesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	repo, err := s.repo(kind)
	if err != nil {
		return res, err
	}

	cacheKey := shared.BuildCacheKeyWithQuery(shared.BuildCacheKey(cacheGetAllResource, kind), req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for resources")

		return res, nil
	}

	total, err := s.Count(ctx, kind, req, filter)
	if err != nil {
		return res, err
	}

	models, err := repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get resources")

		return res, fmt.Errorf("failed to get %s list: %w", kind, err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save resources to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, kind model.Kind, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	repo, err := s.repo(kind)
	if err != nil {
		return 0, err
	}

	cacheKey := shared.BuildCacheKeyWithQuery(shared.BuildCacheKey(cacheCountResource, kind), req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for resource count")

		return res, nil
	}

	res, err = repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count resources")

		return 0, fmt.Errorf("failed to count %s: %w", kind, err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save resource count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, kind model.Kind, id int64) (res dto.ResourceResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	repo, err := s.repo(kind)
	if err != nil {
		return res, err
	}

	cacheKey := shared.BuildCacheKey(cacheGetResource, kind, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for resource")

		return res, nil
	}

	resource, found, err := repo.Get(ctx, id)
	if err != nil {
		log.Error().Err(err).Int64("id", id).Msg("failed to get resource")

		return res, fmt.Errorf("failed to get %s: %w", kind, err)
	}

	if !found {
		return res, failure.NotFound(repo.Table().Entity + " not found")
	}

	res.FromModel(resource)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save resource to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) mustExist(ctx context.Context, repo repository.Resource, id int64) error {
	exists, err := repo.Exist(ctx, id)
	if err != nil {
		log.Error().Err(err).Int64("id", id).Msg("failed to check resource")

		return fmt.Errorf("failed to check %s: %w", repo.Kind(), err)
	}

	if !exists {
		return failure.NotFound(repo.Table().Entity + " not found")
	}

	return nil
}

func (s *serviceImpl) update(ctx context.Context, kind model.Kind, id int64, fields map[string]any) error {
	repo, err := s.repo(kind)
	if err != nil {
		return err
	}

	if err = s.mustExist(ctx, repo, id); err != nil {
		return err
	}

	if err = repo.Update(ctx, fields, id); err != nil {
		log.Error().Err(err).Int64("id", id).Msg("failed to update resource")

		return storeError(fmt.Errorf("failed to update %s: %w", kind, err), repo.Table(), false)
	}

	s.invalidate(ctx, kind, id)

	return nil
}

func (s *serviceImpl) Update(ctx context.Context, kind model.Kind, id int64, req dto.UpdateResourceRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.IsEmpty() {
		return failure.BadRequestFromString("nothing to update")
	}

	return s.update(ctx, kind, id, req.ToFields(model.TableFor(kind), shared.Actor(ctx)))
}

func (s *serviceImpl) SetHousekeeping(ctx context.Context, kind model.Kind, id int64, req dto.HousekeepingRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SetHousekeeping")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	fields := shared.TransformFields(struct{}{}, shared.Actor(ctx))
	fields[model.FieldHousekeepingStatus] = req.Status

	return s.update(ctx, kind, id, fields)
}

func (s *serviceImpl) AssignHousekeeper(ctx context.Context, kind model.Kind, id int64, req dto.AssignHousekeeperRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".AssignHousekeeper")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	fields := shared.TransformFields(struct{}{}, shared.Actor(ctx))
	fields[model.FieldAssignedTo] = req.EmployeeID

	return s.update(ctx, kind, id, fields)
}

func (s *serviceImpl) Delete(ctx context.Context, kind model.Kind, id int64) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	repo, err := s.repo(kind)
	if err != nil {
		return err
	}

	resource, found, err := repo.Get(ctx, id)
	if err != nil {
		log.Error().Err(err).Int64("id", id).Msg("failed to get resource")

		return fmt.Errorf("failed to get %s: %w", kind, err)
	}

	if !found {
		return failure.NotFound(repo.Table().Entity + " not found")
	}

	if err = repo.Delete(ctx, id); err != nil {
		log.Error().Err(err).Int64("id", id).Msg("failed to delete resource")

		return storeError(fmt.Errorf("failed to delete %s: %w", kind, err), repo.Table(), true)
	}

	if image := resource.ImageURL(); image != nil && *image != constant.Empty {
		s.deleteImage(ctx, repo.Table(), *image)
	}

	s.invalidate(ctx, kind, id)

	return nil
}

// UploadImage stores the file in S3 and replaces the resource image. The previous object is removed afterwards.
func (s *serviceImpl) UploadImage(ctx context.Context, kind model.Kind, id int64, file multipart.File, header *multipart.FileHeader) (url string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UploadImage")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	repo, err := s.repo(kind)
	if err != nil {
		return constant.Empty, err
	}

	table := repo.Table()

	resource, found, err := repo.Get(ctx, id)
	if err != nil {
		log.Error().Err(err).Int64("id", id).Msg("failed to get resource")

		return constant.Empty, fmt.Errorf("failed to get %s: %w", kind, err)
	}

	if !found {
		return constant.Empty, failure.NotFound(table.Entity + " not found")
	}

	bucketName := s.cfg.External.S3.BucketName
	filename := uuid.NewString() + path.Ext(header.Filename)

	url, err = s.s3.UploadFile(ctx, bucketName, table.ImageFolder, file, header, filename)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload image to S3")

		return constant.Empty, fmt.Errorf("failed to upload image: %w", err)
	}

	fields := shared.TransformFields(struct{}{}, shared.Actor(ctx))
	fields[model.FieldImage] = url

	if err = repo.Update(ctx, fields, id); err != nil {
		_ = s.s3.DeleteFile(ctx, bucketName, table.ImageFolder, filename)

		return constant.Empty, fmt.Errorf("failed to update %s image: %w", kind, err)
	}

	if previous := resource.ImageURL(); previous != nil && *previous != constant.Empty {
		s.deleteImage(ctx, table, *previous)
	}

	s.invalidate(ctx, kind, id)

	return url, nil
}

func (s *serviceImpl) deleteImage(ctx context.Context, table model.Table, url string) {
	bucketName := s.cfg.External.S3.BucketName

	objectName := s.s3.GetObjectNameFromURL(bucketName, url)
	if objectName == constant.Empty {
		return
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.s3.DeleteFile(c, bucketName, table.ImageFolder, objectName); err != nil {
			log.Error().Err(err).Str("object", objectName).Msg("failed to delete previous image")
		}
	}()
}

// ListActive returns the bookable inventory of kind: active rooms, or every hall.
func (s *serviceImpl) ListActive(ctx context.Context, kind model.Kind) (res []model.Resource, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListActive")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	repo, err := s.repo(kind)
	if err != nil {
		return nil, err
	}

	table := repo.Table()
	filter := gDto.FilterGroup{}

	if table.HasIsActive {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    model.FieldIsActive,
			Operator: gDto.FilterOperatorEq,
			Value:    true,
			Table:    table.Name,
		})
	}

	params := gDto.QueryParams{SortBy: table.NumberField, SortDir: gDto.SortDirAsc}

	res, err = repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Str("kind", string(kind)).Msg("failed to list active resources")

		return nil, fmt.Errorf("failed to list active %s: %w", kind, err)
	}

	return res, nil
}
