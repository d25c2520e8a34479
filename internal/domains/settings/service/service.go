package service

import (
	"context"
	"fmt"
	"hotelier/config"
	"hotelier/infras/otel"
	"hotelier/infras/s3"
	"hotelier/internal/domains/settings/model"
	"hotelier/internal/domains/settings/model/dto"
	"hotelier/internal/domains/settings/repository"
	"hotelier/shared"
	"hotelier/shared/cache"
	"hotelier/shared/constant"
	"hotelier/shared/failure"
	gModel "hotelier/shared/model"
	"hotelier/shared/timezone"
	"mime/multipart"
	"path"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type Settings interface {
	// Load reads the AppConfig from cache, then the database, then the configured defaults.
	Load(ctx context.Context) (model.AppConfig, error)
	Update(ctx context.Context, req dto.UpdateSettingsRequest) (model.AppConfig, error)
	UploadLogo(ctx context.Context, file multipart.File, header *multipart.FileHeader) (string, error)
	Invalidate(ctx context.Context)
}

type serviceImpl struct {
	repo  repository.Settings
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
	s3    s3.S3
}

func New(repo repository.Settings, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, s3 s3.S3) Settings {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
		s3:    s3,
	}
}

func (s *serviceImpl) defaults() model.AppConfig {
	return model.AppConfig{
		HotelName:      s.cfg.App.Hotel.Name,
		CurrencySymbol: s.cfg.App.Hotel.CurrencySymbol,
	}
}

func (s *serviceImpl) Load(ctx context.Context) (res model.AppConfig, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".LoadSettings")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	err = s.cache.Get(ctx, model.CacheAppConfig, &res)
	if err == nil {
		log.Info().Str("cacheKey", model.CacheAppConfig).Msg("cache hit for app config")

		return res, nil
	}

	settings, err := s.repo.Get(ctx, shared.FilterByID(model.SingletonID, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get hotel settings")

		return res, fmt.Errorf("failed to get hotel settings: %w", err)
	}

	if settings.ID == 0 {
		res = s.defaults()
	} else {
		res = settings.ToAppConfig()
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, model.CacheAppConfig, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save app config to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateSettingsRequest) (res model.AppConfig, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateSettings")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.IsEmpty() {
		return res, failure.BadRequestFromString("update request cannot be empty")
	}

	if err = s.upsert(ctx, req.ToFields(shared.Actor(ctx)), func(current model.AppConfig) model.AppConfig {
		return req.Apply(current)
	}); err != nil {
		return res, err
	}

	s.Invalidate(ctx)

	return s.Load(ctx)
}

// upsert updates the singleton row, creating it from the defaults merged with apply when missing.
func (s *serviceImpl) upsert(ctx context.Context, fields map[string]any, apply func(model.AppConfig) model.AppConfig) error {
	filter := shared.FilterByID(model.SingletonID, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check hotel settings")

		return fmt.Errorf("failed to check hotel settings: %w", err)
	}

	if exist {
		if err = s.repo.Update(ctx, fields, filter); err != nil {
			log.Error().Err(err).Msg("failed to update hotel settings")

			return fmt.Errorf("failed to update hotel settings: %w", err)
		}

		return nil
	}

	merged := apply(s.defaults())
	row := model.Settings{
		ID:             model.SingletonID,
		HotelName:      merged.HotelName,
		CurrencySymbol: merged.CurrencySymbol,
		Metadata:       gModel.NewMetadata(shared.Actor(ctx), timezone.Now()),
	}

	if merged.LogoURL != "" {
		row.Logo = &merged.LogoURL
	}

	if err = s.repo.Insert(ctx, row); err != nil {
		log.Error().Err(err).Msg("failed to create hotel settings")

		return fmt.Errorf("failed to create hotel settings: %w", err)
	}

	return nil
}

func (s *serviceImpl) UploadLogo(ctx context.Context, file multipart.File, header *multipart.FileHeader) (url string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UploadLogo")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	bucket := s.cfg.External.S3.BucketName
	objectName := uuid.NewString() + path.Ext(header.Filename)

	url, err = s.s3.UploadFile(ctx, bucket, model.LogoFolder, file, header, objectName)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload hotel logo")

		return "", fmt.Errorf("failed to upload hotel logo: %w", err)
	}

	fields := shared.TransformFields(struct{}{}, shared.Actor(ctx))
	fields[model.FieldLogo] = url

	err = s.upsert(ctx, fields, func(current model.AppConfig) model.AppConfig {
		current.LogoURL = url

		return current
	})
	if err != nil {
		if delErr := s.s3.DeleteFile(context.WithoutCancel(ctx), bucket, model.LogoFolder, objectName); delErr != nil {
			log.Error().Err(delErr).Str("object", objectName).Msg("failed to remove orphaned logo")
		}

		return "", err
	}

	s.Invalidate(ctx)

	return url, nil
}

func (s *serviceImpl) Invalidate(ctx context.Context) {
	if err := s.cache.Delete(ctx, model.CacheAppConfig); err != nil {
		log.Error().Err(err).Msg("failed to delete app config from cache")
	}
}
