package service

import (
	"context"
	"errors"
	"fmt"
	"hotelier/config"
	"hotelier/infras/jwt"
	"hotelier/infras/otel"
	"hotelier/internal/domains/auth/model/dto"
	settingsService "hotelier/internal/domains/settings/service"
	userModel "hotelier/internal/domains/user/model"
	userDto "hotelier/internal/domains/user/model/dto"
	userRepo "hotelier/internal/domains/user/repository"
	userService "hotelier/internal/domains/user/service"
	"hotelier/shared"
	"hotelier/shared/cache"
	"hotelier/shared/constant"
	"hotelier/shared/failure"
	"hotelier/shared/password"
	"hotelier/shared/timezone"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const cacheRevokedToken = "auth:revoked"

type Auth interface {
	Register(ctx context.Context, req dto.RegisterRequest) (dto.RegisterResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error)
	RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (dto.RefreshTokenResponse, error)
	// Logout revokes the session's token ids and drops the cached AppConfig.
	Logout(ctx context.Context, req dto.LogoutRequest) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
	ChangePassword(ctx context.Context, req dto.ChangePasswordRequest, userID string) error
}

type serviceImpl struct {
	userRepo   userRepo.User
	users      userService.User
	settings   settingsService.Settings
	cfg        *config.Config
	cache      cache.RedisCache
	otel       otel.Otel
	jwtService jwt.JWT
}

func New(
	userRepo userRepo.User,
	users userService.User,
	settings settingsService.Settings,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
	jwt jwt.JWT,
) Auth {
	return &serviceImpl{
		userRepo:   userRepo,
		users:      users,
		settings:   settings,
		cfg:        cfg,
		cache:      cache,
		otel:       otel,
		jwtService: jwt,
	}
}

func (s *serviceImpl) Register(ctx context.Context, req dto.RegisterRequest) (res dto.RegisterResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Register")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	exists, err := s.userRepo.Exist(ctx, userDto.EmailFilter(req.NormalizedEmail()))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if user exists")

		return res, fmt.Errorf("failed to check if user exists: %w", err)
	}

	if exists {
		return res, failure.Conflict("email already registered")
	}

	hashedPassword, err := password.Hash(req.Password)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")

		return res, fmt.Errorf("failed to hash password: %w", err)
	}

	user := req.ToUserModel(shared.Actor(ctx), hashedPassword)

	if err = s.userRepo.Insert(ctx, user); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == constant.PqErrorCodeUniqueViolation {
			return res, failure.Conflict("email already registered")
		}

		log.Error().Err(err).Msg("failed to create user")

		return res, fmt.Errorf("failed to create user: %w", err)
	}

	go s.users.Invalidate(context.WithoutCancel(ctx), "")

	res.ID = user.ID

	return res, nil
}

func (s *serviceImpl) Login(ctx context.Context, req dto.LoginRequest) (res dto.LoginResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Login")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	emailFilter := userDto.EmailFilter(req.NormalizedEmail())

	user, err := s.userRepo.Get(ctx, emailFilter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return res, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == "" {
		log.Warn().Str("email", req.Email).Msg("login attempt with non-existent email")

		return res, failure.Unauthorized("invalid email or password")
	}

	if err := password.Verify(req.Password, user.Password); err != nil {
		log.Warn().Str("email", req.Email).Msg("login attempt with wrong password")

		return res, failure.Unauthorized("invalid email or password")
	}

	if !user.Active {
		return res, failure.Forbidden("user account is deactivated")
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(user.ID, user.Email, user.Level)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate tokens")

		return res, fmt.Errorf("failed to generate tokens: %w", err)
	}

	fields := shared.TransformFields(struct{}{}, user.Email)
	fields[userModel.FieldLastLogin] = timezone.Now()

	if password.NeedsRehash(user.Password) {
		if rehashed, hashErr := password.Hash(req.Password); hashErr == nil {
			fields[userModel.FieldPassword] = rehashed
		}
	}

	if err := s.userRepo.Update(ctx, fields, emailFilter); err != nil {
		log.Warn().Err(err).Str("user_id", user.ID).Msg("failed to update last login")
	}

	res.FromTokenPair(tokenPair)

	return res, nil
}

func (s *serviceImpl) RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (res dto.RefreshTokenResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RefreshToken")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	claims, err := s.jwtService.ValidateToken(req.RefreshToken, jwt.RefreshToken)
	if err != nil {
		log.Warn().Err(err).Msg("failed to validate refresh token")

		return res, failure.Unauthorized("invalid refresh token")
	}

	revoked, err := s.IsRevoked(ctx, claims.TokenID)
	if err != nil {
		return res, err
	}

	if revoked {
		return res, failure.Unauthorized("refresh token has been revoked")
	}

	tokenPair, err := s.jwtService.RefreshTokens(req.RefreshToken)
	if err != nil {
		log.Warn().Err(err).Msg("failed to refresh tokens")

		return res, failure.Unauthorized("invalid refresh token")
	}

	s.revoke(ctx, claims)

	res.FromTokenPair(tokenPair)

	return res, nil
}

func (s *serviceImpl) Logout(ctx context.Context, req dto.LogoutRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Logout")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	tokenID, _ := ctx.Value(constant.ContextKeyTokenID).(string)
	if tokenID == "" {
		return failure.Unauthorized("missing session token")
	}

	key := shared.BuildCacheKey(cacheRevokedToken, tokenID)
	if err := s.cache.Save(ctx, key, constant.ContextAnonymous, s.cfg.JWT.AccessExpireMin*60); err != nil {
		log.Error().Err(err).Msg("failed to revoke access token")

		return fmt.Errorf("failed to revoke access token: %w", err)
	}

	if req.RefreshToken != "" {
		claims, err := s.jwtService.ValidateToken(req.RefreshToken, jwt.RefreshToken)
		if err != nil {
			log.Warn().Err(err).Msg("ignoring invalid refresh token on logout")
		} else {
			s.revoke(ctx, claims)
		}
	}

	s.settings.Invalidate(ctx)

	return nil
}

func (s *serviceImpl) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	revoked, err := s.cache.Exists(ctx, shared.BuildCacheKey(cacheRevokedToken, tokenID))
	if err != nil {
		log.Error().Err(err).Str("token_id", tokenID).Msg("failed to check token revocation")

		return false, fmt.Errorf("failed to check token revocation: %w", err)
	}

	return revoked, nil
}

// revoke blacklists the token id until the token would have expired anyway.
func (s *serviceImpl) revoke(ctx context.Context, claims *jwt.Claims) {
	ttl := s.cfg.JWT.RefreshExpireMin * 60
	if claims.ExpiresAt != nil {
		remaining := claims.TTL(timezone.Now())
		if remaining == 0 {
			return
		}

		ttl = int(remaining.Seconds()) + 1
	}

	if err := s.cache.Save(ctx, shared.BuildCacheKey(cacheRevokedToken, claims.TokenID), claims.UserID, ttl); err != nil {
		log.Error().Err(err).Str("token_id", claims.TokenID).Msg("failed to revoke token")
	}
}

func (s *serviceImpl) ChangePassword(ctx context.Context, req dto.ChangePasswordRequest, userID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ChangePassword")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterByID(userID, userModel.FieldID, userModel.TableName)

	user, err := s.userRepo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == "" {
		return failure.NotFound("user not found")
	}

	if err := password.Verify(req.CurrentPassword, user.Password); err != nil {
		return failure.BadRequestFromString("current password is incorrect")
	}

	hashedPassword, err := password.Hash(req.NewPassword)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash new password")

		return fmt.Errorf("failed to hash new password: %w", err)
	}

	fields := shared.TransformFields(struct{}{}, shared.Actor(ctx))
	fields[userModel.FieldPassword] = hashedPassword

	if err = s.userRepo.Update(ctx, fields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update password")

		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}
