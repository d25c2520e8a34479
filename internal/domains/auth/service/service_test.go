package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"hotelier/config"
	"hotelier/infras/jwt"
	jwtMocks "hotelier/infras/jwt/mocks"
	"hotelier/infras/otel/mocks"
	s3Mocks "hotelier/infras/s3/mocks"
	"hotelier/internal/domains/auth/model/dto"
	"hotelier/internal/domains/auth/service"
	settingsModel "hotelier/internal/domains/settings/model"
	settingsService "hotelier/internal/domains/settings/service"
	userModel "hotelier/internal/domains/user/model"
	userService "hotelier/internal/domains/user/service"
	cacheMocks "hotelier/shared/cache/mocks"
	"hotelier/shared/constant"
	gDto "hotelier/shared/dto"
	"hotelier/shared/failure"
	"hotelier/shared/password"
	repoMocks "hotelier/shared/repository/mocks"
	"hotelier/shared/timezone"
)

type fixture struct {
	users *repoMocks.MockStore[userModel.User]
	jwt   *jwtMocks.MockJWT
	cache *cacheMocks.MockRedisCache
	svc   service.Auth
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := fixture{
		users: repoMocks.NewMockStore[userModel.User](ctrl),
		jwt:   jwtMocks.NewMockJWT(ctrl),
		cache: cacheMocks.NewMockRedisCache(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 60
	cfg.JWT.AccessExpireMin = 15
	cfg.JWT.RefreshExpireMin = 60

	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	otl := mocks.NewOtel()
	users := userService.New(f.users, cfg, f.cache, otl)
	settings := settingsService.New(repoMocks.NewMockStore[settingsModel.Settings](ctrl), cfg, f.cache, otl, s3Mocks.NewMockS3(ctrl))

	f.svc = service.New(f.users, users, settings, cfg, f.cache, otl, f.jwt)

	return f
}

func operatorUser(t *testing.T, active bool) userModel.User {
	t.Helper()

	hash, err := password.Hash("correct-horse")
	require.NoError(t, err)

	return userModel.User{
		ID:       "6f1c2b9e-operator",
		Email:    "frontdesk@hotel.test",
		Password: hash,
		Level:    constant.RoleOperator,
		Active:   active,
	}
}

func TestAuthService_Register(t *testing.T) {
	adminCtx := context.WithValue(context.Background(), constant.ContextKeyUserEmail, "admin@hotel.test")

	tests := []struct {
		name     string
		setup    func(f fixture)
		wantCode int
	}{
		{
			name: "creates an operator with a normalized email",
			setup: func(f fixture) {
				f.users.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				f.users.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, user userModel.User) error {
						assert.Equal(t, "night@hotel.test", user.Email)
						assert.Equal(t, constant.RoleOperator, user.Level)
						assert.Equal(t, "admin@hotel.test", user.CreatedBy)
						assert.True(t, user.Active)
						assert.NoError(t, password.Verify("long-enough", user.Password))

						return nil
					})
			},
		},
		{
			name: "email already registered",
			setup: func(f fixture) {
				f.users.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "unique violation from a concurrent insert",
			setup: func(f fixture) {
				f.users.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				f.users.EXPECT().Insert(gomock.Any(), gomock.Any()).
					Return(&pq.Error{Code: constant.PqErrorCodeUniqueViolation})
			},
			wantCode: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setup(f)

			res, err := f.svc.Register(adminCtx, dto.RegisterRequest{
				Email:    " Night@Hotel.test ",
				Password: "long-enough",
				Level:    constant.RoleOperator,
			})

			time.Sleep(10 * time.Millisecond)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, res.ID)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	tests := []struct {
		name     string
		password string
		setup    func(t *testing.T, f fixture)
		wantCode int
	}{
		{
			name:     "issues a token pair and stamps last login",
			password: "correct-horse",
			setup: func(t *testing.T, f fixture) {
				user := operatorUser(t, true)

				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(user, nil)
				f.jwt.EXPECT().
					GenerateTokenPair(user.ID, user.Email, constant.RoleOperator).
					Return(&jwt.TokenPair{AccessToken: "access", RefreshToken: "refresh", TokenType: "Bearer", ExpiresIn: 900}, nil)
				f.users.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Contains(t, fields, userModel.FieldLastLogin)

						return nil
					})
			},
		},
		{
			name:     "unknown email",
			password: "correct-horse",
			setup: func(_ *testing.T, f fixture) {
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, nil)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name:     "wrong password",
			password: "battery-staple",
			setup: func(t *testing.T, f fixture) {
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(operatorUser(t, true), nil)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name:     "deactivated account",
			password: "correct-horse",
			setup: func(t *testing.T, f fixture) {
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(operatorUser(t, false), nil)
			},
			wantCode: http.StatusForbidden,
		},
		{
			name:     "store failure",
			password: "correct-horse",
			setup: func(_ *testing.T, f fixture) {
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, errors.New("connection refused"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setup(t, f)

			res, err := f.svc.Login(context.Background(), dto.LoginRequest{Email: "FrontDesk@hotel.test", Password: tt.password})

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "access", res.AccessToken)
			assert.Equal(t, "refresh", res.RefreshToken)
			assert.Equal(t, int64(900), res.ExpiresIn)
		})
	}
}

func TestAuthService_RefreshToken(t *testing.T) {
	claims := &jwt.Claims{
		UserID:  "6f1c2b9e-operator",
		TokenID: "refresh-1",
		RegisteredClaims: gojwt.RegisteredClaims{
			ExpiresAt: gojwt.NewNumericDate(timezone.Now().Add(time.Hour)),
		},
	}

	t.Run("rotates the pair and revokes the used refresh token", func(t *testing.T) {
		f := newFixture(t)

		f.jwt.EXPECT().ValidateToken("refresh", jwt.RefreshToken).Return(claims, nil)
		f.cache.EXPECT().Exists(gomock.Any(), "auth:revoked:refresh-1").Return(false, nil)
		f.jwt.EXPECT().RefreshTokens("refresh").Return(&jwt.TokenPair{AccessToken: "access-2", RefreshToken: "refresh-2"}, nil)
		f.cache.EXPECT().
			Save(gomock.Any(), "auth:revoked:refresh-1", claims.UserID, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, _ any, ttl int) error {
				assert.InDelta(t, 3600, ttl, 5)

				return nil
			})

		res, err := f.svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "refresh"})

		require.NoError(t, err)
		assert.Equal(t, "access-2", res.AccessToken)
		assert.Equal(t, "refresh-2", res.RefreshToken)
	})

	t.Run("revoked refresh token", func(t *testing.T) {
		f := newFixture(t)

		f.jwt.EXPECT().ValidateToken("refresh", jwt.RefreshToken).Return(claims, nil)
		f.cache.EXPECT().Exists(gomock.Any(), "auth:revoked:refresh-1").Return(true, nil)

		_, err := f.svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "refresh"})

		assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
	})

	t.Run("malformed refresh token", func(t *testing.T) {
		f := newFixture(t)

		f.jwt.EXPECT().ValidateToken("garbage", jwt.RefreshToken).Return(nil, jwt.ErrInvalidToken)

		_, err := f.svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "garbage"})

		assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
	})
}

func TestAuthService_Logout(t *testing.T) {
	t.Run("revokes the access token and drops the cached app config", func(t *testing.T) {
		f := newFixture(t)

		ctx := context.WithValue(context.Background(), constant.ContextKeyTokenID, "access-1")

		f.cache.EXPECT().Save(gomock.Any(), "auth:revoked:access-1", gomock.Any(), 15*60).Return(nil)
		f.cache.EXPECT().Delete(gomock.Any(), settingsModel.CacheAppConfig).Return(nil)

		assert.NoError(t, f.svc.Logout(ctx, dto.LogoutRequest{}))
	})

	t.Run("anonymous context", func(t *testing.T) {
		f := newFixture(t)

		err := f.svc.Logout(context.Background(), dto.LogoutRequest{})

		assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
	})
}

func TestAuthService_ChangePassword(t *testing.T) {
	t.Run("stores a new hash", func(t *testing.T) {
		f := newFixture(t)

		f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(operatorUser(t, true), nil)
		f.users.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				hash, ok := fields[userModel.FieldPassword].(string)
				require.True(t, ok)
				assert.NoError(t, password.Verify("battery-staple", hash))

				return nil
			})

		err := f.svc.ChangePassword(context.Background(), dto.ChangePasswordRequest{
			CurrentPassword: "correct-horse",
			NewPassword:     "battery-staple",
		}, "6f1c2b9e-operator")

		assert.NoError(t, err)
	})

	t.Run("wrong current password", func(t *testing.T) {
		f := newFixture(t)

		f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(operatorUser(t, true), nil)

		err := f.svc.ChangePassword(context.Background(), dto.ChangePasswordRequest{
			CurrentPassword: "nope-nope",
			NewPassword:     "battery-staple",
		}, "6f1c2b9e-operator")

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("missing user", func(t *testing.T) {
		f := newFixture(t)

		f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, nil)

		err := f.svc.ChangePassword(context.Background(), dto.ChangePasswordRequest{}, "ghost")

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}
