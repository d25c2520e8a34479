package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"hotelier/config"
	"hotelier/infras/otel/mocks"
	"hotelier/internal/domains/user/model"
	"hotelier/internal/domains/user/model/dto"
	"hotelier/internal/domains/user/service"
	cacheMocks "hotelier/shared/cache/mocks"
	"hotelier/shared/constant"
	gDto "hotelier/shared/dto"
	"hotelier/shared/failure"
	repoMocks "hotelier/shared/repository/mocks"
)

type fixture struct {
	repo  *repoMocks.MockStore[model.User]
	cache *cacheMocks.MockRedisCache
	svc   service.User
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := fixture{
		repo:  repoMocks.NewMockStore[model.User](ctrl),
		cache: cacheMocks.NewMockRedisCache(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 60

	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	f.svc = service.New(f.repo, cfg, f.cache, mocks.NewOtel())

	return f
}

func adminContext() context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "admin-1")

	return context.WithValue(ctx, constant.ContextKeyUserEmail, "admin@hotel.test")
}

func boolPtr(b bool) *bool {
	return &b
}

func stringPtr(s string) *string {
	return &s
}

func TestUserService_GetAll(t *testing.T) {
	f := newFixture(t)

	lastLogin := time.Date(2024, 5, 1, 8, 30, 0, 0, time.UTC)

	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).Times(2)
	f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(3, nil)
	f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.User{
		{ID: "a", Email: "a@hotel.test", Level: constant.RoleAdmin, Active: true, LastLogin: &lastLogin},
		{ID: "b", Email: "b@hotel.test", Level: constant.RoleOperator},
	}, nil)

	res, err := f.svc.GetAll(adminContext(), gDto.QueryParams{Page: 1, Limit: 2}, gDto.FilterGroup{})

	time.Sleep(10 * time.Millisecond)

	require.NoError(t, err)
	assert.Equal(t, 3, res.TotalData)
	assert.Equal(t, 2, res.TotalPage)
	require.Len(t, res.Users, 2)
	require.NotNil(t, res.Users[0].LastLogin)
	assert.Nil(t, res.Users[1].LastLogin)
}

func TestUserService_Get(t *testing.T) {
	f := newFixture(t)

	f.cache.EXPECT().Get(gomock.Any(), "user:get:ghost", gomock.Any()).Return(errors.New("cache miss"))
	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{}, nil)

	_, err := f.svc.Get(adminContext(), "ghost")

	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}

func TestUserService_Update(t *testing.T) {
	tests := []struct {
		name     string
		id       string
		req      dto.UpdateUserRequest
		setup    func(f fixture)
		wantCode int
	}{
		{
			name:     "empty request",
			id:       "b",
			req:      dto.UpdateUserRequest{},
			setup:    func(fixture) {},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "cannot deactivate self",
			id:       "admin-1",
			req:      dto.UpdateUserRequest{Active: boolPtr(false)},
			setup:    func(fixture) {},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "missing account",
			id:   "b",
			req:  dto.UpdateUserRequest{Level: stringPtr(constant.RoleAdmin)},
			setup: func(f fixture) {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "promotes an operator",
			id:   "b",
			req:  dto.UpdateUserRequest{Level: stringPtr(constant.RoleAdmin), Active: boolPtr(false)},
			setup: func(f fixture) {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, constant.RoleAdmin, fields[model.FieldLevel])
						assert.Equal(t, false, fields[model.FieldActive])
						assert.Equal(t, "admin@hotel.test", fields[constant.FieldModifiedBy])
						assert.NotContains(t, fields, model.FieldFullName)

						return nil
					})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setup(f)

			err := f.svc.Update(adminContext(), tt.req, tt.id)

			time.Sleep(10 * time.Millisecond)

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestUserService_Delete(t *testing.T) {
	t.Run("cannot delete self", func(t *testing.T) {
		f := newFixture(t)

		err := f.svc.Delete(adminContext(), "admin-1")

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("deletes another account", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)

		err := f.svc.Delete(adminContext(), "b")

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
	})
}
