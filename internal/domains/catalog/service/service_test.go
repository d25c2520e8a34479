package service_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"hotelier/config"
	"hotelier/infras/otel/mocks"
	"hotelier/internal/domains/catalog/model"
	"hotelier/internal/domains/catalog/service"
	cacheMocks "hotelier/shared/cache/mocks"
	"hotelier/shared/constant"
	gDto "hotelier/shared/dto"
	"hotelier/shared/failure"
	repoMocks "hotelier/shared/repository/mocks"
)

func setup[T model.Entry[T]](t *testing.T, kind model.Kind) (*repoMocks.MockStore[T], *cacheMocks.MockRedisCache, service.Catalog[T]) {
	t.Helper()

	ctrl := gomock.NewController(t)
	mockRepo := repoMocks.NewMockStore[T](ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	return mockRepo, mockCache, service.New[T](kind, mockRepo, cfg, mockCache, mocks.NewOtel())
}

func TestCatalogService_Create(t *testing.T) {
	mockRepo, _, svc := setup[model.Floor](t, model.KindFloor)

	mockRepo.EXPECT().
		InsertReturningID(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, floor model.Floor) (int64, error) {
			assert.Zero(t, floor.ID)
			assert.Equal(t, "Ground", floor.Name)
			assert.Equal(t, constant.ContextAnonymous, floor.CreatedBy)
			assert.False(t, floor.CreatedAt.IsZero())

			return 4, nil
		})

	id, err := svc.Create(context.Background(), model.Floor{Base: model.Base{ID: 99}, Name: "Ground"})

	time.Sleep(10 * time.Millisecond)

	require.NoError(t, err)
	assert.Equal(t, int64(4), id)
	assert.Equal(t, model.KindFloor, svc.Kind())
}

func TestCatalogService_CreateErrors(t *testing.T) {
	tests := []struct {
		name     string
		code     pq.ErrorCode
		wantCode int
	}{
		{name: "duplicate name", code: constant.PqErrorCodeUniqueViolation, wantCode: http.StatusConflict},
		{name: "unknown department", code: constant.PqErrorCodeFkViolation, wantCode: http.StatusBadRequest},
		{name: "other failure", code: "08006", wantCode: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo, _, svc := setup[model.Designation](t, model.KindDesignation)

			mockRepo.EXPECT().InsertReturningID(gomock.Any(), gomock.Any()).
				Return(int64(0), fmt.Errorf("insert: %w", &pq.Error{Code: tt.code}))

			_, err := svc.Create(context.Background(), model.Designation{Name: "Chef", DepartmentID: 2})

			assert.Equal(t, tt.wantCode, failure.GetCode(err))
		})
	}
}

func TestCatalogService_GetAll(t *testing.T) {
	mockRepo, mockCache, svc := setup[model.Amenity](t, model.KindAmenity)

	mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
	mockRepo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(0, nil)
	mockRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)

	res, err := svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 10}, gDto.FilterGroup{})

	time.Sleep(10 * time.Millisecond)

	require.NoError(t, err)
	assert.NotNil(t, res.Entries)
	assert.Empty(t, res.Entries)
	assert.Equal(t, 0, res.TotalData)
}

func TestCatalogService_Get(t *testing.T) {
	tests := []struct {
		name     string
		stored   model.PaidService
		wantCode int
	}{
		{name: "missing", stored: model.PaidService{}, wantCode: http.StatusNotFound},
		{name: "found", stored: model.PaidService{Base: model.Base{ID: 7}, Name: "Laundry", Price: decimal.NewFromInt(15)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo, mockCache, svc := setup[model.PaidService](t, model.KindPaidService)

			mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
			mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(tt.stored, nil)

			res, err := svc.Get(context.Background(), 7)

			time.Sleep(10 * time.Millisecond)

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "Laundry", res.Name)
			assert.True(t, decimal.NewFromInt(15).Equal(res.Price))
		})
	}
}

func TestCatalogService_Update(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(repo *repoMocks.MockStore[model.MenuItem])
		wantCode int
	}{
		{
			name: "missing entry",
			setup: func(repo *repoMocks.MockStore[model.MenuItem]) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "duplicate name",
			setup: func(repo *repoMocks.MockStore[model.MenuItem]) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(&pq.Error{Code: constant.PqErrorCodeUniqueViolation})
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "replaces every column",
			setup: func(repo *repoMocks.MockStore[model.MenuItem]) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, "Tea", fields["name"])
						assert.Equal(t, "", fields["category"])
						assert.Equal(t, false, fields["is_available"])
						assert.Contains(t, fields, "modified_by")
						assert.NotContains(t, fields, "id")
						assert.NotContains(t, fields, "created_at")

						return nil
					})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo, _, svc := setup[model.MenuItem](t, model.KindMenuItem)
			tt.setup(mockRepo)

			err := svc.Update(context.Background(), 5, model.MenuItem{Name: "Tea", Price: decimal.NewFromInt(2)})

			time.Sleep(10 * time.Millisecond)

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestCatalogService_Delete(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(repo *repoMocks.MockStore[model.Employee])
		wantCode int
	}{
		{
			name: "missing employee",
			setup: func(repo *repoMocks.MockStore[model.Employee]) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "still assigned to a room",
			setup: func(repo *repoMocks.MockStore[model.Employee]) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				repo.EXPECT().Delete(gomock.Any(), gomock.Any()).
					Return(fmt.Errorf("delete: %w", &pq.Error{Code: constant.PqErrorCodeFkViolation}))
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "deleted",
			setup: func(repo *repoMocks.MockStore[model.Employee]) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo, _, svc := setup[model.Employee](t, model.KindEmployee)
			tt.setup(mockRepo)

			err := svc.Delete(context.Background(), 8)

			time.Sleep(10 * time.Millisecond)

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}
