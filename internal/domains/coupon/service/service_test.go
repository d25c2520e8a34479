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
	"hotelier/internal/domains/coupon/model"
	"hotelier/internal/domains/coupon/model/dto"
	"hotelier/internal/domains/coupon/service"
	cacheMocks "hotelier/shared/cache/mocks"
	"hotelier/shared/constant"
	gDto "hotelier/shared/dto"
	"hotelier/shared/failure"
	repoMocks "hotelier/shared/repository/mocks"
)

func setup(t *testing.T) (*repoMocks.MockStore[model.Coupon], *cacheMocks.MockRedisCache, service.Coupon) {
	t.Helper()

	ctrl := gomock.NewController(t)
	mockRepo := repoMocks.NewMockStore[model.Coupon](ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	return mockRepo, mockCache, service.New(mockRepo, cfg, mockCache, mocks.NewOtel())
}

func createRequest() dto.CreateCouponRequest {
	return dto.CreateCouponRequest{
		Code:             " summer10 ",
		Type:             model.TypePercentage,
		Value:            decimal.NewFromInt(10),
		CouponPeriod:     "[2024-06-01,2024-08-31]",
		IncludeRoomTypes: []int64{1, 2},
	}
}

func TestCouponService_Create(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(r *dto.CreateCouponRequest)
		setup    func(m *repoMocks.MockStore[model.Coupon])
		wantCode int
	}{
		{
			name:   "normalises code and period",
			mutate: func(*dto.CreateCouponRequest) {},
			setup: func(m *repoMocks.MockStore[model.Coupon]) {
				m.EXPECT().Count(gomock.Any(), gomock.Any()).Return(0, nil)
				m.EXPECT().
					InsertReturningID(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, c model.Coupon) (int64, error) {
						assert.Equal(t, "SUMMER10", c.Code)
						assert.Equal(t, "[2024-06-01,2024-09-01)", c.CouponPeriod)
						assert.Equal(t, pq.Int64Array{1, 2}, c.IncludeRoomTypes)

						return 3, nil
					})
			},
		},
		{
			name:     "percentage above 100",
			mutate:   func(r *dto.CreateCouponRequest) { r.Value = decimal.NewFromInt(150) },
			setup:    func(*repoMocks.MockStore[model.Coupon]) {},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "zero flat value",
			mutate:   func(r *dto.CreateCouponRequest) { r.Type = model.TypeFlat; r.Value = decimal.Zero },
			setup:    func(*repoMocks.MockStore[model.Coupon]) {},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "room type both included and excluded",
			mutate:   func(r *dto.CreateCouponRequest) { r.ExcludeRoomTypes = []int64{2} },
			setup:    func(*repoMocks.MockStore[model.Coupon]) {},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "malformed period",
			mutate:   func(r *dto.CreateCouponRequest) { r.CouponPeriod = "2024-06-01 to 2024-08-31" },
			setup:    func(*repoMocks.MockStore[model.Coupon]) {},
			wantCode: http.StatusBadRequest,
		},
		{
			name:   "duplicate code",
			mutate: func(*dto.CreateCouponRequest) {},
			setup: func(m *repoMocks.MockStore[model.Coupon]) {
				m.EXPECT().Count(gomock.Any(), gomock.Any()).Return(1, nil)
			},
			wantCode: http.StatusConflict,
		},
		{
			name:   "unique violation from a concurrent insert",
			mutate: func(*dto.CreateCouponRequest) {},
			setup: func(m *repoMocks.MockStore[model.Coupon]) {
				m.EXPECT().Count(gomock.Any(), gomock.Any()).Return(0, nil)
				m.EXPECT().InsertReturningID(gomock.Any(), gomock.Any()).
					Return(int64(0), fmt.Errorf("insert: %w", &pq.Error{Code: constant.PqErrorCodeUniqueViolation}))
			},
			wantCode: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo, _, svc := setup(t)
			tt.setup(mockRepo)

			req := createRequest()
			tt.mutate(&req)

			id, err := svc.Create(context.Background(), req)

			time.Sleep(10 * time.Millisecond)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, int64(3), id)
		})
	}
}

func TestCouponService_Update(t *testing.T) {
	current := model.Coupon{ID: 3, Code: "SUMMER10", Type: model.TypeFlat, Value: decimal.NewFromInt(500), CouponPeriod: "[2024-06-01,2024-09-01)"}

	t.Run("switching to percentage is checked against the stored value", func(t *testing.T) {
		mockRepo, _, svc := setup(t)

		mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(current, nil)

		percentage := model.TypePercentage
		err := svc.Update(context.Background(), dto.UpdateCouponRequest{Type: &percentage}, 3)

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("renaming to a code in use", func(t *testing.T) {
		mockRepo, _, svc := setup(t)

		mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(current, nil)
		mockRepo.EXPECT().
			Count(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (int, error) {
				where, _ := filter.GetWhereClause()
				assert.Contains(t, where, "coupons.id !=")

				return 1, nil
			})

		code := "winter"
		err := svc.Update(context.Background(), dto.UpdateCouponRequest{Code: &code}, 3)

		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("period is stored half-open", func(t *testing.T) {
		mockRepo, _, svc := setup(t)

		mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(current, nil)
		mockRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, "[2024-07-01,2024-08-01)", fields[model.FieldCouponPeriod])

				return nil
			})

		period := "[2024-07-01,2024-07-31]"
		err := svc.Update(context.Background(), dto.UpdateCouponRequest{CouponPeriod: &period}, 3)

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
	})
}

func TestCouponService_Get(t *testing.T) {
	mockRepo, mockCache, svc := setup(t)

	mockCache.EXPECT().Get(gomock.Any(), "coupon:get:3", gomock.Any()).Return(errors.New("cache miss"))
	mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Coupon{
		ID: 3, Code: "SUMMER10", Type: model.TypeFlat, Value: decimal.NewFromInt(500), CouponPeriod: "[2024-06-01,2024-09-01)",
	}, nil)

	res, err := svc.Get(context.Background(), 3)

	time.Sleep(10 * time.Millisecond)

	require.NoError(t, err)
	assert.Equal(t, "2024-06-01", res.StartDate)
	assert.Equal(t, "2024-08-31", res.EndDate)
	assert.Empty(t, res.IncludeRoomTypes)
	assert.NotNil(t, res.IncludeRoomTypes)
}
