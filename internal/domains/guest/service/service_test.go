package service_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"hotelier/config"
	"hotelier/infras/otel/mocks"
	"hotelier/internal/domains/guest/model"
	"hotelier/internal/domains/guest/model/dto"
	"hotelier/internal/domains/guest/service"
	cacheMocks "hotelier/shared/cache/mocks"
	"hotelier/shared/constant"
	gDto "hotelier/shared/dto"
	"hotelier/shared/failure"
	repoMocks "hotelier/shared/repository/mocks"
)

func setup(t *testing.T) (*repoMocks.MockStore[model.Guest], *cacheMocks.MockRedisCache, service.Guest) {
	t.Helper()

	ctrl := gomock.NewController(t)
	mockRepo := repoMocks.NewMockStore[model.Guest](ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	return mockRepo, mockCache, service.New(mockRepo, cfg, mockCache, mocks.NewOtel())
}

func TestGuestService_Create(t *testing.T) {
	mockRepo, _, svc := setup(t)

	mockRepo.EXPECT().
		InsertReturningID(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, guest model.Guest) (int64, error) {
			assert.Equal(t, "Ayesha Khan", guest.FullName)
			assert.True(t, guest.IsVIP)
			assert.Equal(t, constant.ContextAnonymous, guest.CreatedBy)

			return 12, nil
		})

	id, err := svc.Create(context.Background(), dto.CreateGuestRequest{FullName: "Ayesha Khan", IsVIP: true})

	time.Sleep(10 * time.Millisecond)

	require.NoError(t, err)
	assert.Equal(t, int64(12), id)
}

func TestGuestService_GetAll(t *testing.T) {
	mockRepo, mockCache, svc := setup(t)

	mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).Times(2)
	mockRepo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(11, nil)
	mockRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Guest{{ID: 1, FullName: "A"}}, nil)

	res, err := svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 10}, gDto.FilterGroup{})

	time.Sleep(10 * time.Millisecond)

	require.NoError(t, err)
	assert.Equal(t, 2, res.TotalPage)
	assert.Equal(t, 11, res.TotalData)
	assert.Len(t, res.Guests, 1)
}

func TestGuestService_Update(t *testing.T) {
	name := "Bilal"

	tests := []struct {
		name     string
		req      dto.UpdateGuestRequest
		setup    func(repo *repoMocks.MockStore[model.Guest])
		wantCode int
	}{
		{
			name:     "empty request",
			req:      dto.UpdateGuestRequest{},
			setup:    func(*repoMocks.MockStore[model.Guest]) {},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "missing guest",
			req:  dto.UpdateGuestRequest{FullName: &name},
			setup: func(repo *repoMocks.MockStore[model.Guest]) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "updates the name",
			req:  dto.UpdateGuestRequest{FullName: &name},
			setup: func(repo *repoMocks.MockStore[model.Guest]) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, "Bilal", fields[model.FieldFullName])

						return nil
					})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo, _, svc := setup(t)
			tt.setup(mockRepo)

			err := svc.Update(context.Background(), tt.req, 3)

			time.Sleep(10 * time.Millisecond)

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestGuestService_DeleteWithBookings(t *testing.T) {
	mockRepo, _, svc := setup(t)

	mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
	mockRepo.EXPECT().Delete(gomock.Any(), gomock.Any()).
		Return(fmt.Errorf("delete: %w", &pq.Error{Code: constant.PqErrorCodeFkViolation}))

	err := svc.Delete(context.Background(), 3)

	assert.Equal(t, http.StatusConflict, failure.GetCode(err))
}
