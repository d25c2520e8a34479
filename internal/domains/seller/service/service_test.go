package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"hotelier/config"
	"hotelier/infras/kafka"
	"hotelier/infras/otel/mocks"
	pgMocks "hotelier/infras/postgres/mocks"
	"hotelier/internal/domains/seller/model"
	"hotelier/internal/domains/seller/model/dto"
	"hotelier/internal/domains/seller/service"
	cacheMocks "hotelier/shared/cache/mocks"
	"hotelier/shared/constant"
	gDto "hotelier/shared/dto"
	"hotelier/shared/failure"
	repoMocks "hotelier/shared/repository/mocks"
)

func setup(t *testing.T) (*repoMocks.MockStore[model.SellerApplication], *cacheMocks.MockRedisCache, service.SellerApplication) {
	t.Helper()

	ctrl := gomock.NewController(t)
	mockRepo := repoMocks.NewMockStore[model.SellerApplication](ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	otl := mocks.NewOtel()

	return mockRepo, mockCache, service.New(pgMocks.NewTransactor(), mockRepo, kafka.New(cfg, otl), cfg, mockCache, otl)
}

func TestSellerApplicationService_Submit(t *testing.T) {
	t.Run("anonymous submission is stored as pending", func(t *testing.T) {
		mockRepo, _, svc := setup(t)

		mockRepo.EXPECT().
			InsertReturningID(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, app model.SellerApplication) (int64, error) {
				assert.Equal(t, model.StatusPending, app.Status)
				assert.Equal(t, "owner@shop.test", app.Email)
				assert.Equal(t, constant.ContextAnonymous, app.CreatedBy)
				assert.Nil(t, app.ReviewedBy)

				return 8, nil
			})

		res, err := svc.Submit(context.Background(), dto.SubmitApplicationRequest{
			FullName: "Bilal Ahmed",
			Email:    " Owner@Shop.test ",
			Phone:    "+92300111222",
		})

		time.Sleep(10 * time.Millisecond)

		require.NoError(t, err)
		assert.Equal(t, int64(8), res.ID)
		assert.Equal(t, model.StatusPending, res.Status)
	})

	t.Run("store failure is reported", func(t *testing.T) {
		mockRepo, _, svc := setup(t)

		mockRepo.EXPECT().InsertReturningID(gomock.Any(), gomock.Any()).Return(int64(0), errors.New("connection reset"))

		_, err := svc.Submit(context.Background(), dto.SubmitApplicationRequest{FullName: "A", Email: "a@b.test", Phone: "1"})

		assert.Error(t, err)
	})
}

func TestSellerApplicationService_Review(t *testing.T) {
	reviewer := context.WithValue(context.Background(), constant.ContextKeyUserEmail, "admin@hotel.test")

	t.Run("approves a pending application", func(t *testing.T) {
		mockRepo, _, svc := setup(t)

		mockRepo.EXPECT().LockTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(model.SellerApplication{ID: 8, Status: model.StatusPending}, nil)
		mockRepo.EXPECT().
			UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, model.StatusApproved, fields[model.FieldStatus])
				assert.Equal(t, "admin@hotel.test", fields[model.FieldReviewedBy])
				assert.Equal(t, "documents verified", fields[model.FieldReviewNote])

				return nil
			})

		reviewedBy := "admin@hotel.test"
		mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).
			Return(model.SellerApplication{ID: 8, Status: model.StatusApproved, ReviewedBy: &reviewedBy}, nil)

		res, err := svc.Review(reviewer, 8, dto.ReviewApplicationRequest{Decision: model.DecisionApprove, Note: "documents verified"})

		time.Sleep(10 * time.Millisecond)

		require.NoError(t, err)
		assert.Equal(t, model.StatusApproved, res.Status)
	})

	t.Run("reviewed application is final", func(t *testing.T) {
		mockRepo, _, svc := setup(t)

		mockRepo.EXPECT().LockTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(model.SellerApplication{ID: 8, Status: model.StatusRejected}, nil)

		_, err := svc.Review(reviewer, 8, dto.ReviewApplicationRequest{Decision: model.DecisionApprove})

		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("missing application", func(t *testing.T) {
		mockRepo, _, svc := setup(t)

		mockRepo.EXPECT().LockTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(model.SellerApplication{}, nil)

		_, err := svc.Review(reviewer, 8, dto.ReviewApplicationRequest{Decision: model.DecisionReject})

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}
