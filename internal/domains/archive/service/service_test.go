package service_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/mock/gomock"

	"hotelier/config"
	"hotelier/infras/otel/mocks"
	"hotelier/internal/domains/archive/export"
	"hotelier/internal/domains/archive/model"
	"hotelier/internal/domains/archive/service"
	"hotelier/internal/domains/occupancy/engine"
	occModel "hotelier/internal/domains/occupancy/model"
	occRepo "hotelier/internal/domains/occupancy/repository"
	resModel "hotelier/internal/domains/resource/model"
	cacheMocks "hotelier/shared/cache/mocks"
	gDto "hotelier/shared/dto"
	repoMocks "hotelier/shared/repository/mocks"
)

type fixture struct {
	archives    *repoMocks.MockStore[model.ArchivedBooking]
	entries     *repoMocks.MockStore[model.Entry]
	bookedRooms *repoMocks.MockStore[occModel.BookedRoom]
	bookedHalls *repoMocks.MockStore[occModel.BookedHall]
	cache       *cacheMocks.MockRedisCache
	svc         service.Archive
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := fixture{
		archives:    repoMocks.NewMockStore[model.ArchivedBooking](ctrl),
		entries:     repoMocks.NewMockStore[model.Entry](ctrl),
		bookedRooms: repoMocks.NewMockStore[occModel.BookedRoom](ctrl),
		bookedHalls: repoMocks.NewMockStore[occModel.BookedHall](ctrl),
		cache:       cacheMocks.NewMockRedisCache(ctrl),
	}

	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	occupancy := occRepo.NewRegistry(f.bookedRooms, f.bookedHalls)
	f.svc = service.New(f.archives, f.entries, occupancy, cfg, f.cache, mocks.NewOtel())

	return f
}

func entry() model.Entry {
	return model.Entry{
		ID:            1,
		BookingID:     12,
		CompletedAt:   time.Date(2024, 5, 3, 11, 0, 0, 0, time.UTC),
		GuestID:       3,
		GuestName:     "Ayesha Khan",
		BookingType:   resModel.KindRoom,
		TotalAmount:   decimal.NewFromInt(220),
		PaidAmount:    decimal.NewFromInt(220),
		PaymentStatus: "success",
	}
}

func TestArchiveService_GetAll(t *testing.T) {
	f := newFixture(t)

	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).Times(2)
	f.entries.EXPECT().Count(gomock.Any(), gomock.Any()).Return(1, nil)
	f.entries.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Entry{entry()}, nil)
	f.bookedRooms.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]occModel.BookedRoom, error) {
			_, args := filter.GetWhereClause()
			assert.Equal(t, int64(12), args["booking_id_0"])

			return []occModel.BookedRoom{{ID: 7, BookingID: 12, RoomID: 5, Status: engine.StatusCheckedOut}}, nil
		})
	f.bookedHalls.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)

	res, err := f.svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 10}, gDto.FilterGroup{})

	time.Sleep(10 * time.Millisecond)

	require.NoError(t, err)
	assert.Equal(t, 1, res.TotalData)
	require.Len(t, res.Archives, 1)
	assert.Equal(t, "Ayesha Khan", res.Archives[0].GuestName)
	require.Len(t, res.Archives[0].Occupancy, 1)
	assert.Equal(t, engine.StatusCheckedOut, res.Archives[0].Occupancy[0].Status)
}

func TestArchiveService_Export(t *testing.T) {
	f := newFixture(t)

	f.entries.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]model.Entry, error) {
			assert.Equal(t, gDto.SortDirDesc, params.SortDir)

			return []model.Entry{entry()}, nil
		})
	f.bookedRooms.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
	f.bookedHalls.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)

	data, err := f.svc.Export(context.Background(), gDto.FilterGroup{})
	require.NoError(t, err)

	file, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)

	defer file.Close()

	rows, err := file.GetRows(export.SheetName)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestArchiveService_IsArchived(t *testing.T) {
	f := newFixture(t)

	f.archives.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)

	archived, err := f.svc.IsArchived(context.Background(), 12)

	require.NoError(t, err)
	assert.True(t, archived)
}
