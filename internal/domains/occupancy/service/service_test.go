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
	"hotelier/infras/kafka"
	"hotelier/infras/otel/mocks"
	pgMocks "hotelier/infras/postgres/mocks"
	bookingModel "hotelier/internal/domains/booking/model"
	"hotelier/internal/domains/occupancy/engine"
	"hotelier/internal/domains/occupancy/model"
	"hotelier/internal/domains/occupancy/model/dto"
	"hotelier/internal/domains/occupancy/repository"
	"hotelier/internal/domains/occupancy/service"
	resModel "hotelier/internal/domains/resource/model"
	resRepo "hotelier/internal/domains/resource/repository"
	resService "hotelier/internal/domains/resource/service"
	cacheMocks "hotelier/shared/cache/mocks"
	"hotelier/shared/constant"
	"hotelier/shared/failure"
	repoMocks "hotelier/shared/repository/mocks"
)

var (
	checkIn  = time.Date(2024, 3, 10, 14, 0, 0, 0, time.UTC)
	checkOut = time.Date(2024, 3, 12, 11, 0, 0, 0, time.UTC)
)

type fixture struct {
	bookings    *repoMocks.MockStore[bookingModel.Booking]
	rooms       *repoMocks.MockStore[resModel.Room]
	halls       *repoMocks.MockStore[resModel.Hall]
	bookedRooms *repoMocks.MockStore[model.BookedRoom]
	bookedHalls *repoMocks.MockStore[model.BookedHall]
	assignment  service.Assignment
	available   service.Availability
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := fixture{
		bookings:    repoMocks.NewMockStore[bookingModel.Booking](ctrl),
		rooms:       repoMocks.NewMockStore[resModel.Room](ctrl),
		halls:       repoMocks.NewMockStore[resModel.Hall](ctrl),
		bookedRooms: repoMocks.NewMockStore[model.BookedRoom](ctrl),
		bookedHalls: repoMocks.NewMockStore[model.BookedHall](ctrl),
	}

	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	otl := mocks.NewOtel()
	resources := resRepo.NewRegistry(f.rooms, f.halls)
	occupancy := repository.NewRegistry(f.bookedRooms, f.bookedHalls)

	f.assignment = service.NewAssignment(pgMocks.NewTransactor(), f.bookings, resources, occupancy, kafka.New(cfg, otl), cfg, mockCache, otl)
	f.available = service.NewAvailability(occupancy, resService.New(resources, cfg, mockCache, otl, nil), otl)

	return f
}

func roomBooking() bookingModel.Booking {
	return bookingModel.Booking{
		ID:            1,
		GuestID:       4,
		CheckIn:       checkIn,
		CheckOut:      checkOut,
		BookingType:   resModel.KindRoom,
		BookingStatus: bookingModel.StatusConfirmed,
	}
}

func TestAssignment_Assign(t *testing.T) {
	roomReq := dto.AssignRequest{Kind: resModel.KindRoom, ResourceID: 5}

	tests := []struct {
		name         string
		req          dto.AssignRequest
		setup        func(f fixture)
		wantCode     int
		wantConflict bool
	}{
		{
			name: "assigns a free room",
			req:  roomReq,
			setup: func(f fixture) {
				f.bookings.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(roomBooking(), nil)
				f.rooms.EXPECT().LockTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(resModel.Room{ID: 5, IsActive: true}, nil)
				f.bookedRooms.EXPECT().GetAllTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.BookedRoom{}, nil)
				f.bookedRooms.EXPECT().
					InsertReturningIDTx(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ any, row model.BookedRoom) (int64, error) {
						assert.Equal(t, int64(1), row.BookingID)
						assert.Equal(t, int64(5), row.RoomID)
						assert.True(t, checkIn.Equal(row.CheckIn))
						assert.True(t, checkOut.Equal(row.CheckOut))
						assert.Equal(t, engine.StatusBooked, row.Status)

						return 33, nil
					})
			},
		},
		{
			name: "touching stay on the same room conflicts",
			req:  roomReq,
			setup: func(f fixture) {
				f.bookings.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(roomBooking(), nil)
				f.rooms.EXPECT().LockTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(resModel.Room{ID: 5, IsActive: true}, nil)
				f.bookedRooms.EXPECT().GetAllTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.BookedRoom{
					{ID: 8, BookingID: 9, RoomID: 5, CheckIn: checkOut, CheckOut: checkOut.Add(48 * time.Hour), Status: engine.StatusBooked},
				}, nil)
			},
			wantCode:     http.StatusConflict,
			wantConflict: true,
		},
		{
			name: "exclusion constraint violation is a conflict",
			req:  roomReq,
			setup: func(f fixture) {
				f.bookings.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(roomBooking(), nil)
				f.rooms.EXPECT().LockTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(resModel.Room{ID: 5, IsActive: true}, nil)
				f.bookedRooms.EXPECT().GetAllTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
				f.bookedRooms.EXPECT().InsertReturningIDTx(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(int64(0), fmt.Errorf("insert: %w", &pq.Error{Code: constant.PqErrorCodeExclusionViolation}))
			},
			wantCode:     http.StatusConflict,
			wantConflict: true,
		},
		{
			name: "unknown booking",
			req:  roomReq,
			setup: func(f fixture) {
				f.bookings.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(bookingModel.Booking{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "cancelled booking",
			req:  roomReq,
			setup: func(f fixture) {
				booking := roomBooking()
				booking.BookingStatus = bookingModel.StatusCancelled

				f.bookings.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(booking, nil)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "kind must match booking type",
			req:  dto.AssignRequest{Kind: resModel.KindHall, ResourceID: 5, BookingBasis: model.BasisDaily},
			setup: func(f fixture) {
				f.bookings.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(roomBooking(), nil)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "hall requires a booking basis",
			req:  dto.AssignRequest{Kind: resModel.KindHall, ResourceID: 2},
			setup: func(f fixture) {
				booking := roomBooking()
				booking.BookingType = resModel.KindHall

				f.bookings.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(booking, nil)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "inactive room",
			req:  roomReq,
			setup: func(f fixture) {
				f.bookings.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(roomBooking(), nil)
				f.rooms.EXPECT().LockTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(resModel.Room{ID: 5, RoomNumber: "105"}, nil)
			},
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setup(f)

			rec, err := f.assignment.Assign(context.Background(), 1, tt.req)

			time.Sleep(10 * time.Millisecond)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
				assert.Equal(t, tt.wantConflict, errors.Is(err, model.ErrResourceConflict))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, int64(33), rec.ID)
			assert.Equal(t, resModel.KindRoom, rec.Kind)
			assert.Equal(t, engine.StatusBooked, rec.Status)
		})
	}
}

func TestAssignment_AssignHallKeepsBasis(t *testing.T) {
	f := newFixture(t)

	booking := roomBooking()
	booking.BookingType = resModel.KindHall

	f.halls.EXPECT().LockTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(resModel.Hall{ID: 2}, nil)
	f.bookedHalls.EXPECT().GetAllTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
	f.bookedHalls.EXPECT().
		InsertReturningIDTx(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ any, row model.BookedHall) (int64, error) {
			assert.Equal(t, model.BasisHourly, row.BookingBasis)

			return 4, nil
		})

	rec, err := f.assignment.AssignTx(context.Background(), nil, booking,
		dto.AssignRequest{Kind: resModel.KindHall, ResourceID: 2, BookingBasis: model.BasisHourly})

	require.NoError(t, err)
	assert.Equal(t, model.BasisHourly, rec.BookingBasis)
}

func TestAssignment_CheckIn(t *testing.T) {
	tests := []struct {
		name     string
		row      model.BookedRoom
		wantCode int
	}{
		{name: "booked stay", row: model.BookedRoom{ID: 3, BookingID: 1, RoomID: 5, Status: engine.StatusBooked}},
		{name: "already checked in", row: model.BookedRoom{ID: 3, Status: engine.StatusCheckedIn}, wantCode: http.StatusConflict},
		{name: "missing", row: model.BookedRoom{}, wantCode: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			f.bookedRooms.EXPECT().Get(gomock.Any(), gomock.Any()).Return(tt.row, nil)

			if tt.wantCode == 0 {
				f.bookedRooms.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			}

			err := f.assignment.CheckIn(context.Background(), resModel.KindRoom, 3)

			time.Sleep(10 * time.Millisecond)

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestAvailability_ListAvailable(t *testing.T) {
	window := engine.Interval{Start: checkIn, End: checkOut}

	t.Run("excludes occupied rooms", func(t *testing.T) {
		f := newFixture(t)

		f.rooms.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]resModel.Room{
			{ID: 1, IsActive: true}, {ID: 2, IsActive: true}, {ID: 3, IsActive: true},
		}, nil)
		f.bookedRooms.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.BookedRoom{
			{ID: 7, RoomID: 2, CheckIn: checkIn.Add(-time.Hour), CheckOut: checkIn, Status: engine.StatusCheckedIn},
		}, nil)

		res, err := f.available.ListAvailable(context.Background(), resModel.KindRoom, window)

		require.NoError(t, err)
		require.Len(t, res, 2)
		assert.Equal(t, int64(1), res[0].ResourceID())
		assert.Equal(t, int64(3), res[1].ResourceID())
	})

	t.Run("store failure is not reported as available", func(t *testing.T) {
		f := newFixture(t)

		f.rooms.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]resModel.Room{{ID: 1, IsActive: true}}, nil)
		f.bookedRooms.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("connection refused"))

		res, err := f.available.ListAvailable(context.Background(), resModel.KindRoom, window)

		assert.Error(t, err)
		assert.Nil(t, res)
	})

	t.Run("inverted window", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.available.ListAvailable(context.Background(), resModel.KindRoom, engine.Interval{Start: checkOut, End: checkIn})

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})
}

func TestAvailability_StatusAt(t *testing.T) {
	f := newFixture(t)

	f.bookedHalls.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.BookedHall{
		{ID: 1, HallID: 2, CheckIn: checkIn, CheckOut: checkOut, Status: engine.StatusCheckedIn, BookingBasis: model.BasisDaily},
	}, nil)
	f.bookedHalls.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)

	status, err := f.available.StatusAt(context.Background(), resModel.KindHall, 2, checkIn.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, engine.StatusCheckedIn, status)

	status, err = f.available.StatusAt(context.Background(), resModel.KindHall, 2, checkOut.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, engine.StatusAvailable, status)
}

func TestAvailability_FindBookingForResource(t *testing.T) {
	f := newFixture(t)

	f.bookedRooms.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.BookedRoom{
		{ID: 11, BookingID: 6, RoomID: 5, CheckIn: checkIn, CheckOut: checkOut, Status: engine.StatusBooked},
	}, nil)

	rec, found, err := f.available.FindBookingForResource(context.Background(), resModel.KindRoom, 5, engine.DayWindow(checkOut, time.UTC))

	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, int64(6), rec.BookingID)
	assert.Equal(t, resModel.KindRoom, rec.Kind)
}
