package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"hotelier/config"
	"hotelier/infras/kafka"
	"hotelier/infras/otel/mocks"
	pgMocks "hotelier/infras/postgres/mocks"
	s3Mocks "hotelier/infras/s3/mocks"
	archiveModel "hotelier/internal/domains/archive/model"
	archiveService "hotelier/internal/domains/archive/service"
	bookingModel "hotelier/internal/domains/booking/model"
	"hotelier/internal/domains/checkout/model"
	"hotelier/internal/domains/checkout/model/dto"
	"hotelier/internal/domains/checkout/service"
	guestModel "hotelier/internal/domains/guest/model"
	"hotelier/internal/domains/occupancy/engine"
	occModel "hotelier/internal/domains/occupancy/model"
	occRepo "hotelier/internal/domains/occupancy/repository"
	paymentModel "hotelier/internal/domains/payment/model"
	paymentService "hotelier/internal/domains/payment/service"
	resModel "hotelier/internal/domains/resource/model"
	resRepo "hotelier/internal/domains/resource/repository"
	settingsModel "hotelier/internal/domains/settings/model"
	settingsService "hotelier/internal/domains/settings/service"
	cacheMocks "hotelier/shared/cache/mocks"
	"hotelier/shared/constant"
	gDto "hotelier/shared/dto"
	"hotelier/shared/failure"
	repoMocks "hotelier/shared/repository/mocks"
)

var (
	checkIn  = time.Date(2024, 5, 1, 14, 0, 0, 0, time.UTC)
	checkOut = time.Date(2024, 5, 3, 11, 0, 0, 0, time.UTC)
)

type fixture struct {
	bookings    *repoMocks.MockStore[bookingModel.Booking]
	guests      *repoMocks.MockStore[guestModel.Guest]
	bookedRooms *repoMocks.MockStore[occModel.BookedRoom]
	bookedHalls *repoMocks.MockStore[occModel.BookedHall]
	rooms       *repoMocks.MockStore[resModel.Room]
	halls       *repoMocks.MockStore[resModel.Hall]
	payments    *repoMocks.MockStore[paymentModel.Payment]
	archives    *repoMocks.MockStore[archiveModel.ArchivedBooking]
	settings    *repoMocks.MockStore[settingsModel.Settings]
	cache       *cacheMocks.MockRedisCache
	svc         service.Checkout
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := fixture{
		bookings:    repoMocks.NewMockStore[bookingModel.Booking](ctrl),
		guests:      repoMocks.NewMockStore[guestModel.Guest](ctrl),
		bookedRooms: repoMocks.NewMockStore[occModel.BookedRoom](ctrl),
		bookedHalls: repoMocks.NewMockStore[occModel.BookedHall](ctrl),
		rooms:       repoMocks.NewMockStore[resModel.Room](ctrl),
		halls:       repoMocks.NewMockStore[resModel.Hall](ctrl),
		payments:    repoMocks.NewMockStore[paymentModel.Payment](ctrl),
		archives:    repoMocks.NewMockStore[archiveModel.ArchivedBooking](ctrl),
		settings:    repoMocks.NewMockStore[settingsModel.Settings](ctrl),
		cache:       cacheMocks.NewMockRedisCache(ctrl),
	}

	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.App.Hotel.Name = "Harbour Inn"
	cfg.App.Hotel.CurrencySymbol = "$"

	otl := mocks.NewOtel()
	occupancy := occRepo.NewRegistry(f.bookedRooms, f.bookedHalls)
	resources := resRepo.NewRegistry(f.rooms, f.halls)
	payments := paymentService.New(f.payments, cfg, f.cache, otl)
	archive := archiveService.New(f.archives, repoMocks.NewMockStore[archiveModel.Entry](ctrl), occupancy, cfg, f.cache, otl)
	settings := settingsService.New(f.settings, cfg, f.cache, otl, s3Mocks.NewMockS3(ctrl))

	f.svc = service.New(
		pgMocks.NewTransactor(), f.bookings, f.guests, occupancy, resources, payments, archive, settings, kafka.New(cfg, otl), cfg, f.cache, otl,
	)

	return f
}

func operatorContext() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserEmail, "frontdesk@hotel.test")
}

func confirmedBooking() bookingModel.Booking {
	return bookingModel.Booking{
		ID:            10,
		GuestID:       3,
		CheckIn:       checkIn,
		CheckOut:      checkOut,
		BookingType:   resModel.KindRoom,
		Adults:        2,
		TotalAmount:   decimal.NewFromInt(200),
		PaidAmount:    decimal.NewFromInt(50),
		PaymentStatus: bookingModel.PaymentPending,
		BookingStatus: bookingModel.StatusConfirmed,
	}
}

func checkedInRoom() occModel.BookedRoom {
	return occModel.BookedRoom{ID: 4, BookingID: 10, RoomID: 5, CheckIn: checkIn, CheckOut: checkOut, Status: engine.StatusCheckedIn}
}

func checkoutRequest(extra int64) dto.CheckoutRequest {
	return dto.CheckoutRequest{
		Kind:          resModel.KindRoom,
		OccupancyID:   4,
		ExtraCharges:  decimal.NewFromInt(extra),
		PaymentMethod: "card",
	}
}

// expectValid primes a booking and occupancy that pass validation.
func (f fixture) expectValid(booking bookingModel.Booking) {
	f.bookings.EXPECT().LockTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(booking, nil)
	f.archives.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
	f.bookedRooms.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(checkedInRoom(), nil)
}

func TestCheckoutService_Checkout(t *testing.T) {
	t.Run("settles the balance and archives the booking", func(t *testing.T) {
		f := newFixture(t)
		f.expectValid(confirmedBooking())

		var updates []map[string]any

		f.bookings.EXPECT().
			UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) error {
				updates = append(updates, fields)

				return nil
			}).Times(3)
		f.payments.EXPECT().
			InsertReturningIDTx(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, p paymentModel.Payment) (int64, error) {
				assert.True(t, decimal.NewFromInt(170).Equal(p.Amount))
				assert.Equal(t, "card", p.PaymentMethod)
				assert.False(t, p.IsSecurityDeposit)
				assert.Equal(t, bookingModel.PaymentSuccess, p.PaymentStatus)

				return 31, nil
			})
		f.bookedRooms.EXPECT().
			UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, engine.StatusCheckedOut, fields[occModel.FieldStatus])

				return nil
			})
		f.archives.EXPECT().
			InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, a archiveModel.ArchivedBooking) error {
				assert.Equal(t, int64(10), a.BookingID)
				assert.False(t, a.CompletedAt.IsZero())

				return nil
			})

		res, err := f.svc.Checkout(operatorContext(), 10, checkoutRequest(20))

		time.Sleep(10 * time.Millisecond)

		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(220).Equal(res.NewTotal))
		assert.True(t, decimal.NewFromInt(220).Equal(res.GrandTotal))
		assert.True(t, decimal.NewFromInt(170).Equal(res.AmountCharged))
		assert.True(t, decimal.NewFromInt(220).Equal(res.NewPaid))
		assert.Equal(t, int64(31), res.PaymentID)
		assert.Equal(t, bookingModel.PaymentSuccess, res.PaymentStatus)

		require.Len(t, updates, 3)
		assert.True(t, decimal.NewFromInt(220).Equal(updates[0][bookingModel.FieldTotalAmount].(decimal.Decimal)))
		assert.True(t, decimal.NewFromInt(20).Equal(updates[0][bookingModel.FieldExtraCharges].(decimal.Decimal)))
		assert.True(t, decimal.NewFromInt(220).Equal(updates[1][bookingModel.FieldPaidAmount].(decimal.Decimal)))
		assert.Equal(t, bookingModel.PaymentSuccess, updates[1][bookingModel.FieldPaymentStatus])
		assert.Equal(t, bookingModel.StatusCompleted, updates[2][bookingModel.FieldBookingStatus])

		require.NotEmpty(t, res.Trail)
		assert.Equal(t, model.StateIdle, res.Trail[0].From)
		assert.Equal(t, model.StateValidating, res.Trail[0].To)
		assert.Equal(t, model.StateDone, res.Trail[len(res.Trail)-1].To)
	})

	t.Run("every live room of the booking is checked out", func(t *testing.T) {
		f := newFixture(t)

		booking := confirmedBooking()
		booking.PaidAmount = decimal.NewFromInt(200)
		f.expectValid(booking)

		f.bookings.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(2)
		f.bookedRooms.EXPECT().
			UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, filter gDto.FilterGroup) error {
				assert.Equal(t, engine.StatusCheckedOut, fields[occModel.FieldStatus])

				where, args := filter.GetWhereClause()
				assert.Equal(t, "(booked_rooms.booking_id = :booking_id AND booked_rooms.status IN (:status_0, :status_1))", where)
				assert.Equal(t, int64(10), args["booking_id"])
				assert.Equal(t, engine.StatusBooked, args["status_0"])
				assert.Equal(t, engine.StatusCheckedIn, args["status_1"])

				return nil
			})
		f.archives.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		_, err := f.svc.Checkout(operatorContext(), 10, checkoutRequest(0))

		time.Sleep(10 * time.Millisecond)

		require.NoError(t, err)
	})

	t.Run("fully paid booking records no payment", func(t *testing.T) {
		f := newFixture(t)

		booking := confirmedBooking()
		booking.PaidAmount = decimal.NewFromInt(200)
		f.expectValid(booking)

		f.bookings.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(2)
		f.bookedRooms.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.archives.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		res, err := f.svc.Checkout(operatorContext(), 10, checkoutRequest(0))

		time.Sleep(10 * time.Millisecond)

		require.NoError(t, err)
		assert.True(t, res.AmountCharged.IsZero())
		assert.Zero(t, res.PaymentID)
		assert.Equal(t, bookingModel.PaymentSuccess, res.PaymentStatus)
	})

	t.Run("a completed booking cannot be checked out twice", func(t *testing.T) {
		f := newFixture(t)

		booking := confirmedBooking()
		booking.BookingStatus = bookingModel.StatusCompleted
		f.bookings.EXPECT().LockTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(booking, nil)

		_, err := f.svc.Checkout(operatorContext(), 10, checkoutRequest(0))

		require.Error(t, err)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))

		var stepErr *model.StepError
		require.ErrorAs(t, err, &stepErr)
		assert.Equal(t, model.StepValidate, stepErr.Step)
	})

	t.Run("occupancy of another booking is rejected", func(t *testing.T) {
		f := newFixture(t)

		room := checkedInRoom()
		room.BookingID = 99

		f.bookings.EXPECT().LockTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(confirmedBooking(), nil)
		f.archives.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		f.bookedRooms.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(room, nil)

		_, err := f.svc.Checkout(operatorContext(), 10, checkoutRequest(0))

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("already archived booking is a conflict", func(t *testing.T) {
		f := newFixture(t)

		f.bookings.EXPECT().LockTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(confirmedBooking(), nil)
		f.archives.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)

		_, err := f.svc.Checkout(operatorContext(), 10, checkoutRequest(0))

		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("missing booking", func(t *testing.T) {
		f := newFixture(t)

		f.bookings.EXPECT().LockTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(bookingModel.Booking{}, nil)

		_, err := f.svc.Checkout(operatorContext(), 10, checkoutRequest(0))

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("failure while archiving names the step", func(t *testing.T) {
		f := newFixture(t)
		f.expectValid(confirmedBooking())

		f.bookings.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(2)
		f.payments.EXPECT().InsertReturningIDTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(31), nil)
		f.bookedRooms.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.archives.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("disk full"))

		res, err := f.svc.Checkout(operatorContext(), 10, checkoutRequest(0))

		require.Error(t, err)
		assert.Zero(t, res.BookingID)

		var stepErr *model.StepError
		require.ErrorAs(t, err, &stepErr)
		assert.Equal(t, model.StepArchive, stepErr.Step)
		assert.Contains(t, err.Error(), "archive")
	})

	t.Run("archive unique violation is a conflict", func(t *testing.T) {
		f := newFixture(t)
		f.expectValid(confirmedBooking())

		f.bookings.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(2)
		f.payments.EXPECT().InsertReturningIDTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(31), nil)
		f.bookedRooms.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.archives.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(&pq.Error{Code: constant.PqErrorCodeUniqueViolation})

		_, err := f.svc.Checkout(operatorContext(), 10, checkoutRequest(0))

		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("payment failure stops before the occupancy changes", func(t *testing.T) {
		f := newFixture(t)
		f.expectValid(confirmedBooking())

		f.payments.EXPECT().InsertReturningIDTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), errors.New("timeout"))

		_, err := f.svc.Checkout(operatorContext(), 10, checkoutRequest(0))

		var stepErr *model.StepError
		require.ErrorAs(t, err, &stepErr)
		assert.Equal(t, model.StepRecordPayment, stepErr.Step)
	})

	t.Run("unknown kind", func(t *testing.T) {
		f := newFixture(t)

		req := checkoutRequest(0)
		req.Kind = resModel.Kind("suite")

		_, err := f.svc.Checkout(operatorContext(), 10, req)

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})
}

func TestCheckoutService_Invoice(t *testing.T) {
	t.Run("renders guest, stays and payments", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).AnyTimes()
		booking := confirmedBooking()
		booking.TotalAmount = decimal.NewFromInt(220)
		booking.ExtraCharges = decimal.NewFromInt(20)

		f.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)
		f.guests.EXPECT().Get(gomock.Any(), gomock.Any()).Return(guestModel.Guest{ID: 3, FullName: "Ayesha Khan", Phone: "+100200"}, nil)
		f.settings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(settingsModel.Settings{}, nil)
		f.payments.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]paymentModel.Payment{
			{ID: 1, BookingID: 10, Amount: decimal.NewFromInt(50), PaymentMethod: "cash", PaymentStatus: bookingModel.PaymentSuccess, IsSecurityDeposit: true},
		}, nil)
		f.bookedRooms.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]occModel.BookedRoom{checkedInRoom()}, nil)
		f.bookedHalls.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
		f.rooms.EXPECT().Get(gomock.Any(), gomock.Any()).Return(resModel.Room{ID: 5, RoomNumber: "101"}, nil)

		html, err := f.svc.Invoice(operatorContext(), 10)

		time.Sleep(10 * time.Millisecond)

		require.NoError(t, err)
		assert.Contains(t, html, "Harbour Inn")
		assert.Contains(t, html, "INV-000010")
		assert.Contains(t, html, "Ayesha Khan")
		assert.Contains(t, html, "room 101")
		assert.NotContains(t, html, "room #5")
		assert.Contains(t, html, "<td>Total</td><td class=\"amount\">$200.00</td>")
		assert.Contains(t, html, "<td>Extra charges</td><td class=\"amount\">$20.00</td>")
		assert.Contains(t, html, "<strong>$220.00</strong>")
		assert.Contains(t, html, "170.00")
		assert.Contains(t, html, "cash")
	})

	t.Run("a deleted room keeps its id", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).AnyTimes()
		f.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(confirmedBooking(), nil)
		f.guests.EXPECT().Get(gomock.Any(), gomock.Any()).Return(guestModel.Guest{ID: 3, FullName: "Ayesha Khan"}, nil)
		f.settings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(settingsModel.Settings{}, nil)
		f.payments.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
		f.bookedRooms.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]occModel.BookedRoom{checkedInRoom()}, nil)
		f.bookedHalls.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
		f.rooms.EXPECT().Get(gomock.Any(), gomock.Any()).Return(resModel.Room{}, nil)

		html, err := f.svc.Invoice(operatorContext(), 10)

		time.Sleep(10 * time.Millisecond)

		require.NoError(t, err)
		assert.Contains(t, html, "room #5")
	})

	t.Run("missing booking", func(t *testing.T) {
		f := newFixture(t)

		f.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(bookingModel.Booking{}, nil)

		_, err := f.svc.Invoice(operatorContext(), 10)

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}
