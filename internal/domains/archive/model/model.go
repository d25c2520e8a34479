package model

import (
	bookingModel "hotelier/internal/domains/booking/model"
	resModel "hotelier/internal/domains/resource/model"
	"time"

	"github.com/shopspring/decimal"
)

const (
	TableName       = "archived_bookings"
	EntityName      = "archived_booking"
	EntryEntityName = "archived_booking_entry"

	FieldID          = "id"
	FieldBookingID   = "booking_id"
	FieldCompletedAt = "completed_at"
	FieldGuestName   = "full_name"

	GuestTableName = "guests"
)

// ArchivedBooking marks a booking whose checkout completed. booking_id is unique.
type ArchivedBooking struct {
	ID          int64     `db:"id"           readonly:"true"`
	BookingID   int64     `db:"booking_id"`
	CompletedAt time.Time `db:"completed_at"`
}

// Entry is an archived booking joined with its booking and guest.
type Entry struct {
	ID            int64                      `db:"id"`
	BookingID     int64                      `db:"booking_id"`
	CompletedAt   time.Time                  `db:"completed_at"`
	GuestID       int64                      `db:"guest_id"       table:"bookings"`
	GuestName     string                     `db:"guest_name"     table:"guests"   column:"full_name"`
	BookingType   resModel.Kind              `db:"booking_type"   table:"bookings"`
	CheckIn       time.Time                  `db:"check_in"       table:"bookings"`
	CheckOut      time.Time                  `db:"check_out"      table:"bookings"`
	TotalAmount   decimal.Decimal            `db:"total_amount"   table:"bookings"`
	PaidAmount    decimal.Decimal            `db:"paid_amount"    table:"bookings"`
	PaymentStatus bookingModel.PaymentStatus `db:"payment_status" table:"bookings"`
}

func (Entry) GetJoinQuery() string {
	return "JOIN bookings ON bookings.id = archived_bookings.booking_id JOIN guests ON guests.id = bookings.guest_id"
}
