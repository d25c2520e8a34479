package model

import (
	"hotelier/internal/domains/occupancy/engine"
	resModel "hotelier/internal/domains/resource/model"
	"hotelier/shared/model"
	"time"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID            = "id"
	FieldGuestID       = "guest_id"
	FieldCheckIn       = "check_in"
	FieldCheckOut      = "check_out"
	FieldBookingType   = "booking_type"
	FieldAdults        = "adults"
	FieldKids          = "kids"
	FieldTotalAmount   = "total_amount"
	FieldExtraCharges  = "extra_charges"
	FieldPaidAmount    = "paid_amount"
	FieldPaymentStatus = "payment_status"
	FieldBookingStatus = "booking_status"
)

// Cache prefixes shared with the domains that mutate bookings.
const (
	CacheGetBooking    = "booking:get"
	CacheGetAllBooking = "booking:gets"
	CacheCountBooking  = "booking:count"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentSuccess PaymentStatus = "success"
	PaymentFailed  PaymentStatus = "failed"
)

type Booking struct {
	ID            int64           `db:"id"             readonly:"true"`
	GuestID       int64           `db:"guest_id"`
	CheckIn       time.Time       `db:"check_in"`
	CheckOut      time.Time       `db:"check_out"`
	BookingType   resModel.Kind   `db:"booking_type"`
	Adults        int             `db:"adults"`
	Kids          int             `db:"kids"`
	TotalAmount   decimal.Decimal `db:"total_amount"`
	ExtraCharges  decimal.Decimal `db:"extra_charges"`
	PaidAmount    decimal.Decimal `db:"paid_amount"`
	PaymentStatus PaymentStatus   `db:"payment_status"`
	BookingStatus Status          `db:"booking_status"`
	model.Metadata
}

func (b Booking) Stay() engine.Interval {
	return engine.Interval{Start: b.CheckIn, End: b.CheckOut}
}

// Pending is the outstanding balance. It is negative when the guest has overpaid.
func (b Booking) Pending() decimal.Decimal {
	return b.TotalAmount.Sub(b.PaidAmount)
}

// Closed reports whether the booking can no longer change occupancy.
func (b Booking) Closed() bool {
	return b.BookingStatus == StatusCompleted || b.BookingStatus == StatusCancelled
}

// SettledStatus is success once paid covers total.
func SettledStatus(total, paid decimal.Decimal) PaymentStatus {
	if paid.GreaterThanOrEqual(total) {
		return PaymentSuccess
	}

	return PaymentPending
}
