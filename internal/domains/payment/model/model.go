package model

import (
	bookingModel "hotelier/internal/domains/booking/model"
	"time"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "payments"
	EntityName = "payment"

	FieldID                = "id"
	FieldBookingID         = "booking_id"
	FieldIsSecurityDeposit = "is_security_deposit"
)

// Payment rows are append-only.
type Payment struct {
	ID                int64                      `db:"id"                  readonly:"true"`
	BookingID         int64                      `db:"booking_id"`
	GuestID           *int64                     `db:"guest_id"`
	Amount            decimal.Decimal            `db:"amount"`
	PaymentMethod     string                     `db:"payment_method"`
	PaymentStatus     bookingModel.PaymentStatus `db:"payment_status"`
	IsSecurityDeposit bool                       `db:"is_security_deposit"`
	CreatedAt         time.Time                  `db:"created_at"`
	CreatedBy         string                     `db:"created_by"`
}
