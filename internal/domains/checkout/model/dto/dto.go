package dto

import (
	bookingModel "hotelier/internal/domains/booking/model"
	"hotelier/internal/domains/checkout/model"
	resModel "hotelier/internal/domains/resource/model"
	"hotelier/shared/constant"
	"hotelier/shared/timezone"

	"github.com/shopspring/decimal"
)

type CheckoutRequest struct {
	Kind          resModel.Kind   `json:"kind"           validate:"required,oneof=room hall"`
	OccupancyID   int64           `json:"occupancy_id"   validate:"required,gt=0"`
	ExtraCharges  decimal.Decimal `json:"extra_charges"  validate:"gte=0"`
	PaymentMethod string          `json:"payment_method" validate:"required,max=32"`
}

type TransitionResponse struct {
	From model.State `json:"from"`
	To   model.State `json:"to"`
	Step model.Step  `json:"step,omitempty"`
	At   string      `json:"at"`
}

type SettlementResponse struct {
	BookingID     int64                      `json:"booking_id"`
	PreviousTotal decimal.Decimal            `json:"previous_total"`
	ExtraCharges  decimal.Decimal            `json:"extra_charges"`
	NewTotal      decimal.Decimal            `json:"new_total"`
	PreviousPaid  decimal.Decimal            `json:"previous_paid"`
	AmountCharged decimal.Decimal            `json:"amount_charged"`
	NewPaid       decimal.Decimal            `json:"new_paid"`
	GrandTotal    decimal.Decimal            `json:"grand_total"`
	PaymentID     int64                      `json:"payment_id"`
	PaymentStatus bookingModel.PaymentStatus `json:"payment_status"`
	CompletedAt   string                     `json:"completed_at"`
	Trail         []TransitionResponse       `json:"trail"`
}

func (r *SettlementResponse) FromModel(s model.Settlement) {
	r.BookingID = s.BookingID
	r.PreviousTotal = s.PreviousTotal
	r.ExtraCharges = s.ExtraCharges
	r.NewTotal = s.NewTotal
	r.PreviousPaid = s.PreviousPaid
	r.AmountCharged = s.AmountCharged
	r.NewPaid = s.NewPaid
	r.GrandTotal = s.GrandTotal
	r.PaymentID = s.PaymentID
	r.PaymentStatus = s.PaymentStatus
	r.CompletedAt = timezone.Format(s.CompletedAt, constant.DateFormat)

	r.Trail = make([]TransitionResponse, len(s.Trail))
	for i, t := range s.Trail {
		r.Trail[i] = TransitionResponse{From: t.From, To: t.To, Step: t.Step, At: timezone.Format(t.At, constant.DateFormat)}
	}
}
