package dto

import (
	bookingModel "hotelier/internal/domains/booking/model"
	"hotelier/internal/domains/payment/model"
	"hotelier/shared/constant"
	"hotelier/shared/timezone"

	"github.com/shopspring/decimal"
)

type PaymentResponse struct {
	ID                int64                      `json:"id"`
	BookingID         int64                      `json:"booking_id"`
	GuestID           *int64                     `json:"guest_id"`
	Amount            decimal.Decimal            `json:"amount"`
	PaymentMethod     string                     `json:"payment_method"`
	PaymentStatus     bookingModel.PaymentStatus `json:"payment_status"`
	IsSecurityDeposit bool                       `json:"is_security_deposit"`
	CreatedAt         string                     `json:"created_at"`
	CreatedBy         string                     `json:"created_by"`
}

func (r *PaymentResponse) FromModel(payment model.Payment) {
	r.ID = payment.ID
	r.BookingID = payment.BookingID
	r.GuestID = payment.GuestID
	r.Amount = payment.Amount
	r.PaymentMethod = payment.PaymentMethod
	r.PaymentStatus = payment.PaymentStatus
	r.IsSecurityDeposit = payment.IsSecurityDeposit
	r.CreatedAt = timezone.Format(payment.CreatedAt, constant.DateFormat)
	r.CreatedBy = payment.CreatedBy
}

type GetPaymentsResponse struct {
	Payments  []PaymentResponse `json:"payments"`
	TotalPaid decimal.Decimal   `json:"total_paid"`
}

// FromModels lists payments and sums the successful ones.
func (r *GetPaymentsResponse) FromModels(models []model.Payment) {
	r.TotalPaid = decimal.Zero
	r.Payments = make([]PaymentResponse, len(models))

	for i, mod := range models {
		r.Payments[i].FromModel(mod)

		if mod.PaymentStatus == bookingModel.PaymentSuccess {
			r.TotalPaid = r.TotalPaid.Add(mod.Amount)
		}
	}
}
