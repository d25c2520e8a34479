package model

import (
	"fmt"
	bookingModel "hotelier/internal/domains/booking/model"
	"time"

	"github.com/shopspring/decimal"
)

type State string

const (
	StateIdle       State = "idle"
	StateValidating State = "validating"
	StateCharging   State = "charging"
	StatePaying     State = "paying"
	StateArchiving  State = "archiving"
	StateDone       State = "done"
	StateFailed     State = "failed"
)

type Step string

const (
	StepValidate                Step = "validate"
	StepApplyExtraCharges       Step = "apply_extra_charges"
	StepRecordPayment           Step = "record_payment"
	StepUpdatePaidAmount        Step = "update_paid_amount"
	StepMarkOccupancyCheckedOut Step = "mark_occupancy_checked_out"
	StepMarkBookingCompleted    Step = "mark_booking_completed"
	StepArchive                 Step = "archive"
)

// StateOf is the workflow state a step runs in.
func StateOf(step Step) State {
	switch step {
	case StepValidate:
		return StateValidating
	case StepApplyExtraCharges:
		return StateCharging
	case StepRecordPayment, StepUpdatePaidAmount:
		return StatePaying
	case StepMarkOccupancyCheckedOut, StepMarkBookingCompleted, StepArchive:
		return StateArchiving
	}

	return StateFailed
}

type Transition struct {
	From State     `json:"from"`
	To   State     `json:"to"`
	Step Step      `json:"step,omitempty"`
	At   time.Time `json:"at"`
}

// StepError names the step a checkout failed at. Nothing before it was committed.
type StepError struct {
	Step Step
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("checkout failed at %s: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

type Settlement struct {
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
	CompletedAt   time.Time                  `json:"completed_at"`
	Trail         []Transition               `json:"trail"`
}
