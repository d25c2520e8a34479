package model

import (
	"hotelier/shared/model"
	"time"
)

const (
	TableName  = "seller_applications"
	EntityName = "seller_application"

	FieldID         = "id"
	FieldEmail      = "email"
	FieldStatus     = "status"
	FieldReviewNote = "review_note"
	FieldReviewedBy = "reviewed_by"
	FieldReviewedAt = "reviewed_at"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
)

// Outcome maps a review decision to the status it produces.
func (d Decision) Outcome() Status {
	if d == DecisionApprove {
		return StatusApproved
	}

	return StatusRejected
}

type SellerApplication struct {
	ID           int64      `db:"id"            readonly:"true"`
	FullName     string     `db:"full_name"`
	Email        string     `db:"email"`
	Phone        string     `db:"phone"`
	BusinessName string     `db:"business_name"`
	Message      string     `db:"message"`
	Status       Status     `db:"status"`
	ReviewNote   *string    `db:"review_note"`
	ReviewedBy   *string    `db:"reviewed_by"`
	ReviewedAt   *time.Time `db:"reviewed_at"`
	model.Metadata
}
