package model

import (
	"hotelier/shared/model"
	"slices"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

const (
	TableName  = "coupons"
	EntityName = "coupon"

	FieldID               = "id"
	FieldCode             = "code"
	FieldType             = "type"
	FieldValue            = "value"
	FieldCouponPeriod     = "coupon_period"
	FieldIncludeRoomTypes = "include_room_types"
	FieldExcludeRoomTypes = "exclude_room_types"
	FieldPaidServices     = "paid_services"
)

type Type string

const (
	TypePercentage Type = "percentage"
	TypeFlat       Type = "flat"
)

var maxPercentage = decimal.NewFromInt(100)

type Coupon struct {
	ID               int64           `db:"id"                 readonly:"true"`
	Code             string          `db:"code"`
	Type             Type            `db:"type"`
	Value            decimal.Decimal `db:"value"`
	CouponPeriod     string          `db:"coupon_period"`
	IncludeRoomTypes pq.Int64Array   `db:"include_room_types"`
	ExcludeRoomTypes pq.Int64Array   `db:"exclude_room_types"`
	PaidServices     pq.Int64Array   `db:"paid_services"`
	model.Metadata
}

// IsValidOn reports whether date falls inside the coupon period. An unparsable period is never valid.
func (c Coupon) IsValidOn(date time.Time) bool {
	period, err := ParsePeriod(c.CouponPeriod)
	if err != nil {
		return false
	}

	return period.Contains(date)
}

// ValidValue checks value > 0 and, for percentage coupons, value <= 100.
func ValidValue(t Type, value decimal.Decimal) bool {
	if !value.IsPositive() {
		return false
	}

	return t != TypePercentage || value.LessThanOrEqual(maxPercentage)
}

// Disjoint reports whether no room type is both included and excluded.
func Disjoint(include, exclude []int64) bool {
	for _, id := range include {
		if slices.Contains(exclude, id) {
			return false
		}
	}

	return true
}
