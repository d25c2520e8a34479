package model

import (
	"hotelier/shared/model"
	"time"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "price_entries"
	EntityName = "price_entry"

	FieldID           = "id"
	FieldRoomTypeID   = "room_type_id"
	FieldRegularPrice = "regular_price"
	FieldSpecialPrice = "special_price"
	FieldStartDate    = "start_date"
	FieldEndDate      = "end_date"
)

// PriceEntry overrides the price of a room type between two dates, both inclusive.
// Overlapping entries are allowed and are never resolved against each other.
type PriceEntry struct {
	ID           int64               `db:"id"            readonly:"true"`
	RoomTypeID   int64               `db:"room_type_id"`
	RegularPrice decimal.Decimal     `db:"regular_price"`
	SpecialPrice decimal.NullDecimal `db:"special_price"`
	StartDate    time.Time           `db:"start_date"`
	EndDate      time.Time           `db:"end_date"`
	model.Metadata
}

func (p PriceEntry) Covers(date time.Time) bool {
	return !date.Before(p.StartDate) && !date.After(p.EndDate)
}
