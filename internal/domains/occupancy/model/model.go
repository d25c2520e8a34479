package model

import (
	"errors"
	"hotelier/internal/domains/occupancy/engine"
	resModel "hotelier/internal/domains/resource/model"
	"hotelier/shared/model"
	"time"
)

// ErrResourceConflict is matched with errors.Is when an assignment would double-book a resource.
var ErrResourceConflict = errors.New("resource is already occupied for the requested stay")

type BookingBasis string

const (
	BasisHourly  BookingBasis = "hourly"
	BasisDaily   BookingBasis = "daily"
	BasisWeekly  BookingBasis = "weekly"
	BasisMonthly BookingBasis = "monthly"
)

func (b BookingBasis) Valid() bool {
	switch b {
	case BasisHourly, BasisDaily, BasisWeekly, BasisMonthly:
		return true
	}

	return false
}

const (
	BookedRoomTableName  = "booked_rooms"
	BookedRoomEntityName = "booked_room"
	BookedHallTableName  = "booked_halls"
	BookedHallEntityName = "booked_hall"

	FieldID           = "id"
	FieldBookingID    = "booking_id"
	FieldRoomID       = "room_id"
	FieldHallID       = "hall_id"
	FieldCheckIn      = "check_in"
	FieldCheckOut     = "check_out"
	FieldStatus       = "status"
	FieldBookingBasis = "booking_basis"
)

type BookedRoom struct {
	ID        int64         `db:"id"         readonly:"true"`
	BookingID int64         `db:"booking_id"`
	RoomID    int64         `db:"room_id"`
	CheckIn   time.Time     `db:"check_in"`
	CheckOut  time.Time     `db:"check_out"`
	Status    engine.Status `db:"status"`
	model.Metadata
}

type BookedHall struct {
	ID           int64         `db:"id"            readonly:"true"`
	BookingID    int64         `db:"booking_id"`
	HallID       int64         `db:"hall_id"`
	CheckIn      time.Time     `db:"check_in"`
	CheckOut     time.Time     `db:"check_out"`
	Status       engine.Status `db:"status"`
	BookingBasis BookingBasis  `db:"booking_basis"`
	model.Metadata
}

// Record is an occupancy row of either kind.
type Record struct {
	engine.Occupancy
	Kind         resModel.Kind `json:"kind"`
	BookingBasis BookingBasis  `json:"booking_basis,omitempty"`
}

func (b BookedRoom) ToRecord() Record {
	return Record{
		Occupancy: engine.Occupancy{
			ID:         b.ID,
			BookingID:  b.BookingID,
			ResourceID: b.RoomID,
			Interval:   engine.Interval{Start: b.CheckIn, End: b.CheckOut},
			Status:     b.Status,
		},
		Kind: resModel.KindRoom,
	}
}

func (b BookedHall) ToRecord() Record {
	return Record{
		Occupancy: engine.Occupancy{
			ID:         b.ID,
			BookingID:  b.BookingID,
			ResourceID: b.HallID,
			Interval:   engine.Interval{Start: b.CheckIn, End: b.CheckOut},
			Status:     b.Status,
		},
		Kind:         resModel.KindHall,
		BookingBasis: b.BookingBasis,
	}
}

func NewBookedRoom(rec Record, meta model.Metadata) BookedRoom {
	return BookedRoom{
		BookingID: rec.BookingID,
		RoomID:    rec.ResourceID,
		CheckIn:   rec.Interval.Start,
		CheckOut:  rec.Interval.End,
		Status:    rec.Status,
		Metadata:  meta,
	}
}

func NewBookedHall(rec Record, meta model.Metadata) BookedHall {
	return BookedHall{
		BookingID:    rec.BookingID,
		HallID:       rec.ResourceID,
		CheckIn:      rec.Interval.Start,
		CheckOut:     rec.Interval.End,
		Status:       rec.Status,
		BookingBasis: rec.BookingBasis,
		Metadata:     meta,
	}
}

// Occupancies flattens the engine view out of recs.
func Occupancies(recs []Record) []engine.Occupancy {
	res := make([]engine.Occupancy, len(recs))
	for i, rec := range recs {
		res[i] = rec.Occupancy
	}

	return res
}

type Table struct {
	Name          string
	Entity        string
	ResourceField string
}

func TableFor(kind resModel.Kind) Table {
	if kind == resModel.KindHall {
		return Table{Name: BookedHallTableName, Entity: BookedHallEntityName, ResourceField: FieldHallID}
	}

	return Table{Name: BookedRoomTableName, Entity: BookedRoomEntityName, ResourceField: FieldRoomID}
}
