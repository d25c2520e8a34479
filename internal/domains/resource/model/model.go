package model

import (
	"fmt"
	"hotelier/shared/model"
)

type Kind string

const (
	KindRoom Kind = "room"
	KindHall Kind = "hall"
)

func (k Kind) Valid() bool {
	return k == KindRoom || k == KindHall
}

// ParseKind accepts the singular and plural path forms ("room", "rooms").
func ParseKind(value string) (Kind, error) {
	switch value {
	case "room", "rooms":
		return KindRoom, nil
	case "hall", "halls":
		return KindHall, nil
	}

	return "", fmt.Errorf("unknown resource kind %q", value)
}

type HousekeepingStatus string

const (
	HousekeepingClean        HousekeepingStatus = "clean"
	HousekeepingDirty        HousekeepingStatus = "dirty"
	HousekeepingInspected    HousekeepingStatus = "inspected"
	HousekeepingOutOfService HousekeepingStatus = "out_of_service"
)

const (
	RoomTableName  = "rooms"
	RoomEntityName = "room"
	HallTableName  = "halls"
	HallEntityName = "hall"

	FieldID                 = "id"
	FieldFloorID            = "floor_id"
	FieldRoomTypeID         = "room_type_id"
	FieldHallTypeID         = "hall_type_id"
	FieldRoomNumber         = "room_number"
	FieldHallNumber         = "hall_number"
	FieldHousekeepingStatus = "housekeeping_status"
	FieldAssignedTo         = "assigned_to"
	FieldIsActive           = "is_active"
	FieldImage              = "image"
)

// Resource is a bookable unit. Room and Hall are its only implementations.
type Resource interface {
	ResourceKind() Kind
	ResourceID() int64
	Label() string
	Floor() int64
	TypeID() int64
	Housekeeping() HousekeepingStatus
	Assignee() *int64
	Active() bool
	ImageURL() *string
	Meta() model.Metadata
}

type Room struct {
	ID                 int64              `db:"id"                  readonly:"true"`
	FloorID            int64              `db:"floor_id"`
	RoomTypeID         int64              `db:"room_type_id"`
	RoomNumber         string             `db:"room_number"`
	HousekeepingStatus HousekeepingStatus `db:"housekeeping_status"`
	AssignedTo         *int64             `db:"assigned_to"`
	IsActive           bool               `db:"is_active"`
	Image              *string            `db:"image"`
	model.Metadata
}

func (r Room) ResourceKind() Kind { return KindRoom }
func (r Room) ResourceID() int64 { return r.ID }
func (r Room) Label() string { return r.RoomNumber }
func (r Room) Floor() int64 { return r.FloorID }
func (r Room) TypeID() int64 { return r.RoomTypeID }
func (r Room) Housekeeping() HousekeepingStatus { return r.HousekeepingStatus }
func (r Room) Assignee() *int64 { return r.AssignedTo }
func (r Room) Active() bool { return r.IsActive }
func (r Room) ImageURL() *string { return r.Image }
func (r Room) Meta() model.Metadata { return r.Metadata }

type Hall struct {
	ID                 int64              `db:"id"                  readonly:"true"`
	FloorID            int64              `db:"floor_id"`
	HallTypeID         int64              `db:"hall_type_id"`
	HallNumber         string             `db:"hall_number"`
	HousekeepingStatus HousekeepingStatus `db:"housekeeping_status"`
	AssignedTo         *int64             `db:"assigned_to"`
	Image              *string            `db:"image"`
	model.Metadata
}

func (h Hall) ResourceKind() Kind { return KindHall }
func (h Hall) ResourceID() int64 { return h.ID }
func (h Hall) Label() string { return h.HallNumber }
func (h Hall) Floor() int64 { return h.FloorID }
func (h Hall) TypeID() int64 { return h.HallTypeID }
func (h Hall) Housekeeping() HousekeepingStatus { return h.HousekeepingStatus }
func (h Hall) Assignee() *int64 { return h.AssignedTo }
func (h Hall) Active() bool { return true }
func (h Hall) ImageURL() *string { return h.Image }
func (h Hall) Meta() model.Metadata { return h.Metadata }

// Table describes the per-kind column names.
type Table struct {
	Name        string
	Entity      string
	TypeField   string
	NumberField string
	HasIsActive bool
	ImageFolder string
}

func TableFor(kind Kind) Table {
	if kind == KindHall {
		return Table{Name: HallTableName, Entity: HallEntityName, TypeField: FieldHallTypeID, NumberField: FieldHallNumber, ImageFolder: "halls"}
	}

	return Table{Name: RoomTableName, Entity: RoomEntityName, TypeField: FieldRoomTypeID, NumberField: FieldRoomNumber, HasIsActive: true, ImageFolder: "rooms"}
}
