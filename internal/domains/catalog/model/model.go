// Package model holds the reference lists an operator maintains around the bookable inventory:
// floors, room and hall types, staff structure, amenities and sellable extras. Every list has the
// same list/add/edit/view/delete shape and is served by one generic service.
package model

import (
	gModel "hotelier/shared/model"
	"reflect"

	"github.com/shopspring/decimal"
)

const (
	FieldID       = "id"
	FieldName     = "name"
	FieldFullName = "full_name"
)

// Kind describes one catalog list.
type Kind struct {
	Name   string
	Table  string
	Path   string
	Search string
}

var (
	KindFloor           = Kind{Name: "floor", Table: "floors", Path: "floors", Search: FieldName}
	KindRoomType        = Kind{Name: "room type", Table: "room_types", Path: "room-types", Search: FieldName}
	KindHallType        = Kind{Name: "hall type", Table: "hall_types", Path: "hall-types", Search: FieldName}
	KindAmenity         = Kind{Name: "amenity", Table: "amenities", Path: "amenities", Search: FieldName}
	KindDepartment      = Kind{Name: "department", Table: "departments", Path: "departments", Search: FieldName}
	KindDesignation     = Kind{Name: "designation", Table: "designations", Path: "designations", Search: FieldName}
	KindEmployee        = Kind{Name: "employee", Table: "employees", Path: "employees", Search: FieldFullName}
	KindExpenseCategory = Kind{Name: "expense category", Table: "expense_categories", Path: "expense-categories", Search: FieldName}
	KindPaidService     = Kind{Name: "paid service", Table: "paid_services", Path: "paid-services", Search: FieldName}
	KindMenuItem        = Kind{Name: "menu item", Table: "menu_items", Path: "menu-items", Search: FieldName}
)

// Kinds lists every catalog in the order the router mounts them.
var Kinds = []Kind{
	KindFloor, KindRoomType, KindHallType, KindAmenity, KindDepartment,
	KindDesignation, KindEmployee, KindExpenseCategory, KindPaidService, KindMenuItem,
}

// Entry is implemented by every catalog row type. Prepared returns a copy ready for insert:
// id cleared and the audit block replaced.
type Entry[T any] interface {
	EntryID() int64
	Prepared(meta gModel.Metadata) T
}

// Base carries the id and audit columns shared by all catalog rows.
type Base struct {
	ID int64 `db:"id" json:"id" readonly:"true"`
	gModel.Metadata
}

func (b Base) EntryID() int64 {
	return b.ID
}

// Columns returns every editable column of entry, zero values included, so an edit replaces the
// whole row.
func Columns(entry any) map[string]any {
	value := reflect.ValueOf(entry)
	columns := make(map[string]any, value.NumField())

	for i := range value.NumField() {
		field := value.Type().Field(i)
		if field.Anonymous {
			continue
		}

		name := field.Tag.Get("db")
		if name == "" || name == "-" || field.Tag.Get("readonly") == "true" {
			continue
		}

		columns[name] = value.Field(i).Interface()
	}

	return columns
}

type Floor struct {
	Base
	Name        string `db:"name"         json:"name"         validate:"required,max=60"`
	Number      int    `db:"floor_number" json:"floor_number" validate:"gte=-10,lte=200"`
	Description string `db:"description"  json:"description"  validate:"max=255"`
}

func (f Floor) Prepared(meta gModel.Metadata) Floor {
	f.Base = Base{Metadata: meta}

	return f
}

// RoomType sets the base price and occupancy limits of the rooms that use it.
type RoomType struct {
	Base
	Name        string          `db:"name"        json:"name"        validate:"required,max=60"`
	BasePrice   decimal.Decimal `db:"base_price"  json:"base_price"  validate:"gte=0"`
	MaxAdults   int             `db:"max_adults"  json:"max_adults"  validate:"gte=1,lte=20"`
	MaxKids     int             `db:"max_kids"    json:"max_kids"    validate:"gte=0,lte=20"`
	Description string          `db:"description" json:"description" validate:"max=255"`
}

func (t RoomType) Prepared(meta gModel.Metadata) RoomType {
	t.Base = Base{Metadata: meta}

	return t
}

type HallType struct {
	Base
	Name        string          `db:"name"        json:"name"        validate:"required,max=60"`
	BasePrice   decimal.Decimal `db:"base_price"  json:"base_price"  validate:"gte=0"`
	Capacity    int             `db:"capacity"    json:"capacity"    validate:"gte=1,lte=5000"`
	Description string          `db:"description" json:"description" validate:"max=255"`
}

func (t HallType) Prepared(meta gModel.Metadata) HallType {
	t.Base = Base{Metadata: meta}

	return t
}

type Amenity struct {
	Base
	Name        string `db:"name"        json:"name"        validate:"required,max=60"`
	Description string `db:"description" json:"description" validate:"max=255"`
}

func (a Amenity) Prepared(meta gModel.Metadata) Amenity {
	a.Base = Base{Metadata: meta}

	return a
}

type Department struct {
	Base
	Name        string `db:"name"        json:"name"        validate:"required,max=60"`
	Description string `db:"description" json:"description" validate:"max=255"`
}

func (d Department) Prepared(meta gModel.Metadata) Department {
	d.Base = Base{Metadata: meta}

	return d
}

type Designation struct {
	Base
	Name         string `db:"name"          json:"name"          validate:"required,max=60"`
	DepartmentID int64  `db:"department_id" json:"department_id" validate:"required,gt=0"`
}

func (d Designation) Prepared(meta gModel.Metadata) Designation {
	d.Base = Base{Metadata: meta}

	return d
}

// Employee is staff. Rooms and halls reference employees as their housekeeper.
type Employee struct {
	Base
	FullName      string `db:"full_name"      json:"full_name"                validate:"required,max=120"`
	Phone         string `db:"phone"          json:"phone"                    validate:"max=32"`
	Email         string `db:"email"          json:"email"                    validate:"omitempty,email,max=120"`
	DepartmentID  *int64 `db:"department_id"  json:"department_id,omitempty"  validate:"omitempty,gt=0"`
	DesignationID *int64 `db:"designation_id" json:"designation_id,omitempty" validate:"omitempty,gt=0"`
	IsActive      bool   `db:"is_active"      json:"is_active"`
}

func (e Employee) Prepared(meta gModel.Metadata) Employee {
	e.Base = Base{Metadata: meta}

	return e
}

type ExpenseCategory struct {
	Base
	Name        string `db:"name"        json:"name"        validate:"required,max=60"`
	Description string `db:"description" json:"description" validate:"max=255"`
}

func (c ExpenseCategory) Prepared(meta gModel.Metadata) ExpenseCategory {
	c.Base = Base{Metadata: meta}

	return c
}

// PaidService is an extra a guest can be charged for at checkout.
type PaidService struct {
	Base
	Name        string          `db:"name"        json:"name"        validate:"required,max=60"`
	Price       decimal.Decimal `db:"price"       json:"price"       validate:"gte=0"`
	Description string          `db:"description" json:"description" validate:"max=255"`
}

func (p PaidService) Prepared(meta gModel.Metadata) PaidService {
	p.Base = Base{Metadata: meta}

	return p
}

type MenuItem struct {
	Base
	Name        string          `db:"name"         json:"name"         validate:"required,max=60"`
	Category    string          `db:"category"     json:"category"     validate:"max=60"`
	Price       decimal.Decimal `db:"price"        json:"price"        validate:"gte=0"`
	IsAvailable bool            `db:"is_available" json:"is_available"`
}

func (m MenuItem) Prepared(meta gModel.Metadata) MenuItem {
	m.Base = Base{Metadata: meta}

	return m
}
