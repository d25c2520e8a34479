package model

import "hotelier/shared/model"

const (
	TableName  = "guests"
	EntityName = "guest"

	FieldID       = "id"
	FieldFullName = "full_name"
	FieldPhone    = "phone"
	FieldCNIC     = "cnic"
	FieldIsVIP    = "is_vip"
)

type Guest struct {
	ID       int64  `db:"id"        readonly:"true"`
	FullName string `db:"full_name"`
	Phone    string `db:"phone"`
	CNIC     string `db:"cnic"`
	IsVIP    bool   `db:"is_vip"`
	model.Metadata
}
