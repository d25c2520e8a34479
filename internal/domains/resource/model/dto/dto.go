package dto

import (
	"hotelier/internal/domains/resource/model"
	"hotelier/shared"
	gDto "hotelier/shared/dto"
	gModel "hotelier/shared/model"
	"hotelier/shared/timezone"
)

type CreateResourceRequest struct {
	FloorID    int64   `json:"floor_id"              validate:"required,gt=0"`
	TypeID     int64   `json:"type_id"               validate:"required,gt=0"`
	Number     string  `json:"number"                validate:"required,max=32"`
	IsActive   *bool   `json:"is_active,omitempty"`
	AssignedTo *int64  `json:"assigned_to,omitempty" validate:"omitempty,gt=0"`
	Image      *string `json:"image,omitempty"       validate:"omitempty,url"`
}

func (r *CreateResourceRequest) ToModel(kind model.Kind, username string) model.Resource {
	meta := gModel.NewMetadata(username, timezone.Now())

	if kind == model.KindHall {
		return model.Hall{
			FloorID:            r.FloorID,
			HallTypeID:         r.TypeID,
			HallNumber:         r.Number,
			HousekeepingStatus: model.HousekeepingClean,
			AssignedTo:         r.AssignedTo,
			Image:              r.Image,
			Metadata:           meta,
		}
	}

	isActive := true
	if r.IsActive != nil {
		isActive = *r.IsActive
	}

	return model.Room{
		FloorID:            r.FloorID,
		RoomTypeID:         r.TypeID,
		RoomNumber:         r.Number,
		HousekeepingStatus: model.HousekeepingClean,
		AssignedTo:         r.AssignedTo,
		IsActive:           isActive,
		Image:              r.Image,
		Metadata:           meta,
	}
}

type UpdateResourceRequest struct {
	FloorID  *int64  `json:"floor_id,omitempty"  validate:"omitempty,gt=0"`
	TypeID   *int64  `json:"type_id,omitempty"   validate:"omitempty,gt=0"`
	Number   *string `json:"number,omitempty"    validate:"omitempty,max=32"`
	IsActive *bool   `json:"is_active,omitempty"`
	Image    *string `json:"image,omitempty"     validate:"omitempty,url"`
}

func (r *UpdateResourceRequest) IsEmpty() bool {
	return r.FloorID == nil && r.TypeID == nil && r.Number == nil && r.IsActive == nil && r.Image == nil
}

// ToFields maps the request onto the columns of table. is_active is ignored for halls.
func (r *UpdateResourceRequest) ToFields(table model.Table, username string) map[string]any {
	fields := shared.TransformFields(struct{}{}, username)

	if r.FloorID != nil {
		fields[model.FieldFloorID] = *r.FloorID
	}

	if r.TypeID != nil {
		fields[table.TypeField] = *r.TypeID
	}

	if r.Number != nil {
		fields[table.NumberField] = *r.Number
	}

	if r.IsActive != nil && table.HasIsActive {
		fields[model.FieldIsActive] = *r.IsActive
	}

	if r.Image != nil {
		fields[model.FieldImage] = *r.Image
	}

	return fields
}

type HousekeepingRequest struct {
	Status model.HousekeepingStatus `json:"housekeeping_status" validate:"required,oneof=clean dirty inspected out_of_service"`
}

// AssignHousekeeperRequest sets or clears (employee_id null) the housekeeper of a resource.
type AssignHousekeeperRequest struct {
	EmployeeID *int64 `json:"employee_id" validate:"omitempty,gt=0"`
}

type ResourceResponse struct {
	ID                 int64                    `json:"id"`
	Kind               model.Kind               `json:"kind"`
	FloorID            int64                    `json:"floor_id"`
	TypeID             int64                    `json:"type_id"`
	Number             string                   `json:"number"`
	HousekeepingStatus model.HousekeepingStatus `json:"housekeeping_status"`
	AssignedTo         *int64                   `json:"assigned_to"`
	IsActive           bool                     `json:"is_active"`
	Image              *string                  `json:"image,omitempty"`
	gDto.Metadata
}

func (r *ResourceResponse) FromModel(res model.Resource) {
	r.ID = res.ResourceID()
	r.Kind = res.ResourceKind()
	r.FloorID = res.Floor()
	r.TypeID = res.TypeID()
	r.Number = res.Label()
	r.HousekeepingStatus = res.Housekeeping()
	r.AssignedTo = res.Assignee()
	r.IsActive = res.Active()
	r.Image = res.ImageURL()
	r.Metadata.FromModel(res.Meta())
}

type GetResourcesResponse struct {
	Resources []ResourceResponse `json:"resources"`
	TotalPage int                `json:"total_page"`
	TotalData int                `json:"total_data"`
}

func (r *GetResourcesResponse) FromModels(models []model.Resource, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Resources = make([]ResourceResponse, len(models))
	for i, mod := range models {
		r.Resources[i].FromModel(mod)
	}
}
