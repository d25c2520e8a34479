package dto

import (
	"hotelier/internal/domains/guest/model"
	"hotelier/shared"
	gDto "hotelier/shared/dto"
	gModel "hotelier/shared/model"
	"hotelier/shared/timezone"
)

type CreateGuestRequest struct {
	FullName string `json:"full_name" validate:"required,max=120"`
	Phone    string `json:"phone"     validate:"omitempty,max=32"`
	CNIC     string `json:"cnic"      validate:"omitempty,max=32"`
	IsVIP    bool   `json:"is_vip"`
}

func (r *CreateGuestRequest) ToModel(username string) model.Guest {
	return model.Guest{
		FullName: r.FullName,
		Phone:    r.Phone,
		CNIC:     r.CNIC,
		IsVIP:    r.IsVIP,
		Metadata: gModel.NewMetadata(username, timezone.Now()),
	}
}

type UpdateGuestRequest struct {
	FullName *string `json:"full_name,omitempty" validate:"omitempty,min=1,max=120"`
	Phone    *string `json:"phone,omitempty"     validate:"omitempty,max=32"`
	CNIC     *string `json:"cnic,omitempty"      validate:"omitempty,max=32"`
	IsVIP    *bool   `json:"is_vip,omitempty"`
}

func (r *UpdateGuestRequest) IsEmpty() bool {
	return r.FullName == nil && r.Phone == nil && r.CNIC == nil && r.IsVIP == nil
}

func (r *UpdateGuestRequest) ToFields(username string) map[string]any {
	fields := shared.TransformFields(struct{}{}, username)

	if r.FullName != nil {
		fields[model.FieldFullName] = *r.FullName
	}

	if r.Phone != nil {
		fields[model.FieldPhone] = *r.Phone
	}

	if r.CNIC != nil {
		fields[model.FieldCNIC] = *r.CNIC
	}

	if r.IsVIP != nil {
		fields[model.FieldIsVIP] = *r.IsVIP
	}

	return fields
}

type GuestResponse struct {
	ID       int64  `json:"id"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	CNIC     string `json:"cnic"`
	IsVIP    bool   `json:"is_vip"`
	gDto.Metadata
}

func (r *GuestResponse) FromModel(guest model.Guest) {
	r.ID = guest.ID
	r.FullName = guest.FullName
	r.Phone = guest.Phone
	r.CNIC = guest.CNIC
	r.IsVIP = guest.IsVIP
	r.Metadata.FromModel(guest.Metadata)
}

type GetGuestsResponse struct {
	Guests    []GuestResponse `json:"guests"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetGuestsResponse) FromModels(models []model.Guest, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Guests = make([]GuestResponse, len(models))
	for i, mod := range models {
		r.Guests[i].FromModel(mod)
	}
}
