package dto

import (
	"hotelier/internal/domains/settings/model"
	"hotelier/shared"
)

type UpdateSettingsRequest struct {
	HotelName      *string `json:"hotel_name,omitempty"      validate:"omitempty,min=1,max=120"`
	CurrencySymbol *string `json:"currency_symbol,omitempty" validate:"omitempty,min=1,max=8"`
}

func (r *UpdateSettingsRequest) IsEmpty() bool {
	return r.HotelName == nil && r.CurrencySymbol == nil
}

func (r *UpdateSettingsRequest) ToFields(username string) map[string]any {
	fields := shared.TransformFields(struct{}{}, username)

	if r.HotelName != nil {
		fields[model.FieldHotelName] = *r.HotelName
	}

	if r.CurrencySymbol != nil {
		fields[model.FieldCurrencySymbol] = *r.CurrencySymbol
	}

	return fields
}

// Apply merges the request into current, used when the row does not exist yet.
func (r *UpdateSettingsRequest) Apply(current model.AppConfig) model.AppConfig {
	if r.HotelName != nil {
		current.HotelName = *r.HotelName
	}

	if r.CurrencySymbol != nil {
		current.CurrencySymbol = *r.CurrencySymbol
	}

	return current
}
