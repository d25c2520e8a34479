package model

import "hotelier/shared/model"

const (
	TableName  = "hotel_settings"
	EntityName = "hotel_settings"

	FieldID             = "id"
	FieldHotelName      = "hotel_name"
	FieldCurrencySymbol = "currency_symbol"
	FieldLogo           = "logo"

	// SingletonID is the id of the only settings row.
	SingletonID int64 = 1

	CacheAppConfig = "settings:app_config"
	LogoFolder     = "branding"
)

type Settings struct {
	ID             int64   `db:"id"`
	HotelName      string  `db:"hotel_name"`
	CurrencySymbol string  `db:"currency_symbol"`
	Logo           *string `db:"logo"`
	model.Metadata
}

// AppConfig is the hotel branding shown on invoices and the back office.
type AppConfig struct {
	HotelName      string `json:"hotel_name"`
	CurrencySymbol string `json:"currency_symbol"`
	LogoURL        string `json:"logo_url,omitempty"`
}

func (s Settings) ToAppConfig() AppConfig {
	cfg := AppConfig{HotelName: s.HotelName, CurrencySymbol: s.CurrencySymbol}
	if s.Logo != nil {
		cfg.LogoURL = *s.Logo
	}

	return cfg
}
