package dto

import (
	"fmt"
	"hotelier/internal/domains/pricing/model"
	"hotelier/shared"
	"hotelier/shared/constant"
	gDto "hotelier/shared/dto"
	gModel "hotelier/shared/model"
	"hotelier/shared/timezone"
	"time"

	"github.com/shopspring/decimal"
)

// ParseDateRange parses YYYY-MM-DD dates and requires start <= end.
func ParseDateRange(start, end string) (time.Time, time.Time, error) {
	from, err := timezone.Parse(constant.DayFormat, start)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("start_date: %w", err)
	}

	to, err := timezone.Parse(constant.DayFormat, end)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("end_date: %w", err)
	}

	if to.Before(from) {
		return time.Time{}, time.Time{}, fmt.Errorf("start_date must not be after end_date")
	}

	return from, to, nil
}

type CreatePriceEntryRequest struct {
	RoomTypeID   int64               `json:"room_type_id"  validate:"required,gt=0"`
	RegularPrice decimal.Decimal     `json:"regular_price" validate:"gte=0"`
	SpecialPrice decimal.NullDecimal `json:"special_price"`
	StartDate    string              `json:"start_date"    validate:"required,day"`
	EndDate      string              `json:"end_date"      validate:"required,day"`
}

func (r *CreatePriceEntryRequest) ToModel(username string) (model.PriceEntry, error) {
	start, end, err := ParseDateRange(r.StartDate, r.EndDate)
	if err != nil {
		return model.PriceEntry{}, err
	}

	if r.SpecialPrice.Valid && r.SpecialPrice.Decimal.IsNegative() {
		return model.PriceEntry{}, fmt.Errorf("special_price cannot be negative")
	}

	return model.PriceEntry{
		RoomTypeID:   r.RoomTypeID,
		RegularPrice: r.RegularPrice,
		SpecialPrice: r.SpecialPrice,
		StartDate:    start,
		EndDate:      end,
		Metadata:     gModel.NewMetadata(username, timezone.Now()),
	}, nil
}

type UpdatePriceEntryRequest struct {
	RoomTypeID   *int64               `json:"room_type_id,omitempty"  validate:"omitempty,gt=0"`
	RegularPrice *decimal.Decimal     `json:"regular_price,omitempty"`
	SpecialPrice *decimal.NullDecimal `json:"special_price,omitempty"`
	StartDate    *string              `json:"start_date,omitempty"    validate:"omitempty,day"`
	EndDate      *string              `json:"end_date,omitempty"      validate:"omitempty,day"`
}

func (r *UpdatePriceEntryRequest) IsEmpty() bool {
	return r.RoomTypeID == nil && r.RegularPrice == nil && r.SpecialPrice == nil && r.StartDate == nil && r.EndDate == nil
}

// ToFields merges the request over current so the date range is validated as a whole.
func (r *UpdatePriceEntryRequest) ToFields(current model.PriceEntry, username string) (map[string]any, error) {
	fields := shared.TransformFields(struct{}{}, username)

	if r.RoomTypeID != nil {
		fields[model.FieldRoomTypeID] = *r.RoomTypeID
	}

	if r.RegularPrice != nil {
		if r.RegularPrice.IsNegative() {
			return nil, fmt.Errorf("regular_price cannot be negative")
		}

		fields[model.FieldRegularPrice] = *r.RegularPrice
	}

	if r.SpecialPrice != nil {
		if r.SpecialPrice.Valid && r.SpecialPrice.Decimal.IsNegative() {
			return nil, fmt.Errorf("special_price cannot be negative")
		}

		fields[model.FieldSpecialPrice] = *r.SpecialPrice
	}

	if r.StartDate != nil || r.EndDate != nil {
		start := timezone.Format(current.StartDate, constant.DayFormat)
		if r.StartDate != nil {
			start = *r.StartDate
		}

		end := timezone.Format(current.EndDate, constant.DayFormat)
		if r.EndDate != nil {
			end = *r.EndDate
		}

		from, to, err := ParseDateRange(start, end)
		if err != nil {
			return nil, err
		}

		fields[model.FieldStartDate] = from
		fields[model.FieldEndDate] = to
	}

	return fields, nil
}

type PriceEntryResponse struct {
	ID           int64               `json:"id"`
	RoomTypeID   int64               `json:"room_type_id"`
	RegularPrice decimal.Decimal     `json:"regular_price"`
	SpecialPrice decimal.NullDecimal `json:"special_price"`
	StartDate    string              `json:"start_date"`
	EndDate      string              `json:"end_date"`
	gDto.Metadata
}

func (r *PriceEntryResponse) FromModel(entry model.PriceEntry) {
	r.ID = entry.ID
	r.RoomTypeID = entry.RoomTypeID
	r.RegularPrice = entry.RegularPrice
	r.SpecialPrice = entry.SpecialPrice
	r.StartDate = timezone.Format(entry.StartDate, constant.DayFormat)
	r.EndDate = timezone.Format(entry.EndDate, constant.DayFormat)
	r.Metadata.FromModel(entry.Metadata)
}

type GetPriceEntriesResponse struct {
	PriceEntries []PriceEntryResponse `json:"price_entries"`
	TotalPage    int                  `json:"total_page"`
	TotalData    int                  `json:"total_data"`
}

func (r *GetPriceEntriesResponse) FromModels(models []model.PriceEntry, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.PriceEntries = make([]PriceEntryResponse, len(models))
	for i, mod := range models {
		r.PriceEntries[i].FromModel(mod)
	}
}

// ApplicableFilter matches every entry of a room type whose range contains date.
func ApplicableFilter(roomTypeID int64, date time.Time) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldRoomTypeID, Operator: gDto.FilterOperatorEq, Value: roomTypeID, Table: model.TableName},
			gDto.Filter{Field: model.FieldStartDate, Operator: gDto.FilterOperatorLessEq, Value: date, Table: model.TableName},
			gDto.Filter{Field: model.FieldEndDate, Operator: gDto.FilterOperatorGreaterEq, Value: date, Table: model.TableName},
		},
	}
}
