package dto

import (
	"hotelier/internal/domains/archive/model"
	bookingModel "hotelier/internal/domains/booking/model"
	occDto "hotelier/internal/domains/occupancy/model/dto"
	resModel "hotelier/internal/domains/resource/model"
	"hotelier/shared"
	"hotelier/shared/constant"
	gDto "hotelier/shared/dto"
	"hotelier/shared/timezone"
	"time"

	"github.com/shopspring/decimal"
)

type ArchiveResponse struct {
	ID            int64                      `json:"id"`
	BookingID     int64                      `json:"booking_id"`
	CompletedAt   string                     `json:"completed_at"`
	GuestID       int64                      `json:"guest_id"`
	GuestName     string                     `json:"guest_name"`
	BookingType   resModel.Kind              `json:"booking_type"`
	CheckIn       string                     `json:"check_in"`
	CheckOut      string                     `json:"check_out"`
	TotalAmount   decimal.Decimal            `json:"total_amount"`
	PaidAmount    decimal.Decimal            `json:"paid_amount"`
	PaymentStatus bookingModel.PaymentStatus `json:"payment_status"`
	Occupancy     []occDto.OccupancyResponse `json:"occupancy"`
}

func (r *ArchiveResponse) FromModel(entry model.Entry) {
	r.ID = entry.ID
	r.BookingID = entry.BookingID
	r.CompletedAt = timezone.Format(entry.CompletedAt, constant.DateFormat)
	r.GuestID = entry.GuestID
	r.GuestName = entry.GuestName
	r.BookingType = entry.BookingType
	r.CheckIn = timezone.Format(entry.CheckIn, constant.DateFormat)
	r.CheckOut = timezone.Format(entry.CheckOut, constant.DateFormat)
	r.TotalAmount = entry.TotalAmount
	r.PaidAmount = entry.PaidAmount
	r.PaymentStatus = entry.PaymentStatus
	r.Occupancy = []occDto.OccupancyResponse{}
}

type GetArchivesResponse struct {
	Archives  []ArchiveResponse `json:"archives"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetArchivesResponse) FromModels(entries []model.Entry, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Archives = make([]ArchiveResponse, len(entries))
	for i, entry := range entries {
		r.Archives[i].FromModel(entry)
	}
}

// ArchiveFilter narrows the archive by completion date and guest name.
type ArchiveFilter struct {
	From      *time.Time
	To        *time.Time
	GuestName string
}

func (f ArchiveFilter) ToFilterGroup() gDto.FilterGroup {
	filter := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	if f.From != nil {
		filter.Filters = append(filter.Filters, gDto.Filter{
			ArgName: "completed_from", Field: model.FieldCompletedAt, Operator: gDto.FilterOperatorGreaterEq, Value: *f.From, Table: model.TableName,
		})
	}

	if f.To != nil {
		filter.Filters = append(filter.Filters, gDto.Filter{
			ArgName: "completed_to", Field: model.FieldCompletedAt, Operator: gDto.FilterOperatorLessEq, Value: *f.To, Table: model.TableName,
		})
	}

	if f.GuestName != "" {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field: model.FieldGuestName, Operator: gDto.FilterOperatorLike, Value: f.GuestName, Table: model.GuestTableName,
		})
	}

	return filter
}
