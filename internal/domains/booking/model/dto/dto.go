package dto

import (
	"fmt"
	"hotelier/internal/domains/booking/model"
	guestDto "hotelier/internal/domains/guest/model/dto"
	occModel "hotelier/internal/domains/occupancy/model"
	occDto "hotelier/internal/domains/occupancy/model/dto"
	resModel "hotelier/internal/domains/resource/model"
	"hotelier/shared"
	"hotelier/shared/constant"
	gDto "hotelier/shared/dto"
	gModel "hotelier/shared/model"
	"hotelier/shared/timezone"
	"time"

	"github.com/shopspring/decimal"
)

type CreateBookingRequest struct {
	GuestID       int64                 `json:"guest_id"                validate:"required,gt=0"`
	CheckIn       string                `json:"check_in"                validate:"required,stamp"`
	CheckOut      string                `json:"check_out"               validate:"required,stamp"`
	BookingType   resModel.Kind         `json:"booking_type"            validate:"required,oneof=room hall"`
	Adults        int                   `json:"adults"                  validate:"gte=0"`
	Kids          int                   `json:"kids"                    validate:"gte=0"`
	TotalAmount   decimal.Decimal       `json:"total_amount"            validate:"gte=0"`
	PaidAmount    decimal.Decimal       `json:"paid_amount"             validate:"gte=0"`
	BookingStatus model.Status          `json:"booking_status"          validate:"omitempty,oneof=pending confirmed"`
	ResourceID    *int64                `json:"resource_id,omitempty"   validate:"omitempty,gt=0"`
	BookingBasis  occModel.BookingBasis `json:"booking_basis,omitempty" validate:"omitempty,oneof=hourly daily weekly monthly"`
}

// ParseStay parses check_in/check_out and requires check_in < check_out.
func ParseStay(checkIn, checkOut string) (time.Time, time.Time, error) {
	start, err := timezone.ParseStamp(checkIn)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("check_in: %w", err)
	}

	end, err := timezone.ParseStamp(checkOut)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("check_out: %w", err)
	}

	if !start.Before(end) {
		return time.Time{}, time.Time{}, fmt.Errorf("check_in must be before check_out")
	}

	return start, end, nil
}

func (r *CreateBookingRequest) ToModel(username string) (model.Booking, error) {
	checkIn, checkOut, err := ParseStay(r.CheckIn, r.CheckOut)
	if err != nil {
		return model.Booking{}, err
	}

	status := model.StatusPending
	if r.BookingStatus != "" {
		status = r.BookingStatus
	}

	paymentStatus := model.PaymentPending
	if r.TotalAmount.IsPositive() {
		paymentStatus = model.SettledStatus(r.TotalAmount, r.PaidAmount)
	}

	return model.Booking{
		GuestID:       r.GuestID,
		CheckIn:       checkIn,
		CheckOut:      checkOut,
		BookingType:   r.BookingType,
		Adults:        r.Adults,
		Kids:          r.Kids,
		TotalAmount:   r.TotalAmount,
		PaidAmount:    r.PaidAmount,
		PaymentStatus: paymentStatus,
		BookingStatus: status,
		Metadata:      gModel.NewMetadata(username, timezone.Now()),
	}, nil
}

type CreateBookingResponse struct {
	ID        int64                     `json:"id"`
	Occupancy *occDto.OccupancyResponse `json:"occupancy,omitempty"`
}

// UpdateBookingRequest edits the non-financial fields of an open booking.
type UpdateBookingRequest struct {
	CheckIn       *string       `json:"check_in,omitempty"       validate:"omitempty,stamp"`
	CheckOut      *string       `json:"check_out,omitempty"      validate:"omitempty,stamp"`
	Adults        *int          `json:"adults,omitempty"         validate:"omitempty,gte=0"`
	Kids          *int          `json:"kids,omitempty"           validate:"omitempty,gte=0"`
	BookingStatus *model.Status `json:"booking_status,omitempty" validate:"omitempty,oneof=pending confirmed"`
}

func (r *UpdateBookingRequest) IsEmpty() bool {
	return r.CheckIn == nil && r.CheckOut == nil && r.Adults == nil && r.Kids == nil && r.BookingStatus == nil
}

func (r *UpdateBookingRequest) ChangesStay() bool {
	return r.CheckIn != nil || r.CheckOut != nil
}

// ToFields merges the request over current. Stay changes are validated against the merged values.
func (r *UpdateBookingRequest) ToFields(current model.Booking, username string) (map[string]any, error) {
	fields := shared.TransformFields(struct{}{}, username)

	if r.ChangesStay() {
		checkIn := timezone.Format(current.CheckIn, time.RFC3339)
		if r.CheckIn != nil {
			checkIn = *r.CheckIn
		}

		checkOut := timezone.Format(current.CheckOut, time.RFC3339)
		if r.CheckOut != nil {
			checkOut = *r.CheckOut
		}

		start, end, err := ParseStay(checkIn, checkOut)
		if err != nil {
			return nil, err
		}

		fields[model.FieldCheckIn] = start
		fields[model.FieldCheckOut] = end
	}

	if r.Adults != nil {
		fields[model.FieldAdults] = *r.Adults
	}

	if r.Kids != nil {
		fields[model.FieldKids] = *r.Kids
	}

	if r.BookingStatus != nil {
		fields[model.FieldBookingStatus] = *r.BookingStatus
	}

	return fields, nil
}

// DepositRequest records a security deposit against a booking.
type DepositRequest struct {
	Amount        decimal.Decimal `json:"amount"         validate:"gt=0"`
	PaymentMethod string          `json:"payment_method" validate:"required,max=32"`
}

type DepositResponse struct {
	PaymentID     int64               `json:"payment_id"`
	PaidAmount    decimal.Decimal     `json:"paid_amount"`
	PaymentStatus model.PaymentStatus `json:"payment_status"`
}

type BookingResponse struct {
	ID            int64               `json:"id"`
	GuestID       int64               `json:"guest_id"`
	CheckIn       string              `json:"check_in"`
	CheckOut      string              `json:"check_out"`
	BookingType   resModel.Kind       `json:"booking_type"`
	Adults        int                 `json:"adults"`
	Kids          int                 `json:"kids"`
	TotalAmount   decimal.Decimal     `json:"total_amount"`
	ExtraCharges  decimal.Decimal     `json:"extra_charges"`
	PaidAmount    decimal.Decimal     `json:"paid_amount"`
	PendingAmount decimal.Decimal     `json:"pending_amount"`
	PaymentStatus model.PaymentStatus `json:"payment_status"`
	BookingStatus model.Status        `json:"booking_status"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(booking model.Booking) {
	r.ID = booking.ID
	r.GuestID = booking.GuestID
	r.CheckIn = timezone.Format(booking.CheckIn, constant.DateFormat)
	r.CheckOut = timezone.Format(booking.CheckOut, constant.DateFormat)
	r.BookingType = booking.BookingType
	r.Adults = booking.Adults
	r.Kids = booking.Kids
	r.TotalAmount = booking.TotalAmount
	r.ExtraCharges = booking.ExtraCharges
	r.PaidAmount = booking.PaidAmount
	r.PendingAmount = booking.Pending()
	r.PaymentStatus = booking.PaymentStatus
	r.BookingStatus = booking.BookingStatus
	r.Metadata.FromModel(booking.Metadata)
}

// BookingDetailResponse is a booking joined with its guest and occupancy.
type BookingDetailResponse struct {
	BookingResponse
	Guest     *guestDto.GuestResponse    `json:"guest"`
	Occupancy []occDto.OccupancyResponse `json:"occupancy"`
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}

// BookingFilter is the list query accepted by GET /v1/bookings.
type BookingFilter struct {
	Status  string
	Type    string
	GuestID int64
}

func (f BookingFilter) ToFilterGroup() gDto.FilterGroup {
	filter := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	if f.Status != "" {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field: model.FieldBookingStatus, Operator: gDto.FilterOperatorEq, Value: f.Status, Table: model.TableName,
		})
	}

	if f.Type != "" {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field: model.FieldBookingType, Operator: gDto.FilterOperatorEq, Value: f.Type, Table: model.TableName,
		})
	}

	if f.GuestID != 0 {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field: model.FieldGuestID, Operator: gDto.FilterOperatorEq, Value: f.GuestID, Table: model.TableName,
		})
	}

	return filter
}
