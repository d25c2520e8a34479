package dto

import (
	"fmt"
	"hotelier/internal/domains/coupon/model"
	"hotelier/shared"
	"hotelier/shared/constant"
	gDto "hotelier/shared/dto"
	gModel "hotelier/shared/model"
	"hotelier/shared/timezone"
	"strings"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type CreateCouponRequest struct {
	Code             string          `json:"code"               validate:"required,max=64"`
	Type             model.Type      `json:"type"               validate:"required,oneof=percentage flat"`
	Value            decimal.Decimal `json:"value"`
	CouponPeriod     string          `json:"coupon_period"      validate:"required"`
	IncludeRoomTypes []int64         `json:"include_room_types"`
	ExcludeRoomTypes []int64         `json:"exclude_room_types"`
	PaidServices     []int64         `json:"paid_services"`
}

func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func validate(t model.Type, value decimal.Decimal, include, exclude []int64) error {
	if !model.ValidValue(t, value) {
		if t == model.TypePercentage {
			return fmt.Errorf("percentage value must be greater than 0 and at most 100")
		}

		return fmt.Errorf("value must be greater than 0")
	}

	if !model.Disjoint(include, exclude) {
		return fmt.Errorf("a room type cannot be both included and excluded")
	}

	return nil
}

func (r *CreateCouponRequest) ToModel(username string) (model.Coupon, error) {
	period, err := model.ParsePeriod(r.CouponPeriod)
	if err != nil {
		return model.Coupon{}, err
	}

	if err = validate(r.Type, r.Value, r.IncludeRoomTypes, r.ExcludeRoomTypes); err != nil {
		return model.Coupon{}, err
	}

	return model.Coupon{
		Code:             NormalizeCode(r.Code),
		Type:             r.Type,
		Value:            r.Value,
		CouponPeriod:     period.String(),
		IncludeRoomTypes: pq.Int64Array(r.IncludeRoomTypes),
		ExcludeRoomTypes: pq.Int64Array(r.ExcludeRoomTypes),
		PaidServices:     pq.Int64Array(r.PaidServices),
		Metadata:         gModel.NewMetadata(username, timezone.Now()),
	}, nil
}

type UpdateCouponRequest struct {
	Code             *string          `json:"code,omitempty"          validate:"omitempty,min=1,max=64"`
	Type             *model.Type      `json:"type,omitempty"          validate:"omitempty,oneof=percentage flat"`
	Value            *decimal.Decimal `json:"value,omitempty"`
	CouponPeriod     *string          `json:"coupon_period,omitempty"`
	IncludeRoomTypes *[]int64         `json:"include_room_types,omitempty"`
	ExcludeRoomTypes *[]int64         `json:"exclude_room_types,omitempty"`
	PaidServices     *[]int64         `json:"paid_services,omitempty"`
}

func (r *UpdateCouponRequest) IsEmpty() bool {
	return r.Code == nil && r.Type == nil && r.Value == nil && r.CouponPeriod == nil &&
		r.IncludeRoomTypes == nil && r.ExcludeRoomTypes == nil && r.PaidServices == nil
}

// ToFields validates the merged coupon, so a type change is checked against the stored value and vice versa.
func (r *UpdateCouponRequest) ToFields(current model.Coupon, username string) (map[string]any, error) {
	fields := shared.TransformFields(struct{}{}, username)

	merged := current

	if r.Code != nil {
		merged.Code = NormalizeCode(*r.Code)
		fields[model.FieldCode] = merged.Code
	}

	if r.Type != nil {
		merged.Type = *r.Type
		fields[model.FieldType] = merged.Type
	}

	if r.Value != nil {
		merged.Value = *r.Value
		fields[model.FieldValue] = merged.Value
	}

	if r.CouponPeriod != nil {
		period, err := model.ParsePeriod(*r.CouponPeriod)
		if err != nil {
			return nil, err
		}

		fields[model.FieldCouponPeriod] = period.String()
	}

	if r.IncludeRoomTypes != nil {
		merged.IncludeRoomTypes = *r.IncludeRoomTypes
		fields[model.FieldIncludeRoomTypes] = merged.IncludeRoomTypes
	}

	if r.ExcludeRoomTypes != nil {
		merged.ExcludeRoomTypes = *r.ExcludeRoomTypes
		fields[model.FieldExcludeRoomTypes] = merged.ExcludeRoomTypes
	}

	if r.PaidServices != nil {
		fields[model.FieldPaidServices] = pq.Int64Array(*r.PaidServices)
	}

	if err := validate(merged.Type, merged.Value, merged.IncludeRoomTypes, merged.ExcludeRoomTypes); err != nil {
		return nil, err
	}

	return fields, nil
}

type CouponResponse struct {
	ID               int64           `json:"id"`
	Code             string          `json:"code"`
	Type             model.Type      `json:"type"`
	Value            decimal.Decimal `json:"value"`
	CouponPeriod     string          `json:"coupon_period"`
	StartDate        string          `json:"start_date,omitempty"`
	EndDate          string          `json:"end_date,omitempty"`
	ValidToday       bool            `json:"valid_today"`
	IncludeRoomTypes []int64         `json:"include_room_types"`
	ExcludeRoomTypes []int64         `json:"exclude_room_types"`
	PaidServices     []int64         `json:"paid_services"`
	gDto.Metadata
}

// FromModel fills the response; today drives ValidToday.
func (r *CouponResponse) FromModel(coupon model.Coupon, today time.Time) {
	r.ID = coupon.ID
	r.Code = coupon.Code
	r.Type = coupon.Type
	r.Value = coupon.Value
	r.CouponPeriod = coupon.CouponPeriod
	r.ValidToday = coupon.IsValidOn(today)
	r.IncludeRoomTypes = orEmpty(coupon.IncludeRoomTypes)
	r.ExcludeRoomTypes = orEmpty(coupon.ExcludeRoomTypes)
	r.PaidServices = orEmpty(coupon.PaidServices)
	r.Metadata.FromModel(coupon.Metadata)

	if period, err := model.ParsePeriod(coupon.CouponPeriod); err == nil {
		r.StartDate = timezone.Format(period.Start, constant.DayFormat)
		r.EndDate = timezone.Format(period.LastDay(), constant.DayFormat)
	}
}

func orEmpty(ids pq.Int64Array) []int64 {
	if ids == nil {
		return []int64{}
	}

	return ids
}

type GetCouponsResponse struct {
	Coupons   []CouponResponse `json:"coupons"`
	TotalPage int              `json:"total_page"`
	TotalData int              `json:"total_data"`
}

func (r *GetCouponsResponse) FromModels(models []model.Coupon, totalData, limit int, today time.Time) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Coupons = make([]CouponResponse, len(models))
	for i, mod := range models {
		r.Coupons[i].FromModel(mod, today)
	}
}

// CouponFilter is the list query accepted by GET /v1/coupons.
type CouponFilter struct {
	Code string
	Type string
}

func (f CouponFilter) ToFilterGroup() gDto.FilterGroup {
	filter := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	if f.Code != "" {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field: model.FieldCode, Operator: gDto.FilterOperatorLike, Value: f.Code, Table: model.TableName,
		})
	}

	if f.Type != "" {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field: model.FieldType, Operator: gDto.FilterOperatorEq, Value: f.Type, Table: model.TableName,
		})
	}

	return filter
}
