package dto

import (
	"hotelier/internal/domains/occupancy/engine"
	"hotelier/internal/domains/occupancy/model"
	resModel "hotelier/internal/domains/resource/model"
	resDto "hotelier/internal/domains/resource/model/dto"
	"hotelier/shared/constant"
	"hotelier/shared/timezone"
)

// AssignRequest places a booking's stay on one room or hall.
type AssignRequest struct {
	Kind         resModel.Kind      `json:"kind"                    validate:"required,oneof=room hall"`
	ResourceID   int64              `json:"resource_id"             validate:"required,gt=0"`
	BookingBasis model.BookingBasis `json:"booking_basis,omitempty" validate:"omitempty,oneof=hourly daily weekly monthly"`
}

type OccupancyResponse struct {
	ID           int64              `json:"id"`
	Kind         resModel.Kind      `json:"kind"`
	BookingID    int64              `json:"booking_id"`
	ResourceID   int64              `json:"resource_id"`
	CheckIn      string             `json:"check_in"`
	CheckOut     string             `json:"check_out"`
	Status       engine.Status      `json:"status"`
	BookingBasis model.BookingBasis `json:"booking_basis,omitempty"`
}

func (r *OccupancyResponse) FromRecord(rec model.Record) {
	r.ID = rec.ID
	r.Kind = rec.Kind
	r.BookingID = rec.BookingID
	r.ResourceID = rec.ResourceID
	r.CheckIn = timezone.Format(rec.Interval.Start, constant.DateFormat)
	r.CheckOut = timezone.Format(rec.Interval.End, constant.DateFormat)
	r.Status = rec.Status
	r.BookingBasis = rec.BookingBasis
}

func FromRecords(recs []model.Record) []OccupancyResponse {
	res := make([]OccupancyResponse, len(recs))
	for i, rec := range recs {
		res[i].FromRecord(rec)
	}

	return res
}

type WindowResponse struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

func (w *WindowResponse) FromInterval(interval engine.Interval) {
	w.Start = timezone.Format(interval.Start, constant.DateFormat)
	w.End = timezone.Format(interval.End, constant.DateFormat)
}

// LookupResponse answers "which booking holds this resource in the window".
type LookupResponse struct {
	Kind       resModel.Kind      `json:"kind"`
	ResourceID int64              `json:"resource_id"`
	Window     WindowResponse     `json:"window"`
	Status     engine.Status      `json:"status"`
	Occupancy  *OccupancyResponse `json:"occupancy"`
}

type AvailableResponse struct {
	Kind      resModel.Kind             `json:"kind"`
	Window    WindowResponse            `json:"window"`
	Resources []resDto.ResourceResponse `json:"resources"`
}

func (r *AvailableResponse) FromModels(kind resModel.Kind, window engine.Interval, resources []resModel.Resource) {
	r.Kind = kind
	r.Window.FromInterval(window)

	r.Resources = make([]resDto.ResourceResponse, len(resources))
	for i, res := range resources {
		r.Resources[i].FromModel(res)
	}
}
