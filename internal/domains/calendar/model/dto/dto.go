package dto

import (
	"hotelier/internal/domains/calendar/model"
	"hotelier/internal/domains/occupancy/engine"
	resModel "hotelier/internal/domains/resource/model"
	"hotelier/shared/constant"
	"hotelier/shared/timezone"
)

type BucketResponse struct {
	Start string `json:"start"`
	End   string `json:"end"`
	Label string `json:"label"`
	Blank bool   `json:"blank"`
}

type CellResponse struct {
	Blank       bool          `json:"blank"`
	Status      engine.Status `json:"status,omitempty"`
	Color       model.Color   `json:"color,omitempty"`
	BookingID   int64         `json:"booking_id,omitempty"`
	OccupancyID int64         `json:"occupancy_id,omitempty"`
}

type RowResponse struct {
	Kind       resModel.Kind  `json:"kind"`
	ResourceID int64          `json:"resource_id"`
	Label      string         `json:"label"`
	Cells      []CellResponse `json:"cells"`
}

type WarningResponse struct {
	ResourceID int64   `json:"resource_id"`
	Bucket     int     `json:"bucket"`
	Shown      int64   `json:"shown_booking_id"`
	Hidden     []int64 `json:"hidden_booking_ids"`
}

type GridResponse struct {
	View     model.Granularity `json:"view"`
	Start    string            `json:"start"`
	End      string            `json:"end"`
	Empty    bool              `json:"empty"`
	Message  string            `json:"message,omitempty"`
	Buckets  []BucketResponse  `json:"buckets"`
	Rows     []RowResponse     `json:"rows"`
	Warnings []WarningResponse `json:"integrity_warnings"`
}

func (r *GridResponse) FromModel(grid model.Grid) {
	r.View = grid.Granularity
	r.Start = timezone.Format(grid.Range.Start, constant.DateFormat)
	r.End = timezone.Format(grid.Range.End, constant.DateFormat)
	r.Empty = grid.Empty

	if grid.Empty {
		r.Message = "no resources"
	}

	r.Buckets = make([]BucketResponse, len(grid.Buckets))
	for i, b := range grid.Buckets {
		r.Buckets[i] = BucketResponse{
			Start: timezone.Format(b.Start, constant.DateFormat),
			End:   timezone.Format(b.End, constant.DateFormat),
			Label: b.Label,
			Blank: b.Blank,
		}
	}

	r.Rows = make([]RowResponse, len(grid.Rows))
	for i, row := range grid.Rows {
		cells := make([]CellResponse, len(row.Cells))
		for j, c := range row.Cells {
			cells[j] = CellResponse(c)
		}

		r.Rows[i] = RowResponse{Kind: row.Kind, ResourceID: row.ResourceID, Label: row.Label, Cells: cells}
	}

	r.Warnings = make([]WarningResponse, len(grid.Warnings))
	for i, w := range grid.Warnings {
		r.Warnings[i] = WarningResponse(w)
	}
}
