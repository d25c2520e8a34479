package model

import (
	"fmt"
	"hotelier/internal/domains/occupancy/engine"
	resModel "hotelier/internal/domains/resource/model"
	"time"
)

type Granularity string

const (
	GranularityDay   Granularity = "day"
	GranularityWeek  Granularity = "week"
	GranularityMonth Granularity = "month"
)

func ParseGranularity(value string) (Granularity, error) {
	switch g := Granularity(value); g {
	case GranularityDay, GranularityWeek, GranularityMonth:
		return g, nil
	case "":
		return GranularityMonth, nil
	}

	return "", fmt.Errorf("unknown calendar view %q, expected day, week or month", value)
}

type Color string

const (
	ColorRed    Color = "red"
	ColorYellow Color = "yellow"
	ColorGray   Color = "gray"
	ColorGreen  Color = "green"
)

// Bucket is one column of the grid, covering [Start, End).
type Bucket struct {
	Start time.Time
	End   time.Time
	Label string
	// Blank marks month cells that fall outside the displayed month.
	Blank bool
}

type Cell struct {
	Blank       bool
	Status      engine.Status
	Color       Color
	BookingID   int64
	OccupancyID int64
}

type Row struct {
	Kind       resModel.Kind
	ResourceID int64
	Label      string
	Cells      []Cell
}

// IntegrityWarning reports a bucket where more than one active occupancy of a resource matched.
type IntegrityWarning struct {
	ResourceID int64
	Bucket     int
	Shown      int64
	Hidden     []int64
}

type Grid struct {
	Granularity Granularity
	Range       engine.Interval
	Buckets     []Bucket
	Rows        []Row
	Warnings    []IntegrityWarning
	Empty       bool
}
