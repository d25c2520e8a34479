// Package projection lays occupancy records out on a day, week or month grid. It performs no I/O.
package projection

import (
	"fmt"
	"hotelier/internal/domains/calendar/model"
	"hotelier/internal/domains/occupancy/engine"
	resModel "hotelier/internal/domains/resource/model"
	"time"

	"github.com/jinzhu/now"
)

const (
	hoursPerDay  = 24
	daysPerWeek  = 7
	monthWeeks   = 6
	monthCells   = monthWeeks * daysPerWeek
	hourLabel    = "%02d:00"
	weekDayLabel = "Mon 02"
	monthLabel   = "2"
)

func calendarOf(t time.Time, loc *time.Location) *now.Now {
	cfg := &now.Config{WeekStartDay: time.Sunday, TimeLocation: loc}

	return cfg.With(t.In(loc))
}

// Buckets returns the grid columns for the view containing current.
func Buckets(current time.Time, loc *time.Location, granularity model.Granularity) ([]model.Bucket, error) {
	cal := calendarOf(current, loc)

	switch granularity {
	case model.GranularityDay:
		return hours(cal.BeginningOfDay(), loc), nil
	case model.GranularityWeek:
		return days(cal.BeginningOfWeek(), daysPerWeek, weekDayLabel, nil), nil
	case model.GranularityMonth:
		first := cal.BeginningOfMonth()
		gridStart := calendarOf(first, loc).BeginningOfWeek()
		month := first.Month()

		return days(gridStart, monthCells, monthLabel, func(t time.Time) bool { return t.Month() != month }), nil
	}

	return nil, fmt.Errorf("unknown calendar view %q", granularity)
}

// hours returns one bucket per local hour-of-day. On a daylight saving change the skipped hour is an
// empty bucket and the repeated hour is two hours long, so the buckets still tile the local day.
func hours(dayStart time.Time, loc *time.Location) []model.Bucket {
	nextDay := dayStart.AddDate(0, 0, 1)
	starts := make([]time.Time, hoursPerDay+1)
	seen := make([]bool, hoursPerDay)

	for t := dayStart; t.Before(nextDay); t = t.Add(time.Hour) {
		if hour := t.In(loc).Hour(); !seen[hour] {
			starts[hour], seen[hour] = t, true
		}
	}

	starts[hoursPerDay] = nextDay

	for hour := hoursPerDay - 1; hour >= 0; hour-- {
		if !seen[hour] {
			starts[hour] = starts[hour+1]
		}
	}

	buckets := make([]model.Bucket, hoursPerDay)
	for i := range buckets {
		buckets[i] = model.Bucket{Start: starts[i], End: starts[i+1], Label: fmt.Sprintf(hourLabel, i)}
	}

	return buckets
}

func days(start time.Time, count int, label string, blank func(time.Time) bool) []model.Bucket {
	buckets := make([]model.Bucket, count)

	for i := range buckets {
		dayStart := start.AddDate(0, 0, i)
		buckets[i] = model.Bucket{Start: dayStart, End: dayStart.AddDate(0, 0, 1), Label: dayStart.Format(label)}

		if blank != nil && blank(dayStart) {
			buckets[i].Blank = true
			buckets[i].Label = ""
		}
	}

	return buckets
}

// Range is the instant span the grid covers, closed at both ends.
func Range(buckets []model.Bucket) engine.Interval {
	if len(buckets) == 0 {
		return engine.Interval{}
	}

	return engine.Interval{Start: buckets[0].Start, End: buckets[len(buckets)-1].End.Add(-time.Nanosecond)}
}

func Color(status engine.Status) model.Color {
	switch status {
	case engine.StatusBooked:
		return model.ColorRed
	case engine.StatusCheckedIn:
		return model.ColorYellow
	case engine.StatusCheckedOut:
		return model.ColorGray
	}

	return model.ColorGreen
}

// Project builds one row per resource. A cell shows the first active record overlapping its bucket;
// further matches that also overlap the shown record become integrity warnings.
func Project(current time.Time, loc *time.Location, granularity model.Granularity, resources []resModel.Resource, records []engine.Occupancy) (model.Grid, error) {
	buckets, err := Buckets(current, loc, granularity)
	if err != nil {
		return model.Grid{}, err
	}

	grid := model.Grid{
		Granularity: granularity,
		Range:       Range(buckets),
		Buckets:     buckets,
		Rows:        make([]model.Row, 0, len(resources)),
		Warnings:    []model.IntegrityWarning{},
		Empty:       len(resources) == 0,
	}

	byResource := map[int64][]engine.Occupancy{}

	for _, record := range records {
		if record.Active() {
			byResource[record.ResourceID] = append(byResource[record.ResourceID], record)
		}
	}

	for _, resource := range resources {
		row := model.Row{
			Kind:       resource.ResourceKind(),
			ResourceID: resource.ResourceID(),
			Label:      resource.Label(),
			Cells:      make([]model.Cell, len(buckets)),
		}

		for i, bucket := range buckets {
			if bucket.Blank {
				row.Cells[i] = model.Cell{Blank: true}

				continue
			}

			cell, warning := project(bucket, byResource[row.ResourceID])
			row.Cells[i] = cell

			if warning != nil {
				warning.ResourceID = row.ResourceID
				warning.Bucket = i
				grid.Warnings = append(grid.Warnings, *warning)
			}
		}

		grid.Rows = append(grid.Rows, row)
	}

	return grid, nil
}

func project(bucket model.Bucket, records []engine.Occupancy) (model.Cell, *model.IntegrityWarning) {
	window := engine.Interval{Start: bucket.Start, End: bucket.End.Add(-time.Nanosecond)}
	cell := model.Cell{Status: engine.StatusAvailable, Color: model.ColorGreen}

	var (
		shown   engine.Interval
		warning *model.IntegrityWarning
	)

	for _, record := range records {
		if !record.Interval.Overlaps(window) {
			continue
		}

		if cell.BookingID == 0 {
			shown = record.Interval
			cell = model.Cell{
				Status:      record.Status,
				Color:       Color(record.Status),
				BookingID:   record.BookingID,
				OccupancyID: record.ID,
			}

			continue
		}

		// A checkout and the next check-in on the same day share the cell without conflicting.
		if !record.Interval.Overlaps(shown) {
			continue
		}

		if warning == nil {
			warning = &model.IntegrityWarning{Shown: cell.BookingID}
		}

		warning.Hidden = append(warning.Hidden, record.BookingID)
	}

	return cell, warning
}
