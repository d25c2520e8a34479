// Package engine answers free/busy questions over occupancy intervals. It performs no I/O.
//
// Intervals are compared closed-closed: two stays that share a single instant
// (a check-out equal to the next check-in) are treated as overlapping.
package engine

import (
	"sort"
	"time"

	"github.com/jinzhu/now"
)

type Status string

const (
	StatusBooked     Status = "booked"
	StatusCheckedIn  Status = "checked_in"
	StatusCheckedOut Status = "checked_out"
	StatusCancelled  Status = "cancelled"

	// StatusAvailable is reported for instants no occupancy covers. It is never stored.
	StatusAvailable Status = "available"
)

type Interval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func (i Interval) Valid() bool {
	return i.Start.Before(i.End)
}

func (i Interval) Overlaps(other Interval) bool {
	return IsOverlapping(i.Start, i.End, other.Start, other.End)
}

// IsOverlapping reports aStart <= bEnd && aEnd >= bStart.
func IsOverlapping(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !aStart.After(bEnd) && !aEnd.Before(bStart)
}

// Occupancy is the engine's view of a booked_rooms / booked_halls row.
type Occupancy struct {
	ID         int64    `json:"id"`
	BookingID  int64    `json:"booking_id"`
	ResourceID int64    `json:"resource_id"`
	Interval   Interval `json:"interval"`
	Status     Status   `json:"status"`
}

func (o Occupancy) Active() bool {
	return o.Status != StatusCancelled
}

// Identified is implemented by anything that can be matched against Occupancy.ResourceID.
type Identified interface {
	ResourceID() int64
}

// Conflict is a pair of active occupancies of one resource whose intervals overlap.
type Conflict struct {
	ResourceID int64     `json:"resource_id"`
	First      Occupancy `json:"first"`
	Second     Occupancy `json:"second"`
}

// DayWindow widens t to its whole local day.
func DayWindow(t time.Time, loc *time.Location) Interval {
	day := now.With(t.In(loc))

	return Interval{Start: day.BeginningOfDay(), End: day.EndOfDay()}
}

// HourWindow widens t to its whole local hour.
func HourWindow(t time.Time, loc *time.Location) Interval {
	hour := now.With(t.In(loc))

	return Interval{Start: hour.BeginningOfHour(), End: hour.EndOfHour()}
}

// FindBookingForResource returns the first active occupancy of resourceID overlapping window.
func FindBookingForResource(records []Occupancy, resourceID int64, window Interval) (Occupancy, bool) {
	for _, record := range records {
		if record.ResourceID != resourceID || !record.Active() {
			continue
		}

		if record.Interval.Overlaps(window) {
			return record, true
		}
	}

	return Occupancy{}, false
}

// ListAvailableResources keeps the resources with no active occupancy overlapping candidate.
func ListAvailableResources[R Identified](resources []R, candidate Interval, records []Occupancy) []R {
	busy := make(map[int64]struct{}, len(records))

	for _, record := range records {
		if record.Active() && record.Interval.Overlaps(candidate) {
			busy[record.ResourceID] = struct{}{}
		}
	}

	available := make([]R, 0, len(resources))

	for _, resource := range resources {
		if _, taken := busy[resource.ResourceID()]; !taken {
			available = append(available, resource)
		}
	}

	return available
}

// StatusAt returns the status of the occupancy covering instant t, or StatusAvailable.
func StatusAt(records []Occupancy, resourceID int64, t time.Time) Status {
	record, found := FindBookingForResource(records, resourceID, Interval{Start: t, End: t})
	if !found {
		return StatusAvailable
	}

	return record.Status
}

// Conflicts lists every overlapping pair of active occupancies that share a resource.
func Conflicts(records []Occupancy) []Conflict {
	byResource := map[int64][]Occupancy{}

	for _, record := range records {
		if record.Active() {
			byResource[record.ResourceID] = append(byResource[record.ResourceID], record)
		}
	}

	resourceIDs := make([]int64, 0, len(byResource))
	for id := range byResource {
		resourceIDs = append(resourceIDs, id)
	}

	sort.Slice(resourceIDs, func(i, j int) bool { return resourceIDs[i] < resourceIDs[j] })

	conflicts := []Conflict{}

	for _, resourceID := range resourceIDs {
		group := byResource[resourceID]

		sort.SliceStable(group, func(i, j int) bool {
			return group[i].Interval.Start.Before(group[j].Interval.Start)
		})

		for i := range group {
			for j := i + 1; j < len(group); j++ {
				// sorted by start: once a later record starts after this one ends, none further can overlap
				if group[j].Interval.Start.After(group[i].Interval.End) {
					break
				}

				conflicts = append(conflicts, Conflict{ResourceID: resourceID, First: group[i], Second: group[j]})
			}
		}
	}

	return conflicts
}
