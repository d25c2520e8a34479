package model

import (
	"errors"
	"fmt"
	"hotelier/shared/constant"
	"hotelier/shared/timezone"
	"regexp"
	"time"
)

var (
	ErrInvalidPeriod = errors.New("coupon period must look like [YYYY-MM-DD,YYYY-MM-DD)")
	ErrEmptyPeriod   = errors.New("coupon period is empty")

	periodPattern = regexp.MustCompile(`^\s*([\[(])\s*(\d{4}-\d{2}-\d{2})\s*,\s*(\d{4}-\d{2}-\d{2})\s*([\])])\s*$`)
)

// Period is a half-open date range [Start, End).
type Period struct {
	Start time.Time
	End   time.Time
}

// ParsePeriod reads the range literal stored in coupon_period. Exclusive starts and inclusive ends are
// normalised so the result is always half-open, matching the canonical form of a postgres daterange.
func ParsePeriod(value string) (Period, error) {
	match := periodPattern.FindStringSubmatch(value)
	if match == nil {
		return Period{}, fmt.Errorf("%w: %q", ErrInvalidPeriod, value)
	}

	start, err := timezone.Parse(constant.DayFormat, match[2])
	if err != nil {
		return Period{}, fmt.Errorf("%w: %w", ErrInvalidPeriod, err)
	}

	end, err := timezone.Parse(constant.DayFormat, match[3])
	if err != nil {
		return Period{}, fmt.Errorf("%w: %w", ErrInvalidPeriod, err)
	}

	if match[1] == "(" {
		start = start.AddDate(0, 0, 1)
	}

	if match[4] == "]" {
		end = end.AddDate(0, 0, 1)
	}

	if !start.Before(end) {
		return Period{}, ErrEmptyPeriod
	}

	return Period{Start: start, End: end}, nil
}

// NewPeriod builds the half-open period covering from..to, both inclusive.
func NewPeriod(from, to time.Time) (Period, error) {
	p := Period{Start: from, End: to.AddDate(0, 0, 1)}
	if !p.Start.Before(p.End) {
		return Period{}, ErrEmptyPeriod
	}

	return p, nil
}

func (p Period) String() string {
	return FormatPeriod(p)
}

func FormatPeriod(p Period) string {
	return fmt.Sprintf("[%s,%s)", timezone.Format(p.Start, constant.DayFormat), timezone.Format(p.End, constant.DayFormat))
}

// Contains reports whether the calendar day of date falls inside the period.
func (p Period) Contains(date time.Time) bool {
	loc := p.Start.Location()
	y, m, d := date.In(loc).Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, loc)

	return !day.Before(p.Start) && day.Before(p.End)
}

// LastDay is the final day the period covers.
func (p Period) LastDay() time.Time {
	return p.End.AddDate(0, 0, -1)
}
