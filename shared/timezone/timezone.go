// Package timezone pins every business timestamp (stays, calendar cells, archive dates) to the hotel's
// configured APP_TIMEZONE. The location is loaded once at import; an unknown or empty name falls back to UTC.
package timezone

import (
	"fmt"
	"hotelier/config"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
)

var location atomic.Pointer[time.Location]

var stampLayouts = []string{"2006-01-02T15:04:05", "2006-01-02T15:04", "2006-01-02"}

func init() {
	name := config.Get().App.Timezone

	if err := SetLocation(name); err != nil {
		log.Error().Err(err).Str("timezone", name).Msg("unknown timezone, falling back to UTC")
	}
}

// SetLocation switches the application timezone. An empty name means UTC.
func SetLocation(name string) error {
	if name == "" {
		location.Store(time.UTC)

		return nil
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		location.Store(time.UTC)

		return fmt.Errorf("load timezone %q: %w", name, err)
	}

	location.Store(loc)

	return nil
}

func GetLocation() *time.Location {
	if loc := location.Load(); loc != nil {
		return loc
	}

	return time.UTC
}

func Now() time.Time {
	return time.Now().In(GetLocation())
}

func ToAppTime(t time.Time) time.Time {
	return t.In(GetLocation())
}

// Parse reads value in the application timezone.
func Parse(layout, value string) (time.Time, error) {
	return time.ParseInLocation(layout, value, GetLocation())
}

func Format(t time.Time, layout string) string {
	return ToAppTime(t).Format(layout)
}

// ParseStamp accepts RFC3339 or a local "2006-01-02T15:04[:05]" / "2006-01-02" value.
func ParseStamp(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return ToAppTime(t), nil
	}

	var lastErr error

	for _, layout := range stampLayouts {
		t, err := Parse(layout, value)
		if err == nil {
			return t, nil
		}

		lastErr = err
	}

	return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", value, lastErr)
}
