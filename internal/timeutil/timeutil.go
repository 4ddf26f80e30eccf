package timeutil

import (
	"fmt"
	"strings"
	"time"
)

// DefaultLocation is the auction clock (Mombasa, UTC+3).
const DefaultLocation = "Africa/Nairobi"

// Location is the business time zone used for timestamps written by the seeder.
var Location *time.Location

func init() {
	Location = loadLocation(DefaultLocation)
}

func loadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		// Fallback: create fixed zone if tzdata is not available
		return time.FixedZone("EAT", 3*60*60)
	}
	return loc
}

// SetLocation switches the business time zone. An empty name keeps the default.
func SetLocation(name string) error {
	if strings.TrimSpace(name) == "" {
		return nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return fmt.Errorf("load timezone %q: %w", name, err)
	}
	Location = loc
	return nil
}

// Now returns the current time in the business location
func Now() time.Time {
	return time.Now().In(Location)
}

// Common layouts accepted from batch files
const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02 15:04:05"
	DisplayLayout  = "02 Jan 2006, 03:04 PM"
)

// ParseFlexible parses RFC3339, date-time and date-only values. Values without
// a zone are read in the business location.
func ParseFlexible(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	for _, layout := range []string{DateTimeLayout, DateLayout, "02/01/2006"} {
		if t, err := time.ParseInLocation(layout, value, Location); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time %q", value)
}

// OrNow returns *t when set, otherwise the current time.
func OrNow(t *time.Time, now func() time.Time) time.Time {
	if t != nil && !t.IsZero() {
		return *t
	}
	return now()
}
