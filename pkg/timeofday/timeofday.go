package timeofday

import (
	"fmt"
	"time"
)

const (
	MinutesPerDay = 24 * 60
	SlotMinutes   = 15
)

// TimeOfDay is a minute offset from midnight. Values at or beyond
// MinutesPerDay represent times that run past midnight into the next day;
// String wraps them back onto the 24-hour clock for persistence.
type TimeOfDay int

// Parse reads a zero-padded 24-hour "HH:MM" string.
func Parse(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("invalid time of day %q: %w", s, err)
	}
	return TimeOfDay(t.Hour()*60 + t.Minute()), nil
}

func (t TimeOfDay) String() string {
	m := int(t) % MinutesPerDay
	if m < 0 {
		m += MinutesPerDay
	}
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// Add returns the time of day shifted by the given number of minutes.
// The result is not wrapped, so callers can detect midnight crossings.
func (t TimeOfDay) Add(minutes int) TimeOfDay {
	return t + TimeOfDay(minutes)
}

// Aligned reports whether the time sits on the quarter-hour lattice.
func (t TimeOfDay) Aligned() bool {
	return int(t)%SlotMinutes == 0
}

// Minutes returns the raw minute offset.
func (t TimeOfDay) Minutes() int {
	return int(t)
}
