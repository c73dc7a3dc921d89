package models

import (
	"fmt"
	"time"
)

// HoursFor returns the open window for a weekday, or nil when the restaurant
// is closed that day. Hours must be preloaded.
func (r *Restaurant) HoursFor(weekday time.Weekday) *DayHours {
	for i := range r.Hours {
		if r.Hours[i].Weekday == int(weekday) {
			return &r.Hours[i]
		}
	}
	return nil
}

// FitsHours reports whether a time span fits inside the restaurant's open
// window on the given weekday. startMin and endMin are minutes from midnight;
// sameDay must be false when the span crosses into the next calendar day,
// which always disqualifies it.
func (r *Restaurant) FitsHours(weekday time.Weekday, startMin, endMin int, sameDay bool) bool {
	hours := r.HoursFor(weekday)
	if hours == nil {
		return false
	}
	return sameDay && startMin >= hours.OpenMinutes && endMin <= hours.CloseMinutes
}

// MinutesOfDay converts a clock time to minutes from midnight.
func MinutesOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// ParseClock parses an "HH:MM" 24-hour clock string into minutes from
// midnight.
func ParseClock(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q, expected HH:MM", s)
	}
	return MinutesOfDay(t), nil
}

// FormatClock renders minutes from midnight as "HH:MM".
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
