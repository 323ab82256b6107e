package booking

import (
	"time"
)

// Tours must start and finish within the operating window, per calendar day
// of the start time in the operator's zone.
const (
	openHour  = 9
	closeHour = 19
)

// ParseStartTime parses an ISO start time, forcing the operator zone when the
// value carries no offset. Unparseable values fail closed.
func ParseStartTime(iso, timezone string) (time.Time, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return time.Time{}, err
	}
	if t, err := time.Parse(time.RFC3339, iso); err == nil {
		return t.In(loc), nil
	}
	for _, layout := range []string{"2006-01-02T15:04:05", "2006-01-02T15:04", "2006-01-02 15:04"} {
		if t, err := time.ParseInLocation(layout, iso, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, NewInvalidTimeError()
}

// ValidateWindow checks that a tour starting at start and running for
// durationMin minutes both begins and ends inside the operating window.
// A start exactly at closing is rejected for any positive duration; ending
// exactly at closing is fine.
func ValidateWindow(start time.Time, durationMin int) error {
	if durationMin <= 0 {
		return NewInvalidDurationError("duration must be a positive number of minutes")
	}
	open := time.Date(start.Year(), start.Month(), start.Day(), openHour, 0, 0, 0, start.Location())
	closing := time.Date(start.Year(), start.Month(), start.Day(), closeHour, 0, 0, 0, start.Location())
	if start.Before(open) || start.After(closing) {
		return NewOutOfHoursError()
	}
	end := start.Add(time.Duration(durationMin) * time.Minute)
	if end.After(closing) {
		return NewOutOfHoursError()
	}
	return nil
}
