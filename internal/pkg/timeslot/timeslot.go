// Package timeslot holds the pure time arithmetic behind slot booking:
// parsing "HH:MM" clock values, half-open range overlap, business-hour
// containment (including windows that wrap past midnight), duration bounds
// and slot generation. Nothing here reads the clock; callers pass now in.
package timeslot

import (
	"errors"
	"fmt"
	"time"
)

// MinutesPerDay is the wrap boundary for cross-midnight arithmetic.
const MinutesPerDay = 24 * 60

var ErrBadClock = errors.New("clock value must be HH:MM")

// TimeOfDay is minutes since local midnight. Values >= MinutesPerDay denote
// instants on the following calendar day (normalized cross-midnight form).
type TimeOfDay int

// ParseClock parses a zero-padded "HH:MM" string.
func ParseClock(s string) (TimeOfDay, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%2d:%2d", &h, &m); err != nil || len(s) != 5 || s[2] != ':' {
		return 0, ErrBadClock
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, ErrBadClock
	}
	return TimeOfDay(h*60 + m), nil
}

func (t TimeOfDay) String() string {
	m := int(t) % MinutesPerDay
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// Range is a half-open [Start, End) interval in minutes since midnight.
// End > MinutesPerDay means the range runs past midnight.
type Range struct {
	Start TimeOfDay
	End   TimeOfDay
}

// NewRange normalizes a start/end clock pair into a Range. When end <= start
// and crossDay is set, end is pushed to the next day; otherwise the pair is
// rejected.
func NewRange(start, end TimeOfDay, crossDay bool) (Range, error) {
	if end <= start {
		if !crossDay {
			return Range{}, fmt.Errorf("end %s not after start %s", end, start)
		}
		end += MinutesPerDay
	}
	return Range{Start: start, End: end}, nil
}

// ParseRange parses two "HH:MM" strings into a normalized Range.
func ParseRange(start, end string, crossDay bool) (Range, error) {
	s, err := ParseClock(start)
	if err != nil {
		return Range{}, err
	}
	e, err := ParseClock(end)
	if err != nil {
		return Range{}, err
	}
	return NewRange(s, e, crossDay)
}

// Minutes returns the range duration.
func (r Range) Minutes() int { return int(r.End - r.Start) }

// Overlaps reports whether two half-open ranges share an instant. A touch at
// the boundary (a.End == b.Start) is not an overlap.
func Overlaps(a, b Range) bool {
	return a.Start < b.End && b.Start < a.End
}

// Hours converts business-hour boundaries into a normalized Range, pushing
// close past midnight when the window wraps (close <= open).
func Hours(open, close TimeOfDay, crossMidnight bool) Range {
	if crossMidnight || close <= open {
		close += MinutesPerDay
	}
	return Range{Start: open, End: close}
}

// NormalizeToHours fits r inside the operating window and returns the form
// that fits. For a wrapping window like 22:00-02:00 a range expressed in
// early-morning clock form (00:30-01:30) only fits shifted one day forward;
// the shifted range is what callers must keep, so that storage, overlap
// checks and start-instant math all see the same absolute minutes relative
// to the booking date's midnight.
func NormalizeToHours(r Range, hours Range) (Range, bool) {
	if r.Start >= hours.Start && r.End <= hours.End {
		return r, true
	}
	shifted := Range{Start: r.Start + MinutesPerDay, End: r.End + MinutesPerDay}
	if shifted.Start >= hours.Start && shifted.End <= hours.End {
		return shifted, true
	}
	return Range{}, false
}

// WithinBusinessHours reports whether r fits entirely inside the operating
// window, in either its own or its day-shifted form.
func WithinBusinessHours(r Range, hours Range) bool {
	_, ok := NormalizeToHours(r, hours)
	return ok
}

// DurationValid checks minMin <= len(r) <= maxMin. A maxMin of zero means
// unbounded above.
func DurationValid(r Range, minMin, maxMin int) bool {
	d := r.Minutes()
	if d < minMin {
		return false
	}
	if maxMin > 0 && d > maxMin {
		return false
	}
	return true
}

// GenerateSlots returns every candidate start time at which a slot of
// stepMin minutes fits inside the operating window. Empty when the window is
// degenerate or stepMin is not positive.
func GenerateSlots(hours Range, stepMin int) []TimeOfDay {
	if stepMin <= 0 || hours.End <= hours.Start {
		return nil
	}
	var out []TimeOfDay
	for t := hours.Start; int(t)+stepMin <= int(hours.End); t += TimeOfDay(stepMin) {
		out = append(out, t)
	}
	return out
}

// StartInstant resolves a booking date plus a start time into an absolute
// instant. date is expected at midnight in its own location.
func StartInstant(date time.Time, start TimeOfDay) time.Time {
	return date.Add(time.Duration(start) * time.Minute)
}

// IsPast reports whether a slot is unbookable because its start instant is
// at or before now.
func IsPast(date time.Time, start TimeOfDay, now time.Time) bool {
	return !StartInstant(date, start).After(now)
}
