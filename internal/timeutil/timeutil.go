// Package timeutil provides pure temporal arithmetic for countdowns.
// All functions are deterministic given their inputs: "now" is always an
// explicit parameter, never read from a global clock.
package timeutil

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidTimeFormat reports a malformed HH:MM clock string or an
// out-of-range day-of-week value.
var ErrInvalidTimeFormat = errors.New("invalid time format")

// Parts is a duration decomposed into calendar display units.
type Parts struct {
	Days    int
	Hours   int
	Minutes int
	Seconds int
}

// ParseClock parses a strict 24-hour "HH:MM" string. Both fields must be
// zero-padded to two digits, 00<=HH<=23 and 00<=MM<=59.
func ParseClock(hhmm string) (hour, minute int, err error) {
	if len(hhmm) != 5 || hhmm[2] != ':' {
		return 0, 0, fmt.Errorf("%w: %q is not HH:MM", ErrInvalidTimeFormat, hhmm)
	}
	for i, c := range hhmm {
		if i == 2 {
			continue
		}
		if c < '0' || c > '9' {
			return 0, 0, fmt.Errorf("%w: %q is not HH:MM", ErrInvalidTimeFormat, hhmm)
		}
	}
	hour = int(hhmm[0]-'0')*10 + int(hhmm[1]-'0')
	minute = int(hhmm[3]-'0')*10 + int(hhmm[4]-'0')
	if hour > 23 {
		return 0, 0, fmt.Errorf("%w: hour %d out of range", ErrInvalidTimeFormat, hour)
	}
	if minute > 59 {
		return 0, 0, fmt.Errorf("%w: minute %d out of range", ErrInvalidTimeFormat, minute)
	}
	return hour, minute, nil
}

// UntilNextUTCTime returns the duration from now until the next strictly
// future UTC occurrence of the given "HH:MM" clock time. An exact match
// rolls forward a full day, so the result is always positive and at most
// 24 hours.
func UntilNextUTCTime(hhmm string, now time.Time) (time.Duration, error) {
	hour, minute, err := ParseClock(hhmm)
	if err != nil {
		return 0, err
	}
	u := now.UTC()
	target := time.Date(u.Year(), u.Month(), u.Day(), hour, minute, 0, 0, time.UTC)
	diff := target.Sub(now)
	if diff <= 0 {
		diff += 24 * time.Hour
	}
	return diff, nil
}

// UntilNextUTCWeekday returns the duration from now until the next strictly
// future occurrence of the given UTC weekday (0=Sunday..6=Saturday) at the
// given "HH:MM" UTC clock time. The same exact-match law as UntilNextUTCTime
// applies: a target equal to now rolls forward seven days.
func UntilNextUTCWeekday(dayOfWeek int, hhmm string, now time.Time) (time.Duration, error) {
	if dayOfWeek < 0 || dayOfWeek > 6 {
		return 0, fmt.Errorf("%w: day of week %d out of range", ErrInvalidTimeFormat, dayOfWeek)
	}
	hour, minute, err := ParseClock(hhmm)
	if err != nil {
		return 0, err
	}
	u := now.UTC()
	daysAhead := (dayOfWeek - int(u.Weekday()) + 7) % 7
	target := time.Date(u.Year(), u.Month(), u.Day()+daysAhead, hour, minute, 0, 0, time.UTC)
	diff := target.Sub(now)
	if diff <= 0 {
		diff += 7 * 24 * time.Hour
	}
	return diff, nil
}

// Clamp0 returns d, or zero when d is negative.
func Clamp0(d time.Duration) time.Duration {
	if d < 0 {
		return 0
	}
	return d
}

// Split decomposes a duration into whole days, hours, minutes and seconds
// using floor division. Negative input is clamped to zero first, so the
// result is always non-negative.
func Split(d time.Duration) Parts {
	total := int(Clamp0(d) / time.Second)
	return Parts{
		Days:    total / 86400,
		Hours:   (total % 86400) / 3600,
		Minutes: (total % 3600) / 60,
		Seconds: total % 60,
	}
}

// Pad2 formats n as a two-digit decimal string for countdown digits.
func Pad2(n int) string {
	return fmt.Sprintf("%02d", n)
}
