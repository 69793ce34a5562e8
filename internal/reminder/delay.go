// Package reminder turns reminder times into one-shot notification jobs.
package reminder

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata" // embedded zone database
)

// DefaultTimezone is the zone of reminders created without one.
const DefaultTimezone = "UTC"

var (
	// ErrInvalidTime is returned for times not of the form "H:MM AM|PM".
	ErrInvalidTime = errors.New("invalid reminder time")
	// ErrInvalidTimezone is returned for names that are not IANA time zones.
	ErrInvalidTimezone = errors.New("invalid reminder timezone")
)

// digits reports whether s is between minLen and maxLen ASCII digits long.
func digits(s string, minLen, maxLen int) bool {
	if len(s) < minLen || len(s) > maxLen {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// ParseClock converts "H:MM AM|PM" into a 24-hour hour and a minute.
// 12 AM is hour 0 and 12 PM is hour 12.
func ParseClock(s string) (hour, minute int, err error) {
	hm := strings.Split(strings.TrimSpace(s), ":")
	if len(hm) != 2 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}

	mm := strings.Split(hm[1], " ")
	if len(mm) != 2 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}

	if !digits(hm[0], 1, 2) || !digits(mm[0], 2, 2) {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}

	hour, err = strconv.Atoi(hm[0])
	if err != nil || hour < 1 || hour > 12 {
		return 0, 0, fmt.Errorf("%w: hour in %q", ErrInvalidTime, s)
	}
	minute, err = strconv.Atoi(mm[0])
	if err != nil || minute > 59 {
		return 0, 0, fmt.Errorf("%w: minute in %q", ErrInvalidTime, s)
	}

	switch strings.ToUpper(mm[1]) {
	case "AM":
		if hour == 12 {
			hour = 0
		}
	case "PM":
		if hour != 12 {
			hour += 12
		}
	default:
		return 0, 0, fmt.Errorf("%w: meridiem in %q", ErrInvalidTime, s)
	}

	return hour, minute, nil
}

// CalculateDelay returns how long after now the time s next occurs. When today's
// occurrence is not after now it rolls forward exactly 24 hours.
func CalculateDelay(s string, now time.Time) (time.Duration, error) {
	hour, minute, err := ParseClock(s)
	if err != nil {
		return 0, err
	}

	at := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if !at.After(now) {
		at = at.Add(24 * time.Hour)
	}

	return at.Sub(now), nil
}

// LoadTimezone resolves an IANA zone name such as "Europe/Berlin". An empty name
// means DefaultTimezone. "Local" is rejected since it names the server's zone.
func LoadTimezone(name string) (*time.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultTimezone
	}
	if name == "Local" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTimezone, name)
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTimezone, name)
	}
	return loc, nil
}
