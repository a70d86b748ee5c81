package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/julianstephens/routineflow/internal/constants"
	"github.com/julianstephens/routineflow/internal/models"
)

var clockPattern = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)

// DayKey returns the canonical day key (YYYY-MM-DD) of t in loc.
// A nil loc uses t's own location.
func DayKey(t time.Time, loc *time.Location) string {
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format(constants.DateFormat)
}

// ParseDayKey parses a day key into midnight UTC of that calendar day.
// Day arithmetic is done in UTC so DST transitions never shift a key.
func ParseDayKey(key string) (time.Time, error) {
	t, err := time.Parse(constants.DateFormat, key)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid day key %q: %w", key, err)
	}
	return t, nil
}

// AddDays returns the key n calendar days after key (n may be negative).
func AddDays(key string, n int) (string, error) {
	t, err := ParseDayKey(key)
	if err != nil {
		return "", err
	}
	return t.AddDate(0, 0, n).Format(constants.DateFormat), nil
}

// DaysBetween returns the number of calendar days from start to end.
func DaysBetween(start, end string) (int, error) {
	s, err := ParseDayKey(start)
	if err != nil {
		return 0, err
	}
	e, err := ParseDayKey(end)
	if err != nil {
		return 0, err
	}
	return int(e.Sub(s).Hours() / 24), nil
}

// LastNDays returns n day keys ending at today, oldest first.
func LastNDays(today string, n int) ([]string, error) {
	t, err := ParseDayKey(today)
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, n)
	for i := n - 1; i >= 0; i-- {
		keys = append(keys, t.AddDate(0, 0, -i).Format(constants.DateFormat))
	}
	return keys, nil
}

// TimeSlotOf classifies an hour of day. Ranges are half-open:
// morning [5,12), afternoon [12,17), evening [17,21), night otherwise.
func TimeSlotOf(hour int) models.TimeSlot {
	switch {
	case hour >= 5 && hour < 12:
		return models.TimeSlotMorning
	case hour >= 12 && hour < 17:
		return models.TimeSlotAfternoon
	case hour >= 17 && hour < 21:
		return models.TimeSlotEvening
	default:
		return models.TimeSlotNight
	}
}

// CurrentTimeSlot returns the slot now falls into, in now's location.
func CurrentTimeSlot(now time.Time) models.TimeSlot {
	return TimeSlotOf(now.Hour())
}

// WeekdayCode returns the weekday code (mon..sun) of t.
func WeekdayCode(t time.Time) models.Weekday {
	return models.WeekdayFromTime(t.Weekday())
}

// WeekdayCodeOfKey returns the weekday code of a day key.
func WeekdayCodeOfKey(key string) (models.Weekday, error) {
	t, err := ParseDayKey(key)
	if err != nil {
		return "", err
	}
	return WeekdayCode(t), nil
}

// ParseClock parses H:mm or HH:mm. ok is false for anything else,
// including out-of-range hours and minutes.
func ParseClock(s string) (hour, minute int, ok bool) {
	m := clockPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, 0, false
	}
	hour, _ = strconv.Atoi(m[1])
	minute, _ = strconv.Atoi(m[2])
	if hour > 23 || minute > 59 {
		return 0, 0, false
	}
	return hour, minute, true
}

// FormatClock formats hour and minute as zero-padded HH:mm.
func FormatClock(hour, minute int) string {
	return fmt.Sprintf("%02d:%02d", hour, minute)
}

// ClockOf returns t's wall-clock time as HH:mm.
func ClockOf(t time.Time) string {
	return FormatClock(t.Hour(), t.Minute())
}

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// CombineDayAndClock combines a day key and an hour/minute into an instant in loc.
func CombineDayAndClock(key string, hour, minute int, loc *time.Location) (time.Time, error) {
	date, err := ParseDayKey(key)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, loc), nil
}

// ValidateTimezone checks if the timezone name is valid.
func ValidateTimezone(timezone string) bool {
	if timezone == "" || timezone == "Local" {
		return true
	}
	_, err := time.LoadLocation(timezone)
	return err == nil
}
