package utils

import (
	"strings"
	"time"

	"github.com/julianstephens/routineflow/internal/models"
)

// ParseWeekdayCodes parses a comma-separated list of weekday codes.
// Unknown tokens are skipped; the result is de-duplicated and in
// Monday-first order.
func ParseWeekdayCodes(s string) []models.Weekday {
	seen := make(map[models.Weekday]bool)
	for _, part := range strings.Split(s, ",") {
		code := models.Weekday(strings.ToLower(strings.TrimSpace(part)))
		if code.Valid() {
			seen[code] = true
		}
	}

	var days []models.Weekday
	for _, wd := range models.Week {
		if seen[wd] {
			days = append(days, wd)
		}
	}
	return days
}

// RepeatWeekdays returns the weekday set a routine repeats on. It is nil
// for repeat types that are not weekday based.
func RepeatWeekdays(r models.Routine) []models.Weekday {
	switch r.RepeatType {
	case models.RepeatWeekdays:
		return []models.Weekday{models.Monday, models.Tuesday, models.Wednesday, models.Thursday, models.Friday}
	case models.RepeatWeekends:
		return []models.Weekday{models.Saturday, models.Sunday}
	case models.RepeatSpecificDays:
		return ParseWeekdayCodes(r.FrequencyValue)
	default:
		return nil
	}
}

// AnchorDay returns the day key interval and one-off repeats are counted
// from: the routine's creation day in loc.
func AnchorDay(r models.Routine, loc *time.Location) string {
	return DayKey(r.CreatedAt, loc)
}

// OccursOn determines if a routine is due on the given day key.
func OccursOn(r models.Routine, day string, loc *time.Location) bool {
	switch r.RepeatType {
	case models.RepeatDaily:
		return true
	case models.RepeatWeekdays, models.RepeatWeekends, models.RepeatSpecificDays:
		code, err := WeekdayCodeOfKey(day)
		if err != nil {
			return false
		}
		for _, wd := range RepeatWeekdays(r) {
			if wd == code {
				return true
			}
		}
		return false
	case models.RepeatInterval:
		interval := r.RepeatIntervalDays
		if interval < 1 {
			return false
		}
		daysSince, err := DaysBetween(AnchorDay(r, loc), day)
		if err != nil || daysSince < 0 {
			return false
		}
		// Fire on exact interval boundaries (0, interval, 2*interval, etc.)
		return daysSince%interval == 0
	case models.RepeatOnce:
		return AnchorDay(r, loc) == day
	default:
		return false
	}
}
