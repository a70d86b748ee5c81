package scheduler

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/routineflow/internal/constants"
	"github.com/julianstephens/routineflow/internal/models"
	"github.com/julianstephens/routineflow/internal/utils"
)

// AlarmTitle is the notification title shared by every routine alarm.
const AlarmTitle = "Time for your routine!"

type Kind string

const (
	KindDaily    Kind = "daily"
	KindWeekly   Kind = "weekly"
	KindInterval Kind = "interval"
	KindOnce     Kind = "once"
)

// AlarmSpec describes one OS-level trigger for a routine.
type AlarmSpec struct {
	ID        string         `json:"id"`
	RoutineID string         `json:"routine_id"`
	Kind      Kind           `json:"kind"`
	Hour      int            `json:"hour"`
	Minute    int            `json:"minute"`
	Time      string         `json:"time"`
	Weekday   models.Weekday `json:"weekday,omitempty"`

	IntervalDays int        `json:"interval_days,omitempty"`
	AnchorDate   string     `json:"anchor_date,omitempty"`
	FireAt       *time.Time `json:"fire_at,omitempty"`

	Title string            `json:"title"`
	Body  string            `json:"body"`
	Data  map[string]string `json:"data"`
}

// Eligible reports whether a routine should have alarms at all.
func Eligible(r models.Routine) bool {
	if !r.IsActive || !r.ReminderEnabled {
		return false
	}
	if _, _, ok := utils.ParseClock(r.ScheduledTime); !ok {
		return false
	}
	switch r.RepeatType {
	case models.RepeatDaily, models.RepeatWeekdays, models.RepeatWeekends, models.RepeatOnce:
		return true
	case models.RepeatInterval:
		return r.RepeatIntervalDays > 0
	case models.RepeatSpecificDays:
		return len(utils.ParseWeekdayCodes(r.FrequencyValue)) > 0
	default:
		return false
	}
}

// AlarmTime subtracts minutesBefore from scheduledTime, wrapping around
// midnight. The day rollover itself is not tracked.
func AlarmTime(scheduledTime string, minutesBefore int) (string, bool) {
	h, m, ok := alarmClock(scheduledTime, minutesBefore)
	if !ok {
		return "", false
	}
	return utils.FormatClock(h, m), true
}

func alarmClock(scheduledTime string, minutesBefore int) (int, int, bool) {
	h, m, ok := utils.ParseClock(scheduledTime)
	if !ok {
		return 0, 0, false
	}
	total := ((h*60+m-minutesBefore)%constants.MinutesPerDay + constants.MinutesPerDay) % constants.MinutesPerDay
	return total / 60, total % 60, true
}

// RoutinePrefix returns the id prefix shared by every trigger of a routine.
func RoutinePrefix(routineID string) string {
	return constants.AlarmTriggerIDPrefix + routineID + "_"
}

// TriggerID builds a trigger identifier from a routine id and a suffix.
func TriggerID(routineID, suffix string) string {
	return RoutinePrefix(routineID) + suffix
}

// IsManaged reports whether a trigger id belongs to a routine alarm.
func IsManaged(id string) bool {
	return strings.HasPrefix(id, constants.AlarmTriggerIDPrefix)
}

func alarmBody(r models.Routine) string {
	label := strings.TrimSpace(r.Icon + " " + r.Title)
	if r.DurationMinutes > 0 {
		return fmt.Sprintf("%s (%d min)", label, r.DurationMinutes)
	}
	return label
}

// Expand maps a routine to the triggers that realize its repeat rule.
// Ineligible routines expand to nothing.
func Expand(r models.Routine, now time.Time) []AlarmSpec {
	if !Eligible(r) {
		return nil
	}
	h, m, _ := alarmClock(r.ScheduledTime, r.ReminderMinutesBefore)

	base := AlarmSpec{
		RoutineID: r.ID,
		Hour:      h,
		Minute:    m,
		Time:      utils.FormatClock(h, m),
		Title:     AlarmTitle,
		Body:      alarmBody(r),
		Data: map[string]string{
			"routineId": r.ID,
			"type":      constants.AlarmDataType,
		},
	}

	switch r.RepeatType {
	case models.RepeatDaily:
		spec := base
		spec.ID = TriggerID(r.ID, string(KindDaily))
		spec.Kind = KindDaily
		return []AlarmSpec{spec}

	case models.RepeatWeekdays, models.RepeatWeekends, models.RepeatSpecificDays:
		days := utils.RepeatWeekdays(r)
		specs := make([]AlarmSpec, 0, len(days))
		for _, wd := range days {
			spec := base
			spec.ID = TriggerID(r.ID, string(wd))
			spec.Kind = KindWeekly
			spec.Weekday = wd
			spec.Data = copyData(base.Data)
			specs = append(specs, spec)
		}
		return specs

	case models.RepeatInterval:
		loc := now.Location()
		anchor := utils.AnchorDay(r, loc)
		fire, err := nextIntervalFire(anchor, r.RepeatIntervalDays, h, m, now)
		if err != nil {
			return nil
		}
		spec := base
		spec.ID = TriggerID(r.ID, string(KindInterval))
		spec.Kind = KindInterval
		spec.IntervalDays = r.RepeatIntervalDays
		spec.AnchorDate = anchor
		spec.FireAt = &fire
		return []AlarmSpec{spec}

	case models.RepeatOnce:
		fire, err := nextOnceFire(h, m, now)
		if err != nil {
			return nil
		}
		spec := base
		spec.ID = TriggerID(r.ID, string(KindOnce))
		spec.Kind = KindOnce
		spec.FireAt = &fire
		return []AlarmSpec{spec}
	}
	return nil
}

func copyData(data map[string]string) map[string]string {
	out := make(map[string]string, len(data))
	for k, v := range data {
		out[k] = v
	}
	return out
}

// nextIntervalFire returns the first instant strictly after now that falls on
// an interval boundary counted from anchor.
func nextIntervalFire(anchor string, interval, hour, minute int, now time.Time) (time.Time, error) {
	loc := now.Location()
	today := utils.DayKey(now, loc)

	start := today
	if anchor > today {
		start = anchor
	}
	since, err := utils.DaysBetween(anchor, start)
	if err != nil {
		return time.Time{}, err
	}
	if rem := since % interval; rem != 0 {
		if start, err = utils.AddDays(start, interval-rem); err != nil {
			return time.Time{}, err
		}
	}

	fire, err := utils.CombineDayAndClock(start, hour, minute, loc)
	if err != nil {
		return time.Time{}, err
	}
	if !fire.After(now) {
		if start, err = utils.AddDays(start, interval); err != nil {
			return time.Time{}, err
		}
		return utils.CombineDayAndClock(start, hour, minute, loc)
	}
	return fire, nil
}

func nextOnceFire(hour, minute int, now time.Time) (time.Time, error) {
	loc := now.Location()
	today := utils.DayKey(now, loc)
	fire, err := utils.CombineDayAndClock(today, hour, minute, loc)
	if err != nil {
		return time.Time{}, err
	}
	if fire.After(now) {
		return fire, nil
	}
	tomorrow, err := utils.AddDays(today, 1)
	if err != nil {
		return time.Time{}, err
	}
	return utils.CombineDayAndClock(tomorrow, hour, minute, loc)
}
