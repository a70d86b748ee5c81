// Package widget builds the read-only projections shown by home screen
// widgets: daily progress, the routine checklist and upcoming alarms.
package widget

import (
	"fmt"
	"sort"
	"time"

	"github.com/julianstephens/routineflow/internal/analytics"
	"github.com/julianstephens/routineflow/internal/completion"
	"github.com/julianstephens/routineflow/internal/constants"
	"github.com/julianstephens/routineflow/internal/models"
	"github.com/julianstephens/routineflow/internal/scheduler"
	"github.com/julianstephens/routineflow/internal/streak"
	"github.com/julianstephens/routineflow/internal/utils"
)

type RoutineItem struct {
	ID              string          `json:"id"`
	Title           string          `json:"title"`
	Icon            string          `json:"icon"`
	Color           string          `json:"color"`
	IsCompleted     bool            `json:"is_completed"`
	TimeSlot        models.TimeSlot `json:"time_slot"`
	ScheduledTime   string          `json:"scheduled_time,omitempty"`
	ReminderEnabled bool            `json:"reminder_enabled"`
	DurationMinutes int             `json:"duration_minutes,omitempty"`
	RepeatLabel     string          `json:"repeat_label,omitempty"`
}

type AlarmItem struct {
	RoutineID             string `json:"routine_id"`
	RoutineTitle          string `json:"routine_title"`
	RoutineIcon           string `json:"routine_icon"`
	RoutineColor          string `json:"routine_color"`
	ScheduledTime         string `json:"scheduled_time"`
	ReminderMinutesBefore int    `json:"reminder_minutes_before"`
	AlarmTime             string `json:"alarm_time"`
}

type ProgressView struct {
	CompletedCount int          `json:"completed_count"`
	TotalCount     int          `json:"total_count"`
	Percentage     int          `json:"percentage"`
	CurrentStreak  int          `json:"current_streak"`
	NextRoutine    *RoutineItem `json:"next_routine"`
	UpcomingAlarms []AlarmItem  `json:"upcoming_alarms"`
}

type ListView struct {
	Routines       []RoutineItem `json:"routines"`
	CompletedCount int           `json:"completed_count"`
	TotalCount     int           `json:"total_count"`
}

// RepeatLabel returns the short repeat badge shown next to a routine.
func RepeatLabel(r models.Routine) string {
	switch r.RepeatType {
	case models.RepeatDaily:
		return "Daily"
	case models.RepeatWeekdays:
		return "Weekdays"
	case models.RepeatWeekends:
		return "Weekends"
	case models.RepeatOnce:
		return "Once"
	case models.RepeatInterval:
		if r.RepeatIntervalDays > 0 {
			return fmt.Sprintf("Every %d days", r.RepeatIntervalDays)
		}
		return ""
	case models.RepeatSpecificDays:
		return "🔁"
	default:
		return ""
	}
}

func toItem(r models.Routine, completed bool) RoutineItem {
	return RoutineItem{
		ID:              r.ID,
		Title:           r.Title,
		Icon:            r.Icon,
		Color:           r.Color,
		IsCompleted:     completed,
		TimeSlot:        r.TimeSlot,
		ScheduledTime:   r.ScheduledTime,
		ReminderEnabled: r.ReminderEnabled,
		DurationMinutes: r.DurationMinutes,
		RepeatLabel:     RepeatLabel(r),
	}
}

// activeBySortOrder returns the active routines ordered stably by SortOrder.
func activeBySortOrder(routines []models.Routine) []models.Routine {
	active := analytics.ActiveRoutines(routines)
	sort.SliceStable(active, func(i, j int) bool {
		return active[i].SortOrder < active[j].SortOrder
	})
	return active
}

func todayKey(now time.Time) string {
	return utils.DayKey(now, now.Location())
}

// DailyProgress builds the progress card for now's day.
func DailyProgress(routines []models.Routine, logs []models.RoutineLog, now time.Time) ProgressView {
	active := activeBySortOrder(routines)
	idx := completion.Build(logs)
	today := todayKey(now)

	completed := idx.CompletedCount(today, active)
	view := ProgressView{
		CompletedCount: completed,
		TotalCount:     len(active),
		Percentage:     analytics.Rate(completed, len(active)),
		CurrentStreak:  streak.Compute(active, idx, today).Current,
		UpcomingAlarms: upcomingAlarms(active, idx, now, constants.DefaultWidgetAlarms),
	}

	slot := utils.CurrentTimeSlot(now)
	var fallback *models.Routine
	for i := range active {
		r := &active[i]
		if idx.IsCompleted(today, r.ID) {
			continue
		}
		if r.TimeSlot == slot {
			item := toItem(*r, false)
			view.NextRoutine = &item
			return view
		}
		if fallback == nil {
			fallback = r
		}
	}
	if fallback != nil {
		item := toItem(*fallback, false)
		view.NextRoutine = &item
	}
	return view
}

// UpcomingAlarms lists today's remaining alarms for incomplete routines,
// earliest first. A limit of zero or less uses the default.
func UpcomingAlarms(routines []models.Routine, logs []models.RoutineLog, now time.Time, limit int) []AlarmItem {
	return upcomingAlarms(activeBySortOrder(routines), completion.Build(logs), now, limit)
}

func upcomingAlarms(active []models.Routine, idx completion.Index, now time.Time, limit int) []AlarmItem {
	if limit <= 0 {
		limit = constants.DefaultWidgetAlarms
	}
	today := todayKey(now)
	current := utils.ClockOf(now)

	alarms := []AlarmItem{}
	for _, r := range active {
		if !scheduler.Eligible(r) || idx.IsCompleted(today, r.ID) {
			continue
		}
		at, ok := scheduler.AlarmTime(r.ScheduledTime, r.ReminderMinutesBefore)
		if !ok || at < current {
			continue
		}
		alarms = append(alarms, AlarmItem{
			RoutineID:             r.ID,
			RoutineTitle:          r.Title,
			RoutineIcon:           r.Icon,
			RoutineColor:          r.Color,
			ScheduledTime:         r.ScheduledTime,
			ReminderMinutesBefore: r.ReminderMinutesBefore,
			AlarmTime:             at,
		})
	}

	sort.SliceStable(alarms, func(i, j int) bool {
		return alarms[i].AlarmTime < alarms[j].AlarmTime
	})
	if len(alarms) > limit {
		alarms = alarms[:limit]
	}
	return alarms
}

// NextAlarm returns the earliest upcoming alarm, or nil when none is left today.
func NextAlarm(routines []models.Routine, logs []models.RoutineLog, now time.Time) *AlarmItem {
	alarms := UpcomingAlarms(routines, logs, now, 1)
	if len(alarms) == 0 {
		return nil
	}
	return &alarms[0]
}

// RoutineList builds the checklist: timed routines first by clock time,
// then untimed ones, with SortOrder breaking ties.
func RoutineList(routines []models.Routine, logs []models.RoutineLog, now time.Time) ListView {
	active := activeBySortOrder(routines)
	idx := completion.Build(logs)
	today := todayKey(now)

	minuteOf := func(r models.Routine) (int, bool) {
		h, m, ok := utils.ParseClock(r.ScheduledTime)
		return h*60 + m, ok
	}
	sort.SliceStable(active, func(i, j int) bool {
		a, aok := minuteOf(active[i])
		b, bok := minuteOf(active[j])
		switch {
		case aok && bok:
			return a < b
		case aok != bok:
			return aok
		default:
			return false
		}
	})

	view := ListView{Routines: make([]RoutineItem, 0, len(active)), TotalCount: len(active)}
	for _, r := range active {
		done := idx.IsCompleted(today, r.ID)
		if done {
			view.CompletedCount++
		}
		view.Routines = append(view.Routines, toItem(r, done))
	}
	return view
}
