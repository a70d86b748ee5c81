package storage

import (
	"fmt"
	"time"

	"github.com/julianstephens/routineflow/internal/models"
)

// RoutineColumns lists the routines table columns in scan order.
const RoutineColumns = `id, title, description, icon, color, category, time_slot,
	scheduled_time, duration_minutes, repeat_type, repeat_interval_days,
	frequency_value, reminder_enabled, reminder_minutes_before, sort_order,
	is_active, is_from_template, template_id, created_at`

// LogColumns lists the routine_logs table columns in scan order.
const LogColumns = `id, routine_id, completed_at, date_key, duration_seconds, note`

// Scanner is satisfied by *sql.Row and *sql.Rows.
type Scanner interface {
	Scan(dest ...interface{}) error
}

// FormatTime encodes an instant for storage.
func FormatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// ParseTime decodes an instant written by FormatTime.
func ParseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}

// RoutineArgs returns the column values of r in RoutineColumns order.
func RoutineArgs(r models.Routine) []interface{} {
	return []interface{}{
		r.ID, r.Title, r.Description, r.Icon, r.Color,
		string(r.Category), string(r.TimeSlot),
		r.ScheduledTime, r.DurationMinutes,
		string(r.RepeatType), r.RepeatIntervalDays, r.FrequencyValue,
		r.ReminderEnabled, r.ReminderMinutesBefore, r.SortOrder,
		r.IsActive, r.IsFromTemplate, r.TemplateID,
		FormatTime(r.CreatedAt),
	}
}

// RoutineUpdateArgs returns every column value but the id, followed by the id.
func RoutineUpdateArgs(r models.Routine) []interface{} {
	args := RoutineArgs(r)
	return append(args[1:], args[0])
}

func ScanRoutine(row Scanner) (models.Routine, error) {
	var r models.Routine
	var category, slot, repeat, createdAt string

	err := row.Scan(
		&r.ID, &r.Title, &r.Description, &r.Icon, &r.Color,
		&category, &slot,
		&r.ScheduledTime, &r.DurationMinutes,
		&repeat, &r.RepeatIntervalDays, &r.FrequencyValue,
		&r.ReminderEnabled, &r.ReminderMinutesBefore, &r.SortOrder,
		&r.IsActive, &r.IsFromTemplate, &r.TemplateID,
		&createdAt,
	)
	if err != nil {
		return models.Routine{}, err
	}

	r.Category = models.Category(category)
	r.TimeSlot = models.TimeSlot(slot)
	r.RepeatType = models.RepeatType(repeat)
	if r.CreatedAt, err = ParseTime(createdAt); err != nil {
		return models.Routine{}, fmt.Errorf("failed to parse created_at for routine %s: %w", r.ID, err)
	}
	return r, nil
}

// LogArgs returns the column values of l in LogColumns order.
func LogArgs(l models.RoutineLog) []interface{} {
	return []interface{}{
		l.ID, l.RoutineID, FormatTime(l.CompletedAt), l.DateKey, l.DurationSeconds, l.Note,
	}
}

func ScanLog(row Scanner) (models.RoutineLog, error) {
	var l models.RoutineLog
	var completedAt string

	if err := row.Scan(&l.ID, &l.RoutineID, &completedAt, &l.DateKey, &l.DurationSeconds, &l.Note); err != nil {
		return models.RoutineLog{}, err
	}

	var err error
	if l.CompletedAt, err = ParseTime(completedAt); err != nil {
		return models.RoutineLog{}, fmt.Errorf("failed to parse completed_at for log %s: %w", l.ID, err)
	}
	return l, nil
}
