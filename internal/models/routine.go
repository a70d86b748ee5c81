package models

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

type Category string

const (
	CategoryExercise   Category = "exercise"
	CategorySleep      Category = "sleep"
	CategoryMeditation Category = "meditation"
	CategoryDiet       Category = "diet"
	CategoryWater      Category = "water"
	CategorySkincare   Category = "skincare"
	CategoryJournal    Category = "journal"
	CategoryCustom     Category = "custom"
)

// Categories lists every category in declaration order.
var Categories = []Category{
	CategoryExercise,
	CategorySleep,
	CategoryMeditation,
	CategoryDiet,
	CategoryWater,
	CategorySkincare,
	CategoryJournal,
	CategoryCustom,
}

func (c Category) Valid() bool {
	switch c {
	case CategoryExercise, CategorySleep, CategoryMeditation, CategoryDiet,
		CategoryWater, CategorySkincare, CategoryJournal, CategoryCustom:
		return true
	default:
		return false
	}
}

func (c Category) Label() string {
	switch c {
	case CategoryExercise:
		return "Exercise"
	case CategorySleep:
		return "Sleep"
	case CategoryMeditation:
		return "Meditation"
	case CategoryDiet:
		return "Diet"
	case CategoryWater:
		return "Hydration"
	case CategorySkincare:
		return "Skincare"
	case CategoryJournal:
		return "Journal"
	case CategoryCustom:
		return "Other"
	default:
		return string(c)
	}
}

func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("invalid category: %q", s)
	}
	return c, nil
}

type TimeSlot string

const (
	TimeSlotMorning   TimeSlot = "morning"
	TimeSlotAfternoon TimeSlot = "afternoon"
	TimeSlotEvening   TimeSlot = "evening"
	TimeSlotNight     TimeSlot = "night"
)

// TimeSlots lists every slot in daily order.
var TimeSlots = []TimeSlot{
	TimeSlotMorning,
	TimeSlotAfternoon,
	TimeSlotEvening,
	TimeSlotNight,
}

func (s TimeSlot) Valid() bool {
	switch s {
	case TimeSlotMorning, TimeSlotAfternoon, TimeSlotEvening, TimeSlotNight:
		return true
	default:
		return false
	}
}

func (s TimeSlot) Label() string {
	switch s {
	case TimeSlotMorning:
		return "Morning"
	case TimeSlotAfternoon:
		return "Afternoon"
	case TimeSlotEvening:
		return "Evening"
	case TimeSlotNight:
		return "Night"
	default:
		return string(s)
	}
}

func ParseTimeSlot(s string) (TimeSlot, error) {
	slot := TimeSlot(strings.ToLower(strings.TrimSpace(s)))
	if !slot.Valid() {
		return "", fmt.Errorf("invalid time slot: %q", s)
	}
	return slot, nil
}

type RepeatType string

const (
	RepeatOnce         RepeatType = "once"
	RepeatDaily        RepeatType = "daily"
	RepeatWeekdays     RepeatType = "weekdays"
	RepeatWeekends     RepeatType = "weekends"
	RepeatSpecificDays RepeatType = "specific_days"
	RepeatInterval     RepeatType = "interval"
)

func (r RepeatType) Valid() bool {
	switch r {
	case RepeatOnce, RepeatDaily, RepeatWeekdays, RepeatWeekends, RepeatSpecificDays, RepeatInterval:
		return true
	default:
		return false
	}
}

func ParseRepeatType(s string) (RepeatType, error) {
	r := RepeatType(strings.ToLower(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", fmt.Errorf("invalid repeat type: %q", s)
	}
	return r, nil
}

// Weekday is a three-letter lowercase weekday code as stored in FrequencyValue.
type Weekday string

const (
	Monday    Weekday = "mon"
	Tuesday   Weekday = "tue"
	Wednesday Weekday = "wed"
	Thursday  Weekday = "thu"
	Friday    Weekday = "fri"
	Saturday  Weekday = "sat"
	Sunday    Weekday = "sun"
)

// Week lists weekday codes starting on Monday.
var Week = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

func (w Weekday) Valid() bool {
	_, ok := w.index()
	return ok
}

func (w Weekday) index() (int, bool) {
	for i, d := range Week {
		if d == w {
			return i, true
		}
	}
	return -1, false
}

// TimeWeekday converts the code to a time.Weekday. Invalid codes map to Sunday.
func (w Weekday) TimeWeekday() time.Weekday {
	i, ok := w.index()
	if !ok {
		return time.Sunday
	}
	return time.Weekday((i + 1) % 7)
}

func WeekdayFromTime(wd time.Weekday) Weekday {
	return Week[(int(wd)+6)%7]
}

// Before reports whether w comes before o in a Monday-first week.
func (w Weekday) Before(o Weekday) bool {
	i, _ := w.index()
	j, _ := o.index()
	return i < j
}

var scheduledTimePattern = regexp.MustCompile(`^\d{1,2}:\d{2}$`)

// Routine is a user-defined recurring task.
type Routine struct {
	ID                    string     `json:"id"`
	Title                 string     `json:"title"`
	Description           string     `json:"description,omitempty"`
	Icon                  string     `json:"icon"`
	Color                 string     `json:"color"`
	Category              Category   `json:"category"`
	TimeSlot              TimeSlot   `json:"time_slot"`
	ScheduledTime         string     `json:"scheduled_time,omitempty"` // H:mm or HH:mm
	DurationMinutes       int        `json:"duration_minutes,omitempty"`
	RepeatType            RepeatType `json:"repeat_type"`
	RepeatIntervalDays    int        `json:"repeat_interval_days,omitempty"`
	FrequencyValue        string     `json:"frequency_value,omitempty"` // e.g. "mon,wed,fri"
	ReminderEnabled       bool       `json:"reminder_enabled"`
	ReminderMinutesBefore int        `json:"reminder_minutes_before"`
	SortOrder             int        `json:"sort_order"`
	IsActive              bool       `json:"is_active"`
	IsFromTemplate        bool       `json:"is_from_template"`
	TemplateID            string     `json:"template_id,omitempty"`
	CreatedAt             time.Time  `json:"created_at"`
}

// HasScheduledTime reports whether a wall-clock time is set.
func (r *Routine) HasScheduledTime() bool {
	return r.ScheduledTime != ""
}

// Validate checks the routine the way the input forms do. The engine never
// calls it; malformed routines are simply ineligible there.
func (r *Routine) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return fmt.Errorf("routine title cannot be empty")
	}
	if !r.Category.Valid() {
		return fmt.Errorf("invalid category: %q", r.Category)
	}
	if !r.TimeSlot.Valid() {
		return fmt.Errorf("invalid time slot: %q", r.TimeSlot)
	}
	if !r.RepeatType.Valid() {
		return fmt.Errorf("invalid repeat type: %q", r.RepeatType)
	}
	if r.ScheduledTime != "" {
		if !scheduledTimePattern.MatchString(r.ScheduledTime) {
			return fmt.Errorf("invalid scheduled time format (expected HH:MM): %q", r.ScheduledTime)
		}
		var h, m int
		if _, err := fmt.Sscanf(r.ScheduledTime, "%d:%d", &h, &m); err != nil || h > 23 || m > 59 {
			return fmt.Errorf("scheduled time out of range: %q", r.ScheduledTime)
		}
	}
	if r.DurationMinutes < 0 {
		return fmt.Errorf("duration cannot be negative")
	}
	if r.ReminderMinutesBefore < 0 {
		return fmt.Errorf("reminder offset cannot be negative")
	}
	switch r.RepeatType {
	case RepeatInterval:
		if r.RepeatIntervalDays < 1 {
			return fmt.Errorf("interval must be at least 1 for interval repeat")
		}
	case RepeatSpecificDays:
		if strings.TrimSpace(r.FrequencyValue) == "" {
			return fmt.Errorf("weekdays must be specified for specific_days repeat")
		}
		for _, part := range strings.Split(r.FrequencyValue, ",") {
			if !Weekday(strings.ToLower(strings.TrimSpace(part))).Valid() {
				return fmt.Errorf("invalid weekday code: %q", part)
			}
		}
	}
	return nil
}

// FormatRepeat returns a human-readable description of the repeat rule.
func (r *Routine) FormatRepeat() string {
	switch r.RepeatType {
	case RepeatOnce:
		return "Once"
	case RepeatDaily:
		return "Daily"
	case RepeatWeekdays:
		return "Weekdays"
	case RepeatWeekends:
		return "Weekends"
	case RepeatSpecificDays:
		return fmt.Sprintf("Weekly: %s", r.FrequencyValue)
	case RepeatInterval:
		if r.RepeatIntervalDays == 1 {
			return "Daily"
		}
		return fmt.Sprintf("Every %d days", r.RepeatIntervalDays)
	default:
		return "Unknown"
	}
}
