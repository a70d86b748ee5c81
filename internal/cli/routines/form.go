package routines

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/routineflow/internal/models"
	"github.com/julianstephens/routineflow/internal/utils"
)

// FormInput holds routine fields as the form edits them.
type FormInput struct {
	Title       string
	Description string
	Category    string
	Slot        string
	Time        string
	Duration    string
	Repeat      string
	Interval    string
	Days        string
	Reminder    bool
}

// Routine converts the input into a routine without id, order or timestamps.
func (in FormInput) Routine() (models.Routine, error) {
	category, err := models.ParseCategory(in.Category)
	if err != nil {
		return models.Routine{}, err
	}
	slot, err := models.ParseTimeSlot(in.Slot)
	if err != nil {
		return models.Routine{}, err
	}

	duration, err := optionalInt(in.Duration, "duration")
	if err != nil {
		return models.Routine{}, err
	}
	interval, err := optionalInt(in.Interval, "interval")
	if err != nil {
		return models.Routine{}, err
	}
	repeat, days, interval, err := parseRepeat(in.Repeat, in.Days, interval)
	if err != nil {
		return models.Routine{}, err
	}

	scheduled := strings.TrimSpace(in.Time)
	if scheduled != "" {
		h, m, ok := utils.ParseClock(scheduled)
		if !ok {
			return models.Routine{}, fmt.Errorf("invalid time %q (expected HH:MM)", in.Time)
		}
		scheduled = utils.FormatClock(h, m)
	}

	return models.Routine{
		Title:              strings.TrimSpace(in.Title),
		Description:        strings.TrimSpace(in.Description),
		Category:           category,
		TimeSlot:           slot,
		ScheduledTime:      scheduled,
		DurationMinutes:    duration,
		RepeatType:         repeat,
		RepeatIntervalDays: interval,
		FrequencyValue:     days,
		ReminderEnabled:    in.Reminder && scheduled != "",
	}, nil
}

func optionalInt(s, name string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%s must be a non-negative number", name)
	}
	return n, nil
}

func validateOptionalPositive(name string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return nil
		}
		i, err := strconv.Atoi(s)
		if err != nil {
			return err
		}
		if i <= 0 {
			return fmt.Errorf("%s must be a positive number", name)
		}
		return nil
	}
}

// NewRoutineForm creates a form for adding or editing a routine.
func NewRoutineForm(in *FormInput) *huh.Form {
	categoryOptions := make([]huh.Option[string], 0, len(models.Categories))
	for _, c := range models.Categories {
		categoryOptions = append(categoryOptions, huh.NewOption(c.Label(), string(c)))
	}
	slotOptions := make([]huh.Option[string], 0, len(models.TimeSlots))
	for _, s := range models.TimeSlots {
		slotOptions = append(slotOptions, huh.NewOption(s.Label(), string(s)))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Value(&in.Title).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("routine title cannot be empty")
					}
					return nil
				}),
			huh.NewInput().
				Title("Description").
				Value(&in.Description),
			huh.NewSelect[string]().
				Title("Category").
				Options(categoryOptions...).
				Value(&in.Category),
			huh.NewSelect[string]().
				Title("Time slot").
				Options(slotOptions...).
				Value(&in.Slot),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Time (HH:MM)").
				Description("Leave empty for no scheduled time").
				Value(&in.Time).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return nil
					}
					if _, _, ok := utils.ParseClock(s); !ok {
						return fmt.Errorf("invalid time format, use HH:MM")
					}
					return nil
				}),
			huh.NewInput().
				Title("Duration (min)").
				Value(&in.Duration).
				Validate(validateOptionalPositive("duration")),
			huh.NewSelect[string]().
				Title("Repeat").
				Options(
					huh.NewOption("Daily", string(models.RepeatDaily)),
					huh.NewOption("Weekdays", string(models.RepeatWeekdays)),
					huh.NewOption("Weekends", string(models.RepeatWeekends)),
					huh.NewOption("Specific days", string(models.RepeatSpecificDays)),
					huh.NewOption("Every N days", string(models.RepeatInterval)),
					huh.NewOption("Once", string(models.RepeatOnce)),
				).
				Value(&in.Repeat),
			huh.NewInput().
				Title("Days").
				Description("For 'Specific days', e.g. mon,wed,fri").
				Value(&in.Days),
			huh.NewInput().
				Title("Interval (days)").
				Description("For 'Every N days'").
				Value(&in.Interval).
				Validate(validateOptionalPositive("interval")),
			huh.NewConfirm().
				Title("Alarm").
				Value(&in.Reminder),
		),
	).WithTheme(huh.ThemeDracula())
}
