package routines

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/julianstephens/routineflow/internal/cli"
	"github.com/julianstephens/routineflow/internal/models"
)

type RoutineAddCmd struct {
	Title       string `arg:"" optional:"" help:"Routine title."`
	Description string `help:"Optional description."`
	Icon        string `help:"Emoji icon." default:"✅"`
	Color       string `help:"Display color (hex)." default:"#66BB6A"`
	Category    string `short:"c" help:"Category (exercise|sleep|meditation|diet|water|skincare|journal|custom)." default:"custom"`
	Slot        string `short:"s" help:"Time slot (morning|afternoon|evening|night)." default:"morning"`
	Time        string `short:"t" help:"Scheduled time (HH:MM)."`
	Duration    int    `short:"d" help:"Duration in minutes."`
	Repeat      string `short:"r" help:"Repeat type (once|daily|weekdays|weekends|specific_days|interval)." default:"daily"`
	Interval    int    `short:"i" help:"Interval in days for interval repeat."`
	Days        string `short:"w" help:"Comma-separated weekdays for specific_days repeat."`
	Reminder    bool   `help:"Enable an alarm before the scheduled time." negatable:"" default:"true"`
	Before      *int   `short:"b" help:"Minutes before the scheduled time to ring (defaults to the setting)."`
	Interactive bool   `short:"I" help:"Fill in the routine with an interactive form."`
}

func (c *RoutineAddCmd) Validate() error {
	if !c.Interactive && strings.TrimSpace(c.Title) == "" {
		return fmt.Errorf("a title is required unless --interactive is set")
	}
	if c.Duration < 0 {
		return fmt.Errorf("duration cannot be negative")
	}
	if c.Before != nil && *c.Before < 0 {
		return fmt.Errorf("--before cannot be negative")
	}
	return nil
}

func (c *RoutineAddCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Settings()
	if err != nil {
		return err
	}

	input := FormInput{
		Title:       c.Title,
		Description: c.Description,
		Category:    c.Category,
		Slot:        c.Slot,
		Time:        c.Time,
		Repeat:      c.Repeat,
		Days:        c.Days,
		Reminder:    c.Reminder,
	}
	if c.Duration > 0 {
		input.Duration = fmt.Sprintf("%d", c.Duration)
	}
	if c.Interval > 0 {
		input.Interval = fmt.Sprintf("%d", c.Interval)
	}
	if c.Interactive {
		if err := NewRoutineForm(&input).Run(); err != nil {
			return fmt.Errorf("form cancelled: %w", err)
		}
	}

	r, err := input.Routine()
	if err != nil {
		return err
	}
	r.ID = uuid.New().String()
	r.Icon = c.Icon
	r.Color = c.Color
	r.IsActive = true
	r.ReminderMinutesBefore = settings.DefaultReminderMinutes
	if c.Before != nil {
		r.ReminderMinutesBefore = *c.Before
	}

	now, err := ctx.Now()
	if err != nil {
		return err
	}
	r.CreatedAt = now

	order, err := nextSortOrder(ctx)
	if err != nil {
		return err
	}
	r.SortOrder = order

	if err := r.Validate(); err != nil {
		return fmt.Errorf("invalid routine: %w", err)
	}
	if err := ctx.Store.AddRoutine(r); err != nil {
		return err
	}
	if err := ctx.SyncAlarms(r); err != nil {
		return fmt.Errorf("routine added but alarms were not scheduled: %w", err)
	}

	ctx.Printf("Added routine: %s (ID: %s)\n", r.Title, r.ID)
	return nil
}

// nextSortOrder places a new routine after every existing one.
func nextSortOrder(ctx *cli.Context) (int, error) {
	routines, err := ctx.Store.GetAllRoutines()
	if err != nil {
		return 0, fmt.Errorf("failed to get routines: %w", err)
	}
	max := -1
	for _, r := range routines {
		if r.SortOrder > max {
			max = r.SortOrder
		}
	}
	return max + 1, nil
}

func parseRepeat(repeat, days string, interval int) (models.RepeatType, string, int, error) {
	rt, err := models.ParseRepeatType(repeat)
	if err != nil {
		return "", "", 0, err
	}
	switch rt {
	case models.RepeatSpecificDays:
		codes, err := cli.ParseWeekdays(days)
		if err != nil {
			return "", "", 0, err
		}
		return rt, codes, 0, nil
	case models.RepeatInterval:
		if interval < 1 {
			return "", "", 0, fmt.Errorf("interval must be at least 1 for interval repeat")
		}
		return rt, "", interval, nil
	default:
		return rt, "", 0, nil
	}
}
