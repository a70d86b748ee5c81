package routines

import (
	"fmt"
	"strings"

	"github.com/julianstephens/routineflow/internal/cli"
	"github.com/julianstephens/routineflow/internal/models"
	"github.com/julianstephens/routineflow/internal/utils"
)

type RoutineEditCmd struct {
	ID          string  `arg:"" help:"Routine ID, ID prefix or title."`
	Title       *string `help:"New title."`
	Description *string `help:"New description."`
	Icon        *string `help:"New emoji icon."`
	Color       *string `help:"New display color (hex)."`
	Category    *string `short:"c" help:"New category."`
	Slot        *string `short:"s" help:"New time slot."`
	Time        *string `short:"t" help:"New scheduled time (HH:MM, empty to clear)."`
	Duration    *int    `short:"d" help:"New duration in minutes."`
	Repeat      *string `short:"r" help:"New repeat type."`
	Interval    *int    `short:"i" help:"New interval in days."`
	Days        *string `short:"w" help:"New comma-separated weekdays."`
	Reminder    *bool   `help:"Enable or disable the alarm."`
	Before      *int    `short:"b" help:"Minutes before the scheduled time to ring."`
}

func (c *RoutineEditCmd) Run(ctx *cli.Context) error {
	r, err := ctx.FindRoutine(c.ID)
	if err != nil {
		return fmt.Errorf("failed to find routine %s: %w", c.ID, err)
	}

	if c.Title != nil {
		r.Title = strings.TrimSpace(*c.Title)
	}
	if c.Description != nil {
		r.Description = strings.TrimSpace(*c.Description)
	}
	if c.Icon != nil {
		r.Icon = *c.Icon
	}
	if c.Color != nil {
		r.Color = *c.Color
	}
	if c.Category != nil {
		if r.Category, err = models.ParseCategory(*c.Category); err != nil {
			return err
		}
	}
	if c.Slot != nil {
		if r.TimeSlot, err = models.ParseTimeSlot(*c.Slot); err != nil {
			return err
		}
	}
	if c.Time != nil {
		t := strings.TrimSpace(*c.Time)
		if t != "" {
			h, m, ok := utils.ParseClock(t)
			if !ok {
				return fmt.Errorf("invalid time %q (expected HH:MM)", *c.Time)
			}
			t = utils.FormatClock(h, m)
		}
		r.ScheduledTime = t
	}
	if c.Duration != nil {
		r.DurationMinutes = *c.Duration
	}
	if c.Repeat != nil || c.Interval != nil || c.Days != nil {
		repeat := string(r.RepeatType)
		if c.Repeat != nil {
			repeat = *c.Repeat
		}
		interval := r.RepeatIntervalDays
		if c.Interval != nil {
			interval = *c.Interval
		}
		days := r.FrequencyValue
		if c.Days != nil {
			days = *c.Days
		}
		r.RepeatType, r.FrequencyValue, r.RepeatIntervalDays, err = parseRepeat(repeat, days, interval)
		if err != nil {
			return err
		}
	}
	if c.Reminder != nil {
		r.ReminderEnabled = *c.Reminder
	}
	if c.Before != nil {
		r.ReminderMinutesBefore = *c.Before
	}

	if err := r.Validate(); err != nil {
		return fmt.Errorf("invalid routine: %w", err)
	}
	if err := ctx.Store.UpdateRoutine(r); err != nil {
		return fmt.Errorf("failed to update routine: %w", err)
	}
	if err := ctx.SyncAlarms(r); err != nil {
		return fmt.Errorf("routine updated but alarms were not rescheduled: %w", err)
	}

	ctx.Printf("Updated routine: %s (ID: %s)\n", r.Title, r.ID)
	return nil
}
