package routines

import (
	"fmt"

	"github.com/julianstephens/routineflow/internal/cli"
	"github.com/julianstephens/routineflow/internal/models"
	"github.com/julianstephens/routineflow/internal/templates"
)

type RoutineTemplateListCmd struct{}

func (c *RoutineTemplateListCmd) Run(ctx *cli.Context) error {
	groups := templates.ByTimeSlot()
	for _, slot := range models.TimeSlots {
		tpls := groups[slot]
		if len(tpls) == 0 {
			continue
		}
		ctx.Printf("%s:\n", slot.Label())
		for _, t := range tpls {
			ctx.Printf("  %s %s (%s) - %d min\n", t.Icon, t.Title, t.ID, t.DurationMinutes)
			ctx.Printf("      %s\n", t.Description)
		}
	}
	return nil
}

type RoutineTemplateUseCmd struct {
	ID       string `arg:"" help:"Template ID (see 'routine template list')."`
	Time     string `short:"t" help:"Scheduled time (HH:MM)."`
	Reminder bool   `help:"Enable an alarm before the scheduled time." negatable:"" default:"true"`
	Before   *int   `short:"b" help:"Minutes before the scheduled time to ring (defaults to the setting)."`
}

func (c *RoutineTemplateUseCmd) Run(ctx *cli.Context) error {
	tpl, ok := templates.Get(c.ID)
	if !ok {
		return fmt.Errorf("unknown template: %s", c.ID)
	}

	settings, err := ctx.Settings()
	if err != nil {
		return err
	}
	now, err := ctx.Now()
	if err != nil {
		return err
	}
	order, err := nextSortOrder(ctx)
	if err != nil {
		return err
	}

	opts := templates.Options{
		ScheduledTime:         c.Time,
		ReminderEnabled:       c.Reminder && c.Time != "",
		ReminderMinutesBefore: settings.DefaultReminderMinutes,
		SortOrder:             order,
		Now:                   now,
	}
	if c.Before != nil {
		opts.ReminderMinutesBefore = *c.Before
	}

	r, err := templates.Instantiate(tpl, opts)
	if err != nil {
		return err
	}
	if err := ctx.Store.AddRoutine(r); err != nil {
		return err
	}
	if err := ctx.SyncAlarms(r); err != nil {
		return fmt.Errorf("routine added but alarms were not scheduled: %w", err)
	}

	ctx.Printf("Added routine from template: %s (ID: %s)\n", r.Title, r.ID)
	return nil
}
