package alarms

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/julianstephens/routineflow/internal/cli"
	"github.com/julianstephens/routineflow/internal/constants"
	"github.com/julianstephens/routineflow/internal/models"
	"github.com/julianstephens/routineflow/internal/notifier"
	"github.com/julianstephens/routineflow/internal/scheduler"
)

var errNoRegistry = errors.New("alarm registry is not configured")

// plan builds the full reschedule against the registry's current triggers.
// With notifications off every routine is planned without reminders, which
// leaves only cancellations.
func plan(ctx *cli.Context) (scheduler.Plan, error) {
	if ctx.Registry == nil {
		return scheduler.Plan{}, errNoRegistry
	}
	settings, err := ctx.Settings()
	if err != nil {
		return scheduler.Plan{}, err
	}
	routines, err := ctx.Store.GetAllRoutines()
	if err != nil {
		return scheduler.Plan{}, fmt.Errorf("failed to get routines: %w", err)
	}
	if !settings.NotificationsEnabled {
		routines = withoutReminders(routines)
	}
	existing, err := notifier.IDs(context.Background(), ctx.Registry)
	if err != nil {
		return scheduler.Plan{}, fmt.Errorf("failed to list scheduled alarms: %w", err)
	}
	now, err := ctx.Now()
	if err != nil {
		return scheduler.Plan{}, err
	}
	return scheduler.RescheduleAll(routines, existing, now), nil
}

func withoutReminders(routines []models.Routine) []models.Routine {
	out := make([]models.Routine, len(routines))
	for i, r := range routines {
		r.ReminderEnabled = false
		out[i] = r
	}
	return out
}

func printSpec(ctx *cli.Context, prefix string, s scheduler.AlarmSpec) {
	when := s.Time
	switch s.Kind {
	case scheduler.KindWeekly:
		when = fmt.Sprintf("%s %s", s.Weekday, s.Time)
	case scheduler.KindInterval:
		when = fmt.Sprintf("every %d days at %s from %s", s.IntervalDays, s.Time, s.AnchorDate)
	case scheduler.KindOnce:
		if s.FireAt != nil {
			when = s.FireAt.Format(constants.DateFormat + " " + constants.TimeFormat)
		}
	}
	ctx.Printf("%s%s [%s] %s - %s\n", prefix, s.ID, s.Kind, when, s.Body)
}

type AlarmsPlanCmd struct {
	JSON bool `help:"Print the plan as JSON."`
}

func (c *AlarmsPlanCmd) Run(ctx *cli.Context) error {
	p, err := plan(ctx)
	if err != nil {
		return err
	}
	if c.JSON {
		data, err := json.MarshalIndent(p, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal plan: %w", err)
		}
		ctx.Println(string(data))
		return nil
	}

	ctx.Printf("Cancel (%d):\n", len(p.ToCancel))
	for _, id := range p.ToCancel {
		ctx.Printf("  - %s\n", id)
	}
	ctx.Printf("Create (%d):\n", len(p.ToCreate))
	for _, s := range p.ToCreate {
		printSpec(ctx, "  + ", s)
	}
	return nil
}

type AlarmsSyncCmd struct{}

func (c *AlarmsSyncCmd) Run(ctx *cli.Context) error {
	p, err := plan(ctx)
	if err != nil {
		return err
	}
	res, err := notifier.Apply(context.Background(), ctx.Registry, p)
	if err != nil {
		return fmt.Errorf("failed to sync alarms: %w", err)
	}
	ctx.Printf("✓ Alarms synced: %d cancelled, %d scheduled\n", res.Cancelled, res.Created)
	return nil
}

type AlarmsListCmd struct{}

func (c *AlarmsListCmd) Run(ctx *cli.Context) error {
	if ctx.Registry == nil {
		return errNoRegistry
	}
	specs, err := ctx.Registry.List(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list scheduled alarms: %w", err)
	}
	if len(specs) == 0 {
		ctx.Println("No alarms scheduled")
		return nil
	}
	ctx.Println("Scheduled alarms:")
	for _, s := range specs {
		printSpec(ctx, "  ", s)
	}
	return nil
}

// AlarmsFireCmd delivers the alarms due this minute. It is meant to run
// from cron or a systemd timer once a minute.
type AlarmsFireCmd struct {
	DryRun bool `help:"Print due alarms instead of sending them."`
}

func (c *AlarmsFireCmd) Run(ctx *cli.Context) error {
	if ctx.Registry == nil {
		return errNoRegistry
	}
	settings, err := ctx.Settings()
	if err != nil {
		return err
	}
	if !settings.NotificationsEnabled {
		if c.DryRun {
			ctx.Println("Notifications are disabled in settings.")
		}
		return nil
	}

	now, err := ctx.Now()
	if err != nil {
		return err
	}

	if c.DryRun {
		specs, err := ctx.Registry.List(context.Background())
		if err != nil {
			return fmt.Errorf("failed to list scheduled alarms: %w", err)
		}
		due := scheduler.DueAt(specs, now)
		if len(due) == 0 {
			ctx.Println("No alarms due.")
		}
		for _, s := range due {
			ctx.Println("[DryRun] " + notifier.FormatAlarm(s))
		}
		return nil
	}

	d := ctx.Notifier
	if d == nil {
		d = notifier.New()
	}
	fired, err := notifier.Fire(context.Background(), ctx.Registry, d, now)
	if err != nil {
		return err
	}
	for _, s := range fired {
		ctx.Printf("Sent alarm %s\n", s.ID)
	}
	return nil
}
