package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/julianstephens/routineflow/internal/config"
	"github.com/julianstephens/routineflow/internal/logger"
	"github.com/julianstephens/routineflow/internal/models"
	"github.com/julianstephens/routineflow/internal/notifier"
	"github.com/julianstephens/routineflow/internal/scheduler"
	"github.com/julianstephens/routineflow/internal/storage"
	"github.com/julianstephens/routineflow/internal/tracker"
)

type Context struct {
	Store     storage.Provider
	Scheduler *scheduler.Scheduler
	Config    config.Config
	// Registry holds scheduled alarm triggers. Nil disables alarm syncing.
	Registry notifier.Registry
	Notifier notifier.Deliverer
	Out      io.Writer
}

// Stdout returns the writer commands print to.
func (c *Context) Stdout() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *Context) Printf(format string, args ...interface{}) {
	fmt.Fprintf(c.Stdout(), format, args...)
}

func (c *Context) Println(args ...interface{}) {
	fmt.Fprintln(c.Stdout(), args...)
}

// Settings returns the stored settings with defaults filled in.
func (c *Context) Settings() (models.Settings, error) {
	settings, err := c.Store.GetSettings()
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			return models.Settings{}, fmt.Errorf("failed to get settings: %w", err)
		}
		settings = models.DefaultSettings()
	}
	models.ApplyDefaultSettings(&settings)
	return settings, nil
}

// Location returns the time zone used for day keys.
func (c *Context) Location() (*time.Location, error) {
	settings, err := c.Settings()
	if err != nil {
		return nil, err
	}
	loc, err := c.Config.Location(settings)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone: %w", err)
	}
	return loc, nil
}

func (c *Context) scheduler() *scheduler.Scheduler {
	if c.Scheduler == nil {
		c.Scheduler = scheduler.New()
	}
	return c.Scheduler
}

// Now returns the current time in the configured time zone.
func (c *Context) Now() (time.Time, error) {
	loc, err := c.Location()
	if err != nil {
		return time.Time{}, err
	}
	return c.scheduler().Now().In(loc), nil
}

// Tracker returns a completion service bound to the store and clock.
func (c *Context) Tracker() (*tracker.Service, error) {
	loc, err := c.Location()
	if err != nil {
		return nil, err
	}
	svc := tracker.New(c.Store, loc)
	svc.SetClock(c.scheduler().Now)
	return svc, nil
}

// FindRoutine resolves ref as a routine id, a unique id prefix, or a
// unique case-insensitive title.
func (c *Context) FindRoutine(ref string) (models.Routine, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return models.Routine{}, errors.New("routine reference cannot be empty")
	}
	if r, err := c.Store.GetRoutine(ref); err == nil {
		return r, nil
	} else if !errors.Is(err, storage.ErrNotFound) {
		return models.Routine{}, err
	}

	routines, err := c.Store.GetAllRoutines()
	if err != nil {
		return models.Routine{}, fmt.Errorf("failed to get routines: %w", err)
	}

	var matches []models.Routine
	for _, r := range routines {
		if strings.HasPrefix(r.ID, ref) || strings.EqualFold(r.Title, ref) {
			matches = append(matches, r)
		}
	}
	switch len(matches) {
	case 0:
		return models.Routine{}, fmt.Errorf("no routine matches %q: %w", ref, storage.ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return models.Routine{}, fmt.Errorf("%q matches %d routines, use the full ID", ref, len(matches))
	}
}

// SyncAlarms replans the triggers of the given routines after they changed.
// Deleted routines are passed with IsActive false so their triggers go away.
func (c *Context) SyncAlarms(routines ...models.Routine) error {
	if c.Registry == nil {
		return nil
	}
	settings, err := c.Settings()
	if err != nil {
		return err
	}
	if !settings.NotificationsEnabled {
		for i := range routines {
			routines[i].ReminderEnabled = false
		}
	}

	bg := context.Background()
	existing, err := notifier.IDs(bg, c.Registry)
	if err != nil {
		return fmt.Errorf("failed to list scheduled alarms: %w", err)
	}
	now, err := c.Now()
	if err != nil {
		return err
	}
	plan := scheduler.PlanAlarms(routines, existing, now)
	if plan.Empty() {
		return nil
	}
	res, err := notifier.Apply(bg, c.Registry, plan)
	if err != nil {
		return err
	}
	logger.Debug("Synced routine alarms", "routines", len(routines), "cancelled", res.Cancelled, "created", res.Created)
	return nil
}

// ParseWeekdays normalizes a comma-separated weekday list into the stored
// code form, e.g. "Monday, wed" becomes "mon,wed".
func ParseWeekdays(s string) (string, error) {
	dayMap := map[string]models.Weekday{
		"sun":       models.Sunday,
		"sunday":    models.Sunday,
		"mon":       models.Monday,
		"monday":    models.Monday,
		"tue":       models.Tuesday,
		"tuesday":   models.Tuesday,
		"wed":       models.Wednesday,
		"wednesday": models.Wednesday,
		"thu":       models.Thursday,
		"thursday":  models.Thursday,
		"fri":       models.Friday,
		"friday":    models.Friday,
		"sat":       models.Saturday,
		"saturday":  models.Saturday,
	}

	seen := make(map[models.Weekday]bool)
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(strings.ToLower(part))
		if part == "" {
			continue
		}
		wd, ok := dayMap[part]
		if !ok {
			return "", fmt.Errorf("invalid weekday: %s", part)
		}
		seen[wd] = true
	}
	if len(seen) == 0 {
		return "", errors.New("at least one weekday is required")
	}

	var codes []string
	for _, wd := range models.Week {
		if seen[wd] {
			codes = append(codes, string(wd))
		}
	}
	return strings.Join(codes, ","), nil
}
