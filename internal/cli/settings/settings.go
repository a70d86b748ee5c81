package settings

import (
	"fmt"

	"github.com/julianstephens/routineflow/internal/cli"
	"github.com/julianstephens/routineflow/internal/utils"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	Timezone               *string `help:"IANA timezone used for day boundaries (or 'Local')."`
	NotificationsEnabled   *bool   `help:"Enable or disable routine alarms."`
	DefaultReminderMinutes *int    `help:"Default minutes before a routine for new alarms."`
	WidgetAlarmLimit       *int    `help:"Maximum upcoming alarms shown on the widget."`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Settings()
	if err != nil {
		return err
	}

	if c.List {
		ctx.Println("Current Settings:")
		ctx.Printf("  Timezone:              %s\n", settings.Timezone)
		ctx.Printf("  Widget Alarm Limit:    %d\n", settings.WidgetAlarmLimit)
		ctx.Println("\nNotification Settings:")
		ctx.Printf("  Notifications Enabled: %v\n", settings.NotificationsEnabled)
		ctx.Printf("  Default Reminder:      %d min\n", settings.DefaultReminderMinutes)
		return nil
	}

	updated := false
	notificationsChanged := false
	if c.Timezone != nil {
		if !utils.ValidateTimezone(*c.Timezone) {
			return fmt.Errorf("invalid timezone: %s", *c.Timezone)
		}
		settings.Timezone = *c.Timezone
		updated = true
	}
	if c.NotificationsEnabled != nil {
		notificationsChanged = settings.NotificationsEnabled != *c.NotificationsEnabled
		settings.NotificationsEnabled = *c.NotificationsEnabled
		updated = true
	}
	if c.DefaultReminderMinutes != nil {
		if *c.DefaultReminderMinutes < 0 {
			return fmt.Errorf("default reminder minutes cannot be negative")
		}
		settings.DefaultReminderMinutes = *c.DefaultReminderMinutes
		updated = true
	}
	if c.WidgetAlarmLimit != nil {
		if *c.WidgetAlarmLimit < 1 {
			return fmt.Errorf("widget alarm limit must be at least 1")
		}
		settings.WidgetAlarmLimit = *c.WidgetAlarmLimit
		updated = true
	}

	if !updated {
		ctx.Println("No changes specified. Use --list to view settings or flags to update them.")
		return nil
	}

	if err := ctx.Store.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	ctx.Println("Settings updated successfully.")

	if notificationsChanged {
		routines, err := ctx.Store.GetAllRoutines()
		if err != nil {
			return fmt.Errorf("failed to get routines: %w", err)
		}
		if err := ctx.SyncAlarms(routines...); err != nil {
			return fmt.Errorf("settings saved but alarms were not resynced: %w", err)
		}
	}
	return nil
}
