package models

import (
	"fmt"

	"github.com/julianstephens/routineflow/internal/constants"
)

// MapToSettings converts a map of key-value pairs to a Settings struct.
func MapToSettings(data map[string]string) (Settings, error) {
	settings := Settings{}

	for key, value := range data {
		switch key {
		case constants.SettingTimezone:
			settings.Timezone = value
		case constants.SettingNotificationsEnabled:
			settings.NotificationsEnabled = value == "true"
		case constants.SettingDefaultReminderMinutes:
			if _, err := fmt.Sscanf(value, "%d", &settings.DefaultReminderMinutes); err != nil {
				return Settings{}, fmt.Errorf("parsing default_reminder_minutes: %w", err)
			}
		case constants.SettingWidgetAlarmLimit:
			if _, err := fmt.Sscanf(value, "%d", &settings.WidgetAlarmLimit); err != nil {
				return Settings{}, fmt.Errorf("parsing widget_alarm_limit: %w", err)
			}
		}
	}
	return settings, nil
}

// SettingsToMap converts a Settings struct to a map of key-value pairs.
func SettingsToMap(settings Settings) map[string]string {
	return map[string]string{
		constants.SettingTimezone:               settings.Timezone,
		constants.SettingNotificationsEnabled:   fmt.Sprintf("%v", settings.NotificationsEnabled),
		constants.SettingDefaultReminderMinutes: fmt.Sprintf("%d", settings.DefaultReminderMinutes),
		constants.SettingWidgetAlarmLimit:       fmt.Sprintf("%d", settings.WidgetAlarmLimit),
	}
}

// DefaultSettings returns the settings written by init.
func DefaultSettings() Settings {
	return Settings{
		Timezone:               constants.DefaultTimezone,
		NotificationsEnabled:   constants.DefaultNotificationsEnabled,
		DefaultReminderMinutes: constants.DefaultReminderMinutes,
		WidgetAlarmLimit:       constants.DefaultWidgetAlarmLimit,
	}
}

// ApplyDefaultSettings applies default values to missing settings.
func ApplyDefaultSettings(settings *Settings) {
	if settings.Timezone == "" {
		settings.Timezone = constants.DefaultTimezone
	}
	if settings.WidgetAlarmLimit <= 0 {
		settings.WidgetAlarmLimit = constants.DefaultWidgetAlarmLimit
	}
	if settings.DefaultReminderMinutes < 0 {
		settings.DefaultReminderMinutes = constants.DefaultReminderMinutes
	}
}
