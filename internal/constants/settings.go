package constants

const (
	// General Settings
	SettingTimezone               = "timezone"
	SettingNotificationsEnabled   = "notifications_enabled"
	SettingDefaultReminderMinutes = "default_reminder_minutes"
	SettingWidgetAlarmLimit       = "widget_alarm_limit"

	// Default Settings Values
	DefaultTimezone             = "Local" // Use system local timezone by default
	DefaultNotificationsEnabled = true
	DefaultReminderMinutes      = 10
	DefaultWidgetAlarmLimit     = DefaultWidgetAlarms
)
