package models

// Settings represents application-wide settings
type Settings struct {
	Timezone               string `json:"timezone"`                 // IANA timezone name (e.g. "Asia/Seoul", or "Local" for system timezone)
	NotificationsEnabled   bool   `json:"notifications_enabled"`    // whether routine alarms are delivered
	DefaultReminderMinutes int    `json:"default_reminder_minutes"` // reminder offset applied to new routines
	WidgetAlarmLimit       int    `json:"widget_alarm_limit"`       // max upcoming alarms shown on the widget
}
