package constants

import "time"

const (
	AppName            = "routineflow"
	DefaultKeyringUser = "database-connection"
	Version            = "v0.3.0"

	// DateFormat is the canonical day key format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the wall-clock format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// Streak / analytics constants
	StreakWindowDays     = 365
	ActiveDayThreshold   = 0.5
	WeeklyTrendDays      = 7
	MonthlyAverageDays   = 30
	MaxInsights          = 4
	StreakTierStrong     = 7
	StreakTierBuilding   = 3
	TodayRateNearlyDone  = 70
	DefaultWidgetAlarms  = 5
	MinutesPerDay        = 24 * 60
	AlarmTriggerIDPrefix = "routine_"
	AlarmDataType        = "routine_alarm"

	// Notify constants
	NotifyMaxRetries       = 3
	NotifyRetryDelay       = 100 * time.Millisecond
	NotifierLockfileName   = "routineflow-notifier.lock"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "com.julianstephens.routineflow"
	TrayAppExecutable      = "routineflow-tray"
	TriggerRegistryFile    = "triggers.json"

	// Environment variables
	EnvDB           = "ROUTINEFLOW_DB"
	EnvConfigDir    = "ROUTINEFLOW_CONFIG_DIR"
	EnvTimezone     = "ROUTINEFLOW_TIMEZONE"
	EnvDebug        = "ROUTINEFLOW_DEBUG"
	EnvDBConnection = "ROUTINEFLOW_DB_CONNECTION"
)
