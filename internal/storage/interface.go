package storage

import (
	"errors"

	"github.com/julianstephens/routineflow/internal/models"
)

// ErrNotFound is returned when a routine or log does not exist.
var ErrNotFound = errors.New("not found")

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Routines
	AddRoutine(models.Routine) error
	GetRoutine(id string) (models.Routine, error)
	// GetAllRoutines returns every routine ordered by sort order, active or not.
	GetAllRoutines() ([]models.Routine, error)
	UpdateRoutine(models.Routine) error
	// DeleteRoutine removes the routine and all of its logs.
	DeleteRoutine(id string) error
	// ReorderRoutines assigns sort orders following the position of each id.
	ReorderRoutines(ids []string) error

	// Logs
	// AddLog inserts a completion unless one already exists for the same
	// routine and day. created reports whether a row was written.
	AddLog(models.RoutineLog) (created bool, err error)
	GetLog(routineID, dateKey string) (models.RoutineLog, error)
	// DeleteLog removes the completion for a routine and day. removed is
	// false when there was nothing to remove.
	DeleteLog(routineID, dateKey string) (removed bool, err error)
	GetAllLogs() ([]models.RoutineLog, error)
	// GetLogsInRange returns logs with startDay <= date_key <= endDay.
	GetLogsInRange(startDay, endDay string) ([]models.RoutineLog, error)

	// Utils
	GetConfigPath() string
}
