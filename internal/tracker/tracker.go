// Package tracker owns the completion path: marking routines done or undone
// for a day on top of a storage provider.
package tracker

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/routineflow/internal/logger"
	"github.com/julianstephens/routineflow/internal/models"
	"github.com/julianstephens/routineflow/internal/storage"
	"github.com/julianstephens/routineflow/internal/utils"
)

type Action string

const (
	ActionComplete   Action = "complete"
	ActionUncomplete Action = "uncomplete"
)

// Result describes what a completion call did.
type Result struct {
	RoutineID string `json:"routine_id"`
	DateKey   string `json:"date_key"`
	Action    Action `json:"action"`
	// Changed is false when the routine was already in the requested state.
	Changed bool `json:"changed"`
}

// CompleteOptions carries the optional details of a completion.
type CompleteOptions struct {
	DateKey         string
	DurationSeconds int
	Note            string
}

type Service struct {
	mu    sync.Mutex
	store storage.Provider
	loc   *time.Location
	now   func() time.Time
}

// New returns a Service that resolves "today" in loc. A nil loc uses the
// local timezone.
func New(store storage.Provider, loc *time.Location) *Service {
	if loc == nil {
		loc = time.Local
	}
	return &Service{store: store, loc: loc, now: time.Now}
}

// SetClock replaces the time source.
func (s *Service) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// Now returns the current time in the service's timezone.
func (s *Service) Now() time.Time {
	return s.now().In(s.loc)
}

// Today returns the current day key in the service's timezone.
func (s *Service) Today() string {
	return utils.DayKey(s.now(), s.loc)
}

func (s *Service) resolveDay(dateKey string) (string, error) {
	if dateKey == "" {
		return s.Today(), nil
	}
	if _, err := utils.ParseDayKey(dateKey); err != nil {
		return "", fmt.Errorf("invalid date %q: %w", dateKey, err)
	}
	return dateKey, nil
}

// Complete records a completion for the routine. Completing a routine that
// is already done for the day is not an error; Changed reports false.
func (s *Service) Complete(routineID string, opts CompleteOptions) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.complete(routineID, opts)
}

func (s *Service) complete(routineID string, opts CompleteOptions) (Result, error) {
	day, err := s.resolveDay(opts.DateKey)
	if err != nil {
		return Result{}, err
	}
	result := Result{RoutineID: routineID, DateKey: day, Action: ActionComplete}

	if _, err := s.store.GetRoutine(routineID); err != nil {
		return Result{}, err
	}

	created, err := s.store.AddLog(models.RoutineLog{
		ID:              uuid.NewString(),
		RoutineID:       routineID,
		CompletedAt:     s.now(),
		DateKey:         day,
		DurationSeconds: opts.DurationSeconds,
		Note:            opts.Note,
	})
	if err != nil {
		return Result{}, err
	}

	result.Changed = created
	if created {
		logger.Info("Routine completed", "routine_id", routineID, "date", day)
	} else {
		logger.Debug("Routine already completed", "routine_id", routineID, "date", day)
	}
	return result, nil
}

// Uncomplete removes the completion for the routine on dateKey (today when
// empty).
func (s *Service) Uncomplete(routineID, dateKey string) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.uncomplete(routineID, dateKey)
}

func (s *Service) uncomplete(routineID, dateKey string) (Result, error) {
	day, err := s.resolveDay(dateKey)
	if err != nil {
		return Result{}, err
	}

	removed, err := s.store.DeleteLog(routineID, day)
	if err != nil {
		return Result{}, err
	}
	if removed {
		logger.Info("Routine uncompleted", "routine_id", routineID, "date", day)
	}
	return Result{RoutineID: routineID, DateKey: day, Action: ActionUncomplete, Changed: removed}, nil
}

// Toggle flips today's completion state of the routine. It backs the
// widget's quick action.
func (s *Service) Toggle(routineID string) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	day := s.Today()
	_, err := s.store.GetLog(routineID, day)
	switch {
	case err == nil:
		return s.uncomplete(routineID, day)
	case errors.Is(err, storage.ErrNotFound):
		return s.complete(routineID, CompleteOptions{DateKey: day})
	default:
		return Result{}, err
	}
}

// Snapshot reads every routine and log for the engine to compute over.
func (s *Service) Snapshot() ([]models.Routine, []models.RoutineLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	routines, err := s.store.GetAllRoutines()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load routines: %w", err)
	}
	logs, err := s.store.GetAllLogs()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load logs: %w", err)
	}
	return routines, logs, nil
}
