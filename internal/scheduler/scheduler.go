// Package scheduler turns routine repeat rules into alarm trigger plans.
//
// Everything here is a pure function of its inputs. Applying a plan against
// the OS notification collaborator is the notifier package's job.
package scheduler

import (
	"strings"
	"time"

	"github.com/julianstephens/routineflow/internal/models"
	"github.com/julianstephens/routineflow/internal/utils"
)

// Plan is the set of trigger changes needed to bring the collaborator in
// line with the routines. Cancellations are applied before creations.
type Plan struct {
	ToCancel []string    `json:"to_cancel"`
	ToCreate []AlarmSpec `json:"to_create"`
}

// Empty reports whether the plan has nothing to do.
func (p Plan) Empty() bool {
	return len(p.ToCancel) == 0 && len(p.ToCreate) == 0
}

// PlanAlarms plans the triggers for the given (edited) routines. Every
// existing trigger of each routine is cancelled and its current specs are
// created again, so disabling a reminder leaves no trigger behind.
func PlanAlarms(routines []models.Routine, existingIDs []string, now time.Time) Plan {
	plan := Plan{ToCancel: []string{}, ToCreate: []AlarmSpec{}}
	cancelled := make(map[string]bool)

	for _, r := range routines {
		prefix := RoutinePrefix(r.ID)
		for _, id := range existingIDs {
			if strings.HasPrefix(id, prefix) && !cancelled[id] {
				cancelled[id] = true
				plan.ToCancel = append(plan.ToCancel, id)
			}
		}
		plan.ToCreate = append(plan.ToCreate, Expand(r, now)...)
	}
	return plan
}

// RescheduleAll cancels every managed trigger and plans every eligible
// routine from scratch. Applying it twice gives the same end state.
func RescheduleAll(routines []models.Routine, existingIDs []string, now time.Time) Plan {
	plan := Plan{ToCancel: []string{}, ToCreate: []AlarmSpec{}}
	seen := make(map[string]bool)

	for _, id := range existingIDs {
		if IsManaged(id) && !seen[id] {
			seen[id] = true
			plan.ToCancel = append(plan.ToCancel, id)
		}
	}
	for _, r := range routines {
		plan.ToCreate = append(plan.ToCreate, Expand(r, now)...)
	}
	return plan
}

// DueAt returns the alarm specs whose trigger fires during now's minute.
func DueAt(specs []AlarmSpec, now time.Time) []AlarmSpec {
	var due []AlarmSpec
	minute := now.Truncate(time.Minute)
	clockMatches := func(s AlarmSpec) bool {
		return s.Hour == now.Hour() && s.Minute == now.Minute()
	}

	for _, s := range specs {
		switch s.Kind {
		case KindDaily:
			if clockMatches(s) {
				due = append(due, s)
			}
		case KindWeekly:
			if clockMatches(s) && s.Weekday == utils.WeekdayCode(now) {
				due = append(due, s)
			}
		case KindInterval:
			if !clockMatches(s) || s.IntervalDays < 1 {
				continue
			}
			since, err := utils.DaysBetween(s.AnchorDate, utils.DayKey(now, now.Location()))
			if err == nil && since >= 0 && since%s.IntervalDays == 0 {
				due = append(due, s)
			}
		case KindOnce:
			if s.FireAt != nil && s.FireAt.Truncate(time.Minute).Equal(minute) {
				due = append(due, s)
			}
		}
	}
	return due
}

// Scheduler carries the clock callers read "now" from.
type Scheduler struct {
	now func() time.Time
}

func New() *Scheduler {
	return &Scheduler{now: time.Now}
}

// NewWithClock returns a Scheduler that reads the current time from now.
func NewWithClock(now func() time.Time) *Scheduler {
	return &Scheduler{now: now}
}

// Now returns the scheduler's current time.
func (s *Scheduler) Now() time.Time {
	return s.now()
}
