package routines

import (
	"fmt"

	"github.com/julianstephens/routineflow/internal/cli"
)

type RoutineDeleteCmd struct {
	ID string `arg:"" help:"Routine ID, ID prefix or title."`
}

func (c *RoutineDeleteCmd) Run(ctx *cli.Context) error {
	r, err := ctx.FindRoutine(c.ID)
	if err != nil {
		return fmt.Errorf("failed to find routine %s: %w", c.ID, err)
	}

	if err := ctx.Store.DeleteRoutine(r.ID); err != nil {
		return fmt.Errorf("failed to delete routine: %w", err)
	}

	// an inactive copy plans no triggers, so only cancellations remain
	r.IsActive = false
	if err := ctx.SyncAlarms(r); err != nil {
		return fmt.Errorf("routine deleted but alarms were not cancelled: %w", err)
	}

	ctx.Printf("Deleted routine: %s (ID: %s)\n", r.Title, r.ID)
	return nil
}

type RoutineToggleCmd struct {
	ID string `arg:"" help:"Routine ID, ID prefix or title."`
}

func (c *RoutineToggleCmd) Run(ctx *cli.Context) error {
	r, err := ctx.FindRoutine(c.ID)
	if err != nil {
		return fmt.Errorf("failed to find routine %s: %w", c.ID, err)
	}

	r.IsActive = !r.IsActive
	if err := ctx.Store.UpdateRoutine(r); err != nil {
		return fmt.Errorf("failed to update routine: %w", err)
	}
	if err := ctx.SyncAlarms(r); err != nil {
		return fmt.Errorf("routine updated but alarms were not rescheduled: %w", err)
	}

	state := "active"
	if !r.IsActive {
		state = "inactive"
	}
	ctx.Printf("Routine %s is now %s\n", r.Title, state)
	return nil
}

type RoutineReorderCmd struct {
	IDs []string `arg:"" help:"Routine IDs (or prefixes/titles) in the desired order."`
}

func (c *RoutineReorderCmd) Run(ctx *cli.Context) error {
	ids := make([]string, 0, len(c.IDs))
	seen := make(map[string]bool)
	for _, ref := range c.IDs {
		r, err := ctx.FindRoutine(ref)
		if err != nil {
			return fmt.Errorf("failed to find routine %s: %w", ref, err)
		}
		if seen[r.ID] {
			return fmt.Errorf("routine %s listed more than once", r.Title)
		}
		seen[r.ID] = true
		ids = append(ids, r.ID)
	}

	// routines left out keep their relative order after the listed ones
	all, err := ctx.Store.GetAllRoutines()
	if err != nil {
		return fmt.Errorf("failed to get routines: %w", err)
	}
	for _, r := range all {
		if !seen[r.ID] {
			ids = append(ids, r.ID)
		}
	}

	if err := ctx.Store.ReorderRoutines(ids); err != nil {
		return fmt.Errorf("failed to reorder routines: %w", err)
	}
	ctx.Printf("Reordered %d routine(s)\n", len(ids))
	return nil
}
