package routines

import (
	"fmt"

	"github.com/julianstephens/routineflow/internal/cli"
	"github.com/julianstephens/routineflow/internal/completion"
	"github.com/julianstephens/routineflow/internal/utils"
	"github.com/julianstephens/routineflow/internal/widget"
)

type RoutineListCmd struct {
	All     bool `short:"a" help:"Include inactive routines."`
	ShowIDs bool `help:"Show routine IDs." name:"show-ids"`
}

func (c *RoutineListCmd) Run(ctx *cli.Context) error {
	routines, err := ctx.Store.GetAllRoutines()
	if err != nil {
		return fmt.Errorf("failed to get routines: %w", err)
	}
	if len(routines) == 0 {
		ctx.Println("No routines found")
		return nil
	}

	now, err := ctx.Now()
	if err != nil {
		return err
	}
	today := utils.DayKey(now, now.Location())
	logs, err := ctx.Store.GetLogsInRange(today, today)
	if err != nil {
		return fmt.Errorf("failed to get today's logs: %w", err)
	}
	idx := completion.Build(logs)

	ctx.Println("Routines:")
	for _, r := range routines {
		if !c.All && !r.IsActive {
			continue
		}

		mark := "[ ]"
		if idx.IsCompleted(today, r.ID) {
			mark = "[x]"
		}
		if !r.IsActive {
			mark = "[-]"
		}

		idStr := ""
		if c.ShowIDs {
			idStr = fmt.Sprintf(" (ID: %s)", r.ID)
		}

		when := r.TimeSlot.Label()
		if r.HasScheduledTime() {
			when = fmt.Sprintf("%s %s", when, r.ScheduledTime)
		}
		off := ""
		if r.IsActive && !utils.OccursOn(r, today, now.Location()) {
			off = " (not due today)"
		}
		ctx.Printf("  %s %s %s%s - %s, %s%s\n", mark, r.Icon, r.Title, idStr, when, widget.RepeatLabel(r), off)

		if r.ReminderEnabled && r.HasScheduledTime() {
			ctx.Printf("      Alarm: %d min before\n", r.ReminderMinutesBefore)
		}
	}

	return nil
}
