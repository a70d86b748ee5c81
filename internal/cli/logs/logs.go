package logs

import (
	"fmt"

	"github.com/julianstephens/routineflow/internal/cli"
	"github.com/julianstephens/routineflow/internal/tracker"
)

type CompleteCmd struct {
	ID       string `arg:"" help:"Routine ID, ID prefix or title."`
	Date     string `help:"Day to record (YYYY-MM-DD, defaults to today)."`
	Duration int    `short:"d" help:"Time spent in minutes."`
	Note     string `short:"n" help:"Optional note."`
	Toggle   bool   `help:"Undo today's completion if it is already recorded."`
}

func (c *CompleteCmd) Validate() error {
	if c.Toggle && c.Date != "" {
		return fmt.Errorf("--toggle only applies to today")
	}
	if c.Duration < 0 {
		return fmt.Errorf("duration cannot be negative")
	}
	return nil
}

func (c *CompleteCmd) Run(ctx *cli.Context) error {
	r, err := ctx.FindRoutine(c.ID)
	if err != nil {
		return fmt.Errorf("failed to find routine %s: %w", c.ID, err)
	}
	svc, err := ctx.Tracker()
	if err != nil {
		return err
	}

	var res tracker.Result
	if c.Toggle {
		res, err = svc.Toggle(r.ID)
	} else {
		res, err = svc.Complete(r.ID, tracker.CompleteOptions{
			DateKey:         c.Date,
			DurationSeconds: c.Duration * 60,
			Note:            c.Note,
		})
	}
	if err != nil {
		return err
	}

	printResult(ctx, r.Title, res)
	return nil
}

type UncompleteCmd struct {
	ID   string `arg:"" help:"Routine ID, ID prefix or title."`
	Date string `help:"Day to clear (YYYY-MM-DD, defaults to today)."`
}

func (c *UncompleteCmd) Run(ctx *cli.Context) error {
	r, err := ctx.FindRoutine(c.ID)
	if err != nil {
		return fmt.Errorf("failed to find routine %s: %w", c.ID, err)
	}
	svc, err := ctx.Tracker()
	if err != nil {
		return err
	}

	res, err := svc.Uncomplete(r.ID, c.Date)
	if err != nil {
		return err
	}

	printResult(ctx, r.Title, res)
	return nil
}

func printResult(ctx *cli.Context, title string, res tracker.Result) {
	switch {
	case res.Action == tracker.ActionComplete && res.Changed:
		ctx.Printf("✓ Completed %s for %s\n", title, res.DateKey)
	case res.Action == tracker.ActionComplete:
		ctx.Printf("%s was already completed for %s\n", title, res.DateKey)
	case res.Changed:
		ctx.Printf("Cleared completion of %s for %s\n", title, res.DateKey)
	default:
		ctx.Printf("%s was not completed for %s\n", title, res.DateKey)
	}
}
