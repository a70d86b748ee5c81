package views

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/routineflow/internal/cli"
	"github.com/julianstephens/routineflow/internal/logger"
	"github.com/julianstephens/routineflow/internal/widget"
)

type WidgetCmd struct {
	Output string `short:"o" help:"Write the snapshot to this file instead of stdout." type:"path"`
	Limit  int    `help:"Maximum upcoming alarms (defaults to the setting)."`
}

func (c *WidgetCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Settings()
	if err != nil {
		return err
	}
	svc, err := ctx.Tracker()
	if err != nil {
		return err
	}
	routines, logs, err := svc.Snapshot()
	if err != nil {
		return err
	}

	limit := settings.WidgetAlarmLimit
	if c.Limit > 0 {
		limit = c.Limit
	}

	snapshot := widget.BuildSnapshot(routines, logs, svc.Now(), limit)
	data, err := snapshot.Marshal()
	if err != nil {
		return fmt.Errorf("failed to marshal widget snapshot: %w", err)
	}

	if c.Output == "" {
		ctx.Println(string(data))
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(c.Output), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	tmp := c.Output + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write widget snapshot: %w", err)
	}
	if err := os.Rename(tmp, c.Output); err != nil {
		return fmt.Errorf("failed to replace widget snapshot: %w", err)
	}
	logger.Debug("Wrote widget snapshot", "path", c.Output, "routines", len(snapshot.Routines.Routines))
	ctx.Printf("Widget snapshot written to %s\n", c.Output)
	return nil
}
