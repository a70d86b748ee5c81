package system

import (
	"context"
	"fmt"
	"io/fs"
	"time"

	"github.com/julianstephens/routineflow/internal/cli"
	"github.com/julianstephens/routineflow/internal/migration"
	"github.com/julianstephens/routineflow/internal/storage/sqlite"
	"github.com/julianstephens/routineflow/internal/utils"
	"github.com/julianstephens/routineflow/migrations"
)

type DoctorCmd struct{}

type check struct {
	name string
	// needsDB checks are skipped when the database cannot be reached
	needsDB bool
	// warnOnly failures do not fail the run
	warnOnly bool
	run      func(ctx *cli.Context) error
}

var checks = []check{
	{name: "Schema version", needsDB: true, run: checkSchemaVersion},
	{name: "Migrations complete", needsDB: true, run: checkMigrationsComplete},
	{name: "Data validation", needsDB: true, run: checkValidation},
	{name: "Log integrity", needsDB: true, run: checkLogIntegrity},
	{name: "Clock/timezone", run: checkClockTimezone},
	{name: "Alarm registry", warnOnly: true, run: checkAlarmRegistry},
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	hasError := false
	dbReachable := false

	if err := checkDBReachable(ctx); err != nil {
		ctx.Printf("❌ Database reachable: FAIL\n")
		ctx.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		ctx.Printf("✓ Database reachable: OK\n")
		dbReachable = true
	}

	for _, c := range checks {
		if c.needsDB && !dbReachable {
			ctx.Printf("⊘ %s: SKIPPED (database not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		switch {
		case err == nil:
			ctx.Printf("✓ %s: OK\n", c.name)
		case c.warnOnly:
			ctx.Printf("⚠ %s: WARNING\n", c.name)
			ctx.Printf("   %v\n", err)
		default:
			ctx.Printf("❌ %s: FAIL\n", c.name)
			ctx.Printf("   Error: %v\n", err)
			hasError = true
		}
	}

	ctx.Println()
	if hasError {
		ctx.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	ctx.Println("All diagnostics passed!")
	return nil
}

func checkDBReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}

	if sqliteStore, ok := ctx.Store.(*sqlite.Store); ok {
		db := sqliteStore.GetDB()
		if db == nil {
			return fmt.Errorf("database connection is nil")
		}
		var result int
		if err := db.QueryRow("SELECT 1").Scan(&result); err != nil {
			return fmt.Errorf("failed to query database: %w", err)
		}
	}

	return nil
}

// sqliteRunner returns a migration runner for sqlite stores and nil for
// other backends, which validate their schema on Load.
func sqliteRunner(ctx *cli.Context) (*migration.Runner, error) {
	sqliteStore, ok := ctx.Store.(*sqlite.Store)
	if !ok {
		return nil, nil
	}
	db := sqliteStore.GetDB()
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return nil, fmt.Errorf("failed to access sqlite migrations: %w", err)
	}
	return migration.NewRunner(db, subFS, migration.DriverSQLite)
}

func schemaVersions(ctx *cli.Context) (current, latest int, ok bool, err error) {
	runner, err := sqliteRunner(ctx)
	if err != nil || runner == nil {
		return 0, 0, false, err
	}
	current, err = runner.GetCurrentVersion()
	if err != nil {
		return 0, 0, false, fmt.Errorf("failed to get current schema version: %w", err)
	}
	latest, err = runner.GetLatestVersion()
	if err != nil {
		return 0, 0, false, fmt.Errorf("failed to get latest schema version: %w", err)
	}
	return current, latest, true, nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	current, latest, ok, err := schemaVersions(ctx)
	if err != nil || !ok {
		return err
	}
	if current > latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", current, latest)
	}
	return nil
}

func checkMigrationsComplete(ctx *cli.Context) error {
	current, latest, ok, err := schemaVersions(ctx)
	if err != nil || !ok {
		return err
	}
	if current < latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d", current, latest)
	}
	return nil
}

func checkValidation(ctx *cli.Context) error {
	if _, err := ctx.Store.GetSettings(); err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	routines, err := ctx.Store.GetAllRoutines()
	if err != nil {
		return fmt.Errorf("failed to get routines: %w", err)
	}

	ids := make(map[string]bool)
	for _, r := range routines {
		if ids[r.ID] {
			return fmt.Errorf("duplicate routine ID found: %s", r.ID)
		}
		ids[r.ID] = true
		if err := r.Validate(); err != nil {
			return fmt.Errorf("routine %s (%s) is invalid: %w", r.Title, r.ID, err)
		}
	}

	return nil
}

func checkLogIntegrity(ctx *cli.Context) error {
	routines, err := ctx.Store.GetAllRoutines()
	if err != nil {
		return fmt.Errorf("failed to get routines: %w", err)
	}
	logs, err := ctx.Store.GetAllLogs()
	if err != nil {
		return fmt.Errorf("failed to get logs: %w", err)
	}

	known := make(map[string]bool, len(routines))
	for _, r := range routines {
		known[r.ID] = true
	}

	seen := make(map[string]bool, len(logs))
	orphaned, duplicates, badDates := 0, 0, 0
	for _, l := range logs {
		if !known[l.RoutineID] {
			orphaned++
		}
		key := l.RoutineID + "|" + l.DateKey
		if seen[key] {
			duplicates++
		}
		seen[key] = true
		if _, err := utils.ParseDayKey(l.DateKey); err != nil {
			badDates++
		}
	}

	switch {
	case orphaned > 0:
		return fmt.Errorf("found %d orphaned logs (referencing non-existent routines)", orphaned)
	case duplicates > 0:
		return fmt.Errorf("found %d routine+day combinations with duplicate logs", duplicates)
	case badDates > 0:
		return fmt.Errorf("found %d logs with invalid date format", badDates)
	}
	return nil
}

func checkClockTimezone(ctx *cli.Context) error {
	now := time.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}

	if _, err := ctx.Location(); err != nil {
		return err
	}
	return nil
}

func checkAlarmRegistry(ctx *cli.Context) error {
	if ctx.Registry == nil {
		return fmt.Errorf("no alarm registry configured")
	}
	if _, err := ctx.Registry.List(context.Background()); err != nil {
		return fmt.Errorf("alarm registry unreadable: %w", err)
	}
	return nil
}
