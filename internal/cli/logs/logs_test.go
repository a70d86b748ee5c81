package logs

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/routineflow/internal/cli"
	"github.com/julianstephens/routineflow/internal/config"
	"github.com/julianstephens/routineflow/internal/models"
	"github.com/julianstephens/routineflow/internal/scheduler"
	"github.com/julianstephens/routineflow/internal/storage/sqlite"
)

func setupTestDB(t *testing.T) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	r := models.Routine{
		ID:         "r-water",
		Title:      "Drink water",
		Category:   models.CategoryWater,
		TimeSlot:   models.TimeSlotMorning,
		RepeatType: models.RepeatDaily,
		IsActive:   true,
		CreatedAt:  time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC),
	}
	if err := store.AddRoutine(r); err != nil {
		t.Fatalf("failed to add routine: %v", err)
	}

	var out bytes.Buffer
	// 23:30 UTC is already the next day in Seoul
	now := time.Date(2026, 3, 10, 23, 30, 0, 0, time.UTC)
	ctx := &cli.Context{
		Store:     store,
		Scheduler: scheduler.NewWithClock(func() time.Time { return now }),
		Config:    config.Config{Timezone: "Asia/Seoul"},
		Out:       &out,
	}
	return ctx, &out
}

func TestCompleteCmd_UsesConfiguredDay(t *testing.T) {
	ctx, out := setupTestDB(t)

	cmd := &CompleteCmd{ID: "drink water", Duration: 2, Note: "two glasses"}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("complete failed: %v", err)
	}

	l, err := ctx.Store.GetLog("r-water", "2026-03-11")
	if err != nil {
		t.Fatalf("expected a log on the Seoul day: %v", err)
	}
	if l.DurationSeconds != 120 || l.Note != "two glasses" {
		t.Errorf("unexpected log details: %+v", l)
	}
	if !strings.Contains(out.String(), "✓ Completed Drink water for 2026-03-11") {
		t.Errorf("unexpected output: %q", out.String())
	}
}

func TestCompleteCmd_Idempotent(t *testing.T) {
	ctx, out := setupTestDB(t)

	cmd := &CompleteCmd{ID: "r-water"}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("first complete failed: %v", err)
	}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("second complete failed: %v", err)
	}

	logs, err := ctx.Store.GetAllLogs()
	if err != nil {
		t.Fatalf("failed to get logs: %v", err)
	}
	if len(logs) != 1 {
		t.Errorf("expected one log, got %d", len(logs))
	}
	if !strings.Contains(out.String(), "already completed") {
		t.Errorf("expected already-completed notice: %q", out.String())
	}
}

func TestCompleteCmd_Backfill(t *testing.T) {
	ctx, _ := setupTestDB(t)

	if err := (&CompleteCmd{ID: "r-water", Date: "2026-03-01"}).Run(ctx); err != nil {
		t.Fatalf("backfill failed: %v", err)
	}
	if _, err := ctx.Store.GetLog("r-water", "2026-03-01"); err != nil {
		t.Errorf("expected backfilled log: %v", err)
	}

	if err := (&CompleteCmd{ID: "r-water", Date: "03/01/2026"}).Run(ctx); err == nil {
		t.Error("expected malformed date to fail")
	}
}

func TestCompleteCmd_Toggle(t *testing.T) {
	ctx, _ := setupTestDB(t)

	cmd := &CompleteCmd{ID: "r-water", Toggle: true}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("toggle on failed: %v", err)
	}
	if _, err := ctx.Store.GetLog("r-water", "2026-03-11"); err != nil {
		t.Fatalf("expected log after first toggle: %v", err)
	}

	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("toggle off failed: %v", err)
	}
	logs, _ := ctx.Store.GetAllLogs()
	if len(logs) != 0 {
		t.Errorf("expected no logs after second toggle, got %d", len(logs))
	}
}

func TestCompleteCmd_Validate(t *testing.T) {
	if err := (&CompleteCmd{ID: "x", Toggle: true, Date: "2026-03-01"}).Validate(); err == nil {
		t.Error("expected --toggle with --date to be rejected")
	}
	if err := (&CompleteCmd{ID: "x", Duration: -1}).Validate(); err == nil {
		t.Error("expected negative duration to be rejected")
	}
	if err := (&CompleteCmd{ID: "x"}).Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestCompleteCmd_UnknownRoutine(t *testing.T) {
	ctx, _ := setupTestDB(t)

	if err := (&CompleteCmd{ID: "stretch"}).Run(ctx); err == nil {
		t.Error("expected unknown routine to fail")
	}
}

func TestUncompleteCmd(t *testing.T) {
	ctx, out := setupTestDB(t)

	if err := (&UncompleteCmd{ID: "r-water"}).Run(ctx); err != nil {
		t.Fatalf("uncomplete without log failed: %v", err)
	}
	if !strings.Contains(out.String(), "was not completed") {
		t.Errorf("unexpected output: %q", out.String())
	}

	if err := (&CompleteCmd{ID: "r-water", Date: "2026-03-09"}).Run(ctx); err != nil {
		t.Fatalf("complete failed: %v", err)
	}
	out.Reset()
	if err := (&UncompleteCmd{ID: "r-water", Date: "2026-03-09"}).Run(ctx); err != nil {
		t.Fatalf("uncomplete failed: %v", err)
	}
	if !strings.Contains(out.String(), "Cleared completion of Drink water for 2026-03-09") {
		t.Errorf("unexpected output: %q", out.String())
	}
	if _, err := ctx.Store.GetLog("r-water", "2026-03-09"); err == nil {
		t.Error("log should be removed")
	}
}
