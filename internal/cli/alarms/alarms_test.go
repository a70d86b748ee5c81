package alarms

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/routineflow/internal/cli"
	"github.com/julianstephens/routineflow/internal/config"
	"github.com/julianstephens/routineflow/internal/models"
	"github.com/julianstephens/routineflow/internal/notifier"
	"github.com/julianstephens/routineflow/internal/scheduler"
	"github.com/julianstephens/routineflow/internal/storage/sqlite"
)

type fakeDeliverer struct {
	sent []string
	err  error
}

func (f *fakeDeliverer) Deliver(_ context.Context, alarm scheduler.AlarmSpec) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, alarm.ID)
	return nil
}

type testEnv struct {
	ctx *cli.Context
	out *bytes.Buffer
	now time.Time
	d   *fakeDeliverer
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	tempDir := t.TempDir()
	store := sqlite.NewStore(filepath.Join(tempDir, "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	created := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	routines := []models.Routine{
		{
			ID: "daily", Title: "Stretch", Icon: "🧘",
			Category: models.CategoryExercise, TimeSlot: models.TimeSlotMorning,
			ScheduledTime: "07:30", RepeatType: models.RepeatDaily,
			ReminderEnabled: true, ReminderMinutesBefore: 10,
			IsActive: true, CreatedAt: created,
		},
		{
			ID: "once", Title: "Dentist", Icon: "🦷",
			Category: models.CategoryCustom, TimeSlot: models.TimeSlotMorning,
			ScheduledTime: "09:00", RepeatType: models.RepeatOnce,
			ReminderEnabled: true,
			IsActive:        true, SortOrder: 1, CreatedAt: created,
		},
	}
	for _, r := range routines {
		if err := store.AddRoutine(r); err != nil {
			t.Fatalf("failed to add routine: %v", err)
		}
	}

	env := &testEnv{
		out: &bytes.Buffer{},
		now: time.Date(2026, 3, 10, 6, 0, 0, 0, time.UTC),
		d:   &fakeDeliverer{},
	}
	env.ctx = &cli.Context{
		Store:     store,
		Scheduler: scheduler.NewWithClock(func() time.Time { return env.now }),
		Config:    config.Config{Timezone: "UTC"},
		Registry:  notifier.NewFileRegistry(tempDir),
		Notifier:  env.d,
		Out:       env.out,
	}
	return env
}

func (e *testEnv) ids(t *testing.T) []string {
	t.Helper()
	ids, err := notifier.IDs(context.Background(), e.ctx.Registry)
	if err != nil {
		t.Fatalf("failed to list triggers: %v", err)
	}
	return ids
}

func TestAlarmsSyncCmd(t *testing.T) {
	env := setupTestEnv(t)
	foreign := scheduler.AlarmSpec{ID: "calendar_sync", Kind: scheduler.KindDaily, Hour: 5}
	if err := env.ctx.Registry.Schedule(context.Background(), foreign); err != nil {
		t.Fatalf("failed to schedule foreign trigger: %v", err)
	}

	if err := (&AlarmsSyncCmd{}).Run(env.ctx); err != nil {
		t.Fatalf("sync failed: %v", err)
	}
	want := "calendar_sync,routine_daily_daily,routine_once_once"
	if got := strings.Join(env.ids(t), ","); got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
	if !strings.Contains(env.out.String(), "0 cancelled, 2 scheduled") {
		t.Errorf("unexpected output: %q", env.out.String())
	}

	env.out.Reset()
	if err := (&AlarmsSyncCmd{}).Run(env.ctx); err != nil {
		t.Fatalf("second sync failed: %v", err)
	}
	if !strings.Contains(env.out.String(), "2 cancelled, 2 scheduled") {
		t.Errorf("resync should replace managed triggers: %q", env.out.String())
	}
}

func TestAlarmsSyncCmd_NotificationsDisabled(t *testing.T) {
	env := setupTestEnv(t)
	if err := (&AlarmsSyncCmd{}).Run(env.ctx); err != nil {
		t.Fatalf("sync failed: %v", err)
	}

	settings := models.DefaultSettings()
	settings.NotificationsEnabled = false
	if err := env.ctx.Store.SaveSettings(settings); err != nil {
		t.Fatalf("failed to save settings: %v", err)
	}

	if err := (&AlarmsSyncCmd{}).Run(env.ctx); err != nil {
		t.Fatalf("sync failed: %v", err)
	}
	if ids := env.ids(t); len(ids) != 0 {
		t.Errorf("expected every alarm cancelled, got %v", ids)
	}
}

func TestAlarmsPlanCmd_DoesNotApply(t *testing.T) {
	env := setupTestEnv(t)

	if err := (&AlarmsPlanCmd{JSON: true}).Run(env.ctx); err != nil {
		t.Fatalf("plan failed: %v", err)
	}
	var p scheduler.Plan
	if err := json.Unmarshal(env.out.Bytes(), &p); err != nil {
		t.Fatalf("plan output is not JSON: %v", err)
	}
	if len(p.ToCancel) != 0 || len(p.ToCreate) != 2 {
		t.Errorf("unexpected plan: %d cancel, %d create", len(p.ToCancel), len(p.ToCreate))
	}
	if ids := env.ids(t); len(ids) != 0 {
		t.Errorf("plan must not touch the registry, got %v", ids)
	}

	env.out.Reset()
	if err := (&AlarmsPlanCmd{}).Run(env.ctx); err != nil {
		t.Fatalf("plan failed: %v", err)
	}
	if !strings.Contains(env.out.String(), "+ routine_daily_daily [daily] 07:20") {
		t.Errorf("unexpected plan output: %q", env.out.String())
	}
}

func TestAlarmsListCmd(t *testing.T) {
	env := setupTestEnv(t)

	if err := (&AlarmsListCmd{}).Run(env.ctx); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(env.out.String(), "No alarms scheduled") {
		t.Errorf("unexpected output: %q", env.out.String())
	}

	if err := (&AlarmsSyncCmd{}).Run(env.ctx); err != nil {
		t.Fatalf("sync failed: %v", err)
	}
	env.out.Reset()
	if err := (&AlarmsListCmd{}).Run(env.ctx); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	for _, want := range []string{"routine_daily_daily", "2026-03-10 09:00"} {
		if !strings.Contains(env.out.String(), want) {
			t.Errorf("expected %q in output: %q", want, env.out.String())
		}
	}
}

func TestAlarmsFireCmd_DryRunLeavesRegistry(t *testing.T) {
	env := setupTestEnv(t)
	if err := (&AlarmsSyncCmd{}).Run(env.ctx); err != nil {
		t.Fatalf("sync failed: %v", err)
	}

	env.now = time.Date(2026, 3, 10, 9, 0, 30, 0, time.UTC)
	env.out.Reset()
	if err := (&AlarmsFireCmd{DryRun: true}).Run(env.ctx); err != nil {
		t.Fatalf("dry run failed: %v", err)
	}
	if !strings.Contains(env.out.String(), "[DryRun] "+scheduler.AlarmTitle+" 🦷 Dentist") {
		t.Errorf("unexpected output: %q", env.out.String())
	}
	if len(env.d.sent) != 0 {
		t.Errorf("dry run must not deliver, sent %v", env.d.sent)
	}
	if ids := env.ids(t); len(ids) != 2 {
		t.Errorf("dry run must not clear triggers, got %v", ids)
	}
}

func TestAlarmsFireCmd_DeliversDue(t *testing.T) {
	env := setupTestEnv(t)
	if err := (&AlarmsSyncCmd{}).Run(env.ctx); err != nil {
		t.Fatalf("sync failed: %v", err)
	}

	env.now = time.Date(2026, 3, 10, 7, 20, 0, 0, time.UTC)
	if err := (&AlarmsFireCmd{}).Run(env.ctx); err != nil {
		t.Fatalf("fire failed: %v", err)
	}
	env.now = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	if err := (&AlarmsFireCmd{}).Run(env.ctx); err != nil {
		t.Fatalf("fire failed: %v", err)
	}

	if got := strings.Join(env.d.sent, ","); got != "routine_daily_daily,routine_once_once" {
		t.Errorf("unexpected deliveries: %s", got)
	}
	ids := env.ids(t)
	if len(ids) != 1 || ids[0] != "routine_daily_daily" {
		t.Errorf("once trigger should be cleared after firing, got %v", ids)
	}
}

func TestAlarmsFireCmd_DeliveryFailureKeepsTrigger(t *testing.T) {
	env := setupTestEnv(t)
	if err := (&AlarmsSyncCmd{}).Run(env.ctx); err != nil {
		t.Fatalf("sync failed: %v", err)
	}
	env.d.err = errors.New("tray not running")

	env.now = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	if err := (&AlarmsFireCmd{}).Run(env.ctx); err != nil {
		t.Fatalf("fire should not fail on delivery errors: %v", err)
	}
	if ids := env.ids(t); len(ids) != 2 {
		t.Errorf("undelivered once trigger must stay, got %v", ids)
	}
}

func TestAlarmsCmds_NoRegistry(t *testing.T) {
	env := setupTestEnv(t)
	env.ctx.Registry = nil

	if err := (&AlarmsSyncCmd{}).Run(env.ctx); !errors.Is(err, errNoRegistry) {
		t.Errorf("expected errNoRegistry from sync, got %v", err)
	}
	if err := (&AlarmsListCmd{}).Run(env.ctx); !errors.Is(err, errNoRegistry) {
		t.Errorf("expected errNoRegistry from list, got %v", err)
	}
	if err := (&AlarmsFireCmd{}).Run(env.ctx); !errors.Is(err, errNoRegistry) {
		t.Errorf("expected errNoRegistry from fire, got %v", err)
	}
}
