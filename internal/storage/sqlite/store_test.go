package sqlite

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/routineflow/internal/constants"
	"github.com/julianstephens/routineflow/internal/models"
	"github.com/julianstephens/routineflow/internal/storage"
)

var _ storage.Provider = (*Store)(nil)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	store := NewStore(filepath.Join(t.TempDir(), "routineflow.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func testRoutine(id string, order int) models.Routine {
	return models.Routine{
		ID:                    id,
		Title:                 "Stretch " + id,
		Description:           "five minutes",
		Icon:                  "🧘",
		Color:                 "#88c0d0",
		Category:              models.CategoryExercise,
		TimeSlot:              models.TimeSlotMorning,
		ScheduledTime:         "07:30",
		DurationMinutes:       5,
		RepeatType:            models.RepeatSpecificDays,
		FrequencyValue:        "mon,wed,fri",
		ReminderEnabled:       true,
		ReminderMinutesBefore: 10,
		SortOrder:             order,
		IsActive:              true,
		CreatedAt:             time.Date(2026, 3, 1, 8, 15, 0, 0, time.UTC),
	}
}

func testLog(routineID, day string) models.RoutineLog {
	return models.RoutineLog{
		ID:          routineID + "-" + day,
		RoutineID:   routineID,
		CompletedAt: time.Date(2026, 3, 10, 7, 45, 0, 0, time.UTC),
		DateKey:     day,
	}
}

func TestInit_WritesDefaultSettings(t *testing.T) {
	store := setupTestStore(t)

	settings, err := store.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
	if settings != models.DefaultSettings() {
		t.Errorf("expected default settings, got %+v", settings)
	}

	// a second Init keeps existing settings and re-runs no migrations
	settings.Timezone = "Asia/Seoul"
	if err := store.SaveSettings(settings); err != nil {
		t.Fatal(err)
	}
	if err := store.Init(); err != nil {
		t.Fatalf("second Init failed: %v", err)
	}
	got, _ := store.GetSettings()
	if got.Timezone != "Asia/Seoul" {
		t.Errorf("expected timezone to survive re-init, got %q", got.Timezone)
	}
}

func TestLoad_RequiresInit(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "missing.db"))
	if err := store.Load(); err == nil {
		t.Error("expected error loading an uninitialized store")
	}
}

func TestLoad_AfterInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "routineflow.db")
	first := NewStore(path)
	if err := first.Init(); err != nil {
		t.Fatal(err)
	}
	if err := first.AddRoutine(testRoutine("r1", 0)); err != nil {
		t.Fatal(err)
	}
	first.Close()

	second := NewStore(path)
	if err := second.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	defer second.Close()
	if _, err := second.GetRoutine("r1"); err != nil {
		t.Errorf("expected routine after reload: %v", err)
	}
	if second.GetConfigPath() != path {
		t.Errorf("unexpected config path %q", second.GetConfigPath())
	}
}

func TestRoutineRoundTrip(t *testing.T) {
	store := setupTestStore(t)
	want := testRoutine("r1", 3)
	want.IsFromTemplate = true
	want.TemplateID = "morning-stretch"

	if err := store.AddRoutine(want); err != nil {
		t.Fatalf("AddRoutine failed: %v", err)
	}
	got, err := store.GetRoutine("r1")
	if err != nil {
		t.Fatalf("GetRoutine failed: %v", err)
	}
	if !got.CreatedAt.Equal(want.CreatedAt) {
		t.Errorf("created_at mismatch: %v vs %v", got.CreatedAt, want.CreatedAt)
	}
	got.CreatedAt = want.CreatedAt
	if got != want {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, want)
	}

	want.Title = "Long stretch"
	want.IsActive = false
	want.ReminderEnabled = false
	if err := store.UpdateRoutine(want); err != nil {
		t.Fatalf("UpdateRoutine failed: %v", err)
	}
	got, _ = store.GetRoutine("r1")
	if got.Title != "Long stretch" || got.IsActive || got.ReminderEnabled {
		t.Errorf("update not persisted: %+v", got)
	}
}

func TestRoutineNotFound(t *testing.T) {
	store := setupTestStore(t)

	if _, err := store.GetRoutine("nope"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("GetRoutine: expected ErrNotFound, got %v", err)
	}
	if err := store.UpdateRoutine(testRoutine("nope", 0)); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("UpdateRoutine: expected ErrNotFound, got %v", err)
	}
	if err := store.DeleteRoutine("nope"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("DeleteRoutine: expected ErrNotFound, got %v", err)
	}
}

func TestReorderRoutines(t *testing.T) {
	store := setupTestStore(t)
	for i, id := range []string{"a", "b", "c"} {
		if err := store.AddRoutine(testRoutine(id, i)); err != nil {
			t.Fatal(err)
		}
	}

	if err := store.ReorderRoutines([]string{"c", "a", "b"}); err != nil {
		t.Fatalf("ReorderRoutines failed: %v", err)
	}
	routines, err := store.GetAllRoutines()
	if err != nil {
		t.Fatal(err)
	}
	var order []string
	for _, r := range routines {
		order = append(order, r.ID)
	}
	if len(order) != 3 || order[0] != "c" || order[1] != "a" || order[2] != "b" {
		t.Errorf("expected [c a b], got %v", order)
	}

	if err := store.ReorderRoutines([]string{"a", "ghost"}); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown id, got %v", err)
	}
	routines, _ = store.GetAllRoutines()
	if routines[0].ID != "c" {
		t.Errorf("failed reorder should roll back, got first %s", routines[0].ID)
	}
}

func TestAddLog_UniquePerRoutineAndDay(t *testing.T) {
	store := setupTestStore(t)
	if err := store.AddRoutine(testRoutine("r1", 0)); err != nil {
		t.Fatal(err)
	}

	created, err := store.AddLog(testLog("r1", "2026-03-10"))
	if err != nil || !created {
		t.Fatalf("expected first log created, got %v (%v)", created, err)
	}

	dup := testLog("r1", "2026-03-10")
	dup.ID = "another-id"
	created, err = store.AddLog(dup)
	if err != nil {
		t.Fatalf("duplicate AddLog should not error: %v", err)
	}
	if created {
		t.Error("duplicate AddLog reported created")
	}

	logs, _ := store.GetAllLogs()
	if len(logs) != 1 {
		t.Errorf("expected 1 log row, got %d", len(logs))
	}
}

func TestLogLifecycle(t *testing.T) {
	store := setupTestStore(t)
	if err := store.AddRoutine(testRoutine("r1", 0)); err != nil {
		t.Fatal(err)
	}
	for _, day := range []string{"2026-03-08", "2026-03-09", "2026-03-10", "2026-03-12"} {
		if _, err := store.AddLog(testLog("r1", day)); err != nil {
			t.Fatal(err)
		}
	}

	got, err := store.GetLog("r1", "2026-03-09")
	if err != nil {
		t.Fatalf("GetLog failed: %v", err)
	}
	if got.DateKey != "2026-03-09" || !got.CompletedAt.Equal(time.Date(2026, 3, 10, 7, 45, 0, 0, time.UTC)) {
		t.Errorf("unexpected log %+v", got)
	}

	ranged, err := store.GetLogsInRange("2026-03-09", "2026-03-10")
	if err != nil {
		t.Fatal(err)
	}
	if len(ranged) != 2 || ranged[0].DateKey != "2026-03-09" || ranged[1].DateKey != "2026-03-10" {
		t.Errorf("unexpected range result %+v", ranged)
	}

	removed, err := store.DeleteLog("r1", "2026-03-09")
	if err != nil || !removed {
		t.Fatalf("expected log removed, got %v (%v)", removed, err)
	}
	removed, err = store.DeleteLog("r1", "2026-03-09")
	if err != nil || removed {
		t.Errorf("expected second delete to be a no-op, got %v (%v)", removed, err)
	}
	if _, err := store.GetLog("r1", "2026-03-09"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestDeleteRoutine_CascadesLogs(t *testing.T) {
	store := setupTestStore(t)
	for i, id := range []string{"keep", "drop"} {
		if err := store.AddRoutine(testRoutine(id, i)); err != nil {
			t.Fatal(err)
		}
		if _, err := store.AddLog(testLog(id, "2026-03-10")); err != nil {
			t.Fatal(err)
		}
	}

	if err := store.DeleteRoutine("drop"); err != nil {
		t.Fatalf("DeleteRoutine failed: %v", err)
	}

	logs, _ := store.GetAllLogs()
	if len(logs) != 1 || logs[0].RoutineID != "keep" {
		t.Errorf("expected only the kept routine's log, got %+v", logs)
	}
	routines, _ := store.GetAllRoutines()
	if len(routines) != 1 {
		t.Errorf("expected 1 routine left, got %d", len(routines))
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	store := setupTestStore(t)
	want := models.Settings{
		Timezone:               "America/New_York",
		NotificationsEnabled:   false,
		DefaultReminderMinutes: 15,
		WidgetAlarmLimit:       3,
	}
	if err := store.SaveSettings(want); err != nil {
		t.Fatal(err)
	}
	got, err := store.GetSettings()
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}

	if _, err := store.GetDB().Exec("DELETE FROM settings WHERE key = ?", constants.SettingWidgetAlarmLimit); err != nil {
		t.Fatal(err)
	}
	got, _ = store.GetSettings()
	if got.WidgetAlarmLimit != constants.DefaultWidgetAlarmLimit {
		t.Errorf("expected missing limit to default, got %d", got.WidgetAlarmLimit)
	}
}
