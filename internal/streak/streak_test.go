package streak

import (
	"math/rand"
	"testing"

	"github.com/julianstephens/routineflow/internal/completion"
	"github.com/julianstephens/routineflow/internal/models"
	"github.com/julianstephens/routineflow/internal/utils"
)

const today = "2026-03-10"

func day(t *testing.T, offset int) string {
	t.Helper()
	key, err := utils.AddDays(today, offset)
	if err != nil {
		t.Fatal(err)
	}
	return key
}

func routines(ids ...string) []models.Routine {
	out := make([]models.Routine, 0, len(ids))
	for _, id := range ids {
		out = append(out, models.Routine{ID: id, IsActive: true})
	}
	return out
}

func complete(logs []models.RoutineLog, routineID, day string) []models.RoutineLog {
	return append(logs, models.RoutineLog{ID: routineID + day, RoutineID: routineID, DateKey: day})
}

func TestCompute_NoActiveRoutines(t *testing.T) {
	var logs []models.RoutineLog
	logs = complete(logs, "a", today)

	got := Compute(nil, completion.Build(logs), today)
	if got != (Info{}) {
		t.Errorf("expected zero info, got %+v", got)
	}
}

func TestCompute_StreakContinuityBeforeActingToday(t *testing.T) {
	active := routines("a", "b")
	var logs []models.RoutineLog
	// D-2: both completed (rate 1.0)
	logs = complete(logs, "a", day(t, -2))
	logs = complete(logs, "b", day(t, -2))
	// D-1: one completed (rate 0.5, still active)
	logs = complete(logs, "a", day(t, -1))
	// D: nothing yet

	got := Compute(active, completion.Build(logs), today)

	if got.Current != 1 {
		t.Errorf("expected current streak 1 carried from yesterday, got %d", got.Current)
	}
	if got.Longest != 2 {
		t.Errorf("expected longest streak 2, got %d", got.Longest)
	}
	if got.LastActiveDate != day(t, -1) {
		t.Errorf("expected last active %s, got %s", day(t, -1), got.LastActiveDate)
	}
}

func TestCompute_TodayPartialBelowThresholdStillAnchorsYesterday(t *testing.T) {
	active := routines("a", "b", "c")
	var logs []models.RoutineLog
	logs = complete(logs, "a", today) // 1/3 today, inactive
	for i := 1; i <= 4; i++ {
		logs = complete(logs, "a", day(t, -i))
		logs = complete(logs, "b", day(t, -i))
	}

	got := Compute(active, completion.Build(logs), today)
	if got.Current != 1 {
		t.Errorf("expected current 1, got %d", got.Current)
	}
	if got.Longest != 4 {
		t.Errorf("expected longest 4, got %d", got.Longest)
	}
}

func TestCompute_TodayActiveRunCountsInLongestOnly(t *testing.T) {
	active := routines("a", "b")
	var logs []models.RoutineLog
	for i := 0; i <= 6; i++ {
		logs = complete(logs, "a", day(t, -i))
	}

	got := Compute(active, completion.Build(logs), today)
	if got.Current != 1 || got.Longest != 7 {
		t.Errorf("expected current 1 and longest 7, got %+v", got)
	}
	if got.LastActiveDate != today {
		t.Errorf("expected last active %s, got %s", today, got.LastActiveDate)
	}
}

func TestCompute_GapResetsCurrentButNotLongest(t *testing.T) {
	active := routines("a")
	var logs []models.RoutineLog
	// Old run of 5 days: D-20..D-16
	for i := 16; i <= 20; i++ {
		logs = complete(logs, "a", day(t, -i))
	}
	// Today and yesterday inactive, D-2 active.
	logs = complete(logs, "a", day(t, -2))

	got := Compute(active, completion.Build(logs), today)
	if got.Current != 0 {
		t.Errorf("expected current 0 when yesterday is inactive, got %d", got.Current)
	}
	if got.Longest != 5 {
		t.Errorf("expected longest 5, got %d", got.Longest)
	}
	if got.LastActiveDate != day(t, -2) {
		t.Errorf("expected last active %s, got %s", day(t, -2), got.LastActiveDate)
	}
}

func TestCompute_WindowIsBounded(t *testing.T) {
	active := routines("a")
	var logs []models.RoutineLog
	for i := 0; i < 400; i++ {
		logs = complete(logs, "a", day(t, -i))
	}

	got := Compute(active, completion.Build(logs), today)
	if got.Current != 1 || got.Longest != 365 {
		t.Errorf("expected the 365-day window to cap the streak, got %+v", got)
	}
}

func TestCompute_DenominatorIsTodaysActiveSet(t *testing.T) {
	// "c" was added recently; history only knows a and b. Two of three
	// completed on each past day is still >= 50%.
	active := routines("a", "b", "c")
	var logs []models.RoutineLog
	for i := 1; i <= 3; i++ {
		logs = complete(logs, "a", day(t, -i))
		logs = complete(logs, "b", day(t, -i))
	}
	// Only one of three on D-4: inactive under today's denominator.
	logs = complete(logs, "a", day(t, -4))

	got := Compute(active, completion.Build(logs), today)
	if got.Current != 1 {
		t.Errorf("expected current 1, got %d", got.Current)
	}
	if got.Longest != 3 {
		t.Errorf("expected longest 3, got %d", got.Longest)
	}
}

func TestCompute_LongestNeverBelowCurrentAndMonotone(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	active := routines("a", "b", "c", "d")
	var logs []models.RoutineLog
	prevLongest := 0

	for step := 0; step < 300; step++ {
		id := active[rng.Intn(len(active))].ID
		logs = complete(logs, id, day(t, -rng.Intn(60)))

		got := Compute(active, completion.Build(logs), today)
		if got.Longest < got.Current {
			t.Fatalf("step %d: longest %d < current %d", step, got.Longest, got.Current)
		}
		if got.Longest < prevLongest {
			t.Fatalf("step %d: longest decreased from %d to %d", step, prevLongest, got.Longest)
		}
		prevLongest = got.Longest
	}
}

func TestCompute_InvalidToday(t *testing.T) {
	got := Compute(routines("a"), completion.Build(nil), "not-a-day")
	if got != (Info{}) {
		t.Errorf("expected zero info for invalid day, got %+v", got)
	}
}

// scanStreak is a direct day-by-day rendition of the streak scan used to
// cross-check Compute.
func scanStreak(active []models.Routine, idx completion.Index, todayKey string) Info {
	total := len(active)
	if total == 0 {
		return Info{}
	}
	var current, longest, run int
	last := ""
	for i := 0; i < 365; i++ {
		key, _ := utils.AddDays(todayKey, -i)
		done := 0
		for _, r := range active {
			if idx.IsCompleted(key, r.ID) {
				done++
			}
		}
		if float64(done)/float64(total) >= 0.5 {
			run++
			if i == 0 || (i == 1 && current == 0) {
				current = run
			}
			if last == "" {
				last = key
			}
		} else {
			longest = max(longest, run)
			run = 0
		}
	}
	longest = max(longest, run)
	return Info{Current: current, Longest: longest, LastActiveDate: last}
}

func TestCompute_MatchesDayByDayScan(t *testing.T) {
	tests := []struct {
		name   string
		build  func() []models.RoutineLog
		active []models.Routine
	}{
		{
			name:   "empty history",
			active: routines("a", "b"),
			build:  func() []models.RoutineLog { return nil },
		},
		{
			name:   "yesterday only",
			active: routines("a"),
			build: func() []models.RoutineLog {
				return complete(nil, "a", day(t, -1))
			},
		},
		{
			name:   "today and yesterday",
			active: routines("a"),
			build: func() []models.RoutineLog {
				logs := complete(nil, "a", today)
				return complete(logs, "a", day(t, -1))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx := completion.Build(tt.build())
			got := Compute(tt.active, idx, today)
			want := scanStreak(tt.active, idx, today)
			if got != want {
				t.Errorf("Compute = %+v, want %+v", got, want)
			}
		})
	}

	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 50; trial++ {
		active := routines("a", "b", "c")[:1+rng.Intn(3)]
		var logs []models.RoutineLog
		for n := rng.Intn(40); n > 0; n-- {
			logs = complete(logs, active[rng.Intn(len(active))].ID, day(t, -rng.Intn(10)))
		}
		idx := completion.Build(logs)
		got := Compute(active, idx, today)
		want := scanStreak(active, idx, today)
		if got != want {
			t.Fatalf("trial %d: Compute = %+v, want %+v", trial, got, want)
		}
		if got.Current > 1 {
			t.Fatalf("trial %d: current %d exceeds 1", trial, got.Current)
		}
	}
}
