package utils

import (
	"testing"
	"time"

	"github.com/julianstephens/routineflow/internal/models"
)

func TestParseWeekdayCodes(t *testing.T) {
	got := ParseWeekdayCodes("fri, MON,wed,mon,funday")
	want := []models.Weekday{models.Monday, models.Wednesday, models.Friday}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d: expected %s, got %s", i, want[i], got[i])
		}
	}

	if days := ParseWeekdayCodes(""); len(days) != 0 {
		t.Errorf("expected no days for empty input, got %v", days)
	}
}

func TestRepeatWeekdays(t *testing.T) {
	weekdays := RepeatWeekdays(models.Routine{RepeatType: models.RepeatWeekdays})
	if len(weekdays) != 5 || weekdays[0] != models.Monday || weekdays[4] != models.Friday {
		t.Errorf("unexpected weekdays set: %v", weekdays)
	}

	weekends := RepeatWeekdays(models.Routine{RepeatType: models.RepeatWeekends})
	if len(weekends) != 2 || weekends[0] != models.Saturday || weekends[1] != models.Sunday {
		t.Errorf("unexpected weekends set: %v", weekends)
	}

	if days := RepeatWeekdays(models.Routine{RepeatType: models.RepeatDaily}); days != nil {
		t.Errorf("expected nil for daily, got %v", days)
	}
}

func TestOccursOn(t *testing.T) {
	created := time.Date(2026, 1, 5, 8, 0, 0, 0, time.UTC) // Monday

	tests := []struct {
		name    string
		routine models.Routine
		day     string
		want    bool
	}{
		{
			name:    "daily always",
			routine: models.Routine{RepeatType: models.RepeatDaily, CreatedAt: created},
			day:     "2026-02-14",
			want:    true,
		},
		{
			name:    "weekdays on saturday",
			routine: models.Routine{RepeatType: models.RepeatWeekdays, CreatedAt: created},
			day:     "2026-01-10",
			want:    false,
		},
		{
			name:    "weekends on saturday",
			routine: models.Routine{RepeatType: models.RepeatWeekends, CreatedAt: created},
			day:     "2026-01-10",
			want:    true,
		},
		{
			name:    "specific days match",
			routine: models.Routine{RepeatType: models.RepeatSpecificDays, FrequencyValue: "mon,wed,fri", CreatedAt: created},
			day:     "2026-01-07",
			want:    true,
		},
		{
			name:    "specific days miss",
			routine: models.Routine{RepeatType: models.RepeatSpecificDays, FrequencyValue: "mon,wed,fri", CreatedAt: created},
			day:     "2026-01-08",
			want:    false,
		},
		{
			name:    "interval on anchor",
			routine: models.Routine{RepeatType: models.RepeatInterval, RepeatIntervalDays: 3, CreatedAt: created},
			day:     "2026-01-05",
			want:    true,
		},
		{
			name:    "interval on boundary",
			routine: models.Routine{RepeatType: models.RepeatInterval, RepeatIntervalDays: 3, CreatedAt: created},
			day:     "2026-01-11",
			want:    true,
		},
		{
			name:    "interval between boundaries",
			routine: models.Routine{RepeatType: models.RepeatInterval, RepeatIntervalDays: 3, CreatedAt: created},
			day:     "2026-01-12",
			want:    false,
		},
		{
			name:    "interval before anchor",
			routine: models.Routine{RepeatType: models.RepeatInterval, RepeatIntervalDays: 3, CreatedAt: created},
			day:     "2026-01-02",
			want:    false,
		},
		{
			name:    "interval without days",
			routine: models.Routine{RepeatType: models.RepeatInterval, CreatedAt: created},
			day:     "2026-01-05",
			want:    false,
		},
		{
			name:    "once on creation day only",
			routine: models.Routine{RepeatType: models.RepeatOnce, CreatedAt: created},
			day:     "2026-01-06",
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := OccursOn(tt.routine, tt.day, time.UTC); got != tt.want {
				t.Errorf("OccursOn(%s) = %v, want %v", tt.day, got, tt.want)
			}
		})
	}
}
