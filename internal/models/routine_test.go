package models

import (
	"testing"
	"time"
)

func TestRoutine_Validate(t *testing.T) {
	base := func() Routine {
		return Routine{
			ID:         "test-id",
			Title:      "Morning stretch",
			Category:   CategoryExercise,
			TimeSlot:   TimeSlotMorning,
			RepeatType: RepeatDaily,
			IsActive:   true,
			CreatedAt:  time.Now(),
		}
	}

	tests := []struct {
		name    string
		mutate  func(r *Routine)
		wantErr bool
	}{
		{
			name:    "valid daily routine",
			mutate:  func(r *Routine) {},
			wantErr: false,
		},
		{
			name: "valid single digit hour",
			mutate: func(r *Routine) {
				r.ScheduledTime = "7:05"
			},
			wantErr: false,
		},
		{
			name: "empty title",
			mutate: func(r *Routine) {
				r.Title = "   "
			},
			wantErr: true,
		},
		{
			name: "unknown category",
			mutate: func(r *Routine) {
				r.Category = "gaming"
			},
			wantErr: true,
		},
		{
			name: "unknown time slot",
			mutate: func(r *Routine) {
				r.TimeSlot = "dawn"
			},
			wantErr: true,
		},
		{
			name: "malformed scheduled time",
			mutate: func(r *Routine) {
				r.ScheduledTime = "7am"
			},
			wantErr: true,
		},
		{
			name: "scheduled time out of range",
			mutate: func(r *Routine) {
				r.ScheduledTime = "24:10"
			},
			wantErr: true,
		},
		{
			name: "interval without days",
			mutate: func(r *Routine) {
				r.RepeatType = RepeatInterval
			},
			wantErr: true,
		},
		{
			name: "valid interval",
			mutate: func(r *Routine) {
				r.RepeatType = RepeatInterval
				r.RepeatIntervalDays = 3
			},
			wantErr: false,
		},
		{
			name: "specific days without codes",
			mutate: func(r *Routine) {
				r.RepeatType = RepeatSpecificDays
			},
			wantErr: true,
		},
		{
			name: "specific days with bad code",
			mutate: func(r *Routine) {
				r.RepeatType = RepeatSpecificDays
				r.FrequencyValue = "mon,funday"
			},
			wantErr: true,
		},
		{
			name: "valid specific days",
			mutate: func(r *Routine) {
				r.RepeatType = RepeatSpecificDays
				r.FrequencyValue = "mon, WED,fri"
			},
			wantErr: false,
		},
		{
			name: "negative reminder offset",
			mutate: func(r *Routine) {
				r.ReminderMinutesBefore = -5
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := base()
			tt.mutate(&r)
			err := r.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestWeekdayConversions(t *testing.T) {
	for _, wd := range []time.Weekday{time.Sunday, time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday} {
		code := WeekdayFromTime(wd)
		if !code.Valid() {
			t.Fatalf("WeekdayFromTime(%v) produced invalid code %q", wd, code)
		}
		if got := code.TimeWeekday(); got != wd {
			t.Errorf("round trip for %v: got %v", wd, got)
		}
	}

	if WeekdayFromTime(time.Sunday) != Sunday {
		t.Errorf("expected Sunday to map to %q", Sunday)
	}
	if !Monday.Before(Sunday) {
		t.Error("expected Monday to come before Sunday in a Monday-first week")
	}
}

func TestParseEnums(t *testing.T) {
	if c, err := ParseCategory(" Water "); err != nil || c != CategoryWater {
		t.Errorf("ParseCategory: got %q, %v", c, err)
	}
	if _, err := ParseCategory("gaming"); err == nil {
		t.Error("expected error for unknown category")
	}
	if s, err := ParseTimeSlot("EVENING"); err != nil || s != TimeSlotEvening {
		t.Errorf("ParseTimeSlot: got %q, %v", s, err)
	}
	if r, err := ParseRepeatType("specific_days"); err != nil || r != RepeatSpecificDays {
		t.Errorf("ParseRepeatType: got %q, %v", r, err)
	}
	if _, err := ParseRepeatType("monthly"); err == nil {
		t.Error("expected error for unknown repeat type")
	}
}

func TestSettingsMapRoundTrip(t *testing.T) {
	in := DefaultSettings()
	in.Timezone = "Asia/Seoul"
	in.WidgetAlarmLimit = 3

	out, err := MapToSettings(SettingsToMap(in))
	if err != nil {
		t.Fatalf("MapToSettings failed: %v", err)
	}
	if out != in {
		t.Errorf("expected %+v, got %+v", in, out)
	}
}
