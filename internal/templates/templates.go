// Package templates holds the built-in routine templates a user can start
// from instead of filling in a routine by hand.
package templates

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/routineflow/internal/models"
)

type Template struct {
	ID              string            `json:"id"`
	Title           string            `json:"title"`
	Description     string            `json:"description"`
	Icon            string            `json:"icon"`
	Category        models.Category   `json:"category"`
	TimeSlot        models.TimeSlot   `json:"time_slot"`
	DurationMinutes int               `json:"duration_minutes"`
	Color           string            `json:"color"`
	RepeatType      models.RepeatType `json:"repeat_type"`
}

var builtin = []Template{
	// Morning
	{
		ID:              "tpl_morning_water",
		Title:           "Drink water after waking",
		Description:     "Wake your body up with a glass of water",
		Icon:            "💧",
		Category:        models.CategoryWater,
		TimeSlot:        models.TimeSlotMorning,
		DurationMinutes: 1,
		Color:           "#42A5F5",
		RepeatType:      models.RepeatDaily,
	},
	{
		ID:              "tpl_morning_stretch",
		Title:           "Morning stretch",
		Description:     "Start the day with ten minutes of stretching",
		Icon:            "🧘",
		Category:        models.CategoryExercise,
		TimeSlot:        models.TimeSlotMorning,
		DurationMinutes: 10,
		Color:           "#EF5350",
		RepeatType:      models.RepeatDaily,
	},
	{
		ID:              "tpl_morning_meditation",
		Title:           "Morning meditation",
		Description:     "Five minutes of mindfulness before the day begins",
		Icon:            "🧘",
		Category:        models.CategoryMeditation,
		TimeSlot:        models.TimeSlotMorning,
		DurationMinutes: 5,
		Color:           "#AB47BC",
		RepeatType:      models.RepeatDaily,
	},
	{
		ID:              "tpl_morning_skincare",
		Title:           "Morning skincare",
		Description:     "Basic skincare after washing up",
		Icon:            "✨",
		Category:        models.CategorySkincare,
		TimeSlot:        models.TimeSlotMorning,
		DurationMinutes: 5,
		Color:           "#EC407A",
		RepeatType:      models.RepeatDaily,
	},
	// Afternoon
	{
		ID:              "tpl_lunch_walk",
		Title:           "Walk after lunch",
		Description:     "A fifteen minute walk to help digestion",
		Icon:            "🚶",
		Category:        models.CategoryExercise,
		TimeSlot:        models.TimeSlotAfternoon,
		DurationMinutes: 15,
		Color:           "#66BB6A",
		RepeatType:      models.RepeatDaily,
	},
	{
		ID:              "tpl_afternoon_water",
		Title:           "Afternoon hydration",
		Description:     "One more glass of water in the afternoon",
		Icon:            "💧",
		Category:        models.CategoryWater,
		TimeSlot:        models.TimeSlotAfternoon,
		DurationMinutes: 1,
		Color:           "#42A5F5",
		RepeatType:      models.RepeatDaily,
	},
	// Evening
	{
		ID:              "tpl_evening_exercise",
		Title:           "Evening workout",
		Description:     "Build stamina with a thirty minute workout",
		Icon:            "🏃",
		Category:        models.CategoryExercise,
		TimeSlot:        models.TimeSlotEvening,
		DurationMinutes: 30,
		Color:           "#EF5350",
		RepeatType:      models.RepeatDaily,
	},
	{
		ID:              "tpl_evening_journal",
		Title:           "Gratitude journal",
		Description:     "Write down three things you were grateful for today",
		Icon:            "📝",
		Category:        models.CategoryJournal,
		TimeSlot:        models.TimeSlotEvening,
		DurationMinutes: 5,
		Color:           "#FFB300",
		RepeatType:      models.RepeatDaily,
	},
	// Night
	{
		ID:              "tpl_night_skincare",
		Title:           "Evening skincare",
		Description:     "Your skincare routine before bed",
		Icon:            "✨",
		Category:        models.CategorySkincare,
		TimeSlot:        models.TimeSlotNight,
		DurationMinutes: 10,
		Color:           "#EC407A",
		RepeatType:      models.RepeatDaily,
	},
	{
		ID:              "tpl_night_no_phone",
		Title:           "Phone off 30 minutes before bed",
		Description:     "Cut the blue light for better sleep",
		Icon:            "📱",
		Category:        models.CategorySleep,
		TimeSlot:        models.TimeSlotNight,
		DurationMinutes: 30,
		Color:           "#5C6BC0",
		RepeatType:      models.RepeatDaily,
	},
	{
		ID:              "tpl_night_meditation",
		Title:           "Sleep meditation",
		Description:     "Settle into deep sleep with a calm meditation",
		Icon:            "🌙",
		Category:        models.CategoryMeditation,
		TimeSlot:        models.TimeSlotNight,
		DurationMinutes: 10,
		Color:           "#AB47BC",
		RepeatType:      models.RepeatDaily,
	},
}

// All returns a copy of the built-in templates in display order.
func All() []Template {
	out := make([]Template, len(builtin))
	copy(out, builtin)
	return out
}

// Get looks a template up by id.
func Get(id string) (Template, bool) {
	id = strings.TrimSpace(id)
	for _, t := range builtin {
		if t.ID == id {
			return t, true
		}
	}
	return Template{}, false
}

// ByTimeSlot groups the templates by slot. Slots without templates are
// absent from the map.
func ByTimeSlot() map[models.TimeSlot][]Template {
	groups := make(map[models.TimeSlot][]Template)
	for _, t := range builtin {
		groups[t.TimeSlot] = append(groups[t.TimeSlot], t)
	}
	return groups
}

// Options customizes a routine created from a template.
type Options struct {
	ScheduledTime         string
	ReminderEnabled       bool
	ReminderMinutesBefore int
	SortOrder             int
	Now                   time.Time
}

// Instantiate builds a new active routine from t.
func Instantiate(t Template, opts Options) (models.Routine, error) {
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	r := models.Routine{
		ID:                    uuid.New().String(),
		Title:                 t.Title,
		Description:           t.Description,
		Icon:                  t.Icon,
		Color:                 t.Color,
		Category:              t.Category,
		TimeSlot:              t.TimeSlot,
		ScheduledTime:         opts.ScheduledTime,
		DurationMinutes:       t.DurationMinutes,
		RepeatType:            t.RepeatType,
		ReminderEnabled:       opts.ReminderEnabled,
		ReminderMinutesBefore: opts.ReminderMinutesBefore,
		SortOrder:             opts.SortOrder,
		IsActive:              true,
		IsFromTemplate:        true,
		TemplateID:            t.ID,
		CreatedAt:             now,
	}
	if err := r.Validate(); err != nil {
		return models.Routine{}, fmt.Errorf("template %s: %w", t.ID, err)
	}
	return r, nil
}
