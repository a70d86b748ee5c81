package widget

import (
	"encoding/json"
	"time"

	"github.com/julianstephens/routineflow/internal/models"
)

type Quote struct {
	Text   string `json:"text"`
	Author string `json:"author"`
}

var quotes = []Quote{
	{Text: "Small habits make big changes.", Author: "James Clear"},
	{Text: "Give today your best.", Author: "RoutineFlow"},
	{Text: "Consistency beats talent.", Author: "Angela Duckworth"},
	{Text: "Well begun is half done.", Author: "Proverb"},
	{Text: "Make today a little better than yesterday.", Author: "RoutineFlow"},
	{Text: "Trust the power of habit.", Author: "Charles Duhigg"},
	{Text: "It doesn't have to be perfect. It just has to be steady.", Author: "RoutineFlow"},
}

// DailyMotivation picks the quote of the day by rotating on the day of year.
func DailyMotivation(now time.Time) Quote {
	return quotes[now.YearDay()%len(quotes)]
}

// Snapshot is the document handed to the widget host.
type Snapshot struct {
	Progress   ProgressView `json:"progress"`
	Routines   ListView     `json:"routines"`
	Motivation Quote        `json:"motivation"`
	NextAlarm  *AlarmItem   `json:"next_alarm"`
	UpdatedAt  time.Time    `json:"updated_at"`
}

// BuildSnapshot assembles every widget view for now. alarmLimit caps the
// upcoming alarms on the progress card.
func BuildSnapshot(routines []models.Routine, logs []models.RoutineLog, now time.Time, alarmLimit int) Snapshot {
	progress := DailyProgress(routines, logs, now)
	progress.UpcomingAlarms = UpcomingAlarms(routines, logs, now, alarmLimit)

	return Snapshot{
		Progress:   progress,
		Routines:   RoutineList(routines, logs, now),
		Motivation: DailyMotivation(now),
		NextAlarm:  NextAlarm(routines, logs, now),
		UpdatedAt:  now,
	}
}

func (s Snapshot) Marshal() ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}
