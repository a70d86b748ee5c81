// Package streak derives current and longest adherence streaks from the
// completion index.
package streak

import (
	"github.com/julianstephens/routineflow/internal/completion"
	"github.com/julianstephens/routineflow/internal/constants"
	"github.com/julianstephens/routineflow/internal/models"
	"github.com/julianstephens/routineflow/internal/utils"
)

// Info summarises streak state as of a given day.
type Info struct {
	Current        int    `json:"current"`
	Longest        int    `json:"longest"`
	LastActiveDate string `json:"last_active_date"`
}

// IsActiveDay reports whether at least half of active were completed on day.
// The denominator is always the current active set, never the set as it
// was on that day.
func IsActiveDay(active []models.Routine, idx completion.Index, day string) bool {
	if len(active) == 0 {
		return false
	}
	rate := float64(idx.CompletedCount(day, active)) / float64(len(active))
	return rate >= constants.ActiveDayThreshold
}

// Compute scans today, today-1, ... today-364 and returns the streak state.
//
// Current is only ever assigned from the running count on today (i == 0) or,
// when today left it at zero, on yesterday (i == 1). It is therefore 0 or 1;
// the length of the run behind it is reported through Longest.
func Compute(active []models.Routine, idx completion.Index, today string) Info {
	if len(active) == 0 {
		return Info{}
	}

	start, err := utils.ParseDayKey(today)
	if err != nil {
		return Info{}
	}

	var info Info
	temp := 0

	for i := 0; i < constants.StreakWindowDays; i++ {
		day := start.AddDate(0, 0, -i).Format(constants.DateFormat)

		if IsActiveDay(active, idx, day) {
			temp++
			if i == 0 || (i == 1 && info.Current == 0) {
				info.Current = temp
			}
			if info.LastActiveDate == "" {
				info.LastActiveDate = day
			}
			continue
		}

		info.Longest = max(info.Longest, temp)
		temp = 0
	}
	info.Longest = max(info.Longest, temp)

	return info
}
