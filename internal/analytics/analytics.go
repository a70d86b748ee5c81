// Package analytics composes the completion index and the streak engine into
// an adherence report.
package analytics

import (
	"math"

	"github.com/julianstephens/routineflow/internal/completion"
	"github.com/julianstephens/routineflow/internal/constants"
	"github.com/julianstephens/routineflow/internal/models"
	"github.com/julianstephens/routineflow/internal/streak"
	"github.com/julianstephens/routineflow/internal/utils"
)

// DailyStats is one day of the trend, measured against today's active count.
type DailyStats struct {
	DateKey        string         `json:"date_key"`
	Weekday        models.Weekday `json:"weekday"`
	CompletedCount int            `json:"completed_count"`
	TotalCount     int            `json:"total_count"`
	Rate           int            `json:"rate"` // 0-100
}

type CategoryStats struct {
	Category       models.Category `json:"category"`
	Label          string          `json:"label"`
	Count          int             `json:"count"`
	CompletedCount int             `json:"completed_count"`
	Rate           int             `json:"rate"`
}

type TimeSlotStats struct {
	TimeSlot       models.TimeSlot `json:"time_slot"`
	Label          string          `json:"label"`
	Count          int             `json:"count"`
	CompletedCount int             `json:"completed_count"`
	Rate           int             `json:"rate"`
}

// Overview is the full adherence report for one day.
type Overview struct {
	TodayRate        int             `json:"today_rate"`
	TodayCompleted   int             `json:"today_completed"`
	TodayTotal       int             `json:"today_total"`
	WeeklyAvgRate    int             `json:"weekly_avg_rate"`
	MonthlyAvgRate   int             `json:"monthly_avg_rate"`
	CurrentStreak    int             `json:"current_streak"`
	LongestStreak    int             `json:"longest_streak"`
	LastActiveDate   string          `json:"last_active_date,omitempty"`
	TotalCompletions int             `json:"total_completions"`
	WeeklyTrend      []DailyStats    `json:"weekly_trend"`
	CategoryStats    []CategoryStats `json:"category_stats"`
	TimeSlotStats    []TimeSlotStats `json:"time_slot_stats"`
	Insights         []string        `json:"insights"`
}

// Rate returns round(100*completed/total), or 0 when total is 0.
func Rate(completed, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}

// ActiveRoutines filters routines down to the active ones, preserving order.
func ActiveRoutines(routines []models.Routine) []models.Routine {
	active := make([]models.Routine, 0, len(routines))
	for _, r := range routines {
		if r.IsActive {
			active = append(active, r)
		}
	}
	return active
}

// Compute builds the adherence overview for today (a day key).
func Compute(routines []models.Routine, logs []models.RoutineLog, today string) Overview {
	active := ActiveRoutines(routines)
	idx := completion.Build(logs)
	total := len(active)

	overview := Overview{
		TodayCompleted:   idx.CompletedCount(today, active),
		TodayTotal:       total,
		TotalCompletions: idx.Total(),
	}
	overview.TodayRate = Rate(overview.TodayCompleted, total)

	overview.WeeklyTrend = weeklyTrend(active, idx, today)
	if len(overview.WeeklyTrend) > 0 {
		sum := 0
		for _, d := range overview.WeeklyTrend {
			sum += d.Rate
		}
		overview.WeeklyAvgRate = int(math.Round(float64(sum) / float64(len(overview.WeeklyTrend))))
	}
	overview.MonthlyAvgRate = monthlyAverage(active, idx, today)

	info := streak.Compute(active, idx, today)
	overview.CurrentStreak = info.Current
	overview.LongestStreak = info.Longest
	overview.LastActiveDate = info.LastActiveDate

	overview.CategoryStats = categoryBreakdown(active, idx, today)
	overview.TimeSlotStats = timeSlotBreakdown(active, idx, today)

	overview.Insights = generateInsights(insightInput{
		todayRate:     overview.TodayRate,
		weeklyAvgRate: overview.WeeklyAvgRate,
		streak:        overview.CurrentStreak,
		categoryStats: overview.CategoryStats,
		timeSlotStats: overview.TimeSlotStats,
		totalRoutines: total,
	})

	return overview
}

func weeklyTrend(active []models.Routine, idx completion.Index, today string) []DailyStats {
	days, err := utils.LastNDays(today, constants.WeeklyTrendDays)
	if err != nil {
		return nil
	}
	total := len(active)
	trend := make([]DailyStats, 0, len(days))
	for _, day := range days {
		completed := idx.CompletedCount(day, active)
		wd, _ := utils.WeekdayCodeOfKey(day)
		trend = append(trend, DailyStats{
			DateKey:        day,
			Weekday:        wd,
			CompletedCount: completed,
			TotalCount:     total,
			Rate:           Rate(completed, total),
		})
	}
	return trend
}

// monthlyAverage averages the unrounded daily rates of the last 30 days.
func monthlyAverage(active []models.Routine, idx completion.Index, today string) int {
	total := len(active)
	if total == 0 {
		return 0
	}
	days, err := utils.LastNDays(today, constants.MonthlyAverageDays)
	if err != nil || len(days) == 0 {
		return 0
	}
	sum := 0.0
	for _, day := range days {
		sum += float64(idx.CompletedCount(day, active)) / float64(total) * 100
	}
	return int(math.Round(sum / float64(len(days))))
}

// categoryBreakdown groups active by category, in the order each category
// first appears in active.
func categoryBreakdown(active []models.Routine, idx completion.Index, today string) []CategoryStats {
	stats := make([]CategoryStats, 0, len(models.Categories))
	pos := make(map[models.Category]int)
	for _, r := range active {
		i, ok := pos[r.Category]
		if !ok {
			i = len(stats)
			pos[r.Category] = i
			stats = append(stats, CategoryStats{Category: r.Category, Label: r.Category.Label()})
		}
		stats[i].Count++
		if idx.IsCompleted(today, r.ID) {
			stats[i].CompletedCount++
		}
	}
	for i := range stats {
		stats[i].Rate = Rate(stats[i].CompletedCount, stats[i].Count)
	}
	return stats
}

func timeSlotBreakdown(active []models.Routine, idx completion.Index, today string) []TimeSlotStats {
	stats := make([]TimeSlotStats, 0, len(models.TimeSlots))
	pos := make(map[models.TimeSlot]int)
	for _, r := range active {
		i, ok := pos[r.TimeSlot]
		if !ok {
			i = len(stats)
			pos[r.TimeSlot] = i
			stats = append(stats, TimeSlotStats{TimeSlot: r.TimeSlot, Label: r.TimeSlot.Label()})
		}
		stats[i].Count++
		if idx.IsCompleted(today, r.ID) {
			stats[i].CompletedCount++
		}
	}
	for i := range stats {
		stats[i].Rate = Rate(stats[i].CompletedCount, stats[i].Count)
	}
	return stats
}
