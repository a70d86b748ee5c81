package analytics

import (
	"fmt"

	"github.com/julianstephens/routineflow/internal/constants"
)

const (
	InsightNoRoutines   = "Add a routine to start seeing stats and insights!"
	InsightAllDone      = "🎉 You completed every routine today. Amazing!"
	InsightNearlyDone   = "👍 Almost there today. Just a little more!"
	InsightGoodStart    = "💪 Great start! Keep checking them off one by one."
	InsightAboveAverage = "📈 You're doing better today than your weekly average!"
)

type insightInput struct {
	todayRate     int
	weeklyAvgRate int
	streak        int
	categoryStats []CategoryStats
	timeSlotStats []TimeSlotStats
	totalRoutines int
}

// generateInsights applies the insight rules in order and keeps the first
// constants.MaxInsights matches.
func generateInsights(in insightInput) []string {
	if in.totalRoutines == 0 {
		return []string{InsightNoRoutines}
	}

	var insights []string

	switch {
	case in.todayRate == 100:
		insights = append(insights, InsightAllDone)
	case in.todayRate >= constants.TodayRateNearlyDone:
		insights = append(insights, InsightNearlyDone)
	case in.todayRate > 0:
		insights = append(insights, InsightGoodStart)
	}

	switch {
	case in.streak >= constants.StreakTierStrong:
		insights = append(insights, fmt.Sprintf("🔥 %d days in a row! Your consistency is shining.", in.streak))
	case in.streak >= constants.StreakTierBuilding:
		insights = append(insights, fmt.Sprintf("✨ %d-day streak! A habit is taking shape.", in.streak))
	}

	if in.weeklyAvgRate > 0 && in.todayRate > in.weeklyAvgRate {
		insights = append(insights, InsightAboveAverage)
	}

	if len(in.timeSlotStats) > 0 {
		best := in.timeSlotStats[0]
		for _, s := range in.timeSlotStats[1:] {
			if s.Rate > best.Rate {
				best = s
			}
		}
		if best.Rate > 0 {
			insights = append(insights, fmt.Sprintf("⏰ %s routines have your highest completion rate (%d%%).", best.Label, best.Rate))
		}
	}

	if len(in.categoryStats) > 0 {
		best := in.categoryStats[0]
		for _, c := range in.categoryStats[1:] {
			if c.Rate > best.Rate {
				best = c
			}
		}
		if best.Rate > 0 {
			insights = append(insights, fmt.Sprintf("🏷️ You're doing best at %s routines.", best.Label))
		}
	}

	if len(insights) > constants.MaxInsights {
		insights = insights[:constants.MaxInsights]
	}
	return insights
}
