package views

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/routineflow/internal/analytics"
	"github.com/julianstephens/routineflow/internal/cli"
	"github.com/julianstephens/routineflow/internal/utils"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Width(18)

	valueStyle = lipgloss.NewStyle().Bold(true)

	barFilledStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	barEmptyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("236"))

	insightStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Italic(true)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1)
)

const barWidth = 20

type StatsCmd struct {
	Date string `help:"Report as of this day (YYYY-MM-DD, defaults to today)."`
	JSON bool   `help:"Print the report as JSON."`
}

func (c *StatsCmd) Run(ctx *cli.Context) error {
	svc, err := ctx.Tracker()
	if err != nil {
		return err
	}
	routines, logs, err := svc.Snapshot()
	if err != nil {
		return err
	}

	today := svc.Today()
	if c.Date != "" {
		if _, err := utils.ParseDayKey(c.Date); err != nil {
			return fmt.Errorf("invalid date %q: %w", c.Date, err)
		}
		today = c.Date
	}

	overview := analytics.Compute(routines, logs, today)
	if c.JSON {
		data, err := json.MarshalIndent(overview, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal stats: %w", err)
		}
		ctx.Println(string(data))
		return nil
	}

	ctx.Println(RenderOverview(overview, today))
	return nil
}

// bar draws a rate between 0 and 100 as a fixed-width bar.
func bar(rate int) string {
	filled := rate * barWidth / 100
	if filled > barWidth {
		filled = barWidth
	}
	if filled < 0 {
		filled = 0
	}
	return barFilledStyle.Render(strings.Repeat("█", filled)) +
		barEmptyStyle.Render(strings.Repeat("░", barWidth-filled))
}

func row(label, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(label), valueStyle.Render(value))
}

// RenderOverview lays the adherence report out for the terminal.
func RenderOverview(o analytics.Overview, today string) string {
	var b strings.Builder

	summary := []string{
		titleStyle.Render("Routine stats for " + today),
		row("Today", fmt.Sprintf("%d/%d (%d%%)", o.TodayCompleted, o.TodayTotal, o.TodayRate)),
		row("7-day average", fmt.Sprintf("%d%%", o.WeeklyAvgRate)),
		row("30-day average", fmt.Sprintf("%d%%", o.MonthlyAvgRate)),
		row("Current streak", fmt.Sprintf("%d days", o.CurrentStreak)),
		row("Longest streak", fmt.Sprintf("%d days", o.LongestStreak)),
		row("Completions", fmt.Sprintf("%d", o.TotalCompletions)),
	}
	if o.LastActiveDate != "" {
		summary = append(summary, row("Last active", o.LastActiveDate))
	}
	b.WriteString(boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, summary...)))
	b.WriteString("\n\n")

	b.WriteString(titleStyle.Render("Last 7 days"))
	b.WriteString("\n")
	for _, d := range o.WeeklyTrend {
		b.WriteString(fmt.Sprintf("  %s %s %s %3d%%\n", d.DateKey, d.Weekday, bar(d.Rate), d.Rate))
	}

	if len(o.TimeSlotStats) > 0 {
		b.WriteString("\n")
		b.WriteString(titleStyle.Render("By time slot"))
		b.WriteString("\n")
		for _, s := range o.TimeSlotStats {
			b.WriteString(fmt.Sprintf("  %-10s %s %3d%% (%d/%d)\n", s.Label, bar(s.Rate), s.Rate, s.CompletedCount, s.Count))
		}
	}

	if len(o.CategoryStats) > 0 {
		b.WriteString("\n")
		b.WriteString(titleStyle.Render("By category"))
		b.WriteString("\n")
		for _, s := range o.CategoryStats {
			b.WriteString(fmt.Sprintf("  %-10s %s %3d%% (%d/%d)\n", s.Label, bar(s.Rate), s.Rate, s.CompletedCount, s.Count))
		}
	}

	if len(o.Insights) > 0 {
		b.WriteString("\n")
		for _, insight := range o.Insights {
			b.WriteString(insightStyle.Render(insight))
			b.WriteString("\n")
		}
	}

	return strings.TrimRight(b.String(), "\n")
}
