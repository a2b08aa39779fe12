package display

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/gnomegl/gitdash/internal/aggregate"
	"github.com/gnomegl/gitdash/internal/models"
)

func (d *Dashboard) renderPatterns(result *models.AnalysisResult) {
	p := result.Patterns

	d.section("COMMIT PATTERNS")
	peak := aggregate.Peak(result)
	printField(d.out, "Most active hour", peak.Hour)
	printField(d.out, "Most active day", peak.Day)
	printField(d.out, "Avg message length", fmt.Sprintf("%.1f chars", p.AvgMessageLength))
	printField(d.out, "Longest streak", fmt.Sprintf("%d days", p.LongestStreak))
	printField(d.out, "Longest gap", fmt.Sprintf("%d days", p.LongestGap))

	if p.ShortCommitsPct > 0 {
		color.New(color.FgYellow).Fprintf(d.out, "Short messages (<10 chars): %.1f%%\n", p.ShortCommitsPct)
	}
	if p.FixCommitsPct > 0 {
		color.New(color.FgBlue).Fprintf(d.out, "Fix-related commits: %.1f%%\n", p.FixCommitsPct)
	}

	if hourly := aggregate.HourlySeries(result); len(hourly) > 0 {
		fmt.Fprintln(d.out)
		d.renderHourlyGraph(hourly)
	}

	fmt.Fprintln(d.out)
	d.renderDailyGraph(aggregate.DailySeries(result))
}

// renderHourlyGraph only draws the hours that had commits.
func (d *Dashboard) renderHourlyGraph(hourly []aggregate.HourCount) {
	maxCommits := 0
	for _, h := range hourly {
		maxCommits = max(maxCommits, h.Commits)
	}

	fmt.Fprintln(d.out, labelColor.Sprint("Hourly activity:"))
	for _, h := range hourly {
		var colorFn func(format string, a ...interface{}) string
		switch {
		case h.Hour >= 22 || h.Hour <= 2:
			colorFn = color.RedString
		case h.Hour >= 5 && h.Hour <= 7:
			colorFn = color.GreenString
		case h.Hour >= 9 && h.Hour <= 17:
			colorFn = color.BlueString
		default:
			colorFn = color.YellowString
		}
		fmt.Fprintf(d.out, "%5s |%s %d\n", h.Label,
			colorFn("%-*s", d.term.graphWidth, bar(h.Commits, maxCommits, d.term.graphWidth)), h.Commits)
	}
}

func (d *Dashboard) renderDailyGraph(daily []aggregate.DayCount) {
	maxCommits := 0
	for _, day := range daily {
		maxCommits = max(maxCommits, day.Commits)
	}

	fmt.Fprintln(d.out, labelColor.Sprint("Daily activity:"))
	for _, day := range daily {
		fmt.Fprintf(d.out, "%5s |%s %d\n", day.Label,
			color.CyanString("%-*s", d.term.graphWidth, bar(day.Commits, maxCommits, d.term.graphWidth)), day.Commits)
	}
}
