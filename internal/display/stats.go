package display

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/gnomegl/gitdash/internal/aggregate"
	"github.com/gnomegl/gitdash/internal/models"
)

func (d *Dashboard) renderOverview(result *models.AnalysisResult) {
	s := result.Summary

	d.section("OVERVIEW")
	fmt.Fprintf(d.out, "%s %d  %s %d  %s %d  %s %d  %s %.1f\n",
		labelColor.Sprint("Repos:"), s.TotalRepos,
		labelColor.Sprint("Commits:"), s.TotalCommits,
		labelColor.Sprint("Active repos:"), s.ActiveRepos,
		labelColor.Sprint("Days active:"), s.DaysActive,
		labelColor.Sprint("Avg stars:"), s.AvgStars)

	peak := aggregate.Peak(result)
	printField(d.out, "Peak hour", peak.Hour)
	printField(d.out, "Peak day", peak.Day)

	if langs := aggregate.LanguageDistribution(result); len(langs) > 0 {
		fmt.Fprintln(d.out)
		fmt.Fprintln(d.out, labelColor.Sprint("Languages:"))
		maxCount := langs[0].Value
		for _, l := range langs {
			fmt.Fprintf(d.out, "  %-14s %s %d\n",
				truncateString(l.Name, 14), color.CyanString("%-*s", d.term.graphWidth, bar(l.Value, maxCount, d.term.graphWidth)), l.Value)
		}
	}

	if recent := aggregate.RecentCommits(result); len(recent) > 0 {
		fmt.Fprintln(d.out)
		fmt.Fprintln(d.out, labelColor.Sprint("Recent commits:"))
		for _, c := range recent {
			date := "unknown"
			if !c.Date.IsZero() {
				date = c.Date.Format("2006-01-02 15:04")
			}
			fmt.Fprintf(d.out, "  %s %s %s\n",
				color.CyanString(c.Repo), date, truncateString(c.Headline, d.term.maxDisplay-40))
		}
	}
}

func (d *Dashboard) renderRepos(result *models.AnalysisResult) {
	cards := aggregate.RepoCards(result)

	d.section(fmt.Sprintf("REPOSITORIES (%d)", len(result.Repos)))
	if len(cards) == 0 {
		fmt.Fprintln(d.out, "No repositories")
		return
	}

	for i, card := range cards {
		if i > 0 {
			fmt.Fprintln(d.out)
		}
		color.New(color.Bold, color.FgGreen).Fprintln(d.out, card.Name)
		fmt.Fprintf(d.out, "  %s\n", truncateString(card.Description, d.term.maxDisplay-2))

		lang := card.Language
		if lang == "" {
			lang = "-"
		}
		fmt.Fprintf(d.out, "  %s %d  %s %d  %s %s  %s %.2f MB\n",
			labelColor.Sprint("Stars:"), card.Stars,
			labelColor.Sprint("Forks:"), card.Forks,
			labelColor.Sprint("Language:"), lang,
			labelColor.Sprint("Size:"), card.SizeMB)
		if card.URL != "" {
			fmt.Fprintf(d.out, "  %s\n", color.BlueString(card.URL))
		}
	}
}
