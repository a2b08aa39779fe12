package display

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/gnomegl/gitdash/internal/aggregate"
	"github.com/gnomegl/gitdash/internal/models"
)

func (d *Dashboard) renderCommits(result *models.AnalysisResult) {
	d.section(fmt.Sprintf("COMMITS (%d)", len(result.Commits)))

	if len(result.Commits) == 0 {
		fmt.Fprintln(d.out, "No commits")
	}

	lastRepo := ""
	for _, commit := range result.Commits {
		if commit.RepoName != lastRepo {
			color.New(color.FgCyan).Fprintf(d.out, "  %s\n", commit.RepoName)
			lastRepo = commit.RepoName
		}

		msg := commit.Message
		if idx := strings.IndexByte(msg, '\n'); idx >= 0 {
			msg = msg[:idx]
		}
		date := ""
		if !commit.Date.IsZero() {
			date = commit.Date.Format("2006-01-02 15:04")
		}
		fmt.Fprintf(d.out, "    %s %s %s\n",
			color.YellowString(commit.SHA[:min(8, len(commit.SHA))]), date, truncateString(msg, d.term.maxDisplay-30))
	}

	if words := aggregate.TopWords(result); len(words) > 0 {
		fmt.Fprintln(d.out)
		fmt.Fprintln(d.out, labelColor.Sprint("Top words:"))
		maxCount := words[0].Count
		for _, w := range words {
			if w.Count > maxCount {
				maxCount = w.Count
			}
		}
		for _, w := range words {
			fmt.Fprintf(d.out, "  %-14s %s %d\n", truncateString(w.Word, 14),
				color.MagentaString("%-*s", d.term.graphWidth, bar(w.Count, maxCount, d.term.graphWidth)), w.Count)
		}
	}

	if actions := aggregate.ActionWordCounts(result); len(actions) > 0 {
		fmt.Fprintln(d.out)
		fmt.Fprintln(d.out, labelColor.Sprint("Commit actions:"))
		maxCount := actions[0].Count
		for _, a := range actions {
			fmt.Fprintf(d.out, "  %-14s %s %d\n", a.Action,
				color.GreenString("%-*s", d.term.graphWidth, bar(a.Count, maxCount, d.term.graphWidth)), a.Count)
		}
	}
}
