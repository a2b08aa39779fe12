// Package display renders analysis results and session activity on the
// terminal.
package display

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/gnomegl/gitdash/internal/models"
	"github.com/gnomegl/gitdash/internal/session"
)

// Dashboard draws the dashboard tabs as text.
type Dashboard struct {
	out  io.Writer
	term *terminalInfo
}

func NewDashboard(out io.Writer) *Dashboard {
	if out == nil {
		out = os.Stdout
	}
	return &Dashboard{out: out, term: getTerminalInfo(out)}
}

// Render draws a single tab.
func (d *Dashboard) Render(identity string, result *models.AnalysisResult, tab session.Tab) {
	if result == nil {
		color.New(color.FgYellow).Fprintln(d.out, "No analysis available")
		return
	}

	fmt.Fprintln(d.out)
	headerColor.Fprintf(d.out, "GITHUB ANALYSIS: %s\n", identity)

	switch tab {
	case session.TabCommits:
		d.renderCommits(result)
	case session.TabRepos:
		d.renderRepos(result)
	case session.TabPatterns:
		d.renderPatterns(result)
	case session.TabRecommendations:
		d.renderRecommendations(result)
	default:
		d.renderOverview(result)
	}
}

// RenderAll draws every tab in order.
func (d *Dashboard) RenderAll(identity string, result *models.AnalysisResult) {
	if result == nil {
		d.Render(identity, nil, session.TabOverview)
		return
	}

	fmt.Fprintln(d.out)
	headerColor.Fprintf(d.out, "GITHUB ANALYSIS: %s\n", identity)
	d.renderOverview(result)
	d.renderCommits(result)
	d.renderRepos(result)
	d.renderPatterns(result)
	d.renderRecommendations(result)
}

func (d *Dashboard) renderRecommendations(result *models.AnalysisResult) {
	d.section("RECOMMENDATIONS")
	if len(result.Recommendations) == 0 {
		fmt.Fprintln(d.out, "No recommendations")
		return
	}

	for i, rec := range result.Recommendations {
		if i > 0 {
			fmt.Fprintln(d.out)
		}
		color.New(color.FgGreen).Fprintf(d.out, "[%s] ", rec.Category)
		color.New(color.Bold).Fprintln(d.out, rec.Title)
		fmt.Fprintf(d.out, "  %s\n", rec.Description)
	}
}
