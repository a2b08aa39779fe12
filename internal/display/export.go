package display

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/gnomegl/gitdash/internal/aggregate"
	"github.com/gnomegl/gitdash/internal/models"
)

// JSONOutput is every dashboard view of one analysis in a single document.
type JSONOutput struct {
	Target          string                    `json:"target"`
	GeneratedAt     time.Time                 `json:"generated_at"`
	Summary         JSONSummary               `json:"summary"`
	Peak            aggregate.PeakActivity    `json:"peak"`
	Patterns        JSONPatterns              `json:"patterns"`
	Hourly          []aggregate.HourCount     `json:"hourly"`
	Daily           []aggregate.DayCount      `json:"daily"`
	Languages       []aggregate.LanguageShare `json:"languages"`
	TopWords        []models.WordCount        `json:"top_words"`
	Actions         []aggregate.ActionCount   `json:"actions"`
	RecentCommits   []aggregate.RecentCommit  `json:"recent_commits"`
	Repos           []aggregate.RepoCard      `json:"repos"`
	Recommendations []models.Recommendation   `json:"recommendations"`
}

type JSONSummary struct {
	TotalRepos   int     `json:"total_repos"`
	TotalCommits int     `json:"total_commits"`
	ActiveRepos  int     `json:"active_repos"`
	DaysActive   int     `json:"days_active"`
	AvgStars     float64 `json:"avg_stars"`
	AvgForks     float64 `json:"avg_forks"`
}

type JSONPatterns struct {
	AvgMessageLength float64 `json:"avg_message_length"`
	ShortCommitsPct  float64 `json:"short_commits_pct"`
	FixCommitsPct    float64 `json:"fix_commits_pct"`
	LongestStreak    int     `json:"longest_streak"`
	LongestGap       int     `json:"longest_gap"`
}

func NewJSONOutput(target string, result *models.AnalysisResult, now time.Time) JSONOutput {
	out := JSONOutput{
		Target:          target,
		GeneratedAt:     now.UTC(),
		Peak:            aggregate.Peak(result),
		Hourly:          aggregate.HourlySeries(result),
		Daily:           aggregate.DailySeries(result),
		Languages:       aggregate.LanguageDistribution(result),
		TopWords:        aggregate.TopWords(result),
		Actions:         aggregate.ActionWordCounts(result),
		RecentCommits:   aggregate.RecentCommits(result),
		Repos:           aggregate.RepoCards(result),
		Recommendations: []models.Recommendation{},
	}
	if result == nil {
		return out
	}

	s := result.Summary
	out.Summary = JSONSummary{
		TotalRepos:   s.TotalRepos,
		TotalCommits: s.TotalCommits,
		ActiveRepos:  s.ActiveRepos,
		DaysActive:   s.DaysActive,
		AvgStars:     s.AvgStars,
		AvgForks:     s.AvgForks,
	}
	p := result.Patterns
	out.Patterns = JSONPatterns{
		AvgMessageLength: p.AvgMessageLength,
		ShortCommitsPct:  p.ShortCommitsPct,
		FixCommitsPct:    p.FixCommitsPct,
		LongestStreak:    p.LongestStreak,
		LongestGap:       p.LongestGap,
	}
	if result.Recommendations != nil {
		out.Recommendations = result.Recommendations
	}
	return out
}

func OutputJSON(w io.Writer, target string, result *models.AnalysisResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(NewJSONOutput(target, result, time.Now())); err != nil {
		return fmt.Errorf("failed to write JSON output: %w", err)
	}
	return nil
}
