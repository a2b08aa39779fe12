// Package payload turns the loosely typed analysis response into a
// models.AnalysisResult. It never fails: anything absent or malformed becomes
// the zero value of the field it was meant to fill.
package payload

import (
	"math"
	"strings"
	"time"

	"github.com/gnomegl/gitdash/internal/models"
	"github.com/tidwall/gjson"
)

// Validate reads raw as an analysis payload. Invalid JSON yields an empty
// result rather than an error.
func Validate(raw []byte) *models.AnalysisResult {
	root := gjson.ParseBytes(raw)
	if !root.IsObject() {
		return empty()
	}

	return &models.AnalysisResult{
		Summary:         summary(root.Get("summary")),
		Commits:         commits(root.Get("commits")),
		Repos:           repos(root.Get("repos")),
		Patterns:        patterns(root.Get("patterns")),
		MessageAnalysis: messageAnalysis(root.Get("message_analysis")),
		Recommendations: recommendations(root.Get("recommendations")),
	}
}

// ValidateString is Validate for payloads already held as a string.
func ValidateString(raw string) *models.AnalysisResult {
	return Validate([]byte(raw))
}

func empty() *models.AnalysisResult {
	return &models.AnalysisResult{
		Summary:  models.Summary{Languages: map[string]int{}},
		Commits:  []models.Commit{},
		Repos:    []models.Repo{},
		Patterns: patterns(gjson.Result{}),
		MessageAnalysis: models.MessageAnalysis{
			WordFreq:     []models.WordCount{},
			ActionCounts: map[string]int{},
		},
		Recommendations: []models.Recommendation{},
	}
}

func summary(r gjson.Result) models.Summary {
	return models.Summary{
		TotalRepos:   integer(r.Get("total_repos")),
		TotalCommits: integer(r.Get("total_commits")),
		ActiveRepos:  integer(r.Get("active_repos")),
		DaysActive:   integer(r.Get("days_active")),
		AvgStars:     number(r.Get("avg_stars")),
		AvgForks:     number(r.Get("avg_forks")),
		Languages:    counts(r.Get("languages")),
	}
}

func commits(r gjson.Result) []models.Commit {
	out := []models.Commit{}
	if !r.IsArray() {
		return out
	}
	for _, c := range r.Array() {
		if !c.IsObject() {
			continue
		}
		out = append(out, models.Commit{
			RepoName:   text(c.Get("repo_name")),
			SHA:        text(c.Get("sha")),
			Message:    text(c.Get("message")),
			AuthorName: text(c.Get("author_name")),
			URL:        text(c.Get("url")),
			Date:       timestamp(c.Get("date")),
		})
	}
	return out
}

func repos(r gjson.Result) []models.Repo {
	out := []models.Repo{}
	if !r.IsArray() {
		return out
	}
	for _, repo := range r.Array() {
		if !repo.IsObject() {
			continue
		}
		out = append(out, models.Repo{
			Name:        text(repo.Get("name")),
			Description: text(repo.Get("description")),
			URL:         text(repo.Get("url")),
			Stars:       integer(repo.Get("stars")),
			Forks:       integer(repo.Get("forks")),
			Language:    text(repo.Get("language")),
			SizeKB:      integer(repo.Get("size")),
		})
	}
	return out
}

func patterns(r gjson.Result) models.Patterns {
	p := models.Patterns{
		HourlyCommits:    counts(r.Get("hourly_commits")),
		DailyCommits:     counts(r.Get("daily_commits")),
		MonthlyCommits:   counts(r.Get("monthly_commits")),
		AvgMessageLength: number(r.Get("avg_message_length")),
		ShortCommitsPct:  number(r.Get("short_commits_pct")),
		FixCommitsPct:    number(r.Get("fix_commits_pct")),
		LongestStreak:    integer(r.Get("longest_streak")),
		LongestGap:       integer(r.Get("longest_gap")),
		PeakDay:          text(r.Get("peak_day")),
	}
	if peak := r.Get("peak_hour"); isNumber(peak) {
		hour := integer(peak)
		p.PeakHour = &hour
	}
	return p
}

func messageAnalysis(r gjson.Result) models.MessageAnalysis {
	ma := models.MessageAnalysis{
		WordFreq:     []models.WordCount{},
		ActionCounts: counts(r.Get("action_counts")),
	}

	freq := r.Get("word_freq")
	if !freq.IsArray() {
		return ma
	}
	for _, pair := range freq.Array() {
		switch {
		case pair.IsArray():
			items := pair.Array()
			if len(items) == 0 {
				continue
			}
			wc := models.WordCount{Word: text(items[0])}
			if len(items) > 1 {
				wc.Count = integer(items[1])
			}
			ma.WordFreq = append(ma.WordFreq, wc)
		case pair.IsObject():
			ma.WordFreq = append(ma.WordFreq, models.WordCount{
				Word:  text(pair.Get("word")),
				Count: integer(pair.Get("count")),
			})
		}
	}
	return ma
}

func recommendations(r gjson.Result) []models.Recommendation {
	out := []models.Recommendation{}
	if !r.IsArray() {
		return out
	}
	for _, rec := range r.Array() {
		if !rec.IsObject() {
			continue
		}
		out = append(out, models.Recommendation{
			Category:    text(rec.Get("category")),
			Title:       text(rec.Get("title")),
			Description: text(rec.Get("description")),
		})
	}
	return out
}

// counts reads an object of name -> number. Non-numeric values count as 0.
func counts(r gjson.Result) map[string]int {
	out := map[string]int{}
	if !r.IsObject() {
		return out
	}
	r.ForEach(func(key, value gjson.Result) bool {
		out[key.String()] = integer(value)
		return true
	})
	return out
}

func isNumber(r gjson.Result) bool {
	if r.Type != gjson.Number {
		return false
	}
	return !math.IsNaN(r.Num) && !math.IsInf(r.Num, 0)
}

func number(r gjson.Result) float64 {
	if !isNumber(r) {
		return 0
	}
	return r.Num
}

func integer(r gjson.Result) int {
	return int(math.Round(number(r)))
}

func text(r gjson.Result) string {
	if r.Type != gjson.String {
		return ""
	}
	return r.Str
}

// Layouts seen from the service: RFC 3339 and the "YYYY-MM-DD HH:MM:SS+00:00"
// form produced by str() on a pandas timestamp.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func timestamp(r gjson.Result) time.Time {
	s := strings.TrimSpace(text(r))
	if s == "" {
		return time.Time{}
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
