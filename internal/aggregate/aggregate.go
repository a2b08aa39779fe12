// Package aggregate derives the chart-ready series shown on each dashboard
// tab. Every function is pure: it reads the result, never mutates it, and
// returns an empty slice when the source field is absent.
package aggregate

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/gnomegl/gitdash/internal/models"
)

const (
	maxLanguages = 6
	maxTopWords  = 10
	maxActions   = 8
)

// Weekdays is the canonical order of the daily series.
var Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

type HourCount struct {
	Label   string `json:"hour"`
	Hour    int    `json:"-"`
	Commits int    `json:"commits"`
}

type DayCount struct {
	Label   string `json:"day"`
	Commits int    `json:"commits"`
}

type LanguageShare struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

type ActionCount struct {
	Action string `json:"action"`
	Count  int    `json:"count"`
}

// HourlySeries lists the hours present in the hourly mapping, ascending.
// Hours absent from the mapping are not filled in. Keys other than the plain
// decimal hours "0" through "23" (such as "05" or " 5") are skipped, so each
// hour appears at most once.
func HourlySeries(result *models.AnalysisResult) []HourCount {
	series := []HourCount{}
	if result == nil {
		return series
	}

	for key, commits := range result.Patterns.HourlyCommits {
		hour, err := strconv.Atoi(key)
		if err != nil || hour < 0 || hour > 23 || strconv.Itoa(hour) != key {
			continue
		}
		series = append(series, HourCount{
			Label:   fmt.Sprintf("%d:00", hour),
			Hour:    hour,
			Commits: commits,
		})
	}

	sort.Slice(series, func(i, j int) bool {
		return series[i].Hour < series[j].Hour
	})
	return series
}

// DailySeries always returns Monday through Sunday with three-letter labels;
// days missing from the mapping count 0.
func DailySeries(result *models.AnalysisResult) []DayCount {
	var daily map[string]int
	if result != nil {
		daily = result.Patterns.DailyCommits
	}

	series := make([]DayCount, 0, len(Weekdays))
	for _, day := range Weekdays {
		series = append(series, DayCount{Label: day[:3], Commits: daily[day]})
	}
	return series
}

// LanguageDistribution counts repositories per language, skipping repos with
// no language or the literal "None". Ties keep first-encounter order.
func LanguageDistribution(result *models.AnalysisResult) []LanguageShare {
	shares := []LanguageShare{}
	if result == nil {
		return shares
	}

	index := make(map[string]int)
	for _, repo := range result.Repos {
		lang := repo.Language
		if lang == "" || lang == "None" {
			continue
		}
		if i, ok := index[lang]; ok {
			shares[i].Value++
			continue
		}
		index[lang] = len(shares)
		shares = append(shares, LanguageShare{Name: lang, Value: 1})
	}

	sort.SliceStable(shares, func(i, j int) bool {
		return shares[i].Value > shares[j].Value
	})
	if len(shares) > maxLanguages {
		shares = shares[:maxLanguages]
	}
	return shares
}

// TopWords returns the first ten word frequencies as given. The service
// already sorts them, so no reordering happens here.
func TopWords(result *models.AnalysisResult) []models.WordCount {
	words := []models.WordCount{}
	if result == nil {
		return words
	}

	freq := result.MessageAnalysis.WordFreq
	if len(freq) > maxTopWords {
		freq = freq[:maxTopWords]
	}
	return append(words, freq...)
}

// ActionWordCounts sorts the action counts by count descending, then action
// name ascending, and keeps the top eight.
func ActionWordCounts(result *models.AnalysisResult) []ActionCount {
	actions := []ActionCount{}
	if result == nil {
		return actions
	}

	for action, count := range result.MessageAnalysis.ActionCounts {
		actions = append(actions, ActionCount{Action: action, Count: count})
	}

	sort.Slice(actions, func(i, j int) bool {
		if actions[i].Count != actions[j].Count {
			return actions[i].Count > actions[j].Count
		}
		return actions[i].Action < actions[j].Action
	})
	if len(actions) > maxActions {
		actions = actions[:maxActions]
	}
	return actions
}
