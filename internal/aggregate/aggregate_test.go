package aggregate

import (
	"fmt"
	"testing"
	"time"

	"github.com/gnomegl/gitdash/internal/models"
	"github.com/gnomegl/gitdash/internal/payload"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withHourly(hourly map[string]int) *models.AnalysisResult {
	return &models.AnalysisResult{Patterns: models.Patterns{HourlyCommits: hourly}}
}

func TestHourlySeriesSparse(t *testing.T) {
	series := HourlySeries(withHourly(map[string]int{"14": 2, "3": 7, "23": 1}))

	require.Len(t, series, 3)
	assert.Equal(t, []HourCount{
		{Label: "3:00", Hour: 3, Commits: 7},
		{Label: "14:00", Hour: 14, Commits: 2},
		{Label: "23:00", Hour: 23, Commits: 1},
	}, series)
}

func TestHourlySeriesSortedAndSameCardinality(t *testing.T) {
	inputs := []map[string]int{
		{"0": 1},
		{"9": 1, "10": 1, "2": 1},
		{"23": 4, "22": 3, "1": 2, "0": 1, "12": 9, "11": 8},
	}
	full := map[string]int{}
	for h := 23; h >= 0; h-- {
		full[fmt.Sprint(h)] = h
	}
	inputs = append(inputs, full)

	for _, hourly := range inputs {
		series := HourlySeries(withHourly(hourly))
		require.Len(t, series, len(hourly))
		for i := 1; i < len(series); i++ {
			assert.Less(t, series[i-1].Hour, series[i].Hour)
		}
		for _, entry := range series {
			assert.Equal(t, hourly[fmt.Sprint(entry.Hour)], entry.Commits)
		}
	}
}

func TestHourlySeriesNumericNotLexicalOrder(t *testing.T) {
	series := HourlySeries(withHourly(map[string]int{"10": 1, "9": 1, "100": 5, "night": 2}))

	require.Len(t, series, 2)
	assert.Equal(t, "9:00", series[0].Label)
	assert.Equal(t, "10:00", series[1].Label)
}

func TestHourlySeriesOneEntryPerHour(t *testing.T) {
	hourly := map[string]int{"5": 3, "05": 4, " 5": 6, "+5": 7, "9": 1}
	want := []HourCount{
		{Label: "5:00", Hour: 5, Commits: 3},
		{Label: "9:00", Hour: 9, Commits: 1},
	}

	for i := 0; i < 50; i++ {
		assert.Equal(t, want, HourlySeries(withHourly(hourly)))
	}
}

func TestHourlySeriesEmpty(t *testing.T) {
	assert.Empty(t, HourlySeries(nil))
	assert.Empty(t, HourlySeries(&models.AnalysisResult{}))
}

func TestDailySeriesAlwaysSevenDays(t *testing.T) {
	labels := []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}
	inputs := []map[string]int{
		nil,
		{},
		{"Friday": 5},
		{"Sunday": 1, "Monday": 2, "Someday": 9},
	}

	for _, daily := range inputs {
		series := DailySeries(&models.AnalysisResult{Patterns: models.Patterns{DailyCommits: daily}})
		require.Len(t, series, 7)
		for i, entry := range series {
			assert.Equal(t, labels[i], entry.Label)
			assert.Equal(t, daily[Weekdays[i]], entry.Commits)
		}
	}

	assert.Len(t, DailySeries(nil), 7)
}

func TestLanguageDistribution(t *testing.T) {
	result := payload.ValidateString(`{"repos": [
	  {"language": "Go"}, {"language": "Go"}, {"language": "Rust"}, {"language": null}
	]}`)

	assert.Equal(t, []LanguageShare{{Name: "Go", Value: 2}, {Name: "Rust", Value: 1}}, LanguageDistribution(result))
}

func TestLanguageDistributionTopSixFirstEncounterTies(t *testing.T) {
	langs := []string{"C", "Go", "None", "Rust", "Zig", "Python", "Java", "Go", "Ruby", "", "Lua"}
	result := &models.AnalysisResult{}
	for _, l := range langs {
		result.Repos = append(result.Repos, models.Repo{Language: l})
	}

	assert.Equal(t, []LanguageShare{
		{Name: "Go", Value: 2},
		{Name: "C", Value: 1},
		{Name: "Rust", Value: 1},
		{Name: "Zig", Value: 1},
		{Name: "Python", Value: 1},
		{Name: "Java", Value: 1},
	}, LanguageDistribution(result))
}

func TestTopWordsKeepsInputOrder(t *testing.T) {
	result := &models.AnalysisResult{}
	for i := 0; i < 12; i++ {
		result.MessageAnalysis.WordFreq = append(result.MessageAnalysis.WordFreq,
			models.WordCount{Word: fmt.Sprintf("w%d", i), Count: i % 4})
	}
	result.MessageAnalysis.WordFreq[0] = models.WordCount{Word: "fix", Count: 10}
	result.MessageAnalysis.WordFreq[1] = models.WordCount{Word: "add", Count: 9}

	words := TopWords(result)

	require.Len(t, words, 10)
	assert.Equal(t, result.MessageAnalysis.WordFreq[:10], words)
}

func TestTopWordsDoesNotAliasInput(t *testing.T) {
	result := &models.AnalysisResult{MessageAnalysis: models.MessageAnalysis{
		WordFreq: []models.WordCount{{Word: "fix", Count: 1}},
	}}

	words := TopWords(result)
	words[0].Word = "changed"

	assert.Equal(t, "fix", result.MessageAnalysis.WordFreq[0].Word)
}

func TestActionWordCountsTieBreak(t *testing.T) {
	result := &models.AnalysisResult{MessageAnalysis: models.MessageAnalysis{
		ActionCounts: map[string]int{"fix": 5, "add": 5, "remove": 1},
	}}

	for i := 0; i < 20; i++ {
		assert.Equal(t, []ActionCount{
			{Action: "add", Count: 5},
			{Action: "fix", Count: 5},
			{Action: "remove", Count: 1},
		}, ActionWordCounts(result))
	}
}

func TestActionWordCountsTopEight(t *testing.T) {
	counts := map[string]int{}
	for i, w := range []string{"add", "update", "fix", "remove", "implement", "refactor", "change", "merge", "revert"} {
		counts[w] = i
	}
	actions := ActionWordCounts(&models.AnalysisResult{MessageAnalysis: models.MessageAnalysis{ActionCounts: counts}})

	require.Len(t, actions, 8)
	assert.Equal(t, "revert", actions[0].Action)
	assert.Equal(t, "update", actions[7].Action)
}

func TestAggregatorsEmptyOnAbsentFields(t *testing.T) {
	result := payload.ValidateString(`{}`)

	assert.Empty(t, HourlySeries(result))
	assert.Empty(t, LanguageDistribution(result))
	assert.Empty(t, TopWords(result))
	assert.Empty(t, ActionWordCounts(result))
	assert.Empty(t, RecentCommits(result))
	assert.Empty(t, RepoCards(result))
}

func TestRecentCommits(t *testing.T) {
	result := &models.AnalysisResult{}
	for i := 0; i < 7; i++ {
		result.Commits = append(result.Commits, models.Commit{
			RepoName: "r",
			Message:  fmt.Sprintf("commit %d\n\ndetails", i),
			Date:     time.Date(2024, 1, i+1, 0, 0, 0, 0, time.UTC),
		})
	}
	result.Commits[1].Message = ""

	recent := RecentCommits(result)

	require.Len(t, recent, 5)
	assert.Equal(t, "commit 0", recent[0].Headline)
	assert.Equal(t, "No message", recent[1].Headline)
	assert.Equal(t, "commit 4", recent[4].Headline)
}

func TestRepoCards(t *testing.T) {
	result := &models.AnalysisResult{}
	for i := 0; i < 20; i++ {
		result.Repos = append(result.Repos, models.Repo{Name: fmt.Sprint(i), SizeKB: 2048})
	}

	cards := RepoCards(result)

	require.Len(t, cards, 15)
	assert.Equal(t, "No description", cards[0].Description)
	assert.InDelta(t, 2.0, cards[0].SizeMB, 1e-9)
}

func TestPeak(t *testing.T) {
	assert.Equal(t, PeakActivity{Hour: "N/A", Day: "N/A"}, Peak(&models.AnalysisResult{}))

	hour := 0
	peak := Peak(&models.AnalysisResult{Patterns: models.Patterns{PeakHour: &hour, PeakDay: "Tuesday"}})
	assert.Equal(t, PeakActivity{Hour: "0:00", Day: "Tuesday"}, peak)
}
