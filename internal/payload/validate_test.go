package payload

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fullPayload = `{
  "summary": {"total_repos": 3, "total_commits": 42, "active_repos": 2, "days_active": 120,
              "languages": {"Go": 2, "Python": 1}, "avg_stars": 4.5, "avg_forks": 1.25},
  "repos": [
    {"name": "gitdash", "description": "dashboard", "url": "https://github.com/u/gitdash",
     "stars": 10, "forks": 2, "language": "Go", "size": 2048},
    {"name": "notes", "description": null, "url": "https://github.com/u/notes",
     "stars": 0, "forks": 0, "language": null, "size": 12}
  ],
  "commits": [
    {"repo_name": "gitdash", "sha": "abc", "message": "fix parser\n\nbody", "date": "2024-03-01 10:15:00+00:00"},
    {"repo_name": "notes", "sha": "def", "message": "add notes", "date": "2024-02-28T08:00:00Z"}
  ],
  "patterns": {"hourly_commits": {"10": 5, "8": 3}, "daily_commits": {"Friday": 5, "Wednesday": 3},
               "peak_hour": 10, "peak_day": "Friday", "avg_message_length": 23.4,
               "fix_commits_pct": 12.5, "short_commits_pct": 4.0, "longest_streak": 6, "longest_gap": 17},
  "message_analysis": {"word_freq": [["fix", 10], ["add", 9]], "action_counts": {"fix": 5, "add": 4}},
  "recommendations": [{"category": "Tooling", "title": "Use templates", "description": "git config"}]
}`

func TestValidateFullPayload(t *testing.T) {
	result := ValidateString(fullPayload)

	assert.Equal(t, 3, result.Summary.TotalRepos)
	assert.Equal(t, 42, result.Summary.TotalCommits)
	assert.Equal(t, 2, result.Summary.ActiveRepos)
	assert.Equal(t, 120, result.Summary.DaysActive)
	assert.InDelta(t, 4.5, result.Summary.AvgStars, 1e-9)
	assert.InDelta(t, 1.25, result.Summary.AvgForks, 1e-9)
	assert.Equal(t, map[string]int{"Go": 2, "Python": 1}, result.Summary.Languages)

	require.Len(t, result.Repos, 2)
	assert.Equal(t, "gitdash", result.Repos[0].Name)
	assert.Equal(t, 2048, result.Repos[0].SizeKB)
	assert.Equal(t, "", result.Repos[1].Language)
	assert.Equal(t, "", result.Repos[1].Description)

	require.Len(t, result.Commits, 2)
	assert.Equal(t, "gitdash", result.Commits[0].RepoName)
	assert.Equal(t, time.Date(2024, 3, 1, 10, 15, 0, 0, time.UTC), result.Commits[0].Date.UTC())
	assert.Equal(t, time.Date(2024, 2, 28, 8, 0, 0, 0, time.UTC), result.Commits[1].Date.UTC())

	assert.Equal(t, map[string]int{"10": 5, "8": 3}, result.Patterns.HourlyCommits)
	require.NotNil(t, result.Patterns.PeakHour)
	assert.Equal(t, 10, *result.Patterns.PeakHour)
	assert.Equal(t, "Friday", result.Patterns.PeakDay)
	assert.Equal(t, 17, result.Patterns.LongestGap)

	require.Len(t, result.MessageAnalysis.WordFreq, 2)
	assert.Equal(t, "fix", result.MessageAnalysis.WordFreq[0].Word)
	assert.Equal(t, 10, result.MessageAnalysis.WordFreq[0].Count)
	assert.Equal(t, 4, result.MessageAnalysis.ActionCounts["add"])

	require.Len(t, result.Recommendations, 1)
	assert.Equal(t, "Tooling", result.Recommendations[0].Category)
}

func TestValidateEmptyObject(t *testing.T) {
	result := ValidateString(`{}`)

	assert.Zero(t, result.Summary.TotalRepos)
	assert.Empty(t, result.Commits)
	assert.NotNil(t, result.Commits)
	assert.Empty(t, result.Repos)
	assert.Empty(t, result.Patterns.HourlyCommits)
	assert.NotNil(t, result.Patterns.DailyCommits)
	assert.Nil(t, result.Patterns.PeakHour)
	assert.Empty(t, result.MessageAnalysis.WordFreq)
	assert.NotNil(t, result.MessageAnalysis.ActionCounts)
	assert.Empty(t, result.Recommendations)
}

func TestValidateNeverFails(t *testing.T) {
	inputs := []string{"", "null", "[]", "42", `"text"`, "{not json", `{"summary": [1,2]}`}
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			result := ValidateString(in)
			require.NotNil(t, result)
			assert.Zero(t, result.Summary.TotalCommits)
			assert.Empty(t, result.Repos)
		})
	}
}

func TestValidateNonSequencesBecomeEmpty(t *testing.T) {
	result := ValidateString(`{
	  "repos": {"name": "not-a-list"},
	  "commits": "nope",
	  "recommendations": 7,
	  "message_analysis": {"word_freq": {"fix": 1}, "action_counts": ["fix"]}
	}`)

	assert.Empty(t, result.Repos)
	assert.Empty(t, result.Commits)
	assert.Empty(t, result.Recommendations)
	assert.Empty(t, result.MessageAnalysis.WordFreq)
	assert.Empty(t, result.MessageAnalysis.ActionCounts)
}

func TestValidateNonNumericFieldsAreZero(t *testing.T) {
	result := ValidateString(`{
	  "summary": {"total_repos": "many", "total_commits": null, "avg_stars": true},
	  "patterns": {"hourly_commits": {"9": "lots", "10": 2}, "peak_hour": "noon"}
	}`)

	assert.Zero(t, result.Summary.TotalRepos)
	assert.Zero(t, result.Summary.TotalCommits)
	assert.Zero(t, result.Summary.AvgStars)
	assert.Equal(t, map[string]int{"9": 0, "10": 2}, result.Patterns.HourlyCommits)
	assert.Nil(t, result.Patterns.PeakHour)
}

func TestValidateNaNIsZero(t *testing.T) {
	result := ValidateString(`{"summary": {"total_repos": 2, "avg_stars": NaN}}`)

	assert.Zero(t, result.Summary.AvgStars)
}

func TestValidateSkipsMalformedElements(t *testing.T) {
	result := ValidateString(`{
	  "repos": [1, {"name": "ok"}, "x"],
	  "message_analysis": {"word_freq": [["fix", 3], "bad", [], {"word": "add", "count": 2}, ["lonely"]]}
	}`)

	require.Len(t, result.Repos, 1)
	assert.Equal(t, "ok", result.Repos[0].Name)

	require.Len(t, result.MessageAnalysis.WordFreq, 3)
	assert.Equal(t, "fix", result.MessageAnalysis.WordFreq[0].Word)
	assert.Equal(t, "add", result.MessageAnalysis.WordFreq[1].Word)
	assert.Equal(t, "lonely", result.MessageAnalysis.WordFreq[2].Word)
	assert.Zero(t, result.MessageAnalysis.WordFreq[2].Count)
}

func TestValidateUnparseableDateIsZero(t *testing.T) {
	result := ValidateString(`{"commits": [{"repo_name": "r", "date": "yesterday"}, {"repo_name": "s"}]}`)

	require.Len(t, result.Commits, 2)
	assert.True(t, result.Commits[0].Date.IsZero())
	assert.True(t, result.Commits[1].Date.IsZero())
}
