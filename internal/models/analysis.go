package models

import "time"

// DefaultMaxRepos is the number of repositories requested per analysis.
const DefaultMaxRepos = 15

// AnalysisResult is the validated form of one analysis payload. Every field
// missing from the payload is left at its zero value.
type AnalysisResult struct {
	Summary         Summary
	Commits         []Commit
	Repos           []Repo
	Patterns        Patterns
	MessageAnalysis MessageAnalysis
	Recommendations []Recommendation
}

type Summary struct {
	TotalRepos   int
	TotalCommits int
	ActiveRepos  int
	DaysActive   int
	AvgStars     float64
	AvgForks     float64
	Languages    map[string]int
}

type Commit struct {
	RepoName   string
	SHA        string
	Message    string
	AuthorName string
	URL        string
	Date       time.Time
}

type Repo struct {
	Name        string
	Description string
	URL         string
	Stars       int
	Forks       int
	Language    string
	SizeKB      int
}

// Patterns holds the commit-timing statistics. HourlyCommits is keyed by the
// hour as a decimal string ("0".."23"), DailyCommits by English weekday name.
type Patterns struct {
	HourlyCommits    map[string]int
	DailyCommits     map[string]int
	MonthlyCommits   map[string]int
	AvgMessageLength float64
	ShortCommitsPct  float64
	FixCommitsPct    float64
	LongestStreak    int
	LongestGap       int
	PeakHour         *int
	PeakDay          string
}

type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

type MessageAnalysis struct {
	WordFreq     []WordCount
	ActionCounts map[string]int
}

type Recommendation struct {
	Category    string `json:"category"`
	Title       string `json:"title"`
	Description string `json:"description"`
}
