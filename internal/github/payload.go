package github

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gnomegl/gitdash/internal/models"
	"github.com/gnomegl/gitdash/internal/scanner"
)

const (
	// MaxPayloadCommits caps the commits listed in the payload. Statistics
	// still cover every fetched commit.
	MaxPayloadCommits = 100
	topWordCount      = 20

	lateHourStart       = 22
	lateHourEnd         = 5
	shortPctThreshold   = 30
	fixPctThreshold     = 25
	longestGapThreshold = 14
)

// Payload is the analysis document, keyed the way the dashboard service keys
// it.
type Payload struct {
	Summary         payloadSummary          `json:"summary"`
	Repos           []payloadRepo           `json:"repos"`
	Commits         []payloadCommit         `json:"commits"`
	Patterns        payloadPatterns         `json:"patterns"`
	MessageAnalysis payloadMessages         `json:"message_analysis"`
	Recommendations []models.Recommendation `json:"recommendations"`
}

type payloadSummary struct {
	TotalRepos   int            `json:"total_repos"`
	TotalCommits int            `json:"total_commits"`
	ActiveRepos  int            `json:"active_repos"`
	DaysActive   int            `json:"days_active"`
	Languages    map[string]int `json:"languages"`
	AvgStars     float64        `json:"avg_stars"`
	AvgForks     float64        `json:"avg_forks"`
}

type payloadRepo struct {
	ID            int64   `json:"repo_id"`
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	CreatedAt     string  `json:"created_at"`
	UpdatedAt     string  `json:"updated_at"`
	PushedAt      string  `json:"pushed_at"`
	Language      *string `json:"language"`
	Stars         int     `json:"stars"`
	Forks         int     `json:"forks"`
	OpenIssues    int     `json:"open_issues"`
	Size          int     `json:"size"`
	IsFork        bool    `json:"is_fork"`
	URL           string  `json:"url"`
	Topics        string  `json:"topics"`
	DefaultBranch string  `json:"default_branch"`
}

type payloadCommit struct {
	RepoName   string `json:"repo_name"`
	SHA        string `json:"sha"`
	Message    string `json:"message"`
	AuthorName string `json:"author_name"`
	Date       string `json:"date"`
	URL        string `json:"url"`
}

type payloadPatterns struct {
	TotalCommits     int            `json:"total_commits"`
	ReposWithCommits int            `json:"repos_with_commits"`
	PeakHour         int            `json:"peak_hour"`
	PeakDay          string         `json:"peak_day"`
	AvgMessageLength float64        `json:"avg_message_length"`
	ShortCommitsPct  float64        `json:"short_commits_pct"`
	FixCommitsPct    float64        `json:"fix_commits_pct"`
	LongestStreak    int            `json:"longest_streak"`
	LongestGap       int            `json:"longest_gap"`
	HourlyCommits    map[string]int `json:"hourly_commits"`
	DailyCommits     map[string]int `json:"daily_commits"`
	MonthlyCommits   map[string]int `json:"monthly_commits"`
}

type payloadMessages struct {
	// WordFreq holds [word, count] pairs.
	WordFreq     [][]interface{} `json:"word_freq"`
	ActionCounts map[string]int  `json:"action_counts"`
}

// BuildPayload computes the analysis document for repos and their commits.
// commits must not be empty.
func BuildPayload(repos []models.RepoInfo, commits []models.CommitInfo) Payload {
	patterns := commitPatterns(commits)
	messages := messageAnalysis(commits)

	listed := commits
	if len(listed) > MaxPayloadCommits {
		listed = listed[:MaxPayloadCommits]
	}

	p := Payload{
		Summary:         summarize(repos, commits),
		Repos:           make([]payloadRepo, 0, len(repos)),
		Commits:         make([]payloadCommit, 0, len(listed)),
		Patterns:        patterns,
		MessageAnalysis: messages,
		Recommendations: recommend(patterns),
	}
	for _, r := range repos {
		p.Repos = append(p.Repos, toPayloadRepo(r))
	}
	for _, c := range listed {
		p.Commits = append(p.Commits, payloadCommit{
			RepoName:   c.RepoName,
			SHA:        c.Hash,
			Message:    c.Message,
			AuthorName: c.AuthorName,
			Date:       c.Date.UTC().Format(time.RFC3339),
			URL:        c.URL,
		})
	}
	return p
}

func toPayloadRepo(r models.RepoInfo) payloadRepo {
	var lang *string
	if r.Language != "" {
		l := r.Language
		lang = &l
	}
	return payloadRepo{
		ID:            r.ID,
		Name:          r.Name,
		Description:   r.Description,
		CreatedAt:     formatTime(r.CreatedAt),
		UpdatedAt:     formatTime(r.UpdatedAt),
		PushedAt:      formatTime(r.PushedAt),
		Language:      lang,
		Stars:         r.Stars,
		Forks:         r.Forks,
		OpenIssues:    r.OpenIssues,
		Size:          r.SizeKB,
		IsFork:        r.IsFork,
		URL:           r.URL,
		Topics:        strings.Join(r.Topics, ","),
		DefaultBranch: r.DefaultBranch,
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func summarize(repos []models.RepoInfo, commits []models.CommitInfo) payloadSummary {
	s := payloadSummary{
		TotalRepos:   len(repos),
		TotalCommits: len(commits),
		Languages:    make(map[string]int),
	}

	var stars, forks int
	for _, r := range repos {
		stars += r.Stars
		forks += r.Forks
		if r.Language != "" {
			s.Languages[r.Language]++
		}
	}
	if len(repos) > 0 {
		s.AvgStars = float64(stars) / float64(len(repos))
		s.AvgForks = float64(forks) / float64(len(repos))
	}

	s.ActiveRepos = distinctRepos(commits)
	if first, last, ok := dateBounds(commits); ok {
		s.DaysActive = int(last.Sub(first) / (24 * time.Hour))
	}
	return s
}

func distinctRepos(commits []models.CommitInfo) int {
	seen := make(map[string]struct{})
	for _, c := range commits {
		seen[c.RepoName] = struct{}{}
	}
	return len(seen)
}

func dateBounds(commits []models.CommitInfo) (first, last time.Time, ok bool) {
	for i, c := range commits {
		if i == 0 || c.Date.Before(first) {
			first = c.Date
		}
		if i == 0 || c.Date.After(last) {
			last = c.Date
		}
	}
	return first, last, len(commits) > 0
}

func commitPatterns(commits []models.CommitInfo) payloadPatterns {
	p := payloadPatterns{
		TotalCommits:     len(commits),
		ReposWithCommits: distinctRepos(commits),
		HourlyCommits:    make(map[string]int),
		DailyCommits:     make(map[string]int),
		MonthlyCommits:   make(map[string]int),
	}
	if len(commits) == 0 {
		return p
	}

	var hours [24]int
	var totalLen, short, fix int
	perDay := make(map[time.Time]int)

	for _, c := range commits {
		t := c.Date.UTC()
		hours[t.Hour()]++
		p.HourlyCommits[strconv.Itoa(t.Hour())]++
		p.DailyCommits[t.Weekday().String()]++
		p.MonthlyCommits[t.Month().String()]++
		perDay[civilDay(t)]++

		totalLen += utf8.RuneCountInString(c.Message)
		if scanner.IsShort(c.Message) {
			short++
		}
		if scanner.HasFixKeyword(c.Message) {
			fix++
		}
	}

	for h := range hours {
		if hours[h] > hours[p.PeakHour] {
			p.PeakHour = h
		}
	}
	best := -1
	for _, day := range []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday, time.Sunday} {
		if n := p.DailyCommits[day.String()]; n > best {
			best = n
			p.PeakDay = day.String()
		}
	}

	n := float64(len(commits))
	p.AvgMessageLength = float64(totalLen) / n
	p.ShortCommitsPct = float64(short) / n * 100
	p.FixCommitsPct = float64(fix) / n * 100
	p.LongestStreak, p.LongestGap = streaks(perDay)
	return p
}

func civilDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// streaks walks every calendar day between the first and last commit and
// returns the longest run of days with commits and without.
func streaks(perDay map[time.Time]int) (longestStreak, longestGap int) {
	var first, last time.Time
	for d := range perDay {
		if first.IsZero() || d.Before(first) {
			first = d
		}
		if last.IsZero() || d.After(last) {
			last = d
		}
	}
	if first.IsZero() {
		return 0, 0
	}

	var streak, gap int
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		if perDay[d] > 0 {
			streak++
			gap = 0
		} else {
			gap++
			streak = 0
		}
		longestStreak = max(longestStreak, streak)
		longestGap = max(longestGap, gap)
	}
	return longestStreak, longestGap
}

func messageAnalysis(commits []models.CommitInfo) payloadMessages {
	messages := make([]string, 0, len(commits))
	for _, c := range commits {
		messages = append(messages, c.Message)
	}

	freq := scanner.WordFrequency(messages, topWordCount)
	pairs := make([][]interface{}, 0, len(freq))
	for _, wc := range freq {
		pairs = append(pairs, []interface{}{wc.Word, wc.Count})
	}

	return payloadMessages{
		WordFreq:     pairs,
		ActionCounts: scanner.ActionCounts(messages),
	}
}

func recommend(p payloadPatterns) []models.Recommendation {
	recs := []models.Recommendation{}

	if p.TotalCommits > 0 && (p.PeakHour >= lateHourStart || p.PeakHour <= lateHourEnd) {
		recs = append(recs, models.Recommendation{
			Category:    "Work Schedule",
			Title:       "Consider adjusting your coding hours",
			Description: fmt.Sprintf("You commit most frequently at %d:00, which may affect your sleep schedule. Consider shifting your coding sessions to daytime hours for better work-life balance.", p.PeakHour),
		})
	}
	if p.ShortCommitsPct > shortPctThreshold {
		recs = append(recs, models.Recommendation{
			Category:    "Commit Quality",
			Title:       "Improve commit message clarity",
			Description: fmt.Sprintf("%.1f%% of your commit messages are very short (<10 chars). More descriptive commit messages make your repository history more valuable and easier to navigate.", p.ShortCommitsPct),
		})
	}
	if p.FixCommitsPct > fixPctThreshold {
		recs = append(recs, models.Recommendation{
			Category:    "Testing",
			Title:       "Consider implementing more tests",
			Description: fmt.Sprintf("%.1f%% of your commits contain fix-related keywords. More thorough testing before commits could reduce the need for fixes and improve code quality.", p.FixCommitsPct),
		})
	}
	if p.LongestGap > longestGapThreshold {
		recs = append(recs, models.Recommendation{
			Category:    "Consistency",
			Title:       "Maintain a more consistent coding schedule",
			Description: fmt.Sprintf("Your longest gap between commits was %d days. More consistent contributions, even if smaller, can help maintain momentum in your projects.", p.LongestGap),
		})
	}

	recs = append(recs, models.Recommendation{
		Category:    "Tooling",
		Title:       "Consider using commit message templates",
		Description: "Setting up commit templates can help standardize your commit messages and ensure they contain all needed information. Add them with: git config --global commit.template ~/.gitmessage",
	})
	return recs
}
