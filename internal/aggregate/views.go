package aggregate

import (
	"fmt"
	"strings"
	"time"

	"github.com/gnomegl/gitdash/internal/models"
)

const (
	recentCommitLimit = 5
	repoCardLimit     = 15
	notAvailable      = "N/A"
)

type RecentCommit struct {
	Repo     string    `json:"repo"`
	Headline string    `json:"headline"`
	Date     time.Time `json:"date"`
}

type RepoCard struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	URL         string  `json:"url"`
	Stars       int     `json:"stars"`
	Forks       int     `json:"forks"`
	Language    string  `json:"language,omitempty"`
	SizeMB      float64 `json:"size_mb"`
}

type PeakActivity struct {
	Hour string `json:"hour"`
	Day  string `json:"day"`
}

// RecentCommits returns the first five commits in service order with only
// the first line of each message.
func RecentCommits(result *models.AnalysisResult) []RecentCommit {
	recent := []RecentCommit{}
	if result == nil {
		return recent
	}

	for _, c := range result.Commits {
		if len(recent) == recentCommitLimit {
			break
		}
		recent = append(recent, RecentCommit{
			Repo:     c.RepoName,
			Headline: headline(c.Message),
			Date:     c.Date,
		})
	}
	return recent
}

func headline(message string) string {
	line, _, _ := strings.Cut(message, "\n")
	line = strings.TrimSpace(line)
	if line == "" {
		return "No message"
	}
	return line
}

// RepoCards returns the first fifteen repositories with their size in MB.
func RepoCards(result *models.AnalysisResult) []RepoCard {
	cards := []RepoCard{}
	if result == nil {
		return cards
	}

	for _, r := range result.Repos {
		if len(cards) == repoCardLimit {
			break
		}
		desc := r.Description
		if desc == "" {
			desc = "No description"
		}
		cards = append(cards, RepoCard{
			Name:        r.Name,
			Description: desc,
			URL:         r.URL,
			Stars:       r.Stars,
			Forks:       r.Forks,
			Language:    r.Language,
			SizeMB:      float64(r.SizeKB) / 1024,
		})
	}
	return cards
}

// Peak formats the most active hour and day, "N/A" when unknown.
func Peak(result *models.AnalysisResult) PeakActivity {
	peak := PeakActivity{Hour: notAvailable, Day: notAvailable}
	if result == nil {
		return peak
	}
	if h := result.Patterns.PeakHour; h != nil {
		peak.Hour = fmt.Sprintf("%d:00", *h)
	}
	if d := result.Patterns.PeakDay; d != "" {
		peak.Day = d
	}
	return peak
}
