package models

import "time"

// CommitInfo is a commit as fetched from GitHub, before it is folded into an
// analysis payload.
type CommitInfo struct {
	Hash       string
	URL        string
	AuthorName string
	Message    string
	Date       time.Time
	RepoName   string
	IsFork     bool
}

// RepoInfo is a repository as fetched from GitHub.
type RepoInfo struct {
	ID            int64
	Name          string
	Owner         string
	Description   string
	URL           string
	Language      string
	Stars         int
	Forks         int
	OpenIssues    int
	SizeKB        int
	IsFork        bool
	DefaultBranch string
	Topics        []string
	CreatedAt     time.Time
	UpdatedAt     time.Time
	PushedAt      time.Time
}

// Credentials are the values typed into the dashboard sidebar. An empty
// Secret means no access token was given.
type Credentials struct {
	Identity string
	Secret   string
}

// AnalysisRequest is built right before a fetch and never changed after it
// is handed to the analysis collaborator.
type AnalysisRequest struct {
	ID          string
	Identity    string
	AccessToken string
	MaxRepos    int
}

// HasToken reports whether the request carries an access token.
func (r AnalysisRequest) HasToken() bool {
	return r.AccessToken != ""
}

// AuthRequest is the payload sent to the authentication collaborator.
type AuthRequest struct {
	Identity string
	Secret   string
	Email    string
}
