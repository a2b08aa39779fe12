package github

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gnomegl/gitdash/internal/models"
	"github.com/google/go-github/v57/github"
	"golang.org/x/time/rate"
)

// FetchRepos lists the repositories owned by username, most recently pushed
// first.
func FetchRepos(ctx context.Context, client *github.Client, username string, cfg Config) ([]models.RepoInfo, error) {
	cfg = cfg.withDefaults()

	var allRepos []models.RepoInfo
	opt := &github.RepositoryListByUserOptions{
		ListOptions: github.ListOptions{PerPage: cfg.PerPage},
		Type:        "owner",
		Sort:        "pushed",
		Direction:   "desc",
	}

	for page := 0; page < cfg.MaxRepoPages; page++ {
		repos, resp, err := client.Repositories.ListByUser(ctx, username, opt)
		if err != nil {
			return nil, fmt.Errorf("error fetching repositories: %w", err)
		}
		for _, repo := range repos {
			allRepos = append(allRepos, repoInfo(repo))
		}
		if resp.NextPage == 0 {
			break
		}
		opt.Page = resp.NextPage
	}
	return allRepos, nil
}

func repoInfo(repo *github.Repository) models.RepoInfo {
	return models.RepoInfo{
		ID:            repo.GetID(),
		Name:          repo.GetName(),
		Owner:         repo.GetOwner().GetLogin(),
		Description:   repo.GetDescription(),
		URL:           repo.GetHTMLURL(),
		Language:      repo.GetLanguage(),
		Stars:         repo.GetStargazersCount(),
		Forks:         repo.GetForksCount(),
		OpenIssues:    repo.GetOpenIssuesCount(),
		SizeKB:        repo.GetSize(),
		IsFork:        repo.GetFork(),
		DefaultBranch: repo.GetDefaultBranch(),
		Topics:        repo.Topics,
		CreatedAt:     repo.GetCreatedAt().Time,
		UpdatedAt:     repo.GetUpdatedAt().Time,
		PushedAt:      repo.GetPushedAt().Time,
	}
}

// FetchCommits returns up to CommitsPerPage*MaxCommitPages commits of repo,
// newest first. Each page waits on limiter.
func FetchCommits(ctx context.Context, client *github.Client, limiter *rate.Limiter, repo models.RepoInfo, cfg Config) ([]models.CommitInfo, error) {
	cfg = cfg.withDefaults()

	var allCommits []models.CommitInfo
	opt := &github.CommitsListOptions{
		ListOptions: github.ListOptions{PerPage: cfg.CommitsPerPage},
	}

	for page := 0; page < cfg.MaxCommitPages; page++ {
		if err := limiter.Wait(ctx); err != nil {
			return nil, err
		}

		commits, resp, err := client.Repositories.ListCommits(ctx, repo.Owner, repo.Name, opt)
		if err != nil {
			if resp != nil && resp.StatusCode == http.StatusConflict {
				// empty repository
				return allCommits, nil
			}
			return nil, fmt.Errorf("error fetching commits: %w", err)
		}

		for _, commit := range commits {
			if commit.Commit == nil || commit.Commit.Author == nil {
				continue
			}

			allCommits = append(allCommits, models.CommitInfo{
				Hash:       commit.GetSHA(),
				URL:        commit.GetHTMLURL(),
				AuthorName: commit.Commit.Author.GetName(),
				Message:    commit.Commit.GetMessage(),
				Date:       commit.Commit.Author.GetDate().Time,
				RepoName:   repo.Name,
				IsFork:     repo.IsFork,
			})
		}

		if resp.NextPage == 0 {
			break
		}
		opt.Page = resp.NextPage
	}

	return allCommits, nil
}
