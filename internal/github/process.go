package github

import (
	"context"
	"io"

	"github.com/gnomegl/gitdash/internal/models"
	gh "github.com/google/go-github/v57/github"
	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// ProcessRepos fetches the commits of every repo concurrently. Commits come
// back grouped by repository in the order of repos. A repository that fails
// is skipped; rate limiting and cancellation abort the whole run.
func ProcessRepos(ctx context.Context, client *gh.Client, repos []models.RepoInfo, cfg Config, logger *logrus.Entry, progress io.Writer) ([]models.CommitInfo, error) {
	cfg = cfg.withDefaults()
	if progress == nil {
		progress = io.Discard
	}

	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}
	limiter := rate.NewLimiter(limit, cfg.MaxConcurrentRequests)

	bar := progressbar.NewOptions(len(repos),
		progressbar.OptionSetWriter(progress),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionSetDescription("[cyan]Fetching commits[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))

	perRepo := make([][]models.CommitInfo, len(repos))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.MaxConcurrentRequests)

	for i, repo := range repos {
		i, repo := i, repo
		g.Go(func() error {
			defer bar.Add(1)

			commits, err := FetchCommits(gctx, client, limiter, repo, cfg)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				if isRateLimited(err) {
					return err
				}
				logger.WithError(err).WithField("repo", repo.Name).Warn("skipping repository")
				return nil
			}
			perRepo[i] = commits
			return nil
		})
	}

	err := g.Wait()
	bar.Finish()
	if err != nil {
		return nil, err
	}

	var all []models.CommitInfo
	for _, commits := range perRepo {
		all = append(all, commits...)
	}
	return all, nil
}
