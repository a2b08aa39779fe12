package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/gnomegl/gitdash/internal/errors"
	"github.com/gnomegl/gitdash/internal/logging"
	"github.com/gnomegl/gitdash/internal/models"
	"github.com/sirupsen/logrus"
)

// Source analyses a GitHub user directly against the GitHub API. It can
// stand in for the dashboard service as the session's analyzer.
type Source struct {
	cfg      Config
	logger   *logrus.Entry
	progress io.Writer
}

// NewSource returns a Source. Fetch progress is drawn on progress when it is
// non-nil.
func NewSource(cfg Config, logger *logrus.Logger, progress io.Writer) *Source {
	return &Source{
		cfg:      cfg.withDefaults(),
		logger:   logging.Component(logger, "github"),
		progress: progress,
	}
}

func (s *Source) Analyze(ctx context.Context, req models.AnalysisRequest) ([]byte, error) {
	log := s.logger.WithFields(logrus.Fields{"request_id": req.ID, "identity": req.Identity})

	client, err := GetGithubClient(req.AccessToken, s.cfg.BaseURL)
	if err != nil {
		return nil, err
	}

	repos, err := FetchRepos(ctx, client, req.Identity, s.cfg)
	if err != nil {
		log.WithError(err).Warn("failed to list repositories")
		return nil, classify(err, fmt.Sprintf("GitHub user %q not found", req.Identity))
	}
	if len(repos) == 0 {
		return nil, errors.Service(http.StatusNotFound, "No repositories found")
	}

	maxRepos := req.MaxRepos
	if maxRepos <= 0 {
		maxRepos = models.DefaultMaxRepos
	}
	scanned := repos
	if len(scanned) > maxRepos {
		scanned = scanned[:maxRepos]
	}
	log.WithFields(logrus.Fields{"repos": len(repos), "scanned": len(scanned)}).Debug("fetching commits")

	commits, err := ProcessRepos(ctx, client, scanned, s.cfg, log, s.progress)
	if err != nil {
		return nil, classify(err, "Repository not found")
	}
	if len(commits) == 0 {
		return nil, errors.Service(http.StatusNotFound, "No commits found")
	}

	raw, err := json.Marshal(BuildPayload(repos, commits))
	if err != nil {
		return nil, fmt.Errorf("failed to encode analysis: %w", err)
	}
	return raw, nil
}
