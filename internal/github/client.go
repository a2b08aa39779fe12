// Package github is the in-process analysis source: it fetches a user's
// repositories and commits from the GitHub API and builds the same payload
// the dashboard service returns.
package github

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/gnomegl/gitdash/internal/errors"
	gh "github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"
)

func GetGithubClient(token, baseURL string) (*gh.Client, error) {
	var hc *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		hc = oauth2.NewClient(context.Background(), ts)
	}
	client := gh.NewClient(hc)

	if baseURL != "" {
		u, err := url.Parse(strings.TrimRight(baseURL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("invalid GitHub API URL %q: %w", baseURL, err)
		}
		client.BaseURL = u
	}
	return client, nil
}

// classify maps a go-github failure onto the error taxonomy shown to the
// user.
func classify(err error, notFound string) error {
	if err == nil {
		return nil
	}

	var rateErr *gh.RateLimitError
	if stderrors.As(err, &rateErr) {
		return errors.Service(http.StatusForbidden,
			fmt.Sprintf("GitHub API rate limit exceeded, resets at %s", rateErr.Rate.Reset.Format("15:04 MST")))
	}
	var abuseErr *gh.AbuseRateLimitError
	if stderrors.As(err, &abuseErr) {
		return errors.Service(http.StatusForbidden, "GitHub secondary rate limit hit, try again later")
	}

	var respErr *gh.ErrorResponse
	if stderrors.As(err, &respErr) && respErr.Response != nil {
		status := respErr.Response.StatusCode
		switch status {
		case http.StatusUnauthorized:
			return errors.Service(status, "Invalid GitHub token")
		case http.StatusNotFound:
			return errors.Service(status, notFound)
		}
		msg := respErr.Message
		if msg == "" {
			msg = errors.GenericFetchMessage
		}
		return errors.Service(status, msg)
	}

	if stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded) {
		return errors.Transport(err, 0, "")
	}
	return errors.Transport(err, 0, "Network error: could not reach GitHub")
}

func isRateLimited(err error) bool {
	var rateErr *gh.RateLimitError
	var abuseErr *gh.AbuseRateLimitError
	return stderrors.As(err, &rateErr) || stderrors.As(err, &abuseErr)
}
