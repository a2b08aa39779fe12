// Package api talks to the analysis and authentication service over HTTP.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gnomegl/gitdash/internal/errors"
	"github.com/gnomegl/gitdash/internal/logging"
	"github.com/gnomegl/gitdash/internal/models"
	"github.com/google/uuid"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
)

const (
	DefaultBaseURL  = "http://localhost:5000"
	DefaultTimeout  = 120 * time.Second
	DefaultRetryMax = 2

	requestIDHeader = "X-Request-ID"
	maxBodyBytes    = 32 << 20
)

type Config struct {
	BaseURL  string
	Timeout  time.Duration
	RetryMax int
}

// Client implements the analysis and authentication collaborators of the
// session against the dashboard service.
type Client struct {
	baseURL *url.URL
	http    *retryablehttp.Client
	logger  *logrus.Entry
}

func New(cfg Config, logger *logrus.Logger) (*Client, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.RetryMax < 0 {
		cfg.RetryMax = 0
	}

	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid server URL %q", cfg.BaseURL)
	}

	log := logging.Component(logger, "api")

	hc := retryablehttp.NewClient()
	hc.RetryMax = cfg.RetryMax
	hc.RetryWaitMin = 200 * time.Millisecond
	hc.RetryWaitMax = 2 * time.Second
	hc.HTTPClient.Timeout = cfg.Timeout
	hc.CheckRetry = checkRetry
	hc.ErrorHandler = retryablehttp.PassthroughErrorHandler
	hc.Logger = leveledLogger{entry: log}

	return &Client{baseURL: base, http: hc, logger: log}, nil
}

// checkRetry retries connection failures and the gateway-ish statuses. Other
// responses go straight back to the caller, which owns their meaning.
func checkRetry(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}
	if err != nil {
		return retryablehttp.DefaultRetryPolicy(ctx, resp, err)
	}
	switch resp.StatusCode {
	case http.StatusTooManyRequests, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true, nil
	}
	return false, nil
}

type analyzeBody struct {
	Token    *string `json:"token"`
	MaxRepos int     `json:"max_repos"`
}

// Analyze requests the full analysis for req.Identity and returns the raw
// payload. Errors are *errors.Error values.
func (c *Client) Analyze(ctx context.Context, req models.AnalysisRequest) ([]byte, error) {
	body := analyzeBody{MaxRepos: req.MaxRepos}
	if body.MaxRepos <= 0 {
		body.MaxRepos = models.DefaultMaxRepos
	}
	if req.HasToken() {
		token := req.AccessToken
		body.Token = &token
	}

	requestID := req.ID
	if requestID == "" {
		requestID = uuid.NewString()
	}

	status, raw, err := c.do(ctx, http.MethodPost, "/api/analyze/full/"+url.PathEscape(req.Identity), requestID, body)
	if err != nil {
		return nil, err
	}

	if status < 200 || status > 299 {
		if msg := serviceMessage(raw, "error", "message"); msg != "" {
			return nil, errors.Service(status, msg)
		}
		return nil, errors.Transport(nil, status, errors.GenericFetchMessage)
	}

	// The service reports some failures with a 2xx and an error field.
	if msg := serviceMessage(raw, "error"); msg != "" {
		return nil, errors.Service(status, msg)
	}
	return raw, nil
}

type authBody struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email,omitempty"`
}

func (c *Client) Login(ctx context.Context, req models.AuthRequest) (string, error) {
	return c.authenticate(ctx, "/api/auth/login", req)
}

func (c *Client) Register(ctx context.Context, req models.AuthRequest) (string, error) {
	return c.authenticate(ctx, "/api/auth/register", req)
}

func (c *Client) authenticate(ctx context.Context, path string, req models.AuthRequest) (string, error) {
	body := authBody{Username: req.Identity, Password: req.Secret, Email: req.Email}

	status, raw, err := c.do(ctx, http.MethodPost, path, uuid.NewString(), body)
	if err != nil {
		return "", err
	}

	message := serviceMessage(raw, "message", "error")
	ok := status >= 200 && status <= 299
	if ok {
		if success := gjson.GetBytes(raw, "success"); success.Exists() && !success.Bool() {
			ok = false
		}
	}
	if !ok {
		if message == "" {
			message = errors.GenericAuthMessage
		}
		return "", errors.Service(status, message)
	}
	return message, nil
}

// Health returns the status reported by the service.
func (c *Client) Health(ctx context.Context) (string, error) {
	status, raw, err := c.do(ctx, http.MethodGet, "/api/health", uuid.NewString(), nil)
	if err != nil {
		return "", err
	}
	if status < 200 || status > 299 {
		return "", errors.Transport(nil, status, errors.GenericFetchMessage)
	}
	if s := gjson.GetBytes(raw, "status"); s.Type == gjson.String {
		return s.String(), nil
	}
	return "ok", nil
}

func (c *Client) do(ctx context.Context, method, path, requestID string, body interface{}) (int, []byte, error) {
	endpoint := c.baseURL.String() + path
	log := c.logger.WithFields(logrus.Fields{"method": method, "url": endpoint, "request_id": requestID})

	var payload interface{}
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return 0, nil, fmt.Errorf("failed to encode request: %w", err)
		}
		payload = bytes.NewReader(encoded)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, method, endpoint, payload)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestIDHeader, requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		log.WithError(err).Warn("request failed")
		return 0, nil, errors.Transport(err, 0, "")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		log.WithError(err).Warn("failed to read response")
		return 0, nil, errors.Transport(err, resp.StatusCode, "")
	}

	log.WithFields(logrus.Fields{
		"status":   resp.StatusCode,
		"duration": time.Since(start).Round(time.Millisecond),
	}).Debug("request completed")

	return resp.StatusCode, raw, nil
}

// serviceMessage returns the first non-empty string among keys at the top
// level of raw.
func serviceMessage(raw []byte, keys ...string) string {
	if !gjson.ValidBytes(raw) {
		return ""
	}
	for _, key := range keys {
		if v := gjson.GetBytes(raw, key); v.Type == gjson.String && v.String() != "" {
			return v.String()
		}
	}
	return ""
}
