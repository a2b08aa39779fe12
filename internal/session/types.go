package session

import (
	"context"
	"fmt"
	"strings"

	"github.com/gnomegl/gitdash/internal/models"
)

// State is the lifecycle of the dashboard.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateSuccess
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateSuccess:
		return "success"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// Tab is one of the dashboard views.
type Tab string

const (
	TabOverview        Tab = "overview"
	TabCommits         Tab = "commits"
	TabRepos           Tab = "repos"
	TabPatterns        Tab = "patterns"
	TabRecommendations Tab = "recommendations"
)

// Tabs lists every tab in display order.
var Tabs = []Tab{TabOverview, TabCommits, TabRepos, TabPatterns, TabRecommendations}

func ParseTab(s string) (Tab, error) {
	t := Tab(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Tabs {
		if t == known {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown tab %q", s)
}

// Mode selects the authentication operation.
type Mode string

const (
	ModeLogin    Mode = "login"
	ModeRegister Mode = "register"
)

// Destination is where a Navigate event sends the user.
type Destination string

const (
	DestinationEntry     Destination = "entry"
	DestinationDashboard Destination = "dashboard"
)

// Analyzer produces the raw analysis payload for a request.
type Analyzer interface {
	Analyze(ctx context.Context, req models.AnalysisRequest) ([]byte, error)
}

// Authenticator performs login and registration. The returned string is the
// collaborator's message, if any.
type Authenticator interface {
	Login(ctx context.Context, req models.AuthRequest) (string, error)
	Register(ctx context.Context, req models.AuthRequest) (string, error)
}

// Store persists the logged-in identity.
type Store interface {
	Set(key, value string) error
	Delete(key string) error
}

// CredentialsUpdate merges into the current credentials; nil fields are left
// unchanged.
type CredentialsUpdate struct {
	Identity *string
	Secret   *string
}

// View is a point-in-time copy of the session.
type View struct {
	State       State
	Tab         Tab
	Credentials models.Credentials
	Result      *models.AnalysisResult
	Error       string
}
