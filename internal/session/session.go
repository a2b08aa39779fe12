// Package session holds the dashboard state machine: the credentials being
// edited, the analysis lifecycle, the active tab and the login flow.
package session

import (
	"context"
	stderrors "errors"
	"strings"
	"sync"

	"github.com/gnomegl/gitdash/internal/errors"
	"github.com/gnomegl/gitdash/internal/logging"
	"github.com/gnomegl/gitdash/internal/models"
	"github.com/gnomegl/gitdash/internal/payload"
	"github.com/gnomegl/gitdash/internal/store"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ErrSuperseded is returned by SubmitAnalysis when a newer submission started
// before this one completed. Its outcome was discarded.
var ErrSuperseded = stderrors.New("analysis superseded by a newer request")

const (
	emptyIdentityMessage = "Please enter a GitHub username"
	emptySecretMessage   = "Please enter a password"
	loginSuccessMessage  = "Login successful"
	registerSuccess      = "Registration successful"
)

type Session struct {
	analyzer Analyzer
	auth     Authenticator
	store    Store
	logger   *logrus.Entry
	maxRepos int

	mu          sync.Mutex
	creds       models.Credentials
	state       State
	tab         Tab
	result      *models.AnalysisResult
	errMsg      string
	seq         uint64
	cancel      context.CancelFunc
	subscribers []subscriber
	nextSubID   int
	queue       []Event
	dispatching bool
}

type Option func(*Session)

func WithLogger(logger *logrus.Logger) Option {
	return func(s *Session) {
		s.logger = logging.Component(logger, "session")
	}
}

// WithMaxRepos overrides the repository limit sent with each analysis.
// Values below 1 are ignored.
func WithMaxRepos(n int) Option {
	return func(s *Session) {
		if n > 0 {
			s.maxRepos = n
		}
	}
}

func New(analyzer Analyzer, auth Authenticator, st Store, opts ...Option) *Session {
	s := &Session{
		analyzer: analyzer,
		auth:     auth,
		store:    st,
		logger:   logging.Component(nil, "session"),
		maxRepos: models.DefaultMaxRepos,
		state:    StateIdle,
		tab:      TabOverview,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// UpdateCredentials merges update into the current credentials. Allowed in
// every state.
func (s *Session) UpdateCredentials(update CredentialsUpdate) {
	s.mu.Lock()
	if update.Identity != nil {
		s.creds.Identity = *update.Identity
	}
	if update.Secret != nil {
		s.creds.Secret = *update.Secret
	}
	s.queueLocked(Event{Kind: EventCredentialsChanged})
	s.mu.Unlock()
	s.dispatch()
}

// SubmitAnalysis requests an analysis for the current identity and blocks
// until it completes. A later call supersedes an in-flight one: the earlier
// call's context is cancelled and it returns ErrSuperseded without touching
// the session.
func (s *Session) SubmitAnalysis(ctx context.Context) error {
	s.mu.Lock()
	identity := strings.TrimSpace(s.creds.Identity)
	if identity == "" {
		s.mu.Unlock()
		err := errors.Validation(emptyIdentityMessage)
		s.emit(Event{Kind: EventValidationFailed, Message: err.Message})
		return err
	}

	if s.cancel != nil {
		s.cancel()
	}
	s.seq++
	seq := s.seq
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.state = StateLoading
	s.errMsg = ""
	s.queueLocked(Event{Kind: EventStateChanged, State: StateLoading})

	req := models.AnalysisRequest{
		ID:          uuid.NewString(),
		Identity:    identity,
		AccessToken: s.creds.Secret,
		MaxRepos:    s.maxRepos,
	}
	s.mu.Unlock()
	defer cancel()

	s.dispatch()

	log := s.logger.WithFields(logrus.Fields{"request_id": req.ID, "identity": identity})
	log.Debug("analysis requested")

	raw, err := s.analyzer.Analyze(ctx, req)
	var result *models.AnalysisResult
	if err == nil {
		result = payload.Validate(raw)
	}

	s.mu.Lock()
	if seq != s.seq {
		s.mu.Unlock()
		log.Debug("discarding superseded analysis")
		return ErrSuperseded
	}
	s.cancel = nil

	if err != nil {
		s.state = StateError
		s.errMsg = errors.UserMessage(err, errors.GenericNetworkMessage)
		s.queueLocked(Event{Kind: EventStateChanged, State: StateError, Message: s.errMsg})
	} else {
		s.state = StateSuccess
		s.result = result
		s.errMsg = ""
		s.tab = TabOverview
		s.queueLocked(
			Event{Kind: EventStateChanged, State: StateSuccess},
			Event{Kind: EventTabChanged, Tab: TabOverview},
		)
	}
	s.mu.Unlock()

	if err != nil {
		log.WithError(err).Warn("analysis failed")
	} else {
		log.WithField("commits", result.Summary.TotalCommits).Debug("analysis completed")
	}

	s.dispatch()
	return err
}

// SubmitCredentials logs in or registers with form. It reports the outcome as
// a notification and never changes the dashboard state.
func (s *Session) SubmitCredentials(ctx context.Context, mode Mode, form models.AuthRequest) error {
	form.Identity = strings.TrimSpace(form.Identity)
	if form.Identity == "" || form.Secret == "" {
		msg := emptyIdentityMessage
		if form.Identity != "" {
			msg = emptySecretMessage
		}
		err := errors.Validation(msg)
		s.emit(Event{Kind: EventValidationFailed, Message: msg})
		return err
	}

	log := s.logger.WithFields(logrus.Fields{"mode": string(mode), "identity": form.Identity})

	var (
		message string
		err     error
	)
	switch mode {
	case ModeLogin:
		message, err = s.auth.Login(ctx, form)
	case ModeRegister:
		message, err = s.auth.Register(ctx, form)
	default:
		return errors.Validationf("unknown mode %q", mode)
	}

	if err != nil {
		log.WithError(err).Warn("authentication failed")
		s.emit(Event{Kind: EventNotification, Message: errors.UserMessage(err, errors.GenericAuthMessage)})
		return err
	}

	if mode == ModeRegister {
		if message == "" {
			message = registerSuccess
		}
		s.emit(Event{Kind: EventNotification, Success: true, Message: message})
		return nil
	}

	if err := s.store.Set(store.KeyIdentity, form.Identity); err != nil {
		log.WithError(err).Error("failed to persist identity")
	}
	if message == "" {
		message = loginSuccessMessage
	}
	s.emit(
		Event{Kind: EventNotification, Success: true, Message: message},
		Event{Kind: EventNavigate, Destination: DestinationDashboard},
	)
	return nil
}

// Logout forgets the persisted identity and navigates to the entry view.
// Store failures are logged; Logout itself cannot fail.
func (s *Session) Logout() {
	if err := s.store.Delete(store.KeyIdentity); err != nil {
		s.logger.WithError(err).Error("failed to delete persisted identity")
	}
	s.emit(Event{Kind: EventNavigate, Destination: DestinationEntry})
}

// SelectTab switches the active tab. It only has an effect in the success
// state and reports whether it was applied.
func (s *Session) SelectTab(tab Tab) bool {
	if _, err := ParseTab(string(tab)); err != nil {
		return false
	}

	s.mu.Lock()
	if s.state != StateSuccess {
		s.mu.Unlock()
		return false
	}
	s.tab = tab
	s.queueLocked(Event{Kind: EventTabChanged, Tab: tab})
	s.mu.Unlock()

	s.dispatch()
	return true
}

func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return View{
		State:       s.state,
		Tab:         s.tab,
		Credentials: s.creds,
		Result:      s.result,
		Error:       s.errMsg,
	}
}

// Result is the last successful analysis, or nil.
func (s *Session) Result() *models.AnalysisResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}
