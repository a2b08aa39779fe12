package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/gnomegl/gitdash/internal/api"
	"github.com/gnomegl/gitdash/internal/auth"
	"github.com/gnomegl/gitdash/internal/config"
	"github.com/gnomegl/gitdash/internal/display"
	"github.com/gnomegl/gitdash/internal/github"
	"github.com/gnomegl/gitdash/internal/logging"
	"github.com/gnomegl/gitdash/internal/models"
	"github.com/gnomegl/gitdash/internal/session"
	"github.com/gnomegl/gitdash/internal/store"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"
)

// reported marks an error the reporter has already shown to the user.
type reported struct{ err error }

func (r reported) Error() string { return r.err.Error() }
func (r reported) Unwrap() error { return r.err }

// IsReported tells main not to print err a second time.
func IsReported(err error) bool {
	var r reported
	return stderrors.As(err, &r)
}

// Orchestrator wires configuration, the identity store, the analysis source
// and the terminal renderers around one session.
type Orchestrator struct {
	config  *config.AppConfig
	logger  *logrus.Entry
	store   store.Store
	client  *api.Client
	session *session.Session
	out     io.Writer
	errOut  io.Writer
}

func NewOrchestrator(cfg *config.AppConfig, logger *logrus.Logger, out, errOut io.Writer) (*Orchestrator, error) {
	st, err := store.Open(cfg.Store.Backend, cfg.Store.Path, logger)
	if err != nil {
		return nil, err
	}
	return newOrchestrator(cfg, logger, st, out, errOut)
}

func newOrchestrator(cfg *config.AppConfig, logger *logrus.Logger, st store.Store, out, errOut io.Writer) (*Orchestrator, error) {
	client, err := api.New(api.Config{
		BaseURL:  cfg.Server.URL,
		Timeout:  cfg.Server.Timeout,
		RetryMax: cfg.Server.Retries,
	}, logger)
	if err != nil {
		st.Close()
		return nil, err
	}

	var analyzer session.Analyzer = client
	if cfg.Source == config.SourceGitHub {
		ghCfg := github.DefaultConfig()
		ghCfg.BaseURL = cfg.GitHub.BaseURL
		if cfg.GitHub.Concurrency > 0 {
			ghCfg.MaxConcurrentRequests = cfg.GitHub.Concurrency
		}
		if cfg.GitHub.RequestsPerSecond > 0 {
			ghCfg.RequestsPerSecond = cfg.GitHub.RequestsPerSecond
		}
		var progress io.Writer
		if cfg.Output.Format == config.FormatText && isTerminal(errOut) {
			progress = errOut
		}
		analyzer = github.NewSource(ghCfg, logger, progress)
	}

	return &Orchestrator{
		config:  cfg,
		logger:  logging.Component(logger, "service"),
		store:   st,
		client:  client,
		session: session.New(analyzer, client, st, session.WithLogger(logger), session.WithMaxRepos(cfg.MaxRepos)),
		out:     out,
		errOut:  errOut,
	}, nil
}

func (o *Orchestrator) Close() error {
	return o.store.Close()
}

// Session exposes the underlying session, mostly for tests.
func (o *Orchestrator) Session() *session.Session {
	return o.session
}

func (o *Orchestrator) resolveTarget() (string, error) {
	identity, err := auth.ResolveIdentity(o.config.Target, o.store)
	if err != nil {
		return "", err
	}
	if identity == "" {
		o.logger.Debug("no target given and no saved identity")
	}
	return identity, nil
}

// Analyze runs one analysis for the configured target, or the saved identity,
// and renders it.
func (o *Orchestrator) Analyze(ctx context.Context) error {
	identity, err := o.resolveTarget()
	if err != nil {
		return err
	}

	token := o.config.GitHub.Token
	o.session.UpdateCredentials(session.CredentialsUpdate{Identity: &identity, Secret: &token})

	spinner := o.config.Output.Format == config.FormatText &&
		o.config.Source == config.SourceService &&
		isTerminal(o.errOut)
	detach := display.NewReporter(o.errOut, spinner).Attach(o.session)
	err = o.session.SubmitAnalysis(ctx)
	detach()
	if err != nil {
		return reported{err}
	}

	result := o.session.Result()
	if o.config.Output.Format == config.FormatJSON {
		return display.OutputJSON(o.out, identity, result)
	}

	dashboard := display.NewDashboard(o.out)
	if o.config.Output.Tab == "" || o.config.Output.Tab == config.TabAll {
		dashboard.RenderAll(identity, result)
		return nil
	}
	tab, err := session.ParseTab(o.config.Output.Tab)
	if err != nil {
		return err
	}
	o.session.SelectTab(tab)
	dashboard.Render(identity, result, o.session.View().Tab)
	return nil
}

func (o *Orchestrator) Login(ctx context.Context, identity, password string) error {
	return o.authenticate(ctx, session.ModeLogin, models.AuthRequest{Identity: identity, Secret: password})
}

func (o *Orchestrator) Register(ctx context.Context, identity, password, email string) error {
	return o.authenticate(ctx, session.ModeRegister, models.AuthRequest{Identity: identity, Secret: password, Email: email})
}

func (o *Orchestrator) authenticate(ctx context.Context, mode session.Mode, form models.AuthRequest) error {
	detach := display.NewReporter(o.errOut, false).Attach(o.session)
	defer detach()

	if err := o.session.SubmitCredentials(ctx, mode, form); err != nil {
		return reported{err}
	}
	return nil
}

func (o *Orchestrator) Logout() {
	o.session.Logout()
	color.New(color.FgGreen).Fprintln(o.out, "Logged out")
}

// Whoami prints the saved identity.
func (o *Orchestrator) Whoami() error {
	identity, err := o.store.Get(store.KeyIdentity)
	if err != nil {
		return fmt.Errorf("failed to read saved identity: %w", err)
	}
	if identity == "" {
		color.New(color.FgYellow).Fprintln(o.out, "Not logged in")
		return nil
	}
	fmt.Fprintln(o.out, identity)
	return nil
}

func (o *Orchestrator) Health(ctx context.Context) error {
	status, err := o.client.Health(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(o.out, "%s: %s\n", o.config.Server.URL, status)
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
