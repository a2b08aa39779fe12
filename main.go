package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/gnomegl/gitdash/internal/art"
	"github.com/gnomegl/gitdash/internal/auth"
	app "github.com/gnomegl/gitdash/internal/cli"
	"github.com/gnomegl/gitdash/internal/config"
	"github.com/gnomegl/gitdash/internal/logging"
	"github.com/gnomegl/gitdash/internal/service"
	"github.com/urfave/cli/v2"
)

func wantsHelp(c *cli.Context) bool {
	for _, arg := range os.Args[1:] {
		switch arg {
		case "-h", "--help", "help", "-v", "--version":
			return true
		}
	}
	return c.Bool("help") || c.Bool("version")
}

// setup builds the orchestrator for a command from config, env and flags.
func setup(c *cli.Context) (*service.Orchestrator, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, err
	}
	config.ApplyFlags(cfg, c)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.Output.NoColor {
		color.NoColor = true
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)
	if err != nil {
		return nil, err
	}

	orch, err := service.NewOrchestrator(cfg, logger, os.Stdout, os.Stderr)
	if err != nil {
		return nil, err
	}
	return orch, nil
}

func password(c *cli.Context) (string, error) {
	if p := c.String("password"); p != "" {
		return p, nil
	}
	return auth.ReadSecret(os.Stdin, os.Stderr, "Password: ")
}

func runAnalyze(c *cli.Context) error {
	orch, err := setup(c)
	if err != nil {
		return err
	}
	defer orch.Close()
	return orch.Analyze(c.Context)
}

func runLogin(c *cli.Context) error {
	orch, err := setup(c)
	if err != nil {
		return err
	}
	defer orch.Close()

	pw, err := password(c)
	if err != nil {
		return err
	}
	return orch.Login(c.Context, c.Args().First(), pw)
}

func runRegister(c *cli.Context) error {
	orch, err := setup(c)
	if err != nil {
		return err
	}
	defer orch.Close()

	pw, err := password(c)
	if err != nil {
		return err
	}
	return orch.Register(c.Context, c.Args().First(), pw, c.String("email"))
}

func runLogout(c *cli.Context) error {
	orch, err := setup(c)
	if err != nil {
		return err
	}
	defer orch.Close()
	orch.Logout()
	return nil
}

func runWhoami(c *cli.Context) error {
	orch, err := setup(c)
	if err != nil {
		return err
	}
	defer orch.Close()
	return orch.Whoami()
}

func runHealth(c *cli.Context) error {
	orch, err := setup(c)
	if err != nil {
		return err
	}
	defer orch.Close()
	return orch.Health(c.Context)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cliApp := app.NewApp(app.Actions{
		Before: func(c *cli.Context) error {
			if c.Bool("no-color") {
				color.NoColor = true
			}
			if !wantsHelp(c) {
				art.PrintLogo(os.Stderr, app.Version())
				fmt.Fprintln(os.Stderr)
			}
			return nil
		},
		Analyze:  runAnalyze,
		Login:    runLogin,
		Register: runRegister,
		Logout:   runLogout,
		Whoami:   runWhoami,
		Health:   runHealth,
	})

	if err := cliApp.RunContext(ctx, os.Args); err != nil {
		if !service.IsReported(err) {
			color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		}
		stop()
		os.Exit(1)
	}
}
