package cli

import (
	"github.com/urfave/cli/v2"
)

const helpTemplate = `{{.Name}} - {{.Usage}}

Usage: {{.HelpName}} [options] [command] [username]

Commands:
{{range .VisibleCommands}}   {{join .Names ", "}}{{"\t"}}{{.Usage}}
{{end}}
Options:
   {{range .VisibleFlags}}{{.}}
   {{end}}`

// Actions are the handlers behind each command. Nil handlers are left out.
type Actions struct {
	Before   cli.BeforeFunc
	Analyze  cli.ActionFunc
	Login    cli.ActionFunc
	Register cli.ActionFunc
	Logout   cli.ActionFunc
	Whoami   cli.ActionFunc
	Health   cli.ActionFunc
}

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to a YAML config file",
			EnvVars: []string{"GITDASH_CONFIG"},
		},
		&cli.StringFlag{
			Name:  "server",
			Usage: "Base URL of the analysis service",
		},
		&cli.StringFlag{
			Name:  "source",
			Usage: "Where analyses come from (service, github)",
		},
		&cli.StringFlag{
			Name:  "store",
			Usage: "Where the logged-in identity is kept (keyring, bolt, memory)",
		},
		&cli.StringFlag{
			Name:  "store-path",
			Usage: "Database file for the bolt store",
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "Log level (trace, debug, info, warn, error)",
		},
		&cli.StringFlag{
			Name:  "log-format",
			Usage: "Log format (text, json)",
		},
		&cli.BoolFlag{
			Name:  "no-color",
			Usage: "Disable colored output",
		},
	}
}

func analyzeFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "token",
			Aliases: []string{"t"},
			Usage:   "GitHub personal access token",
			EnvVars: []string{"GITDASH_GITHUB_TOKEN"},
		},
		&cli.IntFlag{
			Name:    "max-repos",
			Aliases: []string{"m"},
			Usage:   "Number of repositories to analyze",
		},
		&cli.StringFlag{
			Name:  "tab",
			Usage: "Dashboard tab to show (overview, commits, repos, patterns, recommendations, all)",
		},
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"o"},
			Usage:   "Output format (text, json)",
		},
	}
}

func passwordFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "password",
		Aliases: []string{"p"},
		Usage:   "Password (prompted for when omitted)",
	}
}

func NewApp(actions Actions) *cli.App {
	cli.AppHelpTemplate = helpTemplate

	app := &cli.App{
		Name:      "gitdash",
		Usage:     "Dashboard of a GitHub user's commit activity",
		Version:   "v" + Version(),
		Flags:     append(globalFlags(), analyzeFlags()...),
		Before:    actions.Before,
		Action:    actions.Analyze,
		ArgsUsage: "[username]",
		Authors: []*cli.Author{
			{Name: "gnomegl"},
		},
	}

	commands := []*cli.Command{
		{
			Name:      "analyze",
			Aliases:   []string{"a"},
			Usage:     "Analyze a GitHub user (defaults to the logged-in identity)",
			ArgsUsage: "[username]",
			Flags:     analyzeFlags(),
			Action:    actions.Analyze,
		},
		{
			Name:      "login",
			Usage:     "Log in and remember the identity",
			ArgsUsage: "<username>",
			Flags:     []cli.Flag{passwordFlag()},
			Action:    actions.Login,
		},
		{
			Name:      "register",
			Usage:     "Create an account",
			ArgsUsage: "<username>",
			Flags: []cli.Flag{
				passwordFlag(),
				&cli.StringFlag{
					Name:  "email",
					Usage: "Email address",
				},
			},
			Action: actions.Register,
		},
		{
			Name:   "logout",
			Usage:  "Forget the remembered identity",
			Action: actions.Logout,
		},
		{
			Name:   "whoami",
			Usage:  "Print the remembered identity",
			Action: actions.Whoami,
		},
		{
			Name:   "health",
			Usage:  "Check that the analysis service is up",
			Action: actions.Health,
		},
	}
	for _, cmd := range commands {
		if cmd.Action != nil {
			app.Commands = append(app.Commands, cmd)
		}
	}

	return app
}
