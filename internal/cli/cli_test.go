package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

type captured struct {
	command string
	target  string
	token   string
	store   string
	tab     string
	maxRepo int
	pass    string
	email   string
}

func capturingApp(got *captured) *cli.App {
	record := func(name string) cli.ActionFunc {
		return func(c *cli.Context) error {
			got.command = name
			got.target = c.Args().First()
			got.token = c.String("token")
			got.store = c.String("store")
			got.tab = c.String("tab")
			got.maxRepo = c.Int("max-repos")
			got.pass = c.String("password")
			got.email = c.String("email")
			return nil
		}
	}
	return NewApp(Actions{
		Analyze:  record("analyze"),
		Login:    record("login"),
		Register: record("register"),
		Logout:   record("logout"),
		Whoami:   record("whoami"),
		Health:   record("health"),
	})
}

func TestAnalyzeCommand(t *testing.T) {
	var got captured
	app := capturingApp(&got)

	err := app.Run([]string{"gitdash", "--store", "memory", "analyze", "-t", "ghp_x", "--tab", "repos", "-m", "5", "octocat"})
	require.NoError(t, err)

	assert.Equal(t, captured{command: "analyze", target: "octocat", token: "ghp_x", store: "memory", tab: "repos", maxRepo: 5}, got)
}

func TestDefaultActionAnalyzes(t *testing.T) {
	var got captured
	app := capturingApp(&got)

	require.NoError(t, app.Run([]string{"gitdash", "--token", "ghp_y", "octocat"}))

	assert.Equal(t, "analyze", got.command)
	assert.Equal(t, "octocat", got.target)
	assert.Equal(t, "ghp_y", got.token)
}

func TestRegisterCommand(t *testing.T) {
	var got captured
	app := capturingApp(&got)

	require.NoError(t, app.Run([]string{"gitdash", "register", "-p", "pw", "--email", "o@example.com", "octocat"}))

	assert.Equal(t, "register", got.command)
	assert.Equal(t, "pw", got.pass)
	assert.Equal(t, "o@example.com", got.email)
}

func TestNilActionsAreOmitted(t *testing.T) {
	app := NewApp(Actions{Analyze: func(*cli.Context) error { return nil }})

	require.Len(t, app.Commands, 1)
	assert.Equal(t, "analyze", app.Commands[0].Name)
}

func TestVersion(t *testing.T) {
	old := version
	defer func() { version = old }()

	version = "v1.4.0"
	assert.Equal(t, "1.4.0", Version())
}
