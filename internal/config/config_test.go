package config

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:5000", cfg.Server.URL)
	assert.Equal(t, 120*time.Second, cfg.Server.Timeout)
	assert.Equal(t, SourceService, cfg.Source)
	assert.Equal(t, "keyring", cfg.Store.Backend)
	assert.Equal(t, 15, cfg.MaxRepos)
	assert.Equal(t, TabAll, cfg.Output.Tab)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFileAndEnv(t *testing.T) {
	path := writeConfig(t, `
server:
  url: https://dash.example.com
  timeout: 30s
source: github
store:
  backend: bolt
  path: /tmp/gitdash.db
max_repos: 8
output:
  tab: patterns
`)
	t.Setenv("GITDASH_GITHUB_TOKEN", "ghp_env")
	t.Setenv("GITDASH_MAX_REPOS", "4")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://dash.example.com", cfg.Server.URL)
	assert.Equal(t, 30*time.Second, cfg.Server.Timeout)
	assert.Equal(t, SourceGitHub, cfg.Source)
	assert.Equal(t, "bolt", cfg.Store.Backend)
	assert.Equal(t, "/tmp/gitdash.db", cfg.Store.Path)
	assert.Equal(t, "ghp_env", cfg.GitHub.Token)
	assert.Equal(t, 4, cfg.MaxRepos, "env wins over the file")
	assert.Equal(t, "patterns", cfg.Output.Tab)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestApplyFlags(t *testing.T) {
	set := flag.NewFlagSet("test", flag.ContinueOnError)
	set.String("server", "", "")
	set.String("source", "", "")
	set.String("token", "", "")
	set.Int("max-repos", 0, "")
	set.String("format", "", "")
	set.Bool("no-color", false, "")
	require.NoError(t, set.Parse([]string{"--server", "http://flag:9000", "--max-repos", "3", "--no-color", "octocat"}))

	cfg := &AppConfig{Source: SourceService, MaxRepos: 15, Output: OutputConfig{Format: FormatText}}
	ApplyFlags(cfg, cli.NewContext(nil, set, nil))

	assert.Equal(t, "http://flag:9000", cfg.Server.URL)
	assert.Equal(t, 3, cfg.MaxRepos)
	assert.True(t, cfg.Output.NoColor)
	assert.Equal(t, "octocat", cfg.Target)
	assert.Equal(t, SourceService, cfg.Source, "unset flags keep the configured value")
	assert.Equal(t, FormatText, cfg.Output.Format)
}

func TestValidate(t *testing.T) {
	valid := func() *AppConfig {
		return &AppConfig{
			Server:   ServerConfig{URL: "http://localhost:5000", Timeout: time.Second},
			Source:   SourceService,
			Store:    StoreConfig{Backend: "memory"},
			MaxRepos: 15,
			Output:   OutputConfig{Format: FormatText, Tab: TabAll},
		}
	}
	require.NoError(t, valid().Validate())

	cases := map[string]func(*AppConfig){
		"source":    func(c *AppConfig) { c.Source = "gitlab" },
		"store":     func(c *AppConfig) { c.Store.Backend = "etcd" },
		"format":    func(c *AppConfig) { c.Output.Format = "csv" },
		"tab":       func(c *AppConfig) { c.Output.Tab = "settings" },
		"max repos": func(c *AppConfig) { c.MaxRepos = 0 },
		"timeout":   func(c *AppConfig) { c.Server.Timeout = 0 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := valid()
			mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
