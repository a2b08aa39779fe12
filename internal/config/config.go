package config

import (
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gnomegl/gitdash/internal/session"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"github.com/urfave/cli/v2"
)

const (
	SourceService = "service"
	SourceGitHub  = "github"

	FormatText = "text"
	FormatJSON = "json"

	// TabAll renders every tab.
	TabAll = "all"

	envPrefix = "GITDASH"
)

type AppConfig struct {
	Server   ServerConfig `mapstructure:"server"`
	Source   string       `mapstructure:"source"`
	Store    StoreConfig  `mapstructure:"store"`
	GitHub   GitHubConfig `mapstructure:"github"`
	MaxRepos int          `mapstructure:"max_repos"`
	Log      LogConfig    `mapstructure:"log"`
	Output   OutputConfig `mapstructure:"output"`
	Target   string       `mapstructure:"-"`
}

type ServerConfig struct {
	URL     string        `mapstructure:"url"`
	Timeout time.Duration `mapstructure:"timeout"`
	Retries int           `mapstructure:"retries"`
}

type StoreConfig struct {
	Backend string `mapstructure:"backend"`
	Path    string `mapstructure:"path"`
}

type GitHubConfig struct {
	Token             string  `mapstructure:"token"`
	BaseURL           string  `mapstructure:"base_url"`
	Concurrency       int     `mapstructure:"concurrency"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type OutputConfig struct {
	Format  string `mapstructure:"format"`
	Tab     string `mapstructure:"tab"`
	NoColor bool   `mapstructure:"no_color"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.url", "http://localhost:5000")
	v.SetDefault("server.timeout", 120*time.Second)
	v.SetDefault("server.retries", 2)
	v.SetDefault("source", SourceService)
	v.SetDefault("store.backend", "keyring")
	v.SetDefault("store.path", "")
	v.SetDefault("github.token", "")
	v.SetDefault("github.base_url", "")
	v.SetDefault("github.concurrency", 5)
	v.SetDefault("github.requests_per_second", 10.0)
	v.SetDefault("max_repos", 15)
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "text")
	v.SetDefault("output.format", FormatText)
	v.SetDefault("output.tab", TabAll)
	v.SetDefault("output.no_color", false)
}

// DefaultDir is <user config dir>/gitdash.
func DefaultDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "gitdash")
}

// Load builds the configuration from defaults, .env files, the YAML config
// file and GITDASH_* environment variables, later sources winning. An empty
// path looks for config.yaml in DefaultDir and tolerates its absence; an
// explicit path must exist.
func Load(path string) (*AppConfig, error) {
	// .env is optional
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	} else if dir := DefaultDir(); dir != "" {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(dir)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !stderrors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}

// ApplyFlags overrides cfg with every flag explicitly set on the command
// line (or through a flag's env var).
func ApplyFlags(cfg *AppConfig, c *cli.Context) {
	if c.IsSet("server") {
		cfg.Server.URL = c.String("server")
	}
	if c.IsSet("source") {
		cfg.Source = c.String("source")
	}
	if c.IsSet("store") {
		cfg.Store.Backend = c.String("store")
	}
	if c.IsSet("store-path") {
		cfg.Store.Path = c.String("store-path")
	}
	if c.IsSet("log-level") {
		cfg.Log.Level = c.String("log-level")
	}
	if c.IsSet("log-format") {
		cfg.Log.Format = c.String("log-format")
	}
	if c.IsSet("no-color") {
		cfg.Output.NoColor = c.Bool("no-color")
	}
	if c.IsSet("token") {
		cfg.GitHub.Token = c.String("token")
	}
	if c.IsSet("max-repos") {
		cfg.MaxRepos = c.Int("max-repos")
	}
	if c.IsSet("tab") {
		cfg.Output.Tab = c.String("tab")
	}
	if c.IsSet("format") {
		cfg.Output.Format = c.String("format")
	}
	if c.NArg() > 0 {
		cfg.Target = c.Args().First()
	}
}

func (c *AppConfig) Validate() error {
	switch c.Source {
	case SourceService, SourceGitHub:
	default:
		return fmt.Errorf("invalid source %q (want %s or %s)", c.Source, SourceService, SourceGitHub)
	}

	switch c.Store.Backend {
	case "keyring", "bolt", "memory":
	default:
		return fmt.Errorf("invalid store backend %q (want keyring, bolt or memory)", c.Store.Backend)
	}

	switch c.Output.Format {
	case FormatText, FormatJSON:
	default:
		return fmt.Errorf("invalid output format %q (want text or json)", c.Output.Format)
	}

	if c.Output.Tab != "" && c.Output.Tab != TabAll {
		if _, err := session.ParseTab(c.Output.Tab); err != nil {
			return err
		}
	}

	if c.MaxRepos <= 0 {
		return fmt.Errorf("max repos must be positive, got %d", c.MaxRepos)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("server timeout must be positive, got %s", c.Server.Timeout)
	}
	return nil
}
