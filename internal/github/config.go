package github

// Config holds configuration for GitHub operations
type Config struct {
	// BaseURL overrides the API endpoint, e.g. for GitHub Enterprise.
	BaseURL               string
	MaxConcurrentRequests int
	RequestsPerSecond     float64
	PerPage               int
	MaxRepoPages          int
	CommitsPerPage        int
	MaxCommitPages        int
}

// DefaultConfig returns a default configuration
func DefaultConfig() Config {
	return Config{
		MaxConcurrentRequests: 5,
		RequestsPerSecond:     10,
		PerPage:               100,
		MaxRepoPages:          10,
		CommitsPerPage:        50,
		MaxCommitPages:        5,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.MaxConcurrentRequests <= 0 {
		c.MaxConcurrentRequests = d.MaxConcurrentRequests
	}
	if c.PerPage <= 0 {
		c.PerPage = d.PerPage
	}
	if c.MaxRepoPages <= 0 {
		c.MaxRepoPages = d.MaxRepoPages
	}
	if c.CommitsPerPage <= 0 {
		c.CommitsPerPage = d.CommitsPerPage
	}
	if c.MaxCommitPages <= 0 {
		c.MaxCommitPages = d.MaxCommitPages
	}
	return c
}
