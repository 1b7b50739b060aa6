// Package shared holds the context passed to all CLI commands.
package shared

import "portfolio.site/internal/config"

// Context carries flags set on the root command.
type Context struct {
	// ContentPath overrides CONTENT_PATH when set.
	ContentPath string
}

// LoadConfig reads the environment and applies root flag overrides.
func (c *Context) LoadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if c.ContentPath != "" {
		cfg.ContentPath = c.ContentPath
	}
	return cfg, nil
}
