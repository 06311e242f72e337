package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/gorhill/cronexpr"

	"github.com/calebmartin/inkwell/internal/post"
)

const (
	defaultContentDir = "content/posts"
	defaultDataDir    = ".inkwell/data"
	defaultCooldown   = "36h"
	defaultModel      = "claude-3-7-sonnet-20250219"
	defaultMaxTokens  = 2500
	defaultTimeout    = 60
)

// Validate checks the config for errors and sets defaults.
func Validate(cfg *Config) error {
	if cfg.Name == "" {
		return fmt.Errorf("config: 'name' is required")
	}

	if cfg.ContentDir == "" {
		cfg.ContentDir = defaultContentDir
	}
	if cfg.DataDir == "" {
		cfg.DataDir = defaultDataDir
	}

	if cfg.Cooldown != "" && cfg.Schedule != "" {
		return fmt.Errorf("config: 'cooldown' and 'schedule' are mutually exclusive")
	}
	if cfg.Schedule != "" {
		if _, err := cronexpr.Parse(cfg.Schedule); err != nil {
			return fmt.Errorf("config: invalid 'schedule' expression %q: %w", cfg.Schedule, err)
		}
	} else {
		if cfg.Cooldown == "" {
			cfg.Cooldown = defaultCooldown
		}
		d, err := time.ParseDuration(cfg.Cooldown)
		if err != nil {
			return fmt.Errorf("config: invalid 'cooldown' duration %q: %w", cfg.Cooldown, err)
		}
		if d <= 0 {
			return fmt.Errorf("config: 'cooldown' must be positive, got %q", cfg.Cooldown)
		}
	}

	if len(cfg.Topics) == 0 {
		return fmt.Errorf("config: at least one topic is required")
	}
	seen := make(map[string]bool)
	for i, t := range cfg.Topics {
		if t.Title == "" {
			return fmt.Errorf("config: topic %d: 'title' is required", i+1)
		}
		if t.About == "" {
			return fmt.Errorf("config: topic %q: 'about' is required", t.Title)
		}
		if seen[t.Title] {
			return fmt.Errorf("config: duplicate topic title %q", t.Title)
		}
		seen[t.Title] = true
		if post.Slug(t.Title) == "" {
			return fmt.Errorf("config: topic %q: title yields an empty slug", t.Title)
		}
	}

	if cfg.Model.Name == "" {
		cfg.Model.Name = defaultModel
	}
	if cfg.Model.MaxTokens == 0 {
		cfg.Model.MaxTokens = defaultMaxTokens
	}
	if cfg.Model.MaxTokens < 0 {
		return fmt.Errorf("config: model 'max-tokens' must be positive")
	}
	if cfg.Model.Timeout == 0 {
		cfg.Model.Timeout = defaultTimeout
	}
	if cfg.Model.Timeout < 0 {
		return fmt.Errorf("config: model 'timeout' must be positive")
	}

	if cfg.Publish.Enabled {
		if cfg.Publish.Owner == "" || cfg.Publish.Repo == "" {
			return fmt.Errorf("config: publish requires 'owner' and 'repo'")
		}
		if cfg.Publish.Branch == "" {
			cfg.Publish.Branch = "main"
		}
		if cfg.Publish.Dir == "" {
			cfg.Publish.Dir = cfg.ContentDir
		}
	}

	return nil
}

// CooldownDuration returns the parsed cooldown. Only meaningful on a
// validated config in cooldown mode.
func (c *Config) CooldownDuration() time.Duration {
	d, _ := time.ParseDuration(c.Cooldown)
	return d
}

// CronSchedule returns the parsed schedule expression, or nil when the
// gate runs in cooldown mode. Only meaningful on a validated config.
func (c *Config) CronSchedule() *cronexpr.Expression {
	if c.Schedule == "" {
		return nil
	}
	return cronexpr.MustParse(c.Schedule)
}

// CursorPath is the fixed location of the topic cursor record.
func (c *Config) CursorPath() string {
	return filepath.Join(c.DataDir, "cursor.json")
}

// RunRecordPath is the fixed location of the last-run timestamp record.
func (c *Config) RunRecordPath() string {
	return filepath.Join(c.DataDir, "lastrun.json")
}

// RunLogPath is the fixed location of the pipeline run log.
func (c *Config) RunLogPath() string {
	return filepath.Join(c.DataDir, "runlog.json")
}
