// Package pipeline drives one generation cycle: gate check, topic
// selection, content generation, save, and the optional publish step.
package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/calebmartin/inkwell/internal/compose"
	"github.com/calebmartin/inkwell/internal/config"
	"github.com/calebmartin/inkwell/internal/post"
	"github.com/calebmartin/inkwell/internal/rotation"
	"github.com/calebmartin/inkwell/internal/runlog"
	"github.com/calebmartin/inkwell/internal/schedule"
)

// Publisher is the optional push-to-repo step.
type Publisher interface {
	Publish(ctx context.Context, filename, content, message string) error
}

// Pipeline wires the components for a single invocation. Force skips the
// gate entirely, leaving the last-run record untouched so a forced run
// does not move the cooldown window.
type Pipeline struct {
	Config    *config.Config
	Gate      *schedule.Gate
	Tracker   *rotation.Tracker
	Generator compose.Generator
	Publisher Publisher
	Logger    *log.Logger
	Force     bool

	// Now is a test seam; defaults to time.Now.
	Now func() time.Time
}

// Run executes one generation cycle. A denied gate returns
// schedule.ErrCooldown; everything else that fails is fatal for the
// invocation.
func (p *Pipeline) Run(ctx context.Context) error {
	now := time.Now()
	if p.Now != nil {
		now = p.Now()
	}

	if p.Force {
		p.Logger.Warn("gate bypassed with --force; cooldown window unchanged")
	} else {
		ok, err := p.Gate.Check(now)
		if err != nil {
			return err
		}
		if !ok {
			_, next, _ := p.Gate.Window()
			p.Logger.Info("cooldown active, skipping run", "next", next.Format(time.RFC3339))
			return schedule.ErrCooldown
		}
	}

	topic, err := p.Tracker.Next()
	if err != nil {
		return err
	}
	p.Logger.Info("topic selected", "title", topic.Title)

	run := runlog.Run{
		ID:     uuid.NewString(),
		Topic:  topic.Title,
		Start:  now,
		Status: runlog.StatusWritten,
	}
	started := time.Now()

	body, err := p.Generator.GeneratePost(ctx, topic)
	if err != nil {
		p.Logger.Warn("generation failed, using fallback body", "err", err)
		body = compose.FallbackBody(topic, err)
		run.Status = runlog.StatusFallback
	}

	article := post.New(topic, now, body)
	path, err := article.Save(p.Config.ContentDir)
	if err != nil {
		run.Status = runlog.StatusFailed
		run.Duration = runlog.FormatDuration(time.Since(started))
		p.record(run)
		return err
	}
	run.Path = path
	run.Duration = runlog.FormatDuration(time.Since(started))

	if p.Publisher != nil {
		rendered, err := article.Render()
		if err != nil {
			return err
		}
		message := fmt.Sprintf("Add post: %s", topic.Title)
		if err := p.Publisher.Publish(ctx, filepath.Base(path), rendered, message); err != nil {
			p.record(run)
			return fmt.Errorf("post written to %s but publishing failed: %w", path, err)
		}
		p.Logger.Info("post published", "repo", p.Config.Publish.Owner+"/"+p.Config.Publish.Repo)
	}

	p.record(run)
	p.Logger.Info("post written", "topic", topic.Title, "path", path, "status", run.Status)
	return nil
}

// record appends the run to the persisted log. History is advisory, so
// failures only warn.
func (p *Pipeline) record(run runlog.Run) {
	logPath := p.Config.RunLogPath()
	l, err := runlog.Load(logPath)
	if err != nil {
		p.Logger.Warn("run log unreadable", "err", err)
		return
	}
	l.Append(run)
	if err := l.Flush(logPath); err != nil {
		p.Logger.Warn("run log not updated", "err", err)
	}
}
