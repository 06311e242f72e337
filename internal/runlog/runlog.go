// Package runlog keeps a short history of pipeline executions for the
// status command. The log is advisory: losing or corrupting it never
// blocks a run.
package runlog

import (
	"fmt"
	"time"

	"github.com/calebmartin/inkwell/internal/state"
)

const (
	StatusWritten  = "written"
	StatusFallback = "fallback"
	StatusFailed   = "failed"
)

// maxRuns bounds the persisted history.
const maxRuns = 50

// Run records one pipeline execution.
type Run struct {
	ID       string    `json:"id"`
	Topic    string    `json:"topic"`
	Path     string    `json:"path,omitempty"`
	Start    time.Time `json:"start"`
	Duration string    `json:"duration,omitempty"`
	Status   string    `json:"status"`
}

// Log is the persisted run history, newest last.
type Log struct {
	Runs []Run `json:"runs"`
}

// Load reads the run log. A missing or unreadable file yields an empty
// log; history is not worth failing a run over.
func Load(path string) (*Log, error) {
	var l Log
	status, err := state.ReadRecord(path, &l)
	if err != nil {
		return nil, fmt.Errorf("reading run log %s: %w", path, err)
	}
	if status != state.Found {
		return &Log{}, nil
	}
	return &l, nil
}

// Append adds a run, trimming the history to the most recent entries.
func (l *Log) Append(r Run) {
	l.Runs = append(l.Runs, r)
	if len(l.Runs) > maxRuns {
		l.Runs = l.Runs[len(l.Runs)-maxRuns:]
	}
}

// Recent returns up to n runs, newest first.
func (l *Log) Recent(n int) []Run {
	if n > len(l.Runs) {
		n = len(l.Runs)
	}
	out := make([]Run, 0, n)
	for i := len(l.Runs) - 1; i >= len(l.Runs)-n; i-- {
		out = append(out, l.Runs[i])
	}
	return out
}

// Flush writes the log to disk atomically.
func (l *Log) Flush(path string) error {
	if err := state.WriteRecord(path, l); err != nil {
		return fmt.Errorf("writing run log %s: %w", path, err)
	}
	return nil
}

// FormatDuration renders a run duration the way the status display
// expects it.
func FormatDuration(d time.Duration) string {
	m := int(d.Minutes())
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%dm %02ds", m, s)
}
