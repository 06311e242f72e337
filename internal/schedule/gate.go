// Package schedule decides whether enough time has passed since the last
// permitted pipeline run. The decision is backed by a single persisted
// timestamp record, updated only when a run is granted.
package schedule

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorhill/cronexpr"

	"github.com/calebmartin/inkwell/internal/state"
)

// ErrCooldown is returned by callers that treat a denied gate check as a
// skip rather than a failure; main maps it to its own exit code.
var ErrCooldown = errors.New("cooldown has not elapsed")

// Record is the persisted last-run timestamp, in milliseconds since the
// Unix epoch. Zero means the pipeline has never run.
type Record struct {
	LastRan int64 `json:"lastRan"`
}

// Time returns the record as a wall-clock time; zero time if never ran.
func (r Record) Time() time.Time {
	if r.LastRan == 0 {
		return time.Time{}
	}
	return time.UnixMilli(r.LastRan)
}

// Store persists the last-run record.
type Store interface {
	Load() (Record, state.Status, error)
	Save(Record) error
}

// FileStore keeps the last-run record in a JSON file.
type FileStore struct {
	Path   string
	Logger *log.Logger
}

func (f *FileStore) Load() (Record, state.Status, error) {
	var r Record
	status, err := state.ReadRecord(f.Path, &r)
	if err != nil {
		return Record{}, status, fmt.Errorf("reading run record %s: %w", f.Path, err)
	}
	if status == state.Corrupt {
		if f.Logger != nil {
			f.Logger.Warn("run record unreadable, treating as never ran",
				"path", f.Path)
		}
		return Record{}, status, nil
	}
	return r, status, nil
}

func (f *FileStore) Save(r Record) error {
	if err := state.WriteRecord(f.Path, &r); err != nil {
		return fmt.Errorf("writing run record %s: %w", f.Path, err)
	}
	return nil
}

// Gate grants at most one run per cooldown window. Exactly one of
// Cooldown or Cron governs the window; a first-ever run is always
// granted.
type Gate struct {
	Store    Store
	Cooldown time.Duration
	Cron     *cronexpr.Expression
}

// Check reports whether a run is permitted at now. On a grant the record
// is overwritten with now before returning, so a crash later in the
// pipeline cannot cause a second run inside the same window. On a denial
// the record is left untouched.
func (g *Gate) Check(now time.Time) (bool, error) {
	due, err := g.Due(now)
	if err != nil {
		return false, err
	}
	if !due {
		return false, nil
	}
	if err := g.Store.Save(Record{LastRan: now.UnixMilli()}); err != nil {
		return false, err
	}
	return true, nil
}

// Due evaluates the gate without touching the persisted record.
func (g *Gate) Due(now time.Time) (bool, error) {
	rec, status, err := g.Store.Load()
	if err != nil {
		return false, err
	}
	if status != state.Found || rec.LastRan == 0 {
		// Never ran (or the record degraded to that state).
		return true, nil
	}
	return !g.nextAfter(rec.Time()).After(now), nil
}

// Window returns the persisted last-run time and the earliest moment the
// next run would be granted. Both are zero when the pipeline has never
// run, meaning a run is eligible immediately.
func (g *Gate) Window() (last, next time.Time, err error) {
	rec, status, err := g.Store.Load()
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if status != state.Found || rec.LastRan == 0 {
		return time.Time{}, time.Time{}, nil
	}
	last = rec.Time()
	return last, g.nextAfter(last), nil
}

func (g *Gate) nextAfter(last time.Time) time.Time {
	if g.Cron != nil {
		return g.Cron.Next(last)
	}
	return last.Add(g.Cooldown)
}
