// Package rotation hands out topics from a fixed catalog in round-robin
// order, persisting the cursor so restarts continue the rotation.
package rotation

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/calebmartin/inkwell/internal/state"
)

// Topic is one entry in the ordered catalog defined in the config file.
// The catalog is read-only at runtime.
type Topic struct {
	Title string   `yaml:"title"`
	About string   `yaml:"about"`
	Tags  []string `yaml:"tags,omitempty"`
}

// Cursor is the persisted record marking rotation progress. LastIndex is
// the catalog index most recently handed out; -1 means "before the first
// topic" so the next index computes to 0.
type Cursor struct {
	LastIndex int `json:"lastIndex"`
}

// Store persists the cursor. Implementations report how the load went so
// the tracker can decide what a missing or mangled record means.
type Store interface {
	Load() (Cursor, state.Status, error)
	Save(Cursor) error
}

// FileStore keeps the cursor in a JSON file.
type FileStore struct {
	Path   string
	Logger *log.Logger
}

func (f *FileStore) Load() (Cursor, state.Status, error) {
	var c Cursor
	status, err := state.ReadRecord(f.Path, &c)
	if err != nil {
		return Cursor{}, status, fmt.Errorf("reading cursor record %s: %w", f.Path, err)
	}
	if status == state.Corrupt && f.Logger != nil {
		f.Logger.Warn("cursor record unreadable, restarting rotation",
			"path", f.Path)
	}
	return c, status, nil
}

func (f *FileStore) Save(c Cursor) error {
	if err := state.WriteRecord(f.Path, &c); err != nil {
		return fmt.Errorf("writing cursor record %s: %w", f.Path, err)
	}
	return nil
}

// Tracker cycles through the catalog. Next advances and persists the
// cursor; Peek only reads it. Neither is safe for concurrent invocations
// against the same record file — the deployment model is one scheduled
// run at a time.
type Tracker struct {
	Catalog []Topic
	Store   Store
}

// Next returns the topic after the persisted cursor position, persisting
// the advance before returning. A missing or corrupt record restarts the
// rotation at the first topic. The write happens before the topic is
// returned, so a persist failure means no topic was consumed.
func (t *Tracker) Next() (Topic, error) {
	idx, err := t.nextIndex()
	if err != nil {
		return Topic{}, err
	}
	if err := t.Store.Save(Cursor{LastIndex: idx}); err != nil {
		return Topic{}, err
	}
	return t.Catalog[idx], nil
}

// Peek returns the topic Next would return, without advancing.
func (t *Tracker) Peek() (Topic, error) {
	idx, err := t.nextIndex()
	if err != nil {
		return Topic{}, err
	}
	return t.Catalog[idx], nil
}

func (t *Tracker) nextIndex() (int, error) {
	if len(t.Catalog) == 0 {
		return 0, fmt.Errorf("rotation: topic catalog is empty")
	}

	cursor, status, err := t.Store.Load()
	if err != nil {
		return 0, err
	}
	last := cursor.LastIndex
	if status != state.Found || last < -1 || last >= len(t.Catalog) {
		// No usable record: rotation restarts from the top.
		last = -1
	}
	return (last + 1) % len(t.Catalog), nil
}
