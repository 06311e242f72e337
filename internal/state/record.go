// Package state reads and writes the small JSON records that survive
// between invocations: the topic cursor, the last-run timestamp, and the
// run log. Loading is modeled as an explicit three-way outcome so callers
// decide what a missing or mangled record means instead of relying on a
// blanket error catch.
package state

import (
	"bytes"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// Status describes what was found when loading a record.
type Status int

const (
	// Found means the record existed and parsed cleanly.
	Found Status = iota
	// Absent means no record file exists yet.
	Absent
	// Corrupt means the file exists but is empty or not valid JSON.
	Corrupt
)

func (s Status) String() string {
	switch s {
	case Found:
		return "found"
	case Absent:
		return "absent"
	case Corrupt:
		return "corrupt"
	default:
		return "unknown"
	}
}

// ReadRecord loads a JSON record from path into v. A missing file reports
// Absent and an empty or unparseable file reports Corrupt; neither is an
// error. Any other I/O failure (permissions, disk) is returned as an error.
func ReadRecord(path string, v any) (Status, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Absent, nil
		}
		return Absent, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return Corrupt, nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return Corrupt, nil
	}
	return Found, nil
}

// WriteRecord marshals v and writes it to path atomically, creating the
// parent directory if needed. The whole file is replaced on every write.
func WriteRecord(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return writeFileAtomic(path, data, 0644)
}

// writeFileAtomic writes data through a temporary file, fsyncs, and renames
// it over the target path so a crash mid-write never leaves a torn record.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	tmp := path + ".tmp"
	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}
