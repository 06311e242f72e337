// Package doctor runs preflight checks so a scheduled invocation does
// not discover a broken environment at 3am.
package doctor

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/calebmartin/inkwell/internal/config"
	"github.com/calebmartin/inkwell/internal/rotation"
	"github.com/calebmartin/inkwell/internal/schedule"
	"github.com/calebmartin/inkwell/internal/state"
	"github.com/calebmartin/inkwell/internal/ux"
)

type check struct {
	name   string
	detail string
	err    error
}

// Run executes every check against the config at configPath, prints the
// results, and returns an error if any check failed.
func Run(configPath string) error {
	checks := gather(configPath)

	fmt.Printf("\n%s%s══ Doctor ══%s\n\n", ux.Bold, ux.Cyan, ux.Reset)
	failed := 0
	for _, c := range checks {
		if c.err != nil {
			failed++
			fmt.Printf("  %s✗%s %-16s %v\n", ux.Red, ux.Reset, c.name, c.err)
			continue
		}
		fmt.Printf("  %s✓%s %-16s %s%s%s\n", ux.Green, ux.Reset, c.name, ux.Dim, c.detail, ux.Reset)
	}
	fmt.Println()

	if failed > 0 {
		return fmt.Errorf("%d of %d checks failed", failed, len(checks))
	}
	return nil
}

func gather(configPath string) []check {
	var checks []check

	cfg, err := config.Load(configPath)
	if err != nil {
		return append(checks, check{name: "config", err: err})
	}

	mode := fmt.Sprintf("cooldown %s", cfg.Cooldown)
	if cfg.Schedule != "" {
		mode = fmt.Sprintf("cron %q", cfg.Schedule)
	}
	checks = append(checks, check{
		name:   "config",
		detail: fmt.Sprintf("%d topics, %s", len(cfg.Topics), mode),
	})

	checks = append(checks, checkEnv("api key", "ANTHROPIC_API_KEY"))
	checks = append(checks, checkDir("data dir", cfg.DataDir))
	checks = append(checks, checkDir("content dir", cfg.ContentDir))
	checks = append(checks, checkCursor(cfg))
	checks = append(checks, checkRunRecord(cfg))

	if cfg.Publish.Enabled {
		checks = append(checks, checkEnv("publish token", "GITHUB_TOKEN"))
	}
	return checks
}

func checkEnv(name, key string) check {
	if os.Getenv(key) == "" {
		return check{name: name, err: fmt.Errorf("%s is not set", key)}
	}
	return check{name: name, detail: key + " present"}
}

// checkDir verifies the directory exists (or can be created) and is
// writable, using a throwaway probe file.
func checkDir(name, dir string) check {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return check{name: name, err: err}
	}
	probe := filepath.Join(dir, ".inkwell-probe")
	if err := os.WriteFile(probe, []byte("probe"), 0644); err != nil {
		return check{name: name, err: fmt.Errorf("not writable: %w", err)}
	}
	os.Remove(probe)
	return check{name: name, detail: dir}
}

func checkCursor(cfg *config.Config) check {
	var cursor rotation.Cursor
	status, err := state.ReadRecord(cfg.CursorPath(), &cursor)
	if err != nil {
		return check{name: "cursor record", err: err}
	}
	switch status {
	case state.Absent:
		return check{name: "cursor record", detail: "absent (rotation starts at first topic)"}
	case state.Corrupt:
		return check{name: "cursor record", detail: "corrupt (will reset to first topic)"}
	}
	if cursor.LastIndex < -1 || cursor.LastIndex >= len(cfg.Topics) {
		return check{
			name:   "cursor record",
			detail: fmt.Sprintf("lastIndex %d out of range (will reset)", cursor.LastIndex),
		}
	}
	return check{name: "cursor record", detail: fmt.Sprintf("lastIndex %d of %d topics", cursor.LastIndex, len(cfg.Topics))}
}

func checkRunRecord(cfg *config.Config) check {
	var rec schedule.Record
	status, err := state.ReadRecord(cfg.RunRecordPath(), &rec)
	if err != nil {
		return check{name: "run record", err: err}
	}
	switch status {
	case state.Absent:
		return check{name: "run record", detail: "absent (first run always proceeds)"}
	case state.Corrupt:
		return check{name: "run record", detail: "corrupt (treated as never ran)"}
	}
	if rec.LastRan == 0 {
		return check{name: "run record", detail: "never ran"}
	}
	return check{name: "run record", detail: "last ran " + rec.Time().Format(time.RFC3339)}
}
