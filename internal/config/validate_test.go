package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/calebmartin/inkwell/internal/rotation"
)

func minimalConfig() *Config {
	return &Config{
		Name: "test-blog",
		Topics: []rotation.Topic{
			{Title: "Go Basics", About: "an introduction"},
		},
	}
}

func TestValidate_NameRequired(t *testing.T) {
	cfg := minimalConfig()
	cfg.Name = ""
	if err := Validate(cfg); err == nil || !strings.Contains(err.Error(), "'name' is required") {
		t.Fatalf("got %v", err)
	}
}

func TestValidate_DefaultsApplied(t *testing.T) {
	cfg := minimalConfig()
	if err := Validate(cfg); err != nil {
		t.Fatal(err)
	}
	if cfg.ContentDir != "content/posts" {
		t.Fatalf("ContentDir = %q", cfg.ContentDir)
	}
	if cfg.DataDir != ".inkwell/data" {
		t.Fatalf("DataDir = %q", cfg.DataDir)
	}
	if cfg.Cooldown != "36h" {
		t.Fatalf("Cooldown = %q", cfg.Cooldown)
	}
	if cfg.CooldownDuration() != 36*time.Hour {
		t.Fatalf("CooldownDuration = %v", cfg.CooldownDuration())
	}
	if cfg.Model.Name == "" || cfg.Model.MaxTokens != 2500 || cfg.Model.Timeout != 60 {
		t.Fatalf("model defaults not applied: %+v", cfg.Model)
	}
	if cfg.CronSchedule() != nil {
		t.Fatal("CronSchedule should be nil in cooldown mode")
	}
}

func TestValidate_NoTopicsError(t *testing.T) {
	cfg := minimalConfig()
	cfg.Topics = nil
	if err := Validate(cfg); err == nil || !strings.Contains(err.Error(), "at least one topic") {
		t.Fatalf("got %v", err)
	}
}

func TestValidate_TopicTitleRequired(t *testing.T) {
	cfg := minimalConfig()
	cfg.Topics = append(cfg.Topics, rotation.Topic{About: "missing title"})
	if err := Validate(cfg); err == nil || !strings.Contains(err.Error(), "'title' is required") {
		t.Fatalf("got %v", err)
	}
}

func TestValidate_TopicAboutRequired(t *testing.T) {
	cfg := minimalConfig()
	cfg.Topics = append(cfg.Topics, rotation.Topic{Title: "No About"})
	if err := Validate(cfg); err == nil || !strings.Contains(err.Error(), "'about' is required") {
		t.Fatalf("got %v", err)
	}
}

func TestValidate_DuplicateTopicTitles(t *testing.T) {
	cfg := minimalConfig()
	cfg.Topics = append(cfg.Topics, cfg.Topics[0])
	if err := Validate(cfg); err == nil || !strings.Contains(err.Error(), "duplicate") {
		t.Fatalf("got %v", err)
	}
}

func TestValidate_UnsluggableTitle(t *testing.T) {
	cfg := minimalConfig()
	cfg.Topics = append(cfg.Topics, rotation.Topic{Title: "!!!", About: "x"})
	if err := Validate(cfg); err == nil || !strings.Contains(err.Error(), "empty slug") {
		t.Fatalf("got %v", err)
	}
}

func TestValidate_BadCooldown(t *testing.T) {
	cfg := minimalConfig()
	cfg.Cooldown = "eventually"
	if err := Validate(cfg); err == nil || !strings.Contains(err.Error(), "invalid 'cooldown'") {
		t.Fatalf("got %v", err)
	}
}

func TestValidate_NegativeCooldown(t *testing.T) {
	cfg := minimalConfig()
	cfg.Cooldown = "-2h"
	if err := Validate(cfg); err == nil || !strings.Contains(err.Error(), "must be positive") {
		t.Fatalf("got %v", err)
	}
}

func TestValidate_CooldownAndScheduleConflict(t *testing.T) {
	cfg := minimalConfig()
	cfg.Cooldown = "36h"
	cfg.Schedule = "0 6 * * *"
	if err := Validate(cfg); err == nil || !strings.Contains(err.Error(), "mutually exclusive") {
		t.Fatalf("got %v", err)
	}
}

func TestValidate_BadSchedule(t *testing.T) {
	cfg := minimalConfig()
	cfg.Schedule = "not a cron line"
	if err := Validate(cfg); err == nil || !strings.Contains(err.Error(), "invalid 'schedule'") {
		t.Fatalf("got %v", err)
	}
}

func TestValidate_ValidSchedule(t *testing.T) {
	cfg := minimalConfig()
	cfg.Schedule = "0 6 * * *"
	if err := Validate(cfg); err != nil {
		t.Fatal(err)
	}
	if cfg.CronSchedule() == nil {
		t.Fatal("CronSchedule returned nil for schedule mode")
	}
	if cfg.Cooldown != "" {
		t.Fatalf("Cooldown = %q, should stay empty in schedule mode", cfg.Cooldown)
	}
}

func TestValidate_PublishRequiresOwnerRepo(t *testing.T) {
	cfg := minimalConfig()
	cfg.Publish.Enabled = true
	if err := Validate(cfg); err == nil || !strings.Contains(err.Error(), "'owner' and 'repo'") {
		t.Fatalf("got %v", err)
	}
}

func TestValidate_PublishDefaults(t *testing.T) {
	cfg := minimalConfig()
	cfg.Publish = PublishConfig{Enabled: true, Owner: "calebmartin", Repo: "blog"}
	if err := Validate(cfg); err != nil {
		t.Fatal(err)
	}
	if cfg.Publish.Branch != "main" {
		t.Fatalf("Branch = %q", cfg.Publish.Branch)
	}
	if cfg.Publish.Dir != cfg.ContentDir {
		t.Fatalf("Dir = %q", cfg.Publish.Dir)
	}
}

func TestLoad_RoundTrip(t *testing.T) {
	raw := `name: my-blog
cooldown: 48h
topics:
  - title: Testing in Go
    about: Table-driven tests and the testing package
    tags: [go, testing]
  - title: Interfaces
    about: Accept interfaces, return structs
model:
  max-tokens: 1000
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(raw), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Name != "my-blog" {
		t.Fatalf("Name = %q", cfg.Name)
	}
	if len(cfg.Topics) != 2 {
		t.Fatalf("Topics = %d", len(cfg.Topics))
	}
	if cfg.Topics[0].Tags[1] != "testing" {
		t.Fatalf("Tags = %v", cfg.Topics[0].Tags)
	}
	if cfg.CooldownDuration() != 48*time.Hour {
		t.Fatalf("CooldownDuration = %v", cfg.CooldownDuration())
	}
	if cfg.Model.MaxTokens != 1000 {
		t.Fatalf("MaxTokens = %d", cfg.Model.MaxTokens)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error")
	}
}

func TestRecordPaths(t *testing.T) {
	cfg := minimalConfig()
	if err := Validate(cfg); err != nil {
		t.Fatal(err)
	}
	if cfg.CursorPath() != filepath.Join(".inkwell/data", "cursor.json") {
		t.Fatalf("CursorPath = %q", cfg.CursorPath())
	}
	if cfg.RunRecordPath() != filepath.Join(".inkwell/data", "lastrun.json") {
		t.Fatalf("RunRecordPath = %q", cfg.RunRecordPath())
	}
}
