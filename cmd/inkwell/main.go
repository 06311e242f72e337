package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	cli "github.com/urfave/cli/v3"

	"github.com/calebmartin/inkwell/internal/compose"
	"github.com/calebmartin/inkwell/internal/config"
	"github.com/calebmartin/inkwell/internal/docs"
	"github.com/calebmartin/inkwell/internal/doctor"
	"github.com/calebmartin/inkwell/internal/pipeline"
	"github.com/calebmartin/inkwell/internal/publish"
	"github.com/calebmartin/inkwell/internal/rotation"
	"github.com/calebmartin/inkwell/internal/runlog"
	"github.com/calebmartin/inkwell/internal/scaffold"
	"github.com/calebmartin/inkwell/internal/schedule"
	"github.com/calebmartin/inkwell/internal/ux"
)

func main() {
	app := &cli.Command{
		Name:        "inkwell",
		Usage:       "Scheduled AI blog post generation",
		Description: "Run 'inkwell docs' for documentation on configuration, scheduling, and the topic rotation.",
		Commands: []*cli.Command{
			initCmd(),
			checkCmd(),
			generateCmd(),
			statusCmd(),
			doctorCmd(),
			docsCmd(),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		if errors.Is(err, schedule.ErrCooldown) {
			fmt.Fprintf(os.Stderr, "%sskip:%s %v\n", ux.Yellow, ux.Reset, err)
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "%serror:%s %v\n", ux.Red, ux.Reset, err)
		os.Exit(1)
	}
}

func newLogger() *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
	})
}

func loadConfig() (*config.Config, error) {
	root, err := findProjectRoot()
	if err != nil {
		return nil, err
	}
	// Record and content paths in the config are root-relative; run from
	// the root so they resolve no matter where the command started.
	if err := os.Chdir(root); err != nil {
		return nil, err
	}
	cfg, err := config.Load(filepath.Join(root, ".inkwell", "config.yaml"))
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

func buildGate(cfg *config.Config, logger *log.Logger) *schedule.Gate {
	return &schedule.Gate{
		Store:    &schedule.FileStore{Path: cfg.RunRecordPath(), Logger: logger},
		Cooldown: cfg.CooldownDuration(),
		Cron:     cfg.CronSchedule(),
	}
}

func buildTracker(cfg *config.Config, logger *log.Logger) *rotation.Tracker {
	return &rotation.Tracker{
		Catalog: cfg.Topics,
		Store:   &rotation.FileStore{Path: cfg.CursorPath(), Logger: logger},
	}
}

func initCmd() *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Initialize a new .inkwell/ directory with a starter config",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			dir, err := os.Getwd()
			if err != nil {
				return err
			}
			return scaffold.Init(dir)
		},
	}
}

func checkCmd() *cli.Command {
	return &cli.Command{
		Name:  "check",
		Usage: "Evaluate the cooldown gate (exit 0 = proceed, 2 = skip)",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "dry-run", Usage: "Report the decision without updating the last-run record"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			gate := buildGate(cfg, newLogger())
			now := time.Now()

			var ok bool
			if cmd.Bool("dry-run") {
				ok, err = gate.Due(now)
			} else {
				ok, err = gate.Check(now)
			}
			if err != nil {
				return err
			}
			if !ok {
				_, next, _ := gate.Window()
				return fmt.Errorf("next run not before %s: %w",
					next.Format("2006-01-02 15:04 MST"), schedule.ErrCooldown)
			}

			fmt.Printf("%s✓ run permitted%s\n", ux.Green, ux.Reset)
			return nil
		},
	}
}

func generateCmd() *cli.Command {
	return &cli.Command{
		Name:  "generate",
		Usage: "Select the next topic, generate a post, and save it",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "force", Usage: "Bypass the cooldown gate"},
			&cli.BoolFlag{Name: "dry-run", Usage: "Show the upcoming topic and gate decision, change nothing"},
			&cli.BoolFlag{Name: "no-publish", Usage: "Skip the GitHub publish step even when configured"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			logger := newLogger()
			gate := buildGate(cfg, logger)
			tracker := buildTracker(cfg, logger)

			if cmd.Bool("dry-run") {
				return dryRunPrint(cfg, gate, tracker)
			}

			apiKey := os.Getenv("ANTHROPIC_API_KEY")
			if apiKey == "" {
				return fmt.Errorf("ANTHROPIC_API_KEY is not set")
			}

			p := &pipeline.Pipeline{
				Config:  cfg,
				Gate:    gate,
				Tracker: tracker,
				Generator: compose.NewClient(
					apiKey,
					cfg.Model.Name,
					cfg.Model.MaxTokens,
					time.Duration(cfg.Model.Timeout)*time.Second,
				),
				Logger: logger,
				Force:  cmd.Bool("force"),
			}

			if cfg.Publish.Enabled && !cmd.Bool("no-publish") {
				token := os.Getenv("GITHUB_TOKEN")
				if token == "" {
					return fmt.Errorf("publish is enabled but GITHUB_TOKEN is not set")
				}
				p.Publisher = publish.New(token,
					cfg.Publish.Owner, cfg.Publish.Repo, cfg.Publish.Branch, cfg.Publish.Dir)
			}

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
			defer stop()

			return p.Run(ctx)
		},
	}
}

func dryRunPrint(cfg *config.Config, gate *schedule.Gate, tracker *rotation.Tracker) error {
	topic, err := tracker.Peek()
	if err != nil {
		return err
	}
	due, err := gate.Due(time.Now())
	if err != nil {
		return err
	}

	fmt.Printf("%sUpcoming topic:%s %s\n", ux.Bold, ux.Reset, topic.Title)
	fmt.Printf("  %s%s%s\n", ux.Dim, topic.About, ux.Reset)
	if due {
		fmt.Printf("%sGate:%s %swould run now%s\n", ux.Bold, ux.Reset, ux.Green, ux.Reset)
	} else {
		_, next, _ := gate.Window()
		fmt.Printf("%sGate:%s %swould skip, next eligible %s%s\n",
			ux.Bold, ux.Reset, ux.Yellow, next.Format("2006-01-02 15:04 MST"), ux.Reset)
	}
	return nil
}

func statusCmd() *cli.Command {
	return &cli.Command{
		Name:  "status",
		Usage: "Show the topic rotation, gate window, and recent runs",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			logger := newLogger()

			upcoming, err := buildTracker(cfg, logger).Peek()
			if err != nil {
				return err
			}
			last, next, err := buildGate(cfg, logger).Window()
			if err != nil {
				return err
			}
			history, err := runlog.Load(cfg.RunLogPath())
			if err != nil {
				return err
			}

			ux.RenderStatus(cfg, upcoming, last, next, history.Recent(10))
			return nil
		},
	}
}

func doctorCmd() *cli.Command {
	return &cli.Command{
		Name:  "doctor",
		Usage: "Run environment preflight checks",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			root, err := findProjectRoot()
			if err != nil {
				return err
			}
			if err := os.Chdir(root); err != nil {
				return err
			}
			return doctor.Run(filepath.Join(root, ".inkwell", "config.yaml"))
		},
	}
}

func docsCmd() *cli.Command {
	return &cli.Command{
		Name:      "docs",
		Usage:     "Show documentation",
		ArgsUsage: "[topic]",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			name := cmd.Args().First()
			if name == "" {
				fmt.Print("\nAvailable topics:\n\n")
				for _, t := range docs.All() {
					fmt.Printf("  %-14s %s\n", t.Name, t.Summary)
				}
				fmt.Println("\nRun 'inkwell docs <topic>' to read a topic.")
				return nil
			}
			t, err := docs.Get(name)
			if err != nil {
				return err
			}
			fmt.Print(t.Content)
			return nil
		},
	}
}

// findProjectRoot walks up from cwd looking for .inkwell/config.yaml.
func findProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		configPath := filepath.Join(dir, ".inkwell", "config.yaml")
		if _, err := os.Stat(configPath); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no .inkwell/config.yaml found (searched from cwd to root); run 'inkwell init' first")
		}
		dir = parent
	}
}
