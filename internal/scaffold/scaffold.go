// Package scaffold creates a starter .inkwell/ directory.
package scaffold

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/calebmartin/inkwell/internal/ux"
)

var configTemplate = `name: my-blog

# Where generated markdown lands. The static site renderer should be
# pointed at the same directory.
content-dir: content/posts

# Minimum time between generated posts. Use 'schedule' with a cron
# expression instead for fixed-clock publishing, e.g. "0 6 * * mon,thu".
cooldown: 36h

# The rotation walks this list in order and wraps around. Edit freely;
# position is tracked by index, so reordering shifts the rotation.
topics:
  - title: Error Handling Patterns
    about: How explicit error returns shape Go API design, with wrapping and sentinel errors
    tags: [go, errors]
  - title: Table-Driven Tests
    about: Structuring Go tests as data, subtests, and when the pattern stops paying off
    tags: [go, testing]
  - title: Interfaces at Boundaries
    about: Accepting interfaces and returning structs, and keeping interfaces small
    tags: [go, design]

model:
  max-tokens: 2500
  timeout: 60

# Uncomment to also commit each post to a content repository.
# Requires GITHUB_TOKEN in the environment.
#publish:
#  enabled: true
#  owner: my-github-user
#  repo: my-blog
#  branch: main
`

// Init creates the .inkwell/ directory with a starter config plus the
// data and content directories.
func Init(targetDir string) error {
	inkDir := filepath.Join(targetDir, ".inkwell")
	if _, err := os.Stat(inkDir); err == nil {
		return fmt.Errorf(".inkwell directory already exists in %s", targetDir)
	}

	dataDir := filepath.Join(inkDir, "data")
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("creating .inkwell/data: %w", err)
	}
	contentDir := filepath.Join(targetDir, "content", "posts")
	if err := os.MkdirAll(contentDir, 0755); err != nil {
		return fmt.Errorf("creating content/posts: %w", err)
	}

	configPath := filepath.Join(inkDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(configTemplate), 0644); err != nil {
		return fmt.Errorf("writing config.yaml: %w", err)
	}

	fmt.Printf("\n%s%s✓ Initialized .inkwell/ directory%s\n\n", ux.Bold, ux.Green, ux.Reset)
	fmt.Printf("  Created:\n")
	fmt.Printf("    %s.inkwell/config.yaml%s — site, topics, and schedule\n", ux.Cyan, ux.Reset)
	fmt.Printf("    %s.inkwell/data/%s       — cursor and last-run records\n", ux.Cyan, ux.Reset)
	fmt.Printf("    %scontent/posts/%s       — generated markdown\n\n", ux.Cyan, ux.Reset)
	fmt.Printf("  Next steps:\n")
	fmt.Printf("    1. Edit %s.inkwell/config.yaml%s with your topics\n", ux.Cyan, ux.Reset)
	fmt.Printf("    2. Export %sANTHROPIC_API_KEY%s\n", ux.Cyan, ux.Reset)
	fmt.Printf("    3. Run %sinkwell generate --dry-run%s to preview\n", ux.Cyan, ux.Reset)
	fmt.Printf("    4. Point a scheduled job at %sinkwell generate%s\n\n", ux.Cyan, ux.Reset)

	return nil
}
