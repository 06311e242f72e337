// Package post models a generated blog post and writes it into the
// static site's content directory as markdown with YAML frontmatter.
package post

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/calebmartin/inkwell/internal/rotation"
)

// Frontmatter is the YAML block the site renderer consumes.
type Frontmatter struct {
	Title       string   `yaml:"title"`
	Date        string   `yaml:"date"`
	Description string   `yaml:"description"`
	Tags        []string `yaml:"tags,omitempty"`
	Draft       bool     `yaml:"draft"`
}

// Post is a complete generated article: frontmatter plus markdown body.
type Post struct {
	Front Frontmatter
	Body  string
}

// New builds a post for the given topic, dated at now.
func New(topic rotation.Topic, now time.Time, body string) *Post {
	return &Post{
		Front: Frontmatter{
			Title:       topic.Title,
			Date:        now.Format("2006-01-02"),
			Description: topic.About,
			Tags:        topic.Tags,
		},
		Body: body,
	}
}

// Slug derives a filesystem- and URL-safe name from a title: lowercase,
// spaces to hyphens, everything outside [a-z0-9-] dropped.
func Slug(title string) string {
	lowered := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(title)), " ", "-")

	var b strings.Builder
	for _, r := range lowered {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
		}
	}
	return strings.Trim(b.String(), "-")
}

// Render produces the full markdown file: frontmatter between --- fences,
// then the body.
func (p *Post) Render() (string, error) {
	front, err := yaml.Marshal(&p.Front)
	if err != nil {
		return "", fmt.Errorf("marshaling frontmatter: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString("---\n")
	buf.Write(front)
	buf.WriteString("---\n\n")
	buf.WriteString(strings.TrimRight(p.Body, "\n"))
	buf.WriteString("\n")
	return buf.String(), nil
}

// Save writes the rendered post to contentDir as <slug>.md, creating the
// directory if needed. An existing file with the same slug is never
// overwritten; the rotation guarantees each topic a fresh slug only once
// per cycle, so a collision means a previous run's output is still there.
func (p *Post) Save(contentDir string) (string, error) {
	slug := Slug(p.Front.Title)
	if slug == "" {
		return "", fmt.Errorf("post: title %q yields an empty slug", p.Front.Title)
	}

	rendered, err := p.Render()
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(contentDir, 0755); err != nil {
		return "", fmt.Errorf("creating content dir %s: %w", contentDir, err)
	}

	path := filepath.Join(contentDir, slug+".md")
	if _, err := os.Stat(path); err == nil {
		path = filepath.Join(contentDir, fmt.Sprintf("%s-%s.md", slug, p.Front.Date))
		if _, err := os.Stat(path); err == nil {
			return "", fmt.Errorf("post: %s already exists", path)
		}
	}

	if err := os.WriteFile(path, []byte(rendered), 0644); err != nil {
		return "", fmt.Errorf("writing post %s: %w", path, err)
	}
	return path, nil
}
