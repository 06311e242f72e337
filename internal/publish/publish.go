// Package publish pushes generated posts to a GitHub repository via the
// contents API, for sites that build from a separate content repo.
package publish

import (
	"context"
	"fmt"
	"net/http"
	"path"

	"github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"
)

// Publisher commits files to a fixed repo and branch.
type Publisher struct {
	github *github.Client
	owner  string
	repo   string
	branch string
	dir    string
}

// New creates a publisher authenticated with the provided token.
func New(token, owner, repo, branch, dir string) *Publisher {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	tc := oauth2.NewClient(context.Background(), ts)

	return &Publisher{
		github: github.NewClient(tc),
		owner:  owner,
		repo:   repo,
		branch: branch,
		dir:    dir,
	}
}

// Publish commits content under the configured directory as filename,
// creating the file or updating it in place when it already exists.
func (p *Publisher) Publish(ctx context.Context, filename, content, message string) error {
	repoPath := path.Join(p.dir, filename)

	opts := &github.RepositoryContentFileOptions{
		Message: github.String(message),
		Content: []byte(content),
		Branch:  github.String(p.branch),
	}

	existing, _, resp, err := p.github.Repositories.GetContents(
		ctx, p.owner, p.repo, repoPath,
		&github.RepositoryContentGetOptions{Ref: p.branch},
	)
	if err != nil {
		if resp == nil || resp.StatusCode != http.StatusNotFound {
			return fmt.Errorf("checking %s: %w", repoPath, err)
		}
		if _, _, err := p.github.Repositories.CreateFile(ctx, p.owner, p.repo, repoPath, opts); err != nil {
			return fmt.Errorf("creating %s: %w", repoPath, err)
		}
		return nil
	}

	opts.SHA = existing.SHA
	if _, _, err := p.github.Repositories.UpdateFile(ctx, p.owner, p.repo, repoPath, opts); err != nil {
		return fmt.Errorf("updating %s: %w", repoPath, err)
	}
	return nil
}
