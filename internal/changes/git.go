package changes

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// GitProvider diffs HEAD against a base revision using go-git.
type GitProvider struct {
	path  string
	since string
}

// NewGitProvider creates a provider for the repository containing path.
// since is any revision go-git can resolve, e.g. "HEAD~1".
func NewGitProvider(path, since string) *GitProvider {
	return &GitProvider{path: path, since: since}
}

// ChangedFiles returns the repository-relative paths added, modified or
// deleted between since and HEAD.
func (g *GitProvider) ChangedFiles(ctx context.Context) (string, error) {
	repo, err := git.PlainOpenWithOptions(g.path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", fmt.Errorf("opening repository: %w", err)
	}

	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("resolving HEAD: %w", err)
	}
	headCommit, err := repo.CommitObject(head.Hash())
	if err != nil {
		return "", fmt.Errorf("getting HEAD commit: %w", err)
	}

	baseHash, err := repo.ResolveRevision(plumbing.Revision(g.since))
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", g.since, err)
	}
	baseCommit, err := repo.CommitObject(*baseHash)
	if err != nil {
		return "", fmt.Errorf("getting %s commit: %w", g.since, err)
	}

	names, err := diffNames(ctx, baseCommit, headCommit)
	if err != nil {
		return "", err
	}
	return strings.Join(names, "\n"), nil
}

// diffNames returns the sorted names of files that differ between two commits.
func diffNames(ctx context.Context, base, head *object.Commit) ([]string, error) {
	baseTree, err := base.Tree()
	if err != nil {
		return nil, fmt.Errorf("getting base tree: %w", err)
	}
	headTree, err := head.Tree()
	if err != nil {
		return nil, fmt.Errorf("getting head tree: %w", err)
	}

	diff, err := baseTree.DiffContext(ctx, headTree)
	if err != nil {
		return nil, fmt.Errorf("computing diff: %w", err)
	}

	seen := make(map[string]struct{}, len(diff))
	var names []string
	for _, change := range diff {
		for _, name := range []string{change.From.Name, change.To.Name} {
			if name == "" {
				continue
			}
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}
