package repository

import (
	"fmt"
	"strings"
	"time"

	"spawner/pkg/fileops"

	"github.com/go-git/go-git/v6"
)

// RepoInfo summarizes the state of an installed skills repository for the
// status command.
type RepoInfo struct {
	// Path is the absolute install location
	Path string

	// RemoteURL is the origin remote the installation tracks
	RemoteURL string

	// Branch is the currently checked out branch ("HEAD" when detached)
	Branch string

	// CommitHash is the abbreviated hash of HEAD
	CommitHash string

	// CommitSummary is the first line of the HEAD commit message
	CommitSummary string

	// CommitTime is the author timestamp of HEAD
	CommitTime time.Time

	// Dirty reports whether the working tree has local modifications
	Dirty bool
}

// Describe inspects the repository at path and returns its current state.
// Returns ErrNotInstalled when the path contains no git repository.
func Describe(path string) (*RepoInfo, error) {
	expanded := fileops.ExpandPath(path)

	repo, err := git.PlainOpen(expanded)
	if err != nil {
		if err == git.ErrRepositoryNotExists {
			return nil, ErrNotInstalled
		}
		return nil, fmt.Errorf("failed to open repository: %w", err)
	}

	info := &RepoInfo{Path: expanded}

	if remote, err := repo.Remote("origin"); err == nil {
		if cfg := remote.Config(); cfg != nil && len(cfg.URLs) > 0 {
			info.RemoteURL = cfg.URLs[0]
		}
	}

	head, err := repo.Head()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve HEAD: %w", err)
	}

	if head.Name().IsBranch() {
		info.Branch = head.Name().Short()
	} else {
		info.Branch = "HEAD"
	}

	commit, err := repo.CommitObject(head.Hash())
	if err != nil {
		return nil, fmt.Errorf("failed to read HEAD commit: %w", err)
	}

	hash := head.Hash().String()
	if len(hash) > 8 {
		hash = hash[:8]
	}
	info.CommitHash = hash
	info.CommitSummary = firstLine(commit.Message)
	info.CommitTime = commit.Author.When

	if worktree, err := repo.Worktree(); err == nil {
		if status, err := worktree.Status(); err == nil {
			info.Dirty = !status.IsClean()
		}
	}

	return info, nil
}

func firstLine(s string) string {
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}
