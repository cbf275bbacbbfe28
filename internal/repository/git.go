package repository

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"spawner/internal/logging"
	"spawner/pkg/fileops"

	"github.com/go-git/go-git/v6"
	"github.com/go-git/go-git/v6/plumbing"
	"github.com/go-git/go-git/v6/plumbing/transport/http"
)

// DirectoryStatus represents the state of a target install directory
type DirectoryStatus int

const (
	// DirectoryStatusEmpty indicates the directory doesn't exist or is empty - safe to clone
	DirectoryStatusEmpty DirectoryStatus = iota
	// DirectoryStatusSameRepo indicates the directory contains the same git repository - already installed
	DirectoryStatusSameRepo
	// DirectoryStatusDifferentRepo indicates the directory contains a different git repository - user intervention needed
	DirectoryStatusDifferentRepo
	// DirectoryStatusConflict indicates the directory contains non-git content - user intervention needed
	DirectoryStatusConflict
	// DirectoryStatusError indicates an error occurred during validation
	DirectoryStatusError
)

// String returns a human-readable description of the directory status
func (ds DirectoryStatus) String() string {
	switch ds {
	case DirectoryStatusEmpty:
		return "empty or doesn't exist"
	case DirectoryStatusSameRepo:
		return "same git repository"
	case DirectoryStatusDifferentRepo:
		return "different git repository"
	case DirectoryStatusConflict:
		return "contains non-git content"
	case DirectoryStatusError:
		return "validation error"
	default:
		return "unknown status"
	}
}

// GitSource represents the git repository the skill library is installed
// from. It handles cloning, pulling, and authentication using Personal
// Access Tokens.
//
// Reliability features:
//   - Install paths validated through pkg/fileops security functions
//   - Directory conflicts resolved explicitly (no automatic overwrites)
//   - Authentication tried public-first, PAT fallback for private repos
//   - Local modifications in the install directory are never discarded
type GitSource struct {
	RemoteURL string // Git repository URL (HTTPS format, SSH URLs auto-converted)
	Branch    string // Optional branch name (empty defaults to remote's HEAD branch)
	Path      string // Local path where the repository is cloned
}

// NewGitSource creates a new GitSource instance.
//
// The constructor accepts flexible URL formats and defers validation to the
// actual git operations: SSH URLs (git@github.com:user/repo.git) are
// converted to HTTPS, HTTPS URLs are normalized with a .git suffix, and
// local paths (used mainly in tests) pass through unchanged.
func NewGitSource(remoteURL, branch, localPath string) GitSource {
	return GitSource{
		RemoteURL: remoteURL,
		Branch:    branch,
		Path:      localPath,
	}
}

// Clone performs the initial installation of the skills repository.
//
// The target directory is inspected first:
//   - empty or missing: clone proceeds
//   - same repository already present: ErrAlreadyInstalled (no network I/O)
//   - different repository or non-git content: conflict error, resolved
//     manually by the user
//
// Authentication is attempted public-first with a PAT fallback for private
// repositories. Errors are translated into actionable messages.
func (gs GitSource) Clone(logger *logging.AppLogger) error {
	if logger != nil {
		logger.Info("Installing skills repository",
			"remoteURL", gs.RemoteURL,
			"branch", gs.Branch,
			"localPath", gs.Path)
	}

	if err := gs.validateInputs(); err != nil {
		return err
	}

	normalizedURL, err := gs.normalizeRemoteURL()
	if err != nil {
		return fmt.Errorf("invalid remote URL: %w", err)
	}

	cleanPath, err := gs.validateLocalPath()
	if err != nil {
		return err
	}

	dirStatus, err := gs.validateCloneDirectory(cleanPath, normalizedURL)
	switch dirStatus {
	case DirectoryStatusEmpty:
		// Safe to clone
	case DirectoryStatusSameRepo:
		return ErrAlreadyInstalled
	default:
		if err != nil {
			return err
		}
		return fmt.Errorf("directory conflict at %s (%s): please resolve manually by removing or relocating the existing directory",
			cleanPath, dirStatus.String())
	}

	if err := gs.performCloneWithAuth(cleanPath, normalizedURL, logger); err != nil {
		return err
	}

	if logger != nil {
		logger.Info("Skills repository installed", "localPath", cleanPath)
	}
	return nil
}

// Pull updates an existing installation.
//
// Behavior:
//   - no repository at Path: ErrNotInstalled, and no network contact is made
//   - dirty working tree: the update is skipped so local changes survive
//   - otherwise: pull from origin (public-first, PAT fallback), then check
//     out the configured branch when one is set
//
// The returned UpdateResult distinguishes updated, already-up-to-date, and
// skipped outcomes for CLI reporting.
func (gs GitSource) Pull(logger *logging.AppLogger) (UpdateResult, error) {
	path := fileops.ExpandPath(gs.Path)

	repo, err := git.PlainOpen(path)
	if err != nil {
		if err == git.ErrRepositoryNotExists {
			return UpdateResult{Status: UpdateStatusFailed, Error: ErrNotInstalled}, ErrNotInstalled
		}
		return UpdateResult{Status: UpdateStatusFailed, Error: err}, fmt.Errorf("failed to open repository: %w", err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return UpdateResult{Status: UpdateStatusFailed, Error: err}, fmt.Errorf("failed to get working tree: %w", err)
	}

	status, err := worktree.Status()
	if err != nil {
		return UpdateResult{Status: UpdateStatusFailed, Error: err}, fmt.Errorf("failed to get working tree status: %w", err)
	}

	// Local modifications are preserved, not clobbered
	if !status.IsClean() {
		if logger != nil {
			logger.Warn("Working tree has local changes, skipping update")
		}
		return UpdateResult{Status: UpdateStatusSkipped, SkipReason: "local changes in install directory"}, nil
	}

	pulled, err := gs.performPullWithAuth(worktree, logger)
	if err != nil {
		return UpdateResult{Status: UpdateStatusFailed, Error: err}, err
	}

	// Switch branches when a specific one is configured.
	// Checkout failures are logged but don't fail the update.
	if gs.Branch != "" {
		if err := gs.checkoutBranch(repo, worktree, gs.Branch, logger); err != nil {
			if logger != nil {
				logger.Warn("Failed to checkout configured branch",
					"branch", gs.Branch,
					"error", err)
			}
		}
	}

	if !pulled {
		return UpdateResult{Status: UpdateStatusUpToDate}, nil
	}
	return UpdateResult{Status: UpdateStatusSuccess}, nil
}

// validateInputs validates the GitSource configuration
func (gs GitSource) validateInputs() error {
	if strings.TrimSpace(gs.RemoteURL) == "" {
		return fmt.Errorf("remote URL cannot be empty")
	}

	if strings.TrimSpace(gs.Path) == "" {
		return fmt.Errorf("local path cannot be empty")
	}

	return nil
}

// normalizeRemoteURL converts SSH URLs to HTTPS and validates the URL format.
// Local filesystem paths and file:// URLs pass through untouched so the
// source also works against local repositories.
func (gs GitSource) normalizeRemoteURL() (string, error) {
	raw := strings.TrimSpace(gs.RemoteURL)

	if strings.HasPrefix(raw, "file://") || filepath.IsAbs(raw) {
		return raw, nil
	}

	info, err := ParseGitURL(raw)
	if err != nil {
		return "", fmt.Errorf("invalid Git URL format: %w", err)
	}

	// Reconstruct as HTTPS URL with .git suffix for consistency
	return fmt.Sprintf("https://%s/%s/%s.git", info.Host, info.Owner, info.Repo), nil
}

// validateLocalPath validates and cleans the local install path.
func (gs GitSource) validateLocalPath() (string, error) {
	expanded := fileops.ExpandPath(gs.Path)
	clean := filepath.Clean(expanded)

	// SECURITY: Prevent path traversal and system directory access
	if err := fileops.ValidatePathSecurity(clean); err != nil {
		return "", fmt.Errorf("invalid install path: %w", err)
	}

	abs, err := filepath.Abs(clean)
	if err != nil {
		return "", fmt.Errorf("cannot resolve absolute path: %w", err)
	}

	return abs, nil
}

// getAuthentication retrieves the PAT from the credential manager.
// Returns nil auth when no token is stored, which allows public access.
func (gs GitSource) getAuthentication(logger *logging.AppLogger) (*http.BasicAuth, error) {
	credMgr := NewCredentialManager()

	if !credMgr.HasGitHubToken() {
		return nil, nil // No auth available - will try public access
	}

	token, err := credMgr.GetGitHubToken()
	if err != nil {
		return nil, err
	}

	if logger != nil {
		logger.Debug("Using GitHub Personal Access Token for authentication")
	}

	// GitHub PAT authentication uses "token" as username
	return &http.BasicAuth{
		Username: "token",
		Password: token,
	}, nil
}

// performCloneWithAuth performs the initial clone, trying public access
// first and retrying with a PAT only when the remote rejects anonymous
// access. Non-auth errors are returned unchanged.
func (gs GitSource) performCloneWithAuth(localPath, remoteURL string, logger *logging.AppLogger) error {
	err := gs.performClone(localPath, remoteURL, nil, logger)
	if err == nil {
		return nil
	}

	if gs.isAuthenticationError(err) {
		if logger != nil {
			logger.Debug("Public access failed, trying with authentication")
		}

		auth, authErr := gs.getAuthentication(logger)
		if authErr != nil {
			return fmt.Errorf("GitHub authentication failed: %w", authErr)
		}
		if auth == nil {
			return fmt.Errorf("GitHub authentication required - configure a Personal Access Token with 'spawner auth set-token'")
		}

		return gs.performClone(localPath, remoteURL, auth, logger)
	}

	return err
}

// performClone performs the initial repository clone with the given authentication.
func (gs GitSource) performClone(localPath, remoteURL string, auth *http.BasicAuth, logger *logging.AppLogger) error {
	if logger != nil {
		logger.Info("Cloning repository", "remoteURL", remoteURL, "localPath", localPath)
	}

	parentDir := filepath.Dir(localPath)
	if err := fileops.ValidatePathSecurity(parentDir); err != nil {
		return fmt.Errorf("parent directory failed security validation: %w", err)
	}
	if err := os.MkdirAll(parentDir, 0o755); err != nil {
		return fmt.Errorf("failed to create parent directory: %w", err)
	}

	cloneOpts := &git.CloneOptions{
		URL:      remoteURL,
		Progress: nil, // Set to os.Stdout for debug
	}

	if auth != nil {
		cloneOpts.Auth = auth
	}

	if gs.Branch != "" {
		cloneOpts.ReferenceName = plumbing.NewBranchReferenceName(gs.Branch)
		cloneOpts.SingleBranch = true
	}

	if _, err := git.PlainClone(localPath, cloneOpts); err != nil {
		return gs.translateCloneError(err)
	}

	if logger != nil {
		logger.Info("Repository cloned successfully", "localPath", localPath)
	}

	return nil
}

// performPullWithAuth pulls updates with the same public-first, PAT-fallback
// strategy as clone. Returns whether new commits were pulled.
func (gs GitSource) performPullWithAuth(worktree *git.Worktree, logger *logging.AppLogger) (bool, error) {
	pulled, err := gs.performPull(worktree, nil, logger)
	if err == nil {
		return pulled, nil
	}

	if gs.isAuthenticationError(err) {
		if logger != nil {
			logger.Debug("Public pull failed, trying with authentication")
		}

		auth, authErr := gs.getAuthentication(logger)
		if authErr != nil {
			return false, fmt.Errorf("GitHub authentication failed: %w", authErr)
		}
		if auth == nil {
			return false, fmt.Errorf("GitHub authentication required - configure a Personal Access Token with 'spawner auth set-token'")
		}

		return gs.performPull(worktree, auth, logger)
	}

	return false, err
}

// performPull pulls origin into the working tree. go-git reports
// NoErrAlreadyUpToDate through the error return, which is remapped to the
// boolean result here.
func (gs GitSource) performPull(worktree *git.Worktree, auth *http.BasicAuth, logger *logging.AppLogger) (bool, error) {
	pullOpts := &git.PullOptions{
		RemoteName: "origin",
		Auth:       auth,
		Force:      true, // Handle force-pushes on the skills repo
	}

	err := worktree.Pull(pullOpts)
	if err == git.NoErrAlreadyUpToDate {
		if logger != nil {
			logger.Debug("Repository already up to date")
		}
		return false, nil
	}
	if err != nil {
		return false, gs.translatePullError(err)
	}

	if logger != nil {
		logger.Info("Repository updated successfully")
	}
	return true, nil
}

// translateCloneError provides user-friendly error messages for clone failures.
func (gs GitSource) translateCloneError(err error) error {
	errMsg := err.Error()
	errStr := strings.ToLower(errMsg)

	// Authentication errors
	if gs.containsAuthErrorPatterns(errMsg) {
		if strings.Contains(errStr, "403") || strings.Contains(errStr, "forbidden") {
			return fmt.Errorf("GitHub token lacks required permissions - ensure 'repo' scope is enabled, then run 'spawner auth set-token'")
		}
		return fmt.Errorf("GitHub authentication failed - update your Personal Access Token with 'spawner auth set-token'")
	}

	// Repository not found
	if strings.Contains(errStr, "404") || strings.Contains(errStr, "not found") {
		return fmt.Errorf("repository not found - check the URL or ensure you have access: %s", gs.RemoteURL)
	}

	// Network errors
	if strings.Contains(errStr, "network") || strings.Contains(errStr, "connection") || strings.Contains(errStr, "timeout") {
		return fmt.Errorf("network error during install - check your internet connection and try again: %w", err)
	}

	return fmt.Errorf("failed to clone repository: %w", err)
}

// translatePullError provides user-friendly error messages for pull
// failures. These are less critical than clone errors since the installed
// skills keep working from the cached clone.
func (gs GitSource) translatePullError(err error) error {
	errMsg := err.Error()
	errStr := strings.ToLower(errMsg)

	if gs.containsAuthErrorPatterns(errMsg) {
		return fmt.Errorf("GitHub token has expired or is invalid - update it with 'spawner auth set-token'")
	}

	if strings.Contains(errStr, "network") || strings.Contains(errStr, "connection") || strings.Contains(errStr, "timeout") {
		return fmt.Errorf("network error during update - installed skills remain usable: %w", err)
	}

	return fmt.Errorf("failed to pull repository updates: %w", err)
}

// isAuthenticationError checks if an error is related to authentication.
func (gs GitSource) isAuthenticationError(err error) bool {
	if err == nil {
		return false
	}

	return gs.containsAuthErrorPatterns(err.Error())
}

// containsAuthErrorPatterns checks if error message contains authentication-related patterns
func (gs GitSource) containsAuthErrorPatterns(errMsg string) bool {
	errStr := strings.ToLower(errMsg)
	authPatterns := []string{
		"authentication required",
		"401",
		"unauthorized",
		"403",
		"forbidden",
	}

	for _, pattern := range authPatterns {
		if strings.Contains(errStr, pattern) {
			return true
		}
	}
	return false
}

// GitURLInfo contains the parsed components of a Git repository URL.
type GitURLInfo struct {
	Host  string // Host (e.g., "github.com")
	Owner string // Repository owner/organization
	Repo  string // Repository name (without .git suffix)
}

// ParseGitURL parses a Git repository URL and extracts its components.
// It supports both SSH (git@host:owner/repo.git) and HTTPS
// (https://host/owner/repo.git) formats; the .git suffix is optional.
func ParseGitURL(gitURL string) (GitURLInfo, error) {
	gitURL = strings.TrimSpace(gitURL)

	// Handle SSH URLs like git@github.com:owner/repo.git
	sshPattern := regexp.MustCompile(`^git@([^:]+):([^/]+)/(.+?)(?:\.git)?$`)
	if matches := sshPattern.FindStringSubmatch(gitURL); matches != nil {
		return GitURLInfo{
			Host:  matches[1],
			Owner: matches[2],
			Repo:  matches[3],
		}, nil
	}

	// Handle HTTPS URLs
	parsedURL, err := url.Parse(gitURL)
	if err != nil {
		return GitURLInfo{}, fmt.Errorf("invalid URL format: %w", err)
	}

	if parsedURL.Host == "" {
		return GitURLInfo{}, fmt.Errorf("URL missing host component")
	}

	pathParts := strings.Split(strings.Trim(parsedURL.Path, "/"), "/")
	if len(pathParts) < 2 {
		return GitURLInfo{}, fmt.Errorf("URL path should contain owner/repo: %s", parsedURL.Path)
	}

	owner := pathParts[0]
	repo := strings.TrimSuffix(pathParts[1], ".git")

	if owner == "" || repo == "" {
		return GitURLInfo{}, fmt.Errorf("could not extract owner/repo from URL path: %s", parsedURL.Path)
	}

	return GitURLInfo{
		Host:  parsedURL.Host,
		Owner: owner,
		Repo:  repo,
	}, nil
}

// validateCloneDirectory checks if a target install directory can be used
// safely for the given repository.
//
// Strategy:
//   - Directory doesn't exist or is empty: safe to clone
//   - Is git repository with same remote URL: already installed
//   - Is git repository with different remote URL: error, resolve manually
//   - Has non-git content: error, resolve manually
func (gs GitSource) validateCloneDirectory(clonePath, expectedRemoteURL string) (DirectoryStatus, error) {
	info, err := os.Stat(clonePath)
	if os.IsNotExist(err) {
		return DirectoryStatusEmpty, nil
	}
	if err != nil {
		return DirectoryStatusError, fmt.Errorf("cannot access directory %s: %w", clonePath, err)
	}

	if !info.IsDir() {
		return DirectoryStatusError, fmt.Errorf("path exists but is not a directory: %s", clonePath)
	}

	isEmpty, err := fileops.IsDirEmpty(clonePath)
	if err != nil {
		return DirectoryStatusError, fmt.Errorf("cannot check if directory is empty: %w", err)
	}
	if isEmpty {
		return DirectoryStatusEmpty, nil
	}

	// git.PlainOpen reliably detects whether the directory is a repository
	currentRemote, err := gs.getGitRemoteURL(clonePath)
	if err != nil {
		if strings.Contains(err.Error(), "not a git repository") {
			return DirectoryStatusConflict, fmt.Errorf("directory contains non-git content: %s", clonePath)
		}
		return DirectoryStatusError, fmt.Errorf("cannot get current git remote URL: %w", err)
	}

	// Normalize URLs for comparison (handle SSH vs HTTPS for same repo)
	if gs.normalizeGitURL(currentRemote) == gs.normalizeGitURL(expectedRemoteURL) {
		return DirectoryStatusSameRepo, nil
	}

	return DirectoryStatusDifferentRepo, fmt.Errorf("directory contains different git repository (current: %s, expected: %s)", currentRemote, expectedRemoteURL)
}

// getGitRemoteURL gets the origin remote URL of a git repository.
func (gs GitSource) getGitRemoteURL(repoPath string) (string, error) {
	repo, err := git.PlainOpen(repoPath)
	if err != nil {
		if err == git.ErrRepositoryNotExists {
			return "", fmt.Errorf("directory is not a git repository: %s", repoPath)
		}
		return "", fmt.Errorf("cannot open git repository: %w", err)
	}

	remote, err := repo.Remote("origin")
	if err != nil {
		return "", fmt.Errorf("cannot get origin remote: %w", err)
	}

	config := remote.Config()
	if config == nil || len(config.URLs) == 0 {
		return "", fmt.Errorf("no URLs configured for origin remote")
	}

	return config.URLs[0], nil
}

// normalizeGitURL normalizes git URLs for comparison.
// This ensures that SSH and HTTPS URLs for the same repository are
// considered equivalent.
func (gs GitSource) normalizeGitURL(gitURL string) string {
	gitURL = strings.TrimSpace(gitURL)
	gitURL = strings.TrimSuffix(gitURL, ".git")

	// git@github.com:owner/repo -> github.com/owner/repo
	sshPattern := regexp.MustCompile(`^git@([^:]+):(.+)$`)
	if matches := sshPattern.FindStringSubmatch(gitURL); matches != nil {
		return matches[1] + "/" + matches[2]
	}

	// https://github.com/owner/repo -> github.com/owner/repo
	if after, found := strings.CutPrefix(gitURL, "https://"); found {
		return after
	}
	if after, found := strings.CutPrefix(gitURL, "http://"); found {
		return after
	}

	return gitURL
}

// checkoutBranch checks out a specific branch, creating a local branch
// tracking the remote one when it doesn't exist yet.
func (gs GitSource) checkoutBranch(repo *git.Repository, worktree *git.Worktree, branchName string, logger *logging.AppLogger) error {
	if logger != nil {
		logger.Debug("Checking out branch", "branch", branchName)
	}

	head, err := repo.Head()
	if err != nil && err != plumbing.ErrReferenceNotFound {
		return fmt.Errorf("failed to get current branch: %w", err)
	}

	if head != nil && head.Name().Short() == branchName {
		return nil
	}

	localBranchRef := plumbing.NewBranchReferenceName(branchName)
	remoteBranchRef := plumbing.NewRemoteReferenceName("origin", branchName)

	if _, err = repo.Reference(remoteBranchRef, true); err != nil {
		return fmt.Errorf("branch '%s' does not exist on remote 'origin'", branchName)
	}

	_, err = repo.Reference(localBranchRef, true)
	if err == plumbing.ErrReferenceNotFound {
		remoteRef, err := repo.Reference(remoteBranchRef, true)
		if err != nil {
			return fmt.Errorf("failed to get remote branch reference: %w", err)
		}

		newRef := plumbing.NewHashReference(localBranchRef, remoteRef.Hash())
		if err := repo.Storer.SetReference(newRef); err != nil {
			return fmt.Errorf("failed to create local branch: %w", err)
		}
	} else if err != nil {
		return fmt.Errorf("failed to get local branch reference: %w", err)
	}

	checkoutOpts := &git.CheckoutOptions{
		Branch: localBranchRef,
		Force:  false, // Don't discard local changes
	}

	if err := worktree.Checkout(checkoutOpts); err != nil {
		return fmt.Errorf("failed to checkout branch: %w", err)
	}

	if logger != nil {
		logger.Info("Checked out branch", "branch", branchName)
	}

	return nil
}

// IsInstalled reports whether path contains a git repository.
func IsInstalled(path string) bool {
	_, err := git.PlainOpen(fileops.ExpandPath(path))
	return err == nil
}
