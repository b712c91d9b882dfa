// Package git wraps the go-git operations komodo needs to version a
// release root: staging generated files and committing them. Many sites
// keep the root under git so activator-switch rollouts are auditable.
package git

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

var (
	ErrNotARepo     = errors.New("not a git repository")
	ErrEmptyMessage = errors.New("commit message cannot be empty")
	ErrNoFiles      = errors.New("no files specified to stage")
)

// Fallback commit identity for roots whose repository carries no user
// configuration.
const (
	defaultUserName  = "komodo"
	defaultUserEmail = "komodo@localhost"
)

// Client performs git operations on one repository.
type Client struct {
	path string
}

// NewClient creates a client for the repository rooted at path.
func NewClient(path string) *Client {
	return &Client{path: path}
}

// IsRepo reports whether the path is a git repository. A corrupted
// repository is an error, not a false.
func (c *Client) IsRepo(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("context cancelled: %w", err)
	}

	_, err := gogit.PlainOpen(c.path)
	if errors.Is(err, gogit.ErrRepositoryNotExists) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("open repository: %w", err)
	}
	return true, nil
}

// Init initializes a new repository at the client path.
func (c *Client) Init(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context cancelled: %w", err)
	}

	if _, err := gogit.PlainInit(c.path, false); err != nil {
		return fmt.Errorf("init repository: %w", err)
	}
	return nil
}

// Stage adds files to the staging area. Paths are relative to the
// repository root.
func (c *Client) Stage(ctx context.Context, files ...string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context cancelled: %w", err)
	}
	if len(files) == 0 {
		return ErrNoFiles
	}

	repo, err := gogit.PlainOpen(c.path)
	if err != nil {
		return c.openErr(err)
	}
	worktree, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("get worktree: %w", err)
	}

	for _, file := range files {
		if _, err := worktree.Add(file); err != nil {
			return fmt.Errorf("stage file %s: %w", file, err)
		}
	}
	return nil
}

// Commit commits the staged changes and returns the new commit hash. The
// author comes from the repository config, falling back to the komodo
// identity when the repo carries none.
func (c *Client) Commit(ctx context.Context, message string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("context cancelled: %w", err)
	}
	if message == "" {
		return "", ErrEmptyMessage
	}

	repo, err := gogit.PlainOpen(c.path)
	if err != nil {
		return "", c.openErr(err)
	}
	worktree, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("get worktree: %w", err)
	}

	author, err := c.signature(repo)
	if err != nil {
		return "", err
	}

	hash, err := worktree.Commit(message, &gogit.CommitOptions{Author: author})
	if err != nil {
		return "", fmt.Errorf("create commit: %w", err)
	}
	return hash.String(), nil
}

// SetUser writes the commit identity into the repository-local config.
// The global git config is never touched.
func (c *Client) SetUser(ctx context.Context, name, email string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context cancelled: %w", err)
	}

	repo, err := gogit.PlainOpen(c.path)
	if err != nil {
		return c.openErr(err)
	}
	cfg, err := repo.Config()
	if err != nil {
		return fmt.Errorf("read repo config: %w", err)
	}

	cfg.User.Name = name
	cfg.User.Email = email

	if err := repo.Storer.SetConfig(cfg); err != nil {
		return fmt.Errorf("write repo config: %w", err)
	}
	return nil
}

// Head returns the commit hash of HEAD.
func (c *Client) Head(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("context cancelled: %w", err)
	}

	repo, err := gogit.PlainOpen(c.path)
	if err != nil {
		return "", c.openErr(err)
	}
	ref, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("get HEAD: %w", err)
	}
	return ref.Hash().String(), nil
}

// signature resolves the commit author: repository config first, then the
// standard git environment variables, then the komodo fallback identity.
// The global git config is never consulted.
func (c *Client) signature(repo *gogit.Repository) (*object.Signature, error) {
	cfg, err := repo.Config()
	if err != nil {
		return nil, fmt.Errorf("read repo config: %w", err)
	}

	name, email := cfg.User.Name, cfg.User.Email
	if name == "" {
		name = os.Getenv("GIT_AUTHOR_NAME")
	}
	if email == "" {
		email = os.Getenv("GIT_AUTHOR_EMAIL")
	}
	if name == "" {
		name = defaultUserName
	}
	if email == "" {
		email = defaultUserEmail
	}
	return &object.Signature{Name: name, Email: email, When: time.Now()}, nil
}

func (c *Client) openErr(err error) error {
	if errors.Is(err, gogit.ErrRepositoryNotExists) {
		return fmt.Errorf("%s: %w", c.path, ErrNotARepo)
	}
	return fmt.Errorf("open repository: %w", err)
}
