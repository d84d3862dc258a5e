package git

import (
	"context"
	"errors"
	"fmt"
	"strings"

	gitlib "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/aurora-editor/gitkit/internal/git/runner"
)

// Service ties the decoders to a concrete repository: it runs git
// through Runner and interprets whatever comes back on stdout/stderr.
type Service struct {
	run  *runner.Runner
	repo repoState
}

type repoState struct {
	*gitlib.Repository
	path string
}

func Open(ctx context.Context, repoPath string) (*Service, error) {
	run, err := runner.Open(ctx, repoPath)
	if err != nil {
		return nil, err
	}
	repo, err := gitlib.PlainOpenWithOptions(run.Root(), &gitlib.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("open repository: %w", err)
	}
	return &Service{run: run, repo: repoState{path: run.Root(), Repository: repo}}, nil
}

func (s *Service) RepoPath() string {
	return s.repo.path
}

// HeadName returns the short name of the checked-out branch, or the
// abbreviated commit hash when HEAD is detached. An unborn HEAD
// returns the empty string.
func (s *Service) HeadName() (string, error) {
	ref, err := s.repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("resolve HEAD: %w", err)
	}
	if ref.Name().IsBranch() {
		return ref.Name().Short(), nil
	}
	return ref.Hash().String()[:7], nil
}

// GitError is a failed git invocation whose output matched a known
// failure pattern.
type GitError struct {
	Kind   ErrorKind
	Args   []string
	Result runner.Result
}

func (e *GitError) Error() string {
	if desc, ok := Describe(e.Kind); ok {
		return desc
	}
	if msg := strings.TrimSpace(e.Result.Stderr); msg != "" {
		return msg
	}
	return fmt.Sprintf("git %s exited with code %d", strings.Join(e.Args, " "), e.Result.ExitCode)
}

// wrapGitError upgrades a runner failure to a *GitError when the
// output matches the error table; anything else passes through
// untouched.
func wrapGitError(err error) error {
	if err == nil {
		return nil
	}
	var exitErr *runner.ExitError
	if !errors.As(err, &exitErr) {
		return err
	}
	kind, ok := Classify(exitErr.Result.Stderr, exitErr.Result.Stdout)
	if !ok {
		return err
	}
	return &GitError{Kind: kind, Args: exitErr.Args, Result: exitErr.Result}
}
