// Package runner executes the git CLI for one repository and hands the raw
// output back to the interpretation layer. It owns nothing beyond process
// invocation: decoding stdout/stderr is the caller's concern.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"path/filepath"
	"strings"
)

// Result is the captured output of one git invocation.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// ExitError is returned when git exits non-zero. It carries the full Result
// so callers can classify the failure from the output text.
type ExitError struct {
	Args   []string
	Result Result
}

func (e *ExitError) Error() string {
	msg := strings.TrimSpace(e.Result.Stderr)
	if msg == "" {
		msg = strings.TrimSpace(e.Result.Stdout)
	}
	if msg == "" {
		return fmt.Sprintf("git %s: exit status %d", strings.Join(e.Args, " "), e.Result.ExitCode)
	}
	return fmt.Sprintf("git %s: exit status %d: %s", strings.Join(e.Args, " "), e.Result.ExitCode, msg)
}

// Runner runs git commands against a single repository root.
type Runner struct {
	root string
}

// Open resolves the repository root containing path and returns a Runner
// bound to it. It fails when git is older than the minimum supported version
// or when path is not inside a work tree.
func Open(ctx context.Context, path string) (*Runner, error) {
	if err := ensureMinGitVersion(); err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	tmp := &Runner{root: abs}
	res, err := tmp.Run(ctx, "rev-parse", "--show-toplevel")
	if err != nil {
		return nil, fmt.Errorf("open repository: %w", err)
	}
	root := strings.TrimSpace(res.Stdout)
	if root == "" {
		return nil, errors.New("open repository: git rev-parse returned empty root")
	}
	return &Runner{root: root}, nil
}

func (r *Runner) Root() string {
	if r == nil {
		return ""
	}
	return r.root
}

// Run executes git with the given arguments and waits for it to finish.
// A non-zero exit returns the Result alongside an *ExitError.
func (r *Runner) Run(ctx context.Context, args ...string) (Result, error) {
	return r.run(ctx, nil, args)
}

// RunWithStdin is Run with the given reader wired to git's standard input,
// for commands such as `git apply -` that consume a patch from the caller.
func (r *Runner) RunWithStdin(ctx context.Context, stdin io.Reader, args ...string) (Result, error) {
	return r.run(ctx, stdin, args)
}

func (r *Runner) run(ctx context.Context, stdin io.Reader, args []string) (Result, error) {
	if r == nil || r.root == "" {
		return Result{}, errors.New("repository root not set")
	}
	cmdArgs := append([]string{"-C", r.root}, args...)
	cmd := exec.CommandContext(ctx, "git", cmdArgs...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.Stdin = stdin
	err := cmd.Run()
	res := Result{Stdout: stdout.String(), Stderr: stderr.String()}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
			return res, &ExitError{Args: args, Result: res}
		}
		return res, fmt.Errorf("git %s: %w", strings.Join(args, " "), err)
	}
	return res, nil
}
