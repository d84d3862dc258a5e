package runner

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// Stream executes git with the given arguments and hands each line of stderr
// to onLine as it arrives, in order. Git rewrites progress lines in place by
// terminating them with a carriage return, so the scanner treats both CR and
// LF as line boundaries. Stdout and stderr are still captured in full for
// the returned Result.
func (r *Runner) Stream(ctx context.Context, onLine func(string), args ...string) (Result, error) {
	return r.StreamEnv(ctx, nil, onLine, args...)
}

// StreamEnv is Stream with extra environment variables appended to the
// inherited environment, for commands steered through the environment such
// as git-lfs progress reporting.
func (r *Runner) StreamEnv(ctx context.Context, env []string, onLine func(string), args ...string) (Result, error) {
	if r == nil || r.root == "" {
		return Result{}, errors.New("repository root not set")
	}
	cmdArgs := append([]string{"-C", r.root}, args...)
	cmd := exec.CommandContext(ctx, "git", cmdArgs...)
	if len(env) > 0 {
		cmd.Env = append(os.Environ(), env...)
	}
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	stderrPipe, err := cmd.StderrPipe()
	if err != nil {
		return Result{}, fmt.Errorf("git %s stderr: %w", strings.Join(args, " "), err)
	}
	if err := cmd.Start(); err != nil {
		return Result{}, fmt.Errorf("git %s start: %w", strings.Join(args, " "), err)
	}

	var stderr strings.Builder
	scanner := bufio.NewScanner(stderrPipe)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	scanner.Split(scanProgressLines)
	for scanner.Scan() {
		line := scanner.Text()
		stderr.WriteString(line)
		stderr.WriteByte('\n')
		if onLine != nil {
			onLine(line)
		}
	}
	scanErr := scanner.Err()

	waitErr := cmd.Wait()
	res := Result{Stdout: stdout.String(), Stderr: stderr.String()}
	if waitErr != nil {
		var exitErr *exec.ExitError
		if errors.As(waitErr, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
			return res, &ExitError{Args: args, Result: res}
		}
		return res, fmt.Errorf("git %s: %w", strings.Join(args, " "), waitErr)
	}
	if scanErr != nil && scanErr != io.EOF {
		return res, fmt.Errorf("git %s stderr: %w", strings.Join(args, " "), scanErr)
	}
	return res, nil
}

// scanProgressLines splits on LF, CR or CRLF so that in-place progress
// rewrites surface as individual lines.
func scanProgressLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		advance = i + 1
		if data[i] == '\r' && i+1 < len(data) && data[i+1] == '\n' {
			advance++
		} else if data[i] == '\r' && i+1 >= len(data) && !atEOF {
			// Wait for more data so a CRLF pair is not split in two.
			return 0, nil, nil
		}
		return advance, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
