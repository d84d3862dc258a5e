package git

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/aurora-editor/gitkit/internal/git/runner"
)

// Fetch downloads from the named remote, reporting interpreted
// progress to onProgress (which may be nil).
func (s *Service) Fetch(ctx context.Context, remote string, onProgress func(Progress)) error {
	return s.remoteOp(ctx, []string{"fetch", "--progress", remote}, FetchProgressSteps, onProgress)
}

// Pull fetches from the named remote and integrates into the current
// branch.
func (s *Service) Pull(ctx context.Context, remote string, onProgress func(Progress)) error {
	return s.remoteOp(ctx, []string{"pull", "--progress", remote}, PullProgressSteps, onProgress)
}

// Push uploads the current branch to the named remote.
func (s *Service) Push(ctx context.Context, remote string, onProgress func(Progress)) error {
	return s.remoteOp(ctx, []string{"push", "--progress", remote}, PushProgressSteps, onProgress)
}

func (s *Service) remoteOp(ctx context.Context, args []string, steps []ProgressStep, onProgress func(Progress)) error {
	if onProgress == nil {
		_, err := s.run.Run(ctx, args...)
		return wrapGitError(err)
	}

	parser, err := NewStepProgressParser(steps)
	if err != nil {
		return err
	}

	// git's own progress arrives on stderr; git-lfs writes its transfer
	// lines to the file named by GIT_LFS_PROGRESS instead, so the two are
	// decoded from separate streams and serialized into one callback.
	lfsFile, err := os.CreateTemp("", "lfs-progress-*")
	if err != nil {
		return fmt.Errorf("lfs progress file: %w", err)
	}
	lfsPath := lfsFile.Name()
	lfsFile.Close()
	defer os.Remove(lfsPath)

	var mu sync.Mutex
	report := func(p Progress) {
		mu.Lock()
		defer mu.Unlock()
		onProgress(p)
	}

	watchCtx, stopWatch := context.WithCancel(ctx)
	defer stopWatch()

	lfs := NewLFSTransferParser()
	watchDone := make(chan struct{})
	go func() {
		defer close(watchDone)
		err := runner.WatchLFSProgress(watchCtx, lfsPath, func(line string) {
			transfer, ok := lfs.Parse(line)
			if !ok {
				return
			}
			report(Progress{
				Kind:    ProgressUpdate,
				Percent: transfer.Percent,
				Title:   transfer.Direction + " " + transfer.CurrentFile,
				Value:   transfer.DoneFiles,
				Total:   transfer.EstimatedFiles,
				Done:    transfer.EstimatedFiles > 0 && transfer.DoneFiles == transfer.EstimatedFiles,
				Text:    line,
			})
		})
		if err != nil {
			slog.Warn("LFS progress watch failed", slog.Any("error", err))
		}
	}()

	_, err = s.run.StreamEnv(ctx, []string{"GIT_LFS_PROGRESS=" + lfsPath}, func(line string) {
		report(parser.Parse(line))
	}, args...)

	// Stop the watcher and wait for its final read so no transfer line is
	// reported after this returns.
	stopWatch()
	<-watchDone
	return wrapGitError(err)
}
