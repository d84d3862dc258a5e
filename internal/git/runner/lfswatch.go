package runner

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/aurora-editor/gitkit/internal/debounce"
)

// Git LFS appends a progress line per chunk, so writes arrive in
// bursts. Coalescing them keeps the reader from reopening the file for
// every chunk.
const lfsReadDelay = 10 * time.Millisecond

// WatchLFSProgress tails the file git-lfs writes its transfer progress
// to (the file named by the GIT_LFS_PROGRESS environment variable) and
// hands each complete line to onLine. The file does not have to exist
// yet; it is picked up as soon as git-lfs creates it. Returns when ctx
// is cancelled.
func WatchLFSProgress(ctx context.Context, path string, onLine func(string)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory rather than the file so creation is seen.
	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}

	tail := &lfsTail{path: path, onLine: onLine}

	notify := make(chan struct{}, 1)
	deb := debounce.New(lfsReadDelay, func() {
		select {
		case notify <- struct{}{}:
		default:
		}
	})
	defer deb.Stop()

	// The file may already have content by the time the watch starts.
	tail.read()

	for {
		select {
		case <-ctx.Done():
			tail.read()
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Name != path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			deb.Trigger()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("LFS progress watch error", slog.Any("error", err))
		case <-notify:
			tail.read()
		}
	}
}

// lfsTail reads the progress file incrementally, remembering how far
// it got and buffering any trailing partial line until the rest of it
// is written.
type lfsTail struct {
	path    string
	onLine  func(string)
	offset  int64
	partial []byte
}

func (t *lfsTail) read() {
	f, err := os.Open(t.path)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("opening LFS progress file", slog.Any("error", err))
		}
		return
	}
	defer f.Close()

	if _, err := f.Seek(t.offset, io.SeekStart); err != nil {
		slog.Warn("seeking LFS progress file", slog.Any("error", err))
		return
	}
	data, err := io.ReadAll(f)
	if err != nil {
		slog.Warn("reading LFS progress file", slog.Any("error", err))
		return
	}
	if len(data) == 0 {
		return
	}
	t.offset += int64(len(data))

	buf := append(t.partial, data...)
	for {
		i := bytes.IndexByte(buf, '\n')
		if i < 0 {
			break
		}
		line := string(bytes.TrimRight(buf[:i], "\r"))
		buf = buf[i+1:]
		if line != "" {
			t.onLine(line)
		}
	}
	t.partial = append([]byte(nil), buf...)
}
