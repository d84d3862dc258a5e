// Package cmd implements the gitkit command line interface.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/aurora-editor/gitkit/internal/buildinfo"
	"github.com/aurora-editor/gitkit/internal/git"
)

func Run() error {
	return run(context.Background(), os.Args[1:], os.Stdout)
}

func run(ctx context.Context, args []string, out *os.File) error {
	fs := flag.NewFlagSet("gitkit", flag.ContinueOnError)
	verbose := fs.Bool("verbose", false, "enable verbose logging")
	showVersion := fs.Bool("version", false, "print version information and exit")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: gitkit [flags] status [path]\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}
	if *showVersion {
		fmt.Fprintln(out, buildinfo.String())
		return nil
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	remaining := fs.Args()
	if len(remaining) == 0 {
		fs.Usage()
		return fmt.Errorf("missing command")
	}
	switch remaining[0] {
	case "status":
		repoPath := "."
		if len(remaining) > 1 {
			repoPath = remaining[1]
		}
		return runStatus(ctx, repoPath, out)
	default:
		fs.Usage()
		return fmt.Errorf("unknown command %q", remaining[0])
	}
}

func runStatus(ctx context.Context, repoPath string, out *os.File) error {
	svc, err := git.Open(ctx, repoPath)
	if err != nil {
		return err
	}
	status, err := svc.Status(ctx)
	if err != nil {
		return err
	}

	branch := status.Branch
	switch {
	case branch.Detached:
		fmt.Fprintf(out, "HEAD detached at %.7s\n", branch.OID)
	case branch.Head != "":
		fmt.Fprintf(out, "On branch %s", branch.Head)
		if branch.Upstream != "" {
			fmt.Fprintf(out, " (upstream %s, +%d -%d)", branch.Upstream, branch.Ahead, branch.Behind)
		}
		fmt.Fprintln(out)
	}
	if len(status.Changes) == 0 {
		fmt.Fprintln(out, "nothing to report, working tree clean")
		return nil
	}
	for _, change := range status.Changes {
		fmt.Fprintln(out, describeChange(change))
	}
	return nil
}

func describeChange(change git.ChangedFile) string {
	path := change.Path
	if change.OldPath != "" {
		path = fmt.Sprintf("%s -> %s", change.OldPath, change.Path)
	}
	switch change.Status.Kind {
	case git.StatusUntracked:
		return fmt.Sprintf("untracked   %s", path)
	case git.StatusRenamedOrCopied:
		return fmt.Sprintf("renamed     %s", path)
	case git.StatusConflicted:
		return fmt.Sprintf("conflicted  %s (%d markers)", path, change.Status.MarkerCount)
	case git.StatusManualConflict:
		return fmt.Sprintf("conflicted  %s (%c/%c)", path, change.Status.Conflict.Us, change.Status.Conflict.Them)
	default:
		switch change.Status.Type {
		case git.OrdinaryAdded:
			return fmt.Sprintf("added       %s", path)
		case git.OrdinaryDeleted:
			return fmt.Sprintf("deleted     %s", path)
		default:
			return fmt.Sprintf("modified    %s", path)
		}
	}
}
