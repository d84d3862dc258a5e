package git

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// BranchInfo is the branch snapshot carried in porcelain v2 headers.
type BranchInfo struct {
	OID      string
	Head     string
	Upstream string
	Ahead    int
	Behind   int
	Detached bool
}

// WorkingStatus is the decoded state of the working directory.
type WorkingStatus struct {
	Branch  BranchInfo
	Changes []ChangedFile
}

// Status runs git status in porcelain v2 format and decodes it.
// Conflicted entries get their marker counts filled in from the
// working-tree file contents.
func (s *Service) Status(ctx context.Context) (*WorkingStatus, error) {
	res, err := s.run.Run(ctx, "status", "--porcelain=v2", "-z", "-b", "--untracked-files=all")
	if err != nil {
		return nil, wrapGitError(err)
	}

	status := &WorkingStatus{}
	for _, item := range ParsePorcelainStatus(res.Stdout) {
		switch {
		case item.Header != nil:
			applyBranchHeader(&status.Branch, item.Header.Value)
		case item.Entry != nil:
			fs := item.Entry.FileStatus()
			if fs.Kind == StatusConflicted {
				fs.MarkerCount = s.countConflictMarkers(item.Entry.Path)
			}
			status.Changes = append(status.Changes, ChangedFile{
				Path:    item.Entry.Path,
				OldPath: item.Entry.OldPath,
				Status:  fs,
			})
		}
	}

	s.crossCheckHead(status.Branch)
	return status, nil
}

// applyBranchHeader folds one "# branch.*" header into the snapshot.
func applyBranchHeader(b *BranchInfo, value string) {
	name, rest, ok := strings.Cut(value, " ")
	if !ok {
		return
	}
	switch name {
	case "branch.oid":
		b.OID = rest
	case "branch.head":
		b.Head = rest
		b.Detached = rest == "(detached)"
	case "branch.upstream":
		b.Upstream = rest
	case "branch.ab":
		for _, field := range strings.Fields(rest) {
			if len(field) < 2 {
				continue
			}
			n, err := strconv.Atoi(field[1:])
			if err != nil {
				continue
			}
			switch field[0] {
			case '+':
				b.Ahead = n
			case '-':
				b.Behind = n
			}
		}
	}
}

func (s *Service) countConflictMarkers(relPath string) int {
	data, err := os.ReadFile(filepath.Join(s.repo.path, relPath))
	if err != nil {
		slog.Debug("reading conflicted file", slog.String("path", relPath), slog.Any("error", err))
		return 0
	}
	return bytes.Count(data, []byte("<<<<<<<"))
}

// crossCheckHead compares the status header against go-git's view of
// HEAD. A mismatch means the repository changed mid-read; it is logged
// and the status headers win.
func (s *Service) crossCheckHead(b BranchInfo) {
	if b.Detached || b.Head == "" {
		return
	}
	name, err := s.HeadName()
	if err != nil || name == "" {
		return
	}
	if name != b.Head {
		slog.Debug("status branch header disagrees with HEAD",
			slog.String("header", b.Head),
			slog.String("head", name),
		)
	}
}
