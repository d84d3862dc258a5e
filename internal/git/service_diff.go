package git

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/aurora-editor/gitkit/internal/git/runner"
)

// DiffFile produces the hunk model for one changed file. For staged
// content the index is diffed against HEAD, otherwise the working tree
// against the index. Untracked files are compared against the null
// device so their content shows up as added lines.
func (s *Service) DiffFile(ctx context.Context, file ChangedFile, staged bool) (*TextDiff, error) {
	var res runner.Result
	var err error
	if file.Status.Kind == StatusUntracked {
		res, err = s.run.Run(ctx, "diff", "--no-color", "--no-index", "--", os.DevNull, file.Path)
		// --no-index exits 1 when the inputs differ
		var exitErr *runner.ExitError
		if errors.As(err, &exitErr) && exitErr.Result.ExitCode == 1 {
			res, err = exitErr.Result, nil
		}
	} else {
		args := []string{"diff", "--no-color"}
		if staged {
			args = append(args, "--cached")
		}
		args = append(args, "--", file.Path)
		res, err = s.run.Run(ctx, args...)
	}
	if err != nil {
		return nil, wrapGitError(err)
	}
	return ParseTextDiff(res.Stdout), nil
}

// StageSelection stages the selected lines of file by applying a
// reconstructed patch to the index. An empty selection is a no-op.
func (s *Service) StageSelection(ctx context.Context, file ChangedFile, diff *TextDiff, sel *DiffSelection) error {
	patch, err := FormatPatch(file, diff, sel)
	if err != nil {
		if errors.Is(err, ErrNoChangesToFormat) {
			return nil
		}
		return err
	}
	_, err = s.run.RunWithStdin(ctx, strings.NewReader(patch),
		"apply", "--cached", "--unidiff-zero", "--whitespace=nowarn", "-")
	return wrapGitError(err)
}

// DiscardSelection reverts the selected lines in the working tree.
// An empty selection is a no-op.
func (s *Service) DiscardSelection(ctx context.Context, file ChangedFile, diff *TextDiff, sel *DiffSelection) error {
	patch, err := FormatPatchToDiscard(file, diff, sel)
	if err != nil {
		if errors.Is(err, ErrNoChangesToFormat) {
			return nil
		}
		return err
	}
	_, err = s.run.RunWithStdin(ctx, strings.NewReader(patch),
		"apply", "--unidiff-zero", "--whitespace=nowarn", "-")
	return wrapGitError(err)
}
