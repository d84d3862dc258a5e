package git

import (
	"errors"
	"strings"
)

// ErrNoChangesToFormat signals that a selection produced a patch with zero
// hunks. It is an expected outcome ("nothing to stage/discard for this
// file"), not a malformed-input error.
var ErrNoChangesToFormat = errors.New("patch contains no changes")

// ChangedFile pairs a file's paths with its decoded status; the patch
// formatter needs the status to tell brand-new files from existing ones.
type ChangedFile struct {
	Path    string
	OldPath string
	Status  FileStatus
}

func (f ChangedFile) isNew() bool {
	if f.Status.Kind == StatusUntracked {
		return true
	}
	return f.Status.Kind == StatusOrdinary && f.Status.Type == OrdinaryAdded
}

type patchMode uint8

const (
	patchStage patchMode = iota
	patchDiscard
)

// FormatPatch reconstructs a unified-diff patch containing only the selected
// changes of the diff, suitable for `git apply --cached`. Context lines pass
// through; an unselected add in an existing file is demoted to context since
// the line stays in the working copy; an unselected add in a brand-new file
// is dropped since no base ever contained it; an unselected delete is
// dropped. Hunk counts are recomputed from the emitted lines.
func FormatPatch(file ChangedFile, diff *TextDiff, sel *DiffSelection) (string, error) {
	body, hunks := formatHunks(diff, sel, patchStage, file.isNew())
	if hunks == 0 {
		return "", ErrNoChangesToFormat
	}
	var b strings.Builder
	if file.isNew() {
		b.WriteString("--- /dev/null\n")
	} else {
		oldPath := file.OldPath
		if oldPath == "" {
			oldPath = file.Path
		}
		b.WriteString("--- a/" + oldPath + "\n")
	}
	b.WriteString("+++ b/" + file.Path + "\n")
	b.WriteString(body)
	return b.String(), nil
}

// FormatPatchToDiscard reconstructs the inverse patch: selected changes are
// reverted. A selected add comes back as a delete and a selected delete as
// an add; unselected adds remain as context (they stay added) and unselected
// deletes are dropped (they stay deleted). Hunks with no selected changes
// are omitted.
func FormatPatchToDiscard(file ChangedFile, diff *TextDiff, sel *DiffSelection) (string, error) {
	body, hunks := formatHunks(diff, sel, patchDiscard, false)
	if hunks == 0 {
		return "", ErrNoChangesToFormat
	}
	var b strings.Builder
	b.WriteString("--- a/" + file.Path + "\n")
	b.WriteString("+++ b/" + file.Path + "\n")
	b.WriteString(body)
	return b.String(), nil
}

func formatHunks(diff *TextDiff, sel *DiffSelection, mode patchMode, newFile bool) (string, int) {
	var b strings.Builder
	count := 0
	for _, hunk := range diff.Hunks {
		if rendered, ok := formatHunk(hunk, sel, mode, newFile); ok {
			b.WriteString(rendered)
			count++
		}
	}
	return b.String(), count
}

func formatHunk(hunk DiffHunk, sel *DiffSelection, mode patchMode, newFile bool) (string, bool) {
	var body strings.Builder
	oldCount, newCount := 0, 0
	hasChanges := false

	emit := func(text string, noNewline bool) {
		body.WriteString(text)
		body.WriteByte('\n')
		if noNewline {
			body.WriteString("\\ No newline at end of file\n")
		}
	}

	for _, line := range hunk.Lines {
		selected := sel.IsSelected(line.OriginalLineNumber)
		switch line.Kind {
		case DiffLineHunk:
			// The header is re-rendered with recomputed counts below.
		case DiffLineContext:
			emit(line.Text, line.NoTrailingNewline)
			oldCount++
			newCount++
		case DiffLineAdd:
			switch {
			case selected && mode == patchStage:
				emit(line.Text, line.NoTrailingNewline)
				newCount++
				hasChanges = true
			case selected && mode == patchDiscard:
				emit("-"+line.Content(), line.NoTrailingNewline)
				oldCount++
				hasChanges = true
			case mode == patchStage && newFile:
				// Never existed in any base; nothing to demote to.
			default:
				emit(" "+line.Content(), line.NoTrailingNewline)
				oldCount++
				newCount++
			}
		case DiffLineDelete:
			switch {
			case selected && mode == patchStage:
				emit(line.Text, line.NoTrailingNewline)
				oldCount++
				hasChanges = true
			case selected && mode == patchDiscard:
				emit("+"+line.Content(), line.NoTrailingNewline)
				newCount++
				hasChanges = true
			default:
				// Unselected deletes are not part of the included changes.
			}
		}
	}

	if !hasChanges {
		return "", false
	}
	header := DiffHunkHeader{
		OldStartLine:   hunk.Header.OldStartLine,
		OldLineCount:   oldCount,
		NewStartLine:   hunk.Header.NewStartLine,
		NewLineCount:   newCount,
		SectionHeading: hunk.Header.SectionHeading,
	}
	return header.String() + "\n" + body.String(), true
}
