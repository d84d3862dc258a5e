package git

import (
	"errors"
	"strings"
	"testing"

	"github.com/pmezard/go-difflib/difflib"
	"pgregory.net/rapid"
)

func modifiedFile(path string) ChangedFile {
	return ChangedFile{Path: path, Status: FileStatus{Kind: StatusOrdinary, Type: OrdinaryModified}}
}

func newFile(path string) ChangedFile {
	return ChangedFile{Path: path, Status: FileStatus{Kind: StatusUntracked, Index: StateUntracked, WorkingTree: StateUntracked}}
}

func TestFormatPatchSelectAllReproducesHunk(t *testing.T) {
	t.Parallel()

	diff := ParseTextDiff(singleFileDiff)
	sel := NewDiffSelection()
	sel.SelectAll(diff)

	patch, err := FormatPatch(modifiedFile("file.txt"), diff, sel)
	if err != nil {
		t.Fatal(err)
	}
	want := "--- a/file.txt\n" +
		"+++ b/file.txt\n" +
		"@@ -1,3 +1,4 @@ func main\n" +
		" one\n" +
		"-two\n" +
		"+two changed\n" +
		"+added\n" +
		" three\n"
	if patch != want {
		t.Errorf("patch:\n%s\nwant:\n%s", patch, want)
	}
}

func TestFormatPatchEmptySelection(t *testing.T) {
	t.Parallel()

	diff := ParseTextDiff(singleFileDiff)

	if _, err := FormatPatch(modifiedFile("file.txt"), diff, NewDiffSelection()); !errors.Is(err, ErrNoChangesToFormat) {
		t.Errorf("FormatPatch err = %v, want ErrNoChangesToFormat", err)
	}
	if _, err := FormatPatchToDiscard(modifiedFile("file.txt"), diff, NewDiffSelection()); !errors.Is(err, ErrNoChangesToFormat) {
		t.Errorf("FormatPatchToDiscard err = %v, want ErrNoChangesToFormat", err)
	}
}

func TestFormatPatchPartialStage(t *testing.T) {
	t.Parallel()

	diff := ParseTextDiff(singleFileDiff)
	sel := NewDiffSelection()
	// Only "+two changed" (index 3). The unselected delete is dropped and
	// the unselected add is demoted to context.
	sel.Set(3, true)

	patch, err := FormatPatch(modifiedFile("file.txt"), diff, sel)
	if err != nil {
		t.Fatal(err)
	}
	want := "--- a/file.txt\n" +
		"+++ b/file.txt\n" +
		"@@ -1,3 +1,4 @@ func main\n" +
		" one\n" +
		"+two changed\n" +
		" added\n" +
		" three\n"
	if patch != want {
		t.Errorf("patch:\n%s\nwant:\n%s", patch, want)
	}
}

func TestFormatPatchNewFileDropsUnselectedAdds(t *testing.T) {
	t.Parallel()

	raw := "@@ -0,0 +1,3 @@\n+first\n+second\n+third\n"
	diff := ParseTextDiff(raw)
	sel := NewDiffSelection()
	sel.Set(2, true) // "+second"

	patch, err := FormatPatch(newFile("fresh.txt"), diff, sel)
	if err != nil {
		t.Fatal(err)
	}
	want := "--- /dev/null\n" +
		"+++ b/fresh.txt\n" +
		"@@ -0,0 +1 @@\n" +
		"+second\n"
	if patch != want {
		t.Errorf("patch:\n%s\nwant:\n%s", patch, want)
	}
}

func TestFormatPatchRenamedFileHeader(t *testing.T) {
	t.Parallel()

	diff := ParseTextDiff(singleFileDiff)
	sel := NewDiffSelection()
	sel.SelectAll(diff)

	file := ChangedFile{
		Path:    "new.txt",
		OldPath: "old.txt",
		Status:  FileStatus{Kind: StatusRenamedOrCopied, Index: StateRenamed},
	}
	patch, err := FormatPatch(file, diff, sel)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(patch, "--- a/old.txt\n+++ b/new.txt\n") {
		t.Errorf("patch headers:\n%s", patch)
	}
}

func TestFormatPatchToDiscardInvertsSelection(t *testing.T) {
	t.Parallel()

	diff := ParseTextDiff(singleFileDiff)
	sel := NewDiffSelection()
	sel.SelectAll(diff)

	patch, err := FormatPatchToDiscard(modifiedFile("file.txt"), diff, sel)
	if err != nil {
		t.Fatal(err)
	}
	want := "--- a/file.txt\n" +
		"+++ b/file.txt\n" +
		"@@ -1,4 +1,3 @@ func main\n" +
		" one\n" +
		"+two\n" +
		"-two changed\n" +
		"-added\n" +
		" three\n"
	if patch != want {
		t.Errorf("patch:\n%s\nwant:\n%s", patch, want)
	}
}

func TestFormatPatchToDiscardKeepsUnselectedAdds(t *testing.T) {
	t.Parallel()

	diff := ParseTextDiff(singleFileDiff)
	sel := NewDiffSelection()
	sel.Set(4, true) // only "+added" is discarded

	patch, err := FormatPatchToDiscard(modifiedFile("file.txt"), diff, sel)
	if err != nil {
		t.Fatal(err)
	}
	want := "--- a/file.txt\n" +
		"+++ b/file.txt\n" +
		"@@ -1,4 +1,3 @@ func main\n" +
		" one\n" +
		" two changed\n" +
		"-added\n" +
		" three\n"
	if patch != want {
		t.Errorf("patch:\n%s\nwant:\n%s", patch, want)
	}
}

func TestFormatPatchNoTrailingNewlineMarker(t *testing.T) {
	t.Parallel()

	raw := "@@ -1 +1 @@\n-old\n+new\n\\ No newline at end of file\n"
	diff := ParseTextDiff(raw)
	sel := NewDiffSelection()
	sel.SelectAll(diff)

	patch, err := FormatPatch(modifiedFile("file.txt"), diff, sel)
	if err != nil {
		t.Fatal(err)
	}
	want := "--- a/file.txt\n" +
		"+++ b/file.txt\n" +
		"@@ -1 +1 @@\n" +
		"-old\n" +
		"+new\n" +
		"\\ No newline at end of file\n"
	if patch != want {
		t.Errorf("patch:\n%s\nwant:\n%s", patch, want)
	}
}

func TestFormatPatchSkipsUntouchedHunks(t *testing.T) {
	t.Parallel()

	raw := "@@ -1,2 +1,2 @@\n-a\n+A\n b\n@@ -10,2 +10,2 @@\n c\n-d\n+D\n"
	diff := ParseTextDiff(raw)
	sel := NewDiffSelection()
	sel.Set(5, true) // "-d" in the second hunk
	sel.Set(6, true) // "+D"

	patch, err := FormatPatch(modifiedFile("file.txt"), diff, sel)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(patch, "+A") {
		t.Errorf("patch includes the untouched first hunk:\n%s", patch)
	}
	if !strings.Contains(patch, "@@ -10,2 +10,2 @@") {
		t.Errorf("patch missing the selected hunk:\n%s", patch)
	}
}

type failer interface {
	Helper()
	Fatalf(format string, args ...any)
}

// applyTo replays a stage patch onto the old file content. Hunk positions are
// taken literally, which holds for full-selection patches since their counts
// match the original diff.
func applyTo(t failer, oldLines []string, diff *TextDiff) []string {
	t.Helper()
	var out []string
	srcIdx := 0
	for _, hunk := range diff.Hunks {
		start := hunk.Header.OldStartLine - 1
		if hunk.Header.OldLineCount == 0 {
			start = hunk.Header.OldStartLine
		}
		if start < srcIdx || start > len(oldLines) {
			t.Fatalf("hunk start %d out of range", hunk.Header.OldStartLine)
		}
		out = append(out, oldLines[srcIdx:start]...)
		srcIdx = start
		for _, line := range hunk.Lines {
			switch line.Kind {
			case DiffLineContext:
				if srcIdx >= len(oldLines) || oldLines[srcIdx] != line.Content() {
					t.Fatalf("context mismatch at old line %d", srcIdx+1)
				}
				out = append(out, line.Content())
				srcIdx++
			case DiffLineDelete:
				if srcIdx >= len(oldLines) || oldLines[srcIdx] != line.Content() {
					t.Fatalf("delete mismatch at old line %d", srcIdx+1)
				}
				srcIdx++
			case DiffLineAdd:
				out = append(out, line.Content())
			}
		}
	}
	out = append(out, oldLines[srcIdx:]...)
	return out
}

var fixtureWords = []string{"alpha", "beta", "gamma", "delta", "epsilon", "zeta"}

func TestFormatPatchFullSelectionRoundTrip(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		oldLines := rapid.SliceOfN(rapid.SampledFrom(fixtureWords), 1, 8).Draw(t, "old")
		newLines := rapid.SliceOfN(rapid.SampledFrom(fixtureWords), 1, 8).Draw(t, "new")

		raw, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
			A:        difflib.SplitLines(strings.Join(oldLines, "\n") + "\n"),
			B:        difflib.SplitLines(strings.Join(newLines, "\n") + "\n"),
			FromFile: "a/file.txt",
			ToFile:   "b/file.txt",
			Context:  3,
		})
		if err != nil {
			t.Fatal(err)
		}
		diff := ParseTextDiff(raw)
		if len(diff.Hunks) == 0 {
			// Identical contents produce no diff.
			return
		}

		sel := NewDiffSelection()
		sel.SelectAll(diff)
		patch, err := FormatPatch(modifiedFile("file.txt"), diff, sel)
		if err != nil {
			t.Fatal(err)
		}

		// A fully selected stage patch must transform old into new.
		got := applyTo(t, oldLines, ParseTextDiff(patch))
		if strings.Join(got, "\n") != strings.Join(newLines, "\n") {
			t.Fatalf("apply mismatch:\nold=%v\nnew=%v\ngot=%v\npatch:\n%s", oldLines, newLines, got, patch)
		}
	})
}

func TestFormatPatchPartialSelectionConsistent(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		oldLines := rapid.SliceOfN(rapid.SampledFrom(fixtureWords), 1, 8).Draw(t, "old")
		newLines := rapid.SliceOfN(rapid.SampledFrom(fixtureWords), 1, 8).Draw(t, "new")

		raw, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
			A:        difflib.SplitLines(strings.Join(oldLines, "\n") + "\n"),
			B:        difflib.SplitLines(strings.Join(newLines, "\n") + "\n"),
			FromFile: "a/file.txt",
			ToFile:   "b/file.txt",
			Context:  3,
		})
		if err != nil {
			t.Fatal(err)
		}
		diff := ParseTextDiff(raw)
		if len(diff.Hunks) == 0 {
			return
		}

		sel := NewDiffSelection()
		any := false
		for _, hunk := range diff.Hunks {
			for _, line := range hunk.Lines {
				if line.Kind != DiffLineAdd && line.Kind != DiffLineDelete {
					continue
				}
				if rapid.Bool().Draw(t, "pick") {
					sel.Set(line.OriginalLineNumber, true)
					any = true
				}
			}
		}

		patch, err := FormatPatch(modifiedFile("file.txt"), diff, sel)
		if !any {
			if !errors.Is(err, ErrNoChangesToFormat) {
				t.Fatalf("err = %v, want ErrNoChangesToFormat for empty selection", err)
			}
			return
		}
		if err != nil {
			t.Fatal(err)
		}

		// Recomputed hunk headers must agree with the emitted bodies.
		for _, hunk := range ParseTextDiff(patch).Hunks {
			if !hunkComplete(&hunk) {
				t.Fatalf("inconsistent hunk in:\n%s", patch)
			}
		}
	})
}
