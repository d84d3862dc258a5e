package git

import (
	"fmt"
	"strings"
)

// DiffLineType classifies one line of a unified diff.
type DiffLineType uint8

const (
	DiffLineContext DiffLineType = iota
	DiffLineAdd
	DiffLineDelete
	// DiffLineHunk is the "@@ ... @@" marker line itself.
	DiffLineHunk
)

// DiffLine is one line of a hunk. Text retains the leading marker character
// so a line can be re-emitted (or demoted to context) verbatim.
type DiffLine struct {
	Text string
	Kind DiffLineType

	// 1-based positions in the old and new file; 0 when the line does not
	// exist on that side.
	OldLineNumber int
	NewLineNumber int

	// OriginalLineNumber is the line's absolute index into the unified diff,
	// counting hunk marker lines. Selections address lines by this index.
	OriginalLineNumber int

	// NoTrailingNewline marks the last line of a file that ends without a
	// newline; any reconstructed patch must emit the literal
	// "\ No newline at end of file" marker directly after it.
	NoTrailingNewline bool
}

// Content returns the line text without its marker character.
func (l DiffLine) Content() string {
	if len(l.Text) == 0 {
		return ""
	}
	return l.Text[1:]
}

// DiffHunkHeader carries the line spans of one hunk.
type DiffHunkHeader struct {
	OldStartLine int
	OldLineCount int
	NewStartLine int
	NewLineCount int
	// SectionHeading is the optional function context after the second @@.
	SectionHeading string
}

// String renders the header in conventional unified-diff form, eliding a
// count suffix when the count is exactly one.
func (h DiffHunkHeader) String() string {
	var b strings.Builder
	b.WriteString("@@ -")
	writeRange(&b, h.OldStartLine, h.OldLineCount)
	b.WriteString(" +")
	writeRange(&b, h.NewStartLine, h.NewLineCount)
	b.WriteString(" @@")
	if h.SectionHeading != "" {
		b.WriteByte(' ')
		b.WriteString(h.SectionHeading)
	}
	return b.String()
}

func writeRange(b *strings.Builder, start, count int) {
	if count == 1 {
		fmt.Fprintf(b, "%d", start)
		return
	}
	fmt.Fprintf(b, "%d,%d", start, count)
}

// DiffHunk is one contiguous changed region of a unified diff.
type DiffHunk struct {
	Header DiffHunkHeader
	Lines  []DiffLine
}

// TextDiff is the hunk-structured model of one file's unified diff.
type TextDiff struct {
	Hunks []DiffHunk
}

// DiffSelection is a sparse per-line inclusion mask over a diff, keyed by
// absolute diff line index. Unset lines are excluded.
type DiffSelection struct {
	included map[int]bool
}

func NewDiffSelection() *DiffSelection {
	return &DiffSelection{included: make(map[int]bool)}
}

// Set marks the line at the given absolute index as included or excluded.
func (s *DiffSelection) Set(index int, included bool) {
	if included {
		s.included[index] = true
	} else {
		delete(s.included, index)
	}
}

// IsSelected reports whether the line at the given absolute index is
// included.
func (s *DiffSelection) IsSelected(index int) bool {
	if s == nil {
		return false
	}
	return s.included[index]
}

// NoneSelected reports whether the selection includes no lines at all.
func (s *DiffSelection) NoneSelected() bool {
	return s == nil || len(s.included) == 0
}

// AllSelected reports whether every changed (add or delete) line of the diff
// is included.
func (s *DiffSelection) AllSelected(diff *TextDiff) bool {
	for _, hunk := range diff.Hunks {
		for _, line := range hunk.Lines {
			if line.Kind != DiffLineAdd && line.Kind != DiffLineDelete {
				continue
			}
			if !s.IsSelected(line.OriginalLineNumber) {
				return false
			}
		}
	}
	return true
}

// SelectAll includes every changed line of the diff.
func (s *DiffSelection) SelectAll(diff *TextDiff) {
	for _, hunk := range diff.Hunks {
		for _, line := range hunk.Lines {
			if line.Kind == DiffLineAdd || line.Kind == DiffLineDelete {
				s.Set(line.OriginalLineNumber, true)
			}
		}
	}
}
