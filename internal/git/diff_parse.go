package git

import (
	"regexp"
	"strings"
)

var hunkHeaderRe = regexp.MustCompile(`^@@ -(\d+)(?:,(\d+))? \+(\d+)(?:,(\d+))? @@(?: (.*))?$`)

// ParseTextDiff builds the hunk model from the unified diff text of a single
// file. File-level headers before the first hunk are skipped; a second
// "diff --git" header ends the parse so callers feeding multi-file output
// only get the first file back.
//
// Absolute line indices start at 0 on the first hunk marker line and count
// every emitted line; the "\ No newline at end of file" marker produces no
// line of its own, it flags the line before it.
func ParseTextDiff(raw string) *TextDiff {
	diff := &TextDiff{}
	if strings.TrimSpace(raw) == "" {
		return diff
	}

	var current *DiffHunk
	index := 0
	oldNo, newNo := 0, 0

	flush := func() {
		if current != nil {
			diff.Hunks = append(diff.Hunks, *current)
			current = nil
		}
	}

	lines := strings.Split(raw, "\n")
	for i, line := range lines {
		if m := hunkHeaderRe.FindStringSubmatch(line); m != nil {
			flush()
			header := DiffHunkHeader{
				OldStartLine:   atoi(m[1]),
				OldLineCount:   atoiDefault(m[2], 1),
				NewStartLine:   atoi(m[3]),
				NewLineCount:   atoiDefault(m[4], 1),
				SectionHeading: m[5],
			}
			current = &DiffHunk{
				Header: header,
				Lines: []DiffLine{{
					Text:               line,
					Kind:               DiffLineHunk,
					OriginalLineNumber: index,
				}},
			}
			index++
			oldNo = header.OldStartLine
			newNo = header.NewStartLine
			continue
		}
		if current == nil {
			// File headers (diff --git, index, ---, +++, mode lines)
			// before the first hunk.
			continue
		}
		if strings.HasPrefix(line, "diff --git ") {
			break
		}
		if strings.HasPrefix(line, `\`) {
			current.Lines[len(current.Lines)-1].NoTrailingNewline = true
			continue
		}
		if line == "" && i == len(lines)-1 {
			break
		}

		dl := DiffLine{Text: line, OriginalLineNumber: index}
		switch {
		case strings.HasPrefix(line, "+"):
			dl.Kind = DiffLineAdd
			dl.NewLineNumber = newNo
			newNo++
		case strings.HasPrefix(line, "-"):
			dl.Kind = DiffLineDelete
			dl.OldLineNumber = oldNo
			oldNo++
		case strings.HasPrefix(line, " "):
			dl.Kind = DiffLineContext
			dl.OldLineNumber = oldNo
			dl.NewLineNumber = newNo
			oldNo++
			newNo++
		case line == "" && !hunkComplete(current):
			// A blank context line whose leading space was stripped.
			dl.Kind = DiffLineContext
			dl.Text = ""
			dl.OldLineNumber = oldNo
			dl.NewLineNumber = newNo
			oldNo++
			newNo++
		default:
			// Not part of the hunk; the hunk is over.
			flush()
			continue
		}
		current.Lines = append(current.Lines, dl)
		index++
	}
	flush()
	return diff
}

// hunkComplete reports whether the hunk has consumed every line its header
// promised on both sides.
func hunkComplete(h *DiffHunk) bool {
	var oldConsumed, newConsumed int
	for _, l := range h.Lines {
		switch l.Kind {
		case DiffLineContext:
			oldConsumed++
			newConsumed++
		case DiffLineAdd:
			newConsumed++
		case DiffLineDelete:
			oldConsumed++
		}
	}
	return oldConsumed >= h.Header.OldLineCount && newConsumed >= h.Header.NewLineCount
}

func atoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	return atoi(s)
}
