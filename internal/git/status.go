package git

import (
	"log/slog"
	"regexp"
	"strings"
)

// Record shapes of `git status --porcelain=v2 -z`. The -z stream separates
// every field group with NUL, so an individual token never contains one.
var (
	// 1 <XY> <sub> <mH> <mI> <mW> <hH> <hI> <path>
	ordinaryEntryRe = regexp.MustCompile(`^1 ([MTADRCU?!.]{2}) (N\.\.\.|S[C.][M.][U.]) (\d+) (\d+) (\d+) ([0-9a-f]+) ([0-9a-f]+) ([\s\S]*?)$`)
	// 2 <XY> <sub> <mH> <mI> <mW> <hH> <hI> <X><score> <path>
	renamedEntryRe = regexp.MustCompile(`^2 ([MTADRCU?!.]{2}) (N\.\.\.|S[C.][M.][U.]) (\d+) (\d+) (\d+) ([0-9a-f]+) ([0-9a-f]+) ([RC]\d+) ([\s\S]*?)$`)
	// u <XY> <sub> <m1> <m2> <m3> <mW> <h1> <h2> <h3> <path>
	unmergedEntryRe = regexp.MustCompile(`^u ([DAU]{2}) (N\.\.\.|S[C.][M.][U.]) (\d+) (\d+) (\d+) (\d+) ([0-9a-f]+) ([0-9a-f]+) ([0-9a-f]+) ([\s\S]*?)$`)
)

// ParsePorcelainStatus decodes a NUL-delimited porcelain v2 status stream
// into headers and entries, in stream order.
//
// Rename and copy records put the old path in a separate NUL token directly
// after the record, so the tokenizer reads two tokens for them; see
// parseRenamedEntry. A token that fails its expected shape is skipped with a
// diagnostic, since one malformed record should not abort the rest of the
// stream. Ignored-file records ('!') are dropped entirely.
func ParsePorcelainStatus(output string) []StatusItem {
	var items []StatusItem
	tokens := strings.Split(output, "\x00")
	for i := 0; i < len(tokens); i++ {
		token := tokens[i]
		if token == "" {
			continue
		}
		if strings.HasPrefix(token, "# ") {
			items = append(items, StatusItem{Header: &StatusHeader{Value: token[2:]}})
			continue
		}
		switch token[0] {
		case '1':
			if entry := parseOrdinaryEntry(token); entry != nil {
				items = append(items, StatusItem{Entry: entry})
			}
		case '2':
			// The old path is the next NUL token; consume it together
			// with the record.
			var oldPath string
			if i+1 < len(tokens) {
				i++
				oldPath = tokens[i]
			}
			if entry := parseRenamedEntry(token, oldPath); entry != nil {
				items = append(items, StatusItem{Entry: entry})
			}
		case 'u':
			if entry := parseUnmergedEntry(token); entry != nil {
				items = append(items, StatusItem{Entry: entry})
			}
		case '?':
			if len(token) > 2 && token[1] == ' ' {
				items = append(items, StatusItem{Entry: &StatusEntry{
					StatusCode:    "??",
					SubmoduleCode: "N...",
					Path:          token[2:],
				}})
			} else {
				slog.Debug("malformed untracked status entry", slog.String("token", token))
			}
		case '!':
			// Ignored files are never surfaced.
		default:
			slog.Debug("unknown status token", slog.String("token", token))
		}
	}
	return items
}

func parseOrdinaryEntry(token string) *StatusEntry {
	m := ordinaryEntryRe.FindStringSubmatch(token)
	if m == nil {
		slog.Debug("malformed ordinary status entry", slog.String("token", token))
		return nil
	}
	return &StatusEntry{
		StatusCode:    m[1],
		SubmoduleCode: m[2],
		Path:          m[8],
	}
}

func parseRenamedEntry(token, oldPath string) *StatusEntry {
	m := renamedEntryRe.FindStringSubmatch(token)
	if m == nil {
		slog.Debug("malformed rename status entry", slog.String("token", token))
		return nil
	}
	if oldPath == "" {
		slog.Debug("rename status entry without old path", slog.String("token", token))
		return nil
	}
	return &StatusEntry{
		StatusCode:    m[1],
		SubmoduleCode: m[2],
		Path:          m[9],
		OldPath:       oldPath,
	}
}

func parseUnmergedEntry(token string) *StatusEntry {
	m := unmergedEntryRe.FindStringSubmatch(token)
	if m == nil {
		slog.Debug("malformed unmerged status entry", slog.String("token", token))
		return nil
	}
	return &StatusEntry{
		StatusCode:    m[1],
		SubmoduleCode: m[2],
		Path:          m[10],
	}
}
