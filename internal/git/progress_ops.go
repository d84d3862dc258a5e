package git

import (
	"regexp"
	"strings"
)

// CommitSummary identifies one commit of a fixed multi-commit operation such
// as a rebase or cherry-pick.
type CommitSummary struct {
	Sha     string
	Summary string
}

// MultiCommitProgress reports how far through a fixed commit list an
// operation has advanced.
type MultiCommitProgress struct {
	// Position is the 1-based index of the commit being applied.
	Position int
	Count    int
	Fraction float64
	// Summary is the summary line of the commit at Position, empty when the
	// reported index falls outside the known list.
	Summary string
}

var rebasingLineRe = regexp.MustCompile(`^Rebasing \((\d+)/(\d+)\)$`)

// RebaseProgressParser interprets the "Rebasing (i/n)" markers git prints
// while replaying a known list of commits.
type RebaseProgressParser struct {
	commits []CommitSummary
}

func NewRebaseProgressParser(commits []CommitSummary) *RebaseProgressParser {
	return &RebaseProgressParser{commits: commits}
}

// Parse reports progress for a rebase marker line; other lines report
// ok=false. An index outside the commit list is not fatal, it just carries no
// summary.
func (p *RebaseProgressParser) Parse(line string) (MultiCommitProgress, bool) {
	m := rebasingLineRe.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return MultiCommitProgress{}, false
	}
	position := atoi(m[1])
	return p.snapshot(position), true
}

func (p *RebaseProgressParser) snapshot(position int) MultiCommitProgress {
	out := MultiCommitProgress{Position: position, Count: len(p.commits)}
	if out.Count > 0 {
		out.Fraction = float64(position) / float64(out.Count)
	}
	if position >= 1 && position <= len(p.commits) {
		out.Summary = p.commits[position-1].Summary
	}
	return out
}

// A cherry-pick reports one "[ref sha] summary" line per commit applied.
var cherryPickedLineRe = regexp.MustCompile(`^\[(.+) ([0-9a-f]{7,40})\] `)

// CherryPickProgressParser counts the bracketed commit references git prints
// as it applies each commit of a known list.
type CherryPickProgressParser struct {
	commits  []CommitSummary
	position int
}

func NewCherryPickProgressParser(commits []CommitSummary) *CherryPickProgressParser {
	return &CherryPickProgressParser{commits: commits}
}

// Parse reports progress for a commit-applied marker line; other lines
// report ok=false.
func (p *CherryPickProgressParser) Parse(line string) (MultiCommitProgress, bool) {
	if !cherryPickedLineRe.MatchString(strings.TrimSpace(line)) {
		return MultiCommitProgress{}, false
	}
	p.position++
	out := MultiCommitProgress{Position: p.position, Count: len(p.commits)}
	if out.Count > 0 {
		out.Fraction = float64(p.position) / float64(out.Count)
	}
	if p.position <= len(p.commits) {
		out.Summary = p.commits[p.position-1].Summary
	}
	return out, true
}
