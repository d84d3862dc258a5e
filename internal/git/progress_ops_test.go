package git

import "testing"

var replayCommits = []CommitSummary{
	{Sha: "1111111", Summary: "first commit"},
	{Sha: "2222222", Summary: "second commit"},
	{Sha: "3333333", Summary: "third commit"},
}

func TestRebaseProgressParser(t *testing.T) {
	t.Parallel()

	parser := NewRebaseProgressParser(replayCommits)

	got, ok := parser.Parse("Rebasing (2/3)")
	if !ok {
		t.Fatal("marker line not recognized")
	}
	want := MultiCommitProgress{Position: 2, Count: 3, Fraction: 2.0 / 3.0, Summary: "second commit"}
	if got != want {
		t.Errorf("Parse = %+v, want %+v", got, want)
	}

	if _, ok := parser.Parse("Auto-merging file.txt"); ok {
		t.Error("non-marker line recognized")
	}
}

func TestRebaseProgressParserOutOfRangeIndex(t *testing.T) {
	t.Parallel()

	parser := NewRebaseProgressParser(replayCommits)

	got, ok := parser.Parse("Rebasing (5/5)")
	if !ok {
		t.Fatal("marker line not recognized")
	}
	if got.Summary != "" {
		t.Errorf("Summary = %q, want empty for an index past the list", got.Summary)
	}
	if got.Position != 5 || got.Count != 3 {
		t.Errorf("Position/Count = %d/%d, want 5/3", got.Position, got.Count)
	}
}

func TestCherryPickProgressParser(t *testing.T) {
	t.Parallel()

	parser := NewCherryPickProgressParser(replayCommits)

	got, ok := parser.Parse("[feature 1111111] first commit")
	if !ok {
		t.Fatal("marker line not recognized")
	}
	if got.Position != 1 || got.Summary != "first commit" {
		t.Errorf("Parse = %+v, want position 1", got)
	}

	if _, ok := parser.Parse("Auto-merging file.txt"); ok {
		t.Error("non-marker line recognized")
	}

	got, ok = parser.Parse("[feature 2222222abc] second commit")
	if !ok {
		t.Fatal("marker line not recognized")
	}
	want := MultiCommitProgress{Position: 2, Count: 3, Fraction: 2.0 / 3.0, Summary: "second commit"}
	if got != want {
		t.Errorf("Parse = %+v, want %+v", got, want)
	}
}

func TestCherryPickProgressParserShortSha(t *testing.T) {
	t.Parallel()

	parser := NewCherryPickProgressParser(replayCommits)
	// Six hex characters is below the minimum abbreviation git prints.
	if _, ok := parser.Parse("[feature 123abc] too short"); ok {
		t.Error("line with a 6-character sha recognized")
	}
}
