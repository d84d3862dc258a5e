package git

import (
	"fmt"
	"math"
	"testing"

	"pgregory.net/rapid"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestNewStepProgressParserRejectsBadSteps(t *testing.T) {
	t.Parallel()

	if _, err := NewStepProgressParser(nil); err != ErrNoProgressSteps {
		t.Errorf("NewStepProgressParser(nil) err = %v, want ErrNoProgressSteps", err)
	}
	zero := []ProgressStep{{Title: "A", Weight: 0}}
	if _, err := NewStepProgressParser(zero); err != ErrNoProgressSteps {
		t.Errorf("NewStepProgressParser(zero weights) err = %v, want ErrNoProgressSteps", err)
	}
}

func TestStepProgressParserWeightedPhases(t *testing.T) {
	t.Parallel()

	parser, err := NewStepProgressParser([]ProgressStep{
		{Title: "First", Weight: 1},
		{Title: "Second", Weight: 1},
		{Title: "Third", Weight: 2},
	})
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		line        string
		wantKind    ProgressKind
		wantPercent float64
	}{
		{"First: 50% (1/2)", ProgressUpdate, 0.125},
		{"First: 100% (2/2), done.", ProgressUpdate, 0.25},
		{"Second: 100% (2/2), done.", ProgressUpdate, 0.5},
		// Halfway through the double-weighted phase: 0.5 + 0.25.
		{"Third: 50% (1/2)", ProgressUpdate, 0.75},
		{"Third: 100% (2/2), done.", ProgressUpdate, 1},
	}
	for _, tc := range tests {
		got := parser.Parse(tc.line)
		if got.Kind != tc.wantKind {
			t.Errorf("Parse(%q).Kind = %v, want %v", tc.line, got.Kind, tc.wantKind)
		}
		if !almostEqual(got.Percent, tc.wantPercent) {
			t.Errorf("Parse(%q).Percent = %v, want %v", tc.line, got.Percent, tc.wantPercent)
		}
	}
}

func TestStepProgressParserSkippedPhaseCountsComplete(t *testing.T) {
	t.Parallel()

	parser, err := NewStepProgressParser([]ProgressStep{
		{Title: "First", Weight: 1},
		{Title: "Second", Weight: 1},
	})
	if err != nil {
		t.Fatal(err)
	}

	// No lines for First ever arrive.
	got := parser.Parse("Second: 50% (1/2)")
	if got.Kind != ProgressUpdate || !almostEqual(got.Percent, 0.75) {
		t.Errorf("Parse = %+v, want update at 0.75", got)
	}
}

func TestStepProgressParserEarlierPhaseIsContext(t *testing.T) {
	t.Parallel()

	parser, err := NewStepProgressParser([]ProgressStep{
		{Title: "First", Weight: 1},
		{Title: "Second", Weight: 1},
	})
	if err != nil {
		t.Fatal(err)
	}

	parser.Parse("Second: 50% (1/2)")
	got := parser.Parse("First: 10% (1/10)")
	if got.Kind != ProgressContext {
		t.Errorf("line for a finished phase: Kind = %v, want context", got.Kind)
	}
	if !almostEqual(got.Percent, 0.75) {
		t.Errorf("context Percent = %v, want last computed 0.75", got.Percent)
	}
}

func TestStepProgressParserContextLines(t *testing.T) {
	t.Parallel()

	parser, err := NewStepProgressParser(CloneProgressSteps)
	if err != nil {
		t.Fatal(err)
	}

	for _, line := range []string{
		"Cloning into 'repo'...",
		"remote: Enumerating objects: 12, done, extra",
		"warning: something odd happened",
		"",
	} {
		got := parser.Parse(line)
		if got.Kind != ProgressContext {
			t.Errorf("Parse(%q).Kind = %v, want context", line, got.Kind)
		}
		if got.Text != line {
			t.Errorf("Parse(%q).Text = %q", line, got.Text)
		}
	}
}

func TestStepProgressParserTitleContainingDelimiter(t *testing.T) {
	t.Parallel()

	parser, err := NewStepProgressParser(CloneProgressSteps)
	if err != nil {
		t.Fatal(err)
	}

	got := parser.Parse("remote: Compressing objects: 50% (5/10)")
	if got.Kind != ProgressUpdate {
		t.Fatalf("Parse = %+v, want update", got)
	}
	if got.Title != "remote: Compressing objects" {
		t.Errorf("Title = %q", got.Title)
	}
	if got.Value != 5 || got.Total != 10 {
		t.Errorf("Value/Total = %d/%d, want 5/10", got.Value, got.Total)
	}
}

func TestStepProgressParserBareValue(t *testing.T) {
	t.Parallel()

	parser, err := NewStepProgressParser([]ProgressStep{{Title: "Counting objects", Weight: 1}})
	if err != nil {
		t.Fatal(err)
	}

	got := parser.Parse("Counting objects: 42")
	if got.Kind != ProgressUpdate {
		t.Fatalf("Parse = %+v, want update", got)
	}
	if got.Value != 42 || got.Total != 0 {
		t.Errorf("Value/Total = %d/%d, want 42/0", got.Value, got.Total)
	}
	// A bare value cannot advance the percentage, only done can.
	if !almostEqual(got.Percent, 0) {
		t.Errorf("Percent = %v, want 0", got.Percent)
	}

	got = parser.Parse("Counting objects: 100, done.")
	if !got.Done || !almostEqual(got.Percent, 1) {
		t.Errorf("done line = %+v, want done at 1", got)
	}
}

func TestStepTablesConstructParsers(t *testing.T) {
	t.Parallel()

	tables := map[string][]ProgressStep{
		"clone":    CloneProgressSteps,
		"fetch":    FetchProgressSteps,
		"pull":     PullProgressSteps,
		"push":     PushProgressSteps,
		"checkout": CheckoutProgressSteps,
		"revert":   RevertProgressSteps,
	}
	for name, steps := range tables {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			parser, err := NewStepProgressParser(steps)
			if err != nil {
				t.Fatal(err)
			}
			var sum float64
			for _, step := range parser.steps {
				if step.Weight <= 0 {
					t.Errorf("step %q has non-positive weight", step.Title)
				}
				sum += step.Weight
			}
			if !almostEqual(sum, 1) {
				t.Errorf("normalized weights sum to %v, want 1", sum)
			}
		})
	}
}

func TestStepProgressParserMonotonic(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		titles := []string{"First", "Second", "Third"}
		parser, err := NewStepProgressParser([]ProgressStep{
			{Title: titles[0], Weight: rapid.Float64Range(0.1, 10).Draw(t, "w0")},
			{Title: titles[1], Weight: rapid.Float64Range(0.1, 10).Draw(t, "w1")},
			{Title: titles[2], Weight: rapid.Float64Range(0.1, 10).Draw(t, "w2")},
		})
		if err != nil {
			t.Fatal(err)
		}

		last := 0.0
		lineCount := rapid.IntRange(1, 50).Draw(t, "lines")
		for i := 0; i < lineCount; i++ {
			title := rapid.SampledFrom(titles).Draw(t, "title")
			total := rapid.IntRange(1, 100).Draw(t, "total")
			value := rapid.IntRange(0, total).Draw(t, "value")
			pct := value * 100 / total
			line := fmt.Sprintf("%s: %d%% (%d/%d)", title, pct, value, total)
			if rapid.Bool().Draw(t, "done") {
				line += ", done."
			}
			got := parser.Parse(line)
			if got.Percent < last {
				t.Fatalf("Percent regressed from %v to %v on %q", last, got.Percent, line)
			}
			if got.Percent > 1+1e-9 {
				t.Fatalf("Percent %v exceeds 1 on %q", got.Percent, line)
			}
			last = got.Percent
		}
	})
}
