package runner

import (
	"strings"
	"testing"
)

func TestExitErrorMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  ExitError
		want string
	}{
		{
			name: "stderr preferred",
			err: ExitError{
				Args:   []string{"status"},
				Result: Result{Stderr: "fatal: boom\n", Stdout: "ignored", ExitCode: 128},
			},
			want: "git status: exit status 128: fatal: boom",
		},
		{
			name: "stdout fallback",
			err: ExitError{
				Args:   []string{"merge", "topic"},
				Result: Result{Stdout: "Automatic merge failed\n", ExitCode: 1},
			},
			want: "git merge topic: exit status 1: Automatic merge failed",
		},
		{
			name: "no output",
			err: ExitError{
				Args:   []string{"fetch"},
				Result: Result{ExitCode: 1},
			},
			want: "git fetch: exit status 1",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := tc.err.Error(); got != tc.want {
				t.Errorf("Error() = %q, want %q", got, tc.want)
			}
		})
	}
}

func scanAll(t *testing.T, input string) []string {
	t.Helper()
	var lines []string
	data := []byte(input)
	for {
		atEOF := true
		advance, token, err := scanProgressLines(data, atEOF)
		if err != nil {
			t.Fatal(err)
		}
		if advance == 0 && token == nil {
			break
		}
		lines = append(lines, string(token))
		data = data[advance:]
		if len(data) == 0 {
			break
		}
	}
	return lines
}

func TestScanProgressLines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "lf lines",
			input: "one\ntwo\n",
			want:  []string{"one", "two"},
		},
		{
			name:  "cr rewrites",
			input: "Receiving objects: 10%\rReceiving objects: 50%\rReceiving objects: 100%, done.\n",
			want:  []string{"Receiving objects: 10%", "Receiving objects: 50%", "Receiving objects: 100%, done."},
		},
		{
			name:  "crlf pair is one boundary",
			input: "one\r\ntwo\n",
			want:  []string{"one", "two"},
		},
		{
			name:  "trailing text without newline",
			input: "one\npartial",
			want:  []string{"one", "partial"},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := scanAll(t, tc.input)
			if strings.Join(got, "|") != strings.Join(tc.want, "|") {
				t.Errorf("scan %q = %v, want %v", tc.input, got, tc.want)
			}
		})
	}
}

func TestScanProgressLinesHoldsTrailingCR(t *testing.T) {
	t.Parallel()

	// A CR at the end of the buffer may be half of a CRLF; without EOF the
	// splitter must ask for more data.
	advance, token, err := scanProgressLines([]byte("line\r"), false)
	if err != nil {
		t.Fatal(err)
	}
	if advance != 0 || token != nil {
		t.Errorf("got advance %d token %q, want request for more data", advance, token)
	}

	// At EOF the same bytes are a complete line.
	advance, token, err = scanProgressLines([]byte("line\r"), true)
	if err != nil {
		t.Fatal(err)
	}
	if advance != 5 || string(token) != "line" {
		t.Errorf("got advance %d token %q, want 5 %q", advance, token, "line")
	}
}

func TestRunnerRequiresRoot(t *testing.T) {
	t.Parallel()

	var r *Runner
	if _, err := r.Run(t.Context(), "status"); err == nil {
		t.Error("nil runner did not fail")
	}
	if got := r.Root(); got != "" {
		t.Errorf("nil runner Root() = %q", got)
	}
	empty := &Runner{}
	if _, err := empty.Run(t.Context(), "status"); err == nil {
		t.Error("runner without root did not fail")
	}
}
