package git

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

// ProgressStep is one named phase of a git operation with its relative
// weight. Weights are rescaled at parser construction so they sum to 1.
type ProgressStep struct {
	Title  string
	Weight float64
}

// ProgressKind discriminates progress updates from opaque context lines.
type ProgressKind uint8

const (
	// ProgressContext is a line that carried no progress information; the
	// reported percent is the last one computed.
	ProgressContext ProgressKind = iota
	// ProgressUpdate is a line that advanced the overall percentage.
	ProgressUpdate
)

// Progress is one interpreted line of a git progress stream.
type Progress struct {
	Kind    ProgressKind
	Percent float64 // overall completion across all steps, 0..1

	// Set for updates only.
	Title string
	Value int
	Total int // 0 when the line carried a bare value
	Done  bool

	Text string // the raw line
}

// ErrNoProgressSteps is returned when a parser is constructed without steps;
// this is a programmer error, not a runtime data error.
var ErrNoProgressSteps = errors.New("progress parser requires at least one step")

// StepProgressParser accumulates a weighted overall percentage from the
// per-phase progress lines git writes to stderr. One parser serves exactly
// one streaming operation; it is not safe for concurrent use.
type StepProgressParser struct {
	steps []ProgressStep

	// stepIndex only moves forward. Once a later phase has been seen, lines
	// matching an earlier phase's title are context, not a regression.
	stepIndex   int
	lastPercent float64
}

// NewStepProgressParser builds a parser over the ordered phases of one git
// operation.
func NewStepProgressParser(steps []ProgressStep) (*StepProgressParser, error) {
	if len(steps) == 0 {
		return nil, ErrNoProgressSteps
	}
	var sum float64
	for _, step := range steps {
		sum += step.Weight
	}
	if sum <= 0 {
		return nil, ErrNoProgressSteps
	}
	normalized := make([]ProgressStep, len(steps))
	for i, step := range steps {
		normalized[i] = ProgressStep{Title: step.Title, Weight: step.Weight / sum}
	}
	return &StepProgressParser{steps: normalized}, nil
}

// Parse interprets a single line of stderr output. Lines that are not
// progress for a current or later phase are echoed back as context carrying
// the last computed percent.
func (p *StepProgressParser) Parse(line string) Progress {
	info, ok := parseProgressLine(line)
	if !ok {
		return p.context(line)
	}
	for i := p.stepIndex; i < len(p.steps); i++ {
		step := p.steps[i]
		if step.Title != info.title {
			continue
		}
		// Every phase before this one counts as fully complete, whether or
		// not its lines were ever observed.
		var percent float64
		for j := 0; j < i; j++ {
			percent += p.steps[j].Weight
		}
		switch {
		case info.done:
			percent += step.Weight
		case info.total > 0:
			percent += step.Weight * float64(info.value) / float64(info.total)
		}
		if percent < p.lastPercent {
			percent = p.lastPercent
		}
		p.stepIndex = i
		p.lastPercent = percent
		return Progress{
			Kind:    ProgressUpdate,
			Percent: percent,
			Title:   info.title,
			Value:   info.value,
			Total:   info.total,
			Done:    info.done,
			Text:    line,
		}
	}
	return p.context(line)
}

func (p *StepProgressParser) context(line string) Progress {
	return Progress{Kind: ProgressContext, Percent: p.lastPercent, Text: line}
}

type progressInfo struct {
	title string
	value int
	total int
	done  bool
}

var progressValueRe = regexp.MustCompile(`^(\d+)% \((\d+)/(\d+)\)$`)

// parseProgressLine splits a line into title and value segments. The title
// boundary is the first ": " that yields a parsable value segment; phase
// titles such as "remote: Compressing objects" contain the delimiter
// themselves, so the scan keeps extending the title until something parses.
func parseProgressLine(line string) (progressInfo, bool) {
	for from := 0; ; {
		idx := strings.Index(line[from:], ": ")
		if idx < 0 {
			return progressInfo{}, false
		}
		boundary := from + idx
		if info, ok := parseProgressValue(line[:boundary], line[boundary+2:]); ok {
			return info, true
		}
		from = boundary + 2
	}
}

func parseProgressValue(title, remainder string) (progressInfo, bool) {
	if remainder == "" {
		return progressInfo{}, false
	}
	segments := strings.Split(remainder, ",")
	first := strings.TrimSpace(segments[0])
	info := progressInfo{title: title}
	if m := progressValueRe.FindStringSubmatch(first); m != nil {
		info.value = atoi(m[2])
		info.total = atoi(m[3])
	} else if isDigits(first) {
		info.value = atoi(first)
	} else {
		return progressInfo{}, false
	}
	if strings.TrimSpace(segments[len(segments)-1]) == "done." {
		info.done = true
	}
	return info, true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
