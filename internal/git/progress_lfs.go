package git

import (
	"regexp"
	"strconv"
)

// LFSTransfer is the aggregate state of a large-file-storage transfer after
// interpreting one more progress line.
type LFSTransfer struct {
	Direction        string
	TransferredBytes int64
	TotalBytes       int64
	Percent          float64
	DoneFiles        int
	EstimatedFiles   int
	CurrentFile      string
}

type lfsFileProgress struct {
	transferred int64
	total       int64
	done        bool
}

// LFSTransferParser decodes the line stream git-lfs writes to its progress
// file: "<direction> <doneCount>/<estimatedCount> <bytes>/<totalBytes>
// <name>". Files are never removed from the tracking map, so the aggregate
// denominator only grows over the life of one transfer.
type LFSTransferParser struct {
	files          map[string]*lfsFileProgress
	estimatedFiles int
}

func NewLFSTransferParser() *LFSTransferParser {
	return &LFSTransferParser{files: make(map[string]*lfsFileProgress)}
}

var lfsLineRe = regexp.MustCompile(`^(download|upload|checkout) (\d+)/(\d+) (\d+)/(\d+) (.+)$`)

// Parse interprets one progress line, updating the per-file map and
// recomputing the aggregate. Lines that are not LFS progress report ok=false.
func (p *LFSTransferParser) Parse(line string) (LFSTransfer, bool) {
	m := lfsLineRe.FindStringSubmatch(line)
	if m == nil {
		return LFSTransfer{}, false
	}
	estimated, _ := strconv.Atoi(m[3])
	transferred, _ := strconv.ParseInt(m[4], 10, 64)
	total, _ := strconv.ParseInt(m[5], 10, 64)
	name := m[6]

	file, ok := p.files[name]
	if !ok {
		file = &lfsFileProgress{}
		p.files[name] = file
	}
	file.transferred = transferred
	file.total = total
	file.done = total > 0 && transferred >= total
	if estimated > p.estimatedFiles {
		p.estimatedFiles = estimated
	}

	out := LFSTransfer{
		Direction:      m[1],
		EstimatedFiles: p.estimatedFiles,
		CurrentFile:    name,
	}
	for _, f := range p.files {
		out.TransferredBytes += f.transferred
		out.TotalBytes += f.total
		if f.done {
			out.DoneFiles++
		}
	}
	if out.TotalBytes > 0 {
		out.Percent = float64(out.TransferredBytes) / float64(out.TotalBytes)
	}
	return out, true
}
