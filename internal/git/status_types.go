package git

// EntryState is the raw one-letter state of one side (index or working tree)
// of a porcelain status code.
type EntryState byte

const (
	StateUnchanged EntryState = '.'
	StateModified  EntryState = 'M'
	StateAdded     EntryState = 'A'
	StateDeleted   EntryState = 'D'
	StateRenamed   EntryState = 'R'
	StateCopied    EntryState = 'C'
	StateUnmerged  EntryState = 'U'
	StateUntracked EntryState = '?'
	StateUnknown   EntryState = 0
)

// FileStatusKind discriminates the FileStatus union.
type FileStatusKind uint8

const (
	// StatusOrdinary is a plain added/modified/deleted change.
	StatusOrdinary FileStatusKind = iota
	// StatusRenamedOrCopied carries its old path on the enclosing entry.
	StatusRenamedOrCopied
	// StatusUntracked is a file not yet known to the index.
	StatusUntracked
	// StatusConflicted is a text conflict resolvable via in-file markers.
	StatusConflicted
	// StatusManualConflict is a conflict with no markers to resolve, such as
	// a file deleted on one side and modified on the other.
	StatusManualConflict
)

// OrdinaryType is the overall shape of an ordinary change.
type OrdinaryType uint8

const (
	OrdinaryAdded OrdinaryType = iota
	OrdinaryModified
	OrdinaryDeleted
)

// ManualConflict records what each side of a manual conflict did. Us is the
// local side, Them the side being merged in.
type ManualConflict struct {
	Us   EntryState
	Them EntryState
}

// SubmoduleStatus carries the three flags of a porcelain submodule sub-code.
type SubmoduleStatus struct {
	CommitChanged    bool
	ModifiedChanges  bool
	UntrackedChanges bool
}

// FileStatus is the decoded meaning of a status code: a tagged union over
// ordinary changes, renames/copies, untracked files and the two conflict
// shapes. Only the fields relevant to Kind are populated.
type FileStatus struct {
	Kind FileStatusKind

	// Ordinary and renamed/copied changes.
	Type        OrdinaryType
	Index       EntryState
	WorkingTree EntryState

	// StatusConflicted: number of conflict markers found in the file.
	// Populated by the caller, which owns file access.
	MarkerCount int

	// StatusManualConflict only.
	Conflict ManualConflict

	Submodule *SubmoduleStatus
}

// StatusHeader is a "# "-prefixed line of the porcelain stream. The value is
// kept opaque; interpreting branch headers is the caller's concern.
type StatusHeader struct {
	Value string
}

// StatusEntry is one decoded file record of the porcelain stream.
type StatusEntry struct {
	// StatusCode is the raw 2-character code, "??" for untracked files.
	StatusCode string
	// SubmoduleCode is the raw 4-character submodule field ("N..." when the
	// entry is not a submodule).
	SubmoduleCode string
	Path          string
	// OldPath is set for renames and copies.
	OldPath string
}

// FileStatus maps the entry's raw codes to their decoded meaning.
func (e *StatusEntry) FileStatus() FileStatus {
	return mapStatus(e.StatusCode, e.SubmoduleCode)
}

// StatusItem is one token of the porcelain stream: a header or an entry,
// never both.
type StatusItem struct {
	Header *StatusHeader
	Entry  *StatusEntry
}
