package git

// statusCodeMap resolves exact 2-character porcelain codes. Lookup order does
// not matter here, unlike the error rule table: codes are exact keys. Codes
// absent from the map fall back to a generic modified entry so that new codes
// introduced by future git versions degrade instead of failing.
var statusCodeMap = map[string]FileStatus{
	"??": {Kind: StatusUntracked, Index: StateUntracked, WorkingTree: StateUntracked},

	".M": {Kind: StatusOrdinary, Type: OrdinaryModified, Index: StateUnchanged, WorkingTree: StateModified},
	"M.": {Kind: StatusOrdinary, Type: OrdinaryModified, Index: StateModified, WorkingTree: StateUnchanged},
	"MM": {Kind: StatusOrdinary, Type: OrdinaryModified, Index: StateModified, WorkingTree: StateModified},
	"MD": {Kind: StatusOrdinary, Type: OrdinaryDeleted, Index: StateModified, WorkingTree: StateDeleted},

	".A": {Kind: StatusOrdinary, Type: OrdinaryAdded, Index: StateUnchanged, WorkingTree: StateAdded},
	"A.": {Kind: StatusOrdinary, Type: OrdinaryAdded, Index: StateAdded, WorkingTree: StateUnchanged},
	"AM": {Kind: StatusOrdinary, Type: OrdinaryAdded, Index: StateAdded, WorkingTree: StateModified},
	"AD": {Kind: StatusOrdinary, Type: OrdinaryAdded, Index: StateAdded, WorkingTree: StateDeleted},

	".D": {Kind: StatusOrdinary, Type: OrdinaryDeleted, Index: StateUnchanged, WorkingTree: StateDeleted},
	"D.": {Kind: StatusOrdinary, Type: OrdinaryDeleted, Index: StateDeleted, WorkingTree: StateUnchanged},

	"R.": {Kind: StatusRenamedOrCopied, Type: OrdinaryModified, Index: StateRenamed, WorkingTree: StateUnchanged},
	"RM": {Kind: StatusRenamedOrCopied, Type: OrdinaryModified, Index: StateRenamed, WorkingTree: StateModified},
	"RD": {Kind: StatusRenamedOrCopied, Type: OrdinaryDeleted, Index: StateRenamed, WorkingTree: StateDeleted},
	".R": {Kind: StatusRenamedOrCopied, Type: OrdinaryModified, Index: StateUnchanged, WorkingTree: StateRenamed},
	"C.": {Kind: StatusRenamedOrCopied, Type: OrdinaryModified, Index: StateCopied, WorkingTree: StateUnchanged},
	"CM": {Kind: StatusRenamedOrCopied, Type: OrdinaryModified, Index: StateCopied, WorkingTree: StateModified},
	"CD": {Kind: StatusRenamedOrCopied, Type: OrdinaryDeleted, Index: StateCopied, WorkingTree: StateDeleted},
	".C": {Kind: StatusRenamedOrCopied, Type: OrdinaryModified, Index: StateUnchanged, WorkingTree: StateCopied},

	// Conflicts with in-file markers.
	"AA": {Kind: StatusConflicted, Index: StateAdded, WorkingTree: StateAdded},
	"UU": {Kind: StatusConflicted, Index: StateUnmerged, WorkingTree: StateUnmerged},

	// Conflicts that must be resolved manually.
	"DD": {Kind: StatusManualConflict, Conflict: ManualConflict{Us: StateDeleted, Them: StateDeleted}},
	"AU": {Kind: StatusManualConflict, Conflict: ManualConflict{Us: StateAdded, Them: StateUnmerged}},
	"UD": {Kind: StatusManualConflict, Conflict: ManualConflict{Us: StateUnmerged, Them: StateDeleted}},
	"UA": {Kind: StatusManualConflict, Conflict: ManualConflict{Us: StateUnmerged, Them: StateAdded}},
	"DU": {Kind: StatusManualConflict, Conflict: ManualConflict{Us: StateDeleted, Them: StateUnmerged}},
}

// mapStatus is a total function: every input resolves to a status. Unknown
// codes resolve to a modified entry with unknown sub-states.
func mapStatus(statusCode, submoduleCode string) FileStatus {
	status, ok := statusCodeMap[statusCode]
	if !ok {
		status = FileStatus{
			Kind:        StatusOrdinary,
			Type:        OrdinaryModified,
			Index:       StateUnknown,
			WorkingTree: StateUnknown,
		}
	}
	if sub, ok := mapSubmoduleStatus(submoduleCode); ok {
		status.Submodule = &sub
	}
	return status
}

// mapSubmoduleStatus decodes the 4-character submodule field. Only codes
// beginning with 'S' describe a submodule; anything else reports ok=false.
// The three flag positions are fixed: SCMU.
func mapSubmoduleStatus(code string) (SubmoduleStatus, bool) {
	if len(code) < 4 || code[0] != 'S' {
		return SubmoduleStatus{}, false
	}
	return SubmoduleStatus{
		CommitChanged:    code[1] == 'C',
		ModifiedChanges:  code[2] == 'M',
		UntrackedChanges: code[3] == 'U',
	}, true
}
