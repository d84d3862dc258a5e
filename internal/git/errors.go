package git

import "strings"

// ErrorKind identifies the cause of a failed git invocation, derived from the
// text the CLI printed rather than its exit code. The zero value is not a
// valid kind; Classify reports whether a kind was recognized at all.
type ErrorKind uint8

const (
	SSHKeyAuditUnverified ErrorKind = iota + 1
	HTTPSAuthenticationFailed
	SSHAuthenticationFailed
	SSHPermissionDenied
	RemoteDisconnection
	HostDown
	RebaseConflicts
	MergeConflicts
	HTTPSRepositoryNotFound
	SSHRepositoryNotFound
	PushNotFastForward
	BranchDeletionFailed
	DefaultBranchDeletionFailed
	RevertConflicts
	EmptyRebasePatch
	NoMatchingRemoteBranch
	NoExistingRemoteBranch
	NothingToCommit
	NoSubmoduleMapping
	SubmoduleRepositoryDoesNotExist
	InvalidSubmoduleSHA
	LocalPermissionDenied
	InvalidMerge
	InvalidRebase
	NonFastForwardMergeIntoEmptyHead
	PatchDoesNotApply
	BranchAlreadyExists
	BadRevision
	NotAGitRepository
	CannotMergeUnrelatedHistories
	LFSAttributeDoesNotMatch
	BranchRenameFailed
	PathDoesNotExist
	InvalidObjectName
	OutsideRepository
	LockFileAlreadyExists
	NoMergeToAbort
	LocalChangesOverwritten
	UnresolvedConflicts
	GPGFailedToSignData
	ConflictModifiedDeletedFile
	MergeCommitNoMainlineOption
	UnsafeDirectory
	PathExistsButNotInRef
	PushWithFileSizeExceedingLimit
	HexBranchNameRejected
	ForcePushRejected
	InvalidRefLength
	ProtectedBranchRequiresReview
	ProtectedBranchForcePush
	ProtectedBranchDeleteRejected
	ProtectedBranchRequiredStatus
	PushWithPrivateEmail
)

var errorKindNames = map[ErrorKind]string{
	SSHKeyAuditUnverified:           "ssh-key-audit-unverified",
	HTTPSAuthenticationFailed:       "https-authentication-failed",
	SSHAuthenticationFailed:         "ssh-authentication-failed",
	SSHPermissionDenied:             "ssh-permission-denied",
	RemoteDisconnection:             "remote-disconnection",
	HostDown:                        "host-down",
	RebaseConflicts:                 "rebase-conflicts",
	MergeConflicts:                  "merge-conflicts",
	HTTPSRepositoryNotFound:         "https-repository-not-found",
	SSHRepositoryNotFound:           "ssh-repository-not-found",
	PushNotFastForward:              "push-not-fast-forward",
	BranchDeletionFailed:            "branch-deletion-failed",
	DefaultBranchDeletionFailed:     "default-branch-deletion-failed",
	RevertConflicts:                 "revert-conflicts",
	EmptyRebasePatch:                "empty-rebase-patch",
	NoMatchingRemoteBranch:          "no-matching-remote-branch",
	NoExistingRemoteBranch:          "no-existing-remote-branch",
	NothingToCommit:                 "nothing-to-commit",
	NoSubmoduleMapping:              "no-submodule-mapping",
	SubmoduleRepositoryDoesNotExist: "submodule-repository-does-not-exist",
	InvalidSubmoduleSHA:             "invalid-submodule-sha",
	LocalPermissionDenied:           "local-permission-denied",
	InvalidMerge:                    "invalid-merge",
	InvalidRebase:                   "invalid-rebase",
	NonFastForwardMergeIntoEmptyHead: "non-fast-forward-merge-into-empty-head",
	PatchDoesNotApply:               "patch-does-not-apply",
	BranchAlreadyExists:             "branch-already-exists",
	BadRevision:                     "bad-revision",
	NotAGitRepository:               "not-a-git-repository",
	CannotMergeUnrelatedHistories:   "cannot-merge-unrelated-histories",
	LFSAttributeDoesNotMatch:        "lfs-attribute-does-not-match",
	BranchRenameFailed:              "branch-rename-failed",
	PathDoesNotExist:                "path-does-not-exist",
	InvalidObjectName:               "invalid-object-name",
	OutsideRepository:               "outside-repository",
	LockFileAlreadyExists:           "lock-file-already-exists",
	NoMergeToAbort:                  "no-merge-to-abort",
	LocalChangesOverwritten:         "local-changes-overwritten",
	UnresolvedConflicts:             "unresolved-conflicts",
	GPGFailedToSignData:             "gpg-failed-to-sign-data",
	ConflictModifiedDeletedFile:     "conflict-modified-deleted-file",
	MergeCommitNoMainlineOption:     "merge-commit-no-mainline-option",
	UnsafeDirectory:                 "unsafe-directory",
	PathExistsButNotInRef:           "path-exists-but-not-in-ref",
	PushWithFileSizeExceedingLimit:  "push-with-file-size-exceeding-limit",
	HexBranchNameRejected:           "hex-branch-name-rejected",
	ForcePushRejected:               "force-push-rejected",
	InvalidRefLength:                "invalid-ref-length",
	ProtectedBranchRequiresReview:   "protected-branch-requires-review",
	ProtectedBranchForcePush:        "protected-branch-force-push",
	ProtectedBranchDeleteRejected:   "protected-branch-delete-rejected",
	ProtectedBranchRequiredStatus:   "protected-branch-required-status",
	PushWithPrivateEmail:            "push-with-private-email",
}

func (k ErrorKind) String() string {
	if name, ok := errorKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Classify scans the output of a failed git invocation and returns the first
// matching error kind. stderr takes precedence; stdout is only consulted when
// stderr is empty. Classification never fails: text that matches no rule
// reports ok=false.
func Classify(stderr, stdout string) (ErrorKind, bool) {
	text := stderr
	if text == "" {
		text = stdout
	}
	if text == "" {
		return 0, false
	}
	for _, rule := range errorRules {
		if rule.re.MatchString(text) {
			return rule.kind, true
		}
	}
	return 0, false
}

// Describe returns a user-facing explanation for kinds that carry one.
// Kinds without copy are still detected by Classify, but callers are expected
// to supply their own message for them.
func Describe(kind ErrorKind) (string, bool) {
	desc, ok := errorDescriptions[kind]
	return desc, ok
}

var errorDescriptions = map[ErrorKind]string{
	SSHKeyAuditUnverified:          "The SSH key you used has not been verified.",
	HTTPSAuthenticationFailed:      "Authentication failed. Your credentials may be invalid or expired.",
	SSHAuthenticationFailed:        "Authentication failed. You may not have permission to access the repository or the credentials are invalid or expired.",
	SSHPermissionDenied:            "Could not read from the remote repository. Please make sure you have the correct access rights.",
	RemoteDisconnection:            "The remote disconnected. Check your Internet connection and try again.",
	HostDown:                       "The host is down. Check your Internet connection and try again.",
	RebaseConflicts:                "We found some conflicts while trying to rebase. Please resolve the conflicts before continuing.",
	MergeConflicts:                 "We found some conflicts while trying to merge. Please resolve the conflicts and commit the changes.",
	HTTPSRepositoryNotFound:        "The repository could not be found. It may have been deleted or you may not have access to it.",
	SSHRepositoryNotFound:          "The repository could not be found. It may have been deleted or you may not have access to it.",
	PushNotFastForward:             "The repository has been updated since you last pulled. Try pulling before pushing.",
	BranchDeletionFailed:           "Could not delete the branch. It was probably already deleted.",
	DefaultBranchDeletionFailed:    "The branch is the repository's default branch and cannot be deleted.",
	RevertConflicts:                "To finish reverting, please merge and commit the changes.",
	EmptyRebasePatch:               "There aren't any changes left to apply.",
	NoMatchingRemoteBranch:         "There aren't any remote branches that match the current branch.",
	NothingToCommit:                "There are no changes to commit.",
	NoSubmoduleMapping:             "A submodule was removed from .gitmodules, but the folder still exists in the repository. Delete the folder, commit the change, then try again.",
	SubmoduleRepositoryDoesNotExist: "A submodule points to a location which does not exist.",
	InvalidSubmoduleSHA:            "A submodule points to a commit which does not exist.",
	LocalPermissionDenied:          "Permission denied.",
	InvalidMerge:                   "This is not something we can merge.",
	InvalidRebase:                  "This is not something we can rebase.",
	NonFastForwardMergeIntoEmptyHead: "The merge you attempted is not a fast-forward, so it cannot be performed on an empty branch.",
	PatchDoesNotApply:              "The requested changes conflict with one or more files in the repository.",
	BranchAlreadyExists:            "A branch with that name already exists.",
	BadRevision:                    "Bad revision.",
	NotAGitRepository:              "This is not a git repository.",
	CannotMergeUnrelatedHistories:  "Unable to merge unrelated histories in this repository.",
	LFSAttributeDoesNotMatch:       "Git LFS attribute found in global Git configuration does not match the expected value.",
	BranchRenameFailed:             "The branch could not be renamed.",
	PathDoesNotExist:               "The path does not exist on disk.",
	InvalidObjectName:              "The object was not found in the Git repository.",
	OutsideRepository:              "This path is not a valid path inside the repository.",
	LockFileAlreadyExists:          "A lock file already exists in the repository, which blocks this operation from completing.",
	NoMergeToAbort:                 "There is no merge in progress, so there is nothing to abort.",
	UnsafeDirectory:                "The repository belongs to a user other than the current one.",
	ProtectedBranchForcePush:       "This branch is protected from force-push operations.",
	ProtectedBranchRequiresReview:  "This branch is protected and any changes require an approved review. Open a pull request with changes targeting this branch instead.",
	PushWithFileSizeExceedingLimit: "The push operation includes a file which exceeds the remote's file size restriction. Please remove the file from history and try again.",
	HexBranchNameRejected:          "The branch name cannot be a 40-character string of hexadecimal characters, as this is the format that Git uses for representing objects.",
	ForcePushRejected:              "The force push has been rejected for the current branch.",
	InvalidRefLength:               "A ref cannot be longer than 255 characters.",
	ProtectedBranchDeleteRejected:  "This branch cannot be deleted from the remote repository because it is marked as protected.",
	ProtectedBranchRequiredStatus:  "The push was rejected by the remote server because a required status check has not been satisfied.",
	PushWithPrivateEmail:           "Your push would publish a private email address. Configure a noreply address or allow the email to be public, then push again.",
}

// Markers emitted around each oversized-file notice in a push rejected for
// exceeding the remote's file size limit.
const (
	fileSizeLimitBegin = "remote: error: File "
	fileSizeLimitEnd   = "; this exceeds"
)

// FilesOverLimit extracts the descriptions of files that were rejected for
// exceeding the remote's size limit, one per begin/end marker pair. A marker
// count mismatch returns no results instead of guessing at the alignment.
func FilesOverLimit(text string) []string {
	begins := markerOffsets(text, fileSizeLimitBegin)
	ends := markerOffsets(text, fileSizeLimitEnd)
	if len(begins) == 0 || len(begins) != len(ends) {
		return nil
	}
	files := make([]string, 0, len(begins))
	for i := range begins {
		start := begins[i] + len(fileSizeLimitBegin)
		end := ends[i]
		if end <= start {
			return nil
		}
		files = append(files, text[start:end])
	}
	return files
}

func markerOffsets(text, marker string) []int {
	var offsets []int
	for from := 0; ; {
		idx := strings.Index(text[from:], marker)
		if idx < 0 {
			return offsets
		}
		offsets = append(offsets, from+idx)
		from += idx + len(marker)
	}
}
