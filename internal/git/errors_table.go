package git

import "regexp"

type errorRule struct {
	re   *regexp.Regexp
	kind ErrorKind
}

// errorRules is evaluated top to bottom and the first match wins, so rules
// whose pattern is a superset of a later one must come first. In particular
// the HTTPS authentication rule precedes the bare SSH one, and the GH###
// remote rejection rules are ordered by their numeric code with the more
// specific GH006 messages before the generic protected-branch ones.
var errorRules = []errorRule{
	{regexp.MustCompile(`ERROR: ([\s\S]+?)\n+\[EPOLICYKEYAGE\]\n+fatal: Could not read from remote repository\.`), SSHKeyAuditUnverified},
	{regexp.MustCompile(`fatal: Authentication failed for 'https://`), HTTPSAuthenticationFailed},
	{regexp.MustCompile(`fatal: Authentication failed`), SSHAuthenticationFailed},
	{regexp.MustCompile(`fatal: Could not read from remote repository\.`), SSHPermissionDenied},
	{regexp.MustCompile(`fatal: [Tt]he remote end hung up unexpectedly`), RemoteDisconnection},
	{regexp.MustCompile(`Cloning into '.+'\.\.\.\nfatal: unable to access '.+': Could not resolve host: (.+)`), HostDown},
	{regexp.MustCompile(`Resolve all conflicts manually, mark them as resolved with`), RebaseConflicts},
	{regexp.MustCompile(`(Merge conflict|Automatic merge failed; fix conflicts and then commit the result)`), MergeConflicts},
	{regexp.MustCompile(`fatal: repository '(.+)' not found`), HTTPSRepositoryNotFound},
	{regexp.MustCompile(`ERROR: Repository not found`), SSHRepositoryNotFound},
	{regexp.MustCompile(`Updates were rejected because the tip of your current branch is behind`), PushNotFastForward},
	{regexp.MustCompile(`error: unable to delete '(.+)': remote ref does not exist`), BranchDeletionFailed},
	{regexp.MustCompile(`\[remote rejected\] (.+) \(deletion of the current branch prohibited\)`), DefaultBranchDeletionFailed},
	{regexp.MustCompile(`error: could not revert .*\nhint: after resolving the conflicts, mark the corrected paths\nhint: with 'git add <paths>' or 'git rm <paths>'\nhint: and commit the result with 'git commit'`), RevertConflicts},
	{regexp.MustCompile(`Applying: .*\nNo changes - did you forget to use 'git add'\?\nIf there is nothing left to stage, chances are that something else`), EmptyRebasePatch},
	{regexp.MustCompile(`There are no candidates for (rebasing|merging) among the refs that you just fetched\.`), NoMatchingRemoteBranch},
	{regexp.MustCompile(`Your configuration specifies to merge with the ref '(.+)'\nfrom the remote, but no such ref was fetched\.`), NoExistingRemoteBranch},
	{regexp.MustCompile(`nothing to commit`), NothingToCommit},
	{regexp.MustCompile(`No submodule mapping found in \.gitmodules for path '(.+)'`), NoSubmoduleMapping},
	{regexp.MustCompile(`fatal: repository '(.+)' does not exist\nfatal: clone of '.+' into submodule path '(.+)' failed`), SubmoduleRepositoryDoesNotExist},
	{regexp.MustCompile(`Fetched in submodule path '(.+)', but it did not contain (.+)\. Direct fetching of that commit failed\.`), InvalidSubmoduleSHA},
	{regexp.MustCompile(`fatal: could not create work tree dir '(.+)'.*: Permission denied`), LocalPermissionDenied},
	{regexp.MustCompile(`merge: (.+) - not something we can merge`), InvalidMerge},
	{regexp.MustCompile(`invalid upstream (.+)`), InvalidRebase},
	{regexp.MustCompile(`fatal: Non-fast-forward commit does not make sense into an empty head`), NonFastForwardMergeIntoEmptyHead},
	{regexp.MustCompile(`error: (.+): (patch does not apply|already exists in working directory)`), PatchDoesNotApply},
	{regexp.MustCompile(`fatal: [Aa] branch named '(.+)' already exists.?`), BranchAlreadyExists},
	{regexp.MustCompile(`fatal: bad revision '(.*)'`), BadRevision},
	{regexp.MustCompile(`fatal: not a git repository \(or any of the parent directories\)`), NotAGitRepository},
	{regexp.MustCompile(`fatal: refusing to merge unrelated histories`), CannotMergeUnrelatedHistories},
	{regexp.MustCompile(`The .+ attribute should be .+ but is .+`), LFSAttributeDoesNotMatch},
	{regexp.MustCompile(`fatal: Branch rename failed`), BranchRenameFailed},
	{regexp.MustCompile(`fatal: path '(.+)' does not exist .+`), PathDoesNotExist},
	{regexp.MustCompile(`fatal: invalid object name '(.+)'\.`), InvalidObjectName},
	{regexp.MustCompile(`fatal: .+: '(.+)' is outside repository`), OutsideRepository},
	{regexp.MustCompile(`Another git process seems to be running in this repository, e\.g\.`), LockFileAlreadyExists},
	{regexp.MustCompile(`fatal: There is no merge to abort`), NoMergeToAbort},
	{regexp.MustCompile(`error: (?:Your local changes to the following|The following untracked working tree) files would be overwritten by checkout:`), LocalChangesOverwritten},
	{regexp.MustCompile(`You must edit all merge conflicts and then\nmark them as resolved using git add|fatal: Exiting because of an unresolved conflict`), UnresolvedConflicts},
	{regexp.MustCompile(`error: gpg failed to sign the data`), GPGFailedToSignData},
	{regexp.MustCompile(`CONFLICT \(modify/delete\): (.+) deleted in (.+) and modified in (.+)`), ConflictModifiedDeletedFile},
	{regexp.MustCompile(`fatal: mainline was specified but commit (.+) is not a merge`), MergeCommitNoMainlineOption},
	{regexp.MustCompile(`fatal: detected dubious ownership in repository at (.+)`), UnsafeDirectory},
	{regexp.MustCompile(`fatal: path '(.+)' exists on disk, but not in '(.+)'`), PathExistsButNotInRef},
	{regexp.MustCompile(`error: GH001: `), PushWithFileSizeExceedingLimit},
	{regexp.MustCompile(`error: GH002: `), HexBranchNameRejected},
	{regexp.MustCompile(`error: GH003: Sorry, force-pushing to (.+) is not allowed\.`), ForcePushRejected},
	{regexp.MustCompile(`error: GH005: Sorry, refs longer than (.+) bytes are not allowed`), InvalidRefLength},
	{regexp.MustCompile(`error: GH006: Protected branch update failed for (.+)\nremote: error: At least 1 approving review is required`), ProtectedBranchRequiresReview},
	{regexp.MustCompile(`error: GH006: Protected branch update failed for (.+)\nremote: error: Cannot force-push to a protected branch`), ProtectedBranchForcePush},
	{regexp.MustCompile(`error: GH006: Protected branch update failed for (.+)\nremote: error: Cannot delete a protected branch`), ProtectedBranchDeleteRejected},
	{regexp.MustCompile(`error: GH006: Protected branch update failed for (.+)\nremote: error: Required status check "(.+)" is expected`), ProtectedBranchRequiredStatus},
	{regexp.MustCompile(`error: GH007: Your push would publish a private email address\.`), PushWithPrivateEmail},
}
