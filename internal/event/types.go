package event

// Config describes the Gerrit instance notifications come from.
type Config struct {
	GerritURL      string // used to build change URLs from a change number
	PrimaryProject string
}

// Field names, header spelling first. Mail headers carry X-Gerrit-*, the mail
// footer and webhook payloads carry Gerrit-*.
var (
	ProjectFields     = []string{"X-Gerrit-Project", "Gerrit-Project"}
	MessageTypeFields = []string{"X-Gerrit-MessageType", "Gerrit-MessageType"}
	BranchFields      = []string{"X-Gerrit-Branch", "Gerrit-Branch"}
	ChangeURLFields   = []string{"X-Gerrit-ChangeURL", "Gerrit-ChangeURL"}
	ChangeNumFields   = []string{"X-Gerrit-Change-Number", "Gerrit-Change-Number"}
	BugFields         = []string{"Bug", "Closes", "Task"}
)

const (
	MessageTypeMerged = "merged"

	// LegacyBugOffset maps Bugzilla bug numbers onto task numbers.
	LegacyBugOffset = 2000
)

// Skip reasons.
const (
	SkipNotWatchedFormat = "Project %s is not being watched"
	SkipNotMerged        = "Not a merge email"
	SkipNoTask           = "No Task ID (Bug, Closes or Task)"
)
