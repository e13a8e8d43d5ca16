package branch

// Config selects how master is resolved.
type Config struct {
	PrimaryProject       string // the project that also gets REL suggestions
	SuggestReleaseBranch bool
}

const (
	// MasterBranch is the symbolic trunk branch.
	MasterBranch = "master"

	headsPrefix = "refs/heads/"
)
