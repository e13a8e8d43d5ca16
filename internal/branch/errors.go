package branch

import "errors"

var (
	ErrNoDeploymentBranch = errors.New("no wmf deployment branch found")
	ErrNoReleaseBranch    = errors.New("no REL release branch found")
)
