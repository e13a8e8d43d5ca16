package tracker

import (
	"errors"
	"fmt"
)

// Domain-specific errors for the issue tracker.
var (
	ErrUnknownSlug  = errors.New("unknown tag slug")
	ErrTaskNotFound = errors.New("task does not exist or is not accessible")
)

// UnknownSlugError reports a slug that has no tag registered in the tracker.
type UnknownSlugError struct {
	Slug string
}

func (e *UnknownSlugError) Error() string {
	return fmt.Sprintf("No PHID found for slug #%s!", e.Slug)
}

func (e *UnknownSlugError) Unwrap() error {
	return ErrUnknownSlug
}
