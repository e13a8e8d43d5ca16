package model

import "fmt"

// TaskRef identifies a task in the issue tracker (T1234 -> 1234).
type TaskRef int

func (t TaskRef) String() string {
	return fmt.Sprintf("T%d", int(t))
}

// TagSlug is the human readable key of a release tag, e.g. "mw1.35.0-wmf.15".
type TagSlug string

// TagIdentifier is the tracker's opaque id for a tag, e.g. "PHID-PROJ-...".
type TagIdentifier string

// TaskState is the tag set a task currently carries.
type TaskState struct {
	Task TaskRef
	Tags []TagIdentifier
}

// HasTag reports whether the task already carries id.
func (s TaskState) HasTag(id TagIdentifier) bool {
	for _, t := range s.Tags {
		if t == id {
			return true
		}
	}
	return false
}
