package event

import (
	"regexp"
	"strconv"

	"release-tagger/internal/model"
)

var (
	taskRe = regexp.MustCompile(`T(\d+)`)
	bugRe  = regexp.MustCompile(`\d+`)
)

// ParseTaskRef extracts the first task reference from a Bug/Closes/Task value.
// "T1234" and "Bug: T1234, T1235" give 1234; a bare legacy bug number "1234"
// gives 1234+LegacyBugOffset.
func ParseTaskRef(s string) (model.TaskRef, error) {
	// A T reference always wins; T0 is not a task and must not fall back to
	// the legacy number.
	if m := taskRe.FindStringSubmatch(s); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil || n <= 0 {
			return 0, &TaskParseError{Input: s}
		}
		return model.TaskRef(n), nil
	}

	if m := bugRe.FindString(s); m != "" {
		if n, err := strconv.Atoi(m); err == nil {
			return model.TaskRef(n + LegacyBugOffset), nil
		}
	}

	return 0, &TaskParseError{Input: s}
}
