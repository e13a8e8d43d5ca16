package event

import (
	"errors"
	"fmt"
)

var (
	ErrTaskParse = errors.New("could not parse task reference")
)

// TaskParseError carries the bug string that held no task reference.
type TaskParseError struct {
	Input string
}

func (e *TaskParseError) Error() string {
	return fmt.Sprintf("Could not parse bug string '%s'", e.Input)
}

func (e *TaskParseError) Unwrap() error {
	return ErrTaskParse
}
