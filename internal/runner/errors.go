package runner

import "errors"

var ErrRunInProgress = errors.New("another tagger run holds the lock")
