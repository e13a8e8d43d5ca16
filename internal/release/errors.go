package release

import "errors"

var (
	ErrNotWMFVersion = errors.New("not a wmf branch version")
)
