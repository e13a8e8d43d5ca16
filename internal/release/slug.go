package release

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"release-tagger/internal/model"
)

const (
	DeploymentBranchPrefix = "wmf/"
	ReleaseBranchPrefix    = "REL"

	slugPrefix = "mw"
	wmfMarker  = "-wmf."
)

var releaseBranchRe = regexp.MustCompile(`^REL(\d+)_(\d+)$`)

// ReleaseBranch is a parsed RELx_y branch name.
type ReleaseBranch struct {
	Major int
	Minor int
}

// ParseReleaseBranch parses "REL1_35" into {1, 35}.
func ParseReleaseBranch(branch string) (ReleaseBranch, bool) {
	m := releaseBranchRe.FindStringSubmatch(branch)
	if m == nil {
		return ReleaseBranch{}, false
	}
	major, err := strconv.Atoi(m[1])
	if err != nil {
		return ReleaseBranch{}, false
	}
	minor, err := strconv.Atoi(m[2])
	if err != nil {
		return ReleaseBranch{}, false
	}
	return ReleaseBranch{Major: major, Minor: minor}, true
}

// Less orders release branches by (major, minor).
func (b ReleaseBranch) Less(o ReleaseBranch) bool {
	if b.Major != o.Major {
		return b.Major < o.Major
	}
	return b.Minor < o.Minor
}

// Next returns the following release branch, REL1_35 -> REL1_36.
func (b ReleaseBranch) Next() ReleaseBranch {
	return ReleaseBranch{Major: b.Major, Minor: b.Minor + 1}
}

func (b ReleaseBranch) String() string {
	return fmt.Sprintf("%s%d_%d", ReleaseBranchPrefix, b.Major, b.Minor)
}

// Slug maps a concrete branch to its release tag slug.
//
//	REL1_23           -> mw1.23
//	wmf/1.27.0-wmf.1  -> mw1.27.0-wmf.1
//
// Test branches (minor above 900), legacy 1.23wmf6 style names and anything
// else are not tagged and return false.
func Slug(branch string) (model.TagSlug, bool) {
	if rel, ok := ParseReleaseBranch(branch); ok {
		return model.TagSlug(fmt.Sprintf("%s%d.%d", slugPrefix, rel.Major, rel.Minor)), true
	}

	if !strings.HasPrefix(branch, DeploymentBranchPrefix) {
		return "", false
	}
	rest := strings.TrimPrefix(branch, DeploymentBranchPrefix)
	idx := strings.LastIndex(rest, wmfMarker)
	if idx <= 0 {
		return "", false
	}

	version, minor := rest[:idx], rest[idx+len(wmfMarker):]
	if !isDigits(minor) {
		return "", false
	}
	n, err := strconv.Atoi(minor)
	if err != nil || n > TestBranchMinimum {
		return "", false
	}

	return model.TagSlug(slugPrefix + version + wmfMarker + minor), true
}

// Slugify maps every branch and drops the ones without a slug.
// Order and duplicates are kept.
func Slugify(branches []string) []model.TagSlug {
	slugs := make([]model.TagSlug, 0, len(branches))
	for _, b := range branches {
		if s, ok := Slug(b); ok {
			slugs = append(slugs, s)
		}
	}
	return slugs
}

// IsReleaseBranch reports whether branch lives in the REL namespace.
func IsReleaseBranch(branch string) bool {
	return strings.HasPrefix(branch, ReleaseBranchPrefix)
}
