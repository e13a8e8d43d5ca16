package release

import (
	"fmt"
	"strconv"
	"strings"
)

// Ordinal encodes a wmf version so that integer order matches release order,
// e.g. "1.27.0-wmf.21" -> 12721 and "1.26wmf8" -> 12608.
type Ordinal int

// TestBranchMinimum is the first minor number reserved for ephemeral test branches.
const TestBranchMinimum = 900

// ParseOrdinal converts a wmf branch version into its Ordinal.
// ok is false for anything that is not a deployable wmf version.
func ParseOrdinal(version string) (ord Ordinal, ok bool) {
	major, minor, found := strings.Cut(version, "wmf")
	if !found {
		return 0, false
	}

	major = stripChars(major, ".-")
	if len(major) == 4 {
		// 1.27.0 style: only x.yy.0 releases exist, drop the zero so the
		// result lines up with the older 1.26wmfN numbering.
		if major[3] != '0' {
			return 0, false
		}
		major = major[:3]
	}
	if !isDigits(major) {
		return 0, false
	}

	minor = stripChars(minor, ".")
	if !isDigits(minor) {
		return 0, false
	}
	if len(minor) == 1 {
		minor = "0" + minor
	}

	n, err := strconv.Atoi(minor)
	if err != nil || n > TestBranchMinimum {
		return 0, false
	}

	v, err := strconv.Atoi(major + minor)
	if err != nil {
		return 0, false
	}
	return Ordinal(v), true
}

// NextDeploymentBranch returns the wmf branch following version,
// e.g. "1.35.0-wmf.15" -> "wmf/1.35.0-wmf.16".
func NextDeploymentBranch(version string) (string, error) {
	idx := strings.LastIndex(version, "wmf")
	if idx < 0 {
		return "", fmt.Errorf("%w: %q", ErrNotWMFVersion, version)
	}

	base := strings.TrimRight(version[:idx], ".-")
	minor, err := strconv.Atoi(stripChars(version[idx+len("wmf"):], ".-"))
	if err != nil || base == "" {
		return "", fmt.Errorf("%w: %q", ErrNotWMFVersion, version)
	}

	return fmt.Sprintf("%s%s-wmf.%d", DeploymentBranchPrefix, base, minor+1), nil
}

func stripChars(s, chars string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(chars, r) {
			return -1
		}
		return r
	}, s)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
