package merge

import (
	"strings"

	"github.com/Masterminds/semver/v3"
)

// VersionChange classifies an updated dependency version.
type VersionChange string

const (
	Upgrade   VersionChange = "upgrade"
	Downgrade VersionChange = "downgrade"
	Changed   VersionChange = "changed" // not comparable as versions
)

// classifyVersions compares two version strings or simple range constraints
// such as "~1.4.4" and "^4.12.2" by their base version.
func classifyVersions(from, to any) VersionChange {
	fs, ok1 := from.(string)
	ts, ok2 := to.(string)
	if !ok1 || !ok2 {
		return ""
	}

	fv, err := parseBase(fs)
	if err != nil {
		return Changed
	}
	tv, err := parseBase(ts)
	if err != nil {
		return Changed
	}

	switch fv.Compare(tv) {
	case -1:
		return Upgrade
	case 1:
		return Downgrade
	default:
		return Changed
	}
}

// parseBase strips range operators and a leading "v" and parses what is left.
func parseBase(version string) (*semver.Version, error) {
	version = strings.TrimSpace(version)
	version = strings.TrimLeft(version, "^~=<> ")
	version = strings.TrimPrefix(version, "v")
	return semver.NewVersion(version)
}
