package configsource

import "github.com/Masterminds/semver/v3"

// ParseVersionConstraint parses a semver constraint string (e.g. ">= 1.2.0,
// < 2.0.0"), for callers gating a deferred source on a resolved version
// falling within a supported range rather than an exact match.
func ParseVersionConstraint(constraint string) (*semver.Constraints, error) {
	return semver.NewConstraint(constraint)
}

// VersionSatisfies reports whether versionString parses as a semantic
// version satisfying constraint.
func VersionSatisfies(versionString, constraint string) (bool, error) {
	v, err := semver.NewVersion(versionString)
	if err != nil {
		return false, err
	}

	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return false, err
	}

	return c.Check(v), nil
}
