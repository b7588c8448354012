package utils

import "github.com/Masterminds/semver/v3"

// NewVersion parses a semantic version with or without leading v.
func NewVersion(v string) (version semver.Version, err error) {
	vp, err := semver.NewVersion(v)
	if err != nil {
		return version, err
	}

	return *vp, nil
}
