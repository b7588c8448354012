package version

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jxsl13/app-lemonator/app"
)

// Version is a four component file version (major.minor.build.revision).
// The zero value is the sentinel used for unparsable versions and ranks lowest.
type Version struct {
	Major    uint32
	Minor    uint32
	Build    uint32
	Revision uint32
}

// Parse expects one to four dot separated decimal components.
// Missing components are zero padded on the right.
func Parse(s string) (Version, error) {
	parts := strings.Split(s, ".")
	if len(parts) > 4 {
		return Version{}, fmt.Errorf("%w: %q: expected at most 4 components", app.ErrVersionParseFailed, s)
	}

	var nums [4]uint32
	for idx, part := range parts {
		n, err := strconv.ParseUint(part, 10, 32)
		if err != nil {
			return Version{}, fmt.Errorf("%w: %q: invalid component %q", app.ErrVersionParseFailed, s, part)
		}
		nums[idx] = uint32(n)
	}

	return Version{
		Major:    nums[0],
		Minor:    nums[1],
		Build:    nums[2],
		Revision: nums[3],
	}, nil
}

// ParseOrZero returns the sentinel version for anything Parse rejects.
func ParseOrZero(s string) Version {
	v, err := Parse(s)
	if err != nil {
		return Version{}
	}
	return v
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d.%d", v.Major, v.Minor, v.Build, v.Revision)
}

func (v Version) IsZero() bool {
	return v == Version{}
}

// Compare returns -1, 0 or 1.
func (v Version) Compare(o Version) int {
	a := [4]uint32{v.Major, v.Minor, v.Build, v.Revision}
	b := [4]uint32{o.Major, o.Minor, o.Build, o.Revision}
	for i := range a {
		switch {
		case a[i] < b[i]:
			return -1
		case a[i] > b[i]:
			return 1
		}
	}
	return 0
}

func (v Version) Less(o Version) bool {
	return v.Compare(o) < 0
}

// Max returns the greater of both versions, a on ties.
func Max(a, b Version) Version {
	if a.Less(b) {
		return b
	}
	return a
}
