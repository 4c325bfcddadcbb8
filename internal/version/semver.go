package version

import (
	"strconv"
	"strings"
)

// isNewer reports whether latest is a strictly newer release than current.
// Malformed versions compare as not-newer; a release with a prerelease
// suffix is older than the bare version with the same numbers.
func isNewer(latest, current string) bool {
	if !IsValid(latest) || !IsValid(current) {
		return false
	}

	ln, lpre := splitVersion(latest)
	cn, cpre := splitVersion(current)

	for i := 0; i < 3; i++ {
		if ln[i] != cn[i] {
			return ln[i] > cn[i]
		}
	}

	// Same numbers: a prerelease is older than the final release.
	if lpre == cpre {
		return false
	}
	if lpre == "" {
		return true
	}
	if cpre == "" {
		return false
	}
	return lpre > cpre
}

func splitVersion(v string) ([3]int, string) {
	v = strings.TrimPrefix(v, "v")
	var pre string
	if i := strings.IndexByte(v, '-'); i >= 0 {
		pre = v[i+1:]
		v = v[:i]
	}
	var nums [3]int
	parts := strings.SplitN(v, ".", 3)
	for i := 0; i < len(parts) && i < 3; i++ {
		n, err := strconv.Atoi(parts[i])
		if err != nil {
			return nums, pre
		}
		nums[i] = n
	}
	return nums, pre
}
