package manager

import (
	"fmt"
	"regexp"
	"strings"

	"distro/types"

	"github.com/Masterminds/semver/v3"
)

// stabilityPattern matches the pre-release forms that carry a stability,
// an optional separator and number following the modifier (rc1, beta.2, a3)
var stabilityPattern = regexp.MustCompile(`^(alpha|beta|rc|a|b)(?:[.-]?\d+)?$`)

// NormalizeVersion returns the canonical form of a version string
// (e.g. "v3" -> "3.0.0", "1.2-beta1" -> "1.2.0-beta1"). Branch versions
// ("dev-master", "main-dev") are returned unchanged.
func NormalizeVersion(version string) (string, error) {
	version = strings.TrimSpace(version)
	if version == "" {
		return "", fmt.Errorf("version cannot be empty")
	}
	if isBranchVersion(version) {
		return version, nil
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return "", fmt.Errorf("invalid version '%s': %w", version, err)
	}
	return v.String(), nil
}

// StabilityOf derives the stability of a version from its pre-release tag
func StabilityOf(version string) types.Stability {
	if isBranchVersion(version) {
		return types.StabilityDev
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return types.StabilityDev
	}
	pre := strings.ToLower(v.Prerelease())
	if pre == "" {
		return types.StabilityStable
	}
	match := stabilityPattern.FindStringSubmatch(pre)
	if match == nil {
		return types.StabilityDev
	}
	switch match[1] {
	case "rc":
		return types.StabilityRC
	case "beta", "b":
		return types.StabilityBeta
	default:
		return types.StabilityAlpha
	}
}

// CompareVersions orders two normalized versions semantically. Versions that
// do not parse (branches) sort below every parseable version and compare
// equal among themselves. Pre-releases of the same release rank by stability
// (alpha < beta < RC) before their tags are compared.
func CompareVersions(a, b string) int {
	va, errA := semver.NewVersion(a)
	vb, errB := semver.NewVersion(b)
	switch {
	case errA != nil && errB != nil:
		return 0
	case errA != nil:
		return -1
	case errB != nil:
		return 1
	}
	if va.Major() == vb.Major() && va.Minor() == vb.Minor() && va.Patch() == vb.Patch() {
		sa, sb := StabilityOf(a), StabilityOf(b)
		switch {
		case sa < sb:
			return -1
		case sa > sb:
			return 1
		}
	}
	return va.Compare(vb)
}

// isBranchVersion reports whether the version names a branch rather than a release
func isBranchVersion(version string) bool {
	return strings.HasPrefix(version, "dev-") || strings.HasSuffix(version, "-dev")
}
