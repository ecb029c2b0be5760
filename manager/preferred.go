package manager

import (
	"distro/types"
)

// candidates collects every package named name across repos, in repository order
func candidates(repos []Repository, name string) ([]types.Package, error) {
	var matches []types.Package
	for _, repo := range repos {
		packages, err := repo.Packages()
		if err != nil {
			return nil, err
		}
		for _, pkg := range packages {
			if pkg.Name == name {
				matches = append(matches, pkg)
			}
		}
	}
	return matches, nil
}

// selectPreferred picks the package matching version exactly when version is
// set, otherwise the highest version. Ties keep the first candidate.
func selectPreferred(matches []types.Package, name, version string) (types.Package, error) {
	if version != "" {
		normalized, err := NormalizeVersion(version)
		if err != nil {
			normalized = version
		}
		for _, pkg := range matches {
			if pkg.Version == normalized {
				return pkg, nil
			}
		}
		return types.Package{}, &NotFoundError{Name: name, Version: version}
	}
	if len(matches) == 0 {
		return types.Package{}, &NotFoundError{Name: name}
	}
	best := matches[0]
	for _, pkg := range matches[1:] {
		if CompareVersions(pkg.Version, best.Version) > 0 {
			best = pkg
		}
	}
	return best, nil
}
