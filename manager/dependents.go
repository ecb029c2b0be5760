package manager

import (
	"sort"

	"distro/types"
)

// dependents returns every package in installed that requires name directly
// or transitively, through runtime or development requirements. The walk is
// breadth-first with a visited set, so cycles terminate and each dependent
// is reported once.
func dependents(installed []types.Package, name string) []string {
	// reverse edges: target -> packages declaring a requirement on it
	requiredBy := make(map[string][]string)
	for _, pkg := range installed {
		seen := make(map[string]bool)
		for _, links := range [][]types.Link{pkg.Requires, pkg.DevRequires} {
			for _, link := range links {
				if seen[link.Target] {
					continue
				}
				seen[link.Target] = true
				requiredBy[link.Target] = append(requiredBy[link.Target], pkg.Name)
			}
		}
	}

	visited := map[string]bool{}
	var result []string
	queue := []string{name}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, dependent := range requiredBy[current] {
			if visited[dependent] {
				continue
			}
			visited[dependent] = true
			result = append(result, dependent)
			queue = append(queue, dependent)
		}
	}
	sort.Strings(result)
	return result
}
