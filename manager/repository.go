package manager

import (
	"distro/types"
)

// Repository is a source of packages. A repository with a provider listing
// can name its packages without materializing them; ProviderNames is only
// meaningful when HasProviderListing returns true.
type Repository interface {
	HasProviderListing() bool
	ProviderNames() ([]string, error)
	Packages() ([]types.Package, error)
}

// WritableRepository is a repository reflecting on-disk installation state
type WritableRepository interface {
	Repository
	AddPackage(pkg types.Package)
	RemovePackage(name string) bool
	Reload() error
	Write() error
}

// RepositoryManager hands out the local repository and the remote ones in priority order
type RepositoryManager interface {
	LocalRepository() WritableRepository
	Repositories() []Repository
}

// Repositories is the default RepositoryManager
type Repositories struct {
	local   WritableRepository
	remotes []Repository
}

// NewRepositories groups a local repository with remote repositories
func NewRepositories(local WritableRepository, remotes ...Repository) *Repositories {
	return &Repositories{local: local, remotes: remotes}
}

// LocalRepository returns the installed repository
func (r *Repositories) LocalRepository() WritableRepository { return r.local }

// Repositories returns the remote repositories in priority order
func (r *Repositories) Repositories() []Repository {
	return append([]Repository(nil), r.remotes...)
}

// ArrayRepository is an in-memory materializing repository
type ArrayRepository struct {
	packages []types.Package
}

// NewArrayRepository creates a repository holding the given packages in order
func NewArrayRepository(packages ...types.Package) *ArrayRepository {
	return &ArrayRepository{packages: append([]types.Package(nil), packages...)}
}

// HasProviderListing is always false: the packages are already materialized
func (r *ArrayRepository) HasProviderListing() bool { return false }

// ProviderNames is not supported by array repositories
func (r *ArrayRepository) ProviderNames() ([]string, error) { return nil, nil }

// Packages returns the packages in insertion order
func (r *ArrayRepository) Packages() ([]types.Package, error) {
	return append([]types.Package(nil), r.packages...), nil
}

// AddPackage appends a package
func (r *ArrayRepository) AddPackage(pkg types.Package) {
	r.packages = append(r.packages, pkg)
}

// RemovePackage removes every version of the named package and reports whether any was present
func (r *ArrayRepository) RemovePackage(name string) bool {
	kept := r.packages[:0]
	removed := false
	for _, pkg := range r.packages {
		if pkg.Name == name {
			removed = true
			continue
		}
		kept = append(kept, pkg)
	}
	r.packages = kept
	return removed
}

// Reload is a no-op: an in-memory repository has no backing file
func (r *ArrayRepository) Reload() error { return nil }

// Write is a no-op: an in-memory repository has no backing file
func (r *ArrayRepository) Write() error { return nil }

// findPackage returns the first package with the given name, and version when non-empty
func findPackage(repo Repository, name, version string) (types.Package, bool, error) {
	packages, err := repo.Packages()
	if err != nil {
		return types.Package{}, false, err
	}
	for _, pkg := range packages {
		if pkg.Name != name {
			continue
		}
		if version == "" || pkg.Version == version {
			return pkg, true, nil
		}
	}
	return types.Package{}, false, nil
}
