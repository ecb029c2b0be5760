package manager

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"distro/types"

	"github.com/stretchr/testify/require"
)

// newPackage builds a package with a normalized version and runtime requirements on targets
func newPackage(t *testing.T, name, version string, targets ...string) types.Package {
	t.Helper()
	normalized, err := NormalizeVersion(version)
	require.NoError(t, err)
	pkg := types.Package{
		Name:          name,
		Version:       normalized,
		PrettyVersion: version,
		Stability:     StabilityOf(normalized),
	}
	for _, target := range targets {
		pkg.Requires = append(pkg.Requires, types.Link{Source: name, Target: target, Constraint: "*", Description: types.RequireDescription})
	}
	return pkg
}

// withDevRequires returns pkg with development requirements on targets
func withDevRequires(pkg types.Package, targets ...string) types.Package {
	for _, target := range targets {
		pkg.DevRequires = append(pkg.DevRequires, types.Link{Source: pkg.Name, Target: target, Constraint: "*", Description: types.DevRequireDescription})
	}
	return pkg
}

// providerRepository is a remote repository with a cheap name listing that
// fails the test if it is ever materialized
type providerRepository struct {
	t     *testing.T
	names []string
}

func (r *providerRepository) HasProviderListing() bool         { return true }
func (r *providerRepository) ProviderNames() ([]string, error) { return r.names, nil }
func (r *providerRepository) Packages() ([]types.Package, error) {
	r.t.Errorf("provider repository should not be materialized")
	return nil, nil
}

// failingRepository fails every read
type failingRepository struct{}

func (failingRepository) HasProviderListing() bool { return false }
func (failingRepository) ProviderNames() ([]string, error) {
	return nil, errors.New("listing failed")
}
func (failingRepository) Packages() ([]types.Package, error) {
	return nil, errors.New("listing failed")
}

// fakeInstaller records runs and uninstalls
type fakeInstaller struct {
	runs        []InstallOptions
	runErr      error
	uninstalled []string
	failOn      string
	onRun       func()
}

func (f *fakeInstaller) Run(ctx context.Context, opts InstallOptions) error {
	f.runs = append(f.runs, opts)
	if f.onRun != nil {
		f.onRun()
	}
	return f.runErr
}

func (f *fakeInstaller) Uninstall(ctx context.Context, repo WritableRepository, op UninstallOperation) error {
	if op.Package.Name == f.failOn {
		return errors.New("removal failed")
	}
	f.uninstalled = append(f.uninstalled, op.Package.Name)
	repo.RemovePackage(op.Package.Name)
	return repo.Write()
}

// fakeScripts records hook invocations in order
type fakeScripts struct {
	calls []string
}

func (f *fakeScripts) Install(ctx context.Context, pkg types.Package) error {
	f.calls = append(f.calls, "install:"+pkg.Name)
	return nil
}

func (f *fakeScripts) Uninstall(ctx context.Context, pkg types.Package) error {
	f.calls = append(f.calls, "uninstall:"+pkg.Name)
	return nil
}

// writeFile creates parent directories and writes content
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

// readFile returns the content of path
func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}
