package manager

import (
	"context"
	"fmt"
	"io"

	"distro/types"

	"github.com/charmbracelet/log"
)

var discardLogger = log.New(io.Discard)

// RootPackage is the project package whose requirements the installer resolves
type RootPackage interface {
	Name() string
	PrettyVersion() string
	Requires() []types.Link
	SetRequires(links []types.Link)
}

// Manager answers queries about installed and available packages and runs
// install and uninstall transactions that keep the manifest in step with
// the local repository.
type Manager struct {
	repos     RepositoryManager
	root      RootPackage
	installer Installer
	scripts   ScriptRunner
	manifest  *Manifest
	logger    *log.Logger
}

// Option configures a Manager
type Option func(*Manager)

// WithLogger sets the logger used for progress and diagnostics
func WithLogger(logger *log.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// NewManager composes a Manager. root and scripts may be nil.
func NewManager(repos RepositoryManager, root RootPackage, installer Installer, scripts ScriptRunner, manifest *Manifest, opts ...Option) *Manager {
	m := &Manager{
		repos:     repos,
		root:      root,
		installer: installer,
		scripts:   scripts,
		manifest:  manifest,
		logger:    discardLogger,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Installed returns every package in the local repository, in repository order
func (m *Manager) Installed() ([]types.Package, error) {
	return m.repos.LocalRepository().Packages()
}

// Available returns the names offered by the remote repositories, each once,
// in first-seen order. Installed packages are not filtered out.
func (m *Manager) Available() ([]string, error) {
	seen := make(map[string]bool)
	var names []string
	add := func(name string) {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	for _, repo := range m.repos.Repositories() {
		if repo.HasProviderListing() {
			providers, err := repo.ProviderNames()
			if err != nil {
				return nil, err
			}
			for _, name := range providers {
				add(name)
			}
			continue
		}
		packages, err := repo.Packages()
		if err != nil {
			return nil, err
		}
		for _, pkg := range packages {
			add(pkg.Name)
		}
	}
	return names, nil
}

// Installable returns the available names that are not installed yet
func (m *Manager) Installable() ([]string, error) {
	available, err := m.Available()
	if err != nil {
		return nil, err
	}
	installed, err := m.Installed()
	if err != nil {
		return nil, err
	}
	isInstalled := make(map[string]bool, len(installed))
	for _, pkg := range installed {
		isInstalled[pkg.Name] = true
	}
	var names []string
	for _, name := range available {
		if !isInstalled[name] {
			names = append(names, name)
		}
	}
	return names, nil
}

// IsInstalled reports whether the local repository holds a package with exactly this name
func (m *Manager) IsInstalled(name string) (bool, error) {
	_, found, err := findPackage(m.repos.LocalRepository(), name, "")
	return found, err
}

// Requirements returns the runtime requirement targets of the package
// (name, version), in declaration order, without platform requirements
func (m *Manager) Requirements(name, version string) ([]string, error) {
	pkg, err := m.PreferredPackage(name, version)
	if err != nil {
		return nil, err
	}
	var targets []string
	for _, target := range pkg.RequireTargets() {
		if IsPlatformRequirement(target) {
			continue
		}
		targets = append(targets, target)
	}
	return targets, nil
}

// Dependents returns the installed packages that require name, directly or
// transitively, through runtime or development requirements
func (m *Manager) Dependents(name string) ([]string, error) {
	installed, err := m.Installed()
	if err != nil {
		return nil, err
	}
	return dependents(installed, name), nil
}

// PreferredPackage selects the package to use for name across the local and
// remote repositories: the exact version when one is given, otherwise the
// highest version. It returns a *NotFoundError when nothing matches.
func (m *Manager) PreferredPackage(name, version string) (types.Package, error) {
	matches, err := candidates(m.allRepositories(), name)
	if err != nil {
		return types.Package{}, err
	}
	return selectPreferred(matches, name, version)
}

// Install resolves the preferred package, runs the installer restricted to
// it and records it in the manifest. The manifest is untouched when the
// installer fails, and the root requirements are restored whenever the
// manifest is not updated.
func (m *Manager) Install(ctx context.Context, name, version string) (types.Package, error) {
	pkg, err := m.PreferredPackage(name, version)
	if err != nil {
		return types.Package{}, err
	}

	restore := m.requireInRoot(pkg)
	m.logger.Info("installing", "package", pkg.Name, "version", pkg.PrettyVersionOrVersion())
	if err := m.installer.Run(ctx, installPolicy(pkg)); err != nil {
		restore()
		return types.Package{}, &InstallerError{Package: pkg.Name, Err: err}
	}

	if err := m.manifest.AddRequirement(pkg.Name, pkg.PrettyVersionOrVersion()); err != nil {
		restore()
		return types.Package{}, err
	}

	// the installer rewrote the local repository behind our back
	local := m.repos.LocalRepository()
	if err := local.Reload(); err != nil {
		return types.Package{}, err
	}
	installed, found, err := findPackage(local, pkg.Name, "")
	if err != nil {
		return types.Package{}, err
	}
	if found && m.scripts != nil {
		if err := m.scripts.Install(ctx, installed); err != nil {
			return types.Package{}, fmt.Errorf("install script of %s: %w", pkg.Name, err)
		}
	}
	return pkg, nil
}

// Uninstall removes the named packages in the given order, running each
// package's uninstall hook before the installer removes it, then drops the
// names from the manifest in one write. Names that are not installed are
// skipped. Any failure aborts the batch before the manifest is touched.
func (m *Manager) Uninstall(ctx context.Context, names []string) error {
	names = uniqueNames(names)
	if len(names) == 0 {
		return nil
	}
	local := m.repos.LocalRepository()
	if err := local.Reload(); err != nil {
		return err
	}

	var packages []types.Package
	for _, name := range names {
		pkg, found, err := findPackage(local, name, "")
		if err != nil {
			return err
		}
		if !found {
			m.logger.Debug("not installed, skipping", "package", name)
			continue
		}
		packages = append(packages, pkg)
	}

	for _, pkg := range packages {
		m.logger.Info("uninstalling", "package", pkg.Name, "version", pkg.PrettyVersionOrVersion())
		if m.scripts != nil {
			if err := m.scripts.Uninstall(ctx, pkg); err != nil {
				return &UninstallError{Package: pkg.Name, Err: err}
			}
		}
		op := UninstallOperation{Package: pkg, Reason: "uninstall requested"}
		if err := m.installer.Uninstall(ctx, local, op); err != nil {
			return &UninstallError{Package: pkg.Name, Err: err}
		}
	}

	return m.manifest.RemoveRequirements(names)
}

// requireInRoot adds or replaces the root requirement on pkg and returns a
// function restoring the previous requirement set
func (m *Manager) requireInRoot(pkg types.Package) func() {
	if m.root == nil {
		return func() {}
	}
	previous := m.root.Requires()
	link := types.Link{
		Source:      m.root.Name(),
		Target:      pkg.Name,
		Constraint:  pkg.PrettyVersionOrVersion(),
		Description: types.RequireDescription,
	}
	requires := m.root.Requires()
	replaced := false
	for i := range requires {
		if requires[i].Target == pkg.Name {
			requires[i] = link
			replaced = true
		}
	}
	if !replaced {
		requires = append(requires, link)
	}
	m.root.SetRequires(requires)
	return func() { m.root.SetRequires(previous) }
}

// allRepositories returns the local repository followed by the remote ones
func (m *Manager) allRepositories() []Repository {
	return append([]Repository{m.repos.LocalRepository()}, m.repos.Repositories()...)
}

// installPolicy is the fixed installer configuration for installing one package
func installPolicy(pkg types.Package) InstallOptions {
	return InstallOptions{
		DryRun:             false,
		Verbose:            false,
		PreferSource:       false,
		PreferDist:         true,
		DevMode:            false,
		RunScripts:         true,
		Update:             true,
		UpdateWhitelist:    []string{pkg.Name},
		OptimizeAutoloader: true,
	}
}

// uniqueNames drops repeated names, keeping the first occurrence
func uniqueNames(names []string) []string {
	seen := make(map[string]bool, len(names))
	var unique []string
	for _, name := range names {
		if !seen[name] {
			seen[name] = true
			unique = append(unique, name)
		}
	}
	return unique
}
