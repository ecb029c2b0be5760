package manager

import (
	"context"
	"path/filepath"
	"testing"

	"distro/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArrayRepository(t *testing.T) {
	repo := NewArrayRepository(newPackage(t, "acme/a", "1.0.0"), newPackage(t, "acme/b", "1.0.0"))
	repo.AddPackage(newPackage(t, "acme/a", "2.0.0"))

	packages, err := repo.Packages()
	require.NoError(t, err)
	require.Len(t, packages, 3)

	// callers get a copy
	packages[0].Name = "changed"
	again, _ := repo.Packages()
	assert.Equal(t, "acme/a", again[0].Name)

	assert.True(t, repo.RemovePackage("acme/a"))
	assert.False(t, repo.RemovePackage("acme/a"))
	packages, _ = repo.Packages()
	require.Len(t, packages, 1)
	assert.Equal(t, "acme/b", packages[0].Name)
}

func TestFindPackage(t *testing.T) {
	repo := NewArrayRepository(newPackage(t, "acme/a", "1.0.0"), newPackage(t, "acme/a", "2.0.0"))

	pkg, found, err := findPackage(repo, "acme/a", "2.0.0")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "2.0.0", pkg.Version)

	pkg, found, _ = findPackage(repo, "acme/a", "")
	require.True(t, found)
	assert.Equal(t, "1.0.0", pkg.Version)

	_, found, _ = findPackage(repo, "acme", "")
	assert.False(t, found, "names match exactly")
}

func TestInstalledRepositoryRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".distro", "installed.json")

	repo, err := LoadInstalledRepository(path)
	require.NoError(t, err)
	packages, err := repo.Packages()
	require.NoError(t, err)
	assert.Empty(t, packages, "missing file is an empty repository")

	pkg := withDevRequires(newPackage(t, "acme/a", "1.2.0-beta1", "acme/b", "php"), "acme/test")
	pkg.Scripts = map[string]string{UninstallEvent: "echo bye"}
	repo.AddPackage(pkg)
	require.NoError(t, repo.Write())
	assert.NoFileExists(t, path+".tmp")

	reloaded, err := LoadInstalledRepository(path)
	require.NoError(t, err)
	packages, err = reloaded.Packages()
	require.NoError(t, err)
	require.Len(t, packages, 1)
	assert.Equal(t, pkg, packages[0])
	assert.Equal(t, types.StabilityBeta, packages[0].Stability)
}

func TestInstalledRepositoryReloadPicksUpExternalChanges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "installed.json")
	repo, err := LoadInstalledRepository(path)
	require.NoError(t, err)

	writeFile(t, path, `{"packages":[{"name":"acme/a","version":"1.0.0","pretty_version":"1.0.0","stability":"stable"}]}`)
	installed, _ := repo.Packages()
	assert.Empty(t, installed)

	require.NoError(t, repo.Reload())
	installed, _ = repo.Packages()
	require.Len(t, installed, 1)
	assert.Equal(t, "acme/a", installed[0].Name)
}

func TestInstalledRepositoryRejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "installed.json")
	writeFile(t, path, `{"packages":`)
	_, err := LoadInstalledRepository(path)
	assert.ErrorContains(t, err, "failed to parse installed repository")
}

// writeRegistry lays out a registry directory: registry.json plus one specs.json per entry
func writeRegistry(t *testing.T, registriesDir, name, meta string, specs map[string]string) {
	t.Helper()
	writeFile(t, filepath.Join(registriesDir, name, registryMetaFileName), meta)
	for rel, content := range specs {
		writeFile(t, filepath.Join(registriesDir, name, filepath.FromSlash(rel), specsFileName), content)
	}
}

func TestRegistryRepositoryWithIndex(t *testing.T) {
	dir := t.TempDir()
	writeRegistry(t, dir, "main", `{
  "name": "main",
  "packages": {
    "acme/web": {"uuid": "", "versions": ["v1.0.0"]},
    "acme/log": {"uuid": "", "versions": []}
  }
}`, map[string]string{
		"A/acme/web/v1.0.0": `{"name":"acme/web","version":"v1.0.0","require":{"acme/log":"^1.0","php":">=8.1","acme/http":"^2.0"}}`,
		"A/acme/log/v1.1.0": `{"name":"acme/log","version":"v1.1.0","require-dev":{"acme/test":"*"}}`,
	})

	repo, err := LoadRegistryRepository(dir, "main")
	require.NoError(t, err)
	assert.Equal(t, "main", repo.Name())
	require.True(t, repo.HasProviderListing())

	names, err := repo.ProviderNames()
	require.NoError(t, err)
	assert.Equal(t, []string{"acme/log", "acme/web"}, names)

	packages, err := repo.Packages()
	require.NoError(t, err)
	require.Len(t, packages, 2)

	log := packages[0]
	assert.Equal(t, "acme/log", log.Name)
	assert.Equal(t, "1.1.0", log.Version)
	assert.Equal(t, "v1.1.0", log.PrettyVersion)
	assert.Equal(t, []string{"acme/test"}, log.DevRequireTargets())

	web := packages[1]
	assert.Equal(t, []string{"acme/log", "php", "acme/http"}, web.RequireTargets(), "declaration order is kept")
	assert.Equal(t, types.Link{Source: "acme/web", Target: "acme/log", Constraint: "^1.0", Description: types.RequireDescription}, web.Requires[0])
}

func TestRegistryRepositoryWithoutIndexWalksSpecs(t *testing.T) {
	dir := t.TempDir()
	writeRegistry(t, dir, "legacy", `{"name":"legacy"}`, map[string]string{
		"A/acme/a/v1.0.0":  `{"name":"acme/a","version":"1.0.0"}`,
		"A/acme/a/v2.0.0":  `{"name":"acme/a","version":"2.0.0"}`,
		".git/hooks/dummy": `{"name":"ignored","version":"1.0.0"}`,
	})

	repo, err := LoadRegistryRepository(dir, "legacy")
	require.NoError(t, err)
	assert.False(t, repo.HasProviderListing())

	packages, err := repo.Packages()
	require.NoError(t, err)
	require.Len(t, packages, 2)
	assert.Equal(t, "1.0.0", packages[0].Version)
	assert.Equal(t, "2.0.0", packages[1].Version)
}

func TestRegistryRepositoryRejectsInvalidSpecs(t *testing.T) {
	dir := t.TempDir()
	writeRegistry(t, dir, "bad", `{"name":"bad"}`, map[string]string{
		"A/acme/a/v1.0.0": `{"name":"acme/a","version":"1.0.0","uuid":"not-a-uuid"}`,
	})
	repo, err := LoadRegistryRepository(dir, "bad")
	require.NoError(t, err)

	_, err = repo.Packages()
	assert.ErrorContains(t, err, "invalid UUID")
}

func TestLoadRegistryNames(t *testing.T) {
	dir := t.TempDir()
	names, err := LoadRegistryNames(dir)
	require.NoError(t, err)
	assert.Nil(t, names)

	writeFile(t, filepath.Join(dir, "registries.json"), `["main","extra"]`)
	names, err = LoadRegistryNames(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"main", "extra"}, names)
}

func TestLoadRegistryRepositoriesKeepsOrder(t *testing.T) {
	dir := t.TempDir()
	names := []string{"zeta", "alpha", "mid"}
	for _, name := range names {
		writeRegistry(t, dir, name, `{"name":"`+name+`","packages":{}}`, nil)
	}

	repos, err := LoadRegistryRepositories(context.Background(), dir, names)
	require.NoError(t, err)
	require.Len(t, repos, 3)
	for i, repo := range repos {
		assert.Equal(t, names[i], repo.Name())
		assert.True(t, repo.HasProviderListing())
	}

	_, err = LoadRegistryRepositories(context.Background(), dir, []string{"zeta", "missing"})
	assert.ErrorContains(t, err, "failed to read registry.json for 'missing'")
}
