package manager

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"distro/types"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"golang.org/x/sync/errgroup"
)

const (
	registryMetaFileName = "registry.json"
	specsFileName        = "specs.json"
)

// RegistryRepository is a read-only remote repository backed by a registry
// directory (<registries>/<name>). Registries whose registry.json carries a
// packages index offer a provider listing; the others are discovered by
// walking the directory for specs.json files.
type RegistryRepository struct {
	name string
	dir  string
	meta types.Registry
}

// LoadRegistryRepository loads the metadata of the named registry
func LoadRegistryRepository(registriesDir, registryName string) (*RegistryRepository, error) {
	dir := filepath.Join(registriesDir, registryName)
	meta, err := loadRegistryMetadata(dir, registryName)
	if err != nil {
		return nil, err
	}
	return &RegistryRepository{name: registryName, dir: dir, meta: meta}, nil
}

// Name returns the registry name
func (r *RegistryRepository) Name() string { return r.name }

// Metadata returns the loaded registry.json
func (r *RegistryRepository) Metadata() types.Registry { return r.meta }

// HasProviderListing reports whether registry.json carries a packages index
func (r *RegistryRepository) HasProviderListing() bool { return r.meta.Packages != nil }

// ProviderNames returns the indexed package names in sorted order without reading any specs
func (r *RegistryRepository) ProviderNames() ([]string, error) {
	names := make([]string, 0, len(r.meta.Packages))
	for name := range r.meta.Packages {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Packages materializes every released version in the registry
func (r *RegistryRepository) Packages() ([]types.Package, error) {
	specsFiles, err := r.specsFiles()
	if err != nil {
		return nil, err
	}
	packages := make([]types.Package, 0, len(specsFiles))
	for _, specsFile := range specsFiles {
		pkg, err := loadSpecsPackage(specsFile)
		if err != nil {
			return nil, fmt.Errorf("registry '%s': %w", r.name, err)
		}
		packages = append(packages, pkg)
	}
	return packages, nil
}

// specsFiles lists the specs.json files of the registry, from the index when present
func (r *RegistryRepository) specsFiles() ([]string, error) {
	if !r.HasProviderListing() {
		return walkSpecsFiles(r.dir)
	}
	names, _ := r.ProviderNames()
	var files []string
	for _, name := range names {
		if name == "" {
			continue
		}
		packageDir := packageDirectory(r.dir, name)
		versions := r.meta.Packages[name].Versions
		if len(versions) == 0 {
			entries, err := os.ReadDir(packageDir)
			if os.IsNotExist(err) {
				continue
			}
			if err != nil {
				return nil, fmt.Errorf("failed to list versions of '%s' in registry '%s': %w", name, r.name, err)
			}
			for _, entry := range entries {
				if entry.IsDir() {
					versions = append(versions, entry.Name())
				}
			}
		}
		for _, version := range versions {
			specsFile := filepath.Join(packageDir, version, specsFileName)
			if _, err := os.Stat(specsFile); os.IsNotExist(err) {
				continue
			}
			files = append(files, specsFile)
		}
	}
	return files, nil
}

// walkSpecsFiles finds every specs.json below dir in lexical order
func walkSpecsFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() && strings.HasPrefix(d.Name(), ".") && path != dir {
			return filepath.SkipDir
		}
		if !d.IsDir() && d.Name() == specsFileName {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan registry directory %s: %w", dir, err)
	}
	return files, nil
}

// packageDirectory returns <registry>/<Initial>/<name>
func packageDirectory(registryDir, packageName string) string {
	return filepath.Join(registryDir, strings.ToUpper(string(packageName[0])), filepath.FromSlash(packageName))
}

// loadRegistryMetadata loads and parses registry.json
func loadRegistryMetadata(registryDir, registryName string) (types.Registry, error) {
	registryMetaFile := filepath.Join(registryDir, registryMetaFileName)
	data, err := os.ReadFile(registryMetaFile)
	if err != nil {
		return types.Registry{}, fmt.Errorf("failed to read registry.json for '%s': %w", registryName, err)
	}
	var registry types.Registry
	if err := json.Unmarshal(data, &registry); err != nil {
		return types.Registry{}, fmt.Errorf("failed to parse registry.json for '%s': %w", registryName, err)
	}
	if registry.Name == "" {
		registry.Name = registryName
	}
	return registry, nil
}

// loadSpecsPackage reads one specs.json into a Package, keeping requirement order
func loadSpecsPackage(specsFile string) (types.Package, error) {
	data, err := os.ReadFile(specsFile)
	if err != nil {
		return types.Package{}, fmt.Errorf("failed to read %s: %w", specsFile, err)
	}
	var specs types.Specs
	if err := json.Unmarshal(data, &specs); err != nil {
		return types.Package{}, fmt.Errorf("failed to parse %s: %w", specsFile, err)
	}
	if specs.Name == "" {
		return types.Package{}, fmt.Errorf("%s does not contain a package name", specsFile)
	}
	if specs.UUID != "" {
		if _, err := uuid.Parse(specs.UUID); err != nil {
			return types.Package{}, fmt.Errorf("invalid UUID '%s' in %s: %w", specs.UUID, specsFile, err)
		}
	}
	version, err := NormalizeVersion(specs.Version)
	if err != nil {
		return types.Package{}, fmt.Errorf("%s: %w", specsFile, err)
	}
	return types.Package{
		Name:          specs.Name,
		Version:       version,
		PrettyVersion: specs.Version,
		Requires:      orderedLinks(data, "require", specs.Name, types.RequireDescription),
		DevRequires:   orderedLinks(data, "require-dev", specs.Name, types.DevRequireDescription),
		Stability:     StabilityOf(version),
		UUID:          specs.UUID,
		GitURL:        specs.GitURL,
		SHA1:          specs.SHA1,
		Scripts:       specs.Scripts,
	}, nil
}

// orderedLinks reads a {"target": "constraint"} object in document order
func orderedLinks(data []byte, key, source, description string) []types.Link {
	var links []types.Link
	gjson.GetBytes(data, key).ForEach(func(target, constraint gjson.Result) bool {
		links = append(links, types.Link{
			Source:      source,
			Target:      target.String(),
			Constraint:  constraint.String(),
			Description: description,
		})
		return true
	})
	return links
}

// LoadRegistryNames reads the ordered registry names from <registries>/registries.json.
// A missing file means no registries.
func LoadRegistryNames(registriesDir string) ([]string, error) {
	registriesFile := filepath.Join(registriesDir, "registries.json")
	data, err := os.ReadFile(registriesFile)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read registries.json: %w", err)
	}
	var registryNames []string
	if err := json.Unmarshal(data, &registryNames); err != nil {
		return nil, fmt.Errorf("failed to parse registries.json: %w", err)
	}
	return registryNames, nil
}

// LoadRegistryRepositories loads the named registries concurrently and
// returns them in the order of names
func LoadRegistryRepositories(ctx context.Context, registriesDir string, names []string) ([]*RegistryRepository, error) {
	repos := make([]*RegistryRepository, len(names))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for i, name := range names {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			repo, err := LoadRegistryRepository(registriesDir, name)
			if err != nil {
				return err
			}
			repos[i] = repo
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return repos, nil
}
