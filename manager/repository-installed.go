package manager

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"distro/types"
)

// installedFile is the on-disk form of the installed repository
type installedFile struct {
	Packages []types.Package `json:"packages"`
}

// InstalledRepository is the local repository persisted in .distro/installed.json.
// The installer rewrites the file, so callers Reload before trusting its contents.
type InstalledRepository struct {
	ArrayRepository
	path string
}

// LoadInstalledRepository reads the installed repository at path; a missing file is an empty repository
func LoadInstalledRepository(path string) (*InstalledRepository, error) {
	repo := &InstalledRepository{path: path}
	if err := repo.Reload(); err != nil {
		return nil, err
	}
	return repo, nil
}

// Path returns the file backing the repository
func (r *InstalledRepository) Path() string { return r.path }

// Reload discards the in-memory view and reads the file again
func (r *InstalledRepository) Reload() error {
	data, err := os.ReadFile(r.path)
	if os.IsNotExist(err) {
		r.packages = nil
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read installed repository %s: %w", r.path, err)
	}
	var file installedFile
	if err := json.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse installed repository %s: %w", r.path, err)
	}
	r.packages = file.Packages
	return nil
}

// Write persists the repository atomically
func (r *InstalledRepository) Write() error {
	packages := r.packages
	if packages == nil {
		packages = []types.Package{}
	}
	data, err := json.MarshalIndent(installedFile{Packages: packages}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal installed repository: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(r.path), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", r.path, err)
	}
	return writeFileAtomic(r.path, data, 0644)
}

// writeFileAtomic writes data to a temp file next to path and renames it into place
func writeFileAtomic(path string, data []byte, mode os.FileMode) error {
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, mode); err != nil {
		return fmt.Errorf("failed to write %s: %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
