package manager

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"distro/types"

	"github.com/gofrs/flock"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

const requireSection = "require"

var prettyOptions = &pretty.Options{Width: 80, Prefix: "", Indent: "  ", SortKeys: false}

// Manifest reads and edits Project.json. Edits go through the raw document
// so keys outside the require section keep their values and order.
type Manifest struct {
	path string
}

// NewManifest returns a manifest backed by the file at path
func NewManifest(path string) *Manifest {
	return &Manifest{path: path}
}

// Path returns the manifest file path
func (m *Manifest) Path() string { return m.path }

// Load parses the manifest into a Project
func (m *Manifest) Load() (types.Project, error) {
	data, err := m.read()
	if err != nil {
		return types.Project{}, err
	}
	var project types.Project
	if err := json.Unmarshal(data, &project); err != nil {
		return types.Project{}, fmt.Errorf("failed to parse %s: %w", m.path, err)
	}
	if project.Require == nil {
		project.Require = make(map[string]string)
	}
	return project, nil
}

// Requirements returns the require section as links from the project, in document order
func (m *Manifest) Requirements() ([]types.Link, error) {
	data, err := m.read()
	if err != nil {
		return nil, err
	}
	source := gjson.GetBytes(data, "name").String()
	return orderedLinks(data, requireSection, source, types.RequireDescription), nil
}

// RootPackage loads the project as a root package
func (m *Manifest) RootPackage() (*types.RootPackage, error) {
	project, err := m.Load()
	if err != nil {
		return nil, err
	}
	requires, err := m.Requirements()
	if err != nil {
		return nil, err
	}
	return types.NewRootPackage(project, requires), nil
}

// Init writes a new manifest, refusing to overwrite an existing one
func (m *Manifest) Init(project types.Project) error {
	if _, err := os.Stat(m.path); !os.IsNotExist(err) {
		return fmt.Errorf("%s already exists", filepath.Base(m.path))
	}
	if project.Require == nil {
		project.Require = make(map[string]string)
	}
	data, err := json.MarshalIndent(project, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", filepath.Base(m.path), err)
	}
	return m.withLock(func() error {
		return writeFileAtomic(m.path, append(data, '\n'), 0644)
	})
}

// AddRequirement sets require[name] = version, overwriting any previous constraint
func (m *Manifest) AddRequirement(name, version string) error {
	return m.mutate(func(data []byte) ([]byte, error) {
		data, err := ensureRequireSection(data)
		if err != nil {
			return nil, err
		}
		return sjson.SetBytes(data, requirePath(name), version)
	})
}

// RemoveRequirements deletes require[name] for every name in one write; absent names are ignored
func (m *Manifest) RemoveRequirements(names []string) error {
	return m.mutate(func(data []byte) ([]byte, error) {
		var err error
		for _, name := range names {
			path := requirePath(name)
			if !gjson.GetBytes(data, path).Exists() {
				continue
			}
			if data, err = sjson.DeleteBytes(data, path); err != nil {
				return nil, err
			}
		}
		return data, nil
	})
}

// mutate applies edit to the document under an exclusive lock and persists the result
func (m *Manifest) mutate(edit func([]byte) ([]byte, error)) error {
	return m.withLock(func() error {
		data, err := os.ReadFile(m.path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", m.path, err)
		}
		if !gjson.ValidBytes(data) || !gjson.ParseBytes(data).IsObject() {
			return fmt.Errorf("failed to parse %s: not a JSON object", m.path)
		}
		edited, err := edit(data)
		if err != nil {
			return fmt.Errorf("failed to edit %s: %w", m.path, err)
		}
		return writeFileAtomic(m.path, pretty.PrettyOptions(edited, prettyOptions), 0644)
	})
}

// read returns the raw document under a shared lock
func (m *Manifest) read() ([]byte, error) {
	fl := flock.New(m.lockPath())
	if err := fl.RLock(); err != nil {
		return nil, fmt.Errorf("failed to lock %s: %w", m.path, err)
	}
	defer fl.Unlock()
	data, err := os.ReadFile(m.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("no %s found in %s", filepath.Base(m.path), filepath.Dir(m.path))
		}
		return nil, fmt.Errorf("failed to read %s: %w", m.path, err)
	}
	return data, nil
}

// withLock runs fn holding the exclusive manifest lock; the lock is released on every path
func (m *Manifest) withLock(fn func() error) error {
	fl := flock.New(m.lockPath())
	if err := fl.Lock(); err != nil {
		return fmt.Errorf("failed to lock %s: %w", m.path, err)
	}
	defer fl.Unlock()
	return fn()
}

func (m *Manifest) lockPath() string { return m.path + ".lock" }

// ensureRequireSection makes sure the document has an object under "require"
func ensureRequireSection(data []byte) ([]byte, error) {
	section := gjson.GetBytes(data, requireSection)
	switch {
	case !section.Exists(), section.Type == gjson.Null:
		return sjson.SetRawBytes(data, requireSection, []byte("{}"))
	case !section.IsObject():
		return nil, fmt.Errorf("%q section is not an object", requireSection)
	}
	return data, nil
}

// requirePath builds the sjson/gjson path of a requirement, escaping path syntax in the name
func requirePath(name string) string {
	var b strings.Builder
	b.WriteString(requireSection)
	b.WriteByte('.')
	for _, r := range name {
		if strings.ContainsRune(`\.*?|#@!=<>%:{}[]()"`, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
