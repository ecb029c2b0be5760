package types

// RootPackage is the in-memory root package of the project being managed.
// Its requirement list is what the installer resolves against.
type RootPackage struct {
	name          string
	prettyVersion string
	requires      []Link
}

// NewRootPackage builds a root package from a loaded Project.json and its
// requirements in document order
func NewRootPackage(project Project, requires []Link) *RootPackage {
	return &RootPackage{
		name:          project.Name,
		prettyVersion: project.Version,
		requires:      requires,
	}
}

// Name returns the project name
func (r *RootPackage) Name() string { return r.name }

// PrettyVersion returns the project version as written in Project.json
func (r *RootPackage) PrettyVersion() string { return r.prettyVersion }

// Requires returns a copy of the declared requirements
func (r *RootPackage) Requires() []Link {
	return append([]Link(nil), r.requires...)
}

// SetRequires replaces the declared requirements
func (r *RootPackage) SetRequires(links []Link) {
	r.requires = append([]Link(nil), links...)
}
