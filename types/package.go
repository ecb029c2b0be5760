package types

// Link descriptions, matching the section a requirement was declared in
const (
	RequireDescription    = "requires"
	DevRequireDescription = "requires (for development)"
)

// Link is a requirement edge from one package to another
type Link struct {
	Source      string `json:"source"`
	Target      string `json:"target"`
	Constraint  string `json:"constraint"`
	Description string `json:"description,omitempty"`
}

// Stability classifies a version by its pre-release marker
type Stability int

const (
	StabilityDev Stability = iota
	StabilityAlpha
	StabilityBeta
	StabilityRC
	StabilityStable
)

// String returns the composer-style name of the stability
func (s Stability) String() string {
	switch s {
	case StabilityStable:
		return "stable"
	case StabilityRC:
		return "RC"
	case StabilityBeta:
		return "beta"
	case StabilityAlpha:
		return "alpha"
	default:
		return "dev"
	}
}

// MarshalText encodes the stability by name
func (s Stability) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a stability name; unknown names decode as dev
func (s *Stability) UnmarshalText(text []byte) error {
	switch string(text) {
	case "stable":
		*s = StabilityStable
	case "RC", "rc":
		*s = StabilityRC
	case "beta":
		*s = StabilityBeta
	case "alpha":
		*s = StabilityAlpha
	default:
		*s = StabilityDev
	}
	return nil
}

// Package is an immutable description of one version of a package
type Package struct {
	Name          string            `json:"name"`
	Version       string            `json:"version"`        // normalized
	PrettyVersion string            `json:"pretty_version"` // as released
	Requires      []Link            `json:"require,omitempty"`
	DevRequires   []Link            `json:"require_dev,omitempty"`
	Stability     Stability         `json:"stability"`
	UUID          string            `json:"uuid,omitempty"`
	GitURL        string            `json:"giturl,omitempty"`
	SHA1          string            `json:"sha1,omitempty"`
	Scripts       map[string]string `json:"scripts,omitempty"`
}

// PrettyVersionOrVersion returns the display version, falling back to the normalized one
func (p Package) PrettyVersionOrVersion() string {
	if p.PrettyVersion != "" {
		return p.PrettyVersion
	}
	return p.Version
}

// RequireTargets returns the targets of the runtime requirements in declaration order
func (p Package) RequireTargets() []string {
	return linkTargets(p.Requires)
}

// DevRequireTargets returns the targets of the development requirements in declaration order
func (p Package) DevRequireTargets() []string {
	return linkTargets(p.DevRequires)
}

// String returns name and pretty version, e.g. "vendor/pkg (v1.2.0)"
func (p Package) String() string {
	return p.Name + " (" + p.PrettyVersionOrVersion() + ")"
}

func linkTargets(links []Link) []string {
	targets := make([]string, 0, len(links))
	for _, l := range links {
		targets = append(targets, l.Target)
	}
	return targets
}
