package types

import "time"

// Registry is the metadata stored in <registries>/<name>/registry.json
type Registry struct {
	Name        string                 `json:"name"`
	GitURL      string                 `json:"giturl"`
	Packages    map[string]PackageInfo `json:"packages,omitempty"` // provider index, absent for unindexed registries
	LastUpdated time.Time              `json:"last_updated,omitempty"`
}

// PackageInfo is a registry index entry for one package
type PackageInfo struct {
	UUID     string   `json:"uuid"`
	GitURL   string   `json:"giturl,omitempty"`
	Versions []string `json:"versions,omitempty"`
}

// Specs describes one released version of a package in a registry (specs.json)
type Specs struct {
	Name       string            `json:"name"`
	UUID       string            `json:"uuid"`
	Version    string            `json:"version"`
	GitURL     string            `json:"giturl,omitempty"`
	SHA1       string            `json:"sha1,omitempty"`
	Require    map[string]string `json:"require,omitempty"`
	RequireDev map[string]string `json:"require-dev,omitempty"`
	Scripts    map[string]string `json:"scripts,omitempty"`
}

// Project is the root package view of Project.json
type Project struct {
	Name    string            `json:"name"`
	UUID    string            `json:"uuid"`
	Authors []string          `json:"authors,omitempty"`
	Version string            `json:"version"`
	Require map[string]string `json:"require"`
}
