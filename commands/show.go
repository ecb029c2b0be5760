package commands

import (
	"encoding/json"
	"fmt"
	"strings"

	"distro/types"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// requirementView is one requirement in show output
type requirementView struct {
	Target     string `json:"target" yaml:"target"`
	Constraint string `json:"constraint" yaml:"constraint"`
}

// packageView is the printable form of a package
type packageView struct {
	Name          string            `json:"name" yaml:"name"`
	Version       string            `json:"version" yaml:"version"`
	PrettyVersion string            `json:"pretty_version" yaml:"pretty_version"`
	Stability     string            `json:"stability" yaml:"stability"`
	UUID          string            `json:"uuid,omitempty" yaml:"uuid,omitempty"`
	GitURL        string            `json:"giturl,omitempty" yaml:"giturl,omitempty"`
	SHA1          string            `json:"sha1,omitempty" yaml:"sha1,omitempty"`
	Require       []requirementView `json:"require,omitempty" yaml:"require,omitempty"`
	RequireDev    []requirementView `json:"require-dev,omitempty" yaml:"require-dev,omitempty"`
	Scripts       map[string]string `json:"scripts,omitempty" yaml:"scripts,omitempty"`
	Installed     bool              `json:"installed" yaml:"installed"`
}

// Show prints the preferred package for a name and optional version
func Show(cmd *cobra.Command, args []string) error {
	packageName, version, err := parseInstallArgs(args)
	if err != nil {
		return err
	}
	format, _ := cmd.Flags().GetString("format")
	env, err := loadEnvironment(cmd)
	if err != nil {
		return err
	}
	mgr, err := env.newManager(cmd.Context(), false)
	if err != nil {
		return err
	}
	pkg, err := mgr.PreferredPackage(packageName, version)
	if err != nil {
		return err
	}
	installed, err := mgr.IsInstalled(pkg.Name)
	if err != nil {
		return err
	}
	view := newPackageView(pkg, installed)

	switch strings.ToLower(format) {
	case "json":
		data, err := json.MarshalIndent(view, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal package: %w", err)
		}
		fmt.Println(string(data))
	case "yaml":
		data, err := yaml.Marshal(view)
		if err != nil {
			return fmt.Errorf("failed to marshal package: %w", err)
		}
		fmt.Print(string(data))
	case "", "text":
		printPackageView(view)
	default:
		return fmt.Errorf("unknown format '%s' (expected text, json or yaml)", format)
	}
	return nil
}

func newPackageView(pkg types.Package, installed bool) packageView {
	return packageView{
		Name:          pkg.Name,
		Version:       pkg.Version,
		PrettyVersion: pkg.PrettyVersionOrVersion(),
		Stability:     pkg.Stability.String(),
		UUID:          pkg.UUID,
		GitURL:        pkg.GitURL,
		SHA1:          pkg.SHA1,
		Require:       requirementViews(pkg.Requires),
		RequireDev:    requirementViews(pkg.DevRequires),
		Scripts:       pkg.Scripts,
		Installed:     installed,
	}
}

func requirementViews(links []types.Link) []requirementView {
	var views []requirementView
	for _, link := range links {
		views = append(views, requirementView{Target: link.Target, Constraint: link.Constraint})
	}
	return views
}

// printPackageView writes the human readable form
func printPackageView(view packageView) {
	fmt.Printf("name      : %s\n", nameColor.Sprint(view.Name))
	fmt.Printf("version   : %s\n", versionColor.Sprint(view.PrettyVersion))
	fmt.Printf("stability : %s\n", view.Stability)
	if view.UUID != "" {
		fmt.Printf("uuid      : %s\n", view.UUID)
	}
	if view.GitURL != "" {
		fmt.Printf("giturl    : %s\n", view.GitURL)
	}
	fmt.Printf("installed : %t\n", view.Installed)
	if len(view.Require) > 0 {
		fmt.Println("requires")
		for _, req := range view.Require {
			fmt.Printf("  %s %s\n", req.Target, req.Constraint)
		}
	}
	if len(view.RequireDev) > 0 {
		fmt.Println("requires (dev)")
		for _, req := range view.RequireDev {
			fmt.Printf("  %s %s\n", req.Target, req.Constraint)
		}
	}
}
