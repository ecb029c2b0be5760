package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Install installs the preferred version of a package and records it in Project.json
func Install(cmd *cobra.Command, args []string) error {
	packageName, version, err := parseInstallArgs(args)
	if err != nil {
		return err
	}
	env, err := loadEnvironment(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	mgr, err := env.newManager(ctx, true)
	if err != nil {
		return err
	}
	pkg, err := mgr.Install(ctx, packageName, version)
	if err != nil {
		return err
	}
	fmt.Printf("Installed '%s' %s\n", pkg.Name, pkg.PrettyVersionOrVersion())
	return nil
}

// parseInstallArgs accepts <name> [version] or <name>@<version>
func parseInstallArgs(args []string) (string, string, error) {
	if len(args) < 1 || len(args) > 2 {
		return "", "", fmt.Errorf("one or two arguments required (e.g., distro install <package-name> [version])")
	}
	packageName, version := splitPackageArg(args[0])
	if len(args) == 2 {
		if version != "" {
			return "", "", fmt.Errorf("cannot specify version both as '%s' and as an argument", args[0])
		}
		version = args[1]
	}
	if packageName == "" {
		return "", "", fmt.Errorf("package name cannot be empty")
	}
	return packageName, version, nil
}
