package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Uninstall removes the named packages and drops them from Project.json
func Uninstall(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("at least one argument required (e.g., distro uninstall <package-name>...)")
	}
	for _, name := range args {
		if name == "" {
			return fmt.Errorf("package name cannot be empty")
		}
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

	var installed []string
	for _, name := range args {
		ok, err := mgr.IsInstalled(name)
		if err != nil {
			return err
		}
		if !ok {
			env.logger.Warn("package is not installed", "package", name)
			continue
		}
		if !contains(installed, name) {
			installed = append(installed, name)
		}
	}

	if err := mgr.Uninstall(ctx, args); err != nil {
		return err
	}
	for _, name := range installed {
		fmt.Printf("Uninstalled '%s'\n", name)
	}
	return nil
}
