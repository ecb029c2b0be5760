package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Requires prints the non-platform runtime requirements of a package version
func Requires(cmd *cobra.Command, args []string) error {
	packageName, version, err := parseInstallArgs(args)
	if err != nil {
		return err
	}
	env, err := loadEnvironment(cmd)
	if err != nil {
		return err
	}
	mgr, err := env.newManager(cmd.Context(), false)
	if err != nil {
		return err
	}
	requirements, err := mgr.Requirements(packageName, version)
	if err != nil {
		return err
	}
	for _, name := range requirements {
		fmt.Println(name)
	}
	return nil
}
