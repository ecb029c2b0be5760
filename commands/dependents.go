package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Dependents prints every installed package that depends on the given one
func Dependents(cmd *cobra.Command, args []string) error {
	if len(args) != 1 || args[0] == "" {
		return fmt.Errorf("exactly one argument required (e.g., distro dependents <package-name>)")
	}
	env, err := loadEnvironment(cmd)
	if err != nil {
		return err
	}
	mgr, err := env.newManager(cmd.Context(), false)
	if err != nil {
		return err
	}
	names, err := mgr.Dependents(args[0])
	if err != nil {
		return err
	}
	for _, name := range names {
		fmt.Println(name)
	}
	return nil
}
