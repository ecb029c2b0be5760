package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	nameColor    = color.New(color.FgCyan, color.Bold)
	versionColor = color.New(color.FgGreen)
	faintColor   = color.New(color.Faint)
)

// List prints the installed packages, or the names offered by the registries
func List(cmd *cobra.Command, args []string) error {
	available, _ := cmd.Flags().GetBool("available")
	installable, _ := cmd.Flags().GetBool("installable")
	env, err := loadEnvironment(cmd)
	if err != nil {
		return err
	}
	mgr, err := env.newManager(cmd.Context(), false)
	if err != nil {
		return err
	}

	switch {
	case available || installable:
		var names []string
		if installable {
			names, err = mgr.Installable()
		} else {
			names, err = mgr.Available()
		}
		if err != nil {
			return err
		}
		if len(names) == 0 {
			fmt.Println("No packages available.")
			return nil
		}
		for _, name := range names {
			fmt.Println(nameColor.Sprint(name))
		}
	default:
		packages, err := mgr.Installed()
		if err != nil {
			return err
		}
		if len(packages) == 0 {
			fmt.Println("No packages installed.")
			return nil
		}
		for _, pkg := range packages {
			fmt.Printf("%s %s %s\n",
				nameColor.Sprint(pkg.Name),
				versionColor.Sprint(pkg.PrettyVersionOrVersion()),
				faintColor.Sprintf("(%s)", pkg.Stability))
		}
	}
	return nil
}
