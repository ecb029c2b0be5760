package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

// ConfigInit writes the default configuration to <distro dir>/config.toml
func ConfigInit(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")
	path, _ := cmd.Flags().GetString("output")
	if path == "" {
		distroDir, err := getDistroDir()
		if err != nil {
			return err
		}
		path = filepath.Join(distroDir, configFileName)
	}
	if err := WriteDefaultConfig(path, force); err != nil {
		return err
	}
	fmt.Printf("Wrote default configuration to %s\n", path)
	return nil
}
