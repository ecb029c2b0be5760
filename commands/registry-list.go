package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// RegistryList prints the configured registries in priority order
func RegistryList(cmd *cobra.Command, args []string) error {
	env, err := loadEnvironment(cmd)
	if err != nil {
		return err
	}
	registries, err := env.registryRepositories(cmd.Context())
	if err != nil {
		return err
	}
	if len(registries) == 0 {
		fmt.Println("No registries configured.")
		return nil
	}
	fmt.Println("Registries:")
	for _, registry := range registries {
		if !registry.HasProviderListing() {
			fmt.Printf("  - %s %s\n", nameColor.Sprint(registry.Name()), faintColor.Sprint("(unindexed)"))
			continue
		}
		names, err := registry.ProviderNames()
		if err != nil {
			return err
		}
		fmt.Printf("  - %s (%d packages)\n", nameColor.Sprint(registry.Name()), len(names))
	}
	return nil
}
