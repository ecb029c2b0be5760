package commands

import (
	"fmt"

	"distro/manager"

	"github.com/spf13/cobra"
)

// RegistryStatus prints an overview of packages in a registry
func RegistryStatus(cmd *cobra.Command, args []string) error {
	if len(args) != 1 || args[0] == "" {
		return fmt.Errorf("exactly one argument required (e.g., distro registry status <registry-name>)")
	}
	registryName := args[0]
	env, err := loadEnvironment(cmd)
	if err != nil {
		return err
	}
	if err := assertRegistryExists(env, registryName); err != nil {
		return err
	}
	registry, err := manager.LoadRegistryRepository(env.config.RegistriesDir, registryName)
	if err != nil {
		return err
	}
	return printRegistryStatus(registry)
}

// assertRegistryExists verifies that the registry is among the configured ones
func assertRegistryExists(env *environment, registryName string) error {
	names := env.config.Registries
	if len(names) == 0 {
		var err error
		names, err = manager.LoadRegistryNames(env.config.RegistriesDir)
		if err != nil {
			return err
		}
	}
	if !contains(names, registryName) {
		return fmt.Errorf("registry '%s' not found", registryName)
	}
	return nil
}

// printRegistryStatus displays the registry's packages with their versions
func printRegistryStatus(registry *manager.RegistryRepository) error {
	fmt.Printf("Registry Status for '%s':\n", registry.Name())
	packages, err := registry.Packages()
	if err != nil {
		return err
	}
	if len(packages) == 0 {
		fmt.Println("  No packages registered.")
		return nil
	}
	fmt.Println("  Packages:")
	for _, pkg := range packages {
		fmt.Printf("    - %s %s\n", nameColor.Sprint(pkg.Name), versionColor.Sprint(pkg.PrettyVersionOrVersion()))
	}
	return nil
}
