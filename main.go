// distro --version
// distro init <package name> [v<version>]
// distro install <package name> [<version>]
// distro uninstall <package name>...
// distro list [--available | --installable]
// distro show <package name> [<version>] [--format text|json|yaml]
// distro requires <package name> [<version>]
// distro dependents <package name>
// distro registry list
// distro registry status <registry name>
// distro config init [--force] [--output <path>]

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"distro/commands"

	"github.com/spf13/cobra"
)

func main() {
	var rootCmd = &cobra.Command{
		Use:           "distro",
		Short:         "A lifecycle manager for project packages",
		SilenceUsage:  true,
		SilenceErrors: true,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("Welcome to distro! Use a subcommand like 'install', 'uninstall', or 'list'.")
		},
	}

	var versionFlag bool
	rootCmd.Flags().BoolVarP(&versionFlag, "version", "v", false, "Print the version number")
	rootCmd.PersistentFlags().Bool("verbose", false, "Enable debug logging")
	rootCmd.PersistentFlags().String("config", "", "Path to a config.toml file")
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if versionFlag {
			commands.PrintVersion()
		}
	}

	var initCmd = &cobra.Command{
		Use:   "init <package-name> [version]",
		Short: "Initialize a new project with a Project.json file",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  commands.Init,
	}
	initCmd.Flags().String("version", "", "Initial project version (default v0.1.0)")

	var installCmd = &cobra.Command{
		Use:   "install <package-name> [version]",
		Short: "Install a package and add it to Project.json",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  commands.Install,
	}

	var uninstallCmd = &cobra.Command{
		Use:   "uninstall <package-name>...",
		Short: "Uninstall packages and remove them from Project.json",
		Args:  cobra.MinimumNArgs(1),
		RunE:  commands.Uninstall,
	}

	var listCmd = &cobra.Command{
		Use:   "list",
		Short: "List installed packages, or the packages the registries offer",
		Args:  cobra.NoArgs,
		RunE:  commands.List,
	}
	listCmd.Flags().Bool("available", false, "List every package offered by the registries")
	listCmd.Flags().Bool("installable", false, "List offered packages that are not installed")
	listCmd.MarkFlagsMutuallyExclusive("available", "installable")

	var showCmd = &cobra.Command{
		Use:   "show <package-name> [version]",
		Short: "Show the package that would be installed",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  commands.Show,
	}
	showCmd.Flags().StringP("format", "f", "text", "Output format: text, json or yaml")

	var requiresCmd = &cobra.Command{
		Use:   "requires <package-name> [version]",
		Short: "List the packages a package requires, without platform requirements",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  commands.Requires,
	}

	var dependentsCmd = &cobra.Command{
		Use:   "dependents <package-name>",
		Short: "List installed packages that depend on a package",
		Args:  cobra.ExactArgs(1),
		RunE:  commands.Dependents,
	}

	var registryCmd = &cobra.Command{
		Use:   "registry",
		Short: "Inspect package registries",
	}
	var registryListCmd = &cobra.Command{
		Use:   "list",
		Short: "List the configured registries",
		Args:  cobra.NoArgs,
		RunE:  commands.RegistryList,
	}
	var registryStatusCmd = &cobra.Command{
		Use:   "status <registry-name>",
		Short: "Show the packages of a registry",
		Args:  cobra.ExactArgs(1),
		RunE:  commands.RegistryStatus,
	}
	registryCmd.AddCommand(registryListCmd)
	registryCmd.AddCommand(registryStatusCmd)

	var configCmd = &cobra.Command{
		Use:   "config",
		Short: "Manage distro configuration",
	}
	var configInitCmd = &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration file",
		Args:  cobra.NoArgs,
		RunE:  commands.ConfigInit,
	}
	configInitCmd.Flags().Bool("force", false, "Overwrite an existing configuration file")
	configInitCmd.Flags().StringP("output", "o", "", "Write to this path instead of ~/.distro/config.toml")
	configCmd.AddCommand(configInitCmd)

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(installCmd)
	rootCmd.AddCommand(uninstallCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(requiresCmd)
	rootCmd.AddCommand(dependentsCmd)
	rootCmd.AddCommand(registryCmd)
	rootCmd.AddCommand(configCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
