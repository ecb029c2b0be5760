package commands

import (
	"fmt"
	"os/exec"
	"strings"

	"distro/manager"
	"distro/types"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// Init initializes a new project with a Project.json file
func Init(cmd *cobra.Command, args []string) error {
	packageName, version, err := validateInitArgs(args, cmd)
	if err != nil {
		return err
	}
	if err := validateVersion(version); err != nil {
		return err
	}
	env, err := loadEnvironment(cmd)
	if err != nil {
		return err
	}
	project := types.Project{
		Name:    packageName,
		UUID:    uuid.New().String(),
		Authors: getGitAuthors(env),
		Version: version,
		Require: make(map[string]string),
	}
	if err := env.manifest.Init(project); err != nil {
		return err
	}
	fmt.Printf("Initialized project '%s' with version %s\n", packageName, version)
	return nil
}

// validateInitArgs checks the command-line arguments for validity
func validateInitArgs(args []string, cmd *cobra.Command) (string, string, error) {
	if len(args) < 1 || len(args) > 2 {
		return "", "", fmt.Errorf("one or two arguments required (e.g., distro init <package-name> [version])")
	}
	packageName := args[0]
	if packageName == "" {
		return "", "", fmt.Errorf("package name cannot be empty")
	}

	version := ""
	if len(args) == 2 {
		version = args[1]
	}
	flagVersion, _ := cmd.Flags().GetString("version")
	if version != "" && flagVersion != "" {
		return "", "", fmt.Errorf("cannot specify version both as an argument and a flag")
	}
	if version == "" {
		version = flagVersion
	}
	if version == "" {
		version = "v0.1.0"
	}
	return packageName, version, nil
}

// validateVersion ensures the version starts with 'v' and parses
func validateVersion(version string) error {
	if len(version) == 0 || version[0] != 'v' {
		return fmt.Errorf("version '%s' must start with 'v'", version)
	}
	if _, err := manager.NormalizeVersion(version); err != nil {
		return err
	}
	return nil
}

// getGitAuthors retrieves the author from git config or falls back to a placeholder
func getGitAuthors(env *environment) []string {
	name, errName := exec.Command("git", "config", "user.name").Output()
	email, errEmail := exec.Command("git", "config", "user.email").Output()
	if errName != nil || errEmail != nil || len(name) == 0 || len(email) == 0 {
		env.logger.Warn("could not retrieve git user.name or user.email, using placeholder author")
		return []string{"[unknown]unknown@author.com"}
	}
	return []string{fmt.Sprintf("[%s]%s", strings.TrimSpace(string(name)), strings.TrimSpace(string(email)))}
}
