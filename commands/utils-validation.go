package commands

import (
	"fmt"

	"distro/manager"
	"distro/types"

	"github.com/google/uuid"
)

// validateProject checks the Project.json fields install and uninstall rely on
func validateProject(project types.Project, manifestPath string) error {
	if project.Name == "" {
		return fmt.Errorf("%s does not contain a valid package name", manifestPath)
	}
	if project.UUID != "" {
		if _, err := uuid.Parse(project.UUID); err != nil {
			return fmt.Errorf("invalid UUID '%s' in %s: %w", project.UUID, manifestPath, err)
		}
	}
	if project.Version != "" {
		if _, err := manager.NormalizeVersion(project.Version); err != nil {
			return fmt.Errorf("invalid version in %s: %w", manifestPath, err)
		}
	}
	return nil
}
