package manager

import (
	"errors"
	"fmt"
)

// ErrNotFound is matched by every NotFoundError
var ErrNotFound = errors.New("not found")

// NotFoundError is returned when no package matches a requested name and version
type NotFoundError struct {
	Name    string
	Version string
}

func (e *NotFoundError) Error() string {
	if e.Version != "" {
		return fmt.Sprintf("cannot find package %s %s", e.Name, e.Version)
	}
	return fmt.Sprintf("cannot find package %s", e.Name)
}

// Is lets errors.Is(err, ErrNotFound) match
func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// InstallerError is returned when the installer run for a package fails.
// The manifest is not modified when it is returned.
type InstallerError struct {
	Package string
	Err     error
}

func (e *InstallerError) Error() string {
	return fmt.Sprintf("installation of %s failed: %v", e.Package, e.Err)
}

func (e *InstallerError) Unwrap() error { return e.Err }

// UninstallError is returned when removing one package of a batch fails.
// The manifest is not modified when it is returned.
type UninstallError struct {
	Package string
	Err     error
}

func (e *UninstallError) Error() string {
	return fmt.Sprintf("uninstallation of %s failed: %v", e.Package, e.Err)
}

func (e *UninstallError) Unwrap() error { return e.Err }
