package manager

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"distro/types"

	"github.com/charmbracelet/log"
)

// InstallOptions configures one installer run
type InstallOptions struct {
	DryRun             bool
	Verbose            bool
	PreferSource       bool
	PreferDist         bool
	DevMode            bool
	RunScripts         bool
	Update             bool
	UpdateWhitelist    []string
	OptimizeAutoloader bool
}

// UninstallOperation describes the removal of one installed package
type UninstallOperation struct {
	Package types.Package
	Reason  string
}

// Installer performs the actual installation work. Run is a blocking call
// whose error means the run failed; it is never retried.
type Installer interface {
	Run(ctx context.Context, opts InstallOptions) error
	Uninstall(ctx context.Context, repo WritableRepository, op UninstallOperation) error
}

// RequirementSource exposes the requirement set the installer resolves against
type RequirementSource interface {
	Requires() []types.Link
}

// ExecInstaller runs an external installer command as a subprocess and
// removes uninstalled packages from the vendor directory itself. The command
// must rewrite the local repository file (installed_file) with the resulting
// package set: the manager reloads it after every run, so a command that
// leaves it alone makes installs invisible to list, hooks and uninstall.
type ExecInstaller struct {
	Command   []string // e.g. ["composer"]
	Dir       string   // working directory of the subprocess
	VendorDir string
	Root      RequirementSource
	Stdout    io.Writer
	Logger    *log.Logger
}

// Run invokes the installer command with arguments derived from opts
func (e *ExecInstaller) Run(ctx context.Context, opts InstallOptions) error {
	if len(e.Command) == 0 {
		return fmt.Errorf("no installer command configured")
	}
	args := append(append([]string(nil), e.Command[1:]...), installerArgs(opts)...)
	cmd := exec.CommandContext(ctx, e.Command[0], args...)
	cmd.Dir = e.Dir
	env, err := e.requireEnv()
	if err != nil {
		return err
	}
	cmd.Env = append(os.Environ(), env)

	var output bytes.Buffer
	cmd.Stdout = &output
	cmd.Stderr = &output
	if e.Stdout != nil {
		cmd.Stdout = io.MultiWriter(&output, e.Stdout)
	}
	e.logger().Debug("running installer", "command", e.Command[0], "args", strings.Join(args, " "))
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to run '%s %s': %w\nOutput: %s", e.Command[0], strings.Join(args, " "), err, strings.TrimSpace(output.String()))
	}
	return nil
}

// Uninstall deletes the package directory and drops the package from repo
func (e *ExecInstaller) Uninstall(ctx context.Context, repo WritableRepository, op UninstallOperation) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	name := op.Package.Name
	if e.VendorDir != "" {
		installPath := filepath.Join(e.VendorDir, filepath.FromSlash(name))
		if err := os.RemoveAll(installPath); err != nil {
			return fmt.Errorf("failed to remove %s: %w", installPath, err)
		}
		e.logger().Debug("removed package files", "package", name, "path", installPath)
	}
	if !repo.RemovePackage(name) {
		return fmt.Errorf("package %s is not in the local repository", name)
	}
	if err := repo.Write(); err != nil {
		return err
	}
	return nil
}

// requireEnv exports the root requirement set as DISTRO_REQUIRE={"name":"constraint",...}
func (e *ExecInstaller) requireEnv() (string, error) {
	require := map[string]string{}
	if e.Root != nil {
		for _, link := range e.Root.Requires() {
			require[link.Target] = link.Constraint
		}
	}
	data, err := json.Marshal(require)
	if err != nil {
		return "", fmt.Errorf("failed to encode root requirements: %w", err)
	}
	return "DISTRO_REQUIRE=" + string(data), nil
}

func (e *ExecInstaller) logger() *log.Logger {
	if e.Logger == nil {
		return discardLogger
	}
	return e.Logger
}

// installerArgs maps options onto composer-style command line arguments
func installerArgs(opts InstallOptions) []string {
	args := []string{"install"}
	if opts.Update {
		args = []string{"update"}
	}
	if opts.DryRun {
		args = append(args, "--dry-run")
	}
	if opts.Verbose {
		args = append(args, "--verbose")
	}
	if opts.PreferSource {
		args = append(args, "--prefer-source")
	}
	if opts.PreferDist {
		args = append(args, "--prefer-dist")
	}
	if opts.DevMode {
		args = append(args, "--dev")
	} else {
		args = append(args, "--no-dev")
	}
	if !opts.RunScripts {
		args = append(args, "--no-scripts")
	}
	if opts.OptimizeAutoloader {
		args = append(args, "--optimize-autoloader")
	}
	if opts.Update {
		args = append(args, opts.UpdateWhitelist...)
	}
	return args
}
