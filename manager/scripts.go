package manager

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"distro/types"

	"github.com/charmbracelet/log"
)

// Script events a package can declare in its "scripts" section
const (
	InstallEvent   = "install"
	UninstallEvent = "uninstall"
)

const defaultScriptTimeout = 60 * time.Second

// ScriptRunner runs package lifecycle hooks
type ScriptRunner interface {
	Install(ctx context.Context, pkg types.Package) error
	Uninstall(ctx context.Context, pkg types.Package) error
}

// scriptInput is piped to the hook command on stdin as JSON
type scriptInput struct {
	Event   string `json:"event"`
	Package string `json:"package"`
	Version string `json:"version"`
}

// HookRunner runs the shell command a package declares for an event, inside
// the package's install directory
type HookRunner struct {
	VendorDir string
	Timeout   time.Duration
	Logger    *log.Logger
}

// Install runs the package's install hook, if any
func (h *HookRunner) Install(ctx context.Context, pkg types.Package) error {
	return h.run(ctx, InstallEvent, pkg)
}

// Uninstall runs the package's uninstall hook, if any
func (h *HookRunner) Uninstall(ctx context.Context, pkg types.Package) error {
	return h.run(ctx, UninstallEvent, pkg)
}

func (h *HookRunner) run(ctx context.Context, event string, pkg types.Package) error {
	command := strings.TrimSpace(pkg.Scripts[event])
	if command == "" {
		return nil
	}
	timeout := h.Timeout
	if timeout <= 0 {
		timeout = defaultScriptTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	input, err := json.Marshal(scriptInput{Event: event, Package: pkg.Name, Version: pkg.PrettyVersionOrVersion()})
	if err != nil {
		return fmt.Errorf("marshal %s script input: %w", event, err)
	}

	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	cmd.Stdin = bytes.NewReader(input)
	cmd.Env = append(os.Environ(), "DISTRO_EVENT="+event, "DISTRO_PACKAGE="+pkg.Name)
	if h.VendorDir != "" {
		dir := filepath.Join(h.VendorDir, filepath.FromSlash(pkg.Name))
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			cmd.Dir = dir
		}
	}
	var output bytes.Buffer
	cmd.Stdout = &output
	cmd.Stderr = &output
	cmd.WaitDelay = time.Second

	logger := h.Logger
	if logger == nil {
		logger = discardLogger
	}
	logger.Debug("running script", "event", event, "package", pkg.Name, "command", command)

	runErr := cmd.Run()
	if ctx.Err() == context.DeadlineExceeded {
		return fmt.Errorf("%s script of %s timed out after %v", event, pkg.Name, timeout)
	}
	if runErr != nil {
		return fmt.Errorf("%s script of %s failed: %w\nOutput: %s", event, pkg.Name, runErr, strings.TrimSpace(output.String()))
	}
	return nil
}
