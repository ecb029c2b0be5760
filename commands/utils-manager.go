package commands

import (
	"context"
	"fmt"
	"os"

	"distro/manager"
	"distro/types"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// environment bundles what a command needs after reading flags and configuration
type environment struct {
	config   *Config
	logger   *log.Logger
	manifest *manager.Manifest
}

// loadEnvironment reads the persistent flags, the configuration and builds the logger
func loadEnvironment(cmd *cobra.Command) (*environment, error) {
	configFile, _ := cmd.Flags().GetString("config")
	verbose, _ := cmd.Flags().GetBool("verbose")
	cfg, err := LoadConfig(configFile)
	if err != nil {
		return nil, err
	}
	logger, err := newLogger(cfg.LogLevel, verbose)
	if err != nil {
		return nil, err
	}
	if cfg.File != "" {
		logger.Debug("loaded configuration", "file", cfg.File)
	}
	return &environment{
		config:   cfg,
		logger:   logger,
		manifest: manager.NewManifest(cfg.Manifest),
	}, nil
}

// newLogger builds the stderr logger; verbose forces debug level
func newLogger(level string, verbose bool) (*log.Logger, error) {
	logLevel, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log.level '%s': %w", level, err)
	}
	if verbose {
		logLevel = log.DebugLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		Prefix: "distro",
		Level:  logLevel,
	}), nil
}

// registryRepositories loads the configured registries, falling back to registries.json
func (env *environment) registryRepositories(ctx context.Context) ([]*manager.RegistryRepository, error) {
	names := env.config.Registries
	if len(names) == 0 {
		var err error
		names, err = manager.LoadRegistryNames(env.config.RegistriesDir)
		if err != nil {
			return nil, err
		}
	}
	if len(names) == 0 {
		env.logger.Warn("no registries configured", "dir", env.config.RegistriesDir)
	}
	return manager.LoadRegistryRepositories(ctx, env.config.RegistriesDir, names)
}

// newManager wires the local repository, the registries, the installer and
// the hook runner into a Manager. With requireProject unset a missing
// manifest is tolerated and the manager runs without a root package.
func (env *environment) newManager(ctx context.Context, requireProject bool) (*manager.Manager, error) {
	local, err := manager.LoadInstalledRepository(env.config.InstalledFile)
	if err != nil {
		return nil, err
	}
	registries, err := env.registryRepositories(ctx)
	if err != nil {
		return nil, err
	}
	remotes := make([]manager.Repository, 0, len(registries))
	for _, registry := range registries {
		remotes = append(remotes, registry)
	}

	var root *types.RootPackage
	if requireProject || fileExists(env.manifest.Path()) {
		project, err := env.manifest.Load()
		if err != nil {
			return nil, err
		}
		if err := validateProject(project, env.manifest.Path()); err != nil {
			return nil, err
		}
		root, err = env.manifest.RootPackage()
		if err != nil {
			return nil, err
		}
	}

	installer := &manager.ExecInstaller{
		Command:   env.config.InstallerCommand,
		VendorDir: env.config.VendorDir,
		Stdout:    os.Stderr,
		Logger:    env.logger,
	}
	var rootPackage manager.RootPackage
	if root != nil {
		installer.Root = root
		rootPackage = root
	}
	scripts := &manager.HookRunner{
		VendorDir: env.config.VendorDir,
		Timeout:   env.config.ScriptsTimeout,
		Logger:    env.logger,
	}
	return manager.NewManager(
		manager.NewRepositories(local, remotes...),
		rootPackage,
		installer,
		scripts,
		env.manifest,
		manager.WithLogger(env.logger),
	), nil
}
