package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	configFileName      = "config.toml"
	localConfigFileName = "distro.toml"
)

// Config is the resolved distro configuration
type Config struct {
	Manifest         string
	VendorDir        string
	InstalledFile    string
	RegistriesDir    string
	Registries       []string
	InstallerCommand []string
	ScriptsTimeout   time.Duration
	LogLevel         string

	// File is the config file that was read, empty when running on defaults
	File string
}

// fileConfig is the on-disk layout of config.toml
type fileConfig struct {
	Manifest      string   `toml:"manifest"`
	VendorDir     string   `toml:"vendor_dir"`
	InstalledFile string   `toml:"installed_file" comment:"Local repository; the installer command must rewrite it after every run"`
	RegistriesDir string   `toml:"registries_dir"`
	Registries    []string `toml:"registries"`
	Installer     struct {
		Command []string `toml:"command" comment:"Installer run on install; it must refresh installed_file with the resulting package set"`
	} `toml:"installer"`
	Scripts struct {
		Timeout string `toml:"timeout"`
	} `toml:"scripts"`
	Log struct {
		Level string `toml:"level"`
	} `toml:"log"`
}

// getDistroDir returns the global .distro directory, honouring DISTRO_DEPOT_PATH
func getDistroDir() (string, error) {
	if depot := os.Getenv("DISTRO_DEPOT_PATH"); depot != "" {
		return depot, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".distro"), nil
}

// defaultFileConfig returns the built-in defaults in file form
func defaultFileConfig(distroDir string) fileConfig {
	var cfg fileConfig
	cfg.Manifest = "Project.json"
	cfg.VendorDir = filepath.Join(".distro", "packages")
	cfg.InstalledFile = filepath.Join(".distro", "installed.json")
	cfg.RegistriesDir = filepath.Join(distroDir, "registries")
	cfg.Registries = []string{}
	cfg.Installer.Command = []string{"composer"}
	cfg.Scripts.Timeout = "60s"
	cfg.Log.Level = "info"
	return cfg
}

// LoadConfig resolves the configuration from defaults, the config file and
// DISTRO_* environment variables. An explicit configFile must exist;
// otherwise ./distro.toml and then <distro dir>/config.toml are tried.
func LoadConfig(configFile string) (*Config, error) {
	distroDir, err := getDistroDir()
	if err != nil {
		return nil, err
	}

	v := viper.New()
	defaults := defaultFileConfig(distroDir)
	v.SetDefault("manifest", defaults.Manifest)
	v.SetDefault("vendor_dir", defaults.VendorDir)
	v.SetDefault("installed_file", defaults.InstalledFile)
	v.SetDefault("registries_dir", defaults.RegistriesDir)
	v.SetDefault("registries", defaults.Registries)
	v.SetDefault("installer.command", defaults.Installer.Command)
	v.SetDefault("scripts.timeout", defaults.Scripts.Timeout)
	v.SetDefault("log.level", defaults.Log.Level)

	v.SetEnvPrefix("DISTRO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	resolvedPath := ""
	switch {
	case configFile != "":
		if !fileExists(configFile) {
			return nil, fmt.Errorf("config file not found: %s", configFile)
		}
		resolvedPath = configFile
	case fileExists(localConfigFileName):
		resolvedPath = localConfigFileName
	case fileExists(filepath.Join(distroDir, configFileName)):
		resolvedPath = filepath.Join(distroDir, configFileName)
	}
	if resolvedPath != "" {
		v.SetConfigFile(resolvedPath)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", resolvedPath, err)
		}
	}

	timeout, err := time.ParseDuration(v.GetString("scripts.timeout"))
	if err != nil {
		return nil, fmt.Errorf("invalid scripts.timeout '%s': %w", v.GetString("scripts.timeout"), err)
	}
	cfg := &Config{
		Manifest:         v.GetString("manifest"),
		VendorDir:        expandHome(v.GetString("vendor_dir")),
		InstalledFile:    expandHome(v.GetString("installed_file")),
		RegistriesDir:    expandHome(v.GetString("registries_dir")),
		Registries:       v.GetStringSlice("registries"),
		InstallerCommand: v.GetStringSlice("installer.command"),
		ScriptsTimeout:   timeout,
		LogLevel:         v.GetString("log.level"),
		File:             resolvedPath,
	}
	if len(cfg.InstallerCommand) == 0 {
		return nil, fmt.Errorf("installer.command cannot be empty")
	}
	return cfg, nil
}

// WriteDefaultConfig writes the default configuration as TOML to path,
// refusing to overwrite an existing file unless force is set
func WriteDefaultConfig(path string, force bool) error {
	if fileExists(path) && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	distroDir, err := getDistroDir()
	if err != nil {
		return err
	}
	data, err := toml.Marshal(defaultFileConfig(distroDir))
	if err != nil {
		return fmt.Errorf("failed to marshal default configuration: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// expandHome replaces a leading ~ with the user's home directory
func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(homeDir, strings.TrimPrefix(path, "~"))
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
