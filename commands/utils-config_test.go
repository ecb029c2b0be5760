package commands

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"distro/types"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points the distro depot and working directory at fresh temp dirs
func isolate(t *testing.T) (depot, workDir string) {
	t.Helper()
	depot = filepath.Join(t.TempDir(), ".distro")
	workDir = t.TempDir()
	t.Setenv("DISTRO_DEPOT_PATH", depot)
	t.Chdir(workDir)
	return depot, workDir
}

func TestLoadConfigDefaults(t *testing.T) {
	depot, _ := isolate(t)

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "Project.json", cfg.Manifest)
	assert.Equal(t, filepath.Join(".distro", "packages"), cfg.VendorDir)
	assert.Equal(t, filepath.Join(".distro", "installed.json"), cfg.InstalledFile)
	assert.Equal(t, filepath.Join(depot, "registries"), cfg.RegistriesDir)
	assert.Empty(t, cfg.Registries)
	assert.Equal(t, []string{"composer"}, cfg.InstallerCommand)
	assert.Equal(t, 60*time.Second, cfg.ScriptsTimeout)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.File)
}

func TestLoadConfigFromLocalFile(t *testing.T) {
	isolate(t)
	content := `manifest = "project.json"
registries = ["main", "extra"]

[installer]
command = ["sh", "-c", "exit 0"]

[scripts]
timeout = "5s"
`
	require.NoError(t, os.WriteFile(localConfigFileName, []byte(content), 0644))

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, localConfigFileName, cfg.File)
	assert.Equal(t, "project.json", cfg.Manifest)
	assert.Equal(t, []string{"main", "extra"}, cfg.Registries)
	assert.Equal(t, []string{"sh", "-c", "exit 0"}, cfg.InstallerCommand)
	assert.Equal(t, 5*time.Second, cfg.ScriptsTimeout)
	assert.Equal(t, "info", cfg.LogLevel, "unset keys keep their defaults")
}

func TestLoadConfigFromDepot(t *testing.T) {
	depot, _ := isolate(t)
	require.NoError(t, os.MkdirAll(depot, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(depot, configFileName), []byte("[log]\nlevel = \"debug\"\n"), 0644))

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(depot, configFileName), cfg.File)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadConfigEnvironmentOverrides(t *testing.T) {
	isolate(t)
	require.NoError(t, os.WriteFile(localConfigFileName, []byte("vendor_dir = \"from-file\"\n"), 0644))
	t.Setenv("DISTRO_VENDOR_DIR", "from-env")
	t.Setenv("DISTRO_INSTALLER_COMMAND", "true")
	t.Setenv("DISTRO_LOG_LEVEL", "warn")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.VendorDir)
	assert.Equal(t, []string{"true"}, cfg.InstallerCommand)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoadConfigErrors(t *testing.T) {
	_, workDir := isolate(t)

	_, err := LoadConfig(filepath.Join(workDir, "missing.toml"))
	assert.ErrorContains(t, err, "config file not found")

	bad := filepath.Join(workDir, "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte("[scripts]\ntimeout = \"soon\"\n"), 0644))
	_, err = LoadConfig(bad)
	assert.ErrorContains(t, err, "invalid scripts.timeout")

	broken := filepath.Join(workDir, "broken.toml")
	require.NoError(t, os.WriteFile(broken, []byte("manifest = \n"), 0644))
	_, err = LoadConfig(broken)
	assert.ErrorContains(t, err, "failed to read config file")
}

func TestWriteDefaultConfigRoundTrip(t *testing.T) {
	depot, _ := isolate(t)
	path := filepath.Join(depot, configFileName)

	require.NoError(t, WriteDefaultConfig(path, false))
	assert.ErrorContains(t, WriteDefaultConfig(path, false), "already exists")
	require.NoError(t, WriteDefaultConfig(path, true))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# Installer run on install; it must refresh installed_file")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, path, cfg.File)
	assert.Equal(t, []string{"composer"}, cfg.InstallerCommand)
	assert.Equal(t, 60*time.Second, cfg.ScriptsTimeout)
	assert.Equal(t, filepath.Join(depot, "registries"), cfg.RegistriesDir)
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "registries"), expandHome("~/registries"))
	assert.Equal(t, "relative/dir", expandHome("relative/dir"))
	assert.Equal(t, "/abs/~dir", expandHome("/abs/~dir"))
}

func TestNewLogger(t *testing.T) {
	logger, err := newLogger("warn", false)
	require.NoError(t, err)
	assert.Equal(t, log.WarnLevel, logger.GetLevel())

	logger, err = newLogger("warn", true)
	require.NoError(t, err)
	assert.Equal(t, log.DebugLevel, logger.GetLevel())

	_, err = newLogger("loud", false)
	assert.ErrorContains(t, err, "invalid log.level")
}

func TestParseInstallArgs(t *testing.T) {
	tests := []struct {
		args    []string
		name    string
		version string
		wantErr bool
	}{
		{args: []string{"acme/web"}, name: "acme/web"},
		{args: []string{"acme/web", "1.2.0"}, name: "acme/web", version: "1.2.0"},
		{args: []string{"acme/web@v1.2.0"}, name: "acme/web", version: "v1.2.0"},
		{args: []string{"acme/web@v1", "v2"}, wantErr: true},
		{args: []string{"@v1"}, wantErr: true},
		{args: []string{}, wantErr: true},
	}
	for _, tt := range tests {
		name, version, err := parseInstallArgs(tt.args)
		if tt.wantErr {
			assert.Error(t, err, tt.args)
			continue
		}
		require.NoError(t, err, tt.args)
		assert.Equal(t, tt.name, name)
		assert.Equal(t, tt.version, version)
	}
}

func TestValidateVersion(t *testing.T) {
	assert.NoError(t, validateVersion("v0.1.0"))
	assert.ErrorContains(t, validateVersion("0.1.0"), "must start with 'v'")
	assert.Error(t, validateVersion("vNext"))
}

func TestValidateProject(t *testing.T) {
	valid := types.Project{Name: "acme/project", UUID: "0b5f0d2e-5d4e-4a8e-9e43-7c1f3f8e2a11", Version: "v0.1.0"}
	assert.NoError(t, validateProject(valid, "Project.json"))
	assert.NoError(t, validateProject(types.Project{Name: "acme/project"}, "Project.json"))

	noName := valid
	noName.Name = ""
	assert.ErrorContains(t, validateProject(noName, "Project.json"), "valid package name")

	badUUID := valid
	badUUID.UUID = "nope"
	assert.ErrorContains(t, validateProject(badUUID, "Project.json"), "invalid UUID")

	badVersion := valid
	badVersion.Version = "someday"
	assert.ErrorContains(t, validateProject(badVersion, "Project.json"), "invalid version")
}
