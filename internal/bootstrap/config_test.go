package bootstrap

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "devinit.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfig_EmptyFileUsesDefaults(t *testing.T) {
	path := writeConfig(t, "")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfig_PartialOverride(t *testing.T) {
	path := writeConfig(t, `
packages: [inotify-tools, vim, jq]
pipx:
  break_system_packages: false
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"inotify-tools", "vim", "jq"}, cfg.Packages)
	assert.False(t, cfg.Pipx.BreakSystemPackages)

	// Untouched fields keep their defaults.
	assert.Equal(t, "env", cfg.EnvDir)
	assert.Equal(t, "dev", cfg.ProjectExtras)
	assert.Equal(t, filepath.Join(".devcontainer", "init-personal.bash"), cfg.PersonalScript)
}

func TestLoadConfig_UnknownKeyRejected(t *testing.T) {
	path := writeConfig(t, "pakages: [vim]\n")

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config")
}

func TestLoadConfig_EmptyPackagesRejected(t *testing.T) {
	path := writeConfig(t, "packages: []\n")

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least one package")
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "packages: [unclosed\n")

	_, err := LoadConfig(path)
	require.Error(t, err)
}
