package bootstrap

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultConfigPath is where the optional bootstrap config is looked up,
// relative to the working directory.
const DefaultConfigPath = ".devcontainer/devinit.yaml"

// Config controls the bootstrap sequence. Every field has a default, so a
// repository without a config file gets the stock behavior.
type Config struct {
	// Packages installed via the OS package manager.
	Packages []string `yaml:"packages"`
	// EnvDir is the virtual environment directory, relative to the working
	// directory. Creation is skipped when it already exists.
	EnvDir string `yaml:"env_dir"`
	// PersonalScript is executed after the main sequence when present.
	PersonalScript string `yaml:"personal_script"`
	// ProjectExtras is the optional dependency group installed with the
	// project. Empty installs the project without extras.
	ProjectExtras string `yaml:"project_extras"`
	Pipx          Pipx   `yaml:"pipx"`
}

// Pipx holds policy for the user-scope installer tool.
type Pipx struct {
	// BreakSystemPackages bypasses the externally-managed-environment
	// protection when installing pipx into the user scope.
	BreakSystemPackages bool `yaml:"break_system_packages"`
}

// DefaultConfig returns the stock bootstrap configuration.
func DefaultConfig() Config {
	return Config{
		Packages:       []string{"inotify-tools", "vim"},
		EnvDir:         "env",
		PersonalScript: filepath.Join(".devcontainer", "init-personal.bash"),
		ProjectExtras:  "dev",
		Pipx:           Pipx{BreakSystemPackages: true},
	}
}

// LoadConfig reads the config file at path, applying defaults for any field
// the file does not set. A missing file is not an error; unknown keys are.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("failed to open config %s: %w", path, err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return DefaultConfig(), nil
		}
		return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

func (c Config) validate() error {
	if len(c.Packages) == 0 {
		return errors.New("packages must list at least one package")
	}
	if c.EnvDir == "" {
		return errors.New("env_dir must not be empty")
	}
	if c.PersonalScript == "" {
		return errors.New("personal_script must not be empty")
	}
	return nil
}
