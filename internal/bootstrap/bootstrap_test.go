package bootstrap

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wolfeidau/devinit/internal/shellexec"
)

// fakeRunner records every command and optionally fails at a given call index.
type fakeRunner struct {
	commands []shellexec.Command
	failAt   int // 1-based call index, 0 means never fail
	failErr  error
}

func (f *fakeRunner) Run(ctx context.Context, cmd shellexec.Command) error {
	f.commands = append(f.commands, cmd)
	if f.failAt != 0 && len(f.commands) == f.failAt {
		return f.failErr
	}
	return nil
}

func TestRunner_FreshCheckout(t *testing.T) {
	t.Chdir(t.TempDir())

	exec := &fakeRunner{}
	runner := NewRunner(DefaultConfig(), exec, false)

	err := runner.Run(context.Background())
	require.NoError(t, err)

	// No env/ and no personal script: venv is created, personal init skipped.
	require.Len(t, exec.commands, 6)
	assert.Contains(t, exec.commands[0].Args, "update")
	assert.Contains(t, exec.commands[1].Args, "inotify-tools")
	assert.Contains(t, exec.commands[1].Args, "vim")
	assert.Contains(t, exec.commands[1].Args, "--no-install-recommends")
	assert.Equal(t, "pip", exec.commands[2].Name)
	assert.Contains(t, exec.commands[2].Args, "pipx")
	assert.Contains(t, exec.commands[2].Args, "--break-system-packages")
	assert.Equal(t, "pipx", exec.commands[3].Name)
	assert.Contains(t, exec.commands[3].Args, "pre-commit")
	assert.Equal(t, "python3", exec.commands[4].Name)
	assert.Equal(t, []string{"-m", "venv", "env"}, exec.commands[4].Args)
	assert.Equal(t, filepath.Join("env", "bin", "pip"), exec.commands[5].Name)
	assert.Contains(t, exec.commands[5].Args, ".[dev]")
}

func TestRunner_NonInteractiveMarker(t *testing.T) {
	t.Chdir(t.TempDir())

	exec := &fakeRunner{}
	runner := NewRunner(DefaultConfig(), exec, false)

	err := runner.Run(context.Background())
	require.NoError(t, err)

	for _, cmd := range exec.commands {
		assert.Equal(t, "noninteractive", cmd.Env["DEBIAN_FRONTEND"], "command %s", cmd.String())
	}
}

func TestRunner_ExistingEnvSkipsVenv(t *testing.T) {
	t.Chdir(t.TempDir())
	require.NoError(t, os.Mkdir("env", 0o755))

	exec := &fakeRunner{}
	runner := NewRunner(DefaultConfig(), exec, false)

	err := runner.Run(context.Background())
	require.NoError(t, err)

	for _, cmd := range exec.commands {
		assert.NotContains(t, cmd.Args, "venv", "command %s", cmd.String())
	}
}

func TestRunner_PersonalScriptRunsLast(t *testing.T) {
	t.Chdir(t.TempDir())
	require.NoError(t, os.MkdirAll(".devcontainer", 0o755))
	script := filepath.Join(".devcontainer", "init-personal.bash")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/bash\n"), 0o755))

	exec := &fakeRunner{}
	runner := NewRunner(DefaultConfig(), exec, false)

	err := runner.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, exec.commands, 7)
	last := exec.commands[len(exec.commands)-1]
	assert.Equal(t, "bash", last.Name)
	assert.Equal(t, []string{script}, last.Args)
}

func TestRunner_FailFast(t *testing.T) {
	t.Chdir(t.TempDir())

	// Fail the second step (package install) with the tool's own exit code.
	exec := &fakeRunner{failAt: 2, failErr: &shellexec.ExitError{Code: 100}}
	runner := NewRunner(DefaultConfig(), exec, false)

	err := runner.Run(context.Background())
	require.Error(t, err)
	assert.Len(t, exec.commands, 2, "no step after the failing one may run")

	var exitErr *shellexec.ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, 100, exitErr.Code)
	assert.Contains(t, err.Error(), "apt-install")
}

func TestRunner_FailingPersonalScriptPropagates(t *testing.T) {
	t.Chdir(t.TempDir())
	require.NoError(t, os.MkdirAll(".devcontainer", 0o755))
	script := filepath.Join(".devcontainer", "init-personal.bash")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/bash\nexit 3\n"), 0o755))

	exec := &fakeRunner{failAt: 7, failErr: &shellexec.ExitError{Code: 3}}
	runner := NewRunner(DefaultConfig(), exec, false)

	err := runner.Run(context.Background())
	require.Error(t, err)

	var exitErr *shellexec.ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, 3, exitErr.Code)
}

func TestRunner_DryRunExecutesNothing(t *testing.T) {
	t.Chdir(t.TempDir())

	exec := &fakeRunner{}
	runner := NewRunner(DefaultConfig(), exec, true)

	err := runner.Run(context.Background())
	require.NoError(t, err)
	assert.Empty(t, exec.commands)

	// Dry-run must not create the virtual environment either.
	_, statErr := os.Stat("env")
	assert.True(t, os.IsNotExist(statErr))
}

func TestSteps_Order(t *testing.T) {
	runner := NewRunner(DefaultConfig(), &fakeRunner{}, false)

	var names []string
	for _, step := range runner.Steps() {
		names = append(names, step.Name)
	}

	require.Equal(t, []string{
		"apt-update",
		"apt-install",
		"install-pipx",
		"install-pre-commit",
		"create-venv",
		"install-project",
		"personal-init",
	}, names)
}

func TestProjectTarget(t *testing.T) {
	assert.Equal(t, ".[dev]", projectTarget("dev"))
	assert.Equal(t, ".", projectTarget(""))
}

func TestPipxInstallArgs_PolicyOff(t *testing.T) {
	args := pipxInstallArgs(Pipx{BreakSystemPackages: false})
	assert.False(t, strings.Contains(strings.Join(args, " "), "--break-system-packages"))
	assert.Contains(t, args, "--user")
}
