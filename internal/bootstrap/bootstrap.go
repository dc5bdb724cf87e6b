// Package bootstrap prepares a development container: OS packages, the pipx
// installer tool, the pre-commit hook manager, a project virtual environment
// and an optional personal init script. Steps run in a fixed order and the
// first failure aborts the run with no retry and no rollback.
package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/wolfeidau/devinit/internal/shellexec"
)

// Step is one entry in the bootstrap sequence. When Guard is non-nil it is
// consulted before execution; a true result skips the command and logs the
// reason instead.
type Step struct {
	Name    string
	Command shellexec.Command
	Guard   func() (skip bool, reason string)
}

// Runner executes the bootstrap sequence.
type Runner struct {
	cfg    Config
	exec   shellexec.Runner
	dryRun bool
}

func NewRunner(cfg Config, exec shellexec.Runner, dryRun bool) *Runner {
	return &Runner{cfg: cfg, exec: exec, dryRun: dryRun}
}

// Run executes every step in order, stopping at the first failure. The
// returned error keeps the failing command's ExitError in its chain so the
// caller can exit with the same code.
func (r *Runner) Run(ctx context.Context) error {
	runLog := log.With().Str("run_id", uuid.NewString()).Logger()

	for _, step := range r.Steps() {
		if err := r.runStep(ctx, runLog, step); err != nil {
			return fmt.Errorf("step %s: %w", step.Name, err)
		}
	}

	runLog.Info().Msg("bootstrap complete")
	return nil
}

func (r *Runner) runStep(ctx context.Context, runLog zerolog.Logger, step Step) error {
	stepLog := runLog.With().Str("step", step.Name).Logger()

	if step.Guard != nil {
		if skip, reason := step.Guard(); skip {
			stepLog.Info().Str("reason", reason).Msg("step skipped")
			return nil
		}
	}

	if r.dryRun {
		stepLog.Info().Str("command", step.Command.String()).Msg("dry-run")
		return nil
	}

	stepLog.Info().Str("command", step.Command.String()).Msg("step starting")
	started := time.Now()

	if err := r.exec.Run(ctx, step.Command); err != nil {
		stepLog.Error().Err(err).Dur("duration", time.Since(started)).Msg("step failed")
		return err
	}

	stepLog.Info().Dur("duration", time.Since(started)).Msg("step completed")
	return nil
}

// Steps builds the ordered sequence from the configuration. Every command
// carries the non-interactive marker so package installs never prompt.
func (r *Runner) Steps() []Step {
	env := runEnv()

	installArgs := append([]string{"install", "-y", "--no-install-recommends"}, r.cfg.Packages...)

	return []Step{
		{
			Name:    "apt-update",
			Command: aptCommand(env, "update"),
		},
		{
			Name:    "apt-install",
			Command: aptCommand(env, installArgs...),
		},
		{
			Name:    "install-pipx",
			Command: shellexec.Command{Name: "pip", Args: pipxInstallArgs(r.cfg.Pipx), Env: env},
		},
		{
			Name:    "install-pre-commit",
			Command: shellexec.Command{Name: "pipx", Args: []string{"install", "pre-commit"}, Env: env},
		},
		{
			Name:    "create-venv",
			Command: shellexec.Command{Name: "python3", Args: []string{"-m", "venv", r.cfg.EnvDir}, Env: env},
			Guard:   dirExists(r.cfg.EnvDir),
		},
		{
			Name: "install-project",
			Command: shellexec.Command{
				Name: filepath.Join(r.cfg.EnvDir, "bin", "pip"),
				Args: []string{"install", "-e", projectTarget(r.cfg.ProjectExtras)},
				Env:  env,
			},
		},
		{
			Name:    "personal-init",
			Command: shellexec.Command{Name: "bash", Args: []string{r.cfg.PersonalScript}, Env: env},
			Guard:   fileMissing(r.cfg.PersonalScript),
		},
	}
}

func runEnv() map[string]string {
	return map[string]string{"DEBIAN_FRONTEND": "noninteractive"}
}

// aptCommand wraps apt-get in sudo when not running as root, preserving the
// non-interactive marker across the privilege boundary.
func aptCommand(env map[string]string, args ...string) shellexec.Command {
	if os.Geteuid() == 0 {
		return shellexec.Command{Name: "apt-get", Args: args, Env: env}
	}
	sudoArgs := append([]string{"--preserve-env=DEBIAN_FRONTEND", "apt-get"}, args...)
	return shellexec.Command{Name: "sudo", Args: sudoArgs, Env: env}
}

func pipxInstallArgs(policy Pipx) []string {
	args := []string{"install", "--user", "pipx"}
	if policy.BreakSystemPackages {
		args = append(args, "--break-system-packages")
	}
	return args
}

func projectTarget(extras string) string {
	if extras == "" {
		return "."
	}
	return fmt.Sprintf(".[%s]", extras)
}

func dirExists(dir string) func() (bool, string) {
	return func() (bool, string) {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return true, fmt.Sprintf("virtual environment %s already exists", dir)
		}
		return false, ""
	}
}

func fileMissing(path string) func() (bool, string) {
	return func() (bool, string) {
		if _, err := os.Stat(path); err != nil {
			return true, fmt.Sprintf("personal init script %s not found", path)
		}
		return false, ""
	}
}
