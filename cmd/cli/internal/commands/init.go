package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/wolfeidau/devinit/internal/bootstrap"
	"github.com/wolfeidau/devinit/internal/logger"
	"github.com/wolfeidau/devinit/internal/shellexec"
)

// InitCmd bootstraps the development container. It must run from the
// repository root: the virtual environment, the project descriptor and the
// personal init script are all resolved relative to the working directory.
type InitCmd struct {
	Config string `help:"Path to the bootstrap config file" default:".devcontainer/devinit.yaml"`
	DryRun bool   `help:"Print the commands that would run without executing them" default:"false"`
}

func (c *InitCmd) Run(ctx context.Context, globals *Globals) error {
	log.Logger = logger.Setup(globals.Debug)

	cfg, err := bootstrap.LoadConfig(c.Config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log.Info().
		Str("version", globals.Version).
		Bool("dry_run", c.DryRun).
		Msg("Starting bootstrap")

	runner := bootstrap.NewRunner(cfg, shellexec.NewStreamRunner(os.Stdout), c.DryRun)
	return runner.Run(ctx)
}
