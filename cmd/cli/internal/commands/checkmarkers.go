package commands

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/wolfeidau/devinit/internal/hooks"
	"github.com/wolfeidau/devinit/internal/logger"
)

// CheckMarkersCmd is the pre-commit hook that rejects a commit whose added
// lines match any of the configured debug-marker patterns.
type CheckMarkersCmd struct {
	Pattern []string `help:"A regex pattern to search for in the code (can be specified multiple times)" short:"p" required:""`
	Files   []string `arg:"" optional:"" help:"The files to check. If not specified, all staged files are checked"`
}

func (c *CheckMarkersCmd) Run(ctx context.Context, globals *Globals) error {
	log.Logger = logger.Setup(globals.Debug)

	findings, err := hooks.CheckMarkers(ctx, c.Pattern, c.Files)
	if err != nil {
		return err
	}
	if len(findings) == 0 {
		return nil
	}

	for _, finding := range findings {
		fmt.Println(finding.String())
	}

	return hooks.ErrMarkersFound
}
