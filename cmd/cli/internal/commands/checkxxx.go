package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/wolfeidau/devinit/internal/hooks"
	"github.com/wolfeidau/devinit/internal/logger"
)

// CheckXxxCmd is the pre-commit hook that rejects a commit introducing an
// XXX marker anywhere in the staged diff.
type CheckXxxCmd struct{}

func (c *CheckXxxCmd) Run(ctx context.Context, globals *Globals) error {
	log.Logger = logger.Setup(globals.Debug)

	matching, err := hooks.CheckXXX(ctx)
	if err != nil {
		return err
	}
	if len(matching) == 0 {
		return nil
	}

	fmt.Fprintln(os.Stderr, "This commit would introduce an XXX marker!")
	fmt.Println(strings.Join(matching, "\n"))

	return hooks.ErrMarkersFound
}
