package main

import (
	"context"
	"errors"
	"os"

	"github.com/alecthomas/kong"
	"github.com/wolfeidau/devinit/cmd/cli/internal/commands"
	"github.com/wolfeidau/devinit/internal/hooks"
	"github.com/wolfeidau/devinit/internal/shellexec"
)

var (
	version = "dev"
	cli     struct {
		Init         commands.InitCmd         `cmd:"" help:"Bootstrap the development container"`
		CheckXxx     commands.CheckXxxCmd     `cmd:"" help:"Fail when staged changes introduce an XXX marker"`
		CheckMarkers commands.CheckMarkersCmd `cmd:"" help:"Fail when staged changes match debug-marker patterns"`
		Debug        bool                     `help:"Enable debug mode."`
		Version      kong.VersionFlag
	}
)

func main() {
	ctx := context.Background()
	cmd := kong.Parse(&cli,
		kong.Vars{
			"version": version,
		},
		kong.BindTo(ctx, (*context.Context)(nil)))
	err := cmd.Run(&commands.Globals{Debug: cli.Debug, Version: version})

	// A failing bootstrap step exits with that command's own code; hook
	// findings exit 1. Both were already reported, so no extra output here.
	var exitErr *shellexec.ExitError
	switch {
	case errors.As(err, &exitErr):
		os.Exit(exitErr.Code)
	case errors.Is(err, hooks.ErrMarkersFound):
		os.Exit(1)
	}

	cmd.FatalIfErrorf(err)
}
