package commands

// Globals holds flags shared by every subcommand.
type Globals struct {
	Debug   bool
	Version string
}
