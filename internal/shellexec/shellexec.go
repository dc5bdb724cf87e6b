// Package shellexec runs external commands for the bootstrap sequence. Output
// is streamed to the operator as it is produced, and non-zero exits are
// surfaced as ExitError so callers can propagate the command's own exit code.
package shellexec

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	consolestream "github.com/wolfeidau/console-stream"
)

// ExitError reports a command that ran to completion and exited non-zero.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("command exited with code %d", e.Code)
}

// Command describes a single external command invocation. Env entries are
// overlaid on the parent environment; the parent environment is always
// inherited.
type Command struct {
	Name string
	Args []string
	Env  map[string]string
}

func (c Command) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// Runner executes a single command and blocks until it finishes.
type Runner interface {
	Run(ctx context.Context, cmd Command) error
}

// StreamRunner executes commands via console-stream in pipe mode, forwarding
// combined output to out in near real time.
type StreamRunner struct {
	out           io.Writer
	flushInterval time.Duration
}

func NewStreamRunner(out io.Writer) *StreamRunner {
	return &StreamRunner{out: out, flushInterval: 250 * time.Millisecond}
}

func (r *StreamRunner) Run(ctx context.Context, cmd Command) error {
	opts := []consolestream.ProcessOption{
		consolestream.WithPipeMode(),
		consolestream.WithFlushInterval(r.flushInterval),
	}
	if len(cmd.Env) > 0 {
		opts = append(opts, consolestream.WithEnvMap(cmd.Env))
	}

	process := consolestream.NewProcess(cmd.Name, cmd.Args, opts...)

	// A write failure must not abandon the stream mid-flight: the loop keeps
	// draining until ProcessEnd so the child is reaped deterministically.
	var writeErr error

	for event, err := range process.ExecuteAndStream(ctx) {
		if err != nil {
			return fmt.Errorf("command %q failed: %w", cmd.String(), err)
		}

		switch e := event.Event.(type) {
		case *consolestream.ProcessStart:
			log.Debug().Int("pid", e.PID).Str("command", cmd.String()).Msg("process started")

		case *consolestream.OutputData:
			if writeErr != nil {
				continue
			}
			if _, err := r.out.Write(e.Data); err != nil {
				writeErr = fmt.Errorf("failed to write command output: %w", err)
			}

		case *consolestream.ProcessEnd:
			log.Debug().Int("exit_code", e.ExitCode).Dur("duration", e.Duration).Msg("process finished")
			if writeErr != nil {
				return writeErr
			}
			if e.ExitCode != 0 {
				return &ExitError{Code: e.ExitCode}
			}
			return nil
		}
	}

	if writeErr != nil {
		return writeErr
	}
	return errors.New("process stream ended without a completion event")
}
