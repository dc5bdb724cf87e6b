// Package hooks implements the repository's pre-commit checks: scanning the
// staged diff for debug markers that must not land in a commit. All git
// operations shell out to the git CLI in the working directory.
package hooks

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// EmptyTreeID is git's well-known empty tree object. It is the diff base for
// the initial commit, when HEAD does not resolve yet.
const EmptyTreeID = "4b825dc642cb6eb9a060e54bf8d69288fbee4904"

// DiffBase resolves the ref staged changes are compared against: HEAD when it
// exists, the empty tree before the first commit.
func DiffBase(ctx context.Context) string {
	cmd := exec.CommandContext(ctx, "git", "rev-parse", "--verify", "HEAD")
	if err := cmd.Run(); err != nil {
		return EmptyTreeID
	}
	return "HEAD"
}

// stagedDiff returns the diff between the index and base. zeroContext drops
// context lines so hunk headers carry exact target line numbers. File
// arguments are passed after "--" so they can never be parsed as options.
func stagedDiff(ctx context.Context, base string, zeroContext bool, files []string) (string, error) {
	args := []string{"diff", "--cached"}
	if zeroContext {
		args = append(args, "-U0")
	}
	args = append(args, base)
	if len(files) > 0 {
		args = append(args, "--")
		args = append(args, files...)
	}

	// #nosec G204 - argv is a fixed git subcommand plus "--"-terminated paths
	cmd := exec.CommandContext(ctx, "git", args...)
	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", fmt.Errorf("%w: %s", ErrDiffFailed, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return "", fmt.Errorf("%w: %v", ErrDiffFailed, err)
	}

	return string(out), nil
}
