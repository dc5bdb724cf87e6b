package hooks

import "errors"

var (
	// ErrDiffFailed indicates git could not produce the staged diff.
	ErrDiffFailed = errors.New("git diff failed")
	// ErrMarkersFound indicates the staged changes contain debug markers and
	// the commit should be rejected.
	ErrMarkersFound = errors.New("staged changes contain debug markers")
	// ErrBadHunkHeader indicates a line that is not a unified-diff hunk header.
	ErrBadHunkHeader = errors.New("not a unified-diff hunk header")
)
