package hooks

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Finding is one debug-marker occurrence in the staged changes.
type Finding struct {
	Pattern string
	File    string
	Line    int
}

func (f Finding) String() string {
	return fmt.Sprintf("Error pattern %q detected at %s:%d", f.Pattern, f.File, f.Line)
}

// CheckMarkers diffs the index against the resolved base with zero context
// and reports every added line matching one of the regex patterns. When files
// is non-empty the check is restricted to those paths.
func CheckMarkers(ctx context.Context, patterns []string, files []string) ([]Finding, error) {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", p, err)
		}
		compiled = append(compiled, re)
	}

	diff, err := stagedDiff(ctx, DiffBase(ctx), true, files)
	if err != nil {
		return nil, err
	}

	return scanDiff(diff, compiled), nil
}

// scanDiff walks a zero-context unified diff, tracking the target line number
// from hunk headers. Only added lines are matched, so removing a marker never
// fails the check. Binary file notices carry no added lines and fall through.
// A "+++ " line counts as a file header only directly after its "--- "
// partner; anywhere else it is an added line whose content starts with "++ ".
func scanDiff(diff string, patterns []*regexp.Regexp) []Finding {
	var findings []Finding
	var file string
	var prev string
	lineNumber := 1

	for _, line := range strings.Split(diff, "\n") {
		switch {
		case strings.HasPrefix(line, "+++ ") && strings.HasPrefix(prev, "--- "):
			file = parseTargetFile(line)

		case strings.HasPrefix(line, "@@"):
			if n, err := parseHunkStart(line); err == nil {
				lineNumber = n
			}

		case strings.HasPrefix(line, "+"):
			for _, re := range patterns {
				if re.MatchString(line) {
					findings = append(findings, Finding{Pattern: re.String(), File: file, Line: lineNumber})
				}
			}
			lineNumber++
		}
		prev = line
	}

	return findings
}

// parseTargetFile extracts the path from a "+++ b/<path>" diff header.
func parseTargetFile(line string) string {
	name := strings.TrimPrefix(line, "+++ ")
	if i := strings.IndexByte(name, '\t'); i != -1 {
		name = name[:i]
	}
	return strings.TrimPrefix(name, "b/")
}

// parseHunkStart extracts the target-file start line from a hunk header in
// the form "@@ -14,0 +20,3 @@".
func parseHunkStart(line string) (int, error) {
	if !strings.HasPrefix(line, "@@") {
		return 0, ErrBadHunkHeader
	}

	fields := strings.Fields(line)
	if len(fields) < 3 || !strings.HasPrefix(fields[2], "+") {
		return 0, fmt.Errorf("%w: %s", ErrBadHunkHeader, line)
	}

	start := strings.TrimPrefix(fields[2], "+")
	if i := strings.IndexByte(start, ','); i != -1 {
		start = start[:i]
	}

	n, err := strconv.Atoi(start)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrBadHunkHeader, line)
	}
	return n, nil
}
