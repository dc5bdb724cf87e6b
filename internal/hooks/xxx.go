package hooks

import (
	"context"
	"strings"
)

const xxxMarker = "# xxx"

// CheckXXX returns every line of the staged diff that contains an XXX marker,
// matched case-insensitively. An empty result means the commit is clean.
func CheckXXX(ctx context.Context) ([]string, error) {
	diff, err := stagedDiff(ctx, DiffBase(ctx), false, nil)
	if err != nil {
		return nil, err
	}
	return FindXXXLines(diff), nil
}

// FindXXXLines scans diff text for lines containing the XXX marker.
func FindXXXLines(diff string) []string {
	var matching []string
	for line := range strings.Lines(diff) {
		if strings.Contains(strings.ToLower(line), xxxMarker) {
			matching = append(matching, strings.TrimSuffix(line, "\n"))
		}
	}
	return matching
}
