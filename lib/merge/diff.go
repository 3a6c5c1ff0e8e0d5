package merge

import (
	"os"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/samber/oops"
)

// unifiedDiff renders the line diff between the early-snapshot and final
// content of one file, labeled with its relative path.
func unifiedDiff(beforePath, afterPath, rel string) (string, error) {
	beforeText, err := os.ReadFile(beforePath)
	if err != nil {
		return "", oops.Wrapf(err, "read %s", beforePath)
	}
	afterText, err := os.ReadFile(afterPath)
	if err != nil {
		return "", oops.Wrapf(err, "read %s", afterPath)
	}

	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(beforeText)),
		B:        difflib.SplitLines(string(afterText)),
		FromFile: rel + " (snapshot)",
		ToFile:   rel + " (final)",
		Context:  3,
	}
	return difflib.GetUnifiedDiffString(diff)
}
