package snapshot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/confkeep/confkeep/lib/appconf"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// TestClassifyAllThreeStates verifies that one walk assigns exactly one of
// unchanged/new/modified per file and covers the full file list.
func TestClassifyAllThreeStates(t *testing.T) {
	baseline := t.TempDir()
	after := t.TempDir()

	writeFile(t, baseline, "same.conf", "[ui]\ntheme = dark\n")
	writeFile(t, after, "same.conf", "[ui]\ntheme = dark\n")

	writeFile(t, baseline, "edited.conf", "[colors]\ntext = default\n")
	writeFile(t, after, "edited.conf", "[colors]\ntext = green\n")

	writeFile(t, after, "fresh.conf", "[new]\nkey = value\n")

	statuses, err := Classify(baseline, after, appconf.DefaultFormat())
	require.NoError(t, err)
	require.Len(t, statuses, 3)

	byPath := map[string]Classification{}
	for _, s := range statuses {
		byPath[s.RelPath] = s.State
	}
	assert.Equal(t, Unchanged, byPath["same.conf"])
	assert.Equal(t, Modified, byPath["edited.conf"])
	assert.Equal(t, New, byPath["fresh.conf"])
}

// TestClassifyMissingBaselineRoot verifies a nonexistent baseline root is
// treated as an empty baseline: every after-file classifies as New.
func TestClassifyMissingBaselineRoot(t *testing.T) {
	after := t.TempDir()
	writeFile(t, after, "a.conf", "[s]\nk = v\n")
	writeFile(t, after, "nested/b.conf", "[s]\nk = v\n")

	statuses, err := Classify(filepath.Join(t.TempDir(), "absent"), after, appconf.DefaultFormat())
	require.NoError(t, err)
	require.Len(t, statuses, 2)
	for _, s := range statuses {
		assert.Equal(t, New, s.State, "path %s", s.RelPath)
	}
}

// TestClassifySuffixFilter verifies only files carrying the configured
// suffix are classified; everything else is invisible to the walk.
func TestClassifySuffixFilter(t *testing.T) {
	baseline := t.TempDir()
	after := t.TempDir()

	writeFile(t, after, "app.conf", "[s]\nk = v\n")
	writeFile(t, after, "notes.txt", "not a config file\n")
	writeFile(t, after, "app.conf.bak", "[s]\nk = v\n")

	statuses, err := Classify(baseline, after, appconf.DefaultFormat())
	require.NoError(t, err)
	require.Len(t, statuses, 1)
	assert.Equal(t, "app.conf", statuses[0].RelPath)
}

// TestClassifyNestedRelativePaths verifies directories are never classified
// and relative paths keep their subdirectory structure.
func TestClassifyNestedRelativePaths(t *testing.T) {
	baseline := t.TempDir()
	after := t.TempDir()

	writeFile(t, baseline, "sub/dir/deep.conf", "[a]\nx = 1\n")
	writeFile(t, after, "sub/dir/deep.conf", "[a]\nx = 2\n")

	statuses, err := Classify(baseline, after, appconf.DefaultFormat())
	require.NoError(t, err)
	require.Len(t, statuses, 1)
	assert.Equal(t, filepath.Join("sub", "dir", "deep.conf"), statuses[0].RelPath)
	assert.Equal(t, Modified, statuses[0].State)
}

// TestClassificationString pins the log/report rendering of each state.
func TestClassificationString(t *testing.T) {
	assert.Equal(t, "unchanged", Unchanged.String())
	assert.Equal(t, "new", New.String())
	assert.Equal(t, "modified", Modified.String())
}

// TestFileDigestDistinguishesContent verifies digests agree on identical
// content and disagree on different content.
func TestFileDigestDistinguishesContent(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.conf", "same bytes")
	writeFile(t, dir, "b.conf", "same bytes")
	writeFile(t, dir, "c.conf", "other bytes")

	da, err := DigestString(filepath.Join(dir, "a.conf"))
	require.NoError(t, err)
	db, err := DigestString(filepath.Join(dir, "b.conf"))
	require.NoError(t, err)
	dc, err := DigestString(filepath.Join(dir, "c.conf"))
	require.NoError(t, err)

	assert.Equal(t, da, db)
	assert.NotEqual(t, da, dc)
	assert.Len(t, da, 64) // blake2b-256 hex
}
