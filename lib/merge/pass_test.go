package merge

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

func defaultOpts() PassOptions {
	return PassOptions{Format: appconf.DefaultFormat()}
}

// TestRunPassEndToEnd drives one pass over a tree with all three file
// states and checks the store and the report.
func TestRunPassEndToEnd(t *testing.T) {
	before := t.TempDir()
	after := t.TempDir()
	store := t.TempDir()

	writeFile(t, before, "same.conf", "[ui]\ntheme = dark\n")
	writeFile(t, after, "same.conf", "[ui]\ntheme = dark\n")

	writeFile(t, before, "edited.conf", "[colors]\ntext = default\n")
	writeFile(t, after, "edited.conf", "[colors]\ntext = default\nfg = blue\n")

	writeFile(t, after, "nested/fresh.conf", "# kept verbatim\n[new]\nkey = value\n")

	report, err := RunPass(NewEngine(nil), before, after, store, defaultOpts())
	require.NoError(t, err)

	assert.Equal(t, 1, report.Unchanged)
	assert.Equal(t, 1, report.Merged)
	assert.Equal(t, 1, report.Copied)
	assert.Equal(t, 1, report.TotalChanges)
	assert.Len(t, report.Files, 3)

	// The merged file carries only the user's change.
	doc, err := appconf.Load(filepath.Join(store, "edited.conf"), appconf.DefaultFormat())
	require.NoError(t, err)
	colors := doc.Section("colors")
	require.NotNil(t, colors)
	assert.Equal(t, []string{"fg"}, colors.Keys())

	// The new file arrives byte-for-byte, comments included.
	got, err := os.ReadFile(filepath.Join(store, "nested", "fresh.conf"))
	require.NoError(t, err)
	assert.Equal(t, "# kept verbatim\n[new]\nkey = value\n", string(got))

	// The unchanged file never lands in the store.
	_, err = os.Stat(filepath.Join(store, "same.conf"))
	assert.True(t, os.IsNotExist(err))
}

// TestRunPassNoUserChangesWritesNothing verifies a byte-modified file whose
// documents are semantically identical (say, a comment the application
// added) does not create a store file.
func TestRunPassNoUserChangesWritesNothing(t *testing.T) {
	before := t.TempDir()
	after := t.TempDir()
	store := t.TempDir()

	writeFile(t, before, "app.conf", "[ui]\ntheme = dark\n")
	writeFile(t, after, "app.conf", "# runtime note\n[ui]\ntheme = dark\n")

	report, err := RunPass(NewEngine(nil), before, after, store, defaultOpts())
	require.NoError(t, err)

	assert.Equal(t, 0, report.Merged)
	assert.Equal(t, 0, report.TotalChanges)
	_, err = os.Stat(filepath.Join(store, "app.conf"))
	assert.True(t, os.IsNotExist(err), "store must stay untouched when nothing user-visible changed")
}

// TestRunPassMergesIntoExistingStoreFile verifies merging extends a store
// file that already has recordings instead of replacing it.
func TestRunPassMergesIntoExistingStoreFile(t *testing.T) {
	before := t.TempDir()
	after := t.TempDir()
	store := t.TempDir()

	writeFile(t, store, "app.conf", "[keybindings]\ncopy = ctrl+c\n")
	writeFile(t, before, "app.conf", "[colors]\ntext = default\n")
	writeFile(t, after, "app.conf", "[colors]\ntext = green\n")

	_, err := RunPass(NewEngine(nil), before, after, store, defaultOpts())
	require.NoError(t, err)

	doc, err := appconf.Load(filepath.Join(store, "app.conf"), appconf.DefaultFormat())
	require.NoError(t, err)

	v, ok := doc.Get("keybindings", "copy")
	assert.True(t, ok, "prior recordings must survive")
	assert.Equal(t, "ctrl+c", v)
	v, _ = doc.Get("colors", "text")
	assert.Equal(t, "green", v)
}

// TestRunPassRespectsIgnoreRules verifies rules flow from the engine down
// through the pass.
func TestRunPassRespectsIgnoreRules(t *testing.T) {
	before := t.TempDir()
	after := t.TempDir()
	store := t.TempDir()

	writeFile(t, before, "app.conf", "[state]\nwindow_x = 10\n")
	writeFile(t, after, "app.conf", "[state]\nwindow_x = 900\n")

	rules := []Rule{{File: "app.conf", Section: "state", Key: "window_x"}}
	report, err := RunPass(NewEngine(rules), before, after, store, defaultOpts())
	require.NoError(t, err)

	assert.Equal(t, 0, report.Merged)
	_, err = os.Stat(filepath.Join(store, "app.conf"))
	assert.True(t, os.IsNotExist(err))
}

// TestRunPassShowDiff verifies the unified diff is collected for modified
// files when requested.
func TestRunPassShowDiff(t *testing.T) {
	before := t.TempDir()
	after := t.TempDir()
	store := t.TempDir()

	writeFile(t, before, "app.conf", "[colors]\ntext = default\n")
	writeFile(t, after, "app.conf", "[colors]\ntext = default\nfg = blue\n")

	opts := defaultOpts()
	opts.ShowDiff = true
	report, err := RunPass(NewEngine(nil), before, after, store, opts)
	require.NoError(t, err)

	require.Len(t, report.Files, 1)
	diff := report.Files[0].Diff
	assert.Contains(t, diff, "app.conf (snapshot)")
	assert.Contains(t, diff, "app.conf (final)")
	assert.Contains(t, diff, "+fg = blue")
}

// TestRunPassMissingBeforeRoot verifies an absent early-snapshot root makes
// every file New: copied verbatim, no merging.
func TestRunPassMissingBeforeRoot(t *testing.T) {
	after := t.TempDir()
	store := t.TempDir()

	writeFile(t, after, "app.conf", "[ui]\ntheme = dark\n")

	report, err := RunPass(NewEngine(nil), filepath.Join(t.TempDir(), "absent"), after, store, defaultOpts())
	require.NoError(t, err)

	assert.Equal(t, 1, report.Copied)
	got, err := os.ReadFile(filepath.Join(store, "app.conf"))
	require.NoError(t, err)
	assert.Equal(t, "[ui]\ntheme = dark\n", string(got))
}
