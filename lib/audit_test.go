// Package lib provides a cross-package audit test file verifying the
// conventions that keep user config data safe: digest choice, confined
// tree deletion, and error returns instead of process exits.
package lib

import (
	"bytes"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/crypto/blake2b"
)

// walkGoSources calls fn for every non-test Go source file under lib/.
func walkGoSources(t *testing.T, fn func(path string, file *ast.File)) {
	t.Helper()
	err := filepath.Walk(".", func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}

		fset := token.NewFileSet()
		node, err := parser.ParseFile(fset, path, nil, 0)
		if err != nil {
			// Skip files that can't be parsed
			return nil
		}
		fn(path, node)
		return nil
	})
	if err != nil {
		t.Fatalf("Failed to walk lib directory: %v", err)
	}
}

// callsTo counts references to pkg.name in the file.
func callsTo(file *ast.File, pkg, name string) int {
	count := 0
	ast.Inspect(file, func(n ast.Node) bool {
		sel, ok := n.(*ast.SelectorExpr)
		if !ok {
			return true
		}
		ident, ok := sel.X.(*ast.Ident)
		if !ok {
			return true
		}
		if ident.Name == pkg && sel.Sel.Name == name {
			count++
		}
		return true
	})
	return count
}

// TestNoWeakHashImports verifies that no package imports crypto/md5 or
// crypto/sha1. File identity rides on blake2b digests; a weak hash
// sneaking in would silently change what "modified" means.
func TestNoWeakHashImports(t *testing.T) {
	walkGoSources(t, func(path string, file *ast.File) {
		for _, imp := range file.Imports {
			importPath := strings.Trim(imp.Path.Value, `"`)
			if importPath == "crypto/md5" || importPath == "crypto/sha1" {
				t.Errorf("File %s imports %s - file identity uses blake2b", path, importPath)
			}
		}
	})

	t.Log("Verified: no weak hash imports in lib/ (excluding tests)")
}

// TestExitConfinedToCommandBoundary verifies that no lib package calls
// os.Exit. Library code returns errors; mapping an outcome to a process
// exit code happens once, in main.
func TestExitConfinedToCommandBoundary(t *testing.T) {
	walkGoSources(t, func(path string, file *ast.File) {
		if n := callsTo(file, "os", "Exit"); n > 0 {
			t.Errorf("File %s calls os.Exit %d time(s) - return an error instead", path, n)
		}
	})

	t.Log("Verified: no os.Exit calls in lib/ (excluding tests)")
}

// TestTreeRemovalConfinedToSnapshot verifies that os.RemoveAll appears
// only inside the snapshot package. Recursive deletion of user data is
// confined to RemoveTree so there is exactly one place to review.
func TestTreeRemovalConfinedToSnapshot(t *testing.T) {
	walkGoSources(t, func(path string, file *ast.File) {
		if strings.HasPrefix(filepath.ToSlash(path), "snapshot/") {
			return
		}
		if n := callsTo(file, "os", "RemoveAll"); n > 0 {
			t.Errorf("File %s calls os.RemoveAll %d time(s) - use snapshot.RemoveTree", path, n)
		}
	})

	t.Log("Verified: recursive deletion is confined to lib/snapshot")
}

// TestBlake2bDigestSanity verifies that blake2b is functioning correctly:
// fixed output size, deterministic, and distinct for distinct input.
func TestBlake2bDigestSanity(t *testing.T) {
	a := blake2b.Sum256([]byte("theme = dark\n"))
	b := blake2b.Sum256([]byte("theme = light\n"))

	if len(a) != 32 || len(b) != 32 {
		t.Fatalf("blake2b.Sum256 returned %d and %d bytes, expected 32", len(a), len(b))
	}
	if bytes.Equal(a[:], b[:]) {
		t.Error("blake2b.Sum256 returned identical digests for distinct input")
	}
	if again := blake2b.Sum256([]byte("theme = dark\n")); !bytes.Equal(a[:], again[:]) {
		t.Error("blake2b.Sum256 is not deterministic")
	}

	t.Log("Verified: blake2b digests are sized, deterministic and distinct")
}
