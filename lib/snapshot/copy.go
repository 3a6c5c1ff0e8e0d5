package snapshot

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/samber/oops"
	"github.com/sirupsen/logrus"
)

// CopyFile copies src to dst, creating dst's parent directories as needed
// and carrying over the source file's mode.
func CopyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return oops.Wrapf(err, "open %s", src)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return oops.Wrapf(err, "stat %s", src)
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return oops.Wrapf(err, "create directory for %s", dst)
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return oops.Wrapf(err, "create %s", dst)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return oops.Wrapf(err, "copy %s to %s", src, dst)
	}
	if err := out.Close(); err != nil {
		return oops.Wrapf(err, "close %s", dst)
	}
	return nil
}

// CopyTree recursively copies srcRoot into dstRoot, preserving relative
// structure and file modes. Files that vanish between the directory listing
// and the copy are skipped: the early snapshot reads a tree the wrapped
// application is concurrently mutating, and the copy is best-effort by
// contract.
func CopyTree(srcRoot, dstRoot string) error {
	err := filepath.WalkDir(srcRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) && path != srcRoot {
				log.WithField("path", path).Debug("Entry vanished during tree copy, skipping")
				return nil
			}
			return err
		}
		rel, err := filepath.Rel(srcRoot, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dstRoot, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		if err := CopyFile(path, target); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				log.WithField("path", path).Debug("File vanished during tree copy, skipping")
				return nil
			}
			return err
		}
		return nil
	})
	if err != nil {
		return oops.Wrapf(err, "copy tree %s to %s", srcRoot, dstRoot)
	}

	log.WithFields(logrus.Fields{
		"src": srcRoot,
		"dst": dstRoot,
	}).Debug("Copied config tree")
	return nil
}

// RemoveTree deletes root and everything under it. A root that is already
// gone is not an error.
func RemoveTree(root string) error {
	if err := os.RemoveAll(root); err != nil {
		return oops.Wrapf(err, "remove tree %s", root)
	}
	log.WithField("path", root).Debug("Removed tree")
	return nil
}
