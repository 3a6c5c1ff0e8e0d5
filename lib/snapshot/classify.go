package snapshot

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/samber/oops"
	"github.com/sirupsen/logrus"

	"github.com/confkeep/confkeep/lib/appconf"
	"github.com/confkeep/confkeep/lib/util/logger"
)

var log = logger.GetConfKeepLogger()

// Classification describes how a file under the after-root relates to its
// counterpart under the baseline root.
type Classification int

const (
	// Unchanged means the file exists in both trees with identical content.
	Unchanged Classification = iota
	// New means the file has no counterpart under the baseline root.
	New
	// Modified means both trees have the file but the content differs.
	Modified
)

func (c Classification) String() string {
	switch c {
	case Unchanged:
		return "unchanged"
	case New:
		return "new"
	case Modified:
		return "modified"
	default:
		return "unknown"
	}
}

// FileStatus is one classified file, addressed by its path relative to the
// after-root.
type FileStatus struct {
	RelPath string
	State   Classification
}

// Classify walks afterRoot recursively and classifies every file whose name
// carries the configuration-file suffix from f. The baseline root is only
// consulted for presence and content of the same relative path; a baseline
// root that does not exist is an empty baseline, so every file comes back
// New. Directories are never classified. The walk is lexical, so the result
// order is deterministic.
func Classify(baselineRoot, afterRoot string, f appconf.Format) ([]FileStatus, error) {
	var statuses []FileStatus

	err := filepath.WalkDir(afterRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !strings.HasSuffix(d.Name(), f.Suffix) {
			return nil
		}
		rel, err := filepath.Rel(afterRoot, path)
		if err != nil {
			return err
		}
		state, err := classifyFile(filepath.Join(baselineRoot, rel), path)
		if err != nil {
			return err
		}
		statuses = append(statuses, FileStatus{RelPath: rel, State: state})
		return nil
	})
	if err != nil {
		return nil, oops.Wrapf(err, "classify %s against %s", afterRoot, baselineRoot)
	}

	log.WithFields(logrus.Fields{
		"after_root": afterRoot,
		"files":      len(statuses),
	}).Debug("Classified config tree")
	return statuses, nil
}

// classifyFile decides the state of one after-file against its baseline
// counterpart.
func classifyFile(baselinePath, afterPath string) (Classification, error) {
	if _, err := os.Stat(baselinePath); err != nil {
		if os.IsNotExist(err) {
			return New, nil
		}
		return 0, err
	}

	baseDigest, err := FileDigest(baselinePath)
	if err != nil {
		return 0, err
	}
	afterDigest, err := FileDigest(afterPath)
	if err != nil {
		return 0, err
	}
	if bytes.Equal(baseDigest, afterDigest) {
		return Unchanged, nil
	}
	return Modified, nil
}
