package merge

import (
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/confkeep/confkeep/lib/appconf"
	"github.com/confkeep/confkeep/lib/snapshot"
)

// PassOptions carries per-run knobs for the tree-level merge pass.
type PassOptions struct {
	// Format describes the wrapped application's file convention: suffix
	// filter for discovery, separator and padding for parse/serialize.
	Format appconf.Format
	// ShowDiff collects a unified diff of every modified file into the
	// result, comparing early-snapshot content against final content.
	ShowDiff bool
}

// FileResult records what the pass did for one classified file.
type FileResult struct {
	RelPath string   `yaml:"file"`
	State   string   `yaml:"state"`
	Digest  string   `yaml:"digest,omitempty"`
	Changes []Change `yaml:"changes,omitempty"`
	Diff    string   `yaml:"diff,omitempty"`
}

// RunPass drives one merge over three tree roots: the early snapshot
// (beforeRoot), the final session state (afterRoot) and the durable store
// (storeRoot). Modified files go through the engine and are rewritten in
// the store only when the engine produced changes; new files are copied
// into the store verbatim; unchanged files are not touched. Parse trouble
// is scoped to single lines by the codec and never aborts the pass; I/O
// failures do.
func RunPass(e *Engine, beforeRoot, afterRoot, storeRoot string, opts PassOptions) (*Report, error) {
	statuses, err := snapshot.Classify(beforeRoot, afterRoot, opts.Format)
	if err != nil {
		return nil, err
	}

	report := NewReport()
	for _, st := range statuses {
		res := FileResult{RelPath: st.RelPath, State: st.State.String()}
		switch st.State {
		case snapshot.Unchanged:
			report.Unchanged++

		case snapshot.New:
			if err := snapshot.CopyFile(
				filepath.Join(afterRoot, st.RelPath),
				filepath.Join(storeRoot, st.RelPath),
			); err != nil {
				return nil, err
			}
			report.Copied++
			log.WithField("file", st.RelPath).Debug("Copied new config file into store")

		case snapshot.Modified:
			changes, diff, err := mergeModified(e, beforeRoot, afterRoot, storeRoot, st.RelPath, opts)
			if err != nil {
				return nil, err
			}
			res.Changes = changes
			res.Diff = diff
			if len(changes) > 0 {
				report.Merged++
				report.TotalChanges += len(changes)
			}
		}

		if st.State != snapshot.Unchanged {
			if sum, err := snapshot.DigestString(filepath.Join(afterRoot, st.RelPath)); err == nil {
				res.Digest = sum
			}
		}
		report.Files = append(report.Files, res)
	}

	log.WithFields(logrus.Fields{
		"merged":    report.Merged,
		"copied":    report.Copied,
		"unchanged": report.Unchanged,
		"changes":   report.TotalChanges,
	}).Debug("Merge pass complete")
	return report, nil
}

// mergeModified loads the three generations of one file, runs the engine
// and serializes the durable document back only when something changed.
func mergeModified(e *Engine, beforeRoot, afterRoot, storeRoot, rel string, opts PassOptions) ([]Change, string, error) {
	before, err := appconf.Load(filepath.Join(beforeRoot, rel), opts.Format)
	if err != nil {
		return nil, "", err
	}
	after, err := appconf.Load(filepath.Join(afterRoot, rel), opts.Format)
	if err != nil {
		return nil, "", err
	}
	storePath := filepath.Join(storeRoot, rel)
	durable, err := appconf.Load(storePath, opts.Format)
	if err != nil {
		return nil, "", err
	}

	changes := e.MergeDocuments(rel, before, after, durable)
	if len(changes) > 0 {
		if err := durable.WriteFile(storePath, opts.Format); err != nil {
			return nil, "", err
		}
	}

	var diff string
	if opts.ShowDiff {
		diff, err = unifiedDiff(filepath.Join(beforeRoot, rel), filepath.Join(afterRoot, rel), rel)
		if err != nil {
			return nil, "", err
		}
	}
	return changes, diff, nil
}
