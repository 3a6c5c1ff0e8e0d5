package merge

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/samber/oops"
	"gopkg.in/yaml.v3"
)

const reportPrefix = "report."

// Report is the artifact of one merge pass: counts, the per-file change
// log, and, when a session produced it, the wrapped command and timings.
type Report struct {
	Command    []string  `yaml:"command,omitempty"`
	StartedAt  time.Time `yaml:"started_at,omitempty"`
	FinishedAt time.Time `yaml:"finished_at,omitempty"`
	// AppExitCode is the wrapped application's exit status. Non-zero exits
	// after the snapshot still merge; the code is recorded for the record.
	AppExitCode int `yaml:"app_exit_code,omitempty"`

	Merged       int `yaml:"merged"`
	Copied       int `yaml:"copied"`
	Unchanged    int `yaml:"unchanged"`
	TotalChanges int `yaml:"total_changes"`

	Files []FileResult `yaml:"files,omitempty"`
}

func NewReport() *Report {
	return &Report{}
}

// MarshalYAML renders the kind as its log wording instead of a bare number.
func (k ChangeKind) MarshalYAML() (interface{}, error) {
	return k.String(), nil
}

func (k *ChangeKind) UnmarshalYAML(value *yaml.Node) error {
	switch value.Value {
	case "new section":
		*k = NewSection
	case "new key":
		*k = NewKey
	case "new value":
		*k = NewValue
	default:
		return oops.Errorf("unknown change kind %q", value.Value)
	}
	return nil
}

// ChangeLines flattens the per-file changes into the printable change log.
func (r *Report) ChangeLines() []string {
	var lines []string
	for _, f := range r.Files {
		for _, c := range f.Changes {
			lines = append(lines, fmt.Sprintf("%s: %s", f.RelPath, c))
		}
	}
	return lines
}

// Write stores the report as a timestamped YAML file under dir, creating
// the directory as needed, and returns the written path.
func (r *Report) Write(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", oops.Wrapf(err, "create report directory %s", dir)
	}

	data, err := yaml.Marshal(r)
	if err != nil {
		return "", oops.Wrapf(err, "marshal report")
	}

	name := fmt.Sprintf("%s%s.yaml", reportPrefix, time.Now().Format("20060102-150405"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", oops.Wrapf(err, "write report %s", path)
	}

	log.WithField("path", path).Debug("Wrote session report")
	return path, nil
}

// PruneReports deletes the oldest report files in dir beyond max. The
// timestamped names sort lexically in chronological order, so no metadata
// is needed. A max of zero or less keeps everything.
func PruneReports(dir string, max int) error {
	if max <= 0 {
		return nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return oops.Wrapf(err, "read report directory %s", dir)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasPrefix(e.Name(), reportPrefix) || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		names = append(names, e.Name())
	}
	if len(names) <= max {
		return nil
	}

	// Newest first; everything past the cap goes.
	sort.Sort(sort.Reverse(sort.StringSlice(names)))
	for _, name := range names[max:] {
		if err := os.Remove(filepath.Join(dir, name)); err != nil {
			return oops.Wrapf(err, "prune report %s", name)
		}
		log.WithField("report", name).Debug("Pruned old report")
	}
	return nil
}
