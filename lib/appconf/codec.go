package appconf

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/samber/oops"
	"github.com/sirupsen/logrus"

	"github.com/confkeep/confkeep/lib/util/logger"
)

var log = logger.GetConfKeepLogger()

// Load parses the file at path. A missing file is not an error: the result
// is an empty document, matching how the application treats configuration
// files it has not written yet.
func Load(path string, f Format) (*Document, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.WithField("path", path).Debug("Config file absent, starting from empty document")
			return NewDocument(), nil
		}
		return nil, oops.Wrapf(err, "open %s", path)
	}
	defer file.Close()

	doc, err := Parse(file, path, f)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// Parse reads one configuration document from r. name is used in warnings
// only. Malformed lines are skipped with a warning; they never abort the
// file (the chosen policy for format trouble, applied consistently).
func Parse(r io.Reader, name string, f Format) (*Document, error) {
	doc := NewDocument()
	var current *Section

	scanner := bufio.NewScanner(r)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if f.CommentPrefix != "" && strings.HasPrefix(line, f.CommentPrefix) {
			continue
		}
		if strings.HasPrefix(line, "[") {
			if !strings.HasSuffix(line, "]") || len(line) < 3 {
				warnMalformed(name, lineno, line, "unterminated section header")
				continue
			}
			current = doc.EnsureSection(line[1 : len(line)-1])
			continue
		}
		idx := strings.Index(line, f.Separator)
		if idx < 0 {
			warnMalformed(name, lineno, line, "no separator")
			continue
		}
		key := strings.TrimSpace(line[:idx])
		value := strings.TrimSpace(line[idx+len(f.Separator):])
		if key == "" {
			warnMalformed(name, lineno, line, "empty key")
			continue
		}
		if current == nil {
			// Entries before the first header land in the default bucket.
			current = doc.EnsureSection(DefaultSection)
		}
		current.Set(key, value)
	}
	if err := scanner.Err(); err != nil {
		return nil, oops.Wrapf(err, "read %s", name)
	}

	log.WithFields(logrus.Fields{
		"file":     name,
		"sections": len(doc.sections),
	}).Debug("Parsed config document")
	return doc, nil
}

func warnMalformed(name string, lineno int, line, reason string) {
	log.WithFields(logrus.Fields{
		"file":   name,
		"line":   lineno,
		"reason": reason,
	}).Warnf("Skipping malformed config line: %q", line)
}

// Bytes serializes the document: every section in document order, entries in
// insertion order, one blank line between sections, exactly one trailing
// newline. The default bucket is written first and without a header. The
// output is canonical: there is never a trailing artifact for callers to
// truncate.
func (d *Document) Bytes(f Format) []byte {
	// The default bucket always serializes first regardless of where it sits
	// in the document: its entries carry no header, so anything written after
	// a named section would be re-parsed into that section.
	ordered := make([]*Section, 0, len(d.sections))
	if def, ok := d.index[DefaultSection]; ok && def.Len() > 0 {
		ordered = append(ordered, def)
	}
	for _, s := range d.sections {
		if s.Name != DefaultSection {
			ordered = append(ordered, s)
		}
	}

	var buf bytes.Buffer
	sep := f.separator()
	for i, s := range ordered {
		if i > 0 {
			buf.WriteByte('\n')
		}
		if s.Name != DefaultSection {
			buf.WriteByte('[')
			buf.WriteString(s.Name)
			buf.WriteString("]\n")
		}
		for _, k := range s.keys {
			buf.WriteString(k)
			buf.WriteString(sep)
			buf.WriteString(s.values[k])
			buf.WriteByte('\n')
		}
	}
	return buf.Bytes()
}

// WriteFile serializes the document to path, overwriting the target in full.
// The write is atomic: content goes to a temporary file in the same
// directory which is then renamed over the target, so a crash mid-write can
// never leave a half-written durable file behind. Parent directories are
// created as needed.
func (d *Document) WriteFile(path string, f Format) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return oops.Wrapf(err, "create directory %s", dir)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return oops.Wrapf(err, "create temp file in %s", dir)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(d.Bytes(f)); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return oops.Wrapf(err, "write %s", tmpName)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return oops.Wrapf(err, "close %s", tmpName)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return oops.Wrapf(err, "rename %s to %s", tmpName, path)
	}

	log.WithField("path", path).Debug("Wrote config document")
	return nil
}
