package merge

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/confkeep/confkeep/lib/appconf"
	"github.com/confkeep/confkeep/lib/util/logger"
)

var log = logger.GetConfKeepLogger()

// ChangeKind says why an entry was written to the durable document.
type ChangeKind int

const (
	// NewSection: the whole section was absent from the early snapshot and
	// was copied wholesale.
	NewSection ChangeKind = iota
	// NewKey: the key did not exist in the early snapshot's section.
	NewKey
	// NewValue: the key existed but its value changed during the session.
	NewValue
)

func (k ChangeKind) String() string {
	switch k {
	case NewSection:
		return "new section"
	case NewKey:
		return "new key"
	case NewValue:
		return "new value"
	default:
		return "unknown"
	}
}

// Change is one line of the human-readable change log. Key and Value are
// empty for NewSection changes.
type Change struct {
	Kind    ChangeKind `yaml:"kind"`
	Section string     `yaml:"section"`
	Key     string     `yaml:"key,omitempty"`
	Value   string     `yaml:"value,omitempty"`
}

func (c Change) String() string {
	if c.Kind == NewSection {
		return fmt.Sprintf("new section [%s]", c.Section)
	}
	return fmt.Sprintf("%s %s.%s = %s", c.Kind, c.Section, c.Key, c.Value)
}

// Engine merges the entries a user changed during a session into the
// durable document. Ignore rules are fixed at construction; the engine
// holds no other state and a single instance serves a whole merge pass.
type Engine struct {
	rules []Rule
}

func NewEngine(rules []Rule) *Engine {
	return &Engine{rules: rules}
}

func (e *Engine) ignored(relPath, section, key string) bool {
	for _, r := range e.rules {
		if r.Matches(relPath, section, key) {
			return true
		}
	}
	return false
}

// MergeDocuments compares before (early snapshot) and after (final state)
// and writes the differences into durable, for the logical file at relPath.
// It returns the change log; an empty result means durable was not touched.
//
// Entries present in durable but absent from after are never deleted: the
// merge is additive and overwriting only. Removing a setting from a live
// session does not imply the user wants it purged from the store.
func (e *Engine) MergeDocuments(relPath string, before, after, durable *appconf.Document) []Change {
	var changes []Change
	for _, sec := range after.Sections() {
		// The default bucket holds unsectioned application globals, not user
		// settings. It is skipped on purpose; merging it would reintroduce
		// every auto-generated top-level default.
		if sec.Name == appconf.DefaultSection {
			continue
		}

		if !before.HasSection(sec.Name) {
			// A section the application created fresh during this run: the
			// user never saw a pre-session version, so the whole thing is
			// theirs. Copy it wholesale, replacing any prior recording,
			// minus entries the ignore rules cover, which stay out of the
			// store no matter how they arrive.
			copied := filteredClone(sec, e, relPath)
			if existing := durable.Section(sec.Name); existing != nil && existing.Equal(copied) {
				// Already recorded identically; a re-run stays silent.
				continue
			}
			durable.PutSection(copied)
			changes = append(changes, Change{Kind: NewSection, Section: sec.Name})
			log.WithFields(logrus.Fields{
				"file":    relPath,
				"section": sec.Name,
				"keys":    copied.Len(),
			}).Debug("Merged new section wholesale")
			continue
		}

		changes = append(changes, e.mergeSection(relPath, sec, before.Section(sec.Name), durable)...)
	}
	return changes
}

// mergeSection walks one after-section that also existed in the early
// snapshot, key by key.
func (e *Engine) mergeSection(relPath string, after, before *appconf.Section, durable *appconf.Document) []Change {
	var changes []Change
	for _, key := range after.Keys() {
		afterVal, _ := after.Get(key)

		if e.ignored(relPath, after.Name, key) {
			log.WithFields(logrus.Fields{
				"file":    relPath,
				"section": after.Name,
				"key":     key,
			}).Debug("Entry matches ignore rule, not merging")
			continue
		}

		// Already recorded with this exact value: nothing to do. This check
		// runs before the before/after comparison so a re-run over the same
		// inputs is a no-op.
		if v, ok := durable.Get(after.Name, key); ok && v == afterVal {
			continue
		}

		beforeVal, hadKey := before.Get(key)
		switch {
		case !hadKey:
			// New key wins the tie-break: a key absent from the early
			// snapshot is "new" even though its value also "changed".
			durable.Set(after.Name, key, afterVal)
			changes = append(changes, Change{Kind: NewKey, Section: after.Name, Key: key, Value: afterVal})
		case beforeVal != afterVal:
			durable.Set(after.Name, key, afterVal)
			changes = append(changes, Change{Kind: NewValue, Section: after.Name, Key: key, Value: afterVal})
		default:
			// Present before with the same value: the application re-wrote
			// one of its own defaults. Not a user change.
		}
	}
	return changes
}

// filteredClone deep-copies sec, dropping keys an ignore rule covers.
func filteredClone(sec *appconf.Section, e *Engine, relPath string) *appconf.Section {
	out := appconf.NewSection(sec.Name)
	for _, key := range sec.Keys() {
		if e.ignored(relPath, sec.Name, key) {
			log.WithFields(logrus.Fields{
				"file":    relPath,
				"section": sec.Name,
				"key":     key,
			}).Debug("Entry matches ignore rule, not merging")
			continue
		}
		v, _ := sec.Get(key)
		out.Set(key, v)
	}
	return out
}
