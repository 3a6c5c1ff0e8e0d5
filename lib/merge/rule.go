package merge

import "path/filepath"

// Rule names one entry that must never be propagated into the durable
// store, as a (relative file path, section, key) triple. Rules are loaded
// once from tool configuration and stay immutable for the run.
type Rule struct {
	File    string `mapstructure:"file" yaml:"file"`
	Section string `mapstructure:"section" yaml:"section"`
	Key     string `mapstructure:"key" yaml:"key"`
}

// Matches reports whether the rule covers the given entry. File paths are
// compared slash-normalized so rules written with forward slashes work on
// every platform.
func (r Rule) Matches(relPath, section, key string) bool {
	return filepath.ToSlash(r.File) == filepath.ToSlash(relPath) &&
		r.Section == section &&
		r.Key == key
}
