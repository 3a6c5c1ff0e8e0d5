// Package appconf models the wrapped application's configuration files.
//
// # File Format
//
// The format is line oriented. A section header line names a section and
// scopes every following entry until the next header:
//
//	[colors]
//	text = default
//	fg = blue
//
// Entries are key/value pairs separated by a single separator character.
// The application has used two conventions across versions: the current one
// pads the separator with spaces ("key = value"), an earlier one wrote it
// bare ("key=value"). Both are format parameters, not constants; see Format.
// Parsing accepts either padding; serialization honors Format.PadSeparator
// so that re-parses of written files see one consistent convention.
//
// Keys are case sensitive. Unlike classic INI handling, "Fg" and "fg" are
// distinct keys. Within one document a (section, key) pair is unique; when a
// file repeats a key inside a section the later occurrence wins during parse.
//
// Entries that appear before any section header land in the default bucket,
// the pseudo-section with the empty name. The merge layer never merges that
// bucket; it exists so stray top-level entries survive a parse/serialize
// round trip.
//
// Comment lines (Format.CommentPrefix) and blank lines are discarded during
// parse and are not reproduced on write. This is a known, accepted lossy
// behavior: the durable store holds canonical output of this package, not
// user formatting.
//
// Malformed lines (no separator, an empty key, an unterminated section
// header) are skipped with a warning and never abort the file or the run.
package appconf
