package config

import "github.com/confkeep/confkeep/lib/appconf"

// FormatConfig mirrors appconf.Format as plain configuration values. The
// wrapped application has used more than one convention across versions, so
// all of these are configurable rather than constants.
type FormatConfig struct {
	// Separator splits a line into key and value.
	Separator string
	// PadSeparator writes "key = value" instead of "key=value".
	PadSeparator bool
	// CommentPrefix marks whole-line comments.
	CommentPrefix string
	// Suffix selects which files under a tree are configuration files.
	Suffix string
}

// Format converts the configuration values into the codec's format type.
func (f FormatConfig) Format() appconf.Format {
	return appconf.Format{
		Separator:     f.Separator,
		PadSeparator:  f.PadSeparator,
		CommentPrefix: f.CommentPrefix,
		Suffix:        f.Suffix,
	}
}
