package appconf

// DefaultSection is the name of the pseudo-section holding entries that
// appear before any section header.
const DefaultSection = ""

// Format describes one variant of the application's configuration file
// format. The wrapped application has changed conventions across versions,
// so none of these are hardcoded constants.
type Format struct {
	// Separator splits a line into key and value. Parsing splits on the
	// first occurrence and trims surrounding whitespace, so both the padded
	// and the bare convention are readable with the same separator.
	Separator string
	// PadSeparator controls write-side padding: "key = value" when set,
	// "key=value" otherwise. Downstream re-parses depend on written files
	// staying consistent, so this only affects serialization.
	PadSeparator bool
	// CommentPrefix marks whole-line comments, discarded during parse.
	CommentPrefix string
	// Suffix selects which files under a configuration tree belong to the
	// application (e.g. ".conf").
	Suffix string
}

// DefaultFormat returns the format of the application's current release
// line: padded "=", "#" comments, ".conf" files.
func DefaultFormat() Format {
	return Format{
		Separator:     "=",
		PadSeparator:  true,
		CommentPrefix: "#",
		Suffix:        ".conf",
	}
}

// separator returns the written form of the separator, honoring padding.
func (f Format) separator() string {
	if f.PadSeparator {
		return " " + f.Separator + " "
	}
	return f.Separator
}
