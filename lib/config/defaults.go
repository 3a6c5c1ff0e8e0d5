package config

import (
	"path/filepath"
	"time"
)

// ConfigDefaults contains all default configuration values for confkeep.
// This centralizes default values to make them easy to discover, document,
// and modify.
type ConfigDefaults struct {
	// Wrapped application defaults
	App AppDefaults

	// Durable store defaults
	Store StoreDefaults

	// Session defaults
	Session SessionDefaults

	// File format defaults
	Format FormatDefaults

	// Report defaults
	Reports ReportDefaults
}

// AppDefaults contains default values for the wrapped application.
type AppDefaults struct {
	// Command is the application argv to run
	// Default: empty (must be configured or given on the command line)
	Command []string

	// ConfigPlaceholder is the argv token replaced by the working-tree path
	// Default: "{config}"
	ConfigPlaceholder string
}

// StoreDefaults contains default values for the durable store.
type StoreDefaults struct {
	// Dir is the durable store root
	// Default: $HOME/.confkeep/store
	Dir string

	// Backup copies the store aside before each merge pass
	// Default: true
	Backup bool

	// BackupDir is where pre-merge store copies land
	// Default: $HOME/.confkeep/backups
	BackupDir string

	// MaxBackups is how many backups to keep before pruning
	// Default: 5
	MaxBackups int
}

// SessionDefaults contains default values for session handling.
type SessionDefaults struct {
	// WorkDir is the parent directory for per-session work areas
	// Default: $HOME/.confkeep/work
	WorkDir string

	// SnapshotDelay is how long after application start to snapshot
	// Default: 2 seconds
	SnapshotDelay time.Duration
}

// FormatDefaults contains default values for the application's file format.
// They match the application's current release line; older lines used a
// bare separator and can be configured instead.
type FormatDefaults struct {
	// Separator splits key from value
	// Default: "="
	Separator string

	// PadSeparator writes "key = value" rather than "key=value"
	// Default: true
	PadSeparator bool

	// CommentPrefix marks whole-line comments
	// Default: "#"
	CommentPrefix string

	// Suffix selects configuration files under a tree
	// Default: ".conf"
	Suffix string
}

// ReportDefaults contains default values for session reports.
type ReportDefaults struct {
	// Dir is where report files are written
	// Default: $HOME/.confkeep/reports
	Dir string

	// MaxReports is how many reports to keep before pruning
	// Default: 20
	MaxReports int
}

// Defaults returns a ConfigDefaults instance with all default values set.
// This is the single source of truth for all configuration defaults.
func Defaults() ConfigDefaults {
	base := BuildConfKeepDirPath()

	return ConfigDefaults{
		App:     buildAppDefaults(),
		Store:   buildStoreDefaults(base),
		Session: buildSessionDefaults(base),
		Format:  buildFormatDefaults(),
		Reports: buildReportDefaults(base),
	}
}

// buildAppDefaults creates default wrapped-application values.
func buildAppDefaults() AppDefaults {
	return AppDefaults{
		Command:           []string{},
		ConfigPlaceholder: "{config}",
	}
}

// buildStoreDefaults creates default durable-store values.
func buildStoreDefaults(base string) StoreDefaults {
	return StoreDefaults{
		Dir:        filepath.Join(base, "store"),
		Backup:     true,
		BackupDir:  filepath.Join(base, "backups"),
		MaxBackups: 5,
	}
}

// buildSessionDefaults creates default session values.
func buildSessionDefaults(base string) SessionDefaults {
	return SessionDefaults{
		WorkDir:       filepath.Join(base, "work"),
		SnapshotDelay: 2 * time.Second,
	}
}

// buildFormatDefaults creates default file-format values.
func buildFormatDefaults() FormatDefaults {
	return FormatDefaults{
		Separator:     "=",
		PadSeparator:  true,
		CommentPrefix: "#",
		Suffix:        ".conf",
	}
}

// buildReportDefaults creates default report values.
func buildReportDefaults(base string) ReportDefaults {
	return ReportDefaults{
		Dir:        filepath.Join(base, "reports"),
		MaxReports: 20,
	}
}
