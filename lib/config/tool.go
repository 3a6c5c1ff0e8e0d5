package config

import (
	"github.com/samber/oops"

	"github.com/confkeep/confkeep/lib/merge"
)

// Config is the full tool configuration, assembled from viper by
// NewConfigFromViper and handed explicitly to the session and merge layers.
type Config struct {
	// the wrapped application
	App AppConfig
	// the durable store
	Store StoreConfig
	// session timing and scratch space
	Session SessionConfig
	// the application's file format convention
	Format FormatConfig
	// session report artifacts
	Reports ReportConfig
	// entries that must never reach the store
	Ignore []merge.Rule
}

// Validate checks that the configuration values are usable.
// Returns an error describing the first invalid value found.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateTiming(); err != nil {
		return err
	}
	return c.validateFormat()
}

func (c *Config) validatePaths() error {
	if c.Store.Dir == "" {
		return oops.Errorf("store.dir must not be empty")
	}
	if c.Session.WorkDir == "" {
		return oops.Errorf("session.work_dir must not be empty")
	}
	if c.Store.Backup && c.Store.BackupDir == "" {
		return oops.Errorf("store.backup_dir must not be empty when backups are enabled")
	}
	if c.Store.MaxBackups < 0 {
		return oops.Errorf("store.max_backups must not be negative, got %d", c.Store.MaxBackups)
	}
	if c.Reports.MaxReports < 0 {
		return oops.Errorf("reports.max_reports must not be negative, got %d", c.Reports.MaxReports)
	}
	return nil
}

func (c *Config) validateTiming() error {
	if c.Session.SnapshotDelay <= 0 {
		return oops.Errorf("session.snapshot_delay must be positive, got %s", c.Session.SnapshotDelay)
	}
	return nil
}

func (c *Config) validateFormat() error {
	if c.Format.Separator == "" {
		return oops.Errorf("format.separator must not be empty")
	}
	if c.Format.Suffix == "" {
		return oops.Errorf("format.suffix must not be empty")
	}
	return nil
}
