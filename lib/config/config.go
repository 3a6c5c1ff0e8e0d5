package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/confkeep/confkeep/lib/merge"
	"github.com/confkeep/confkeep/lib/util"
	"github.com/confkeep/confkeep/lib/util/logger"
)

var (
	CfgFile string
	log     = logger.GetConfKeepLogger()
)

const CONFKEEP_BASE_DIR = ".confkeep"

func InitConfig() {
	if CfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(CfgFile)
	} else {
		// Set up viper to use the default config path $HOME/.confkeep/
		viper.AddConfigPath(BuildConfKeepDirPath())
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	// Load defaults
	setDefaults()

	// handle config file creating it if needed
	handleConfigFile()
}

func setDefaults() {
	d := Defaults()

	// Application defaults
	viper.SetDefault("app.command", d.App.Command)
	viper.SetDefault("app.config_placeholder", d.App.ConfigPlaceholder)

	// Store defaults
	viper.SetDefault("store.dir", d.Store.Dir)
	viper.SetDefault("store.backup", d.Store.Backup)
	viper.SetDefault("store.backup_dir", d.Store.BackupDir)
	viper.SetDefault("store.max_backups", d.Store.MaxBackups)

	// Session defaults
	viper.SetDefault("session.work_dir", d.Session.WorkDir)
	viper.SetDefault("session.snapshot_delay", d.Session.SnapshotDelay)

	// File format defaults
	viper.SetDefault("format.separator", d.Format.Separator)
	viper.SetDefault("format.pad_separator", d.Format.PadSeparator)
	viper.SetDefault("format.comment_prefix", d.Format.CommentPrefix)
	viper.SetDefault("format.suffix", d.Format.Suffix)

	// Report defaults
	viper.SetDefault("reports.dir", d.Reports.Dir)
	viper.SetDefault("reports.max_reports", d.Reports.MaxReports)

	// Ignore rules default to none; users list (file, section, key)
	// triples in config.yaml
	viper.SetDefault("ignore", []merge.Rule{})
}

// NewConfigFromViper creates a new Config from current viper settings.
// This is the only way to obtain configuration: there is no global mutable
// config value, so every consumer receives its settings explicitly.
func NewConfigFromViper() *Config {
	var rules []merge.Rule
	if err := viper.UnmarshalKey("ignore", &rules); err != nil {
		log.Warnf("Error parsing ignore rules: %s", err)
		rules = []merge.Rule{}
	}

	return &Config{
		App: AppConfig{
			Command:           viper.GetStringSlice("app.command"),
			ConfigPlaceholder: viper.GetString("app.config_placeholder"),
		},
		Store: StoreConfig{
			Dir:        viper.GetString("store.dir"),
			Backup:     viper.GetBool("store.backup"),
			BackupDir:  viper.GetString("store.backup_dir"),
			MaxBackups: viper.GetInt("store.max_backups"),
		},
		Session: SessionConfig{
			WorkDir:       viper.GetString("session.work_dir"),
			SnapshotDelay: viper.GetDuration("session.snapshot_delay"),
		},
		Format: FormatConfig{
			Separator:     viper.GetString("format.separator"),
			PadSeparator:  viper.GetBool("format.pad_separator"),
			CommentPrefix: viper.GetString("format.comment_prefix"),
			Suffix:        viper.GetString("format.suffix"),
		},
		Reports: ReportConfig{
			Dir:        viper.GetString("reports.dir"),
			MaxReports: viper.GetInt("reports.max_reports"),
		},
		Ignore: rules,
	}
}

func createDefaultConfig(defaultConfigDir string) {
	defaultConfigFile := filepath.Join(defaultConfigDir, "config.yaml")
	// Ensure directory exists
	if err := os.MkdirAll(defaultConfigDir, 0o755); err != nil {
		log.Fatalf("Could not create config directory: %s", err)
	}

	// Write current config file
	if err := viper.WriteConfigAs(defaultConfigFile); err != nil {
		log.Fatalf("Could not write default config file: %s", err)
	}

	log.Debugf("Created default configuration at: %s", defaultConfigFile)
}

func handleConfigFile() {
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			if CfgFile != "" {
				log.Fatalf("Config file %s is not found: %s", CfgFile, err)
			} else {
				createDefaultConfig(BuildConfKeepDirPath())
			}
		} else {
			log.Fatalf("Error reading config file: %s", err)
		}
	} else {
		log.Debugf("Using config file: %s", viper.ConfigFileUsed())
	}
}

func BuildConfKeepDirPath() string {
	return filepath.Join(util.UserHome(), CONFKEEP_BASE_DIR)
}
