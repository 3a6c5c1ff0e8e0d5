package config

// ReportConfig describes where session reports land and how many to keep.
type ReportConfig struct {
	// Dir is where timestamped report.yaml files are written.
	Dir string
	// MaxReports caps how many reports are kept; older ones are pruned.
	// Zero keeps everything.
	MaxReports int
}
