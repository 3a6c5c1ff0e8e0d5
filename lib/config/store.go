package config

// StoreConfig describes the durable store and its safety net.
type StoreConfig struct {
	// Dir is the durable store root, the tree the merge engine writes to.
	Dir string
	// Backup copies the store aside before a merge pass mutates it.
	Backup bool
	// BackupDir is where pre-merge copies of the store land, one
	// timestamped directory per session.
	BackupDir string
	// MaxBackups caps how many backups are kept; older ones are pruned.
	// Zero keeps everything.
	MaxBackups int
}
