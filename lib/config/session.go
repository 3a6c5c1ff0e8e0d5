package config

import "time"

// SessionConfig describes session scratch space and timing.
type SessionConfig struct {
	// WorkDir is the parent directory for per-session work areas. Each
	// session creates one directory under it holding the working tree and
	// the early snapshot, removed when the session ends.
	WorkDir string
	// SnapshotDelay is how long after application start the early snapshot
	// is taken. The delay is a timing heuristic: long enough for the
	// application to finish writing its defaults, short enough that the
	// user has not started changing things. A session that ends before the
	// delay fires is reported as too fast to diff.
	SnapshotDelay time.Duration
}
