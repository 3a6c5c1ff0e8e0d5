package session

import (
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/samber/oops"

	"github.com/confkeep/confkeep/lib/snapshot"
)

// timeStamp names work areas and backups; it sorts lexically in
// chronological order.
const timeStamp = "20060102-150405"

// backupStore copies the durable store aside before the merge pass touches
// it, then prunes old copies. Restoring is a manual operation; confkeep
// only writes the backups.
func (s *Session) backupStore() error {
	dst := filepath.Join(s.cfg.Store.BackupDir, time.Now().Format(timeStamp))
	if err := snapshot.CopyTree(s.cfg.Store.Dir, dst); err != nil {
		return err
	}
	log.WithField("backup", dst).Debug("Backed up store before merge")
	return pruneBackups(s.cfg.Store.BackupDir, s.cfg.Store.MaxBackups)
}

// pruneBackups deletes the oldest backup directories beyond max. A max of
// zero or less keeps everything.
func pruneBackups(dir string, max int) error {
	if max <= 0 {
		return nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return oops.Wrapf(err, "read backup directory %s", dir)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	if len(names) <= max {
		return nil
	}

	sort.Sort(sort.Reverse(sort.StringSlice(names)))
	for _, name := range names[max:] {
		if err := snapshot.RemoveTree(filepath.Join(dir, name)); err != nil {
			return err
		}
		log.WithField("backup", name).Debug("Pruned old backup")
	}
	return nil
}
