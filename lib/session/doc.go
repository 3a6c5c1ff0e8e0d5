// Package session drives one wrapped-application run from store to store.
//
// A session prepares a work area (a working-tree copy of the durable store
// plus an empty early-snapshot directory), starts the timed snapshot task,
// spawns the application against the working tree with inherited stdio, and
// blocks until it exits. The snapshot task copies the working tree exactly
// once, after a fixed delay: late enough to catch the application's
// self-written defaults, early enough to precede user edits. The copy reads
// a tree the application is concurrently mutating; that race is accepted
// and the snapshot is best-effort early rather than transactionally
// consistent.
//
// Application exit and the snapshot delay race. When the application exits
// first the session has nothing safe to diff: the run ends with ErrTooFast,
// the work area is discarded and the durable store is not touched. When the
// snapshot wins, the merge pass extracts the user's changes into the store,
// a report is written, and the work area is discarded.
//
// There are no retries anywhere: file-operation failures end the run, with
// the work area cleaned up on the way out.
package session
