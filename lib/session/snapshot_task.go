package session

import (
	"sync"
	"time"

	"github.com/confkeep/confkeep/lib/snapshot"
)

// snapshotTask performs exactly one timed copy of the working tree into the
// early-snapshot directory. It is a cancellable timer racing the wrapped
// application's exit: whichever comes first decides whether the session has
// something to diff. The "application exited first" outcome is a terminal
// state the session reports as ErrTooFast, not an error inside the task.
type snapshotTask struct {
	delay    time.Duration
	src, dst string

	cancel   chan struct{}
	done     chan struct{}
	stopOnce sync.Once

	// valid only after stop() has returned
	taken   bool
	copyErr error
}

func newSnapshotTask(delay time.Duration, src, dst string) *snapshotTask {
	return &snapshotTask{
		delay:  delay,
		src:    src,
		dst:    dst,
		cancel: make(chan struct{}),
		done:   make(chan struct{}),
	}
}

// start launches the task. It returns immediately; the copy happens after
// the delay unless stop cancels it first.
func (t *snapshotTask) start() {
	go t.run()
}

func (t *snapshotTask) run() {
	defer close(t.done)

	timer := time.NewTimer(t.delay)
	defer timer.Stop()

	select {
	case <-t.cancel:
		// The application exited first; the caller turns this into the
		// too-fast outcome.
		log.Debug("Snapshot task cancelled before the delay fired")
	case <-timer.C:
		t.copyErr = snapshot.CopyTree(t.src, t.dst)
		t.taken = t.copyErr == nil
		if t.taken {
			log.WithField("snapshot", t.dst).Debug("Early snapshot captured")
		}
	}
}

// stop cancels a copy that has not fired yet and joins the task. A copy
// already in progress runs to completion first. The taken and copyErr
// fields may only be read after stop has returned.
func (t *snapshotTask) stop() {
	t.stopOnce.Do(func() { close(t.cancel) })
	<-t.done
}
