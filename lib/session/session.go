package session

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/samber/oops"
	"github.com/sirupsen/logrus"

	"github.com/confkeep/confkeep/lib/appconf"
	"github.com/confkeep/confkeep/lib/config"
	"github.com/confkeep/confkeep/lib/merge"
	"github.com/confkeep/confkeep/lib/snapshot"
	"github.com/confkeep/confkeep/lib/util/logger"
	"github.com/confkeep/confkeep/lib/util/signals"
)

var log = logger.GetConfKeepLogger()

// Options carries the per-invocation knobs that are not tool configuration.
type Options struct {
	// Command overrides the configured application argv when non-empty.
	Command []string
	// ShowDiff collects unified diffs of modified files into the report.
	ShowDiff bool
}

// Session owns one application run: work-area lifecycle, the snapshot task,
// the application process, and the closing merge pass. A Session runs once
// and is then discarded.
type Session struct {
	cfg    *config.Config
	opts   Options
	format appconf.Format

	// configured argv, placeholder not yet substituted
	command []string
	// resolved argv the application actually ran with
	argv []string

	workArea  string // per-session scratch directory, removed at the end
	workTree  string // the tree the application runs against
	earlyTree string // destination of the early snapshot

	snap     *snapshotTask
	cmd      *exec.Cmd
	exitCode int

	startedAt time.Time
}

// New validates the configuration and builds a session. The application
// command comes from opts when given, from cfg.App.Command otherwise;
// having neither is an error.
func New(cfg *config.Config, opts Options) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	command := opts.Command
	if len(command) == 0 {
		command = cfg.App.Command
	}
	if len(command) == 0 {
		return nil, ErrNoCommand
	}

	return &Session{
		cfg:     cfg,
		opts:    opts,
		format:  cfg.Format.Format(),
		command: command,
	}, nil
}

// Run drives the whole session and returns the merge report. ErrTooFast
// means the application exited before the early snapshot was taken: nothing
// was merged and the durable store was not touched. Every exit path
// discards the work area.
func (s *Session) Run(ctx context.Context) (*merge.Report, error) {
	s.startedAt = time.Now()

	if err := s.prepareStore(); err != nil {
		return nil, err
	}
	if err := s.prepareWorkArea(); err != nil {
		return nil, err
	}
	defer s.cleanup()

	s.snap = newSnapshotTask(s.cfg.Session.SnapshotDelay, s.workTree, s.earlyTree)
	s.snap.start()

	runErr := s.runApplication(ctx)

	// Join the snapshot task before reading its outcome; a copy already in
	// flight completes first.
	s.snap.stop()

	if runErr != nil {
		return nil, runErr
	}
	if s.snap.copyErr != nil {
		return nil, s.snap.copyErr
	}
	if !s.snap.taken {
		log.Debug("Application exited before the early snapshot")
		return nil, ErrTooFast
	}

	return s.mergeAndReport()
}

// prepareStore makes sure the durable store root exists. A first run starts
// from an empty store.
func (s *Session) prepareStore() error {
	if err := os.MkdirAll(s.cfg.Store.Dir, 0o755); err != nil {
		return oops.Wrapf(err, "create store %s", s.cfg.Store.Dir)
	}
	return nil
}

// prepareWorkArea creates the per-session scratch directory: the working
// tree as a copy of the store, and an empty directory awaiting the early
// snapshot.
func (s *Session) prepareWorkArea() error {
	name := fmt.Sprintf("session-%s-%d", time.Now().Format(timeStamp), os.Getpid())
	s.workArea = filepath.Join(s.cfg.Session.WorkDir, name)
	s.workTree = filepath.Join(s.workArea, "tree")
	s.earlyTree = filepath.Join(s.workArea, "snapshot")

	if err := snapshot.CopyTree(s.cfg.Store.Dir, s.workTree); err != nil {
		return err
	}
	if err := os.MkdirAll(s.earlyTree, 0o755); err != nil {
		return oops.Wrapf(err, "create snapshot directory %s", s.earlyTree)
	}

	log.WithFields(logrus.Fields{
		"work_tree": s.workTree,
		"store":     s.cfg.Store.Dir,
	}).Debug("Prepared session work area")
	return nil
}

// buildAppCommand resolves the argv the application runs with: every
// argument containing the placeholder token gets it replaced by the
// working-tree path; when no argument carries the token the path is
// appended instead.
func (s *Session) buildAppCommand() []string {
	placeholder := s.cfg.App.ConfigPlaceholder
	argv := make([]string, len(s.command))
	substituted := false
	for i, arg := range s.command {
		if placeholder != "" && strings.Contains(arg, placeholder) {
			argv[i] = strings.ReplaceAll(arg, placeholder, s.workTree)
			substituted = true
			continue
		}
		argv[i] = arg
	}
	if !substituted {
		argv = append(argv, s.workTree)
	}
	return argv
}

// runApplication spawns the application with inherited stdio and blocks
// until it exits. A non-zero exit is the application's business, not ours:
// the code is recorded and the session continues. Failing to start or to
// wait is fatal.
func (s *Session) runApplication(ctx context.Context) error {
	s.argv = s.buildAppCommand()
	s.cmd = exec.CommandContext(ctx, s.argv[0], s.argv[1:]...)
	s.cmd.Stdin = os.Stdin
	s.cmd.Stdout = os.Stdout
	s.cmd.Stderr = os.Stderr

	log.WithField("command", strings.Join(s.argv, " ")).Debug("Starting application")
	if err := s.cmd.Start(); err != nil {
		return oops.Wrapf(err, "start %s", s.argv[0])
	}

	// Forward interrupts so the application shuts down on its own terms;
	// its exit then drives the normal wait path below.
	id := signals.RegisterInterruptHandler(s.interrupt)
	defer signals.DeregisterInterruptHandler(id)

	if err := s.cmd.Wait(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			s.exitCode = exitErr.ExitCode()
			log.WithField("exit_code", s.exitCode).Debug("Application exited non-zero")
			return nil
		}
		return oops.Wrapf(err, "wait for %s", s.argv[0])
	}
	return nil
}

func (s *Session) interrupt() {
	if s.cmd == nil || s.cmd.Process == nil {
		return
	}
	if err := s.cmd.Process.Signal(os.Interrupt); err != nil {
		log.WithError(err).Warn("Failed to forward interrupt to application")
	}
}

// mergeAndReport backs up the store when configured, runs the merge pass
// over the three trees, and writes the session report.
func (s *Session) mergeAndReport() (*merge.Report, error) {
	if s.cfg.Store.Backup {
		if err := s.backupStore(); err != nil {
			return nil, err
		}
	}

	engine := merge.NewEngine(s.cfg.Ignore)
	report, err := merge.RunPass(engine, s.earlyTree, s.workTree, s.cfg.Store.Dir, merge.PassOptions{
		Format:   s.format,
		ShowDiff: s.opts.ShowDiff,
	})
	if err != nil {
		return nil, err
	}

	report.Command = s.argv
	report.StartedAt = s.startedAt
	report.FinishedAt = time.Now()
	report.AppExitCode = s.exitCode

	if _, err := report.Write(s.cfg.Reports.Dir); err != nil {
		return nil, err
	}
	if err := merge.PruneReports(s.cfg.Reports.Dir, s.cfg.Reports.MaxReports); err != nil {
		return nil, err
	}
	return report, nil
}

// cleanup discards the session work area. Failures are logged, not
// returned: cleanup runs on every exit path and must not mask the outcome.
func (s *Session) cleanup() {
	if s.workArea == "" {
		return
	}
	if err := snapshot.RemoveTree(s.workArea); err != nil {
		log.WithError(err).Warn("Failed to remove session work area")
	}
}
