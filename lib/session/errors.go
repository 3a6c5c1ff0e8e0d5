package session

import (
	"github.com/samber/oops"
)

var (
	// ErrTooFast means the application exited before the early snapshot was
	// taken. Nothing was merged and the durable store was not touched; the
	// caller maps this to its own distinct exit code.
	ErrTooFast = oops.New("application exited before the early snapshot; nothing merged")

	// ErrNoCommand means neither the tool configuration nor the command line
	// supplied an application to run.
	ErrNoCommand = oops.New("no application command configured or given")
)
