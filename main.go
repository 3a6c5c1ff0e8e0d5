package main

import (
	"os"

	"github.com/confkeep/confkeep/cmd"
	"github.com/confkeep/confkeep/lib/util/signals"
)

// Build metadata, overridden with -ldflags at release time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	go signals.Handle()
	os.Exit(cmd.Execute(version, commit, date))
}
