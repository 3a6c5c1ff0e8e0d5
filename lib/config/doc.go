// Package config provides tool configuration for confkeep.
//
// # Configuration Directories
//
// Store vs working tree: confkeep keeps two separate directory trees to
// distinguish the user's curated settings from the noise a live session
// produces:
//
// Store: the durable, long-lived configuration directory. It holds only the
// entries the user deliberately changed, and is edited exclusively by the
// merge engine at the end of a session. This is the tree worth putting under
// version control.
//   - Default location: $HOME/.confkeep/store
//   - Purpose: user-curated settings, survives across sessions
//
// Working tree: an ephemeral copy of the store created for each session. The
// wrapped application runs against it and floods it with auto-generated
// defaults; after the session the diff/merge pass extracts the user's actual
// changes and the tree is discarded.
//   - Default location: under $HOME/.confkeep/work, one directory per session
//   - Purpose: scratch space, never outlives the session
//
// Tool configuration lives in $HOME/.confkeep/config.yaml and is read
// through viper. A missing file is created with the defaults on first run.
// There is no global mutable configuration value: callers construct a
// Config via NewConfigFromViper and pass it (or parts of it) explicitly
// into the session and merge layers.
package config
