// Package commands provides the command interface and implementations.
package commands

import (
	"context"
	"flag"
	"io"

	"taskdeck/internal/auth"
	"taskdeck/internal/config"
	"taskdeck/internal/store"
)

// Env bundles the client layers a command works against: the session
// manager and the task store. Tests inject fakes behind both.
type Env struct {
	Sessions *auth.Manager
	Store    *store.Store
}

// Close releases the session manager's provider subscription.
func (e *Env) Close() {
	if e.Sessions != nil {
		e.Sessions.Close()
	}
}

// Command defines the interface for CLI commands.
type Command interface {
	// Name returns the primary command name.
	Name() string

	// Aliases returns alternative names for the command.
	Aliases() []string

	// Synopsis returns a short description for help output.
	Synopsis() string

	// Usage returns the usage string for help output.
	Usage() string

	// NeedsAuth returns true if the command requires a signed-in session.
	// Commands like help, version, login, signup, logout return false.
	NeedsAuth() bool

	// RegisterFlags registers command-specific flags.
	RegisterFlags(fs *flag.FlagSet)

	// Run executes the command.
	// cfg is always provided (config dir, endpoints).
	// env carries the session manager and task store.
	// args contains positional arguments after flag parsing.
	// Returns exit code.
	Run(ctx context.Context, cfg *config.Config, env *Env, args []string, out, errOut io.Writer) int
}

// stringList collects a repeatable string flag.
type stringList []string

func (s *stringList) String() string { return "" }

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}
