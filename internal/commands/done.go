package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskdeck/internal/config"
	"taskdeck/internal/exitcode"
	"taskdeck/internal/task"
)

func init() {
	Register(&DoneCmd{})
	Register(&StartCmd{})
}

// DoneCmd marks a task done. Status changes skip the form: they patch one
// field and take the server's record as the result.
type DoneCmd struct{}

func (c *DoneCmd) Name() string      { return "done" }
func (c *DoneCmd) Aliases() []string { return nil }
func (c *DoneCmd) Synopsis() string  { return "Mark a task done" }
func (c *DoneCmd) Usage() string     { return "taskdeck done [common flags] <ref>" }
func (c *DoneCmd) NeedsAuth() bool   { return true }

func (c *DoneCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *DoneCmd) Run(ctx context.Context, cfg *config.Config, env *Env, args []string, out, errOut io.Writer) int {
	return setStatus(ctx, cfg, env, args, task.StatusDone, out, errOut)
}

// StartCmd marks a task in progress.
type StartCmd struct{}

func (c *StartCmd) Name() string      { return "start" }
func (c *StartCmd) Aliases() []string { return nil }
func (c *StartCmd) Synopsis() string  { return "Mark a task in progress" }
func (c *StartCmd) Usage() string     { return "taskdeck start [common flags] <ref>" }
func (c *StartCmd) NeedsAuth() bool   { return true }

func (c *StartCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *StartCmd) Run(ctx context.Context, cfg *config.Config, env *Env, args []string, out, errOut io.Writer) int {
	return setStatus(ctx, cfg, env, args, task.StatusInProgress, out, errOut)
}

func setStatus(ctx context.Context, cfg *config.Config, env *Env, args []string, status task.Status, out, errOut io.Writer) int {
	if len(args) != 1 {
		fmt.Fprintln(errOut, "error: task reference required")
		return exitcode.UserError
	}

	if err := env.Store.Load(ctx); err != nil {
		return remoteFailure(env, err, errOut)
	}

	t, ok := resolveTask(env, args[0])
	if !ok {
		fmt.Fprintf(errOut, "error: task not found: %s\n", args[0])
		return exitcode.UserError
	}

	if _, err := env.Store.Update(ctx, t.ID, task.Patch{Status: &status}); err != nil {
		return remoteFailure(env, err, errOut)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
