package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskdeck/internal/config"
	"taskdeck/internal/exitcode"
	"taskdeck/internal/output"
	"taskdeck/internal/task"
)

func init() {
	Register(&ListCmd{})
	Register(&ShowCmd{})
}

// ListCmd implements the list command. Running taskdeck with no arguments
// dispatches here.
type ListCmd struct {
	status string
}

// SetStatus sets the status filter (for testing).
func (c *ListCmd) SetStatus(status string) {
	c.status = status
}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "List tasks" }
func (c *ListCmd) Usage() string     { return "taskdeck list [common flags] [--status <status>]" }
func (c *ListCmd) NeedsAuth() bool   { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.status, "status", "", "")
	fs.StringVar(&c.status, "s", "", "")
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, env *Env, args []string, out, errOut io.Writer) int {
	if c.status != "" && !task.ValidStatus(task.Status(c.status)) {
		fmt.Fprintf(errOut, "error: unknown status: %s\n", c.status)
		return exitcode.UserError
	}

	if err := env.Store.Load(ctx); err != nil {
		return remoteFailure(env, err, errOut)
	}

	tasks := env.Store.Tasks()
	printed := 0
	for i, t := range tasks {
		if c.status != "" && t.Status != task.Status(c.status) {
			continue
		}
		output.FormatTask(out, i+1, t)
		printed++
	}

	if printed == 0 && !cfg.Quiet {
		fmt.Fprintln(out, "no tasks found")
	}
	return exitcode.Success
}

// ShowCmd prints one task in full.
type ShowCmd struct{}

func (c *ShowCmd) Name() string      { return "show" }
func (c *ShowCmd) Aliases() []string { return nil }
func (c *ShowCmd) Synopsis() string  { return "Show one task" }
func (c *ShowCmd) Usage() string     { return "taskdeck show [common flags] <ref>" }
func (c *ShowCmd) NeedsAuth() bool   { return true }

func (c *ShowCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ShowCmd) Run(ctx context.Context, cfg *config.Config, env *Env, args []string, out, errOut io.Writer) int {
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

	output.FormatTaskDetail(out, t)
	return exitcode.Success
}
