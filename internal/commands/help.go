package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskdeck/internal/config"
	"taskdeck/internal/exitcode"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "taskdeck help" }
func (c *HelpCmd) NeedsAuth() bool   { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, env *Env, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  taskdeck                                 List all tasks
  taskdeck list [--status <status>]        List tasks, optionally filtered
  taskdeck show <ref>                      Show one task in full
  taskdeck add --assignee <name> --due <date> [--priority <p>] [--desc <text>]
               [--tag <t>]... [--member <m>]... <title...>
  taskdeck edit [--title <t>] [--desc <text>] [--assignee <name>] [--due <date>]
               [--priority <p>] [--status <s>] [--tag <t>]... [--untag <t>]...
               [--member <m>]... [--unmember <m>]... <ref>
  taskdeck start <ref>                     Mark a task in progress
  taskdeck done <ref>                      Mark a task done
  taskdeck rm <ref>                        Delete a task
  taskdeck signup --email <email> [--password <password>]
  taskdeck login --email <email> [--password <password>]
  taskdeck logout
  taskdeck whoami
  taskdeck config [--api <url>] [--auth <url>]
  taskdeck help
  taskdeck version

A <ref> is a task's list position, its id, or a unique id prefix.

Common flags:
  --config <dir>   Override config directory
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr
`
