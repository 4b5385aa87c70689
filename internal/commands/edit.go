package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskdeck/internal/config"
	"taskdeck/internal/exitcode"
	"taskdeck/internal/form"
	"taskdeck/internal/task"
)

func init() {
	Register(&EditCmd{})
}

// EditCmd implements the edit command: an edit form seeded from the stored
// record, with only the flags the user passed applied on top.
type EditCmd struct {
	fs *flag.FlagSet

	title       string
	description string
	assignee    string
	dueDate     string
	priority    string
	status      string
	addTags     stringList
	rmTags      stringList
	addMembers  stringList
	rmMembers   stringList
}

func (c *EditCmd) Name() string      { return "edit" }
func (c *EditCmd) Aliases() []string { return nil }
func (c *EditCmd) Synopsis() string  { return "Edit a task" }
func (c *EditCmd) Usage() string {
	return "taskdeck edit [common flags] [--title <t>] [--desc <text>] [--assignee <name>] [--due <date>] [--priority <p>] [--status <s>] [--tag <t>]... [--untag <t>]... [--member <m>]... [--unmember <m>]... <ref>"
}
func (c *EditCmd) NeedsAuth() bool { return true }

func (c *EditCmd) RegisterFlags(fs *flag.FlagSet) {
	c.fs = fs
	fs.StringVar(&c.title, "title", "", "")
	fs.StringVar(&c.description, "desc", "", "")
	fs.StringVar(&c.assignee, "assignee", "", "")
	fs.StringVar(&c.dueDate, "due", "", "")
	fs.StringVar(&c.priority, "priority", "", "")
	fs.StringVar(&c.status, "status", "", "")
	fs.Var(&c.addTags, "tag", "")
	fs.Var(&c.rmTags, "untag", "")
	fs.Var(&c.addMembers, "member", "")
	fs.Var(&c.rmMembers, "unmember", "")
}

func (c *EditCmd) Run(ctx context.Context, cfg *config.Config, env *Env, args []string, out, errOut io.Writer) int {
	if len(args) != 1 {
		fmt.Fprintln(errOut, "error: task reference required")
		return exitcode.UserError
	}

	if err := env.Store.Load(ctx); err != nil {
		return remoteFailure(env, err, errOut)
	}

	existing, ok := resolveTask(env, args[0])
	if !ok {
		fmt.Fprintf(errOut, "error: task not found: %s\n", args[0])
		return exitcode.UserError
	}

	ctl := form.NewEdit(env.Store, existing)

	// Apply only the flags that were actually set, so untouched fields keep
	// their stored values.
	c.fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "title":
			ctl.SetTitle(c.title)
		case "desc":
			ctl.SetDescription(c.description)
		case "assignee":
			ctl.SetAssignee(c.assignee)
		case "due":
			ctl.SetDueDate(c.dueDate)
		case "priority":
			ctl.SetPriority(task.Priority(c.priority))
		case "status":
			ctl.SetStatus(task.Status(c.status))
		}
	})
	for _, t := range c.rmTags {
		ctl.RemoveTag(t)
	}
	for _, t := range c.addTags {
		ctl.AddTag(t)
	}
	for _, m := range c.rmMembers {
		ctl.RemoveTeamMember(m)
	}
	for _, m := range c.addMembers {
		ctl.AddTeamMember(m)
	}

	return submitForm(ctx, cfg, env, ctl, out, errOut)
}
