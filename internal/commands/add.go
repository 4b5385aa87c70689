package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"taskdeck/internal/config"
	"taskdeck/internal/exitcode"
	"taskdeck/internal/form"
	"taskdeck/internal/task"
	"taskdeck/internal/validate"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command: a create form filled from flags and
// submitted once.
type AddCmd struct {
	description string
	assignee    string
	dueDate     string
	priority    string
	tags        stringList
	members     stringList
}

// SetFields sets the form fields (for testing).
func (c *AddCmd) SetFields(description, assignee, dueDate, priority string, tags, members []string) {
	c.description = description
	c.assignee = assignee
	c.dueDate = dueDate
	c.priority = priority
	c.tags = tags
	c.members = members
}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"create"} }
func (c *AddCmd) Synopsis() string  { return "Create a task" }
func (c *AddCmd) Usage() string {
	return "taskdeck add [common flags] --assignee <name> --due <date> [--priority <p>] [--desc <text>] [--tag <t>]... [--member <m>]... <title...>"
}
func (c *AddCmd) NeedsAuth() bool { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.description, "desc", "", "")
	fs.StringVar(&c.assignee, "assignee", "", "")
	fs.StringVar(&c.assignee, "a", "", "")
	fs.StringVar(&c.dueDate, "due", "", "")
	fs.StringVar(&c.dueDate, "d", "", "")
	fs.StringVar(&c.priority, "priority", "medium", "")
	fs.StringVar(&c.priority, "p", "medium", "")
	fs.Var(&c.tags, "tag", "")
	fs.Var(&c.members, "member", "")
}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, env *Env, args []string, out, errOut io.Writer) int {
	title := strings.Join(args, " ")
	if strings.TrimSpace(title) == "" {
		fmt.Fprintln(errOut, "error: title required")
		return exitcode.UserError
	}

	session := env.Sessions.Current()
	if session == nil {
		fmt.Fprintln(errOut, "error: not logged in (run: taskdeck login)")
		return exitcode.AuthError
	}

	ctl := form.NewCreate(env.Store, session.UserID)
	ctl.SetTitle(title)
	ctl.SetDescription(c.description)
	ctl.SetAssignee(c.assignee)
	ctl.SetDueDate(c.dueDate)
	ctl.SetPriority(task.Priority(c.priority))
	for _, t := range c.tags {
		ctl.AddTag(t)
	}
	for _, m := range c.members {
		ctl.AddTeamMember(m)
	}

	return submitForm(ctx, cfg, env, ctl, out, errOut)
}

// submitForm runs one form submission and maps the outcome to an exit code.
// Shared by add and edit.
func submitForm(ctx context.Context, cfg *config.Config, env *Env, ctl *form.Controller, out, errOut io.Writer) int {
	err := ctl.Submit(ctx)
	if errors.Is(err, form.ErrInvalid) {
		fmt.Fprintf(errOut, "error: %s\n", validate.Summary(ctl.Errors()))
		return exitcode.UserError
	}
	if err != nil {
		return remoteFailure(env, err, errOut)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, ctl.Result().ID)
	}
	return exitcode.Success
}
