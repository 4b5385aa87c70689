// Package form manages one transient edit buffer per open create or edit
// form, and is the only place field validation runs.
package form

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"taskdeck/internal/task"
	"taskdeck/internal/validate"
)

// ErrInvalid is returned by Submit when validation rejected the draft; the
// field messages are exposed via Errors. Nothing reached the network.
var ErrInvalid = errors.New("draft failed validation")

// ErrCommitted is returned when Submit is called on a controller whose draft
// already reached the store. A committed controller is done; the caller
// discards it.
var ErrCommitted = errors.New("form already committed")

// MsgSubmitFailed is the generic submission error, distinct from field
// errors.
const MsgSubmitFailed = "Failed to save task. Please try again."

// Mode selects between creating a task and editing an existing one.
type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
)

// State is the controller's lifecycle position.
type State int

const (
	StateEditing State = iota
	StateSubmitting
	StateCommitted
)

// Committer is the store surface the controller commits through.
// Implemented by store.Store.
type Committer interface {
	Create(ctx context.Context, input task.CreateInput) (task.Task, error)
	Update(ctx context.Context, id string, patch task.Patch) (task.Task, error)
}

// Controller holds a draft record and a parallel error set. Editing a field
// clears that field's error without re-validating; a full validation pass
// runs only at Submit. One submission may be in flight at a time; a second
// concurrent Submit is a no-op.
type Controller struct {
	store  Committer
	mode   Mode
	userID string
	taskID string
	now    func() time.Time

	mu     sync.Mutex
	state  State
	draft  task.Task
	errs   validate.Errors
	result task.Task
}

// NewCreate returns a controller for a fresh draft owned by userID. Status
// defaults to todo and priority to medium, matching a blank form.
func NewCreate(store Committer, userID string) *Controller {
	return &Controller{
		store:  store,
		mode:   ModeCreate,
		userID: userID,
		now:    time.Now,
		draft: task.Task{
			Status:   task.StatusTodo,
			Priority: task.PriorityMedium,
			UserID:   userID,
		},
		errs: validate.Errors{},
	}
}

// NewEdit returns a controller seeded from an existing record.
func NewEdit(store Committer, existing task.Task) *Controller {
	return &Controller{
		store:  store,
		mode:   ModeEdit,
		userID: existing.UserID,
		taskID: existing.ID,
		now:    time.Now,
		draft:  existing,
		errs:   validate.Errors{},
	}
}

// State returns the controller's lifecycle position.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Draft returns a copy of the current draft. The tag and member slices
// are copied too, so the snapshot is unaffected by later edits.
func (c *Controller) Draft() task.Task {
	c.mu.Lock()
	defer c.mu.Unlock()
	d := c.draft
	d.Tags = append([]string(nil), c.draft.Tags...)
	d.TeamMembers = append([]string(nil), c.draft.TeamMembers...)
	return d
}

// Errors returns a copy of the current error set.
func (c *Controller) Errors() validate.Errors {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(validate.Errors, len(c.errs))
	for k, v := range c.errs {
		out[k] = v
	}
	return out
}

// Result returns the server-confirmed record after a successful Submit.
func (c *Controller) Result() task.Task {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.result
}

// SetTitle updates the draft title and clears any title error. No
// re-validation happens until Submit.
func (c *Controller) SetTitle(v string) { c.set("title", func(d *task.Task) { d.Title = v }) }

// SetDescription updates the draft description.
func (c *Controller) SetDescription(v string) {
	c.set("description", func(d *task.Task) { d.Description = v })
}

// SetAssignee updates the draft assignee.
func (c *Controller) SetAssignee(v string) { c.set("assignee", func(d *task.Task) { d.Assignee = v }) }

// SetDueDate updates the draft due date (YYYY-MM-DD).
func (c *Controller) SetDueDate(v string) { c.set("due_date", func(d *task.Task) { d.DueDate = v }) }

// SetStatus updates the draft status.
func (c *Controller) SetStatus(v task.Status) { c.set("status", func(d *task.Task) { d.Status = v }) }

// SetPriority updates the draft priority.
func (c *Controller) SetPriority(v task.Priority) {
	c.set("priority", func(d *task.Task) { d.Priority = v })
}

func (c *Controller) set(field string, apply func(*task.Task)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	apply(&c.draft)
	delete(c.errs, field)
}

// AddTag appends a tag, enforcing the cardinality bound at insertion time.
// A duplicate is silently ignored; exceeding the bound surfaces the same
// message full validation would.
func (c *Controller) AddTag(text string) {
	c.addEntry(text, "tags", task.MaxTags, validate.MsgTooManyTags,
		func(d *task.Task) *[]string { return &d.Tags })
}

// RemoveTag removes a tag by its text.
func (c *Controller) RemoveTag(text string) {
	c.removeEntry(text, "tags", func(d *task.Task) *[]string { return &d.Tags })
}

// AddTeamMember appends a team member, enforcing the cardinality bound at
// insertion time.
func (c *Controller) AddTeamMember(text string) {
	c.addEntry(text, "team_members", task.MaxTeamMembers, validate.MsgTooManyTeamMembers,
		func(d *task.Task) *[]string { return &d.TeamMembers })
}

// RemoveTeamMember removes a team member by their text.
func (c *Controller) RemoveTeamMember(text string) {
	c.removeEntry(text, "team_members", func(d *task.Task) *[]string { return &d.TeamMembers })
}

func (c *Controller) addEntry(text, field string, max int, msg string, list func(*task.Task) *[]string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	entries := list(&c.draft)
	if len(*entries) >= max {
		c.errs[field] = msg
		return
	}
	for _, e := range *entries {
		if e == text {
			return
		}
	}
	*entries = append(*entries, text)
	delete(c.errs, field)
}

func (c *Controller) removeEntry(text, field string, list func(*task.Task) *[]string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entries := list(&c.draft)
	kept := (*entries)[:0]
	for _, e := range *entries {
		if e != text {
			kept = append(kept, e)
		}
	}
	*entries = kept
	delete(c.errs, field)
}

// Submit validates the draft and, if clean, commits it through the store.
// A validation failure aborts before any network activity and exposes the
// error set. While a submission is in flight a second Submit returns nil
// without doing anything. On success the controller is terminal.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	switch c.state {
	case StateSubmitting:
		c.mu.Unlock()
		return nil
	case StateCommitted:
		c.mu.Unlock()
		return ErrCommitted
	}

	errs := validate.Check(c.draft, c.now())
	if !errs.OK() {
		c.errs = errs
		c.mu.Unlock()
		return ErrInvalid
	}

	if c.userID == "" {
		c.errs["submit"] = "User not authenticated. Please log in again."
		c.mu.Unlock()
		return ErrInvalid
	}

	c.state = StateSubmitting
	c.errs = validate.Errors{}
	draft := c.draft
	c.mu.Unlock()

	var committed task.Task
	var err error
	if c.mode == ModeCreate {
		committed, err = c.store.Create(ctx, createInput(draft, c.userID))
	} else {
		committed, err = c.store.Update(ctx, c.taskID, patchFrom(draft))
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.state = StateEditing
		c.errs["submit"] = MsgSubmitFailed
		return err
	}
	c.state = StateCommitted
	c.result = committed
	return nil
}

// createInput shapes a draft for the create path: server-assigned fields are
// absent, the owner is always the authenticated identity, status defaults to
// todo.
func createInput(d task.Task, userID string) task.CreateInput {
	status := d.Status
	if status == "" {
		status = task.StatusTodo
	}
	return task.CreateInput{
		Title:       d.Title,
		Description: d.Description,
		Status:      status,
		Priority:    d.Priority,
		Assignee:    d.Assignee,
		DueDate:     d.DueDate,
		Tags:        d.Tags,
		TeamMembers: d.TeamMembers,
		UserID:      userID,
	}
}

// patchFrom sends the whole edited draft; the server response, not the
// patch, is what replaces the stored record.
func patchFrom(d task.Task) task.Patch {
	return task.Patch{
		Title:       &d.Title,
		Description: &d.Description,
		Status:      &d.Status,
		Priority:    &d.Priority,
		Assignee:    &d.Assignee,
		DueDate:     &d.DueDate,
		Tags:        &d.Tags,
		TeamMembers: &d.TeamMembers,
	}
}
