// Package validate checks a candidate task against the field rules that must
// pass before any mutation leaves the client.
package validate

import (
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"taskdeck/internal/task"
)

// Errors maps a field name to a single human-readable message. Empty means
// the candidate is acceptable for submission.
type Errors map[string]string

// OK reports whether no rule was violated.
func (e Errors) OK() bool { return len(e) == 0 }

// Messages for each rule. Exposed so the form layer can surface identical
// text when it enforces cardinality at insertion time.
const (
	MsgTitleRequired      = "Title is required"
	MsgTitleTooShort      = "Title must be at least 3 characters long"
	MsgTitleTooLong       = "Title must be less than 100 characters"
	MsgDescriptionTooLong = "Description must be less than 500 characters"
	MsgAssigneeRequired   = "Assignee is required"
	MsgDueDateRequired    = "Due date is required"
	MsgDueDateInvalid     = "Due date must be a valid date (YYYY-MM-DD)"
	MsgDueDatePast        = "Due date cannot be in the past"
	MsgPriorityRequired   = "Priority is required"
	MsgPriorityUnknown    = "Priority must be low, medium, high or urgent"
	MsgTooManyTags        = "Maximum 5 tags allowed"
	MsgTooManyTeamMembers = "Maximum 10 team members allowed"
)

// Check evaluates every rule against one candidate task and returns the full
// error set in a single pass. Lengths are counted in characters, not bytes.
// Due dates are compared at day granularity: a date equal to today (in now's
// location) is acceptable.
func Check(t task.Task, now time.Time) Errors {
	errs := Errors{}

	title := strings.TrimSpace(t.Title)
	switch {
	case title == "":
		errs["title"] = MsgTitleRequired
	case utf8.RuneCountInString(title) < task.TitleMinLen:
		errs["title"] = MsgTitleTooShort
	case utf8.RuneCountInString(title) > task.TitleMaxLen:
		errs["title"] = MsgTitleTooLong
	}

	if utf8.RuneCountInString(t.Description) > task.DescriptionMaxLen {
		errs["description"] = MsgDescriptionTooLong
	}

	if strings.TrimSpace(t.Assignee) == "" {
		errs["assignee"] = MsgAssigneeRequired
	}

	if strings.TrimSpace(t.DueDate) == "" {
		errs["due_date"] = MsgDueDateRequired
	} else if due, err := time.ParseInLocation(task.DateLayout, t.DueDate, now.Location()); err != nil {
		errs["due_date"] = MsgDueDateInvalid
	} else {
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		if due.Before(today) {
			errs["due_date"] = MsgDueDatePast
		}
	}

	if t.Priority == "" {
		errs["priority"] = MsgPriorityRequired
	} else if !task.ValidPriority(t.Priority) {
		errs["priority"] = MsgPriorityUnknown
	}

	if len(t.Tags) > task.MaxTags {
		errs["tags"] = MsgTooManyTags
	}

	if len(t.TeamMembers) > task.MaxTeamMembers {
		errs["team_members"] = MsgTooManyTeamMembers
	}

	return errs
}

// Summary flattens an error set into one line: known fields in form order,
// anything else appended in sorted order. Used for CLI output.
func Summary(errs Errors) string {
	if len(errs) == 0 {
		return ""
	}
	order := []string{"title", "priority", "description", "assignee", "due_date", "tags", "team_members", "submit"}
	var parts []string
	seen := make(map[string]bool, len(errs))
	for _, field := range order {
		if msg, ok := errs[field]; ok {
			parts = append(parts, fmt.Sprintf("%s: %s", field, msg))
			seen[field] = true
		}
	}
	var rest []string
	for field := range errs {
		if !seen[field] {
			rest = append(rest, field)
		}
	}
	sort.Strings(rest)
	for _, field := range rest {
		parts = append(parts, fmt.Sprintf("%s: %s", field, errs[field]))
	}
	return strings.Join(parts, "; ")
}
