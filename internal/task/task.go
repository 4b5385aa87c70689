// Package task defines the task data model shared by the client layers.
package task

import "time"

// Status is the workflow state of a task.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in_progress"
	StatusDone       Status = "done"
)

// ValidStatus reports whether s is one of the known statuses.
func ValidStatus(s Status) bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// Priority is the urgency level of a task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// ValidPriority reports whether p is one of the known priorities.
func ValidPriority(p Priority) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// DateLayout is the wire format for due dates.
const DateLayout = "2006-01-02"

// Limits enforced on task fields.
const (
	TitleMinLen       = 3
	TitleMaxLen       = 100
	DescriptionMaxLen = 500
	MaxTags           = 5
	TagMaxLen         = 20
	MaxTeamMembers    = 10
	TeamMemberMaxLen  = 50
)

// Task is a single task record as held by the remote store.
// ID and CreatedAt are assigned by the server and immutable afterward.
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Status      Status    `json:"status"`
	Priority    Priority  `json:"priority,omitempty"`
	Assignee    string    `json:"assignee,omitempty"`
	DueDate     string    `json:"due_date,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
	TeamMembers []string  `json:"team_members,omitempty"`
	UserID      string    `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateInput is the body sent when creating a task: a Task minus the
// server-assigned fields.
type CreateInput struct {
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Status      Status   `json:"status"`
	Priority    Priority `json:"priority,omitempty"`
	Assignee    string   `json:"assignee,omitempty"`
	DueDate     string   `json:"due_date,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	TeamMembers []string `json:"team_members,omitempty"`
	UserID      string   `json:"user_id"`
}

// Patch is a partial task update. Nil fields are left untouched by the
// server; the response record is still the authoritative whole.
type Patch struct {
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	Status      *Status   `json:"status,omitempty"`
	Priority    *Priority `json:"priority,omitempty"`
	Assignee    *string   `json:"assignee,omitempty"`
	DueDate     *string   `json:"due_date,omitempty"`
	Tags        *[]string `json:"tags,omitempty"`
	TeamMembers *[]string `json:"team_members,omitempty"`
}
