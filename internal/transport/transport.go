// Package transport is the authenticated CRUD client for the remote task
// store.
package transport

import (
	"context"
	"fmt"

	"taskdeck/internal/task"
)

// Service is the remote task store surface consumed by the store layer.
// Commands and the store never issue HTTP requests directly.
type Service interface {
	// List returns the caller's tasks ordered by created_at descending.
	List(ctx context.Context) ([]task.Task, error)

	// Create sends a draft and returns the server-assigned record.
	Create(ctx context.Context, input task.CreateInput) (task.Task, error)

	// Update sends a partial task and returns the full updated record.
	Update(ctx context.Context, id string, patch task.Patch) (task.Task, error)

	// Delete removes a task by id.
	Delete(ctx context.Context, id string) error
}

// RemoteError is a non-success response from the remote store.
type RemoteError struct {
	Status  int
	Message string
}

func (e *RemoteError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("remote store returned %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("remote store returned %d", e.Status)
}
