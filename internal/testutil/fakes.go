// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"fmt"
	"sync"
	"time"

	"taskdeck/internal/auth"
	"taskdeck/internal/task"
)

// FakeProvider is an in-memory auth.Provider for testing.
type FakeProvider struct {
	mu        sync.Mutex
	session   *auth.Session
	token     string
	listeners map[int]func(*auth.Session)
	nextID    int

	// Error injection for testing
	AccessTokenErr error
	SignInErr      error
	SignUpErr      error
	SignOutErr     error
}

// NewFakeProvider creates a signed-out provider.
func NewFakeProvider() *FakeProvider {
	return &FakeProvider{listeners: make(map[int]func(*auth.Session))}
}

// NewSignedInProvider creates a provider with an active session and token.
func NewSignedInProvider(userID, email, token string) *FakeProvider {
	p := NewFakeProvider()
	p.session = &auth.Session{UserID: userID, Email: email}
	p.token = token
	return p
}

// SetSession swaps the current session and notifies listeners.
func (p *FakeProvider) SetSession(s *auth.Session, token string) {
	p.mu.Lock()
	p.session = s
	p.token = token
	fns := make([]func(*auth.Session), 0, len(p.listeners))
	for _, fn := range p.listeners {
		fns = append(fns, fn)
	}
	p.mu.Unlock()
	for _, fn := range fns {
		fn(s)
	}
}

// CurrentSession implements auth.Provider.
func (p *FakeProvider) CurrentSession(ctx context.Context) (*auth.Session, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.session, nil
}

// Subscribe implements auth.Provider.
func (p *FakeProvider) Subscribe(listener func(*auth.Session)) func() {
	p.mu.Lock()
	id := p.nextID
	p.nextID++
	p.listeners[id] = listener
	current := p.session
	p.mu.Unlock()

	listener(current)

	return func() {
		p.mu.Lock()
		delete(p.listeners, id)
		p.mu.Unlock()
	}
}

// SubscriberCount reports how many listeners are registered.
func (p *FakeProvider) SubscriberCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.listeners)
}

// SignUp implements auth.Provider.
func (p *FakeProvider) SignUp(ctx context.Context, email, password string) (*auth.Session, error) {
	if p.SignUpErr != nil {
		return nil, p.SignUpErr
	}
	s := &auth.Session{UserID: "user-" + email, Email: email}
	p.SetSession(s, "token-"+email)
	return s, nil
}

// SignIn implements auth.Provider.
func (p *FakeProvider) SignIn(ctx context.Context, email, password string) (*auth.Session, error) {
	if p.SignInErr != nil {
		return nil, p.SignInErr
	}
	s := &auth.Session{UserID: "user-" + email, Email: email}
	p.SetSession(s, "token-"+email)
	return s, nil
}

// SignOut implements auth.Provider.
func (p *FakeProvider) SignOut(ctx context.Context) error {
	if p.SignOutErr != nil {
		return p.SignOutErr
	}
	p.SetSession(nil, "")
	return nil
}

// AccessToken implements auth.Provider.
func (p *FakeProvider) AccessToken(ctx context.Context) (string, error) {
	if p.AccessTokenErr != nil {
		return "", p.AccessTokenErr
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.session == nil {
		return "", auth.ErrUnauthenticated
	}
	return p.token, nil
}

// FakeRemote is an in-memory transport.Service for testing. Records are
// returned most recent first, like the real store.
type FakeRemote struct {
	mu     sync.Mutex
	tasks  []task.Task
	nextID int
	UserID string

	// Error injection for testing
	ListErr   error
	CreateErr error
	UpdateErr error
	DeleteErr error

	// Hooks invoked while a call is in flight, before it resolves.
	OnCreate func()
}

// NewFakeRemote creates an empty remote owned by userID.
func NewFakeRemote(userID string) *FakeRemote {
	return &FakeRemote{UserID: userID}
}

// Seed inserts a confirmed task directly, bypassing Create.
func (f *FakeRemote) Seed(t task.Task) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks = append([]task.Task{t}, f.tasks...)
}

// Len reports how many tasks the remote currently holds.
func (f *FakeRemote) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.tasks)
}

// List implements transport.Service.
func (f *FakeRemote) List(ctx context.Context) ([]task.Task, error) {
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]task.Task, len(f.tasks))
	copy(out, f.tasks)
	return out, nil
}

// Create implements transport.Service.
func (f *FakeRemote) Create(ctx context.Context, input task.CreateInput) (task.Task, error) {
	if f.OnCreate != nil {
		f.OnCreate()
	}
	if f.CreateErr != nil {
		return task.Task{}, f.CreateErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextID++
	status := input.Status
	if status == "" {
		status = task.StatusTodo
	}
	t := task.Task{
		ID:          fmt.Sprintf("task-%d", f.nextID),
		Title:       input.Title,
		Description: input.Description,
		Status:      status,
		Priority:    input.Priority,
		Assignee:    input.Assignee,
		DueDate:     input.DueDate,
		Tags:        input.Tags,
		TeamMembers: input.TeamMembers,
		UserID:      f.UserID,
		CreatedAt:   time.Now().UTC(),
	}
	f.tasks = append([]task.Task{t}, f.tasks...)
	return t, nil
}

// Update implements transport.Service.
func (f *FakeRemote) Update(ctx context.Context, id string, patch task.Patch) (task.Task, error) {
	if f.UpdateErr != nil {
		return task.Task{}, f.UpdateErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	for i, t := range f.tasks {
		if t.ID == id {
			if patch.Title != nil {
				t.Title = *patch.Title
			}
			if patch.Description != nil {
				t.Description = *patch.Description
			}
			if patch.Status != nil {
				t.Status = *patch.Status
			}
			if patch.Priority != nil {
				t.Priority = *patch.Priority
			}
			if patch.Assignee != nil {
				t.Assignee = *patch.Assignee
			}
			if patch.DueDate != nil {
				t.DueDate = *patch.DueDate
			}
			if patch.Tags != nil {
				t.Tags = *patch.Tags
			}
			if patch.TeamMembers != nil {
				t.TeamMembers = *patch.TeamMembers
			}
			f.tasks[i] = t
			return t, nil
		}
	}
	return task.Task{}, fmt.Errorf("not found: %s", id)
}

// Delete implements transport.Service.
func (f *FakeRemote) Delete(ctx context.Context, id string) error {
	if f.DeleteErr != nil {
		return f.DeleteErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	for i, t := range f.tasks {
		if t.ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("not found: %s", id)
}
