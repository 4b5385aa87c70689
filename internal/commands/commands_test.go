package commands_test

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"os"
	"strings"
	"testing"

	"taskdeck/internal/auth"
	"taskdeck/internal/commands"
	"taskdeck/internal/config"
	"taskdeck/internal/exitcode"
	"taskdeck/internal/logging"
	"taskdeck/internal/store"
	"taskdeck/internal/task"
	"taskdeck/internal/testutil"
)

// newEnv builds an Env over a signed-in fake provider and an empty fake
// remote.
func newEnv(t *testing.T) (*commands.Env, *testutil.FakeRemote) {
	t.Helper()
	return newEnvWith(t, testutil.NewSignedInProvider("u1", "ana@example.com", "tok"))
}

func newEnvWith(t *testing.T, provider *testutil.FakeProvider) (*commands.Env, *testutil.FakeRemote) {
	t.Helper()
	remote := testutil.NewFakeRemote("u1")
	env := &commands.Env{
		Sessions: auth.NewManager(provider),
		Store:    store.New(remote, logging.Discard()),
	}
	t.Cleanup(env.Close)
	return env, remote
}

func seedTask(remote *testutil.FakeRemote, id, title string) {
	remote.Seed(task.Task{
		ID:       id,
		Title:    title,
		Status:   task.StatusTodo,
		Priority: task.PriorityMedium,
		Assignee: "Ana",
		DueDate:  "2099-01-01",
		UserID:   "u1",
	})
}

// runCommand is a helper to run a command against an Env.
func runCommand(t *testing.T, cmd commands.Command, env *commands.Env, args []string, quiet bool) (stdout, stderr string, code int) {
	t.Helper()

	var outBuf, errBuf bytes.Buffer

	cfg := &config.Config{
		Dir:   t.TempDir(),
		Quiet: quiet,
	}

	ctx := context.Background()
	code = cmd.Run(ctx, cfg, env, args, &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), code
}

// Tests for version command
func TestVersionCommand(t *testing.T) {
	cmd := &commands.VersionCmd{}

	stdout, stderr, code := runCommand(t, cmd, nil, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "taskdeck 0.1.0\n" {
		t.Errorf("expected version output, got %q", stdout)
	}
}

// Tests for help command
func TestHelpCommand(t *testing.T) {
	cmd := &commands.HelpCmd{}

	stdout, stderr, code := runCommand(t, cmd, nil, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if !strings.Contains(stdout, "Usage:") {
		t.Error("help output should contain 'Usage:'")
	}
	testutil.GoldenString(t, "help", stdout)
}

// Tests for list command
func TestListCommand_WithTasks(t *testing.T) {
	env, remote := newEnv(t)
	remote.Seed(task.Task{ID: "t1", Title: "Buy milk", Status: task.StatusTodo, UserID: "u1"})
	remote.Seed(task.Task{ID: "t2", Title: "Buy eggs", Status: task.StatusDone, UserID: "u1"})

	cmd := &commands.ListCmd{}
	stdout, stderr, code := runCommand(t, cmd, env, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}

	expected := "   1  [x] Buy eggs\n   2  [ ] Buy milk\n"
	if stdout != expected {
		t.Errorf("expected %q, got %q", expected, stdout)
	}
}

func TestListCommand_Empty(t *testing.T) {
	env, _ := newEnv(t)

	cmd := &commands.ListCmd{}
	stdout, stderr, code := runCommand(t, cmd, env, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "no tasks found\n" {
		t.Errorf("expected 'no tasks found\\n', got %q", stdout)
	}
}

func TestListCommand_EmptyQuiet(t *testing.T) {
	env, _ := newEnv(t)

	cmd := &commands.ListCmd{}
	stdout, _, code := runCommand(t, cmd, env, nil, true)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "" {
		t.Errorf("expected empty stdout in quiet mode, got %q", stdout)
	}
}

func TestListCommand_StatusFilter(t *testing.T) {
	env, remote := newEnv(t)
	remote.Seed(task.Task{ID: "t1", Title: "Buy milk", Status: task.StatusTodo, UserID: "u1"})
	remote.Seed(task.Task{ID: "t2", Title: "Buy eggs", Status: task.StatusDone, UserID: "u1"})

	cmd := &commands.ListCmd{}
	cmd.SetStatus("done")
	stdout, stderr, code := runCommand(t, cmd, env, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}

	// List position is by overall order, not filtered order.
	expected := "   1  [x] Buy eggs\n"
	if stdout != expected {
		t.Errorf("expected %q, got %q", expected, stdout)
	}
}

func TestListCommand_UnknownStatus(t *testing.T) {
	env, _ := newEnv(t)

	cmd := &commands.ListCmd{}
	cmd.SetStatus("paused")
	stdout, stderr, code := runCommand(t, cmd, env, nil, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stdout != "" {
		t.Errorf("expected no stdout, got %q", stdout)
	}
	if stderr != "error: unknown status: paused\n" {
		t.Errorf("expected unknown status error, got %q", stderr)
	}
}

func TestListCommand_BackendFailure(t *testing.T) {
	env, remote := newEnv(t)
	remote.ListErr = errors.New("boom")

	cmd := &commands.ListCmd{}
	stdout, stderr, code := runCommand(t, cmd, env, nil, false)

	if code != exitcode.BackendError {
		t.Errorf("expected exit code %d, got %d", exitcode.BackendError, code)
	}
	if stdout != "" {
		t.Errorf("expected no stdout, got %q", stdout)
	}
	if stderr != "error: Failed to fetch tasks: boom\n" {
		t.Errorf("expected fetch error, got %q", stderr)
	}
}

func TestListCommand_Unauthenticated(t *testing.T) {
	env, remote := newEnv(t)
	remote.ListErr = auth.ErrUnauthenticated

	cmd := &commands.ListCmd{}
	_, stderr, code := runCommand(t, cmd, env, nil, false)

	if code != exitcode.AuthError {
		t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
	}
	if stderr != "error: not logged in (run: taskdeck login)\n" {
		t.Errorf("expected not logged in error, got %q", stderr)
	}
}

// Tests for add command
func TestAddCommand_Success(t *testing.T) {
	env, remote := newEnv(t)

	cmd := &commands.AddCmd{}
	cmd.SetFields("", "Ana", "2099-01-01", "high", nil, nil)
	stdout, stderr, code := runCommand(t, cmd, env, []string{"Ship", "release"}, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	// The server-assigned id is printed.
	if stdout != "task-1\n" {
		t.Errorf("expected created id, got %q", stdout)
	}

	tasks, _ := remote.List(context.Background())
	if len(tasks) != 1 {
		t.Fatalf("expected 1 task, got %d", len(tasks))
	}
	if tasks[0].Title != "Ship release" {
		t.Errorf("expected title 'Ship release', got %q", tasks[0].Title)
	}
	if tasks[0].UserID != "u1" {
		t.Errorf("expected owner u1, got %q", tasks[0].UserID)
	}
}

func TestAddCommand_NoTitle(t *testing.T) {
	env, _ := newEnv(t)

	cmd := &commands.AddCmd{}
	stdout, stderr, code := runCommand(t, cmd, env, nil, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stdout != "" {
		t.Errorf("expected no stdout, got %q", stdout)
	}
	if stderr != "error: title required\n" {
		t.Errorf("expected title required error, got %q", stderr)
	}
}

func TestAddCommand_ValidationFailure(t *testing.T) {
	env, remote := newEnv(t)

	cmd := &commands.AddCmd{}
	cmd.SetFields("", "", "", "medium", nil, nil)
	stdout, stderr, code := runCommand(t, cmd, env, []string{"Ship", "release"}, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stdout != "" {
		t.Errorf("expected no stdout, got %q", stdout)
	}
	expected := "error: assignee: Assignee is required; due_date: Due date is required\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
	if remote.Len() != 0 {
		t.Errorf("expected no task created, got %d", remote.Len())
	}
}

func TestAddCommand_BackendFailure(t *testing.T) {
	env, remote := newEnv(t)
	remote.CreateErr = errors.New("boom")

	cmd := &commands.AddCmd{}
	cmd.SetFields("", "Ana", "2099-01-01", "high", nil, nil)
	stdout, stderr, code := runCommand(t, cmd, env, []string{"Ship", "release"}, false)

	if code != exitcode.BackendError {
		t.Errorf("expected exit code %d, got %d", exitcode.BackendError, code)
	}
	if stdout != "" {
		t.Errorf("expected no stdout, got %q", stdout)
	}
	if stderr != "error: Failed to create task: boom\n" {
		t.Errorf("expected create error, got %q", stderr)
	}
}

// Tests for edit command
func TestEditCommand_AppliesOnlySetFlags(t *testing.T) {
	env, remote := newEnv(t)
	seedTask(remote, "t1", "Old title")

	cmd := &commands.EditCmd{}
	fs := flag.NewFlagSet("edit", flag.ContinueOnError)
	cmd.RegisterFlags(fs)
	if err := fs.Parse([]string{"-title", "New title", "1"}); err != nil {
		t.Fatalf("parse: %v", err)
	}

	stdout, stderr, code := runCommand(t, cmd, env, fs.Args(), false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "t1\n" {
		t.Errorf("expected task id, got %q", stdout)
	}

	tasks, _ := remote.List(context.Background())
	if tasks[0].Title != "New title" {
		t.Errorf("expected new title, got %q", tasks[0].Title)
	}
	// Untouched fields keep their stored values.
	if tasks[0].Assignee != "Ana" || tasks[0].DueDate != "2099-01-01" {
		t.Errorf("unexpected task after edit: %+v", tasks[0])
	}
}

func TestEditCommand_NotFound(t *testing.T) {
	env, _ := newEnv(t)

	cmd := &commands.EditCmd{}
	fs := flag.NewFlagSet("edit", flag.ContinueOnError)
	cmd.RegisterFlags(fs)
	if err := fs.Parse([]string{"nope"}); err != nil {
		t.Fatalf("parse: %v", err)
	}

	stdout, stderr, code := runCommand(t, cmd, env, fs.Args(), false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stdout != "" {
		t.Errorf("expected no stdout, got %q", stdout)
	}
	if stderr != "error: task not found: nope\n" {
		t.Errorf("expected not found error, got %q", stderr)
	}
}

// Tests for done and start commands
func TestDoneCommand_Success(t *testing.T) {
	env, remote := newEnv(t)
	seedTask(remote, "t1", "Buy milk")

	cmd := &commands.DoneCmd{}
	stdout, stderr, code := runCommand(t, cmd, env, []string{"1"}, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "ok\n" {
		t.Errorf("expected 'ok\\n', got %q", stdout)
	}

	tasks, _ := remote.List(context.Background())
	if tasks[0].Status != task.StatusDone {
		t.Errorf("expected done status, got %q", tasks[0].Status)
	}
}

func TestStartCommand_Success(t *testing.T) {
	env, remote := newEnv(t)
	seedTask(remote, "t1", "Buy milk")

	cmd := &commands.StartCmd{}
	stdout, _, code := runCommand(t, cmd, env, []string{"t1"}, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "ok\n" {
		t.Errorf("expected 'ok\\n', got %q", stdout)
	}

	tasks, _ := remote.List(context.Background())
	if tasks[0].Status != task.StatusInProgress {
		t.Errorf("expected in_progress status, got %q", tasks[0].Status)
	}
}

func TestDoneCommand_NoRef(t *testing.T) {
	env, _ := newEnv(t)

	cmd := &commands.DoneCmd{}
	stdout, stderr, code := runCommand(t, cmd, env, nil, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stdout != "" {
		t.Errorf("expected no stdout, got %q", stdout)
	}
	if stderr != "error: task reference required\n" {
		t.Errorf("expected task reference required error, got %q", stderr)
	}
}

func TestDoneCommand_OutOfRange(t *testing.T) {
	env, remote := newEnv(t)
	seedTask(remote, "t1", "Only task")

	cmd := &commands.DoneCmd{}
	stdout, stderr, code := runCommand(t, cmd, env, []string{"5"}, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stdout != "" {
		t.Errorf("expected no stdout, got %q", stdout)
	}
	if stderr != "error: task not found: 5\n" {
		t.Errorf("expected not found error, got %q", stderr)
	}
}

// Tests for rm command
func TestRmCommand_Success(t *testing.T) {
	env, remote := newEnv(t)
	seedTask(remote, "t1", "Buy milk")
	seedTask(remote, "t2", "Buy eggs")

	cmd := &commands.RmCmd{}
	stdout, stderr, code := runCommand(t, cmd, env, []string{"1"}, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "ok\n" {
		t.Errorf("expected 'ok\\n', got %q", stdout)
	}

	// Position 1 is the most recent seed.
	if remote.Len() != 1 {
		t.Fatalf("expected 1 task remaining, got %d", remote.Len())
	}
	tasks, _ := remote.List(context.Background())
	if tasks[0].ID != "t1" {
		t.Errorf("expected t1 to remain, got %q", tasks[0].ID)
	}
}

func TestRmCommand_IDPrefix(t *testing.T) {
	env, remote := newEnv(t)
	seedTask(remote, "abc-123", "Buy milk")

	cmd := &commands.RmCmd{}
	stdout, _, code := runCommand(t, cmd, env, []string{"abc"}, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "ok\n" {
		t.Errorf("expected 'ok\\n', got %q", stdout)
	}
	if remote.Len() != 0 {
		t.Errorf("expected no tasks remaining, got %d", remote.Len())
	}
}

func TestRmCommand_AmbiguousPrefix(t *testing.T) {
	env, remote := newEnv(t)
	seedTask(remote, "abc-123", "Buy milk")
	seedTask(remote, "abc-456", "Buy eggs")

	cmd := &commands.RmCmd{}
	stdout, stderr, code := runCommand(t, cmd, env, []string{"abc"}, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stdout != "" {
		t.Errorf("expected no stdout, got %q", stdout)
	}
	if stderr != "error: task not found: abc\n" {
		t.Errorf("expected not found error, got %q", stderr)
	}
	if remote.Len() != 2 {
		t.Errorf("expected both tasks to remain, got %d", remote.Len())
	}
}

// Tests for show command
func TestShowCommand_Success(t *testing.T) {
	env, remote := newEnv(t)
	seedTask(remote, "t1", "Buy milk")

	cmd := &commands.ShowCmd{}
	stdout, stderr, code := runCommand(t, cmd, env, []string{"t1"}, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	for _, want := range []string{"id:        t1", "title:     Buy milk", "assignee:  Ana"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("expected detail output to contain %q, got %q", want, stdout)
		}
	}
}

// Tests for login, signup, logout, whoami
func TestLoginCommand_Success(t *testing.T) {
	env, _ := newEnvWith(t, testutil.NewFakeProvider())

	cmd := &commands.LoginCmd{}
	cmd.SetCredentials("ana@example.com", "pw")
	stdout, stderr, code := runCommand(t, cmd, env, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "signed in as ana@example.com\n" {
		t.Errorf("expected signed in output, got %q", stdout)
	}
	if env.Sessions.Current() == nil {
		t.Error("expected session after login")
	}
}

func TestLoginCommand_NoEmail(t *testing.T) {
	env, _ := newEnvWith(t, testutil.NewFakeProvider())

	cmd := &commands.LoginCmd{}
	stdout, stderr, code := runCommand(t, cmd, env, nil, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stdout != "" {
		t.Errorf("expected no stdout, got %q", stdout)
	}
	if stderr != "error: --email required\n" {
		t.Errorf("expected email required error, got %q", stderr)
	}
}

func TestLoginCommand_Rejected(t *testing.T) {
	provider := testutil.NewFakeProvider()
	provider.SignInErr = errors.New("invalid email or password")
	env, _ := newEnvWith(t, provider)

	cmd := &commands.LoginCmd{}
	cmd.SetCredentials("ana@example.com", "wrong")
	stdout, stderr, code := runCommand(t, cmd, env, nil, false)

	if code != exitcode.AuthError {
		t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
	}
	if stdout != "" {
		t.Errorf("expected no stdout, got %q", stdout)
	}
	if stderr != "error: sign-in failed: invalid email or password\n" {
		t.Errorf("expected sign-in failure, got %q", stderr)
	}
}

func TestSignupCommand_Success(t *testing.T) {
	env, _ := newEnvWith(t, testutil.NewFakeProvider())

	cmd := &commands.SignupCmd{}
	cmd.SetCredentials("ana@example.com", "pw")
	stdout, _, code := runCommand(t, cmd, env, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "signed in as ana@example.com\n" {
		t.Errorf("expected signed in output, got %q", stdout)
	}
}

func TestLogoutCommand_Success(t *testing.T) {
	env, _ := newEnv(t)

	cmd := &commands.LogoutCmd{}
	stdout, stderr, code := runCommand(t, cmd, env, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "ok\n" {
		t.Errorf("expected 'ok\\n', got %q", stdout)
	}
	if env.Sessions.Current() != nil {
		t.Error("expected no session after logout")
	}
}

func TestLogoutCommand_NotLoggedIn(t *testing.T) {
	env, _ := newEnvWith(t, testutil.NewFakeProvider())

	cmd := &commands.LogoutCmd{}
	stdout, _, code := runCommand(t, cmd, env, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "not logged in\n" {
		t.Errorf("expected 'not logged in\\n', got %q", stdout)
	}
}

// Tests for config command
func TestConfigCommand_Show(t *testing.T) {
	cfg := &config.Config{
		Dir:     t.TempDir(),
		APIURL:  "http://api.example.com",
		AuthURL: "http://auth.example.com",
	}

	var outBuf, errBuf bytes.Buffer
	cmd := &commands.ConfigCmd{}
	code := cmd.Run(context.Background(), cfg, nil, nil, &outBuf, &errBuf)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if errBuf.String() != "" {
		t.Errorf("expected no stderr, got %q", errBuf.String())
	}
	expected := "config:     " + cfg.Dir + "\n" +
		"api_url:    http://api.example.com\n" +
		"auth_url:   http://auth.example.com\n" +
		"credential: none\n"
	if outBuf.String() != expected {
		t.Errorf("expected %q, got %q", expected, outBuf.String())
	}
}

func TestConfigCommand_ShowStoredCredential(t *testing.T) {
	cfg := &config.Config{Dir: t.TempDir()}
	if err := os.WriteFile(cfg.TokenPath(), []byte("{}"), 0600); err != nil {
		t.Fatalf("write token: %v", err)
	}

	var outBuf, errBuf bytes.Buffer
	cmd := &commands.ConfigCmd{}
	code := cmd.Run(context.Background(), cfg, nil, nil, &outBuf, &errBuf)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if !strings.Contains(outBuf.String(), "credential: stored\n") {
		t.Errorf("expected stored credential, got %q", outBuf.String())
	}
}

func TestConfigCommand_SaveEndpoints(t *testing.T) {
	t.Setenv("TASKDECK_API_URL", "")
	t.Setenv("TASKDECK_AUTH_URL", "")

	cfg := &config.Config{Dir: t.TempDir()}

	cmd := &commands.ConfigCmd{}
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	cmd.RegisterFlags(fs)
	if err := fs.Parse([]string{"-api", "http://api.example.com", "-auth", "http://auth.example.com"}); err != nil {
		t.Fatalf("parse: %v", err)
	}

	var outBuf, errBuf bytes.Buffer
	code := cmd.Run(context.Background(), cfg, nil, fs.Args(), &outBuf, &errBuf)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if errBuf.String() != "" {
		t.Errorf("expected no stderr, got %q", errBuf.String())
	}
	if outBuf.String() != "ok\n" {
		t.Errorf("expected 'ok\\n', got %q", outBuf.String())
	}

	// A fresh load of the same directory sees the saved endpoints.
	reloaded, err := config.New(cfg.Dir)
	if err != nil {
		t.Fatalf("reload config: %v", err)
	}
	if reloaded.APIURL != "http://api.example.com" {
		t.Errorf("expected saved api_url, got %q", reloaded.APIURL)
	}
	if reloaded.AuthURL != "http://auth.example.com" {
		t.Errorf("expected saved auth_url, got %q", reloaded.AuthURL)
	}
}

func TestWhoamiCommand(t *testing.T) {
	env, _ := newEnv(t)

	cmd := &commands.WhoamiCmd{}
	stdout, _, code := runCommand(t, cmd, env, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "ana@example.com (u1)\n" {
		t.Errorf("expected identity output, got %q", stdout)
	}
}
