package commands

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"taskdeck/internal/auth"
	"taskdeck/internal/exitcode"
	"taskdeck/internal/task"
)

// remoteFailure prints a failed store operation and maps it to an exit
// code. The store has already recorded the human-readable message and left
// its collection untouched.
func remoteFailure(env *Env, err error, errOut io.Writer) int {
	if errors.Is(err, auth.ErrUnauthenticated) {
		fmt.Fprintln(errOut, "error: not logged in (run: taskdeck login)")
		return exitcode.AuthError
	}
	if msg := env.Store.Err(); msg != "" {
		fmt.Fprintf(errOut, "error: %s\n", msg)
	} else {
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
	}
	return exitcode.BackendError
}

// resolveTask resolves a task reference against the loaded store: a 1-based
// list position, an exact id, or an unambiguous id prefix.
func resolveTask(env *Env, ref string) (task.Task, bool) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return task.Task{}, false
	}

	tasks := env.Store.Tasks()

	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(tasks) {
			return task.Task{}, false
		}
		return tasks[n-1], true
	}

	if t, ok := env.Store.Get(ref); ok {
		return t, true
	}

	var match task.Task
	var found bool
	for _, t := range tasks {
		if strings.HasPrefix(t.ID, ref) {
			if found {
				return task.Task{}, false // ambiguous
			}
			match = t
			found = true
		}
	}
	return match, found
}
