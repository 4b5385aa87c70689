package output

import (
	"bytes"
	"testing"
	"time"

	"taskdeck/internal/task"
)

func TestFormatTask(t *testing.T) {
	tests := []struct {
		name string
		num  int
		t    task.Task
		want string
	}{
		{
			name: "bare todo",
			num:  1,
			t:    task.Task{Title: "Buy milk", Status: task.StatusTodo},
			want: "   1  [ ] Buy milk\n",
		},
		{
			name: "done with meta",
			num:  12,
			t: task.Task{
				Title:    "Ship release",
				Status:   task.StatusDone,
				Priority: task.PriorityHigh,
				DueDate:  "2099-01-01",
			},
			want: "  12  [x] Ship release  (high, due 2099-01-01)\n",
		},
		{
			name: "in progress",
			num:  3,
			t:    task.Task{Title: "Review PR", Status: task.StatusInProgress, Priority: task.PriorityLow},
			want: "   3  [~] Review PR  (low)\n",
		},
		{
			name: "unknown status",
			num:  1,
			t:    task.Task{Title: "Mystery", Status: task.Status("archived")},
			want: "   1  [?] Mystery\n",
		},
		{
			name: "untitled",
			num:  1,
			t:    task.Task{Title: "  \n ", Status: task.StatusTodo},
			want: "   1  [ ] (untitled)\n",
		},
		{
			name: "title with newlines",
			num:  1,
			t:    task.Task{Title: "line one\nline two", Status: task.StatusTodo},
			want: "   1  [ ] line one line two\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			FormatTask(&buf, tt.num, tt.t)
			if got := buf.String(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatTaskDetail(t *testing.T) {
	var buf bytes.Buffer
	FormatTaskDetail(&buf, task.Task{
		ID:          "t1",
		Title:       "Ship release",
		Description: "cut the tag",
		Status:      task.StatusTodo,
		Priority:    task.PriorityHigh,
		Assignee:    "Ana",
		DueDate:     "2099-01-01",
		Tags:        []string{"release", "q3"},
		TeamMembers: []string{"Ana", "Bob"},
		CreatedAt:   time.Date(2024, 6, 15, 13, 45, 0, 0, time.UTC),
	})

	want := `id:        t1
title:     Ship release
desc:      cut the tag
status:    todo
priority:  high
assignee:  Ana
due:       2099-01-01
tags:      release, q3
team:      Ana, Bob
created:   2024-06-15 13:45
`
	if got := buf.String(); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestFormatTaskDetail_OmitsEmptyFields(t *testing.T) {
	var buf bytes.Buffer
	FormatTaskDetail(&buf, task.Task{ID: "t1", Title: "Bare", Status: task.StatusTodo})

	want := "id:        t1\ntitle:     Bare\nstatus:    todo\n"
	if got := buf.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
