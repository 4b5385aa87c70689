package devserver

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"taskdeck/internal/task"
)

func (s *Server) handleListTasks(c *gin.Context) {
	userID := c.GetString(ctxUserID)

	rows, err := s.db.QueryContext(c, `
		SELECT id, user_id, title, description, status, priority, assignee,
		       due_date, tags, team_members, created_at
		FROM tasks WHERE user_id = ? ORDER BY created_at DESC`, userID)
	if err != nil {
		s.log.WithError(err).Error("task list query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch tasks"})
		return
	}
	defer rows.Close()

	tasks := []task.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			s.log.WithError(err).Error("task row scan failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch tasks"})
			return
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch tasks"})
		return
	}

	c.JSON(http.StatusOK, tasks)
}

func (s *Server) handleCreateTask(c *gin.Context) {
	userID := c.GetString(ctxUserID)

	var input task.CreateInput
	if err := c.ShouldBindBodyWithJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if input.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title is required"})
		return
	}
	if input.Status == "" {
		input.Status = task.StatusTodo
	}

	t := task.Task{
		ID:          uuid.NewString(),
		Title:       input.Title,
		Description: input.Description,
		Status:      input.Status,
		Priority:    input.Priority,
		Assignee:    input.Assignee,
		DueDate:     input.DueDate,
		Tags:        input.Tags,
		TeamMembers: input.TeamMembers,
		UserID:      userID, // owner is always the caller, whatever the body says
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.insertTask(c, t); err != nil {
		s.log.WithError(err).Error("task insert failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create task"})
		return
	}

	c.JSON(http.StatusCreated, t)
}

func (s *Server) handleUpdateTask(c *gin.Context) {
	userID := c.GetString(ctxUserID)
	id := c.Param("id")

	existing, err := s.taskByID(c, id, userID)
	if errors.Is(err, sql.ErrNoRows) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify task ownership"})
		return
	}

	var patch task.Patch
	if err := c.ShouldBindBodyWithJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	applyPatch(&existing, patch)

	tags, members, err := encodeLists(existing)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update task"})
		return
	}
	_, err = s.db.ExecContext(c, `
		UPDATE tasks SET title = ?, description = ?, status = ?, priority = ?,
		       assignee = ?, due_date = ?, tags = ?, team_members = ?
		WHERE id = ? AND user_id = ?`,
		existing.Title, existing.Description, string(existing.Status), string(existing.Priority),
		existing.Assignee, existing.DueDate, tags, members, id, userID)
	if err != nil {
		s.log.WithError(err).Error("task update failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update task"})
		return
	}

	c.JSON(http.StatusOK, existing)
}

func (s *Server) handleDeleteTask(c *gin.Context) {
	userID := c.GetString(ctxUserID)
	id := c.Param("id")

	if _, err := s.taskByID(c, id, userID); errors.Is(err, sql.ErrNoRows) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		return
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify task ownership"})
		return
	}

	if _, err := s.db.ExecContext(c, `DELETE FROM tasks WHERE id = ? AND user_id = ?`, id, userID); err != nil {
		s.log.WithError(err).Error("task delete failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete task"})
		return
	}

	c.Status(http.StatusNoContent)
}

func (s *Server) insertTask(c *gin.Context, t task.Task) error {
	tags, members, err := encodeLists(t)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(c, `
		INSERT INTO tasks (id, user_id, title, description, status, priority,
		                   assignee, due_date, tags, team_members, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.UserID, t.Title, t.Description, string(t.Status), string(t.Priority),
		t.Assignee, t.DueDate, tags, members, t.CreatedAt)
	return err
}

func (s *Server) taskByID(c *gin.Context, id, userID string) (task.Task, error) {
	row := s.db.QueryRowContext(c, `
		SELECT id, user_id, title, description, status, priority, assignee,
		       due_date, tags, team_members, created_at
		FROM tasks WHERE id = ? AND user_id = ?`, id, userID)
	return scanTask(row)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (task.Task, error) {
	var t task.Task
	var status, priority, tags, members string
	err := row.Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &status, &priority,
		&t.Assignee, &t.DueDate, &tags, &members, &t.CreatedAt)
	if err != nil {
		return task.Task{}, err
	}
	t.Status = task.Status(status)
	t.Priority = task.Priority(priority)
	if err := json.Unmarshal([]byte(tags), &t.Tags); err != nil {
		return task.Task{}, err
	}
	if err := json.Unmarshal([]byte(members), &t.TeamMembers); err != nil {
		return task.Task{}, err
	}
	return t, nil
}

func encodeLists(t task.Task) (tags string, members string, err error) {
	tagData, err := json.Marshal(emptyIfNil(t.Tags))
	if err != nil {
		return "", "", err
	}
	memberData, err := json.Marshal(emptyIfNil(t.TeamMembers))
	if err != nil {
		return "", "", err
	}
	return string(tagData), string(memberData), nil
}

func emptyIfNil(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}

// applyPatch folds non-nil patch fields into the stored record. The result
// of the update, not the patch, is what the server returns.
func applyPatch(t *task.Task, p task.Patch) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.Assignee != nil {
		t.Assignee = *p.Assignee
	}
	if p.DueDate != nil {
		t.DueDate = *p.DueDate
	}
	if p.Tags != nil {
		t.Tags = *p.Tags
	}
	if p.TeamMembers != nil {
		t.TeamMembers = *p.TeamMembers
	}
}
