// Package devserver is a self-contained implementation of the two remote
// contracts the client consumes: the identity provider and the task store.
// It exists for local development and end-to-end tests; production deploys
// point the client at real endpoints instead.
package devserver

import (
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	_ "github.com/mattn/go-sqlite3"
)

// accessTokenTTL is the lifetime of issued access tokens. Short enough that
// the client's refresh path gets exercised in normal use.
const accessTokenTTL = time.Hour

// Server serves the auth and task endpoints over a sqlite database.
type Server struct {
	db     *sql.DB
	secret []byte
	log    *logrus.Entry
	engine *gin.Engine
}

// New opens (or creates) the database at dbPath and prepares the routes.
// secret signs access tokens; it only needs to be stable for the process.
func New(dbPath string, secret []byte, log *logrus.Entry) (*Server, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Server{db: db, secret: secret, log: log}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(noStore())

	authGroup := engine.Group("/auth")
	authGroup.POST("/signup", s.handleSignup)
	authGroup.POST("/token", s.handleToken)
	authGroup.POST("/logout", s.handleLogout)

	api := engine.Group("/api")
	api.Use(s.requireUser())
	api.GET("/tasks", s.handleListTasks)
	api.POST("/tasks", s.handleCreateTask)
	api.PUT("/tasks/:id", s.handleUpdateTask)
	api.DELETE("/tasks/:id", s.handleDeleteTask)

	s.engine = engine
	return s, nil
}

// Handler returns the HTTP handler for mounting or serving.
func (s *Server) Handler() http.Handler { return s.engine }

// Close releases the database.
func (s *Server) Close() error { return s.db.Close() }

func (s *Server) migrate() error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id            TEXT PRIMARY KEY,
			email         TEXT NOT NULL UNIQUE,
			name          TEXT NOT NULL DEFAULT '',
			password_hash TEXT NOT NULL,
			created_at    TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS refresh_tokens (
			token      TEXT PRIMARY KEY,
			user_id    TEXT NOT NULL REFERENCES users(id),
			created_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS tasks (
			id           TEXT PRIMARY KEY,
			user_id      TEXT NOT NULL REFERENCES users(id),
			title        TEXT NOT NULL,
			description  TEXT NOT NULL DEFAULT '',
			status       TEXT NOT NULL DEFAULT 'todo',
			priority     TEXT NOT NULL DEFAULT '',
			assignee     TEXT NOT NULL DEFAULT '',
			due_date     TEXT NOT NULL DEFAULT '',
			tags         TEXT NOT NULL DEFAULT '[]',
			team_members TEXT NOT NULL DEFAULT '[]',
			created_at   TIMESTAMP NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_user_created
			ON tasks(user_id, created_at DESC)`,
	}
	for _, stmt := range schema {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

// noStore disables response caching, matching what the client demands.
func noStore() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-store, must-revalidate")
		c.Header("Pragma", "no-cache")
		c.Header("Expires", "0")
		c.Next()
	}
}
