package devserver

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// ctxUserID is the gin context key carrying the authenticated user id.
const ctxUserID = "userID"

type credentialsRequest struct {
	GrantType    string `json:"grant_type"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	RefreshToken string `json:"refresh_token"`
}

type tokenPayload struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	RefreshToken string `json:"refresh_token"`
}

func (s *Server) handleSignup(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindBodyWithJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to hash password"})
		return
	}

	userID := uuid.NewString()
	_, err = s.db.ExecContext(c, `INSERT INTO users (id, email, password_hash, created_at) VALUES (?, ?, ?, ?)`,
		userID, req.Email, string(hash), time.Now().UTC())
	if err != nil {
		// sqlite reports the UNIQUE violation as a generic error
		if strings.Contains(err.Error(), "UNIQUE") {
			c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
			return
		}
		s.log.WithError(err).Error("signup insert failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create user"})
		return
	}

	s.issueTokens(c, userID, req.Email, "")
}

func (s *Server) handleToken(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindBodyWithJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	switch req.GrantType {
	case "password":
		s.passwordGrant(c, req)
	case "refresh_token":
		s.refreshGrant(c, req)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported grant_type"})
	}
}

func (s *Server) passwordGrant(c *gin.Context, req credentialsRequest) {
	email := strings.TrimSpace(strings.ToLower(req.Email))

	var userID, name, hash string
	err := s.db.QueryRowContext(c, `SELECT id, name, password_hash FROM users WHERE email = ?`, email).
		Scan(&userID, &name, &hash)
	if errors.Is(err, sql.ErrNoRows) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		return
	}
	if err != nil {
		s.log.WithError(err).Error("user lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to look up user"})
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		return
	}

	s.issueTokens(c, userID, email, name)
}

func (s *Server) refreshGrant(c *gin.Context, req credentialsRequest) {
	if req.RefreshToken == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "refresh_token is required"})
		return
	}

	var userID string
	err := s.db.QueryRowContext(c, `SELECT user_id FROM refresh_tokens WHERE token = ?`, req.RefreshToken).
		Scan(&userID)
	if errors.Is(err, sql.ErrNoRows) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid refresh token"})
		return
	}
	if err != nil {
		s.log.WithError(err).Error("refresh token lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to look up refresh token"})
		return
	}

	var email, name string
	if err := s.db.QueryRowContext(c, `SELECT email, name FROM users WHERE id = ?`, userID).
		Scan(&email, &name); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid refresh token"})
		return
	}

	// Rotate: the used token is replaced by the one issued below.
	if _, err := s.db.ExecContext(c, `DELETE FROM refresh_tokens WHERE token = ?`, req.RefreshToken); err != nil {
		s.log.WithError(err).Error("refresh token rotation failed")
	}

	s.issueTokens(c, userID, email, name)
}

func (s *Server) handleLogout(c *gin.Context) {
	userID, ok := s.authenticate(c.GetHeader("Authorization"))
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	if _, err := s.db.ExecContext(c, `DELETE FROM refresh_tokens WHERE user_id = ?`, userID); err != nil {
		s.log.WithError(err).Error("logout cleanup failed")
	}
	c.Status(http.StatusNoContent)
}

// issueTokens signs a fresh access token and stores a new refresh token.
func (s *Server) issueTokens(c *gin.Context, userID, email, name string) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   userID,
		"email": email,
		"iat":   now.Unix(),
		"exp":   now.Add(accessTokenTTL).Unix(),
	}
	if name != "" {
		claims["name"] = name
	}

	access, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to sign token"})
		return
	}

	refresh := uuid.NewString()
	if _, err := s.db.ExecContext(c, `INSERT INTO refresh_tokens (token, user_id, created_at) VALUES (?, ?, ?)`,
		refresh, userID, now.UTC()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store refresh token"})
		return
	}

	c.JSON(http.StatusOK, tokenPayload{
		AccessToken:  access,
		TokenType:    "bearer",
		ExpiresIn:    int(accessTokenTTL.Seconds()),
		RefreshToken: refresh,
	})
}

// authenticate verifies a bearer header and returns the subject.
func (s *Server) authenticate(header string) (string, bool) {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", false
	}

	token, err := jwt.Parse(strings.TrimPrefix(header, prefix), func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return "", false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", false
	}
	sub, _ := claims["sub"].(string)
	return sub, sub != ""
}

// requireUser rejects requests without a valid bearer token.
func (s *Server) requireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := s.authenticate(c.GetHeader("Authorization"))
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Set(ctxUserID, userID)
		c.Next()
	}
}
