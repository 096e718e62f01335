// Package server is the blob-store backend: email/password accounts and
// one JSON state document per user, read on login and overwritten on
// every debounced client save.
package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// maxDocumentBytes caps a state upload; personal-finance documents are
// far smaller than this in practice.
const maxDocumentBytes = 4 << 20

// Server holds the handler dependencies.
type Server struct {
	storage  Storage
	sessions Sessions
	log      zerolog.Logger
}

// New creates a Server.
func New(storage Storage, sessions Sessions, log zerolog.Logger) *Server {
	return &Server{storage: storage, sessions: sessions, log: log}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router(allowedOrigins []string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", s.health)
	r.POST("/api/auth/register", s.register)
	r.POST("/api/auth/login", s.login)

	authed := r.Group("/api", s.requireSession)
	authed.GET("/state", s.getState)
	authed.PUT("/state", s.putState)
	authed.POST("/auth/logout", s.logout)

	return r
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "finbook"})
}

type credentials struct {
	Email       string `json:"email" binding:"required"`
	Password    string `json:"password" binding:"required"`
	DisplayName string `json:"displayName"`
}

type sessionResponse struct {
	Token string      `json:"token"`
	User  userPayload `json:"user"`
}

type userPayload struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
}

func (s *Server) register(c *gin.Context) {
	var creds credentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}
	if len(creds.Password) < 8 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "password must be at least 8 characters"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), bcrypt.DefaultCost)
	if err != nil {
		s.log.Error().Err(err).Msg("hashing password")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	user := User{
		ID:           uuid.NewString(),
		Email:        normalizeEmail(creds.Email),
		DisplayName:  creds.DisplayName,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.storage.CreateUser(c.Request.Context(), user); err != nil {
		if errors.Is(err, ErrEmailTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
			return
		}
		s.log.Error().Err(err).Msg("creating user")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	s.issueSession(c, user)
}

func (s *Server) login(c *gin.Context) {
	var creds credentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}

	user, err := s.storage.UserByEmail(c.Request.Context(), creds.Email)
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}
	if err != nil {
		s.log.Error().Err(err).Msg("looking up user")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	if bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(creds.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	s.issueSession(c, user)
}

func (s *Server) issueSession(c *gin.Context, user User) {
	token, err := s.sessions.Create(c.Request.Context(), user.ID)
	if err != nil {
		s.log.Error().Err(err).Msg("creating session")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, sessionResponse{
		Token: token,
		User:  userPayload{ID: user.ID, Email: user.Email, DisplayName: user.DisplayName},
	})
}

func (s *Server) logout(c *gin.Context) {
	if err := s.sessions.Revoke(c.Request.Context(), c.GetString("token")); err != nil {
		s.log.Warn().Err(err).Msg("revoking session")
	}
	c.Status(http.StatusNoContent)
}

// requireSession resolves the bearer token and stores the user id on the
// request context.
func (s *Server) requireSession(c *gin.Context) {
	header := c.GetHeader("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
		return
	}
	userID, err := s.sessions.UserID(c.Request.Context(), token)
	if errors.Is(err, ErrSessionExpired) {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session expired"})
		return
	}
	if err != nil {
		s.log.Error().Err(err).Msg("resolving session")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.Set("userID", userID)
	c.Set("token", token)
	c.Next()
}

func (s *Server) getState(c *gin.Context) {
	doc, err := s.storage.Document(c.Request.Context(), c.GetString("userID"))
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "no document"})
		return
	}
	if err != nil {
		s.log.Error().Err(err).Msg("loading document")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.Data(http.StatusOK, "application/json", doc)
}

func (s *Server) putState(c *gin.Context) {
	var doc json.RawMessage
	dec := json.NewDecoder(http.MaxBytesReader(c.Writer, c.Request.Body, maxDocumentBytes))
	if err := dec.Decode(&doc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "body must be a JSON document"})
		return
	}
	if err := s.storage.SaveDocument(c.Request.Context(), c.GetString("userID"), doc); err != nil {
		s.log.Error().Err(err).Msg("saving document")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.Status(http.StatusNoContent)
}
