package server

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// Storage errors surfaced to handlers.
var (
	ErrNotFound   = errors.New("not found")
	ErrEmailTaken = errors.New("email already registered")
)

// User is an account row. PasswordHash is a bcrypt hash; the server
// never stores or returns plaintext credentials.
type User struct {
	ID           string
	Email        string
	DisplayName  string
	PasswordHash []byte
	CreatedAt    time.Time
}

// Storage persists accounts and their single state document. Documents
// are opaque JSON blobs with upsert semantics: the newest write wins,
// whole-document.
type Storage interface {
	CreateUser(ctx context.Context, u User) error
	UserByEmail(ctx context.Context, email string) (User, error)
	UserByID(ctx context.Context, id string) (User, error)
	SaveDocument(ctx context.Context, userID string, doc json.RawMessage) error
	Document(ctx context.Context, userID string) (json.RawMessage, error)
}
