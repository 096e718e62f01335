package server

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
)

const schema = `
	CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		display_name TEXT NOT NULL DEFAULT '',
		password_hash BYTEA NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);

	CREATE TABLE IF NOT EXISTS documents (
		user_id UUID PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
		data JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
`

// PostgresStorage is the production Storage, one users row per account
// and one documents row per user holding the whole state blob.
type PostgresStorage struct {
	db *sql.DB
}

// OpenPostgres connects to Postgres, creates the schema if needed, and
// returns the storage. postgresql:// URLs are normalized to postgres://.
func OpenPostgres(ctx context.Context, databaseURL string) (*PostgresStorage, error) {
	if strings.HasPrefix(databaseURL, "postgresql:") {
		databaseURL = "postgres" + databaseURL[len("postgresql"):]
	}
	cfg, err := pgx.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing database URL: %w", err)
	}
	db := stdlib.OpenDB(*cfg)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}
	return &PostgresStorage{db: db}, nil
}

// Close releases the connection pool.
func (p *PostgresStorage) Close() error {
	return p.db.Close()
}

// CreateUser implements Storage.
func (p *PostgresStorage) CreateUser(ctx context.Context, u User) error {
	_, err := p.db.ExecContext(ctx,
		`INSERT INTO users (id, email, display_name, password_hash) VALUES ($1, $2, $3, $4)`,
		u.ID, normalizeEmail(u.Email), u.DisplayName, u.PasswordHash,
	)
	if err != nil {
		if strings.Contains(err.Error(), "users_email_key") {
			return ErrEmailTaken
		}
		return fmt.Errorf("inserting user: %w", err)
	}
	return nil
}

// UserByEmail implements Storage.
func (p *PostgresStorage) UserByEmail(ctx context.Context, email string) (User, error) {
	return p.scanUser(p.db.QueryRowContext(ctx,
		`SELECT id, email, display_name, password_hash, created_at FROM users WHERE email = $1`,
		normalizeEmail(email),
	))
}

// UserByID implements Storage.
func (p *PostgresStorage) UserByID(ctx context.Context, id string) (User, error) {
	return p.scanUser(p.db.QueryRowContext(ctx,
		`SELECT id, email, display_name, password_hash, created_at FROM users WHERE id = $1`,
		id,
	))
}

func (p *PostgresStorage) scanUser(row *sql.Row) (User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Email, &u.DisplayName, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, fmt.Errorf("scanning user: %w", err)
	}
	return u, nil
}

// SaveDocument implements Storage with last-writer-wins upsert.
func (p *PostgresStorage) SaveDocument(ctx context.Context, userID string, doc json.RawMessage) error {
	_, err := p.db.ExecContext(ctx, `
		INSERT INTO documents (user_id, data, updated_at) VALUES ($1, $2, now())
		ON CONFLICT (user_id) DO UPDATE SET data = EXCLUDED.data, updated_at = now()`,
		userID, []byte(doc),
	)
	if err != nil {
		return fmt.Errorf("upserting document: %w", err)
	}
	return nil
}

// Document implements Storage.
func (p *PostgresStorage) Document(ctx context.Context, userID string) (json.RawMessage, error) {
	var data []byte
	err := p.db.QueryRowContext(ctx,
		`SELECT data FROM documents WHERE user_id = $1`, userID,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("selecting document: %w", err)
	}
	return data, nil
}
