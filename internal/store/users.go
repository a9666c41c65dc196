package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/priyankjain/shopform/pkg/fault"
)

// User is one registered account. Passwords are stored as entered; this is
// a single-user local database, not a hardened auth system.
type User struct {
	ID        int64  `db:"id" json:"id"`
	FirstName string `db:"first_name" json:"first_name"`
	LastName  string `db:"last_name" json:"last_name"`
	Email     string `db:"email" json:"email"`
	Password  string `db:"password" json:"-"`
}

// UserStore persists accounts.
type UserStore struct {
	db *sqlx.DB
}

func NewUserStore(db *sqlx.DB) *UserStore {
	return &UserStore{db: db}
}

// Register inserts a new user. Email matching is case-insensitive; a
// duplicate fails with fault.ErrUniqueViolation.
func (s *UserStore) Register(ctx context.Context, u User) (int64, error) {
	email := strings.TrimSpace(u.Email)

	var existing int64
	err := s.db.GetContext(ctx, &existing,
		`SELECT id FROM users WHERE LOWER(email) = LOWER(?)`, email)
	if err == nil {
		return 0, fault.ErrUniqueViolation
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("checking email: %w", err)
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO users (first_name, last_name, email, password) VALUES (?, ?, ?, ?)`,
		strings.TrimSpace(u.FirstName), strings.TrimSpace(u.LastName), email, strings.TrimSpace(u.Password))
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fault.ErrUniqueViolation
		}
		return 0, fmt.Errorf("inserting user: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading user id: %w", err)
	}
	return id, nil
}

// Login returns the user matching the credentials, or fault.ErrNotFound.
func (s *UserStore) Login(ctx context.Context, email, password string) (*User, error) {
	var u User
	err := s.db.GetContext(ctx, &u,
		`SELECT id, first_name, last_name, email, password
		 FROM users WHERE email = ? AND password = ? LIMIT 1`,
		strings.TrimSpace(email), strings.TrimSpace(password))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fault.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading user: %w", err)
	}
	return &u, nil
}

// List returns all users.
func (s *UserStore) List(ctx context.Context) ([]User, error) {
	users := []User{}
	err := s.db.SelectContext(ctx, &users,
		`SELECT id, first_name, last_name, email, password FROM users`)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	return users, nil
}
