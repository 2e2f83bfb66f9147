package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/erazemk/shramba/internal/model"
)

// CreateUser creates a new account. The email is normalized to lower case
// and must be unique.
func CreateUser(ctx context.Context, db *sql.DB, name, email, passwordHash string) (*model.User, error) {
	name = strings.TrimSpace(name)
	email = NormalizeEmail(email)

	if name == "" {
		return nil, &ValidationError{Field: "name", Reason: "required"}
	}
	if email == "" {
		return nil, &ValidationError{Field: "email", Reason: "required"}
	}

	result, err := db.ExecContext(ctx,
		`INSERT INTO users (name, email, password_hash) VALUES (?, ?, ?)`,
		name, email, passwordHash,
	)
	if err != nil {
		// The unique index on email is the authority on duplicates.
		if strings.Contains(err.Error(), "UNIQUE") {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("creating user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting user id: %w", err)
	}

	return GetUser(ctx, db, id)
}

// GetUser returns a user by ID, or nil if none exists.
func GetUser(ctx context.Context, db *sql.DB, id int64) (*model.User, error) {
	u := &model.User{}
	err := db.QueryRowContext(ctx,
		`SELECT id, name, email, password_hash, created_at FROM users WHERE id = ?`, id,
	).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting user: %w", err)
	}
	return u, nil
}

// GetUserByEmail returns a user by normalized email, or nil if none exists.
func GetUserByEmail(ctx context.Context, db *sql.DB, email string) (*model.User, error) {
	u := &model.User{}
	err := db.QueryRowContext(ctx,
		`SELECT id, name, email, password_hash, created_at FROM users WHERE email = ?`,
		NormalizeEmail(email),
	).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting user by email: %w", err)
	}
	return u, nil
}

// VerifyCredentials returns the user matching the email and password, or
// ErrAuthenticationFailed. The error never distinguishes an unknown email
// from a wrong password, and the hash is never logged.
func VerifyCredentials(ctx context.Context, db *sql.DB, email, password string) (*model.User, error) {
	user, err := GetUserByEmail(ctx, db, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		// Burn a comparison so timing doesn't reveal whether the email exists.
		bcrypt.CompareHashAndPassword([]byte("$2a$10$0000000000000000000000"), []byte(password))
		return nil, ErrAuthenticationFailed
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrAuthenticationFailed
	}
	return user, nil
}

// DeleteUser removes a user and every item they own in one transaction.
// The schema also declares ON DELETE CASCADE, but the deletion is explicit
// so the invariant doesn't hinge on the foreign_keys pragma being on.
func DeleteUser(ctx context.Context, db *sql.DB, id int64) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM items WHERE user_id = ?`, id); err != nil {
		return fmt.Errorf("deleting user's items: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting user: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing user deletion: %w", err)
	}
	return nil
}

// NormalizeEmail lowercases and trims an email address for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
