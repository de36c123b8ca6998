package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mattn/go-sqlite3"

	"savingsTracker/models"
)

// SQLiteCredentialRepository keeps credentials in the credentials table.
// It is the SQL alternative to the JSON file store and behaves the same way.
type SQLiteCredentialRepository struct {
	db *sql.DB
}

func NewSQLiteCredentialRepository(db *sql.DB) *SQLiteCredentialRepository {
	return &SQLiteCredentialRepository{db: db}
}

func (r *SQLiteCredentialRepository) Load(ctx context.Context) (map[string]models.Credential, error) {
	list, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]models.Credential, len(list))
	for _, c := range list {
		out[c.Username] = c
	}
	return out, nil
}

// Save replaces every row with creds in one transaction.
func (r *SQLiteCredentialRepository) Save(ctx context.Context, creds map[string]models.Credential) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return storageErr("begin", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM credentials`); err != nil {
		_ = tx.Rollback()
		return storageErr("clear credentials", err)
	}
	for name, c := range creds {
		if _, err := tx.ExecContext(ctx, `INSERT INTO credentials (username, password, role) VALUES (?, ?, ?)`, name, c.Password, string(c.Role)); err != nil {
			_ = tx.Rollback()
			return storageErr("insert credential", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return storageErr("commit", err)
	}
	return nil
}

func (r *SQLiteCredentialRepository) Verify(ctx context.Context, username, password string) (models.Role, error) {
	c, err := r.GetByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	if c == nil || c.Password != password {
		return "", ErrAuthenticationFailed
	}
	if !c.Role.Valid() {
		return "", fmt.Errorf("%w: credential %q has invalid role %q", ErrStorageUnavailable, username, c.Role)
	}
	return c.Role, nil
}

// Register inserts a credential. Role defaults to user.
func (r *SQLiteCredentialRepository) Register(ctx context.Context, username, password string, role models.Role) (*models.Credential, error) {
	if role == "" {
		role = models.RoleUser
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	_, err := r.db.ExecContext(ctx, `INSERT INTO credentials (username, password, role) VALUES (?, ?, ?)`, username, password, string(role))
	if err != nil {
		var se sqlite3.Error
		if errors.As(err, &se) && (se.ExtendedCode == sqlite3.ErrConstraintPrimaryKey || se.ExtendedCode == sqlite3.ErrConstraintUnique) {
			return nil, ErrUsernameTaken
		}
		return nil, storageErr("insert credential", err)
	}
	return &models.Credential{Username: username, Password: password, Role: role}, nil
}

func (r *SQLiteCredentialRepository) GetByUsername(ctx context.Context, username string) (*models.Credential, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	c := models.Credential{Username: username}
	var role string
	err := r.db.QueryRowContext(ctx, `SELECT password, role FROM credentials WHERE username = ?`, username).Scan(&c.Password, &role)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, storageErr("get credential", err)
	}
	c.Role = models.Role(role)
	return &c, nil
}

func (r *SQLiteCredentialRepository) List(ctx context.Context) ([]models.Credential, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `SELECT username, password, role FROM credentials ORDER BY username`)
	if err != nil {
		return nil, storageErr("list credentials", err)
	}
	defer rows.Close()
	out := []models.Credential{}
	for rows.Next() {
		var c models.Credential
		var role string
		if err := rows.Scan(&c.Username, &c.Password, &role); err != nil {
			return nil, storageErr("scan credential", err)
		}
		c.Role = models.Role(role)
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list credentials", err)
	}
	return out, nil
}

func (r *SQLiteCredentialRepository) HealthCheck(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func storageErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrStorageUnavailable, op, err)
}
