package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"screenboard/internal/auth/models"
	"screenboard/internal/platform/postgres"
	id "screenboard/pkg/domain"
	"screenboard/pkg/platform/sentinel"
	txcontext "screenboard/pkg/platform/tx"
)

const userColumns = `id, email, username, salt, password_digest, session_token, session_issued_at, created_at, updated_at`

// PostgresStore persists users in PostgreSQL. Email and session token uniqueness are
// enforced by unique indexes.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed user store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) conn(ctx context.Context) txcontext.Executor {
	return txcontext.Conn(ctx, s.db)
}

func (s *PostgresStore) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := s.conn(ctx).ExecContext(ctx, query, userArgs(user)...)
	if err != nil {
		if postgres.IsUniqueViolation(err, "") {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// SetSession replaces the session token of userID. A token already held by another
// user violates the unique index and is reported as sentinel.ErrConflict.
func (s *PostgresStore) SetSession(ctx context.Context, userID id.UserID, token string, issuedAt time.Time) error {
	query := `UPDATE users SET session_token = $2, session_issued_at = $3, updated_at = $3 WHERE id = $1`
	return s.update(ctx, "set session", query, uuid.UUID(userID), token, issuedAt)
}

func (s *PostgresStore) ClearSession(ctx context.Context, userID id.UserID, at time.Time) error {
	query := `UPDATE users SET session_token = NULL, session_issued_at = NULL, updated_at = $2 WHERE id = $1`
	return s.update(ctx, "clear session", query, uuid.UUID(userID), at)
}

func (s *PostgresStore) UpdateUsername(ctx context.Context, userID id.UserID, username string, at time.Time) error {
	query := `UPDATE users SET username = $2, updated_at = $3 WHERE id = $1`
	return s.update(ctx, "update username", query, uuid.UUID(userID), username, at)
}

func (s *PostgresStore) update(ctx context.Context, op, query string, args ...any) error {
	res, err := s.conn(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		if postgres.IsUniqueViolation(err, "") {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s rows affected: %w", op, err)
	}
	if n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, userID id.UserID) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return s.findOne(ctx, "find user by id", query, uuid.UUID(userID))
}

func (s *PostgresStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return s.findOne(ctx, "find user by email", query, email)
}

// FindBySessionToken fetches at most two rows so a duplicated token is reported as
// sentinel.ErrConflict instead of silently picking one holder.
func (s *PostgresStore) FindBySessionToken(ctx context.Context, token string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE session_token = $1 LIMIT 2`
	rows, err := s.conn(ctx).QueryContext(ctx, query, token)
	if err != nil {
		return nil, fmt.Errorf("find user by session token: %w", err)
	}
	defer rows.Close()

	var found []*models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		found = append(found, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}

	switch len(found) {
	case 0:
		return nil, sentinel.ErrNotFound
	case 1:
		return found[0], nil
	default:
		return nil, sentinel.ErrConflict
	}
}

func (s *PostgresStore) List(ctx context.Context) ([]*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at, id`
	rows, err := s.conn(ctx).QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := make([]*models.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return users, nil
}

func (s *PostgresStore) Delete(ctx context.Context, userID id.UserID) error {
	res, err := s.conn(ctx).ExecContext(ctx, `DELETE FROM users WHERE id = $1`, uuid.UUID(userID))
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete user rows affected: %w", err)
	}
	if n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) findOne(ctx context.Context, op, query string, arg any) (*models.User, error) {
	u, err := scanUser(s.conn(ctx).QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*models.User, error) {
	var (
		u        models.User
		rawID    uuid.UUID
		token    sql.NullString
		issuedAt sql.NullTime
	)
	if err := row.Scan(&rawID, &u.Email, &u.Username, &u.Salt, &u.PasswordDigest, &token, &issuedAt, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	u.ID = id.UserID(rawID)
	if token.Valid {
		t := token.String
		u.SessionToken = &t
	}
	if issuedAt.Valid {
		t := issuedAt.Time
		u.SessionIssuedAt = &t
	}
	return &u, nil
}

func userArgs(u *models.User) []any {
	var token sql.NullString
	if u.SessionToken != nil {
		token = sql.NullString{String: *u.SessionToken, Valid: true}
	}
	var issuedAt sql.NullTime
	if u.SessionIssuedAt != nil {
		issuedAt = sql.NullTime{Time: *u.SessionIssuedAt, Valid: true}
	}
	createdAt, updatedAt := u.CreatedAt, u.UpdatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	if updatedAt.IsZero() {
		updatedAt = createdAt
	}
	return []any{uuid.UUID(u.ID), u.Email, u.Username, u.Salt, u.PasswordDigest, token, issuedAt, createdAt, updatedAt}
}
