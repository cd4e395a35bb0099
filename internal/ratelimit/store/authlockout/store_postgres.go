package authlockout

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"screenboard/internal/ratelimit/models"
	"screenboard/pkg/requestcontext"
)

// PostgresStore persists auth lockout records in PostgreSQL.
// This store is pure I/O; lock decisions belong in the service.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed auth lockout store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Get(ctx context.Context, identifier string) (*models.AuthLockout, error) {
	query := `
		SELECT identifier, failure_count, window_start, last_failure_at
		FROM auth_lockouts
		WHERE identifier = $1
	`
	record, err := scanAuthLockout(s.db.QueryRowContext(ctx, query, identifier))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get auth lockout: %w", err)
	}
	return record, nil
}

// RecordFailure atomically increments the failure count, restarting the window when
// it has lapsed. A single upsert prevents concurrent failures from slipping past the
// threshold.
func (s *PostgresStore) RecordFailure(ctx context.Context, identifier string, window time.Duration) (*models.AuthLockout, error) {
	now := requestcontext.Now(ctx)
	query := `
		INSERT INTO auth_lockouts (identifier, failure_count, window_start, last_failure_at)
		VALUES ($1, 1, $2, $2)
		ON CONFLICT (identifier) DO UPDATE SET
			failure_count = CASE
				WHEN auth_lockouts.window_start + $3::bigint * INTERVAL '1 millisecond' <= $2 THEN 1
				ELSE auth_lockouts.failure_count + 1
			END,
			window_start = CASE
				WHEN auth_lockouts.window_start + $3::bigint * INTERVAL '1 millisecond' <= $2 THEN $2
				ELSE auth_lockouts.window_start
			END,
			last_failure_at = $2
		RETURNING identifier, failure_count, window_start, last_failure_at
	`
	record, err := scanAuthLockout(s.db.QueryRowContext(ctx, query, identifier, now, window.Milliseconds()))
	if err != nil {
		return nil, fmt.Errorf("record auth failure: %w", err)
	}
	return record, nil
}

func (s *PostgresStore) Clear(ctx context.Context, identifier string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM auth_lockouts WHERE identifier = $1`, identifier)
	if err != nil {
		return fmt.Errorf("clear auth lockout: %w", err)
	}
	return nil
}

func scanAuthLockout(row *sql.Row) (*models.AuthLockout, error) {
	var r models.AuthLockout
	if err := row.Scan(&r.Identifier, &r.FailureCount, &r.WindowStart, &r.LastFailureAt); err != nil {
		return nil, err
	}
	return &r, nil
}
