package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"screenboard/internal/platform/postgres"
	"screenboard/internal/workspace/models"
	id "screenboard/pkg/domain"
	"screenboard/pkg/platform/sentinel"
	txcontext "screenboard/pkg/platform/tx"
)

// PostgresStore persists the workspace tree. Cascading deletes are done by the
// schema's foreign keys.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) conn(ctx context.Context) txcontext.Executor {
	return txcontext.Conn(ctx, s.db)
}

func (s *PostgresStore) CreateSolution(ctx context.Context, sol *models.Solution) error {
	_, err := s.conn(ctx).ExecContext(ctx, `
		INSERT INTO solutions (id, user_id, name, comment, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, uuid.UUID(sol.ID), uuid.UUID(sol.UserID), sol.Name, sol.Comment, sol.CreatedAt, sol.UpdatedAt)
	return mapWriteError("create solution", err)
}

func (s *PostgresStore) UpdateSolution(ctx context.Context, sol *models.Solution) error {
	res, err := s.conn(ctx).ExecContext(ctx, `
		UPDATE solutions SET name = $2, comment = $3, updated_at = $4 WHERE id = $1
	`, uuid.UUID(sol.ID), sol.Name, sol.Comment, sol.UpdatedAt)
	return requireAffected("update solution", res, err)
}

func (s *PostgresStore) FindSolution(ctx context.Context, solutionID id.SolutionID) (*models.Solution, error) {
	row := s.conn(ctx).QueryRowContext(ctx, `
		SELECT id, user_id, name, comment, created_at, updated_at FROM solutions WHERE id = $1
	`, uuid.UUID(solutionID))
	sol, err := scanSolution(row)
	if err != nil {
		return nil, mapReadError("find solution", err)
	}
	return sol, nil
}

func (s *PostgresStore) ListSolutions(ctx context.Context, userID id.UserID) ([]*models.Solution, error) {
	rows, err := s.conn(ctx).QueryContext(ctx, `
		SELECT id, user_id, name, comment, created_at, updated_at FROM solutions
		WHERE user_id = $1 ORDER BY created_at, id
	`, uuid.UUID(userID))
	if err != nil {
		return nil, fmt.Errorf("list solutions: %w", err)
	}
	defer rows.Close()

	out := []*models.Solution{}
	for rows.Next() {
		sol, err := scanSolution(rows)
		if err != nil {
			return nil, fmt.Errorf("scan solution: %w", err)
		}
		out = append(out, sol)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate solutions: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) DeleteSolution(ctx context.Context, solutionID id.SolutionID) error {
	res, err := s.conn(ctx).ExecContext(ctx, `DELETE FROM solutions WHERE id = $1`, uuid.UUID(solutionID))
	return requireAffected("delete solution", res, err)
}

func (s *PostgresStore) DeleteOwnedBy(ctx context.Context, userID id.UserID) error {
	if _, err := s.conn(ctx).ExecContext(ctx, `DELETE FROM solutions WHERE user_id = $1`, uuid.UUID(userID)); err != nil {
		return fmt.Errorf("delete solutions by owner: %w", err)
	}
	return nil
}

func (s *PostgresStore) CreateScreen(ctx context.Context, sc *models.Screen) error {
	_, err := s.conn(ctx).ExecContext(ctx, `
		INSERT INTO screens (id, solution_id, name, comment, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, uuid.UUID(sc.ID), uuid.UUID(sc.SolutionID), sc.Name, sc.Comment, sc.CreatedAt, sc.UpdatedAt)
	return mapWriteError("create screen", err)
}

func (s *PostgresStore) UpdateScreen(ctx context.Context, sc *models.Screen) error {
	res, err := s.conn(ctx).ExecContext(ctx, `
		UPDATE screens SET name = $2, comment = $3, updated_at = $4 WHERE id = $1
	`, uuid.UUID(sc.ID), sc.Name, sc.Comment, sc.UpdatedAt)
	return requireAffected("update screen", res, err)
}

func (s *PostgresStore) FindScreen(ctx context.Context, screenID id.ScreenID) (*models.Screen, error) {
	row := s.conn(ctx).QueryRowContext(ctx, `
		SELECT id, solution_id, name, comment, created_at, updated_at FROM screens WHERE id = $1
	`, uuid.UUID(screenID))
	sc, err := scanScreen(row)
	if err != nil {
		return nil, mapReadError("find screen", err)
	}
	return sc, nil
}

func (s *PostgresStore) ListScreens(ctx context.Context, solutionID id.SolutionID) ([]*models.Screen, error) {
	rows, err := s.conn(ctx).QueryContext(ctx, `
		SELECT id, solution_id, name, comment, created_at, updated_at FROM screens
		WHERE solution_id = $1 ORDER BY created_at, id
	`, uuid.UUID(solutionID))
	if err != nil {
		return nil, fmt.Errorf("list screens: %w", err)
	}
	defer rows.Close()

	out := []*models.Screen{}
	for rows.Next() {
		sc, err := scanScreen(rows)
		if err != nil {
			return nil, fmt.Errorf("scan screen: %w", err)
		}
		out = append(out, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate screens: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) DeleteScreen(ctx context.Context, screenID id.ScreenID) error {
	res, err := s.conn(ctx).ExecContext(ctx, `DELETE FROM screens WHERE id = $1`, uuid.UUID(screenID))
	return requireAffected("delete screen", res, err)
}

func (s *PostgresStore) CreateWidget(ctx context.Context, w *models.Widget) error {
	src, values := widgetPayload(w)
	_, err := s.conn(ctx).ExecContext(ctx, `
		INSERT INTO widgets (id, screen_id, name, type, src, "values", created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, uuid.UUID(w.ID), uuid.UUID(w.ScreenID), w.Name, w.Type, src, values, w.CreatedAt, w.UpdatedAt)
	return mapWriteError("create widget", err)
}

func (s *PostgresStore) UpdateWidget(ctx context.Context, w *models.Widget) error {
	src, values := widgetPayload(w)
	res, err := s.conn(ctx).ExecContext(ctx, `
		UPDATE widgets SET name = $2, type = $3, src = $4, "values" = $5, updated_at = $6 WHERE id = $1
	`, uuid.UUID(w.ID), w.Name, w.Type, src, values, w.UpdatedAt)
	return requireAffected("update widget", res, err)
}

func (s *PostgresStore) FindWidget(ctx context.Context, widgetID id.WidgetID) (*models.Widget, error) {
	row := s.conn(ctx).QueryRowContext(ctx, `
		SELECT id, screen_id, name, type, src, "values", created_at, updated_at FROM widgets WHERE id = $1
	`, uuid.UUID(widgetID))
	w, err := scanWidget(row)
	if err != nil {
		return nil, mapReadError("find widget", err)
	}
	return w, nil
}

func (s *PostgresStore) ListWidgets(ctx context.Context, screenID id.ScreenID) ([]*models.Widget, error) {
	rows, err := s.conn(ctx).QueryContext(ctx, `
		SELECT id, screen_id, name, type, src, "values", created_at, updated_at FROM widgets
		WHERE screen_id = $1 ORDER BY created_at, id
	`, uuid.UUID(screenID))
	if err != nil {
		return nil, fmt.Errorf("list widgets: %w", err)
	}
	defer rows.Close()

	out := []*models.Widget{}
	for rows.Next() {
		w, err := scanWidget(rows)
		if err != nil {
			return nil, fmt.Errorf("scan widget: %w", err)
		}
		out = append(out, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate widgets: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) DeleteWidget(ctx context.Context, widgetID id.WidgetID) error {
	res, err := s.conn(ctx).ExecContext(ctx, `DELETE FROM widgets WHERE id = $1`, uuid.UUID(widgetID))
	return requireAffected("delete widget", res, err)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSolution(row rowScanner) (*models.Solution, error) {
	var (
		sol           models.Solution
		rawID, rawUID uuid.UUID
	)
	if err := row.Scan(&rawID, &rawUID, &sol.Name, &sol.Comment, &sol.CreatedAt, &sol.UpdatedAt); err != nil {
		return nil, err
	}
	sol.ID = id.SolutionID(rawID)
	sol.UserID = id.UserID(rawUID)
	return &sol, nil
}

func scanScreen(row rowScanner) (*models.Screen, error) {
	var (
		sc              models.Screen
		rawID, rawSolID uuid.UUID
	)
	if err := row.Scan(&rawID, &rawSolID, &sc.Name, &sc.Comment, &sc.CreatedAt, &sc.UpdatedAt); err != nil {
		return nil, err
	}
	sc.ID = id.ScreenID(rawID)
	sc.SolutionID = id.SolutionID(rawSolID)
	return &sc, nil
}

func scanWidget(row rowScanner) (*models.Widget, error) {
	var (
		w                  models.Widget
		rawID, rawScreenID uuid.UUID
		src                sql.NullString
		values             pq.Float64Array
	)
	if err := row.Scan(&rawID, &rawScreenID, &w.Name, &w.Type, &src, &values, &w.CreatedAt, &w.UpdatedAt); err != nil {
		return nil, err
	}
	w.ID = id.WidgetID(rawID)
	w.ScreenID = id.ScreenID(rawScreenID)
	if models.IsDataWidget(w.Type) {
		w.Values = []float64(values)
		if w.Values == nil {
			w.Values = []float64{}
		}
	} else {
		w.Src = src.String
	}
	return &w, nil
}

// widgetPayload stores src for source widgets and values for data widgets, leaving the
// other column NULL.
func widgetPayload(w *models.Widget) (sql.NullString, any) {
	if models.IsDataWidget(w.Type) {
		values := w.Values
		if values == nil {
			values = []float64{}
		}
		return sql.NullString{}, pq.Float64Array(values)
	}
	return sql.NullString{String: w.Src, Valid: true}, nil
}

func mapWriteError(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case postgres.IsUniqueViolation(err, ""):
		return sentinel.ErrConflict
	case postgres.IsForeignKeyViolation(err):
		// The parent row is gone.
		return sentinel.ErrNotFound
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

func mapReadError(op string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return sentinel.ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}

func requireAffected(op string, res sql.Result, err error) error {
	if err != nil {
		return mapWriteError(op, err)
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
