// Package notes provides the PostgreSQL-backed repository for note
// persistence. All queries filter by user_id, so a note owned by someone
// else is indistinguishable from a missing one.
package notes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/akosarev/notekeeper/internal/common"
	"github.com/akosarev/notekeeper/internal/dbx"
	"github.com/akosarev/notekeeper/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolationCode = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

// PostgresRepository implements note storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) SelectByOwner(ctx context.Context, ownerID string) ([]*models.Note, error) {
	query :=
		`SELECT id, user_id, title, content, created_at, updated_at FROM notes
		 WHERE user_id = $1
		 `

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return scanNotes(rows)
}

// SearchByTitle returns the owner's notes whose title contains text as a
// case-sensitive substring. Empty text matches every owned note.
func (r *PostgresRepository) SearchByTitle(ctx context.Context, ownerID, text string) ([]*models.Note, error) {
	query :=
		`SELECT id, user_id, title, content, created_at, updated_at FROM notes
		 WHERE user_id = $1 AND title LIKE '%' || $2 || '%'
		 `

	rows, err := r.db.QueryContext(ctx, query, ownerID, text)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return scanNotes(rows)
}

func (r *PostgresRepository) GetByID(ctx context.Context, id, ownerID string) (*models.Note, error) {
	query :=
		`SELECT id, user_id, title, content, created_at, updated_at FROM notes
		 WHERE id = $1 AND user_id = $2
		 `

	note := &models.Note{}
	err := r.db.QueryRowContext(ctx, query, id, ownerID).
		Scan(&note.ID, &note.UserID, &note.Title, &note.Content, &note.CreatedAt, &note.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return note, nil
}

func (r *PostgresRepository) Create(ctx context.Context, note *models.Note) (*models.Note, error) {
	query :=
		`INSERT INTO notes (user_id, title, content)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query, note.UserID, note.Title, note.Content).
		Scan(&note.ID, &note.CreatedAt, &note.UpdatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, common.ErrAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return note, nil
}

// Update overwrites title and content of the owner's note. The WHERE clause
// re-checks ownership, so a foreign note yields ErrNotFound, not an update.
func (r *PostgresRepository) Update(ctx context.Context, note *models.Note) (*models.Note, error) {
	query :=
		`UPDATE notes SET title = $1, content = $2, updated_at = now()
		 WHERE id = $3 AND user_id = $4
		 RETURNING updated_at
		 `

	err := r.db.QueryRowContext(ctx, query, note.Title, note.Content, note.ID, note.UserID).
		Scan(&note.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		if isUniqueViolation(err) {
			return nil, common.ErrAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return note, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id, ownerID string) (bool, error) {
	query := `DELETE FROM notes WHERE id = $1 AND user_id = $2`

	res, err := r.db.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected error: %w", err)
	}
	return n > 0, nil
}

// UpdateOwner reassigns the note to newOwnerID, but only when it currently
// belongs to ownerID.
func (r *PostgresRepository) UpdateOwner(ctx context.Context, id, ownerID, newOwnerID string) error {
	query :=
		`UPDATE notes SET user_id = $1, updated_at = now()
		 WHERE id = $2 AND user_id = $3
		 `

	res, err := r.db.ExecContext(ctx, query, newOwnerID, id, ownerID)
	if err != nil {
		if isUniqueViolation(err) {
			return common.ErrAlreadyExists
		}
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func scanNotes(rows *sql.Rows) ([]*models.Note, error) {
	defer rows.Close()

	var result []*models.Note
	for rows.Next() {
		var item models.Note
		if err := rows.Scan(
			&item.ID, &item.UserID, &item.Title, &item.Content, &item.CreatedAt, &item.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
