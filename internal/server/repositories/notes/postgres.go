// Package notes provides the PostgreSQL-backed repository for note
// persistence and the composed listing query.
//
// Every statement carries the owner predicate (user_id) next to the row id,
// so a note belonging to another user is indistinguishable from a missing
// one at this layer already.
package notes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dsmirnovs/notekeeper/internal/common"
	"github.com/dsmirnovs/notekeeper/internal/dbx"
	"github.com/dsmirnovs/notekeeper/internal/server/models"
)

const noteColumns = "id, title, content, category, user_id, created_at, updated_at"

// sortColumns is the ORDER BY allow-list. Anything else requested by the
// caller silently falls back to updated_at, the default ordering.
var sortColumns = map[string]string{
	"created_at": "created_at",
	"updated_at": "updated_at",
	"title":      "title",
	"category":   "category",
}

// PostgresRepository implements note storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a note and fills in the generated id and timestamps.
func (r *PostgresRepository) Create(ctx context.Context, note *models.Note) (*models.Note, error) {
	query := `
		INSERT INTO notes (title, content, category, user_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		note.Title, note.Content, note.Category, note.UserID).
		Scan(&note.ID, &note.CreatedAt, &note.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return note, nil
}

// Get returns the note with noteID owned by userID, or common.ErrNotFound.
func (r *PostgresRepository) Get(ctx context.Context, userID string, noteID string) (*models.Note, error) {
	query := `
		SELECT ` + noteColumns + `
		FROM notes
		WHERE id = $1 AND user_id = $2
	`
	note := &models.Note{}
	err := r.db.QueryRowContext(ctx, query, noteID, userID).Scan(
		&note.ID, &note.Title, &note.Content, &note.Category,
		&note.UserID, &note.CreatedAt, &note.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return note, nil
}

// Update applies the non-nil fields of patch to the note and refreshes
// updated_at. The row is matched by id and owner together, so an update to
// another user's note reports common.ErrNotFound.
func (r *PostgresRepository) Update(ctx context.Context, userID string, noteID string, patch models.NotePatch) (*models.Note, error) {
	set := []string{"updated_at = now()"}
	args := []any{}

	if patch.Title != nil {
		args = append(args, *patch.Title)
		set = append(set, fmt.Sprintf("title = $%d", len(args)))
	}
	if patch.Content != nil {
		args = append(args, *patch.Content)
		set = append(set, fmt.Sprintf("content = $%d", len(args)))
	}
	if patch.Category != nil {
		args = append(args, *patch.Category)
		set = append(set, fmt.Sprintf("category = $%d", len(args)))
	}

	args = append(args, noteID, userID)
	query := fmt.Sprintf(`
		UPDATE notes
		SET %s
		WHERE id = $%d AND user_id = $%d
		RETURNING `+noteColumns,
		strings.Join(set, ", "), len(args)-1, len(args))

	note := &models.Note{}
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&note.ID, &note.Title, &note.Content, &note.Category,
		&note.UserID, &note.CreatedAt, &note.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return note, nil
}

// Delete removes the note with noteID owned by userID.
func (r *PostgresRepository) Delete(ctx context.Context, userID string, noteID string) error {
	query := `
		DELETE FROM notes
		WHERE id = $1 AND user_id = $2
	`
	res, err := r.db.ExecContext(ctx, query, noteID, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	switch n {
	case 1:
		return nil
	case 0:
		return common.ErrNotFound
	default:
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
}

// List runs the composed listing query for userID and returns the page of
// notes plus the total match count before pagination.
//
// Composition order: owner predicate, then the optional case-insensitive
// substring search over title/content, then the exact category filter, then
// ORDER BY the allow-listed sort column, then LIMIT/OFFSET.
func (r *PostgresRepository) List(ctx context.Context, userID string, q ListQuery) ([]*models.Note, int64, error) {
	where := "user_id = $1"
	args := []any{userID}

	if q.Search != "" {
		args = append(args, "%"+q.Search+"%")
		where += fmt.Sprintf(" AND (title ILIKE $%d OR content ILIKE $%d)", len(args), len(args))
	}
	if q.Category != "" {
		args = append(args, q.Category)
		where += fmt.Sprintf(" AND category = $%d", len(args))
	}

	var total int64
	countQuery := "SELECT count(*) FROM notes WHERE " + where
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}

	column, ok := sortColumns[q.SortBy]
	if !ok {
		column = "updated_at"
	}
	direction := "ASC"
	if q.Desc {
		direction = "DESC"
	}

	args = append(args, q.Limit, q.Offset)
	query := fmt.Sprintf(`
		SELECT `+noteColumns+`
		FROM notes
		WHERE %s
		ORDER BY %s %s
		LIMIT $%d OFFSET $%d
	`, where, column, direction, len(args)-1, len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Note
	for rows.Next() {
		note := &models.Note{}
		if err := rows.Scan(
			&note.ID, &note.Title, &note.Content, &note.Category,
			&note.UserID, &note.CreatedAt, &note.UpdatedAt,
		); err != nil {
			return nil, 0, err
		}
		result = append(result, note)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return result, total, nil
}
