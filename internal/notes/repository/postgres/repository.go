package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/void-adarsh/Notes-App/db"
	"github.com/void-adarsh/Notes-App/internal/notes/domain"
)

type PostgresRepository struct {
	db  db.DBTX
	now func() time.Time
}

func NewPostgresRepository(conn db.DBTX) *PostgresRepository {
	return &PostgresRepository{db: conn, now: time.Now}
}

const noteColumns = `id, user_id, title, description, created_at, updated_at`

func (r *PostgresRepository) Create(ctx context.Context, note *domain.Note) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO notes (id, user_id, title, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, note.ID, note.UserID, note.Title, note.Description, note.CreatedAt, note.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create note: %w", err)
	}
	return nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]domain.Note, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+noteColumns+`
		FROM notes
		WHERE user_id = $1
		ORDER BY created_at
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	return collectNotes(rows)
}

func (r *PostgresRepository) GetByID(ctx context.Context, userID, id string) (*domain.Note, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+noteColumns+`
		FROM notes
		WHERE id = $1 AND user_id = $2
	`, id, userID)

	note, err := scanNote(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get note: %w", err)
	}
	return note, nil
}

// Update writes title and description of note.ID owned by note.UserID and
// returns the stored row, or nil when no such note exists.
func (r *PostgresRepository) Update(ctx context.Context, note *domain.Note) (*domain.Note, error) {
	row := r.db.QueryRow(ctx, `
		UPDATE notes
		SET title = $1, description = $2, updated_at = $3
		WHERE id = $4 AND user_id = $5
		RETURNING `+noteColumns,
		note.Title, note.Description, note.UpdatedAt, note.ID, note.UserID)

	updated, err := scanNote(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update note: %w", err)
	}
	return updated, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, id string) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM notes WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return false, fmt.Errorf("failed to delete note: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// Search matches query as a case-insensitive substring of title or description.
func (r *PostgresRepository) Search(ctx context.Context, userID, query string) ([]domain.Note, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+noteColumns+`
		FROM notes
		WHERE user_id = $1 AND (title ILIKE $2 OR description ILIKE $2)
		ORDER BY created_at
	`, userID, likePattern(query))
	if err != nil {
		return nil, fmt.Errorf("failed to search notes: %w", err)
	}
	return collectNotes(rows)
}

// Reassign moves ownership of note id from userID to targetUserID.
func (r *PostgresRepository) Reassign(ctx context.Context, userID, id, targetUserID string) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE notes
		SET user_id = $1, updated_at = $2
		WHERE id = $3 AND user_id = $4
	`, targetUserID, r.now(), id, userID)
	if err != nil {
		return false, fmt.Errorf("failed to reassign note: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func likePattern(query string) string {
	return "%" + likeEscaper.Replace(query) + "%"
}

func scanNote(row pgx.Row) (*domain.Note, error) {
	var n domain.Note
	if err := row.Scan(&n.ID, &n.UserID, &n.Title, &n.Description, &n.CreatedAt, &n.UpdatedAt); err != nil {
		return nil, err
	}
	return &n, nil
}

func collectNotes(rows pgx.Rows) ([]domain.Note, error) {
	defer rows.Close()

	notes := []domain.Note{}
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		notes = append(notes, *n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read notes: %w", err)
	}
	return notes, nil
}
