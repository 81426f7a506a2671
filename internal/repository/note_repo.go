package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"notes_api/internal/models"
)

type NoteRepository struct {
	db *sql.DB
}

func NewNoteRepository(db *sql.DB) *NoteRepository {
	return &NoteRepository{db: db}
}

var _ Notes = (*NoteRepository)(nil)

const (
	noteColumns = `id, user_id, title, content, created_at, updated_at`

	insertNoteSQL         = `INSERT INTO notes (user_id, title, content, created_at) VALUES (?, ?, ?, ?)`
	selectNotesByOwnerSQL = `SELECT ` + noteColumns + ` FROM notes WHERE user_id = ? ORDER BY id ASC`
	selectNoteByIDSQL     = `SELECT ` + noteColumns + ` FROM notes WHERE id = ?`
	deleteNoteSQL         = `DELETE FROM notes WHERE id = ?`
)

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanNote(s rowScanner) (models.Note, error) {
	var (
		n         models.Note
		updatedAt sql.NullTime
	)
	if err := s.Scan(&n.ID, &n.UserID, &n.Title, &n.Content, &n.CreatedAt, &updatedAt); err != nil {
		return models.Note{}, err
	}
	n.CreatedAt = n.CreatedAt.UTC()
	if updatedAt.Valid {
		t := updatedAt.Time.UTC()
		n.UpdatedAt = &t
	}
	return n, nil
}

// Create inserts a note. ID is assigned by the database; UpdatedAt starts empty.
func (r *NoteRepository) Create(ctx context.Context, n models.Note) (*models.Note, error) {
	n.CreatedAt = n.CreatedAt.UTC()
	res, err := r.db.ExecContext(ctx, insertNoteSQL, n.UserID, n.Title, n.Content, formatTime(n.CreatedAt))
	if err != nil {
		return nil, fmt.Errorf("insert note for user %d: %w", n.UserID, err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("get last insert id for note: %w", err)
	}
	n.ID = int(lastID)
	n.UpdatedAt = nil
	return &n, nil
}

// ListByOwner returns the owner's notes in creation order.
func (r *NoteRepository) ListByOwner(ctx context.Context, ownerID int) ([]models.Note, error) {
	rows, err := r.db.QueryContext(ctx, selectNotesByOwnerSQL, ownerID)
	if err != nil {
		return nil, fmt.Errorf("select notes for user %d: %w", ownerID, err)
	}
	defer rows.Close()

	out := make([]models.Note, 0, 16)
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate notes: %w", err)
	}
	return out, nil
}

// GetByID fetches a single note. Returns (nil, nil) if not found.
func (r *NoteRepository) GetByID(ctx context.Context, id int) (*models.Note, error) {
	n, err := scanNote(r.db.QueryRowContext(ctx, selectNoteByIDSQL, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select note %d: %w", id, err)
	}
	return &n, nil
}

// buildNoteUpdate renders the UPDATE for the fields present in patch.
func buildNoteUpdate(id int, patch models.NotePatch, at time.Time) (string, []any) {
	var (
		sets []string
		args []any
	)
	if patch.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *patch.Title)
	}
	if patch.Content != nil {
		sets = append(sets, "content = ?")
		args = append(args, *patch.Content)
	}
	sets = append(sets, "updated_at = ?")
	args = append(args, formatTime(at), id)

	return "UPDATE notes SET " + strings.Join(sets, ", ") + " WHERE id = ?", args
}

// Update applies a partial update and returns the stored note. An empty patch
// writes nothing. Returns (nil, nil) if the note does not exist.
func (r *NoteRepository) Update(ctx context.Context, id int, patch models.NotePatch, at time.Time) (*models.Note, error) {
	if patch.IsEmpty() {
		return r.GetByID(ctx, id)
	}

	q, args := buildNoteUpdate(id, patch, at)
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("update note %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("rows affected for note %d: %w", id, err)
	}
	if affected == 0 {
		return nil, nil
	}
	return r.GetByID(ctx, id)
}

// Delete removes a note. Deleting a missing note is not an error here.
func (r *NoteRepository) Delete(ctx context.Context, id int) error {
	if _, err := r.db.ExecContext(ctx, deleteNoteSQL, id); err != nil {
		return fmt.Errorf("delete note %d: %w", id, err)
	}
	return nil
}
