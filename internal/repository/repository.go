package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"notes_api/internal/models"
)

// sqliteTimeLayout is the text form timestamps are stored in. The driver parses it
// back into time.Time for TIMESTAMP columns.
const sqliteTimeLayout = "2006-01-02 15:04:05.999999999-07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(sqliteTimeLayout)
}

// ErrDuplicateEmail is returned by Users.Create when the email is already taken.
var ErrDuplicateEmail = errors.New("email already exists")

// Users persists identities. Lookups return (nil, nil) when nothing matches.
type Users interface {
	Create(ctx context.Context, email, passwordHash string, createdAt time.Time) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// Notes persists notes. Lookups return (nil, nil) when nothing matches.
type Notes interface {
	Create(ctx context.Context, n models.Note) (*models.Note, error)
	ListByOwner(ctx context.Context, ownerID int) ([]models.Note, error)
	GetByID(ctx context.Context, id int) (*models.Note, error)
	Update(ctx context.Context, id int, patch models.NotePatch, at time.Time) (*models.Note, error)
	Delete(ctx context.Context, id int) error
}

type Repository struct {
	Users Users
	Notes Notes
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Users: NewUserRepository(db),
		Notes: NewNoteRepository(db),
	}
}
