package service

import (
	"context"

	"notes_api/internal/models"
	"notes_api/internal/repository"
)

// OwnershipGuard gates every single-note read and mutation on the caller owning the note.
type OwnershipGuard struct {
	notes repository.Notes
}

func NewOwnershipGuard(notes repository.Notes) *OwnershipGuard {
	return &OwnershipGuard{notes: notes}
}

// Authorize fetches the note and returns it only if actor owns it.
func (g *OwnershipGuard) Authorize(ctx context.Context, noteID int, actor *models.User, action Action) (*models.Note, error) {
	if actor == nil {
		return nil, ErrUnauthenticated
	}
	n, err := g.notes.GetByID(ctx, noteID)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, ErrNoteNotFound
	}
	if n.UserID != actor.ID {
		return nil, &ForbiddenError{Action: action}
	}
	return n, nil
}
