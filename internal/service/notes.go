package service

import (
	"context"
	"time"

	"notes_api/internal/models"
	"notes_api/internal/repository"
)

// NoteService implements note CRUD scoped to the authenticated caller.
type NoteService struct {
	notes repository.Notes
	guard *OwnershipGuard
	now   func() time.Time
}

func NewNoteService(notes repository.Notes) *NoteService {
	return &NoteService{notes: notes, guard: NewOwnershipGuard(notes), now: time.Now}
}

// Create stores a note owned by owner.
func (s *NoteService) Create(ctx context.Context, owner *models.User, in NoteInput) (*models.Note, error) {
	if owner == nil {
		return nil, ErrUnauthenticated
	}
	if err := ValidateNoteInput(in); err != nil {
		return nil, err
	}
	return s.notes.Create(ctx, models.Note{
		UserID:    owner.ID,
		Title:     *in.Title,
		Content:   *in.Content,
		CreatedAt: s.now(),
	})
}

// List returns only owner's notes, oldest first.
func (s *NoteService) List(ctx context.Context, owner *models.User) ([]models.Note, error) {
	if owner == nil {
		return nil, ErrUnauthenticated
	}
	return s.notes.ListByOwner(ctx, owner.ID)
}

// Get returns a single note the actor owns.
func (s *NoteService) Get(ctx context.Context, actor *models.User, id int) (*models.Note, error) {
	return s.guard.Authorize(ctx, id, actor, ActionAccess)
}

// Update applies a partial update after the ownership check.
func (s *NoteService) Update(ctx context.Context, actor *models.User, id int, patch models.NotePatch) (*models.Note, error) {
	if _, err := s.guard.Authorize(ctx, id, actor, ActionUpdate); err != nil {
		return nil, err
	}
	if err := ValidateNotePatch(patch); err != nil {
		return nil, err
	}
	n, err := s.notes.Update(ctx, id, patch, s.now())
	if err != nil {
		return nil, err
	}
	if n == nil {
		// deleted between the check and the write
		return nil, ErrNoteNotFound
	}
	return n, nil
}

// Delete removes a note after the ownership check.
func (s *NoteService) Delete(ctx context.Context, actor *models.User, id int) error {
	if _, err := s.guard.Authorize(ctx, id, actor, ActionDelete); err != nil {
		return err
	}
	return s.notes.Delete(ctx, id)
}
