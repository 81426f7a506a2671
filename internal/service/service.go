package service

import (
	"context"
	"time"

	"notes_api/internal/models"
	"notes_api/internal/repository"
)

type Authorization interface {
	SignUp(ctx context.Context, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (string, error)
	ResolveUser(ctx context.Context, accessToken string) (*models.User, error)
}

// Notes exposes note CRUD on behalf of an authenticated user.
type Notes interface {
	Create(ctx context.Context, owner *models.User, in NoteInput) (*models.Note, error)
	List(ctx context.Context, owner *models.User) ([]models.Note, error)
	Get(ctx context.Context, actor *models.User, id int) (*models.Note, error)
	Update(ctx context.Context, actor *models.User, id int, patch models.NotePatch) (*models.Note, error)
	Delete(ctx context.Context, actor *models.User, id int) error
}

// Service aggregates all sub-services.
type Service struct {
	Authorization
	Notes
}

// Options carries the auth settings loaded from config.
type Options struct {
	SigningKey string
	TokenTTL   time.Duration
	BcryptCost int
}

func NewService(repos *repository.Repository, opts Options) *Service {
	tokens := NewTokenService(opts.SigningKey, opts.TokenTTL)
	return &Service{
		Authorization: NewAuthService(repos.Users, tokens, opts.BcryptCost),
		Notes:         NewNoteService(repos.Notes),
	}
}
