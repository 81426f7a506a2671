package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"notes_api/internal/models"
	"notes_api/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

func newTestAuth(users repository.Users) *AuthService {
	return NewAuthService(users, NewTokenService(testSigningKey, time.Hour), bcrypt.MinCost)
}

// --- SignUp tests ---

func TestAuthService_SignUp_SuccessHashesPasswordAndNormalizesEmail(t *testing.T) {
	mock := &mockUserRepo{
		GetByEmailFn: func(email string) (*models.User, error) { return nil, nil },
		CreateFn: func(email, hash string, createdAt time.Time) (*models.User, error) {
			return &models.User{ID: 42, Email: email, PasswordHash: hash, CreatedAt: createdAt}, nil
		},
	}
	svc := newTestAuth(mock)

	u, err := svc.SignUp(context.Background(), "  Alice@Example.COM ", "s3cr3t")
	if err != nil {
		t.Fatalf("SignUp returned error: %v", err)
	}
	if u.ID != 42 || u.Email != "alice@example.com" {
		t.Fatalf("unexpected user: %+v", u)
	}

	if len(mock.createCalls) != 1 {
		t.Fatalf("expected 1 Create call, got %d", len(mock.createCalls))
	}
	call := mock.createCalls[0]
	if call.email != "alice@example.com" {
		t.Errorf("expected normalized email, got %q", call.email)
	}
	if call.hash == "s3cr3t" {
		t.Errorf("expected hashed password not equal to raw password")
	}
	if err := verifyPassword(call.hash, "s3cr3t"); err != nil {
		t.Errorf("stored hash does not verify with original password: %v", err)
	}
}

func TestAuthService_SignUp_DuplicateEmailRegardlessOfPassword(t *testing.T) {
	users := newMemUsers()
	svc := newTestAuth(users)
	ctx := context.Background()

	if _, err := svc.SignUp(ctx, "a@x.com", "pw1"); err != nil {
		t.Fatalf("first SignUp: %v", err)
	}
	for _, pw := range []string{"pw1", "something-else"} {
		_, err := svc.SignUp(ctx, "a@x.com", pw)
		if !errors.Is(err, ErrEmailAlreadyRegistered) {
			t.Fatalf("password %q: expected ErrEmailAlreadyRegistered, got %v", pw, err)
		}
	}
	// Case variants normalize to the same account.
	if _, err := svc.SignUp(ctx, "A@X.COM", "pw3"); !errors.Is(err, ErrEmailAlreadyRegistered) {
		t.Fatalf("expected case-insensitive duplicate, got %v", err)
	}
}

func TestAuthService_SignUp_RaceOnCreateMapsToDuplicate(t *testing.T) {
	mock := &mockUserRepo{
		GetByEmailFn: func(email string) (*models.User, error) { return nil, nil },
		CreateFn: func(email, hash string, createdAt time.Time) (*models.User, error) {
			return nil, fmt.Errorf("insert user %q: %w", email, repository.ErrDuplicateEmail)
		},
	}
	svc := newTestAuth(mock)

	_, err := svc.SignUp(context.Background(), "a@x.com", "pw")
	if !errors.Is(err, ErrEmailAlreadyRegistered) {
		t.Fatalf("expected ErrEmailAlreadyRegistered, got %v", err)
	}
}

func TestAuthService_SignUp_InvalidInput(t *testing.T) {
	cases := []struct {
		name, email, password, field string
	}{
		{"bad email", "not-an-email", "pw", "email"},
		{"empty email", "", "pw", "email"},
		{"empty password", "a@x.com", "", "password"},
		{"blank password", "a@x.com", "   ", "password"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mock := &mockUserRepo{
				GetByEmailFn: func(email string) (*models.User, error) { return nil, nil },
				CreateFn: func(email, hash string, createdAt time.Time) (*models.User, error) {
					t.Fatal("Create should not be called for invalid input")
					return nil, nil
				},
			}
			svc := newTestAuth(mock)

			_, err := svc.SignUp(context.Background(), tc.email, tc.password)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Field != tc.field {
				t.Fatalf("field: got %q, want %q", verr.Field, tc.field)
			}
			if len(mock.createCalls) != 0 {
				t.Fatalf("expected no Create calls, got %d", len(mock.createCalls))
			}
		})
	}
}

func TestAuthService_SignUp_PasswordTooLongForBcrypt(t *testing.T) {
	users := newMemUsers()
	svc := newTestAuth(users)

	_, err := svc.SignUp(context.Background(), "long@x.com", strings.Repeat("p", 80))
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Field != "password" {
		t.Fatalf("expected password ValidationError, got %v", err)
	}
	if u, _ := users.GetByEmail(context.Background(), "long@x.com"); u != nil {
		t.Fatalf("user must not be stored")
	}

	// exactly at the limit is accepted
	if _, err := svc.SignUp(context.Background(), "edge@x.com", strings.Repeat("p", maxPasswordBytes)); err != nil {
		t.Fatalf("72-byte password rejected: %v", err)
	}
}

func TestNewAuthService_PrecomputesDummyHash(t *testing.T) {
	svc := newTestAuth(newMemUsers())
	if len(svc.dummyHash) == 0 {
		t.Fatalf("dummy hash must be ready before the first login")
	}
	if cost, err := bcrypt.Cost(svc.dummyHash); err != nil || cost != bcrypt.MinCost {
		t.Fatalf("dummy hash cost=%d err=%v", cost, err)
	}
}

func TestAuthService_SignUp_RepoError(t *testing.T) {
	mock := &mockUserRepo{
		GetByEmailFn: func(email string) (*models.User, error) { return nil, nil },
		CreateFn: func(email, hash string, createdAt time.Time) (*models.User, error) {
			return nil, errors.New("db down")
		},
	}
	svc := newTestAuth(mock)

	_, err := svc.SignUp(context.Background(), "carl@x.com", "pass123")
	if err == nil || errors.Is(err, ErrEmailAlreadyRegistered) {
		t.Fatalf("expected raw repo error, got %v", err)
	}
}

// --- Login tests ---

func TestAuthService_Login_TokenResolvesToSameUser(t *testing.T) {
	users := newMemUsers()
	svc := newTestAuth(users)
	ctx := context.Background()

	created, err := svc.SignUp(ctx, "diana@x.com", "letmein")
	if err != nil {
		t.Fatalf("SignUp: %v", err)
	}

	token, err := svc.Login(ctx, "Diana@X.com", "letmein")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if token == "" {
		t.Fatalf("expected non-empty token")
	}

	u, err := svc.ResolveUser(ctx, token)
	if err != nil {
		t.Fatalf("ResolveUser: %v", err)
	}
	if u.ID != created.ID || u.Email != "diana@x.com" {
		t.Fatalf("resolved %+v, want user %d", u, created.ID)
	}
}

func TestAuthService_Login_UnknownEmailAndWrongPasswordAreIdentical(t *testing.T) {
	users := newMemUsers()
	svc := newTestAuth(users)
	ctx := context.Background()

	if _, err := svc.SignUp(ctx, "eve@x.com", "correct"); err != nil {
		t.Fatalf("SignUp: %v", err)
	}

	_, wrongPw := svc.Login(ctx, "eve@x.com", "wrong")
	_, unknown := svc.Login(ctx, "ghost@x.com", "correct")

	if !errors.Is(wrongPw, ErrInvalidCredentials) || !errors.Is(unknown, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for both, got %v and %v", wrongPw, unknown)
	}
	if wrongPw.Error() != unknown.Error() {
		t.Fatalf("error content differs: %q vs %q", wrongPw, unknown)
	}
}

func TestAuthService_Login_RepoError(t *testing.T) {
	mock := &mockUserRepo{
		GetByEmailFn: func(email string) (*models.User, error) {
			return nil, errors.New("query failed")
		},
	}
	svc := newTestAuth(mock)

	_, err := svc.Login(context.Background(), "john@x.com", "pw")
	if err == nil || errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected storage error to propagate, got %v", err)
	}
}

// --- ResolveUser tests ---

func TestAuthService_ResolveUser_InvalidToken(t *testing.T) {
	svc := newTestAuth(&mockUserRepo{
		GetByEmailFn: func(email string) (*models.User, error) {
			t.Fatal("storage must not be consulted for an invalid token")
			return nil, nil
		},
	})

	_, err := svc.ResolveUser(context.Background(), "garbage")
	if !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestAuthService_ResolveUser_EmptySubject(t *testing.T) {
	svc := newTestAuth(&mockUserRepo{})
	tok, err := svc.tokens.Issue("")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := svc.ResolveUser(context.Background(), tok); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestAuthService_ResolveUser_UserGone(t *testing.T) {
	svc := newTestAuth(&mockUserRepo{
		GetByEmailFn: func(email string) (*models.User, error) { return nil, nil },
	})
	tok, err := svc.tokens.Issue("deleted@x.com")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := svc.ResolveUser(context.Background(), tok); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestAuthService_ResolveUser_StorageErrorIsNotUnauthenticated(t *testing.T) {
	svc := newTestAuth(&mockUserRepo{
		GetByEmailFn: func(email string) (*models.User, error) { return nil, errors.New("db down") },
	})
	tok, err := svc.tokens.Issue("a@x.com")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	_, err = svc.ResolveUser(context.Background(), tok)
	if err == nil || errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected storage error, got %v", err)
	}
}
