package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"notes_api/internal/models"
	"notes_api/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// AuthService handles signup, login and bearer token resolution.
type AuthService struct {
	users  repository.Users
	tokens *TokenService
	cost   int
	now    func() time.Time

	// compared against on unknown-email logins so they cost one bcrypt run
	dummyHash []byte
}

// maxPasswordBytes is the most bcrypt will hash.
const maxPasswordBytes = 72

func NewAuthService(users repository.Users, tokens *TokenService, bcryptCost int) *AuthService {
	dummy, _ := bcrypt.GenerateFromPassword([]byte("notes-api-timing-equalizer"), bcryptCost)
	return &AuthService{users: users, tokens: tokens, cost: bcryptCost, now: time.Now, dummyHash: dummy}
}

// NormalizeEmail trims and lower-cases an email so lookups are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SignUp hashes password and creates a new user
func (s *AuthService) SignUp(ctx context.Context, email, password string) (*models.User, error) {
	email = NormalizeEmail(email)
	if err := ValidateCredentials(Credentials{Email: email, Password: password}); err != nil {
		return nil, err
	}

	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailAlreadyRegistered
	}

	hash, err := hashPassword(password, s.cost)
	if err != nil {
		return nil, err
	}

	u, err := s.users.Create(ctx, email, hash, s.now())
	if err != nil {
		// lost a race with a concurrent signup
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailAlreadyRegistered
		}
		return nil, err
	}
	return u, nil
}

// Login validates credentials and returns a signed token. Unknown emails and
// wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	email = NormalizeEmail(email)
	if err := ValidateCredentials(Credentials{Email: email, Password: password}); err != nil {
		return "", err
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if u == nil {
		// Burn the same bcrypt work as a real comparison.
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
		return "", ErrInvalidCredentials
	}

	if err := verifyPassword(u.PasswordHash, password); err != nil {
		return "", ErrInvalidCredentials
	}

	return s.tokens.Issue(u.Email)
}

// ResolveUser turns a bearer token into the stored user it names.
func (s *AuthService) ResolveUser(ctx context.Context, accessToken string) (*models.User, error) {
	email, err := s.tokens.Verify(accessToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}
	if email == "" {
		return nil, fmt.Errorf("%w: token has no subject", ErrUnauthenticated)
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, fmt.Errorf("%w: user no longer exists", ErrUnauthenticated)
	}
	return u, nil
}

// helper: hash password safely
func hashPassword(password string, cost int) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", &ValidationError{Field: "password", Message: "field required"}
	}
	if len(password) > maxPasswordBytes {
		return "", &ValidationError{
			Field:   "password",
			Message: fmt.Sprintf("ensure this value has at most %d bytes", maxPasswordBytes),
		}
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// helper: verify password against hash
func verifyPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
