package service

import (
	"context"
	"sync"
	"time"

	"notes_api/internal/models"
	"notes_api/internal/repository"
)

// mockUserRepo is a lightweight in-test mock for repository.Users.
type mockUserRepo struct {
	CreateFn     func(email, hash string, createdAt time.Time) (*models.User, error)
	GetByEmailFn func(email string) (*models.User, error)

	createCalls []struct {
		email string
		hash  string
	}
	getCalls []string
}

func (m *mockUserRepo) Create(_ context.Context, email, hash string, createdAt time.Time) (*models.User, error) {
	m.createCalls = append(m.createCalls, struct {
		email string
		hash  string
	}{email: email, hash: hash})
	return m.CreateFn(email, hash, createdAt)
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	m.getCalls = append(m.getCalls, email)
	return m.GetByEmailFn(email)
}

// memUsers is an in-memory repository.Users keyed by email.
type memUsers struct {
	mu     sync.Mutex
	nextID int
	byMail map[string]*models.User
}

func newMemUsers() *memUsers { return &memUsers{byMail: map[string]*models.User{}} }

func (m *memUsers) Create(_ context.Context, email, hash string, createdAt time.Time) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byMail[email]; ok {
		return nil, repository.ErrDuplicateEmail
	}
	m.nextID++
	u := &models.User{ID: m.nextID, Email: email, PasswordHash: hash, CreatedAt: createdAt}
	m.byMail[email] = u
	cp := *u
	return &cp, nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byMail[email]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

// memNotes is an in-memory repository.Notes preserving insertion order.
type memNotes struct {
	mu     sync.Mutex
	nextID int
	order  []int
	byID   map[int]models.Note

	updateCalls int
	deleteCalls int
}

func newMemNotes() *memNotes { return &memNotes{byID: map[int]models.Note{}} }

func (m *memNotes) Create(_ context.Context, n models.Note) (*models.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	n.ID = m.nextID
	m.byID[n.ID] = n
	m.order = append(m.order, n.ID)
	return &n, nil
}

func (m *memNotes) ListByOwner(_ context.Context, ownerID int) ([]models.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Note{}
	for _, id := range m.order {
		if n, ok := m.byID[id]; ok && n.UserID == ownerID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (m *memNotes) GetByID(_ context.Context, id int) (*models.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	return &n, nil
}

func (m *memNotes) Update(_ context.Context, id int, patch models.NotePatch, at time.Time) (*models.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updateCalls++
	n, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	if patch.IsEmpty() {
		return &n, nil
	}
	if patch.Title != nil {
		n.Title = *patch.Title
	}
	if patch.Content != nil {
		n.Content = *patch.Content
	}
	n.UpdatedAt = &at
	m.byID[id] = n
	return &n, nil
}

func (m *memNotes) Delete(_ context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleteCalls++
	delete(m.byID, id)
	return nil
}

func strPtr(s string) *string { return &s }
