package handlers

import (
	"context"
	"net/http"
	"time"

	"notes_api/internal/models"
	"notes_api/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpUser  *models.User
	signUpErr   error
	loginToken  string
	loginErr    error
	resolveUser *models.User
	resolveErr  error

	lastSignUpEmail    string
	lastSignUpPassword string
	lastLoginEmail     string
	lastLoginPassword  string
	lastResolveToken   string
}

func (m *mockAuth) SignUp(_ context.Context, email, password string) (*models.User, error) {
	m.lastSignUpEmail = email
	m.lastSignUpPassword = password
	return m.signUpUser, m.signUpErr
}

func (m *mockAuth) Login(_ context.Context, email, password string) (string, error) {
	m.lastLoginEmail = email
	m.lastLoginPassword = password
	return m.loginToken, m.loginErr
}

func (m *mockAuth) ResolveUser(_ context.Context, token string) (*models.User, error) {
	m.lastResolveToken = token
	return m.resolveUser, m.resolveErr
}

type mockNotes struct {
	note  *models.Note
	notes []models.Note
	err   error

	createCalls int
	updateCalls int
	deleteCalls int
	lastInput   service.NoteInput
	lastPatch   models.NotePatch
	lastID      int
	lastActor   *models.User
}

func (m *mockNotes) Create(_ context.Context, owner *models.User, in service.NoteInput) (*models.Note, error) {
	m.createCalls++
	m.lastActor = owner
	m.lastInput = in
	return m.note, m.err
}

func (m *mockNotes) List(_ context.Context, owner *models.User) ([]models.Note, error) {
	m.lastActor = owner
	return m.notes, m.err
}

func (m *mockNotes) Get(_ context.Context, actor *models.User, id int) (*models.Note, error) {
	m.lastActor = actor
	m.lastID = id
	return m.note, m.err
}

func (m *mockNotes) Update(_ context.Context, actor *models.User, id int, patch models.NotePatch) (*models.Note, error) {
	m.updateCalls++
	m.lastActor = actor
	m.lastID = id
	m.lastPatch = patch
	return m.note, m.err
}

func (m *mockNotes) Delete(_ context.Context, actor *models.User, id int) error {
	m.deleteCalls++
	m.lastActor = actor
	m.lastID = id
	return m.err
}

// ---- Shared Test Helpers ----

var testUser = &models.User{ID: 7, Email: "a@x.com", CreatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}

func newTestRouter(s *service.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(s, nil)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}

func withHeaders(req *http.Request, hdr http.Header) *http.Request {
	for k, vv := range hdr {
		for _, v := range vv {
			req.Header.Add(k, v)
		}
	}
	return req
}
