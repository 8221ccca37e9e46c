package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sweebapp/sweebguard/internal/service"
	"github.com/sweebapp/sweebguard/internal/store"
	"github.com/sweebapp/sweebguard/models"
)

// ─────────────────────────────────────────────
// Mock AuthService
// ─────────────────────────────────────────────

// mockAuthService implements service.AuthService for unit tests.
// Each method field can be overridden per test case.
type mockAuthService struct {
	registerFn     func(ctx context.Context, req models.RegisterRequest) (models.User, error)
	authenticateFn func(ctx context.Context, username, password string) (models.User, error)
	createTokenFn  func(ctx context.Context, user models.User) (models.Token, error)
	parseTokenFn   func(ctx context.Context, tokenString string) (models.Token, error)
	getUserFn      func(ctx context.Context, userID int64) (models.User, error)
	updateEmailFn  func(ctx context.Context, userID int64, email string) error
}

func (m *mockAuthService) Register(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	return m.registerFn(ctx, req)
}

func (m *mockAuthService) Authenticate(ctx context.Context, username, password string) (models.User, error) {
	return m.authenticateFn(ctx, username, password)
}

func (m *mockAuthService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	return m.createTokenFn(ctx, user)
}

func (m *mockAuthService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	return m.parseTokenFn(ctx, tokenString)
}

func (m *mockAuthService) GetUser(ctx context.Context, userID int64) (models.User, error) {
	return m.getUserFn(ctx, userID)
}

func (m *mockAuthService) UpdateEmail(ctx context.Context, userID int64, email string) error {
	return m.updateEmailFn(ctx, userID, email)
}

func newHandlerWithAuth(t *testing.T, auth service.AuthService) *Handler {
	t.Helper()
	return newTestHandler(t, &service.Services{AuthService: auth})
}

func stubToken(signed string) models.Token {
	return models.Token{SignedString: signed}
}

// ─────────────────────────────────────────────
// register
// ─────────────────────────────────────────────

func TestRegister_Success(t *testing.T) {
	const signedToken = "signed.jwt.token"

	auth := &mockAuthService{
		registerFn: func(_ context.Context, req models.RegisterRequest) (models.User, error) {
			assert.Equal(t, "alice", req.Username)
			return models.User{ID: 1, Username: req.Username}, nil
		},
		createTokenFn: func(_ context.Context, _ models.User) (models.Token, error) {
			return stubToken(signedToken), nil
		},
	}

	h := newHandlerWithAuth(t, auth)
	req := httptest.NewRequest(http.MethodPost, "/api/user/register",
		strings.NewReader(`{"username":"alice","email":"alice@example.com","password":"s3cret"}`))
	rec := httptest.NewRecorder()

	h.register(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Bearer "+signedToken, rec.Header().Get("Authorization"))
}

func TestRegister_InvalidJSON(t *testing.T) {
	h := newHandlerWithAuth(t, &mockAuthService{})
	req := httptest.NewRequest(http.MethodPost, "/api/user/register", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()

	h.register(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	auth := &mockAuthService{
		registerFn: func(_ context.Context, _ models.RegisterRequest) (models.User, error) {
			return models.User{}, store.ErrUsernameAlreadyExists
		},
	}

	h := newHandlerWithAuth(t, auth)
	req := httptest.NewRequest(http.MethodPost, "/api/user/register",
		strings.NewReader(`{"username":"alice","email":"alice@example.com","password":"s3cret"}`))
	rec := httptest.NewRecorder()

	h.register(rec, req)

	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestRegister_InvalidData(t *testing.T) {
	auth := &mockAuthService{
		registerFn: func(_ context.Context, _ models.RegisterRequest) (models.User, error) {
			return models.User{}, models.ErrInvalidEmail
		},
	}

	h := newHandlerWithAuth(t, auth)
	req := httptest.NewRequest(http.MethodPost, "/api/user/register",
		strings.NewReader(`{"username":"alice","email":"bad","password":"s3cret"}`))
	rec := httptest.NewRecorder()

	h.register(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

// ─────────────────────────────────────────────
// login
// ─────────────────────────────────────────────

func TestLogin_Success(t *testing.T) {
	const signedToken = "signed.jwt.token"

	auth := &mockAuthService{
		authenticateFn: func(_ context.Context, username, password string) (models.User, error) {
			assert.Equal(t, "alice", username)
			assert.Equal(t, "s3cret", password)
			return models.User{ID: 1, Username: username}, nil
		},
		createTokenFn: func(_ context.Context, _ models.User) (models.Token, error) {
			return stubToken(signedToken), nil
		},
	}

	h := newHandlerWithAuth(t, auth)
	req := httptest.NewRequest(http.MethodPost, "/api/user/login",
		strings.NewReader(`{"username":"alice","password":"s3cret"}`))
	rec := httptest.NewRecorder()

	h.login(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Bearer "+signedToken, rec.Header().Get("Authorization"))
}

func TestLogin_InvalidCredentials(t *testing.T) {
	auth := &mockAuthService{
		authenticateFn: func(_ context.Context, _, _ string) (models.User, error) {
			return models.User{}, service.ErrInvalidCredentials
		},
	}

	h := newHandlerWithAuth(t, auth)
	req := httptest.NewRequest(http.MethodPost, "/api/user/login",
		strings.NewReader(`{"username":"alice","password":"wrong"}`))
	rec := httptest.NewRecorder()

	h.login(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid credentials")
}

// ─────────────────────────────────────────────
// getUser / updateEmail
// ─────────────────────────────────────────────

func TestGetUser_Success(t *testing.T) {
	auth := &mockAuthService{
		getUserFn: func(_ context.Context, userID int64) (models.User, error) {
			assert.Equal(t, int64(1), userID)
			return models.User{ID: 1, Username: "alice", Email: "alice@example.com"}, nil
		},
	}

	h := newHandlerWithAuth(t, auth)
	req := asUser(httptest.NewRequest(http.MethodGet, "/api/user", nil), 1)
	rec := httptest.NewRecorder()

	h.getUser(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var user models.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
	assert.Equal(t, "alice", user.Username)
}

func TestGetUser_MissingContext(t *testing.T) {
	h := newHandlerWithAuth(t, &mockAuthService{})
	req := httptest.NewRequest(http.MethodGet, "/api/user", nil)
	rec := httptest.NewRecorder()

	h.getUser(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestUpdateEmail_Success(t *testing.T) {
	var gotEmail string
	auth := &mockAuthService{
		updateEmailFn: func(_ context.Context, _ int64, email string) error {
			gotEmail = email
			return nil
		},
	}

	h := newHandlerWithAuth(t, auth)
	req := asUser(httptest.NewRequest(http.MethodPut, "/api/user/email",
		strings.NewReader(`{"email":"new@example.com"}`)), 1)
	rec := httptest.NewRecorder()

	h.updateEmail(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "new@example.com", gotEmail)
}

func TestUpdateEmail_Invalid(t *testing.T) {
	auth := &mockAuthService{
		updateEmailFn: func(_ context.Context, _ int64, _ string) error {
			return models.ErrInvalidEmail
		},
	}

	h := newHandlerWithAuth(t, auth)
	req := asUser(httptest.NewRequest(http.MethodPut, "/api/user/email",
		strings.NewReader(`{"email":"bad"}`)), 1)
	rec := httptest.NewRecorder()

	h.updateEmail(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}
