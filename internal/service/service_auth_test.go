package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/sweebapp/sweebguard/internal/config"
	"github.com/sweebapp/sweebguard/internal/logger"
	"github.com/sweebapp/sweebguard/internal/store"
	"github.com/sweebapp/sweebguard/models"
)

func newTestAuthService(users *mockUserRepository, settings *mockSettingsRepository) *authService {
	return &authService{
		userRepository:     users,
		settingsRepository: settings,
		tokenSignKey:       "test-sign-key",
		tokenIssuer:        "sweebguard-test",
		tokenDuration:      time.Hour,
		logger:             logger.Nop(),
	}
}

func hashOf(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

// ─────────────────────────────────────────────
// Register
// ─────────────────────────────────────────────

func TestAuthService_Register_Success(t *testing.T) {
	var createdUser models.User
	var createdSettings models.UserSettings

	users := &mockUserRepository{
		createUserFn: func(_ context.Context, user models.User) (models.User, error) {
			createdUser = user
			user.ID = 42
			return user, nil
		},
	}
	settings := &mockSettingsRepository{
		createSettingsFn: func(_ context.Context, s models.UserSettings) error {
			createdSettings = s
			return nil
		},
	}
	svc := newTestAuthService(users, settings)

	registered, err := svc.Register(context.Background(), models.RegisterRequest{
		Username: "john",
		Email:    "john@example.com",
		Password: "s3cret",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(42), registered.ID)
	assert.Equal(t, models.RoleStandard, registered.Role)

	// The stored hash must verify against the plaintext and never equal it.
	require.NotEqual(t, "s3cret", createdUser.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(createdUser.PasswordHash), []byte("s3cret")))

	// The default settings row belongs to the new account.
	assert.Equal(t, int64(42), createdSettings.UserID)
	assert.True(t, createdSettings.AllowNotifications)
}

func TestAuthService_Register_EmptyInput(t *testing.T) {
	svc := newTestAuthService(&mockUserRepository{}, &mockSettingsRepository{})

	_, err := svc.Register(context.Background(), models.RegisterRequest{Username: "", Password: "x"})
	require.ErrorIs(t, err, ErrInvalidDataProvided)

	_, err = svc.Register(context.Background(), models.RegisterRequest{Username: "john", Password: ""})
	require.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestAuthService_Register_InvalidEmail(t *testing.T) {
	svc := newTestAuthService(&mockUserRepository{}, &mockSettingsRepository{})

	_, err := svc.Register(context.Background(), models.RegisterRequest{
		Username: "john",
		Email:    "not-an-email",
		Password: "s3cret",
	})

	require.ErrorIs(t, err, models.ErrInvalidEmail)
}

func TestAuthService_Register_DuplicateUsername(t *testing.T) {
	users := &mockUserRepository{
		createUserFn: func(_ context.Context, _ models.User) (models.User, error) {
			return models.User{}, store.ErrUsernameAlreadyExists
		},
	}
	svc := newTestAuthService(users, &mockSettingsRepository{})

	_, err := svc.Register(context.Background(), models.RegisterRequest{
		Username: "john",
		Email:    "john@example.com",
		Password: "s3cret",
	})

	require.ErrorIs(t, err, store.ErrUsernameAlreadyExists)
}

// ─────────────────────────────────────────────
// Authenticate
// ─────────────────────────────────────────────

func TestAuthService_Authenticate_Success(t *testing.T) {
	touched := false
	users := &mockUserRepository{
		findUserByUsernameFn: func(_ context.Context, username string) (models.User, error) {
			assert.Equal(t, "john", username)
			return models.User{ID: 1, Username: "john", PasswordHash: hashOf(t, "s3cret")}, nil
		},
		touchLastLoginFn: func(_ context.Context, userID int64, _ time.Time) error {
			touched = true
			assert.Equal(t, int64(1), userID)
			return nil
		},
	}
	svc := newTestAuthService(users, &mockSettingsRepository{})

	user, err := svc.Authenticate(context.Background(), "john", "s3cret")

	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
	assert.True(t, touched)
	assert.Empty(t, user.PasswordHash, "password hash must never cross the service boundary")
	assert.False(t, user.LastLogin.IsZero())
}

func TestAuthService_Authenticate_GenericFailure(t *testing.T) {
	goodHash := hashOf(t, "s3cret")

	tests := []struct {
		name   string
		findFn func(ctx context.Context, username string) (models.User, error)
	}{
		{
			name: "unknown username",
			findFn: func(_ context.Context, _ string) (models.User, error) {
				return models.User{}, store.ErrNoUserWasFound
			},
		},
		{
			name: "wrong password",
			findFn: func(_ context.Context, _ string) (models.User, error) {
				return models.User{ID: 1, PasswordHash: hashOf(t, "different")}, nil
			},
		},
		{
			name: "disabled account",
			findFn: func(_ context.Context, _ string) (models.User, error) {
				return models.User{ID: 1, PasswordHash: goodHash, Disabled: true}, nil
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestAuthService(&mockUserRepository{findUserByUsernameFn: tt.findFn}, &mockSettingsRepository{})

			_, err := svc.Authenticate(context.Background(), "john", "s3cret")

			// Every failure mode collapses to the same error.
			require.ErrorIs(t, err, ErrInvalidCredentials)
		})
	}
}

func TestAuthService_Authenticate_RepositoryError(t *testing.T) {
	users := &mockUserRepository{
		findUserByUsernameFn: func(_ context.Context, _ string) (models.User, error) {
			return models.User{}, errStorage
		},
	}
	svc := newTestAuthService(users, &mockSettingsRepository{})

	_, err := svc.Authenticate(context.Background(), "john", "s3cret")

	require.ErrorIs(t, err, errStorage)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Authenticate_TouchLastLoginFailureIsNotFatal(t *testing.T) {
	users := &mockUserRepository{
		findUserByUsernameFn: func(_ context.Context, _ string) (models.User, error) {
			return models.User{ID: 1, PasswordHash: hashOf(t, "s3cret")}, nil
		},
		touchLastLoginFn: func(_ context.Context, _ int64, _ time.Time) error {
			return errStorage
		},
	}
	svc := newTestAuthService(users, &mockSettingsRepository{})

	user, err := svc.Authenticate(context.Background(), "john", "s3cret")

	require.NoError(t, err)
	assert.True(t, user.LastLogin.IsZero())
}

// ─────────────────────────────────────────────
// Tokens
// ─────────────────────────────────────────────

func TestAuthService_TokenRoundtrip(t *testing.T) {
	svc := newTestAuthService(&mockUserRepository{}, &mockSettingsRepository{})

	token, err := svc.CreateToken(context.Background(), models.User{ID: 42})
	require.NoError(t, err)
	require.NotEmpty(t, token.SignedString)

	parsed, err := svc.ParseToken(context.Background(), token.SignedString)
	require.NoError(t, err)
	assert.Equal(t, int64(42), parsed.UserID)
}

func TestAuthService_ParseToken_WrongKey(t *testing.T) {
	issuing := newTestAuthService(&mockUserRepository{}, &mockSettingsRepository{})
	verifying := newTestAuthService(&mockUserRepository{}, &mockSettingsRepository{})
	verifying.tokenSignKey = "different-key"

	token, err := issuing.CreateToken(context.Background(), models.User{ID: 42})
	require.NoError(t, err)

	_, err = verifying.ParseToken(context.Background(), token.SignedString)
	require.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}

func TestAuthService_ParseToken_Expired(t *testing.T) {
	issuing := newTestAuthService(&mockUserRepository{}, &mockSettingsRepository{})
	issuing.tokenDuration = -time.Hour

	token, err := issuing.CreateToken(context.Background(), models.User{ID: 42})
	require.NoError(t, err)

	_, err = issuing.ParseToken(context.Background(), token.SignedString)
	require.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}

// ─────────────────────────────────────────────
// GetUser / UpdateEmail
// ─────────────────────────────────────────────

func TestAuthService_GetUser_BlanksPasswordHash(t *testing.T) {
	users := &mockUserRepository{
		getUserByIDFn: func(_ context.Context, userID int64) (models.User, error) {
			return models.User{ID: userID, Username: "john", PasswordHash: "hash"}, nil
		},
	}
	svc := newTestAuthService(users, &mockSettingsRepository{})

	user, err := svc.GetUser(context.Background(), 1)

	require.NoError(t, err)
	assert.Empty(t, user.PasswordHash)
}

func TestAuthService_UpdateEmail_Valid(t *testing.T) {
	var gotEmail string
	users := &mockUserRepository{
		updateEmailFn: func(_ context.Context, _ int64, email string) error {
			gotEmail = email
			return nil
		},
	}
	svc := newTestAuthService(users, &mockSettingsRepository{})

	err := svc.UpdateEmail(context.Background(), 1, "new@example.com")

	require.NoError(t, err)
	assert.Equal(t, "new@example.com", gotEmail)
}

func TestAuthService_UpdateEmail_Invalid(t *testing.T) {
	called := false
	users := &mockUserRepository{
		updateEmailFn: func(_ context.Context, _ int64, _ string) error {
			called = true
			return nil
		},
	}
	svc := newTestAuthService(users, &mockSettingsRepository{})

	err := svc.UpdateEmail(context.Background(), 1, "broken@")

	require.ErrorIs(t, err, models.ErrInvalidEmail)
	assert.False(t, called, "invalid email must be rejected before persistence")
}

// Config plumbing sanity: NewAuthService copies the token parameters.
func TestNewAuthService_CopiesConfig(t *testing.T) {
	svc := NewAuthService(&mockUserRepository{}, &mockSettingsRepository{}, config.Auth{
		TokenSignKey:  "k",
		TokenIssuer:   "iss",
		TokenDuration: time.Minute,
	}, logger.Nop())

	concrete, ok := svc.(*authService)
	require.True(t, ok)
	assert.Equal(t, "k", concrete.tokenSignKey)
	assert.Equal(t, "iss", concrete.tokenIssuer)
	assert.Equal(t, time.Minute, concrete.tokenDuration)
}
