package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/sweebapp/sweebguard/internal/config"
	"github.com/sweebapp/sweebguard/internal/logger"
	"github.com/sweebapp/sweebguard/internal/store"
	"github.com/sweebapp/sweebguard/internal/utils"
	"github.com/sweebapp/sweebguard/models"
)

// dummyPasswordHash is a bcrypt hash of a random throwaway value. When a
// username does not exist, Authenticate still runs a bcrypt comparison
// against it so the unknown-user path costs the same as the wrong-password
// path.
const dummyPasswordHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// authService is the concrete implementation of AuthService.
// It handles registration, credential verification via bcrypt, and the JWT
// session token lifecycle, using a UserRepository for persistence.
type authService struct {
	// userRepository is the data-access layer used to create and look up
	// accounts.
	userRepository store.UserRepository

	// settingsRepository seeds the default settings row at registration.
	settingsRepository store.SettingsRepository

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	// logger is the structured logger used for diagnostic output.
	logger *logger.Logger
}

// NewAuthService constructs an AuthService wired to the given repositories
// and populated with token parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewAuthService(userRepository store.UserRepository, settingsRepository store.SettingsRepository, cfg config.Auth, logger *logger.Logger) AuthService {
	return &authService{
		userRepository:     userRepository,
		settingsRepository: settingsRepository,
		tokenSignKey:       cfg.TokenSignKey,
		tokenIssuer:        cfg.TokenIssuer,
		tokenDuration:      cfg.TokenDuration,
		logger:             logger,
	}
}

// Register creates a new account together with its default settings row.
//
// The password is hashed with bcrypt before it reaches persistence; the
// plaintext never leaves this method. Returns ErrInvalidDataProvided for
// empty inputs, a models validation error for a malformed username/email,
// or a wrapped storage error (e.g. store.ErrUsernameAlreadyExists).
func (a *authService) Register(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	if req.Username == "" || req.Password == "" {
		log.Error().Str("username", req.Username).Msg("invalid registration data provided")
		return models.User{}, ErrInvalidDataProvided
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Err(err).Msg("password hashing failed")
		return models.User{}, fmt.Errorf("password hashing failed: %w", err)
	}

	user, err := models.NewUser(req.Username, req.Email, string(hash))
	if err != nil {
		log.Err(err).Str("username", req.Username).Msg("invalid account attributes")
		return models.User{}, err
	}

	registered, err := a.userRepository.CreateUser(ctx, user)
	if err != nil {
		log.Err(err).Str("username", req.Username).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	if err := a.settingsRepository.CreateSettings(ctx, models.DefaultSettings(registered.ID)); err != nil {
		log.Err(err).Int64("id", registered.ID).Msg("default settings creation failed")
		return models.User{}, fmt.Errorf("default settings creation failed: %w", err)
	}

	return registered, nil
}

// Authenticate verifies a username/secret pair and returns the resolved
// account on success, stamping its last-login time.
//
// Every failure mode — unknown username, wrong password, disabled
// account — yields the same ErrInvalidCredentials, and the bcrypt
// comparison runs in all of them so no timing difference distinguishes an
// existing account from a missing one.
func (a *authService) Authenticate(ctx context.Context, username, password string) (models.User, error) {
	log := logger.FromContext(ctx)

	if username == "" || password == "" {
		log.Error().Str("username", username).Msg("invalid login data provided")
		return models.User{}, ErrInvalidDataProvided
	}

	foundUser, err := a.userRepository.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			// Burn the same bcrypt work as the found-user path.
			_ = bcrypt.CompareHashAndPassword([]byte(dummyPasswordHash), []byte(password))
			log.Error().Str("username", username).Msg("authentication failed")
			return models.User{}, ErrInvalidCredentials
		}
		log.Err(err).Str("username", username).Msg("user search by username failed")
		return models.User{}, fmt.Errorf("user search by username failed: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(foundUser.PasswordHash), []byte(password)); err != nil {
		log.Error().Str("username", username).Msg("authentication failed")
		return models.User{}, ErrInvalidCredentials
	}

	if foundUser.Disabled {
		log.Error().Str("username", username).Msg("authentication failed")
		return models.User{}, ErrInvalidCredentials
	}

	now := time.Now()
	if err := a.userRepository.TouchLastLogin(ctx, foundUser.ID, now); err != nil {
		// The login itself succeeded; a failed stamp is logged, not fatal.
		log.Err(err).Int64("id", foundUser.ID).Msg("failed to touch last login")
	} else {
		foundUser.LastLogin = now
	}

	foundUser.PasswordHash = ""

	return foundUser, nil
}

// CreateToken issues a signed JWT for the given user.
func (a *authService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, user.ID, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates and parses a raw JWT string.
//
// Any validation failure (expired, wrong issuer, malformed) is normalised
// to ErrTokenIsExpiredOrInvalid so that callers do not need to inspect
// low-level JWT errors.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}

// GetUser returns the account with the given ID, with the password hash
// blanked.
func (a *authService) GetUser(ctx context.Context, userID int64) (models.User, error) {
	log := logger.FromContext(ctx)

	user, err := a.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		log.Err(err).Int64("id", userID).Msg("user lookup failed")
		return models.User{}, fmt.Errorf("user lookup failed: %w", err)
	}

	user.PasswordHash = ""

	return user, nil
}

// UpdateEmail is the single named mutation of an account's email address.
func (a *authService) UpdateEmail(ctx context.Context, userID int64, email string) error {
	log := logger.FromContext(ctx)

	if err := models.ValidateEmail(email); err != nil {
		log.Err(err).Int64("id", userID).Msg("invalid email provided")
		return err
	}

	if err := a.userRepository.UpdateEmail(ctx, userID, email); err != nil {
		log.Err(err).Int64("id", userID).Msg("email update failed")
		return fmt.Errorf("email update failed: %w", err)
	}

	return nil
}
