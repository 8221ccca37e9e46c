package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/sweebapp/sweebguard/internal/logger"
	"github.com/sweebapp/sweebguard/models"
)

// settingsRepository is the PostgreSQL-backed implementation of
// [SettingsRepository]. Settings share the account lifecycle: the row is
// created at registration and removed by the users FK cascade.
type settingsRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewSettingsRepository constructs a [SettingsRepository] backed by the
// provided database connection and logger.
func NewSettingsRepository(db *DB, logger *logger.Logger) SettingsRepository {
	logger.Debug().Msg("creating settings repository")
	return &settingsRepository{
		db:     db,
		logger: logger,
	}
}

// CreateSettings inserts the initial settings row for a new account.
func (r *settingsRepository) CreateSettings(ctx context.Context, settings models.UserSettings) error {
	log := logger.FromContext(ctx)

	_, err := r.db.ExecContext(ctx, createSettings,
		settings.UserID, settings.AlwaysOnTop, settings.AllowNotifications, settings.Theme, settings.RunAtStartup)
	if err != nil {
		log.Err(err).Str("func", "*settingsRepository.CreateSettings").Msg("error executing insert")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	return nil
}

// GetSettings returns the settings row of one user.
func (r *settingsRepository) GetSettings(ctx context.Context, userID int64) (models.UserSettings, error) {
	log := logger.FromContext(ctx)

	var settings models.UserSettings
	row := r.db.QueryRowContext(ctx, getSettings, userID)
	if err := row.Scan(&settings.UserID, &settings.AlwaysOnTop, &settings.AllowNotifications,
		&settings.Theme, &settings.RunAtStartup); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.UserSettings{}, ErrSettingsNotFound
		}
		log.Err(err).Str("func", "*settingsRepository.GetSettings").Msg("error: scanning error")
		return models.UserSettings{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return settings, nil
}

// UpdateSettings replaces the stored settings of one user in place.
func (r *settingsRepository) UpdateSettings(ctx context.Context, settings models.UserSettings) error {
	log := logger.FromContext(ctx)

	query, args, err := psql.
		Update("user_settings").
		Set("always_on_top", settings.AlwaysOnTop).
		Set("allow_notifications", settings.AllowNotifications).
		Set("theme", settings.Theme).
		Set("run_at_startup", settings.RunAtStartup).
		Where(sq.Eq{"user_id": settings.UserID}).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*settingsRepository.UpdateSettings").Msg("error building query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*settingsRepository.UpdateSettings").Msg("error executing update")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return ErrSettingsNotFound
	}

	return nil
}
