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

// psql builds queries with PostgreSQL-style $N placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const ruleColumns = "id, user_id, name, enabled, priority, action, match_type, pattern, category, score, created_at"

// ruleRepository is the PostgreSQL-backed implementation of [RuleRepository].
//
// List queries are built with squirrel so that the enabled filter and the
// evaluation ordering live in one place; the partial UPDATE is likewise
// assembled dynamically from the non-nil fields of a [models.RuleUpdate].
type ruleRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewRuleRepository constructs a [RuleRepository] backed by the provided
// database connection and logger.
func NewRuleRepository(db *DB, logger *logger.Logger) RuleRepository {
	logger.Debug().Msg("creating rule repository")
	return &ruleRepository{
		db:     db,
		logger: logger,
	}
}

// CreateRule persists a validated rule and returns it with server-assigned
// fields (ID, CreatedAt).
func (r *ruleRepository) CreateRule(ctx context.Context, rule models.Rule) (models.Rule, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createRule,
		rule.UserID, rule.Name, rule.Enabled, rule.Priority,
		rule.Action, rule.MatchType, rule.Pattern, rule.Category, rule.Score)
	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*ruleRepository.CreateRule").Msg("error: row is nil")
		return models.Rule{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	created, err := scanRuleRow(row)
	if err != nil {
		log.Err(err).Str("func", "*ruleRepository.CreateRule").Msg("error: scanning error")
		return models.Rule{}, err
	}

	return created, nil
}

// GetRule retrieves one rule scoped to its owner.
func (r *ruleRepository) GetRule(ctx context.Context, userID, ruleID int64) (models.Rule, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, getRule, userID, ruleID)
	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*ruleRepository.GetRule").Msg("error: row is nil")
		return models.Rule{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	rule, err := scanRuleRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Rule{}, ErrRuleNotFound
		}
		log.Err(err).Str("func", "*ruleRepository.GetRule").Msg("error: scanning error")
		return models.Rule{}, err
	}

	return rule, nil
}

// ListRules returns every rule of the user, enabled or not, in evaluation
// order.
func (r *ruleRepository) ListRules(ctx context.Context, userID int64) ([]models.Rule, error) {
	return r.listRules(ctx, userID, false)
}

// ListEnabledRules returns the user's enabled rules in evaluation order:
// ascending priority, then creation time, then ID.
func (r *ruleRepository) ListEnabledRules(ctx context.Context, userID int64) ([]models.Rule, error) {
	return r.listRules(ctx, userID, true)
}

func (r *ruleRepository) listRules(ctx context.Context, userID int64, enabledOnly bool) ([]models.Rule, error) {
	log := logger.FromContext(ctx)

	builder := psql.
		Select(ruleColumns).
		From("rules").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("priority ASC", "created_at ASC", "id ASC")
	if enabledOnly {
		builder = builder.Where(sq.Eq{"enabled": true})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		log.Err(err).Str("func", "*ruleRepository.listRules").Msg("error building query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*ruleRepository.listRules").Msg("error executing query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var rules []models.Rule
	for rows.Next() {
		var rule models.Rule
		if err := rows.Scan(&rule.ID, &rule.UserID, &rule.Name, &rule.Enabled, &rule.Priority,
			&rule.Action, &rule.MatchType, &rule.Pattern, &rule.Category, &rule.Score, &rule.CreatedAt); err != nil {
			log.Err(err).Str("func", "*ruleRepository.listRules").Msg("error scanning rows")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		rules = append(rules, rule)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return rules, nil
}

// UpdateRule applies the non-nil fields of update and returns the updated
// rule. The service layer has already re-validated the resulting rule, so
// the stored pattern stays consistent with its match type.
//
// Returns [ErrRuleNotFound] when the rule does not exist or belongs to a
// different user.
func (r *ruleRepository) UpdateRule(ctx context.Context, update models.RuleUpdate) (models.Rule, error) {
	log := logger.FromContext(ctx)

	builder := psql.
		Update("rules").
		Where(sq.Eq{"id": update.ID, "user_id": update.UserID}).
		Suffix("RETURNING " + ruleColumns)

	changed := false
	if update.Name != nil {
		builder = builder.Set("name", *update.Name)
		changed = true
	}
	if update.Enabled != nil {
		builder = builder.Set("enabled", *update.Enabled)
		changed = true
	}
	if update.Priority != nil {
		builder = builder.Set("priority", *update.Priority)
		changed = true
	}
	if update.Action != nil {
		builder = builder.Set("action", *update.Action)
		changed = true
	}
	if update.Pattern != nil {
		builder = builder.Set("pattern", *update.Pattern)
		changed = true
	}
	if update.Category != nil {
		builder = builder.Set("category", *update.Category)
		changed = true
	}

	if !changed {
		return r.GetRule(ctx, update.UserID, update.ID)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		log.Err(err).Str("func", "*ruleRepository.UpdateRule").Msg("error building query")
		return models.Rule{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	row := r.db.QueryRowContext(ctx, query, args...)
	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*ruleRepository.UpdateRule").Msg("error: row is nil")
		return models.Rule{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	updated, err := scanRuleRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Rule{}, ErrRuleNotFound
		}
		log.Err(err).Str("func", "*ruleRepository.UpdateRule").Msg("error: scanning error")
		return models.Rule{}, err
	}

	return updated, nil
}

// DeleteRule removes one rule scoped to its owner.
func (r *ruleRepository) DeleteRule(ctx context.Context, userID, ruleID int64) error {
	log := logger.FromContext(ctx)

	res, err := r.db.ExecContext(ctx, deleteRule, userID, ruleID)
	if err != nil {
		log.Err(err).Str("func", "*ruleRepository.DeleteRule").Msg("error executing delete")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return ErrRuleNotFound
	}

	return nil
}

func scanRuleRow(row *sql.Row) (models.Rule, error) {
	var rule models.Rule
	if err := row.Scan(&rule.ID, &rule.UserID, &rule.Name, &rule.Enabled, &rule.Priority,
		&rule.Action, &rule.MatchType, &rule.Pattern, &rule.Category, &rule.Score, &rule.CreatedAt); err != nil {
		return models.Rule{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return rule, nil
}
