package service

import (
	"context"
	"errors"
	"time"

	"github.com/sweebapp/sweebguard/internal/store"
	"github.com/sweebapp/sweebguard/models"
)

// Function-field mocks for the store collaborators. A nil field means the
// call succeeds with zero values.

var errStorage = errors.New("storage error")

type mockUserRepository struct {
	createUserFn         func(ctx context.Context, user models.User) (models.User, error)
	findUserByUsernameFn func(ctx context.Context, username string) (models.User, error)
	getUserByIDFn        func(ctx context.Context, userID int64) (models.User, error)
	touchLastLoginFn     func(ctx context.Context, userID int64, at time.Time) error
	updateEmailFn        func(ctx context.Context, userID int64, email string) error
}

func (m *mockUserRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	if m.createUserFn != nil {
		return m.createUserFn(ctx, user)
	}
	return user, nil
}

func (m *mockUserRepository) FindUserByUsername(ctx context.Context, username string) (models.User, error) {
	if m.findUserByUsernameFn != nil {
		return m.findUserByUsernameFn(ctx, username)
	}
	return models.User{}, store.ErrNoUserWasFound
}

func (m *mockUserRepository) GetUserByID(ctx context.Context, userID int64) (models.User, error) {
	if m.getUserByIDFn != nil {
		return m.getUserByIDFn(ctx, userID)
	}
	return models.User{}, store.ErrNoUserWasFound
}

func (m *mockUserRepository) TouchLastLogin(ctx context.Context, userID int64, at time.Time) error {
	if m.touchLastLoginFn != nil {
		return m.touchLastLoginFn(ctx, userID, at)
	}
	return nil
}

func (m *mockUserRepository) UpdateEmail(ctx context.Context, userID int64, email string) error {
	if m.updateEmailFn != nil {
		return m.updateEmailFn(ctx, userID, email)
	}
	return nil
}

type mockRuleRepository struct {
	createRuleFn       func(ctx context.Context, rule models.Rule) (models.Rule, error)
	getRuleFn          func(ctx context.Context, userID, ruleID int64) (models.Rule, error)
	listRulesFn        func(ctx context.Context, userID int64) ([]models.Rule, error)
	listEnabledRulesFn func(ctx context.Context, userID int64) ([]models.Rule, error)
	updateRuleFn       func(ctx context.Context, update models.RuleUpdate) (models.Rule, error)
	deleteRuleFn       func(ctx context.Context, userID, ruleID int64) error
}

func (m *mockRuleRepository) CreateRule(ctx context.Context, rule models.Rule) (models.Rule, error) {
	if m.createRuleFn != nil {
		return m.createRuleFn(ctx, rule)
	}
	return rule, nil
}

func (m *mockRuleRepository) GetRule(ctx context.Context, userID, ruleID int64) (models.Rule, error) {
	if m.getRuleFn != nil {
		return m.getRuleFn(ctx, userID, ruleID)
	}
	return models.Rule{}, store.ErrRuleNotFound
}

func (m *mockRuleRepository) ListRules(ctx context.Context, userID int64) ([]models.Rule, error) {
	if m.listRulesFn != nil {
		return m.listRulesFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockRuleRepository) ListEnabledRules(ctx context.Context, userID int64) ([]models.Rule, error) {
	if m.listEnabledRulesFn != nil {
		return m.listEnabledRulesFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockRuleRepository) UpdateRule(ctx context.Context, update models.RuleUpdate) (models.Rule, error) {
	if m.updateRuleFn != nil {
		return m.updateRuleFn(ctx, update)
	}
	return models.Rule{}, store.ErrRuleNotFound
}

func (m *mockRuleRepository) DeleteRule(ctx context.Context, userID, ruleID int64) error {
	if m.deleteRuleFn != nil {
		return m.deleteRuleFn(ctx, userID, ruleID)
	}
	return nil
}

type mockEventRepository struct {
	saveEventFn          func(ctx context.Context, event models.ThreatEvent) (models.ThreatEvent, error)
	listEventsByDeviceFn func(ctx context.Context, deviceID int64, limit int) ([]models.ThreatEvent, error)
}

func (m *mockEventRepository) SaveEvent(ctx context.Context, event models.ThreatEvent) (models.ThreatEvent, error) {
	if m.saveEventFn != nil {
		return m.saveEventFn(ctx, event)
	}
	return event, nil
}

func (m *mockEventRepository) ListEventsByDevice(ctx context.Context, deviceID int64, limit int) ([]models.ThreatEvent, error) {
	if m.listEventsByDeviceFn != nil {
		return m.listEventsByDeviceFn(ctx, deviceID, limit)
	}
	return nil, nil
}

type mockSettingsRepository struct {
	createSettingsFn func(ctx context.Context, settings models.UserSettings) error
	getSettingsFn    func(ctx context.Context, userID int64) (models.UserSettings, error)
	updateSettingsFn func(ctx context.Context, settings models.UserSettings) error
}

func (m *mockSettingsRepository) CreateSettings(ctx context.Context, settings models.UserSettings) error {
	if m.createSettingsFn != nil {
		return m.createSettingsFn(ctx, settings)
	}
	return nil
}

func (m *mockSettingsRepository) GetSettings(ctx context.Context, userID int64) (models.UserSettings, error) {
	if m.getSettingsFn != nil {
		return m.getSettingsFn(ctx, userID)
	}
	return models.UserSettings{}, store.ErrSettingsNotFound
}

func (m *mockSettingsRepository) UpdateSettings(ctx context.Context, settings models.UserSettings) error {
	if m.updateSettingsFn != nil {
		return m.updateSettingsFn(ctx, settings)
	}
	return nil
}

type mockEventBuffer struct {
	pushFn   func(ctx context.Context, event models.ThreatEvent) error
	pullFn   func(ctx context.Context, limit int) ([]store.BufferedEvent, error)
	removeFn func(ctx context.Context, bufferID int64) error
	closeFn  func() error
}

func (m *mockEventBuffer) Push(ctx context.Context, event models.ThreatEvent) error {
	if m.pushFn != nil {
		return m.pushFn(ctx, event)
	}
	return nil
}

func (m *mockEventBuffer) Pull(ctx context.Context, limit int) ([]store.BufferedEvent, error) {
	if m.pullFn != nil {
		return m.pullFn(ctx, limit)
	}
	return nil, nil
}

func (m *mockEventBuffer) Remove(ctx context.Context, bufferID int64) error {
	if m.removeFn != nil {
		return m.removeFn(ctx, bufferID)
	}
	return nil
}

func (m *mockEventBuffer) Close() error {
	if m.closeFn != nil {
		return m.closeFn()
	}
	return nil
}

// mockClassifier classifies every error with a fixed answer.
type mockClassifier struct {
	classification store.ErrorClassification
}

func (m *mockClassifier) Classify(err error) store.ErrorClassification {
	return m.classification
}

type mockEventRecorder struct {
	recordFn     func(ctx context.Context, decision models.Decision, req models.Request) (models.ThreatEvent, error)
	listEventsFn func(ctx context.Context, deviceID int64, limit int) ([]models.ThreatEvent, error)
}

func (m *mockEventRecorder) Record(ctx context.Context, decision models.Decision, req models.Request) (models.ThreatEvent, error) {
	if m.recordFn != nil {
		return m.recordFn(ctx, decision, req)
	}
	return models.ThreatEvent{}, nil
}

func (m *mockEventRecorder) ListEvents(ctx context.Context, deviceID int64, limit int) ([]models.ThreatEvent, error) {
	if m.listEventsFn != nil {
		return m.listEventsFn(ctx, deviceID, limit)
	}
	return nil, nil
}
