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

type mockSettingsService struct {
	getSettingsFn    func(ctx context.Context, userID int64) (models.UserSettings, error)
	updateSettingsFn func(ctx context.Context, settings models.UserSettings) error
}

func (m *mockSettingsService) GetSettings(ctx context.Context, userID int64) (models.UserSettings, error) {
	return m.getSettingsFn(ctx, userID)
}

func (m *mockSettingsService) UpdateSettings(ctx context.Context, settings models.UserSettings) error {
	return m.updateSettingsFn(ctx, settings)
}

func newHandlerWithSettings(t *testing.T, settings service.SettingsService) *Handler {
	t.Helper()
	return newTestHandler(t, &service.Services{SettingsService: settings})
}

func TestGetSettings_Success(t *testing.T) {
	settings := &mockSettingsService{
		getSettingsFn: func(_ context.Context, userID int64) (models.UserSettings, error) {
			assert.Equal(t, int64(1), userID)
			return models.UserSettings{UserID: userID, Theme: "dark", AllowNotifications: true}, nil
		},
	}

	h := newHandlerWithSettings(t, settings)
	req := asUser(httptest.NewRequest(http.MethodGet, "/api/settings", nil), 1)
	rec := httptest.NewRecorder()

	h.getSettings(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got models.UserSettings
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "dark", got.Theme)
	assert.True(t, got.AllowNotifications)
}

func TestGetSettings_NotFound(t *testing.T) {
	settings := &mockSettingsService{
		getSettingsFn: func(_ context.Context, _ int64) (models.UserSettings, error) {
			return models.UserSettings{}, store.ErrSettingsNotFound
		},
	}

	h := newHandlerWithSettings(t, settings)
	req := asUser(httptest.NewRequest(http.MethodGet, "/api/settings", nil), 1)
	rec := httptest.NewRecorder()

	h.getSettings(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateSettings_OwnerComesFromToken(t *testing.T) {
	var got models.UserSettings
	settings := &mockSettingsService{
		updateSettingsFn: func(_ context.Context, s models.UserSettings) error {
			got = s
			return nil
		},
	}

	h := newHandlerWithSettings(t, settings)
	req := asUser(httptest.NewRequest(http.MethodPut, "/api/settings",
		strings.NewReader(`{"theme":"dark","run_at_startup":true}`)), 1)
	rec := httptest.NewRecorder()

	h.updateSettings(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(1), got.UserID)
	assert.Equal(t, "dark", got.Theme)
	assert.True(t, got.RunAtStartup)
}

func TestUpdateSettings_InvalidJSON(t *testing.T) {
	h := newHandlerWithSettings(t, &mockSettingsService{})
	req := asUser(httptest.NewRequest(http.MethodPut, "/api/settings",
		strings.NewReader(`{"theme":`)), 1)
	rec := httptest.NewRecorder()

	h.updateSettings(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateSettings_NotFound(t *testing.T) {
	settings := &mockSettingsService{
		updateSettingsFn: func(_ context.Context, _ models.UserSettings) error {
			return store.ErrSettingsNotFound
		},
	}

	h := newHandlerWithSettings(t, settings)
	req := asUser(httptest.NewRequest(http.MethodPut, "/api/settings",
		strings.NewReader(`{"theme":"light"}`)), 1)
	rec := httptest.NewRecorder()

	h.updateSettings(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}
