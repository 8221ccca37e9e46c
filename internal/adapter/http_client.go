package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/sweebapp/sweebguard/models"
)

type HTTPClientConfig struct {
	BaseURL string
	Timeout time.Duration
}

type httpServerAdapter struct {
	client *resty.Client

	mu    sync.RWMutex
	token string
}

func NewHTTPServerAdapter(cfg HTTPClientConfig) ServerAdapter {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:8080"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}

	cli := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout)

	return &httpServerAdapter{client: cli}
}

func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

func (h *httpServerAdapter) Register(ctx context.Context, req models.RegisterRequest) error {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Post("/api/user/register")
	if err != nil {
		return fmt.Errorf("register request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return err
	}

	token, err := parseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		return fmt.Errorf("register parse bearer token: %w", err)
	}

	h.SetToken(token)
	return nil
}

func (h *httpServerAdapter) Login(ctx context.Context, req models.LoginRequest) error {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Post("/api/user/login")
	if err != nil {
		return fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return err
	}

	token, err := parseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		return fmt.Errorf("login parse bearer token: %w", err)
	}

	h.SetToken(token)
	return nil
}

func (h *httpServerAdapter) GetUser(ctx context.Context) (models.User, error) {
	resp, err := h.authedRequest(ctx).Get("/api/user")
	if err != nil {
		return models.User{}, fmt.Errorf("get user request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	var user models.User
	if err = json.Unmarshal(resp.Body(), &user); err != nil {
		return models.User{}, fmt.Errorf("decode user response: %w", err)
	}

	return user, nil
}

func (h *httpServerAdapter) UpdateEmail(ctx context.Context, email string) error {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.UpdateEmailRequest{Email: email}).
		Put("/api/user/email")
	if err != nil {
		return fmt.Errorf("update email request: %w", err)
	}

	return mapHTTPError(resp)
}

func (h *httpServerAdapter) CreateRule(ctx context.Context, req models.CreateRuleRequest) (models.Rule, error) {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Post("/api/rules")
	if err != nil {
		return models.Rule{}, fmt.Errorf("create rule request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Rule{}, err
	}

	var rule models.Rule
	if err = json.Unmarshal(resp.Body(), &rule); err != nil {
		return models.Rule{}, fmt.Errorf("decode rule response: %w", err)
	}

	return rule, nil
}

func (h *httpServerAdapter) ListRules(ctx context.Context) ([]models.Rule, error) {
	resp, err := h.authedRequest(ctx).Get("/api/rules")
	if err != nil {
		return nil, fmt.Errorf("list rules request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var rules []models.Rule
	if err = json.Unmarshal(resp.Body(), &rules); err != nil {
		return nil, fmt.Errorf("decode rules response: %w", err)
	}

	return rules, nil
}

func (h *httpServerAdapter) GetRule(ctx context.Context, ruleID int64) (models.Rule, error) {
	resp, err := h.authedRequest(ctx).Get("/api/rules/" + strconv.FormatInt(ruleID, 10))
	if err != nil {
		return models.Rule{}, fmt.Errorf("get rule request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Rule{}, err
	}

	var rule models.Rule
	if err = json.Unmarshal(resp.Body(), &rule); err != nil {
		return models.Rule{}, fmt.Errorf("decode rule response: %w", err)
	}

	return rule, nil
}

func (h *httpServerAdapter) UpdateRule(ctx context.Context, update models.RuleUpdate) (models.Rule, error) {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(update).
		Patch("/api/rules/" + strconv.FormatInt(update.ID, 10))
	if err != nil {
		return models.Rule{}, fmt.Errorf("update rule request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Rule{}, err
	}

	var rule models.Rule
	if err = json.Unmarshal(resp.Body(), &rule); err != nil {
		return models.Rule{}, fmt.Errorf("decode rule response: %w", err)
	}

	return rule, nil
}

func (h *httpServerAdapter) DeleteRule(ctx context.Context, ruleID int64) error {
	resp, err := h.authedRequest(ctx).Delete("/api/rules/" + strconv.FormatInt(ruleID, 10))
	if err != nil {
		return fmt.Errorf("delete rule request: %w", err)
	}

	return mapHTTPError(resp)
}

func (h *httpServerAdapter) Evaluate(ctx context.Context, req models.Request) (models.EvaluateResponse, error) {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Post("/api/evaluate")
	if err != nil {
		return models.EvaluateResponse{}, fmt.Errorf("evaluate request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.EvaluateResponse{}, err
	}

	var result models.EvaluateResponse
	if err = json.Unmarshal(resp.Body(), &result); err != nil {
		return models.EvaluateResponse{}, fmt.Errorf("decode evaluate response: %w", err)
	}

	return result, nil
}

func (h *httpServerAdapter) ListEvents(ctx context.Context, deviceID int64, limit int) ([]models.ThreatEvent, error) {
	req := h.authedRequest(ctx).
		SetQueryParam("device_id", strconv.FormatInt(deviceID, 10))
	if limit > 0 {
		req.SetQueryParam("limit", strconv.Itoa(limit))
	}

	resp, err := req.Get("/api/events")
	if err != nil {
		return nil, fmt.Errorf("list events request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var events []models.ThreatEvent
	if err = json.Unmarshal(resp.Body(), &events); err != nil {
		return nil, fmt.Errorf("decode events response: %w", err)
	}

	return events, nil
}

func (h *httpServerAdapter) GetSettings(ctx context.Context) (models.UserSettings, error) {
	resp, err := h.authedRequest(ctx).Get("/api/settings")
	if err != nil {
		return models.UserSettings{}, fmt.Errorf("get settings request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.UserSettings{}, err
	}

	var settings models.UserSettings
	if err = json.Unmarshal(resp.Body(), &settings); err != nil {
		return models.UserSettings{}, fmt.Errorf("decode settings response: %w", err)
	}

	return settings, nil
}

func (h *httpServerAdapter) UpdateSettings(ctx context.Context, settings models.UserSettings) error {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(settings).
		Put("/api/settings")
	if err != nil {
		return fmt.Errorf("update settings request: %w", err)
	}

	return mapHTTPError(resp)
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}

func parseBearerToken(value string) (string, error) {
	parts := strings.Split(strings.TrimSpace(value), " ")
	if len(parts) != 2 || parts[1] == "" {
		return "", errors.New("invalid authorization header")
	}
	return parts[1], nil
}
