package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/sweebapp/sweebguard/internal/logger"
	"github.com/sweebapp/sweebguard/internal/store"
	"github.com/sweebapp/sweebguard/models"
)

func (h *Handler) createRule(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := userIDFromRequest(w, r)
	if !ok {
		return
	}

	var req models.CreateRuleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	rule, err := h.services.RuleService.CreateRule(ctx, userID, req)
	if err != nil {
		if isRuleValidationError(err) {
			log.Err(err).Msg("rule validation failed")
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Err(err).Msg("unexpected error occurred during rule creation")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	writeJSON(w, r, http.StatusCreated, rule)
}

func (h *Handler) listRules(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := userIDFromRequest(w, r)
	if !ok {
		return
	}

	rules, err := h.services.RuleService.ListRules(ctx, userID)
	if err != nil {
		log.Err(err).Msg("error listing rules")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	if rules == nil {
		rules = []models.Rule{}
	}

	writeJSON(w, r, http.StatusOK, rules)
}

func (h *Handler) getRule(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := userIDFromRequest(w, r)
	if !ok {
		return
	}

	ruleID, err := ruleIDFromURL(r)
	if err != nil {
		http.Error(w, "invalid rule id", http.StatusBadRequest)
		return
	}

	rule, err := h.services.RuleService.GetRule(ctx, userID, ruleID)
	if err != nil {
		if errors.Is(err, store.ErrRuleNotFound) {
			http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
			return
		}
		log.Err(err).Msg("error getting rule")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	writeJSON(w, r, http.StatusOK, rule)
}

func (h *Handler) updateRule(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := userIDFromRequest(w, r)
	if !ok {
		return
	}

	ruleID, err := ruleIDFromURL(r)
	if err != nil {
		http.Error(w, "invalid rule id", http.StatusBadRequest)
		return
	}

	var update models.RuleUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}
	update.ID = ruleID
	update.UserID = userID

	rule, err := h.services.RuleService.UpdateRule(ctx, update)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrRuleNotFound):
			http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
			return
		case isRuleValidationError(err):
			log.Err(err).Msg("rule update validation failed")
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during rule update")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	writeJSON(w, r, http.StatusOK, rule)
}

func (h *Handler) deleteRule(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := userIDFromRequest(w, r)
	if !ok {
		return
	}

	ruleID, err := ruleIDFromURL(r)
	if err != nil {
		http.Error(w, "invalid rule id", http.StatusBadRequest)
		return
	}

	if err := h.services.RuleService.DeleteRule(ctx, userID, ruleID); err != nil {
		if errors.Is(err, store.ErrRuleNotFound) {
			http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
			return
		}
		log.Err(err).Msg("unexpected error occurred during rule deletion")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func ruleIDFromURL(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "ruleID"), 10, 64)
}

func isRuleValidationError(err error) bool {
	return errors.Is(err, models.ErrInvalidRuleName) ||
		errors.Is(err, models.ErrInvalidAction) ||
		errors.Is(err, models.ErrInvalidMatchType) ||
		errors.Is(err, models.ErrEmptyPattern) ||
		errors.Is(err, models.ErrInvalidPattern)
}
