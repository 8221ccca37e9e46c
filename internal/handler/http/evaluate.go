package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/sweebapp/sweebguard/internal/engine"
	"github.com/sweebapp/sweebguard/internal/logger"
	"github.com/sweebapp/sweebguard/internal/service"
	"github.com/sweebapp/sweebguard/models"
)

// evaluate resolves one observed request against the caller's rules.
//
// The decision is always delivered when evaluation itself succeeded, even
// if recording the threat event failed: a buffered or failed recording is
// reported in the response body, not by withholding the decision.
func (h *Handler) evaluate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := userIDFromRequest(w, r)
	if !ok {
		return
	}

	var req models.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	decision, err := h.services.PolicyService.EvaluateRequest(ctx, userID, req)
	if err != nil && !decisionStands(err) {
		log.Err(err).Msg("evaluation failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	resp := models.EvaluateResponse{Decision: decision}
	if err != nil {
		log.Err(err).Msg("decision delivered with recording or rule defect signal")
		resp.Buffered = errors.Is(err, service.ErrEventBuffered)
	}

	writeJSON(w, r, http.StatusOK, resp)
}

// decisionStands reports whether err still comes with an authoritative
// decision: recording failures and fail-closed defects do, rule-loading
// failures do not.
func decisionStands(err error) bool {
	return errors.Is(err, service.ErrEventBuffered) ||
		errors.Is(err, service.ErrRecordingFailed) ||
		errors.Is(err, engine.ErrEvaluationDefect)
}

func (h *Handler) listEvents(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	if _, ok := userIDFromRequest(w, r); !ok {
		return
	}

	deviceID, err := strconv.ParseInt(r.URL.Query().Get("device_id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid device id", http.StatusBadRequest)
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	events, err := h.services.EventRecorder.ListEvents(ctx, deviceID, limit)
	if err != nil {
		log.Err(err).Msg("error listing threat events")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	if events == nil {
		events = []models.ThreatEvent{}
	}

	writeJSON(w, r, http.StatusOK, events)
}
