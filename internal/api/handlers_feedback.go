// Mirador - Creator Feed Tracking and Preference-Ranked Digest
// Copyright 2026 T. Ovren (tovren)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tovren/mirador

package api

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/tovren/mirador/internal/prefs"
)

// Feedback handles POST /api/v1/feedback. The processing outcome,
// including ok=false for items without stored features, is returned in
// the body with status 200; 5xx is reserved for storage failures.
func (h *Handlers) Feedback(w http.ResponseWriter, r *http.Request) {
	var req FeedbackRequest
	if err := decodeRequest(r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, ErrCodeValidationFailed, err.Error(), nil)
		return
	}

	ev, err := toEvent(req)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, ErrCodeValidationFailed, err.Error(), nil)
		return
	}

	res, err := h.processor.ProcessFeedback(r.Context(), ev)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, ErrCodeInternalError, "feedback processing failed", err)
		return
	}

	respondData(w, r, http.StatusOK, feedbackResponse{Result: res, EventID: ev.EventID})
}

// FeedbackBatch handles POST /api/v1/feedback/batch. Events are
// processed strictly in order; per-event outcomes are reported
// individually and one failure does not abort the batch.
func (h *Handlers) FeedbackBatch(w http.ResponseWriter, r *http.Request) {
	var req BatchFeedbackRequest
	if err := decodeRequest(r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, ErrCodeValidationFailed, err.Error(), nil)
		return
	}
	if len(req.Events) > h.cfg.MaxBatchSize {
		respondError(w, r, http.StatusBadRequest, ErrCodeValidationFailed,
			fmt.Sprintf("batch exceeds %d events", h.cfg.MaxBatchSize), nil)
		return
	}

	events := make([]prefs.Event, 0, len(req.Events))
	for _, fr := range req.Events {
		ev, err := toEvent(fr)
		if err != nil {
			respondError(w, r, http.StatusBadRequest, ErrCodeValidationFailed, err.Error(), nil)
			return
		}
		events = append(events, ev)
	}

	results := h.processor.ProcessBatch(r.Context(), events)
	respondData(w, r, http.StatusOK, batchResponse{Results: results})
}

type feedbackResponse struct {
	prefs.Result
	EventID string `json:"event_id"`
}

type batchResponse struct {
	Results []prefs.Result `json:"results"`
}

// toEvent converts a validated request to a feedback event, minting an
// event ID when the client supplied none.
func toEvent(req FeedbackRequest) (prefs.Event, error) {
	ft, err := prefs.ParseFeedbackType(req.Type)
	if err != nil {
		return prefs.Event{}, err
	}
	eventID := req.EventID
	if eventID == "" {
		eventID = uuid.NewString()
	}
	return prefs.Event{ItemID: req.ItemID, Type: ft, EventID: eventID}, nil
}
