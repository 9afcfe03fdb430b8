// Mirador - Creator Feed Tracking and Preference-Ranked Digest
// Copyright 2026 T. Ovren (tovren)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tovren/mirador

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type itemResponse struct {
	ItemID       string            `json:"item_id"`
	Attributes   map[string]string `json:"attributes,omitempty"`
	HasEmbedding bool              `json:"has_embedding"`
	Dimensions   int               `json:"dimensions,omitempty"`
}

type scoreResponse struct {
	ItemID string  `json:"item_id"`
	Score  float64 `json:"score"`
}

// GetItem handles GET /api/v1/items/{itemID}.
func (h *Handlers) GetItem(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "itemID")

	attrs, hasAttrs, err := h.items.Attributes(itemID)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, ErrCodeInternalError, "item lookup failed", err)
		return
	}
	vec, hasVec, err := h.items.ItemVector(itemID)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, ErrCodeInternalError, "item lookup failed", err)
		return
	}
	if !hasAttrs && !hasVec {
		respondError(w, r, http.StatusNotFound, ErrCodeNotFound, "unknown item", nil)
		return
	}

	respondData(w, r, http.StatusOK, itemResponse{
		ItemID:       itemID,
		Attributes:   attrs,
		HasEmbedding: hasVec,
		Dimensions:   len(vec),
	})
}

// GetItemScore handles GET /api/v1/items/{itemID}/score. An item
// without stored attributes scores 0 rather than erroring; consumers
// treat unanalyzed content as neutral.
func (h *Handlers) GetItemScore(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "itemID")

	score, err := h.engine.Score(r.Context(), itemID)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, ErrCodeInternalError, "scoring failed", err)
		return
	}

	respondData(w, r, http.StatusOK, scoreResponse{ItemID: itemID, Score: score})
}

// PutItemAnalysis handles PUT /api/v1/items/{itemID}/analysis. The
// analyzer's push replaces the item's stored features wholesale;
// re-analysis overwrites, it never merges.
func (h *Handlers) PutItemAnalysis(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "itemID")

	var req AnalysisRequest
	if err := decodeRequest(r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, ErrCodeValidationFailed, err.Error(), nil)
		return
	}

	if err := h.items.PutItem(itemID, req.Attributes, req.Embedding); err != nil {
		respondError(w, r, http.StatusInternalServerError, ErrCodeInternalError, "storing analysis failed", err)
		return
	}

	respondData(w, r, http.StatusOK, itemResponse{
		ItemID:       itemID,
		Attributes:   req.Attributes,
		HasEmbedding: len(req.Embedding) > 0,
		Dimensions:   len(req.Embedding),
	})
}
