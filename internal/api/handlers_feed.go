// Mirador - Creator Feed Tracking and Preference-Ranked Digest
// Copyright 2026 T. Ovren (tovren)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tovren/mirador

package api

import (
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/tovren/mirador/internal/prefs"
)

type feedResponse struct {
	Items []prefs.ScoredItem `json:"items"`
	Total int                `json:"total"`
}

// Feed handles GET /api/v1/feed?limit=. The full item population is
// ranked and the top page returned.
func (h *Handlers) Feed(w http.ResponseWriter, r *http.Request) {
	limit := h.cfg.MaxFeedItems
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			respondError(w, r, http.StatusBadRequest, ErrCodeBadRequest, "limit must be a positive integer", nil)
			return
		}
		if n < limit {
			limit = n
		}
	}

	ids, err := h.items.ItemIDs(r.Context())
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, ErrCodeInternalError, "item enumeration failed", err)
		return
	}

	ranked, err := h.engine.Rank(r.Context(), ids)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, ErrCodeInternalError, "ranking failed", err)
		return
	}

	total := len(ranked)
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	respondData(w, r, http.StatusOK, feedResponse{Items: ranked, Total: total})
}

type preferencesResponse struct {
	Entries []prefs.Entry `json:"entries"`
}

// Preferences handles GET /api/v1/preferences, returning every learned
// attribute entry sorted by key then value for stable output.
func (h *Handlers) Preferences(w http.ResponseWriter, r *http.Request) {
	entries, err := h.model.Entries()
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, ErrCodeInternalError, "preference scan failed", err)
		return
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Key != entries[j].Key {
			return entries[i].Key < entries[j].Key
		}
		return entries[i].Value < entries[j].Value
	})
	respondData(w, r, http.StatusOK, preferencesResponse{Entries: entries})
}

// DigestPreview handles GET /api/v1/digest/preview, building a digest
// on demand without delivering it.
func (h *Handlers) DigestPreview(w http.ResponseWriter, r *http.Request) {
	d, err := h.builder.Build(r.Context(), time.Now())
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, ErrCodeInternalError, "digest build failed", err)
		return
	}
	respondData(w, r, http.StatusOK, d)
}

type healthResponse struct {
	Status string `json:"status"`
}

// Healthz handles GET /healthz.
func (h *Handlers) Healthz(w http.ResponseWriter, r *http.Request) {
	respondData(w, r, http.StatusOK, healthResponse{Status: "ok"})
}
