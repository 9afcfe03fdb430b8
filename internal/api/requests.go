// Mirador - Creator Feed Tracking and Preference-Ranked Digest
// Copyright 2026 T. Ovren (tovren)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tovren/mirador

package api

import (
	"fmt"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
)

// maxBodyBytes caps request bodies; embeddings are a few KB, batches a
// few hundred KB.
const maxBodyBytes = 4 << 20

var validate = validator.New()

// FeedbackRequest is one feedback submission.
type FeedbackRequest struct {
	ItemID string `json:"item_id" validate:"required"`
	Type   string `json:"type" validate:"required,oneof=like dislike"`

	// EventID is optional; resubmitting the same ID is recognized as a
	// replay and changes nothing. The server mints one when absent.
	EventID string `json:"event_id,omitempty"`
}

// BatchFeedbackRequest is an ordered sequence of feedback submissions.
type BatchFeedbackRequest struct {
	Events []FeedbackRequest `json:"events" validate:"required,min=1,dive"`
}

// AnalysisRequest is the external analyzer's push of one item's
// extracted features. Attributes replace any stored mapping wholesale.
type AnalysisRequest struct {
	Attributes map[string]string `json:"attributes" validate:"required,min=1"`
	Embedding  []float64         `json:"embedding,omitempty"`
}

// decodeRequest reads, parses and validates a JSON request body.
func decodeRequest(r *http.Request, dst interface{}) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("parse body: %w", err)
	}
	if err := validate.Struct(dst); err != nil {
		return fmt.Errorf("validate body: %w", err)
	}
	return nil
}
