// Mirador - Creator Feed Tracking and Preference-Ranked Digest
// Copyright 2026 T. Ovren (tovren)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tovren/mirador

package prefs

import (
	"math"
	"sync"
	"testing"
)

const floatTol = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < floatTol
}

func TestRecordFeedbackRunningMean(t *testing.T) {
	tests := []struct {
		name        string
		weights     []float64
		wantScore   float64
		wantSamples int
	}{
		{"single like", []float64{1}, 1.0, 1},
		{"like then dislike", []float64{1, -1}, 0.0, 2},
		{"three likes one dislike", []float64{1, 1, 1, -1}, 0.5, 4},
		{"custom weights", []float64{2, 0.5, -1.5}, (2 + 0.5 - 1.5) / 3, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model := NewModel(newMemStore())
			for _, w := range tt.weights {
				if err := model.RecordFeedback(map[string]string{"scene_type": "indoor"}, w); err != nil {
					t.Fatalf("RecordFeedback: %v", err)
				}
			}

			score, samples, ok, err := model.AttributeScore("scene_type", "indoor")
			if err != nil {
				t.Fatalf("AttributeScore: %v", err)
			}
			if !ok {
				t.Fatal("entry should exist")
			}
			if !almostEqual(score, tt.wantScore) {
				t.Errorf("score = %v, want %v", score, tt.wantScore)
			}
			if samples != tt.wantSamples {
				t.Errorf("samples = %d, want %d", samples, tt.wantSamples)
			}
		})
	}
}

func TestRecordFeedbackTouchesOnlyGivenPairs(t *testing.T) {
	model := NewModel(newMemStore())

	if err := model.RecordFeedback(map[string]string{"scene_type": "indoor", "tag_cat": "cat"}, 1); err != nil {
		t.Fatal(err)
	}
	if err := model.RecordFeedback(map[string]string{"scene_type": "indoor"}, -1); err != nil {
		t.Fatal(err)
	}

	score, samples, ok, _ := model.AttributeScore("tag_cat", "cat")
	if !ok || score != 1.0 || samples != 1 {
		t.Errorf("untouched pair changed: score=%v samples=%d ok=%v", score, samples, ok)
	}
	score, samples, ok, _ = model.AttributeScore("scene_type", "indoor")
	if !ok || !almostEqual(score, 0.0) || samples != 2 {
		t.Errorf("updated pair: score=%v samples=%d ok=%v, want 0.0/2", score, samples, ok)
	}
}

func TestAttributeScoreAbsent(t *testing.T) {
	model := NewModel(newMemStore())
	_, _, ok, err := model.AttributeScore("scene_type", "outdoor")
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("unobserved pair should report ok=false")
	}
}

func TestMatchScore(t *testing.T) {
	store := newMemStore()
	model := NewModel(store)

	// scene_type=indoor: score 1.0, 3 samples; tag_cat=cat: score 0.5, 1 sample;
	// style_dark: score -1.0 (must not contribute).
	for i := 0; i < 3; i++ {
		if err := model.RecordFeedback(map[string]string{"scene_type": "indoor"}, 1); err != nil {
			t.Fatal(err)
		}
	}
	if err := model.RecordFeedback(map[string]string{"tag_cat": "cat"}, 0.5); err != nil {
		t.Fatal(err)
	}
	if err := model.RecordFeedback(map[string]string{"style_dark": "dark"}, -1); err != nil {
		t.Fatal(err)
	}

	indoor := 1.0 * math.Log(4)
	cat := 0.5 * math.Log(2)

	tests := []struct {
		name  string
		attrs map[string]string
		want  float64
	}{
		{
			name:  "single positive match",
			attrs: map[string]string{"scene_type": "indoor"},
			want:  indoor,
		},
		{
			name:  "mean of two matches",
			attrs: map[string]string{"scene_type": "indoor", "tag_cat": "cat"},
			want:  (indoor + cat) / 2,
		},
		{
			name:  "negative entry excluded",
			attrs: map[string]string{"scene_type": "indoor", "style_dark": "dark"},
			want:  indoor,
		},
		{
			name:  "unknown pair does not change result",
			attrs: map[string]string{"scene_type": "indoor", "tag_dog": "dog"},
			want:  indoor,
		},
		{
			name:  "no matches",
			attrs: map[string]string{"tag_dog": "dog"},
			want:  0,
		},
		{
			name:  "only negative matches",
			attrs: map[string]string{"style_dark": "dark"},
			want:  0,
		},
		{
			name:  "empty attributes",
			attrs: map[string]string{},
			want:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := model.MatchScore(tt.attrs)
			if err != nil {
				t.Fatalf("MatchScore: %v", err)
			}
			if !almostEqual(got, tt.want) {
				t.Errorf("MatchScore = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMatchScoreZeroScoreExcluded(t *testing.T) {
	model := NewModel(newMemStore())

	// One like then one dislike leaves the score at exactly 0, which is
	// not > 0 and must not contribute.
	if err := model.RecordFeedback(map[string]string{"scene_type": "indoor"}, 1); err != nil {
		t.Fatal(err)
	}
	if err := model.RecordFeedback(map[string]string{"scene_type": "indoor"}, -1); err != nil {
		t.Fatal(err)
	}

	got, err := model.MatchScore(map[string]string{"scene_type": "indoor"})
	if err != nil {
		t.Fatal(err)
	}
	if got != 0 {
		t.Errorf("MatchScore = %v, want 0 for zero-score entry", got)
	}
}

func TestRecordFeedbackConcurrentSamePair(t *testing.T) {
	model := NewModel(newMemStore())

	const workers = 8
	const perWorker = 25

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				if err := model.RecordFeedback(map[string]string{"scene_type": "indoor"}, 1); err != nil {
					t.Errorf("RecordFeedback: %v", err)
					return
				}
			}
		}()
	}
	wg.Wait()

	score, samples, ok, err := model.AttributeScore("scene_type", "indoor")
	if err != nil || !ok {
		t.Fatalf("AttributeScore: ok=%v err=%v", ok, err)
	}
	if samples != workers*perWorker {
		t.Errorf("samples = %d, want %d (lost update)", samples, workers*perWorker)
	}
	if !almostEqual(score, 1.0) {
		t.Errorf("score = %v, want 1.0", score)
	}
}

func TestRecordFeedbackPropagatesStorageError(t *testing.T) {
	store := newMemStore()
	store.failOps["put_preference"] = true
	model := NewModel(store)

	if err := model.RecordFeedback(map[string]string{"scene_type": "indoor"}, 1); err == nil {
		t.Error("expected storage error to propagate")
	}
}
