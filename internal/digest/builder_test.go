// Mirador - Creator Feed Tracking and Preference-Ranked Digest
// Copyright 2026 T. Ovren (tovren)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tovren/mirador

package digest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tovren/mirador/internal/prefs"
)

// fakeSource is a canned ItemSource and Ranker for builder tests. Rank
// returns items in the order given by scores, already sorted.
type fakeSource struct {
	ids     []string
	attrs   map[string]map[string]string
	ranked  []prefs.ScoredItem
	idsErr  error
	rankErr error
}

func (f *fakeSource) ItemIDs(context.Context) ([]string, error) {
	return f.ids, f.idsErr
}

func (f *fakeSource) Attributes(itemID string) (map[string]string, bool, error) {
	m, ok := f.attrs[itemID]
	return m, ok, nil
}

func (f *fakeSource) Rank(context.Context, []string) ([]prefs.ScoredItem, error) {
	return f.ranked, f.rankErr
}

func TestBuildTopN(t *testing.T) {
	src := &fakeSource{
		ids: []string{"a", "b", "c", "d"},
		attrs: map[string]map[string]string{
			"a": {"scene_type": "indoor"},
			"b": {"scene_type": "outdoor"},
		},
		ranked: []prefs.ScoredItem{
			{ItemID: "a", Score: 9},
			{ItemID: "b", Score: 7},
			{ItemID: "c", Score: 3},
			{ItemID: "d", Score: 1},
		},
	}

	b := NewBuilder(2, src, src)
	at := time.Date(2026, 8, 29, 8, 0, 0, 0, time.UTC)
	d, err := b.Build(context.Background(), at)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if d.Candidates != 4 {
		t.Errorf("candidates = %d, want 4", d.Candidates)
	}
	if len(d.Items) != 2 {
		t.Fatalf("got %d items, want top 2", len(d.Items))
	}
	if d.Items[0].ItemID != "a" || d.Items[1].ItemID != "b" {
		t.Errorf("order = %s,%s, want a,b", d.Items[0].ItemID, d.Items[1].ItemID)
	}
	if d.Items[0].Attributes["scene_type"] != "indoor" {
		t.Errorf("attributes not attached: %v", d.Items[0].Attributes)
	}
	if !d.GeneratedAt.Equal(at) {
		t.Errorf("generated_at = %v, want %v", d.GeneratedAt, at)
	}
}

func TestBuildEmptyPopulation(t *testing.T) {
	b := NewBuilder(20, &fakeSource{}, &fakeSource{})
	d, err := b.Build(context.Background(), time.Now())
	if err != nil {
		t.Fatalf("empty population must not error: %v", err)
	}
	if len(d.Items) != 0 || d.Candidates != 0 {
		t.Errorf("digest = %+v, want empty", d)
	}
}

func TestBuildFewerItemsThanTopN(t *testing.T) {
	src := &fakeSource{
		ids:    []string{"a"},
		ranked: []prefs.ScoredItem{{ItemID: "a", Score: 1}},
		attrs:  map[string]map[string]string{},
	}
	b := NewBuilder(20, src, src)
	d, err := b.Build(context.Background(), time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if len(d.Items) != 1 {
		t.Errorf("got %d items, want 1", len(d.Items))
	}
}

func TestBuildPropagatesErrors(t *testing.T) {
	boom := errors.New("boom")

	src := &fakeSource{idsErr: boom}
	if _, err := NewBuilder(5, src, src).Build(context.Background(), time.Now()); !errors.Is(err, boom) {
		t.Errorf("ItemIDs error not propagated: %v", err)
	}

	src = &fakeSource{ids: []string{"a"}, rankErr: boom}
	if _, err := NewBuilder(5, src, src).Build(context.Background(), time.Now()); !errors.Is(err, boom) {
		t.Errorf("Rank error not propagated: %v", err)
	}
}

func TestSchedulerRunNow(t *testing.T) {
	src := &fakeSource{
		ids:    []string{"a"},
		ranked: []prefs.ScoredItem{{ItemID: "a", Score: 5}},
		attrs:  map[string]map[string]string{},
	}
	b := NewBuilder(5, src, src)

	s, err := NewScheduler("0 8 * * *", b, NewLogDeliverer())
	if err != nil {
		t.Fatalf("NewScheduler: %v", err)
	}
	if err := s.RunNow(context.Background()); err != nil {
		t.Errorf("RunNow: %v", err)
	}
}

func TestNewSchedulerRejectsBadSpec(t *testing.T) {
	if _, err := NewScheduler("not a cron spec", nil, nil); err == nil {
		t.Error("expected parse error")
	}
}
