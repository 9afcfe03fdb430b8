// Mirador - Creator Feed Tracking and Preference-Ranked Digest
// Copyright 2026 T. Ovren (tovren)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tovren/mirador

package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordFeedbackIncrementsCounter(t *testing.T) {
	before := testutil.ToFloat64(FeedbackEventsTotal.WithLabelValues("like", "processed"))
	RecordFeedback("like", "processed", 5*time.Millisecond)
	after := testutil.ToFloat64(FeedbackEventsTotal.WithLabelValues("like", "processed"))
	if after != before+1 {
		t.Errorf("counter = %v, want %v", after, before+1)
	}
}

func TestRecordStoreOpCountsErrors(t *testing.T) {
	before := testutil.ToFloat64(StoreOperationErrors.WithLabelValues("upsert"))
	RecordStoreOp("upsert", time.Millisecond, errors.New("txn conflict"))
	RecordStoreOp("upsert", time.Millisecond, nil)
	after := testutil.ToFloat64(StoreOperationErrors.WithLabelValues("upsert"))
	if after != before+1 {
		t.Errorf("error counter = %v, want %v (nil error must not count)", after, before+1)
	}
}

func TestRecordDigestBuildSetsLastSuccess(t *testing.T) {
	RecordDigestBuild("success", time.Second)
	ts := testutil.ToFloat64(DigestLastSuccess)
	if ts == 0 {
		t.Error("last success timestamp not set")
	}

	RecordDigestBuild("error", time.Second)
	if got := testutil.ToFloat64(DigestLastSuccess); got != ts {
		t.Errorf("error outcome changed last success timestamp: %v -> %v", ts, got)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	base := testutil.ToFloat64(APIActiveRequests)
	TrackActiveRequest(true)
	TrackActiveRequest(true)
	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != base+1 {
		t.Errorf("active requests = %v, want %v", got, base+1)
	}
	TrackActiveRequest(false)
}
