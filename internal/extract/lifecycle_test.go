package extract

import (
	"testing"

	"github.com/faros-ai/synclog/internal/model"
)

func TestLifecycle_SyncSummary(t *testing.T) {
	log := `2024-03-01 10:00:00 INFO >> ATTEMPT 1/3
2024-03-01 10:00:01 INFO Starting replication
2024-03-01 10:05:00 INFO Sync summary: {"status": "completed", "totalStats": {"replicationStartTime": 1709287200000, "replicationEndTime": 1709287500000}}`

	res := apply(t, Lifecycle{}, log)

	if res.Attempt != "1/3" {
		t.Fatalf("expected attempt 1/3, got %q", res.Attempt)
	}
	if res.Sync.Status != model.StatusSucceeded {
		t.Fatalf("expected status succeeded, got %q", res.Sync.Status)
	}
	if res.Sync.Start != "2024-03-01T10:00:00Z" {
		t.Fatalf("expected start 2024-03-01T10:00:00Z, got %q", res.Sync.Start)
	}
	if res.Sync.End != "2024-03-01T10:05:00Z" {
		t.Fatalf("expected end 2024-03-01T10:05:00Z, got %q", res.Sync.End)
	}
	if res.Sync.DurationSeconds == nil || *res.Sync.DurationSeconds != 300 {
		t.Fatalf("expected duration 300s, got %v", res.Sync.DurationSeconds)
	}
}

func TestLifecycle_LatestTerminalStatusWins(t *testing.T) {
	log := `2024-03-01 10:00:00 INFO Sync summary: {"status": "running"}
2024-03-01 10:01:00 INFO Sync summary: {"status": "completed"}
2024-03-01 10:02:00 INFO Sync summary: {"status": "failed"}`

	res := apply(t, Lifecycle{}, log)
	if res.Sync.Status != model.StatusFailed {
		t.Fatalf("expected latest terminal status failed, got %q", res.Sync.Status)
	}
}

func TestLifecycle_IntermediateRunningNeverWins(t *testing.T) {
	log := `2024-03-01 10:00:00 INFO Sync summary: {"status": "completed"}
2024-03-01 10:01:00 INFO Sync summary: {"status": "running"}`

	res := apply(t, Lifecycle{}, log)
	if res.Sync.Status != model.StatusSucceeded {
		t.Fatalf("expected succeeded to survive a later running state, got %q", res.Sync.Status)
	}
}

func TestLifecycle_TimestampFallback(t *testing.T) {
	log := `2024-03-01 10:00:00 INFO Starting source
2024-03-01 10:00:05 INFO reading streams
2024-03-01 10:02:30 INFO done`

	res := apply(t, Lifecycle{}, log)

	if res.Sync.Status != model.StatusUnknown {
		t.Fatalf("expected unknown status without a summary, got %q", res.Sync.Status)
	}
	if res.Sync.Start != "2024-03-01T10:00:00Z" {
		t.Fatalf("expected first line timestamp as start, got %q", res.Sync.Start)
	}
	if res.Sync.End != "2024-03-01T10:02:30Z" {
		t.Fatalf("expected last line timestamp as end, got %q", res.Sync.End)
	}
	if res.Sync.DurationSeconds == nil || *res.Sync.DurationSeconds != 150 {
		t.Fatalf("expected duration 150s, got %v", res.Sync.DurationSeconds)
	}
}

func TestLifecycle_EmptyLog(t *testing.T) {
	res := apply(t, Lifecycle{}, "no timestamps here")

	if res.Sync.Start != model.Unknown || res.Sync.End != model.Unknown {
		t.Fatalf("expected unknown endpoints, got start=%q end=%q", res.Sync.Start, res.Sync.End)
	}
	if res.Sync.DurationSeconds != nil {
		t.Fatalf("expected null duration, got %v", *res.Sync.DurationSeconds)
	}
	if res.Attempt != model.Unknown {
		t.Fatalf("expected unknown attempt, got %q", res.Attempt)
	}
}
