package extract

import (
	"regexp"
	"strings"
	"time"

	"github.com/faros-ai/synclog/internal/model"
)

var (
	attemptRe     = regexp.MustCompile(`^>> ATTEMPT (\d+/\d+)`)
	syncSummaryRe = regexp.MustCompile(`[Ss]ync summary:`)
)

// Lifecycle extracts sync status, timing, and the attempt marker. Status and
// replication times come from the sync summary payload; when the log carries
// none, start/end fall back to the first and last line timestamps.
type Lifecycle struct{}

func (Lifecycle) Name() string { return "lifecycle" }

func (Lifecycle) Extract(lines []model.ClassifiedLine) Fragment {
	frag := &lifecycleFragment{}
	for _, cl := range lines {
		if cl.Kind == model.Malformed {
			continue
		}
		if m := attemptRe.FindStringSubmatch(cl.Message); m != nil {
			frag.attempt = m[1]
			continue
		}
		if !cl.Timestamp.IsZero() {
			if frag.firstSeen.IsZero() {
				frag.firstSeen = cl.Timestamp
			}
			frag.lastSeen = cl.Timestamp
		}
		if cl.Kind == model.Structured && syncSummaryRe.MatchString(cl.Message) {
			frag.readSummary(cl.Payload)
		}
	}
	return frag
}

type lifecycleFragment struct {
	attempt   string
	status    string // terminal status, already normalized
	start     time.Time
	end       time.Time
	firstSeen time.Time
	lastSeen  time.Time
}

// readSummary pulls status and replication times out of one sync summary.
// Syncs emit intermediate summaries while running, so a later terminal
// status always overwrites an earlier one.
func (f *lifecycleFragment) readSummary(payload map[string]any) {
	if raw, ok := payloadString(payload, "status"); ok {
		if status := normalizeStatus(raw); status != model.StatusUnknown {
			f.status = status
		}
	}
	stats, ok := payloadMap(payload, "totalStats")
	if !ok {
		return
	}
	if ms, ok := asInt64(stats["replicationStartTime"]); ok {
		f.start = time.UnixMilli(ms).UTC()
	}
	if ms, ok := asInt64(stats["replicationEndTime"]); ok {
		f.end = time.UnixMilli(ms).UTC()
	}
}

func (f *lifecycleFragment) Apply(res *model.SyncResult) {
	if f.attempt != "" {
		res.Attempt = f.attempt
	}
	if f.status != "" {
		res.Sync.Status = f.status
	}

	start, end := f.start, f.end
	if start.IsZero() {
		start = f.firstSeen
	}
	if end.IsZero() {
		end = f.lastSeen
	}
	if !start.IsZero() {
		res.Sync.Start = start.Format(time.RFC3339)
	}
	if !end.IsZero() {
		res.Sync.End = end.Format(time.RFC3339)
	}
	if !start.IsZero() && !end.IsZero() {
		secs := int64(end.Sub(start).Round(time.Second) / time.Second)
		res.Sync.DurationSeconds = &secs
	}
}

// normalizeStatus maps connector status spellings onto the result enum.
// Non-terminal states ("running") map to unknown so they never win.
func normalizeStatus(raw string) string {
	switch strings.ToLower(raw) {
	case "completed", "complete", "succeeded", "success":
		return model.StatusSucceeded
	case "failed", "failure", "error", "cancelled", "canceled":
		return model.StatusFailed
	default:
		return model.StatusUnknown
	}
}
