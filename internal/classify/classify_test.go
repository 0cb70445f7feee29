package classify

import (
	"strings"
	"testing"
	"time"

	"github.com/faros-ai/synclog/internal/model"
)

func toRaw(log string) []model.RawLine {
	var raws []model.RawLine
	for i, text := range strings.Split(log, "\n") {
		raws = append(raws, model.RawLine{Number: i + 1, Text: text})
	}
	return raws
}

func TestLines_PrefixParsing(t *testing.T) {
	out := Lines(toRaw("2024-03-01 10:00:00 INFO starting sync"))

	if len(out) != 1 {
		t.Fatalf("expected 1 line, got %d", len(out))
	}
	cl := out[0]
	if cl.Kind != model.Plain {
		t.Fatalf("expected plain, got %v", cl.Kind)
	}
	want := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	if !cl.Timestamp.Equal(want) {
		t.Fatalf("expected timestamp %v, got %v", want, cl.Timestamp)
	}
	if cl.Level != "info" {
		t.Fatalf("expected level info, got %q", cl.Level)
	}
	if cl.Message != "starting sync" {
		t.Fatalf("expected message without prefix, got %q", cl.Message)
	}
}

func TestLines_NoPrefix(t *testing.T) {
	out := Lines(toRaw("plain line without timestamp"))

	cl := out[0]
	if !cl.Timestamp.IsZero() || cl.Level != "" {
		t.Fatalf("expected no prefix fields, got ts=%v level=%q", cl.Timestamp, cl.Level)
	}
	if cl.Message != "plain line without timestamp" {
		t.Fatalf("unexpected message %q", cl.Message)
	}
}

func TestLines_EmbeddedJSON(t *testing.T) {
	out := Lines(toRaw(`2024-03-01 10:00:00 INFO Config: {"url": "https://example.com", "page_size": 10}`))

	cl := out[0]
	if cl.Kind != model.Structured {
		t.Fatalf("expected structured, got %v", cl.Kind)
	}
	if cl.Payload["url"] != "https://example.com" {
		t.Fatalf("expected decoded payload, got %v", cl.Payload)
	}
	if !strings.HasPrefix(cl.Message, "Config:") {
		t.Fatalf("expected message to keep marker text, got %q", cl.Message)
	}
}

func TestLines_TrailingProseAfterJSON(t *testing.T) {
	out := Lines(toRaw(`2024-03-01 10:00:00 INFO wrote batch {"model": "vcs_Commit", "count": 5} in 120ms`))

	cl := out[0]
	if cl.Kind != model.Structured {
		t.Fatalf("expected structured despite trailing prose, got %v", cl.Kind)
	}
	if cl.Payload["model"] != "vcs_Commit" {
		t.Fatalf("unexpected payload %v", cl.Payload)
	}
}

func TestLines_WholeLineJSON(t *testing.T) {
	out := Lines(toRaw(`{"type": "RECORD", "record": {"stream": "users", "data": {"id": 1}}}`))

	cl := out[0]
	if cl.Kind != model.Structured {
		t.Fatalf("expected structured, got %v", cl.Kind)
	}
	if cl.Payload["type"] != "RECORD" {
		t.Fatalf("unexpected payload %v", cl.Payload)
	}
}

func TestLines_TruncatedJSONIsMalformed(t *testing.T) {
	out := Lines(toRaw(`{"type": "RECORD", "record": {"stream": "users"`))

	if out[0].Kind != model.Malformed {
		t.Fatalf("expected malformed, got %v", out[0].Kind)
	}
	if out[0].Payload != nil {
		t.Fatalf("expected no payload, got %v", out[0].Payload)
	}
}

func TestLines_BracelessProtocolTokenIsMalformed(t *testing.T) {
	out := Lines(toRaw(`"type": "RECORD", "record": tail of a split line`))

	if out[0].Kind != model.Malformed {
		t.Fatalf("expected malformed for truncated protocol text, got %v", out[0].Kind)
	}
}

func TestLines_ErrorProseStaysPlain(t *testing.T) {
	out := Lines(toRaw("2024-03-01 10:00:00 ERROR connection refused"))

	if out[0].Kind != model.Plain {
		t.Fatalf("expected plain error line, got %v", out[0].Kind)
	}
	if out[0].Level != "error" {
		t.Fatalf("expected error level, got %q", out[0].Level)
	}
}

func TestLines_MultiLineSyncSummary(t *testing.T) {
	log := `2024-03-01 10:05:00 INFO Sync summary: {
2024-03-01 10:05:00 INFO   "status": "completed",
2024-03-01 10:05:00 INFO   "totalStats": {
2024-03-01 10:05:00 INFO     "recordsEmitted": 175
2024-03-01 10:05:00 INFO   }
2024-03-01 10:05:00 INFO }
2024-03-01 10:05:01 INFO after summary`

	out := Lines(toRaw(log))

	if len(out) != 2 {
		t.Fatalf("expected summary to collapse into one line, got %d lines", len(out))
	}
	cl := out[0]
	if cl.Kind != model.Structured {
		t.Fatalf("expected structured summary, got %v", cl.Kind)
	}
	if cl.Payload["status"] != "completed" {
		t.Fatalf("unexpected payload %v", cl.Payload)
	}
	stats, ok := cl.Payload["totalStats"].(map[string]any)
	if !ok || stats["recordsEmitted"] != float64(175) {
		t.Fatalf("expected nested totalStats, got %v", cl.Payload["totalStats"])
	}
	if out[1].Message != "after summary" {
		t.Fatalf("expected following line preserved, got %q", out[1].Message)
	}
}

func TestLines_SingleLineSyncSummary(t *testing.T) {
	out := Lines(toRaw(`2024-03-01 10:05:00 INFO Sync summary: {"status": "failed"}`))

	if len(out) != 1 || out[0].Kind != model.Structured {
		t.Fatalf("expected one structured line, got %+v", out)
	}
	if out[0].Payload["status"] != "failed" {
		t.Fatalf("unexpected payload %v", out[0].Payload)
	}
}

func TestLines_UnterminatedSummaryIsMalformed(t *testing.T) {
	log := `2024-03-01 10:05:00 INFO Sync summary: {
2024-03-01 10:05:00 INFO   "status": "completed",`

	out := Lines(toRaw(log))

	if len(out) != 1 {
		t.Fatalf("expected collapsed fragment, got %d lines", len(out))
	}
	if out[0].Kind != model.Malformed {
		t.Fatalf("expected malformed unterminated summary, got %v", out[0].Kind)
	}
}

func TestLines_OneBadLineDoesNotAffectOthers(t *testing.T) {
	log := `2024-03-01 10:00:00 INFO Config: {"url": "https://example.com"}
{"type": "RECORD", "record": {"stream"
2024-03-01 10:00:02 INFO Finished syncing users stream. Read 5 records`

	out := Lines(toRaw(log))

	if out[0].Kind != model.Structured {
		t.Fatalf("expected first line structured, got %v", out[0].Kind)
	}
	if out[1].Kind != model.Malformed {
		t.Fatalf("expected second line malformed, got %v", out[1].Kind)
	}
	if out[2].Kind != model.Plain {
		t.Fatalf("expected third line plain, got %v", out[2].Kind)
	}
}
