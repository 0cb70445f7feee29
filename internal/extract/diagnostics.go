package extract

import (
	"strings"
	"time"

	"github.com/faros-ai/synclog/internal/model"
)

// Diagnostics collects error- and warning-level lines, both prefix-levelled
// plain text and structured payloads. Messages are captured whole —
// downstream reporting depends on seeing the complete text.
type Diagnostics struct{}

func (Diagnostics) Name() string { return "diagnostics" }

func (Diagnostics) Extract(lines []model.ClassifiedLine) Fragment {
	frag := &diagnosticsFragment{}
	for _, cl := range lines {
		if cl.Kind == model.Malformed {
			continue
		}
		if d, ok := diagnose(cl); ok {
			frag.found = append(frag.found, d)
		}
	}
	return frag
}

type diagnosticsFragment struct {
	found []model.Diagnostic
}

func (f *diagnosticsFragment) Apply(res *model.SyncResult) {
	if len(f.found) > 0 {
		res.Diagnostics = f.found
	}
}

// diagnose decides whether one line is a diagnostic. The prefix level is
// authoritative when present; otherwise structured payloads are checked for
// their own level field or an error trace.
func diagnose(cl model.ClassifiedLine) (model.Diagnostic, bool) {
	switch cl.Level {
	case "error":
		return buildDiagnostic(model.SeverityError, cl), true
	case "warn":
		return buildDiagnostic(model.SeverityWarning, cl), true
	case "":
	default:
		return model.Diagnostic{}, false
	}
	if cl.Kind != model.Structured {
		return model.Diagnostic{}, false
	}
	if severity, ok := payloadSeverity(cl.Payload); ok {
		d := buildDiagnostic(severity, cl)
		if msg, ok := payloadString(cl.Payload, "message", "msg"); ok {
			d.Message = msg
		}
		return d, true
	}
	if msg, ok := traceError(cl.Payload); ok {
		d := buildDiagnostic(model.SeverityError, cl)
		d.Message = msg
		return d, true
	}
	return model.Diagnostic{}, false
}

func buildDiagnostic(severity string, cl model.ClassifiedLine) model.Diagnostic {
	d := model.Diagnostic{
		Severity:  severity,
		Message:   cl.Message,
		Stream:    model.Unknown,
		Timestamp: model.Unknown,
	}
	if !cl.Timestamp.IsZero() {
		d.Timestamp = cl.Timestamp.Format(time.RFC3339)
	}
	if cl.Kind == model.Structured {
		if stream, ok := payloadString(cl.Payload, "stream", "model"); ok {
			d.Stream = stream
		}
		if d.Timestamp == model.Unknown {
			if ms, ok := asInt64(cl.Payload["timestamp"]); ok {
				d.Timestamp = time.UnixMilli(ms).UTC().Format(time.RFC3339)
			}
		}
	}
	return d
}

func payloadSeverity(payload map[string]any) (string, bool) {
	level, ok := payloadString(payload, "level", "severity")
	if !ok {
		return "", false
	}
	switch strings.ToLower(level) {
	case "error", "fatal":
		return model.SeverityError, true
	case "warn", "warning":
		return model.SeverityWarning, true
	default:
		return "", false
	}
}

// traceError pulls the message out of an Airbyte TRACE error entry.
func traceError(payload map[string]any) (string, bool) {
	if recordType, _ := payloadString(payload, "type"); recordType != "TRACE" {
		return "", false
	}
	trace, ok := payloadMap(payload, "trace")
	if !ok {
		return "", false
	}
	if traceType, _ := payloadString(trace, "type"); traceType != "ERROR" {
		return "", false
	}
	errObj, ok := payloadMap(trace, "error")
	if !ok {
		return "", false
	}
	msg, ok := payloadString(errObj, "message", "internal_message")
	return msg, ok
}
