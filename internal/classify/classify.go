// Package classify turns raw log lines into the tagged variant consumed by
// the field extractors: plain text, structured (with a decoded JSON payload),
// or malformed. All payload decoding lives here; extractors never parse.
package classify

import (
	"encoding/json"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/faros-ai/synclog/internal/model"
)

// timestampLayout matches the "2024-01-02 15:04:05" prefix connector logs use.
const timestampLayout = "2006-01-02 15:04:05"

var (
	prefixRe      = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2})\s+(?i:(info|warn|error|debug|trace))\s+(.*)$`)
	syncSummaryRe = regexp.MustCompile(`[Ss]ync summary:\s*\{`)
)

// maxBoundaryAttempts bounds how many closing-brace positions are tried when
// a payload does not decode to end of line (trailing prose after the JSON).
const maxBoundaryAttempts = 4

// Lines classifies the raw line sequence. Multi-line JSON payloads (the sync
// summary spans lines) collapse into a single structured line positioned at
// their first line; continuation lines are consumed.
func Lines(raws []model.RawLine) []model.ClassifiedLine {
	out := make([]model.ClassifiedLine, 0, len(raws))
	var acc *accumulator
	malformed := 0

	for _, raw := range raws {
		ts, level, msg := splitPrefix(raw.Text)

		if acc != nil {
			if done := acc.feed(msg); done {
				out = append(out, acc.finish())
				acc = nil
			}
			continue
		}

		if syncSummaryRe.MatchString(msg) {
			acc = newAccumulator(raw, ts, level, msg)
			if acc.depth <= 0 {
				out = append(out, acc.finish())
				acc = nil
			}
			continue
		}

		cl := model.ClassifiedLine{
			RawLine:   raw,
			Timestamp: ts,
			Level:     level,
			Message:   msg,
		}
		switch payload, ok := decodePayload(msg); {
		case ok:
			cl.Kind = model.Structured
			cl.Payload = payload
		case looksStructured(msg):
			cl.Kind = model.Malformed
			malformed++
		default:
			cl.Kind = model.Plain
		}
		out = append(out, cl)
	}

	// EOF in the middle of a multi-line payload: the fragment looked
	// structured but never closed.
	if acc != nil {
		cl := acc.finish()
		if cl.Kind == model.Malformed {
			malformed++
		}
		out = append(out, cl)
	}

	if malformed > 0 {
		slog.Debug("classified lines", "total", len(raws), "malformed", malformed)
	}
	return out
}

// splitPrefix strips the timestamp/level prefix when present. The timestamp
// layout carries no zone, so parsed times are UTC.
func splitPrefix(text string) (time.Time, string, string) {
	m := prefixRe.FindStringSubmatch(text)
	if m == nil {
		return time.Time{}, "", text
	}
	ts, err := time.Parse(timestampLayout, m[1])
	if err != nil {
		return time.Time{}, strings.ToLower(m[2]), m[3]
	}
	return ts, strings.ToLower(m[2]), m[3]
}

// decodePayload locates the first embedded JSON object in msg and decodes it.
// It tries the whole tail first, then backs off to earlier closing braces for
// lines where prose follows the payload.
func decodePayload(msg string) (map[string]any, bool) {
	start := strings.IndexByte(msg, '{')
	if start < 0 {
		return nil, false
	}
	tail := msg[start:]

	if payload, ok := tryDecode(tail); ok {
		return payload, true
	}
	end := len(tail)
	for attempt := 0; attempt < maxBoundaryAttempts; attempt++ {
		end = strings.LastIndexByte(tail[:end], '}')
		if end < 0 {
			return nil, false
		}
		if payload, ok := tryDecode(tail[:end+1]); ok {
			return payload, true
		}
	}
	return nil, false
}

func tryDecode(s string) (map[string]any, bool) {
	var payload map[string]any
	if err := json.Unmarshal([]byte(s), &payload); err != nil {
		return nil, false
	}
	return payload, true
}

// looksStructured reports whether a line that failed to decode intended to
// carry structured data. A brace is the strong signal; bare protocol tokens
// catch truncated lines that lost their braces entirely.
func looksStructured(msg string) bool {
	if strings.ContainsAny(msg, "{}") {
		return true
	}
	for _, tok := range []string{`"RECORD"`, `"STATE"`, `"type":`} {
		if strings.Contains(msg, tok) {
			return true
		}
	}
	return false
}

// accumulator collects a multi-line JSON payload by brace depth.
type accumulator struct {
	first model.RawLine
	ts    time.Time
	level string
	msg   string
	buf   []string
	depth int
}

func newAccumulator(raw model.RawLine, ts time.Time, level, msg string) *accumulator {
	start := strings.IndexByte(msg, '{')
	fragment := msg
	if start >= 0 {
		fragment = msg[start:]
	}
	return &accumulator{
		first: raw,
		ts:    ts,
		level: level,
		msg:   msg,
		buf:   []string{fragment},
		depth: strings.Count(fragment, "{") - strings.Count(fragment, "}"),
	}
}

// feed appends a continuation line and reports whether the payload closed.
func (a *accumulator) feed(msg string) bool {
	a.depth += strings.Count(msg, "{") - strings.Count(msg, "}")
	a.buf = append(a.buf, msg)
	return a.depth <= 0
}

// finish produces the collapsed classified line for the accumulated payload.
func (a *accumulator) finish() model.ClassifiedLine {
	cl := model.ClassifiedLine{
		RawLine:   a.first,
		Timestamp: a.ts,
		Level:     a.level,
		Message:   a.msg,
	}
	text := strings.Join(a.buf, "\n")
	if payload, ok := tryDecode(text); ok {
		cl.Kind = model.Structured
		cl.Payload = payload
	} else {
		cl.Kind = model.Malformed
	}
	return cl
}
