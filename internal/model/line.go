package model

import "time"

// LineKind tags how a raw log line was classified.
type LineKind int

const (
	// Plain is a human-readable line with no embedded JSON payload.
	Plain LineKind = iota
	// Structured is a line carrying a successfully decoded JSON object.
	Structured
	// Malformed is a line that looked like it carried structured data but
	// failed to decode. Malformed lines are excluded from extractor input.
	Malformed
)

// String returns the lowercase tag name for a LineKind.
func (k LineKind) String() string {
	switch k {
	case Plain:
		return "plain"
	case Structured:
		return "structured"
	case Malformed:
		return "malformed"
	default:
		return "unknown"
	}
}

// RawLine is one line of the input log file, decoded and order-preserving.
type RawLine struct {
	Number int    // 1-based position in the file
	Text   string // full line text, line ending stripped
}

// ClassifiedLine is a raw line plus its classification. Payload is non-nil
// only when Kind is Structured. Timestamp and Level come from the log prefix
// ("2024-01-02 15:04:05 info ...") and are zero/empty when the line has none.
type ClassifiedLine struct {
	RawLine
	Kind      LineKind
	Timestamp time.Time
	Level     string         // lowercased prefix level, "" when absent
	Message   string         // line text after the timestamp/level prefix
	Payload   map[string]any // decoded JSON object for Structured lines
}
