// Package extract holds the field extractors. Each extractor is a stateless
// pass over the immutable classified-line sequence producing a fragment of
// the final result; extractors never depend on each other, so they can run
// in any order. The aggregator merges fragments.
package extract

import (
	"strconv"

	"github.com/faros-ai/synclog/internal/model"
)

// Fragment is a partial result produced by one extractor.
type Fragment interface {
	// Apply writes the fragment's findings into the result. Fields the
	// extractor found nothing for are left untouched, preserving the
	// aggregator's unknown markers.
	Apply(res *model.SyncResult)
}

// Extractor produces a result fragment from the classified line sequence.
// Implementations must not mutate the lines.
type Extractor interface {
	Name() string
	Extract(lines []model.ClassifiedLine) Fragment
}

// Registry returns the fixed extractor set, one per field family.
func Registry() []Extractor {
	return []Extractor{
		&Lifecycle{},
		&Versions{},
		&Configs{},
		&Catalog{},
		&RecordCounts{},
		&DestinationStats{},
		&States{},
		&Diagnostics{},
	}
}

// payloadString returns the first present string value among keys.
func payloadString(m map[string]any, keys ...string) (string, bool) {
	for _, k := range keys {
		if s, ok := m[k].(string); ok {
			return s, true
		}
	}
	return "", false
}

// payloadMap returns m[key] when it is a JSON object.
func payloadMap(m map[string]any, key string) (map[string]any, bool) {
	child, ok := m[key].(map[string]any)
	return child, ok
}

// asInt64 coerces a decoded JSON value to an integer count. Counts arrive as
// float64 from encoding/json, occasionally as numeric strings.
func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case float64:
		return int64(n), true
	case int64:
		return n, true
	case int:
		return int64(n), true
	case string:
		i, err := strconv.ParseInt(n, 10, 64)
		if err != nil {
			return 0, false
		}
		return i, true
	default:
		return 0, false
	}
}
