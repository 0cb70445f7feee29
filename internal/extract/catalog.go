package extract

import (
	"regexp"
	"strings"

	"github.com/faros-ai/synclog/internal/model"
)

var catalogRe = regexp.MustCompile(`Catalog:\s*\{`)

// Catalog extracts the declared stream set. Destination catalogs (stream
// names namespaced with "__", e.g. "mysrc__github__issues") describe write
// models rather than the sync's streams and are skipped. Duplicate stream
// names merge, later sync mode winning.
type Catalog struct{}

func (Catalog) Name() string { return "catalog" }

func (Catalog) Extract(lines []model.ClassifiedLine) Fragment {
	frag := &catalogFragment{index: map[string]int{}}
	for _, cl := range lines {
		if cl.Kind != model.Structured || !catalogRe.MatchString(cl.Message) {
			continue
		}
		streams, ok := cl.Payload["streams"].([]any)
		if !ok || len(streams) == 0 {
			continue
		}
		if isDestinationCatalog(streams) {
			continue
		}
		for _, raw := range streams {
			entry, ok := raw.(map[string]any)
			if !ok {
				continue
			}
			frag.add(entry)
		}
	}
	return frag
}

type catalogFragment struct {
	entries []model.CatalogEntry
	index   map[string]int // stream name -> position in entries
}

func (f *catalogFragment) add(entry map[string]any) {
	stream, ok := payloadMap(entry, "stream")
	if !ok {
		stream = entry
	}
	name, ok := payloadString(stream, "name")
	if !ok || name == "" {
		return
	}

	ce := model.CatalogEntry{
		Stream:      name,
		SyncMode:    normalizeSyncMode(entry),
		CursorField: cursorField(entry, stream),
	}
	if i, seen := f.index[name]; seen {
		f.entries[i] = ce
		return
	}
	f.index[name] = len(f.entries)
	f.entries = append(f.entries, ce)
}

func (f *catalogFragment) Apply(res *model.SyncResult) {
	if len(f.entries) > 0 {
		res.Catalog = f.entries
	}
}

func normalizeSyncMode(entry map[string]any) string {
	mode, _ := payloadString(entry, "sync_mode", "syncMode")
	switch strings.ToLower(mode) {
	case "full_refresh":
		return model.SyncModeFullRefresh
	case "incremental":
		return model.SyncModeIncremental
	default:
		return model.SyncModeUnknown
	}
}

// cursorField joins a declared cursor path ("["updated","at"]" -> "updated.at").
// Falls back to the stream's default cursor, then the unknown marker.
func cursorField(entry, stream map[string]any) string {
	for _, candidate := range []any{entry["cursor_field"], stream["default_cursor_field"]} {
		parts, ok := candidate.([]any)
		if !ok || len(parts) == 0 {
			continue
		}
		segs := make([]string, 0, len(parts))
		for _, p := range parts {
			if s, ok := p.(string); ok {
				segs = append(segs, s)
			}
		}
		if len(segs) > 0 {
			return strings.Join(segs, ".")
		}
	}
	return model.Unknown
}

func isDestinationCatalog(streams []any) bool {
	first, ok := streams[0].(map[string]any)
	if !ok {
		return false
	}
	if stream, ok := payloadMap(first, "stream"); ok {
		first = stream
	}
	name, _ := payloadString(first, "name")
	return strings.Contains(name, "__")
}
