package extract

import (
	"regexp"

	"github.com/faros-ai/synclog/internal/model"
)

var configRe = regexp.MustCompile(`Config:\s*\{`)

// Config keys surfaced in the result. Everything else in a logged config is
// dropped, never guessed: configs carry credentials and the allow-list is
// the only safe pass-through.
var (
	sourceConfigKeys = []string{"url", "cutoff_days", "start_date", "bucket_id", "bucket_total", "page_size"}
	destConfigKeys   = []string{"origin", "edition", "graph", "graphql_api"}
)

// Configs extracts the allow-listed source and destination configuration
// summaries. Connectors re-log their config on retries, so later occurrences
// overwrite earlier ones wholesale.
type Configs struct{}

func (Configs) Name() string { return "configs" }

func (Configs) Extract(lines []model.ClassifiedLine) Fragment {
	frag := &configsFragment{}
	for _, cl := range lines {
		if cl.Kind != model.Structured || !configRe.MatchString(cl.Message) {
			continue
		}
		// Destination configs carry origin/edition settings; anything
		// else is a source config.
		if hasAnyKey(cl.Payload, "origin", "edition_configs") {
			frag.destination = filterConfig(cl.Payload, destConfigKeys)
		} else {
			frag.source = filterConfig(cl.Payload, sourceConfigKeys)
		}
	}
	return frag
}

type configsFragment struct {
	source      map[string]any
	destination map[string]any
}

func (f *configsFragment) Apply(res *model.SyncResult) {
	if f.source != nil {
		res.SourceConfig = f.source
	}
	if f.destination != nil {
		res.DestinationConfig = f.destination
	}
}

// filterConfig keeps only allow-listed keys, looking one level into the
// edition_configs object where Faros destinations nest their settings.
func filterConfig(payload map[string]any, keys []string) map[string]any {
	out := map[string]any{}
	nested, _ := payloadMap(payload, "edition_configs")
	for _, k := range keys {
		if v, ok := payload[k]; ok {
			out[k] = v
			continue
		}
		if v, ok := nested[k]; ok {
			out[k] = v
		}
	}
	return out
}

func hasAnyKey(payload map[string]any, keys ...string) bool {
	for _, k := range keys {
		if _, ok := payload[k]; ok {
			return true
		}
	}
	return false
}
