package extract

import (
	"regexp"

	"github.com/faros-ai/synclog/internal/model"
)

var (
	finishedSyncingRe = regexp.MustCompile(`Finished syncing (\S+) stream\. Read (\d+) records`)
	sliceReadRe       = regexp.MustCompile(`Finished processing (\S+) stream slice .+\. Read (\d+) records`)
)

// RecordCounts counts records read per stream. RECORD protocol entries are
// the direct evidence and are counted one by one (increment only, no
// buffering — this path sees the bulk of the log). Streams whose connector
// never emits protocol records fall back to the "Finished syncing" stream
// total, then to summed per-slice totals.
type RecordCounts struct{}

func (RecordCounts) Name() string { return "record_counts" }

func (RecordCounts) Extract(lines []model.ClassifiedLine) Fragment {
	frag := &recordCountsFragment{
		counted: map[string]int64{},
		totals:  map[string]int64{},
		slices:  map[string]int64{},
	}
	for _, cl := range lines {
		switch cl.Kind {
		case model.Malformed:
			continue
		case model.Structured:
			if recordType, _ := payloadString(cl.Payload, "type"); recordType == "RECORD" {
				if stream := recordStream(cl.Payload); stream != "" {
					frag.counted[stream]++
				}
				continue
			}
		}
		if m := finishedSyncingRe.FindStringSubmatch(cl.Message); m != nil {
			if n, ok := asInt64(m[2]); ok {
				frag.totals[m[1]] = n
			}
			continue
		}
		if m := sliceReadRe.FindStringSubmatch(cl.Message); m != nil {
			if n, ok := asInt64(m[2]); ok {
				frag.slices[m[1]] += n
			}
		}
	}
	return frag
}

type recordCountsFragment struct {
	counted map[string]int64 // per-stream RECORD entry counts
	totals  map[string]int64 // "Finished syncing" stream totals
	slices  map[string]int64 // summed per-slice reads
}

func (f *recordCountsFragment) Apply(res *model.SyncResult) {
	for stream, n := range f.counted {
		res.RecordCounts.Streams[stream] = n
	}
	for stream, n := range f.totals {
		if _, ok := res.RecordCounts.Streams[stream]; !ok {
			res.RecordCounts.Streams[stream] = n
		}
	}
	for stream, n := range f.slices {
		if _, ok := res.RecordCounts.Streams[stream]; !ok {
			res.RecordCounts.Streams[stream] = n
		}
	}
}

// recordStream pulls the stream name out of a RECORD protocol entry.
func recordStream(payload map[string]any) string {
	record, ok := payloadMap(payload, "record")
	if !ok {
		return ""
	}
	stream, _ := payloadString(record, "stream")
	return stream
}
