package extract

import (
	"regexp"

	"github.com/faros-ai/synclog/internal/model"
)

var (
	wroteByModelRe      = regexp.MustCompile(`Wrote records by model:\s*\{`)
	processedByStreamRe = regexp.MustCompile(`Processed records by stream:\s*\{`)

	scalarReadRe      = regexp.MustCompile(`Read (\d+) records$`)
	scalarProcessedRe = regexp.MustCompile(`Processed (\d+) records$`)
	scalarWroteRe     = regexp.MustCompile(`Wrote (\d+) records$`)
	scalarSkippedRe   = regexp.MustCompile(`Skipped (\d+) records$`)
	scalarErroredRe   = regexp.MustCompile(`Errored (\d+) records$`)
)

// DestinationStats extracts per-model write counters. Destinations emit
// periodic progress payloads rather than one final total, so repeated
// entries for the same model sum. Destination-level scalar markers ("Wrote
// N records") are cumulative snapshots; the last one wins and backfills any
// total counter the per-model payloads left at zero.
type DestinationStats struct{}

func (DestinationStats) Name() string { return "destination_stats" }

func (DestinationStats) Extract(lines []model.ClassifiedLine) Fragment {
	frag := &destStatsFragment{models: map[string]model.ModelStats{}}
	for _, cl := range lines {
		if cl.Kind == model.Malformed {
			continue
		}
		// Source-side read totals end in "records" too; they belong to
		// the record-count extractor, not here.
		if finishedSyncingRe.MatchString(cl.Message) || sliceReadRe.MatchString(cl.Message) {
			continue
		}
		if cl.Kind == model.Structured {
			if wroteByModelRe.MatchString(cl.Message) {
				frag.addCounters(cl.Payload, func(s *model.ModelStats, n int64) { s.Written += n })
				continue
			}
			if processedByStreamRe.MatchString(cl.Message) {
				frag.addCounters(cl.Payload, func(s *model.ModelStats, n int64) { s.Processed += n })
				continue
			}
		}
		frag.scanScalars(cl.Message)
	}
	return frag
}

type destStatsFragment struct {
	models  map[string]model.ModelStats
	scalars model.ModelStats
}

func (f *destStatsFragment) addCounters(payload map[string]any, bump func(*model.ModelStats, int64)) {
	for name, v := range payload {
		n, ok := asInt64(v)
		if !ok {
			continue
		}
		stats := f.models[name]
		bump(&stats, n)
		f.models[name] = stats
	}
}

func (f *destStatsFragment) scanScalars(msg string) {
	for _, s := range []struct {
		re  *regexp.Regexp
		dst *int64
	}{
		{scalarReadRe, &f.scalars.Read},
		{scalarProcessedRe, &f.scalars.Processed},
		{scalarWroteRe, &f.scalars.Written},
		{scalarSkippedRe, &f.scalars.Skipped},
		{scalarErroredRe, &f.scalars.Errored},
	} {
		if m := s.re.FindStringSubmatch(msg); m != nil {
			if n, ok := asInt64(m[1]); ok {
				*s.dst = n
			}
			return
		}
	}
}

func (f *destStatsFragment) Apply(res *model.SyncResult) {
	var total model.ModelStats
	for name, stats := range f.models {
		res.DestinationStats.Models[name] = stats
		total.Add(stats)
	}
	// Scalar snapshots fill counters no per-model payload covered.
	if total.Read == 0 {
		total.Read = f.scalars.Read
	}
	if total.Processed == 0 {
		total.Processed = f.scalars.Processed
	}
	if total.Written == 0 {
		total.Written = f.scalars.Written
	}
	if total.Skipped == 0 {
		total.Skipped = f.scalars.Skipped
	}
	if total.Errored == 0 {
		total.Errored = f.scalars.Errored
	}
	res.DestinationStats.Total = total
}
