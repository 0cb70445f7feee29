// Package aggregate merges extractor fragments into the final result
// document. The full schema is initialized to unknown markers up front, so
// the key set of the output never depends on what the log contained.
package aggregate

import (
	"log/slog"

	"github.com/faros-ai/synclog/internal/extract"
	"github.com/faros-ai/synclog/internal/model"
)

// Run applies every registered extractor to the classified sequence and
// derives the summary counters.
func Run(lines []model.ClassifiedLine) *model.SyncResult {
	res := model.NewSyncResult()
	for _, ex := range extract.Registry() {
		frag := ex.Extract(lines)
		if frag == nil {
			continue
		}
		frag.Apply(res)
		slog.Debug("applied extractor", "extractor", ex.Name())
	}
	derive(res)
	return res
}

// derive fills the counters computed from other fields.
func derive(res *model.SyncResult) {
	var total int64
	for _, n := range res.RecordCounts.Streams {
		total += n
	}
	res.RecordCounts.Total = total

	// The catalog is the declared stream set; fall back to observed
	// streams when the log never printed one.
	res.Counts.Streams = len(res.Catalog)
	if res.Counts.Streams == 0 {
		res.Counts.Streams = len(res.RecordCounts.Streams)
	}
	for _, d := range res.Diagnostics {
		switch d.Severity {
		case model.SeverityError:
			res.Counts.Errors++
		case model.SeverityWarning:
			res.Counts.Warnings++
		}
	}
}
