package synclog

import (
	"io"

	"github.com/faros-ai/synclog/internal/analyze"
	"github.com/faros-ai/synclog/internal/model"
)

// Result is the aggregated summary of one sync log.
type Result = model.SyncResult

// Re-exported result sub-documents.
type (
	SyncSummary      = model.SyncSummary
	ConnectorInfo    = model.ConnectorInfo
	CatalogEntry     = model.CatalogEntry
	RecordCounts     = model.RecordCounts
	ModelStats       = model.ModelStats
	DestinationStats = model.DestinationStats
	StateSnapshots   = model.StateSnapshots
	Diagnostic       = model.Diagnostic
)

// Result enum values.
const (
	Unknown         = model.Unknown
	StatusSucceeded = model.StatusSucceeded
	StatusFailed    = model.StatusFailed
	StatusUnknown   = model.StatusUnknown
)

// Analyze parses the sync log file at path.
func Analyze(path string) (*Result, error) {
	return analyze.Run(path)
}

// AnalyzeReader parses a sync log from r.
func AnalyzeReader(r io.Reader) (*Result, error) {
	return analyze.RunReader(r)
}
