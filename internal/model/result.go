package model

// Unknown is the explicit marker for string fields the log did not populate.
// The result schema never omits a key; absence is always represented.
const Unknown = "unknown"

// Sync status values.
const (
	StatusSucceeded = "succeeded"
	StatusFailed    = "failed"
	StatusUnknown   = Unknown
)

// Catalog sync-mode values.
const (
	SyncModeFullRefresh = "full_refresh"
	SyncModeIncremental = "incremental"
	SyncModeUnknown     = Unknown
)

// Diagnostic severities.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// SyncResult is the aggregated summary of one connector sync log. Field
// declaration order is the serialization order, so two runs over the same
// file produce byte-identical documents.
type SyncResult struct {
	Attempt           string           `json:"attempt"`
	Sync              SyncSummary      `json:"sync"`
	Source            ConnectorInfo    `json:"source"`
	Destination       ConnectorInfo    `json:"destination"`
	SourceConfig      map[string]any   `json:"source_config"`
	DestinationConfig map[string]any   `json:"destination_config"`
	Catalog           []CatalogEntry   `json:"catalog"`
	RecordCounts      RecordCounts     `json:"record_counts"`
	DestinationStats  DestinationStats `json:"destination_stats"`
	State             StateSnapshots   `json:"state"`
	Diagnostics       []Diagnostic     `json:"diagnostics"`
	Counts            DerivedCounts    `json:"counts"`
}

// SyncSummary describes the lifecycle of the sync. Start and End are RFC 3339
// UTC timestamps or "unknown". DurationSeconds is null when either endpoint
// is missing.
type SyncSummary struct {
	Status          string `json:"status"`
	Start           string `json:"start"`
	End             string `json:"end"`
	DurationSeconds *int64 `json:"duration_seconds"`
}

// ConnectorInfo identifies one side's connector image and version.
type ConnectorInfo struct {
	Image   string `json:"image"`
	Version string `json:"version"`
}

// CatalogEntry is one declared stream and its sync mode.
type CatalogEntry struct {
	Stream      string `json:"stream"`
	SyncMode    string `json:"sync_mode"`
	CursorField string `json:"cursor_field"`
}

// RecordCounts holds per-stream read counts and their sum.
type RecordCounts struct {
	Streams map[string]int64 `json:"streams"`
	Total   int64            `json:"total"`
}

// ModelStats is one destination model's write counters.
type ModelStats struct {
	Read      int64 `json:"read"`
	Processed int64 `json:"processed"`
	Written   int64 `json:"written"`
	Skipped   int64 `json:"skipped"`
	Errored   int64 `json:"errored"`
}

// Add accumulates other into s.
func (s *ModelStats) Add(other ModelStats) {
	s.Read += other.Read
	s.Processed += other.Processed
	s.Written += other.Written
	s.Skipped += other.Skipped
	s.Errored += other.Errored
}

// DestinationStats holds per-model write counters and their sum.
type DestinationStats struct {
	Models map[string]ModelStats `json:"models"`
	Total  ModelStats            `json:"total"`
}

// StateSnapshots holds per-stream checkpoint payloads, passed through
// verbatim. Compressed carries the decoded global state blob when the log
// contains one, null otherwise.
type StateSnapshots struct {
	Initial    map[string]any `json:"initial"`
	Final      map[string]any `json:"final"`
	Compressed any            `json:"compressed"`
}

// Diagnostic is one error or warning captured from the log, message text
// untruncated. Stream and Timestamp are "unknown" when not attributable.
type Diagnostic struct {
	Severity  string `json:"severity"`
	Message   string `json:"message"`
	Stream    string `json:"stream"`
	Timestamp string `json:"timestamp"`
}

// DerivedCounts are totals computed by the aggregator.
type DerivedCounts struct {
	Streams  int `json:"streams"`
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
}

// NewSyncResult returns a result with every field set to its explicit
// unknown/empty marker. Extractors overwrite fields as data is found, so the
// key set of the serialized document is identical across runs.
func NewSyncResult() *SyncResult {
	return &SyncResult{
		Attempt: Unknown,
		Sync: SyncSummary{
			Status: StatusUnknown,
			Start:  Unknown,
			End:    Unknown,
		},
		Source:            ConnectorInfo{Image: Unknown, Version: Unknown},
		Destination:       ConnectorInfo{Image: Unknown, Version: Unknown},
		SourceConfig:      map[string]any{},
		DestinationConfig: map[string]any{},
		Catalog:           []CatalogEntry{},
		RecordCounts:      RecordCounts{Streams: map[string]int64{}},
		DestinationStats:  DestinationStats{Models: map[string]ModelStats{}},
		State: StateSnapshots{
			Initial: map[string]any{},
			Final:   map[string]any{},
		},
		Diagnostics: []Diagnostic{},
	}
}
