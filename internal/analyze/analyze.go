// Package analyze wires the extraction pipeline: ingest, classify,
// aggregate. Each run is a pure function of one log file.
package analyze

import (
	"fmt"
	"io"

	"github.com/faros-ai/synclog/internal/aggregate"
	"github.com/faros-ai/synclog/internal/classify"
	"github.com/faros-ai/synclog/internal/ingest"
	"github.com/faros-ai/synclog/internal/model"
)

// Run parses the sync log at path into a structured result. The only error
// it can return is an unreadable file; a partial or malformed log still
// produces a best-effort result.
func Run(path string) (*model.SyncResult, error) {
	lines, err := ingest.Read(path)
	if err != nil {
		return nil, err
	}
	return aggregate.Run(classify.Lines(lines)), nil
}

// RunReader parses a sync log from r. Used by the library entry point and
// by tests that do not want to touch the filesystem.
func RunReader(r io.Reader) (*model.SyncResult, error) {
	lines, err := ingest.ReadFrom(r)
	if err != nil {
		return nil, fmt.Errorf("analyze: %w", err)
	}
	return aggregate.Run(classify.Lines(lines)), nil
}
