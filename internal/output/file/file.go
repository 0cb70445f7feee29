// Package file writes the result document to a file instead of stdout.
package file

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/faros-ai/synclog/internal/model"
)

// Output writes the JSON-encoded sync result to a file, replacing any
// previous content. The document lands whole or not at all: it is staged in
// a temp file in the same directory and renamed into place on Close.
type Output struct {
	path string
	tmp  *os.File
	enc  *json.Encoder
}

// New creates a file output targeting path.
func New(path string, compact bool) (*Output, error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".synclog-*")
	if err != nil {
		return nil, fmt.Errorf("file output: %w", err)
	}
	enc := json.NewEncoder(tmp)
	if !compact {
		enc.SetIndent("", "  ")
	}
	return &Output{path: path, tmp: tmp, enc: enc}, nil
}

func (o *Output) Write(res *model.SyncResult) error {
	if err := o.enc.Encode(res); err != nil {
		return fmt.Errorf("file output: %w", err)
	}
	return nil
}

// Close renames the staged document into place.
func (o *Output) Close() error {
	if err := o.tmp.Close(); err != nil {
		os.Remove(o.tmp.Name())
		return fmt.Errorf("file output: %w", err)
	}
	if err := os.Rename(o.tmp.Name(), o.path); err != nil {
		os.Remove(o.tmp.Name())
		return fmt.Errorf("file output: %w", err)
	}
	return nil
}
