// Package stdout writes the result document to standard output.
package stdout

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/faros-ai/synclog/internal/model"
)

// Output writes the JSON-encoded sync result to stdout. Key order follows
// the schema's declared field order, so documents from two runs diff
// cleanly.
type Output struct {
	enc *json.Encoder
}

// New creates a stdout Output, pretty-printed unless compact.
func New(compact bool) *Output {
	return newTo(os.Stdout, compact)
}

func newTo(w io.Writer, compact bool) *Output {
	enc := json.NewEncoder(w)
	if !compact {
		enc.SetIndent("", "  ")
	}
	return &Output{enc: enc}
}

func (o *Output) Write(res *model.SyncResult) error {
	if err := o.enc.Encode(res); err != nil {
		return fmt.Errorf("stdout output: %w", err)
	}
	return nil
}

func (o *Output) Close() error {
	return nil
}
