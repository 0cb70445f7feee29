package output

import "github.com/faros-ai/synclog/internal/model"

// Writer defines the interface for result document destinations.
type Writer interface {
	Write(res *model.SyncResult) error
	Close() error
}
