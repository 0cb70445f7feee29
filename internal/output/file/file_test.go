package file

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/faros-ai/synclog/internal/model"
)

func TestWrite_DocumentLandsOnClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "result.json")

	out, err := New(path, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := out.Write(model.NewSyncResult()); err != nil {
		t.Fatalf("write: %v", err)
	}

	// Until Close, the target path must not exist.
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatal("expected document to be staged, not visible before Close")
	}

	if err := out.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading result: %v", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("expected valid JSON document, got error: %v", err)
	}
	if _, ok := doc["sync"]; !ok {
		t.Fatalf("expected sync key in document, got %v", doc)
	}
}

func TestWrite_ReplacesExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "result.json")
	if err := os.WriteFile(path, []byte("stale"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := New(path, true)
	if err != nil {
		t.Fatal(err)
	}
	if err := out.Write(model.NewSyncResult()); err != nil {
		t.Fatal(err)
	}
	if err := out.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) == "stale" {
		t.Fatal("expected previous content replaced")
	}
}
