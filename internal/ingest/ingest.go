// Package ingest reads a sync log file into an ordered sequence of raw lines.
package ingest

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/faros-ai/synclog/internal/model"
)

// Read loads the log file at path and splits it into ordered raw lines.
// The only fatal failure is an unreadable file; everything downstream
// degrades per line.
func Read(path string) ([]model.RawLine, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ingest: %w", err)
	}
	defer f.Close()

	lines, err := ReadFrom(f)
	if err != nil {
		return nil, fmt.Errorf("ingest: reading %s: %w", path, err)
	}
	return lines, nil
}

// ReadFrom splits r into raw lines. Lines are unbounded in length (connector
// logs embed whole catalogs on one line), so this reads with bufio.Reader
// rather than a token scanner. Non-UTF-8 lines are re-decoded as Latin-1 so
// a stray byte never aborts the run.
func ReadFrom(r io.Reader) ([]model.RawLine, error) {
	br := bufio.NewReader(r)
	var lines []model.RawLine
	num := 0
	for {
		text, err := br.ReadString('\n')
		if text != "" {
			num++
			lines = append(lines, model.RawLine{Number: num, Text: sanitize(text)})
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
	}
	slog.Debug("ingested log", "lines", num)
	return lines, nil
}

// sanitize strips the line ending and repairs invalid UTF-8. Latin-1 is a
// total decoding, so every byte maps to some rune and no content is lost.
func sanitize(text string) string {
	text = strings.TrimRight(text, "\r\n")
	if utf8.ValidString(text) {
		return text
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().String(text)
	if err != nil {
		// Unreachable for Latin-1, but never let one line kill the run.
		return strings.ToValidUTF8(text, "�")
	}
	return decoded
}
