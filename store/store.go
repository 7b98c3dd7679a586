// Package store writes API snapshots into a date/category partitioned file
// tree: <root>/<YYYY-MM-DD>/<category>/<name>_<HH-MM-SS>.json.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Writer saves JSON payloads under a fixed root directory. Unlike the daily
// instrument cache, each save carries a second-resolution timestamp so a day
// accumulates history. Two saves of the same category/name within the same
// second land on the same path and the later one overwrites the earlier.
type Writer struct {
	root string
	now  func() time.Time
}

// Option configures a Writer.
type Option func(*Writer)

// WithClock injects the time source used for path construction.
func WithClock(now func() time.Time) Option {
	return func(w *Writer) { w.now = now }
}

// New builds a writer rooted at root.
func New(root string, opts ...Option) *Writer {
	w := &Writer{root: root, now: time.Now}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Save marshals payload (indented) and writes it to
// <root>/<date>/<category>/<name>_<time>.json, creating directories as
// needed. It returns the path written. A json.RawMessage payload is written
// through unmodified apart from re-indentation, so unparsed API fields are
// preserved.
func (w *Writer) Save(category, name string, payload any) (string, error) {
	now := w.now()
	dir := filepath.Join(w.root, now.Format("2006-01-02"), category)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal %s/%s: %w", category, name, err)
	}

	path := filepath.Join(dir, fmt.Sprintf("%s_%s.json", name, now.Format("15-04-05")))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}
	return path, nil
}
