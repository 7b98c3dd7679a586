// Package journal records Yahoo CSV export runs in SQLite so resolution
// quality can be compared across days.
package journal

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// ExportRecord is one completed CSV export.
type ExportRecord struct {
	ExportID       string
	CreatedAt      time.Time
	Path           string
	Positions      int
	ExchangeMapped int
	ShortNameUsed  int
}

// Journal persists export records.
type Journal interface {
	RecordExport(ExportRecord) error
	ListExports(limit int) ([]ExportRecord, error)
	Close() error
}

// NewRecord builds a record with a fresh time-sortable ULID.
func NewRecord(path string, createdAt time.Time, positions, exchangeMapped, shortNameUsed int) ExportRecord {
	return ExportRecord{
		ExportID:       ulid.Make().String(),
		CreatedAt:      createdAt,
		Path:           path,
		Positions:      positions,
		ExchangeMapped: exchangeMapped,
		ShortNameUsed:  shortNameUsed,
	}
}
