package journal

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

type SQLite struct {
	db *sql.DB
}

// NewSQLite opens (creating if necessary) the journal database at path.
func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLite{db: db}, nil
}

func (j *SQLite) RecordExport(r ExportRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO exports
		(export_id, created_at, path, positions, exchange_mapped, short_name_used)
		VALUES (?, ?, ?, ?, ?, ?)`,
		r.ExportID, r.CreatedAt, r.Path, r.Positions, r.ExchangeMapped, r.ShortNameUsed,
	)
	return err
}

// ListExports returns the most recent export runs, newest first. A limit of
// zero or less returns everything.
func (j *SQLite) ListExports(limit int) ([]ExportRecord, error) {
	q := `
		SELECT export_id, created_at, path, positions, exchange_mapped, short_name_used
		FROM exports
		ORDER BY created_at DESC, export_id DESC`
	var args []any
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := j.db.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ExportRecord
	for rows.Next() {
		var rec ExportRecord
		if err := rows.Scan(
			&rec.ExportID,
			&rec.CreatedAt,
			&rec.Path,
			&rec.Positions,
			&rec.ExchangeMapped,
			&rec.ShortNameUsed,
		); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (j *SQLite) Close() error {
	return j.db.Close()
}
