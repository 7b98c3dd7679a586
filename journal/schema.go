package journal

const Schema = `
CREATE TABLE IF NOT EXISTS exports (
	export_id TEXT PRIMARY KEY,
	created_at DATETIME NOT NULL,
	path TEXT NOT NULL,
	positions INTEGER NOT NULL,
	exchange_mapped INTEGER NOT NULL,
	short_name_used INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_exports_created_at ON exports(created_at);
`
