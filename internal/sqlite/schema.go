package sqlite

// Schema DDL. The database is rebuilt from entries.jsonl on every Attach.
const (
	createEntries = `CREATE TABLE entries (
    entry_id TEXT PRIMARY KEY,
    operation TEXT NOT NULL,
    expression TEXT NOT NULL,
    millimeters TEXT NOT NULL,
    unit TEXT NOT NULL,
    result TEXT NOT NULL,
    formatted TEXT NOT NULL DEFAULT '',
    created_at TEXT NOT NULL
);`

	idxEntriesOperation = `CREATE INDEX idx_entries_operation ON entries(operation);`
	idxEntriesUnit      = `CREATE INDEX idx_entries_unit ON entries(unit);`
	idxEntriesCreated   = `CREATE INDEX idx_entries_created ON entries(created_at, entry_id);`
)

// schemaDDL lists all CREATE TABLE statements.
var schemaDDL = []string{
	createEntries,
}

// indexDDL lists all CREATE INDEX statements.
var indexDDL = []string{
	idxEntriesOperation,
	idxEntriesUnit,
	idxEntriesCreated,
}

// entryColumns is the column order used by every entries query.
var entryColumns = []string{
	"entry_id", "operation", "expression", "millimeters", "unit", "result", "formatted", "created_at",
}
