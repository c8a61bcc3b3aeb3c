package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mesh-intelligence/yardstick/pkg/types"
	"github.com/mesh-intelligence/yardstick/pkg/units"
)

// loadJSONL reads entries.jsonl and inserts its records into SQLite inside
// one transaction. Malformed lines, records failing validation, and
// duplicate IDs are skipped. Unknown fields are ignored.
func loadJSONL(db *sql.DB, dataDir string) (loaded int, err error) {
	records, err := readJSONL(filepath.Join(dataDir, entriesJSONL))
	if err != nil {
		return 0, err
	}
	if len(records) == 0 {
		return 0, nil
	}

	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning load transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(insertSQL())
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range records {
		var obj entryJSON
		if err := json.Unmarshal(rec, &obj); err != nil {
			continue
		}
		e, err := hydrateEntry(obj)
		if err != nil {
			continue
		}
		if _, err := stmt.Exec(entryArgs(e)...); err != nil {
			continue
		}
		loaded++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing load transaction: %w", err)
	}
	return loaded, nil
}

// hydrateEntry converts a JSONL record into a validated entry.
func hydrateEntry(rec entryJSON) (*types.Entry, error) {
	if rec.EntryID == "" {
		return nil, types.ErrInvalidID
	}
	createdAt, err := parseTime(rec.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	e := &types.Entry{
		EntryID:     rec.EntryID,
		Operation:   rec.Operation,
		Expression:  rec.Expression,
		Millimeters: rec.Millimeters,
		Unit:        rec.Unit,
		Result:      rec.Result,
		Formatted:   rec.Formatted,
		CreatedAt:   createdAt,
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}
	e.Unit = canonicalUnit(e.Unit)
	return e, nil
}

// canonicalUnit maps any accepted spelling to the unit abbreviation.
func canonicalUnit(name string) string {
	u, err := units.Lookup(name)
	if err != nil {
		return name
	}
	return u.Abbreviation()
}

func insertSQL() string {
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(entryColumns)), ", ")
	return fmt.Sprintf("INSERT INTO entries (%s) VALUES (%s)",
		strings.Join(entryColumns, ", "), placeholders)
}

func entryArgs(e *types.Entry) []any {
	return []any{
		e.EntryID, e.Operation, e.Expression, e.Millimeters,
		e.Unit, e.Result, e.Formatted, formatTime(e.CreatedAt),
	}
}
