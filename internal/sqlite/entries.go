package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/yardstick/pkg/types"
)

var selectEntries = "SELECT " + strings.Join(entryColumns, ", ") + " FROM entries"

// Record stores entry. An empty EntryID gets a new UUID v7 and a zero
// CreatedAt is set to now. Recording an existing ID replaces that entry.
func (b *Backend) Record(entry *types.Entry) (string, error) {
	if entry == nil {
		return "", types.ErrInvalidEntry
	}
	if err := entry.Validate(); err != nil {
		return "", err
	}
	if entry.EntryID != "" {
		if _, err := uuid.Parse(entry.EntryID); err != nil {
			return "", fmt.Errorf("%w: %q", types.ErrInvalidID, entry.EntryID)
		}
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return "", types.ErrLogbookDetached
	}

	if entry.EntryID == "" {
		entry.EntryID = generateUUID()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	entry.Unit = canonicalUnit(entry.Unit)

	_, err := b.db.Exec(insertSQL()+`
		ON CONFLICT(entry_id) DO UPDATE SET
			operation = excluded.operation,
			expression = excluded.expression,
			millimeters = excluded.millimeters,
			unit = excluded.unit,
			result = excluded.result,
			formatted = excluded.formatted`,
		entryArgs(entry)...)
	if err != nil {
		return "", fmt.Errorf("upserting entry: %w", err)
	}

	if err := b.persistLocked(); err != nil {
		return "", err
	}
	return entry.EntryID, nil
}

// Get retrieves an entry by ID.
// Returns ErrInvalidID if id is empty, ErrNotFound if not found.
func (b *Backend) Get(id string) (*types.Entry, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrLogbookDetached
	}

	row := b.db.QueryRow(selectEntries+" WHERE entry_id = ?", id)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, types.ErrNotFound
	}
	return e, err
}

// Delete removes an entry by ID.
// Returns ErrInvalidID if id is empty, ErrNotFound if not found.
func (b *Backend) Delete(id string) error {
	if id == "" {
		return types.ErrInvalidID
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return types.ErrLogbookDetached
	}

	res, err := b.db.Exec("DELETE FROM entries WHERE entry_id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting entry: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting entry: %w", err)
	}
	if n == 0 {
		return types.ErrNotFound
	}
	return b.persistLocked()
}

// List returns entries matching filter ordered by creation time, then ID.
// A positive Limit keeps the most recent Limit entries.
func (b *Backend) List(filter types.EntryFilter) ([]*types.Entry, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrLogbookDetached
	}

	var conditions []string
	var args []any
	if filter.Operation != "" {
		conditions = append(conditions, "operation = ?")
		args = append(args, filter.Operation)
	}
	if filter.Unit != "" {
		conditions = append(conditions, "unit = ?")
		args = append(args, canonicalUnit(filter.Unit))
	}

	query := selectEntries
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	if filter.Limit > 0 {
		query = fmt.Sprintf("SELECT * FROM (%s ORDER BY created_at DESC, entry_id DESC LIMIT %d)", query, filter.Limit)
	}
	query += " ORDER BY created_at, entry_id"

	rows, err := b.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing entries: %w", err)
	}
	defer rows.Close()

	results := []*types.Entry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, e)
	}
	return results, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (*types.Entry, error) {
	var e types.Entry
	var createdAt string
	err := row.Scan(&e.EntryID, &e.Operation, &e.Expression, &e.Millimeters,
		&e.Unit, &e.Result, &e.Formatted, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scanning entry: %w", err)
	}
	e.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing entry created_at: %w", err)
	}
	return &e, nil
}

// persistLocked rewrites entries.jsonl from the database.
// The caller must hold b.mu.
func (b *Backend) persistLocked() error {
	rows, err := b.db.Query(selectEntries + " ORDER BY created_at, entry_id")
	if err != nil {
		return fmt.Errorf("reading entries for JSONL: %w", err)
	}
	defer rows.Close()

	var records []json.RawMessage
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return err
		}
		rec, err := dehydrateEntry(e)
		if err != nil {
			return err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	return writeJSONL(filepath.Join(b.dataDir, entriesJSONL), records)
}
