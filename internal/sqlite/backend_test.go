package sqlite

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/yardstick/pkg/types"
)

func attach(t *testing.T, dir string) *Backend {
	t.Helper()
	b := NewBackend()
	require.NoError(t, b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: dir}))
	t.Cleanup(func() { b.Detach() })
	return b
}

func newEntry(op, expr, mm, unit string) *types.Entry {
	return &types.Entry{
		Operation:   op,
		Expression:  expr,
		Millimeters: mm,
		Unit:        unit,
		Result:      expr,
	}
}

func TestBackend_Attach(t *testing.T) {
	dir := t.TempDir()
	b := attach(t, dir)

	assert.FileExists(t, filepath.Join(dir, dbFile))
	assert.FileExists(t, filepath.Join(dir, entriesJSONL))
	assert.Equal(t, dir, b.DataDir())

	err := b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: dir})
	assert.ErrorIs(t, err, types.ErrAlreadyAttached)
}

func TestBackend_AttachCreatesDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	attach(t, dir)
	assert.DirExists(t, dir)
}

func TestBackend_AttachInvalidConfig(t *testing.T) {
	b := NewBackend()
	assert.ErrorIs(t, b.Attach(types.Config{}), types.ErrBackendEmpty)
	assert.ErrorIs(t, b.Attach(types.Config{Backend: "postgres"}), types.ErrBackendUnknown)
}

func TestBackend_Detach(t *testing.T) {
	b := attach(t, t.TempDir())

	require.NoError(t, b.Detach())
	require.NoError(t, b.Detach())

	_, err := b.Record(newEntry(types.OperationConvert, "3ft", "914.4", "yd"))
	assert.ErrorIs(t, err, types.ErrLogbookDetached)
	_, err = b.Get("anything")
	assert.ErrorIs(t, err, types.ErrLogbookDetached)
	assert.ErrorIs(t, b.Delete("anything"), types.ErrLogbookDetached)
	_, err = b.List(types.EntryFilter{})
	assert.ErrorIs(t, err, types.ErrLogbookDetached)
}

func TestBackend_RecordAndGet(t *testing.T) {
	b := attach(t, t.TempDir())

	e := newEntry(types.OperationCalc, "3ft + 4in", "1016", "FT")
	e.Formatted = "1yd 4in"
	id, err := b.Record(e)
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.Equal(t, id, e.EntryID)
	assert.False(t, e.CreatedAt.IsZero())

	got, err := b.Get(id)
	require.NoError(t, err)
	assert.Equal(t, "3ft + 4in", got.Expression)
	assert.Equal(t, "1016", got.Millimeters)
	assert.Equal(t, "ft", got.Unit)
	assert.Equal(t, "1yd 4in", got.Formatted)
	assert.WithinDuration(t, e.CreatedAt, got.CreatedAt, time.Microsecond)
}

func TestBackend_RecordRejectsInvalid(t *testing.T) {
	b := attach(t, t.TempDir())

	_, err := b.Record(nil)
	assert.ErrorIs(t, err, types.ErrInvalidEntry)

	_, err = b.Record(newEntry("measure", "3ft", "914.4", "ft"))
	assert.ErrorIs(t, err, types.ErrInvalidEntry)

	e := newEntry(types.OperationParse, "3ft", "914.4", "ft")
	e.EntryID = "not-a-uuid"
	_, err = b.Record(e)
	assert.ErrorIs(t, err, types.ErrInvalidID)
}

func TestBackend_RecordReplacesExisting(t *testing.T) {
	b := attach(t, t.TempDir())

	e := newEntry(types.OperationParse, "3ft", "914.4", "ft")
	id, err := b.Record(e)
	require.NoError(t, err)

	e.Formatted = "1yd"
	_, err = b.Record(e)
	require.NoError(t, err)

	all, err := b.List(types.EntryFilter{})
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, id, all[0].EntryID)
	assert.Equal(t, "1yd", all[0].Formatted)
}

func TestBackend_GetAndDeleteErrors(t *testing.T) {
	b := attach(t, t.TempDir())

	_, err := b.Get("")
	assert.ErrorIs(t, err, types.ErrInvalidID)
	_, err = b.Get("01890000-0000-7000-8000-000000000000")
	assert.ErrorIs(t, err, types.ErrNotFound)

	assert.ErrorIs(t, b.Delete(""), types.ErrInvalidID)
	assert.ErrorIs(t, b.Delete("01890000-0000-7000-8000-000000000000"), types.ErrNotFound)
}

func TestBackend_Delete(t *testing.T) {
	dir := t.TempDir()
	b := attach(t, dir)

	id, err := b.Record(newEntry(types.OperationConvert, "1m", "1000", "in"))
	require.NoError(t, err)
	require.NoError(t, b.Delete(id))

	_, err = b.Get(id)
	assert.ErrorIs(t, err, types.ErrNotFound)

	data, err := os.ReadFile(filepath.Join(dir, entriesJSONL))
	require.NoError(t, err)
	assert.Empty(t, strings.TrimSpace(string(data)))
}

func TestBackend_List(t *testing.T) {
	b := attach(t, t.TempDir())
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	seed := []*types.Entry{
		newEntry(types.OperationConvert, "1m", "1000", "in"),
		newEntry(types.OperationCalc, "1ft + 1in", "330.2", "ft"),
		newEntry(types.OperationConvert, "2yd", "1828.8", "ft"),
		newEntry(types.OperationFormat, "89.25in", "2266.95", "in"),
	}
	for i, e := range seed {
		e.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		_, err := b.Record(e)
		require.NoError(t, err)
	}

	tests := []struct {
		name   string
		filter types.EntryFilter
		want   []string
	}{
		{"empty filter returns all oldest first", types.EntryFilter{}, []string{"1m", "1ft + 1in", "2yd", "89.25in"}},
		{"by operation", types.EntryFilter{Operation: types.OperationConvert}, []string{"1m", "2yd"}},
		{"by unit", types.EntryFilter{Unit: "Feet"}, []string{"1ft + 1in", "2yd"}},
		{"by operation and unit", types.EntryFilter{Operation: types.OperationConvert, Unit: "in"}, []string{"1m"}},
		{"limit keeps most recent", types.EntryFilter{Limit: 2}, []string{"2yd", "89.25in"}},
		{"no match", types.EntryFilter{Operation: types.OperationParse}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := b.List(tt.filter)
			require.NoError(t, err)
			exprs := make([]string, 0, len(got))
			for _, e := range got {
				exprs = append(exprs, e.Expression)
			}
			assert.Equal(t, tt.want, exprs)
		})
	}
}

func TestBackend_ReattachLoadsJSONL(t *testing.T) {
	dir := t.TempDir()

	b := NewBackend()
	cfg := types.Config{Backend: types.BackendSQLite, DataDir: dir}
	require.NoError(t, b.Attach(cfg))
	id, err := b.Record(newEntry(types.OperationConvert, "3ft", "914.4", "yd"))
	require.NoError(t, err)
	require.NoError(t, b.Detach())

	require.NoError(t, b.Attach(cfg))
	defer b.Detach()
	assert.Equal(t, 1, b.Loaded())

	got, err := b.Get(id)
	require.NoError(t, err)
	assert.Equal(t, "3ft", got.Expression)
}

func TestBackend_LoadSkipsBadLines(t *testing.T) {
	dir := t.TempDir()
	lines := []string{
		`{"entry_id":"01890000-0000-7000-8000-000000000001","operation":"convert","expression":"1in","millimeters":"25.4","unit":"in","result":"1in","formatted":"","created_at":"2026-03-01T12:00:00.000000000Z","future_field":true}`,
		`not json`,
		`{"entry_id":"01890000-0000-7000-8000-000000000002","operation":"bogus","expression":"1in","millimeters":"25.4","unit":"in","result":"1in","created_at":"2026-03-01T12:00:00Z"}`,
		`{"entry_id":"01890000-0000-7000-8000-000000000001","operation":"parse","expression":"dup","millimeters":"1","unit":"mm","result":"1mm","created_at":"2026-03-01T12:00:00Z"}`,
		``,
		`{"entry_id":"01890000-0000-7000-8000-000000000003","operation":"parse","expression":"2cm","millimeters":"20","unit":"cm","result":"2cm","created_at":"2026-03-01T12:01:00Z"}`,
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, entriesJSONL), []byte(strings.Join(lines, "\n")+"\n"), 0o644))

	b := attach(t, dir)
	assert.Equal(t, 2, b.Loaded())

	all, err := b.List(types.EntryFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "1in", all[0].Expression)
	assert.Equal(t, "2cm", all[1].Expression)
}

func TestWriteJSONL_Atomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, entriesJSONL)

	require.NoError(t, writeJSONL(path, nil))
	require.NoError(t, writeJSONL(path, []json.RawMessage{
		json.RawMessage(`{"a":1}`),
		json.RawMessage(`{"b":2}`),
	}))

	records, err := readJSONL(path)
	require.NoError(t, err)
	assert.Len(t, records, 2)

	leftovers, err := filepath.Glob(filepath.Join(dir, ".jsonl-*.tmp"))
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}
