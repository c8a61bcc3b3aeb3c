package sqlite

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/mesh-intelligence/yardstick/pkg/types"
)

// timeLayout is fixed width so that created_at sorts as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// entryJSON represents an entry in entries.jsonl.
type entryJSON struct {
	EntryID     string `json:"entry_id"`
	Operation   string `json:"operation"`
	Expression  string `json:"expression"`
	Millimeters string `json:"millimeters"`
	Unit        string `json:"unit"`
	Result      string `json:"result"`
	Formatted   string `json:"formatted"`
	CreatedAt   string `json:"created_at"`
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Parse(time.RFC3339Nano, s)
	}
	return t, nil
}

// dehydrateEntry converts an entry to its JSONL record.
func dehydrateEntry(e *types.Entry) (json.RawMessage, error) {
	rec := entryJSON{
		EntryID:     e.EntryID,
		Operation:   e.Operation,
		Expression:  e.Expression,
		Millimeters: e.Millimeters,
		Unit:        e.Unit,
		Result:      e.Result,
		Formatted:   e.Formatted,
		CreatedAt:   formatTime(e.CreatedAt),
	}
	b, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("marshaling entry %s: %w", e.EntryID, err)
	}
	return b, nil
}
