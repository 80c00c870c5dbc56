package ingest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/shopspring/decimal"

	"github.com/warp/roster-engine/roster"
)

// offsetEntry mirrors the seed file shape:
//
//	[{"name": "张三", "saved_rest_days": 2.5}, ...]
type offsetEntry struct {
	Name          string          `json:"name"`
	SavedRestDays decimal.Decimal `json:"saved_rest_days"`
}

// LoadOffsets reads the initial saved-rest-days seed file. A missing
// file is not an error: employees without history simply start from
// zero. The table is keyed by name only, matching how the seed data is
// maintained; a renamed employee loses the join and starts from zero.
func LoadOffsets(path string) (roster.OffsetTable, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return roster.OffsetTable{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read offsets file: %w", err)
	}

	var entries []offsetEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse offsets file: %w", err)
	}

	table := make(roster.OffsetTable, len(entries))
	for _, e := range entries {
		if e.Name == "" {
			continue
		}
		table[e.Name] = e.SavedRestDays
	}
	return table, nil
}
