package persist

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/goliatone/go-dashboard/pkg/interfaces"
)

// FormatVersion gates snapshot compatibility; import and startup restore
// both require an exact match.
const FormatVersion = "1.0"

// StorageKey names the durable blob holding the grid snapshot.
const StorageKey = "dashboardConfig"

type widgetRecord struct {
	Type   string          `json:"type"`
	ID     json.RawMessage `json:"id,omitempty"`
	Config json.RawMessage `json:"config,omitempty"`
}

type snapshotDocument struct {
	Version string         `json:"version"`
	SavedAt string         `json:"savedAt"`
	Widgets []widgetRecord `json:"widgets"`
}

type exportDocument struct {
	Version      string         `json:"version"`
	SavedAt      string         `json:"savedAt"`
	ExportedAt   string         `json:"exportedAt"`
	TotalWidgets int            `json:"totalWidgets"`
	Widgets      []widgetRecord `json:"widgets"`
}

func encodeRecords(entries []interfaces.SnapshotEntry) ([]widgetRecord, error) {
	records := make([]widgetRecord, 0, len(entries))
	for _, entry := range entries {
		record := widgetRecord{Type: entry.Type}

		id, err := json.Marshal(entry.ID)
		if err != nil {
			return nil, fmt.Errorf("persist: encode widget id: %w", err)
		}
		record.ID = id

		config := entry.Config
		if config == nil {
			config = map[string]any{}
		}
		raw, err := json.Marshal(config)
		if err != nil {
			return nil, fmt.Errorf("persist: encode widget config: %w", err)
		}
		record.Config = raw

		records = append(records, record)
	}
	return records, nil
}

func decodeRecords(records []widgetRecord) ([]interfaces.SnapshotEntry, error) {
	entries := make([]interfaces.SnapshotEntry, 0, len(records))
	for i, record := range records {
		id, err := decodeID(record.ID)
		if err != nil {
			return nil, fmt.Errorf("persist: widget %d: %w", i, err)
		}
		config, err := decodeConfig(record.Config)
		if err != nil {
			return nil, fmt.Errorf("persist: widget %d: %w", i, err)
		}
		entries = append(entries, interfaces.SnapshotEntry{
			Type:   record.Type,
			ID:     id,
			Config: config,
		})
	}
	return entries, nil
}

// decodeID accepts both string ids and the numeric ids older snapshots carry.
func decodeID(raw json.RawMessage) (string, error) {
	if len(raw) == 0 {
		return "", nil
	}
	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		return str, nil
	}
	var num json.Number
	if err := json.Unmarshal(raw, &num); err == nil {
		return num.String(), nil
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return strconv.FormatFloat(f, 'f', -1, 64), nil
	}
	return "", fmt.Errorf("id is neither a string nor a number")
}

// decodeConfig accepts a native object or the legacy form where the
// configuration object was serialized a second time into a JSON string.
func decodeConfig(raw json.RawMessage) (map[string]any, error) {
	if len(raw) == 0 {
		return map[string]any{}, nil
	}

	var config map[string]any
	if err := json.Unmarshal(raw, &config); err == nil {
		if config == nil {
			config = map[string]any{}
		}
		return config, nil
	}

	var encoded string
	if err := json.Unmarshal(raw, &encoded); err == nil {
		if encoded == "" {
			return map[string]any{}, nil
		}
		if err := json.Unmarshal([]byte(encoded), &config); err != nil {
			return nil, fmt.Errorf("config string is not valid JSON: %w", err)
		}
		if config == nil {
			config = map[string]any{}
		}
		return config, nil
	}

	return nil, fmt.Errorf("config is neither an object nor an encoded string")
}
