package store

import (
	"encoding/json"
	"fmt"
)

// Record helpers shared by the repositories. Records are JSON objects keyed by
// a single string field; the helpers stay ignorant of domain types.

func recordKey(raw json.RawMessage, keyField string) (string, bool) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return "", false
	}
	var key string
	if err := json.Unmarshal(obj[keyField], &key); err != nil {
		return "", false
	}
	return key, key != ""
}

// FindRecord returns the first record whose keyField equals key.
func FindRecord(records []json.RawMessage, keyField, key string) (json.RawMessage, bool) {
	for _, raw := range records {
		if k, ok := recordKey(raw, keyField); ok && k == key {
			return raw, true
		}
	}
	return nil, false
}

// UpsertRecord merges incoming into the record sharing its keyField value, or
// appends it when no such record exists. The merge is shallow and
// presence-based: only fields present in incoming's JSON encoding overwrite
// the stored ones, so partial writes preserve everything else.
func UpsertRecord(records []json.RawMessage, keyField string, incoming any) ([]json.RawMessage, error) {
	data, err := json.Marshal(incoming)
	if err != nil {
		return nil, err
	}
	var patch map[string]json.RawMessage
	if err := json.Unmarshal(data, &patch); err != nil {
		return nil, fmt.Errorf("store: record must be a JSON object: %w", err)
	}
	key, ok := recordKey(data, keyField)
	if !ok {
		return nil, fmt.Errorf("store: record is missing key field %q", keyField)
	}

	for i, raw := range records {
		k, ok := recordKey(raw, keyField)
		if !ok || k != key {
			continue
		}
		var existing map[string]json.RawMessage
		if err := json.Unmarshal(raw, &existing); err != nil {
			// Unreadable record under the same slot: replace it wholesale.
			records[i] = json.RawMessage(data)
			return records, nil
		}
		for field, value := range patch {
			existing[field] = value
		}
		merged, err := json.Marshal(existing)
		if err != nil {
			return nil, err
		}
		records[i] = merged
		return records, nil
	}

	return append(records, json.RawMessage(data)), nil
}

// DeleteRecord removes every record whose keyField equals key and reports
// whether anything was removed.
func DeleteRecord(records []json.RawMessage, keyField, key string) ([]json.RawMessage, bool) {
	next := records[:0]
	removed := false
	for _, raw := range records {
		if k, ok := recordKey(raw, keyField); ok && k == key {
			removed = true
			continue
		}
		next = append(next, raw)
	}
	return next, removed
}
