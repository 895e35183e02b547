package models

import "encoding/json"

// ID sets are stored as JSON arrays in text columns (same scheme the
// rest of the codebase uses for membership lists).

func decodeIDSet(raw string) []uint {
	if raw == "" {
		return nil
	}
	var ids []uint
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return nil
	}
	return ids
}

func encodeIDSet(ids []uint) string {
	if ids == nil {
		ids = []uint{}
	}
	data, err := json.Marshal(ids)
	if err != nil {
		return "[]"
	}
	return string(data)
}

func idSetContains(raw string, id uint) bool {
	for _, v := range decodeIDSet(raw) {
		if v == id {
			return true
		}
	}
	return false
}

func idSetAppend(raw string, id uint) string {
	ids := decodeIDSet(raw)
	for _, v := range ids {
		if v == id {
			return encodeIDSet(ids)
		}
	}
	return encodeIDSet(append(ids, id))
}

func idSetRemove(raw string, id uint) string {
	ids := decodeIDSet(raw)
	out := make([]uint, 0, len(ids))
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return encodeIDSet(out)
}

func decodeStringSet(raw string) []string {
	if raw == "" {
		return nil
	}
	var values []string
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return nil
	}
	return values
}

func encodeStringSet(values []string) string {
	if values == nil {
		values = []string{}
	}
	data, err := json.Marshal(values)
	if err != nil {
		return "[]"
	}
	return string(data)
}
