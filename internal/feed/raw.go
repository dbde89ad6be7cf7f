// SPDX-License-Identifier: MIT

// Package feed decodes provider match collections into tolerant raw records.
//
// Upstream feeds disagree on field names, nesting and value types for the
// same logical data, so records are kept as untyped maps and read through
// accessor helpers that coerce on demand. Schema binding happens later, in
// the provider layer.
package feed

import (
	"encoding/json"
	"strconv"
	"strings"
)

// RawMatch is one match record as delivered by an upstream feed. Any key may
// be absent, empty or carry an unexpected type.
type RawMatch map[string]any

// Str returns the stringified value for key, trimmed. Numbers are rendered
// without a decimal part. Missing keys and unsupported types yield "".
func (m RawMatch) Str(key string) string {
	return stringify(m[key])
}

// NestedStr resolves a dot-separated path such as "cdn.Primary_Playback_URL"
// through nested objects and stringifies the leaf. Any missing hop yields "".
func (m RawMatch) NestedStr(path string) string {
	parts := strings.Split(path, ".")
	var cur any = map[string]any(m)
	for _, p := range parts {
		obj, ok := cur.(map[string]any)
		if !ok {
			return ""
		}
		cur, ok = obj[p]
		if !ok {
			return ""
		}
	}
	return stringify(cur)
}

// First returns the first non-empty value among the given keys. Keys
// containing a dot are resolved as nested paths.
func (m RawMatch) First(keys ...string) string {
	for _, k := range keys {
		var v string
		if strings.Contains(k, ".") {
			v = m.NestedStr(k)
		} else {
			v = m.Str(k)
		}
		if v != "" {
			return v
		}
	}
	return ""
}

// Bool reads key as a flag. JSON booleans are taken as-is, numbers are true
// when non-zero, strings are true unless empty, "0" or "false".
func (m RawMatch) Bool(key string) bool {
	switch x := m[key].(type) {
	case bool:
		return x
	case float64:
		return x != 0
	case string:
		s := strings.TrimSpace(x)
		return s != "" && s != "0" && !strings.EqualFold(s, "false")
	default:
		return false
	}
}

// Int reads key as an integer, accepting JSON numbers and digit strings.
func (m RawMatch) Int(key string) (int, bool) {
	switch x := m[key].(type) {
	case float64:
		return int(x), true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(x))
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

func stringify(v any) string {
	switch x := v.(type) {
	case string:
		return strings.TrimSpace(x)
	case float64:
		if x == float64(int64(x)) {
			return strconv.FormatInt(int64(x), 10)
		}
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	default:
		return ""
	}
}

// DecodeCollection parses one feed payload. When envelopeKey is non-empty
// the payload must be an object and records are read from that key; when it
// is empty the payload must be a bare array. A payload of the wrong shape
// yields no records and no error, matching the tolerant posture of the
// pipeline: a malformed feed degrades to an empty batch.
func DecodeCollection(data []byte, envelopeKey string) ([]RawMatch, error) {
	if envelopeKey != "" {
		var envelope map[string]json.RawMessage
		if err := json.Unmarshal(data, &envelope); err != nil {
			return nil, err
		}
		inner, ok := envelope[envelopeKey]
		if !ok {
			return nil, nil
		}
		return decodeList(inner)
	}
	return decodeList(data)
}

func decodeList(data []byte) ([]RawMatch, error) {
	var items []RawMatch
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}
	out := items[:0]
	for _, it := range items {
		if it != nil {
			out = append(out, it)
		}
	}
	return out, nil
}
