// Package ingest turns loosely structured third-party event records into
// domain events. Upstream payloads disagree on field names and nesting, so
// every field is read through an ordered list of accessors and the first
// usable value wins.
package ingest

import (
	"strconv"
	"strings"
	"time"
)

// Record is one decoded JSON object.
type Record map[string]any

// Accessor extracts a raw value from a record.
type Accessor func(Record) (any, bool)

// Key reads a top-level field.
func Key(name string) Accessor {
	return func(r Record) (any, bool) {
		v, ok := r[name]
		return v, ok && v != nil
	}
}

// Path reads a field nested in objects, e.g. Path("location", "borough").
func Path(keys ...string) Accessor {
	return func(r Record) (any, bool) {
		var cur any = map[string]any(r)
		for _, k := range keys {
			m, ok := asMap(cur)
			if !ok {
				return nil, false
			}
			cur, ok = m[k]
			if !ok || cur == nil {
				return nil, false
			}
		}
		return cur, true
	}
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case Record:
		return m, true
	default:
		return nil, false
	}
}

// FirstString returns the first non-blank string produced by accessors.
// Numbers are formatted without trailing zeros. def is returned when nothing
// matches.
func FirstString(r Record, def string, accessors ...Accessor) string {
	for _, a := range accessors {
		v, ok := a(r)
		if !ok {
			continue
		}
		if s, ok := toString(v); ok {
			return s
		}
	}
	return def
}

func toString(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		s := strings.TrimSpace(x)
		return s, s != ""
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), true
	case int:
		return strconv.Itoa(x), true
	case bool:
		return strconv.FormatBool(x), true
	default:
		return "", false
	}
}

// FirstFloat returns the first numeric value produced by accessors. Numeric
// strings are accepted.
func FirstFloat(r Record, accessors ...Accessor) (float64, bool) {
	for _, a := range accessors {
		v, ok := a(r)
		if !ok {
			continue
		}
		switch x := v.(type) {
		case float64:
			return x, true
		case int:
			return float64(x), true
		case string:
			f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
			if err == nil {
				return f, true
			}
		}
	}
	return 0, false
}

// timeLayouts are tried in order for string timestamps.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"January 2, 2006",
	"Jan 2, 2006",
	"Monday, January 2, 2006",
}

// FirstTime returns the first timestamp produced by accessors. Strings are
// parsed with the common ISO and long-form date layouts. Numbers are always
// Unix milliseconds, so a value in Unix seconds decodes to January 1970.
func FirstTime(r Record, accessors ...Accessor) (time.Time, bool) {
	for _, a := range accessors {
		v, ok := a(r)
		if !ok {
			continue
		}
		if t, ok := parseTime(v); ok {
			return t, true
		}
	}
	return time.Time{}, false
}

func parseTime(v any) (time.Time, bool) {
	switch x := v.(type) {
	case time.Time:
		return x, !x.IsZero()
	case float64:
		return time.UnixMilli(int64(x)).UTC(), true
	case string:
		s := strings.TrimSpace(x)
		for _, layout := range timeLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}
