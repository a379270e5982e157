package api

import (
	"database/sql"
	"strconv"
	"time"
)

// payload is a record body decoded once per request. Accessors take the
// field names in preference order, so callers may send either the
// camelCase API name or the snake_case storage name for mapped fields.
type payload map[string]interface{}

// str returns the first present field coerced to a string, else "".
func (p payload) str(keys ...string) string {
	for _, k := range keys {
		v, ok := p[k]
		if !ok || v == nil {
			continue
		}
		switch s := v.(type) {
		case string:
			return s
		case float64:
			return strconv.FormatFloat(s, 'f', -1, 64)
		case bool:
			return strconv.FormatBool(s)
		}
	}
	return ""
}

// strDefault is str with an explicit fallback for absent fields.
func (p payload) strDefault(def string, keys ...string) string {
	for _, k := range keys {
		if v, ok := p[k]; ok && v != nil {
			return p.str(keys...)
		}
	}
	return def
}

// num returns the first present field coerced to a number. Unparsable and
// missing values fall back to 0.
func (p payload) num(keys ...string) float64 {
	for _, k := range keys {
		v, ok := p[k]
		if !ok || v == nil {
			continue
		}
		switch n := v.(type) {
		case float64:
			return n
		case string:
			if f, err := strconv.ParseFloat(n, 64); err == nil {
				return f
			}
		}
	}
	return 0
}

// date returns the field as a date string, or nil when missing or empty,
// so date-typed columns stay NULL rather than "".
func (p payload) date(key string) *string {
	s := p.str(key)
	if s == "" {
		return nil
	}
	return &s
}

// id returns the record identifier, empty when the caller supplied none.
func (p payload) id() string {
	return p.str("id")
}

// createdAt parses a caller-supplied creation timestamp, accepting either
// naming convention, and falls back to now. Used by bulk replace-all,
// which preserves the client's original creation times.
func (p payload) createdAt() time.Time {
	for _, k := range []string{"createdAt", "created_at"} {
		if s := p.str(k); s != "" {
			if t, err := time.Parse(time.RFC3339, s); err == nil {
				return t
			}
		}
	}
	return time.Now().UTC()
}

// newRecordID assigns an identifier from the wall clock, millisecond
// resolution, matching what clients already generate locally. Concurrent
// creates inside the same millisecond would collide; accepted for this
// single-user workload.
func newRecordID() string {
	return strconv.FormatInt(time.Now().UnixMilli(), 10)
}

func nullFloat(v float64) sql.NullFloat64 {
	return sql.NullFloat64{Float64: v, Valid: true}
}

// numValue reads a nullable numeric column, 0 when NULL.
func numValue(v sql.NullFloat64) float64 {
	if !v.Valid {
		return 0
	}
	return v.Float64
}

// timeValue formats a storage timestamp for the API, "" for the zero time.
func timeValue(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
