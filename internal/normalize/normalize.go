// Package normalize turns heterogeneous store values (nullable numerics,
// localized-text maps, timestamps) into canonical typed fields. Raw
// source representations never reach the output model.
package normalize

import (
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

// MalformedFieldError reports a source value whose shape cannot be
// normalized into the requested type.
type MalformedFieldError struct {
	Value any
}

func (e *MalformedFieldError) Error() string {
	return fmt.Sprintf("malformed field value %v (%T)", e.Value, e.Value)
}

// FloatOrDefault converts a nullable numeric value. Null or missing
// yields def; numeric-looking strings are parsed; anything else is a
// MalformedFieldError.
func FloatOrDefault(v any, def float64) (float64, error) {
	switch n := v.(type) {
	case nil:
		return def, nil
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case int32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case pgtype.Numeric:
		if !n.Valid {
			return def, nil
		}
		f, err := n.Float64Value()
		if err != nil {
			return 0, &MalformedFieldError{Value: v}
		}
		return f.Float64, nil
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0, &MalformedFieldError{Value: v}
		}
		return f, nil
	default:
		return 0, &MalformedFieldError{Value: v}
	}
}

// ISOTime renders a timestamp value as RFC 3339 UTC, or nil for null.
func ISOTime(v any) *string {
	t, ok := timeValue(v)
	if !ok {
		return nil
	}
	s := t.UTC().Format(time.RFC3339)
	return &s
}

// Time extracts a timestamp value, zero time for null.
func Time(v any) time.Time {
	t, _ := timeValue(v)
	return t
}

func timeValue(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case pgtype.Timestamp:
		return t.Time, t.Valid
	case pgtype.Timestamptz:
		return t.Time, t.Valid
	default:
		return time.Time{}, false
	}
}

// Int64 extracts an integer id, 0 for null.
func Int64(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int32:
		return int64(n)
	case int:
		return int64(n)
	case float64:
		return int64(n)
	default:
		return 0
	}
}

// Int64Ptr is Int64 with null preserved.
func Int64Ptr(v any) *int64 {
	if v == nil {
		return nil
	}
	n := Int64(v)
	return &n
}

// String extracts a text value, "" for null.
func String(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case []byte:
		return string(s)
	default:
		return ""
	}
}

// StringPtr is String with null preserved.
func StringPtr(v any) *string {
	if v == nil {
		return nil
	}
	s := String(v)
	return &s
}

// Bool extracts a boolean value, false for null.
func Bool(v any) bool {
	b, _ := v.(bool)
	return b
}
