// Package storage is the access layer to the external data store. Rows are
// passed around as column→value maps so that fields this service does not
// know about survive a round trip untouched.
package storage

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"ecosync/backend/internal/query"
)

// Row is one record of a collection.
type Row = map[string]any

// Storage is implemented by every store backend. Implementations must be safe
// for concurrent use; a single instance is shared by all requests. Every
// returned error carries apperror.KindStore.
type Storage interface {
	// Select returns the rows matching q.
	Select(ctx context.Context, q *query.Query) ([]Row, error)
	// Insert writes row into collection and returns what the store stored.
	Insert(ctx context.Context, collection string, row Row) ([]Row, error)
	// Update sets values on every row matched by q's filters and returns the
	// updated rows. An empty values map writes nothing and returns the
	// currently matching rows.
	Update(ctx context.Context, q *query.Query, values Row) ([]Row, error)
	// Delete removes every row matched by q's filters.
	Delete(ctx context.Context, q *query.Query) error
	// Call invokes a server-side procedure with named arguments.
	Call(ctx context.Context, procedure string, args Row) error
}

// First returns the first row or nil.
func First(rows []Row) Row {
	if len(rows) == 0 {
		return nil
	}
	return rows[0]
}

// String returns row[key] as a string. Missing and nil values are "".
func String(row Row, key string) string {
	switch v := row[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return fmt.Sprint(v)
	}
}

// Float converts a numeric column value. JSON decoding yields float64 while
// SQL drivers yield sized integers, so both are accepted.
func Float(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case int16:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	case interface{ Float64() (float64, error) }:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02 15:04:05.999999-07",
	"2006-01-02 15:04:05.999999",
	"2006-01-02",
}

// Time parses a timestamp column. Text values are accepted in RFC 3339, in
// Postgres' text form and in the zone-less ISO form older rows were written
// with (read as UTC).
func Time(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case *time.Time:
		if t == nil {
			return time.Time{}, false
		}
		return *t, true
	case string:
		for _, layout := range timestampLayouts {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed, true
			}
		}
	}
	return time.Time{}, false
}

// Timestamp formats t the way this service writes timestamps.
func Timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// Pick copies the keys of values that appear in fields. Keys present with a
// null value are kept.
func Pick(values Row, fields []string) Row {
	out := Row{}
	for _, f := range fields {
		if v, ok := values[f]; ok {
			out[f] = v
		}
	}
	return out
}
