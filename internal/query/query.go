// Package query describes reads and writes against a named collection of the
// external store: equality filters joined with AND, an optional ordering and
// an optional row limit. Store backends translate a Query into their own wire
// form; nothing here talks to the network.
package query

import (
	"errors"
	"strings"
)

// Filter is an equality condition on one field.
type Filter struct {
	Field string
	Value any
}

// Order sorts results by one field.
type Order struct {
	Field string
	Desc  bool
}

// Query targets one collection. The zero Limit means "no limit".
type Query struct {
	Collection string
	Columns    string
	Filters    []Filter
	Order      *Order
	Limit      int
}

// From starts a query selecting every column of collection.
func From(collection string) *Query {
	return &Query{Collection: collection, Columns: "*"}
}

// Select restricts the returned columns, e.g. "id, full_name, total_points".
func (q *Query) Select(columns string) *Query {
	q.Columns = columns
	return q
}

// Eq adds an equality filter. The value is matched literally.
func (q *Query) Eq(field string, value any) *Query {
	q.Filters = append(q.Filters, Filter{Field: field, Value: value})
	return q
}

// EqIfSet adds an equality filter only when value is non-empty, so that an
// absent request parameter never turns into "match empty string".
func (q *Query) EqIfSet(field, value string) *Query {
	if value == "" {
		return q
	}
	return q.Eq(field, value)
}

// OrderBy sets the sort field and direction.
func (q *Query) OrderBy(field string, desc bool) *Query {
	q.Order = &Order{Field: field, Desc: desc}
	return q
}

// Take limits the number of returned rows. n <= 0 removes the limit.
func (q *Query) Take(n int) *Query {
	if n < 0 {
		n = 0
	}
	q.Limit = n
	return q
}

// WithDefaults fills in the ordering and limit used by list endpoints when
// the caller did not ask for one: newest first, at most limit rows.
func (q *Query) WithDefaults(orderField string, limit int) *Query {
	if q.Order == nil && orderField != "" {
		q.OrderBy(orderField, true)
	}
	if q.Limit == 0 {
		q.Take(limit)
	}
	return q
}

// ColumnList returns the selected column names, or nil for "*".
func (q *Query) ColumnList() []string {
	cols := strings.TrimSpace(q.Columns)
	if cols == "" || cols == "*" {
		return nil
	}
	parts := strings.Split(cols, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

var errNoCollection = errors.New("query has no collection")

// Validate reports structurally unusable queries.
func (q *Query) Validate() error {
	if q == nil || strings.TrimSpace(q.Collection) == "" {
		return errNoCollection
	}
	for _, f := range q.Filters {
		if f.Field == "" {
			return errors.New("filter with empty field on " + q.Collection)
		}
	}
	if q.Order != nil && q.Order.Field == "" {
		return errors.New("order with empty field on " + q.Collection)
	}
	return nil
}
