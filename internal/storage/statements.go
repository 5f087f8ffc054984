package storage

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"ecosync/backend/internal/query"

	"github.com/goccy/go-json"
	"github.com/lib/pq"
)

// The write paths build SQL by hand because they need RETURNING * into
// untyped rows. Identifiers are always quoted; values always go through
// placeholders.

func insertStatement(collection string, row Row) (string, []any, error) {
	if strings.TrimSpace(collection) == "" {
		return "", nil, errors.New("insert without collection")
	}
	if len(row) == 0 {
		return fmt.Sprintf("INSERT INTO %s DEFAULT VALUES RETURNING *", pq.QuoteIdentifier(collection)), nil, nil
	}

	keys := sortedKeys(row)
	cols := make([]string, len(keys))
	marks := make([]string, len(keys))
	args := make([]any, len(keys))
	for i, k := range keys {
		cols[i] = pq.QuoteIdentifier(k)
		marks[i] = "?"
		args[i] = sqlValue(row[k])
	}
	stmt := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING *",
		pq.QuoteIdentifier(collection), strings.Join(cols, ", "), strings.Join(marks, ", "))
	return stmt, args, nil
}

func updateStatement(q *query.Query, values Row) (string, []any, error) {
	if err := q.Validate(); err != nil {
		return "", nil, err
	}
	keys := sortedKeys(values)
	sets := make([]string, len(keys))
	args := make([]any, 0, len(keys)+len(q.Filters))
	for i, k := range keys {
		sets[i] = pq.QuoteIdentifier(k) + " = ?"
		args = append(args, sqlValue(values[k]))
	}
	where, whereArgs := whereClause(q.Filters)
	args = append(args, whereArgs...)
	stmt := fmt.Sprintf("UPDATE %s SET %s%s RETURNING *",
		pq.QuoteIdentifier(q.Collection), strings.Join(sets, ", "), where)
	return stmt, args, nil
}

func deleteStatement(q *query.Query) (string, []any, error) {
	if err := q.Validate(); err != nil {
		return "", nil, err
	}
	where, args := whereClause(q.Filters)
	return fmt.Sprintf("DELETE FROM %s%s", pq.QuoteIdentifier(q.Collection), where), args, nil
}

// callStatement uses Postgres named-argument notation, which is how the REST
// gateway maps a JSON body onto function parameters.
func callStatement(procedure string, args Row) (string, []any, error) {
	if strings.TrimSpace(procedure) == "" {
		return "", nil, errors.New("call without procedure name")
	}
	keys := sortedKeys(args)
	params := make([]string, len(keys))
	vars := make([]any, len(keys))
	for i, k := range keys {
		params[i] = pq.QuoteIdentifier(k) + " => ?"
		vars[i] = sqlValue(args[k])
	}
	return fmt.Sprintf("SELECT %s(%s)", pq.QuoteIdentifier(procedure), strings.Join(params, ", ")), vars, nil
}

func whereClause(filters []query.Filter) (string, []any) {
	if len(filters) == 0 {
		return "", nil
	}
	conds := make([]string, len(filters))
	args := make([]any, len(filters))
	for i, f := range filters {
		conds[i] = pq.QuoteIdentifier(f.Field) + " = ?"
		args[i] = sqlValue(f.Value)
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// sqlValue adapts JSON-decoded values to driver values: string lists become
// text[] and other composites are sent as JSON text for json/jsonb columns.
func sqlValue(v any) any {
	switch val := v.(type) {
	case []string:
		return pq.StringArray(val)
	case []any:
		strs := make([]string, 0, len(val))
		for _, item := range val {
			s, ok := item.(string)
			if !ok {
				return jsonText(val)
			}
			strs = append(strs, s)
		}
		return pq.StringArray(strs)
	case map[string]any:
		return jsonText(val)
	default:
		return v
	}
}

func jsonText(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}

func sortedKeys(row Row) []string {
	keys := make([]string, 0, len(row))
	for k := range row {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
