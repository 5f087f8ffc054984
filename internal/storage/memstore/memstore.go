// Package memstore keeps collections in process memory. It backs local runs
// without a database and the handler tests.
package memstore

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"ecosync/backend/internal/apperror"
	"ecosync/backend/internal/config"
	"ecosync/backend/internal/query"
	"ecosync/backend/internal/storage"

	"github.com/google/uuid"
)

var now = time.Now

// Procedure is a server-side function callable through Call. It runs with
// the store lock held and may modify collections directly.
type Procedure func(tables map[string][]storage.Row, args storage.Row) error

// Store implements storage.Storage.
type Store struct {
	mu         sync.RWMutex
	tables     map[string][]storage.Row
	procedures map[string]Procedure
}

var _ storage.Storage = (*Store)(nil)

// New returns an empty store with add_user_points registered.
func New() *Store {
	s := &Store{
		tables:     make(map[string][]storage.Row),
		procedures: make(map[string]Procedure),
	}
	s.Register(config.AddPointsProcedure, addUserPoints)
	return s
}

// Register installs or replaces a procedure.
func (s *Store) Register(name string, p Procedure) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.procedures[name] = p
}

// Seed appends rows to collection verbatim.
func (s *Store) Seed(collection string, rows ...storage.Row) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range rows {
		s.tables[collection] = append(s.tables[collection], clone(r))
	}
}

// Rows returns a copy of every row of collection in insertion order.
func (s *Store) Rows(collection string) []storage.Row {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]storage.Row, 0, len(s.tables[collection]))
	for _, r := range s.tables[collection] {
		out = append(out, clone(r))
	}
	return out
}

// Select returns the rows matching q.
func (s *Store) Select(ctx context.Context, q *query.Query) ([]storage.Row, error) {
	if err := q.Validate(); err != nil {
		return nil, apperror.Store(err)
	}
	if err := ctx.Err(); err != nil {
		return nil, apperror.Store(err)
	}

	s.mu.RLock()
	matched := make([]storage.Row, 0)
	for _, r := range s.tables[q.Collection] {
		if matches(r, q.Filters) {
			matched = append(matched, r)
		}
	}
	if q.Order != nil {
		sortRows(matched, q.Order)
	}
	if q.Limit > 0 && len(matched) > q.Limit {
		matched = matched[:q.Limit]
	}
	cols := q.ColumnList()
	out := make([]storage.Row, len(matched))
	for i, r := range matched {
		out[i] = project(r, cols)
	}
	s.mu.RUnlock()
	return out, nil
}

// Insert stores a copy of row. Rows without an id get a uuid.
func (s *Store) Insert(ctx context.Context, collection string, row storage.Row) ([]storage.Row, error) {
	if strings.TrimSpace(collection) == "" {
		return nil, apperror.Store(fmt.Errorf("insert without collection"))
	}
	if err := ctx.Err(); err != nil {
		return nil, apperror.Store(err)
	}
	stored := clone(row)
	if stored == nil {
		stored = storage.Row{}
	}
	if id, ok := stored["id"]; !ok || id == nil || id == "" {
		stored["id"] = uuid.NewString()
	}

	s.mu.Lock()
	s.tables[collection] = append(s.tables[collection], stored)
	s.mu.Unlock()
	return []storage.Row{clone(stored)}, nil
}

// Update sets values on every matching row.
func (s *Store) Update(ctx context.Context, q *query.Query, values storage.Row) ([]storage.Row, error) {
	if err := q.Validate(); err != nil {
		return nil, apperror.Store(err)
	}
	if err := ctx.Err(); err != nil {
		return nil, apperror.Store(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]storage.Row, 0)
	for _, r := range s.tables[q.Collection] {
		if !matches(r, q.Filters) {
			continue
		}
		for k, v := range values {
			r[k] = v
		}
		out = append(out, clone(r))
	}
	return out, nil
}

// Delete removes every matching row.
func (s *Store) Delete(ctx context.Context, q *query.Query) error {
	if err := q.Validate(); err != nil {
		return apperror.Store(err)
	}
	if err := ctx.Err(); err != nil {
		return apperror.Store(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.tables[q.Collection][:0]
	for _, r := range s.tables[q.Collection] {
		if !matches(r, q.Filters) {
			kept = append(kept, r)
		}
	}
	s.tables[q.Collection] = kept
	return nil
}

// Call runs a registered procedure.
func (s *Store) Call(ctx context.Context, procedure string, args storage.Row) error {
	if err := ctx.Err(); err != nil {
		return apperror.Store(err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.procedures[procedure]
	if !ok {
		return apperror.Store(fmt.Errorf("could not find the function %s", procedure))
	}
	return apperror.Store(p(s.tables, args))
}

// addUserPoints mirrors the SQL function installed by storage.Migrate.
func addUserPoints(tables map[string][]storage.Row, args storage.Row) error {
	userID := storage.String(args, "user_id")
	points, ok := storage.Float(args["points"])
	if userID == "" || !ok {
		return fmt.Errorf("%s requires user_id and points", config.AddPointsProcedure)
	}

	tables[config.Collections.Rewards] = append(tables[config.Collections.Rewards], storage.Row{
		"id":         uuid.NewString(),
		"user_id":    userID,
		"points":     points,
		"created_at": storage.Timestamp(now()),
	})
	for _, u := range tables[config.Collections.Users] {
		if storage.String(u, "id") == userID {
			total, _ := storage.Float(u["total_points"])
			u["total_points"] = total + points
		}
	}
	return nil
}

func matches(r storage.Row, filters []query.Filter) bool {
	for _, f := range filters {
		if !equal(r[f.Field], f.Value) {
			return false
		}
	}
	return true
}

// equal compares the way a SQL equality on a text-serialized value would:
// numbers by value, everything else by its string form.
func equal(a, b any) bool {
	if a == nil || b == nil {
		return false
	}
	if fa, ok := storage.Float(a); ok {
		if fb, ok := storage.Float(b); ok {
			return fa == fb
		}
	}
	return fmt.Sprint(a) == fmt.Sprint(b)
}

// sortRows orders by one field; nulls go last ascending and first
// descending, as in Postgres.
func sortRows(rows []storage.Row, o *query.Order) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i][o.Field], rows[j][o.Field]
		switch {
		case a == nil && b == nil:
			return false
		case a == nil:
			return o.Desc
		case b == nil:
			return !o.Desc
		}
		c := compare(a, b)
		if o.Desc {
			return c > 0
		}
		return c < 0
	})
}

func compare(a, b any) int {
	if fa, ok := storage.Float(a); ok {
		if fb, ok := storage.Float(b); ok {
			switch {
			case fa < fb:
				return -1
			case fa > fb:
				return 1
			}
			return 0
		}
	}
	if ta, ok := storage.Time(a); ok {
		if tb, ok := storage.Time(b); ok {
			return ta.Compare(tb)
		}
	}
	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

func project(r storage.Row, cols []string) storage.Row {
	if cols == nil {
		return clone(r)
	}
	out := make(storage.Row, len(cols))
	for _, c := range cols {
		if v, ok := r[c]; ok {
			out[c] = v
		} else {
			out[c] = nil
		}
	}
	return out
}

func clone(r storage.Row) storage.Row {
	if r == nil {
		return nil
	}
	out := make(storage.Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}
