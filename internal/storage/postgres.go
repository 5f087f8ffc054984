package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"ecosync/backend/internal/apperror"
	"ecosync/backend/internal/query"

	"github.com/goccy/go-json"
	"github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

// Service talks to the store's Postgres database directly through gorm.
type Service struct {
	DB *gorm.DB
}

// OpenPostgres connects to dsn.
func OpenPostgres(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	return db, nil
}

// NewStorageService Constructor
func NewStorageService(db *gorm.DB) *Service {
	return &Service{DB: db}
}

// Select returns the rows matching q.
func (s *Service) Select(ctx context.Context, q *query.Query) ([]Row, error) {
	if err := q.Validate(); err != nil {
		return nil, apperror.Store(err)
	}

	tx := s.DB.WithContext(ctx).Table(q.Collection)
	if cols := q.ColumnList(); cols != nil {
		tx = tx.Select(cols)
	}
	for _, f := range q.Filters {
		tx = tx.Where(clause.Eq{Column: clause.Column{Name: f.Field}, Value: f.Value})
	}
	if q.Order != nil {
		tx = tx.Order(clause.OrderByColumn{Column: clause.Column{Name: q.Order.Field}, Desc: q.Order.Desc})
	}
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}

	rows, err := tx.Rows()
	if err != nil {
		return nil, apperror.Store(err)
	}
	out, err := scanRows(rows)
	if err != nil {
		return nil, apperror.Store(err)
	}
	return out, nil
}

// Insert writes one row and returns it as stored.
func (s *Service) Insert(ctx context.Context, collection string, row Row) ([]Row, error) {
	stmt, args, err := insertStatement(collection, row)
	if err != nil {
		return nil, apperror.Store(err)
	}
	return s.returning(ctx, stmt, args)
}

// Update sets values on the rows matched by q and returns them.
func (s *Service) Update(ctx context.Context, q *query.Query, values Row) ([]Row, error) {
	if len(values) == 0 {
		return s.Select(ctx, &query.Query{Collection: q.Collection, Columns: "*", Filters: q.Filters})
	}
	stmt, args, err := updateStatement(q, values)
	if err != nil {
		return nil, apperror.Store(err)
	}
	return s.returning(ctx, stmt, args)
}

// Delete removes the rows matched by q.
func (s *Service) Delete(ctx context.Context, q *query.Query) error {
	stmt, args, err := deleteStatement(q)
	if err != nil {
		return apperror.Store(err)
	}
	return apperror.Store(s.DB.WithContext(ctx).Exec(stmt, args...).Error)
}

// Call runs a database function with named arguments.
func (s *Service) Call(ctx context.Context, procedure string, args Row) error {
	stmt, vars, err := callStatement(procedure, args)
	if err != nil {
		return apperror.Store(err)
	}
	return apperror.Store(s.DB.WithContext(ctx).Exec(stmt, vars...).Error)
}

func (s *Service) returning(ctx context.Context, stmt string, args []any) ([]Row, error) {
	rows, err := s.DB.WithContext(ctx).Raw(stmt, args...).Rows()
	if err != nil {
		return nil, apperror.Store(err)
	}
	out, err := scanRows(rows)
	if err != nil {
		return nil, apperror.Store(err)
	}
	return out, nil
}

// scanRows reads every result row, decoding json/jsonb and array columns
// from the text form the driver hands back so the HTTP layer serializes them
// as JSON values. Other columns pass through untouched.
func scanRows(rows *sql.Rows) ([]Row, error) {
	defer rows.Close()

	types, err := rows.ColumnTypes()
	if err != nil {
		return nil, err
	}
	columns := make([]column, len(types))
	for i, ct := range types {
		columns[i] = column{name: ct.Name(), dbType: ct.DatabaseTypeName()}
	}

	out := []Row{}
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		out = append(out, decodeRow(columns, values))
	}
	return out, rows.Err()
}

type column struct {
	name   string
	dbType string
}

func decodeRow(columns []column, values []any) Row {
	row := make(Row, len(columns))
	for i, col := range columns {
		row[col.name] = decodeColumn(col.dbType, values[i])
	}
	return row
}

// decodeColumn converts a json/jsonb value into its decoded form and an array
// value (type names starting with "_") into a string slice.
func decodeColumn(dbType string, v any) any {
	dbType = strings.ToUpper(dbType)
	isJSON := dbType == "JSON" || dbType == "JSONB"
	isArray := strings.HasPrefix(dbType, "_")
	if !isJSON && !isArray {
		return v
	}

	var text string
	switch raw := v.(type) {
	case string:
		text = raw
	case []byte:
		text = string(raw)
	default:
		return v
	}

	if isJSON {
		var decoded any
		if json.Unmarshal([]byte(text), &decoded) != nil {
			return text
		}
		return decoded
	}
	var arr pq.StringArray
	if arr.Scan(text) != nil {
		return text
	}
	if arr == nil {
		return []string{}
	}
	return []string(arr)
}
