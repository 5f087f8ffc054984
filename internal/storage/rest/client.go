// Package rest is the PostgREST backend of storage.Storage: the hosted
// store's auto-generated REST interface, reached with the project URL and
// API key.
package rest

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"ecosync/backend/internal/apperror"
	"ecosync/backend/internal/query"
	"ecosync/backend/internal/storage"

	"github.com/goccy/go-json"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	restPath = "/rest/v1/"
	rpcPath  = "rpc/"

	headerAPIKey = "apikey"
	headerPrefer = "Prefer"

	returnRepresentation = "return=representation"
	returnMinimal        = "return=minimal"
)

// Client implements storage.Storage over HTTP. It holds no per-request state
// and is safe for concurrent use.
type Client struct {
	baseURL string
	key     string
	http    *http.Client
}

var _ storage.Storage = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the traced default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// New returns a client for the project at baseURL.
func New(baseURL, key string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		key:     key,
		http:    &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Select returns the rows matching q.
func (c *Client) Select(ctx context.Context, q *query.Query) ([]storage.Row, error) {
	if err := q.Validate(); err != nil {
		return nil, apperror.Store(err)
	}
	params := filterParams(q)
	params.Set("select", selectColumns(q))
	if q.Order != nil {
		dir := "asc"
		if q.Order.Desc {
			dir = "desc"
		}
		params.Set("order", q.Order.Field+"."+dir)
	}
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}

	var rows []storage.Row
	if err := c.do(ctx, http.MethodGet, q.Collection, params, nil, "", &rows); err != nil {
		return nil, err
	}
	return nonNil(rows), nil
}

// Insert posts one row and returns the stored representation.
func (c *Client) Insert(ctx context.Context, collection string, row storage.Row) ([]storage.Row, error) {
	if strings.TrimSpace(collection) == "" {
		return nil, apperror.Store(fmt.Errorf("insert without collection"))
	}
	if row == nil {
		row = storage.Row{}
	}
	var rows []storage.Row
	if err := c.do(ctx, http.MethodPost, collection, nil, row, returnRepresentation, &rows); err != nil {
		return nil, err
	}
	return nonNil(rows), nil
}

// Update patches the rows matched by q.
func (c *Client) Update(ctx context.Context, q *query.Query, values storage.Row) ([]storage.Row, error) {
	if len(values) == 0 {
		return c.Select(ctx, &query.Query{Collection: q.Collection, Columns: "*", Filters: q.Filters})
	}
	if err := q.Validate(); err != nil {
		return nil, apperror.Store(err)
	}
	var rows []storage.Row
	if err := c.do(ctx, http.MethodPatch, q.Collection, filterParams(q), values, returnRepresentation, &rows); err != nil {
		return nil, err
	}
	return nonNil(rows), nil
}

// Delete removes the rows matched by q.
func (c *Client) Delete(ctx context.Context, q *query.Query) error {
	if err := q.Validate(); err != nil {
		return apperror.Store(err)
	}
	return c.do(ctx, http.MethodDelete, q.Collection, filterParams(q), nil, returnMinimal, nil)
}

// Call invokes a database function through the rpc endpoint.
func (c *Client) Call(ctx context.Context, procedure string, args storage.Row) error {
	if strings.TrimSpace(procedure) == "" {
		return apperror.Store(fmt.Errorf("call without procedure name"))
	}
	if args == nil {
		args = storage.Row{}
	}
	return c.do(ctx, http.MethodPost, rpcPath+procedure, nil, args, "", nil)
}

func (c *Client) do(ctx context.Context, method, resource string, params url.Values, body any, prefer string, out any) error {
	endpoint := c.baseURL + restPath + resource
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return apperror.Store(fmt.Errorf("encode %s body: %w", resource, err))
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return apperror.Store(err)
	}
	req.Header.Set(headerAPIKey, c.key)
	req.Header.Set("Authorization", "Bearer "+c.key)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if prefer != "" {
		req.Header.Set(headerPrefer, prefer)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return apperror.Store(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return apperror.Store(fmt.Errorf("read %s response: %w", resource, err))
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return apperror.Store(parseError(resp.StatusCode, data))
	}
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return apperror.Store(fmt.Errorf("decode %s response: %w", resource, err))
	}
	return nil
}

// filterParams renders the equality filters in PostgREST's operator syntax.
func filterParams(q *query.Query) url.Values {
	params := url.Values{}
	for _, f := range q.Filters {
		params.Add(f.Field, "eq."+literal(f.Value))
	}
	return params
}

func selectColumns(q *query.Query) string {
	cols := q.ColumnList()
	if cols == nil {
		return "*"
	}
	return strings.Join(cols, ",")
}

func literal(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		return val
	default:
		return fmt.Sprint(val)
	}
}

func nonNil(rows []storage.Row) []storage.Row {
	if rows == nil {
		return []storage.Row{}
	}
	return rows
}
