package query

import (
	"net/url"
	"slices"
	"strconv"
	"strings"

	"ecosync/backend/internal/apperror"
)

// Reserved list parameters. Anything else in the query string is only read
// when the resource allow-lists it as a filter.
const (
	ParamOrder = "order"
	ParamDesc  = "desc"
	ParamLimit = "limit"
)

// Fields names the columns a list endpoint exposes: Filter lists the
// query parameters read as equality filters, Order the columns a caller may
// sort on.
type Fields struct {
	Filter []string
	Order  []string
}

// ListParams are the query-string options of a list endpoint.
type ListParams struct {
	Filters []Filter
	Order   *Order
	Limit   int
}

// ParseList reads the allow-listed filter fields plus order/desc/limit from
// values. Missing or empty filter values are left out; the rest are matched
// literally.
func ParseList(values url.Values, fields Fields) (ListParams, error) {
	var p ListParams
	for _, field := range fields.Filter {
		if v := values.Get(field); v != "" {
			p.Filters = append(p.Filters, Filter{Field: field, Value: v})
		}
	}

	if field := values.Get(ParamOrder); field != "" {
		if !slices.Contains(fields.Order, field) {
			return ListParams{}, apperror.Validation("cannot order by %s", field)
		}
		desc := false
		if raw := values.Get(ParamDesc); raw != "" {
			b, err := strconv.ParseBool(raw)
			if err != nil {
				return ListParams{}, apperror.Validation("desc must be true or false")
			}
			desc = b
		}
		p.Order = &Order{Field: field, Desc: desc}
	}

	if raw := strings.TrimSpace(values.Get(ParamLimit)); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return ListParams{}, apperror.Validation("limit must be a positive integer")
		}
		p.Limit = n
	}
	return p, nil
}

// Apply copies the parsed options onto q.
func (p ListParams) Apply(q *Query) *Query {
	for _, f := range p.Filters {
		q.Eq(f.Field, f.Value)
	}
	if p.Order != nil {
		q.OrderBy(p.Order.Field, p.Order.Desc)
	}
	if p.Limit > 0 {
		q.Take(p.Limit)
	}
	return q
}
