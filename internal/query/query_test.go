package query_test

import (
	"net/url"
	"testing"

	"ecosync/backend/internal/apperror"
	"ecosync/backend/internal/query"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEqIfSet_OmitsAbsentValues(t *testing.T) {
	q := query.From("complaints").EqIfSet("user_id", "").EqIfSet("status", "pending")

	assert.Equal(t, []query.Filter{{Field: "status", Value: "pending"}}, q.Filters)
}

func TestWithDefaults(t *testing.T) {
	q := query.From("complaints").WithDefaults("created_at", 50)
	require.NotNil(t, q.Order)
	assert.Equal(t, query.Order{Field: "created_at", Desc: true}, *q.Order)
	assert.Equal(t, 50, q.Limit)

	explicit := query.From("complaints").OrderBy("priority", false).Take(5).WithDefaults("created_at", 50)
	assert.Equal(t, query.Order{Field: "priority", Desc: false}, *explicit.Order)
	assert.Equal(t, 5, explicit.Limit)
}

func TestColumnList(t *testing.T) {
	assert.Nil(t, query.From("users").ColumnList())
	assert.Equal(t, []string{"id", "full_name", "total_points"},
		query.From("users").Select("id, full_name, total_points").ColumnList())
}

func TestValidate(t *testing.T) {
	assert.NoError(t, query.From("zones").Validate())
	assert.Error(t, query.From("").Validate())
	assert.Error(t, query.From("zones").Eq("", 1).Validate())
	assert.Error(t, query.From("zones").OrderBy("", true).Validate())

	var nilQuery *query.Query
	assert.Error(t, nilQuery.Validate())
}

func TestTake_NegativeMeansNoLimit(t *testing.T) {
	assert.Equal(t, 0, query.From("zones").Take(-3).Limit)
}

var complaintFields = query.Fields{
	Filter: []string{"user_id", "status"},
	Order:  []string{"created_at", "priority"},
}

func TestParseList(t *testing.T) {
	values := url.Values{
		"user_id":  {"u1"},
		"status":   {""},
		"category": {"waste"},
		"order":    {"priority"},
		"desc":     {"true"},
		"limit":    {"10"},
	}

	p, err := query.ParseList(values, complaintFields)
	require.NoError(t, err)

	// category is not allow-listed and the empty status is absent
	assert.Equal(t, []query.Filter{{Field: "user_id", Value: "u1"}}, p.Filters)
	assert.Equal(t, &query.Order{Field: "priority", Desc: true}, p.Order)
	assert.Equal(t, 10, p.Limit)
}

func TestParseList_RejectsBadInput(t *testing.T) {
	tests := []url.Values{
		{"limit": {"0"}},
		{"limit": {"-1"}},
		{"limit": {"ten"}},
		{"order": {"created_at"}, "desc": {"maybe"}},
		{"order": {"password"}},
		{"order": {" created_at"}},
	}
	for _, values := range tests {
		_, err := query.ParseList(values, complaintFields)
		require.Error(t, err, values.Encode())
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	}
}

func TestParseList_KeepsFilterValuesVerbatim(t *testing.T) {
	p, err := query.ParseList(url.Values{"user_id": {" u1"}, "status": {"in-progress "}}, complaintFields)
	require.NoError(t, err)

	assert.Equal(t, []query.Filter{
		{Field: "user_id", Value: " u1"},
		{Field: "status", Value: "in-progress "},
	}, p.Filters)
}

func TestListParamsApply_ThenDefaults(t *testing.T) {
	p, err := query.ParseList(url.Values{"status": {"resolved"}}, complaintFields)
	require.NoError(t, err)

	q := p.Apply(query.From("complaints")).WithDefaults("created_at", 50)

	assert.Equal(t, []query.Filter{{Field: "status", Value: "resolved"}}, q.Filters)
	assert.Equal(t, &query.Order{Field: "created_at", Desc: true}, q.Order)
	assert.Equal(t, 50, q.Limit)
}
