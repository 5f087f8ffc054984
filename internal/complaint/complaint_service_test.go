package complaint_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"ecosync/backend/internal/apperror"
	"ecosync/backend/internal/complaint"
	"ecosync/backend/internal/events"
	"ecosync/backend/internal/models"
	"ecosync/backend/internal/query"
	"ecosync/backend/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

func newService() (*complaint.Service, *MockStorage, *MockPublisher) {
	storageMock := new(MockStorage)
	pub := new(MockPublisher)
	svc := complaint.NewService(storageMock, pub)
	svc.Now = func() time.Time { return fixedNow }
	return svc, storageMock, pub
}

func strPtr(s string) *string { return &s }

func TestList_AppliesDefaults(t *testing.T) {
	svc, storageMock, _ := newService()
	storageMock.On("Select", mock.Anything, mock.MatchedBy(func(q *query.Query) bool {
		return q.Collection == "complaints" &&
			len(q.Filters) == 1 && q.Filters[0] == query.Filter{Field: "status", Value: "pending"} &&
			q.Order != nil && q.Order.Field == "created_at" && q.Order.Desc &&
			q.Limit == 50
	})).Return([]storage.Row{{"id": "c1"}}, nil)

	rows, err := svc.List(context.Background(), query.ListParams{Filters: []query.Filter{{Field: "status", Value: "pending"}}})

	require.NoError(t, err)
	assert.Len(t, rows, 1)
	storageMock.AssertExpectations(t)
}

func TestList_ExplicitOrderAndLimit(t *testing.T) {
	svc, storageMock, _ := newService()
	storageMock.On("Select", mock.Anything, mock.MatchedBy(func(q *query.Query) bool {
		return len(q.Filters) == 0 && q.Order.Field == "priority" && !q.Order.Desc && q.Limit == 5
	})).Return([]storage.Row{}, nil)

	_, err := svc.List(context.Background(), query.ListParams{Order: &query.Order{Field: "priority"}, Limit: 5})

	require.NoError(t, err)
	storageMock.AssertExpectations(t)
}

func TestCreate_AwardsPointsAndPublishes(t *testing.T) {
	svc, storageMock, pub := newService()
	in := models.NewComplaint{UserID: strPtr("u1"), Title: "Pothole", Description: "Main St"}
	stored := storage.Row{"id": "c1", "title": "Pothole", "status": "pending"}

	storageMock.On("Insert", mock.Anything, "complaints", mock.MatchedBy(func(r storage.Row) bool {
		return r["status"] == "pending" && r["priority"] == "medium" && r["created_at"] == "2025-06-01T10:00:00Z"
	})).Return([]storage.Row{stored}, nil)
	storageMock.On("Call", mock.Anything, "add_user_points", storage.Row{"user_id": "u1", "points": 10}).Return(nil)
	pub.On("Publish", mock.Anything, mock.MatchedBy(func(e events.Event) bool {
		return e.Type == events.ComplaintCreated && e.ComplaintID == "c1"
	})).Return(nil)

	row, err := svc.Create(context.Background(), in)

	require.NoError(t, err)
	assert.Equal(t, stored, row)
	storageMock.AssertExpectations(t)
	pub.AssertExpectations(t)
}

func TestCreate_AwardFailureIsSwallowed(t *testing.T) {
	svc, storageMock, pub := newService()
	storageMock.On("Insert", mock.Anything, "complaints", mock.Anything).Return([]storage.Row{{"id": "c1"}}, nil)
	storageMock.On("Call", mock.Anything, "add_user_points", mock.Anything).Return(apperror.Store(errors.New("function add_user_points does not exist")))
	pub.On("Publish", mock.Anything, mock.Anything).Return(nil)

	row, err := svc.Create(context.Background(), models.NewComplaint{UserID: strPtr("u1"), Title: "t", Description: "d"})

	require.NoError(t, err)
	assert.Equal(t, "c1", row["id"])
	storageMock.AssertCalled(t, "Call", mock.Anything, "add_user_points", mock.Anything)
}

func TestCreate_SkipsAwardWithoutUser(t *testing.T) {
	svc, storageMock, pub := newService()
	storageMock.On("Insert", mock.Anything, "complaints", mock.Anything).Return([]storage.Row{{"id": "c1"}}, nil)
	pub.On("Publish", mock.Anything, mock.Anything).Return(nil)

	_, err := svc.Create(context.Background(), models.NewComplaint{Title: "t", Description: "d"})

	require.NoError(t, err)
	storageMock.AssertNotCalled(t, "Call", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreate_EmptyInsertResult(t *testing.T) {
	svc, storageMock, pub := newService()
	storageMock.On("Insert", mock.Anything, "complaints", mock.Anything).Return([]storage.Row{}, nil)

	row, err := svc.Create(context.Background(), models.NewComplaint{UserID: strPtr("u1"), Title: "t", Description: "d"})

	require.NoError(t, err)
	assert.Nil(t, row)
	storageMock.AssertNotCalled(t, "Call", mock.Anything, mock.Anything, mock.Anything)
	pub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestCreate_RequiresTitleAndDescription(t *testing.T) {
	svc, storageMock, _ := newService()

	_, err := svc.Create(context.Background(), models.NewComplaint{Title: "only a title"})

	assert.True(t, apperror.Is(err, apperror.KindValidation))
	storageMock.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreate_AcceptsWhitespaceTitle(t *testing.T) {
	svc, storageMock, pub := newService()
	storageMock.On("Insert", mock.Anything, "complaints", mock.MatchedBy(func(r storage.Row) bool {
		return r["title"] == " " && r["description"] == "d"
	})).Return([]storage.Row{{"id": "c1"}}, nil)
	pub.On("Publish", mock.Anything, mock.Anything).Return(nil)

	row, err := svc.Create(context.Background(), models.NewComplaint{Title: " ", Description: "d"})

	require.NoError(t, err)
	assert.Equal(t, "c1", row["id"])
	storageMock.AssertExpectations(t)
}

func TestCreate_StoreFailure(t *testing.T) {
	svc, storageMock, _ := newService()
	storageMock.On("Insert", mock.Anything, "complaints", mock.Anything).Return(nil, apperror.Store(errors.New("connection refused")))

	_, err := svc.Create(context.Background(), models.NewComplaint{Title: "t", Description: "d"})

	require.Error(t, err)
	assert.Equal(t, "connection refused", err.Error())
	assert.True(t, apperror.Is(err, apperror.KindStore))
}

func TestGet_NotFound(t *testing.T) {
	svc, storageMock, _ := newService()
	storageMock.On("Select", mock.Anything, mock.Anything).Return([]storage.Row{}, nil)

	_, err := svc.Get(context.Background(), "missing")

	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
	assert.Equal(t, "Complaint not found", err.Error())
}

func TestUpdate_ResolvedStampsResolvedAt(t *testing.T) {
	svc, storageMock, pub := newService()
	expected := storage.Row{"status": "resolved", "resolved_at": "2025-06-01T10:00:00Z"}
	storageMock.On("Update", mock.Anything, mock.Anything, expected).Return([]storage.Row{{"id": "c1", "status": "resolved"}}, nil)
	pub.On("Publish", mock.Anything, mock.MatchedBy(func(e events.Event) bool {
		return e.Type == events.ComplaintUpdated && e.ComplaintID == "c1"
	})).Return(nil)

	row, err := svc.Update(context.Background(), "c1", map[string]any{
		"status":      "resolved",
		"resolved_at": "1999-01-01T00:00:00Z",
		"title":       "ignored",
	})

	require.NoError(t, err)
	assert.Equal(t, "resolved", row["status"])
	storageMock.AssertExpectations(t)
	pub.AssertExpectations(t)
}

func TestUpdate_DropsUnknownFields(t *testing.T) {
	svc, storageMock, _ := newService()
	storageMock.On("Update", mock.Anything, mock.Anything, storage.Row{}).Return([]storage.Row{{"id": "c1"}}, nil)

	row, err := svc.Update(context.Background(), "c1", map[string]any{"title": "new", "user_id": "u9"})

	require.NoError(t, err)
	assert.Equal(t, "c1", row["id"])
	storageMock.AssertExpectations(t)
}

func TestUpdate_NoMatchReturnsNil(t *testing.T) {
	svc, storageMock, pub := newService()
	storageMock.On("Update", mock.Anything, mock.Anything, mock.Anything).Return([]storage.Row{}, nil)

	row, err := svc.Update(context.Background(), "missing", map[string]any{"status": "assigned"})

	require.NoError(t, err)
	assert.Nil(t, row)
	pub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestDelete_PublishesEvenWhenPublisherFails(t *testing.T) {
	svc, storageMock, pub := newService()
	storageMock.On("Delete", mock.Anything, mock.MatchedBy(func(q *query.Query) bool {
		return q.Collection == "complaints" && q.Filters[0].Value == "c1"
	})).Return(nil)
	pub.On("Publish", mock.Anything, mock.Anything).Return(errors.New("redis down"))

	err := svc.Delete(context.Background(), "c1")

	assert.NoError(t, err)
	pub.AssertExpectations(t)
}

func TestStats(t *testing.T) {
	svc, storageMock, _ := newService()
	storageMock.On("Select", mock.Anything, mock.MatchedBy(func(q *query.Query) bool {
		return q.Columns == "status" && len(q.Filters) == 1 && q.Filters[0].Value == "u1" && q.Limit == 0
	})).Return([]storage.Row{
		{"status": "pending"}, {"status": "resolved"}, {"status": "resolved"}, {"status": "rejected"},
	}, nil)

	stats, err := svc.Stats(context.Background(), "u1")

	require.NoError(t, err)
	assert.Equal(t, models.ComplaintStats{Total: 4, Pending: 1, Resolved: 2}, stats)
}

func TestStats_AllComplaintsWhenNoUser(t *testing.T) {
	svc, storageMock, _ := newService()
	storageMock.On("Select", mock.Anything, mock.MatchedBy(func(q *query.Query) bool {
		return len(q.Filters) == 0
	})).Return([]storage.Row{}, nil)

	stats, err := svc.Stats(context.Background(), "")

	require.NoError(t, err)
	assert.Zero(t, stats.Total)
}
