package zone_test

import (
	"context"
	"testing"

	"ecosync/backend/internal/models"
	"ecosync/backend/internal/storage"
	"ecosync/backend/internal/storage/memstore"
	"ecosync/backend/internal/zone"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndList(t *testing.T) {
	store := memstore.New()
	svc := zone.NewService(store)
	name := "Ward 7"

	row, err := svc.Create(context.Background(), models.NewZone{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, []string{}, row["assigned_staff"])
	assert.NotEmpty(t, row["id"])

	rows, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestUpdate_PassesEveryFieldThrough(t *testing.T) {
	store := memstore.New()
	store.Seed("zones", storage.Row{"id": "z1", "name": "Ward 7"})
	svc := zone.NewService(store)

	row, err := svc.Update(context.Background(), "z1", map[string]any{"name": "Ward 8", "color": "green"})

	require.NoError(t, err)
	assert.Equal(t, "Ward 8", row["name"])
	assert.Equal(t, "green", row["color"])
}

func TestDelete(t *testing.T) {
	store := memstore.New()
	store.Seed("zones", storage.Row{"id": "z1"}, storage.Row{"id": "z2"})

	require.NoError(t, zone.NewService(store).Delete(context.Background(), "z1"))

	rows := store.Rows("zones")
	require.Len(t, rows, 1)
	assert.Equal(t, "z2", rows[0]["id"])
}
