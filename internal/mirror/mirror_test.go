package mirror

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/madhankd/madhanboard-v2/internal/models"
)

func setupMirror(t *testing.T) (*Mirror, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "mirror.db")
	m, err := Open(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Close() })
	return m, path
}

func sampleBoard() *models.Board {
	created := time.Date(2024, 1, 1, 9, 30, 0, 123000000, time.UTC)
	updated := created.Add(time.Hour)
	order := 0
	return &models.Board{
		ID:          "b1",
		Name:        "Sprint 1",
		Description: "desc",
		CreatedAt:   created,
		BoardList: []*models.BoardList{
			{
				ID:        "l1",
				Title:     "To-Do",
				CreatedAt: created,
				UpdatedAt: &updated,
				Order:     0,
				Items: []*models.ListItem{
					{ID: "i1", Title: "Sample", Description: "body", CreatedAt: created, Order: &order},
				},
			},
			{ID: "l2", Title: "Done", CreatedAt: created, Order: 1, Items: []*models.ListItem{}},
		},
	}
}

func TestMirror_RoundTrip(t *testing.T) {
	m, _ := setupMirror(t)
	ctx := context.Background()

	want := sampleBoard()
	require.NoError(t, m.Save(ctx, want))

	got, ok, err := m.Load(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, want, got)
}

func TestMirror_EmptySlot(t *testing.T) {
	m, _ := setupMirror(t)

	got, ok, err := m.Load(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestMirror_SaveOverwrites(t *testing.T) {
	m, _ := setupMirror(t)
	ctx := context.Background()

	require.NoError(t, m.Save(ctx, sampleBoard()))
	second := &models.Board{ID: "b2", Name: "Other", BoardList: []*models.BoardList{}}
	require.NoError(t, m.Save(ctx, second))

	got, ok, err := m.Load(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "b2", got.ID)

	var rows int
	require.NoError(t, m.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM snapshots`).Scan(&rows))
	assert.Equal(t, 1, rows)
}

func TestMirror_CorruptSnapshotIsDiscarded(t *testing.T) {
	m, _ := setupMirror(t)
	ctx := context.Background()

	_, err := m.db.ExecContext(ctx,
		`INSERT INTO snapshots (key, value, updated_at) VALUES (?, ?, ?)`,
		SnapshotKey, "{not json", "2024-01-01T00:00:00.000Z")
	require.NoError(t, err)

	got, ok, err := m.Load(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, got)

	var rows int
	require.NoError(t, m.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM snapshots`).Scan(&rows))
	assert.Zero(t, rows, "corrupt snapshot is deleted")
}

func TestMirror_Clear(t *testing.T) {
	m, _ := setupMirror(t)
	ctx := context.Background()

	require.NoError(t, m.Save(ctx, sampleBoard()))
	require.NoError(t, m.Clear(ctx))
	require.NoError(t, m.Clear(ctx), "clearing an empty slot is fine")

	_, ok, err := m.Load(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMirror_SurvivesReopen(t *testing.T) {
	m, path := setupMirror(t)
	ctx := context.Background()
	require.NoError(t, m.Save(ctx, sampleBoard()))
	require.NoError(t, m.Close())

	reopened, err := Open(ctx, path)
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()

	got, ok, err := reopened.Load(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Sprint 1", got.Name)
}

func TestMirror_SaveNil(t *testing.T) {
	m, _ := setupMirror(t)
	assert.Error(t, m.Save(context.Background(), nil))
}
