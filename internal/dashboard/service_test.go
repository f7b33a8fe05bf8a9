package dashboard

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"solverpro/internal/models"
	"solverpro/internal/storage"
	"solverpro/internal/store"
)

func newTestService(t *testing.T) (*Service, *store.ProblemStore) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	kv, err := storage.NewGormKV(db)
	require.NoError(t, err)

	s := store.NewProblemStore(kv, "problems", zap.NewNop())
	s.Load(context.Background())
	return NewService(s, zap.NewNop()), s
}

func TestTogglePaidUpdatesRevenue(t *testing.T) {
	ctx := context.Background()
	svc, s := newTestService(t)
	require.NoError(t, s.Create(ctx, rec("1", "Juan", "+51987654321", models.StatusCompleted, false, price(12.50))))

	assert.Equal(t, 0.0, svc.Stats().TotalRevenue)

	found, err := svc.TogglePaid(ctx, "1")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 12.50, svc.Stats().TotalRevenue)

	_, err = svc.TogglePaid(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, 0.0, svc.Stats().TotalRevenue)
}

func TestSetStatusAnyTransition(t *testing.T) {
	ctx := context.Background()
	svc, s := newTestService(t)
	require.NoError(t, s.Create(ctx, rec("1", "Juan", "1", models.StatusPending, false, nil)))

	for _, status := range []models.ProblemStatus{models.StatusCompleted, models.StatusPending, models.StatusInProgress} {
		found, err := svc.SetStatus(ctx, "1", status)
		require.NoError(t, err)
		require.True(t, found)
		got, _ := s.Get("1")
		assert.Equal(t, status, got.Status)
	}
}

func TestIntentsOnUnknownID(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	found, err := svc.SetStatus(ctx, "nope", models.StatusCompleted)
	assert.NoError(t, err)
	assert.False(t, found)

	found, err = svc.TogglePaid(ctx, "nope")
	assert.NoError(t, err)
	assert.False(t, found)

	found, err = svc.Remove(ctx, "nope")
	assert.NoError(t, err)
	assert.False(t, found)

	_, ok := svc.Contact("nope")
	assert.False(t, ok)
}

func TestViewAndRemove(t *testing.T) {
	ctx := context.Background()
	svc, s := newTestService(t)
	require.NoError(t, s.Create(ctx, rec("1", "Juan", "+51987654321", models.StatusCompleted, true, price(4))))
	require.NoError(t, s.Create(ctx, rec("2", "Maria", "+51911111111", models.StatusPending, false, nil)))

	view := svc.View("completed", "")
	require.Len(t, view.Problems, 1)
	assert.Equal(t, "1", view.Problems[0].ID)
	assert.Equal(t, 1, view.Stats.Pending, "stats cover the whole snapshot")

	link, ok := svc.Contact("1")
	assert.True(t, ok)
	assert.Equal(t, "https://wa.me/51987654321", link)

	found, err := svc.Remove(ctx, "1")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Len(t, s.Snapshot(), 1)
}
