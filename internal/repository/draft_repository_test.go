package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DatzProject/I.Teaching-Ramlan/internal/models"
	appErrors "github.com/DatzProject/I.Teaching-Ramlan/pkg/errors"
)

func TestMemoryDraftRepositoryLifecycle(t *testing.T) {
	repo := NewMemoryDraftRepository()
	now := time.Date(2025, time.January, 10, 8, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return now }
	ctx := context.Background()

	draft := models.MonthlyDraft{ID: "d1", Class: "3", Month: time.January, Year: 2025, Generation: 1,
		Edits: map[string]models.PendingEdit{"s1|10/01/2025": {StudentID: "s1", Status: models.StatusSick}}}
	require.NoError(t, repo.Save(ctx, draft, time.Hour))

	got, err := repo.Get(ctx, "d1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.Generation)

	got.Edits["other"] = models.PendingEdit{}
	again, err := repo.Get(ctx, "d1")
	require.NoError(t, err)
	assert.Len(t, again.Edits, 1)

	other := models.MonthlyDraft{ID: "d2", Month: time.February, Year: 2025}
	require.NoError(t, repo.Save(ctx, other, 0))
	inJan, err := repo.ForPeriod(ctx, time.January, 2025)
	require.NoError(t, err)
	require.Len(t, inJan, 1)
	assert.Equal(t, "d1", inJan[0].ID)

	now = now.Add(2 * time.Hour)
	_, err = repo.Get(ctx, "d1")
	assert.True(t, errors.Is(err, appErrors.ErrNotFound))

	_, err = repo.Get(ctx, "d2")
	require.NoError(t, err)

	require.NoError(t, repo.DeleteAll(ctx))
	_, err = repo.Get(ctx, "d2")
	assert.True(t, errors.Is(err, appErrors.ErrNotFound))
}

func TestMemoryDraftRepositoryDelete(t *testing.T) {
	repo := NewMemoryDraftRepository()
	ctx := context.Background()
	require.NoError(t, repo.Save(ctx, models.MonthlyDraft{ID: "d1"}, time.Minute))
	require.NoError(t, repo.Delete(ctx, "d1"))
	require.NoError(t, repo.Delete(ctx, "missing"))
	_, err := repo.Get(ctx, "d1")
	assert.Error(t, err)
}

func TestNewDraftRepositoryFallsBackToMemory(t *testing.T) {
	_, ok := NewDraftRepository(nil).(*MemoryDraftRepository)
	assert.True(t, ok)
}
