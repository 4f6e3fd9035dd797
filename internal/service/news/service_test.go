package news

import (
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/atelier-booking/internal/domain"
	"github.com/m04kA/atelier-booking/internal/infra/storage/records"
	"github.com/m04kA/atelier-booking/pkg/logger"
)

func newTestService(store *records.MemoryStore) *Service {
	svc := NewService(store, logger.NewWithWriter(io.Discard, logger.LevelDebug))
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	seq := 0
	svc.now = func() time.Time { return base.Add(time.Duration(seq) * time.Hour) }
	svc.newID = func() string {
		seq++
		return fmt.Sprintf("n%d", seq)
	}
	return svc
}

func TestCreateListNewestFirst(t *testing.T) {
	svc := newTestService(records.NewMemoryStore())
	ctx := context.Background()

	_, err := svc.Create(ctx, "Premier", "texte", "")
	require.NoError(t, err)
	_, err = svc.Create(ctx, "Second", "texte", "/uploads/a.jpg")
	require.NoError(t, err)

	items, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Second", items[0].Title)
	assert.Equal(t, "Premier", items[1].Title)

	_, err = svc.Create(ctx, "  ", "texte", "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateDelete(t *testing.T) {
	svc := newTestService(records.NewMemoryStore())
	ctx := context.Background()

	item, err := svc.Create(ctx, "Titre", "texte", "")
	require.NoError(t, err)

	title := "Nouveau titre"
	updated, err := svc.Update(ctx, item.ID, domain.NewsPatch{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Nouveau titre", updated.Title)
	assert.Equal(t, "texte", updated.Content)

	_, err = svc.Update(ctx, "nope", domain.NewsPatch{Title: &title})
	assert.ErrorIs(t, err, ErrNewsNotFound)

	require.NoError(t, svc.Delete(ctx, item.ID))
	assert.ErrorIs(t, svc.Delete(ctx, item.ID), ErrNewsNotFound)
}

func TestList_AssignsIDsToLegacyItems(t *testing.T) {
	store := records.NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, records.DocNews,
		[]byte(`[{"title":"Ancien","content":"x","image":"","createdAt":"2024-12-01T10:00:00.000Z"}]`)))

	svc := newTestService(store)
	items, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "n1", items[0].ID)

	// id сохранен, повторное чтение его не меняет
	items, err = svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "n1", items[0].ID)
}
