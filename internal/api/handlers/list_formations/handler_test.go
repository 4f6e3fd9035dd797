package list_formations

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/atelier-booking/internal/domain"
	"github.com/m04kA/atelier-booking/internal/infra/storage/records"
	"github.com/m04kA/atelier-booking/internal/service/catalog"
	"github.com/m04kA/atelier-booking/pkg/logger"
)

var base = []domain.Formation{
	{
		ID:    "stage",
		Title: "Stage",
		Price: 250,
		Sessions: []domain.SessionOption{
			{ID: "stage-jan", Label: "Janvier", StartDate: "2026-01-24", EndDate: "2026-01-25"},
			{ID: "stage-feb", Label: "Février", StartDate: "2026-02-07", EndDate: "2026-02-08"},
		},
	},
}

func serve(svc CatalogService) *httptest.ResponseRecorder {
	h := NewHandler(svc, logger.NewWithWriter(io.Discard, logger.LevelDebug))
	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/formations", nil))
	return rec
}

func TestHandle_MergesCatalogChanges(t *testing.T) {
	ctx := context.Background()
	svc := catalog.NewService(records.NewMemoryStore(), base, logger.NewWithWriter(io.Discard, logger.LevelDebug))

	_, err := svc.AddSession(ctx, "stage", domain.SessionDraft{ID: "stage-mar", Label: "Mars", StartDate: "2026-03-14", EndDate: "2026-03-15"})
	require.NoError(t, err)
	removed, err := svc.RemoveSession(ctx, "stage-jan")
	require.NoError(t, err)
	require.True(t, removed)

	rec := serve(svc)
	require.Equal(t, http.StatusOK, rec.Code)

	var body []FormationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 1)
	assert.Equal(t, 250.0, body[0].Price)
	assert.Equal(t, []string{}, body[0].Objectives)

	ids := make([]string, 0, len(body[0].Sessions))
	for _, s := range body[0].Sessions {
		ids = append(ids, s.ID)
	}
	assert.Equal(t, []string{"stage-feb", "stage-mar"}, ids)
}

type failingCatalog struct{}

func (failingCatalog) ListFormations(context.Context) ([]domain.Formation, error) {
	return nil, errors.New("disk")
}

func TestHandle_ReadFailure(t *testing.T) {
	rec := serve(failingCatalog{})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
