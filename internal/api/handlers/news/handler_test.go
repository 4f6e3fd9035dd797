package news

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/atelier-booking/internal/domain"
	"github.com/m04kA/atelier-booking/internal/service/admin"
	"github.com/m04kA/atelier-booking/pkg/logger"
)

type fakeReader struct {
	items []domain.NewsItem
	err   error
}

func (f *fakeReader) List(context.Context) ([]domain.NewsItem, error) { return f.items, f.err }

type fakeAdmin struct {
	patch   domain.NewsPatch
	deleted string
	item    *domain.NewsItem
	err     error
}

func (f *fakeAdmin) CreateNews(_ context.Context, title, content, image string) (*domain.NewsItem, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &domain.NewsItem{ID: "n-1", Title: title, Content: content, Image: image}, nil
}

func (f *fakeAdmin) UpdateNews(_ context.Context, _ string, patch domain.NewsPatch) (*domain.NewsItem, error) {
	f.patch = patch
	return f.item, f.err
}

func (f *fakeAdmin) DeleteNews(_ context.Context, id string) error {
	f.deleted = id
	return f.err
}

func newRouter(reader NewsReader, adm AdminService) *mux.Router {
	h := NewHandler(reader, adm, logger.NewWithWriter(io.Discard, logger.LevelDebug))
	r := mux.NewRouter()
	r.HandleFunc("/api/nknews", h.List).Methods(http.MethodGet)
	r.HandleFunc("/api/nknews", h.Create).Methods(http.MethodPost)
	r.HandleFunc("/api/nknews/{id}", h.Update).Methods(http.MethodPatch)
	r.HandleFunc("/api/nknews/{id}", h.Delete).Methods(http.MethodDelete)
	return r
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestList(t *testing.T) {
	created := time.Date(2025, 1, 2, 10, 0, 0, 0, time.UTC)
	reader := &fakeReader{items: []domain.NewsItem{{ID: "n-1", Title: "Stage d'été", CreatedAt: created}}}

	rec := do(newRouter(reader, &fakeAdmin{}), http.MethodGet, "/api/nknews", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"id":"n-1","title":"Stage d'été","content":"","image":"","createdAt":"2025-01-02T10:00:00Z"}]`, rec.Body.String())
}

func TestList_ReadFailureReturnsEmptyFeed(t *testing.T) {
	rec := do(newRouter(&fakeReader{err: errors.New("boom")}, &fakeAdmin{}), http.MethodGet, "/api/nknews", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestCreate(t *testing.T) {
	rec := do(newRouter(&fakeReader{}, &fakeAdmin{}), http.MethodPost, "/api/nknews", `{"title":"Nouveau stage","content":"..."}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"title":"Nouveau stage"`)

	rec = do(newRouter(&fakeReader{}, &fakeAdmin{err: admin.ErrInvalidInput}), http.MethodPost, "/api/nknews", `{"title":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdate_PartialPatch(t *testing.T) {
	adm := &fakeAdmin{item: &domain.NewsItem{ID: "n-1", Title: "Titre"}}

	rec := do(newRouter(&fakeReader{}, adm), http.MethodPatch, "/api/nknews/n-1", `{"content":"corps"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, adm.patch.Title)
	require.NotNil(t, adm.patch.Content)
	assert.Equal(t, "corps", *adm.patch.Content)
}

func TestDelete(t *testing.T) {
	adm := &fakeAdmin{}
	rec := do(newRouter(&fakeReader{}, adm), http.MethodDelete, "/api/nknews/n-1", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "n-1", adm.deleted)

	rec = do(newRouter(&fakeReader{}, &fakeAdmin{err: admin.ErrNewsNotFound}), http.MethodDelete, "/api/nknews/n-9", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
