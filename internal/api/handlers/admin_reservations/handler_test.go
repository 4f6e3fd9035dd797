package admin_reservations

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/atelier-booking/internal/domain"
	"github.com/m04kA/atelier-booking/internal/service/admin"
	"github.com/m04kA/atelier-booking/pkg/logger"
)

type fakeAdmin struct {
	list    []domain.Reservation
	change  admin.ReservationChange
	updated *domain.Reservation
	deleted string
	err     error
}

func (f *fakeAdmin) ListReservations(context.Context) ([]domain.Reservation, error) {
	return f.list, f.err
}

func (f *fakeAdmin) ReassignOrChangeStatus(_ context.Context, _ string, change admin.ReservationChange) (*domain.Reservation, error) {
	f.change = change
	return f.updated, f.err
}

func (f *fakeAdmin) DeleteReservation(_ context.Context, id string) error {
	f.deleted = id
	return f.err
}

func newRouter(svc AdminService) *mux.Router {
	h := NewHandler(svc, logger.NewWithWriter(io.Discard, logger.LevelDebug))
	r := mux.NewRouter()
	r.HandleFunc("/api/admin/reservations", h.List).Methods(http.MethodGet)
	r.HandleFunc("/api/admin/reservations/{id}", h.Update).Methods(http.MethodPatch)
	r.HandleFunc("/api/admin/reservations/{id}", h.Delete).Methods(http.MethodDelete)
	return r
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestList(t *testing.T) {
	svc := &fakeAdmin{list: []domain.Reservation{
		{ID: "r-2", Status: domain.StatusCardPending, ExternalPaymentSessionID: "cs_test_2"},
		{ID: "r-1", Status: domain.StatusTransferPending},
	}}

	rec := do(newRouter(svc), http.MethodGet, "/api/admin/reservations", "")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `"reservations":[`)
	assert.Less(t, strings.Index(body, `"r-2"`), strings.Index(body, `"r-1"`))
	assert.NotContains(t, body, "cs_test_2")
}

func TestList_EmptyIsArray(t *testing.T) {
	rec := do(newRouter(&fakeAdmin{}), http.MethodGet, "/api/admin/reservations", "")
	assert.JSONEq(t, `{"reservations":[]}`, rec.Body.String())
}

func TestUpdate(t *testing.T) {
	svc := &fakeAdmin{updated: &domain.Reservation{ID: "r-1", SessionID: "s-2", Status: domain.StatusTransferConfirmed}}

	rec := do(newRouter(svc), http.MethodPatch, "/api/admin/reservations/r-1", `{"sessionId":"s-2","status":"transfer_confirmed"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, svc.change.FormationID)
	require.NotNil(t, svc.change.SessionID)
	assert.Equal(t, "s-2", *svc.change.SessionID)
	require.NotNil(t, svc.change.Status)
	assert.Equal(t, "transfer_confirmed", *svc.change.Status)
	assert.Contains(t, rec.Body.String(), `"status":"transfer_confirmed"`)
}

func TestUpdate_ErrorMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{admin.ErrInvalidInput, http.StatusBadRequest},
		{admin.ErrReservationNotFound, http.StatusNotFound},
		{admin.ErrSessionNotFound, http.StatusNotFound},
		{admin.ErrSessionFull, http.StatusConflict},
		{admin.ErrSessionClosed, http.StatusConflict},
		{admin.ErrSessionCancelled, http.StatusConflict},
		{admin.ErrInternal, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		rec := do(newRouter(&fakeAdmin{err: tc.err}), http.MethodPatch, "/api/admin/reservations/r-1", `{"status":"cancelled"}`)
		assert.Equal(t, tc.status, rec.Code, tc.err.Error())
	}
}

func TestDelete(t *testing.T) {
	svc := &fakeAdmin{}
	rec := do(newRouter(svc), http.MethodDelete, "/api/admin/reservations/r-1", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "r-1", svc.deleted)

	rec = do(newRouter(&fakeAdmin{err: admin.ErrReservationNotFound}), http.MethodDelete, "/api/admin/reservations/r-1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
