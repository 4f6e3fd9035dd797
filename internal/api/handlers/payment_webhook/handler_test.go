package payment_webhook

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	paymentEvents "github.com/m04kA/atelier-booking/internal/usecase/payment_events"
	"github.com/m04kA/atelier-booking/pkg/logger"
)

type fakeUseCase struct {
	payload   string
	signature string
	resp      *paymentEvents.Response
	err       error
}

func (f *fakeUseCase) Execute(_ context.Context, payload []byte, signature string) (*paymentEvents.Response, error) {
	f.payload = string(payload)
	f.signature = signature
	return f.resp, f.err
}

func serve(uc UseCase) *httptest.ResponseRecorder {
	h := NewHandler(uc, logger.NewWithWriter(io.Discard, logger.LevelDebug))
	req := httptest.NewRequest(http.MethodPost, "/api/stripe/webhook", strings.NewReader(`{"id":"evt_1"}`))
	req.Header.Set("Stripe-Signature", "t=1,v1=abc")
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle_PassesRawPayloadAndSignature(t *testing.T) {
	uc := &fakeUseCase{resp: &paymentEvents.Response{EventID: "evt_1", Outcome: paymentEvents.OutcomeConfirmed}}

	rec := serve(uc)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"received":true}`, rec.Body.String())
	assert.Equal(t, `{"id":"evt_1"}`, uc.payload)
	assert.Equal(t, "t=1,v1=abc", uc.signature)
}

func TestHandle_InvalidEvent(t *testing.T) {
	rec := serve(&fakeUseCase{err: fmt.Errorf("%w: bad signature", paymentEvents.ErrInvalidEvent)})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), msgInvalidEvent)
}

func TestHandle_InternalError(t *testing.T) {
	rec := serve(&fakeUseCase{err: fmt.Errorf("%w: disk full", paymentEvents.ErrInternal)})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), msgInternalError)
	assert.NotContains(t, rec.Body.String(), "disk full")
}
