package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestWithTraceID_GeneratesIDWhenAbsent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	handler, _ := newTestHandler(t, ctrl, defaultGatewayConfig())

	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/health", nil)

	handler.withTraceID(next).ServeHTTP(recorder, request)

	assert.NotEmpty(t, recorder.Header().Get(traceIDHeader))
}

func TestWithTraceID_PreservesIncomingID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	handler, _ := newTestHandler(t, ctrl, defaultGatewayConfig())

	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/health", nil)
	request.Header.Set(traceIDHeader, "incoming-trace-id")

	handler.withTraceID(next).ServeHTTP(recorder, request)

	assert.Equal(t, "incoming-trace-id", recorder.Header().Get(traceIDHeader))
}
