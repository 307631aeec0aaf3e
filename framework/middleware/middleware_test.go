package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestTrimSlash(t *testing.T) {
	handler := TrimSlash("/static/")(okHandler())

	tests := []struct {
		name     string
		target   string
		status   int
		location string
	}{
		{name: "root untouched", target: "/", status: http.StatusNoContent},
		{name: "no slash untouched", target: "/events", status: http.StatusNoContent},
		{name: "trailing slash", target: "/events/", status: http.StatusMovedPermanently, location: "/events"},
		{name: "keeps query", target: "/executions/?page=2", status: http.StatusMovedPermanently, location: "/executions?page=2"},
		{name: "repeated slashes", target: "/home//", status: http.StatusMovedPermanently, location: "/home"},
		{name: "exempt prefix", target: "/static/css/", status: http.StatusNoContent},
		{name: "only slashes", target: "///", status: http.StatusMovedPermanently, location: "/"},
		{name: "scheme-relative host", target: "//evil.example/", status: http.StatusMovedPermanently, location: "/evil.example"},
		{name: "backslash host", target: "/\\evil.example/", status: http.StatusMovedPermanently, location: "/evil.example"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tc.target, nil))
			assert.Equal(t, tc.status, rec.Code)
			assert.Equal(t, tc.location, rec.Header().Get("Location"))
		})
	}
}

func TestRequestLogAssignsRequestID(t *testing.T) {
	var out bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&out, nil))
	handler := RequestLog(logger)(okHandler())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/events", nil))

	requestID := rec.Header().Get(RequestIDHeader)
	_, err := uuid.Parse(requestID)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "request_id="+requestID)
	assert.Contains(t, out.String(), "path=/events")
	assert.Contains(t, out.String(), "status=204")
}

func TestRequestLogReusesValidIncomingID(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	handler := RequestLog(logger)(okHandler())

	incoming := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, incoming)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, incoming, rec.Header().Get(RequestIDHeader))

	bogus := httptest.NewRequest(http.MethodGet, "/", nil)
	bogus.Header.Set(RequestIDHeader, "not-a-uuid")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, bogus)
	assert.NotEqual(t, "not-a-uuid", rec.Header().Get(RequestIDHeader))
}

func TestRequestLogErrorLevelForServerErrors(t *testing.T) {
	var out bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&out, nil))
	handler := RequestLog(logger)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/events", nil))
	assert.Contains(t, out.String(), "level=ERROR")
	assert.Contains(t, out.String(), "status=500")
}
