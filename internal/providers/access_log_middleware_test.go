package providers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingLogger struct {
	cacheTestLogger
	types    []TypeEnum
	messages []string
}

func (l *recordingLogger) Infof(t TypeEnum, format string, args ...interface{}) {
	l.types = append(l.types, t)
	l.messages = append(l.messages, fmt.Sprintf(format, args...))
}

func TestAccessLogMiddleware_LogsGetToGetLog(t *testing.T) {
	logger := &recordingLogger{}
	mw := AccessLogMiddleware(logger, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/clients?status=active", nil)
	mw.ServeHTTP(httptest.NewRecorder(), req)

	require.Len(t, logger.messages, 1)
	assert.Equal(t, TypeGet, logger.types[0])
	assert.Equal(t, "GET /clients?status=active", logger.messages[0])
}

func TestAccessLogMiddleware_LogsPostToPostLog(t *testing.T) {
	logger := &recordingLogger{}
	mw := AccessLogMiddleware(logger, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodPost, "/clients", nil)
	mw.ServeHTTP(httptest.NewRecorder(), req)

	require.Len(t, logger.types, 1)
	assert.Equal(t, TypePost, logger.types[0])
}

func TestAccessLogMiddleware_CallsNext(t *testing.T) {
	called := false
	mw := AccessLogMiddleware(&recordingLogger{}, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusTeapot)
	}))

	rr := httptest.NewRecorder()
	mw.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.True(t, called)
	assert.Equal(t, http.StatusTeapot, rr.Code)
}
