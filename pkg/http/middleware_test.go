package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCORS(t *testing.T) {
	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		called = true
		w.WriteHeader(http.StatusTeapot)
	})

	h := CORS(http.MethodGet, http.MethodPost)(next)

	t.Run("preflight", func(t *testing.T) {
		called = false
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/x", http.NoBody))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.False(t, called)
		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "GET, POST", rec.Header().Get("Access-Control-Allow-Methods"))
	})

	t.Run("passes through", func(t *testing.T) {
		called = false
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", http.NoBody))

		assert.Equal(t, http.StatusTeapot, rec.Code)
		assert.True(t, called)
		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestRequestLoggerKeepsStatus(t *testing.T) {
	h := RequestLogger(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", http.NoBody))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHijackUnsupported(t *testing.T) {
	r := &statusRecorder{ResponseWriter: httptest.NewRecorder()}

	_, _, err := r.Hijack()
	assert.ErrorIs(t, err, errNotHijacker)
}
