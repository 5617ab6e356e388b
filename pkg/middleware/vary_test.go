package middleware

import (
	"bytes"
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var requiredVary = []string{"Accept-Encoding", "Accept-Language", "Cookie"}

func varyValues(h http.Header) []string {
	var out []string
	for _, v := range h.Values("Vary") {
		for _, part := range strings.Split(v, ",") {
			out = append(out, strings.TrimSpace(part))
		}
	}
	sort.Strings(out)
	return out
}

func pageHandler() http.Handler {
	body := strings.Repeat("<p>Firefox Marketplace</p>", 200)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(body))
	})
}

func TestVary_WithCompression(t *testing.T) {
	handler := Vary(requiredVary...)(chimw.Compress(5, "text/html")(pageHandler()))

	gz := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/server.html", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	handler.ServeHTTP(gz, req)

	require.Equal(t, http.StatusOK, gz.Code)
	assert.Equal(t, "gzip", gz.Header().Get("Content-Encoding"))
	assert.Len(t, gz.Header().Values("Vary"), 1)
	assert.Equal(t, requiredVary, varyValues(gz.Header()))

	reader, err := gzip.NewReader(gz.Body)
	require.NoError(t, err)
	unzipped, err := io.ReadAll(reader)
	require.NoError(t, err)

	plain := httptest.NewRecorder()
	handler.ServeHTTP(plain, httptest.NewRequest(http.MethodGet, "/server.html", nil))

	assert.Empty(t, plain.Header().Get("Content-Encoding"))
	assert.Equal(t, requiredVary, varyValues(plain.Header()))
	assert.True(t, bytes.Equal(unzipped, plain.Body.Bytes()))
}

func TestVary_NoBody(t *testing.T) {
	handler := Vary("Cookie")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "Cookie", rec.Header().Get("Vary"))
}

func TestMergeVary(t *testing.T) {
	got := MergeVary(
		[]string{"accept-encoding", "Accept-Encoding, Origin"},
		[]string{"Accept-Encoding", "Cookie"},
	)
	assert.Equal(t, []string{"Accept-Encoding", "Origin", "Cookie"}, got)
}
