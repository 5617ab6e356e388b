package regions

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeGeoIP struct {
	code  string
	err   error
	calls int
}

func (f *fakeGeoIP) Lookup(ctx context.Context, ip string) (string, error) {
	f.calls++
	return f.code, f.err
}

func TestLookups(t *testing.T) {
	r, ok := BySlug("BR")
	require.True(t, ok)
	assert.Equal(t, "Brazil", r.Name)

	r, ok = ByCountryCode("GB")
	require.True(t, ok)
	assert.Equal(t, "uk", r.Slug)

	r, ok = ByMCC(334)
	require.True(t, ok)
	assert.Equal(t, "mx", r.Slug)

	_, ok = BySlug("testoland")
	assert.False(t, ok)
}

func TestResolver_RegionFromRequest(t *testing.T) {
	tests := []struct {
		name      string
		url       string
		geoip     *fakeGeoIP
		wantSlug  string
		wantCalls int
	}{
		{"query param wins", "/server.html?region=de", &fakeGeoIP{code: "br"}, "de", 0},
		{"unknown param falls through to geoip", "/server.html?region=nowhere", &fakeGeoIP{code: "br"}, "br", 1},
		{"geoip country", "/server.html", &fakeGeoIP{code: "us"}, "us", 1},
		{"geoip unknown country", "/server.html", &fakeGeoIP{code: "zz"}, "restofworld", 1},
		{"geoip error", "/server.html", &fakeGeoIP{err: errors.New("timeout")}, "restofworld", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rs := NewResolver(tt.geoip, "restofworld", zap.NewNop())
			req := httptest.NewRequest(http.MethodGet, tt.url, nil)

			region := rs.RegionFromRequest(req)

			assert.Equal(t, tt.wantSlug, region.Slug)
			assert.Equal(t, tt.wantCalls, tt.geoip.calls)
		})
	}
}

func TestResolver_NoGeoIP(t *testing.T) {
	rs := NewResolver(nil, "bogus", zap.NewNop())
	req := httptest.NewRequest(http.MethodGet, "/server.html", nil)

	assert.Equal(t, RestOfWorld, rs.RegionFromRequest(req))
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	assert.Equal(t, "10.0.0.1", ClientIP(req))

	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	assert.Equal(t, "203.0.113.7", ClientIP(req))
}

func TestGeoIPClient_Lookup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/country", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "203.0.113.7", r.PostForm.Get("ip"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"country_code": "BR"}`))
	}))
	defer srv.Close()

	client := NewGeoIP(srv.URL+"/", time.Second, zap.NewNop())
	code, err := client.Lookup(context.Background(), "203.0.113.7")

	require.NoError(t, err)
	assert.Equal(t, "br", code)
}

func TestGeoIPClient_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewGeoIP(srv.URL, time.Second, zap.NewNop())
	_, err := client.Lookup(context.Background(), "203.0.113.7")

	assert.Error(t, err)
}
