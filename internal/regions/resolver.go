package regions

import (
	"net"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// RegionParam lets clients pin a region explicitly.
const RegionParam = "region"

// Resolver determines the region of a request.
type Resolver interface {
	RegionFromRequest(r *http.Request) Region
}

type resolver struct {
	geoip    GeoIP
	fallback Region
	log      *zap.Logger
}

// NewResolver builds a resolver. geoip may be nil, in which case only the
// query parameter and the fallback are consulted.
func NewResolver(geoip GeoIP, fallbackSlug string, log *zap.Logger) Resolver {
	fallback, ok := BySlug(fallbackSlug)
	if !ok {
		fallback = RestOfWorld
	}
	return &resolver{
		geoip:    geoip,
		fallback: fallback,
		log:      log.With(zap.String("component", "region_resolver")),
	}
}

func (rs *resolver) RegionFromRequest(r *http.Request) Region {
	if region, ok := BySlug(r.URL.Query().Get(RegionParam)); ok {
		return region
	}

	if rs.geoip == nil {
		return rs.fallback
	}

	ip := ClientIP(r)
	if ip == "" {
		return rs.fallback
	}

	code, err := rs.geoip.Lookup(r.Context(), ip)
	if err != nil {
		rs.log.Warn("GeoIP lookup failed", zap.Error(err), zap.String("ip", ip))
		return rs.fallback
	}

	if region, ok := ByCountryCode(code); ok {
		return region
	}
	return rs.fallback
}

// ClientIP prefers the first X-Forwarded-For hop over the socket address.
func ClientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
