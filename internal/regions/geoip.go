package regions

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

// GeoIP looks up the country of an IP address.
type GeoIP interface {
	Lookup(ctx context.Context, ip string) (string, error)
}

type geoIPClient struct {
	baseURL string
	client  *http.Client
	log     *zap.Logger
}

// NewGeoIP returns a client for a geodude-style service: POST <url>/country
// with form field ip, answering {"country_code": "US"}.
func NewGeoIP(baseURL string, timeout time.Duration, log *zap.Logger) GeoIP {
	return &geoIPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		log:     log.With(zap.String("client", "geoip")),
	}
}

type geoIPResponse struct {
	CountryCode string `json:"country_code"`
}

func (g *geoIPClient) Lookup(ctx context.Context, ip string) (string, error) {
	form := url.Values{"ip": {ip}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/country",
		strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("build geoip request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("geoip lookup %s: %w", ip, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("geoip lookup %s: status %d", ip, resp.StatusCode)
	}

	var body geoIPResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decode geoip response: %w", err)
	}

	return strings.ToLower(body.CountryCode), nil
}
