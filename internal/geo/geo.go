// Package geo enriches IP addresses with third-party geolocation.
package geo

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

// Location is the best-effort geolocation of one IP. Every field falls
// back to "Unknown" when the lookup fails in any way.
type Location struct {
	Country string `json:"country"`
	Region  string `json:"region"`
	City    string `json:"city"`
}

// Unknown is the fallback Location.
var Unknown = Location{Country: "Unknown", Region: "Unknown", City: "Unknown"}

type Locator interface {
	Locate(ctx context.Context, ip string) Location
}

type Config struct {
	// BaseURL is the lookup endpoint; the IP is appended as a path
	// segment, e.g. https://ipwhois.app/json/1.2.3.4.
	BaseURL string
	Timeout time.Duration
}

// Client issues one HTTPS GET per IP. Lookups are not deduplicated:
// the same IP seen under several endpoints is fetched again each time.
type Client struct {
	http    *http.Client
	baseURL string
	log     *zap.Logger
}

var _ Locator = (*Client)(nil)

func NewClient(cfg Config, log *zap.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://ipwhois.app/json"
	}
	return &Client{
		http: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		baseURL: strings.TrimSuffix(baseURL, "/"),
		log:     log,
	}
}

// Locate never returns an error; any transport, status or decode
// failure degrades to Unknown.
func (c *Client) Locate(ctx context.Context, ip string) Location {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+ip, nil)
	if err != nil {
		return Unknown
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug("geo lookup", zap.String("ip", ip), zap.Error(err))
		return Unknown
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.Debug("geo lookup status", zap.String("ip", ip), zap.Int("status", resp.StatusCode))
		return Unknown
	}

	var body Location
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		c.log.Debug("geo decode", zap.String("ip", ip), zap.Error(err))
		return Unknown
	}
	return withDefaults(body)
}

func withDefaults(l Location) Location {
	if l.Country == "" {
		l.Country = "Unknown"
	}
	if l.Region == "" {
		l.Region = "Unknown"
	}
	if l.City == "" {
		l.City = "Unknown"
	}
	return l
}
