package geo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestLocateOK(t *testing.T) {
	var gotPath string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"country":"Japan","region":"Tokyo","city":"Tokyo"}`))
	}))
	defer ts.Close()

	c := NewClient(Config{BaseURL: ts.URL, Timeout: time.Second}, zaptest.NewLogger(t))
	loc := c.Locate(context.Background(), "1.2.3.4")
	require.Equal(t, "/1.2.3.4", gotPath)
	require.Equal(t, Location{Country: "Japan", Region: "Tokyo", City: "Tokyo"}, loc)
}

func TestLocatePartialBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"country":"Japan"}`))
	}))
	defer ts.Close()

	c := NewClient(Config{BaseURL: ts.URL}, zaptest.NewLogger(t))
	loc := c.Locate(context.Background(), "1.2.3.4")
	require.Equal(t, Location{Country: "Japan", Region: "Unknown", City: "Unknown"}, loc)
}

func TestLocateNon200(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer ts.Close()

	c := NewClient(Config{BaseURL: ts.URL}, zaptest.NewLogger(t))
	require.Equal(t, Unknown, c.Locate(context.Background(), "1.2.3.4"))
}

func TestLocateMalformedBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer ts.Close()

	c := NewClient(Config{BaseURL: ts.URL}, zaptest.NewLogger(t))
	require.Equal(t, Unknown, c.Locate(context.Background(), "1.2.3.4"))
}

func TestLocateTransportError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	ts.Close() // already closed: connection refused

	c := NewClient(Config{BaseURL: ts.URL, Timeout: time.Second}, zaptest.NewLogger(t))
	require.Equal(t, Unknown, c.Locate(context.Background(), "1.2.3.4"))
}
