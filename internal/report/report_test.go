package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/NordCoder/Coloscope/internal/domain/result"
	"github.com/stretchr/testify/require"
)

var rows = []result.Result{
	{
		Name: "TEST", Category: "Test", Domain: "example.com", IP: "1.2.3.4",
		LatencyMs: 10.5, Status: result.StatusColo,
		AWSRegion: "AWS TOKYO ap-northeast-1a", Country: "Japan", Region: "Tokyo", City: "Tokyo",
	},
	{
		Name: "DOWN", Category: "Test", Domain: "down.example.com", IP: "5.6.7.8",
		LatencyMs: 0, Status: result.StatusFail,
		AWSRegion: "No PTR", Country: "Unknown", Region: "Unknown", City: "Unknown",
	},
}

func TestWriteJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "results.json")
	require.NoError(t, WriteJSON(path, rows))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded, 2)
	require.Equal(t, "TEST", decoded[0]["Constant"])
	require.Equal(t, "example.com", decoded[0]["Domain"])
	require.Equal(t, "COLO", decoded[0]["Status"])
	require.Equal(t, 10.5, decoded[0]["Latency_ms"])
}

func TestRenderHTML(t *testing.T) {
	html, err := RenderHTML(rows, 12.0)
	require.NoError(t, err)

	require.Contains(t, html, "<!DOCTYPE html>")
	require.Contains(t, html, "TEST")
	require.Contains(t, html, "1.2.3.4")
	require.Contains(t, html, `class="colo"`)
	require.Contains(t, html, `class="fail"`)
	require.Contains(t, html, "N/A") // zero latency on the failed row
	require.Contains(t, html, "DataTable")
	require.Contains(t, html, "<strong>1</strong> / <strong>2</strong>")
	require.Contains(t, html, "50.0% CO-LOCATED")
}

func TestWriteHTML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "results.html")
	require.NoError(t, WriteHTML(path, rows, 12.0))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "Coloscope Latency Report")
}

func TestRenderHTMLEmpty(t *testing.T) {
	html, err := RenderHTML(nil, 12.0)
	require.NoError(t, err)
	require.Contains(t, html, "0.0% CO-LOCATED")
}
