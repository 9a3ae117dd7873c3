package endpoints

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const sample = `# Test Category
TEST_URL = "https://api.example.com"
ANOTHER_URL = "wss://ws.example.com/stream"

# Another Category
THIRD_URL = "https://test.example.org"
`

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "endpoints.txt")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))

	records, err := ParseFile(path)
	require.NoError(t, err)
	require.Len(t, records, 3)

	require.Equal(t, "TEST_URL", records[0].Name)
	require.Equal(t, "Test Category", records[0].Category)
	require.Equal(t, "api.example.com", records[0].Domain)

	require.Equal(t, "ANOTHER_URL", records[1].Name)
	require.Equal(t, "ws.example.com", records[1].Domain)

	require.Equal(t, "THIRD_URL", records[2].Name)
	require.Equal(t, "Another Category", records[2].Category)
}

func TestParseStripsPortAndPath(t *testing.T) {
	records := Parse([]string{`WS = "wss://stream.example.com:9443/ws/depth"`})
	require.Len(t, records, 1)
	require.Equal(t, "stream.example.com", records[0].Domain)
}

func TestParseDefaultsCategory(t *testing.T) {
	records := Parse([]string{`API = "https://api.example.com"`})
	require.Len(t, records, 1)
	require.Equal(t, "Unknown", records[0].Category)
}

func TestParseIgnoresOtherLines(t *testing.T) {
	records := Parse([]string{
		"",
		"just some prose",
		`FTP = "ftp://files.example.com"`,
	})
	require.Empty(t, records)
}

func TestParseFileMissing(t *testing.T) {
	_, err := ParseFile(filepath.Join(t.TempDir(), "nope.txt"))
	require.Error(t, err)
}

func TestParseFileEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.txt")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	records, err := ParseFile(path)
	require.NoError(t, err)
	require.Empty(t, records)
}
